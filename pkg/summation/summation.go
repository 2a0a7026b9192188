// Package summation computes 0 + 1 + ... + n in three different ways.
package summation

import (
	"github.com/cockroachdb/errors"
	"github.com/toan5ks1/code-challenge/common/errs"
)

const (
	// MaxRecursiveN bounds the recursion depth of SumToNRecursive.
	MaxRecursiveN = 10_000

	// MaxN is the largest n whose sum fits in an int64.
	MaxN = 4_294_967_295
)

// Method selects a summation strategy.
type Method string

const (
	MethodIterative Method = "iterative"
	MethodRecursive Method = "recursive"
	MethodFormula   Method = "formula"
)

// Methods lists every strategy in a stable order.
var Methods = []Method{MethodIterative, MethodRecursive, MethodFormula}

// SumToN dispatches to the strategy named by m.
func SumToN(m Method, n int) (int, error) {
	switch m {
	case MethodIterative:
		return SumToNIterative(n)
	case MethodRecursive:
		return SumToNRecursive(n)
	case MethodFormula:
		return SumToNFormula(n)
	}
	return 0, errors.Wrapf(errs.Unsupported, "%q summation method", m)
}

// SumToNIterative adds every integer up to n in a loop. O(n).
func SumToNIterative(n int) (int, error) {
	if err := validate(n); err != nil {
		return 0, err
	}
	sum := 0
	for i := 1; i <= n; i++ {
		sum += i
	}
	return sum, nil
}

// SumToNRecursive computes n + sum(n-1). O(n) time and stack.
func SumToNRecursive(n int) (int, error) {
	if err := validate(n); err != nil {
		return 0, err
	}
	if n > MaxRecursiveN {
		return 0, errors.Wrapf(errs.InvalidArgument, "n must not exceed %d for the recursive method, got %d", MaxRecursiveN, n)
	}
	return sumRecursive(n), nil
}

func sumRecursive(n int) int {
	if n == 0 {
		return 0
	}
	return n + sumRecursive(n-1)
}

// SumToNFormula uses n(n+1)/2. O(1).
func SumToNFormula(n int) (int, error) {
	if err := validate(n); err != nil {
		return 0, err
	}
	// one of n, n+1 is even, so halve it first to keep the product in range
	if n%2 == 0 {
		return (n / 2) * (n + 1), nil
	}
	return n * ((n + 1) / 2), nil
}

func validate(n int) error {
	if n < 0 {
		return errors.Wrapf(errs.InvalidArgument, "input must be a non-negative integer, got %d", n)
	}
	if n > MaxN {
		return errors.Wrapf(errs.InvalidArgument, "input must not exceed %d, got %d", MaxN, n)
	}
	return nil
}
