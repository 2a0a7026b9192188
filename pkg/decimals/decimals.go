package decimals

import (
	"math"
	"math/big"
	"strconv"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/shopspring/decimal"
)

const (
	DefaultDivPrecision = 36

	// MaxFixedPlaces is the largest number of fraction digits ToFixed renders.
	MaxFixedPlaces = 100

	// exponentialThreshold is the magnitude from which ToFixed falls back to
	// exponential notation.
	exponentialThreshold = 1e21
)

func init() {
	decimal.DivisionPrecision = DefaultDivPrecision
}

// MustFromString convert string to decimal.Decimal. Panic if error
// string must be a valid number, not NaN, Inf or empty string.
func MustFromString(s string) decimal.Decimal {
	return utils.Must(decimal.NewFromString(s))
}

// FromFloat converts a finite float64 to the decimal holding its exact binary value.
// Unlike decimal.NewFromFloat it does not shorten 0.1 to "0.1"; the result is
// 0.1000000000000000055511151231257827021181583404541015625.
// NaN and infinities return zero and false.
func FromFloat(v float64) (decimal.Decimal, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, false
	}
	if v == 0 {
		return decimal.Zero, true
	}

	// v = mant * 2^exp with mant an integer of at most 53 bits
	f := new(big.Float).SetFloat64(v)
	mant := new(big.Float)
	exp := f.MantExp(mant) - 53
	mantInt, _ := mant.SetMantExp(mant, 53).Int(nil)

	if exp >= 0 {
		return decimal.NewFromBigInt(mantInt.Lsh(mantInt, uint(exp)), 0), true
	}

	// mant / 2^k == mant * 5^k / 10^k
	k := int64(-exp)
	fives := new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil)
	return decimal.NewFromBigInt(mantInt.Mul(mantInt, fives), -int32(k)), true
}

// ToFixed formats v with exactly places fraction digits, the way ECMAScript
// Number.prototype.toFixed does: the exact binary value is rounded half away
// from zero, no grouping separators are added, NaN renders as "NaN",
// infinities as "Infinity"/"-Infinity" and magnitudes of 1e21 or more in
// exponential notation. places is clamped to [0, MaxFixedPlaces].
func ToFixed(v float64, places int32) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.Abs(v) >= exponentialThreshold:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	places = max(0, min(places, MaxFixedPlaces))

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	d, _ := FromFloat(v)
	return sign + d.StringFixed(places)
}
