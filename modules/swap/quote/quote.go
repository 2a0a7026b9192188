// Package quote prices a swap between two currencies.
package quote

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/pkg/decimals"
)

const (
	msgSelectCurrency = "Please select a currency"
	msgPricePositive  = "Price must be greater than 0"
	msgAmountPositive = "Amount must be greater than 0"
)

// Currency is a swappable currency and its unit price in USD.
type Currency struct {
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
}

func (c Currency) validate(field string) []error {
	var errList []error
	if c.Currency == "" {
		errList = append(errList, errors.Newf("%s: %s", field, msgSelectCurrency))
	}
	if !(c.Price > 0) || math.IsInf(c.Price, 1) {
		errList = append(errList, errors.Newf("%s: %s", field, msgPricePositive))
	}
	return errList
}

// Quote is the amount received when swapping AmountToSend of From into To.
type Quote struct {
	From            Currency        `json:"fromCurrency"`
	To              Currency        `json:"toCurrency"`
	AmountToSend    decimal.Decimal `json:"amountToSend"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	AmountToReceive decimal.Decimal `json:"amountToReceive"`

	precision int32
}

// New prices a swap at rate from.Price / to.Price. AmountToReceive is
// rounded to precision decimal places. Invalid input returns an errs.PublicError
// listing every problem.
func New(from, to Currency, amountToSend decimal.Decimal, precision int32) (*Quote, error) {
	var errList []error
	errList = append(errList, from.validate("fromCurrency")...)
	errList = append(errList, to.validate("toCurrency")...)
	if !amountToSend.IsPositive() {
		errList = append(errList, errors.Newf("amountToSend: %s", msgAmountPositive))
	}
	if err := errs.WithPublicMessage(errors.Join(errList...), "validation error"); err != nil {
		return nil, err
	}

	rate := decimal.NewFromFloat(from.Price).DivRound(decimal.NewFromFloat(to.Price), decimals.DefaultDivPrecision)
	return &Quote{
		From:            from,
		To:              to,
		AmountToSend:    amountToSend,
		ExchangeRate:    rate.Round(precision),
		AmountToReceive: amountToSend.Mul(rate).Round(precision),
		precision:       precision,
	}, nil
}

// Reverse swaps the two currencies and prices the same amount the other way.
func (q *Quote) Reverse() *Quote {
	// inputs were validated by New
	reversed, _ := New(q.To, q.From, q.AmountToSend, q.precision)
	return reversed
}
