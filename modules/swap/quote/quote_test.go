package quote

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/modules/swap/config"
)

func TestNew(t *testing.T) {
	testcases := []struct {
		name            string
		from, to        Currency
		amount          string
		expectedRate    string
		expectedReceive string
	}{
		{
			name:            "simple",
			from:            Currency{Currency: "A", Price: 2},
			to:              Currency{Currency: "B", Price: 4},
			amount:          "10",
			expectedRate:    "0.5",
			expectedReceive: "5",
		},
		{
			name:            "same_currency",
			from:            Currency{Currency: "ETH", Price: 1645.93},
			to:              Currency{Currency: "ETH", Price: 1645.93},
			amount:          "3.25",
			expectedRate:    "1",
			expectedReceive: "3.25",
		},
		{
			name:            "market_prices",
			from:            Currency{Currency: "ETH", Price: 1645.93},
			to:              Currency{Currency: "USDC", Price: 1},
			amount:          "0.5",
			expectedRate:    "1645.93",
			expectedReceive: "822.965",
		},
		{
			name:            "rounded",
			from:            Currency{Currency: "A", Price: 1},
			to:              Currency{Currency: "B", Price: 3},
			amount:          "1",
			expectedRate:    "0.333333333333333333",
			expectedReceive: "0.333333333333333333",
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			quote, err := New(tc.from, tc.to, decimal.RequireFromString(tc.amount), config.DefaultPrecision)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedRate, quote.ExchangeRate.String())
			assert.Equal(t, tc.expectedReceive, quote.AmountToReceive.String())
			assert.Equal(t, tc.amount, quote.AmountToSend.String())
		})
	}
}

func TestQuoteReverse(t *testing.T) {
	quote, err := New(Currency{Currency: "A", Price: 2}, Currency{Currency: "B", Price: 4}, decimal.NewFromInt(10), config.DefaultPrecision)
	require.NoError(t, err)

	reversed := quote.Reverse()
	assert.Equal(t, "B", reversed.From.Currency)
	assert.Equal(t, "A", reversed.To.Currency)
	assert.Equal(t, "2", reversed.ExchangeRate.String())
	assert.Equal(t, "20", reversed.AmountToReceive.String())

	assert.Equal(t, quote.AmountToReceive.String(), reversed.Reverse().AmountToReceive.String())
}

func TestNewValidation(t *testing.T) {
	valid := Currency{Currency: "A", Price: 1}
	testcases := []struct {
		name     string
		from, to Currency
		amount   decimal.Decimal
		messages []string
	}{
		{
			name:     "zero_amount",
			from:     valid,
			to:       valid,
			amount:   decimal.Zero,
			messages: []string{"amountToSend: Amount must be greater than 0"},
		},
		{
			name:     "negative_amount",
			from:     valid,
			to:       valid,
			amount:   decimal.NewFromInt(-1),
			messages: []string{"amountToSend: Amount must be greater than 0"},
		},
		{
			name:     "zero_price",
			from:     valid,
			to:       Currency{Currency: "B"},
			amount:   decimal.NewFromInt(1),
			messages: []string{"toCurrency: Price must be greater than 0"},
		},
		{
			name:     "nan_price",
			from:     Currency{Currency: "A", Price: math.NaN()},
			to:       valid,
			amount:   decimal.NewFromInt(1),
			messages: []string{"fromCurrency: Price must be greater than 0"},
		},
		{
			name:   "everything",
			from:   Currency{},
			to:     Currency{Price: -2},
			amount: decimal.Zero,
			messages: []string{
				"fromCurrency: Please select a currency",
				"fromCurrency: Price must be greater than 0",
				"toCurrency: Please select a currency",
				"toCurrency: Price must be greater than 0",
				"amountToSend: Amount must be greater than 0",
			},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.from, tc.to, tc.amount, config.DefaultPrecision)
			require.Error(t, err)

			var publicErr *errs.PublicError
			require.ErrorAs(t, err, &publicErr)
			for _, msg := range tc.messages {
				assert.Contains(t, publicErr.Message(), msg)
			}
		})
	}
}
