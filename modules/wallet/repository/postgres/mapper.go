package postgres

import (
	"math"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/toan5ks1/code-challenge/modules/wallet/balanceview"
	"github.com/toan5ks1/code-challenge/modules/wallet/repository/postgres/gen"
)

func numericFromFloat64(v float64) (pgtype.Numeric, error) {
	var text string
	switch {
	case math.IsNaN(v):
		text = "NaN"
	case math.IsInf(v, 1):
		text = "Infinity"
	case math.IsInf(v, -1):
		text = "-Infinity"
	default:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	}
	var n pgtype.Numeric
	if err := n.Scan(text); err != nil {
		return pgtype.Numeric{}, errors.Wrapf(err, "can't convert %v to numeric", v)
	}
	return n, nil
}

func float64FromNumeric(n pgtype.Numeric) (float64, error) {
	if !n.Valid {
		return 0, errors.New("numeric is null")
	}
	f, err := n.Float64Value()
	if err != nil {
		return 0, errors.Wrap(err, "can't convert numeric to float64")
	}
	return f.Float64, nil
}

func mapWalletBalanceModelsToType(models []gen.WalletBalance) ([]balanceview.WalletBalance, error) {
	models = slices.Clone(models)
	slices.SortStableFunc(models, func(a, b gen.WalletBalance) int {
		return int(a.Position) - int(b.Position)
	})
	balances := make([]balanceview.WalletBalance, 0, len(models))
	for _, model := range models {
		amount, err := float64FromNumeric(model.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid amount of %s at position %d", model.Currency, model.Position)
		}
		balances = append(balances, balanceview.WalletBalance{
			Currency:   model.Currency,
			Amount:     amount,
			Blockchain: model.Blockchain,
		})
	}
	return balances, nil
}

func mapTokenPriceModelsToType(models []gen.TokenPrice) (balanceview.PriceTable, error) {
	prices := make(balanceview.PriceTable, len(models))
	for _, model := range models {
		price, err := float64FromNumeric(model.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid price of %s", model.Currency)
		}
		prices[model.Currency] = price
	}
	return prices, nil
}

func mapWalletBalancesTypeToParams(wallet string, balances []balanceview.WalletBalance) (gen.BatchCreateBalancesParams, error) {
	params := gen.BatchCreateBalancesParams{
		Wallet:        wallet,
		PositionArr:   make([]int32, 0, len(balances)),
		CurrencyArr:   make([]string, 0, len(balances)),
		AmountArr:     make([]pgtype.Numeric, 0, len(balances)),
		BlockchainArr: make([]string, 0, len(balances)),
	}
	for i, balance := range balances {
		amount, err := numericFromFloat64(balance.Amount)
		if err != nil {
			return gen.BatchCreateBalancesParams{}, errors.WithStack(err)
		}
		params.PositionArr = append(params.PositionArr, int32(i))
		params.CurrencyArr = append(params.CurrencyArr, balance.Currency)
		params.AmountArr = append(params.AmountArr, amount)
		params.BlockchainArr = append(params.BlockchainArr, balance.Blockchain)
	}
	return params, nil
}

// mapPriceTableToParams orders the currencies so concurrent upserts lock rows in the same order.
func mapPriceTableToParams(prices balanceview.PriceTable) (gen.BatchUpsertPricesParams, error) {
	currencies := make([]string, 0, len(prices))
	for currency := range prices {
		currencies = append(currencies, currency)
	}
	slices.Sort(currencies)

	params := gen.BatchUpsertPricesParams{
		CurrencyArr: currencies,
		PriceArr:    make([]pgtype.Numeric, 0, len(currencies)),
	}
	for _, currency := range currencies {
		price, err := numericFromFloat64(prices[currency])
		if err != nil {
			return gen.BatchUpsertPricesParams{}, errors.WithStack(err)
		}
		params.PriceArr = append(params.PriceArr, price)
	}
	return params, nil
}
