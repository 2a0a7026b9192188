package postgres

import (
	"fmt"
	"math"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toan5ks1/code-challenge/modules/wallet/balanceview"
	"github.com/toan5ks1/code-challenge/modules/wallet/repository/postgres/gen"
)

func TestNumericFloat64(t *testing.T) {
	testcases := []float64{0, 1, 0.1, 12.5, -3.25, 1e-7, 123456789.123, 4.2e30, math.Inf(1), math.Inf(-1)}
	for _, tc := range testcases {
		t.Run(fmt.Sprint(tc), func(t *testing.T) {
			n, err := numericFromFloat64(tc)
			require.NoError(t, err)
			actual, err := float64FromNumeric(n)
			require.NoError(t, err)
			assert.Equal(t, tc, actual)
		})
	}
	t.Run("NaN", func(t *testing.T) {
		n, err := numericFromFloat64(math.NaN())
		require.NoError(t, err)
		assert.True(t, n.NaN)
		actual, err := float64FromNumeric(n)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(actual))
	})
	t.Run("null", func(t *testing.T) {
		_, err := float64FromNumeric(pgtype.Numeric{})
		assert.Error(t, err)
	})
}

func TestMapWalletBalances(t *testing.T) {
	balances := []balanceview.WalletBalance{
		{Currency: "OSMO", Amount: 10, Blockchain: "Osmosis"},
		{Currency: "ETH", Amount: 0.5, Blockchain: "Ethereum"},
		{Currency: "NEO", Amount: 0, Blockchain: "Neo"},
	}
	params, err := mapWalletBalancesTypeToParams("w1", balances)
	require.NoError(t, err)
	assert.Equal(t, "w1", params.Wallet)
	assert.Equal(t, []int32{0, 1, 2}, params.PositionArr)
	assert.Equal(t, []string{"OSMO", "ETH", "NEO"}, params.CurrencyArr)
	assert.Equal(t, []string{"Osmosis", "Ethereum", "Neo"}, params.BlockchainArr)
	require.Len(t, params.AmountArr, 3)

	// rows come back out of order, position restores the stored order
	models := make([]gen.WalletBalance, 0, len(balances))
	for _, i := range []int{2, 0, 1} {
		models = append(models, gen.WalletBalance{
			Wallet:     params.Wallet,
			Position:   params.PositionArr[i],
			Currency:   params.CurrencyArr[i],
			Amount:     params.AmountArr[i],
			Blockchain: params.BlockchainArr[i],
		})
	}
	actual, err := mapWalletBalanceModelsToType(models)
	require.NoError(t, err)
	assert.Equal(t, balances, actual)
}

func TestMapPriceTable(t *testing.T) {
	prices := balanceview.PriceTable{"USDC": 1, "ETH": 1645.93, "ATOM": 7.18}
	params, err := mapPriceTableToParams(prices)
	require.NoError(t, err)
	assert.Equal(t, []string{"ATOM", "ETH", "USDC"}, params.CurrencyArr)

	models := make([]gen.TokenPrice, 0, len(params.CurrencyArr))
	for i, currency := range params.CurrencyArr {
		models = append(models, gen.TokenPrice{Currency: currency, Price: params.PriceArr[i]})
	}
	actual, err := mapTokenPriceModelsToType(models)
	require.NoError(t, err)
	assert.Equal(t, prices, actual)
}
