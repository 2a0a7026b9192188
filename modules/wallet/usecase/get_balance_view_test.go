package usecase

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/modules/wallet/balanceview"
	"github.com/toan5ks1/code-challenge/pkg/logger"
)

type fakeBalanceDg struct {
	balances map[string][]balanceview.WalletBalance
	err      error
}

func (f fakeBalanceDg) GetBalances(_ context.Context, wallet string) ([]balanceview.WalletBalance, error) {
	if f.err != nil {
		return nil, f.err
	}
	balances, ok := f.balances[wallet]
	if !ok {
		return nil, errors.WithStack(errs.NotFound)
	}
	return balances, nil
}

type fakePriceDg struct {
	prices balanceview.PriceTable
	err    error
}

func (f fakePriceDg) GetPrices(context.Context) (balanceview.PriceTable, error) {
	return f.prices, f.err
}

var testBalances = map[string][]balanceview.WalletBalance{
	"alice": {
		{Currency: "NEO", Amount: 4, Blockchain: "Neo"},
		{Currency: "ETH", Amount: 2, Blockchain: "Ethereum"},
		{Currency: "MATIC", Amount: 100, Blockchain: "Polygon"},
		{Currency: "OSMO", Amount: 10.5, Blockchain: "Osmosis"},
		{Currency: "ZIL", Amount: 0, Blockchain: "Zilliqa"},
	},
	"empty": {},
}

func TestGetBalanceView(t *testing.T) {
	ctx := context.Background()
	prices := balanceview.PriceTable{"ETH": 1645.5, "OSMO": 0.4, "MATIC": 1}

	t.Run("success", func(t *testing.T) {
		u := New(fakeBalanceDg{balances: testBalances}, fakePriceDg{prices: prices}, balanceview.Builder{})
		view, err := u.GetBalanceView(ctx, "alice")
		require.NoError(t, err)

		assert.Equal(t, "alice", view.Wallet)
		require.Len(t, view.Rows, 3)
		assert.Equal(t, "OSMO", view.Rows[0].Key())
		assert.Equal(t, "11", view.Rows[0].FormattedAmount)
		assert.Equal(t, "ETH", view.Rows[1].Key())
		assert.Equal(t, "NEO", view.Rows[2].Key())
		assert.Zero(t, view.Rows[2].USDValue)
		assert.InDelta(t, 10.5*0.4+2*1645.5, view.TotalUSDValue, 1e-9)
		assert.Equal(t, "3295.20", view.FormattedTotal)
	})
	t.Run("display_decimals", func(t *testing.T) {
		u := New(fakeBalanceDg{balances: testBalances}, fakePriceDg{prices: prices}, balanceview.Builder{Decimals: 2})
		view, err := u.GetBalanceView(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "10.50", view.Rows[0].FormattedAmount)
	})
	t.Run("unknown_wallet", func(t *testing.T) {
		u := New(fakeBalanceDg{balances: testBalances}, fakePriceDg{prices: prices}, balanceview.Builder{})
		view, err := u.GetBalanceView(ctx, "bob")
		require.NoError(t, err)
		assert.NotNil(t, view.Rows)
		assert.Empty(t, view.Rows)
		assert.Zero(t, view.TotalUSDValue)
		assert.Equal(t, "0.00", view.FormattedTotal)
	})
	t.Run("empty_wallet", func(t *testing.T) {
		u := New(fakeBalanceDg{balances: testBalances}, fakePriceDg{prices: prices}, balanceview.Builder{})
		view, err := u.GetBalanceView(ctx, "empty")
		require.NoError(t, err)
		assert.Empty(t, view.Rows)
	})
	t.Run("missing_wallet_argument", func(t *testing.T) {
		u := New(fakeBalanceDg{balances: testBalances}, fakePriceDg{prices: prices}, balanceview.Builder{})
		_, err := u.GetBalanceView(ctx, "")
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
	t.Run("balance_source_error", func(t *testing.T) {
		u := New(fakeBalanceDg{err: errors.New("connection refused")}, fakePriceDg{prices: prices}, balanceview.Builder{})
		_, err := u.GetBalanceView(ctx, "alice")
		assert.ErrorContains(t, err, "connection refused")
	})
	t.Run("price_source_error", func(t *testing.T) {
		var buf bytes.Buffer
		logger.SetOutput(&buf)
		require.NoError(t, logger.Init(logger.Config{Output: "json"}))
		t.Cleanup(func() {
			logger.SetOutput(os.Stdout)
			_ = logger.Init(logger.Config{})
		})

		u := New(fakeBalanceDg{balances: testBalances}, fakePriceDg{err: errors.New("feed down")}, balanceview.Builder{})
		view, err := u.GetBalanceView(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, view.Rows, 3)
		for _, row := range view.Rows {
			assert.Zero(t, row.USDValue)
		}
		assert.Zero(t, view.TotalUSDValue)
		assert.Contains(t, buf.String(), `"level":"WARN"`)
		assert.Contains(t, buf.String(), "feed down")
	})
}
