package httphandler

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/modules/wallet/balanceview"
	"github.com/toan5ks1/code-challenge/modules/wallet/repository/static"
	"github.com/toan5ks1/code-challenge/modules/wallet/usecase"
	"github.com/toan5ks1/code-challenge/pkg/errorhandler"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	repo := static.New(static.Snapshot{
		Wallets: []static.WalletSnapshot{
			{
				Wallet: "alice",
				Balances: []balanceview.WalletBalance{
					{Currency: "ZIL", Amount: 250, Blockchain: "Zilliqa"},
					{Currency: "ETH", Amount: 1.25, Blockchain: "Ethereum"},
					{Currency: "DOGE", Amount: 5, Blockchain: "Dogecoin"},
				},
			},
		},
		Prices: []static.PriceSnapshot{
			{Currency: "ETH", Price: 2000},
			{Currency: "ZIL", Price: 0.02},
		},
	})
	app := fiber.New(fiber.Config{
		ErrorHandler: errorhandler.NewHTTPErrorHandler(),
	})
	require.NoError(t, New(usecase.New(repo, repo, balanceview.Builder{})).Mount(app))
	return app
}

func TestCheckEncodable(t *testing.T) {
	finite := &usecase.BalanceView{
		Wallet: "alice",
		Rows:   []balanceview.DisplayRow{{Currency: "ETH", Amount: 1, USDValue: 2000}},
	}
	assert.NoError(t, checkEncodable(finite))

	overflow := &usecase.BalanceView{
		Wallet:        "whale",
		Rows:          []balanceview.DisplayRow{{Currency: "ETH", Amount: 1e10, USDValue: math.Inf(1)}},
		TotalUSDValue: math.Inf(1),
	}
	err := checkEncodable(overflow)
	assert.ErrorIs(t, err, errs.SomethingWentWrong)
	assert.ErrorContains(t, err, `"ETH"`)

	assert.ErrorIs(t, checkEncodable(&usecase.BalanceView{Wallet: "x", TotalUSDValue: math.NaN()}), errs.SomethingWentWrong)
}

func TestGetBalanceView(t *testing.T) {
	app := newTestApp(t)

	t.Run("success", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/wallet/alice/balances", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body getBalanceViewResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Nil(t, body.Error)
		require.NotNil(t, body.Result)
		assert.Equal(t, "alice", body.Result.Wallet)
		assert.Equal(t, []balanceRow{
			{Key: "ETH", Currency: "ETH", Amount: 1.25, USDValue: 2500, FormattedAmount: "1"},
			{Key: "ZIL", Currency: "ZIL", Amount: 250, USDValue: 5, FormattedAmount: "250"},
		}, body.Result.Rows)
		assert.Equal(t, "2505.00", body.Result.FormattedTotal)
	})
	t.Run("unknown_wallet", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/wallet/bob/balances", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"error":null,"result":{"wallet":"bob","rows":[],"totalUsdValue":0,"formattedTotal":"0.00"}}`, string(raw))
	})
	t.Run("usd_value_overflow", func(t *testing.T) {
		repo := static.New(static.Snapshot{
			Wallets: []static.WalletSnapshot{
				{
					Wallet: "whale",
					Balances: []balanceview.WalletBalance{
						{Currency: "ETH", Amount: 1e10, Blockchain: "Ethereum"},
					},
				},
			},
			Prices: []static.PriceSnapshot{{Currency: "ETH", Price: 1e300}},
		})
		overflowApp := fiber.New(fiber.Config{ErrorHandler: errorhandler.NewHTTPErrorHandler()})
		require.NoError(t, New(usecase.New(repo, repo, balanceview.Builder{})).Mount(overflowApp))

		resp, err := overflowApp.Test(httptest.NewRequest(http.MethodGet, "/v1/wallet/whale/balances", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"error":"Internal Server Error"}`, string(raw))
	})
	t.Run("unknown_route", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/wallet/alice", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
