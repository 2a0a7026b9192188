package static

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/modules/wallet/balanceview"
)

func TestLoad(t *testing.T) {
	for _, file := range []string{"testdata/snapshot.yaml", "testdata/snapshot.json"} {
		t.Run(file, func(t *testing.T) {
			ctx := context.Background()
			repo, err := Load(file)
			require.NoError(t, err)

			assert.Equal(t, []string{"0xA11CE", "0xB0B"}, repo.Wallets())

			balances, err := repo.GetBalances(ctx, "0xA11CE")
			require.NoError(t, err)
			assert.Equal(t, []balanceview.WalletBalance{
				{Currency: "OSMO", Amount: 10, Blockchain: "Osmosis"},
				{Currency: "ETH", Amount: 1.5, Blockchain: "Ethereum"},
				{Currency: "MATIC", Amount: 3, Blockchain: "Polygon"},
			}, balances)

			empty, err := repo.GetBalances(ctx, "0xB0B")
			require.NoError(t, err)
			assert.Empty(t, empty)

			_, err = repo.GetBalances(ctx, "0xa11ce")
			assert.ErrorIs(t, err, errs.NotFound)

			prices, err := repo.GetPrices(ctx)
			require.NoError(t, err)
			assert.Equal(t, balanceview.PriceTable{"OSMO": 0.5, "ETH": 1700}, prices)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	assert.ErrorIs(t, err, errs.InvalidArgument)

	_, err = Load("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestRepositoryOwnership(t *testing.T) {
	ctx := context.Background()
	repo := New(Snapshot{
		Wallets: []WalletSnapshot{{Wallet: "w", Balances: []balanceview.WalletBalance{{Currency: "ETH", Amount: 1, Blockchain: "Ethereum"}}}},
		Prices:  []PriceSnapshot{{Currency: "ETH", Price: 2}},
	})

	balances, err := repo.GetBalances(ctx, "w")
	require.NoError(t, err)
	balances[0].Amount = 99

	prices, err := repo.GetPrices(ctx)
	require.NoError(t, err)
	prices["ETH"] = 0

	again, err := repo.GetBalances(ctx, "w")
	require.NoError(t, err)
	assert.Equal(t, 1.0, again[0].Amount)

	againPrices, err := repo.GetPrices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.0, againPrices["ETH"])
}
