// Package static serves wallet balances and prices from an in-memory snapshot,
// usually loaded from a json or yaml file.
package static

import (
	"context"
	"maps"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/modules/wallet/balanceview"
	"github.com/toan5ks1/code-challenge/modules/wallet/datagateway"
)

// Snapshot is the file format of a static data source.
// Lists are used instead of maps because config keys are case-insensitive.
type Snapshot struct {
	Wallets []WalletSnapshot `mapstructure:"wallets"`
	Prices  []PriceSnapshot  `mapstructure:"prices"`
}

type WalletSnapshot struct {
	Wallet   string                      `mapstructure:"wallet"`
	Balances []balanceview.WalletBalance `mapstructure:"balances"`
}

type PriceSnapshot struct {
	Currency string  `mapstructure:"currency"`
	Price    float64 `mapstructure:"price"`
}

var (
	_ datagateway.BalanceDataGateway = (*Repository)(nil)
	_ datagateway.PriceDataGateway   = (*Repository)(nil)
)

type Repository struct {
	wallets map[string][]balanceview.WalletBalance
	order   []string
	prices  balanceview.PriceTable
}

// Load reads a snapshot file. The format is chosen by the file extension.
func Load(path string) (*Repository, error) {
	if path == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "snapshot file is required")
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "can't read snapshot file %q", path)
	}
	var snapshot Snapshot
	if err := v.Unmarshal(&snapshot); err != nil {
		return nil, errors.Wrapf(err, "can't decode snapshot file %q", path)
	}
	return New(snapshot), nil
}

// New builds a repository from snapshot. A wallet listed twice keeps its last
// entry and a currency priced twice keeps its last price.
func New(snapshot Snapshot) *Repository {
	r := &Repository{
		wallets: make(map[string][]balanceview.WalletBalance, len(snapshot.Wallets)),
		prices:  make(balanceview.PriceTable, len(snapshot.Prices)),
	}
	for _, w := range snapshot.Wallets {
		if _, ok := r.wallets[w.Wallet]; !ok {
			r.order = append(r.order, w.Wallet)
		}
		r.wallets[w.Wallet] = slices.Clone(w.Balances)
	}
	for _, p := range snapshot.Prices {
		r.prices[p.Currency] = p.Price
	}
	return r
}

// Wallets returns the wallets of the snapshot in file order.
func (r *Repository) Wallets() []string {
	return slices.Clone(r.order)
}

func (r *Repository) GetBalances(_ context.Context, wallet string) ([]balanceview.WalletBalance, error) {
	balances, ok := r.wallets[wallet]
	if !ok {
		return nil, errors.WithStack(errs.NotFound)
	}
	return slices.Clone(balances), nil
}

func (r *Repository) GetPrices(_ context.Context) (balanceview.PriceTable, error) {
	return maps.Clone(r.prices), nil
}
