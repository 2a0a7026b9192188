package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/modules/wallet/balanceview"
	"github.com/toan5ks1/code-challenge/modules/wallet/datagateway"
)

var _ datagateway.WalletDataGateway = (*Repository)(nil)

func (r *Repository) GetBalances(ctx context.Context, wallet string) ([]balanceview.WalletBalance, error) {
	models, err := r.queries.GetBalancesByWallet(ctx, wallet)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	if len(models) == 0 {
		return nil, errors.WithStack(errs.NotFound)
	}
	balances, err := mapWalletBalanceModelsToType(models)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse wallet balance models")
	}
	return balances, nil
}

func (r *Repository) GetPrices(ctx context.Context) (balanceview.PriceTable, error) {
	models, err := r.queries.GetPrices(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	prices, err := mapTokenPriceModelsToType(models)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token price models")
	}
	return prices, nil
}

func (r *Repository) ReplaceBalances(ctx context.Context, wallet string, balances []balanceview.WalletBalance) error {
	if _, err := r.queries.DeleteBalancesByWallet(ctx, wallet); err != nil {
		return errors.Wrap(err, "error during exec DeleteBalancesByWallet")
	}
	if len(balances) == 0 {
		return nil
	}
	params, err := mapWalletBalancesTypeToParams(wallet, balances)
	if err != nil {
		return errors.Wrap(err, "failed to map wallet balances to params")
	}
	if err := r.queries.BatchCreateBalances(ctx, params); err != nil {
		return errors.Wrap(err, "error during exec BatchCreateBalances")
	}
	return nil
}

func (r *Repository) UpsertPrices(ctx context.Context, prices balanceview.PriceTable) error {
	if len(prices) == 0 {
		return nil
	}
	params, err := mapPriceTableToParams(prices)
	if err != nil {
		return errors.Wrap(err, "failed to map prices to params")
	}
	if err := r.queries.BatchUpsertPrices(ctx, params); err != nil {
		return errors.Wrap(err, "error during exec BatchUpsertPrices")
	}
	return nil
}
