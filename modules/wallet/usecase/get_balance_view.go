package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/modules/wallet/balanceview"
	"github.com/toan5ks1/code-challenge/pkg/decimals"
	"github.com/toan5ks1/code-challenge/pkg/logger"
	"github.com/toan5ks1/code-challenge/pkg/logger/slogx"
	"golang.org/x/sync/errgroup"
)

// BalanceView is the display model of a whole wallet.
type BalanceView struct {
	Wallet         string
	Rows           []balanceview.DisplayRow
	TotalUSDValue  float64
	FormattedTotal string
}

// GetBalanceView builds the ordered display rows of wallet.
// An unknown or empty wallet yields an empty view. A failing price source
// degrades to an empty price table, so every USD value is 0.
func (u *Usecase) GetBalanceView(ctx context.Context, wallet string) (*BalanceView, error) {
	if wallet == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "wallet is required")
	}

	var (
		balances []balanceview.WalletBalance
		prices   balanceview.PriceTable
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		balances, err = u.balanceDg.GetBalances(gctx, wallet)
		if err != nil {
			if errors.Is(err, errs.NotFound) {
				balances = nil
				return nil
			}
			return errors.Wrap(err, "error during GetBalances")
		}
		return nil
	})
	group.Go(func() error {
		var err error
		prices, err = u.priceDg.GetPrices(gctx)
		if err != nil {
			if ctx.Err() == nil {
				logger.WarnContext(ctx, "Can't get prices, use empty price table",
					slogx.Wallet(wallet),
					slogx.Error(err),
				)
			}
			prices = nil
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, errors.WithStack(err)
	}

	rows := u.builder.Build(balances, prices)
	var total float64
	for _, row := range rows {
		total += row.USDValue
	}
	return &BalanceView{
		Wallet:         wallet,
		Rows:           rows,
		TotalUSDValue:  total,
		FormattedTotal: decimals.ToFixed(total, 2),
	}, nil
}
