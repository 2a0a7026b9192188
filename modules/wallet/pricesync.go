package wallet

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/toan5ks1/code-challenge/core/worker"
	"github.com/toan5ks1/code-challenge/modules/wallet/balanceview"
	"github.com/toan5ks1/code-challenge/modules/wallet/datagateway"
	"github.com/toan5ks1/code-challenge/pkg/logger"
	"github.com/toan5ks1/code-challenge/pkg/logger/slogx"
)

// PriceRefresher fetches the latest prices, bypassing any cache.
type PriceRefresher interface {
	Refresh(ctx context.Context) (balanceview.PriceTable, error)
}

var _ worker.Processor = (*PriceSyncProcessor)(nil)

// PriceSyncProcessor copies prices from a price feed into the wallet database.
type PriceSyncProcessor struct {
	source       PriceRefresher
	walletDg     datagateway.WalletDataGateway
	cleanupFuncs []func(context.Context) error
}

func NewPriceSyncProcessor(source PriceRefresher, walletDg datagateway.WalletDataGateway, cleanupFuncs []func(context.Context) error) *PriceSyncProcessor {
	return &PriceSyncProcessor{
		source:       source,
		walletDg:     walletDg,
		cleanupFuncs: cleanupFuncs,
	}
}

func (p *PriceSyncProcessor) Name() string {
	return "wallet_price_sync"
}

// Process stores one snapshot of the feed. A feed failure is logged and skipped
// so the next round can retry, a database failure stops the worker.
func (p *PriceSyncProcessor) Process(ctx context.Context) (err error) {
	prices, err := p.source.Refresh(ctx)
	if err != nil {
		logger.WarnContext(ctx, "Can't refresh prices, skip this round", slogx.Error(err))
		return nil
	}
	if len(prices) == 0 {
		return nil
	}

	walletDgTx, err := p.walletDg.BeginWalletTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := walletDgTx.Rollback(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to rollback transaction", slogx.Error(err))
		}
	}()

	if err := walletDgTx.UpsertPrices(ctx, prices); err != nil {
		return errors.Wrap(err, "error during UpsertPrices")
	}
	if err := walletDgTx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	logger.InfoContext(ctx, "Synced prices", slogx.Int("currencies", len(prices)))
	return nil
}

func (p *PriceSyncProcessor) Shutdown(ctx context.Context) error {
	var errList []error
	for _, cleanup := range p.cleanupFuncs {
		if err := cleanup(ctx); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.WithStack(errors.Join(errList...))
}
