package datagateway

import (
	"context"

	"github.com/toan5ks1/code-challenge/modules/wallet/balanceview"
)

type BalanceDataGateway interface {
	// GetBalances returns the balances held by wallet in their stored order.
	// Returns errs.NotFound if the wallet is unknown.
	GetBalances(ctx context.Context, wallet string) ([]balanceview.WalletBalance, error)
}

type PriceDataGateway interface {
	// GetPrices returns the latest unit price of every known currency.
	GetPrices(ctx context.Context) (balanceview.PriceTable, error)
}

type WalletWriterDataGateway interface {
	// ReplaceBalances replaces every balance of wallet, keeping the given order.
	ReplaceBalances(ctx context.Context, wallet string, balances []balanceview.WalletBalance) error
	// UpsertPrices creates or updates the price of each currency in prices.
	UpsertPrices(ctx context.Context, prices balanceview.PriceTable) error
}

type WalletDataGateway interface {
	BalanceDataGateway
	PriceDataGateway
	WalletWriterDataGateway

	// BeginWalletTx returns a new WalletDataGateway with transaction enabled. All write operations performed in this datagateway must be committed to persist changes.
	BeginWalletTx(ctx context.Context) (WalletDataGatewayWithTx, error)
}

type WalletDataGatewayWithTx interface {
	WalletDataGateway
	Tx
}
