package cmd

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/internal/config"
	"github.com/toan5ks1/code-challenge/modules/wallet"
	walletconfig "github.com/toan5ks1/code-challenge/modules/wallet/config"
	"github.com/toan5ks1/code-challenge/modules/wallet/repository/static"
	"github.com/toan5ks1/code-challenge/pkg/logger"
	"github.com/toan5ks1/code-challenge/pkg/logger/slogx"
)

type importCmdOptions struct {
	Snapshot   string
	SkipPrices bool
}

func NewImportCommand() *cobra.Command {
	opts := &importCmdOptions{}

	cmd := &cobra.Command{
		Use:     "import",
		Short:   "Import a wallet snapshot into the wallet database",
		Long:    `Replace the balances of every wallet of a json or yaml snapshot and upsert its prices into Postgres.`,
		Example: `challenge import --snapshot ./snapshot.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return importHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Snapshot, "snapshot", "", "Snapshot file to import")
	flags.BoolVar(&opts.SkipPrices, "skip-prices", false, "Import balances only")

	return cmd
}

func importHandler(opts *importCmdOptions, cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if opts.Snapshot == "" {
		return errors.Wrap(errs.InvalidArgument, "--snapshot is required")
	}
	snapshot, err := static.Load(opts.Snapshot)
	if err != nil {
		return errors.WithStack(err)
	}
	prices, err := snapshot.GetPrices(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	walletConf := config.Load().Modules.Wallet
	walletConf.Database = walletconfig.DatabasePostgres
	walletConf.PriceSource = walletconfig.PriceSourceDatabase
	sources, err := wallet.NewSources(ctx, walletConf)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if err := sources.Close(ctx); err != nil {
			logger.WarnContext(ctx, "Failed to close wallet sources", slogx.Error(err))
		}
	}()

	tx, err := sources.Wallet.BeginWalletTx(ctx)
	if err != nil {
		return errors.Wrap(err, "can't begin wallet transaction")
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil {
			logger.WarnContext(ctx, "Failed to rollback wallet transaction", slogx.Error(err))
		}
	}()

	wallets := snapshot.Wallets()
	for _, w := range wallets {
		balances, err := snapshot.GetBalances(ctx, w)
		if err != nil {
			return errors.WithStack(err)
		}
		if err := tx.ReplaceBalances(ctx, w, balances); err != nil {
			return errors.Wrapf(err, "can't import balances of wallet %q", w)
		}
	}
	if !opts.SkipPrices {
		if err := tx.UpsertPrices(ctx, prices); err != nil {
			return errors.Wrap(err, "can't import prices")
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "can't commit wallet transaction")
	}

	logger.InfoContext(ctx, "Imported wallet snapshot",
		slogx.String("snapshot", opts.Snapshot),
		slog.Int("wallets", len(wallets)),
		slog.Int("prices", len(prices)),
		slog.Bool("skip_prices", opts.SkipPrices),
	)
	return nil
}
