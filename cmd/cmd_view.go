package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/internal/config"
	"github.com/toan5ks1/code-challenge/modules/wallet"
	"github.com/toan5ks1/code-challenge/modules/wallet/balanceview"
	walletconfig "github.com/toan5ks1/code-challenge/modules/wallet/config"
	"github.com/toan5ks1/code-challenge/modules/wallet/repository/static"
	"github.com/toan5ks1/code-challenge/modules/wallet/usecase"
	"github.com/toan5ks1/code-challenge/pkg/logger"
	"github.com/toan5ks1/code-challenge/pkg/logger/slogx"
)

type viewCmdOptions struct {
	Snapshot string
	Decimals int32
}

func NewViewCommand() *cobra.Command {
	opts := &viewCmdOptions{}

	cmd := &cobra.Command{
		Use:   "view [WALLET...]",
		Short: "Print the balance view of wallets",
		Long: `Print the sorted balance rows of each wallet with their USD values.
Without --snapshot the configured wallet data sources are used and at least one wallet is required.
With --snapshot and no wallet arguments every wallet of the snapshot is printed.`,
		Example: `challenge view --snapshot ./snapshot.yaml 0xA11CE`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viewHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Snapshot, "snapshot", "", "Read balances and prices from a json or yaml snapshot file")
	flags.Int32Var(&opts.Decimals, "decimals", -1, "Override the number of fraction digits of formatted amounts")

	return cmd
}

func viewHandler(opts *viewCmdOptions, cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	walletConf := config.Load().Modules.Wallet
	if opts.Snapshot != "" {
		walletConf.Database = walletconfig.DatabaseStatic
		walletConf.PriceSource = walletconfig.PriceSourceStatic
		walletConf.Snapshot = opts.Snapshot
	}
	if opts.Decimals >= 0 {
		walletConf.DisplayDecimals = opts.Decimals
	}

	wallets := args
	if len(wallets) == 0 {
		if opts.Snapshot == "" {
			return errors.Wrap(errs.InvalidArgument, "at least one wallet is required")
		}
		snapshot, err := static.Load(opts.Snapshot)
		if err != nil {
			return errors.WithStack(err)
		}
		wallets = snapshot.Wallets()
	}

	sources, err := wallet.NewSources(ctx, walletConf)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if err := sources.Close(ctx); err != nil {
			logger.WarnContext(ctx, "Failed to close wallet sources", slogx.Error(err))
		}
	}()

	uc := usecase.New(sources.Balances, sources.Prices, balanceview.Builder{Decimals: walletConf.DisplayDecimals})
	out := cmd.OutOrStdout()
	for i, w := range wallets {
		view, err := uc.GetBalanceView(ctx, w)
		if err != nil {
			return errors.Wrapf(err, "can't build balance view of wallet %q", w)
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		printBalanceView(out, view)
	}
	return nil
}

func printBalanceView(out io.Writer, view *usecase.BalanceView) {
	title := color.New(color.FgCyan, color.Bold)
	total := color.New(color.FgGreen, color.Bold)

	title.Fprintf(out, "Wallet %s\n", view.Wallet)
	if len(view.Rows) == 0 {
		color.New(color.FgYellow).Fprintln(out, "  no balances")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	// escape codes would break the column widths, so the table itself is plain
	fmt.Fprintln(tw, "Currency\tAmount\tUSD Value\t")
	for _, row := range view.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t\n", row.Currency, row.FormattedAmount, row.USDValue)
	}
	tw.Flush()
	total.Fprintf(out, "Total: %s USD\n", view.FormattedTotal)
}
