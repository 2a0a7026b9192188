package cmd

import (
	"encoding/json"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/internal/config"
	swapconfig "github.com/toan5ks1/code-challenge/modules/swap/config"
	"github.com/toan5ks1/code-challenge/modules/swap/quote"
)

type swapCmdOptions struct {
	From      string
	FromPrice float64
	To        string
	ToPrice   float64
	Amount    string
	Reverse   bool
	Precision int32
}

func NewSwapCommand() *cobra.Command {
	opts := &swapCmdOptions{}

	cmd := &cobra.Command{
		Use:     "swap",
		Short:   "Quote a currency swap",
		Example: `challenge swap --from ETH --from-price 1645.93 --to USDC --to-price 1 --amount 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return swapHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.From, "from", "", "Currency to send")
	flags.Float64Var(&opts.FromPrice, "from-price", 0, "USD price of the currency to send")
	flags.StringVar(&opts.To, "to", "", "Currency to receive")
	flags.Float64Var(&opts.ToPrice, "to-price", 0, "USD price of the currency to receive")
	flags.StringVar(&opts.Amount, "amount", "", "Amount to send")
	flags.BoolVar(&opts.Reverse, "reverse", false, "Swap the two currencies before quoting")
	flags.Int32Var(&opts.Precision, "precision", 0, "Decimal places of the quoted amounts. Default is the configured swap precision")

	return cmd
}

func swapHandler(opts *swapCmdOptions, cmd *cobra.Command, _ []string) error {
	amount, err := decimal.NewFromString(opts.Amount)
	if err != nil {
		return errors.Wrapf(errs.InvalidArgument, "invalid amount %q", opts.Amount)
	}
	precision := utils.Default(opts.Precision, utils.Default(config.Load().Modules.Swap.Precision, swapconfig.DefaultPrecision))

	q, err := quote.New(
		quote.Currency{Currency: opts.From, Price: opts.FromPrice},
		quote.Currency{Currency: opts.To, Price: opts.ToPrice},
		amount,
		precision,
	)
	if err != nil {
		return errors.WithStack(err)
	}
	if opts.Reverse {
		q = q.Reverse()
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return errors.WithStack(enc.Encode(q))
}
