package cmd

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/pkg/summation"
)

type sumCmdOptions struct {
	Method string
}

func NewSumCommand() *cobra.Command {
	opts := &sumCmdOptions{}

	cmd := &cobra.Command{
		Use:     "sum N",
		Short:   "Print the sum 0 + 1 + ... + N",
		Args:    cobra.ExactArgs(1),
		Example: `challenge sum 5 --method formula`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sumHandler(opts, cmd, args)
		},
	}

	methods := lo.Map(summation.Methods, func(m summation.Method, _ int) string { return string(m) })
	flags := cmd.Flags()
	flags.StringVar(&opts.Method, "method", "", fmt.Sprintf("Summation method, one of %q. Every method is printed when empty", methods))

	return cmd
}

func sumHandler(opts *sumCmdOptions, cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Wrapf(errs.InvalidArgument, "N must be an integer, got %q", args[0])
	}

	methods := summation.Methods
	if opts.Method != "" {
		methods = []summation.Method{summation.Method(opts.Method)}
	}
	out := cmd.OutOrStdout()
	for _, m := range methods {
		sum, err := summation.SumToN(m, n)
		if err != nil {
			return errors.Wrapf(err, "can't sum to %d with %s method", n, m)
		}
		if len(methods) == 1 {
			fmt.Fprintln(out, sum)
			continue
		}
		fmt.Fprintf(out, "%s: %d\n", m, sum)
	}
	return nil
}
