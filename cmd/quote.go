package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance"
	"github.com/google/subcommands"
)

type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "display the current price of tickers" }
func (*quoteCmd) Usage() string {
	return `rbl quote <ticker>...

  Looks up each ticker in the price sources (see -source) and prints its
  current price, or "unavailable".
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one ticker is required")
		return subcommands.ExitUsageError
	}
	src, err := PriceSource()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	prices, err := rebalance.FetchPrices(ctx, src, f.Args()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, ticker := range f.Args() {
		p, ok := prices[ticker]
		if !ok {
			fmt.Printf("%s: unavailable\n", ticker)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("%s: %v\n", ticker, rebalance.M(p, *currency))
	}
	return status
}
