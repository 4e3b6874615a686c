package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance/console"
	"github.com/google/subcommands"
)

type sessionCmd struct{}

func (*sessionCmd) Name() string     { return "session" }
func (*sessionCmd) Synopsis() string { return "interactively rebalance a portfolio (default command)" }
func (*sessionCmd) Usage() string {
	return `rbl session

  Prompts for the cash and the stock positions of the portfolio, displays the
  current allocation, then optionally prompts for the desired allocation and
  displays the shares to buy or sell to reach it.

  Prices are fetched from the price sources (see -source), or entered
  manually when unavailable.
`
}

func (c *sessionCmd) SetFlags(f *flag.FlagSet) {}

func (c *sessionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return RunSession(ctx)
}

// RunSession runs the interactive session on the standard input and output.
func RunSession(ctx context.Context) subcommands.ExitStatus {
	prices, err := PriceSource()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s := console.NewSession(os.Stdin, os.Stdout, prices, *currency)
	if err := s.Run(ctx); err != nil {
		if errors.Is(err, console.ErrInputClosed) {
			fmt.Fprintln(os.Stderr, "Input closed, exiting.")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
