package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/rebalance"
	"github.com/etnz/rebalance/console"
	"github.com/etnz/rebalance/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// targetFlag collects LABEL=PCT pairs from repeated or comma separated -t flags.
type targetFlag rebalance.Target

func (t targetFlag) String() string {
	var parts []string
	for _, label := range rebalance.Target(t).Labels() {
		parts = append(parts, fmt.Sprintf("%s=%v", label, float64(t[label])))
	}
	return strings.Join(parts, ",")
}

func (t targetFlag) Set(value string) error {
	for _, pair := range strings.Split(value, ",") {
		label, pct, ok := strings.Cut(pair, "=")
		label = strings.TrimSpace(label)
		if !ok || label == "" {
			return fmt.Errorf("invalid allocation %q, expecting LABEL=PERCENT", pair)
		}
		p, err := console.ParsePercent(pct)
		if err != nil {
			return err
		}
		if strings.EqualFold(label, rebalance.CashLabel) {
			label = rebalance.CashLabel
		}
		t[label] = p
	}
	return nil
}

// position is a holding as written on the command line: TICKER:QTY[@PRICE].
type position struct {
	ticker   string
	quantity rebalance.Quantity
	price    *decimal.Decimal // nil if it must be fetched
}

func parsePosition(arg string) (position, error) {
	var p position
	ticker, rest, ok := strings.Cut(arg, ":")
	if !ok {
		return p, fmt.Errorf("invalid position %q, expecting TICKER:QUANTITY[@PRICE]", arg)
	}
	p.ticker = strings.TrimSpace(ticker)
	qty, price, hasPrice := strings.Cut(rest, "@")
	var err error
	if p.quantity, err = console.ParsePositiveInt(qty); err != nil {
		return p, fmt.Errorf("invalid quantity in %q: %w", arg, err)
	}
	if hasPrice {
		d, err := console.ParseNonNegative(price)
		if err != nil {
			return p, fmt.Errorf("invalid price in %q: %w", arg, err)
		}
		p.price = &d
	}
	return p, nil
}

// planCmd holds the flags for the 'plan' subcommand.
type planCmd struct {
	cash   string
	target targetFlag
	format string
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "compute rebalance instructions without prompting" }
func (*planCmd) Usage() string {
	return `rbl plan [-cash <amount>] [-t <label>=<percent>...] [-format md|text] <ticker>:<quantity>[@<price>]...

  Displays the portfolio allocation and, if a target allocation is given, the
  shares to buy or sell to reach it.

  Each position is a ticker, a positive number of shares and optionally the
  price per share. Missing prices are fetched from the price sources.

  The target allocation needs one percentage per ticker and one for "Cash",
  adding up to 100.

Example:
  rbl plan -cash 1000 -t AAA=50,Cash=50 AAA:10@100
`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) {
	c.target = make(targetFlag)
	f.StringVar(&c.cash, "cash", "0", "Amount of cash in the portfolio")
	f.Var(c.target, "t", "Target allocation as `label=percent`, repeated or comma separated")
	f.StringVar(&c.format, "format", "md", "Output format: md or text")
}

func (c *planCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.format != "md" && c.format != "text" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	cashValue, err := console.ParseNonNegative(c.cash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid cash: %v\n", err)
		return subcommands.ExitUsageError
	}
	var positions []position
	for _, arg := range f.Args() {
		p, err := parsePosition(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		positions = append(positions, p)
	}

	holdings, err := c.holdings(ctx, positions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	snapshot, err := rebalance.NewSnapshot(rebalance.M(cashValue, *currency), holdings...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var b strings.Builder
	status := c.report(&b, snapshot)
	if c.format == "md" {
		printMarkdown(b.String())
	} else {
		fmt.Print(b.String())
	}
	return status
}

// holdings builds the holdings, fetching the missing prices.
func (c *planCmd) holdings(ctx context.Context, positions []position) ([]rebalance.Holding, error) {
	var missing []string
	for _, p := range positions {
		if p.price == nil {
			missing = append(missing, p.ticker)
		}
	}
	var prices map[string]decimal.Decimal
	if len(missing) > 0 {
		src, err := PriceSource()
		if err != nil {
			return nil, err
		}
		if prices, err = rebalance.FetchPrices(ctx, src, missing...); err != nil {
			return nil, err
		}
	}

	holdings := make([]rebalance.Holding, 0, len(positions))
	for _, p := range positions {
		price := p.price
		if price == nil {
			fetched, ok := prices[p.ticker]
			if !ok {
				return nil, fmt.Errorf("no price for %s, give it as %s:%v@<price>", p.ticker, p.ticker, p.quantity)
			}
			price = &fetched
		}
		h, err := rebalance.NewHolding(p.ticker, p.quantity, rebalance.M(*price, *currency))
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

// report writes the report in the selected format and returns the exit status.
func (c *planCmd) report(b *strings.Builder, snapshot *rebalance.Snapshot) subcommands.ExitStatus {
	text := c.format == "text"

	allocation, err := rebalance.CurrentAllocation(snapshot)
	if errors.Is(err, rebalance.ErrZeroPortfolioValue) {
		if text {
			renderer.SummaryText(b, snapshot)
			renderer.NoAssetsText(b)
		} else {
			b.WriteString(renderer.ReportMarkdown(snapshot, nil, nil))
		}
		return subcommands.ExitFailure
	}

	var plan *rebalance.Plan
	var sumErr *rebalance.AllocationSumError
	if len(c.target) > 0 {
		plan, err = rebalance.Rebalance(snapshot, rebalance.Target(c.target))
		if err != nil && !errors.As(err, &sumErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	if text {
		renderer.SummaryText(b, snapshot)
		renderer.AllocationText(b, allocation)
		if plan != nil {
			renderer.PlanText(b, plan)
		}
	} else {
		b.WriteString(renderer.ReportMarkdown(snapshot, allocation, plan))
	}
	if sumErr != nil {
		renderer.AllocationSumText(b, sumErr)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
