package cmd

import (
	"context"
	"errors"
	"flag"
	"strings"
	"testing"

	"github.com/etnz/rebalance"
	"github.com/etnz/rebalance/yahoo"
	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

func TestTargetFlag(t *testing.T) {
	c := &planCmd{}
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	c.SetFlags(fs)
	if err := fs.Parse([]string{"-t", "AAA=50,BBB=20%", "-t", "cash=30", "AAA:1"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := targetFlag{"AAA": 50, "BBB": 20, rebalance.CashLabel: 30}
	if diff := cmp.Diff(want, c.target); diff != "" {
		t.Errorf("target mismatch (-want +got):\n%s", diff)
	}
	if got, want := c.target.String(), "AAA=50,BBB=20,Cash=30"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	for _, bad := range []string{"AAA", "=50", "AAA=abc", "AAA=101"} {
		if err := make(targetFlag).Set(bad); err == nil {
			t.Errorf("Set(%q) error = nil, want an error", bad)
		}
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		arg       string
		ticker    string
		quantity  int
		price     string // empty when not given
		wantError bool
	}{
		{arg: "AAA:10@100", ticker: "AAA", quantity: 10, price: "100"},
		{arg: "BBB:5@20.5", ticker: "BBB", quantity: 5, price: "20.5"},
		{arg: "VTI:3", ticker: "VTI", quantity: 3},
		{arg: "AAA", wantError: true},
		{arg: "AAA:0@1", wantError: true},
		{arg: "AAA:1.5@1", wantError: true},
		{arg: "AAA:1@-3", wantError: true},
		{arg: "AAA:1@", wantError: true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parsePosition(tt.arg)
			if tt.wantError {
				if err == nil {
					t.Errorf("parsePosition(%q) error = nil, want an error", tt.arg)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePosition(%q) unexpected error: %v", tt.arg, err)
			}
			if got.ticker != tt.ticker || !got.quantity.Equal(rebalance.Q(tt.quantity)) {
				t.Errorf("parsePosition(%q) = %s %v, want %s %d", tt.arg, got.ticker, got.quantity, tt.ticker, tt.quantity)
			}
			switch {
			case tt.price == "" && got.price != nil:
				t.Errorf("parsePosition(%q) price = %v, want none", tt.arg, got.price)
			case tt.price != "" && (got.price == nil || !got.price.Equal(decimal.RequireFromString(tt.price))):
				t.Errorf("parsePosition(%q) price = %v, want %s", tt.arg, got.price, tt.price)
			}
		})
	}
}

func TestNewPriceSource(t *testing.T) {
	t.Setenv(rebalance.EODHDAPIKeyEnv, "")
	t.Setenv("PATH", t.TempDir())

	src, err := newPriceSource("none")
	if err != nil {
		t.Fatalf("newPriceSource(none) error = %v", err)
	}
	if _, ok := src.(rebalance.Sources); ok {
		t.Errorf("newPriceSource(none) = %#v, want NoPrices", src)
	}
	if _, err := src.Price(context.Background(), "AAA"); !errors.Is(err, rebalance.ErrPriceUnavailable) {
		t.Errorf("newPriceSource(none).Price() error = %v, want %v", err, rebalance.ErrPriceUnavailable)
	}

	src, err = newPriceSource("tradegate, yahoo")
	if err != nil {
		t.Fatalf("newPriceSource() error = %v", err)
	}
	srcs, ok := src.(rebalance.Sources)
	if !ok || len(srcs) != 2 {
		t.Fatalf("newPriceSource() = %#v, want two sources", src)
	}
	if _, ok := srcs[0].(*rebalance.Tradegate); !ok {
		t.Errorf("first source = %T, want *rebalance.Tradegate", srcs[0])
	}
	if _, ok := srcs[1].(*yahoo.Source); !ok {
		t.Errorf("second source = %T, want *yahoo.Source", srcs[1])
	}

	if _, err := newPriceSource("eodhd"); err == nil {
		t.Error("newPriceSource(eodhd) without a key error = nil, want an error")
	}
	if _, err := newPriceSource("nosuchsource"); err == nil || !strings.Contains(err.Error(), "nosuchsource") {
		t.Errorf("newPriceSource(nosuchsource) error = %v, want unknown source", err)
	}
}

func TestPlanReport(t *testing.T) {
	h, err := rebalance.NewHolding("AAA", rebalance.Q(10), rebalance.M(100, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	snapshot, err := rebalance.NewSnapshot(rebalance.M(1000, "USD"), h)
	if err != nil {
		t.Fatal(err)
	}
	empty, err := rebalance.NewSnapshot(rebalance.M(0, "USD"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		snapshot *rebalance.Snapshot
		target   targetFlag
		want     subcommands.ExitStatus
		contains string
	}{
		{"allocation only", snapshot, targetFlag{}, subcommands.ExitSuccess, "AAA: 50.00%"},
		{"on target", snapshot, targetFlag{"AAA": 50, rebalance.CashLabel: 50}, subcommands.ExitSuccess, "No change for AAA"},
		{"bad sum", snapshot, targetFlag{"AAA": 50, rebalance.CashLabel: 40}, subcommands.ExitFailure, "The sum of allocations (90.00%) must be 100%"},
		{"missing label", snapshot, targetFlag{"AAA": 100}, subcommands.ExitUsageError, ""},
		{"no assets", empty, targetFlag{}, subcommands.ExitFailure, "No assets or cash in the portfolio."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &planCmd{target: tt.target, format: "text"}
			var b strings.Builder
			if got := c.report(&b, tt.snapshot); got != tt.want {
				t.Errorf("report() = %v, want %v", got, tt.want)
			}
			if !strings.Contains(b.String(), tt.contains) {
				t.Errorf("report() output does not contain %q:\n%s", tt.contains, b.String())
			}
		})
	}
}
