package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/rebalance"
)

// SummaryText writes the holdings, the cash and the total value.
func SummaryText(w io.Writer, s *rebalance.Snapshot) {
	fmt.Fprintln(w, "\n--- Portfolio Summary ---")
	for h := range s.Holdings() {
		fmt.Fprintln(w, h)
	}
	fmt.Fprintf(w, "\nCash in portfolio: %v\n", s.Cash())
	fmt.Fprintf(w, "Total portfolio value: %v\n", s.TotalValue())
}

// AllocationText writes the current percentage of each holding and of cash.
func AllocationText(w io.Writer, a *rebalance.Allocation) {
	fmt.Fprintln(w, "\n--- Current Portfolio Allocation ---")
	for _, h := range a.Holdings {
		fmt.Fprintf(w, "%s: %v\n", h.Holding.Ticker(), h.Percent)
	}
	fmt.Fprintf(w, "%s: %v\n\n", rebalance.CashLabel, a.CashPercent)
}

// NoAssetsText writes the notice for a portfolio worth nothing.
func NoAssetsText(w io.Writer) {
	fmt.Fprintln(w, "\nNo assets or cash in the portfolio.")
}

// AllocationSumText writes the notice for a target that does not add up to 100%.
func AllocationSumText(w io.Writer, e *rebalance.AllocationSumError) {
	fmt.Fprintf(w, "\nError: The sum of allocations (%v) must be 100%%. Exiting.\n", e.Sum)
}

// InstructionText returns the one line instruction for a holding.
func InstructionText(i rebalance.Instruction) string {
	switch i.Action {
	case rebalance.Buy:
		return fmt.Sprintf("Buy %v shares of %s", i.Shares(), i.Ticker)
	case rebalance.Sell:
		return fmt.Sprintf("Sell %v shares of %s", i.Shares(), i.Ticker)
	case rebalance.Skip:
		return fmt.Sprintf("Skipping rebalancing for %s due to zero price.", i.Ticker)
	default:
		return fmt.Sprintf("No change for %s", i.Ticker)
	}
}

// CashText returns the cash reconciliation line.
func CashText(p *rebalance.Plan) string {
	action, amount := p.CashAction()
	switch action {
	case rebalance.CashShortfall:
		return fmt.Sprintf("You need an additional %v in cash.", amount)
	case rebalance.CashSurplus:
		return fmt.Sprintf("You will have an extra %v in cash (above desired).", amount)
	default:
		return "No change to cash required."
	}
}

// PlanText writes the rebalance instructions.
func PlanText(w io.Writer, p *rebalance.Plan) {
	fmt.Fprintln(w, "\n--- Rebalance Instructions ---")
	for _, i := range p.Instructions {
		fmt.Fprintln(w, InstructionText(i))
	}
	fmt.Fprintln(w, CashText(p))
}
