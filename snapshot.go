package rebalance

import (
	"fmt"
	"iter"
	"slices"
)

// Snapshot is the state of the portfolio at the time of the session: the cash
// and the holdings in entry order. Tickers need not be unique.
type Snapshot struct {
	cash     Money
	holdings []Holding
}

// NewSnapshot returns a snapshot of the given cash and holdings.
// Cash must not be negative.
func NewSnapshot(cash Money, holdings ...Holding) (*Snapshot, error) {
	if cash.IsNegative() {
		return nil, fmt.Errorf("cash must not be negative, got %v", cash)
	}
	return &Snapshot{cash: cash, holdings: slices.Clone(holdings)}, nil
}

// Cash returns the cash in the portfolio.
func (s *Snapshot) Cash() Money { return s.cash }

// Len returns the number of holdings.
func (s *Snapshot) Len() int { return len(s.holdings) }

// Holdings returns an iterator over the holdings in entry order.
func (s *Snapshot) Holdings() iter.Seq[Holding] { return slices.Values(s.holdings) }

// Labels returns an iterator over the distinct holding tickers, in entry order.
// The cash label is not included.
func (s *Snapshot) Labels() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]bool)
		for _, h := range s.holdings {
			if seen[h.ticker] {
				continue
			}
			seen[h.ticker] = true
			if !yield(h.ticker) {
				return
			}
		}
	}
}

// count returns the number of holdings with the given ticker.
func (s *Snapshot) count(ticker string) int {
	n := 0
	for _, h := range s.holdings {
		if h.ticker == ticker {
			n++
		}
	}
	return n
}

// StockValue returns the sum of all holding values.
func (s *Snapshot) StockValue() Money {
	total := M(0, s.cash.Currency())
	for _, h := range s.holdings {
		total = total.Add(h.Value())
	}
	return total
}

// TotalValue returns cash plus the value of all holdings.
func (s *Snapshot) TotalValue() Money {
	return s.cash.Add(s.StockValue())
}

// HoldingAllocation is the share of a holding in the portfolio.
type HoldingAllocation struct {
	Holding Holding
	Value   Money
	Percent Percent
}

// Allocation is the current distribution of the portfolio value.
type Allocation struct {
	Total       Money
	Cash        Money
	CashPercent Percent
	Holdings    []HoldingAllocation // same order as the snapshot
}

// CurrentAllocation computes each holding value and percentage of the total,
// and the percentage of cash.
//
// It returns ErrZeroPortfolioValue if the portfolio is worth nothing.
func CurrentAllocation(s *Snapshot) (*Allocation, error) {
	total := s.TotalValue()
	if total.IsZero() {
		return nil, ErrZeroPortfolioValue
	}
	a := &Allocation{
		Total:       total,
		Cash:        s.cash,
		CashPercent: s.cash.Ratio(total),
		Holdings:    make([]HoldingAllocation, 0, len(s.holdings)),
	}
	for _, h := range s.holdings {
		v := h.Value()
		a.Holdings = append(a.Holdings, HoldingAllocation{
			Holding: h,
			Value:   v,
			Percent: v.Ratio(total),
		})
	}
	return a, nil
}
