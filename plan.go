package rebalance

import "github.com/shopspring/decimal"

// Action is what to do with a holding.
type Action int

const (
	Hold Action = iota // no change
	Buy
	Sell
	Skip // priceless holding, cannot be traded
)

func (a Action) String() string {
	switch a {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	case Skip:
		return "skip"
	default:
		return "hold"
	}
}

// Instruction is the computed trade for one holding.
type Instruction struct {
	Ticker       string
	Target       Percent  // percent of the total assigned to this holding
	Quantity     Quantity // current shares
	Price        Money
	DesiredValue Money
	TargetShares Quantity // zero when skipped
	Delta        Quantity // signed, target - current
	CashFlow     Money    // Delta × Price, subtracted from cash
	CashAfter    Money    // running cash once this instruction is applied
	Action       Action
}

// Shares returns the absolute number of shares to buy or sell.
func (i Instruction) Shares() Quantity {
	if i.Delta.IsNegative() {
		return i.Delta.Neg()
	}
	return i.Delta
}

// CashAction is the outcome of the cash reconciliation.
type CashAction int

const (
	CashNoChange  CashAction = iota
	CashShortfall            // cash must be added
	CashSurplus              // cash is left above the target
)

// Plan is a complete set of rebalance instructions.
type Plan struct {
	Total        Money
	Cash         Money // cash before any trade
	Instructions []Instruction
	CashTarget   Percent
	DesiredCash  Money
	NewCash      Money // cash after all trades
	CashDiff     Money // DesiredCash - NewCash
}

// cashTolerance under which the cash difference is ignored.
var cashTolerance = decimal.New(1, -6)

// CashAction classifies the cash difference, and returns its magnitude.
func (p *Plan) CashAction() (CashAction, Money) {
	switch {
	case p.CashDiff.Decimal().Abs().LessThan(cashTolerance):
		return CashNoChange, M(0, p.CashDiff.Currency())
	case p.CashDiff.IsPositive():
		return CashShortfall, p.CashDiff
	default:
		return CashSurplus, p.CashDiff.Neg()
	}
}

// Rebalance computes, for each holding in order, the whole-share delta to reach
// the target, and reconciles the resulting cash against the cash target.
//
// The target is validated against the snapshot first: on failure no
// instruction is produced. Target shares are rounded to the nearest integer,
// ties away from zero. A holding with a zero price is skipped and moves no cash.
// A label shared by several holdings has its percentage split equally between
// them: two AAA positions under AAA=60 are each aimed at 30% of the total, so
// the label as a whole gets 60% and not 120%.
//
// Share deltas are never adjusted to make the cash land on its target, the
// remaining difference is reported by the plan.
func Rebalance(s *Snapshot, t Target) (*Plan, error) {
	if err := t.ValidateFor(s); err != nil {
		return nil, err
	}
	total := s.TotalValue()
	if total.IsZero() {
		return nil, ErrZeroPortfolioValue
	}

	p := &Plan{
		Total:        total,
		Cash:         s.cash,
		Instructions: make([]Instruction, 0, len(s.holdings)),
		CashTarget:   t[CashLabel],
	}

	cash := s.cash
	for _, h := range s.holdings {
		pct := t[h.ticker] / Percent(s.count(h.ticker))
		in := Instruction{
			Ticker:       h.ticker,
			Target:       pct,
			Quantity:     h.quantity,
			Price:        h.price,
			DesiredValue: total.Part(pct),
			CashFlow:     M(0, total.Currency()),
		}
		if h.price.IsZero() {
			in.Action = Skip
			in.CashAfter = cash
			p.Instructions = append(p.Instructions, in)
			continue
		}

		in.TargetShares = in.DesiredValue.DivPrice(h.price).Round()
		in.Delta = in.TargetShares.Sub(h.quantity)
		switch {
		case in.Delta.IsPositive():
			in.Action = Buy
		case in.Delta.IsNegative():
			in.Action = Sell
		default:
			in.Action = Hold
		}
		in.CashFlow = h.price.Mul(in.Delta)
		cash = cash.Sub(in.CashFlow)
		in.CashAfter = cash
		p.Instructions = append(p.Instructions, in)
	}

	p.NewCash = cash
	p.DesiredCash = total.Part(p.CashTarget)
	p.CashDiff = p.DesiredCash.Sub(p.NewCash)
	return p, nil
}
