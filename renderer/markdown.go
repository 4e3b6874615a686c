package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/rebalance"
	md "github.com/nao1215/markdown"
)

// ReportMarkdown renders the portfolio allocation, and the rebalance plan if
// not nil, as a markdown document.
//
// a can be nil for a portfolio worth nothing.
func ReportMarkdown(s *rebalance.Snapshot, a *rebalance.Allocation, p *rebalance.Plan) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio")

	holdings := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Ticker", "Shares", "Price", "Value", "Allocation"},
	}
	if a != nil {
		for _, h := range a.Holdings {
			holdings.Rows = append(holdings.Rows, []string{
				h.Holding.Ticker(),
				h.Holding.Quantity().String(),
				h.Holding.Price().String(),
				h.Value.String(),
				h.Percent.String(),
			})
		}
		holdings.Rows = append(holdings.Rows, []string{rebalance.CashLabel, "", "", a.Cash.String(), a.CashPercent.String()})
	} else {
		for h := range s.Holdings() {
			holdings.Rows = append(holdings.Rows, []string{h.Ticker(), h.Quantity().String(), h.Price().String(), h.Value().String(), ""})
		}
		holdings.Rows = append(holdings.Rows, []string{rebalance.CashLabel, "", "", s.Cash().String(), ""})
	}
	holdings.Rows = append(holdings.Rows, []string{md.Bold("Total"), "", "", md.Bold(s.TotalValue().String()), ""})
	doc.Table(holdings)

	if a == nil {
		doc.PlainText("No assets or cash in the portfolio.")
		return doc.String()
	}
	if p == nil {
		return doc.String()
	}

	doc.H2("Rebalance")
	instructions := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Ticker", "Target", "Target Value", "Target Shares", "Instruction", "Cash Flow", "Cash"},
		Rows: [][]string{
			{"", "", "", "", "", "", p.Cash.String()},
		},
	}
	for _, i := range p.Instructions {
		targetShares := i.TargetShares.String()
		if i.Action == rebalance.Skip {
			targetShares = "-"
		}
		instructions.Rows = append(instructions.Rows, []string{
			i.Ticker,
			i.Target.String(),
			i.DesiredValue.String(),
			targetShares,
			InstructionText(i),
			i.CashFlow.Neg().SignedString(),
			i.CashAfter.String(),
		})
	}
	doc.Table(instructions)

	doc.PlainText(fmt.Sprintf("Desired cash is %v (%v), cash after trades is %v.", p.DesiredCash, p.CashTarget, p.NewCash))
	doc.PlainText(md.Bold(CashText(p)))
	return doc.String()
}
