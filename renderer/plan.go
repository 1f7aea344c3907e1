package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/allocator"
	md "github.com/nao1215/markdown"
)

// PlanMarkdown renders how a budget is split, before any price is known.
func PlanMarkdown(p *allocator.Plan, budget allocator.Money) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Budget Plan for %s", budget))
	if p.Renormalized {
		doc.PlainText(fmt.Sprintf("Weights summed to %s and have been renormalized.", p.Sum))
		doc.PlainText("")
	}

	rows := make([][]string, 0, len(p.Allocations))
	for _, a := range p.Allocations {
		rows = append(rows, []string{a.Code, a.Weight.String(), a.Budget.String()})
	}
	doc.Table(md.TableSet{
		Header: []string{"Code", "Weight", "Budget"},
		Rows:   rows,
	})

	return doc.String()
}

// FeeMarkdown renders the fee of a single trade.
func FeeMarkdown(fees allocator.FeeConfig, shares int64, price allocator.Money) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	value := price.Times(shares)
	fee := fees.Fee(value, shares)
	lot := "odd lot"
	if fees.IsRoundLot(shares) {
		lot = "round lot"
	}

	doc.H1(fmt.Sprintf("Fee for %d shares at %s", shares, price))
	doc.Table(md.TableSet{
		Header: []string{"Item", "Value"},
		Rows: [][]string{
			{"Trade value", value.String()},
			{"Lot", lot},
			{"Minimum fee", allocator.M(fees.MinFee(shares), price.Currency()).String()},
			{"Fee", fee.String()},
			{"Total cost", value.Add(fee).String()},
		},
	})
	return doc.String()
}
