package renderer

import (
	"github.com/etnz/allocator"
)

// Allocation is the view of a PortfolioResult used by the templates.
// Amounts keep their exact types, so that templates use their renderers.
type Allocation struct {
	// Budget is the whole amount to invest.
	Budget allocator.Money `json:"budget"`
	// Trades lists the purchases, in the order of the weights.
	Trades []AllocationTrade `json:"trades"`
	// Shares is the total number of shares bought.
	Shares      int64             `json:"shares"`
	TotalSpent  allocator.Money   `json:"totalSpent"`
	TotalFees   allocator.Money   `json:"totalFees"`
	Remaining   allocator.Money   `json:"remaining"`
	Utilization allocator.Percent `json:"utilization"`
	// MeanDrift and MaxDrift are absolute distances between realized and target weights.
	MeanDrift    allocator.Percent `json:"meanDrift"`
	MaxDrift     allocator.Percent `json:"maxDrift"`
	Renormalized bool              `json:"renormalized,omitempty"`
	Warnings     []string          `json:"warnings,omitempty"`
}

// AllocationTrade is one line of the purchase table.
type AllocationTrade struct {
	Code            string            `json:"code"`
	Weight          allocator.Percent `json:"weight"`
	Realized        allocator.Percent `json:"realized"`
	Drift           allocator.Percent `json:"drift"`
	AllocatedBudget allocator.Money   `json:"allocatedBudget"`
	MarketPrice     allocator.Money   `json:"marketPrice"`
	Buffer          allocator.Money   `json:"buffer"`
	EffectivePrice  allocator.Money   `json:"effectivePrice"`
	Shares          int64             `json:"shares"`
	Lot             string            `json:"lot,omitempty"`
	Fee             allocator.Money   `json:"fee"`
	TotalCost       allocator.Money   `json:"totalCost"`
	Leftover        allocator.Money   `json:"leftover"`
}

// NewAllocation creates the view of a computation result.
func NewAllocation(r *allocator.PortfolioResult) *Allocation {
	drift := r.Drift()
	a := &Allocation{
		Budget:       r.Budget,
		Trades:       make([]AllocationTrade, 0, len(r.Trades)),
		TotalSpent:   r.TotalSpent,
		TotalFees:    r.TotalFees(),
		Remaining:    r.Remaining,
		Utilization:  r.Utilization(),
		MeanDrift:    drift.Mean,
		MaxDrift:     drift.Max,
		Renormalized: r.Renormalized,
		Warnings:     r.Warnings,
	}
	for _, t := range r.Trades {
		a.Shares += t.Shares
		a.Trades = append(a.Trades, AllocationTrade{
			Code:            t.Code,
			Weight:          t.Weight.Percent(),
			Realized:        t.Realized.Percent(),
			Drift:           t.Drift(),
			AllocatedBudget: t.AllocatedBudget,
			MarketPrice:     t.MarketPrice,
			Buffer:          t.Buffer,
			EffectivePrice:  t.EffectivePrice,
			Shares:          t.Shares,
			Lot:             t.Lot(),
			Fee:             t.Fee,
			TotalCost:       t.TotalCost,
			Leftover:        t.Leftover(),
		})
	}
	return a
}
