package allocator

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// TradeResult is the purchase computed for one asset.
//
// TotalCost is Shares*EffectivePrice+Fee and never exceeds AllocatedBudget.
type TradeResult struct {
	Code            string
	Weight          Weight // target, normalized
	Realized        Weight // share of the whole budget actually spent
	AllocatedBudget Money
	MarketPrice     Money
	Buffer          Money
	EffectivePrice  Money
	Shares          int64
	RoundLot        bool
	Fee             Money
	TotalCost       Money
}

// Lot returns "round" or "odd" for a purchase, and "" when nothing is bought.
func (t TradeResult) Lot() string {
	switch {
	case t.Shares == 0:
		return ""
	case t.RoundLot:
		return "round"
	default:
		return "odd"
	}
}

// Drift is the difference between realized and target weight.
func (t TradeResult) Drift() Percent {
	return Percent(t.Realized.value.Sub(t.Weight.value).Shift(2).InexactFloat64())
}

// Leftover is the part of the allocated budget that was not spent.
func (t TradeResult) Leftover() Money { return t.AllocatedBudget.Sub(t.TotalCost) }

// MarshalJSON writes the columns in table order.
func (t TradeResult) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("code", t.Code)
	w.Append("weight", t.Weight)
	w.Append("allocatedBudget", t.AllocatedBudget)
	w.Append("marketPrice", t.MarketPrice)
	if !t.Buffer.IsZero() {
		w.Append("buffer", t.Buffer)
	}
	w.Append("effectivePrice", t.EffectivePrice)
	w.Append("shares", t.Shares)
	w.Optional("lot", t.Lot())
	w.Append("fee", t.Fee)
	w.Append("totalCost", t.TotalCost)
	w.Append("realized", t.Realized)
	return w.MarshalJSON()
}

// PortfolioResult is the outcome of a full computation.
type PortfolioResult struct {
	Budget       Money
	Trades       []TradeResult
	TotalSpent   Money
	Remaining    Money
	WeightSum    Weight // sum of the weights as given
	Renormalized bool
	Warnings     []string
}

// Aggregate sums the trades into a PortfolioResult.
//
// The total spent is the exact sum of the costs. A negative remaining
// budget can only come from trades that broke their own budget, it is
// reported as a warning.
func Aggregate(trades []TradeResult, budget Money) *PortfolioResult {
	res := &PortfolioResult{
		Budget:     budget,
		Trades:     make([]TradeResult, 0, len(trades)),
		TotalSpent: Money{cur: budget.cur},
	}
	for _, t := range trades {
		if budget.IsPositive() {
			t.Realized = Weight{value: t.TotalCost.value.Div(budget.value)}
		}
		res.TotalSpent = res.TotalSpent.Add(t.TotalCost)
		res.Trades = append(res.Trades, t)
	}
	res.Remaining = budget.Sub(res.TotalSpent)
	if budget.IsPositive() && res.Remaining.IsNegative() {
		res.Warnings = append(res.Warnings, fmt.Sprintf("total spent %s exceeds the budget %s", res.TotalSpent, budget))
	}
	return res
}

// Trade returns the trade for 'code'.
func (r *PortfolioResult) Trade(code string) (TradeResult, bool) {
	for _, t := range r.Trades {
		if t.Code == code {
			return t, true
		}
	}
	return TradeResult{}, false
}

// TotalFees is the sum of all fees.
func (r *PortfolioResult) TotalFees() Money {
	total := Money{cur: r.Budget.cur}
	for _, t := range r.Trades {
		total = total.Add(t.Fee)
	}
	return total
}

// Utilization is the spent share of the budget.
func (r *PortfolioResult) Utilization() Percent {
	if !r.Budget.IsPositive() {
		return 0
	}
	return Percent(r.TotalSpent.value.Div(r.Budget.value).Shift(2).InexactFloat64())
}

// DriftSummary describes how far the realized weights are from the targets.
type DriftSummary struct {
	Mean Percent // mean absolute drift
	Max  Percent // largest absolute drift
}

// Drift summarizes the absolute drift of every trade.
func (r *PortfolioResult) Drift() DriftSummary {
	if len(r.Trades) == 0 {
		return DriftSummary{}
	}
	drifts := make([]float64, 0, len(r.Trades))
	for _, t := range r.Trades {
		drifts = append(drifts, math.Abs(float64(t.Drift())))
	}
	// the input is not empty, these can't fail.
	mean, _ := stats.Mean(drifts)
	top, _ := stats.Max(drifts)
	return DriftSummary{Mean: Percent(mean), Max: Percent(top)}
}

// MarshalJSON writes the result with its trades and totals.
func (r *PortfolioResult) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("budget", r.Budget)
	w.Append("trades", r.Trades)
	w.Append("totalSpent", r.TotalSpent)
	w.Append("totalFees", r.TotalFees())
	w.Append("remaining", r.Remaining)
	w.Append("utilization", decimal.NewFromFloat(float64(r.Utilization())).Round(4))
	w.Optional("renormalized", r.Renormalized)
	w.Optional("warnings", r.Warnings)
	return w.MarshalJSON()
}
