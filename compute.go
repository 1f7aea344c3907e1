package allocator

import (
	"fmt"
)

// Input gathers everything a computation depends on.
type Input struct {
	Weights   []AssetWeight
	Quotes    Quotes
	Budget    Money
	Fees      FeeConfig
	Weighting WeightMode
	Tolerance float64 // DefaultTolerance when 0
}

// ComputePortfolio splits the budget across the assets and computes the
// largest affordable purchase for each of them.
//
// It only fails on a weight table that cannot be used, or on quotes in
// another currency than the budget. Unusable prices and budgets result in
// zero shares for the assets concerned.
func ComputePortfolio(in Input) (*PortfolioResult, error) {
	if errs := in.currencyErrors(); len(errs) > 0 {
		return nil, fmt.Errorf("cannot compute portfolio: %w", errs)
	}
	planner := Planner{Mode: in.Weighting, Tolerance: in.Tolerance}
	plan, err := planner.Plan(in.Weights, in.Budget)
	if err != nil {
		return nil, fmt.Errorf("cannot allocate budget: %w", err)
	}

	var warnings []string
	if plan.Renormalized {
		warnings = append(warnings, fmt.Sprintf("weights summed to %s and have been renormalized", plan.Sum.value))
	}

	trades := make([]TradeResult, 0, len(plan.Allocations))
	for _, a := range plan.Allocations {
		q := in.Quotes.Get(a.Code)
		price := q.EffectivePrice()
		if !price.value.GreaterThan(minTradablePrice) {
			warnings = append(warnings, fmt.Sprintf("no usable price for %s, nothing bought", a.Code))
		}
		shares, fee, cost := Optimize(a.Budget, price, in.Fees)
		trades = append(trades, TradeResult{
			Code:            a.Code,
			Weight:          a.Weight,
			AllocatedBudget: a.Budget,
			MarketPrice:     q.Price.WithCurrency(in.Budget.cur),
			Buffer:          q.Buffer.WithCurrency(in.Budget.cur),
			EffectivePrice:  price.WithCurrency(in.Budget.cur),
			Shares:          shares,
			RoundLot:        shares > 0 && in.Fees.IsRoundLot(shares),
			Fee:             fee,
			TotalCost:       cost,
		})
	}

	res := Aggregate(trades, in.Budget)
	res.WeightSum = plan.Sum
	res.Renormalized = plan.Renormalized
	res.Warnings = append(warnings, res.Warnings...)
	return res, nil
}
