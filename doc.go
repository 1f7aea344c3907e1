// Package allocator computes how many shares of each asset to buy with a
// monthly investment budget.
//
// The budget is split across the assets according to target weights. For
// each asset, the largest whole number of shares is bought whose cost, the
// brokerage fee included, fits in the asset's share of the budget. Fees
// follow a tiered schedule: a percentage of the trade value, rounded to the
// fee charging unit, with a minimum that is higher for round lots than for
// odd lots.
//
// The main parts are:
//   - FeeConfig.Fee: the fee of a candidate trade.
//   - Optimize: the largest affordable purchase for one asset.
//   - Planner: validation of the weights, and the split of the budget.
//   - Aggregate: totals of a set of purchases.
//   - ComputePortfolio: all of the above, from plain inputs.
//
// Everything is computed on decimals, from the inputs only: the same inputs
// always give the same result, and functions are safe for concurrent use.
// Getting prices is left to the caller, an unknown or zero price simply
// buys nothing.
//
// This package is the foundation of the `alloc` command-line tool.
package allocator
