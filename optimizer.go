package allocator

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// minTradablePrice is the price at or below which an asset cannot be traded.
// A failed quote is reported as a zero price and lands here.
var minTradablePrice = decimal.New(1, -4)

// Optimize returns the largest number of shares priced at 'price' that can be
// bought with 'budget', fee included, along with the fee and the total cost.
//
// The cost of s shares, s*price + fee(s), never decreases when s grows: the
// value grows, and so does the fee, its minimum only stepping up at the round
// lot threshold. The affordable counts are therefore a prefix of
// [0, budget/price] and a binary search finds its end.
func Optimize(budget, price Money, fees FeeConfig) (shares int64, fee, cost Money) {
	currency := cur(budget, price)
	zero := Money{cur: currency}
	if price.value.LessThanOrEqual(minTradablePrice) || !budget.IsPositive() {
		return 0, zero, zero
	}

	costOf := func(s int64) (Money, Money) {
		value := price.Times(s)
		fee := fees.Fee(value, s)
		return fee, value.Add(fee)
	}

	// Fees only ever reduce the affordable count.
	maxShares := budget.Units(price)
	if maxShares > math.MaxInt-1 {
		maxShares = math.MaxInt - 1
	}

	// first count that does not fit.
	n := sort.Search(int(maxShares)+1, func(i int) bool {
		_, c := costOf(int64(i))
		return c.GreaterThan(budget)
	})
	shares = int64(n) - 1
	if shares <= 0 {
		return 0, zero, zero
	}
	fee, cost = costOf(shares)
	return shares, fee.WithCurrency(currency), cost.WithCurrency(currency)
}
