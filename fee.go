package allocator

import (
	"github.com/shopspring/decimal"
)

// FeeConfig is a tiered brokerage fee schedule.
//
// The fee of a trade is a percentage of its value, rounded to the fee
// charging unit, but never below a minimum. The minimum depends on the lot:
// trades of at least RoundLotThreshold shares are round lots and pay at
// least RoundLotMinFee, smaller ones are odd lots and pay at least
// OddLotMinFee.
type FeeConfig struct {
	Rate              float64      `json:"rate"`
	OddLotMinFee      int64        `json:"oddLotMinFee"`
	RoundLotMinFee    int64        `json:"roundLotMinFee"`
	RoundLotThreshold int64        `json:"roundLotThreshold"`
	Rounding          RoundingMode `json:"rounding"`
	// Digits is the number of fraction digits of the fee charging unit.
	// 0 means fees are charged in whole currency units.
	Digits int32 `json:"digits,omitempty"`
}

// IsRoundLot reports whether a trade of 'shares' is a round lot.
func (c FeeConfig) IsRoundLot(shares int64) bool { return shares >= c.RoundLotThreshold }

// MinFee returns the minimum fee applicable to a trade of 'shares'.
func (c FeeConfig) MinFee(shares int64) decimal.Decimal {
	if c.IsRoundLot(shares) {
		return decimal.NewFromInt(c.RoundLotMinFee)
	}
	return decimal.NewFromInt(c.OddLotMinFee)
}

// Fee returns the brokerage fee for buying 'shares' for a total of 'value'.
// Buying nothing costs nothing.
func (c FeeConfig) Fee(value Money, shares int64) Money {
	if shares <= 0 {
		return Money{cur: value.cur}
	}
	raw := value.value.Mul(decimal.NewFromFloat(c.Rate))
	return Money{value: decimal.Max(c.MinFee(shares), c.round(raw)), cur: value.cur}
}

func (c FeeConfig) round(d decimal.Decimal) decimal.Decimal {
	switch c.Rounding {
	case Floor:
		return d.RoundFloor(c.Digits)
	case HalfEven:
		return d.RoundBank(c.Digits)
	default:
		return d.Round(c.Digits)
	}
}
