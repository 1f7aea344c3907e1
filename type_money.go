package allocator

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a given currency.
//
// The empty currency is weak: it adopts the currency of the other operand in
// binary operations. That lets callers write prices without repeating the
// currency of the budget.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money from any numeric value.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency metadata.
func (m Money) currency() money.Currency {
	// money.New never returns a nil currency, even for unknown codes.
	return *money.New(0, m.cur).Currency()
}

// String formats the value with the currency grapheme and its fraction digits.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }

// Add and Sub panic on currency mismatch.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Times returns the value of n units priced at m.
func (m Money) Times(n int64) Money { return Money{value: m.value.Mul(decimal.NewFromInt(n)), cur: m.cur} }

// Weighted returns the share of m given by w.
func (m Money) Weighted(w Weight) Money { return Money{value: m.value.Mul(w.value), cur: m.cur} }

// maxUnits is the largest count Units returns.
var maxUnits = decimal.NewFromInt(math.MaxInt64)

// Units returns how many whole units priced at p fit in m, at most
// math.MaxInt64. p must be positive.
func (m Money) Units(p Money) int64 {
	u := m.value.Div(p.value).Floor()
	if u.GreaterThan(maxUnits) {
		return math.MaxInt64
	}
	return u.IntPart()
}

// Ratio returns m/n as a float, 0 when n is zero.
func (m Money) Ratio(n Money) float64 {
	if n.value.IsZero() {
		return 0
	}
	return m.value.Div(n.value).InexactFloat64()
}

// Max returns the greater of m and n.
func (m Money) Max(n Money) Money {
	if n.value.GreaterThan(m.value) {
		return Money{value: n.value, cur: cur(m, n)}
	}
	return Money{value: m.value, cur: cur(m, n)}
}

// WithCurrency returns m with currency set to c when it had none.
func (m Money) WithCurrency(c string) Money {
	if m.cur == "" {
		m.cur = c
	}
	return m
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// Float returns an approximation of the value. Computations must stay on
// decimals; this is for statistics and display only.
func (m Money) Float() float64 { return m.value.InexactFloat64() }

// MarshalJSON writes the exact amount and the currency, if any.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("amount", m.value)
	w.Optional("currency", m.cur)
	return w.MarshalJSON()
}
