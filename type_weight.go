package allocator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Weight is a fraction of the total budget, 1 being the whole budget.
type Weight struct {
	value decimal.Decimal
}

// W creates a Weight from any numeric value.
func W[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Weight {
	return Weight{value: newDecimal(value)}
}

func (w Weight) Equal(v Weight) bool      { return w.value.Equal(v.value) }
func (w Weight) Add(v Weight) Weight      { return Weight{value: w.value.Add(v.value)} }
func (w Weight) IsNegative() bool         { return w.value.IsNegative() }
func (w Weight) IsPositive() bool         { return w.value.IsPositive() }
func (w Weight) IsZero() bool             { return w.value.IsZero() }
func (w Weight) Decimal() decimal.Decimal { return w.value }
func (w Weight) Float() float64           { return w.value.InexactFloat64() }
func (w Weight) Percent() Percent         { return Percent(w.value.Shift(2).InexactFloat64()) }
func (w Weight) String() string           { return w.Percent().String() }
func (w Weight) GoString() string         { return fmt.Sprintf("W(%s)", w.value) }

// MarshalJSON implements the json.Marshaler interface.
func (w Weight) MarshalJSON() ([]byte, error) { return w.value.MarshalJSON() }

// UnmarshalJSON accepts any JSON number.
func (w *Weight) UnmarshalJSON(b []byte) error { return w.value.UnmarshalJSON(b) }

// AssetWeight is the target weight of one asset in the portfolio.
type AssetWeight struct {
	Code   string
	Weight Weight
}

// AW is a shorthand for an AssetWeight.
func AW(code string, weight float64) AssetWeight {
	return AssetWeight{Code: code, Weight: W(weight)}
}

// sumWeights returns the exact sum of all weights.
func sumWeights(weights []AssetWeight) Weight {
	var sum Weight
	for _, w := range weights {
		sum = sum.Add(w.Weight)
	}
	return sum
}
