package allocator

import (
	"encoding/json"
	"fmt"
)

// RoundingMode defines how a raw percentage fee is brought to the fee
// charging unit.
type RoundingMode int

const (
	// HalfUp rounds to the nearest unit, halves going up.
	HalfUp RoundingMode = iota
	// Floor drops the fractional part.
	Floor
	// HalfEven rounds to the nearest unit, halves going to the even neighbour.
	HalfEven
)

func (m RoundingMode) String() string {
	switch m {
	case HalfUp:
		return "half-up"
	case Floor:
		return "floor"
	case HalfEven:
		return "half-even"
	default:
		return "unknown"
	}
}

// ParseRoundingMode parses a string into a RoundingMode.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch s {
	case "half-up", "round":
		return HalfUp, nil
	case "floor", "int":
		return Floor, nil
	case "half-even", "bank":
		return HalfEven, nil
	default:
		return 0, fmt.Errorf("unknown rounding mode: %q", s)
	}
}

// Set implements flag.Value.
func (m *RoundingMode) Set(s string) (err error) {
	*m, err = ParseRoundingMode(s)
	return err
}

func (m RoundingMode) MarshalJSON() ([]byte, error) { return json.Marshal(m.String()) }

func (m *RoundingMode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return m.Set(s)
}
