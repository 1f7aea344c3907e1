package allocator

import (
	"encoding/json"
	"fmt"
)

// WeightMode defines what to do with weights that do not sum to 1.
type WeightMode int

const (
	// Reject refuses to allocate anything.
	Reject WeightMode = iota
	// Renormalize divides every weight by their sum.
	Renormalize
)

func (m WeightMode) String() string {
	switch m {
	case Reject:
		return "reject"
	case Renormalize:
		return "renormalize"
	default:
		return "unknown"
	}
}

// ParseWeightMode parses a string into a WeightMode.
func ParseWeightMode(s string) (WeightMode, error) {
	switch s {
	case "reject":
		return Reject, nil
	case "renormalize":
		return Renormalize, nil
	default:
		return 0, fmt.Errorf("unknown weight mode: %q", s)
	}
}

// Set implements flag.Value.
func (m *WeightMode) Set(s string) (err error) {
	*m, err = ParseWeightMode(s)
	return err
}

func (m WeightMode) MarshalJSON() ([]byte, error) { return json.Marshal(m.String()) }

func (m *WeightMode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return m.Set(s)
}
