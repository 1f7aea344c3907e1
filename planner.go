package allocator

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// DefaultTolerance is the accepted distance between the sum of the weights and 1.
const DefaultTolerance = 0.0001

// WeightSumError reports weights that do not sum to 1.
type WeightSumError struct {
	Sum       float64
	Tolerance float64
}

func (e *WeightSumError) Error() string {
	return fmt.Sprintf("weights sum to %g, want 1 (±%g)", e.Sum, e.Tolerance)
}

// WeightError reports a structurally invalid weight table, whatever the mode.
type WeightError struct {
	Code    string
	Message string
}

func (e *WeightError) Error() string {
	if e.Code == "" {
		return "invalid weights: " + e.Message
	}
	return fmt.Sprintf("invalid weight for %q: %s", e.Code, e.Message)
}

// Allocation is the share of the budget assigned to one asset.
type Allocation struct {
	Code   string
	Weight Weight // normalized
	Budget Money
}

// Plan is the outcome of a Planner.
type Plan struct {
	Allocations  []Allocation
	Sum          Weight // sum of the weights as given
	Renormalized bool
}

// Planner splits a budget across assets according to their weights.
// Its zero value rejects weights that are more than DefaultTolerance away
// from 1.
type Planner struct {
	Mode      WeightMode
	Tolerance float64
}

func (p Planner) tolerance() float64 {
	if math.IsNaN(p.Tolerance) || math.IsInf(p.Tolerance, 0) || p.Tolerance <= 0 {
		return DefaultTolerance
	}
	return p.Tolerance
}

// Plan validates the weights and allocates 'budget' accordingly.
//
// In Reject mode, weights within tolerance of 1 are used as given and others
// are refused. In Renormalize mode, weights not summing exactly to 1 are
// rescaled so that they do, hence planning twice is a no op and the
// allocations never exceed the budget.
func (p Planner) Plan(weights []AssetWeight, budget Money) (*Plan, error) {
	if err := checkWeights(weights); err != nil {
		return nil, err
	}

	sum := sumWeights(weights)
	plan := &Plan{Sum: sum}
	one := decimal.NewFromInt(1)
	switch p.Mode {
	case Renormalize:
		if !sum.IsPositive() {
			return nil, &WeightError{Message: "cannot renormalize weights summing to 0"}
		}
		plan.Renormalized = !sum.value.Equal(one)
	default:
		tol := p.tolerance()
		if sum.value.Sub(one).Abs().GreaterThan(decimal.NewFromFloat(tol)) {
			return nil, &WeightSumError{Sum: sum.Float(), Tolerance: tol}
		}
	}

	normalized := make([]Weight, len(weights))
	for i, aw := range weights {
		normalized[i] = aw.Weight
	}
	if plan.Renormalized {
		normalized = normalize(weights, sum)
	}

	plan.Allocations = make([]Allocation, 0, len(weights))
	for i, aw := range weights {
		plan.Allocations = append(plan.Allocations, Allocation{
			Code:   aw.Code,
			Weight: normalized[i],
			Budget: budget.Weighted(normalized[i]),
		})
	}
	return plan, nil
}

// normalizePrecision is the number of decimal places of renormalized weights.
const normalizePrecision = 16

// normalize divides every weight by 'sum', truncating the quotients. The
// last weight takes the rest, so that the result sums exactly to 1.
func normalize(weights []AssetWeight, sum Weight) []Weight {
	out := make([]Weight, len(weights))
	rest := decimal.NewFromInt(1)
	for i, aw := range weights[:len(weights)-1] {
		q, _ := aw.Weight.value.QuoRem(sum.value, normalizePrecision)
		out[i] = Weight{value: q}
		rest = rest.Sub(q)
	}
	out[len(out)-1] = Weight{value: rest}
	return out
}

// checkWeights reports structural problems that no mode can fix.
func checkWeights(weights []AssetWeight) error {
	if len(weights) == 0 {
		return &WeightError{Message: "no asset"}
	}
	seen := make(map[string]bool, len(weights))
	for _, aw := range weights {
		if aw.Code == "" {
			return &WeightError{Message: "empty asset code"}
		}
		if seen[aw.Code] {
			return &WeightError{Code: aw.Code, Message: "duplicate asset"}
		}
		seen[aw.Code] = true
		if aw.Weight.IsNegative() {
			return &WeightError{Code: aw.Code, Message: fmt.Sprintf("negative weight %s", aw.Weight.value)}
		}
	}
	return nil
}
