package allocator

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
)

// ValidationError is a problem with one configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a configuration.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// orNil avoids returning a typed nil as an error.
func (e ValidationErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Validate checks that the schedule is usable.
func (c FeeConfig) Validate() error {
	var errs ValidationErrors
	if math.IsNaN(c.Rate) || c.Rate <= 0 || c.Rate > 0.01 {
		errs = append(errs, ValidationError{Field: "rate", Message: "must be in (0, 0.01]"})
	}
	if c.OddLotMinFee < 1 {
		errs = append(errs, ValidationError{Field: "oddLotMinFee", Message: "must be >= 1"})
	}
	if c.RoundLotMinFee < 0 {
		errs = append(errs, ValidationError{Field: "roundLotMinFee", Message: "must be >= 0"})
	}
	if c.RoundLotThreshold < 1 {
		errs = append(errs, ValidationError{Field: "roundLotThreshold", Message: "must be >= 1"})
	}
	if c.Rounding.String() == "unknown" {
		errs = append(errs, ValidationError{Field: "rounding", Message: "must be half-up, floor or half-even"})
	}
	if c.Digits < 0 || c.Digits > 4 {
		errs = append(errs, ValidationError{Field: "digits", Message: "must be between 0 and 4"})
	}
	return errs.orNil()
}

// Validate checks the input without computing anything. Weight sums are
// left to the Planner.
func (in Input) Validate() error {
	var errs ValidationErrors
	if err := in.Fees.Validate(); err != nil {
		for _, e := range err.(ValidationErrors) {
			e.Field = "fees." + e.Field
			errs = append(errs, e)
		}
	}
	if math.IsNaN(in.Tolerance) || in.Tolerance < 0 || in.Tolerance >= 1 {
		errs = append(errs, ValidationError{Field: "tolerance", Message: "must be in [0, 1)"})
	}
	if in.Weighting.String() == "unknown" {
		errs = append(errs, ValidationError{Field: "weighting", Message: "must be reject or renormalize"})
	}
	for _, code := range slices.Sorted(maps.Keys(in.Quotes)) {
		q := in.Quotes[code]
		if q.Price.IsNegative() {
			errs = append(errs, ValidationError{Field: "quotes." + code, Message: "price must be >= 0"})
		}
		if q.Buffer.IsNegative() {
			errs = append(errs, ValidationError{Field: "quotes." + code, Message: "buffer must be >= 0"})
		}
	}
	errs = append(errs, in.currencyErrors()...)
	return errs.orNil()
}

// currencyErrors reports quotes in another currency than the budget. Without
// a budget currency, the first currency found in the quotes is the reference.
func (in Input) currencyErrors() ValidationErrors {
	var errs ValidationErrors
	ref := in.Budget.Currency()
	for _, code := range slices.Sorted(maps.Keys(in.Quotes)) {
		q := in.Quotes[code]
		for _, m := range []Money{q.Price, q.Buffer} {
			c := m.Currency()
			if c == "" {
				continue
			}
			if ref == "" {
				ref = c
				continue
			}
			if c != ref {
				errs = append(errs, ValidationError{Field: "quotes." + code, Message: fmt.Sprintf("currency %s, want %s", c, ref)})
				break
			}
		}
	}
	return errs
}
