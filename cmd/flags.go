package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/allocator"
	"github.com/shopspring/decimal"
)

// assignments is a repeatable flag of code=value pairs. The order of first
// appearance is kept, a repeated code overrides its value.
type assignments struct {
	codes  []string
	values map[string]string
}

func (a *assignments) String() string {
	if a == nil {
		return ""
	}
	var parts []string
	for _, c := range a.codes {
		parts = append(parts, c+"="+a.values[c])
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value.
func (a *assignments) Set(s string) error {
	code, value, ok := strings.Cut(s, "=")
	code, value = strings.TrimSpace(code), strings.TrimSpace(value)
	if !ok || code == "" || value == "" {
		return fmt.Errorf("want code=value, got %q", s)
	}
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, exists := a.values[code]; !exists {
		a.codes = append(a.codes, code)
	}
	a.values[code] = value
	return nil
}

// Len is the number of codes assigned.
func (a *assignments) Len() int { return len(a.codes) }

// amounts parses every value as a decimal amount.
func (a *assignments) amounts() ([]string, map[string]decimal.Decimal, error) {
	res := make(map[string]decimal.Decimal, len(a.codes))
	for _, c := range a.codes {
		d, err := allocator.ParseAmount(a.values[c])
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", c, err)
		}
		res[c] = d
	}
	return a.codes, res, nil
}

// weights parses the values as asset weights, in order.
func (a *assignments) weights() ([]allocator.AssetWeight, error) {
	codes, amounts, err := a.amounts()
	if err != nil {
		return nil, err
	}
	weights := make([]allocator.AssetWeight, 0, len(codes))
	for _, c := range codes {
		weights = append(weights, allocator.AssetWeight{Code: c, Weight: allocator.W(amounts[c])})
	}
	return weights, nil
}

// isSet returns the names of the flags set on the command line.
func isSet(f *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return set
}
