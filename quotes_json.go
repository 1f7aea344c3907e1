package allocator

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// DecodeJSONDocument reads any JSON document, keeping numbers exact.
func DecodeJSONDocument(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot decode json document: %w", err)
	}
	return doc, nil
}

// ExtractQuotes reads one price per code out of a JSON document, for
// instance a market data dump saved from a broker page. selectors maps each
// code to a JSONPath expression locating its price:
//
//	"0050": `$.data[?(@.code=="0050")].close`
//
// A code whose expression finds nothing, or a value that is not a number,
// is an error: a silently missing price would buy nothing.
func ExtractQuotes(doc any, selectors map[string]string, currency string) (Quotes, error) {
	quotes := make(Quotes, len(selectors))
	for _, code := range slices.Sorted(maps.Keys(selectors)) {
		path := selectors[code]
		jval, err := jsonpath.Get(path, doc)
		if err != nil {
			return nil, fmt.Errorf("error reading price of %q at %q: %w", code, path, err)
		}
		// because jsonpath is never clear about whether it returns a list of 1
		// answer, or a single answer: keep the first one if any
		if jlist, ok := jval.([]any); ok {
			if len(jlist) == 0 {
				return nil, fmt.Errorf("no price for %q at %q", code, path)
			}
			jval = jlist[0]
		}
		price, err := jsonPrice(jval)
		if err != nil {
			return nil, fmt.Errorf("error reading price of %q at %q: %w", code, path, err)
		}
		quotes[code] = Quote{Code: code, Price: M(price, currency)}
	}
	return quotes, nil
}

// jsonPrice converts a JSON value into a price. Quote feeds often return
// numbers as strings, with thousand separators.
func jsonPrice(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case json.Number:
		return decimal.NewFromString(t.String())
	case float64:
		return decimal.NewFromFloat(t), nil
	case string:
		return ParseAmount(t)
	default:
		return decimal.Zero, fmt.Errorf("not a number: %v", v)
	}
}
