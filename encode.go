package allocator

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// Setup is the content of a setup file: everything needed for a computation
// but the settings left to the caller. Nil fields were not in the file.
type Setup struct {
	Budget    *Money
	Weights   []AssetWeight
	Quotes    Quotes
	Fees      *FeeConfig
	Weighting *WeightMode
	Tolerance float64
}

// DecodeSetup reads a JSON setup file.
//
//	{
//	  "currency": "TWD",
//	  "budget": 3000,
//	  "weighting": "reject",
//	  "fees": {"rate": 0.001425, "oddLotMinFee": 1, "roundLotMinFee": 20, "roundLotThreshold": 1000, "rounding": "half-up"},
//	  "assets": [{"code": "0050", "weight": 0.3, "price": 150.5, "buffer": 0.5}]
//	}
//
// Prices in the file override the quotes; they stand for prices edited by
// hand.
func DecodeSetup(r io.Reader) (*Setup, error) {
	// jasset and jsetup mirror the file format.
	type jasset struct {
		Code   string           `json:"code"`
		Weight Weight           `json:"weight"`
		Price  *decimal.Decimal `json:"price"`
		Buffer *decimal.Decimal `json:"buffer"`
	}
	type jsetup struct {
		Currency  string           `json:"currency"`
		Budget    *decimal.Decimal `json:"budget"`
		Weighting *WeightMode      `json:"weighting"`
		Tolerance float64          `json:"tolerance"`
		Fees      *FeeConfig       `json:"fees"`
		Assets    []jasset         `json:"assets"`
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var js jsetup
	if err := dec.Decode(&js); err != nil {
		return nil, fmt.Errorf("format error in setup: %w", err)
	}

	s := &Setup{
		Weights:   make([]AssetWeight, 0, len(js.Assets)),
		Quotes:    make(Quotes),
		Fees:      js.Fees,
		Weighting: js.Weighting,
		Tolerance: js.Tolerance,
	}
	if js.Budget != nil {
		b := M(*js.Budget, js.Currency)
		s.Budget = &b
	}
	for i, a := range js.Assets {
		if a.Code == "" {
			return nil, fmt.Errorf("format error in setup: asset #%d has no code", i+1)
		}
		s.Weights = append(s.Weights, AssetWeight{Code: a.Code, Weight: a.Weight})
		if a.Price != nil {
			s.Quotes.Set(a.Code, M(*a.Price, js.Currency))
		}
		if a.Buffer != nil {
			s.Quotes.SetBuffer(a.Code, M(*a.Buffer, js.Currency))
		}
	}
	return s, nil
}

// DecodeQuotes reads a JSONL quotes file, one quote per line.
//
//	{"code": "0050", "price": 150.5, "buffer": 0.5}
//
// filename is for error message only.
func DecodeQuotes(filename string, r io.Reader, currency string) (Quotes, error) {
	type jquote struct {
		Code   string          `json:"code"`
		Price  decimal.Decimal `json:"price"`
		Buffer decimal.Decimal `json:"buffer"`
	}

	quotes := make(Quotes)
	scanner := bufio.NewScanner(r)
	for i := 1; scanner.Scan(); i++ {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var jq jquote
		if err := json.Unmarshal(line, &jq); err != nil {
			return nil, fmt.Errorf("format error in %q on line %d: %w", filename, i, err)
		}
		if jq.Code == "" {
			return nil, fmt.Errorf("format error in %q on line %d: missing code", filename, i)
		}
		if _, exists := quotes[jq.Code]; exists {
			return nil, fmt.Errorf("format error in %q on line %d: code %q is already quoted", filename, i, jq.Code)
		}
		quotes[jq.Code] = Quote{Code: jq.Code, Price: M(jq.Price, currency), Buffer: M(jq.Buffer, currency)}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", filename, err)
	}
	return quotes, nil
}

// csvRow is one line of the CSV export. Amounts are exact decimals.
type csvRow struct {
	Code            string `csv:"code"`
	Weight          string `csv:"weight"`
	MarketPrice     string `csv:"market_price"`
	Buffer          string `csv:"buffer"`
	AllocatedBudget string `csv:"allocated_budget"`
	Shares          int64  `csv:"shares"`
	Lot             string `csv:"lot"`
	Fee             string `csv:"fee"`
	TotalCost       string `csv:"total_cost"`
}

// TotalRow is the code of the last CSV row, holding the totals.
const TotalRow = "TOTAL"

// EncodeCSV writes the result table as CSV, with a final TOTAL row.
func EncodeCSV(w io.Writer, r *PortfolioResult) error {
	rows := make([]*csvRow, 0, len(r.Trades)+1)
	var shares int64
	for _, t := range r.Trades {
		rows = append(rows, &csvRow{
			Code:            t.Code,
			Weight:          t.Weight.value.String(),
			MarketPrice:     t.MarketPrice.value.String(),
			Buffer:          t.Buffer.value.String(),
			AllocatedBudget: t.AllocatedBudget.value.String(),
			Shares:          t.Shares,
			Lot:             t.Lot(),
			Fee:             t.Fee.value.String(),
			TotalCost:       t.TotalCost.value.String(),
		})
		shares += t.Shares
	}
	rows = append(rows, &csvRow{
		Code:            TotalRow,
		Weight:          r.WeightSum.value.String(),
		AllocatedBudget: r.Budget.value.String(),
		Shares:          shares,
		Fee:             r.TotalFees().value.String(),
		TotalCost:       r.TotalSpent.value.String(),
	})
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("cannot encode result as csv: %w", err)
	}
	return nil
}

// EncodeJSON writes the result as indented JSON.
func EncodeJSON(w io.Writer, r *PortfolioResult) error {
	raw, err := r.MarshalJSON()
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return err
	}
	out.WriteString("\n")
	_, err = io.Copy(w, &out)
	return err
}

// ParseAmount parses a decimal amount typed by a human: spaces and thousand
// separators are ignored.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}
