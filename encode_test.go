package allocator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSetup(t *testing.T) {
	input := `{
	  "currency": "TWD",
	  "budget": 3000,
	  "weighting": "renormalize",
	  "tolerance": 0.001,
	  "fees": {"rate": 0.001425, "oddLotMinFee": 1, "roundLotMinFee": 20, "roundLotThreshold": 1000, "rounding": "floor"},
	  "assets": [
	    {"code": "009813", "weight": 0.5, "price": 10.05},
	    {"code": "0050", "weight": 0.3, "buffer": 0.5},
	    {"code": "00878", "weight": 0.2}
	  ]
	}`
	s, err := DecodeSetup(strings.NewReader(input))
	require.NoError(t, err)

	require.NotNil(t, s.Budget)
	assert.True(t, s.Budget.Equal(TWD(3000)))
	require.NotNil(t, s.Weighting)
	assert.Equal(t, Renormalize, *s.Weighting)
	assert.Equal(t, 0.001, s.Tolerance)
	require.NotNil(t, s.Fees)
	assert.Equal(t, Floor, s.Fees.Rounding)
	assert.Equal(t, int64(20), s.Fees.RoundLotMinFee)

	require.Len(t, s.Weights, 3)
	assert.Equal(t, "0050", s.Weights[1].Code)
	assert.True(t, s.Weights[1].Weight.Equal(W(0.3)))

	assert.True(t, s.Quotes.Get("009813").Price.Equal(TWD(10.05)))
	assert.True(t, s.Quotes.Get("0050").Price.IsZero())
	assert.True(t, s.Quotes.Get("0050").Buffer.Equal(TWD(0.5)))
	_, quoted := s.Quotes["00878"]
	assert.False(t, quoted)
}

func TestDecodeSetup_Minimal(t *testing.T) {
	s, err := DecodeSetup(strings.NewReader(`{"assets": [{"code": "0050", "weight": 1}]}`))
	require.NoError(t, err)
	assert.Nil(t, s.Budget)
	assert.Nil(t, s.Fees)
	assert.Nil(t, s.Weighting)
	assert.Len(t, s.Weights, 1)
}

func TestDecodeSetup_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "unknown field", input: `{"budgett": 3000}`},
		{name: "missing code", input: `{"assets": [{"weight": 1}]}`},
		{name: "unknown rounding", input: `{"fees": {"rounding": "ceil"}}`},
		{name: "unknown weighting", input: `{"weighting": "ignore"}`},
		{name: "not json", input: `budget: 3000`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeSetup(strings.NewReader(tc.input))
			assert.Error(t, err)
		})
	}
}

func TestDecodeQuotes(t *testing.T) {
	input := `{"code": "0050", "price": 150.5, "buffer": 0.5}

{"code": "00878", "price": "21.3"}
`
	quotes, err := DecodeQuotes("quotes.jsonl", strings.NewReader(input), "TWD")
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.True(t, quotes.Get("0050").EffectivePrice().Equal(TWD(151)))
	assert.True(t, quotes.Get("00878").Price.Equal(TWD(21.3)))
	assert.True(t, quotes.Get("00878").Buffer.IsZero())
}

func TestDecodeQuotes_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "missing code", input: `{"price": 1}`, want: "line 1: missing code"},
		{name: "duplicate", input: "{\"code\": \"A\", \"price\": 1}\n{\"code\": \"A\", \"price\": 2}", want: "line 2"},
		{name: "bad json", input: `{"code": "A", "price": }`, want: "line 1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeQuotes("quotes.jsonl", strings.NewReader(tc.input), "TWD")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestEncodeCSV(t *testing.T) {
	res, err := ComputePortfolio(sampleInput())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, res))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "code,weight,market_price,buffer,allocated_budget,shares,lot,fee,total_cost", lines[0])
	assert.Equal(t, "A,0.5,10,0,1500,149,odd,2,1492", lines[1])
	assert.Equal(t, "B,0.3,1000,0,900,0,,0,0", lines[2])
	assert.Equal(t, "TOTAL,1,,,3000,149,,2,1492", lines[4])
}

func TestEncodeJSON(t *testing.T) {
	res, err := ComputePortfolio(sampleInput())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, res))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{\n  \"budget\": {"), out)
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "3000", want: "3000"},
		{input: " 3,000 ", want: "3000"},
		{input: "1,234,567.89", want: "1234567.89"},
		{input: "12 000", want: "12000"},
		{input: "10.05", want: "10.05"},
		{input: "", wantErr: true},
		{input: "abc", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseAmount(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}
