package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/etnz/allocator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalc_BuildInput_Flags(t *testing.T) {
	c, set := parseCalc(t,
		"-budget", "3,000",
		"-weight", "A=0.5", "-weight", "B=0.5",
		"-price", "A=10", "-price", "B=20", "-buffer", "B=0.5",
		"-rounding", "floor",
	)
	in, err := c.buildInput(context.Background(), set, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)

	assert.True(t, in.Budget.Equal(allocator.M(3000, "TWD")))
	require.Len(t, in.Weights, 2)
	assert.Equal(t, "A", in.Weights[0].Code)
	assert.Equal(t, "B", in.Weights[1].Code)
	assert.True(t, in.Quotes.Get("B").EffectivePrice().Equal(allocator.M(20.5, "TWD")))
	assert.Equal(t, allocator.Floor, in.Fees.Rounding)
	assert.Equal(t, 0.001425, in.Fees.Rate)
	assert.Equal(t, allocator.Reject, in.Weighting)
}

func TestCalc_BuildInput_Defaults(t *testing.T) {
	c, set := parseCalc(t, "-budget", "3000")
	in, err := c.buildInput(context.Background(), set, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, allocator.DefaultWeights(), in.Weights)
	assert.Equal(t, allocator.TaiwanFees(), in.Fees)
	assert.Equal(t, allocator.DefaultTolerance, in.Tolerance)
}

func TestCalc_BuildInput_Layers(t *testing.T) {
	setup := writeFile(t, "allocation.json", `{
	  "currency": "TWD",
	  "budget": 1000,
	  "weighting": "renormalize",
	  "fees": {"rate": 0.001425, "oddLotMinFee": 1, "roundLotMinFee": 20, "roundLotThreshold": 1000, "rounding": "half-even"},
	  "assets": [{"code": "X", "weight": 2, "price": 5}, {"code": "Y", "weight": 1}, {"code": "Z", "weight": 1}]
	}`)
	quotes := writeFile(t, "quotes.jsonl", `{"code": "X", "price": 4}
{"code": "Y", "price": 7}
{"code": "Z", "price": 9}
`)
	c, set := parseCalc(t,
		"-setup", setup,
		"-quotes", quotes,
		"-budget", "2000",
		"-price", "Z=10",
		"-digits", "2",
	)
	in, err := c.buildInput(context.Background(), set, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)

	assert.True(t, in.Budget.Equal(allocator.M(2000, "TWD")))
	assert.Equal(t, allocator.Renormalize, in.Weighting)
	assert.Equal(t, allocator.HalfEven, in.Fees.Rounding)
	assert.Equal(t, int32(2), in.Fees.Digits)
	assert.Equal(t, "5", in.Quotes.Get("X").Price.Decimal().String(), "the setup file wins over the quotes file")
	assert.Equal(t, "7", in.Quotes.Get("Y").Price.Decimal().String())
	assert.Equal(t, "10", in.Quotes.Get("Z").Price.Decimal().String(), "flags win over everything")

	res, err := allocator.ComputePortfolio(in)
	require.NoError(t, err)
	assert.True(t, res.Renormalized)
}

func TestCalc_BuildInput_QuotesJSON(t *testing.T) {
	doc := writeFile(t, "market.json", `{"data": [{"code": "A", "close": "10.00"}, {"code": "B", "close": 20}]}`)
	c, set := parseCalc(t,
		"-budget", "3000",
		"-weight", "A=0.5", "-weight", "B=0.5",
		"-quotes-json", doc,
		"-select", `A=$.data[?(@.code=="A")].close`,
		"-select", `B=$.data[1].close`,
	)
	in, err := c.buildInput(context.Background(), set, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, in.Quotes.Get("A").Price.Equal(allocator.M(10, "TWD")))
	assert.True(t, in.Quotes.Get("B").Price.Equal(allocator.M(20, "TWD")))
}

func TestCalc_BuildInput_Interactive(t *testing.T) {
	c, set := parseCalc(t, "-i", "-weight", "A=1")
	var out bytes.Buffer
	in, err := c.buildInput(context.Background(), set, strings.NewReader("1500\nten\n10\n"), &out)
	require.NoError(t, err)

	assert.True(t, in.Budget.Equal(allocator.M(1500, "TWD")))
	assert.True(t, in.Quotes.Get("A").Price.Equal(allocator.M(10, "TWD")))
	assert.Contains(t, out.String(), "Budget (TWD): ")
	assert.Contains(t, out.String(), "Price of A: ")

	res, err := allocator.ComputePortfolio(in)
	require.NoError(t, err)
	a, _ := res.Trade("A")
	assert.Equal(t, int64(149), a.Shares)
}

func TestCalc_BuildInput_InteractiveSkipsKnownPrices(t *testing.T) {
	c, set := parseCalc(t, "-i", "-budget", "100", "-weight", "A=0.5", "-weight", "B=0.5", "-price", "A=10")
	var out bytes.Buffer
	_, err := c.buildInput(context.Background(), set, strings.NewReader("20\n"), &out)
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "Price of A")
	assert.NotContains(t, out.String(), "Budget")
}

func TestCalc_BuildInput_Errors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "no budget", args: nil, want: "no budget"},
		{name: "bad budget", args: []string{"-budget", "lots"}, want: "-budget"},
		{name: "bad price", args: []string{"-budget", "1", "-price", "A=free"}, want: "-price"},
		{name: "missing setup", args: []string{"-setup", "does-not-exist.json"}, want: "setup file"},
		{name: "select alone", args: []string{"-budget", "1", "-select", "A=$.a"}, want: "-quotes-json"},
		{name: "missing quotes", args: []string{"-budget", "1", "-quotes", "does-not-exist.jsonl"}, want: "quotes file"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, set := parseCalc(t, tc.args...)
			_, err := c.buildInput(context.Background(), set, strings.NewReader(""), &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestCalc_BuildInput_CurrencyMismatch(t *testing.T) {
	setup := writeFile(t, "allocation.json", `{"currency": "USD", "budget": 100, "assets": [{"code": "A", "weight": 1}]}`)

	c, set := parseCalc(t, "-setup", setup)
	in, err := c.buildInput(context.Background(), set, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "USD", in.Budget.Currency())

	c, set = parseCalc(t, "-setup", setup, "-currency", "TWD")
	_, err = c.buildInput(context.Background(), set, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorContains(t, err, "USD")
}

func TestCalc_BuildInput_ZeroPriceClearsSetupPrice(t *testing.T) {
	setup := writeFile(t, "allocation.json", `{
	  "currency": "TWD",
	  "budget": 1000,
	  "assets": [{"code": "X", "weight": 0.5, "price": 5}, {"code": "Y", "weight": 0.5, "price": 7}]
	}`)
	c, set := parseCalc(t, "-setup", setup, "-price", "X=0")
	in, err := c.buildInput(context.Background(), set, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, in.Quotes.Get("X").Price.IsZero())
	assert.Equal(t, "7", in.Quotes.Get("Y").Price.Decimal().String())

	res, err := allocator.ComputePortfolio(in)
	require.NoError(t, err)
	assert.Contains(t, res.Warnings, "no usable price for X, nothing bought")
}
