package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/allocator"
	"github.com/etnz/allocator/config"
	"github.com/etnz/allocator/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// calcCmd holds the flags for the 'calc' subcommand.
type calcCmd struct {
	cfg *config.Config

	input       inputFlags
	fees        feeFlags
	prices      assignments
	buffers     assignments
	quotesFile  string
	quotesJSON  string
	selectors   assignments
	interactive bool
	format      string
}

func (*calcCmd) Name() string     { return "calc" }
func (*calcCmd) Synopsis() string { return "compute how many shares of each asset to buy" }
func (*calcCmd) Usage() string {
	return `alloc calc [-setup <file>] [-budget <amount>] [-weight <code>=<weight>...] [-price <code>=<price>...] [-i]

  Splits the budget across the assets according to their weights, and
  computes for each asset the largest number of shares whose cost, fee
  included, fits in its share of the budget.

  Settings are taken from the environment (ALLOCATOR_*), then the setup
  file, then the command line flags.

Usage Examples:
# Use the setup file, ask for missing prices.
$ alloc calc -i

# Everything on the command line.
$ alloc calc -budget 3000 -weight 0050=0.6 -weight 00878=0.4 -price 0050=150 -price 00878=20

`
}

func (c *calcCmd) SetFlags(f *flag.FlagSet) {
	c.input.register(f, c.cfg)
	c.fees.register(f, c.cfg.Fees())
	f.Var(&c.prices, "price", "Market price of an asset as code=price, repeat for each asset. 0 discards the price of the files")
	f.Var(&c.buffers, "buffer", "Amount added to the market price of an asset as code=buffer, repeat for each asset")
	f.StringVar(&c.quotesFile, "quotes", "", "Path to a quotes file (JSONL)")
	f.StringVar(&c.quotesJSON, "quotes-json", "", "Path to any JSON document holding prices, see -select")
	f.Var(&c.selectors, "select", "JSONPath of the price of an asset in the -quotes-json document, as code=path")
	f.BoolVar(&c.interactive, "i", false, "Ask for the budget and missing prices")
	f.StringVar(&c.format, "format", "markdown", "Output format: markdown, json or csv")
}

func (c *calcCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := zerolog.Ctx(ctx)

	switch c.format {
	case "markdown", "json", "csv":
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}

	in, err := c.buildInput(ctx, isSet(f), os.Stdin, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := in.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid settings: %v\n", err)
		return subcommands.ExitUsageError
	}

	res, err := allocator.ComputePortfolio(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, w := range res.Warnings {
		log.Warn().Msg(w)
	}
	log.Debug().
		Str("spent", res.TotalSpent.String()).
		Str("remaining", res.Remaining.String()).
		Msg("portfolio computed")

	switch c.format {
	case "json":
		err = allocator.EncodeJSON(os.Stdout, res)
	case "csv":
		err = allocator.EncodeCSV(os.Stdout, res)
	default:
		printMarkdown(c.cfg.Style, renderer.RenderPortfolio(res, renderer.RenderOptions{}))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// buildInput gathers the input of the computation. Quotes files come first,
// then the prices of the setup file, then the -price and -buffer flags.
// In interactive mode, missing values are asked on 'in'.
func (c *calcCmd) buildInput(ctx context.Context, set map[string]bool, in io.Reader, out io.Writer) (allocator.Input, error) {
	input, hasBudget, err := c.input.resolve(ctx, c.cfg, set)
	if err != nil {
		return input, err
	}
	input.Fees = c.fees.apply(input.Fees, set)
	currency := input.Budget.Currency()

	quotes := make(allocator.Quotes)
	if c.quotesFile != "" {
		q, err := decodeQuotesFile(c.quotesFile, currency)
		if err != nil {
			return input, err
		}
		quotes = quotes.Merge(q)
	}
	switch {
	case c.quotesJSON != "":
		q, err := extractQuotesFile(c.quotesJSON, c.selectors.values, currency)
		if err != nil {
			return input, err
		}
		quotes = quotes.Merge(q)
	case c.selectors.Len() > 0:
		return input, fmt.Errorf("-select requires -quotes-json")
	}
	quotes = quotes.Merge(input.Quotes)

	flagged := make(allocator.Quotes)
	codes, prices, err := c.prices.amounts()
	if err != nil {
		return input, fmt.Errorf("-price: %w", err)
	}
	for _, code := range codes {
		flagged.Set(code, allocator.M(prices[code], currency))
	}
	codes, buffers, err := c.buffers.amounts()
	if err != nil {
		return input, fmt.Errorf("-buffer: %w", err)
	}
	for _, code := range codes {
		flagged.SetBuffer(code, allocator.M(buffers[code], currency))
	}
	input.Quotes = quotes.Merge(flagged)

	if c.interactive {
		p := newPrompter(in, out)
		if !hasBudget {
			amount, err := p.amount(fmt.Sprintf("Budget (%s)", currency))
			if err != nil {
				return input, fmt.Errorf("no budget: %w", err)
			}
			input.Budget = allocator.M(amount, currency)
			hasBudget = true
		}
		for _, w := range input.Weights {
			if input.Quotes.Get(w.Code).EffectivePrice().IsPositive() {
				continue
			}
			price, err := p.amount(fmt.Sprintf("Price of %s", w.Code))
			if err != nil {
				return input, fmt.Errorf("no price for %s: %w", w.Code, err)
			}
			input.Quotes.Set(w.Code, allocator.M(price, currency))
		}
	}
	if !hasBudget {
		return input, fmt.Errorf("no budget: use -budget, a setup file or -i")
	}
	return input, nil
}

func decodeQuotesFile(name, currency string) (allocator.Quotes, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("cannot open quotes file: %w", err)
	}
	defer f.Close()
	return allocator.DecodeQuotes(name, f, currency)
}

func extractQuotesFile(name string, selectors map[string]string, currency string) (allocator.Quotes, error) {
	if len(selectors) == 0 {
		return nil, fmt.Errorf("-quotes-json requires at least one -select")
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("cannot open quotes document: %w", err)
	}
	defer f.Close()
	doc, err := allocator.DecodeJSONDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", name, err)
	}
	return allocator.ExtractQuotes(doc, selectors, currency)
}
