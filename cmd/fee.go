package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/allocator"
	"github.com/etnz/allocator/config"
	"github.com/etnz/allocator/renderer"
	"github.com/google/subcommands"
)

type feeCmd struct {
	cfg      *config.Config
	fees     feeFlags
	shares   int64
	price    string
	currency string
}

func (*feeCmd) Name() string     { return "fee" }
func (*feeCmd) Synopsis() string { return "compute the brokerage fee of a trade" }
func (*feeCmd) Usage() string {
	return `alloc fee -shares <n> -price <price>

  Shows the fee of buying n shares at a given price, with the configured
  fee schedule.
`
}

func (c *feeCmd) SetFlags(f *flag.FlagSet) {
	c.fees.register(f, c.cfg.Fees())
	f.Int64Var(&c.shares, "shares", 0, "Number of shares")
	f.StringVar(&c.price, "price", "", "Price of one share")
	f.StringVar(&c.currency, "currency", c.cfg.Currency, "Currency of the price")
}

func (c *feeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.shares <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -shares must be positive")
		return subcommands.ExitUsageError
	}
	price, err := allocator.ParseAmount(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -price: %v\n", err)
		return subcommands.ExitUsageError
	}
	fees := c.fees.apply(c.cfg.Fees(), isSet(f))
	if err := fees.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid fee schedule: %v\n", err)
		return subcommands.ExitUsageError
	}

	printMarkdown(c.cfg.Style, renderer.FeeMarkdown(fees, c.shares, allocator.M(price, c.currency)))
	return subcommands.ExitSuccess
}
