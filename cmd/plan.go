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

type planCmd struct {
	cfg   *config.Config
	input inputFlags
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "show the budget of each asset" }
func (*planCmd) Usage() string {
	return `alloc plan [-setup <file>] [-budget <amount>] [-weight <code>=<weight>...]

  Checks the weights and shows how the budget is split, without any price.
`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) { c.input.register(f, c.cfg) }

func (c *planCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, hasBudget, err := c.input.resolve(ctx, c.cfg, isSet(f))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if !hasBudget {
		fmt.Fprintln(os.Stderr, "Error: no budget: use -budget or a setup file")
		return subcommands.ExitUsageError
	}
	if err := in.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid settings: %v\n", err)
		return subcommands.ExitUsageError
	}

	plan, err := allocator.Planner{Mode: in.Weighting, Tolerance: in.Tolerance}.Plan(in.Weights, in.Budget)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(c.cfg.Style, renderer.PlanMarkdown(plan, in.Budget))
	return subcommands.ExitSuccess
}
