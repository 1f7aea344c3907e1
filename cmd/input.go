package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/allocator"
	"github.com/etnz/allocator/config"
	"github.com/rs/zerolog"
)

// inputFlags are the flags describing what to allocate, shared by calc and
// plan.
type inputFlags struct {
	setup     string
	budget    string
	currency  string
	weights   assignments
	weighting allocator.WeightMode
	tolerance float64
}

func (o *inputFlags) register(f *flag.FlagSet, cfg *config.Config) {
	o.weighting = cfg.WeightMode()
	f.StringVar(&o.setup, "setup", cfg.SetupFile, "Path to the setup file (JSON). The default one is optional.")
	f.StringVar(&o.budget, "budget", "", "Total budget to invest, e.g. 3000 or 3,000")
	f.StringVar(&o.currency, "currency", cfg.Currency, "Currency of the budget and prices")
	f.Var(&o.weights, "weight", "Target weight of an asset as code=weight, repeat for each asset. Replaces the weights of the setup file.")
	f.Var(&o.weighting, "weighting", "What to do with weights not summing to 1: reject or renormalize")
	f.Float64Var(&o.tolerance, "tolerance", cfg.Tolerance, "Accepted distance between the sum of the weights and 1")
}

// resolve builds the input from the configuration, then the setup file, then
// the flags set on the command line, each layer overriding the previous one.
//
// The budget is zero when none of the layers defines it, hasBudget tells it
// apart from an explicit zero.
func (o *inputFlags) resolve(ctx context.Context, cfg *config.Config, set map[string]bool) (in allocator.Input, hasBudget bool, err error) {
	log := zerolog.Ctx(ctx)

	setup, err := o.loadSetup(set["setup"])
	if err != nil {
		return in, false, err
	}
	if setup == nil {
		log.Debug().Str("file", o.setup).Msg("no setup file")
		setup = &allocator.Setup{Quotes: make(allocator.Quotes)}
	}

	currency := cfg.Currency
	fileCurrency := ""
	if setup.Budget != nil {
		fileCurrency = setup.Budget.Currency()
	}
	if fileCurrency != "" {
		currency = fileCurrency
	}
	if set["currency"] {
		currency = o.currency
	}
	if fileCurrency != "" && fileCurrency != currency {
		return in, false, fmt.Errorf("setup file %q is in %s, not %s", o.setup, fileCurrency, currency)
	}

	in.Budget = allocator.M(0, currency)
	if setup.Budget != nil {
		in.Budget = allocator.M(setup.Budget.Decimal(), currency)
		hasBudget = true
	}
	if set["budget"] {
		amount, err := allocator.ParseAmount(o.budget)
		if err != nil {
			return in, false, fmt.Errorf("-budget: %w", err)
		}
		in.Budget = allocator.M(amount, currency)
		hasBudget = true
	}

	in.Weights = allocator.DefaultWeights()
	if len(setup.Weights) > 0 {
		in.Weights = setup.Weights
	}
	if o.weights.Len() > 0 {
		if in.Weights, err = o.weights.weights(); err != nil {
			return in, false, fmt.Errorf("-weight: %w", err)
		}
	}

	in.Quotes = setup.Quotes

	in.Fees = cfg.Fees()
	if setup.Fees != nil {
		in.Fees = *setup.Fees
	}

	in.Weighting = cfg.WeightMode()
	if setup.Weighting != nil {
		in.Weighting = *setup.Weighting
	}
	if set["weighting"] {
		in.Weighting = o.weighting
	}

	in.Tolerance = cfg.Tolerance
	if setup.Tolerance != 0 {
		in.Tolerance = setup.Tolerance
	}
	if set["tolerance"] {
		in.Tolerance = o.tolerance
	}

	log.Debug().
		Str("budget", in.Budget.String()).
		Int("assets", len(in.Weights)).
		Str("weighting", in.Weighting.String()).
		Msg("input resolved")
	return in, hasBudget, nil
}

// loadSetup decodes the setup file. A missing file is not an error unless it
// was explicitly asked for.
func (o *inputFlags) loadSetup(explicit bool) (*allocator.Setup, error) {
	if o.setup == "" {
		return nil, nil
	}
	f, err := os.Open(o.setup)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open setup file: %w", err)
	}
	defer f.Close()
	setup, err := allocator.DecodeSetup(f)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", o.setup, err)
	}
	return setup, nil
}

// feeFlags override the fee schedule.
type feeFlags struct {
	rate     float64
	oddMin   int64
	roundMin int64
	roundLot int64
	rounding allocator.RoundingMode
	digits   int
}

func (o *feeFlags) register(f *flag.FlagSet, defaults allocator.FeeConfig) {
	o.rounding = defaults.Rounding
	f.Float64Var(&o.rate, "rate", defaults.Rate, "Fee rate, 0.001425 is 0.1425%")
	f.Int64Var(&o.oddMin, "odd-min", defaults.OddLotMinFee, "Minimum fee of an odd lot")
	f.Int64Var(&o.roundMin, "round-min", defaults.RoundLotMinFee, "Minimum fee of a round lot")
	f.Int64Var(&o.roundLot, "round-lot", defaults.RoundLotThreshold, "Number of shares from which a trade is a round lot")
	f.Var(&o.rounding, "rounding", "Fee rounding: half-up, floor or half-even")
	f.IntVar(&o.digits, "digits", int(defaults.Digits), "Fraction digits of the fee charging unit")
}

// apply overrides 'fees' with the flags set on the command line.
func (o *feeFlags) apply(fees allocator.FeeConfig, set map[string]bool) allocator.FeeConfig {
	if set["rate"] {
		fees.Rate = o.rate
	}
	if set["odd-min"] {
		fees.OddLotMinFee = o.oddMin
	}
	if set["round-min"] {
		fees.RoundLotMinFee = o.roundMin
	}
	if set["round-lot"] {
		fees.RoundLotThreshold = o.roundLot
	}
	if set["rounding"] {
		fees.Rounding = o.rounding
	}
	if set["digits"] {
		fees.Digits = int32(o.digits)
	}
	return fees
}
