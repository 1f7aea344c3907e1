package cmd

import (
	"flag"

	"github.com/etnz/allocator/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the registered subcommands and their flags for shell
// completion.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: make(map[string]complete.Predictor),
	}
	flag.CommandLine.VisitAll(func(fl *flag.Flag) {
		root.Flags[fl.Name] = predictFlag(fl.Name)
	})

	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
		fs.VisitAll(func(fl *flag.Flag) {
			sub.Flags[fl.Name] = predictFlag(fl.Name)
		})
		if cmd.Name() == "topic" {
			if topics, err := docs.GetAllTopics(); err == nil {
				sub.Args = predict.Set(topics)
			}
		}
		root.Sub[cmd.Name()] = sub
	})
	return root
}

func predictFlag(name string) complete.Predictor {
	switch name {
	case "setup", "quotes-json":
		return predict.Files("*.json")
	case "quotes":
		return predict.Files("*.jsonl")
	case "rounding":
		return predict.Set{"half-up", "floor", "half-even"}
	case "weighting":
		return predict.Set{"reject", "renormalize"}
	case "format":
		return predict.Set{"markdown", "json", "csv"}
	case "i", "v", "list":
		return predict.Nothing
	default:
		return predict.Something
	}
}
