// Command alloc computes how many shares of each asset to buy with a budget.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/allocator/cmd"
	"github.com/etnz/allocator/config"
	"github.com/etnz/allocator/logger"
	"github.com/google/subcommands"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander, cfg)

	// exits when invoked by the shell for completion.
	cmd.Completion(commander).Complete("alloc")

	flag.Parse()

	level := cfg.LogLevel
	if *cmd.Verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Level: level, Pretty: cfg.LogPretty})
	ctx := logger.WithContext(context.Background(), log)

	if name := flag.Arg(0); name != "" && !cmd.IsBuiltin(commander, name) {
		if found, code := cmd.RunExtension(ctx, cfg, name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(ctx)))
}
