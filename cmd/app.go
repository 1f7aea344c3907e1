// Package cmd implements the alloc command line application.
package cmd

import (
	"flag"

	"github.com/etnz/allocator/config"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander, cfg *config.Config) {
	c.Register(&calcCmd{cfg: cfg}, "allocation")
	c.Register(&planCmd{cfg: cfg}, "allocation")
	c.Register(&feeCmd{cfg: cfg}, "allocation")

	c.Register(&topicCmd{cfg: cfg}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

// Verbose enables debug logs.
var Verbose = flag.Bool("v", false, "verbose: log debug messages")

// IsBuiltin reports whether 'name' is a subcommand registered in c.
func IsBuiltin(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}
