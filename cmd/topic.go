package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/allocator/config"
	"github.com/etnz/allocator/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	cfg  *config.Config
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `topic <topic>

Show documentation for a given topic, "*" for all of them.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "list the topics and their titles")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		return c.listTopics()
	}

	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{docs.Index}
	}

	doc, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(c.cfg.Style, doc)

	return subcommands.ExitSuccess
}

func (c *topicCmd) listTopics() subcommands.ExitStatus {
	topics, err := docs.GetAllTopics()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing topics: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, t := range topics {
		title, err := docs.Title(t)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%-10s %s\n", t, title)
	}
	return subcommands.ExitSuccess
}
