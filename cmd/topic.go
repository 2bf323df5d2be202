package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bondfolio/bondfolio/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `topic [-list] [<topic>...]

  Show documentation for the given topics. Without arguments, shows the
  readme. Use -list to see what is available.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "List available topics")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		topics, err := docs.GetAllTopics()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing topics: %v\n", err)
			return subcommands.ExitFailure
		}
		var b strings.Builder
		b.WriteString("# Topics\n\n")
		for _, t := range topics {
			title, err := docs.Title(t)
			if err != nil {
				title = t
			}
			fmt.Fprintf(&b, "- `%s` %s\n", t, title)
		}
		printMarkdown(b.String())
		return subcommands.ExitSuccess
	}

	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	doc, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
