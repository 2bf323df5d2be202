package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bondfolio/bondfolio"
	"github.com/bondfolio/bondfolio/renderer"
	"github.com/google/subcommands"
)

type yieldCmd struct {
	ledger string
	date   string
}

func (*yieldCmd) Name() string     { return "yield" }
func (*yieldCmd) Synopsis() string { return "show the annualized yield and its cash flows" }
func (*yieldCmd) Usage() string {
	return `yield [-l <ledger>] [-d <date>]

  Computes the portfolio's annualized internal rate of return (XIRR) and
  shows the cash-flow series behind it. See 'bfo topic xirr'.
`
}

func (c *yieldCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledger, "l", "", "Ledger to report on. Defaults to the only ledger if one exists.")
	f.StringVar(&c.date, "d", "", "Valuation date (YYYY-MM-DD), defaults to today")
}

func (c *yieldCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger(c.ledger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	asOf, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	flows, err := bondfolio.CashFlows(ledger, asOf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error extracting cash flows: %v\n", err)
		return subcommands.ExitFailure
	}
	yield, err := bondfolio.PortfolioYield(ledger, asOf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing yield: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderYield(ledger.Name(), flows, yield))
	return subcommands.ExitSuccess
}
