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

type reportCmd struct {
	ledger string
	date   string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "show the calculated portfolio" }
func (*reportCmd) Usage() string {
	return `report [-l <ledger>] [-d <date>]

  Recomputes the whole portfolio from the transaction history and shows
  cash balances, open positions with unrealized P&L, and the annualized
  yield.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledger, "l", "", "Ledger to report on. Defaults to the only ledger if one exists.")
	f.StringVar(&c.date, "d", "", "Report date (YYYY-MM-DD), defaults to today")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	p, err := bondfolio.Calculate(ledger, asOf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error calculating portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderPortfolio(ledger.Name(), p))
	return subcommands.ExitSuccess
}
