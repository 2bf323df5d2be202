package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bondfolio/bondfolio"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	ledger string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats ledger files into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `fmt [-l <ledger>]

  Reads all transactions, validates them, applies the available quick fixes
  (like assigning missing ids), sorts them by date, and writes the ledger
  back in canonical JSONL form. By default every ledger is formatted
  in-place; use -l to pick one.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledger, "l", "", "Ledger to format. Formats all by default.")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledgers, err := DecodeLedgers(c.ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledgers: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(ledgers) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no ledgers found to format.")
		return subcommands.ExitSuccess
	}

	status := subcommands.ExitSuccess
	for _, ledger := range ledgers {
		formatted := bondfolio.NewLedger()
		formatted.SetName(ledger.Name())
		ok := true
		for _, tx := range ledger.Transactions() {
			validated, err := formatted.Validate(tx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error in ledger %q: %v\n", ledger.Name(), err)
				ok = false
				break
			}
			formatted.Append(validated)
		}
		if !ok {
			status = subcommands.ExitFailure
			continue
		}
		if err := bondfolio.SaveLedger(PortfolioPath(), formatted); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving ledger %q: %v\n", ledger.Name(), err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Fprintf(os.Stderr, "Formatted ledger %q (%d transactions).\n", ledger.Name(), formatted.Len())
	}
	return status
}
