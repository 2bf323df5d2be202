package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bondfolio/bondfolio"
	"github.com/google/subcommands"
)

type demoCmd struct {
	force bool
}

func (*demoCmd) Name() string     { return "demo" }
func (*demoCmd) Synopsis() string { return "create a demo ledger with sample transactions" }
func (*demoCmd) Usage() string {
	return `demo [-f]

  Writes a "demo" ledger with a funding deposit, two bond purchases, and
  their coupon payments, so the reporting commands have something to show.
`
}

func (c *demoCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "f", false, "Overwrite an existing demo ledger")
}

func (c *demoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	existing, err := DecodeLedgers("demo")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if len(existing) > 0 && !c.force {
		fmt.Fprintln(os.Stderr, "Error: demo ledger already exists, use -f to overwrite.")
		return subcommands.ExitFailure
	}

	ledger := bondfolio.DemoLedger()
	if err := bondfolio.SaveLedger(PortfolioPath(), ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving demo ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created demo ledger with %d transactions. Try: bfo report -l demo\n", ledger.Len())
	return subcommands.ExitSuccess
}
