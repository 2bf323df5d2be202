package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bondfolio/bondfolio"
	"github.com/bondfolio/bondfolio/finstore"
	"github.com/google/subcommands"
)

type importCmd struct {
	ledger string
	file   string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a Finstore broker export" }
func (*importCmd) Usage() string {
	return `import -i <export.json> [-l <ledger>]

  Reads a Finstore JSON export and appends its operations to the ledger as
  native transactions. Already-imported files will create duplicates:
  import each export once.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "i", "", "Path to the Finstore JSON export")
	f.StringVar(&c.ledger, "l", "", "Ledger to import into")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	in, err := os.Open(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening export file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	ledger, err := DecodeLedger(c.ledger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	before := ledger.Len()

	if err := finstore.Import(in, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}
	if err := bondfolio.SaveLedger(PortfolioPath(), ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger %q: %v\n", ledger.Name(), err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d transactions into ledger %q\n", ledger.Len()-before, ledger.Name())
	return subcommands.ExitSuccess
}
