package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bondfolio/bondfolio/store"
	"github.com/google/subcommands"
)

type backupCmd struct {
	file string
}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "copy all ledgers into an SQLite database" }
func (*backupCmd) Usage() string {
	return `backup [-o <file.db>]

  Copies every ledger into an SQLite database, one row per transaction,
  replacing any previous copy of the same ledger. The rows carry the same
  canonical JSON lines as the ledger files.
`
}

func (c *backupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "o", "bondfolio.db", "Path of the SQLite database to write")
}

func (c *backupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledgers, err := DecodeLedgers("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledgers: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(ledgers) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no ledgers found to back up.")
		return subcommands.ExitSuccess
	}

	db, err := store.NewSQLite(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	for _, ledger := range ledgers {
		if err := db.Save(ledger); err != nil {
			fmt.Fprintf(os.Stderr, "Error backing up ledger %q: %v\n", ledger.Name(), err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Backed up ledger %q (%d transactions).\n", ledger.Name(), ledger.Len())
	}
	fmt.Printf("Backed up %d ledgers to %s\n", len(ledgers), c.file)
	return subcommands.ExitSuccess
}
