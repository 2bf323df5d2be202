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

type txCmd struct {
	ledger string
	delete string
	show   string
	head   int
	tail   int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list or manage transactions in the ledger" }
func (*txCmd) Usage() string {
	return `tx [-l <ledger>] [-head <n> | -tail <n>] [-show <id>] [-delete <id>]

  Lists transactions from the ledger. With -show or -delete, operates on a
  single transaction by its id.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledger, "l", "", "Ledger to report on. Defaults to the only ledger if one exists.")
	f.StringVar(&c.show, "show", "", "Print the raw JSON of the transaction with this id.")
	f.StringVar(&c.delete, "delete", "", "Delete the transaction with this id.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger(c.ledger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.show != "" {
		tx := ledger.Get(c.show)
		if tx == nil {
			fmt.Fprintf(os.Stderr, "Error: no transaction with id %q\n", c.show)
			return subcommands.ExitFailure
		}
		if err := bondfolio.EncodeTransaction(os.Stdout, tx); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if c.delete != "" {
		if !ledger.DeleteByID(c.delete) {
			fmt.Fprintf(os.Stderr, "Error: no transaction with id %q\n", c.delete)
			return subcommands.ExitFailure
		}
		if err := bondfolio.SaveLedger(PortfolioPath(), ledger); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving ledger %q: %v\n", ledger.Name(), err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Deleted transaction %s from ledger %q\n", c.delete, ledger.Name())
		return subcommands.ExitSuccess
	}

	// Listing: apply head/tail by copying into a trimmed ledger view.
	if c.head > 0 || c.tail > 0 {
		var txs []bondfolio.Transaction
		for _, tx := range ledger.Transactions() {
			txs = append(txs, tx)
		}
		if c.head > 0 && len(txs) > c.head {
			txs = txs[:c.head]
		}
		if c.tail > 0 && len(txs) > c.tail {
			txs = txs[len(txs)-c.tail:]
		}
		view := bondfolio.NewLedger()
		view.SetName(ledger.Name())
		view.Append(txs...)
		ledger = view
	}

	printMarkdown(renderer.RenderTransactions(ledger))
	return subcommands.ExitSuccess
}
