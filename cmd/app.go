// Package cmd implements the CLI application to manage a bond portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bondfolio/bondfolio"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() to declare them, then Execute() runs the
// user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&couponCmd{}, "transactions")
	c.Register(&maturityCmd{}, "transactions")
	c.Register(&depositCmd{}, "transactions")
	c.Register(&debitCmd{}, "transactions")
	c.Register(&creditCmd{}, "transactions")
	c.Register(&dividendCmd{}, "transactions")

	c.Register(&reportCmd{}, "reports")
	c.Register(&yieldCmd{}, "reports")
	c.Register(&txCmd{}, "reports")

	c.Register(&fmtCmd{}, "ledger")
	c.Register(&demoCmd{}, "ledger")
	c.Register(&importCmd{}, "ledger")
	c.Register(&backupCmd{}, "ledger")

	c.Register(&topicCmd{}, "documentation")
}

// As a CLI application the process is short lived, so globals are fine.

var portfolioPath = flag.String("p", defaultPortfolioPath(), "Path to the portfolio directory holding ledger files")

// defaultPortfolioPath resolves the portfolio directory: the BONDFOLIO_PATH
// environment variable wins, then $HOME/.bondfolio.
func defaultPortfolioPath() string {
	if p := os.Getenv("BONDFOLIO_PATH"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bondfolio"
	}
	return filepath.Join(home, ".bondfolio")
}

// PortfolioPath returns the portfolio directory in use.
func PortfolioPath() string { return *portfolioPath }

// DecodeLedger loads the single ledger matching name from the portfolio
// directory. An empty name works when the directory holds a single ledger,
// or none at all.
func DecodeLedger(name string) (*bondfolio.Ledger, error) {
	return bondfolio.FindLedger(*portfolioPath, name)
}

// DecodeLedgers loads all ledgers matching the query.
func DecodeLedgers(query string) ([]*bondfolio.Ledger, error) {
	return bondfolio.FindLedgers(*portfolioPath, query)
}

// appendTransaction validates a transaction against the ledger, appends it,
// and saves the ledger back.
func appendTransaction(ledgerName string, tx bondfolio.Transaction) subcommands.ExitStatus {
	ledger, err := DecodeLedger(ledgerName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	validated, err := ledger.Validate(tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid transaction: %v\n", err)
		return subcommands.ExitFailure
	}
	ledger.Append(validated)

	if err := bondfolio.SaveLedger(*portfolioPath, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save ledger %q: %v\n", ledger.Name(), err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %s on %s in ledger %q\n", validated.What(), validated.When(), ledger.Name())
	return subcommands.ExitSuccess
}
