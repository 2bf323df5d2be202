// Package store provides persistence backends for ledgers: flat JSONL files
// and an embedded SQLite database. Both speak the same canonical JSON line
// format, so a ledger can move between backends without loss.
package store

import "github.com/bondfolio/bondfolio"

// Repository loads and saves ledgers by name.
type Repository interface {
	// Load returns the ledger stored under name. A missing name yields a
	// fresh empty ledger carrying that name, so callers can always append.
	Load(name string) (*bondfolio.Ledger, error)
	// Save persists the ledger under its own name, replacing any previous
	// content atomically from the reader's point of view.
	Save(ledger *bondfolio.Ledger) error
	// List returns the names of all stored ledgers.
	List() ([]string, error)
	Close() error
}
