package bondfolio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultLedgerName is used for a brand-new portfolio directory that holds
// no ledger file yet.
const DefaultLedgerName = "main"

const ledgerExt = ".jsonl"

// FindLedger returns the single ledger matching the name under path. A
// ledger name is its relative path without the .jsonl extension. With an
// empty name and no ledger file present it returns a fresh default ledger,
// so a new portfolio directory works out of the box.
func FindLedger(path, name string) (*Ledger, error) {
	paths, err := findLedgerPaths(path, name)
	if err != nil {
		return nil, err
	}
	switch len(paths) {
	case 0:
		if name == "" {
			l := NewLedger()
			l.SetName(DefaultLedgerName)
			return l, nil
		}
		return nil, fmt.Errorf("could not find ledger %q", name)
	case 1:
		return loadLedgerFile(path, paths[0])
	default:
		return nil, fmt.Errorf("multiple ledgers found for %q", name)
	}
}

// FindLedgers loads every ledger under path whose name matches the query,
// or all of them when the query is empty.
func FindLedgers(path, query string) ([]*Ledger, error) {
	paths, err := findLedgerPaths(path, query)
	if err != nil {
		return nil, err
	}
	ledgers := make([]*Ledger, 0, len(paths))
	for _, p := range paths {
		l, err := loadLedgerFile(path, p)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, l)
	}
	return ledgers, nil
}

// SaveLedger writes the ledger to "<path>/<name>.jsonl", creating parent
// directories as needed.
func SaveLedger(path string, ledger *Ledger) error {
	if ledger.Name() == "" {
		return fmt.Errorf("cannot save ledger with an empty name")
	}
	filePath := filepath.Join(path, ledger.Name()+ledgerExt)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("could not create directory for ledger %q: %w", filePath, err)
	}
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", filePath, err)
	}
	defer f.Close()
	return EncodeLedger(f, ledger)
}

func loadLedgerFile(root, fullPath string) (*Ledger, error) {
	rel, err := filepath.Rel(root, fullPath)
	if err != nil {
		return nil, fmt.Errorf("could not determine relative path for %q: %w", fullPath, err)
	}
	f, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", fullPath, err)
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", fullPath, err)
	}
	ledger.SetName(strings.TrimSuffix(rel, ledgerExt))
	return ledger, nil
}

// findLedgerPaths walks the portfolio directory collecting .jsonl files
// whose ledger name matches the query (empty query matches all). A missing
// portfolio directory is a fresh install, not an error: it holds no ledgers.
func findLedgerPaths(path, query string) ([]string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	var paths []string
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ledgerExt) {
			return nil
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(rel, ledgerExt)
		if query == "" || name == query {
			paths = append(paths, p)
		}
		return nil
	})
	return paths, err
}
