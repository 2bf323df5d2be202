package store

import (
	"errors"
	"io/fs"
	"os"

	"github.com/bondfolio/bondfolio"
)

// FileStore keeps each ledger as a .jsonl file under a root directory.
type FileStore struct {
	root string
}

// NewFileStore returns a FileStore rooted at dir. The directory is created
// lazily on the first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir}
}

func (s *FileStore) Load(name string) (*bondfolio.Ledger, error) {
	if _, err := os.Stat(s.root); errors.Is(err, fs.ErrNotExist) {
		return fresh(name), nil
	}
	ledger, err := bondfolio.FindLedger(s.root, name)
	if err == nil {
		return ledger, nil
	}
	// A missing file is not an error for Load: start a fresh ledger under
	// that name. Decode failures still surface.
	ledgers, listErr := bondfolio.FindLedgers(s.root, name)
	if listErr == nil && len(ledgers) == 0 {
		return fresh(name), nil
	}
	return nil, err
}

func fresh(name string) *bondfolio.Ledger {
	l := bondfolio.NewLedger()
	l.SetName(name)
	return l
}

func (s *FileStore) Save(ledger *bondfolio.Ledger) error {
	return bondfolio.SaveLedger(s.root, ledger)
}

func (s *FileStore) List() ([]string, error) {
	ledgers, err := bondfolio.FindLedgers(s.root, "")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ledgers))
	for _, l := range ledgers {
		names = append(names, l.Name())
	}
	return names, nil
}

func (s *FileStore) Close() error { return nil }
