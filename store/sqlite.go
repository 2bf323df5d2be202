package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bondfolio/bondfolio"
)

// SQLiteStore keeps ledgers in an embedded SQLite database, one row per
// transaction. The row stores the same canonical JSON line the file backend
// writes, plus indexed columns for the ledger name and the date, so the two
// backends stay interchangeable.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and ensures the schema.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(name string) (*bondfolio.Ledger, error) {
	rows, err := s.db.Query(
		`SELECT line FROM transactions WHERE ledger = ? ORDER BY date, rowid`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines strings.Builder
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, err
		}
		lines.WriteString(line)
		lines.WriteByte('\n')
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ledger, err := bondfolio.DecodeLedger(strings.NewReader(lines.String()))
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger %q: %w", name, err)
	}
	ledger.SetName(name)
	return ledger, nil
}

func (s *SQLiteStore) Save(ledger *bondfolio.Ledger) error {
	if ledger.Name() == "" {
		return fmt.Errorf("cannot save ledger with an empty name")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM transactions WHERE ledger = ?`, ledger.Name()); err != nil {
		return err
	}
	stmt, err := tx.Prepare(
		`INSERT INTO transactions (id, ledger, type, date, line) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range ledger.Transactions() {
		var line strings.Builder
		if err := bondfolio.EncodeTransaction(&line, t); err != nil {
			return err
		}
		_, err := stmt.Exec(t.ID(), ledger.Name(), string(t.What()), t.When().String(),
			strings.TrimSuffix(line.String(), "\n"))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT ledger FROM transactions ORDER BY ledger`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
