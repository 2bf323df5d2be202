package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bondfolio/bondfolio"
)

func newTestSQLite(t *testing.T) (*SQLiteStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	return s, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	s, path := newTestSQLite(t)
	assert.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='transactions'`).Scan(&name)
	assert.NoError(t, err)
	assert.Equal(t, "transactions", name)
}

func TestSQLiteSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = s.Close() })

	original := bondfolio.DemoLedger()
	require.NoError(t, s.Save(original))

	loaded, err := s.Load("demo")
	require.NoError(t, err)

	assert.Equal(t, original.Name(), loaded.Name())
	require.Equal(t, original.Len(), loaded.Len())
	for _, want := range original.Transactions() {
		got := loaded.Get(want.ID())
		require.NotNil(t, got, "transaction %s lost", want.ID())
		assert.True(t, want.Equal(got), "transaction %s differs after round trip", want.ID())
	}
}

func TestSQLiteSaveReplacesPreviousContent(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Save(bondfolio.DemoLedger()))

	trimmed := bondfolio.NewLedger()
	trimmed.SetName("demo")
	trimmed.Append(bondfolio.NewDeposit(bondfolio.MustParseDate("2024-01-15"), "", bondfolio.M(2000, bondfolio.USD)))
	require.NoError(t, s.Save(trimmed))

	loaded, err := s.Load("demo")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
}

func TestSQLiteSaveRejectsUnnamedLedger(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = s.Close() })

	assert.Error(t, s.Save(bondfolio.NewLedger()))
}

func TestSQLiteList(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Save(bondfolio.DemoLedger()))
	other := bondfolio.NewLedger()
	other.SetName("alpha")
	other.Append(bondfolio.NewDeposit(bondfolio.MustParseDate("2024-01-15"), "", bondfolio.M(100, bondfolio.USD)))
	require.NoError(t, s.Save(other))

	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "demo"}, names)
}
