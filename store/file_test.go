package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bondfolio/bondfolio"
)

func TestFileStoreSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewFileStore(t.TempDir())
	t.Cleanup(func() { _ = s.Close() })

	original := bondfolio.DemoLedger()
	require.NoError(t, s.Save(original))

	loaded, err := s.Load("demo")
	require.NoError(t, err)
	require.Equal(t, original.Len(), loaded.Len())
	for _, want := range original.Transactions() {
		got := loaded.Get(want.ID())
		require.NotNil(t, got)
		assert.True(t, want.Equal(got))
	}
}

func TestFileStoreLoadMissingReturnsFreshLedger(t *testing.T) {
	t.Parallel()

	s := NewFileStore(t.TempDir())
	ledger, err := s.Load("brand-new")
	require.NoError(t, err)
	assert.Equal(t, "brand-new", ledger.Name())
	assert.Equal(t, 0, ledger.Len())
}

func TestFileStoreLoadMissingDirectory(t *testing.T) {
	t.Parallel()

	s := NewFileStore(t.TempDir() + "/does-not-exist")
	ledger, err := s.Load("main")
	require.NoError(t, err)
	assert.Equal(t, 0, ledger.Len())
}

func TestFileStoreList(t *testing.T) {
	t.Parallel()

	s := NewFileStore(t.TempDir())
	require.NoError(t, s.Save(bondfolio.DemoLedger()))

	other := bondfolio.NewLedger()
	other.SetName("alpha")
	other.Append(bondfolio.NewDeposit(bondfolio.MustParseDate("2024-01-15"), "", bondfolio.M(100, bondfolio.USD)))
	require.NoError(t, s.Save(other))

	names, err := s.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "demo"}, names)
}

func TestBackendsAreInterchangeable(t *testing.T) {
	t.Parallel()

	// A ledger saved by the file backend and re-saved through SQLite must
	// come back identical: both speak the same canonical lines.
	var _ Repository = (*FileStore)(nil)
	var _ Repository = (*SQLiteStore)(nil)

	files := NewFileStore(t.TempDir())
	require.NoError(t, files.Save(bondfolio.DemoLedger()))
	fromFile, err := files.Load("demo")
	require.NoError(t, err)

	db, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Save(fromFile))
	fromDB, err := db.Load("demo")
	require.NoError(t, err)

	require.Equal(t, fromFile.Len(), fromDB.Len())
	for _, want := range fromFile.Transactions() {
		got := fromDB.Get(want.ID())
		require.NotNil(t, got)
		assert.True(t, want.Equal(got))
	}
}
