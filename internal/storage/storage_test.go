package storage

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/suitebench/internal/scenario"
)

func openInMemory(t *testing.T) *DB {
	t.Helper()
	db, err := Open(InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleExecution() *scenario.ExecutionResult {
	return &scenario.ExecutionResult{
		Generator: "test",
		Suite: &scenario.SuiteResult{
			Name: "Root",
			Tests: []*scenario.TestResult{
				{Name: "top", Status: scenario.StatusPass, ElapsedMS: 0.5},
			},
			Suites: []*scenario.SuiteResult{{
				Name: "Child",
				Tests: []*scenario.TestResult{
					{Name: "a", Status: scenario.StatusPass},
					{Name: "b", Status: scenario.StatusFail, Message: "boom"},
				},
			}},
		},
	}
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}

func TestOpenPersistent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	db, err := Open(Config{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	assert.Equal(t, dir, db.Path())
	assert.False(t, db.InMemory())
	require.NoError(t, db.Close())
}

func TestVerboseLoggerWritesToStandardLog(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	cfg := InMemoryConfig()
	cfg.Verbose = true
	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	var l badger.Logger = badgerLogger{}
	l.Warningf("value log %d is large", 3)
	l.Debugf("never shown")
	assert.Contains(t, buf.String(), "[BADGER] WARN value log 3 is large")
	assert.NotContains(t, buf.String(), "never shown")
}

func TestWithTxnCommitsAndRollsBack(t *testing.T) {
	db := openInMemory(t)
	ctx := context.Background()

	require.NoError(t, db.WithTxn(ctx, func(txn *badger.Txn) error {
		return txn.Set([]byte("k"), []byte("v"))
	}))
	assert.Error(t, db.WithTxn(ctx, func(txn *badger.Txn) error {
		_ = txn.Set([]byte("discarded"), []byte("v"))
		return assert.AnError
	}))

	require.NoError(t, db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte("k"))
		require.NoError(t, err)
		_, err = txn.Get([]byte("discarded"))
		assert.ErrorIs(t, err, badger.ErrKeyNotFound)
		return nil
	}))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, db.WithTxn(cancelled, func(*badger.Txn) error { return nil }), context.Canceled)
}

func TestExecutionStoreRoundTrip(t *testing.T) {
	store := NewExecutionStore(openInMemory(t))
	ctx := context.Background()

	n, err := store.Save(ctx, "run-1", sampleExecution())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	records, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, TestRecord{Suite: "Root", Test: "top", Status: scenario.StatusPass, ElapsedMS: 0.5}, records[0])
	assert.Equal(t, "Root.Child", records[2].Suite)
	assert.Equal(t, "boom", records[2].Message)

	_, err = store.Load(ctx, "run-10")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Delete(ctx, "run-1"))
	_, err = store.Load(ctx, "run-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExecutionStoreRejectsEmpty(t *testing.T) {
	store := NewExecutionStore(openInMemory(t))
	_, err := store.Save(context.Background(), "x", nil)
	assert.Error(t, err)
}
