// internal/storage/executions.go
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/mwiater/suitebench/internal/scenario"
)

// ErrNotFound reports a run with no stored records.
var ErrNotFound = errors.New("run not found")

// TestRecord is one stored test outcome.
type TestRecord struct {
	Suite     string          `json:"suite"`
	Test      string          `json:"test"`
	Status    scenario.Status `json:"status"`
	Message   string          `json:"message,omitempty"`
	ElapsedMS float64         `json:"elapsed_ms"`
}

// ExecutionStore persists scenario execution results, one key per test.
type ExecutionStore struct {
	db *DB
}

// NewExecutionStore returns a store backed by db.
func NewExecutionStore(db *DB) *ExecutionStore {
	return &ExecutionStore{db: db}
}

func runPrefix(runID string) []byte {
	return []byte("exec/" + runID + "/")
}

// Save writes every test of res under runID in one transaction and returns
// the record count.
func (s *ExecutionStore) Save(ctx context.Context, runID string, res *scenario.ExecutionResult) (int, error) {
	if res == nil || res.Suite == nil {
		return 0, errors.New("save execution: empty result")
	}
	var records []TestRecord
	flatten(res.Suite, "", &records)

	prefix := string(runPrefix(runID))
	err := s.db.WithTxn(ctx, func(txn *badger.Txn) error {
		for i, rec := range records {
			data, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("encode record %q: %w", rec.Test, err)
			}
			key := fmt.Sprintf("%s%06d", prefix, i)
			if err := txn.Set([]byte(key), data); err != nil {
				return fmt.Errorf("store record %q: %w", rec.Test, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Load returns the records stored under runID in insertion order.
func (s *ExecutionStore) Load(ctx context.Context, runID string) ([]TestRecord, error) {
	var out []TestRecord
	prefix := runPrefix(runID)
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec TestRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	return out, nil
}

// Delete removes every record stored under runID.
func (s *ExecutionStore) Delete(ctx context.Context, runID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.DropPrefix(runPrefix(runID))
}

func flatten(sr *scenario.SuiteResult, parent string, out *[]TestRecord) {
	path := sr.Name
	if parent != "" {
		path = strings.Join([]string{parent, sr.Name}, ".")
	}
	for _, tr := range sr.Tests {
		*out = append(*out, TestRecord{
			Suite:     path,
			Test:      tr.Name,
			Status:    tr.Status,
			Message:   tr.Message,
			ElapsedMS: tr.ElapsedMS,
		})
	}
	for _, child := range sr.Suites {
		flatten(child, path, out)
	}
}
