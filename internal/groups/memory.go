// internal/groups/memory.go
package groups

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mwiater/suitebench/internal/benchmark"
	"github.com/mwiater/suitebench/internal/scenario"
	"github.com/mwiater/suitebench/internal/storage"
)

// memoryState owns the in-memory database and the result stored into it.
type memoryState struct {
	dir     string
	verbose bool
	db      *storage.DB
	store   *storage.ExecutionStore
	result  *scenario.ExecutionResult
	saves   int
}

// Memory measures heap allocation. Every operation tracks memory.
func Memory(dir string, opts ...Option) *benchmark.Group {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	st := &memoryState{dir: dir, verbose: o.verboseStorage}
	path := filepath.Join(dir, scenario.FixtureMemory)
	g := benchmark.NewGroup(NameMemory, "Heap allocation during parsing, execution and storage").
		AddMemory("heap usage during parsing", func() error {
			_, err := scenario.ParseFile(path)
			return err
		}).
		AddMemory("heap usage during suite run", runFile(path)).
		AddMemory("store results in badger", st.save)
	g.Setup = st.setup
	g.Teardown = st.teardown
	return g
}

func (st *memoryState) setup() error {
	s, err := scenario.BuildFile(filepath.Join(st.dir, scenario.FixtureMemory))
	if err != nil {
		return err
	}
	res, err := scenario.Run(s, scenario.Options{})
	if err != nil {
		return err
	}
	cfg := storage.InMemoryConfig()
	cfg.Verbose = st.verbose
	db, err := storage.Open(cfg)
	if err != nil {
		return err
	}
	st.db, st.store, st.result, st.saves = db, storage.NewExecutionStore(db), res, 0
	return nil
}

func (st *memoryState) save() error {
	if st.store == nil {
		return errors.New("result store is not open")
	}
	st.saves++
	n, err := st.store.Save(context.Background(), fmt.Sprintf("iteration-%d", st.saves), st.result)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.New("no records stored")
	}
	return nil
}

func (st *memoryState) teardown() error {
	if st.db == nil {
		return nil
	}
	err := st.db.Close()
	st.db, st.store, st.result = nil, nil, nil
	return err
}
