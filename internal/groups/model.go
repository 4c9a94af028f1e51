// internal/groups/model.go
package groups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mwiater/suitebench/internal/benchmark"
	"github.com/mwiater/suitebench/internal/scenario"
)

const outputFile = "output.json"

// modelState holds the execution result generated during setup.
type modelState struct {
	dir    string
	tmp    string
	output string
}

// Model measures suite model construction, result loading, traversal and
// schema validation. Setup runs the simple suite once and stores its result
// in a private temp dir so the fixture directory is never written to.
func Model(dir string) *benchmark.Group {
	st := &modelState{dir: dir}
	g := benchmark.NewGroup(NameModel, "Build, load, traverse and validate suite models").
		Add("build running model from filesystem", func() error {
			_, err := scenario.BuildDir(st.dir)
			return err
		}).
		Add("parse suite model", func() error {
			_, err := scenario.ParseFile(filepath.Join(st.dir, scenario.FixtureSimple))
			return err
		}).
		Add("load execution result (output.json)", func() error {
			_, err := scenario.LoadResult(st.output)
			return err
		}).
		Add("traverse model with visitor", func() error {
			root, err := scenario.BuildDir(st.dir)
			if err != nil {
				return err
			}
			var counter scenario.TestCounter
			root.Visit(&counter)
			if counter.Tests == 0 {
				return errors.New("visitor found no tests")
			}
			return nil
		}).
		Add("validate suites against schema", func() error {
			n, err := scenario.ValidateDir(st.dir)
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("no suites to validate in %s", st.dir)
			}
			return nil
		})
	g.Setup = st.setup
	g.Teardown = st.teardown
	return g
}

func (st *modelState) setup() error {
	tmp, err := os.MkdirTemp("", "suitebench-model-")
	if err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	st.tmp = tmp
	s, err := scenario.BuildFile(filepath.Join(st.dir, scenario.FixtureSimple))
	if err != nil {
		return err
	}
	res, err := scenario.Run(s, scenario.Options{})
	if err != nil {
		return err
	}
	st.output = filepath.Join(tmp, outputFile)
	return scenario.WriteResult(st.output, res)
}

func (st *modelState) teardown() error {
	if st.tmp == "" {
		return nil
	}
	err := os.RemoveAll(st.tmp)
	st.tmp, st.output = "", ""
	return err
}
