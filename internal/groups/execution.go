// internal/groups/execution.go
package groups

import (
	"fmt"
	"path/filepath"

	"github.com/mwiater/suitebench/internal/benchmark"
	"github.com/mwiater/suitebench/internal/scenario"
)

// Execution measures building suites from disk and running them without
// log output.
func Execution(dir string) *benchmark.Group {
	return benchmark.NewGroup(NameExecution, "Build suites from disk and execute them").
		Add("build suite from filesystem", func() error {
			_, err := scenario.BuildDir(dir)
			return err
		}).
		Add("run simple suite (no output)", runFile(filepath.Join(dir, scenario.FixtureSimple))).
		Add("run keyword suite (no output)", runFile(filepath.Join(dir, scenario.FixtureKeyword)))
}

// runFile builds and runs one suite. Failing tests are a workload failure.
func runFile(path string) func() error {
	return func() error {
		s, err := scenario.BuildFile(path)
		if err != nil {
			return err
		}
		res, err := scenario.Run(s, scenario.Options{})
		if err != nil {
			return err
		}
		if _, fail := res.Stats(); fail > 0 {
			return fmt.Errorf("suite %q: %d test(s) failed", s.Name, fail)
		}
		return nil
	}
}
