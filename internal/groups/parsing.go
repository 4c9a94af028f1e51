// internal/groups/parsing.go
package groups

import (
	"path/filepath"

	"github.com/mwiater/suitebench/internal/benchmark"
	"github.com/mwiater/suitebench/internal/scenario"
)

// Parsing measures suite and resource parsing on files of increasing size.
func Parsing(dir string) *benchmark.Group {
	parse := func(file string) func() error {
		path := filepath.Join(dir, file)
		return func() error {
			_, err := scenario.ParseFile(path)
			return err
		}
	}
	resource := filepath.Join(dir, scenario.FixtureResource)

	return benchmark.NewGroup(NameParsing, "Parse scenario suites and resource files").
		Add("parse small suite", parse(scenario.FixtureSmall)).
		Add("parse medium suite", parse(scenario.FixtureMedium)).
		Add("parse large suite", parse(scenario.FixtureLarge)).
		Add("parse resource file", func() error {
			_, err := scenario.ParseResource(resource)
			return err
		})
}
