// internal/scenario/fixtures.go
package scenario

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mwiater/suitebench/internal/util"
)

// Built-in fixture file names.
const (
	FixtureSmall    = "small.yaml"
	FixtureMedium   = "medium.yaml"
	FixtureLarge    = "large.yaml"
	FixtureResource = "common.resource.yaml"
	FixtureSimple   = "simple.yaml"
	FixtureKeyword  = "keyword.yaml"
	FixtureMemory   = "memory.yaml"
)

// Fixtures returns the built-in fixture documents keyed by file name.
func Fixtures() (map[string][]byte, error) {
	docs := map[string]any{
		FixtureSmall:    generatedSuite("Small", 4),
		FixtureMedium:   generatedSuite("Medium", 52),
		FixtureLarge:    generatedSuite("Large", 502),
		FixtureResource: commonResource(),
		FixtureSimple:   simpleSuite(),
		FixtureKeyword:  keywordSuite(),
		FixtureMemory:   memorySuite(200),
	}
	out := make(map[string][]byte, len(docs))
	for name, doc := range docs {
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode fixture %s: %w", name, err)
		}
		out[name] = data
	}
	return out, nil
}

// WriteFixtures writes the built-in fixtures into dir.
func WriteFixtures(dir string) error {
	files, err := Fixtures()
	if err != nil {
		return err
	}
	for name, data := range files {
		if err := util.WriteFile(filepath.Join(dir, name), data); err != nil {
			return fmt.Errorf("write fixture %s: %w", name, err)
		}
	}
	return nil
}

func generatedSuite(size string, tests int) *Suite {
	s := &Suite{
		Name:          size + " Suite",
		Documentation: fmt.Sprintf("Generated suite with %d tests.", tests),
		Resources:     []string{FixtureResource},
		Variables:     map[string]string{"GREETING": "Hello", "TARGET": "world"},
	}
	for i := 1; i <= tests; i++ {
		s.Tests = append(s.Tests, &TestCase{
			Name: fmt.Sprintf("%s Test %03d", size, i),
			Tags: []string{"generated", fmt.Sprintf("batch-%d", i%5)},
			Steps: []Step{
				{Keyword: "Log", Args: []string{fmt.Sprintf("Running test %d", i)}},
				{Keyword: "Set Variable", Args: []string{fmt.Sprintf("value-%d", i)}, Assign: "${value}"},
				{Keyword: "Should Be Equal", Args: []string{"${value}", fmt.Sprintf("value-%d", i)}},
				{Keyword: "Catenate", Args: []string{"${GREETING}", "${TARGET}"}, Assign: "${message}"},
				{Keyword: "Should Contain", Args: []string{"${message}", "world"}},
			},
		})
	}
	return s
}

func commonResource() *Resource {
	return &Resource{
		Name:          "Common",
		Documentation: "Keywords shared by the built-in suites.",
		Variables:     map[string]string{"SEPARATOR": "-", "EXPECTED": "a-b-c"},
		Keywords: []*Keyword{
			{
				Name:   "Join Three",
				Args:   []string{"${a}", "${b}", "${c}"},
				Steps:  []Step{{Keyword: "Catenate", Args: []string{"SEPARATOR=${SEPARATOR}", "${a}", "${b}", "${c}"}, Assign: "${joined}"}},
				Return: "${joined}",
			},
			{
				Name:  "Log Twice",
				Args:  []string{"${message}"},
				Steps: []Step{{Keyword: "Log", Args: []string{"${message}"}}, {Keyword: "Log", Args: []string{"${message}"}}},
			},
		},
	}
}

func simpleSuite() *Suite {
	return &Suite{
		Name:      "Simple",
		Variables: map[string]string{"NAME": "suitebench"},
		Tests: []*TestCase{
			{Name: "Log Message", Steps: []Step{{Keyword: "Log", Args: []string{"Hello, ${NAME}"}}}},
			{Name: "No Operation", Steps: []Step{{Keyword: "No Operation"}}},
			{Name: "Compare Strings", Steps: []Step{
				{Keyword: "Set Variable", Args: []string{"abc"}, Assign: "${x}"},
				{Keyword: "Should Be Equal", Args: []string{"${x}", "abc"}},
			}},
			{Name: "Catenate Values", Steps: []Step{
				{Keyword: "Catenate", Args: []string{"SEPARATOR=,", "a", "b", "c"}, Assign: "${csv}"},
				{Keyword: "Should Be Equal", Args: []string{"${csv}", "a,b,c"}},
			}},
			{Name: "List Membership", Steps: []Step{
				{Keyword: "Create List", Args: []string{"one", "two", "three"}, Assign: "${items}"},
				{Keyword: "Should Contain", Args: []string{"${items}", "two"}},
			}},
			{Name: "Dictionary Keys", Steps: []Step{
				{Keyword: "Create Dictionary", Args: []string{"host=localhost", "port=8080"}, Assign: "${cfg}"},
				{Keyword: "Should Contain", Args: []string{"${cfg}", "port"}},
			}},
		},
	}
}

func keywordSuite() *Suite {
	return &Suite{
		Name:      "Keyword",
		Resources: []string{FixtureResource},
		Keywords: []*Keyword{
			{
				Name:   "Greet",
				Args:   []string{"${who}"},
				Steps:  []Step{{Keyword: "Catenate", Args: []string{"Hello,", "${who}"}, Assign: "${greeting}"}},
				Return: "${greeting}",
			},
			{
				Name: "Greet And Check",
				Args: []string{"${who}"},
				Steps: []Step{
					{Keyword: "Greet", Args: []string{"${who}"}, Assign: "${g}"},
					{Keyword: "Should Contain", Args: []string{"${g}", "${who}"}},
				},
			},
		},
		Tests: []*TestCase{
			{Name: "User Keyword With Return", Steps: []Step{
				{Keyword: "Greet", Args: []string{"world"}, Assign: "${g}"},
				{Keyword: "Should Be Equal", Args: []string{"${g}", "Hello, world"}},
			}},
			{Name: "Nested User Keywords", Steps: []Step{{Keyword: "Greet And Check", Args: []string{"nested"}}}},
			{Name: "Resource Keyword", Steps: []Step{
				{Keyword: "Join Three", Args: []string{"a", "b", "c"}, Assign: "${joined}"},
				{Keyword: "Should Be Equal", Args: []string{"${joined}", "${EXPECTED}"}},
			}},
			{Name: "Repeat Keyword", Steps: []Step{
				{Keyword: "Repeat Keyword", Args: []string{"25 times", "Greet And Check", "loop"}},
			}},
			{Name: "Repeat Resource Keyword", Steps: []Step{
				{Keyword: "Repeat Keyword", Args: []string{"10", "Log Twice", "again"}},
			}},
		},
	}
}

func memorySuite(tests int) *Suite {
	s := &Suite{Name: "Memory", Documentation: "Allocation heavy suite."}
	for i := 1; i <= tests; i++ {
		s.Tests = append(s.Tests, &TestCase{
			Name: fmt.Sprintf("Allocate %03d", i),
			Steps: []Step{
				{Keyword: "Create List", Args: []string{"alpha", "beta", "gamma", "delta", "epsilon", fmt.Sprintf("item-%d", i)}, Assign: "${list}"},
				{Keyword: "Create Dictionary", Args: []string{"id=" + fmt.Sprint(i), "name=memory", "kind=fixture"}, Assign: "${dict}"},
				{Keyword: "Catenate", Args: []string{"${list}", "${dict}"}, Assign: "${joined}"},
				{Keyword: "Should Contain", Args: []string{"${joined}", "memory"}},
			},
		})
	}
	return s
}
