// internal/scenario/model.go
package scenario

import (
	"strings"
)

// Suite is a scenario document: test cases built from keyword steps, plus
// the variables and user keywords they may use. A suite built from a
// directory has no tests of its own and holds one child per file.
type Suite struct {
	Name          string            `yaml:"name"`
	Documentation string            `yaml:"documentation,omitempty"`
	Resources     []string          `yaml:"resources,omitempty"`
	Variables     map[string]string `yaml:"variables,omitempty"`
	Tests         []*TestCase       `yaml:"tests,omitempty"`
	Keywords      []*Keyword        `yaml:"keywords,omitempty"`

	Source string   `yaml:"-"`
	Suites []*Suite `yaml:"-"`

	imports []*Resource
}

// TestCase is an ordered list of steps. A test passes when every step does.
type TestCase struct {
	Name  string   `yaml:"name"`
	Tags  []string `yaml:"tags,omitempty"`
	Steps []Step   `yaml:"steps"`
}

// Step invokes one keyword. Assign, when set, names the variable that
// receives the keyword's return value.
type Step struct {
	Keyword string   `yaml:"keyword"`
	Args    []string `yaml:"args,omitempty"`
	Assign  string   `yaml:"assign,omitempty"`
}

// Keyword is a user keyword. Args are bound as variables in the keyword's
// scope; Return is resolved after the last step.
type Keyword struct {
	Name   string   `yaml:"name"`
	Args   []string `yaml:"args,omitempty"`
	Steps  []Step   `yaml:"steps"`
	Return string   `yaml:"return,omitempty"`
}

// Resource is a shared library of variables and keywords imported by suites.
type Resource struct {
	Name          string            `yaml:"name"`
	Documentation string            `yaml:"documentation,omitempty"`
	Variables     map[string]string `yaml:"variables,omitempty"`
	Keywords      []*Keyword        `yaml:"keywords,omitempty"`

	Source string `yaml:"-"`
}

// Imports returns the resources loaded by BuildFile.
func (s *Suite) Imports() []*Resource { return s.imports }

// TestCount returns the number of tests in the suite and all its children.
func (s *Suite) TestCount() int {
	n := len(s.Tests)
	for _, child := range s.Suites {
		n += child.TestCount()
	}
	return n
}

// keywordTable maps normalized names to user keywords. Suite keywords
// shadow imported ones.
func (s *Suite) keywordTable() map[string]*Keyword {
	table := make(map[string]*Keyword)
	for _, res := range s.imports {
		for _, kw := range res.Keywords {
			table[normalize(kw.Name)] = kw
		}
	}
	for _, kw := range s.Keywords {
		table[normalize(kw.Name)] = kw
	}
	return table
}

// normalize folds case and drops spaces and underscores, so "Should Be
// Equal", "should_be_equal" and "ShouldBeEqual" name the same keyword.
func normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r == ' ' || r == '_' || r == '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// variableName strips the ${...} decoration from an assignment target.
func variableName(target string) string {
	target = strings.TrimSpace(target)
	if strings.HasPrefix(target, "${") && strings.HasSuffix(target, "}") {
		return target[2 : len(target)-1]
	}
	return target
}
