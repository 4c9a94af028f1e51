// internal/scenario/build.go
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrNoSuites reports a directory without any suite files.
var ErrNoSuites = errors.New("no scenario suites found")

const (
	suiteExt    = ".yaml"
	resourceExt = ".resource.yaml"
)

// IsSuiteFile reports whether name looks like a suite document.
func IsSuiteFile(name string) bool {
	return strings.HasSuffix(name, suiteExt) && !strings.HasSuffix(name, resourceExt)
}

// BuildFile parses the suite at path and loads the resources it imports.
// Resource paths are relative to the suite's directory.
func BuildFile(path string) (*Suite, error) {
	s, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	base := filepath.Dir(path)
	for _, ref := range s.Resources {
		resPath := ref
		if !filepath.IsAbs(resPath) {
			resPath = filepath.Join(base, ref)
		}
		res, err := ParseResource(resPath)
		if err != nil {
			return nil, fmt.Errorf("suite %q: import %q: %w", s.Name, ref, err)
		}
		s.imports = append(s.imports, res)
	}
	return s, nil
}

// BuildDir builds every suite file under dir, in lexical order, as children
// of a suite named after the directory. Subdirectories become nested suites;
// ones without suite files are skipped.
func BuildDir(dir string) (*Suite, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read suite directory: %w", err)
	}
	root := &Suite{Name: suiteNameFromPath(dir), Source: dir}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		switch {
		case e.IsDir():
			child, err := BuildDir(path)
			if errors.Is(err, ErrNoSuites) {
				continue
			}
			if err != nil {
				return nil, err
			}
			root.Suites = append(root.Suites, child)
		case IsSuiteFile(e.Name()):
			child, err := BuildFile(path)
			if err != nil {
				return nil, err
			}
			root.Suites = append(root.Suites, child)
		}
	}
	if len(root.Suites) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSuites, dir)
	}
	return root, nil
}

// suiteNameFromPath turns "checkout_flows" into "Checkout Flows".
func suiteNameFromPath(path string) string {
	base := filepath.Base(filepath.Clean(path))
	base = strings.TrimSuffix(base, suiteExt)
	words := strings.Fields(strings.ReplaceAll(base, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
