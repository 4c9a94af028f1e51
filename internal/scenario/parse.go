// internal/scenario/parse.go
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSuite reports a document that cannot be used as a suite or resource.
var ErrInvalidSuite = errors.New("invalid scenario document")

// Parse decodes a suite document. Unknown fields are rejected.
func Parse(data []byte, source string) (*Suite, error) {
	var s Suite
	if err := decodeStrict(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSuite, source, err)
	}
	s.Source = source
	if err := s.check(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSuite, source, err)
	}
	return &s, nil
}

// ParseFile reads and parses the suite at path.
func ParseFile(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}
	return Parse(data, path)
}

// ParseResource reads and parses the resource document at path.
func ParseResource(path string) (*Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resource: %w", err)
	}
	var r Resource
	if err := decodeStrict(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSuite, path, err)
	}
	r.Source = path
	if strings.TrimSpace(r.Name) == "" {
		return nil, fmt.Errorf("%w: %s: resource name is required", ErrInvalidSuite, path)
	}
	if err := checkKeywords(r.Keywords); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSuite, path, err)
	}
	return &r, nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty document")
		}
		return err
	}
	return nil
}

func (s *Suite) check() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("suite name is required")
	}
	seen := make(map[string]bool, len(s.Tests))
	for i, tc := range s.Tests {
		if tc == nil || strings.TrimSpace(tc.Name) == "" {
			return fmt.Errorf("test %d has no name", i+1)
		}
		if seen[tc.Name] {
			return fmt.Errorf("test %q is defined twice", tc.Name)
		}
		seen[tc.Name] = true
		if err := checkSteps(tc.Steps); err != nil {
			return fmt.Errorf("test %q: %v", tc.Name, err)
		}
	}
	return checkKeywords(s.Keywords)
}

func checkKeywords(keywords []*Keyword) error {
	seen := make(map[string]bool, len(keywords))
	for i, kw := range keywords {
		if kw == nil || strings.TrimSpace(kw.Name) == "" {
			return fmt.Errorf("keyword %d has no name", i+1)
		}
		key := normalize(kw.Name)
		if seen[key] {
			return fmt.Errorf("keyword %q is defined twice", kw.Name)
		}
		seen[key] = true
		if err := checkSteps(kw.Steps); err != nil {
			return fmt.Errorf("keyword %q: %v", kw.Name, err)
		}
	}
	return nil
}

func checkSteps(steps []Step) error {
	for i, st := range steps {
		if strings.TrimSpace(st.Keyword) == "" {
			return fmt.Errorf("step %d has no keyword", i+1)
		}
	}
	return nil
}
