// internal/scenario/schema.go
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ErrSchema reports a document that does not match the suite schema.
var ErrSchema = errors.New("schema validation failed")

func stepSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"required":             []string{"keyword"},
		"additionalProperties": false,
		"properties": map[string]any{
			"keyword": map[string]any{"type": "string", "minLength": 1},
			"args":    map[string]any{"type": "array", "items": map[string]any{"type": []string{"string", "number", "boolean"}}},
			"assign":  map[string]any{"type": "string"},
		},
	}
}

// SuiteSchema returns the JSON schema suite documents are validated against.
func SuiteSchema() map[string]any {
	steps := map[string]any{"type": "array", "items": stepSchema()}
	return map[string]any{
		"type":                 "object",
		"required":             []string{"name"},
		"additionalProperties": false,
		"properties": map[string]any{
			"name":          map[string]any{"type": "string", "minLength": 1},
			"documentation": map[string]any{"type": "string"},
			"resources":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"variables": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": []string{"string", "number", "boolean"}},
			},
			"tests": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"required":             []string{"name", "steps"},
					"additionalProperties": false,
					"properties": map[string]any{
						"name":  map[string]any{"type": "string", "minLength": 1},
						"tags":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"steps": steps,
					},
				},
			},
			"keywords": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"required":             []string{"name", "steps"},
					"additionalProperties": false,
					"properties": map[string]any{
						"name":   map[string]any{"type": "string", "minLength": 1},
						"args":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"steps":  steps,
						"return": map[string]any{"type": "string"},
					},
				},
			},
		},
	}
}

// ValidateDocument checks a YAML suite document against SuiteSchema.
func ValidateDocument(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if doc == nil {
		return fmt.Errorf("%w: empty document", ErrSchema)
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}

	schemaLoader := gojsonschema.NewGoLoader(SuiteSchema())
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(docJSON))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrSchema, strings.Join(errs, ", "))
}

// ValidateDir validates every suite file in dir and returns how many were
// checked. Resource files are not suites and are skipped.
func ValidateDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read suite directory: %w", err)
	}
	count := 0
	for _, e := range entries {
		if e.IsDir() || !IsSuiteFile(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return count, fmt.Errorf("read suite: %w", err)
		}
		if err := ValidateDocument(data); err != nil {
			return count, fmt.Errorf("%s: %w", e.Name(), err)
		}
		count++
	}
	return count, nil
}
