// internal/scenario/result.go
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mwiater/suitebench/internal/util"
)

// Status is the outcome of a test or suite.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// ExecutionResult is the document produced by Run and persisted by WriteResult.
type ExecutionResult struct {
	Generator string       `json:"generator"`
	Generated time.Time    `json:"generated"`
	Suite     *SuiteResult `json:"suite"`
}

// SuiteResult mirrors a Suite after execution.
type SuiteResult struct {
	Name      string         `json:"name"`
	Source    string         `json:"source,omitempty"`
	Status    Status         `json:"status"`
	Pass      int            `json:"pass"`
	Fail      int            `json:"fail"`
	ElapsedMS float64        `json:"elapsed_ms"`
	Tests     []*TestResult  `json:"tests,omitempty"`
	Suites    []*SuiteResult `json:"suites,omitempty"`
}

// TestResult records one executed test.
type TestResult struct {
	Name      string   `json:"name"`
	Tags      []string `json:"tags,omitempty"`
	Status    Status   `json:"status"`
	Message   string   `json:"message,omitempty"`
	ElapsedMS float64  `json:"elapsed_ms"`
	Logs      []string `json:"logs,omitempty"`
}

// Stats returns the total pass and fail counts.
func (r *ExecutionResult) Stats() (pass, fail int) {
	if r == nil || r.Suite == nil {
		return 0, 0
	}
	return r.Suite.Pass, r.Suite.Fail
}

// WriteResult stores the result as indented JSON.
func WriteResult(path string, r *ExecutionResult) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := util.WriteFile(path, data); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// LoadResult reads a result written by WriteResult.
func LoadResult(path string) (*ExecutionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read result: %w", err)
	}
	var r ExecutionResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", path, err)
	}
	if r.Suite == nil {
		return nil, fmt.Errorf("decode result %s: missing suite", path)
	}
	return &r, nil
}
