// internal/benchmark/errors.go
package benchmark

import (
	"errors"
	"fmt"
)

// ErrConfiguration reports a run that cannot start: invalid iteration count,
// unknown group, malformed operations or colliding benchmark names.
var ErrConfiguration = errors.New("configuration error")

// Configf returns an error wrapping ErrConfiguration.
func Configf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// OperationError reports a workload failure that aborted a run.
type OperationError struct {
	Group     string
	Operation string
	// Iteration is 1-based; 0 means the failure happened in group setup.
	Iteration int
	Err       error
}

func (e *OperationError) Error() string {
	if e.Iteration == 0 {
		return fmt.Sprintf("group %q: %s failed: %v", e.Group, e.Operation, e.Err)
	}
	return fmt.Sprintf("group %q: operation %q failed on iteration %d: %v", e.Group, e.Operation, e.Iteration, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }
