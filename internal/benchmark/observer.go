// internal/benchmark/observer.go
package benchmark

import (
	"github.com/mwiater/suitebench/internal/logging"
	"github.com/mwiater/suitebench/internal/metrics"
)

// Observer receives progress notifications. Hooks are called outside the
// collector session, so their cost is never measured.
type Observer interface {
	OperationStarted(group, operation string, iterations int)
	IterationFinished(group, operation string, iteration int, sample metrics.Sample)
}

// LogObserver writes one log line per finished iteration.
type LogObserver struct {
	iterations int
}

// NewLogObserver returns an observer that logs through the logging package.
func NewLogObserver() *LogObserver { return &LogObserver{} }

func (o *LogObserver) OperationStarted(group, operation string, iterations int) {
	o.iterations = iterations
	logging.LogEvent("Running %d iteration(s) of %q in group %q...", iterations, operation, group)
}

func (o *LogObserver) IterationFinished(group, operation string, iteration int, sample metrics.Sample) {
	peak, tracked := sample.PeakMemoryBytes()
	logging.LogIteration(group, operation, iteration, o.iterations, sample.Elapsed(), peak, tracked)
}
