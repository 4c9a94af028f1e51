// internal/metrics/result.go
package metrics

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Result accumulates the samples recorded for one named benchmark.
type Result struct {
	name    string
	elapsed []time.Duration
	stat    RunningStat
	peak    uint64
	hasPeak bool
}

// NewResult returns an empty result for name.
func NewResult(name string) *Result {
	return &Result{name: name}
}

// Name returns the benchmark name.
func (r *Result) Name() string { return r.name }

// Runs returns the number of recorded samples.
func (r *Result) Runs() int { return len(r.elapsed) }

// Samples returns a copy of the recorded durations in recording order.
func (r *Result) Samples() []time.Duration {
	out := make([]time.Duration, len(r.elapsed))
	copy(out, r.elapsed)
	return out
}

// Record appends the sample's duration. A memory figure on the sample
// replaces the current one; memory figures are never averaged.
func (r *Result) Record(s Sample) {
	r.elapsed = append(r.elapsed, s.Elapsed())
	updateRunningStat(&r.stat, s.ElapsedSeconds())
	if peak, ok := s.PeakMemoryBytes(); ok {
		r.peak = peak
		r.hasPeak = true
	}
}

// MeanSeconds returns the arithmetic mean of the recorded durations.
func (r *Result) MeanSeconds() (float64, error) {
	if r.stat.Count == 0 {
		return 0, r.noSamples()
	}
	// Welford's mean can drift by an ulp past the bounds on identical samples.
	return math.Min(math.Max(r.stat.Mean, r.stat.Min), r.stat.Max), nil
}

// MinSeconds returns the shortest recorded duration.
func (r *Result) MinSeconds() (float64, error) {
	if r.stat.Count == 0 {
		return 0, r.noSamples()
	}
	return r.stat.Min, nil
}

// MaxSeconds returns the longest recorded duration.
func (r *Result) MaxSeconds() (float64, error) {
	if r.stat.Count == 0 {
		return 0, r.noSamples()
	}
	return r.stat.Max, nil
}

// StdevSeconds returns the sample standard deviation (N-1 denominator).
// ok is false with fewer than two samples.
func (r *Result) StdevSeconds() (stdev float64, ok bool) {
	if r.stat.Count < 2 {
		return 0, false
	}
	variance := r.stat.M2 / float64(r.stat.Count-1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance), true
}

// PeakMemoryBytes returns the most recent memory figure, if any sample carried one.
func (r *Result) PeakMemoryBytes() (bytes uint64, ok bool) {
	return r.peak, r.hasPeak
}

// String renders a one-line summary with millisecond figures.
func (r *Result) String() string {
	mean, err := r.MeanSeconds()
	if err != nil {
		return fmt.Sprintf("[%s] no samples", r.name)
	}
	parts := []string{
		fmt.Sprintf("[%s]", r.name),
		fmt.Sprintf("mean=%.3fms", mean*1000),
	}
	if runs := r.Runs(); runs > 1 {
		parts = append(parts, fmt.Sprintf("runs=%d", runs))
		if stdev, ok := r.StdevSeconds(); ok {
			parts = append(parts, fmt.Sprintf("stdev=%.3fms", stdev*1000))
		}
		parts = append(parts, fmt.Sprintf("min=%.3fms", r.stat.Min*1000))
		parts = append(parts, fmt.Sprintf("max=%.3fms", r.stat.Max*1000))
	}
	if peak, ok := r.PeakMemoryBytes(); ok {
		parts = append(parts, fmt.Sprintf("peak_mem=%.1fKB", float64(peak)/1024))
	}
	return strings.Join(parts, " ")
}

func (r *Result) noSamples() error {
	return fmt.Errorf("%w: %q", ErrNoSamples, r.name)
}
