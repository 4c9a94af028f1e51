// internal/metrics/types.go
package metrics

import (
	"errors"
	"time"
)

var (
	// ErrSequence reports a collector used out of order, e.g. Stop before Start.
	ErrSequence = errors.New("collector sequence error")

	// ErrNoSamples reports a statistic requested from a result with no samples.
	ErrNoSamples = errors.New("no samples recorded")

	// ErrDuplicateResult reports two results with the same name in one set.
	ErrDuplicateResult = errors.New("duplicate benchmark result")
)

// Sample is the immutable output of one collector session.
type Sample struct {
	label   string
	elapsed time.Duration
	peak    uint64
	hasPeak bool
}

// NewSample returns a sample without a memory figure.
func NewSample(label string, elapsed time.Duration) Sample {
	return Sample{label: label, elapsed: elapsed}
}

// NewSampleWithMemory returns a sample carrying a peak memory figure.
func NewSampleWithMemory(label string, elapsed time.Duration, peakBytes uint64) Sample {
	return Sample{label: label, elapsed: elapsed, peak: peakBytes, hasPeak: true}
}

// Label returns the name the session was stopped with.
func (s Sample) Label() string { return s.label }

// Elapsed returns the measured wall-clock duration.
func (s Sample) Elapsed() time.Duration { return s.elapsed }

// ElapsedSeconds returns the measured duration in seconds.
func (s Sample) ElapsedSeconds() float64 { return s.elapsed.Seconds() }

// PeakMemoryBytes returns the session's heap figure. ok is false when memory
// tracking was disabled for the session; a tracked session that allocated
// nothing reports (0, true).
func (s Sample) PeakMemoryBytes() (bytes uint64, ok bool) {
	return s.peak, s.hasPeak
}

// RunningStat holds the values for online calculation of mean, variance, and stddev.
type RunningStat struct {
	Count int64
	Mean  float64
	M2    float64 // Sum of squares of differences from the current mean
	Min   float64
	Max   float64
}

// updateRunningStat updates a single running statistic using Welford's online algorithm.
func updateRunningStat(rs *RunningStat, value float64) {
	rs.Count++
	if rs.Count == 1 {
		rs.Min = value
		rs.Max = value
	} else {
		if value < rs.Min {
			rs.Min = value
		}
		if value > rs.Max {
			rs.Max = value
		}
	}

	delta := value - rs.Mean
	rs.Mean += delta / float64(rs.Count)
	delta2 := value - rs.Mean
	rs.M2 += delta * delta2
}
