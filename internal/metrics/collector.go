// internal/metrics/collector.go
package metrics

import (
	"fmt"
	"runtime"
	"time"
)

// Clock returns the current time. Values returned by time.Now carry a
// monotonic reading, so differences are immune to wall-clock changes.
type Clock func() time.Time

// MemorySampler reports the cumulative number of heap bytes allocated by the
// process so far.
type MemorySampler interface {
	// Baseline prepares a fresh tracking context and returns the counter.
	Baseline() uint64
	// Sample returns the counter without disturbing the heap.
	Sample() uint64
}

// runtimeSampler reads runtime.MemStats.TotalAlloc.
type runtimeSampler struct{}

func (runtimeSampler) Baseline() uint64 {
	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.TotalAlloc
}

func (runtimeSampler) Sample() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.TotalAlloc
}

// Collector times one operation per start/stop session and, when enabled,
// records the heap bytes allocated during the session. A Collector is not
// safe for concurrent use; sessions must not overlap.
type Collector struct {
	trackMemory bool
	clock       Clock
	sampler     MemorySampler

	running  bool
	start    time.Time
	baseline uint64
}

// CollectorOption customises a Collector.
type CollectorOption func(*Collector)

// WithClock replaces the time source.
func WithClock(clock Clock) CollectorOption {
	return func(c *Collector) { c.clock = clock }
}

// WithMemorySampler replaces the heap sampler used when memory tracking is on.
func WithMemorySampler(sampler MemorySampler) CollectorOption {
	return func(c *Collector) { c.sampler = sampler }
}

// NewCollector returns an idle collector. Memory tracking is off unless
// trackMemory is true.
func NewCollector(trackMemory bool, opts ...CollectorOption) *Collector {
	c := &Collector{
		trackMemory: trackMemory,
		clock:       time.Now,
		sampler:     runtimeSampler{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TracksMemory reports whether sessions record a memory figure.
func (c *Collector) TracksMemory() bool { return c.trackMemory }

// Running reports whether a session is in progress.
func (c *Collector) Running() bool { return c.running }

// Start begins a session. The memory baseline is taken before the clock is
// read so that sampling cost stays outside the measured interval.
func (c *Collector) Start() error {
	if c.running {
		return fmt.Errorf("%w: start called while a session is running", ErrSequence)
	}
	if c.trackMemory {
		c.baseline = c.sampler.Baseline()
	}
	c.running = true
	c.start = c.clock()
	return nil
}

// Stop ends the session and returns its sample.
func (c *Collector) Stop(label string) (Sample, error) {
	if !c.running {
		return Sample{}, fmt.Errorf("%w: stop called before start", ErrSequence)
	}
	elapsed := c.clock().Sub(c.start)
	c.running = false

	if !c.trackMemory {
		return NewSample(label, elapsed), nil
	}
	var peak uint64
	if now := c.sampler.Sample(); now > c.baseline {
		peak = now - c.baseline
	}
	return NewSampleWithMemory(label, elapsed, peak), nil
}
