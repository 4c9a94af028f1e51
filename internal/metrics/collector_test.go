package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

type fakeSampler struct {
	baseline uint64
	sample   uint64
	calls    int
}

func (f *fakeSampler) Baseline() uint64 {
	f.calls++
	return f.baseline
}

func (f *fakeSampler) Sample() uint64 {
	f.calls++
	return f.sample
}

var sink [][]byte

func TestCollectorStopAfterStartIsPositive(t *testing.T) {
	c := NewCollector(false)
	require.NoError(t, c.Start())
	time.Sleep(time.Millisecond)
	s, err := c.Stop("sleep")
	require.NoError(t, err)

	assert.Equal(t, "sleep", s.Label())
	assert.Greater(t, s.ElapsedSeconds(), 0.0)
	assert.False(t, c.Running())
}

func TestCollectorStopBeforeStart(t *testing.T) {
	c := NewCollector(true)
	_, err := c.Stop("never started")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSequence))
	assert.Contains(t, err.Error(), "stop called before start")

	require.NoError(t, c.Start())
	_, err = c.Stop("first")
	require.NoError(t, err)
	_, err = c.Stop("second")
	assert.ErrorIs(t, err, ErrSequence)
}

func TestCollectorRejectsOverlappingSessions(t *testing.T) {
	c := NewCollector(true)
	require.NoError(t, c.Start())
	err := c.Start()
	assert.ErrorIs(t, err, ErrSequence)
	assert.True(t, c.Running())
}

func TestCollectorUsesInjectedClock(t *testing.T) {
	clock := &stepClock{now: time.Unix(0, 0), step: 25 * time.Millisecond}
	c := NewCollector(false, WithClock(clock.Now))

	require.NoError(t, c.Start())
	s, err := c.Stop("clocked")
	require.NoError(t, err)
	assert.Equal(t, 25*time.Millisecond, s.Elapsed())
	assert.InDelta(t, 0.025, s.ElapsedSeconds(), 1e-12)
}

func TestCollectorMemoryDisabledHasNoFigure(t *testing.T) {
	sampler := &fakeSampler{baseline: 10, sample: 500}
	c := NewCollector(false, WithMemorySampler(sampler))
	require.NoError(t, c.Start())
	s, err := c.Stop("no memory")
	require.NoError(t, err)

	_, ok := s.PeakMemoryBytes()
	assert.False(t, ok)
	assert.Zero(t, sampler.calls, "sampler must not run when tracking is off")
}

func TestCollectorMemoryUsesFreshBaseline(t *testing.T) {
	sampler := &fakeSampler{baseline: 1000, sample: 1600}
	c := NewCollector(true, WithMemorySampler(sampler))

	require.NoError(t, c.Start())
	s, err := c.Stop("first")
	require.NoError(t, err)
	peak, ok := s.PeakMemoryBytes()
	require.True(t, ok)
	assert.Equal(t, uint64(600), peak)

	sampler.baseline, sampler.sample = 5000, 5100
	require.NoError(t, c.Start())
	s, err = c.Stop("second")
	require.NoError(t, err)
	peak, ok = s.PeakMemoryBytes()
	require.True(t, ok)
	assert.Equal(t, uint64(100), peak)
}

func TestCollectorTrackedSessionWithoutGrowthReportsZero(t *testing.T) {
	sampler := &fakeSampler{baseline: 42, sample: 42}
	c := NewCollector(true, WithMemorySampler(sampler))
	require.NoError(t, c.Start())
	s, err := c.Stop("idle")
	require.NoError(t, err)

	peak, ok := s.PeakMemoryBytes()
	assert.True(t, ok)
	assert.Zero(t, peak)
}

func TestCollectorRuntimeSamplerSeesAllocation(t *testing.T) {
	c := NewCollector(true)
	assert.True(t, c.TracksMemory())

	require.NoError(t, c.Start())
	for i := 0; i < 64; i++ {
		sink = append(sink, make([]byte, 16*1024))
	}
	s, err := c.Stop("allocate")
	require.NoError(t, err)
	sink = nil

	peak, ok := s.PeakMemoryBytes()
	require.True(t, ok)
	assert.Greater(t, peak, uint64(0))
}
