package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/suitebench/internal/benchmark"
	"github.com/mwiater/suitebench/internal/metrics"
)

func sampleSet() *metrics.ResultSet {
	set := metrics.NewResultSet()
	set.Record("parse small suite", metrics.NewSample("parse small suite", 2*time.Millisecond))
	set.Record("run simple suite (no output)", metrics.NewSample("run simple suite (no output)", 1*time.Millisecond))
	set.Record("run simple suite (no output)", metrics.NewSample("run simple suite (no output)", 3*time.Millisecond))
	set.Record("heap usage during parsing", metrics.NewSampleWithMemory("heap usage during parsing", time.Millisecond, 4096))
	return set
}

func decode(t *testing.T, out string) []map[string]any {
	t.Helper()
	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	return items
}

func TestNewKnownAndUnknownFormats(t *testing.T) {
	for _, f := range Formats() {
		r, err := New(f)
		require.NoError(t, err)
		assert.NotNil(t, r)
	}
	r, err := New(" JSON ")
	require.NoError(t, err)
	assert.IsType(t, JSON{}, r)

	_, err = New("xml")
	assert.ErrorIs(t, err, benchmark.ErrConfiguration)
}

func TestConsoleEmptySet(t *testing.T) {
	for _, set := range []*metrics.ResultSet{nil, metrics.NewResultSet()} {
		out, err := Console{}.Render(set)
		require.NoError(t, err)
		assert.Contains(t, out, "No benchmark results")
		for _, border := range []string{"│", "─", "┌", "┼", "+", "|"} {
			assert.NotContains(t, out, border)
		}
	}
}

func TestConsoleTable(t *testing.T) {
	out, err := Console{}.Render(sampleSet())
	require.NoError(t, err)

	assert.Contains(t, out, "Benchmark Results")
	assert.Contains(t, out, "Mean(ms)")
	assert.Contains(t, out, "Min(ms)")
	assert.Contains(t, out, "Max(ms)")
	assert.Contains(t, out, "Stdev(ms)")
	assert.Contains(t, out, "Peak Mem")
	assert.Contains(t, out, "│")
	for _, name := range sampleSet().Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "2.000")
	assert.Contains(t, out, "4.0 KB")
	assert.Contains(t, out, "N/A")
}

func TestConsoleOmitsStdevForSingleRuns(t *testing.T) {
	set := metrics.NewResultSet()
	set.Record("once", metrics.NewSample("once", time.Millisecond))

	out, err := Console{}.Render(set)
	require.NoError(t, err)
	assert.NotContains(t, out, "Stdev(ms)")
	assert.NotContains(t, out, "Peak Mem")
}

func TestConsoleKeepsFullOperationNames(t *testing.T) {
	names := []string{
		"run simple suite (no output)",
		"run keyword suite (no output)",
		"build running model from filesystem",
		"load execution result (output.json)",
		"validate suites against schema",
	}
	set := metrics.NewResultSet()
	for _, name := range names {
		set.Record(name, metrics.NewSample(name, time.Millisecond))
	}

	out, err := Console{}.Render(set)
	require.NoError(t, err)
	for _, name := range names {
		assert.Contains(t, out, name)
	}
	assert.NotContains(t, out, "…")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	width := lipgloss.Width(lines[1])
	for _, line := range lines[1:] {
		assert.Equal(t, width, lipgloss.Width(line), "every table line has the same width")
	}
}

func TestConsoleTruncatesLongNames(t *testing.T) {
	long := strings.Repeat("x", 100)
	set := metrics.NewResultSet()
	set.Record(long, metrics.NewSample(long, time.Millisecond))

	out, err := Console{}.Render(set)
	require.NoError(t, err)
	assert.NotContains(t, out, long)
	assert.Contains(t, out, "…")
}

func TestConsoleStylesForDestination(t *testing.T) {
	var plain bytes.Buffer
	out, err := NewConsole(&plain).Render(sampleSet())
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b[", "a non-terminal destination gets no escape sequences")
	assert.Contains(t, out, "run simple suite (no output)")

	colored := lipgloss.NewRenderer(&bytes.Buffer{})
	colored.SetColorProfile(termenv.TrueColor)
	out, err = Console{renderer: colored}.Render(sampleSet())
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")

	r, err := NewFor(FormatConsole, &plain)
	require.NoError(t, err)
	assert.IsType(t, Console{}, r)
}

func TestJSONEmptySet(t *testing.T) {
	out, err := JSON{}.Render(metrics.NewResultSet())
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
	assert.Empty(t, decode(t, out))
}

func TestJSONConditionalFields(t *testing.T) {
	out, err := JSON{}.Render(sampleSet())
	require.NoError(t, err)
	items := decode(t, out)
	require.Len(t, items, 3)

	for _, item := range items {
		for _, key := range []string{"name", "mean_ms", "min_ms", "max_ms", "runs"} {
			assert.Contains(t, item, key)
		}
	}

	single, multi, memory := items[0], items[1], items[2]
	assert.Equal(t, "parse small suite", single["name"])
	assert.NotContains(t, single, "stdev_ms")
	assert.NotContains(t, single, "peak_memory_bytes")
	assert.EqualValues(t, 1, single["runs"])
	assert.InDelta(t, 2.0, single["mean_ms"], 1e-9)

	assert.Contains(t, multi, "stdev_ms")
	assert.NotContains(t, multi, "peak_memory_bytes")
	assert.EqualValues(t, 2, multi["runs"])
	assert.InDelta(t, 2.0, multi["mean_ms"], 1e-9)
	assert.InDelta(t, 1.0, multi["min_ms"], 1e-9)
	assert.InDelta(t, 3.0, multi["max_ms"], 1e-9)

	assert.EqualValues(t, 4096, memory["peak_memory_bytes"])
	assert.NotContains(t, out, "null")
}

func TestJSONRunsMatchIterations(t *testing.T) {
	set := metrics.NewResultSet()
	for i := 0; i < 7; i++ {
		set.Record("op", metrics.NewSample("op", time.Duration(i+1)*time.Microsecond))
	}
	out, err := JSON{}.Render(set)
	require.NoError(t, err)
	items := decode(t, out)
	require.Len(t, items, 1)
	assert.EqualValues(t, 7, items[0]["runs"])
}

func TestRenderRejectsEmptyResults(t *testing.T) {
	set := metrics.NewResultSet()
	require.NoError(t, set.Add(metrics.NewResult("never ran")))

	for _, r := range []Reporter{Console{}, JSON{}, Prometheus{}} {
		_, err := r.Render(set)
		assert.ErrorIs(t, err, metrics.ErrNoSamples)
	}
}

func TestPrometheusExposition(t *testing.T) {
	out, err := Prometheus{}.Render(sampleSet())
	require.NoError(t, err)

	assert.Contains(t, out, "# TYPE suitebench_benchmark_mean_ms gauge")
	assert.Contains(t, out, `suitebench_benchmark_mean_ms{name="parse small suite"} 2`)
	assert.Contains(t, out, `suitebench_benchmark_runs{name="run simple suite (no output)"} 2`)
	assert.Contains(t, out, `suitebench_benchmark_peak_memory_bytes{name="heap usage during parsing"} 4096`)
	assert.NotContains(t, out, `suitebench_benchmark_stdev_ms{name="parse small suite"}`)
	assert.Contains(t, out, `suitebench_benchmark_stdev_ms{name="run simple suite (no output)"}`)
}

func TestPrometheusEmptySet(t *testing.T) {
	out, err := Prometheus{}.Render(metrics.NewResultSet())
	require.NoError(t, err)
	assert.Empty(t, out)
}
