// internal/report/report.go
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mwiater/suitebench/internal/benchmark"
	"github.com/mwiater/suitebench/internal/metrics"
)

// Supported output formats.
const (
	FormatConsole    = "console"
	FormatJSON       = "json"
	FormatPrometheus = "prometheus"
)

// Formats lists the accepted --format values.
func Formats() []string {
	return []string{FormatConsole, FormatJSON, FormatPrometheus}
}

// Reporter renders a result set. Implementations hold no state and never
// modify the set.
type Reporter interface {
	Render(set *metrics.ResultSet) (string, error)
}

// New returns the reporter for format, styled for stdout.
func New(format string) (Reporter, error) {
	return NewFor(format, nil)
}

// NewFor returns the reporter for format whose output will be written to w.
// A nil w means stdout.
func NewFor(format string, w io.Writer) (Reporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatConsole:
		if w == nil {
			return Console{}, nil
		}
		return NewConsole(w), nil
	case FormatJSON:
		return JSON{}, nil
	case FormatPrometheus:
		return Prometheus{}, nil
	default:
		return nil, benchmark.Configf("unknown format %q (expected one of %s)", format, strings.Join(Formats(), ", "))
	}
}

// row is the millisecond view of one result shared by every reporter.
type row struct {
	name    string
	mean    float64
	min     float64
	max     float64
	runs    int
	stdev   float64
	hasDev  bool
	peak    uint64
	hasPeak bool
}

func rowsOf(set *metrics.ResultSet) ([]row, error) {
	if set == nil {
		return nil, nil
	}
	rows := make([]row, 0, set.Len())
	for _, res := range set.Results() {
		mean, err := res.MeanSeconds()
		if err != nil {
			return nil, fmt.Errorf("render %q: %w", res.Name(), err)
		}
		minS, err := res.MinSeconds()
		if err != nil {
			return nil, fmt.Errorf("render %q: %w", res.Name(), err)
		}
		maxS, err := res.MaxSeconds()
		if err != nil {
			return nil, fmt.Errorf("render %q: %w", res.Name(), err)
		}
		r := row{
			name: res.Name(),
			mean: mean * 1000,
			min:  minS * 1000,
			max:  maxS * 1000,
			runs: res.Runs(),
		}
		if stdev, ok := res.StdevSeconds(); ok {
			r.stdev, r.hasDev = stdev*1000, true
		}
		r.peak, r.hasPeak = res.PeakMemoryBytes()
		rows = append(rows, r)
	}
	return rows, nil
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
