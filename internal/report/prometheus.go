// internal/report/prometheus.go
package report

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/mwiater/suitebench/internal/metrics"
)

const (
	metricsNamespace   = "suitebench"
	benchmarkSubsystem = "benchmark"
)

// Prometheus renders the results in the text exposition format, suitable
// for a node_exporter textfile collector or a push gateway.
type Prometheus struct{}

func (Prometheus) Render(set *metrics.ResultSet) (string, error) {
	rows, err := rowsOf(set)
	if err != nil {
		return "", err
	}

	reg := prometheus.NewRegistry()
	gauge := func(name, help string) *prometheus.GaugeVec {
		g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: benchmarkSubsystem,
			Name:      name,
			Help:      help,
		}, []string{"name"})
		reg.MustRegister(g)
		return g
	}
	mean := gauge("mean_ms", "Mean elapsed time per iteration in milliseconds")
	minMS := gauge("min_ms", "Shortest iteration in milliseconds")
	maxMS := gauge("max_ms", "Longest iteration in milliseconds")
	stdev := gauge("stdev_ms", "Sample standard deviation of iteration time in milliseconds")
	runs := gauge("runs", "Number of recorded iterations")
	peak := gauge("peak_memory_bytes", "Heap bytes allocated during the most recent tracked iteration")

	for _, r := range rows {
		mean.WithLabelValues(r.name).Set(round6(r.mean))
		minMS.WithLabelValues(r.name).Set(round6(r.min))
		maxMS.WithLabelValues(r.name).Set(round6(r.max))
		runs.WithLabelValues(r.name).Set(float64(r.runs))
		if r.hasDev {
			stdev.WithLabelValues(r.name).Set(round6(r.stdev))
		}
		if r.hasPeak {
			peak.WithLabelValues(r.name).Set(float64(r.peak))
		}
	}

	families, err := reg.Gather()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&b, mf); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}
