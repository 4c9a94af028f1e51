// internal/report/json.go
package report

import (
	"encoding/json"

	"github.com/mwiater/suitebench/internal/metrics"
)

// jsonResult is one element of the JSON report. Optional figures are
// pointers so that "not applicable" drops the key instead of emitting null.
type jsonResult struct {
	Name            string   `json:"name"`
	MeanMS          float64  `json:"mean_ms"`
	MinMS           float64  `json:"min_ms"`
	MaxMS           float64  `json:"max_ms"`
	Runs            int      `json:"runs"`
	StdevMS         *float64 `json:"stdev_ms,omitempty"`
	PeakMemoryBytes *uint64  `json:"peak_memory_bytes,omitempty"`
}

// JSON renders an indented array, one object per result.
type JSON struct{}

func (JSON) Render(set *metrics.ResultSet) (string, error) {
	rows, err := rowsOf(set)
	if err != nil {
		return "", err
	}
	out := make([]jsonResult, 0, len(rows))
	for _, r := range rows {
		item := jsonResult{
			Name:   r.name,
			MeanMS: round6(r.mean),
			MinMS:  round6(r.min),
			MaxMS:  round6(r.max),
			Runs:   r.runs,
		}
		if r.hasDev {
			stdev := round6(r.stdev)
			item.StdevMS = &stdev
		}
		if r.hasPeak {
			peak := r.peak
			item.PeakMemoryBytes = &peak
		}
		out = append(out, item)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
