package cmd

import (
	"encoding/json"
	"io"
	"math"

	"github.com/google/uuid"
)

// report is what each command prints: a run identifier, the analyzer name
// and the scalar metrics, plus the small metadata entries (column names,
// ranges, feature lists). Large arrays and grids stay out of the JSON;
// they feed --plot instead.
type report struct {
	RunID    string             `json:"run_id"`
	Analyzer string             `json:"analyzer"`
	Metrics  map[string]float64 `json:"metrics"`
	Meta     map[string]any     `json:"metadata,omitempty"`
}

func newReport(analyzer string, metrics map[string]float64, meta map[string]any) report {
	out := report{
		RunID:    uuid.NewString(),
		Analyzer: analyzer,
		Metrics:  sanitizeMetrics(metrics),
		Meta:     map[string]any{},
	}
	for k, v := range meta {
		switch v.(type) {
		case string, []string, [2]float64:
			out.Meta[k] = v
		}
	}
	if len(out.Meta) == 0 {
		out.Meta = nil
	}
	return out
}

// sanitizeMetrics drops NaN and Inf values, which encoding/json rejects.
func sanitizeMetrics(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[k] = v
	}
	return out
}

func (r report) write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
