// Package render turns analysis results into PNG figures. It depends only
// on the metric and metadata keys of a Result, never on the analyzers
// themselves, so any other charting backend can replace it.
package render

import (
	"fmt"

	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/analysis"
)

// Config carries presentation hints. Zero values fall back to labels
// derived from the result metadata.
type Config struct {
	Title  string
	XLabel string
	YLabel string
}

func metaFloats(res *analysis.Result, key string) ([]float64, error) {
	v, ok := res.MetaFloats(key)
	if !ok {
		return nil, fmt.Errorf("render: result is missing %q", key)
	}
	return v, nil
}

func metaString(res *analysis.Result, key string) string {
	v, _ := res.MetaString(key)
	return v
}
