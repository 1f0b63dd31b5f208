package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/table"
)

// defaultFeatures returns every numeric column except the target.
func defaultFeatures(t *table.Table, target string) []string {
	var out []string
	for _, name := range t.NumericColumns() {
		if name == target {
			continue
		}
		out = append(out, name)
	}
	return out
}

// featureMatrix extracts the named numeric columns as a dense matrix of
// rows free of NaN, together with the inclusion mask over the original row
// order. A missing or non-numeric column is an error.
func featureMatrix(t *table.Table, cols []string) (*mat.Dense, []bool, error) {
	series := make([][]float64, len(cols))
	for j, name := range cols {
		vals, ok := t.Floats(name)
		if !ok {
			return nil, nil, fmt.Errorf("column %q is missing or not numeric", name)
		}
		series[j] = vals
	}
	mask := make([]bool, t.Len())
	kept := 0
	for i := range mask {
		keep := true
		for _, col := range series {
			if math.IsNaN(col[i]) {
				keep = false
				break
			}
		}
		mask[i] = keep
		if keep {
			kept++
		}
	}
	if kept == 0 {
		// No usable rows; callers treat a nil matrix as zero samples.
		return nil, mask, nil
	}
	m := mat.NewDense(kept, len(cols), nil)
	r := 0
	for i, keep := range mask {
		if !keep {
			continue
		}
		for j, col := range series {
			m.Set(r, j, col[i])
		}
		r++
	}
	return m, mask, nil
}

// cleanColumns drops every row carrying a NaN in any of the named numeric
// columns and returns the surviving values per column plus the number of
// rows removed. Row order is preserved.
func cleanColumns(t *table.Table, cols []string) ([][]float64, int, error) {
	series := make([][]float64, len(cols))
	for j, name := range cols {
		vals, ok := t.Floats(name)
		if !ok {
			return nil, 0, fmt.Errorf("column %q is missing or not numeric", name)
		}
		series[j] = vals
	}
	out := make([][]float64, len(cols))
	removed := 0
	for i := 0; i < t.Len(); i++ {
		drop := false
		for _, col := range series {
			if math.IsNaN(col[i]) {
				drop = true
				break
			}
		}
		if drop {
			removed++
			continue
		}
		for j, col := range series {
			out[j] = append(out[j], col[i])
		}
	}
	return out, removed, nil
}

// maskStrings selects the raw values of a column by the inclusion mask.
func maskStrings(c *table.Column, mask []bool) []string {
	var out []string
	for i, keep := range mask {
		if keep {
			out = append(out, c.Raw[i])
		}
	}
	return out
}
