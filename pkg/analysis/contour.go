package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/interp"
	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/stats"
	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/table"
)

// defaultGridResolution is the per-axis grid size when none is given.
const defaultGridResolution = 50

// cubicMinSamples is the sample count above which the cubic method is
// trusted; at or below it the cubic request silently runs linear.
const cubicMinSamples = 9

// ContourParams configures surface interpolation. Empty column names
// default to the first three numeric columns; Method defaults to linear
// and GridResolution to 50.
type ContourParams struct {
	ColumnX        string
	ColumnY        string
	ColumnZ        string
	Method         interp.Method
	GridResolution int
}

func (p ContourParams) withDefaults() ContourParams {
	if p.Method == "" {
		p.Method = interp.Linear
	}
	if p.GridResolution <= 0 {
		p.GridResolution = defaultGridResolution
	}
	return p
}

// ContourAnalyzer interpolates a scattered 3-column sample onto a regular
// grid and reports surface statistics.
type ContourAnalyzer struct {
	log        *slog.Logger
	minColumns int
}

// NewContourAnalyzer constructs the analyzer.
func NewContourAnalyzer(opts ...Option) *ContourAnalyzer {
	s := newSettings(opts)
	return &ContourAnalyzer{log: s.log, minColumns: 3}
}

// RequiredColumns returns 3.
func (a *ContourAnalyzer) RequiredColumns() int { return a.minColumns }

func (a *ContourAnalyzer) resolve(t *table.Table, p ContourParams) (x, y, z string, ok bool) {
	numeric := t.NumericColumns()
	pick := func(name string, idx int) (string, bool) {
		if name != "" {
			return name, true
		}
		if idx < len(numeric) {
			return numeric[idx], true
		}
		return "", false
	}
	if x, ok = pick(p.ColumnX, 0); !ok {
		return
	}
	if y, ok = pick(p.ColumnY, 1); !ok {
		return
	}
	z, ok = pick(p.ColumnZ, 2)
	return
}

// Validate reports whether t holds three usable numeric columns with at
// least three clean rows.
func (a *ContourAnalyzer) Validate(t *table.Table, p ContourParams) bool {
	if t == nil || t.Len() == 0 {
		return false
	}
	colX, colY, colZ, ok := a.resolve(t, p)
	if !ok || !t.IsNumeric(colX) || !t.IsNumeric(colY) || !t.IsNumeric(colZ) {
		return false
	}
	cols, _, err := cleanColumns(t, []string{colX, colY, colZ})
	if err != nil {
		return false
	}
	return len(cols[0]) >= 3
}

// Analyze computes surface statistics and the interpolated grid. Metrics:
// z_min, z_max, z_mean, z_std, z_range, avg_gradient, n_points, n_removed.
// Metadata: column_x/y/z, x_range, y_range, z_range, interpolation_method,
// grid_x, grid_y, grid_z, original_x/y/z.
func (a *ContourAnalyzer) Analyze(ctx context.Context, t *table.Table, p ContourParams) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p = p.withDefaults()
	if t == nil || t.Len() == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrInvalidInput)
	}
	colX, colY, colZ, ok := a.resolve(t, p)
	if !ok {
		return nil, fmt.Errorf("%w: table has fewer than 3 numeric columns", ErrInvalidInput)
	}
	if !t.IsNumeric(colX) || !t.IsNumeric(colY) || !t.IsNumeric(colZ) {
		return nil, fmt.Errorf("%w: columns %q, %q, %q must be numeric", ErrInvalidInput, colX, colY, colZ)
	}
	cols, removed, err := cleanColumns(t, []string{colX, colY, colZ})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	x, y, z := cols[0], cols[1], cols[2]
	n := len(x)
	if n < 3 {
		return nil, fmt.Errorf("%w: need at least 3 clean points, have %d", ErrInsufficientData, n)
	}
	a.log.Info("contour analysis", "column_x", colX, "column_y", colY, "column_z", colZ,
		"n_points", n, "n_removed", removed, "method", string(p.Method), "resolution", p.GridResolution)

	zs, err := stats.Summarize(z)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientData, err)
	}
	avgGradient := averageGradient(x, y, z)

	xMin, xMax, err := stats.Range(x)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientData, err)
	}
	yMin, yMax, err := stats.Range(y)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientData, err)
	}

	gridX := interp.Linspace(xMin, xMax, p.GridResolution)
	gridY := interp.Linspace(yMin, yMax, p.GridResolution)

	var gridZ [][]float64
	if p.Method == interp.Cubic && n > cubicMinSamples {
		gridZ, err = interp.CubicGrid(x, y, z, gridX, gridY, zs.Mean)
	} else {
		gridZ, err = interp.LinearGrid(x, y, z, gridX, gridY, zs.Mean)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInterpolation, err)
	}

	return &Result{
		Metrics: map[string]float64{
			"z_min":        zs.Min,
			"z_max":        zs.Max,
			"z_mean":       zs.Mean,
			"z_std":        zs.StdDev,
			"z_range":      zs.Max - zs.Min,
			"avg_gradient": avgGradient,
			"n_points":     float64(n),
			"n_removed":    float64(removed),
		},
		Meta: map[string]any{
			"column_x":             colX,
			"column_y":             colY,
			"column_z":             colZ,
			"x_range":              [2]float64{xMin, xMax},
			"y_range":              [2]float64{yMin, yMax},
			"z_range":              [2]float64{zs.Min, zs.Max},
			"interpolation_method": string(p.Method),
			"grid_x":               gridX,
			"grid_y":               gridY,
			"grid_z":               gridZ,
			"original_x":           x,
			"original_y":           y,
			"original_z":           z,
		},
	}, nil
}

// averageGradient estimates the mean surface steepness from finite
// differences over consecutive samples in their original (unsorted) order.
// A small epsilon guards near-zero steps; an axis with no variation at all
// contributes unit steps instead.
func averageGradient(x, y, z []float64) float64 {
	n := len(z)
	if n < 2 {
		return 0
	}
	const eps = 1e-10
	xVaries := uniqueCount(x) > 1
	yVaries := uniqueCount(y) > 1
	sum := 0.0
	for i := 0; i < n-1; i++ {
		dx, dy := 1.0, 1.0
		if xVaries {
			dx = x[i+1] - x[i]
		}
		if yVaries {
			dy = y[i+1] - y[i]
		}
		dz := z[i+1] - z[i]
		gx := math.Abs(dz / (dx + eps))
		gy := math.Abs(dz / (dy + eps))
		sum += math.Sqrt(gx*gx + gy*gy)
	}
	return sum / float64(n-1)
}

func uniqueCount(xs []float64) int {
	seen := make(map[float64]struct{}, len(xs))
	for _, v := range xs {
		seen[v] = struct{}{}
	}
	return len(seen)
}

var _ Analyzer[ContourParams] = (*ContourAnalyzer)(nil)
