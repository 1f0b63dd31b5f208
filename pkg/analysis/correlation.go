package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/stats"
	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/table"
)

// CorrelationParams selects the two columns to regress. Empty names
// default to the first and second numeric columns of the table. Selecting
// the same column for both axes is permitted.
type CorrelationParams struct {
	ColumnX string
	ColumnY string
}

// CorrelationAnalyzer fits an ordinary least-squares line between two
// numeric columns and reports the regression and residual statistics.
type CorrelationAnalyzer struct {
	log        *slog.Logger
	minColumns int
}

// NewCorrelationAnalyzer constructs the analyzer.
func NewCorrelationAnalyzer(opts ...Option) *CorrelationAnalyzer {
	s := newSettings(opts)
	return &CorrelationAnalyzer{log: s.log, minColumns: 2}
}

// RequiredColumns returns 2.
func (a *CorrelationAnalyzer) RequiredColumns() int { return a.minColumns }

// resolve fills defaulted column names. ok is false when the table has no
// numeric column to default to.
func (a *CorrelationAnalyzer) resolve(t *table.Table, p CorrelationParams) (x, y string, ok bool) {
	x, y = p.ColumnX, p.ColumnY
	numeric := t.NumericColumns()
	if x == "" {
		if len(numeric) == 0 {
			return "", "", false
		}
		x = numeric[0]
	}
	if y == "" {
		switch {
		case len(numeric) >= 2:
			y = numeric[1]
		case len(numeric) == 1:
			y = numeric[0]
		default:
			return "", "", false
		}
	}
	return x, y, true
}

// cleanPair drops NaN rows across the selected columns. When x and y name
// the same column the subset is deduplicated first, so self-correlation
// never trips a duplicate-column error.
func (a *CorrelationAnalyzer) cleanPair(t *table.Table, colX, colY string) (x, y []float64, removed int, err error) {
	if colX == colY {
		cols, removed, err := cleanColumns(t, []string{colX})
		if err != nil {
			return nil, nil, 0, err
		}
		return cols[0], cols[0], removed, nil
	}
	cols, removed, err := cleanColumns(t, []string{colX, colY})
	if err != nil {
		return nil, nil, 0, err
	}
	return cols[0], cols[1], removed, nil
}

// Validate reports whether t holds two usable numeric columns with at
// least two clean rows. It never returns an error.
func (a *CorrelationAnalyzer) Validate(t *table.Table, p CorrelationParams) bool {
	if t == nil || t.Len() == 0 {
		return false
	}
	colX, colY, ok := a.resolve(t, p)
	if !ok || !t.IsNumeric(colX) || !t.IsNumeric(colY) {
		return false
	}
	x, _, _, err := a.cleanPair(t, colX, colY)
	if err != nil {
		return false
	}
	if len(x) < 2 {
		return false
	}
	if stat.Variance(x, nil) == 0 {
		// Regression on a constant predictor is undefined.
		return false
	}
	return true
}

// Analyze fits the regression. Metrics: slope, intercept, r2, rmse,
// pearson_r, p_value, std_error, mae, mse, n_points, n_removed. Metadata:
// column_x, column_y, x_range, y_range.
func (a *CorrelationAnalyzer) Analyze(ctx context.Context, t *table.Table, p CorrelationParams) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if t == nil || t.Len() == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrInvalidInput)
	}
	colX, colY, ok := a.resolve(t, p)
	if !ok {
		return nil, fmt.Errorf("%w: no numeric columns to default to", ErrInvalidInput)
	}
	if !t.IsNumeric(colX) || !t.IsNumeric(colY) {
		return nil, fmt.Errorf("%w: columns %q and %q must be numeric", ErrInvalidInput, colX, colY)
	}
	x, y, removed, err := a.cleanPair(t, colX, colY)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	n := len(x)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 clean points, have %d", ErrInsufficientData, n)
	}
	varX := stat.Variance(x, nil)
	if varX == 0 {
		return nil, fmt.Errorf("%w: column %q has zero variance", ErrInvalidInput, colX)
	}
	a.log.Info("correlation analysis", "column_x", colX, "column_y", colY, "n_points", n, "n_removed", removed)

	intercept, slope := stat.LinearRegression(x, y, nil, false)

	varY := stat.Variance(y, nil)
	r := 0.0
	if varY > 0 {
		r = stat.Correlation(x, y, nil)
	}
	pValue, stdErr := slopeInference(r, varX, varY, n)

	residuals := make([]float64, n)
	var sumSq, sumAbs float64
	for i := range x {
		residuals[i] = y[i] - (slope*x[i] + intercept)
		sumSq += residuals[i] * residuals[i]
		sumAbs += math.Abs(residuals[i])
	}
	mse := sumSq / float64(n)
	mae := sumAbs / float64(n)
	rmse := math.Sqrt(mse)

	xMin, xMax, err := stats.Range(x)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientData, err)
	}
	yMin, yMax, err := stats.Range(y)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientData, err)
	}

	return &Result{
		Metrics: map[string]float64{
			"slope":     slope,
			"intercept": intercept,
			"r2":        r * r,
			"rmse":      rmse,
			"pearson_r": r,
			"p_value":   pValue,
			"std_error": stdErr,
			"mae":       mae,
			"mse":       mse,
			"n_points":  float64(n),
			"n_removed": float64(removed),
		},
		Meta: map[string]any{
			"column_x": colX,
			"column_y": colY,
			"x_range":  [2]float64{xMin, xMax},
			"y_range":  [2]float64{yMin, yMax},
		},
	}, nil
}

// slopeInference derives the two-sided p-value and standard error of the
// slope from the correlation coefficient and the column variances. With
// zero degrees of freedom (n == 2) the slope carries no information beyond
// the two points, so p is 1 and the standard error 0. A numerically
// perfect fit collapses to p = 0, std_error = 0.
func slopeInference(r, varX, varY float64, n int) (pValue, stdErr float64) {
	df := float64(n - 2)
	if df <= 0 {
		return 1, 0
	}
	oneMinusR2 := 1 - r*r
	if oneMinusR2 <= 0 {
		return 0, 0
	}
	// Guard against division blowup for |r| just under 1.
	tStat := r * math.Sqrt(df/((1-r)*(1+r)+1e-20))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue = 2 * dist.Survival(math.Abs(tStat))
	stdErr = math.Sqrt(oneMinusR2 * varY / varX / df)
	return pValue, stdErr
}

var _ Analyzer[CorrelationParams] = (*CorrelationAnalyzer)(nil)
