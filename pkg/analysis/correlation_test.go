package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/table"
)

func numericTable(t *testing.T, names []string, cols ...[]float64) *table.Table {
	t.Helper()
	tbl, err := table.FromFloats(names, cols)
	require.NoError(t, err)
	return tbl
}

func TestCorrelationPerfectPositive(t *testing.T) {
	tbl := numericTable(t, []string{"x", "y"},
		[]float64{1, 2, 3, 4, 5},
		[]float64{2, 4, 6, 8, 10},
	)
	a := NewCorrelationAnalyzer()
	require.True(t, a.Validate(tbl, CorrelationParams{}))

	res, err := a.Analyze(context.Background(), tbl, CorrelationParams{})
	require.NoError(t, err)

	require.InDelta(t, 2.0, res.Metrics["slope"], 1e-9)
	require.InDelta(t, 0.0, res.Metrics["intercept"], 1e-9)
	require.InDelta(t, 1.0, res.Metrics["r2"], 1e-9)
	require.InDelta(t, 0.0, res.Metrics["rmse"], 1e-9)
	require.InDelta(t, 1.0, res.Metrics["pearson_r"], 1e-9)
	require.InDelta(t, 0.0, res.Metrics["p_value"], 1e-6)
	require.InDelta(t, 0.0, res.Metrics["std_error"], 1e-6)
	require.Equal(t, 5.0, res.Metrics["n_points"])
	require.Equal(t, 0.0, res.Metrics["n_removed"])

	require.Equal(t, "x", res.Meta["column_x"])
	require.Equal(t, "y", res.Meta["column_y"])
	require.Equal(t, [2]float64{1, 5}, res.Meta["x_range"])
	require.Equal(t, [2]float64{2, 10}, res.Meta["y_range"])
}

func TestCorrelationPerfectNegative(t *testing.T) {
	tbl := numericTable(t, []string{"x", "y"},
		[]float64{1, 2, 3, 4, 5},
		[]float64{10, 8, 6, 4, 2},
	)
	res, err := NewCorrelationAnalyzer().Analyze(context.Background(), tbl, CorrelationParams{})
	require.NoError(t, err)
	require.InDelta(t, -2.0, res.Metrics["slope"], 1e-9)
	require.InDelta(t, 1.0, res.Metrics["r2"], 1e-9)
	require.InDelta(t, -1.0, res.Metrics["pearson_r"], 1e-9)
}

func TestCorrelationNoisyFit(t *testing.T) {
	tbl := numericTable(t, []string{"x", "y"},
		[]float64{1, 2, 3, 4, 5, 6, 7, 8},
		[]float64{2.1, 3.9, 6.2, 7.8, 10.3, 11.7, 14.1, 15.9},
	)
	res, err := NewCorrelationAnalyzer().Analyze(context.Background(), tbl, CorrelationParams{ColumnX: "x", ColumnY: "y"})
	require.NoError(t, err)
	require.InDelta(t, 2.0, res.Metrics["slope"], 0.05)
	require.Greater(t, res.Metrics["r2"], 0.99)
	require.Greater(t, res.Metrics["rmse"], 0.0)
	require.Less(t, res.Metrics["p_value"], 1e-6)
	require.Greater(t, res.Metrics["std_error"], 0.0)
	require.InDelta(t, res.Metrics["mse"], res.Metrics["rmse"]*res.Metrics["rmse"], 1e-9)
}

func TestSelfCorrelation(t *testing.T) {
	tbl := numericTable(t, []string{"v"}, []float64{3, 1, 4, 1, 5, 9})
	a := NewCorrelationAnalyzer()
	params := CorrelationParams{ColumnX: "v", ColumnY: "v"}
	require.True(t, a.Validate(tbl, params))

	res, err := a.Analyze(context.Background(), tbl, params)
	require.NoError(t, err)
	require.InDelta(t, 1.0, res.Metrics["slope"], 1e-9)
	require.InDelta(t, 0.0, res.Metrics["intercept"], 1e-9)
	require.InDelta(t, 1.0, res.Metrics["pearson_r"], 1e-9)
	require.InDelta(t, 0.0, res.Metrics["rmse"], 1e-9)
}

func TestSelfCorrelationZeroVariance(t *testing.T) {
	tbl := numericTable(t, []string{"v"}, []float64{7, 7, 7, 7})
	a := NewCorrelationAnalyzer()
	params := CorrelationParams{ColumnX: "v", ColumnY: "v"}
	require.False(t, a.Validate(tbl, params))

	_, err := a.Analyze(context.Background(), tbl, params)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCorrelationNaNRemoval(t *testing.T) {
	nan := math.NaN()
	tbl := numericTable(t, []string{"x", "y"},
		[]float64{1, 2, nan, 4, 5},
		[]float64{2, nan, 6, 8, 10},
	)
	res, err := NewCorrelationAnalyzer().Analyze(context.Background(), tbl, CorrelationParams{})
	require.NoError(t, err)
	require.Equal(t, 3.0, res.Metrics["n_points"])
	require.Equal(t, 2.0, res.Metrics["n_removed"])
	require.InDelta(t, 2.0, res.Metrics["slope"], 1e-9)
}

func TestCorrelationDefaultColumns(t *testing.T) {
	tbl, err := table.FromRecords(
		[]string{"name", "a", "b"},
		[][]string{
			{"p", "1", "3"},
			{"q", "2", "5"},
			{"r", "3", "7"},
		},
	)
	require.NoError(t, err)
	// Defaults skip the text column and pick the first two numeric ones.
	res, err := NewCorrelationAnalyzer().Analyze(context.Background(), tbl, CorrelationParams{})
	require.NoError(t, err)
	require.Equal(t, "a", res.Meta["column_x"])
	require.Equal(t, "b", res.Meta["column_y"])
	require.InDelta(t, 2.0, res.Metrics["slope"], 1e-9)
}

func TestCorrelationFailures(t *testing.T) {
	ctx := context.Background()
	a := NewCorrelationAnalyzer()

	t.Run("nil table", func(t *testing.T) {
		require.False(t, a.Validate(nil, CorrelationParams{}))
		_, err := a.Analyze(ctx, nil, CorrelationParams{})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing column", func(t *testing.T) {
		tbl := numericTable(t, []string{"x", "y"}, []float64{1, 2}, []float64{3, 4})
		params := CorrelationParams{ColumnX: "nope", ColumnY: "y"}
		require.False(t, a.Validate(tbl, params))
		_, err := a.Analyze(ctx, tbl, params)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("non-numeric column", func(t *testing.T) {
		tbl, err := table.FromRecords([]string{"x", "s"}, [][]string{{"1", "a"}, {"2", "b"}})
		require.NoError(t, err)
		params := CorrelationParams{ColumnX: "x", ColumnY: "s"}
		require.False(t, a.Validate(tbl, params))
		_, err = a.Analyze(ctx, tbl, params)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("too few clean rows", func(t *testing.T) {
		nan := math.NaN()
		tbl := numericTable(t, []string{"x", "y"}, []float64{1, nan, nan}, []float64{2, 3, 4})
		require.False(t, a.Validate(tbl, CorrelationParams{}))
		_, err := a.Analyze(ctx, tbl, CorrelationParams{})
		require.ErrorIs(t, err, ErrInsufficientData)
	})
}

func TestSlopeInferenceTwoPoints(t *testing.T) {
	tbl := numericTable(t, []string{"x", "y"}, []float64{1, 2}, []float64{5, 9})
	res, err := NewCorrelationAnalyzer().Analyze(context.Background(), tbl, CorrelationParams{})
	require.NoError(t, err)
	// Zero degrees of freedom: the slope carries no inferential weight.
	require.Equal(t, 1.0, res.Metrics["p_value"])
	require.Equal(t, 0.0, res.Metrics["std_error"])
	require.InDelta(t, 4.0, res.Metrics["slope"], 1e-9)
}
