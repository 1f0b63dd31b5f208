package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/analysis"
	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/table"
)

func savedPNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestCorrelationPlot(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2.1, 3.9, 6.2, 7.8, 10.1}
	tbl, err := table.FromFloats([]string{"x", "y"}, [][]float64{x, y})
	require.NoError(t, err)

	res, err := analysis.NewCorrelationAnalyzer().Analyze(context.Background(), tbl, analysis.CorrelationParams{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "correlation.png")
	require.NoError(t, Correlation(x, y, res, Config{}, path))
	savedPNG(t, path)
}

func TestCorrelationPlotLengthMismatch(t *testing.T) {
	res := &analysis.Result{Metrics: map[string]float64{"slope": 1}, Meta: map[string]any{}}
	err := Correlation([]float64{1, 2}, []float64{1}, res, Config{}, "unused.png")
	require.Error(t, err)
}

func TestContourPlot(t *testing.T) {
	jitter := []float64{0.0, 0.11, 0.05, 0.17}
	var xs, ys, zs []float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			x := float64(i) + jitter[j]
			y := float64(j) + jitter[i]
			xs = append(xs, x)
			ys = append(ys, y)
			zs = append(zs, x*x+y)
		}
	}
	tbl, err := table.FromFloats([]string{"x", "y", "z"}, [][]float64{xs, ys, zs})
	require.NoError(t, err)

	res, err := analysis.NewContourAnalyzer().Analyze(context.Background(), tbl,
		analysis.ContourParams{GridResolution: 20})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "contour.png")
	require.NoError(t, Contour(res, Config{Title: "surface"}, path))
	savedPNG(t, path)
}

func TestProjectionPlotPCA(t *testing.T) {
	tbl, err := table.FromRecords(
		[]string{"a", "b", "label"},
		[][]string{
			{"1.0", "2.0", "p"},
			{"2.0", "4.1", "p"},
			{"3.0", "5.9", "q"},
			{"4.0", "8.2", "q"},
		},
	)
	require.NoError(t, err)

	res, err := analysis.NewPCAAnalyzer().Analyze(context.Background(), tbl,
		analysis.PCAParams{TargetColumn: "label", Standardize: true})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pca.png")
	require.NoError(t, Projection(res, Config{}, path))
	savedPNG(t, path)
}

func TestProjectionPlotTSNE(t *testing.T) {
	a := []float64{0, 0.1, 0.2, 5, 5.1, 5.2}
	b := []float64{0.1, 0, 0.2, 5.1, 5, 5.2}
	tbl, err := table.FromFloats([]string{"a", "b"}, [][]float64{a, b})
	require.NoError(t, err)

	res, err := analysis.NewTSNEAnalyzer().Analyze(context.Background(), tbl,
		analysis.TSNEParams{Perplexity: 2, Iterations: 40})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tsne.png")
	require.NoError(t, Projection(res, Config{Title: "embedding"}, path))
	savedPNG(t, path)
}

func TestProjectionWithoutCoordinates(t *testing.T) {
	res := &analysis.Result{Meta: map[string]any{}}
	err := Projection(res, Config{}, "unused.png")
	require.Error(t, err)
}
