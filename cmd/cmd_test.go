package cmd

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vivekkr1809/ml-data-pipeline-visualization/internal/config"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (report, error) {
	t.Helper()
	cfg = config.Builtin()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	var r report
	if err == nil {
		require.NoError(t, json.Unmarshal(out.Bytes(), &r))
	}
	return r, err
}

func TestCorrelateCommand(t *testing.T) {
	path := writeCSV(t, "x,y\n1,2\n2,4\n3,6\n4,8\n")
	r, err := runCommand(t, "correlate", path)
	require.NoError(t, err)

	require.NotEmpty(t, r.RunID)
	require.Equal(t, "correlation", r.Analyzer)
	require.InDelta(t, 2.0, r.Metrics["slope"], 1e-9)
	require.InDelta(t, 1.0, r.Metrics["r2"], 1e-9)
	require.Equal(t, "x", r.Meta["column_x"])
}

func TestCorrelateCommandRejectsBadTable(t *testing.T) {
	path := writeCSV(t, "name\na\nb\n")
	_, err := runCommand(t, "correlate", path)
	require.Error(t, err)
}

func TestContourCommand(t *testing.T) {
	csv := "x,y,z\n"
	rows := []string{
		"0,0,0", "1,0.1,1.1", "2,0.2,2.2",
		"0.1,1,1.1", "1.1,1.1,2.2", "2.1,1.2,3.3",
		"0.2,2,2.2", "1.2,2.1,3.3", "2.2,2.2,4.4",
	}
	for _, row := range rows {
		csv += row + "\n"
	}
	path := writeCSV(t, csv)

	r, err := runCommand(t, "contour", path, "--resolution", "8")
	require.NoError(t, err)
	require.Equal(t, "contour", r.Analyzer)
	require.Equal(t, 9.0, r.Metrics["n_points"])
	require.Equal(t, "linear", r.Meta["interpolation_method"])
}

func TestPCACommand(t *testing.T) {
	path := writeCSV(t, "a,b,label\n1.0,2.0,p\n2.0,4.1,p\n3.0,5.9,q\n4.0,8.2,q\n")
	r, err := runCommand(t, "pca", path, "--target", "label")
	require.NoError(t, err)
	require.Equal(t, "pca", r.Analyzer)
	require.Equal(t, 2.0, r.Metrics["n_components"])
	require.Equal(t, 4.0, r.Metrics["n_samples"])
}

func TestTSNECommand(t *testing.T) {
	path := writeCSV(t, "a,b\n0,0.1\n0.2,0\n0.1,0.2\n5,5.1\n5.2,5\n5.1,5.2\n")
	r, err := runCommand(t, "tsne", path, "--perplexity", "2", "--iterations", "40")
	require.NoError(t, err)
	require.Equal(t, "tsne", r.Analyzer)
	require.Equal(t, 6.0, r.Metrics["n_samples"])
	require.Equal(t, 2.0, r.Metrics["perplexity"])
	require.Equal(t, 40.0, r.Metrics["n_iter"])
}

func TestNewReportFiltersMeta(t *testing.T) {
	r := newReport("x", map[string]float64{"ok": 1}, map[string]any{
		"name":   "col",
		"range":  [2]float64{0, 1},
		"labels": []string{"a"},
		"grid":   [][]float64{{1, 2}},
		"coords": []float64{1, 2, 3},
	})
	require.Contains(t, r.Meta, "name")
	require.Contains(t, r.Meta, "range")
	require.Contains(t, r.Meta, "labels")
	require.NotContains(t, r.Meta, "grid")
	require.NotContains(t, r.Meta, "coords")
}

func TestSanitizeMetrics(t *testing.T) {
	out := sanitizeMetrics(map[string]float64{
		"fine": 1.5,
		"nan":  math.NaN(),
		"inf":  math.Inf(1),
	})
	require.Equal(t, map[string]float64{"fine": 1.5}, out)
}
