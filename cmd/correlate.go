package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/analysis"
	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/render"
	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/table"
)

var (
	correlateX    string
	correlateY    string
	correlatePlot string
)

var correlateCmd = &cobra.Command{
	Use:   "correlate <file>",
	Short: "Fit a linear regression between two numeric columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := table.ReadFile(args[0])
		if err != nil {
			return err
		}
		a := analysis.NewCorrelationAnalyzer()
		params := analysis.CorrelationParams{ColumnX: correlateX, ColumnY: correlateY}
		if !a.Validate(t, params) {
			return fmt.Errorf("table is not suitable for correlation analysis")
		}
		res, err := a.Analyze(cmd.Context(), t, params)
		if err != nil {
			return err
		}
		if correlatePlot != "" {
			colX, _ := res.MetaString("column_x")
			colY, _ := res.MetaString("column_y")
			x, y := cleanPoints(t, colX, colY)
			if err := render.Correlation(x, y, res, render.Config{}, correlatePlot); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "wrote", correlatePlot)
		}
		return newReport("correlation", res.Metrics, res.Meta).write(cmd.OutOrStdout())
	},
}

// cleanPoints drops rows with a NaN in either column, mirroring the
// analyzer's masking, so the plotted points match the fitted ones.
func cleanPoints(t *table.Table, colX, colY string) (x, y []float64) {
	xs, okX := t.Floats(colX)
	ys, okY := t.Floats(colY)
	if !okX || !okY {
		return nil, nil
	}
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		x = append(x, xs[i])
		y = append(y, ys[i])
	}
	return x, y
}

func init() {
	correlateCmd.Flags().StringVar(&correlateX, "x", "", "x column (default: first numeric column)")
	correlateCmd.Flags().StringVar(&correlateY, "y", "", "y column (default: second numeric column)")
	correlateCmd.Flags().StringVar(&correlatePlot, "plot", "", "write a scatter + fit-line PNG to this path")
	rootCmd.AddCommand(correlateCmd)
}
