package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/analysis"
	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/interp"
	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/render"
	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/table"
)

var (
	contourX          string
	contourY          string
	contourZ          string
	contourMethod     string
	contourResolution int
	contourPlot       string
)

var contourCmd = &cobra.Command{
	Use:   "contour <file>",
	Short: "Interpolate a scattered 3-column sample onto a regular grid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := table.ReadFile(args[0])
		if err != nil {
			return err
		}
		methodName := contourMethod
		if !cmd.Flags().Changed("method") {
			methodName = cfg.Interpolation
		}
		method, err := interp.ParseMethod(methodName)
		if err != nil {
			return err
		}
		resolution := contourResolution
		if !cmd.Flags().Changed("resolution") {
			resolution = cfg.GridResolution
		}
		a := analysis.NewContourAnalyzer()
		params := analysis.ContourParams{
			ColumnX:        contourX,
			ColumnY:        contourY,
			ColumnZ:        contourZ,
			Method:         method,
			GridResolution: resolution,
		}
		if !a.Validate(t, params) {
			return fmt.Errorf("table is not suitable for contour analysis")
		}
		res, err := a.Analyze(cmd.Context(), t, params)
		if err != nil {
			return err
		}
		if contourPlot != "" {
			if err := render.Contour(res, render.Config{}, contourPlot); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "wrote", contourPlot)
		}
		return newReport("contour", res.Metrics, res.Meta).write(cmd.OutOrStdout())
	},
}

func init() {
	contourCmd.Flags().StringVar(&contourX, "x", "", "x column (default: first numeric column)")
	contourCmd.Flags().StringVar(&contourY, "y", "", "y column (default: second numeric column)")
	contourCmd.Flags().StringVar(&contourZ, "z", "", "z column (default: third numeric column)")
	contourCmd.Flags().StringVar(&contourMethod, "method", "linear", "interpolation method: linear or cubic")
	contourCmd.Flags().IntVar(&contourResolution, "resolution", 50, "grid points per axis")
	contourCmd.Flags().StringVar(&contourPlot, "plot", "", "write a heat-map PNG to this path")
	rootCmd.AddCommand(contourCmd)
}
