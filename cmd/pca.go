package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/analysis"
	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/render"
	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/table"
)

var (
	pcaFeatures    []string
	pcaComponents  int
	pcaStandardize bool
	pcaTarget      string
	pcaPlot        string
)

var pcaCmd = &cobra.Command{
	Use:   "pca <file>",
	Short: "Project the numeric features onto their principal components",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := table.ReadFile(args[0])
		if err != nil {
			return err
		}
		components := pcaComponents
		if !cmd.Flags().Changed("components") {
			components = cfg.Components
		}
		standardize := pcaStandardize
		if !cmd.Flags().Changed("standardize") {
			standardize = cfg.Standardize
		}
		a := analysis.NewPCAAnalyzer()
		params := analysis.PCAParams{
			FeatureColumns: featuresOrNil(pcaFeatures),
			Components:     components,
			Standardize:    standardize,
			TargetColumn:   pcaTarget,
		}
		if !a.Validate(t, params) {
			return fmt.Errorf("table is not suitable for PCA")
		}
		res, err := a.Analyze(cmd.Context(), t, params)
		if err != nil {
			return err
		}
		if pcaPlot != "" {
			if err := render.Projection(res, render.Config{Title: "PCA projection"}, pcaPlot); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "wrote", pcaPlot)
		}
		return newReport("pca", res.Metrics, res.Meta).write(cmd.OutOrStdout())
	},
}

// featuresOrNil maps an unset flag to nil so the analyzer applies its
// all-numeric-columns default.
func featuresOrNil(fs []string) []string {
	if len(fs) == 0 {
		return nil
	}
	return fs
}

func init() {
	pcaCmd.Flags().StringSliceVar(&pcaFeatures, "features", nil, "feature columns (default: all numeric columns except the target)")
	pcaCmd.Flags().IntVar(&pcaComponents, "components", 2, "number of components (2 or 3)")
	pcaCmd.Flags().BoolVar(&pcaStandardize, "standardize", true, "standardize features before the decomposition")
	pcaCmd.Flags().StringVar(&pcaTarget, "target", "", "label column for coloring (never used as a feature)")
	pcaCmd.Flags().StringVar(&pcaPlot, "plot", "", "write a projection scatter PNG to this path")
	rootCmd.AddCommand(pcaCmd)
}
