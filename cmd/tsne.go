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
	tsneFeatures     []string
	tsneComponents   int
	tsnePerplexity   float64
	tsneIterations   int
	tsneLearningRate float64
	tsneStandardize  bool
	tsneTarget       string
	tsneSeed         int64
	tsnePlot         string
)

var tsneCmd = &cobra.Command{
	Use:   "tsne <file>",
	Short: "Embed the numeric features with t-SNE",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := table.ReadFile(args[0])
		if err != nil {
			return err
		}
		floatFlagOrCfg := func(name string, flagVal, cfgVal float64) float64 {
			if cmd.Flags().Changed(name) {
				return flagVal
			}
			return cfgVal
		}
		components := tsneComponents
		if !cmd.Flags().Changed("components") {
			components = cfg.Components
		}
		iterations := tsneIterations
		if !cmd.Flags().Changed("iterations") {
			iterations = cfg.Iterations
		}
		standardize := tsneStandardize
		if !cmd.Flags().Changed("standardize") {
			standardize = cfg.Standardize
		}
		seed := tsneSeed
		if !cmd.Flags().Changed("seed") {
			seed = cfg.RandomSeed
		}
		a := analysis.NewTSNEAnalyzer()
		params := analysis.TSNEParams{
			FeatureColumns: featuresOrNil(tsneFeatures),
			Components:     components,
			Perplexity:     floatFlagOrCfg("perplexity", tsnePerplexity, cfg.Perplexity),
			Iterations:     iterations,
			LearningRate:   floatFlagOrCfg("learning-rate", tsneLearningRate, cfg.LearningRate),
			Standardize:    standardize,
			TargetColumn:   tsneTarget,
			RandomSeed:     seed,
		}
		if !a.Validate(t, params) {
			return fmt.Errorf("table is not suitable for t-SNE")
		}
		res, err := a.Analyze(cmd.Context(), t, params)
		if err != nil {
			return err
		}
		if tsnePlot != "" {
			if err := render.Projection(res, render.Config{Title: "t-SNE projection"}, tsnePlot); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "wrote", tsnePlot)
		}
		return newReport("tsne", res.Metrics, res.Meta).write(cmd.OutOrStdout())
	},
}

func init() {
	tsneCmd.Flags().StringSliceVar(&tsneFeatures, "features", nil, "feature columns (default: all numeric columns except the target)")
	tsneCmd.Flags().IntVar(&tsneComponents, "components", 2, "number of embedding dimensions (2 or 3)")
	tsneCmd.Flags().Float64Var(&tsnePerplexity, "perplexity", 30, "t-SNE perplexity (clamped when the sample is small)")
	tsneCmd.Flags().IntVar(&tsneIterations, "iterations", 1000, "optimization iterations")
	tsneCmd.Flags().Float64Var(&tsneLearningRate, "learning-rate", 200, "gradient-descent learning rate")
	tsneCmd.Flags().BoolVar(&tsneStandardize, "standardize", true, "standardize features before embedding")
	tsneCmd.Flags().StringVar(&tsneTarget, "target", "", "label column for coloring (never used as a feature)")
	tsneCmd.Flags().Int64Var(&tsneSeed, "seed", 42, "random seed for reproducibility")
	tsneCmd.Flags().StringVar(&tsnePlot, "plot", "", "write an embedding scatter PNG to this path")
	rootCmd.AddCommand(tsneCmd)
}
