// Package cmd implements the datalab command line: load a delimited
// table, run one of the analyzers over it and emit the resulting metrics,
// optionally rendering a figure.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vivekkr1809/ml-data-pipeline-visualization/internal/config"
)

var (
	cfgFile string
	verbose bool

	// Loaded analyzer defaults.
	cfg *config.Defaults
)

var rootCmd = &cobra.Command{
	Use:   "datalab",
	Short: "datalab derives regression, surface and projection artifacts from tabular data",
	Long: `datalab loads a rectangular table (CSV/TSV) and runs one of four
analyzers over it: correlate (linear regression between two columns),
contour (scattered-surface interpolation), pca and tsne (latent-space
projections). Each command prints the resulting metrics as JSON and can
render a PNG figure with --plot.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main().
func Execute() {
	cobra.OnInitialize(initialize)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./datalab.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initialize() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	c, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
		c = config.Builtin()
	}
	cfg = c
}
