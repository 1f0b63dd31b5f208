package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/stats"
	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/table"
)

// TSNEParams configures the neighbor-embedding projection. A nil
// FeatureColumns selects every numeric column except TargetColumn. Zero
// values of Components, Perplexity, Iterations, LearningRate and
// RandomSeed take the defaults (2, 30, 1000, 200, 42).
type TSNEParams struct {
	FeatureColumns []string
	Components     int
	Perplexity     float64
	Iterations     int
	LearningRate   float64
	Standardize    bool
	TargetColumn   string
	RandomSeed     int64
}

// DefaultTSNEParams returns the defaults.
func DefaultTSNEParams() TSNEParams {
	return TSNEParams{
		Components:   2,
		Perplexity:   30,
		Iterations:   1000,
		LearningRate: 200,
		Standardize:  true,
		RandomSeed:   42,
	}
}

func (p TSNEParams) withDefaults() TSNEParams {
	if p.Components == 0 {
		p.Components = 2
	}
	if p.Perplexity == 0 {
		p.Perplexity = 30
	}
	if p.Iterations == 0 {
		p.Iterations = 1000
	}
	if p.LearningRate == 0 {
		p.LearningRate = 200
	}
	if p.RandomSeed == 0 {
		p.RandomSeed = 42
	}
	return p
}

// TSNEAnalyzer embeds the feature matrix into 2 or 3 dimensions with
// t-distributed stochastic neighbor embedding. Runs are deterministic for
// a fixed seed. A perplexity too large for the clean sample count is
// clamped, logged and echoed in the result rather than treated as an
// error.
type TSNEAnalyzer struct {
	log        *slog.Logger
	minColumns int
}

// NewTSNEAnalyzer constructs the analyzer.
func NewTSNEAnalyzer(opts ...Option) *TSNEAnalyzer {
	s := newSettings(opts)
	return &TSNEAnalyzer{log: s.log, minColumns: 2}
}

// RequiredColumns returns 2, the minimum feature count.
func (a *TSNEAnalyzer) RequiredColumns() int { return a.minColumns }

// Validate reports whether t offers at least two numeric feature columns
// and two rows. An oversized perplexity does not fail validation; it is
// recovered during Analyze.
func (a *TSNEAnalyzer) Validate(t *table.Table, p TSNEParams) bool {
	return validateFeatures(t, p.FeatureColumns, p.TargetColumn, a.minColumns)
}

// clampPerplexity applies the adaptive policy: when fewer than
// perplexity+1 clean samples remain, the perplexity drops to
// max(5, samples/3).
func clampPerplexity(perplexity float64, samples int) (float64, bool) {
	if float64(samples) >= perplexity+1 {
		return perplexity, false
	}
	adjusted := float64(samples / 3)
	if adjusted < 5 {
		adjusted = 5
	}
	return adjusted, true
}

// Analyze runs the embedding. Metrics: n_components, n_features,
// n_samples, n_removed, perplexity (as actually used), n_iter,
// learning_rate, kl_divergence, standardized, random_state. Metadata:
// feature_columns, target_column, dim1, dim2, dim3, target_labels,
// inclusion_mask.
func (a *TSNEAnalyzer) Analyze(ctx context.Context, t *table.Table, p TSNEParams) (*Result, error) {
	p = p.withDefaults()
	if t == nil || t.Len() == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrInvalidInput)
	}
	features := p.FeatureColumns
	if features == nil {
		features = defaultFeatures(t, p.TargetColumn)
	} else {
		for _, name := range features {
			if !t.IsNumeric(name) {
				return nil, fmt.Errorf("%w: feature column %q is missing or not numeric", ErrInvalidInput, name)
			}
		}
	}
	if len(features) < a.minColumns {
		return nil, fmt.Errorf("%w: need at least %d feature columns, have %d", ErrInsufficientData, a.minColumns, len(features))
	}
	if p.Components != 2 && p.Components != 3 {
		return nil, fmt.Errorf("%w: components must be 2 or 3, got %d", ErrInvalidInput, p.Components)
	}

	X, mask, err := featureMatrix(t, features)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	nSamples := 0
	if X != nil {
		nSamples, _ = X.Dims()
	}
	removed := t.Len() - nSamples

	perplexity, clamped := clampPerplexity(p.Perplexity, nSamples)
	if clamped {
		a.log.Warn("perplexity too large for sample size, adjusting",
			"requested", p.Perplexity, "adjusted", perplexity, "n_samples", nSamples)
	}
	if nSamples < 2 {
		return nil, fmt.Errorf("%w: need at least 2 clean rows, have %d", ErrInsufficientData, nSamples)
	}
	a.log.Info("t-sne analysis", "n_features", len(features), "n_samples", nSamples,
		"n_removed", removed, "components", p.Components, "perplexity", perplexity,
		"iterations", p.Iterations, "learning_rate", p.LearningRate, "seed", p.RandomSeed)

	work := X
	if p.Standardize {
		work, err = stats.NewStandardScaler().FitTransform(X)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInsufficientData, err)
		}
	}

	Y, kl, err := tsneEmbed(ctx, work, sneConfig{
		dims:         p.Components,
		perplexity:   perplexity,
		iterations:   p.Iterations,
		learningRate: p.LearningRate,
		seed:         p.RandomSeed,
	})
	if err != nil {
		return nil, fmt.Errorf("t-sne embedding: %w", err)
	}

	coords := make([][]float64, p.Components)
	for c := range coords {
		coords[c] = make([]float64, nSamples)
		mat.Col(coords[c], c, Y)
	}

	meta := map[string]any{
		"feature_columns": features,
		"target_column":   p.TargetColumn,
		"dim1":            coords[0],
		"dim2":            coords[1],
		"dim3":            nil,
		"target_labels":   targetLabels(t, p.TargetColumn, mask),
		"inclusion_mask":  mask,
	}
	if p.Components >= 3 {
		meta["dim3"] = coords[2]
	}

	return &Result{
		Metrics: map[string]float64{
			"n_components":  float64(p.Components),
			"n_features":    float64(len(features)),
			"n_samples":     float64(nSamples),
			"n_removed":     float64(removed),
			"perplexity":    perplexity,
			"n_iter":        float64(p.Iterations),
			"learning_rate": p.LearningRate,
			"kl_divergence": kl,
			"standardized":  boolMetric(p.Standardize),
			"random_state":  float64(p.RandomSeed),
		},
		Meta: meta,
	}, nil
}

var _ Analyzer[TSNEParams] = (*TSNEAnalyzer)(nil)
