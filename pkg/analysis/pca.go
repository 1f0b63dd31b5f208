package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/stats"
	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/table"
)

// PCAParams configures principal-component projection. A nil
// FeatureColumns selects every numeric column except TargetColumn.
// Components must be 2 or 3 (0 means 2). TargetColumn, when set, only
// labels points; it is never scaled or used as a feature.
type PCAParams struct {
	FeatureColumns []string
	Components     int
	Standardize    bool
	TargetColumn   string
}

// DefaultPCAParams returns the defaults: 2 components, standardized.
func DefaultPCAParams() PCAParams {
	return PCAParams{Components: 2, Standardize: true}
}

func (p PCAParams) withDefaults() PCAParams {
	if p.Components == 0 {
		p.Components = 2
	}
	return p
}

// PCAAnalyzer projects the feature matrix onto its leading principal
// components, ranked by descending explained variance.
type PCAAnalyzer struct {
	log        *slog.Logger
	minColumns int
}

// NewPCAAnalyzer constructs the analyzer.
func NewPCAAnalyzer(opts ...Option) *PCAAnalyzer {
	s := newSettings(opts)
	return &PCAAnalyzer{log: s.log, minColumns: 2}
}

// RequiredColumns returns 2, the minimum feature count.
func (a *PCAAnalyzer) RequiredColumns() int { return a.minColumns }

// Validate reports whether t offers at least two numeric feature columns
// and two rows.
func (a *PCAAnalyzer) Validate(t *table.Table, p PCAParams) bool {
	return validateFeatures(t, p.FeatureColumns, p.TargetColumn, a.minColumns)
}

// validateFeatures is the shared projection-input check: explicit feature
// columns must exist and be numeric; defaulted selection must find enough
// numeric columns; the table needs at least two rows.
func validateFeatures(t *table.Table, features []string, target string, minCols int) bool {
	if t == nil || t.Len() == 0 {
		return false
	}
	if features == nil {
		if len(defaultFeatures(t, target)) < minCols {
			return false
		}
	} else {
		if len(features) < minCols {
			return false
		}
		for _, name := range features {
			if !t.IsNumeric(name) {
				return false
			}
		}
	}
	return t.Len() >= 2
}

// Analyze runs the decomposition. Metrics: n_components, n_features,
// n_samples, n_removed, total_variance_explained, standardized. Metadata:
// feature_columns, target_column, pc1, pc2, pc3, explained_variance,
// cumulative_variance, target_labels, pca_components, inclusion_mask.
func (a *PCAAnalyzer) Analyze(ctx context.Context, t *table.Table, p PCAParams) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
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
	if p.Components > len(features) {
		return nil, fmt.Errorf("%w: %d components exceed %d features", ErrInvalidInput, p.Components, len(features))
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
	if nSamples < 2 {
		return nil, fmt.Errorf("%w: need at least 2 clean rows, have %d", ErrInsufficientData, nSamples)
	}
	a.log.Info("pca analysis", "n_features", len(features), "n_samples", nSamples,
		"n_removed", removed, "components", p.Components, "standardize", p.Standardize)

	work := X
	if p.Standardize {
		work, err = stats.NewStandardScaler().FitTransform(X)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInsufficientData, err)
		}
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(work, nil); !ok {
		return nil, fmt.Errorf("%w: principal-component decomposition did not converge", ErrInsufficientData)
	}
	vars := pc.VarsTo(nil)
	total := floats.Sum(vars)
	k := p.Components
	if k > len(vars) {
		return nil, fmt.Errorf("%w: %d components exceed matrix rank %d", ErrInsufficientData, k, len(vars))
	}
	explained := make([]float64, k)
	cumulative := make([]float64, k)
	run := 0.0
	for i := 0; i < k; i++ {
		if total > 0 {
			explained[i] = vars[i] / total
		}
		run += explained[i]
		cumulative[i] = run
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	// Project the centered matrix onto the leading components.
	centered := centerColumns(work)
	d := len(features)
	var scores mat.Dense
	scores.Mul(centered, vecs.Slice(0, d, 0, k))

	coords := make([][]float64, k)
	for c := 0; c < k; c++ {
		coords[c] = make([]float64, nSamples)
		mat.Col(coords[c], c, &scores)
	}
	// Loading vectors, one row per component.
	loadings := make([][]float64, k)
	for c := 0; c < k; c++ {
		loadings[c] = make([]float64, d)
		mat.Col(loadings[c], c, &vecs)
	}

	meta := map[string]any{
		"feature_columns":     features,
		"target_column":       p.TargetColumn,
		"pc1":                 coords[0],
		"pc2":                 coords[1],
		"pc3":                 nil,
		"explained_variance":  explained,
		"cumulative_variance": cumulative,
		"target_labels":       targetLabels(t, p.TargetColumn, mask),
		"pca_components":      loadings,
		"inclusion_mask":      mask,
	}
	if k >= 3 {
		meta["pc3"] = coords[2]
	}

	return &Result{
		Metrics: map[string]float64{
			"n_components":             float64(k),
			"n_features":               float64(len(features)),
			"n_samples":                float64(nSamples),
			"n_removed":                float64(removed),
			"total_variance_explained": floats.Sum(explained),
			"standardized":             boolMetric(p.Standardize),
		},
		Meta: meta,
	}, nil
}

// centerColumns returns a copy of X with each column shifted to zero mean.
func centerColumns(X *mat.Dense) *mat.Dense {
	r, c := X.Dims()
	out := mat.NewDense(r, c, nil)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mean := stat.Mean(col, nil)
		for i := 0; i < r; i++ {
			out.Set(i, j, col[i]-mean)
		}
	}
	return out
}

// targetLabels slices a label column by the inclusion mask, or nil when no
// target is set or it does not exist.
func targetLabels(t *table.Table, target string, mask []bool) []string {
	if target == "" {
		return nil
	}
	col, ok := t.Column(target)
	if !ok {
		return nil
	}
	return maskStrings(col, mask)
}

func boolMetric(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

var _ Analyzer[PCAParams] = (*PCAAnalyzer)(nil)
