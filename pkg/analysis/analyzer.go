// Package analysis derives quantitative artifacts from tabular data:
// regression statistics, interpolated surfaces and low-dimensional
// projections. Each analyzer is a strategy sharing one contract and
// producing a Result that renderers consume by key.
package analysis

import (
	"context"
	"log/slog"

	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/table"
)

// Analyzer is the uniform analysis contract. P is the analyzer's parameter
// struct; the zero value of P selects every default.
//
// Validate never returns an error: unsuitable input yields false. Analyze
// re-runs the same checks and fails with ErrInvalidInput when they do not
// hold, so callers that skip Validate still get a typed error instead of a
// panic or a partial result.
type Analyzer[P any] interface {
	Validate(t *table.Table, p P) bool
	Analyze(ctx context.Context, t *table.Table, p P) (*Result, error)
	// RequiredColumns is the declared minimum number of numeric columns,
	// used by hosts to gate analysis before invoking it.
	RequiredColumns() int
}

// Option configures an analyzer at construction.
type Option func(*settings)

type settings struct {
	log *slog.Logger
}

// WithLogger installs a structured logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{log: slog.Default()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
