// Package stats carries the preprocessing helpers shared by the analyzers.
package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// StandardScaler rescales each column to zero mean and unit variance.
// Fit learns the column moments; Transform applies them. Columns with zero
// variance keep a unit scale so constant features pass through centered.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
	fit   bool
}

// NewStandardScaler returns an unfitted scaler.
func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fit computes per-column mean and standard deviation from X.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.New("stats: cannot fit scaler on empty matrix")
	}
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mean := stat.Mean(col, nil)
		// Population standard deviation, matching the fit-time moments of
		// the usual preprocessing convention.
		ss := 0.0
		for _, v := range col {
			d := v - mean
			ss += d * d
		}
		std := math.Sqrt(ss / float64(r))
		if std == 0 {
			std = 1
		}
		s.Mean[j] = mean
		s.Scale[j] = std
	}
	s.fit = true
	return nil
}

// Transform returns a standardized copy of X using the fitted moments.
func (s *StandardScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if !s.fit {
		return nil, errors.New("stats: scaler used before Fit")
	}
	r, c := X.Dims()
	if c != len(s.Mean) {
		return nil, errors.New("stats: column count mismatch between fit and transform")
	}
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}
	return out, nil
}

// FitTransform fits the scaler on X and returns the standardized copy.
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
