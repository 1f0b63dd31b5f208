package analysis

import "errors"

// The analyzer error taxonomy. Analyze wraps these sentinels with context;
// callers classify failures with errors.Is.
var (
	// ErrInvalidInput marks missing, non-numeric or otherwise unselectable
	// columns and out-of-range parameters.
	ErrInvalidInput = errors.New("invalid input for analysis")
	// ErrInsufficientData marks too few usable rows or feature columns
	// after NaN removal.
	ErrInsufficientData = errors.New("insufficient data for analysis")
	// ErrInterpolation wraps a failure of the scattered-data interpolation
	// routine.
	ErrInterpolation = errors.New("interpolation failed")
)
