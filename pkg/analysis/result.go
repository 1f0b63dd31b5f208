package analysis

// Result carries an analyzer's output to its consumers. Metrics holds the
// scalar summary values; Meta holds everything that is not a scalar:
// coordinate arrays, grids, the inclusion mask, echoed column names and
// string-valued settings such as the interpolation method. Both maps are
// finalized before Analyze returns and must be treated as read-only.
type Result struct {
	Metrics map[string]float64
	Meta    map[string]any
}

// Metric returns a named scalar metric.
func (r *Result) Metric(name string) (float64, bool) {
	v, ok := r.Metrics[name]
	return v, ok
}

// MetaFloats returns a metadata entry that holds a float slice.
func (r *Result) MetaFloats(name string) ([]float64, bool) {
	v, ok := r.Meta[name].([]float64)
	return v, ok
}

// MetaString returns a metadata entry that holds a string.
func (r *Result) MetaString(name string) (string, bool) {
	v, ok := r.Meta[name].(string)
	return v, ok
}

// MetaGrid returns a metadata entry that holds a row-major grid.
func (r *Result) MetaGrid(name string) ([][]float64, bool) {
	v, ok := r.Meta[name].([][]float64)
	return v, ok
}
