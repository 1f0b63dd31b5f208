// Package interp estimates values on a regular grid from irregularly
// placed (x, y, z) samples. The linear method interpolates barycentrically
// over a Delaunay triangulation of the samples; the cubic method fits a
// cubic radial basis surface and falls back to the linear estimate outside
// the sample hull. Both methods produce fully defined grids: no cell is
// ever left NaN.
package interp

import "fmt"

// Method selects the scattered-data interpolation scheme.
type Method string

const (
	Linear Method = "linear"
	Cubic  Method = "cubic"
)

// ParseMethod validates a method name.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case Linear, Cubic:
		return Method(s), nil
	case "":
		return Linear, nil
	}
	return "", fmt.Errorf("interp: unknown method %q", s)
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
// n must be at least 1; with n == 1 the single value is lo.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
