package interp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	xs := Linspace(0, 1, 5)
	require.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, xs)

	require.Equal(t, []float64{3}, Linspace(3, 9, 1))
	require.Nil(t, Linspace(0, 1, 0))
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("cubic")
	require.NoError(t, err)
	require.Equal(t, Cubic, m)

	m, err = ParseMethod("")
	require.NoError(t, err)
	require.Equal(t, Linear, m)

	_, err = ParseMethod("spline")
	require.Error(t, err)
}

// scatterPlane returns samples of z = 2x + 3y + 1 on a jittered lattice.
func scatterPlane() (x, y, z []float64) {
	offsets := []float64{0, 0.13, 0.07, 0.21}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			px := float64(i) + offsets[j]
			py := float64(j) + offsets[i]
			x = append(x, px)
			y = append(y, py)
			z = append(z, 2*px+3*py+1)
		}
	}
	return x, y, z
}

func TestLinearGridReproducesPlane(t *testing.T) {
	x, y, z := scatterPlane()
	xs := Linspace(1, 2.5, 8)
	ys := Linspace(1, 2.5, 8)
	grid, err := LinearGrid(x, y, z, xs, ys, 0)
	require.NoError(t, err)
	require.Len(t, grid, 8)
	// Interior of the hull: barycentric interpolation is exact on a plane.
	for i, gy := range ys {
		require.Len(t, grid[i], 8)
		for j, gx := range xs {
			require.InDelta(t, 2*gx+3*gy+1, grid[i][j], 1e-9, "cell (%d,%d)", i, j)
		}
	}
}

func TestLinearGridFillOutsideHull(t *testing.T) {
	x, y, z := scatterPlane()
	// Grid extends well past the samples; exterior cells take the fill.
	xs := Linspace(-10, -5, 4)
	ys := Linspace(-10, -5, 4)
	grid, err := LinearGrid(x, y, z, xs, ys, 42.5)
	require.NoError(t, err)
	for i := range grid {
		for j := range grid[i] {
			require.Equal(t, 42.5, grid[i][j])
		}
	}
}

func TestCubicGridNoNaNAndInterpolates(t *testing.T) {
	x, y, z := scatterPlane()
	xs := Linspace(-1, 4.5, 12)
	ys := Linspace(-1, 4.5, 12)
	grid, err := CubicGrid(x, y, z, xs, ys, 7.0)
	require.NoError(t, err)
	for i := range grid {
		for j := range grid[i] {
			require.False(t, math.IsNaN(grid[i][j]), "cell (%d,%d) is NaN", i, j)
			require.False(t, math.IsInf(grid[i][j], 0), "cell (%d,%d) is Inf", i, j)
		}
	}
}

func TestCubicSurfacePassesThroughSamples(t *testing.T) {
	x := []float64{0, 1, 0, 1, 0.5, 0.2, 0.8, 0.5, 0.3, 0.7}
	y := []float64{0, 0, 1, 1, 0.5, 0.8, 0.2, 0.1, 0.6, 0.9}
	z := []float64{1, 2, 3, 4, 2.5, 2.8, 2.2, 1.6, 2.9, 3.7}
	surf, err := fitRBF(x, y, z)
	require.NoError(t, err)
	for i := range x {
		require.InDelta(t, z[i], surf.at(x[i], y[i]), 1e-6, "sample %d", i)
	}
}

func TestDegenerateSamplesFail(t *testing.T) {
	// Collinear points triangulate to nothing.
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 2, 3}
	z := []float64{0, 1, 2, 3}
	_, err := LinearGrid(x, y, z, Linspace(0, 3, 4), Linspace(0, 3, 4), 0)
	require.Error(t, err)

	_, err = LinearGrid([]float64{1, 2}, []float64{1}, []float64{1, 2}, nil, nil, 0)
	require.Error(t, err, "mismatched sample lengths")
}
