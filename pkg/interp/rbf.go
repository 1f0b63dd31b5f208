package interp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// rbf is a cubic radial basis surface through the samples: a weighted sum
// of r^3 kernels plus an affine tail for well-posedness.
type rbf struct {
	x, y    []float64
	weights []float64 // kernel weights followed by c0, cx, cy
}

func fitRBF(x, y, z []float64) (*rbf, error) {
	n := len(x)
	// System matrix: [A P; P^T 0] with A_ij = |p_i - p_j|^3 and
	// P rows (1, x_i, y_i).
	dim := n + 3
	a := mat.NewDense(dim, dim, nil)
	b := make([]float64, dim)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r := math.Hypot(x[i]-x[j], y[i]-y[j])
			a.Set(i, j, r*r*r)
		}
		a.Set(i, n, 1)
		a.Set(i, n+1, x[i])
		a.Set(i, n+2, y[i])
		a.Set(n, i, 1)
		a.Set(n+1, i, x[i])
		a.Set(n+2, i, y[i])
		b[i] = z[i]
	}
	var w mat.VecDense
	if err := w.SolveVec(a, mat.NewVecDense(dim, b)); err != nil {
		return nil, fmt.Errorf("interp: singular radial basis system: %w", err)
	}
	return &rbf{x: x, y: y, weights: w.RawVector().Data}, nil
}

func (s *rbf) at(px, py float64) float64 {
	n := len(s.x)
	v := s.weights[n] + s.weights[n+1]*px + s.weights[n+2]*py
	for i := 0; i < n; i++ {
		r := math.Hypot(px-s.x[i], py-s.y[i])
		v += s.weights[i] * r * r * r
	}
	return v
}

// CubicGrid interpolates z onto the grid spanned by xs and ys with a cubic
// radial basis surface. The surface is only trusted inside the convex hull
// of the samples; hull-exterior cells take the linear estimate, which in
// turn mean-fills with fill. The returned matrix is indexed [yi][xi] and
// contains no NaN cells.
func CubicGrid(x, y, z, xs, ys []float64, fill float64) ([][]float64, error) {
	m, err := newMesh(x, y, z)
	if err != nil {
		return nil, err
	}
	surf, err := fitRBF(x, y, z)
	if err != nil {
		return nil, err
	}
	grid := make([][]float64, len(ys))
	for i, gy := range ys {
		row := make([]float64, len(xs))
		for j, gx := range xs {
			if lin, ok := m.at(gx, gy); ok {
				v := surf.at(gx, gy)
				if math.IsNaN(v) || math.IsInf(v, 0) {
					v = lin
				}
				row[j] = v
			} else {
				row[j] = fill
			}
		}
		grid[i] = row
	}
	return grid, nil
}
