package interp

import (
	"fmt"
	"math"

	"github.com/fogleman/delaunay"
)

// mesh is a Delaunay triangulation of the samples together with their z
// values, shared by the linear and cubic interpolators.
type mesh struct {
	pts []delaunay.Point
	z   []float64
	tri *delaunay.Triangulation
}

func newMesh(x, y, z []float64) (*mesh, error) {
	if len(x) != len(y) || len(x) != len(z) {
		return nil, fmt.Errorf("interp: sample slices have mismatched lengths")
	}
	pts := make([]delaunay.Point, len(x))
	for i := range x {
		pts[i] = delaunay.Point{X: x[i], Y: y[i]}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, fmt.Errorf("interp: triangulation: %w", err)
	}
	if len(tri.Triangles) == 0 {
		return nil, fmt.Errorf("interp: degenerate samples, no triangles formed")
	}
	return &mesh{pts: pts, z: z, tri: tri}, nil
}

// at evaluates the piecewise-linear surface at (px, py). ok is false when
// the point lies outside the convex hull of the samples.
func (m *mesh) at(px, py float64) (v float64, ok bool) {
	const eps = 1e-12
	tris := m.tri.Triangles
	for t := 0; t < len(tris); t += 3 {
		a, b, c := m.pts[tris[t]], m.pts[tris[t+1]], m.pts[tris[t+2]]
		den := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
		if den == 0 {
			continue
		}
		wa := ((b.Y-c.Y)*(px-c.X) + (c.X-b.X)*(py-c.Y)) / den
		wb := ((c.Y-a.Y)*(px-c.X) + (a.X-c.X)*(py-c.Y)) / den
		wc := 1 - wa - wb
		if wa < -eps || wb < -eps || wc < -eps {
			continue
		}
		za, zb, zc := m.z[tris[t]], m.z[tris[t+1]], m.z[tris[t+2]]
		return wa*za + wb*zb + wc*zc, true
	}
	return math.NaN(), false
}

// contains reports whether (px, py) lies inside the sample hull.
func (m *mesh) contains(px, py float64) bool {
	_, ok := m.at(px, py)
	return ok
}

// LinearGrid interpolates z linearly onto the grid spanned by xs and ys.
// The returned matrix is indexed [yi][xi]. Cells outside the convex hull
// of the samples take fill.
func LinearGrid(x, y, z, xs, ys []float64, fill float64) ([][]float64, error) {
	m, err := newMesh(x, y, z)
	if err != nil {
		return nil, err
	}
	return m.linearGrid(xs, ys, fill), nil
}

func (m *mesh) linearGrid(xs, ys []float64, fill float64) [][]float64 {
	grid := make([][]float64, len(ys))
	for i, gy := range ys {
		row := make([]float64, len(xs))
		for j, gx := range xs {
			if v, ok := m.at(gx, gy); ok {
				row[j] = v
			} else {
				row[j] = fill
			}
		}
		grid[i] = row
	}
	return grid
}
