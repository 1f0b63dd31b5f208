package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/analysis"
)

// surfaceGrid adapts the contour result arrays to plotter.GridXYZ.
// gridZ is indexed [yi][xi].
type surfaceGrid struct {
	xs, ys []float64
	z      [][]float64
}

func (g surfaceGrid) Dims() (c, r int)   { return len(g.xs), len(g.ys) }
func (g surfaceGrid) Z(c, r int) float64 { return g.z[r][c] }
func (g surfaceGrid) X(c int) float64    { return g.xs[c] }
func (g surfaceGrid) Y(r int) float64    { return g.ys[r] }

// Contour draws the interpolated surface as a heat map with the original
// samples overlaid.
func Contour(res *analysis.Result, cfg Config, path string) error {
	gridX, err := metaFloats(res, "grid_x")
	if err != nil {
		return err
	}
	gridY, err := metaFloats(res, "grid_y")
	if err != nil {
		return err
	}
	gridZ, ok := res.MetaGrid("grid_z")
	if !ok {
		return fmt.Errorf("render: result is missing grid_z")
	}
	origX, err := metaFloats(res, "original_x")
	if err != nil {
		return err
	}
	origY, err := metaFloats(res, "original_y")
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("%s over (%s, %s)",
			metaString(res, "column_z"), metaString(res, "column_x"), metaString(res, "column_y"))
	}
	p.X.Label.Text = orDefault(cfg.XLabel, metaString(res, "column_x"))
	p.Y.Label.Text = orDefault(cfg.YLabel, metaString(res, "column_y"))

	pal := moreland.SmoothBlueRed().Palette(255)
	heat := plotter.NewHeatMap(surfaceGrid{xs: gridX, ys: gridY, z: gridZ}, pal)
	p.Add(heat)

	pts := make(plotter.XYs, len(origX))
	for i := range origX {
		pts[i].X = origX[i]
		pts[i].Y = origY[i]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.Radius = vg.Points(1.5)
	scatter.Color = color.Black
	p.Add(scatter)

	return p.Save(6*vg.Inch, 5*vg.Inch, path)
}
