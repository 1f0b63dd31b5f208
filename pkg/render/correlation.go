package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/analysis"
)

// Correlation draws the sample points and the fitted regression line. The
// x and y slices are the cleaned points the analyzer regressed (the
// correlation result carries ranges, not coordinates); slope, intercept
// and the axis ranges come from the result.
func Correlation(x, y []float64, res *analysis.Result, cfg Config, path string) error {
	if len(x) != len(y) {
		return fmt.Errorf("render: x and y have different lengths")
	}
	slope, ok := res.Metric("slope")
	if !ok {
		return fmt.Errorf("render: result is missing slope")
	}
	intercept, _ := res.Metric("intercept")
	r2, _ := res.Metric("r2")
	xRange, ok := res.Meta["x_range"].([2]float64)
	if !ok {
		return fmt.Errorf("render: result is missing x_range")
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("%s vs %s (R² = %.3f)",
			metaString(res, "column_y"), metaString(res, "column_x"), r2)
	}
	p.X.Label.Text = orDefault(cfg.XLabel, metaString(res, "column_x"))
	p.Y.Label.Text = orDefault(cfg.YLabel, metaString(res, "column_y"))
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.Color = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	p.Add(scatter)

	line, err := plotter.NewLine(plotter.XYs{
		{X: xRange[0], Y: slope*xRange[0] + intercept},
		{X: xRange[1], Y: slope*xRange[1] + intercept},
	})
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 255, A: 255}
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add(fmt.Sprintf("y = %.3gx + %.3g", slope, intercept), line)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
