package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/vivekkr1809/ml-data-pipeline-visualization/pkg/analysis"
)

// Projection draws a 2-D scatter of a low-dimensional embedding. It
// accepts both PCA results (pc1/pc2) and t-SNE results (dim1/dim2). When
// target labels are present each label group gets its own color.
func Projection(res *analysis.Result, cfg Config, path string) error {
	xs, ys, xName, yName, err := projectionAxes(res)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = orDefault(cfg.Title, "Latent space projection")
	p.X.Label.Text = orDefault(cfg.XLabel, xName)
	p.Y.Label.Text = orDefault(cfg.YLabel, yName)
	p.Add(plotter.NewGrid())

	labels, _ := res.Meta["target_labels"].([]string)
	if len(labels) != len(xs) {
		// Unlabeled: one series.
		pts := make(plotter.XYs, len(xs))
		for i := range xs {
			pts[i].X = xs[i]
			pts[i].Y = ys[i]
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		p.Add(scatter)
		return p.Save(6*vg.Inch, 5*vg.Inch, path)
	}

	// Group points by label, keeping first-seen order for stable colors.
	var order []string
	groups := make(map[string]plotter.XYs)
	for i, lab := range labels {
		if _, seen := groups[lab]; !seen {
			order = append(order, lab)
		}
		groups[lab] = append(groups[lab], plotter.XY{X: xs[i], Y: ys[i]})
	}
	for gi, lab := range order {
		scatter, err := plotter.NewScatter(groups[lab])
		if err != nil {
			return err
		}
		scatter.Color = plotutil.Color(gi)
		p.Add(scatter)
		p.Legend.Add(lab, scatter)
	}
	return p.Save(6*vg.Inch, 5*vg.Inch, path)
}

func projectionAxes(res *analysis.Result) (xs, ys []float64, xName, yName string, err error) {
	if xs, ok := res.MetaFloats("pc1"); ok {
		ys, ok := res.MetaFloats("pc2")
		if !ok {
			return nil, nil, "", "", fmt.Errorf("render: result has pc1 but no pc2")
		}
		return xs, ys, "PC1", "PC2", nil
	}
	if xs, ok := res.MetaFloats("dim1"); ok {
		ys, ok := res.MetaFloats("dim2")
		if !ok {
			return nil, nil, "", "", fmt.Errorf("render: result has dim1 but no dim2")
		}
		return xs, ys, "Dimension 1", "Dimension 2", nil
	}
	return nil, nil, "", "", fmt.Errorf("render: result carries no projection coordinates")
}
