package render

import (
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/tda.playground/internal/tda/adjacency"
)

// ScatterPlot returns a plain scatter plot of points.
func ScatterPlot(points []adjacency.Point) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Point Cloud"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	s, err := vertexScatter(points)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = generateColors(1)[0]
	p.Add(s)
	setSquareBounds(p, adjacency.Bounds(points), 1)
	return p, nil
}

// WriteScatter renders ScatterPlot(points) as a 6x6 inch PNG.
func WriteScatter(w io.Writer, points []adjacency.Point) error {
	p, err := ScatterPlot(points)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(6*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
