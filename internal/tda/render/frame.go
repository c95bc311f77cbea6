package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/banshee-data/tda.playground/internal/tda/adjacency"
	"github.com/banshee-data/tda.playground/internal/tda/sweep"
)

// diskSegments is the number of polygon vertices used to draw a disk.
const diskSegments = 64

// Renderer draws sweep frames as three aligned panels: the point cloud with
// its disks, the simplicial complex, and the sweep summary.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// NewRenderer returns a renderer producing 18x6 inch frames at 96 DPI.
func NewRenderer() *Renderer {
	return &Renderer{Width: 18 * vg.Inch, Height: 6 * vg.Inch, DPI: 96}
}

// RenderFrame draws frame idx of res. summary must be res.Summary(); callers
// rendering a whole sweep compute it once and share it across frames.
func (r *Renderer) RenderFrame(res *sweep.Result, summary sweep.Summary, idx int) (image.Image, error) {
	if res == nil || idx < 0 || idx >= len(res.Frames) {
		return nil, fmt.Errorf("frame %d out of range", idx)
	}
	if len(summary.Frames) != len(res.Frames) {
		return nil, fmt.Errorf("summary has %d frames, result has %d", len(summary.Frames), len(res.Frames))
	}
	frame := res.Frames[idx]

	cloud, err := pointCloudPlot(res.Points, frame.Threshold)
	if err != nil {
		return nil, fmt.Errorf("point cloud panel: %w", err)
	}
	cx, err := complexPlot(res.Points, frame.Complex)
	if err != nil {
		return nil, fmt.Errorf("complex panel: %w", err)
	}
	sp, err := summaryPlot(summary, frame.Cutoff)
	if err != nil {
		return nil, fmt.Errorf("summary panel: %w", err)
	}

	img := vgimg.NewWith(
		vgimg.UseWH(r.Width, r.Height),
		vgimg.UseDPI(r.DPI),
		vgimg.UseBackgroundColor(color.White),
	)
	dc := draw.New(img)

	plots := [][]*plot.Plot{{cloud, cx, sp}}
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      3,
		PadX:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
	}
	canvases := plot.Align(plots, tiles, dc)
	for j, p := range plots[0] {
		p.Draw(canvases[0][j])
	}
	return img.Image(), nil
}

// pointCloudPlot draws a disk of radius threshold around every point.
func pointCloudPlot(points []adjacency.Point, threshold float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Point Cloud (r = %.2f)", threshold)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	if threshold > 0 {
		for _, pt := range points {
			disk, err := plotter.NewPolygon(diskXYs(pt, threshold))
			if err != nil {
				return nil, err
			}
			disk.Color = diskFill
			disk.LineStyle.Color = diskFill
			disk.LineStyle.Width = vg.Points(0.5)
			p.Add(disk)
		}
	}

	centres, err := vertexScatter(points)
	if err != nil {
		return nil, err
	}
	p.Add(centres)

	setSquareBounds(p, adjacency.Bounds(points), math.Max(1, threshold))
	return p, nil
}

// complexPlot draws the edges and closed triangles of c over points.
func complexPlot(points []adjacency.Point, c *adjacency.Complex) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Simplicial Complex"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	for _, t := range c.Triples {
		tri := t.Triangle(points)
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: tri[0].X, Y: tri[0].Y},
			{X: tri[1].X, Y: tri[1].Y},
			{X: tri[2].X, Y: tri[2].Y},
		})
		if err != nil {
			return nil, err
		}
		poly.Color = triangleFill
		poly.LineStyle.Color = triangleFill
		poly.LineStyle.Width = vg.Points(0.5)
		p.Add(poly)
	}

	for _, e := range c.Edges {
		a, b := points[e.I], points[e.J]
		l, err := plotter.NewLine(plotter.XYs{{X: a.X, Y: a.Y}, {X: b.X, Y: b.Y}})
		if err != nil {
			return nil, err
		}
		l.Color = edgeColor
		l.Width = vg.Points(1.5)
		p.Add(l)
	}

	vertices, err := vertexScatter(points)
	if err != nil {
		return nil, err
	}
	p.Add(vertices)

	setSquareBounds(p, adjacency.Bounds(points), 1)
	return p, nil
}

// summaryPlot draws component, edge and triangle counts across the sweep
// with a marker at the current cutoff.
func summaryPlot(s sweep.Summary, cutoff float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Complex Summary"
	p.X.Label.Text = "cutoff"
	p.Y.Label.Text = "count"
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	series := []struct {
		name  string
		value func(sweep.FrameStats) int
	}{
		{"components", func(f sweep.FrameStats) int { return f.Components }},
		{"edges", func(f sweep.FrameStats) int { return f.Edges }},
		{"triangles", func(f sweep.FrameStats) int { return f.Triangles }},
	}
	colors := generateColors(len(series))

	ymax := 1.0
	for i, sr := range series {
		pts := make(plotter.XYs, len(s.Frames))
		for j, f := range s.Frames {
			v := float64(sr.value(f))
			pts[j] = plotter.XY{X: f.Cutoff, Y: v}
			ymax = math.Max(ymax, v)
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		l.Color = colors[i]
		l.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(sr.name, l)
	}

	marker, err := plotter.NewLine(plotter.XYs{{X: cutoff, Y: 0}, {X: cutoff, Y: ymax}})
	if err != nil {
		return nil, err
	}
	marker.Color = markerColor
	marker.Width = vg.Points(1)
	marker.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(marker)

	p.Y.Min = 0
	p.Y.Max = ymax * 1.05
	return p, nil
}

func vertexScatter(points []adjacency.Point) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(pointXYs(points))
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = vertexColor
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(2.5)
	return s, nil
}

func pointXYs(points []adjacency.Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return xys
}

func diskXYs(centre adjacency.Point, radius float64) plotter.XYs {
	xys := make(plotter.XYs, diskSegments)
	for i := range xys {
		theta := 2 * math.Pi * float64(i) / diskSegments
		xys[i] = plotter.XY{
			X: centre.X + radius*math.Cos(theta),
			Y: centre.Y + radius*math.Sin(theta),
		}
	}
	return xys
}

// setSquareBounds fixes both axes to the same span so that the data keeps
// its aspect ratio, padded by pad on every side.
func setSquareBounds(p *plot.Plot, b r2.Box, pad float64) {
	size := b.Size()
	span := math.Max(size.X, size.Y)/2 + pad
	centre := b.Center()
	p.X.Min, p.X.Max = centre.X-span, centre.X+span
	p.Y.Min, p.Y.Max = centre.Y-span, centre.Y+span
}
