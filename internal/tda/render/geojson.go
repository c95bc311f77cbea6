package render

import (
	"fmt"
	"io"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/tda.playground/internal/tda/adjacency"
)

// ComplexFeatures converts one frame's complex into a GeoJSON feature
// collection: a Point per vertex, a LineString per edge and a Polygon per
// closed triangle. Every feature carries a "kind" property.
func ComplexFeatures(points []adjacency.Point, c *adjacency.Complex) (*geojson.FeatureCollection, error) {
	if c == nil {
		return nil, fmt.Errorf("nil complex")
	}
	if c.Adjacency.Len() != len(points) {
		return nil, fmt.Errorf("complex covers %d points, got %d", c.Adjacency.Len(), len(points))
	}

	fc := geojson.NewFeatureCollection()
	for i, p := range points {
		f := geojson.NewFeature(orbPoint(p))
		f.Properties = geojson.Properties{
			"kind":      "vertex",
			"index":     i,
			"degree":    len(c.Adjacency.Neighbors(i)) - 1,
			"threshold": c.Threshold,
		}
		fc.Append(f)
	}
	for _, e := range c.Edges {
		f := geojson.NewFeature(orb.LineString{orbPoint(points[e.I]), orbPoint(points[e.J])})
		f.Properties = geojson.Properties{
			"kind":   "edge",
			"i":      e.I,
			"j":      e.J,
			"length": r2.Norm(r2.Sub(points[e.I].Vec(), points[e.J].Vec())),
		}
		fc.Append(f)
	}
	for _, t := range c.Triples {
		a, b, k := orbPoint(points[t.I]), orbPoint(points[t.J]), orbPoint(points[t.K])
		f := geojson.NewFeature(orb.Polygon{orb.Ring{a, b, k, a}})
		f.Properties = geojson.Properties{
			"kind": "triangle",
			"i":    t.I,
			"j":    t.J,
			"k":    t.K,
			"area": triangleArea(t.Triangle(points)),
		}
		fc.Append(f)
	}
	return fc, nil
}

// ExportGeoJSON writes ComplexFeatures(points, c) to w.
func ExportGeoJSON(w io.Writer, points []adjacency.Point, c *adjacency.Complex) error {
	fc, err := ComplexFeatures(points, c)
	if err != nil {
		return err
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal geojson: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// triangleArea is Heron's area with degenerate triangles reported as 0.
func triangleArea(t r2.Triangle) float64 {
	a := t.Area()
	if math.IsNaN(a) {
		return 0
	}
	return a
}

func orbPoint(p adjacency.Point) orb.Point { return orb.Point{p.X, p.Y} }
