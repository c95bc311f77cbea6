package adjacency

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a 2D coordinate identified by its index in a point slice.
type Point struct {
	X, Y float64
}

// Vec returns the point as a gonum r2 vector.
func (p Point) Vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// PointFromVec converts a gonum r2 vector into a Point.
func PointFromVec(v r2.Vec) Point { return Point{X: v.X, Y: v.Y} }

// ClosedTriple is an unordered triple of distinct point indices stored in
// ascending order (I < J < K) whose members are pairwise adjacent.
type ClosedTriple struct {
	I, J, K int
}

// Indices returns the triple as a slice in ascending order.
func (t ClosedTriple) Indices() [3]int { return [3]int{t.I, t.J, t.K} }

// Triangle returns the triangle spanned by the triple's points.
func (t ClosedTriple) Triangle(points []Point) r2.Triangle {
	return r2.Triangle{points[t.I].Vec(), points[t.J].Vec(), points[t.K].Vec()}
}

func (t ClosedTriple) String() string { return fmt.Sprintf("(%d,%d,%d)", t.I, t.J, t.K) }

// Edge is an unordered adjacent pair of distinct indices with I < J.
type Edge struct {
	I, J int
}

// Bounds returns the axis-aligned bounding box of points. The zero Box is
// returned for an empty slice.
func Bounds(points []Point) r2.Box {
	if len(points) == 0 {
		return r2.Box{}
	}
	b := r2.Box{Min: points[0].Vec(), Max: points[0].Vec()}
	for _, p := range points[1:] {
		if p.X < b.Min.X {
			b.Min.X = p.X
		}
		if p.Y < b.Min.Y {
			b.Min.Y = p.Y
		}
		if p.X > b.Max.X {
			b.Max.X = p.X
		}
		if p.Y > b.Max.Y {
			b.Max.Y = p.Y
		}
	}
	return b
}
