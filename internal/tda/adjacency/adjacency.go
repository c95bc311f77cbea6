package adjacency

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// AdjacencyGroup maps each point index to the set of indices adjacent to it,
// itself included. It is stored as a dense symmetric boolean matrix.
type AdjacencyGroup struct {
	n   int
	adj []bool // row-major n*n
}

// ComputeAdjacency builds the adjacency group of points for threshold.
//
// Indices i and j are adjacent iff |p_i - p_j|² <= (2·threshold)². The
// comparison is inclusive and every index is adjacent to itself. points must
// be non-empty and threshold must be a non-negative number.
func ComputeAdjacency(points []Point, threshold float64) (AdjacencyGroup, error) {
	if len(points) == 0 {
		return AdjacencyGroup{}, invalid("points", "point set is empty")
	}
	if math.IsNaN(threshold) || threshold < 0 {
		return AdjacencyGroup{}, invalid("threshold", "must be non-negative, got %v", threshold)
	}

	n := len(points)
	g := AdjacencyGroup{n: n, adj: make([]bool, n*n)}
	reach := 2 * threshold
	limit := reach * reach

	for i := 0; i < n; i++ {
		g.adj[i*n+i] = true
		pi := points[i].Vec()
		for j := i + 1; j < n; j++ {
			if r2.Norm2(r2.Sub(pi, points[j].Vec())) <= limit {
				g.adj[i*n+j] = true
				g.adj[j*n+i] = true
			}
		}
	}
	return g, nil
}

// Len returns the number of indices covered by the group.
func (g AdjacencyGroup) Len() int { return g.n }

// Contains reports whether j is in the adjacency set of i. Out of range
// indices are never adjacent.
func (g AdjacencyGroup) Contains(i, j int) bool {
	if i < 0 || j < 0 || i >= g.n || j >= g.n {
		return false
	}
	return g.adj[i*g.n+j]
}

// Neighbors returns the adjacency set of i in ascending order, including i.
func (g AdjacencyGroup) Neighbors(i int) []int {
	if i < 0 || i >= g.n {
		return nil
	}
	row := g.adj[i*g.n : (i+1)*g.n]
	out := make([]int, 0, 4)
	for j, ok := range row {
		if ok {
			out = append(out, j)
		}
	}
	return out
}

// Groups returns the full index -> adjacency set mapping.
func (g AdjacencyGroup) Groups() map[int][]int {
	out := make(map[int][]int, g.n)
	for i := 0; i < g.n; i++ {
		out[i] = g.Neighbors(i)
	}
	return out
}

// Edges returns every adjacent pair of distinct indices with I < J, ordered
// by I then J.
func (g AdjacencyGroup) Edges() []Edge {
	var edges []Edge
	for i := 0; i < g.n; i++ {
		for j := i + 1; j < g.n; j++ {
			if g.adj[i*g.n+j] {
				edges = append(edges, Edge{I: i, J: j})
			}
		}
	}
	return edges
}
