package adjacency

import (
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Complex bundles everything computed for one (points, threshold) frame.
type Complex struct {
	Threshold  float64
	Adjacency  AdjacencyGroup
	Edges      []Edge
	Triples    []ClosedTriple
	Components int
}

// Analyze computes adjacency, edges, closed triples and the number of
// connected components for points at threshold.
func Analyze(points []Point, threshold float64) (*Complex, error) {
	adj, err := ComputeAdjacency(points, threshold)
	if err != nil {
		return nil, err
	}
	triples, err := FindClosedTriples(points, adj)
	if err != nil {
		return nil, err
	}
	return &Complex{
		Threshold:  threshold,
		Adjacency:  adj,
		Edges:      adj.Edges(),
		Triples:    triples,
		Components: len(adj.Components()),
	}, nil
}

// Graph returns the adjacency as an undirected gonum graph whose node IDs are
// point indices. Self-adjacency is implicit and not stored as an edge.
func (g AdjacencyGroup) Graph() *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	for i := 0; i < g.n; i++ {
		ug.AddNode(simple.Node(i))
	}
	for _, e := range g.Edges() {
		ug.SetEdge(ug.NewEdge(simple.Node(e.I), simple.Node(e.J)))
	}
	return ug
}

// Components returns the connected components of the adjacency graph as
// sorted index slices, ordered by their smallest index.
func (g AdjacencyGroup) Components() [][]int {
	if g.n == 0 {
		return nil
	}
	cc := topo.ConnectedComponents(g.Graph())
	out := make([][]int, 0, len(cc))
	for _, nodes := range cc {
		out = append(out, nodeIndices(nodes))
	}
	slices.SortFunc(out, func(a, b []int) int { return a[0] - b[0] })
	return out
}

func nodeIndices(nodes []graph.Node) []int {
	idx := make([]int, len(nodes))
	for i, n := range nodes {
		idx[i] = int(n.ID())
	}
	slices.Sort(idx)
	return idx
}
