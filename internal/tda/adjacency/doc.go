// Package adjacency classifies pairwise adjacency and triangle closure over a
// small 2D point cloud for a given proximity threshold.
//
// Two points are adjacent when circles of radius threshold centred on each of
// them touch or overlap, i.e. when their distance is at most 2·threshold. A
// point is always adjacent to itself. A closed triple is three distinct
// indices that are pairwise adjacent (a 3-clique of the adjacency graph).
//
// The computation is brute force: O(n²) for adjacency and O(n³) for triple
// enumeration. It drives visualisation overlays (edges and shaded
// triangles) and is not a filtration or homology engine.
//
// Key types: Point, AdjacencyGroup, ClosedTriple, Complex.
//
// Everything here is pure and re-entrant; no package state is mutated.
package adjacency
