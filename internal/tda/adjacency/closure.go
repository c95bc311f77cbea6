package adjacency

// FindClosedTriples returns every triple i<j<k whose members are pairwise
// adjacent in adjacency. The result is ordered lexicographically and empty
// when fewer than three points are given.
//
// adjacency must have been computed over the same points; a group covering a
// different number of indices is rejected so that triple enumeration and
// adjacency lookups share one index domain.
func FindClosedTriples(points []Point, adjacency AdjacencyGroup) ([]ClosedTriple, error) {
	n := len(points)
	if adjacency.Len() != n {
		return nil, invalid("adjacency", "covers %d indices but %d points were given", adjacency.Len(), n)
	}
	if n < 3 {
		return []ClosedTriple{}, nil
	}

	triples := []ClosedTriple{}
	for i := 0; i < n-2; i++ {
		for j := i + 1; j < n-1; j++ {
			if !adjacency.Contains(j, i) {
				continue
			}
			for k := j + 1; k < n; k++ {
				if adjacency.Contains(k, i) && adjacency.Contains(k, j) {
					triples = append(triples, ClosedTriple{I: i, J: j, K: k})
				}
			}
		}
	}
	return triples, nil
}
