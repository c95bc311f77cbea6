package adjacency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_TwoClusters(t *testing.T) {
	pts := []Point{
		{0, 0}, {1, 0}, {0, 1}, // tight triangle
		{10, 10}, {11, 10}, // far pair
		{30, 30}, // isolated
	}

	c, err := Analyze(pts, 0.75)
	require.NoError(t, err)

	assert.Equal(t, 0.75, c.Threshold)
	assert.Equal(t, 3, c.Components)
	assert.Equal(t, []ClosedTriple{{0, 1, 2}}, c.Triples)
	assert.Len(t, c.Edges, 4)
}

func TestAnalyze_InvalidInput(t *testing.T) {
	_, err := Analyze(nil, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdjacencyGroup_GraphAndComponents(t *testing.T) {
	pts := []Point{{0, 0}, {5, 5}, {1, 0}, {5, 6}}
	g, err := ComputeAdjacency(pts, 0.5)
	require.NoError(t, err)

	ug := g.Graph()
	assert.Equal(t, 4, ug.Nodes().Len())
	assert.Equal(t, 2, ug.Edges().Len())
	assert.True(t, ug.HasEdgeBetween(0, 2))
	assert.False(t, ug.HasEdgeBetween(0, 1))

	assert.Equal(t, [][]int{{0, 2}, {1, 3}}, g.Components())
}

func TestAdjacencyGroup_ComponentsZeroValue(t *testing.T) {
	var g AdjacencyGroup
	assert.Nil(t, g.Components())
	assert.Empty(t, g.Edges())
}
