package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAcyclic_rejectsCyclicInput(t *testing.T) {
	conns := []Connection{
		{Source: 2, Target: 3, Weight: 1}, // hidden -> hidden
		{Source: 3, Target: 2, Weight: 1}, // closes the cycle
	}
	_, err := NewAcyclic(conns, 1, 1)
	assert.Error(t, err)
}

func TestNewAcyclic_nodeOrderIsNonDecreasingByDepth(t *testing.T) {
	// input 0 -> hidden 2 -> hidden 3 -> output 1; input 0 -> output 1 direct.
	conns := []Connection{
		{Source: 0, Target: 2, Weight: 1},
		{Source: 2, Target: 3, Weight: 1},
		{Source: 3, Target: 1, Weight: 1},
		{Source: 0, Target: 1, Weight: 1},
	}
	g, err := NewAcyclic(conns, 1, 1)
	require.NoError(t, err)

	for i := 1; i < len(g.Depth); i++ {
		assert.LessOrEqual(t, g.Depth[i-1], g.Depth[i], "remapped node ids must be grouped by non-decreasing depth")
	}
}

func TestNewAcyclic_inputsLandInLowestIndices(t *testing.T) {
	conns := []Connection{
		{Source: 0, Target: 3, Weight: 1},
		{Source: 1, Target: 3, Weight: 1},
		{Source: 3, Target: 2, Weight: 1},
	}
	g, err := NewAcyclic(conns, 2, 1)
	require.NoError(t, err)

	for i := 0; i < g.InputCount; i++ {
		assert.Equal(t, 0, g.Depth[i], "inputs always have depth 0")
	}
}

func TestNewAcyclic_outputIndicesResolveCorrectSignals(t *testing.T) {
	// A deep chain forces the single output to land deep in the remapped
	// order, not within the naive [InputCount, InputCount+OutputCount) range.
	conns := []Connection{
		{Source: 0, Target: 2, Weight: 1},
		{Source: 2, Target: 3, Weight: 1},
		{Source: 3, Target: 4, Weight: 1},
		{Source: 4, Target: 1, Weight: 1},
	}
	g, err := NewAcyclic(conns, 1, 1)
	require.NoError(t, err)

	require.Len(t, g.OutputIndices, 1)
	outputIdx := g.OutputIndices[0]
	assert.Equal(t, g.Depth[outputIdx], g.Depth[len(g.Depth)-1], "the output sits at the deepest layer in this chain")
}

func TestBuildLayers_coversEveryNodeAndConnection(t *testing.T) {
	conns := []Connection{
		{Source: 0, Target: 2, Weight: 1},
		{Source: 2, Target: 1, Weight: 1},
	}
	g, err := NewAcyclic(conns, 1, 1)
	require.NoError(t, err)

	last := g.Layers[len(g.Layers)-1]
	assert.Equal(t, g.NodeCount, last.EndNodeIndex)
	assert.Equal(t, len(g.SourceIDs), last.EndConnectionIndex)
}
