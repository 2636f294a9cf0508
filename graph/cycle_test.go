package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycleDetector_HasCycle_acyclicGraph(t *testing.T) {
	conns := []Connection{
		{Source: 0, Target: 2, Weight: 1},
		{Source: 2, Target: 1, Weight: 1},
	}
	g, err := NewDirected(conns, 1, 1)
	require.NoError(t, err)

	d := NewCycleDetector(g.NodeCount)
	assert.False(t, d.HasCycle(g))
}

func TestCycleDetector_HasCycle_cyclicGraph(t *testing.T) {
	conns := []Connection{
		{Source: 2, Target: 3, Weight: 1},
		{Source: 3, Target: 2, Weight: 1},
	}
	g, err := NewDirected(conns, 1, 1)
	require.NoError(t, err)

	d := NewCycleDetector(g.NodeCount)
	assert.True(t, d.HasCycle(g))
}

func TestCycleDetector_HasCycle_reusableAcrossCalls(t *testing.T) {
	acyclic, err := NewDirected([]Connection{{Source: 0, Target: 1, Weight: 1}}, 1, 1)
	require.NoError(t, err)
	cyclic, err := NewDirected([]Connection{{Source: 2, Target: 3, Weight: 1}, {Source: 3, Target: 2, Weight: 1}}, 1, 1)
	require.NoError(t, err)

	d := NewCycleDetector(4)
	assert.False(t, d.HasCycle(acyclic))
	assert.True(t, d.HasCycle(cyclic))
	assert.False(t, d.HasCycle(acyclic), "reusing the detector on a fresh graph must not carry over stale state")
}

func TestCycleDetector_WouldCreateCycle_selfLoop(t *testing.T) {
	g, err := NewDirected([]Connection{{Source: 0, Target: 1, Weight: 1}}, 1, 1)
	require.NoError(t, err)
	d := NewCycleDetector(g.NodeCount)
	assert.True(t, d.WouldCreateCycle(g, 0, 0))
}

func TestCycleDetector_WouldCreateCycle_detectsBackEdge(t *testing.T) {
	// 0 -> 2 -> 1; adding 1 -> 0 would close a cycle.
	g, err := NewDirected([]Connection{{Source: 0, Target: 2, Weight: 1}, {Source: 2, Target: 1, Weight: 1}}, 1, 1)
	require.NoError(t, err)
	d := NewCycleDetector(g.NodeCount)
	assert.True(t, d.WouldCreateCycle(g, 1, 0))
	assert.False(t, d.WouldCreateCycle(g, 0, 1))
}
