package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGene_stringIncludesFields(t *testing.T) {
	g := NewGene(7, 1, 4, 0.25)
	s := g.String()
	assert.Contains(t, s, "7")
	assert.Contains(t, s, "1")
	assert.Contains(t, s, "4")
}

func TestGeneListBuilder_rejectsDuplicatePair(t *testing.T) {
	model := Model{InputCount: 2, OutputCount: 1}
	b := newGeneListBuilder(model, 4)
	assert.True(t, b.tryAdd(NewGene(1, 0, 2, 1)))
	assert.False(t, b.tryAdd(NewGene(2, 0, 2, -1)), "a second gene between the same pair is rejected regardless of innovation id")
}

func TestGeneListBuilder_rejectsCycleInAcyclicModel(t *testing.T) {
	model := Model{InputCount: 2, OutputCount: 1, IsAcyclic: true}
	b := newGeneListBuilder(model, 4)
	require := assert.New(t)
	require.True(b.tryAdd(NewGene(1, 0, 3, 1)))
	require.True(b.tryAdd(NewGene(2, 3, 2, 1)))
	require.False(b.tryAdd(NewGene(3, 2, 0, 1)), "adding 2 -> 0 would close a cycle through 0 -> 3 -> 2")
}

func TestGeneListBuilder_resetClearsState(t *testing.T) {
	model := Model{InputCount: 2, OutputCount: 1}
	b := newGeneListBuilder(model, 4)
	b.tryAdd(NewGene(1, 0, 2, 1))
	b.reset()
	assert.Empty(t, b.genes)
	assert.True(t, b.tryAdd(NewGene(1, 0, 2, 1)), "after reset the same pair can be added again")
}
