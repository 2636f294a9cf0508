package genetics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel(acyclic bool) Model {
	return Model{
		InputCount:            2,
		OutputCount:           1,
		IsAcyclic:             acyclic,
		CyclesPerActivation:   1,
		ConnectionWeightScale: 3,
	}
}

func baseGenome(t *testing.T) *Genome {
	t.Helper()
	genes := []Gene{
		NewGene(1, 0, 2, 1),
		NewGene(2, 1, 2, -1),
	}
	g, err := NewGenome(1, 0, genes)
	require.NoError(t, err)
	return g
}

func TestMutateAsexual_weightsStayClamped(t *testing.T) {
	model := testModel(false)
	innovations := NewInnovationSequence(10, 10)
	rng := rand.New(rand.NewSource(1))
	parent := baseGenome(t)

	params := AsexualParams{MutateWeightProb: 1, NewConnectionTries: 5}
	for i := 0; i < 50; i++ {
		child, err := MutateAsexual(parent, model, 1, int64(i), innovations, params, rng)
		require.NoError(t, err)
		for _, g := range child.Genes {
			assert.LessOrEqual(t, g.Weight, model.ConnectionWeightScale)
			assert.GreaterOrEqual(t, g.Weight, -model.ConnectionWeightScale)
		}
	}
}

func TestMutateAsexual_addNodeSplitsAGene(t *testing.T) {
	model := testModel(false)
	innovations := NewInnovationSequence(10, 10)
	rng := rand.New(rand.NewSource(2))
	parent := baseGenome(t)

	params := AsexualParams{MutateAddNodeProb: 1, NewConnectionTries: 5}
	child, err := MutateAsexual(parent, model, 1, 99, innovations, params, rng)
	require.NoError(t, err)
	assert.Len(t, child.Genes, len(parent.Genes)+1)
}

func TestWouldCreateCycle_selfLoopAlwaysRejected(t *testing.T) {
	genes := []Gene{NewGene(1, 0, 2, 1)}
	for _, id := range []int{0, 1, 2, 7} {
		assert.True(t, wouldCreateCycle(genes, id, id), "a self-loop always creates a cycle")
	}
}

func TestWouldCreateCycle_detectsIndirectCycle(t *testing.T) {
	// 0 -> 3, 3 -> 1; adding 1 -> 0 would close a cycle.
	genes := []Gene{
		NewGene(1, 0, 3, 1),
		NewGene(2, 3, 1, 1),
	}
	assert.True(t, wouldCreateCycle(genes, 1, 0))
	assert.False(t, wouldCreateCycle(genes, 0, 1))
}

func TestMutateAsexual_deleteConnectionNoOpOnSingleGene(t *testing.T) {
	genes := []Gene{NewGene(1, 0, 2, 1)}
	out := mutateDeleteConnection(genes, rand.New(rand.NewSource(4)))
	assert.Len(t, out, 1)
}

func TestMutateAsexual_deleteConnectionRemovesOneGene(t *testing.T) {
	genes := []Gene{
		NewGene(1, 0, 2, 1),
		NewGene(2, 1, 2, -1),
		NewGene(3, 0, 1, 0.5),
	}
	out := mutateDeleteConnection(genes, rand.New(rand.NewSource(5)))
	assert.Len(t, out, 2)
}

func TestMutateAsexual_addConnectionNoViableCandidateLeavesGenesUnchanged(t *testing.T) {
	model := Model{InputCount: 1, OutputCount: 1, IsAcyclic: true, ConnectionWeightScale: 1}
	innovations := NewInnovationSequence(10, 10)
	genes := []Gene{NewGene(1, 0, 1, 1)}
	out := mutateAddConnection(genes, model, innovations, 5, rand.New(rand.NewSource(6)))
	assert.Equal(t, genes, out, "the only possible pair already exists, so no connection can be added")
}
