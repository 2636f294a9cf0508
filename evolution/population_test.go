package evolution

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelevo/neatcore/neat/genetics"
)

func TestNewInitialPopulation_producesRequestedSize(t *testing.T) {
	model := genetics.Model{InputCount: 3, OutputCount: 2, IsAcyclic: true, ConnectionWeightScale: 5}
	innovations := genetics.NewInnovationSequence(1, 100)
	rng := rand.New(rand.NewSource(1))

	pop, err := NewInitialPopulation(20, model, 0.5, innovations, rng)
	require.NoError(t, err)
	assert.Len(t, pop.Genomes, 20)
	assert.Equal(t, 0, pop.Generation)
}

func TestNewInitialPopulation_fullInterconnectionConnectsEveryInputOutputPair(t *testing.T) {
	model := genetics.Model{InputCount: 2, OutputCount: 2, IsAcyclic: true, ConnectionWeightScale: 5}
	innovations := genetics.NewInnovationSequence(1, 100)
	rng := rand.New(rand.NewSource(2))

	pop, err := NewInitialPopulation(1, model, 1.0, innovations, rng)
	require.NoError(t, err)
	require.Len(t, pop.Genomes, 1)
	assert.Len(t, pop.Genomes[0].Genes, model.InputCount*model.OutputCount)
}

func TestNewInitialPopulation_zeroInterconnectionProducesNoGenes(t *testing.T) {
	model := genetics.Model{InputCount: 2, OutputCount: 2, IsAcyclic: true, ConnectionWeightScale: 5}
	innovations := genetics.NewInnovationSequence(1, 100)
	rng := rand.New(rand.NewSource(3))

	pop, err := NewInitialPopulation(1, model, 0.0, innovations, rng)
	require.NoError(t, err)
	assert.Empty(t, pop.Genomes[0].Genes)
}

func TestNewInitialPopulation_sharesInnovationIDsAcrossGenomes(t *testing.T) {
	model := genetics.Model{InputCount: 2, OutputCount: 1, IsAcyclic: true, ConnectionWeightScale: 5}
	innovations := genetics.NewInnovationSequence(1, 100)
	rng := rand.New(rand.NewSource(4))

	pop, err := NewInitialPopulation(30, model, 1.0, innovations, rng)
	require.NoError(t, err)

	seen := map[int]int64{}
	for _, g := range pop.Genomes {
		for _, gene := range g.Genes {
			key := gene.Source*100 + gene.Target
			if existing, ok := seen[key]; ok {
				assert.Equal(t, existing, gene.InnovationID, "the same (source, target) pair must reuse the same innovation id across genomes")
			} else {
				seen[key] = gene.InnovationID
			}
		}
	}
}
