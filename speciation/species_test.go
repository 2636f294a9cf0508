package speciation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelevo/neatcore/neat/genetics"
)

func genomeWith(t *testing.T, id int64, genes []genetics.Gene) *genetics.Genome {
	t.Helper()
	g, err := genetics.NewGenome(id, 0, genes)
	require.NoError(t, err)
	return g
}

func TestComputeCentroid_emptyMembersReturnsNil(t *testing.T) {
	assert.Nil(t, computeCentroid(nil))
}

func TestComputeCentroid_isCoordinateWiseMean(t *testing.T) {
	a := genomeWith(t, 1, []genetics.Gene{genetics.NewGene(1, 0, 2, 1.0)})
	b := genomeWith(t, 2, []genetics.Gene{genetics.NewGene(1, 0, 2, 3.0)})
	centroid := computeCentroid([]*genetics.Genome{a, b})
	require.Len(t, centroid, 1)
	assert.InDelta(t, 2.0, centroid[0].Weight, 1e-9)
}

func TestComputeCentroid_missingGeneContributesZero(t *testing.T) {
	a := genomeWith(t, 1, []genetics.Gene{genetics.NewGene(1, 0, 2, 4.0)})
	b := genomeWith(t, 2, nil)
	centroid := computeCentroid([]*genetics.Genome{a, b})
	require.Len(t, centroid, 1)
	assert.InDelta(t, 2.0, centroid[0].Weight, 1e-9, "b lacks gene 1 so it contributes 0 to the mean over 2 members")
}

func TestComputeCentroid_sortedByInnovationID(t *testing.T) {
	a := genomeWith(t, 1, []genetics.Gene{
		genetics.NewGene(5, 0, 2, 1.0),
		genetics.NewGene(1, 0, 3, 1.0),
	})
	centroid := computeCentroid([]*genetics.Genome{a})
	require.Len(t, centroid, 2)
	assert.Equal(t, int64(1), centroid[0].InnovationID)
	assert.Equal(t, int64(5), centroid[1].InnovationID)
}

func TestNewSpecies_seedsSingleMemberAndCopiesCentroid(t *testing.T) {
	seed := genomeWith(t, 1, []genetics.Gene{genetics.NewGene(1, 0, 2, 1.0)})
	s := newSpecies(7, seed)
	assert.Equal(t, 7, s.ID)
	require.Len(t, s.Members, 1)
	assert.Same(t, seed, s.Members[0])
	require.Len(t, s.Centroid, 1)

	s.Centroid[0].Weight = 99
	assert.NotEqual(t, s.Centroid[0].Weight, seed.Genes[0].Weight, "centroid must be an independent copy of the seed's genes")
}
