package evolution

import (
	"math/rand"

	"github.com/kestrelevo/neatcore/neat/genetics"
	"github.com/kestrelevo/neatcore/speciation"
)

// Population is the full set of genomes under evolution plus their current
// speciation, carried across generations by the evolution loop.
type Population struct {
	Generation int
	Genomes    []*genetics.Genome
	Species    []*speciation.Species
}

// NewInitialPopulation builds generation 0: populationSize genomes, each
// with every (input, output) pair present as a connection gene
// independently with probability initialInterconnections, sharing
// innovation ids across genomes via innovations since every genome
// proposes the same candidate (source, target) pairs (§3, §4.6).
// model.InputCount already includes the bias neuron at genetics.BiasNodeID
// (id 0), so the bias is wired to every output exactly like any other
// input without special-casing it here (§4.2).
func NewInitialPopulation(populationSize int, model genetics.Model, initialInterconnections float64, innovations *genetics.InnovationSequence, rng *rand.Rand) (*Population, error) {
	genomes := make([]*genetics.Genome, 0, populationSize)
	for i := 0; i < populationSize; i++ {
		genes := make([]genetics.Gene, 0, model.InputCount*model.OutputCount)
		for in := 0; in < model.InputCount; in++ {
			for out := model.InputCount; out < model.NodeIOCount(); out++ {
				if rng.Float64() > initialInterconnections {
					continue
				}
				innovationID := innovations.IDFor(in, out)
				weight := (rng.Float64()*2 - 1) * model.ConnectionWeightScale
				genes = append(genes, genetics.NewGene(innovationID, in, out, weight))
			}
		}
		genetics.SortGenes(genes)
		genome, err := genetics.NewGenome(int64(i), 0, genes)
		if err != nil {
			return nil, err
		}
		genomes = append(genomes, genome)
	}
	return &Population{Generation: 0, Genomes: genomes}, nil
}
