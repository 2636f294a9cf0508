package speciation

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/kestrelevo/neatcore/neat/genetics"
)

// Species is a cluster of genomes sharing a centroid gene vector, the unit
// the k-means speciation process produces and the unit reproduction draws
// parents from (§3).
type Species struct {
	ID       int
	Centroid []genetics.Gene
	Members  []*genetics.Genome
}

// newSpecies constructs a species whose only member is seed, with a
// centroid copied from seed's genes.
func newSpecies(id int, seed *genetics.Genome) *Species {
	centroid := make([]genetics.Gene, len(seed.Genes))
	copy(centroid, seed.Genes)
	return &Species{ID: id, Centroid: centroid, Members: []*genetics.Genome{seed}}
}

// computeCentroid recomputes a species' centroid as the coordinate-wise
// mean of its members' gene vectors: for every innovation id appearing in
// at least one member, the mean of that gene's weight across members,
// treating a member that lacks the gene as contributing zero (§8 invariant
// 5). Source/target are carried from whichever member has the gene, since
// an innovation id always denotes the same structural pair.
func computeCentroid(members []*genetics.Genome) []genetics.Gene {
	if len(members) == 0 {
		return nil
	}
	type accum struct {
		source, target int
	}
	shape := make(map[int64]accum)
	for _, m := range members {
		for _, g := range m.Genes {
			if _, ok := shape[g.InnovationID]; !ok {
				shape[g.InnovationID] = accum{source: g.Source, target: g.Target}
			}
		}
	}
	innovationIDs := make([]int64, 0, len(shape))
	for id := range shape {
		innovationIDs = append(innovationIDs, id)
	}
	sort.Slice(innovationIDs, func(i, j int) bool { return innovationIDs[i] < innovationIDs[j] })

	sums := make([]float64, len(innovationIDs))
	index := make(map[int64]int, len(innovationIDs))
	for i, id := range innovationIDs {
		index[id] = i
	}
	for _, m := range members {
		for _, g := range m.Genes {
			sums[index[g.InnovationID]] += g.Weight
		}
	}
	floats.Scale(1/float64(len(members)), sums)

	centroid := make([]genetics.Gene, len(innovationIDs))
	for i, id := range innovationIDs {
		s := shape[id]
		centroid[i] = genetics.NewGene(id, s.source, s.target, sums[i])
	}
	return centroid
}
