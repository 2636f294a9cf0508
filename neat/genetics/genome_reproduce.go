package genetics

import "math/rand"

// SexualParams bundles the configuration a crossover call needs from
// neat.Options, mirroring AsexualParams.
type SexualParams struct {
	SecondaryParentGeneProbability float64
}

// geneListBuilder accumulates a connection gene list for a genome under
// construction, rejecting a gene whose (source, target) pair is already
// present and, for an acyclic model, a gene that would close a cycle over
// what has been accumulated so far. Crossover uses it to build the child's
// gene list incrementally; mutation applies its own checks (§4.3, §4.4).
type geneListBuilder struct {
	genes []Gene
	seen  map[pairKey]bool
	model Model
}

// newGeneListBuilder returns an empty builder for a genome of the given
// model, with capacity pre-sized to a hint of the final gene count.
func newGeneListBuilder(model Model, sizeHint int) *geneListBuilder {
	return &geneListBuilder{
		genes: make([]Gene, 0, sizeHint),
		seen:  make(map[pairKey]bool, sizeHint),
		model: model,
	}
}

// reset empties the builder so it can be reused for another genome without
// reallocating its backing storage.
func (b *geneListBuilder) reset() {
	b.genes = b.genes[:0]
	for k := range b.seen {
		delete(b.seen, k)
	}
}

// tryAdd appends gene unless its (source, target) pair duplicates one
// already accumulated or, for an acyclic model, would close a cycle over
// the connections accumulated so far. It reports whether the gene was
// added.
func (b *geneListBuilder) tryAdd(gene Gene) bool {
	key := pairKey{gene.Source, gene.Target}
	if b.seen[key] {
		return false
	}
	if b.model.IsAcyclic && wouldCreateCycle(b.genes, gene.Source, gene.Target) {
		return false
	}
	b.genes = append(b.genes, gene)
	b.seen[key] = true
	return true
}

// finish sorts the accumulated genes by ascending innovation id and returns
// them; the builder's own slice is handed over, so callers must reset (or
// discard) the builder before reusing it.
func (b *geneListBuilder) finish() []Gene {
	SortGenes(b.genes)
	return b.genes
}

// designatePrimary picks the fitter of two parents as the primary parent for
// crossover, per the uniform-crossover rule that the primary parent's
// disjoint and excess genes are always inherited while the secondary
// parent's are inherited only probabilistically (§4.4). Ties favor a,
// arbitrarily but deterministically.
func designatePrimary(a, b *Genome, cmp FitnessComparer) (primary, secondary *Genome) {
	if a.Fitness == nil || b.Fitness == nil {
		return a, b
	}
	if cmp(*b.Fitness, *a.Fitness) > 0 {
		return b, a
	}
	return a, b
}

// CrossoverSexual produces an offspring genome from two parents by uniform
// crossover over their innovation-aligned gene arrays: a merge-style
// two-pointer walk that, for each innovation id, picks the primary parent's
// gene when only the primary has it, the secondary parent's gene with
// probability params.SecondaryParentGeneProbability when only the secondary
// has it, and a 50/50 coin flip between the two copies when both parents
// have a gene at that innovation id (§4.4).
func CrossoverSexual(parentA, parentB *Genome, model Model, generation int, offspringID int64, cmp FitnessComparer, params SexualParams, rng *rand.Rand) (*Genome, error) {
	primary, secondary := designatePrimary(parentA, parentB, cmp)

	builder := newGeneListBuilder(model, len(primary.Genes)+len(secondary.Genes))

	i, j := 0, 0
	for i < len(primary.Genes) || j < len(secondary.Genes) {
		switch {
		case i >= len(primary.Genes):
			if rng.Float64() < params.SecondaryParentGeneProbability {
				builder.tryAdd(secondary.Genes[j])
			}
			j++
		case j >= len(secondary.Genes):
			builder.tryAdd(primary.Genes[i])
			i++
		case primary.Genes[i].InnovationID == secondary.Genes[j].InnovationID:
			if rng.Float64() < 0.5 {
				builder.tryAdd(primary.Genes[i])
			} else {
				builder.tryAdd(secondary.Genes[j])
			}
			i++
			j++
		case primary.Genes[i].InnovationID < secondary.Genes[j].InnovationID:
			builder.tryAdd(primary.Genes[i])
			i++
		default:
			if rng.Float64() < params.SecondaryParentGeneProbability {
				builder.tryAdd(secondary.Genes[j])
			}
			j++
		}
	}

	genes := builder.finish()
	if len(genes) == 0 {
		// Crossover produced no viable connectivity at all (every candidate
		// gene was skipped or rejected by the builder); fall back to the
		// primary parent's own genes rather than construct an empty genome.
		genes = make([]Gene, len(primary.Genes))
		copy(genes, primary.Genes)
	}
	return NewGenome(offspringID, generation, genes)
}
