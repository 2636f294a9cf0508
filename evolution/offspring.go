package evolution

import (
	"math"
	"math/rand"
	"sort"

	"github.com/kestrelevo/neatcore/neat/genetics"
	"github.com/kestrelevo/neatcore/speciation"
)

// proportionalWeightEpsilon keeps fitness-proportional selection from
// collapsing to an all-zero weight vector when every candidate's primary
// fitness is equal.
const proportionalWeightEpsilon = 1e-6

// Reproduce returns the next generation's genomes, built from pop: per species,
// a quota of the population budget proportional to the species' mean
// fitness, split into elites (carried over unchanged), asexual offspring,
// and sexual offspring, with parents drawn by fitness-proportional
// selection restricted to the top selectionProportion of each species
// (§4.6).
func Reproduce(pop *Population, exp *Experiment, innovations *genetics.InnovationSequence, offspringIDs *int64Counter, rng *rand.Rand, mode RegulationMode) ([]*genetics.Genome, error) {
	asexual := exp.AsexualParams
	if mode == Simplify {
		asexual = ReweightForSimplify(asexual)
	}

	quotas := allocateQuotas(pop.Species, exp.PopulationSize)

	var offspring []*genetics.Genome
	for i, species := range pop.Species {
		quota := quotas[i]
		if quota <= 0 || len(species.Members) == 0 {
			continue
		}

		sorted := sortedByFitnessDescending(species.Members, exp.Scheme.FitnessComparer())
		eliteCount := int(math.Round(float64(quota) * exp.ElitismProportion))
		if eliteCount > len(sorted) {
			eliteCount = len(sorted)
		}
		offspring = append(offspring, sorted[:eliteCount]...)

		pool := selectionPool(sorted, exp.SelectionProportion)
		remaining := quota - eliteCount
		asexualCount := int(math.Round(float64(remaining) * exp.OffspringAsexualProportion))
		if asexualCount > remaining {
			asexualCount = remaining
		}
		sexualCount := remaining - asexualCount

		for n := 0; n < asexualCount; n++ {
			parent := fitnessProportionalPick(pool, rng)
			child, err := genetics.MutateAsexual(parent, exp.Model, pop.Generation+1, offspringIDs.next(), innovations, asexual, rng)
			if err != nil {
				return nil, err
			}
			offspring = append(offspring, child)
		}

		for n := 0; n < sexualCount; n++ {
			parentA := fitnessProportionalPick(pool, rng)
			parentB := interspeciesOrSamePartner(pop.Species, i, pool, exp.InterspeciesMatingProportion, rng)
			child, err := genetics.CrossoverSexual(parentA, parentB, exp.Model, pop.Generation+1, offspringIDs.next(), exp.Scheme.FitnessComparer(), exp.SexualParams, rng)
			if err != nil {
				return nil, err
			}
			offspring = append(offspring, child)
		}
	}
	return offspring, nil
}

// allocateQuotas distributes populationSize offspring across species in
// proportion to each species' mean primary fitness, with any leftover from
// integer rounding handed to the most populous species so the total always
// reaches populationSize exactly.
func allocateQuotas(species []*speciation.Species, populationSize int) []int {
	means := make([]float64, len(species))
	var total float64
	for i, s := range species {
		means[i] = meanFitness(s.Members)
		if means[i] < 0 {
			means[i] = 0
		}
		total += means[i]
	}

	quotas := make([]int, len(species))
	assigned := 0
	if total <= 0 {
		// Every species scored zero or worse; fall back to an even split.
		for i := range species {
			quotas[i] = populationSize / len(species)
			assigned += quotas[i]
		}
	} else {
		for i, m := range means {
			quotas[i] = int(float64(populationSize) * m / total)
			assigned += quotas[i]
		}
	}

	if leftover := populationSize - assigned; leftover > 0 && len(species) > 0 {
		largest := 0
		for i, s := range species {
			if len(s.Members) > len(species[largest].Members) {
				largest = i
			}
		}
		quotas[largest] += leftover
	}
	return quotas
}

func meanFitness(members []*genetics.Genome) float64 {
	if len(members) == 0 {
		return 0
	}
	var total float64
	for _, m := range members {
		if m.Fitness != nil {
			total += m.Fitness.Primary
		}
	}
	return total / float64(len(members))
}

func sortedByFitnessDescending(members []*genetics.Genome, cmp genetics.FitnessComparer) []*genetics.Genome {
	sorted := make([]*genetics.Genome, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool {
		fi, fj := genetics.FitnessInfo{}, genetics.FitnessInfo{}
		if sorted[i].Fitness != nil {
			fi = *sorted[i].Fitness
		}
		if sorted[j].Fitness != nil {
			fj = *sorted[j].Fitness
		}
		return cmp(fi, fj) > 0
	})
	return sorted
}

// selectionPool restricts candidates to the top selectionProportion
// fraction by fitness (sorted already), always keeping at least one.
func selectionPool(sortedDescending []*genetics.Genome, selectionProportion float64) []*genetics.Genome {
	n := int(math.Ceil(float64(len(sortedDescending)) * selectionProportion))
	if n < 1 {
		n = 1
	}
	if n > len(sortedDescending) {
		n = len(sortedDescending)
	}
	return sortedDescending[:n]
}

// fitnessProportionalPick draws one genome from pool with probability
// proportional to its primary fitness (shifted to be non-negative).
func fitnessProportionalPick(pool []*genetics.Genome, rng *rand.Rand) *genetics.Genome {
	if len(pool) == 1 {
		return pool[0]
	}
	min := math.Inf(1)
	for _, g := range pool {
		if g.Fitness != nil && g.Fitness.Primary < min {
			min = g.Fitness.Primary
		}
	}
	if math.IsInf(min, 1) {
		min = 0
	}

	weights := make([]float64, len(pool))
	var total float64
	for i, g := range pool {
		w := proportionalWeightEpsilon
		if g.Fitness != nil {
			w += g.Fitness.Primary - min
		}
		weights[i] = w
		total += w
	}

	target := rng.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if target < cum {
			return pool[i]
		}
	}
	return pool[len(pool)-1]
}

// interspeciesOrSamePartner picks the second parent for sexual reproduction:
// with probability interspeciesProportion, from a different species chosen
// uniformly at random; otherwise from the same species' selection pool.
func interspeciesOrSamePartner(allSpecies []*speciation.Species, ownIndex int, ownPool []*genetics.Genome, interspeciesProportion float64, rng *rand.Rand) *genetics.Genome {
	if len(allSpecies) > 1 && rng.Float64() < interspeciesProportion {
		other := rng.Intn(len(allSpecies) - 1)
		if other >= ownIndex {
			other++
		}
		if len(allSpecies[other].Members) > 0 {
			return allSpecies[other].Members[rng.Intn(len(allSpecies[other].Members))]
		}
	}
	return fitnessProportionalPick(ownPool, rng)
}

// int64Counter hands out successive offspring ids; the evolution loop owns
// one per run.
type int64Counter struct {
	n int64
}

func newInt64Counter(start int64) *int64Counter { return &int64Counter{n: start} }

func (c *int64Counter) next() int64 {
	id := c.n
	c.n++
	return id
}
