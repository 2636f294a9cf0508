package speciation

import (
	"math"
	"math/rand"

	"github.com/kestrelevo/neatcore/neat/genetics"
)

// MaxIterations bounds the k-means reallocation loop when a run does not
// configure its own limit.
const MaxIterations = 50

// SpeciateAll performs the once-per-run k-means++ initialisation: seeds k
// species from genomes, then assigns every other genome to its nearest
// seed, then runs the iteration loop to convergence (§4.5).
func SpeciateAll(genomes []*genetics.Genome, k int, metric DistanceMetric, maxIterations int, rng *rand.Rand) []*Species {
	if k <= 0 || len(genomes) == 0 {
		return nil
	}
	if k > len(genomes) {
		k = len(genomes)
	}

	seeds, rest := kMeansPlusPlusSeeds(genomes, k, metric, rng)
	species := make([]*Species, len(seeds))
	for i, seed := range seeds {
		species[i] = newSpecies(i, seed)
	}
	for _, g := range rest {
		idx := nearestSpecies(species, g, metric)
		species[idx].Members = append(species[idx].Members, g)
	}
	for _, s := range species {
		s.Centroid = computeCentroid(s.Members)
	}

	KMeansIteration(species, metric, maxIterations)
	repairEmptySpecies(species, metric)
	return species
}

// kMeansPlusPlusSeeds picks k seed genomes by k-means++: the first
// uniformly at random, each subsequent one from a candidate subset sampled
// from the remaining pool with probability proportional to its squared
// distance to the nearest already-chosen seed. It returns the seeds and
// the genomes that were never chosen as a seed.
func kMeansPlusPlusSeeds(genomes []*genetics.Genome, k int, metric DistanceMetric, rng *rand.Rand) (seeds []*genetics.Genome, rest []*genetics.Genome) {
	pool := make([]*genetics.Genome, len(genomes))
	copy(pool, genomes)

	first := rng.Intn(len(pool))
	seeds = append(seeds, pool[first])
	pool = removeAt(pool, first)

	for len(seeds) < k && len(pool) > 0 {
		subsetSize := len(pool)
		if sampled := int(math.Round(10 * math.Log10(float64(len(pool))))); sampled < subsetSize {
			subsetSize = sampled
		}
		if subsetSize < 1 {
			subsetSize = 1
		}
		candidateIdx := sampleIndices(len(pool), subsetSize, rng)

		sqDist := make([]float64, len(candidateIdx))
		var total float64
		for i, idx := range candidateIdx {
			d := nearestSeedDistance(pool[idx], seeds, metric)
			sqDist[i] = d * d
			total += sqDist[i]
		}

		chosen := candidateIdx[weightedChoice(sqDist, total, rng)]
		seeds = append(seeds, pool[chosen])
		pool = removeAt(pool, chosen)
	}

	rest = pool
	return seeds, rest
}

func nearestSeedDistance(g *genetics.Genome, seeds []*genetics.Genome, metric DistanceMetric) float64 {
	best := math.Inf(1)
	for _, s := range seeds {
		if d := Distance(g.Genes, s.Genes, metric); d < best {
			best = d
		}
	}
	return best
}

// weightedChoice picks an index into weights with probability proportional
// to its value; falls back to a uniform pick when total is zero (every
// candidate is equidistant from the chosen seeds so far).
func weightedChoice(weights []float64, total float64, rng *rand.Rand) int {
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	target := rng.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if target < cum {
			return i
		}
	}
	return len(weights) - 1
}

// sampleIndices draws count distinct indices in [0, n) without replacement.
func sampleIndices(n, count int, rng *rand.Rand) []int {
	if count >= n {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}
	perm := rng.Perm(n)
	return perm[:count]
}

func removeAt(genomes []*genetics.Genome, idx int) []*genetics.Genome {
	genomes[idx] = genomes[len(genomes)-1]
	return genomes[:len(genomes)-1]
}

// nearestSpecies returns the index of the species whose centroid is
// closest to g.
func nearestSpecies(species []*Species, g *genetics.Genome, metric DistanceMetric) int {
	best, bestDist := 0, math.Inf(1)
	for i, s := range species {
		if d := Distance(g.Genes, s.Centroid, metric); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// KMeansIteration repeatedly reassigns every member of every species to its
// nearest centroid, recomputing centroids only for species whose membership
// changed (the updateBits optimisation), until a pass produces zero moves
// or maxIterations passes have run (§4.5).
func KMeansIteration(species []*Species, metric DistanceMetric, maxIterations int) {
	if maxIterations <= 0 {
		maxIterations = MaxIterations
	}
	if len(species) == 0 {
		return
	}

	for iter := 0; iter < maxIterations; iter++ {
		type move struct {
			genome *genetics.Genome
			from   int
			to     int
		}
		var moves []move

		for from, s := range species {
			for _, g := range s.Members {
				to := nearestSpecies(species, g, metric)
				if to != from {
					moves = append(moves, move{genome: g, from: from, to: to})
				}
			}
		}
		if len(moves) == 0 {
			return
		}

		changed := make(map[int]bool)
		for _, mv := range moves {
			species[mv.from].Members = removeGenome(species[mv.from].Members, mv.genome)
			species[mv.to].Members = append(species[mv.to].Members, mv.genome)
			changed[mv.from] = true
			changed[mv.to] = true
		}
		for idx := range changed {
			species[idx].Centroid = computeCentroid(species[idx].Members)
		}
	}
}

func removeGenome(members []*genetics.Genome, target *genetics.Genome) []*genetics.Genome {
	for i, m := range members {
		if m == target {
			members[i] = members[len(members)-1]
			return members[:len(members)-1]
		}
	}
	return members
}

// repairEmptySpecies fills every empty species by taking the genome furthest
// from its centroid out of the most populous species and recomputing both
// centroids, once per empty species (§4.5).
func repairEmptySpecies(species []*Species, metric DistanceMetric) {
	for _, s := range species {
		if len(s.Members) > 0 {
			continue
		}
		donor := mostPopulousSpecies(species)
		if donor == nil || len(donor.Members) == 0 {
			continue
		}
		idx := furthestMemberIndex(donor, metric)
		moved := donor.Members[idx]
		donor.Members = removeGenome(donor.Members, moved)
		s.Members = append(s.Members, moved)
		donor.Centroid = computeCentroid(donor.Members)
		s.Centroid = computeCentroid(s.Members)
	}
}

func mostPopulousSpecies(species []*Species) *Species {
	var best *Species
	for _, s := range species {
		if best == nil || len(s.Members) > len(best.Members) {
			best = s
		}
	}
	return best
}

func furthestMemberIndex(s *Species, metric DistanceMetric) int {
	best, bestDist := 0, -1.0
	for i, m := range s.Members {
		if d := Distance(m.Genes, s.Centroid, metric); d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// SpeciateAdd assigns each of newGenomes to the species with the nearest
// centroid, then re-runs the iteration loop, the incremental path used for
// every generation after the first (§4.5).
func SpeciateAdd(species []*Species, newGenomes []*genetics.Genome, metric DistanceMetric, maxIterations int) {
	if len(species) == 0 {
		return
	}
	touched := make(map[int]bool)
	for _, g := range newGenomes {
		idx := nearestSpecies(species, g, metric)
		species[idx].Members = append(species[idx].Members, g)
		touched[idx] = true
	}
	for idx := range touched {
		species[idx].Centroid = computeCentroid(species[idx].Members)
	}
	KMeansIteration(species, metric, maxIterations)
	repairEmptySpecies(species, metric)
}
