package evolution

import (
	"context"
	"math/rand"
	"sync"

	"github.com/kestrelevo/neatcore/neat/genetics"
	"github.com/kestrelevo/neatcore/network"
	"github.com/kestrelevo/neatcore/speciation"
)

// GenerationStats summarizes one completed generation. The evolution loop
// reports one of these per generation; a caller accumulating a run-long log
// (e.g. for an NPZ export) appends each as it arrives.
type GenerationStats struct {
	Generation     int
	BestFitness    genetics.FitnessInfo
	MeanFitness    float64
	MeanComplexity float64
	SpeciesCount   int
	Mode           RegulationMode
	Stopped        bool
}

// Run drives the generational loop starting from pop until either the
// evaluation scheme's stop condition is met, ctx is cancelled, or
// maxGenerations is reached (0 means unbounded). It returns the final
// population and the per-generation stats collected along the way (§4.6).
func Run(ctx context.Context, exp *Experiment, pop *Population, innovations *genetics.InnovationSequence, rng *rand.Rand, maxGenerations int) (*Population, []GenerationStats, error) {
	offspringIDs := newInt64Counter(int64(len(pop.Genomes)))
	var log []GenerationStats

	for maxGenerations <= 0 || pop.Generation < maxGenerations {
		if err := ctx.Err(); err != nil {
			return pop, log, err
		}

		stats, err := evaluateAndSpeciate(ctx, exp, pop, rng)
		if err != nil {
			return pop, log, err
		}
		log = append(log, stats)
		if stats.Stopped {
			return pop, log, nil
		}

		if err := ctx.Err(); err != nil {
			return pop, log, err
		}

		offspring, err := Reproduce(pop, exp, innovations, offspringIDs, rng, stats.Mode)
		if err != nil {
			return pop, log, err
		}
		innovations.ClearGeneration()

		next := &Population{Generation: pop.Generation + 1, Genomes: offspring, Species: pop.Species}
		speciateGeneration(next, exp, rng)
		pop = next
	}
	return pop, log, nil
}

// evaluateAndSpeciate evaluates every genome's fitness, speciates
// generation 0 from scratch, and computes the generation's summary
// statistics and regulation mode. Speciation for generation 0 happens here
// (rather than at population construction) because fitness values feed the
// distance metric's downstream consumers even though the metric itself
// reads only connection genes, never fitness.
func evaluateAndSpeciate(ctx context.Context, exp *Experiment, pop *Population, rng *rand.Rand) (GenerationStats, error) {
	if err := evaluateGeneration(ctx, exp, pop.Genomes); err != nil {
		return GenerationStats{}, err
	}
	if pop.Generation == 0 && len(pop.Species) == 0 {
		speciateGeneration(pop, exp, rng)
	}

	best := exp.Scheme.NullFitness()
	var fitnessSum float64
	var complexitySum float64
	cmp := exp.Scheme.FitnessComparer()
	for _, g := range pop.Genomes {
		if g.Fitness != nil {
			fitnessSum += g.Fitness.Primary
			if cmp(*g.Fitness, best) > 0 {
				best = *g.Fitness
			}
		}
		complexitySum += float64(g.Complexity)
	}
	n := float64(len(pop.Genomes))
	meanFitness := 0.0
	meanComplexity := 0.0
	if n > 0 {
		meanFitness = fitnessSum / n
		meanComplexity = complexitySum / n
	}

	mode := exp.ComplexityRegulation.Evaluate(pop.Generation, meanComplexity)
	return GenerationStats{
		Generation:     pop.Generation,
		BestFitness:    best,
		MeanFitness:    meanFitness,
		MeanComplexity: meanComplexity,
		SpeciesCount:   len(pop.Species),
		Mode:           mode,
		Stopped:        exp.Scheme.TestForStopCondition(best),
	}, nil
}

// speciateGeneration assigns pop.Genomes to species: k-means++ from scratch
// when pop has none yet, otherwise the incremental nearest-centroid
// assignment seeded from the prior generation's centroids (carried in via
// pop.Species; their Members are cleared here before reassignment).
func speciateGeneration(pop *Population, exp *Experiment, rng *rand.Rand) {
	metric := exp.DistanceMetric
	if metric == (speciation.DistanceMetric{}) {
		metric = speciation.DefaultDistanceMetric()
	}

	if len(pop.Species) == 0 {
		pop.Species = speciation.SpeciateAll(pop.Genomes, exp.SpeciesCount, metric, exp.SpeciationMaxIterations, rng)
		return
	}

	for _, s := range pop.Species {
		s.Members = nil
	}
	speciation.SpeciateAdd(pop.Species, pop.Genomes, metric, exp.SpeciationMaxIterations)
}

// evaluateGeneration decodes and evaluates every genome's phenome,
// partitioning the genome slice into exp.DegreeOfParallelism disjoint
// contiguous ranges run concurrently. Stateless evaluators are constructed
// once and shared across every worker; stateful ones are drawn one per
// partition from a bounded pool (§4.6, §5). Cancellation is polled at the
// start of each partition and every 32 genomes within it.
func evaluateGeneration(ctx context.Context, exp *Experiment, genomes []*genetics.Genome) error {
	if len(genomes) == 0 {
		return nil
	}
	parts := partitionRanges(len(genomes), exp.DegreeOfParallelism)

	var shared Evaluator
	var pool *EvaluatorPool
	if exp.Scheme.EvaluatorsHaveState() {
		pool = NewEvaluatorPool(exp.Scheme.CreateEvaluator, len(parts))
	} else {
		shared = exp.Scheme.CreateEvaluator()
	}

	errs := make(chan error, len(parts))
	var wg sync.WaitGroup
	for _, r := range parts {
		r := r
		wg.Add(1)
		go func() {
			defer wg.Done()
			ev := shared
			if pool != nil {
				ev = pool.Get()
				defer pool.Release(ev)
			}
			for i := r.start; i < r.end; i++ {
				if (i-r.start)%32 == 0 {
					if err := ctx.Err(); err != nil {
						errs <- err
						return
					}
				}
				if err := evaluateOne(genomes[i], exp, ev); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// evaluateOne decodes a single genome and runs it through ev, assigning the
// evaluation scheme's null fitness to a non-viable genome rather than
// treating decode failure as a run-aborting error (§4.5, §7).
func evaluateOne(g *genetics.Genome, exp *Experiment, ev Evaluator) error {
	phenome, err := network.Decode(g, exp.Model)
	if err != nil {
		if err == network.ErrNonViableGenome {
			null := exp.Scheme.NullFitness()
			g.Fitness = &null
			return nil
		}
		return err
	}
	fitness, err := ev.Evaluate(phenome)
	if err != nil {
		return err
	}
	g.Fitness = &fitness
	return nil
}

type genomeRange struct {
	start, end int
}

// partitionRanges splits [0, n) into at most parts disjoint contiguous
// ranges of as-equal-as-possible size. parts is clamped to [1, n].
func partitionRanges(n, parts int) []genomeRange {
	if parts < 1 {
		parts = 1
	}
	if parts > n {
		parts = n
	}
	ranges := make([]genomeRange, 0, parts)
	base := n / parts
	remainder := n % parts
	start := 0
	for i := 0; i < parts; i++ {
		size := base
		if i < remainder {
			size++
		}
		ranges = append(ranges, genomeRange{start: start, end: start + size})
		start += size
	}
	return ranges
}
