package evolution

import (
	"fmt"
	"io"

	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"
)

// GenerationLog accumulates one run's per-generation statistics for export,
// mirroring the teacher's per-trial epoch bookkeeping but flattened to a
// single run (this system speciates and reproduces once per run, not once
// per trial-within-experiment).
type GenerationLog struct {
	Generations []GenerationStats
}

// Append records one generation's stats.
func (l *GenerationLog) Append(s GenerationStats) {
	l.Generations = append(l.Generations, s)
}

// MeanFitnesses, BestFitnesses, MeanComplexities, and SpeciesCounts extract
// one column of the log as a Floats for descriptive statistics or plotting.
func (l *GenerationLog) MeanFitnesses() Floats {
	x := make(Floats, len(l.Generations))
	for i, g := range l.Generations {
		x[i] = g.MeanFitness
	}
	return x
}

func (l *GenerationLog) BestFitnesses() Floats {
	x := make(Floats, len(l.Generations))
	for i, g := range l.Generations {
		x[i] = g.BestFitness.Primary
	}
	return x
}

func (l *GenerationLog) MeanComplexities() Floats {
	x := make(Floats, len(l.Generations))
	for i, g := range l.Generations {
		x[i] = g.MeanComplexity
	}
	return x
}

func (l *GenerationLog) SpeciesCounts() Floats {
	x := make(Floats, len(l.Generations))
	for i, g := range l.Generations {
		x[i] = float64(g.SpeciesCount)
	}
	return x
}

// WriteNPZ dumps the run's generation log to an NPZ file: one summary row
// (mean, variance) each for fitness and complexity across all generations,
// plus the full per-generation series for mean fitness, best fitness, mean
// complexity, and species count.
func (l *GenerationLog) WriteNPZ(w io.Writer) error {
	summary := mat.NewDense(2, 2, nil) // row 0: fitness, row 1: complexity; cols: mean, var
	summary.SetRow(0, l.MeanFitnesses().MeanVariance())
	summary.SetRow(1, l.MeanComplexities().MeanVariance())

	out := npz.NewWriter(w)
	if err := out.Write("run_summary", summary); err != nil {
		return err
	}
	if err := out.Write("generation_mean_fitness", l.MeanFitnesses()); err != nil {
		return err
	}
	if err := out.Write("generation_best_fitness", l.BestFitnesses()); err != nil {
		return err
	}
	if err := out.Write("generation_mean_complexity", l.MeanComplexities()); err != nil {
		return err
	}
	if err := out.Write("generation_species_count", l.SpeciesCounts()); err != nil {
		return err
	}
	return out.Close()
}

// Summarize returns a short human-readable report of the run's final
// state, grounded on the teacher's PrintStatistics but trimmed to the
// single-run (not multi-trial) scope this system tracks.
func (l *GenerationLog) Summarize() string {
	if len(l.Generations) == 0 {
		return "no generations recorded"
	}
	last := l.Generations[len(l.Generations)-1]
	return fmt.Sprintf(
		"generations: %d\tbest fitness: %f\tmean fitness: %f\tmean complexity: %f\tspecies: %d\tstopped: %t",
		len(l.Generations), last.BestFitness.Primary, last.MeanFitness, last.MeanComplexity, last.SpeciesCount, last.Stopped)
}
