// Package evolution implements the generational loop: evaluate, speciate,
// test for a stop condition, allocate offspring quotas, reproduce, and
// regulate complexity, driven by a pluggable evaluation scheme (§4.6, §6).
package evolution

import (
	"context"

	"github.com/kestrelevo/neatcore/neat/genetics"
	"github.com/kestrelevo/neatcore/network"
	"github.com/kestrelevo/neatcore/speciation"
)

// Evaluator computes a single genome's fitness by activating its decoded
// phenome. Evaluate must call phenome.Reset() between independent trials
// and must not retain phenome beyond the call (§6).
type Evaluator interface {
	Evaluate(phenome network.BlackBox) (genetics.FitnessInfo, error)
}

// EvaluationScheme is the experiment-specific contract the evolution loop
// is parameterized over: input/output shape, how fitness is compared and
// defaulted for non-viable genomes, whether evaluators carry state across
// calls, and the stop predicate (§6).
type EvaluationScheme interface {
	InputCount() int
	OutputCount() int
	IsDeterministic() bool
	FitnessComparer() genetics.FitnessComparer
	NullFitness() genetics.FitnessInfo
	// EvaluatorsHaveState selects between a single evaluator shared by every
	// worker (false) and one evaluator drawn from a pool per partition
	// (true).
	EvaluatorsHaveState() bool
	CreateEvaluator() Evaluator
	TestForStopCondition(fitness genetics.FitnessInfo) bool
}

// ExperimentFactory is the per-experiment configuration contract the core
// consumes to construct a run (§6).
type ExperimentFactory interface {
	ID() string
	CreateExperiment(ctx context.Context) (*Experiment, error)
}

// Experiment bundles everything CreateExperiment must supply: the
// evaluation scheme plus the model and algorithm settings that together
// determine a run's behavior.
type Experiment struct {
	Scheme EvaluationScheme
	Model  genetics.Model

	PopulationSize          int
	InitialInterconnections float64

	SpeciesCount                  int
	ElitismProportion             float64
	SelectionProportion           float64
	OffspringAsexualProportion    float64
	OffspringSexualProportion     float64
	InterspeciesMatingProportion  float64
	StatisticsMovingAverageLength int

	DistanceMetric          speciation.DistanceMetric
	SpeciationMaxIterations int

	AsexualParams genetics.AsexualParams
	SexualParams  genetics.SexualParams

	ComplexityRegulation ComplexityRegulationStrategy

	DegreeOfParallelism int
}
