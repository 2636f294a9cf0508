package neat

import (
	"runtime"

	"github.com/kestrelevo/neatcore/evolution"
	"github.com/kestrelevo/neatcore/neat/genetics"
	"github.com/kestrelevo/neatcore/speciation"
)

func numCPU() int { return runtime.NumCPU() }

// ToExperiment converts a validated Options document plus an evaluation
// scheme (the experiment-specific fitness/stop-condition contract) into the
// Experiment the evolution loop runs. Options must have already passed
// Validate, since ToExperiment relies on ActivationType() being resolved and
// on the defaulting Validate performs (§6).
func (o *Options) ToExperiment(scheme evolution.EvaluationScheme) *evolution.Experiment {
	model := genetics.Model{
		// +1 for the bias neuron at genetics.BiasNodeID, which sits ahead of
		// the scheme's own sensor inputs in the node-id space (§4.2).
		InputCount:            scheme.InputCount() + 1,
		OutputCount:           scheme.OutputCount(),
		IsAcyclic:             o.IsAcyclic,
		CyclesPerActivation:   o.CyclesPerActivation,
		ActivationFunction:    o.ActivationType(),
		ConnectionWeightScale: o.ConnectionWeightScale,
	}

	asexual := genetics.AsexualParams{
		MutateWeightProb:           o.ReproductionAsexual.MutateWeightProb,
		MutateAddNodeProb:          o.ReproductionAsexual.MutateAddNodeProb,
		MutateAddConnectionProb:    o.ReproductionAsexual.MutateAddConnectionProb,
		MutateDeleteConnectionProb: o.ReproductionAsexual.MutateDeleteConnectionProb,
		NewConnectionTries:         o.NewConnectionTries,
	}
	sexual := genetics.SexualParams{
		SecondaryParentGeneProbability: o.ReproductionSexual.SecondaryParentGeneProbability,
	}

	regulation := evolution.ComplexityRegulationStrategy{
		Mode:                         evolution.ComplexityRegulationMode(o.ComplexityRegulation.Mode),
		ComplexityCeiling:            o.ComplexityRegulation.ComplexityCeiling,
		MinSimplificationGenerations: o.ComplexityRegulation.MinSimplificationGenerations,
	}

	dop := o.NeatDegreeOfParallelism(numCPU())
	if o.EpochExecutorType == SequentialExecutorType {
		dop = 1
	}

	return &evolution.Experiment{
		Scheme:                        scheme,
		Model:                         model,
		PopulationSize:                o.PopulationSize,
		InitialInterconnections:       o.InitialInterconnections,
		SpeciesCount:                  o.EvolutionAlgorithm.SpeciesCount,
		ElitismProportion:             o.EvolutionAlgorithm.ElitismProportion,
		SelectionProportion:           o.EvolutionAlgorithm.SelectionProportion,
		OffspringAsexualProportion:    o.EvolutionAlgorithm.OffspringAsexualProportion,
		OffspringSexualProportion:     o.EvolutionAlgorithm.OffspringSexualProportion,
		InterspeciesMatingProportion:  o.EvolutionAlgorithm.InterspeciesMatingProportion,
		StatisticsMovingAverageLength: o.EvolutionAlgorithm.StatisticsMovingAverageLength,
		DistanceMetric:                speciation.DefaultDistanceMetric(),
		SpeciationMaxIterations:       speciation.MaxIterations,
		AsexualParams:                 asexual,
		SexualParams:                  sexual,
		ComplexityRegulation:          regulation,
		DegreeOfParallelism:           dop,
	}
}
