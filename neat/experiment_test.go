package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelevo/neatcore/evolution"
	"github.com/kestrelevo/neatcore/neat/genetics"
	"github.com/kestrelevo/neatcore/network"
)

type stubScheme struct{}

func (stubScheme) InputCount() int                                   { return 3 }
func (stubScheme) OutputCount() int                                  { return 2 }
func (stubScheme) IsDeterministic() bool                             { return true }
func (stubScheme) FitnessComparer() genetics.FitnessComparer         { return func(a, b genetics.FitnessInfo) int { return 0 } }
func (stubScheme) NullFitness() genetics.FitnessInfo                 { return genetics.FitnessInfo{} }
func (stubScheme) EvaluatorsHaveState() bool                         { return false }
func (stubScheme) CreateEvaluator() evolution.Evaluator              { return stubEvaluator{} }
func (stubScheme) TestForStopCondition(genetics.FitnessInfo) bool    { return false }

type stubEvaluator struct{}

func (stubEvaluator) Evaluate(network.BlackBox) (genetics.FitnessInfo, error) {
	return genetics.FitnessInfo{}, nil
}

func TestToExperiment_carriesModelShapeFromScheme(t *testing.T) {
	o := validOptions()
	require.NoError(t, o.Validate())

	exp := o.ToExperiment(stubScheme{})
	// stubScheme reports 3 real inputs; ToExperiment adds one more for the
	// bias neuron at genetics.BiasNodeID (§4.2).
	assert.Equal(t, 4, exp.Model.InputCount)
	assert.Equal(t, 2, exp.Model.OutputCount)
	assert.Equal(t, o.IsAcyclic, exp.Model.IsAcyclic)
	assert.Equal(t, o.ConnectionWeightScale, exp.Model.ConnectionWeightScale)
}

func TestToExperiment_carriesAlgorithmSettingsThrough(t *testing.T) {
	o := validOptions()
	require.NoError(t, o.Validate())

	exp := o.ToExperiment(stubScheme{})
	assert.Equal(t, o.PopulationSize, exp.PopulationSize)
	assert.Equal(t, o.EvolutionAlgorithm.SpeciesCount, exp.SpeciesCount)
	assert.Equal(t, o.EvolutionAlgorithm.ElitismProportion, exp.ElitismProportion)
	assert.Equal(t, o.ReproductionAsexual.MutateWeightProb, exp.AsexualParams.MutateWeightProb)
	assert.Equal(t, o.ReproductionSexual.SecondaryParentGeneProbability, exp.SexualParams.SecondaryParentGeneProbability)
}

func TestToExperiment_degreeOfParallelismResolvesMinusOne(t *testing.T) {
	o := validOptions()
	o.DegreeOfParallelism = -1
	require.NoError(t, o.Validate())

	exp := o.ToExperiment(stubScheme{})
	assert.GreaterOrEqual(t, exp.DegreeOfParallelism, 1)
}
