// Package xor defines the XOR evaluation scheme: because XOR is not
// linearly separable, a network needs at least one hidden unit to solve it,
// which makes it a good minimal check that topology actually evolves.
package xor

import (
	"math"

	"github.com/kestrelevo/neatcore/evolution"
	"github.com/kestrelevo/neatcore/neat/genetics"
	"github.com/kestrelevo/neatcore/network"
)

// inputXOROne and inputXORTwo are the InputsBuffer indices of the two real
// XOR inputs; index genetics.BiasNodeID (0) is reserved for the bias signal
// (§4.2), so the real sensors start at 1.
const (
	inputXOROne = genetics.BiasNodeID + 1
	inputXORTwo = genetics.BiasNodeID + 2
)

// fitnessThreshold is the primary fitness value above which a genome counts
// as a solved XOR solver.
const fitnessThreshold = 15.5

// patterns is the four XOR input combinations.
var patterns = [4][2]float64{
	{0, 0},
	{0, 1},
	{1, 0},
	{1, 1},
}

var expected = [4]float64{0, 1, 1, 0}

// Scheme implements evolution.EvaluationScheme for the XOR problem: two
// inputs, one output, a deterministic fitness landscape, and evaluators that
// carry no state across calls.
type Scheme struct{}

// InputCount is the two real XOR inputs; the bias neuron is added on top of
// this by Options.ToExperiment when it builds the genetics.Model (§4.2).
func (Scheme) InputCount() int      { return 2 }
func (Scheme) OutputCount() int     { return 1 }
func (Scheme) IsDeterministic() bool { return true }

func (Scheme) FitnessComparer() genetics.FitnessComparer {
	return func(a, b genetics.FitnessInfo) int {
		switch {
		case a.Primary > b.Primary:
			return 1
		case a.Primary < b.Primary:
			return -1
		default:
			return 0
		}
	}
}

func (Scheme) NullFitness() genetics.FitnessInfo { return genetics.FitnessInfo{Primary: 0} }

func (Scheme) EvaluatorsHaveState() bool { return false }

func (Scheme) CreateEvaluator() evolution.Evaluator { return evaluator{} }

func (Scheme) TestForStopCondition(fitness genetics.FitnessInfo) bool {
	return fitness.Primary > fitnessThreshold
}

// evaluator activates a phenome on all four XOR patterns and scores it by
// how close its four outputs land to the expected truth table, mirroring
// the teacher's XOR fitness function: fitness = (4 - sum(|error|))^2, so a
// perfect solver scores 16.
type evaluator struct{}

func (evaluator) Evaluate(phenome network.BlackBox) (genetics.FitnessInfo, error) {
	var errorSum float64
	for i, in := range patterns {
		phenome.Reset()
		buf := phenome.InputsBuffer()
		buf[genetics.BiasNodeID] = 1.0
		buf[inputXOROne], buf[inputXORTwo] = in[0], in[1]
		if err := phenome.Activate(); err != nil {
			return genetics.FitnessInfo{}, err
		}
		errorSum += math.Abs(expected[i] - phenome.OutputsBuffer()[0])
	}
	fitness := math.Pow(4.0-errorSum, 2.0)
	return genetics.FitnessInfo{Primary: fitness}, nil
}
