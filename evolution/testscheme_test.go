package evolution

import (
	"github.com/kestrelevo/neatcore/neat/genetics"
	"github.com/kestrelevo/neatcore/network"
)

// fakeScheme is a minimal EvaluationScheme used to exercise the evolution
// loop without pulling in a real evaluation domain.
type fakeScheme struct {
	stopAt float64
}

func (fakeScheme) InputCount() int            { return 2 }
func (fakeScheme) OutputCount() int           { return 1 }
func (fakeScheme) IsDeterministic() bool       { return true }
func (fakeScheme) FitnessComparer() genetics.FitnessComparer { return fitnessComparer }
func (fakeScheme) NullFitness() genetics.FitnessInfo         { return genetics.FitnessInfo{Primary: 0} }
func (fakeScheme) EvaluatorsHaveState() bool                 { return false }
func (fakeScheme) CreateEvaluator() Evaluator                { return fakeEvaluator{} }
func (s fakeScheme) TestForStopCondition(fitness genetics.FitnessInfo) bool {
	return fitness.Primary >= s.stopAt
}

// fakeEvaluator scores a phenome by how close its single output sits to 1
// for a fixed input pair, a cheap deterministic stand-in for a real fitness
// landscape.
type fakeEvaluator struct{}

func (fakeEvaluator) Evaluate(phenome network.BlackBox) (genetics.FitnessInfo, error) {
	phenome.Reset()
	in := phenome.InputsBuffer()
	in[0], in[1] = 1, 1
	if err := phenome.Activate(); err != nil {
		return genetics.FitnessInfo{}, err
	}
	out := phenome.OutputsBuffer()[0]
	diff := out - 1
	if diff < 0 {
		diff = -diff
	}
	return genetics.FitnessInfo{Primary: 1 / (1 + diff)}, nil
}

// statefulFakeEvaluator records how many times it evaluated, used to assert
// that a pooled (stateful) evaluator is reused across a partition's genomes.
type statefulFakeEvaluator struct {
	calls int
}

func (e *statefulFakeEvaluator) Evaluate(phenome network.BlackBox) (genetics.FitnessInfo, error) {
	e.calls++
	phenome.Reset()
	in := phenome.InputsBuffer()
	for i := range in {
		in[i] = 0.5
	}
	if err := phenome.Activate(); err != nil {
		return genetics.FitnessInfo{}, err
	}
	return genetics.FitnessInfo{Primary: phenome.OutputsBuffer()[0]}, nil
}

// statefulScheme reports EvaluatorsHaveState() == true, driving the loop's
// pooled-evaluator path; onCreate fires once per evaluator constructed.
type statefulScheme struct {
	onCreate func()
}

func (statefulScheme) InputCount() int                                      { return 2 }
func (statefulScheme) OutputCount() int                                     { return 1 }
func (statefulScheme) IsDeterministic() bool                                { return true }
func (statefulScheme) FitnessComparer() genetics.FitnessComparer            { return fitnessComparer }
func (statefulScheme) NullFitness() genetics.FitnessInfo                    { return genetics.FitnessInfo{Primary: 0} }
func (statefulScheme) EvaluatorsHaveState() bool                            { return true }
func (s statefulScheme) CreateEvaluator() Evaluator {
	if s.onCreate != nil {
		s.onCreate()
	}
	return &statefulFakeEvaluator{}
}
func (statefulScheme) TestForStopCondition(fitness genetics.FitnessInfo) bool { return false }
