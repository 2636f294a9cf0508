package evolution

import "github.com/kestrelevo/neatcore/neat/genetics"

// ComplexityRegulationMode is the tagged variant of a complexity regulation
// strategy (§4.6).
type ComplexityRegulationMode string

const (
	AbsoluteComplexityRegulation ComplexityRegulationMode = "absolute"
	RelativeComplexityRegulation ComplexityRegulationMode = "relative"
)

// ComplexityRegulationStrategy switches the evolution loop between
// "complexify" mode, where structural mutations are free to grow the
// genome, and "simplify" mode, where they are reweighted to shrink it.
type ComplexityRegulationStrategy struct {
	Mode                         ComplexityRegulationMode
	ComplexityCeiling            float64
	MinSimplificationGenerations int

	simplifying          bool
	simplifyStartedAt    int
	highestMeanObserved  float64
}

// RegulationMode is the closed set a strategy can be in.
type RegulationMode int

const (
	Complexify RegulationMode = iota
	Simplify
)

// Evaluate updates the strategy's internal state from the current
// generation's mean population complexity and reports which mode the
// generation's reproduction should run in (§4.6).
func (s *ComplexityRegulationStrategy) Evaluate(generation int, meanComplexity float64) RegulationMode {
	ceiling := s.ComplexityCeiling
	if s.Mode == RelativeComplexityRegulation {
		ceiling = s.highestMeanObserved + s.ComplexityCeiling
		if meanComplexity > s.highestMeanObserved {
			s.highestMeanObserved = meanComplexity
		}
	}

	if !s.simplifying && meanComplexity > ceiling {
		s.simplifying = true
		s.simplifyStartedAt = generation
	} else if s.simplifying && generation-s.simplifyStartedAt >= s.MinSimplificationGenerations {
		s.simplifying = false
	}

	if s.simplifying {
		return Simplify
	}
	return Complexify
}

// ReweightForSimplify biases asexual mutation probabilities to favor
// delete-connection and forbid add-node entirely: add-node's share and half
// of add-connection's share fold into delete-connection, and the result is
// renormalized to still sum to 1 (§4.6).
func ReweightForSimplify(params genetics.AsexualParams) genetics.AsexualParams {
	addConnection := params.MutateAddConnectionProb * 0.5
	deleteConnection := params.MutateDeleteConnectionProb + params.MutateAddConnectionProb*0.5 + params.MutateAddNodeProb
	total := params.MutateWeightProb + addConnection + deleteConnection
	if total <= 0 {
		return genetics.AsexualParams{MutateDeleteConnectionProb: 1, NewConnectionTries: params.NewConnectionTries}
	}
	return genetics.AsexualParams{
		MutateWeightProb:           params.MutateWeightProb / total,
		MutateAddConnectionProb:    addConnection / total,
		MutateDeleteConnectionProb: deleteConnection / total,
		NewConnectionTries:         params.NewConnectionTries,
	}
}
