package genetics

import (
	"math/rand"

	"github.com/pkg/errors"
)

// AsexualParams bundles the configuration an asexual reproduction call needs
// from neat.Options, re-expressed in this package's own types so that
// genetics does not import neat (which would create an import cycle, since
// neat imports genetics to build a Model in ToExperiment).
type AsexualParams struct {
	MutateWeightProb           float64
	MutateAddNodeProb          float64
	MutateAddConnectionProb    float64
	MutateDeleteConnectionProb float64
	NewConnectionTries         int
}

// weightMutationStrategy is the closed set of ways an existing connection's
// weight can be perturbed, selected uniformly each time weight mutation is
// chosen so that a population experiences a mix of small jiggles and
// occasional wholesale reinitialization (grounded on the teacher's
// mutateLinkWeights, which alternates gentle and "severe" passes).
type weightMutationStrategy int

const (
	jiggleSubset weightMutationStrategy = iota
	jiggleAll
	reinitializeSubset
)

// weightMutationPower is the standard deviation of the Gaussian perturbation
// applied to a connection weight under the jiggle strategies.
const weightMutationPower = 2.5

// weightMutationProportion is the fraction of connections touched by a
// "subset" strategy.
const weightMutationProportion = 0.25

// MutateAsexual applies exactly one structural or weight mutation operator
// to parent, chosen by roulette over params' four probabilities, and returns
// the resulting offspring genome (§4.3). The parent is left unmodified.
func MutateAsexual(parent *Genome, model Model, generation int, offspringID int64, innovations *InnovationSequence, params AsexualParams, rng *rand.Rand) (*Genome, error) {
	genes := make([]Gene, len(parent.Genes))
	copy(genes, parent.Genes)

	roll := rng.Float64()
	switch {
	case roll < params.MutateWeightProb:
		mutateWeights(genes, model.ConnectionWeightScale, rng)
	case roll < params.MutateWeightProb+params.MutateAddNodeProb:
		genes = mutateAddNode(genes, model, generation, innovations, rng)
	case roll < params.MutateWeightProb+params.MutateAddNodeProb+params.MutateAddConnectionProb:
		genes = mutateAddConnection(genes, model, innovations, params.NewConnectionTries, rng)
	default:
		genes = mutateDeleteConnection(genes, rng)
	}

	SortGenes(genes)
	return NewGenome(offspringID, generation, genes)
}

// mutateWeights perturbs connection weights in place according to one of
// the three weight-mutation strategies, clamping every touched weight to
// the model's connection weight scale (§8 invariant 3).
func mutateWeights(genes []Gene, scale float64, rng *rand.Rand) {
	if len(genes) == 0 {
		return
	}
	strategy := weightMutationStrategy(rng.Intn(3))
	for i := range genes {
		switch strategy {
		case jiggleAll:
			genes[i].Weight = ClampWeight(genes[i].Weight+rng.NormFloat64()*weightMutationPower, scale)
		case jiggleSubset:
			if rng.Float64() < weightMutationProportion {
				genes[i].Weight = ClampWeight(genes[i].Weight+rng.NormFloat64()*weightMutationPower, scale)
			}
		case reinitializeSubset:
			if rng.Float64() < weightMutationProportion {
				genes[i].Weight = ClampWeight(rng.NormFloat64()*weightMutationPower, scale)
			}
		}
	}
}

// mutateAddNode splits a randomly chosen existing connection gene (s, t, w)
// into a new hidden node h and two genes (s, h, 1.0) and (h, t, w), with
// both innovation ids and the hidden node id allocated from the
// per-generation split cache (§4.3).
func mutateAddNode(genes []Gene, model Model, generation int, innovations *InnovationSequence, rng *rand.Rand) []Gene {
	if len(genes) == 0 {
		return genes
	}
	picked := genes[rng.Intn(len(genes))]

	hiddenID, innovSourceToHidden, innovHiddenToTarget := innovations.SplitFor(picked.Source, picked.Target)

	out := make([]Gene, 0, len(genes)+2)
	for _, g := range genes {
		if g.Source == picked.Source && g.Target == picked.Target {
			continue
		}
		out = append(out, g)
	}
	out = append(out,
		NewGene(innovSourceToHidden, picked.Source, hiddenID, 1.0),
		NewGene(innovHiddenToTarget, hiddenID, picked.Target, picked.Weight),
	)
	return out
}

// mutateAddConnection attempts to add a single new connection gene between
// a uniformly random ordered pair of existing node ids, retrying up to
// maxTries times when the candidate pair already exists, is a self-loop, or
// would close a cycle in an acyclic model. It leaves genes unchanged if no
// viable candidate is found within the retry budget (§4.3, §7: a
// retry-exhausted mutation returns the parent unchanged rather than
// aborting the generation).
func mutateAddConnection(genes []Gene, model Model, innovations *InnovationSequence, maxTries int, rng *rand.Rand) []Gene {
	if maxTries <= 0 {
		maxTries = 20
	}
	nodes := candidateNodeIDs(genes, model)
	if len(nodes) < 2 {
		return genes
	}

	for try := 0; try < maxTries; try++ {
		source := nodes[rng.Intn(len(nodes))]
		target := nodes[rng.Intn(len(nodes))]
		if source == target {
			continue
		}
		// Output nodes never act as a source and input nodes never act as a
		// target; both ranges are reserved by the implicit node-id layout.
		if target < model.InputCount {
			continue
		}
		if source >= model.InputCount && source < model.NodeIOCount() && isOutputOnlySource(source, model) {
			continue
		}
		if HasConnection(genes, source, target) {
			continue
		}
		if model.IsAcyclic && wouldCreateCycle(genes, source, target) {
			continue
		}

		innovationID := innovations.IDFor(source, target)
		weight := (rng.Float64()*2 - 1) * model.ConnectionWeightScale
		out := make([]Gene, len(genes), len(genes)+1)
		copy(out, genes)
		out = append(out, NewGene(innovationID, source, target, weight))
		return out
	}
	return genes
}

// isOutputOnlySource reports whether id falls in the output range, which
// may not originate a connection.
func isOutputOnlySource(id int, model Model) bool {
	return id >= model.InputCount && id < model.NodeIOCount()
}

// candidateNodeIDs lists every node id currently reachable as either end of
// a connection: all inputs and outputs plus every hidden node already
// referenced by genes. A freshly minimized genome with no hidden nodes
// still offers every input/output pair as a candidate.
func candidateNodeIDs(genes []Gene, model Model) []int {
	ids := make([]int, 0, model.NodeIOCount()+len(genes))
	for i := 0; i < model.NodeIOCount(); i++ {
		ids = append(ids, i)
	}
	for id := range HiddenNodes(genes, model) {
		ids = append(ids, id)
	}
	return ids
}

// wouldCreateCycle reports whether adding the edge (source, target) to the
// graph described by genes would create a cycle. It walks forward from
// target and checks whether source is reachable, the same test
// graph.CycleDetector.WouldCreateCycle performs, but directly over a
// gene-list adjacency map since mutation-time node ids are not compacted
// into the contiguous index space the graph package's kernel requires.
func wouldCreateCycle(genes []Gene, source, target int) bool {
	if source == target {
		return true
	}
	adjacency := make(map[int][]int, len(genes))
	for _, g := range genes {
		adjacency[g.Source] = append(adjacency[g.Source], g.Target)
	}

	visited := make(map[int]bool)
	stack := []int{target}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == source {
			return true
		}
		if visited[n] {
			continue
		}
		visited[n] = true
		stack = append(stack, adjacency[n]...)
	}
	return false
}

// mutateDeleteConnection removes a single uniformly random connection gene.
// It is a no-op on a genome with no genes or exactly one gene, since a
// phenome decoder must have at least one path from input to output to be
// viable and this operator has no way to know whether the remaining gene
// is load-bearing; the decoder's own non-viable-genome handling (§4.5) is
// the backstop if removal produces a disconnected genome anyway.
func mutateDeleteConnection(genes []Gene, rng *rand.Rand) []Gene {
	if len(genes) <= 1 {
		return genes
	}
	drop := rng.Intn(len(genes))
	out := make([]Gene, 0, len(genes)-1)
	for i, g := range genes {
		if i == drop {
			continue
		}
		out = append(out, g)
	}
	return out
}

// ErrNoViableOperator describes an AsexualParams whose four probabilities
// sum to zero. Nothing in this module returns it: MutateAsexual's roulette
// always falls through to delete-connection, and Options.Validate rejects
// such settings with its own sum-to-1 error.
var ErrNoViableOperator = errors.New("asexual reproduction settings select no mutation operator")
