package genetics

import (
	"sort"

	"github.com/pkg/errors"

	neatmath "github.com/kestrelevo/neatcore/neat/math"
)

// Model holds the population-wide constants that are immutable for the
// lifetime of a run (§3).
//
// InputCount counts the bias neuron along with the evaluation scheme's real
// sensor inputs: node id BiasNodeID (0) is always the bias neuron, held at
// 1.0 by the caller rather than supplied by a sensor, and ids
// [1, InputCount) are the scheme's real inputs (§4.2). A caller building a
// Model from an EvaluationScheme's InputCount must add one for the bias
// neuron.
type Model struct {
	InputCount            int
	OutputCount           int
	IsAcyclic             bool
	CyclesPerActivation   int
	ActivationFunction    neatmath.NodeActivationType
	ConnectionWeightScale float64
}

// BiasNodeID is the node id reserved for the bias neuron, which always
// occupies index 0 of a model's input range (§4.2).
const BiasNodeID = 0

// NodeIOCount is the number of node ids occupied by inputs and outputs
// combined; hidden-node ids start here.
func (m Model) NodeIOCount() int {
	return m.InputCount + m.OutputCount
}

// FitnessInfo is a primary fitness value plus optional auxiliary measures.
type FitnessInfo struct {
	Primary   float64
	Auxiliary []float64
}

// FitnessComparer totally orders FitnessInfo values: negative if a is worse
// than b, zero if equivalent, positive if a is better than b.
type FitnessComparer func(a, b FitnessInfo) int

// ByPrimaryFitnessAscending is the default FitnessComparer: higher primary
// fitness is better.
func ByPrimaryFitnessAscending(a, b FitnessInfo) int {
	switch {
	case a.Primary < b.Primary:
		return -1
	case a.Primary > b.Primary:
		return 1
	default:
		return 0
	}
}

// Genome is an ordered list of connection genes plus identity and fitness
// metadata; it is immutable once created (§3). Node ids are implicit:
// input nodes occupy ids [0, InputCount) (id BiasNodeID being the bias
// neuron), output nodes occupy [InputCount, InputCount+OutputCount), and
// any other id appearing as a gene's source or target is a hidden node.
type Genome struct {
	ID              int64
	BirthGeneration int
	Genes           []Gene
	Fitness         *FitnessInfo
	Complexity      int
}

// NewGenome constructs a Genome from genes, which must already be sorted by
// ascending innovation id with no duplicates (§8 invariant 1). The slice is
// copied defensively so the genome is safe to treat as immutable.
func NewGenome(id int64, birthGeneration int, genes []Gene) (*Genome, error) {
	owned := make([]Gene, len(genes))
	copy(owned, genes)
	if err := validateGeneOrder(owned); err != nil {
		return nil, err
	}
	return &Genome{
		ID:              id,
		BirthGeneration: birthGeneration,
		Genes:           owned,
		Complexity:      len(owned),
	}, nil
}

func validateGeneOrder(genes []Gene) error {
	for i := 1; i < len(genes); i++ {
		if genes[i].InnovationID <= genes[i-1].InnovationID {
			return errors.Errorf(
				"connection genes must be strictly sorted by innovation id with no duplicates, found %d after %d at index %d",
				genes[i].InnovationID, genes[i-1].InnovationID, i)
		}
	}
	return nil
}

// SortGenes sorts a gene slice in place by ascending innovation id. Callers
// building a fresh gene list (mutation, crossover, initial population)
// accumulate in arbitrary order and sort once before constructing the
// Genome.
func SortGenes(genes []Gene) {
	sort.Slice(genes, func(i, j int) bool { return genes[i].InnovationID < genes[j].InnovationID })
}

// HasConnection reports whether genes already contains a gene between
// source and target.
func HasConnection(genes []Gene, source, target int) bool {
	for _, g := range genes {
		if g.Source == source && g.Target == target {
			return true
		}
	}
	return false
}

// HiddenNodes returns the set of node ids referenced by genes that fall
// outside the input/output range — derived on demand, never stored (§3).
func HiddenNodes(genes []Gene, model Model) map[int]struct{} {
	io := model.NodeIOCount()
	hidden := make(map[int]struct{})
	for _, g := range genes {
		if g.Source >= io {
			hidden[g.Source] = struct{}{}
		}
		if g.Target >= io {
			hidden[g.Target] = struct{}{}
		}
	}
	return hidden
}

// ClampWeight enforces |weight| <= scale (§8 invariant 3).
func ClampWeight(weight, scale float64) float64 {
	switch {
	case weight > scale:
		return scale
	case weight < -scale:
		return -scale
	default:
		return weight
	}
}
