package network

import (
	"github.com/kestrelevo/neatcore/graph"
	"github.com/kestrelevo/neatcore/neat/genetics"
)

// acyclicNetwork evaluates a feedforward genome in a single pass: nodes are
// numbered so that every connection's source has a strictly lower depth
// than its target, so processing layers in increasing depth order and
// activating a node only once all of its incoming layers have already
// contributed is sufficient to fully settle the network (§4.5).
type acyclicNetwork struct {
	g     *graph.AcyclicDirectedGraph
	model genetics.Model

	inputs  []float64
	outputs []float64
	signals []float64
}

func newAcyclicNetwork(g *graph.AcyclicDirectedGraph, model genetics.Model) *acyclicNetwork {
	n := &acyclicNetwork{
		g:       g,
		model:   model,
		inputs:  make([]float64, model.InputCount),
		outputs: make([]float64, model.OutputCount),
		signals: make([]float64, g.NodeCount),
	}
	// Default the bias slot to 1.0 so a caller that forgets to set it still
	// gets a correctly biased network, mirroring the teacher's LoadSensors
	// fallback ("use default BIAS value") in network.go.
	n.inputs[genetics.BiasNodeID] = 1.0
	return n
}

func (n *acyclicNetwork) InputsBuffer() []float64 { return n.inputs }

func (n *acyclicNetwork) OutputsBuffer() []float64 { return n.outputs }

// MaxActivationDepth reports this network's longest input-to-output path via
// the gonum-backed graph diagnostic.
func (n *acyclicNetwork) MaxActivationDepth() int { return n.g.MaxActivationDepth() }

func (n *acyclicNetwork) Reset() {
	for i := range n.signals {
		n.signals[i] = 0
	}
}

// Activate processes connections layer by layer, in increasing depth order.
// On reaching a layer, every node in it has already received all of its
// incoming contributions from lower layers, so it is activated exactly once;
// only then do that layer's out-edges add their (now settled) weighted
// source signals into their targets' running sums.
func (n *acyclicNetwork) Activate() error {
	// Every non-input signal must start this pass at zero: accumulation
	// below uses +=, so a stale value left over from a prior Activate call
	// would silently double-count a node's incoming contributions.
	for i := n.model.InputCount; i < len(n.signals); i++ {
		n.signals[i] = 0
	}
	copy(n.signals[:n.model.InputCount], n.inputs)

	connIdx := 0
	for layer, info := range n.g.Layers {
		// Depth 0 holds the inputs plus any node with no incoming
		// connection; none of them is passed through the activation function.
		if layer > 0 {
			for node := n.g.Layers[layer-1].EndNodeIndex; node < info.EndNodeIndex; node++ {
				if node < n.model.InputCount {
					continue
				}
				n.signals[node] = activate(n.model, n.signals[node])
			}
		}
		for ; connIdx < info.EndConnectionIndex; connIdx++ {
			source := n.g.SourceIDs[connIdx]
			target := n.g.TargetIDs[connIdx]
			n.signals[target] += n.signals[source] * n.g.Weights[connIdx]
		}
	}
	for k, idx := range n.g.OutputIndices {
		n.outputs[k] = n.signals[idx]
	}
	return nil
}
