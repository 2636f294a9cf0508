package network

import (
	"github.com/kestrelevo/neatcore/graph"
	"github.com/kestrelevo/neatcore/neat/genetics"
)

// cyclicNetwork evaluates a potentially recurrent genome by double-buffered
// relaxation: every connection reads from the previous step's settled
// signals and writes into the next step's buffer, so that the step as a
// whole does not observe partial updates from itself. Repeating this for
// model.CyclesPerActivation steps approximates a settled activation wave
// without requiring the graph to be acyclic (§4.5).
type cyclicNetwork struct {
	g     *graph.DirectedGraph
	model genetics.Model

	inputs  []float64
	outputs []float64

	current []float64
	next    []float64
}

func newCyclicNetwork(g *graph.DirectedGraph, model genetics.Model) *cyclicNetwork {
	n := &cyclicNetwork{
		g:       g,
		model:   model,
		inputs:  make([]float64, model.InputCount),
		outputs: make([]float64, model.OutputCount),
		current: make([]float64, g.NodeCount),
		next:    make([]float64, g.NodeCount),
	}
	// Default the bias slot to 1.0 so a caller that forgets to set it still
	// gets a correctly biased network, mirroring the teacher's LoadSensors
	// fallback ("use default BIAS value") in network.go.
	n.inputs[genetics.BiasNodeID] = 1.0
	return n
}

func (n *cyclicNetwork) InputsBuffer() []float64  { return n.inputs }
func (n *cyclicNetwork) OutputsBuffer() []float64 { return n.outputs }

// MaxActivationDepth reports this network's longest input-to-output path via
// the gonum-backed graph diagnostic.
func (n *cyclicNetwork) MaxActivationDepth() int { return n.g.MaxActivationDepth() }

func (n *cyclicNetwork) Reset() {
	for i := range n.current {
		n.current[i] = 0
		n.next[i] = 0
	}
}

// Activate runs model.CyclesPerActivation relaxation steps. Every step,
// inputs are re-asserted (a sensor's value is constant for the duration of
// one activation), every other node's next-buffer entry accumulates
// weighted contributions from the current buffer's signals and is then
// passed through the activation function, and the two buffers are swapped.
func (n *cyclicNetwork) Activate() error {
	copy(n.current[:n.model.InputCount], n.inputs)

	cycles := n.model.CyclesPerActivation
	if cycles <= 0 {
		cycles = 1
	}
	for step := 0; step < cycles; step++ {
		for i := range n.next {
			n.next[i] = 0
		}
		for i := range n.g.SourceIDs {
			source := n.g.SourceIDs[i]
			target := n.g.TargetIDs[i]
			n.next[target] += n.current[source] * n.g.Weights[i]
		}
		for node := n.model.NodeIOCount(); node < n.g.NodeCount; node++ {
			n.next[node] = activate(n.model, n.next[node])
		}
		for node := n.model.InputCount; node < n.model.NodeIOCount(); node++ {
			n.next[node] = activate(n.model, n.next[node])
		}
		copy(n.next[:n.model.InputCount], n.inputs)
		n.current, n.next = n.next, n.current
	}

	copy(n.outputs, n.current[n.model.InputCount:n.model.NodeIOCount()])
	return nil
}
