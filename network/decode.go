package network

import (
	"github.com/kestrelevo/neatcore/graph"
	"github.com/kestrelevo/neatcore/neat/genetics"
	neatmath "github.com/kestrelevo/neatcore/neat/math"
)

// Decode turns a genome's connection genes into an activatable BlackBox
// under model. It builds the underlying directed graph (acyclic or cyclic,
// per model.IsAcyclic), verifies at least one input reaches at least one
// output, and returns ErrNonViableGenome otherwise (§4.5).
func Decode(g *genetics.Genome, model genetics.Model) (BlackBox, error) {
	conns := make([]graph.Connection, len(g.Genes))
	for i, gene := range g.Genes {
		conns[i] = graph.Connection{Source: gene.Source, Target: gene.Target, Weight: gene.Weight}
	}

	if model.IsAcyclic {
		dg, err := graph.NewAcyclic(conns, model.InputCount, model.OutputCount)
		if err != nil {
			return nil, err
		}
		if !hasInputToOutputPath(&dg.DirectedGraph, dg.OutputIndices) {
			return nil, ErrNonViableGenome
		}
		return newAcyclicNetwork(dg, model), nil
	}

	dg, err := graph.NewDirected(conns, model.InputCount, model.OutputCount)
	if err != nil {
		return nil, err
	}
	// Raw (non-remapped) graphs keep input/output ids identical to the
	// caller's own [0, InputCount) / [InputCount, InputCount+OutputCount)
	// ranges, so the output indices are just that contiguous range.
	outputIndices := make([]int, model.OutputCount)
	for k := range outputIndices {
		outputIndices[k] = model.InputCount + k
	}
	if !hasInputToOutputPath(dg, outputIndices) {
		return nil, ErrNonViableGenome
	}
	return newCyclicNetwork(dg, model), nil
}

// hasInputToOutputPath reports whether any node in outputIndices is
// reachable from any input node by following connections forward.
func hasInputToOutputPath(g *graph.DirectedGraph, outputIndices []int) bool {
	isOutput := make(map[int]bool, len(outputIndices))
	for _, idx := range outputIndices {
		isOutput[idx] = true
	}
	visited := make([]bool, g.NodeCount)
	stack := make([]int, 0, g.InputCount)
	for i := 0; i < g.InputCount; i++ {
		stack = append(stack, i)
		visited[i] = true
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if isOutput[n] {
			return true
		}
		start, end := g.OutEdges(n)
		for _, t := range g.TargetIDs[start:end] {
			if !visited[t] {
				visited[t] = true
				stack = append(stack, t)
			}
		}
	}
	return false
}

// activate applies model's configured activation function, falling back to
// the raw input on an unrecognized type (which Options.Validate already
// rules out at configuration time, so this path is unreachable in practice).
func activate(model genetics.Model, x float64) float64 {
	v, err := neatmath.NodeActivators.ActivateByType(x, model.ActivationFunction)
	if err != nil {
		return x
	}
	return v
}
