// Package graph implements the compact directed-graph kernel that underlies
// the NEAT phenome decoder: a connection-array representation of a directed
// graph (optionally constrained acyclic), cycle detection, and depth-based
// layer assignment for acyclic graphs.
package graph

import (
	"sort"

	"github.com/pkg/errors"
)

// Connection is a single directed, weighted edge as supplied by a caller
// building a graph, expressed in the caller's own node-id space (which need
// not be contiguous — hidden node ids in particular are whatever a genome's
// connection genes happen to reference).
type Connection struct {
	Source int
	Target int
	Weight float64
}

// edge is a Connection after node ids have been remapped to compact,
// zero-based indices.
type edge struct {
	Source int
	Target int
	Weight float64
}

// DirectedGraph is the compact connection-array form of a directed graph:
// parallel arrays sorted by (source, target), plus a CSR-style index giving
// the first connection for each source node in O(1).
type DirectedGraph struct {
	InputCount  int
	OutputCount int
	NodeCount   int

	// SourceIDs, TargetIDs and Weights are parallel and sorted by
	// (SourceIDs[i], TargetIDs[i]).
	SourceIDs []int
	TargetIDs []int
	Weights   []float64

	// FirstConnectionBySource[n] is the index of the first connection whose
	// source is node n; FirstConnectionBySource[NodeCount] is len(SourceIDs).
	FirstConnectionBySource []int
}

// NewDirected builds a DirectedGraph from an arbitrary set of (source,
// target, weight) triples. Hidden-node ids (anything outside
// [0, inputCount+outputCount)) are mapped to compact indices via a dictionary
// keyed by their original id; input and output ids already occupy a
// contiguous range and map to themselves.
func NewDirected(conns []Connection, inputCount, outputCount int) (*DirectedGraph, error) {
	if inputCount < 0 || outputCount < 0 {
		return nil, errors.Errorf("input/output counts must be non-negative, got (%d, %d)", inputCount, outputCount)
	}
	ioCount := inputCount + outputCount

	remap := make(map[int]int)
	nextHiddenIdx := ioCount
	idOf := func(original int) int {
		if original < ioCount {
			return original
		}
		if idx, ok := remap[original]; ok {
			return idx
		}
		idx := nextHiddenIdx
		remap[original] = idx
		nextHiddenIdx++
		return idx
	}

	edges := make([]edge, len(conns))
	for i, c := range conns {
		edges[i] = edge{Source: idOf(c.Source), Target: idOf(c.Target), Weight: c.Weight}
	}
	nodeCount := nextHiddenIdx

	return buildFromCompact(edges, inputCount, outputCount, nodeCount), nil
}

// buildFromCompact builds a DirectedGraph from edges already expressed in a
// compact, zero-based node-id space (no remapping), sorting them by
// (source, target) and building the source index. Shared by NewDirected
// (after it remaps arbitrary caller ids to compact ones) and NewAcyclic
// (which re-derives compact ids via depth ordering and must not have them
// remapped a second time).
func buildFromCompact(edges []edge, inputCount, outputCount, nodeCount int) *DirectedGraph {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})

	g := &DirectedGraph{
		InputCount:  inputCount,
		OutputCount: outputCount,
		NodeCount:   nodeCount,
		SourceIDs:   make([]int, len(edges)),
		TargetIDs:   make([]int, len(edges)),
		Weights:     make([]float64, len(edges)),
	}
	for i, e := range edges {
		g.SourceIDs[i] = e.Source
		g.TargetIDs[i] = e.Target
		g.Weights[i] = e.Weight
	}
	g.buildSourceIndex()
	return g
}

// buildSourceIndex constructs FirstConnectionBySource from the (already
// source-sorted) connection arrays.
func (g *DirectedGraph) buildSourceIndex() {
	g.FirstConnectionBySource = make([]int, g.NodeCount+1)
	conn := 0
	for n := 0; n < g.NodeCount; n++ {
		for conn < len(g.SourceIDs) && g.SourceIDs[conn] < n {
			conn++
		}
		g.FirstConnectionBySource[n] = conn
	}
	g.FirstConnectionBySource[g.NodeCount] = len(g.SourceIDs)
}

// OutEdges returns the [start, end) slice bounds into the connection arrays
// for the out-edges of node n, in O(1).
func (g *DirectedGraph) OutEdges(n int) (start, end int) {
	return g.FirstConnectionBySource[n], g.FirstConnectionBySource[n+1]
}
