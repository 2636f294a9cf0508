package graph

import (
	"sort"

	"github.com/pkg/errors"
)

// LayerInfo gives the node-index and connection-index prefix covered by one
// depth layer of an AcyclicDirectedGraph: layer k spans node indices
// [layerInfo[k-1].EndNodeIndex, layerInfo[k].EndNodeIndex) and, because the
// connection array is sorted by source and node ids are grouped by
// increasing depth, the analogous connection-index range covers exactly the
// out-edges whose source lies in that layer.
type LayerInfo struct {
	EndNodeIndex       int
	EndConnectionIndex int
}

// AcyclicDirectedGraph is a DirectedGraph known to contain no cycle, with
// nodes renumbered so that ids are contiguous and grouped by increasing
// depth, ties broken by original index (so inputs come first, at depth 0;
// outputs are located through OutputIndices), and a LayerInfo table to
// drive a single-pass layered forward evaluation.
type AcyclicDirectedGraph struct {
	DirectedGraph

	// Depth[i] is the depth (longest path from an input) of node i in the
	// remapped id space.
	Depth []int
	// Layers is indexed by depth; Layers[len(Layers)-1].EndNodeIndex == NodeCount.
	Layers []LayerInfo
	// OutputIndices[k] is the remapped node index of the output that
	// originally occupied id InputCount+k. Depth ordering groups nodes by
	// depth, not by input/output role, so a caller reading final output
	// signals back out cannot assume outputs occupy a contiguous range;
	// this is the only reliable way to find them after the remap.
	OutputIndices []int
}

// NewAcyclic builds an AcyclicDirectedGraph from the given connections. The
// caller is expected to guarantee the input is acyclic by construction
// (e.g. genomes produced under an acyclic model whose add-connection
// mutation already rejected cycle-closing edges); this is verified here as
// an assertion, not a recoverable condition.
func NewAcyclic(conns []Connection, inputCount, outputCount int) (*AcyclicDirectedGraph, error) {
	raw, err := NewDirected(conns, inputCount, outputCount)
	if err != nil {
		return nil, err
	}

	detector := NewCycleDetector(raw.NodeCount)
	if detector.HasCycle(raw) {
		return nil, errors.New("graph: NewAcyclic called with a cyclic connection set")
	}

	depth := assignDepths(raw)

	// order := original (raw) node index sorted by (depth, original index)
	order := make([]int, raw.NodeCount)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return depth[order[i]] < depth[order[j]]
	})

	newIndexOf := make([]int, raw.NodeCount)
	for newIdx, oldIdx := range order {
		newIndexOf[oldIdx] = newIdx
	}

	remappedEdges := make([]edge, len(raw.SourceIDs))
	for i := range raw.SourceIDs {
		remappedEdges[i] = edge{
			Source: newIndexOf[raw.SourceIDs[i]],
			Target: newIndexOf[raw.TargetIDs[i]],
			Weight: raw.Weights[i],
		}
	}
	// Connections already reference compact ids [0, NodeCount), grouped by
	// increasing depth; buildFromCompact only sorts by (source, target) and
	// builds the index, it does not reassign ids, so the depth ordering
	// survives.
	final := buildFromCompact(remappedEdges, inputCount, outputCount, raw.NodeCount)

	remappedDepth := make([]int, raw.NodeCount)
	for oldIdx, d := range depth {
		remappedDepth[newIndexOf[oldIdx]] = d
	}

	outputIndices := make([]int, outputCount)
	for k := 0; k < outputCount; k++ {
		outputIndices[k] = newIndexOf[inputCount+k]
	}

	g := &AcyclicDirectedGraph{
		DirectedGraph: *final,
		Depth:         remappedDepth,
		OutputIndices: outputIndices,
	}
	g.Layers = buildLayers(g)
	return g, nil
}

// assignDepths computes, for every node in raw's id space, the longest path
// length from any input node: inputs have depth 0, and every other node's
// depth is 1 + max(depth(source)) over its incoming edges. Computed by
// repeated relaxation over the connection list, which converges in at most
// NodeCount passes since the graph is acyclic.
func assignDepths(raw *DirectedGraph) []int {
	depth := make([]int, raw.NodeCount)
	for changed := true; changed; {
		changed = false
		for i := range raw.SourceIDs {
			s, t := raw.SourceIDs[i], raw.TargetIDs[i]
			if want := depth[s] + 1; want > depth[t] {
				depth[t] = want
				changed = true
			}
		}
	}
	return depth
}

// buildLayers groups g's (already depth-ordered) nodes and (already
// source-sorted) connections into per-depth prefixes.
func buildLayers(g *AcyclicDirectedGraph) []LayerInfo {
	maxDepth := 0
	for _, d := range g.Depth {
		if d > maxDepth {
			maxDepth = d
		}
	}

	layers := make([]LayerInfo, maxDepth+1)
	nodeIdx, connIdx := 0, 0
	for layer := 0; layer <= maxDepth; layer++ {
		for nodeIdx < g.NodeCount && g.Depth[nodeIdx] == layer {
			nodeIdx++
		}
		for connIdx < len(g.SourceIDs) && g.Depth[g.SourceIDs[connIdx]] == layer {
			connIdx++
		}
		layers[layer] = LayerInfo{EndNodeIndex: nodeIdx, EndConnectionIndex: connIdx}
	}
	return layers
}
