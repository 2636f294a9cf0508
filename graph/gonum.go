package graph

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
)

// This file adapts DirectedGraph to gonum's graph.Directed and
// graph.Weighted interfaces, the same role network_graph.go plays for the
// teacher's Network type — it lets a caller run gonum's graph algorithms
// (shortest path, topological sort, connectivity) over a decoded phenome's
// wiring for diagnostics, without this package depending on gonum for its
// own logic.

type node int64

func (n node) ID() int64 { return int64(n) }

// nodeIterator is a minimal graph.Nodes implementation over a materialized
// slice, mirroring the teacher's nodesIterator in network_graph.go.
type nodeIterator struct {
	nodes []graph.Node
	index int
	curr  graph.Node
}

func newNodeIterator(nodes []graph.Node) graph.Nodes {
	return &nodeIterator{nodes: nodes}
}

func (it *nodeIterator) Next() bool {
	if it.index < len(it.nodes) {
		it.curr = it.nodes[it.index]
		it.index++
		return true
	}
	it.curr = nil
	return false
}

func (it *nodeIterator) Len() int        { return len(it.nodes) - it.index }
func (it *nodeIterator) Node() graph.Node { return it.curr }
func (it *nodeIterator) Reset()          { it.index = 0; it.curr = nil }

// Node returns the node with the given ID, or nil if it is out of range.
func (g *DirectedGraph) Node(id int64) graph.Node {
	if id < 0 || id >= int64(g.NodeCount) {
		return nil
	}
	return node(id)
}

// Nodes returns all nodes in the graph.
func (g *DirectedGraph) Nodes() graph.Nodes {
	nodes := make([]graph.Node, g.NodeCount)
	for i := 0; i < g.NodeCount; i++ {
		nodes[i] = node(i)
	}
	return newNodeIterator(nodes)
}

// From returns all nodes reachable directly from the node with the given ID.
func (g *DirectedGraph) From(id int64) graph.Nodes {
	if id < 0 || id >= int64(g.NodeCount) {
		return graph.Empty
	}
	start, end := g.OutEdges(int(id))
	nodes := make([]graph.Node, 0, end-start)
	for i := start; i < end; i++ {
		nodes = append(nodes, node(g.TargetIDs[i]))
	}
	return newNodeIterator(nodes)
}

// HasEdgeBetween reports whether an edge exists between xid and yid,
// disregarding direction.
func (g *DirectedGraph) HasEdgeBetween(xid, yid int64) bool {
	return g.weightBetween(xid, yid) != nil || g.weightBetween(yid, xid) != nil
}

// HasEdgeFromTo reports whether a directed edge exists from uid to vid.
func (g *DirectedGraph) HasEdgeFromTo(uid, vid int64) bool {
	return g.weightBetween(uid, vid) != nil
}

// To returns all nodes that have a direct edge to the node with the given ID.
func (g *DirectedGraph) To(id int64) graph.Nodes {
	var nodes []graph.Node
	for i := range g.SourceIDs {
		if int64(g.TargetIDs[i]) == id {
			nodes = append(nodes, node(g.SourceIDs[i]))
		}
	}
	return newNodeIterator(nodes)
}

// Edge returns the edge from u to v, if any.
func (g *DirectedGraph) Edge(uid, vid int64) graph.Edge {
	return g.WeightedEdge(uid, vid)
}

// WeightedEdge returns the weighted edge from u to v, if any.
func (g *DirectedGraph) WeightedEdge(uid, vid int64) graph.WeightedEdge {
	w := g.weightBetween(uid, vid)
	if w == nil {
		return nil
	}
	return simpleWeightedEdge{from: node(uid), to: node(vid), weight: *w}
}

// Weight returns the weight of the edge between x and y, if one exists.
func (g *DirectedGraph) Weight(xid, yid int64) (w float64, ok bool) {
	if v := g.weightBetween(xid, yid); v != nil {
		return *v, true
	}
	return 0, false
}

func (g *DirectedGraph) weightBetween(uid, vid int64) *float64 {
	if uid < 0 || uid >= int64(g.NodeCount) {
		return nil
	}
	start, end := g.OutEdges(int(uid))
	for i := start; i < end; i++ {
		if int64(g.TargetIDs[i]) == vid {
			w := g.Weights[i]
			return &w
		}
	}
	return nil
}

// MaxActivationDepth returns the length (in nodes) of the longest shortest
// path from any input node to any output node, the diagnostic the teacher's
// maxActivationDepth computes over a decoded Network via path.JohnsonAllPaths
// (network.go), falling back to path.FloydWarshall when a connection-weight
// cycle is negative and Johnson's algorithm refuses to run. Connection
// weights double as edge weights here exactly as they do for the teacher's
// Network, so the "shortest" path by weight is not necessarily the fewest
// hops; this mirrors the teacher's own diagnostic rather than a textbook
// hop-count BFS.
func (g *DirectedGraph) MaxActivationDepth() int {
	allPaths, ok := path.JohnsonAllPaths(g)
	if !ok {
		allPaths, _ = path.FloydWarshall(g)
	}
	max := 0
	for in := 0; in < g.InputCount; in++ {
		for out := g.InputCount; out < g.InputCount+g.OutputCount; out++ {
			paths, _ := allPaths.AllBetween(int64(in), int64(out))
			for _, p := range paths {
				if l := len(p); l > max {
					max = l
				}
			}
		}
	}
	return max
}

type simpleWeightedEdge struct {
	from, to node
	weight   float64
}

func (e simpleWeightedEdge) From() graph.Node         { return e.from }
func (e simpleWeightedEdge) To() graph.Node           { return e.to }
func (e simpleWeightedEdge) ReversedEdge() graph.Edge { return simpleWeightedEdge{e.to, e.from, e.weight} }
func (e simpleWeightedEdge) Weight() float64          { return e.weight }
