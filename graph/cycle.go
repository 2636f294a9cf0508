package graph

// CycleDetector performs depth-first cycle detection over a DirectedGraph
// using an explicit integer stack, reusing its scratch bitmaps across calls.
// It is not thread-safe: concurrent callers (e.g. parallel mutation workers)
// must each own their own instance.
type CycleDetector struct {
	ancestor []bool // nodes on the current DFS path
	visited  []bool // nodes whose subtree has been fully explored
	nodeStk  []int  // node at each stack frame
	edgeStk  []int  // next out-edge index to explore for that frame
}

// NewCycleDetector returns a detector with scratch space pre-sized for
// nodeCount nodes. The bitmaps are sized to the next power of two >=
// nodeCount, per the reuse convention described for this component.
func NewCycleDetector(nodeCount int) *CycleDetector {
	d := &CycleDetector{}
	d.reset(nodeCount)
	return d
}

func nextPow2(n int) int {
	if n < 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func (d *CycleDetector) reset(nodeCount int) {
	size := nextPow2(nodeCount)
	if cap(d.ancestor) < size {
		d.ancestor = make([]bool, size)
		d.visited = make([]bool, size)
	} else {
		d.ancestor = d.ancestor[:size]
		d.visited = d.visited[:size]
		for i := range d.ancestor {
			d.ancestor[i] = false
			d.visited[i] = false
		}
	}
	d.nodeStk = d.nodeStk[:0]
	d.edgeStk = d.edgeStk[:0]
}

// HasCycle returns whether g contains any directed cycle.
func (d *CycleDetector) HasCycle(g *DirectedGraph) bool {
	d.reset(g.NodeCount)
	for start := 0; start < g.NodeCount; start++ {
		if d.visited[start] {
			continue
		}
		if d.dfs(g, start) {
			return true
		}
	}
	return false
}

// dfs runs an iterative depth-first traversal rooted at start, returning true
// as soon as an ancestor (a node currently on the path) is reached again.
func (d *CycleDetector) dfs(g *DirectedGraph, start int) bool {
	d.nodeStk = append(d.nodeStk, start)
	startIdx, _ := g.OutEdges(start)
	d.edgeStk = append(d.edgeStk, startIdx)
	d.ancestor[start] = true

	for len(d.nodeStk) > 0 {
		top := len(d.nodeStk) - 1
		node := d.nodeStk[top]
		_, end := g.OutEdges(node)

		if d.edgeStk[top] >= end {
			// subtree fully explored
			d.ancestor[node] = false
			d.visited[node] = true
			d.nodeStk = d.nodeStk[:top]
			d.edgeStk = d.edgeStk[:top]
			continue
		}

		next := g.TargetIDs[d.edgeStk[top]]
		d.edgeStk[top]++

		if d.ancestor[next] {
			return true
		}
		if d.visited[next] {
			continue
		}
		s, _ := g.OutEdges(next)
		d.nodeStk = append(d.nodeStk, next)
		d.edgeStk = append(d.edgeStk, s)
		d.ancestor[next] = true
	}
	return false
}

// WouldCreateCycle is the acyclic cycle test used by add-connection mutation
// when the model is constrained acyclic: it reports whether adding the edge
// (source, target) to g would close a cycle, without actually adding it.
//
// A self-loop is always cyclic. Otherwise this searches forward from target;
// reaching source means the new edge would close a path back to itself.
func (d *CycleDetector) WouldCreateCycle(g *DirectedGraph, source, target int) bool {
	if source == target {
		return true
	}
	d.reset(g.NodeCount)
	return d.reaches(g, target, source)
}

// reaches reports whether target is reachable from start via a forward DFS,
// using the instance's visited bitmap (ancestor is unused for this query).
func (d *CycleDetector) reaches(g *DirectedGraph, start, target int) bool {
	d.nodeStk = append(d.nodeStk, start)
	s, _ := g.OutEdges(start)
	d.edgeStk = append(d.edgeStk, s)
	d.visited[start] = true

	for len(d.nodeStk) > 0 {
		top := len(d.nodeStk) - 1
		node := d.nodeStk[top]
		_, end := g.OutEdges(node)

		if d.edgeStk[top] >= end {
			d.nodeStk = d.nodeStk[:top]
			d.edgeStk = d.edgeStk[:top]
			continue
		}

		next := g.TargetIDs[d.edgeStk[top]]
		d.edgeStk[top]++

		if next == target {
			return true
		}
		if d.visited[next] {
			continue
		}
		d.visited[next] = true
		ns, _ := g.OutEdges(next)
		d.nodeStk = append(d.nodeStk, next)
		d.edgeStk = append(d.edgeStk, ns)
	}
	return false
}
