package genetics

import "sync"

// pairKey identifies a structural element by the (source, target) node pair
// it connects; the innovation id assigned to it is shared by every genome
// in the population that independently creates the same pair.
type pairKey struct {
	source, target int
}

// InnovationSequence is the single, process-wide, monotonically increasing
// source of innovation ids described by §3 and §5: "Ids are allocated by a
// single process-wide sequence." It additionally holds the per-generation
// cache keyed by (source, target) so that simultaneous structural mutations
// that create the same pair in different genomes within one generation
// receive the same id (§4.3, §5, §8 invariant 6).
type InnovationSequence struct {
	mu       sync.Mutex
	next     int64
	nodeNext int
	gen      map[pairKey]int64
	splits   map[pairKey]nodeSplit
}

// nodeSplit records the hidden node id and the two innovation ids assigned
// the first time a given (source, target) edge is split by an add-node
// mutation in the current generation.
type nodeSplit struct {
	hiddenID             int
	sourceToHiddenInnov   int64
	hiddenToTargetInnov   int64
}

// NewInnovationSequence creates a sequence starting innovation ids at
// firstInnovationID and hidden-node ids at firstHiddenNodeID.
func NewInnovationSequence(firstInnovationID int64, firstHiddenNodeID int) *InnovationSequence {
	return &InnovationSequence{
		next:     firstInnovationID,
		nodeNext: firstHiddenNodeID,
		gen:      make(map[pairKey]int64),
		splits:   make(map[pairKey]nodeSplit),
	}
}

// ClearGeneration clears the per-generation (source,target)->id cache; the
// evolution loop calls this once at the start of every generation (§5).
func (s *InnovationSequence) ClearGeneration() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen = make(map[pairKey]int64)
	s.splits = make(map[pairKey]nodeSplit)
}

// IDFor returns the innovation id for the structural element (source,
// target), allocating a fresh one from the process-wide sequence the first
// time it is requested within the current generation, and returning the
// cached id for every subsequent request — across goroutines — until the
// next ClearGeneration.
func (s *InnovationSequence) IDFor(source, target int) int64 {
	key := pairKey{source, target}
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.gen[key]; ok {
		return id
	}
	id := s.next
	s.next++
	s.gen[key] = id
	return id
}

// NextNodeID allocates a fresh hidden-node id, atomically with respect to
// concurrent callers.
func (s *InnovationSequence) NextNodeID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nodeNext
	s.nodeNext++
	return id
}

// SplitFor returns the hidden node id and the pair of innovation ids
// assigned to splitting the edge (source, target) into (source, hidden) and
// (hidden, target). The cache is keyed by the original (source, target)
// pair being split, not by the two new pairs it produces, so that two
// genomes splitting the same edge independently within one generation agree
// on the hidden node id as well as both innovation ids (§4.3).
func (s *InnovationSequence) SplitFor(source, target int) (hiddenID int, sourceToHiddenInnov, hiddenToTargetInnov int64) {
	key := pairKey{source, target}
	s.mu.Lock()
	defer s.mu.Unlock()
	if split, ok := s.splits[key]; ok {
		return split.hiddenID, split.sourceToHiddenInnov, split.hiddenToTargetInnov
	}
	hiddenID = s.nodeNext
	s.nodeNext++
	sourceToHiddenInnov = s.next
	s.next++
	hiddenToTargetInnov = s.next
	s.next++
	s.splits[key] = nodeSplit{hiddenID: hiddenID, sourceToHiddenInnov: sourceToHiddenInnov, hiddenToTargetInnov: hiddenToTargetInnov}
	return hiddenID, sourceToHiddenInnov, hiddenToTargetInnov
}
