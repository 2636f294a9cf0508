package evolution

import "sync"

// EvaluatorPool is a bounded stack of stateful evaluators: Get pops one
// (constructing a fresh one whenever the stack is empty), Release pushes it
// back unless the stack already holds maxSize evaluators. One evaluator is held per partition for
// the duration of that partition's work, so contention is negligible
// (§4.6, §5).
type EvaluatorPool struct {
	mu      sync.Mutex
	stack   []Evaluator
	create  func() Evaluator
	maxSize int
	created int
}

// NewEvaluatorPool returns a pool that lazily constructs evaluators via
// create and retains at most maxSize of them for reuse.
func NewEvaluatorPool(create func() Evaluator, maxSize int) *EvaluatorPool {
	return &EvaluatorPool{create: create, maxSize: maxSize}
}

// Get pops an evaluator off the stack, constructing a new one if the stack
// is currently empty.
func (p *EvaluatorPool) Get() Evaluator {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.stack); n > 0 {
		e := p.stack[n-1]
		p.stack = p.stack[:n-1]
		return e
	}
	p.created++
	return p.create()
}

// Release pushes e back onto the stack for reuse by the next partition that
// calls Get. A release beyond maxSize is dropped rather than grown without
// bound.
func (p *EvaluatorPool) Release(e Evaluator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.maxSize > 0 && len(p.stack) >= p.maxSize {
		return
	}
	p.stack = append(p.stack, e)
}
