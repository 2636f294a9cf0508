package evolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluatorPool_getConstructsLazily(t *testing.T) {
	built := 0
	pool := NewEvaluatorPool(func() Evaluator { built++; return fakeEvaluator{} }, 2)
	pool.Get()
	pool.Get()
	assert.Equal(t, 2, built)
}

func TestEvaluatorPool_releaseMakesEvaluatorReusable(t *testing.T) {
	built := 0
	pool := NewEvaluatorPool(func() Evaluator { built++; return fakeEvaluator{} }, 2)
	e := pool.Get()
	pool.Release(e)
	pool.Get()
	assert.Equal(t, 1, built, "a released evaluator must be handed back out instead of constructing a new one")
}

func TestEvaluatorPool_releaseBeyondMaxSizeIsDropped(t *testing.T) {
	pool := NewEvaluatorPool(func() Evaluator { return fakeEvaluator{} }, 1)
	pool.Release(fakeEvaluator{})
	pool.Release(fakeEvaluator{})
	// Draining twice must not panic or return a zero value beyond capacity;
	// the second Release above should have been silently dropped.
	pool.Get()
	built := 0
	pool2 := NewEvaluatorPool(func() Evaluator { built++; return fakeEvaluator{} }, 1)
	pool2.Release(fakeEvaluator{})
	pool2.Release(fakeEvaluator{})
	pool2.Get()
	pool2.Get()
	assert.Equal(t, 1, built, "only one slot was ever retained")
}
