package neat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext_roundTripsOptions(t *testing.T) {
	opts := &Options{PopulationSize: 42}
	ctx := NewContext(context.Background(), opts)

	got, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, opts, got)
}

func TestContext_fromContextWithoutOptionsReturnsFalse(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
}
