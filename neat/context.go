package neat

import (
	"context"
	"errors"
)

// ErrOptionsNotFound describes a context with no Options value attached.
// FromContext does not return it; it reports absence through its bool result.
var ErrOptionsNotFound = errors.New("NEAT options not found in the context")

// key is an unexported type for keys defined in this package, to prevent
// collisions with keys defined in other packages using context.Context.
type key int

var optionsKey key

// NewContext returns a new Context carrying opts.
func NewContext(ctx context.Context, opts *Options) context.Context {
	return context.WithValue(ctx, optionsKey, opts)
}

// FromContext returns the Options value stored in ctx, if any.
func FromContext(ctx context.Context) (*Options, bool) {
	o, ok := ctx.Value(optionsKey).(*Options)
	return o, ok
}
