// Package network implements the phenome decoder: turning a genome's flat
// connection gene list into an activatable black box, either by a
// single-pass layered evaluation (acyclic models) or iterative relaxation
// over a fixed number of cycles (cyclic models).
package network

import "github.com/pkg/errors"

// BlackBox is the phenotype contract every decoded genome satisfies: load
// input values, run one activation, and read output values back out. It
// mirrors the teacher's network.Solver interface, narrowed to the four
// methods this system's evolution loop actually drives.
type BlackBox interface {
	// InputsBuffer returns the buffer the caller writes input values into
	// before calling Activate. Its length equals the model's InputCount,
	// which reserves index 0 (the bias neuron) for a signal the caller
	// must set to 1.0; the scheme's real sensor values occupy indices
	// [1, InputCount) (§4.2).
	InputsBuffer() []float64
	// OutputsBuffer returns the buffer Activate writes output values into.
	// Its length equals the model's OutputCount.
	OutputsBuffer() []float64
	// Activate propagates one activation wave through the network,
	// consuming whatever is currently in InputsBuffer and leaving results
	// in OutputsBuffer.
	Activate() error
	// Reset clears all internal node state (but not InputsBuffer), so the
	// same BlackBox can be reused across unrelated activation trials
	// without carrying over signal from a previous trial.
	Reset()
}

// DepthReporter is implemented by phenomes that can report their maximal
// activation depth: the longest shortest path, by connection weight, from
// any input node to any output node, a diagnostic mirroring the teacher's
// maxActivationDepth (network.go). Both of Decode's phenome types implement
// it; a caller that needs it type-asserts the BlackBox Decode returns.
type DepthReporter interface {
	MaxActivationDepth() int
}

// ErrNonViableGenome is returned by Decode when a genome has no connection
// path from any input to any output, making it impossible to evaluate
// (§4.5). The evolution loop treats this as a null-fitness assignment
// rather than an aborting error (§7).
var ErrNonViableGenome = errors.New("genome has no path from any input to any output")
