// Package genetics implements the genome representation and the asexual
// and sexual reproduction operators that mutate and recombine it.
package genetics

import "fmt"

// Gene is a connection gene: the tuple (innovation id, source, target,
// weight) that is the atomic unit of a genome's connectivity.
type Gene struct {
	InnovationID int64
	Source       int
	Target       int
	Weight       float64
}

// NewGene constructs a connection gene.
func NewGene(innovationID int64, source, target int, weight float64) Gene {
	return Gene{InnovationID: innovationID, Source: source, Target: target, Weight: weight}
}

func (g Gene) String() string {
	return fmt.Sprintf("[Gene #%d: %d -> %d, weight=%.4f]", g.InnovationID, g.Source, g.Target, g.Weight)
}
