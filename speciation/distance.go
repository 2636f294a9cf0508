// Package speciation implements genetic k-means clustering of genomes: a
// distance metric over connection-gene vectors, k-means++ seeding, and the
// iterative reallocation loop that assigns genomes to species each
// generation.
package speciation

import (
	"math"

	"github.com/kestrelevo/neatcore/neat/genetics"
)

// MetricKind selects how per-gene weight differences are accumulated into a
// single distance value.
type MetricKind int

const (
	// Manhattan sums absolute weight differences.
	Manhattan MetricKind = iota
	// Euclidean sums squared weight differences and takes the square root.
	Euclidean
)

// DistanceMetric configures genetic distance between two gene vectors: a
// coefficient applied to genes both genomes share (by innovation id), one
// applied to disjoint genes (missing from one genome but within the other's
// innovation-id range), and one applied to excess genes (missing and beyond
// the other's highest innovation id). The provided default sets all three
// coefficients to 1, which collapses the formula to a plain Manhattan (or
// Euclidean) sum over the union of innovation ids with an implicit zero
// weight for a missing gene (§4.5).
type DistanceMetric struct {
	Kind           MetricKind
	MatchingCoef   float64
	DisjointCoef   float64
	ExcessCoef     float64
}

// DefaultDistanceMetric is the metric used when a run does not configure
// one explicitly.
func DefaultDistanceMetric() DistanceMetric {
	return DistanceMetric{Kind: Manhattan, MatchingCoef: 1, DisjointCoef: 1, ExcessCoef: 1}
}

// Distance computes the genetic distance between two gene vectors, walking
// both (already innovation-id sorted) slices with a merge-style two-pointer
// scan. A gene present only in one vector is disjoint if its innovation id
// is less than or equal to the other vector's highest innovation id, and
// excess otherwise.
func Distance(a, b []genetics.Gene, metric DistanceMetric) float64 {
	maxA, maxB := highestInnovation(a), highestInnovation(b)

	var total float64
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i >= len(a):
			total += term(b[j].Weight, 0, coefFor(b[j].InnovationID, maxA, metric), metric.Kind)
			j++
		case j >= len(b):
			total += term(a[i].Weight, 0, coefFor(a[i].InnovationID, maxB, metric), metric.Kind)
			i++
		case a[i].InnovationID == b[j].InnovationID:
			total += term(a[i].Weight, b[j].Weight, metric.MatchingCoef, metric.Kind)
			i++
			j++
		case a[i].InnovationID < b[j].InnovationID:
			total += term(a[i].Weight, 0, coefFor(a[i].InnovationID, maxB, metric), metric.Kind)
			i++
		default:
			total += term(b[j].Weight, 0, coefFor(b[j].InnovationID, maxA, metric), metric.Kind)
			j++
		}
	}

	if metric.Kind == Euclidean {
		return math.Sqrt(total)
	}
	return total
}

func highestInnovation(genes []genetics.Gene) int64 {
	if len(genes) == 0 {
		return -1
	}
	return genes[len(genes)-1].InnovationID
}

// coefFor returns the disjoint or excess coefficient for an unmatched gene,
// depending on whether its innovation id falls within the other vector's
// range.
func coefFor(innovationID int64, otherMax int64, metric DistanceMetric) float64 {
	if innovationID <= otherMax {
		return metric.DisjointCoef
	}
	return metric.ExcessCoef
}

// term computes one gene's contribution to the running distance total: the
// weighted absolute difference for Manhattan, or the weighted squared
// difference for Euclidean (the caller takes the overall square root once
// after summing every term).
func term(w1, w2, coef float64, kind MetricKind) float64 {
	if coef == 0 {
		return 0
	}
	d := w1 - w2
	if kind == Euclidean {
		return coef * d * d
	}
	if d < 0 {
		d = -d
	}
	return coef * d
}
