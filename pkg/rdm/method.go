package rdm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Method is the dissimilarity measure used to compare a pair of
// condition-averaged channel patterns.
type Method int

const (
	// Euclidean is the squared Euclidean distance normalized by the
	// number of channels.
	Euclidean Method = iota

	// Correlation is the Pearson correlation distance, 1 - r.
	Correlation

	// Cosine is the cosine distance, 1 - cos(a, b).
	Cosine
)

// String returns the canonical lower-case name of the method, matching
// the dissimilarity-measure metadata stored on RDM collections.
func (m Method) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Correlation:
		return "correlation"
	case Cosine:
		return "cosine"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseMethod converts a method name into its Method value.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "euclidean":
		return Euclidean, nil
	case "correlation":
		return Correlation, nil
	case "cosine":
		return Cosine, nil
	default:
		return 0, fmt.Errorf("unknown dissimilarity method %q", name)
	}
}

// pairwiseFunc computes the scalar dissimilarity between two
// condition-averaged channel patterns of equal length.
type pairwiseFunc func(a, b []float64) float64

// provider returns the pairwise dissimilarity function for the method.
func provider(m Method) (pairwiseFunc, error) {
	switch m {
	case Euclidean:
		return euclideanDistance, nil
	case Correlation:
		return correlationDistance, nil
	case Cosine:
		return cosineDistance, nil
	default:
		return nil, fmt.Errorf("unsupported dissimilarity method: %v", m)
	}
}

func euclideanDistance(a, b []float64) float64 {
	diff := make([]float64, len(a))
	floats.SubTo(diff, a, b)
	return floats.Dot(diff, diff) / float64(len(a))
}

func correlationDistance(a, b []float64) float64 {
	return 1 - stat.Correlation(a, b, nil)
}

func cosineDistance(a, b []float64) float64 {
	norm := math.Sqrt(floats.Dot(a, a) * floats.Dot(b, b))
	return 1 - floats.Dot(a, b)/norm
}
