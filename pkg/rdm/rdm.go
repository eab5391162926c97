// Package rdm provides representational dissimilarity matrices (RDMs):
// a collection type holding a batch of RDMs in condensed vector form,
// conversion between condensed and full matrix representations, and the
// computation of RDMs from condition-grouped datasets.
package rdm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// RDMs is a batch of representational dissimilarity matrices sharing the
// same number of conditions. The dissimilarities are stored in condensed
// vector form, one row per RDM, together with the dissimilarity measure
// and per-row descriptors such as the originating searchlight center.
type RDMs struct {
	dissimilarities *mat.Dense
	nCond           int
	measure         Method
	rowDescriptors  map[string][]int
}

// New creates an RDM collection from a condensed dissimilarity stack of
// shape n_rdm x n_cond*(n_cond-1)/2. Every row descriptor must have one
// entry per RDM. A MalformedVectorError is returned if the condensed
// width is not a valid triangular number.
func New(dissimilarities *mat.Dense, measure Method, rowDescriptors map[string][]int) (*RDMs, error) {
	if dissimilarities == nil {
		return nil, fmt.Errorf("dissimilarities must not be nil")
	}
	rows, cols := dissimilarities.Dims()
	nCond, err := NCondFromVectorLength(cols)
	if err != nil {
		return nil, err
	}
	for key, vals := range rowDescriptors {
		if len(vals) != rows {
			return nil, fmt.Errorf("rdm descriptor %q has %d entries, want %d (one per rdm)",
				key, len(vals), rows)
		}
	}
	return &RDMs{
		dissimilarities: dissimilarities,
		nCond:           nCond,
		measure:         measure,
		rowDescriptors:  rowDescriptors,
	}, nil
}

// N returns the number of RDMs in the collection.
func (r *RDMs) N() int {
	n, _ := r.dissimilarities.Dims()
	return n
}

// NCond returns the number of conditions each RDM compares.
func (r *RDMs) NCond() int {
	return r.nCond
}

// NPairs returns the condensed vector width n_cond*(n_cond-1)/2.
func (r *RDMs) NPairs() int {
	_, p := r.dissimilarities.Dims()
	return p
}

// Measure returns the dissimilarity measure the collection was computed
// with.
func (r *RDMs) Measure() Method {
	return r.measure
}

// Vectors returns the condensed dissimilarity stack. The returned matrix
// is the collection's backing storage and must not be modified.
func (r *RDMs) Vectors() *mat.Dense {
	return r.dissimilarities
}

// Matrices returns the full symmetric zero-diagonal matrix form of every
// RDM in the collection.
func (r *RDMs) Matrices() []*mat.SymDense {
	ms, _, _, _ := VectorsToMatrices(r.dissimilarities)
	return ms
}

// RowDescriptor returns the named per-row descriptor, e.g. "voxel_index".
func (r *RDMs) RowDescriptor(key string) ([]int, bool) {
	vals, ok := r.rowDescriptors[key]
	return vals, ok
}

// Subset returns the one-RDM sub-collection at row i, with row
// descriptors sliced accordingly. It is the iteration primitive used to
// hand single searchlight RDMs to model evaluation.
func (r *RDMs) Subset(i int) (*RDMs, error) {
	n := r.N()
	if i < 0 || i >= n {
		return nil, fmt.Errorf("rdm index %d out of range [0, %d)", i, n)
	}
	row := mat.NewDense(1, r.NPairs(), nil)
	row.SetRow(0, r.dissimilarities.RawRowView(i))
	descs := make(map[string][]int, len(r.rowDescriptors))
	for key, vals := range r.rowDescriptors {
		descs[key] = []int{vals[i]}
	}
	return New(row, r.measure, descs)
}

// CheckEqualWidth verifies that two RDM collections share the same
// condensed-vector width, i.e. compare the same number of conditions.
// It returns a ShapeMismatchError otherwise.
func CheckEqualWidth(a, b *RDMs) error {
	if a.NPairs() != b.NPairs() {
		return &ShapeMismatchError{Want: a.NPairs(), Got: b.NPairs()}
	}
	return nil
}
