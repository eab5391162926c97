package rdm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// NCondFromVectorLength recovers the number of conditions n from a
// condensed vector of length l = n*(n-1)/2 via the closed-form triangular
// inverse n = ceil(sqrt(2l)). The relation must hold exactly; a
// MalformedVectorError is returned otherwise.
func NCondFromVectorLength(l int) (int, error) {
	if l <= 0 {
		return 0, &MalformedVectorError{Length: l}
	}
	n := int(math.Ceil(math.Sqrt(float64(2 * l))))
	if n*(n-1)/2 != l {
		return 0, &MalformedVectorError{Length: l}
	}
	return n, nil
}

// VectorsToMatrices converts a condensed stack of shape n_rdm x
// n_cond*(n_cond-1)/2 into full matrix form. Each returned matrix is
// symmetric with a zero diagonal, reconstructed from the condensed upper
// triangle in row-major order. It also returns the inferred n_rdm and
// n_cond.
func VectorsToMatrices(v *mat.Dense) ([]*mat.SymDense, int, int, error) {
	nRDM, l := v.Dims()
	nCond, err := NCondFromVectorLength(l)
	if err != nil {
		return nil, 0, 0, err
	}
	ms := make([]*mat.SymDense, nRDM)
	for idx := 0; idx < nRDM; idx++ {
		row := v.RawRowView(idx)
		m := mat.NewSymDense(nCond, nil)
		k := 0
		for i := 0; i < nCond; i++ {
			for j := i + 1; j < nCond; j++ {
				m.SetSym(i, j, row[k])
				k++
			}
		}
		ms[idx] = m
	}
	return ms, nRDM, nCond, nil
}

// MatricesToVectors converts a stack of full symmetric zero-diagonal
// matrices into condensed vector form, dropping the lower triangle and
// diagonal and visiting the upper triangle in row-major order. All
// matrices must share the same order. It also returns n_rdm and n_cond.
func MatricesToVectors(ms []*mat.SymDense) (*mat.Dense, int, int, error) {
	nRDM := len(ms)
	if nRDM == 0 {
		return nil, 0, 0, fmt.Errorf("matrix stack must not be empty")
	}
	nCond := ms[0].SymmetricDim()
	if nCond < 2 {
		return nil, 0, 0, fmt.Errorf("RDM order must be at least 2, got %d", nCond)
	}
	l := nCond * (nCond - 1) / 2
	v := mat.NewDense(nRDM, l, nil)
	for idx, m := range ms {
		if m.SymmetricDim() != nCond {
			return nil, 0, 0, &ShapeMismatchError{Want: nCond, Got: m.SymmetricDim()}
		}
		k := 0
		row := make([]float64, l)
		for i := 0; i < nCond; i++ {
			for j := i + 1; j < nCond; j++ {
				row[k] = m.At(i, j)
				k++
			}
		}
		v.SetRow(idx, row)
	}
	return v, nRDM, nCond, nil
}
