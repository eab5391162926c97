package rdm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/PuddleJumper2018/rsatoolbox/pkg/data"
)

// CalcRDM computes one RDM per dataset. For each dataset the observation
// rows are grouped and averaged by the named observation descriptor
// (e.g. "events"), and the dissimilarity between every pair of averaged
// condition patterns is computed with the given method. The pair (i, j),
// i < j, is visited in row-major order, matching the condensed vector
// layout used throughout the package.
//
// All datasets must yield the same number of conditions; the resulting
// collection carries the method as its dissimilarity-measure metadata.
func CalcRDM(datasets []*data.Dataset, method Method, descriptor string) (*RDMs, error) {
	if len(datasets) == 0 {
		return nil, fmt.Errorf("at least one dataset is required")
	}
	pairwise, err := provider(method)
	if err != nil {
		return nil, err
	}

	var (
		out   *mat.Dense
		nCond int
	)
	for di, ds := range datasets {
		avg, labels, err := ds.AverageByDescriptor(descriptor)
		if err != nil {
			return nil, fmt.Errorf("dataset %d: %w", di, err)
		}
		if di == 0 {
			nCond = len(labels)
			if nCond < 2 {
				return nil, fmt.Errorf("need at least 2 conditions to compute an RDM, got %d", nCond)
			}
			out = mat.NewDense(len(datasets), nCond*(nCond-1)/2, nil)
		} else if len(labels) != nCond {
			return nil, &ShapeMismatchError{Want: nCond * (nCond - 1) / 2, Got: len(labels) * (len(labels) - 1) / 2}
		}

		k := 0
		row := make([]float64, nCond*(nCond-1)/2)
		for i := 0; i < nCond; i++ {
			for j := i + 1; j < nCond; j++ {
				row[k] = pairwise(avg.RawRowView(i), avg.RawRowView(j))
				k++
			}
		}
		out.SetRow(di, row)
	}

	return New(out, method, nil)
}
