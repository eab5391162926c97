package searchlight

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/PuddleJumper2018/rsatoolbox/pkg/volume"
)

// DefaultThreshold is the default fill threshold: the full sphere must
// lie within the mask.
const DefaultThreshold = 1.0

// ErrCenterNeighborMismatch signals a defect in the enumerator itself:
// the number of accepted centers diverged from the number of accepted
// neighbor sets.
var ErrCenterNeighborMismatch = errors.New("number of centers and sets of neighbors do not match")

// Enumerate searches through the nonzero voxels of the mask and selects
// searchlight centers whose sphere is sufficiently covered by the mask.
//
// Every nonzero voxel is a candidate center. Its neighborhood (Neighbors)
// is computed and the candidate is accepted if the fraction of the full
// sphere that is both inside the volume and nonzero in the mask is at
// least threshold. Candidates failing the threshold are skipped silently;
// thresholds below 1.0 intentionally admit partial spheres near the mask
// boundary. Centers whose neighborhood is empty are always rejected.
//
// The accepted centers and their neighborhoods are returned as flat
// linear indices into the mask's storage order, ready for indexing into
// flattened observation-by-channel data.
func Enumerate(mask *volume.Volume, radius, threshold float64) (centers []int, neighbors [][]int, err error) {
	if threshold < 0 || threshold > 1 {
		return nil, nil, fmt.Errorf("fill threshold must be in [0.0, 1.0], got %g", threshold)
	}

	candidates := mask.NonzeroCoords()
	logrus.Debugf("finding searchlights among %d candidate centers (radius=%g, threshold=%g)",
		len(candidates), radius, threshold)

	full := sphereSize(radius)
	var (
		goodCenters   []volume.Coord
		goodNeighbors []Neighborhood
	)
	for _, center := range candidates {
		nb := Neighbors(mask, center, radius)
		if nb.Len() == 0 {
			continue
		}
		inMask := 0
		for i := 0; i < nb.Len(); i++ {
			if mask.Nonzero(nb.Coord(i)) {
				inMask++
			}
		}
		if float64(inMask)/float64(full) >= threshold {
			goodCenters = append(goodCenters, center)
			goodNeighbors = append(goodNeighbors, nb)
		}
	}

	if len(goodCenters) != len(goodNeighbors) {
		return nil, nil, fmt.Errorf("%w: %d centers, %d neighbor sets",
			ErrCenterNeighborMismatch, len(goodCenters), len(goodNeighbors))
	}
	logrus.Infof("found %d searchlights", len(goodCenters))

	centers = make([]int, len(goodCenters))
	neighbors = make([][]int, len(goodNeighbors))
	for i, c := range goodCenters {
		centers[i] = mask.FlatIndex(c)
		neighbors[i] = goodNeighbors[i].FlatIndices(mask)
	}
	return centers, neighbors, nil
}
