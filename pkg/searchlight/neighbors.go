// Package searchlight implements the searchlight RSA pipeline: finding
// spherical voxel neighborhoods in a 3D mask, enumerating valid
// searchlight centers, computing one RDM per center under a memory
// ceiling, and evaluating models against every searchlight RDM in
// parallel.
package searchlight

import (
	"github.com/PuddleJumper2018/rsatoolbox/pkg/volume"
)

// DefaultRadius is the default searchlight sphere radius in voxels.
const DefaultRadius = 3.0

// Neighborhood holds the voxel coordinates of one searchlight sphere as
// parallel per-axis index arrays: voxel i of the neighborhood is
// (X[i], Y[i], Z[i]).
type Neighborhood struct {
	X, Y, Z []int
}

// Len returns the number of voxels in the neighborhood.
func (n Neighborhood) Len() int {
	return len(n.X)
}

// Coord returns the i-th voxel of the neighborhood as a grid coordinate.
func (n Neighborhood) Coord(i int) volume.Coord {
	return volume.Coord{n.X[i], n.Y[i], n.Z[i]}
}

// FlatIndices converts the neighborhood coordinates into linear indices
// into the volume's storage order.
func (n Neighborhood) FlatIndices(vol *volume.Volume) []int {
	flat := make([]int, n.Len())
	for i := range flat {
		flat[i] = vol.FlatIndex(n.Coord(i))
	}
	return flat
}

// Neighbors returns the searchlight neighborhood of center: every
// in-bounds grid coordinate whose Euclidean distance to the center is
// strictly less than radius (in voxels). An axis-aligned bounding box
// prefilter limits the candidates before the exact distance test;
// membership is defined solely by the distance test.
func Neighbors(vol *volume.Volume, center volume.Coord, radius float64) Neighborhood {
	var nb Neighborhood
	lo, hi := boundingBox(vol, center, radius)
	r2 := radius * radius
	for x := lo[0]; x <= hi[0]; x++ {
		dx := float64(x - center[0])
		for y := lo[1]; y <= hi[1]; y++ {
			dy := float64(y - center[1])
			for z := lo[2]; z <= hi[2]; z++ {
				dz := float64(z - center[2])
				if dx*dx+dy*dy+dz*dz < r2 {
					nb.X = append(nb.X, x)
					nb.Y = append(nb.Y, y)
					nb.Z = append(nb.Z, z)
				}
			}
		}
	}
	return nb
}

// boundingBox returns the inclusive per-axis candidate range around
// center: coordinates within radius along each axis, clipped to the
// volume bounds.
func boundingBox(vol *volume.Volume, center volume.Coord, radius float64) (lo, hi volume.Coord) {
	extent := int(radius)
	if float64(extent) == radius {
		// Strict inequality: an integer radius excludes offsets of
		// exactly radius voxels along an axis.
		extent--
	}
	for i := 0; i < 3; i++ {
		lo[i] = center[i] - extent
		if lo[i] < 0 {
			lo[i] = 0
		}
		hi[i] = center[i] + extent
		if hi[i] > vol.Dims[i]-1 {
			hi[i] = vol.Dims[i] - 1
		}
	}
	return lo, hi
}

// sphereSize returns the number of grid offsets within the open ball of
// the given radius, i.e. the neighborhood size of a center far from any
// volume boundary.
func sphereSize(radius float64) int {
	extent := int(radius)
	if float64(extent) == radius {
		extent--
	}
	r2 := radius * radius
	count := 0
	for dx := -extent; dx <= extent; dx++ {
		for dy := -extent; dy <= extent; dy++ {
			for dz := -extent; dz <= extent; dz++ {
				if float64(dx*dx+dy*dy+dz*dz) < r2 {
					count++
				}
			}
		}
	}
	return count
}
