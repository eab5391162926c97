// Package volume provides the 3D volume container used throughout the
// searchlight pipeline. A volume stores voxel values as a flat array in
// row-major order together with its grid dimensions, and converts between
// 3D grid coordinates and flat linear indices.
package volume

import (
	"fmt"
)

// Coord is an integer voxel coordinate (x, y, z) on the volume grid.
type Coord [3]int

// DimensionError reports a volume constructed with the wrong number of
// dimensions. Masks and data volumes must be exactly 3-dimensional.
type DimensionError struct {
	// Got is the number of dimensions that was supplied.
	Got int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("volume must be 3-dimensional, got %d dimensions", e.Got)
}

// Volume represents a 3D voxel volume, typically a binary brain mask.
// Nonzero voxel values denote valid spatial locations.
type Volume struct {
	// Data is the voxel values as a 1D array in row-major order,
	// with the last axis varying fastest.
	Data []float64

	// Dims are the grid dimensions along the x, y and z axes.
	Dims [3]int
}

// New creates a volume from the given dimensions and flat row-major data.
// It returns a DimensionError unless exactly 3 dimensions are supplied,
// and an error if the data length does not match the dimensions.
func New(dims []int, data []float64) (*Volume, error) {
	if len(dims) != 3 {
		return nil, &DimensionError{Got: len(dims)}
	}
	for _, d := range dims {
		if d <= 0 {
			return nil, fmt.Errorf("volume dimensions must be positive, got %v", dims)
		}
	}
	n := dims[0] * dims[1] * dims[2]
	if len(data) != n {
		return nil, fmt.Errorf("volume data length %d does not match dimensions %v (want %d)",
			len(data), dims, n)
	}
	return &Volume{
		Data: data,
		Dims: [3]int{dims[0], dims[1], dims[2]},
	}, nil
}

// Full creates a volume of the given dimensions with every voxel set to
// the same value. Full(dims, 1) is a fully-dense mask.
func Full(dims []int, value float64) (*Volume, error) {
	if len(dims) != 3 {
		return nil, &DimensionError{Got: len(dims)}
	}
	data := make([]float64, dims[0]*dims[1]*dims[2])
	for i := range data {
		data[i] = value
	}
	return New(dims, data)
}

// Len returns the total number of voxels.
func (v *Volume) Len() int {
	return v.Dims[0] * v.Dims[1] * v.Dims[2]
}

// InBounds reports whether c lies on the volume grid.
func (v *Volume) InBounds(c Coord) bool {
	for i := 0; i < 3; i++ {
		if c[i] < 0 || c[i] >= v.Dims[i] {
			return false
		}
	}
	return true
}

// FlatIndex converts a grid coordinate to its linear index into Data.
func (v *Volume) FlatIndex(c Coord) int {
	return (c[0]*v.Dims[1]+c[1])*v.Dims[2] + c[2]
}

// CoordAt converts a linear index into Data back to a grid coordinate.
func (v *Volume) CoordAt(flat int) Coord {
	z := flat % v.Dims[2]
	rest := flat / v.Dims[2]
	y := rest % v.Dims[1]
	x := rest / v.Dims[1]
	return Coord{x, y, z}
}

// At returns the voxel value at c. The caller must ensure c is in bounds.
func (v *Volume) At(c Coord) float64 {
	return v.Data[v.FlatIndex(c)]
}

// Nonzero reports whether the voxel at c has a nonzero value.
func (v *Volume) Nonzero(c Coord) bool {
	return v.At(c) != 0
}

// NonzeroCoords returns the coordinates of all nonzero voxels in storage
// order. For a binary mask these are the valid spatial locations.
func (v *Volume) NonzeroCoords() []Coord {
	var coords []Coord
	for i, val := range v.Data {
		if val != 0 {
			coords = append(coords, v.CoordAt(i))
		}
	}
	return coords
}
