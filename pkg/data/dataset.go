// Package data provides the dataset container for neural/behavioral
// measurements together with descriptor bookkeeping and observation
// grouping. A dataset couples a 2D measurement matrix (observations by
// channels) with descriptors at the dataset, observation and channel level.
package data

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Dataset holds a 2D measurement matrix of shape n_observations x
// n_channels plus descriptor maps. Measurements are read-only once the
// dataset is constructed.
type Dataset struct {
	// Measurements is the observation-by-channel data matrix.
	Measurements *mat.Dense

	// Descriptors are dataset-level annotations, e.g. the flat voxel
	// index of the searchlight center the dataset was sliced for.
	Descriptors map[string]int

	// ObsDescriptors annotate each observation row, e.g. the condition
	// or event label of each measurement.
	ObsDescriptors map[string][]int

	// ChannelDescriptors annotate each channel column, e.g. the flat
	// voxel indices the columns were taken from.
	ChannelDescriptors map[string][]int
}

// New creates a dataset and validates that every observation descriptor
// has one entry per matrix row and every channel descriptor one entry per
// matrix column.
func New(measurements *mat.Dense, descriptors map[string]int,
	obsDescriptors, channelDescriptors map[string][]int) (*Dataset, error) {
	if measurements == nil {
		return nil, fmt.Errorf("dataset measurements must not be nil")
	}
	rows, cols := measurements.Dims()
	for key, vals := range obsDescriptors {
		if len(vals) != rows {
			return nil, fmt.Errorf("obs descriptor %q has %d entries, want %d (one per observation)",
				key, len(vals), rows)
		}
	}
	for key, vals := range channelDescriptors {
		if len(vals) != cols {
			return nil, fmt.Errorf("channel descriptor %q has %d entries, want %d (one per channel)",
				key, len(vals), cols)
		}
	}
	return &Dataset{
		Measurements:       measurements,
		Descriptors:        descriptors,
		ObsDescriptors:     obsDescriptors,
		ChannelDescriptors: channelDescriptors,
	}, nil
}

// NumObs returns the number of observation rows.
func (ds *Dataset) NumObs() int {
	r, _ := ds.Measurements.Dims()
	return r
}

// NumChannels returns the number of channel columns.
func (ds *Dataset) NumChannels() int {
	_, c := ds.Measurements.Dims()
	return c
}

// AverageByDescriptor averages the observation rows that share the same
// value of the named observation descriptor. It returns one averaged row
// per distinct label, ordered by ascending label value, together with
// the ordered labels themselves.
func (ds *Dataset) AverageByDescriptor(key string) (*mat.Dense, []int, error) {
	labels, ok := ds.ObsDescriptors[key]
	if !ok {
		return nil, nil, fmt.Errorf("dataset has no observation descriptor %q", key)
	}

	unique := UniqueLabels(labels)
	rows, cols := ds.Measurements.Dims()
	avg := mat.NewDense(len(unique), cols, nil)

	for gi, label := range unique {
		count := 0
		sum := make([]float64, cols)
		for r := 0; r < rows; r++ {
			if labels[r] != label {
				continue
			}
			count++
			row := ds.Measurements.RawRowView(r)
			for c := 0; c < cols; c++ {
				sum[c] += row[c]
			}
		}
		for c := 0; c < cols; c++ {
			sum[c] /= float64(count)
		}
		avg.SetRow(gi, sum)
	}
	return avg, unique, nil
}

// UniqueLabels returns the distinct values of labels in ascending order.
func UniqueLabels(labels []int) []int {
	seen := make(map[int]struct{}, len(labels))
	var unique []int
	for _, l := range labels {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			unique = append(unique, l)
		}
	}
	sort.Ints(unique)
	return unique
}
