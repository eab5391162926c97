package searchlight

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/PuddleJumper2018/rsatoolbox/internal/chunks"
	"github.com/PuddleJumper2018/rsatoolbox/pkg/data"
	"github.com/PuddleJumper2018/rsatoolbox/pkg/rdm"
)

const (
	// DefaultChunkThreshold is the number of centers above which the
	// RDM builder processes centers in chunks to bound peak memory.
	DefaultChunkThreshold = 1000

	// DefaultChunkCount is the number of chunks the center range is
	// split into when chunking kicks in.
	DefaultChunkCount = 100
)

// Options control the memory policy of ComputeRDMs. Chunking bounds the
// number of per-center datasets materialized at once; it has no effect on
// the computed values.
type Options struct {
	ChunkThreshold int
	ChunkCount     int
}

// Option overrides one field of the default Options.
type Option func(*Options)

// WithChunkThreshold sets the center count above which chunking is used.
func WithChunkThreshold(n int) Option {
	return func(o *Options) { o.ChunkThreshold = n }
}

// WithChunkCount sets the number of chunks used when chunking.
func WithChunkCount(n int) Option {
	return func(o *Options) { o.ChunkCount = n }
}

// ComputeRDMs iterates over all searchlight centers and computes one RDM
// per center.
//
// data2D is the full observation-by-channel measurement matrix. For each
// center a dataset is built from the columns named by that center's
// neighbor indices, tagged with the per-observation event labels, and one
// RDM is computed over it grouped by event (rdm.CalcRDM). centers and
// neighbors must come from Enumerate and be index-aligned.
//
// When the number of centers exceeds the chunk threshold, the center
// range is split into roughly-equal chunks and each chunk's condensed
// rows are accumulated into a preallocated output stack; otherwise all
// centers are processed in a single chunk. Chunk boundaries never affect
// the result, which is always ordered by center.
//
// The returned collection records each center's flat voxel index under
// the "voxel_index" row descriptor and the method as its
// dissimilarity-measure metadata.
func ComputeRDMs(data2D *mat.Dense, centers []int, neighbors [][]int,
	events []int, method rdm.Method, opts ...Option) (*rdm.RDMs, error) {
	o := Options{
		ChunkThreshold: DefaultChunkThreshold,
		ChunkCount:     DefaultChunkCount,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if data2D == nil {
		return nil, fmt.Errorf("observation matrix must not be nil")
	}
	if len(centers) != len(neighbors) {
		return nil, fmt.Errorf("got %d centers but %d neighbor sets; both must come from Enumerate",
			len(centers), len(neighbors))
	}
	if len(centers) == 0 {
		return nil, fmt.Errorf("at least one searchlight center is required")
	}
	nObs, nChan := data2D.Dims()
	if len(events) != nObs {
		return nil, fmt.Errorf("got %d event labels for %d observations", len(events), nObs)
	}

	nCenters := len(centers)
	nCond := len(data.UniqueLabels(events))
	if nCond < 2 {
		return nil, fmt.Errorf("need at least 2 distinct event labels, got %d", nCond)
	}
	nPairs := nCond * (nCond - 1) / 2

	nChunks := 1
	if nCenters > o.ChunkThreshold {
		nChunks = o.ChunkCount
	}

	out := mat.NewDense(nCenters, nPairs, nil)
	logrus.Debugf("calculating %d searchlight RDMs in %d chunk(s)", nCenters, nChunks)
	for _, chunk := range chunks.EvenSplit(nCenters, nChunks) {
		if chunk.Start == chunk.End {
			continue
		}
		centerData := make([]*data.Dataset, 0, chunk.End-chunk.Start)
		for i := chunk.Start; i < chunk.End; i++ {
			ds, err := centerDataset(data2D, nObs, nChan, centers[i], neighbors[i], events)
			if err != nil {
				return nil, fmt.Errorf("center %d (voxel %d): %w", i, centers[i], err)
			}
			centerData = append(centerData, ds)
		}
		chunkRDMs, err := rdm.CalcRDM(centerData, method, "events")
		if err != nil {
			return nil, fmt.Errorf("centers %d-%d: %w", chunk.Start, chunk.End-1, err)
		}
		for i := chunk.Start; i < chunk.End; i++ {
			out.SetRow(i, chunkRDMs.Vectors().RawRowView(i-chunk.Start))
		}
	}

	centersCopy := make([]int, nCenters)
	copy(centersCopy, centers)
	return rdm.New(out, method, map[string][]int{"voxel_index": centersCopy})
}

// centerDataset builds the channel-subset dataset for one searchlight
// center: the columns of data2D at the center's neighbor indices, tagged
// with the event labels and the originating voxel indices.
func centerDataset(data2D *mat.Dense, nObs, nChan int, center int, neighborIdx []int,
	events []int) (*data.Dataset, error) {
	if len(neighborIdx) == 0 {
		return nil, fmt.Errorf("empty neighbor set")
	}
	slice := mat.NewDense(nObs, len(neighborIdx), nil)
	for c, idx := range neighborIdx {
		if idx < 0 || idx >= nChan {
			return nil, fmt.Errorf("neighbor index %d out of range [0, %d)", idx, nChan)
		}
		for r := 0; r < nObs; r++ {
			slice.Set(r, c, data2D.At(r, idx))
		}
	}
	return data.New(slice,
		map[string]int{"center": center},
		map[string][]int{"events": events},
		map[string][]int{"voxels": neighborIdx})
}
