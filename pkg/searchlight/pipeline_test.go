package searchlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/PuddleJumper2018/rsatoolbox/pkg/config"
	"github.com/PuddleJumper2018/rsatoolbox/pkg/rdm"
)

func TestPipeline_Run(t *testing.T) {
	mask := fullMask(t, 5)

	cfg := config.DefaultConfig()
	cfg.Searchlight.Radius = 2
	cfg.RDM.Method = "euclidean"

	// One channel per mask voxel, 8 observations over 2 conditions.
	nChan := mask.Len()
	data2D := mat.NewDense(8, nChan, nil)
	for r := 0; r < 8; r++ {
		for c := 0; c < nChan; c++ {
			val := float64(c)
			if r%2 == 1 {
				val = -val
			}
			data2D.Set(r, c, val)
		}
	}
	events := []int{0, 1, 0, 1, 0, 1, 0, 1}

	p := NewPipeline(cfg, mask)
	slRDMs, err := p.Run(data2D, events)
	require.NoError(t, err)

	assert.Equal(t, 27, slRDMs.N(), "5x5x5 mask at radius 2 keeps the interior centers")
	assert.Equal(t, rdm.Euclidean, slRDMs.Measure())
	assert.Equal(t, p.Centers(), mustDescriptor(t, slRDMs, "voxel_index"))
	assert.Equal(t, 1, p.NumWorkers())
}

func TestPipeline_UnknownMethod(t *testing.T) {
	mask := fullMask(t, 3)
	cfg := config.DefaultConfig()
	cfg.RDM.Method = "mahalanobis"

	p := NewPipeline(cfg, mask)
	_, err := p.Run(mat.NewDense(2, mask.Len(), nil), []int{0, 1})
	assert.Error(t, err)
}

func TestPipeline_NoAcceptedCenters(t *testing.T) {
	// A 3x3x3 mask has no center with a complete radius-3 sphere.
	mask := fullMask(t, 3)

	p := NewPipeline(nil, mask)
	_, err := p.Run(mat.NewDense(2, mask.Len(), nil), []int{0, 1})
	assert.Error(t, err)
}

func mustDescriptor(t *testing.T, r *rdm.RDMs, key string) []int {
	t.Helper()
	vals, ok := r.RowDescriptor(key)
	require.True(t, ok)
	return vals
}
