package chunks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvenSplit_CoversRangeWithoutOverlap(t *testing.T) {
	cases := []struct{ n, k int }{
		{10, 3}, {100, 7}, {1001, 100}, {5, 5}, {3, 10}, {0, 4}, {7, 1},
	}
	for _, tc := range cases {
		ranges := EvenSplit(tc.n, tc.k)
		require.Len(t, ranges, max(tc.k, 1))

		next := 0
		for _, r := range ranges {
			assert.Equal(t, next, r.Start, "n=%d k=%d", tc.n, tc.k)
			assert.GreaterOrEqual(t, r.End, r.Start)
			next = r.End
		}
		assert.Equal(t, tc.n, next, "ranges must cover [0, n) exactly")
	}
}

func TestEvenSplit_RoughlyEqualSizes(t *testing.T) {
	ranges := EvenSplit(1001, 100)
	for _, r := range ranges {
		size := r.End - r.Start
		assert.GreaterOrEqual(t, size, 10)
		assert.LessOrEqual(t, size, 11)
	}
}

func TestEvenSplit_NonPositiveK(t *testing.T) {
	ranges := EvenSplit(9, 0)
	require.Len(t, ranges, 1)
	assert.Equal(t, Range{Start: 0, End: 9}, ranges[0])
}
