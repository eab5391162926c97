// Package chunks provides index-range splitting for memory-bounded batch
// processing.
package chunks

// Range is a half-open index interval [Start, End).
type Range struct {
	Start, End int
}

// EvenSplit divides the index range [0, n) into k roughly-equal
// contiguous ranges. Boundary i is floor(i*n/k), so the ranges cover the
// whole input without overlap; when k does not divide n the remainder is
// spread across the ranges. k values above n produce empty ranges, which
// callers may skip.
func EvenSplit(n, k int) []Range {
	if k < 1 {
		k = 1
	}
	ranges := make([]Range, 0, k)
	for i := 0; i < k; i++ {
		ranges = append(ranges, Range{
			Start: i * n / k,
			End:   (i + 1) * n / k,
		})
	}
	return ranges
}
