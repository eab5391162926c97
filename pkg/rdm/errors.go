package rdm

import "fmt"

// MalformedVectorError reports a condensed-vector length that is not a
// triangular number n*(n-1)/2 and therefore cannot correspond to any
// square RDM.
type MalformedVectorError struct {
	// Length is the offending condensed-vector length.
	Length int
}

func (e *MalformedVectorError) Error() string {
	return fmt.Sprintf("condensed vector length %d does not correspond to a square RDM", e.Length)
}

// ShapeMismatchError reports two RDM collections whose condensed vectors
// have different widths, i.e. a different number of conditions.
type ShapeMismatchError struct {
	Want int
	Got  int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("RDM collections must have equal shape: condensed width %d vs %d", e.Want, e.Got)
}
