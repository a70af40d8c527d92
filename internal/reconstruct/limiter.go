package reconstruct

import "math"

// LimiterKind selects the slope limiter PLM/PPM use to keep reconstructed
// slopes monotonicity-preserving (spec.md §4.2).
type LimiterKind uint8

const (
	Minmod LimiterKind = iota
	VanLeer
)

// minmod implements the classic two-argument minmod limiter: when a and b
// disagree in sign the limited slope is zero (spec.md §4.2's stated tie-break),
// otherwise the smaller-magnitude slope wins.
func minmod(a, b float64) float64 {
	if a*b <= 0 {
		return 0
	}
	if math.Abs(a) < math.Abs(b) {
		return a
	}
	return b
}

// vanLeerLimit implements the van Leer limiter on the left/right differences
// a, b, returning 0 when they disagree in sign.
func vanLeerLimit(a, b float64) float64 {
	if a*b <= 0 {
		return 0
	}
	return 2 * a * b / (a + b)
}

func limit(kind LimiterKind, a, b float64) float64 {
	if kind == VanLeer {
		return vanLeerLimit(a, b)
	}
	return minmod(a, b)
}
