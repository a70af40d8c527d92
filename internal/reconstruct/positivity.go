package reconstruct

import "github.com/notargets/cholla/internal/eos"

// positivityFallback wraps a Reconstructor and replaces any face where the
// higher-order result would leave density or pressure non-positive with the
// PCM value at that face (spec.md §4.2: "All variants must leave the result
// satisfying ρ > 0 and p > 0 at each face; if either fails, fall back to PCM
// for that face.").
type positivityFallback struct {
	inner Reconstructor
}

// WithPositivityFallback decorates r with the per-face PCM fallback required
// of every reconstruction scheme above first order.
func WithPositivityFallback(r Reconstructor) Reconstructor {
	return positivityFallback{inner: r}
}

func (p positivityFallback) Name() string          { return p.inner.Name() }
func (p positivityFallback) StencilHalfWidth() int  { return p.inner.StencilHalfWidth() }

func (p positivityFallback) Reconstruct(prim []eos.Primitive, gamma float64) (left, right []eos.Primitive) {
	left, right = p.inner.Reconstruct(prim, gamma)
	for i := range left {
		if left[i].Density <= 0 || left[i].Pressure <= 0 || right[i].Density <= 0 || right[i].Pressure <= 0 {
			left[i], right[i] = faceAt(prim, i)
		}
	}
	return left, right
}
