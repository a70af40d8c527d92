package reconstruct

import "github.com/notargets/cholla/internal/eos"

// PCM reconstructs by taking each interface's left/right state directly from
// the adjacent cell centers (spec.md §4.2: "interface state = the adjacent
// cell state. First-order."). It is also the universal fallback used by every
// other scheme when a higher-order result would violate positivity.
type PCM struct{}

func (PCM) Name() string             { return "pcm" }
func (PCM) StencilHalfWidth() int    { return 1 }

func (PCM) Reconstruct(prim []eos.Primitive, gamma float64) (left, right []eos.Primitive) {
	n := len(prim)
	if n < 2 {
		return nil, nil
	}
	left = make([]eos.Primitive, n-1)
	right = make([]eos.Primitive, n-1)
	for i := 0; i < n-1; i++ {
		left[i] = prim[i]
		right[i] = prim[i+1]
	}
	return left, right
}

// faceAt returns the PCM left/right state for interface i (between cell i and
// i+1), used by the positivity fallback decorator regardless of which scheme
// produced the unsafe result.
func faceAt(prim []eos.Primitive, i int) (left, right eos.Primitive) {
	return prim[i], prim[i+1]
}
