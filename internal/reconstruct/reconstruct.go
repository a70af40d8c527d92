// Package reconstruct implements the interface-state reconstruction family of
// spec.md §4.2: PCM, PLMP/PLMC, and PPMP/PPMC, chosen at startup behind a
// common Reconstructor interface (the capability-interface pattern of
// spec.md §9, mirroring the teacher's NewFluxType(label string) factory in
// model_problems/Euler2D/fluxes.go).
//
// Every Reconstructor assumes its input line of primitive states has already
// been permuted (internal/eos.PermutePrimitive) so that Vx is the sweep-normal
// velocity; reconstruction itself never looks at which lab-frame axis is
// active.
package reconstruct

import (
	"fmt"
	"strings"

	"github.com/notargets/cholla/internal/eos"
)

// Reconstructor builds left/right interface primitive states from a line of
// cell-centered primitives. For an input of length N, it returns left/right
// arrays of length N-1: left[i] and right[i] are the two-sided states at the
// interface between cell i and cell i+1.
type Reconstructor interface {
	Name() string
	// StencilHalfWidth is the number of ghost cells this scheme needs on each
	// side of the domain (spec.md §4.8: "Ghost width must equal the
	// reconstruction stencil half-width").
	StencilHalfWidth() int
	Reconstruct(prim []eos.Primitive, gamma float64) (left, right []eos.Primitive)
}

// Kind names the algorithm a Reconstructor implements.
type Kind string

const (
	PCMKind  Kind = "pcm"
	PLMPKind Kind = "plmp"
	PLMCKind Kind = "plmc"
	PPMPKind Kind = "ppmp"
	PPMCKind Kind = "ppmc"
)

// New builds the named Reconstructor, wrapped with the positivity fallback
// required by spec.md §4.2 ("if either [rho>0 or p>0] fails, fall back to PCM
// for that face"). PCM itself is returned unwrapped since it cannot fail that
// check any worse than its own input already does.
func New(kind string, gamma float64) (Reconstructor, error) {
	switch Kind(strings.ToLower(kind)) {
	case PCMKind:
		return PCM{}, nil
	case PLMPKind:
		return WithPositivityFallback(PLM{Characteristic: false}), nil
	case PLMCKind:
		return WithPositivityFallback(PLM{Characteristic: true}), nil
	case PPMPKind:
		return WithPositivityFallback(PPM{Characteristic: false}), nil
	case PPMCKind:
		return WithPositivityFallback(PPM{Characteristic: true}), nil
	default:
		return nil, fmt.Errorf("reconstruct: unknown reconstruction kind %q", kind)
	}
}
