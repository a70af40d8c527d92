// Package riemann implements the interface-flux family of spec.md §4.3:
// Exact, Roe, HLLC, and HLLD, chosen at startup behind a common Solver
// interface (the same capability-interface pattern reconstruct.New uses,
// mirroring the teacher's NewFluxType(label string) factory in
// model_problems/Euler2D/fluxes.go).
//
// Every Solver assumes its two input states have already been permuted
// (internal/eos.PermutePrimitive) so that Vx/Bx are the interface-normal
// components; the returned flux is likewise in that permuted frame and must
// be unpermuted by the caller.
package riemann

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/cholla/internal/eos"
)

// Solver computes the Godunov flux at a single interface given the left and
// right reconstructed primitive states.
type Solver interface {
	Name() string
	Flux(wl, wr eos.Primitive, gamma float64) eos.Conserved
}

// Kind names the algorithm a Solver implements.
type Kind string

const (
	ExactKind Kind = "exact"
	RoeKind   Kind = "roe"
	HLLCKind  Kind = "hllc"
	HLLDKind  Kind = "hlld"
)

// New builds the named Solver.
func New(kind string) (Solver, error) {
	switch Kind(strings.ToLower(kind)) {
	case ExactKind:
		return Exact{}, nil
	case RoeKind:
		return Roe{}, nil
	case HLLCKind:
		return HLLC{}, nil
	case HLLDKind:
		return HLLD{}, nil
	default:
		return nil, fmt.Errorf("riemann: unknown Riemann solver kind %q", kind)
	}
}

func soundSpeed(rho, p, gamma float64) float64 {
	if rho <= 0 {
		return 0
	}
	return math.Sqrt(gamma * p / rho)
}

// fluxFromConserved converts an interior state to its physical flux vector
// in the permuted (x-normal) frame, used by Roe/HLLC/HLLD as the flux at the
// supersonic-branch states.
func fluxFromConserved(u eos.Conserved, w eos.Primitive) eos.Conserved {
	f := eos.Conserved{
		Density:   u.MomentumX,
		MomentumX: u.MomentumX*w.Vx + w.Pressure,
		MomentumY: u.MomentumX * w.Vy,
		MomentumZ: u.MomentumX * w.Vz,
		Energy:    w.Vx * (u.Energy + w.Pressure),
	}
	if len(u.Scalars) > 0 {
		f.Scalars = make([]float64, len(u.Scalars))
		for i, s := range u.Scalars {
			f.Scalars[i] = w.Vx * s
		}
	}
	return f
}

// fluxFromConservedMHD is fluxFromConserved extended with the induction
// equation and magnetic pressure/tension terms (spec.md §4.3's MHD branch).
func fluxFromConservedMHD(u eos.Conserved, w eos.Primitive) eos.Conserved {
	f := fluxFromConserved(u, w)
	pTotal := w.Pressure + 0.5*(w.Bx*w.Bx+w.By*w.By+w.Bz*w.Bz)
	f.MomentumX = u.MomentumX*w.Vx + pTotal - w.Bx*w.Bx
	f.MomentumY = u.MomentumX*w.Vy - w.Bx*w.By
	f.MomentumZ = u.MomentumX*w.Vz - w.Bx*w.Bz
	vDotB := w.Vx*w.Bx + w.Vy*w.By + w.Vz*w.Bz
	f.Energy = w.Vx*(u.Energy+pTotal) - w.Bx*vDotB
	f.By = w.Vx*w.By - w.Vy*w.Bx
	f.Bz = w.Vx*w.Bz - w.Vz*w.Bx
	return f
}
