package riemann

import (
	"math"

	"github.com/notargets/cholla/internal/eos"
)

// HLLC implements the three-wave (left, contact, right) approximate Riemann
// solver for pure hydrodynamics (spec.md §4.3). Wave speeds use the Davis
// (1988) min/max estimate as in most production HLLC implementations.
type HLLC struct{}

func (HLLC) Name() string { return "hllc" }

func (HLLC) Flux(wl, wr eos.Primitive, gamma float64) eos.Conserved {
	cfg := eos.Config{Gamma: gamma}
	uL := eos.ToConserved(wl, cfg)
	uR := eos.ToConserved(wr, cfg)
	fL := fluxFromConserved(uL, wl)
	fR := fluxFromConserved(uR, wr)

	cL := soundSpeed(wl.Density, wl.Pressure, gamma)
	cR := soundSpeed(wr.Density, wr.Pressure, gamma)

	sL := math.Min(wl.Vx-cL, wr.Vx-cR)
	sR := math.Max(wl.Vx+cL, wr.Vx+cR)

	if sL >= 0 {
		return fL
	}
	if sR <= 0 {
		return fR
	}

	sStar := (wr.Pressure - wl.Pressure + wl.Density*wl.Vx*(sL-wl.Vx) - wr.Density*wr.Vx*(sR-wr.Vx)) /
		(wl.Density*(sL-wl.Vx) - wr.Density*(sR-wr.Vx))

	if sStar >= 0 {
		return hllcStar(uL, wl, fL, sL, sStar)
	}
	return hllcStar(uR, wr, fR, sR, sStar)
}

// hllcStar evaluates the HLLC flux on either side of the contact wave by
// forming the star-region conserved state and applying F* = F + s(U*-U).
func hllcStar(u eos.Conserved, w eos.Primitive, f eos.Conserved, s, sStar float64) eos.Conserved {
	factor := w.Density * (s - w.Vx) / (s - sStar)
	uStar := eos.Conserved{
		Density:   factor,
		MomentumX: factor * sStar,
		MomentumY: factor * w.Vy,
		MomentumZ: factor * w.Vz,
		Energy: factor * (u.Energy/u.Density + (sStar-w.Vx)*(sStar+w.Pressure/(w.Density*(s-w.Vx)))),
	}
	if len(u.Scalars) > 0 {
		uStar.Scalars = make([]float64, len(u.Scalars))
		for i, rs := range u.Scalars {
			uStar.Scalars[i] = factor * (rs / u.Density)
		}
	}

	out := eos.Conserved{
		Density:   f.Density + s*(uStar.Density-u.Density),
		MomentumX: f.MomentumX + s*(uStar.MomentumX-u.MomentumX),
		MomentumY: f.MomentumY + s*(uStar.MomentumY-u.MomentumY),
		MomentumZ: f.MomentumZ + s*(uStar.MomentumZ-u.MomentumZ),
		Energy:    f.Energy + s*(uStar.Energy-u.Energy),
	}
	if len(u.Scalars) > 0 {
		out.Scalars = make([]float64, len(u.Scalars))
		for i := range u.Scalars {
			out.Scalars[i] = f.Scalars[i] + s*(uStar.Scalars[i]-u.Scalars[i])
		}
	}
	return out
}
