package riemann

import (
	"math"

	"github.com/notargets/cholla/internal/eos"
)

// HLLD implements the five-wave (fast left, Alfven left, contact, Alfven
// right, fast right) approximate MHD Riemann solver of Miyoshi & Kusano
// (2005) (spec.md §4.3). It assumes Bx is continuous across the interface
// (the constrained-transport invariant boundary.Filler and the integrator's
// induction update are responsible for maintaining) and resolves to HLLC's
// structure in the Bx=0, B_transverse=0 limit.
type HLLD struct{}

func (HLLD) Name() string { return "hlld" }

func fastMagnetosonicSpeed(rho, p, bx, by, bz, gamma float64) float64 {
	a2 := gamma * p / rho
	caX2 := bx * bx / rho
	ca2 := (bx*bx + by*by + bz*bz) / rho
	disc := (a2+ca2)*(a2+ca2) - 4*a2*caX2
	if disc < 0 {
		disc = 0
	}
	return math.Sqrt(0.5 * (a2 + ca2 + math.Sqrt(disc)))
}

func (HLLD) Flux(wl, wr eos.Primitive, gamma float64) eos.Conserved {
	bx := 0.5 * (wl.Bx + wr.Bx)
	cfg := eos.Config{Gamma: gamma, MHD: true}
	wlp, wrp := wl, wr
	wlp.Bx, wrp.Bx = bx, bx
	uL := eos.ToConserved(wlp, cfg)
	uR := eos.ToConserved(wrp, cfg)
	fL := fluxFromConservedMHD(uL, wlp)
	fR := fluxFromConservedMHD(uR, wrp)

	cfL := fastMagnetosonicSpeed(wlp.Density, wlp.Pressure, bx, wlp.By, wlp.Bz, gamma)
	cfR := fastMagnetosonicSpeed(wrp.Density, wrp.Pressure, bx, wrp.By, wrp.Bz, gamma)
	sL := math.Min(wlp.Vx-cfL, wrp.Vx-cfR)
	sR := math.Max(wlp.Vx+cfL, wrp.Vx+cfR)

	if sL >= 0 {
		return fL
	}
	if sR <= 0 {
		return fR
	}

	ptL := wlp.Pressure + 0.5*(bx*bx+wlp.By*wlp.By+wlp.Bz*wlp.Bz)
	ptR := wrp.Pressure + 0.5*(bx*bx+wrp.By*wrp.By+wrp.Bz*wrp.Bz)

	denom := wrp.Density*(sR-wrp.Vx) - wlp.Density*(sL-wlp.Vx)
	sm := (wrp.Density*wrp.Vx*(sR-wrp.Vx) - wlp.Density*wlp.Vx*(sL-wlp.Vx) - ptR + ptL) / denom
	pts := (wrp.Density*(sR-wrp.Vx)*ptL-wlp.Density*(sL-wlp.Vx)*ptR+
		wlp.Density*wrp.Density*(sR-wrp.Vx)*(sL-wlp.Vx)*(wrp.Vx-wlp.Vx)) / denom

	rhoLs := wlp.Density * (sL - wlp.Vx) / (sL - sm)
	rhoRs := wrp.Density * (sR - wrp.Vx) / (sR - sm)

	vyLs, vzLs, byLs, bzLs := starTransverse(wlp, bx, sL, sm)
	vyRs, vzRs, byRs, bzRs := starTransverse(wrp, bx, sR, sm)

	eLs := ((sL-wlp.Vx)*uL.Energy - ptL*wlp.Vx + pts*sm +
		bx*(dotB(wlp.Vx, wlp.Vy, wlp.Vz, bx, wlp.By, wlp.Bz)-dotB(sm, vyLs, vzLs, bx, byLs, bzLs))) / (sL - sm)
	eRs := ((sR-wrp.Vx)*uR.Energy - ptR*wrp.Vx + pts*sm +
		bx*(dotB(wrp.Vx, wrp.Vy, wrp.Vz, bx, wrp.By, wrp.Bz)-dotB(sm, vyRs, vzRs, bx, byRs, bzRs))) / (sR - sm)

	sLs := sm - math.Abs(bx)/math.Sqrt(rhoLs)
	sRs := sm + math.Abs(bx)/math.Sqrt(rhoRs)

	uLs := starState(rhoLs, sm, vyLs, vzLs, eLs, bx, byLs, bzLs, wlp.Scalars)
	uRs := starState(rhoRs, sm, vyRs, vzRs, eRs, bx, byRs, bzRs, wrp.Scalars)

	if sLs >= 0 {
		return starFlux(fL, uL, uLs, sL)
	}
	if sm >= 0 {
		uLss := doubleStarState(rhoLs, rhoRs, vyLs, vzLs, byLs, bzLs, vyRs, vzRs, byRs, bzRs, sm, eLs, bx, true, uLs.Scalars)
		fLs := starFlux(fL, uL, uLs, sL)
		return starFlux(fLs, uLs, uLss, sLs)
	}
	if sRs >= 0 {
		uRss := doubleStarState(rhoLs, rhoRs, vyLs, vzLs, byLs, bzLs, vyRs, vzRs, byRs, bzRs, sm, eRs, bx, false, uRs.Scalars)
		fRs := starFlux(fR, uR, uRs, sR)
		return starFlux(fRs, uRs, uRss, sRs)
	}
	return starFlux(fR, uR, uRs, sR)
}

func dotB(vx, vy, vz, bx, by, bz float64) float64 {
	return vx*bx + vy*by + vz*bz
}

// starTransverse computes the star-region transverse velocity and field
// components on one side (Miyoshi & Kusano eqs. 23-27).
func starTransverse(w eos.Primitive, bx, s, sm float64) (vy, vz, by, bz float64) {
	denom := w.Density*(s-w.Vx)*(s-sm) - bx*bx
	const tiny = 1e-14
	if math.Abs(denom) < tiny {
		return w.Vy, w.Vz, w.By, w.Bz
	}
	vy = w.Vy - bx*w.By*(sm-w.Vx)/denom
	vz = w.Vz - bx*w.Bz*(sm-w.Vx)/denom
	scale := (w.Density*(s-w.Vx)*(s-w.Vx) - bx*bx) / denom
	by = w.By * scale
	bz = w.Bz * scale
	return vy, vz, by, bz
}

func starState(rho, vx, vy, vz, energy, bx, by, bz float64, scalars []float64) eos.Conserved {
	u := eos.Conserved{
		Density:   rho,
		MomentumX: rho * vx,
		MomentumY: rho * vy,
		MomentumZ: rho * vz,
		Energy:    energy,
		Bx:        bx,
		By:        by,
		Bz:        bz,
	}
	if len(scalars) > 0 {
		u.Scalars = make([]float64, len(scalars))
		for i, s := range scalars {
			u.Scalars[i] = rho * s
		}
	}
	return u
}

// doubleStarState forms the Alfven-double-star state between sLs and sRs
// (Miyoshi & Kusano eqs. 31-37), shared by cells on either side of the
// contact since vy, vz, By, Bz are continuous across it. Density does not
// change crossing an Alfven wave, so the donor-side star state's Scalars
// (already upwinded by sm in starState) carry straight through unchanged,
// the same donor-cell convention sweep.go's internalEnergyFlux applies.
func doubleStarState(rhoLs, rhoRs, vyLs, vzLs, byLs, bzLs, vyRs, vzRs, byRs, bzRs, sm, eStar, bx float64, left bool, scalars []float64) eos.Conserved {
	sqrtL, sqrtR := math.Sqrt(rhoLs), math.Sqrt(rhoRs)
	sign := 1.0
	if bx < 0 {
		sign = -1.0
	}
	denom := sqrtL + sqrtR
	vyss := (sqrtL*vyLs + sqrtR*vyRs + (byRs-byLs)*sign) / denom
	vzss := (sqrtL*vzLs + sqrtR*vzRs + (bzRs-bzLs)*sign) / denom
	byss := (sqrtL*byRs + sqrtR*byLs + sqrtL*sqrtR*(vyRs-vyLs)*sign) / denom
	bzss := (sqrtL*bzRs + sqrtR*bzLs + sqrtL*sqrtR*(vzRs-vzLs)*sign) / denom

	var rho float64
	var eAdj float64
	if left {
		rho = rhoLs
		eAdj = eStar - sqrtL*sign*((vyLs*byLs+vzLs*bzLs)-(vyss*byss+vzss*bzss))
	} else {
		rho = rhoRs
		eAdj = eStar + sqrtR*sign*((vyRs*byRs+vzRs*bzRs)-(vyss*byss+vzss*bzss))
	}
	u := eos.Conserved{
		Density:   rho,
		MomentumX: rho * sm,
		MomentumY: rho * vyss,
		MomentumZ: rho * vzss,
		Energy:    eAdj,
		Bx:        bx,
		By:        byss,
		Bz:        bzss,
	}
	if len(scalars) > 0 {
		u.Scalars = append([]float64(nil), scalars...)
	}
	return u
}

func starFlux(fOuter eos.Conserved, uOuter, uStar eos.Conserved, s float64) eos.Conserved {
	out := eos.Conserved{
		Density:   fOuter.Density + s*(uStar.Density-uOuter.Density),
		MomentumX: fOuter.MomentumX + s*(uStar.MomentumX-uOuter.MomentumX),
		MomentumY: fOuter.MomentumY + s*(uStar.MomentumY-uOuter.MomentumY),
		MomentumZ: fOuter.MomentumZ + s*(uStar.MomentumZ-uOuter.MomentumZ),
		Energy:    fOuter.Energy + s*(uStar.Energy-uOuter.Energy),
		By:        fOuter.By + s*(uStar.By-uOuter.By),
		Bz:        fOuter.Bz + s*(uStar.Bz-uOuter.Bz),
	}
	if len(uOuter.Scalars) > 0 {
		out.Scalars = make([]float64, len(uOuter.Scalars))
		for i := range uOuter.Scalars {
			fs := 0.0
			if len(fOuter.Scalars) > i {
				fs = fOuter.Scalars[i]
			}
			out.Scalars[i] = fs + s*(uStar.Scalars[i]-uOuter.Scalars[i])
		}
	}
	return out
}
