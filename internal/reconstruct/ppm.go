package reconstruct

import "github.com/notargets/cholla/internal/eos"

// PPM implements piecewise-parabolic reconstruction (spec.md §4.2: PPMP/PPMC)
// using the Colella & Woodward (1984) face-value interpolation and
// monotonicity/shape constraint on a five-cell stencil. The per-cell slopes
// that feed the parabola reuse PLM's (optionally characteristic) limiter, so
// PPMC's characteristic treatment lives at the slope stage; the parabola
// itself is assembled in primitive variables. Per spec.md §9's Open Question,
// this always uses the hydrodynamic 5-field decomposition, never the full MHD
// eigensystem, regardless of whether HLLD is the paired Riemann solver.
type PPM struct {
	Characteristic bool
	Limiter        LimiterKind
}

func (p PPM) Name() string {
	if p.Characteristic {
		return "ppmc"
	}
	return "ppmp"
}

func (PPM) StencilHalfWidth() int { return 2 }

func (p PPM) Reconstruct(prim []eos.Primitive, gamma float64) (left, right []eos.Primitive) {
	n := len(prim)
	if n < 4 {
		return (PLM{Characteristic: p.Characteristic, Limiter: p.Limiter}).Reconstruct(prim, gamma)
	}

	plm := PLM{Characteristic: p.Characteristic, Limiter: p.Limiter}
	slopes := make([]eos.Primitive, n)
	for i := 1; i < n-1; i++ {
		slopes[i] = plm.cellSlope(prim[i-1], prim[i], prim[i+1], gamma)
	}

	// face[i] is the CW84 interpolated value at the interface between cell i
	// and cell i+1; valid for i in [1, n-3] (needs slopes[i] and slopes[i+1]).
	face := make([]eos.Primitive, n-1)
	for i := 1; i < n-2; i++ {
		face[i] = parabolicFace(prim[i], prim[i+1], slopes[i], slopes[i+1])
	}

	left = make([]eos.Primitive, n-1)
	right = make([]eos.Primitive, n-1)
	for i := 0; i < n-1; i++ {
		// Cell i needs face[i-1] (its left face) and face[i] (its right face);
		// cell i+1 needs face[i] (its left face) and face[i+1] (its right face).
		if i-1 < 1 || i+1 > n-3 {
			// Incomplete stencil: fall back to the linear (PLM) estimate.
			left[i] = addScaled(prim[i], slopes[i], 0.5)
			right[i] = addScaled(prim[i+1], slopes[i+1], -0.5)
			continue
		}
		_, aR := constrain(face[i-1], prim[i], face[i])
		left[i] = aR
		aL2, _ := constrain(face[i], prim[i+1], face[i+1])
		right[i] = aL2
	}
	return left, right
}

// parabolicFace computes the raw (unconstrained) CW84 face value between two
// cells given their (already slope-limited) linear slopes.
func parabolicFace(wl, wr, sl, sr eos.Primitive) eos.Primitive {
	f := func(l, r, dl, dr float64) float64 {
		return 0.5*(l+r) - (dr-dl)/6
	}
	out := eos.Primitive{
		Density:        f(wl.Density, wr.Density, sl.Density, sr.Density),
		Vx:             f(wl.Vx, wr.Vx, sl.Vx, sr.Vx),
		Vy:             f(wl.Vy, wr.Vy, sl.Vy, sr.Vy),
		Vz:             f(wl.Vz, wr.Vz, sl.Vz, sr.Vz),
		Pressure:       f(wl.Pressure, wr.Pressure, sl.Pressure, sr.Pressure),
		InternalEnergy: f(wl.InternalEnergy, wr.InternalEnergy, sl.InternalEnergy, sr.InternalEnergy),
		Bx:             f(wl.Bx, wr.Bx, sl.Bx, sr.Bx),
		By:             f(wl.By, wr.By, sl.By, sr.By),
		Bz:             f(wl.Bz, wr.Bz, sl.Bz, sr.Bz),
	}
	if len(wl.Scalars) > 0 {
		out.Scalars = make([]float64, len(wl.Scalars))
		for s := range wl.Scalars {
			out.Scalars[s] = f(wl.Scalars[s], wr.Scalars[s], sl.Scalars[s], sr.Scalars[s])
		}
	}
	return out
}

// constrain applies the CW84 monotonicity/parabola-shape constraint (eqs.
// 1.10) to the raw left/right face values of one cell, per field, returning
// the constrained (aL, aR).
func constrain(rawAL, center, rawAR eos.Primitive) (aL, aR eos.Primitive) {
	f := func(al, a, ar float64) (float64, float64) {
		return cw84(al, a, ar)
	}
	aL.Density, aR.Density = f(rawAL.Density, center.Density, rawAR.Density)
	aL.Vx, aR.Vx = f(rawAL.Vx, center.Vx, rawAR.Vx)
	aL.Vy, aR.Vy = f(rawAL.Vy, center.Vy, rawAR.Vy)
	aL.Vz, aR.Vz = f(rawAL.Vz, center.Vz, rawAR.Vz)
	aL.Pressure, aR.Pressure = f(rawAL.Pressure, center.Pressure, rawAR.Pressure)
	aL.InternalEnergy, aR.InternalEnergy = f(rawAL.InternalEnergy, center.InternalEnergy, rawAR.InternalEnergy)
	aL.Bx, aR.Bx = f(rawAL.Bx, center.Bx, rawAR.Bx)
	aL.By, aR.By = f(rawAL.By, center.By, rawAR.By)
	aL.Bz, aR.Bz = f(rawAL.Bz, center.Bz, rawAR.Bz)
	if len(center.Scalars) > 0 {
		aL.Scalars = make([]float64, len(center.Scalars))
		aR.Scalars = make([]float64, len(center.Scalars))
		for s := range center.Scalars {
			aL.Scalars[s], aR.Scalars[s] = f(rawAL.Scalars[s], center.Scalars[s], rawAR.Scalars[s])
		}
	}
	return aL, aR
}

func cw84(al, a, ar float64) (float64, float64) {
	if (ar-a)*(a-al) <= 0 {
		return a, a
	}
	diff := ar - al
	mid := a - 0.5*(al+ar)
	if diff*mid > diff*diff/6 {
		al = 3*a - 2*ar
	} else if -diff*diff/6 > diff*mid {
		ar = 3*a - 2*al
	}
	return al, ar
}
