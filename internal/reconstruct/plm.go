package reconstruct

import (
	"github.com/notargets/cholla/internal/eos"
)

// PLM implements piecewise-linear reconstruction (spec.md §4.2: PLMP/PLMC):
// a three-cell-stencil, slope-limited linear profile in each cell. When
// Characteristic is true (PLMC) the slope limiting happens in the local
// hydrodynamic characteristic variables; otherwise (PLMP) it happens directly
// on primitive variables.
type PLM struct {
	Characteristic bool
	Limiter        LimiterKind
}

func (p PLM) Name() string {
	if p.Characteristic {
		return "plmc"
	}
	return "plmp"
}

func (PLM) StencilHalfWidth() int { return 1 }

func (p PLM) Reconstruct(prim []eos.Primitive, gamma float64) (left, right []eos.Primitive) {
	n := len(prim)
	if n < 2 {
		return nil, nil
	}
	slopes := make([]eos.Primitive, n)
	for i := 1; i < n-1; i++ {
		slopes[i] = p.cellSlope(prim[i-1], prim[i], prim[i+1], gamma)
	}
	// Edge cells (i==0, i==n-1) keep the zero-value slope: PCM fallback.

	left = make([]eos.Primitive, n-1)
	right = make([]eos.Primitive, n-1)
	for i := 0; i < n-1; i++ {
		left[i] = addScaled(prim[i], slopes[i], 0.5)
		right[i] = addScaled(prim[i+1], slopes[i+1], -0.5)
	}
	return left, right
}

// cellSlope computes the limited slope (a Primitive-shaped delta, not a
// state) at the center cell given its left/right neighbors.
func (p PLM) cellSlope(wl, wc, wr eos.Primitive, gamma float64) eos.Primitive {
	dl := hydroPrimDelta{wc.Density - wl.Density, wc.Vx - wl.Vx, wc.Vy - wl.Vy, wc.Vz - wl.Vz, wc.Pressure - wl.Pressure}
	dr := hydroPrimDelta{wr.Density - wc.Density, wr.Vx - wc.Vx, wr.Vy - wc.Vy, wr.Vz - wc.Vz, wr.Pressure - wc.Pressure}

	var slopeHydro hydroPrimDelta
	if p.Characteristic {
		c := soundSpeed(wc.Density, wc.Pressure, gamma)
		al := toCharacteristic(dl, wc.Density, c)
		ar := toCharacteristic(dr, wc.Density, c)
		var limited [5]float64
		for k := range limited {
			limited[k] = limit(p.Limiter, al[k], ar[k])
		}
		slopeHydro = fromCharacteristic(limited, wc.Density, c)
	} else {
		for k := 0; k < 5; k++ {
			slopeHydro[k] = limit(p.Limiter, dl[k], dr[k])
		}
	}

	out := eos.Primitive{
		Density:  slopeHydro[0],
		Vx:       slopeHydro[1],
		Vy:       slopeHydro[2],
		Vz:       slopeHydro[3],
		Pressure: slopeHydro[4],
	}
	out.Bx = limit(p.Limiter, wc.Bx-wl.Bx, wr.Bx-wc.Bx)
	out.By = limit(p.Limiter, wc.By-wl.By, wr.By-wc.By)
	out.Bz = limit(p.Limiter, wc.Bz-wl.Bz, wr.Bz-wc.Bz)
	if len(wc.Scalars) > 0 {
		out.Scalars = make([]float64, len(wc.Scalars))
		for s := range wc.Scalars {
			out.Scalars[s] = limit(p.Limiter, wc.Scalars[s]-wl.Scalars[s], wr.Scalars[s]-wc.Scalars[s])
		}
	}
	out.InternalEnergy = limit(p.Limiter, wc.InternalEnergy-wl.InternalEnergy, wr.InternalEnergy-wc.InternalEnergy)
	return out
}

// addScaled returns w + scale*slope, treating slope as a Primitive-shaped delta.
func addScaled(w, slope eos.Primitive, scale float64) eos.Primitive {
	out := eos.Primitive{
		Density:        w.Density + scale*slope.Density,
		Vx:             w.Vx + scale*slope.Vx,
		Vy:             w.Vy + scale*slope.Vy,
		Vz:             w.Vz + scale*slope.Vz,
		Pressure:       w.Pressure + scale*slope.Pressure,
		InternalEnergy: w.InternalEnergy + scale*slope.InternalEnergy,
		Bx:             w.Bx + scale*slope.Bx,
		By:             w.By + scale*slope.By,
		Bz:             w.Bz + scale*slope.Bz,
	}
	if len(w.Scalars) > 0 {
		out.Scalars = make([]float64, len(w.Scalars))
		for s := range w.Scalars {
			out.Scalars[s] = w.Scalars[s] + scale*slope.Scalars[s]
		}
	}
	return out
}
