package riemann

import (
	"math"

	"github.com/notargets/cholla/internal/eos"
)

// Exact implements Toro's iterative exact Riemann solver for the Euler
// equations (spec.md §4.3), grounded directly on original_source/src/exact.cpp's
// guessp/prefun/starpu/sample sequence. It ignores any magnetic field on its
// inputs: MHD configurations must select HLLD instead (Roe and HLLC ignore
// it too).
type Exact struct{}

func (Exact) Name() string { return "exact" }

const (
	exactNewtonIters = 20
	exactTolerance   = 1.0e-6
)

func (Exact) Flux(wl, wr eos.Primitive, gamma float64) eos.Conserved {
	dl, vxl, vyl, vzl, pl := wl.Density, wl.Vx, wl.Vy, wl.Vz, wl.Pressure
	dr, vxr, vyr, vzr, pr := wr.Density, wr.Vx, wr.Vy, wr.Vz, wr.Pressure
	cl := soundSpeed(dl, pl, gamma)
	cr := soundSpeed(dr, pr, gamma)

	pm, um := starpu(dl, vxl, pl, cl, dr, vxr, pr, cr, gamma)
	ds, us, ps := sample(pm, um, dl, vxl, pl, cl, dr, vxr, pr, cr, gamma)

	var vys, vzs float64
	if us >= 0 {
		vys, vzs = vyl, vzl
	} else {
		vys, vzs = vyr, vzr
	}
	es := ps/(gamma-1) + 0.5*ds*(us*us+vys*vys+vzs*vzs)

	f := eos.Conserved{
		Density:   ds * us,
		MomentumX: ds*us*us + ps,
		MomentumY: ds * us * vys,
		MomentumZ: ds * us * vzs,
		Energy:    (es + ps) * us,
	}
	if len(wl.Scalars) > 0 {
		f.Scalars = make([]float64, len(wl.Scalars))
		for i := range wl.Scalars {
			if us >= 0 {
				f.Scalars[i] = ds * us * wl.Scalars[i]
			} else {
				f.Scalars[i] = ds * us * wr.Scalars[i]
			}
		}
	}
	return f
}

// guessp provides an initial pressure guess for the star region via the
// adaptive PVRS/two-shock estimate (Toro §9.5): PVRS when it lies between
// the two input pressures and their ratio is at most 2, two-rarefaction when
// PVRS falls below both, two-shock otherwise.
func guessp(dl, vxl, pl, cl, dr, vxr, pr, cr, gamma float64) float64 {
	ppv := 0.5*(pl+pr) + 0.125*(vxl-vxr)*(dl+dr)*(cl+cr)
	if ppv < 0 {
		ppv = 0
	}
	pmin, pmax := math.Min(pl, pr), math.Max(pl, pr)
	if pmax/pmin <= 2 && pmin <= ppv && ppv <= pmax {
		return ppv
	}
	if ppv < pmin {
		z := (gamma - 1) / (2 * gamma)
		pq := math.Pow(pl/pr, z)
		um := (pq*vxl/cl + vxr/cr + 2/(gamma-1)*(pq-1)) / (pq/cl + 1/cr)
		ptl := 1 + (gamma-1)/2*(vxl-um)/cl
		ptr := 1 + (gamma-1)/2*(um-vxr)/cr
		if p0 := 0.5 * (pl*math.Pow(ptl, 1/z) + pr*math.Pow(ptr, 1/z)); p0 > 0 {
			return p0
		}
		return exactTolerance
	}
	gl := math.Sqrt((2.0 / ((gamma + 1) * dl)) / (((gamma - 1) / (gamma + 1) * pl) + ppv))
	gr := math.Sqrt((2.0 / ((gamma + 1) * dr)) / (((gamma - 1) / (gamma + 1) * pr) + ppv))
	p0 := (gl*pl + gr*pr - (vxr - vxl)) / (gl + gr)
	if p0 < 0 {
		p0 = exactTolerance
	}
	return p0
}

// prefun evaluates the pressure function and its derivative for one side of
// the star-region equation.
func prefun(p, dk, pk, ck, gamma float64) (f, fd float64) {
	if p <= pk {
		pratio := p / pk
		f = (2.0 / (gamma - 1)) * ck * (math.Pow(pratio, (gamma-1)/(2*gamma)) - 1)
		fd = (1.0 / (dk * ck)) * math.Pow(pratio, -(gamma+1)/(2*gamma))
	} else {
		ak := (2.0 / (gamma + 1)) / dk
		bk := (gamma - 1) / (gamma + 1) * pk
		qrt := math.Sqrt(ak / (bk + p))
		f = (p - pk) * qrt
		fd = (1.0 - 0.5*(p-pk)/(bk+p)) * qrt
	}
	return f, fd
}

// starpu solves for pressure and velocity in the star region by Newton
// iteration on the pressure function, capped at exactNewtonIters steps.
func starpu(dl, vxl, pl, cl, dr, vxr, pr, cr, gamma float64) (p, u float64) {
	pold := guessp(dl, vxl, pl, cl, dr, vxr, pr, cr, gamma)
	p = pold
	for i := 0; i < exactNewtonIters; i++ {
		fl, fld := prefun(pold, dl, pl, cl, gamma)
		fr, frd := prefun(pold, dr, pr, cr, gamma)
		p = pold - (fl+fr+vxr-vxl)/(fld+frd)
		change := 2.0 * math.Abs((p-pold)/(p+pold))
		if change <= exactTolerance {
			break
		}
		if p < 0 {
			p = exactTolerance
		}
		pold = p
	}
	fl, _ := prefun(p, dl, pl, cl, gamma)
	fr, _ := prefun(p, dr, pr, cr, gamma)
	u = 0.5 * (vxl + vxr + fr - fl)
	return p, u
}

// sample evaluates the density, velocity, and pressure at the interface
// (fixed at x/t=0) given the star-region solution (pm, vm).
func sample(pm, vm, dl, vxl, pl, cl, dr, vxr, pr, cr, gamma float64) (d, u, p float64) {
	if vm >= 0 {
		if pm <= pl { // left rarefaction
			if vxl-cl >= 0 {
				return dl, vxl, pl
			}
			cml := cl * math.Pow(pm/pl, (gamma-1)/(2*gamma))
			if vm-cml < 0 {
				return dl * math.Pow(pm/pl, 1/gamma), vm, pm
			}
			uFan := (2.0 / (gamma + 1)) * (cl + (gamma-1)/2*vxl)
			c := uFan
			return dl * math.Pow(c/cl, 2/(gamma-1)), uFan, pl * math.Pow(c/cl, 2*gamma/(gamma-1))
		}
		// left shock
		pml := pm / pl
		sl := vxl - cl*math.Sqrt((gamma+1)/(2*gamma)*pml+(gamma-1)/(2*gamma))
		if sl >= 0 {
			return dl, vxl, pl
		}
		d = dl * (pml + (gamma-1)/(gamma+1)) / (pml*(gamma-1)/(gamma+1) + 1)
		return d, vm, pm
	}
	// vm < 0
	if pm > pr { // right shock
		pmr := pm / pr
		sr := vxr + cr*math.Sqrt((gamma+1)/(2*gamma)*pmr+(gamma-1)/(2*gamma))
		if sr <= 0 {
			return dr, vxr, pr
		}
		d = dr * (pmr + (gamma-1)/(gamma+1)) / (pmr*(gamma-1)/(gamma+1) + 1)
		return d, vm, pm
	}
	// right rarefaction
	if vxr+cr <= 0 {
		return dr, vxr, pr
	}
	cmr := cr * math.Pow(pm/pr, (gamma-1)/(2*gamma))
	if vm+cmr >= 0 {
		return dr * math.Pow(pm/pr, 1/gamma), vm, pm
	}
	uFan := (2.0 / (gamma + 1)) * (-cr + (gamma-1)/2*vxr)
	c := (2.0 / (gamma + 1)) * (cr - (gamma-1)/2*vxr)
	return dr * math.Pow(c/cr, 2/(gamma-1)), uFan, pr * math.Pow(c/cr, 2*gamma/(gamma-1))
}
