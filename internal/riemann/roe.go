package riemann

import (
	"math"

	"github.com/notargets/cholla/internal/eos"
)

// Roe implements the linearized Roe flux with the Harten-Hyman entropy fix
// (spec.md §4.3), grounded on the teacher's RoeFlux in
// model_problems/Euler2D/fluxes.go, generalized from that 2D, x/y-rotated
// form to this core's permuted-axis sweep convention and extended with a
// passive transverse velocity component and scalar advection.
type Roe struct{}

func (Roe) Name() string { return "roe" }

func (Roe) Flux(wl, wr eos.Primitive, gamma float64) eos.Conserved {
	gm1 := gamma - 1
	rhoL, uL, vL, wL, pL := wl.Density, wl.Vx, wl.Vy, wl.Vz, wl.Pressure
	rhoR, uR, vR, wR, pR := wr.Density, wr.Vx, wr.Vy, wr.Vz, wr.Pressure

	eL := pL/gm1 + 0.5*rhoL*(uL*uL+vL*vL+wL*wL)
	eR := pR/gm1 + 0.5*rhoR*(uR*uR+vR*vR+wR*wR)
	hL := (eL + pL) / rhoL
	hR := (eR + pR) / rhoR

	uConsL := eos.ToConserved(wl, eos.Config{Gamma: gamma})
	uConsR := eos.ToConserved(wr, eos.Config{Gamma: gamma})
	fL := fluxFromConserved(uConsL, wl)
	fR := fluxFromConserved(uConsR, wr)

	rhoLs, rhoRs := math.Sqrt(rhoL), math.Sqrt(rhoR)
	rhoLsRs := rhoLs + rhoRs

	rho := rhoLs * rhoRs
	u := (rhoLs*uL + rhoRs*uR) / rhoLsRs
	v := (rhoLs*vL + rhoRs*vR) / rhoLsRs
	wv := (rhoLs*wL + rhoRs*wR) / rhoLsRs
	h := (rhoLs*hL + rhoRs*hR) / rhoLsRs
	c2 := gm1 * (h - 0.5*(u*u+v*v+wv*wv))
	c := math.Sqrt(c2)

	dW1 := -0.5*(rho*(uR-uL))/c + 0.5*(pR-pL)/c2
	dW2 := (rhoR - rhoL) - (pR-pL)/c2
	dW3 := rho * (vR - vL)
	dWv := rho * (wR - wL)
	dW4 := 0.5*(rho*(uR-uL))/c + 0.5*(pR-pL)/c2

	lambda1 := entropyFix(u-c, uL-soundSpeed(rhoL, pL, gamma), uR-soundSpeed(rhoR, pR, gamma))
	lambda2 := math.Abs(u)
	lambda3 := lambda2
	lambda4 := entropyFix(u+c, uL+soundSpeed(rhoL, pL, gamma), uR+soundSpeed(rhoR, pR, gamma))

	dW1 *= lambda1
	dW2 *= lambda2
	dW3 *= lambda3
	dWv *= lambda3
	dW4 *= lambda4

	out := eos.Conserved{
		Density:   0.5 * (fL.Density + fR.Density),
		MomentumX: 0.5 * (fL.MomentumX + fR.MomentumX),
		MomentumY: 0.5 * (fL.MomentumY + fR.MomentumY),
		MomentumZ: 0.5 * (fL.MomentumZ + fR.MomentumZ),
		Energy:    0.5 * (fL.Energy + fR.Energy),
	}
	out.Density -= 0.5 * (dW1 + dW2 + dW4)
	out.MomentumX -= 0.5 * (dW1*(u-c) + dW2*u + dW4*(u+c))
	out.MomentumY -= 0.5 * (dW1*v + dW2*v + dW3 + dW4*v)
	out.MomentumZ -= 0.5 * (dW1*wv + dW2*wv + dWv + dW4*wv)
	out.Energy -= 0.5 * (dW1*(h-u*c) + 0.5*dW2*(u*u+v*v+wv*wv) + dW3*v + dWv*wv + dW4*(h+u*c))

	if len(wl.Scalars) > 0 {
		// Passive scalars are advected upwind by the Roe-averaged contact speed.
		out.Scalars = make([]float64, len(wl.Scalars))
		for i := range wl.Scalars {
			if u >= 0 {
				out.Scalars[i] = out.Density * wl.Scalars[i]
			} else {
				out.Scalars[i] = out.Density * wr.Scalars[i]
			}
		}
	}
	return out
}

// entropyFix applies the Harten-Hyman entropy fix to wave speed lambda given
// the corresponding left/right physical characteristic speeds, preventing
// expansion shocks through sonic points.
func entropyFix(lambda, sL, sR float64) float64 {
	if sL < 0 && sR > 0 {
		return (sR+sL)/(sR-sL)*lambda - 2*sR*sL/(sR-sL)
	}
	return math.Abs(lambda)
}
