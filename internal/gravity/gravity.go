// Package gravity implements the source-term coupling half of spec.md §4.6's
// gravitational work: given a potential field on the same mesh, compute
// cell-centered acceleration by centered differences and update momentum and
// energy. The Poisson solve itself is an external collaborator (spec.md §6's
// solve_potential contract); Solver here is the interface the core calls
// into, with ZeroPotential and AnalyticPotential as in-process stand-ins for
// testing and for simple analytic problems (grounded on
// original_source/src/model/disk_galaxy.h's closed-form potential, adapted
// away from its galaxy-specific parameters).
package gravity

import "github.com/notargets/cholla/internal/grid"

// Solver computes the gravitational potential for a sub-block, writing it
// into phi (length b.Len()). Implementations may solve Poisson's equation
// externally (self-gravity) or return a fixed/analytic field.
type Solver interface {
	SolvePotential(b *grid.Block, phi []float64) error
}

// EnergyCoupling selects how gravitational work enters the energy equation
// (spec.md §4.6).
type EnergyCoupling uint8

const (
	// CoupleWork updates E by Δt·ρv·g, using the pre-update velocity.
	CoupleWork EnergyCoupling = iota
	// CoupleDeltaKE updates E by the change in kinetic energy implied by the
	// momentum update, which is exact rather than a first-order work estimate.
	CoupleDeltaKE
)

// StencilOrder selects the finite-difference stencil used for -grad(phi).
type StencilOrder int

const (
	ThreePoint StencilOrder = 3
	FivePoint  StencilOrder = 5
)

// Config carries the gravity source term's runtime configuration.
type Config struct {
	Stencil  StencilOrder
	Coupling EnergyCoupling
}

// Accelerate applies the gravitational source term to b in place over step
// dt, given a potential field phi already populated by a Solver
// (spec.md §4.6: "Update momenta by ρv <- ρv + Δt ρ g. Update energy...").
func Accelerate(b *grid.Block, phi []float64, dt float64, cfg Config) {
	loI, hiI, loJ, hiJ, loK, hiK := b.InteriorBounds()
	nx, ny, nz := b.Dims()
	for i := loI; i < hiI; i++ {
		for j := loJ; j < hiJ; j++ {
			for k := loK; k < hiK; k++ {
				idx := b.Index3D(i, j, k)
				gx := -gradient(phi, b, i, j, k, 0, nx, cfg.Stencil)
				gy := -gradient(phi, b, i, j, k, 1, ny, cfg.Stencil)
				gz := -gradient(phi, b, i, j, k, 2, nz, cfg.Stencil)

				rho := b.Density[idx]
				vx := b.MomentumX[idx] / rho
				vy := b.MomentumY[idx] / rho
				vz := b.MomentumZ[idx] / rho

				dpx := dt * rho * gx
				dpy := dt * rho * gy
				dpz := dt * rho * gz

				switch cfg.Coupling {
				case CoupleDeltaKE:
					keOld := 0.5 * rho * (vx*vx + vy*vy + vz*vz)
					b.MomentumX[idx] += dpx
					b.MomentumY[idx] += dpy
					b.MomentumZ[idx] += dpz
					nvx := b.MomentumX[idx] / rho
					nvy := b.MomentumY[idx] / rho
					nvz := b.MomentumZ[idx] / rho
					keNew := 0.5 * rho * (nvx*nvx + nvy*nvy + nvz*nvz)
					b.Energy[idx] += keNew - keOld
				default: // CoupleWork
					b.Energy[idx] += dt * (vx*rho*gx + vy*rho*gy + vz*rho*gz)
					b.MomentumX[idx] += dpx
					b.MomentumY[idx] += dpy
					b.MomentumZ[idx] += dpz
				}
			}
		}
	}
}

// gradient returns d(phi)/d(axis) at (i,j,k) via a 3- or 5-point centered
// difference, falling back to 3-point near a boundary too close for the
// 5-point stencil's wider reach. An axis with zero spacing (an unused
// dimension of a 1-D or 2-D block) has zero gradient.
func gradient(phi []float64, b *grid.Block, i, j, k, axis, n int, order StencilOrder) float64 {
	d := [3]float64{b.Geometry.Dx, b.Geometry.Dy, b.Geometry.Dz}[axis]
	if d == 0 {
		return 0
	}
	coord := [3]int{i, j, k}[axis]
	idxAt := func(offset int) int {
		c := coord + offset
		ii, jj, kk := i, j, k
		switch axis {
		case 0:
			ii = c
		case 1:
			jj = c
		case 2:
			kk = c
		}
		return b.Index3D(ii, jj, kk)
	}
	if order == FivePoint && coord-2 >= 0 && coord+2 < n {
		return (-phi[idxAt(2)] + 8*phi[idxAt(1)] - 8*phi[idxAt(-1)] + phi[idxAt(-2)]) / (12 * d)
	}
	return (phi[idxAt(1)] - phi[idxAt(-1)]) / (2 * d)
}

// ZeroPotential is a Solver that leaves phi at zero everywhere: the no-gravity
// stand-in used when self-gravity is disabled.
type ZeroPotential struct{}

func (ZeroPotential) SolvePotential(b *grid.Block, phi []float64) error {
	for i := range phi {
		phi[i] = 0
	}
	return nil
}

// AnalyticPotential is a Solver that evaluates a user-supplied closed-form
// potential at each cell center, for test problems and simple fixed external
// potentials (e.g. a disk-galaxy potential) rather than a full Poisson solve.
type AnalyticPotential struct {
	At func(x, y, z float64) float64
}

func (a AnalyticPotential) SolvePotential(b *grid.Block, phi []float64) error {
	nx, ny, nz := b.Dims()
	g := b.Ghost
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				x := b.Geometry.XMin + (float64(i-g)+0.5)*b.Geometry.Dx
				y := b.Geometry.YMin + (float64(j-g)+0.5)*b.Geometry.Dy
				z := b.Geometry.ZMin + (float64(k-g)+0.5)*b.Geometry.Dz
				phi[b.Index3D(i, j, k)] = a.At(x, y, z)
			}
		}
	}
	return nil
}
