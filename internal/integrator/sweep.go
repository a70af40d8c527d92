// Package integrator implements the time-integration orchestration of
// spec.md §4.4: Van-Leer predictor/corrector (default) and Simple
// (forward-Euler), each driving reconstruction and Riemann solving along the
// three axes from a single primitive-variable snapshot, assembling the flux
// divergence, and applying the conservative update plus floors.
package integrator

import (
	"fmt"
	"sync"

	"github.com/notargets/cholla/internal/direction"
	"github.com/notargets/cholla/internal/eos"
	"github.com/notargets/cholla/internal/grid"
	"github.com/notargets/cholla/internal/reconstruct"
	"github.com/notargets/cholla/internal/riemann"
)

// divergence holds one flux-divergence contribution per conserved field,
// shaped like a Block's arrays, accumulated by all three axis sweeps from
// the SAME primitive snapshot (spec.md §5's ordering guarantee) before the
// update step consumes it.
type divergence struct {
	density, momX, momY, momZ, energy []float64
	internalEnergy                    []float64
	bx, by, bz                        []float64
	scalars                           [][]float64
}

func newDivergence(b *grid.Block) *divergence {
	n := b.Len()
	d := &divergence{
		density: make([]float64, n), momX: make([]float64, n),
		momY: make([]float64, n), momZ: make([]float64, n), energy: make([]float64, n),
	}
	if b.Features.DualEnergy {
		d.internalEnergy = make([]float64, n)
	}
	if b.Features.MHD {
		d.bx = make([]float64, n)
		d.by = make([]float64, n)
		d.bz = make([]float64, n)
	}
	if len(b.Scalars) > 0 {
		d.scalars = make([][]float64, len(b.Scalars))
		for i := range d.scalars {
			d.scalars[i] = make([]float64, n)
		}
	}
	return d
}

// sweepAxis reconstructs and solves the Riemann problem along axis for every
// line of cells, accumulating the flux divergence d(F)/d(axis) into div for
// every interior cell that line touches (applyUpdate subtracts dt*div).
func sweepAxis(b *grid.Block, cfg eos.Config, axis direction.Axis, recon reconstruct.Reconstructor, solver riemann.Solver, div *divergence) error {
	nx, ny, nz := b.Dims()
	loI, hiI, loJ, hiJ, loK, hiK := b.InteriorBounds()

	n, loAlong, hiAlong := axisExtent(axis, nx, ny, nz, loI, hiI, loJ, hiJ, loK, hiK)

	transverse := transversePairs(axis, nx, ny, nz)
	var mu sync.Mutex
	var firstErr error
	parallelFor(len(transverse), func(li int) {
		t := transverse[li]
		line := make([]eos.Primitive, n)
		for a := 0; a < n; a++ {
			idx := cellIndex(b, axis, a, t)
			line[a] = eos.PermutePrimitive(axis, cellPrimitive(b, idx, cfg))
		}
		left, right := recon.Reconstruct(line, float64(cfg.Gamma))
		if len(left) != n-1 {
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("integrator: reconstructor %s returned %d interfaces for a %d-cell line", recon.Name(), len(left), n)
			}
			mu.Unlock()
			return
		}
		for a := loAlong - 1; a < hiAlong; a++ {
			if a < 0 || a >= n-1 {
				continue
			}
			flux := solver.Flux(left[a], right[a], float64(cfg.Gamma))
			if cfg.DualEnergy {
				// No Solver computes an internal-energy flux: rho*e_int is a
				// passively advected field, upwinded by the mass flux's sign
				// exactly like a Primitive.Scalars entry. InternalEnergy is
				// untouched by (Un)PermuteConserved, so this can be set either
				// side of the permute/unpermute call.
				flux.InternalEnergy = internalEnergyFlux(float64(flux.Density), left[a], right[a])
			}
			flux = eos.UnpermuteConserved(axis, flux)
			accumulateFlux(b, div, axis, a, t, flux, loAlong, hiAlong)
		}
	})
	return firstErr
}

// internalEnergyFlux upwinds rho*e_int by the sign of the mass flux, the same
// donor-cell convention every Solver already applies to Primitive.Scalars.
func internalEnergyFlux(massFlux float64, wl, wr eos.Primitive) float64 {
	if massFlux >= 0 {
		return massFlux * float64(wl.InternalEnergy) / float64(wl.Density)
	}
	return massFlux * float64(wr.InternalEnergy) / float64(wr.Density)
}

func cellPrimitive(b *grid.Block, idx int, cfg eos.Config) eos.Primitive {
	u := eos.Conserved{
		Density: b.Density[idx], MomentumX: b.MomentumX[idx], MomentumY: b.MomentumY[idx],
		MomentumZ: b.MomentumZ[idx], Energy: b.Energy[idx],
	}
	if cfg.DualEnergy {
		u.InternalEnergy = b.InternalEnergy[idx]
	}
	if cfg.MHD {
		u.Bx, u.By, u.Bz = b.BFieldX[idx], b.BFieldY[idx], b.BFieldZ[idx]
	}
	if len(b.Scalars) > 0 {
		u.Scalars = make([]float64, len(b.Scalars))
		for s := range b.Scalars {
			u.Scalars[s] = b.Scalars[s][idx]
		}
	}
	return eos.ToPrimitive(u, cfg)
}

// axisExtent returns the line length along axis and the interior [lo,hi)
// range of cell positions along that axis that need a flux contribution.
func axisExtent(axis direction.Axis, nx, ny, nz, loI, hiI, loJ, hiJ, loK, hiK int) (n, lo, hi int) {
	switch axis {
	case direction.X:
		return nx, loI, hiI
	case direction.Y:
		return ny, loJ, hiJ
	default:
		return nz, loK, hiK
	}
}

// transversePairs enumerates every line's fixed (non-swept) coordinate pair.
func transversePairs(axis direction.Axis, nx, ny, nz int) [][2]int {
	var pairs [][2]int
	switch axis {
	case direction.X:
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				pairs = append(pairs, [2]int{j, k})
			}
		}
	case direction.Y:
		for i := 0; i < nx; i++ {
			for k := 0; k < nz; k++ {
				pairs = append(pairs, [2]int{i, k})
			}
		}
	default:
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

func cellIndex(b *grid.Block, axis direction.Axis, along int, t [2]int) int {
	switch axis {
	case direction.X:
		return b.Index3D(along, t[0], t[1])
	case direction.Y:
		return b.Index3D(t[0], along, t[1])
	default:
		return b.Index3D(t[0], t[1], along)
	}
}

// accumulateFlux adds interface a's flux to div_i = (F_{i+1/2}-F_{i-1/2})/dx
// for the two cells it borders (a and a+1 along axis), so that the update
// step can apply U -= dt*div directly. Only interior cells within [lo, hi)
// receive a contribution.
func accumulateFlux(b *grid.Block, div *divergence, axis direction.Axis, a int, t [2]int, flux eos.Conserved, lo, hi int) {
	dx := axisSpacing(b, axis)
	left := a
	right := a + 1
	if left >= lo && left < hi {
		idx := cellIndex(b, axis, left, t)
		add(div, idx, flux, 1/dx, b)
	}
	if right >= lo && right < hi {
		idx := cellIndex(b, axis, right, t)
		add(div, idx, flux, -1/dx, b)
	}
}

func axisSpacing(b *grid.Block, axis direction.Axis) float64 {
	switch axis {
	case direction.X:
		return b.Geometry.Dx
	case direction.Y:
		return b.Geometry.Dy
	default:
		return b.Geometry.Dz
	}
}

func add(div *divergence, idx int, flux eos.Conserved, sign float64, b *grid.Block) {
	div.density[idx] += sign * flux.Density
	div.momX[idx] += sign * flux.MomentumX
	div.momY[idx] += sign * flux.MomentumY
	div.momZ[idx] += sign * flux.MomentumZ
	div.energy[idx] += sign * flux.Energy
	if b.Features.DualEnergy {
		div.internalEnergy[idx] += sign * flux.InternalEnergy
	}
	if b.Features.MHD {
		// Each sweep's own normal field (Bx in the permuted frame) carries a
		// zero flux by construction (no monopole sources), so UnpermuteConserved
		// scatters its two nonzero transverse induction fluxes into the OTHER
		// two lab-frame field components. Summing all three axes' contributions
		// here is what lets a face-centered field accumulate its update from
		// the sweeps that do not run along its own axis.
		div.bx[idx] += sign * flux.Bx
		div.by[idx] += sign * flux.By
		div.bz[idx] += sign * flux.Bz
	}
	for s := range div.scalars {
		div.scalars[s][idx] += sign * flux.Scalars[s]
	}
}
