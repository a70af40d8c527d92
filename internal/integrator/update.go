package integrator

import (
	"github.com/notargets/cholla/internal/dualenergy"
	"github.com/notargets/cholla/internal/eos"
	"github.com/notargets/cholla/internal/grid"
)

// applyUpdate advances every interior cell of b by U -= dt*div (spec.md
// §4.4's conservative update), then applies the floor policy and, when dual
// energy is active, the pressure-selection/synchronization pass of spec.md
// §4.5, all in place.
func applyUpdate(b *grid.Block, div *divergence, dt float64, cfg eos.Config, floors eos.Floors) {
	loI, hiI, loJ, hiJ, loK, hiK := b.InteriorBounds()
	for k := loK; k < hiK; k++ {
		for j := loJ; j < hiJ; j++ {
			for i := loI; i < hiI; i++ {
				idx := b.Index3D(i, j, k)

				b.Density[idx] -= eos.Real(dt) * eos.Real(div.density[idx])
				b.MomentumX[idx] -= eos.Real(dt) * eos.Real(div.momX[idx])
				b.MomentumY[idx] -= eos.Real(dt) * eos.Real(div.momY[idx])
				b.MomentumZ[idx] -= eos.Real(dt) * eos.Real(div.momZ[idx])
				b.Energy[idx] -= eos.Real(dt) * eos.Real(div.energy[idx])
				if b.Features.DualEnergy {
					b.InternalEnergy[idx] -= eos.Real(dt) * eos.Real(div.internalEnergy[idx])
				}
				if b.Features.MHD {
					b.BFieldX[idx] -= eos.Real(dt) * eos.Real(div.bx[idx])
					b.BFieldY[idx] -= eos.Real(dt) * eos.Real(div.by[idx])
					b.BFieldZ[idx] -= eos.Real(dt) * eos.Real(div.bz[idx])
				}
				for s := range div.scalars {
					b.Scalars[s][idx] -= eos.Real(dt) * eos.Real(div.scalars[s][idx])
				}

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

				eos.EnforceFloors(&u, cfg, floors)

				if cfg.DualEnergy {
					u.Energy, u.InternalEnergy = synchronizeDualEnergy(u, cfg)
				}

				b.Density[idx] = u.Density
				b.MomentumX[idx] = u.MomentumX
				b.MomentumY[idx] = u.MomentumY
				b.MomentumZ[idx] = u.MomentumZ
				b.Energy[idx] = u.Energy
				if cfg.DualEnergy {
					b.InternalEnergy[idx] = u.InternalEnergy
				}
			}
		}
	}
}

// synchronizeDualEnergy applies the spec.md §4.5 selection rule to a single
// cell's post-update conserved state and returns the resynchronized
// (E, e_int) pair.
func synchronizeDualEnergy(u eos.Conserved, cfg eos.Config) (energy, internalEnergy eos.Real) {
	vx, vy, vz := u.MomentumX/u.Density, u.MomentumY/u.Density, u.MomentumZ/u.Density
	ke := 0.5 * u.Density * (vx*vx + vy*vy + vz*vz)
	var me eos.Real
	if cfg.MHD {
		me = 0.5 * (u.Bx*u.Bx + u.By*u.By + u.Bz*u.Bz)
	}
	_, useInternal := dualenergy.SelectPressure(
		float64(u.Energy), float64(ke), float64(me), float64(u.InternalEnergy),
		float64(cfg.Gamma), dualenergy.Eta1,
	)
	newE, newEint := dualenergy.Synchronize(float64(u.Energy), float64(ke), float64(me), float64(u.InternalEnergy), useInternal)
	return eos.Real(newE), eos.Real(newEint)
}
