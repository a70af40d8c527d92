// Package timestep implements the CFL-limited stable timestep controller of
// spec.md §4.7: the minimum over all cells of dx/(|v|+c_fast) along every
// active axis, scaled by the CFL number and capped at a configured maximum.
package timestep

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/cholla/internal/eos"
	"github.com/notargets/cholla/internal/grid"
)

// Controller holds the configuration the per-step Compute call needs.
type Controller struct {
	CFLNumber float64
	DtMax     float64
	Floors    eos.Floors
}

// Compute returns the CFL-limited Δt for one sub-block, the local
// (pre-reduction) half of the global Δt the timestep collaborator interface
// combines across ranks (spec.md §6's "gather the minimum across sub-blocks"
// reduction, done by internal/mpi.Reducer above this package).
func (c Controller) Compute(b *grid.Block, cfg eos.Config) float64 {
	loI, hiI, loJ, hiJ, loK, hiK := b.InteriorBounds()
	minDtOverCFL := math.Inf(1)

	floorSpeed := math.Sqrt(float64(cfg.Gamma) * float64(c.Floors.Pressure) / float64(c.Floors.Density))

	for i := loI; i < hiI; i++ {
		for j := loJ; j < hiJ; j++ {
			for k := loK; k < hiK; k++ {
				idx := b.Index3D(i, j, k)
				u := eos.Conserved{
					Density:   b.Density[idx],
					MomentumX: b.MomentumX[idx],
					MomentumY: b.MomentumY[idx],
					MomentumZ: b.MomentumZ[idx],
					Energy:    b.Energy[idx],
				}
				if cfg.MHD {
					u.Bx, u.By, u.Bz = b.BFieldX[idx], b.BFieldY[idx], b.BFieldZ[idx]
				}
				w := eos.ToPrimitive(u, cfg)
				cFast := soundOrFastSpeed(w, cfg)
				if cFast < floorSpeed {
					cFast = floorSpeed
				}
				dtX := b.Geometry.Dx / (math.Abs(float64(w.Vx)) + cFast)
				dtY := math.Inf(1)
				if b.Geometry.Dy > 0 {
					dtY = b.Geometry.Dy / (math.Abs(float64(w.Vy)) + cFast)
				}
				dtZ := math.Inf(1)
				if b.Geometry.Dz > 0 {
					dtZ = b.Geometry.Dz / (math.Abs(float64(w.Vz)) + cFast)
				}
				local := math.Min(dtX, math.Min(dtY, dtZ))
				if local < minDtOverCFL {
					minDtOverCFL = local
				}
			}
		}
	}
	dt := c.CFLNumber * minDtOverCFL
	if c.DtMax > 0 {
		dt = math.Min(dt, c.DtMax)
	}
	return dt
}

func soundOrFastSpeed(w eos.Primitive, cfg eos.Config) float64 {
	if !cfg.MHD {
		return math.Sqrt(float64(cfg.Gamma) * float64(w.Pressure) / float64(w.Density))
	}
	a2 := float64(cfg.Gamma) * float64(w.Pressure) / float64(w.Density)
	bx, by, bz := float64(w.Bx), float64(w.By), float64(w.Bz)
	caX2 := bx * bx / float64(w.Density)
	ca2 := (bx*bx + by*by + bz*bz) / float64(w.Density)
	disc := (a2+ca2)*(a2+ca2) - 4*a2*caX2
	if disc < 0 {
		disc = 0
	}
	return math.Sqrt(0.5 * (a2 + ca2 + math.Sqrt(disc)))
}

// Reduce combines per-block local Δt candidates into a single value using
// the minimum (+Inf for no candidates). It is a standalone helper: the run
// loop in internal/sim takes the global minimum through mpi.Reducer instead.
func Reduce(candidates []float64) float64 {
	if len(candidates) == 0 {
		return math.Inf(1)
	}
	return floats.Min(candidates)
}
