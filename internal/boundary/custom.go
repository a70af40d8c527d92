package boundary

import "github.com/notargets/cholla/internal/grid"

// State is the analytic value a Custom filler supplies for one ghost cell,
// in conserved variables.
type State struct {
	Density                Real
	MomentumX, MomentumY, MomentumZ Real
	Energy                 Real
	InternalEnergy         Real
	Bx, By, Bz             Real
	Scalars                []Real
}

// Real mirrors the core's shared scalar element type so Custom's analytic
// function signature does not force callers to import internal/mathx
// directly.
type Real = float64

// Custom fills ghost cells from a user-supplied analytic state function,
// invoked once per ghost cell with that cell's physical-space coordinates
// (spec.md §4.8's "user-supplied analytic state").
type Custom struct {
	// At returns the analytic state at the cell-centered physical coordinate
	// (x, y, z).
	At func(x, y, z float64) State
}

func (Custom) Name() string { return "custom" }

func (c Custom) Fill(b *grid.Block) error {
	nx, ny, nz := b.Dims()
	g := b.Ghost
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				if i >= g && i < nx-g && j >= g && j < ny-g && k >= g && k < nz-g {
					continue
				}
				x := b.Geometry.XMin + (float64(i-g)+0.5)*b.Geometry.Dx
				y := b.Geometry.YMin + (float64(j-g)+0.5)*b.Geometry.Dy
				z := b.Geometry.ZMin + (float64(k-g)+0.5)*b.Geometry.Dz
				s := c.At(x, y, z)
				idx := b.Index3D(i, j, k)
				b.Density[idx] = s.Density
				b.MomentumX[idx] = s.MomentumX
				b.MomentumY[idx] = s.MomentumY
				b.MomentumZ[idx] = s.MomentumZ
				b.Energy[idx] = s.Energy
				if b.Features.DualEnergy {
					b.InternalEnergy[idx] = s.InternalEnergy
				}
				if b.Features.MHD {
					b.BFieldX[idx] = s.Bx
					b.BFieldY[idx] = s.By
					b.BFieldZ[idx] = s.Bz
				}
				for si := range b.Scalars {
					if si < len(s.Scalars) {
						b.Scalars[si][idx] = s.Scalars[si]
					}
				}
			}
		}
	}
	return nil
}
