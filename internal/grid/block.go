package grid

import "github.com/notargets/cholla/internal/mathx"

// Features selects which optional conserved fields a Block carries, resolved
// once at startup from internal/param (spec.md §3: "Optional fields, each
// present iff its feature is enabled").
type Features struct {
	MHD          bool
	DualEnergy   bool
	NumScalars   int
}

// Geometry describes a uniform Cartesian sub-block's physical extent, used by
// the gravity and timestep collaborators (spec.md §6).
type Geometry struct {
	Dx, Dy, Dz       Real
	XMin, YMin, ZMin Real
}

// Real is re-exported so callers of this package don't need to also import
// internal/mathx for the common case.
type Real = mathx.Real

// Block is the persistent, structure-of-arrays conserved-state storage for one
// local sub-block of the mesh (spec.md §3). Every slice has length Len() and
// is indexed via Index3D. The Block is the sole owner of these arrays; every
// stage of the pipeline receives a pointer to the same Block rather than
// cloning it.
type Block struct {
	Nx, Ny, Nz int // interior cell counts
	Ghost      int // ghost cells per side; must be >= the active reconstruction's stencil half-width

	Geometry Geometry
	Features Features

	Density   []Real
	MomentumX []Real
	MomentumY []Real
	MomentumZ []Real
	Energy    []Real

	InternalEnergy []Real // present iff Features.DualEnergy
	BFieldX        []Real // present iff Features.MHD (face-centered)
	BFieldY        []Real
	BFieldZ        []Real
	Scalars        [][]Real // len(Scalars) == Features.NumScalars

	totalNx, totalNy, totalNz int
}

// NewBlock allocates a Block's persistent arrays for the given interior extent,
// ghost width, and feature set.
func NewBlock(nx, ny, nz, ghost int, geom Geometry, features Features) *Block {
	b := &Block{
		Nx: nx, Ny: ny, Nz: nz, Ghost: ghost,
		Geometry: geom, Features: features,
		totalNx: nx + 2*ghost, totalNy: ny + 2*ghost, totalNz: nz + 2*ghost,
	}
	n := b.totalNx * b.totalNy * b.totalNz
	b.Density = make([]Real, n)
	b.MomentumX = make([]Real, n)
	b.MomentumY = make([]Real, n)
	b.MomentumZ = make([]Real, n)
	b.Energy = make([]Real, n)
	if features.DualEnergy {
		b.InternalEnergy = make([]Real, n)
	}
	if features.MHD {
		b.BFieldX = make([]Real, n)
		b.BFieldY = make([]Real, n)
		b.BFieldZ = make([]Real, n)
	}
	if features.NumScalars > 0 {
		b.Scalars = make([][]Real, features.NumScalars)
		for s := range b.Scalars {
			b.Scalars[s] = make([]Real, n)
		}
	}
	return b
}

// Clone allocates a new Block with identical shape/features and a copy of
// every field array's contents. Used by the Van Leer integrator to hold U^n
// while U^{n+1/2} is assembled.
func (b *Block) Clone() *Block {
	c := NewBlock(b.Nx, b.Ny, b.Nz, b.Ghost, b.Geometry, b.Features)
	copy(c.Density, b.Density)
	copy(c.MomentumX, b.MomentumX)
	copy(c.MomentumY, b.MomentumY)
	copy(c.MomentumZ, b.MomentumZ)
	copy(c.Energy, b.Energy)
	if b.Features.DualEnergy {
		copy(c.InternalEnergy, b.InternalEnergy)
	}
	if b.Features.MHD {
		copy(c.BFieldX, b.BFieldX)
		copy(c.BFieldY, b.BFieldY)
		copy(c.BFieldZ, b.BFieldZ)
	}
	for s := range b.Scalars {
		copy(c.Scalars[s], b.Scalars[s])
	}
	return c
}

// CopyFrom overwrites b's field arrays in place with src's, requiring matching
// shape/features. Used to fold an intermediate stage's state back into the
// persistent Block without reallocating.
func (b *Block) CopyFrom(src *Block) {
	copy(b.Density, src.Density)
	copy(b.MomentumX, src.MomentumX)
	copy(b.MomentumY, src.MomentumY)
	copy(b.MomentumZ, src.MomentumZ)
	copy(b.Energy, src.Energy)
	if b.Features.DualEnergy {
		copy(b.InternalEnergy, src.InternalEnergy)
	}
	if b.Features.MHD {
		copy(b.BFieldX, src.BFieldX)
		copy(b.BFieldY, src.BFieldY)
		copy(b.BFieldZ, src.BFieldZ)
	}
	for s := range b.Scalars {
		copy(b.Scalars[s], src.Scalars[s])
	}
}
