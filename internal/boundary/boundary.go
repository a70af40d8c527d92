// Package boundary implements the ghost-cell fill collaborator of spec.md
// §4.8: before each reconstruction pass the integrator calls a Filler to
// populate every face's ghost cells from either a periodic neighbor, a
// reflected interior state, a transmissive copy, or a user-supplied analytic
// state. The core treats this strictly as a collaborator boundary — it never
// reaches into the MPI/halo-exchange machinery itself (spec.md §6's
// fill_ghosts contract).
package boundary

import (
	"fmt"
	"strings"

	"github.com/notargets/cholla/internal/direction"
	"github.com/notargets/cholla/internal/grid"
)

// Filler populates the ghost cells of every face of b in place.
type Filler interface {
	Name() string
	Fill(b *grid.Block) error
}

// Kind names the boundary condition a Filler implements.
type Kind string

const (
	PeriodicKind  Kind = "periodic"
	ReflectiveKind Kind = "reflective"
	OutflowKind   Kind = "outflow"
)

// New builds the named Filler. CustomKind fillers are not produced by this
// factory; construct a Custom value directly and supply its analytic state
// function.
func New(kind string) (Filler, error) {
	switch Kind(strings.ToLower(kind)) {
	case PeriodicKind:
		return Periodic{}, nil
	case ReflectiveKind:
		return Reflective{}, nil
	case OutflowKind:
		return Outflow{}, nil
	default:
		return nil, fmt.Errorf("boundary: unknown boundary kind %q", kind)
	}
}

// forEachPeriodicPair walks every ghost cell on the given face, calling fn
// with the ghost cell's flat index and the flat index of the interior cell
// the same distance in from the OPPOSITE face (periodic wraparound).
func forEachPeriodicPair(b *grid.Block, face direction.Face, fn func(ghostIdx, sourceIdx int)) {
	nx, ny, nz := b.Dims()
	g := b.Ghost
	switch face.Axis() {
	case direction.X:
		for gi := 0; gi < g; gi++ {
			var ghostI, srcI int
			if face.Lo() {
				ghostI = g - 1 - gi
				srcI = nx - g - 1 - gi
			} else {
				ghostI = nx - g + gi
				srcI = g + gi
			}
			for j := 0; j < ny; j++ {
				for k := 0; k < nz; k++ {
					fn(b.Index3D(ghostI, j, k), b.Index3D(srcI, j, k))
				}
			}
		}
	case direction.Y:
		for gi := 0; gi < g; gi++ {
			var ghostJ, srcJ int
			if face.Lo() {
				ghostJ = g - 1 - gi
				srcJ = ny - g - 1 - gi
			} else {
				ghostJ = ny - g + gi
				srcJ = g + gi
			}
			for i := 0; i < nx; i++ {
				for k := 0; k < nz; k++ {
					fn(b.Index3D(i, ghostJ, k), b.Index3D(i, srcJ, k))
				}
			}
		}
	case direction.Z:
		for gi := 0; gi < g; gi++ {
			var ghostK, srcK int
			if face.Lo() {
				ghostK = g - 1 - gi
				srcK = nz - g - 1 - gi
			} else {
				ghostK = nz - g + gi
				srcK = g + gi
			}
			for i := 0; i < nx; i++ {
				for j := 0; j < ny; j++ {
					fn(b.Index3D(i, j, ghostK), b.Index3D(i, j, srcK))
				}
			}
		}
	}
}

// forEachMirrorPair walks every ghost cell on the given face, calling fn
// with the ghost cell's flat index and the flat index of the interior cell
// the same distance IN from this same face (used by Reflective and Outflow,
// which never reach across to the opposite face).
func forEachMirrorPair(b *grid.Block, face direction.Face, fn func(ghostIdx, sourceIdx int)) {
	nx, ny, nz := b.Dims()
	g := b.Ghost
	switch face.Axis() {
	case direction.X:
		for gi := 0; gi < g; gi++ {
			var ghostI, srcI int
			if face.Lo() {
				ghostI = g - 1 - gi
				srcI = g + gi
			} else {
				ghostI = nx - g + gi
				srcI = nx - g - 1 - gi
			}
			for j := 0; j < ny; j++ {
				for k := 0; k < nz; k++ {
					fn(b.Index3D(ghostI, j, k), b.Index3D(srcI, j, k))
				}
			}
		}
	case direction.Y:
		for gi := 0; gi < g; gi++ {
			var ghostJ, srcJ int
			if face.Lo() {
				ghostJ = g - 1 - gi
				srcJ = g + gi
			} else {
				ghostJ = ny - g + gi
				srcJ = ny - g - 1 - gi
			}
			for i := 0; i < nx; i++ {
				for k := 0; k < nz; k++ {
					fn(b.Index3D(i, ghostJ, k), b.Index3D(i, srcJ, k))
				}
			}
		}
	case direction.Z:
		for gi := 0; gi < g; gi++ {
			var ghostK, srcK int
			if face.Lo() {
				ghostK = g - 1 - gi
				srcK = g + gi
			} else {
				ghostK = nz - g + gi
				srcK = nz - g - 1 - gi
			}
			for i := 0; i < nx; i++ {
				for j := 0; j < ny; j++ {
					fn(b.Index3D(i, j, ghostK), b.Index3D(i, j, srcK))
				}
			}
		}
	}
}

func allFaces() []direction.Face {
	return []direction.Face{
		direction.FaceXLo, direction.FaceXHi,
		direction.FaceYLo, direction.FaceYHi,
		direction.FaceZLo, direction.FaceZHi,
	}
}

func copyCell(b *grid.Block, dst, src int) {
	b.Density[dst] = b.Density[src]
	b.MomentumX[dst] = b.MomentumX[src]
	b.MomentumY[dst] = b.MomentumY[src]
	b.MomentumZ[dst] = b.MomentumZ[src]
	b.Energy[dst] = b.Energy[src]
	if b.Features.DualEnergy {
		b.InternalEnergy[dst] = b.InternalEnergy[src]
	}
	if b.Features.MHD {
		b.BFieldX[dst] = b.BFieldX[src]
		b.BFieldY[dst] = b.BFieldY[src]
		b.BFieldZ[dst] = b.BFieldZ[src]
	}
	for s := range b.Scalars {
		b.Scalars[s][dst] = b.Scalars[s][src]
	}
}
