package boundary

import (
	"github.com/notargets/cholla/internal/direction"
	"github.com/notargets/cholla/internal/grid"
)

// Outflow fills every ghost cell on a face with a copy of that column's
// innermost interior (active) cell: zero-order extrapolation, the standard
// transmissive boundary that lets waves leave the domain without reflection
// (spec.md §4.8).
type Outflow struct{}

func (Outflow) Name() string { return "outflow" }

func (Outflow) Fill(b *grid.Block) error {
	nx, ny, nz := b.Dims()
	g := b.Ghost
	for _, face := range allFaces() {
		switch face.Axis() {
		case direction.X:
			edgeI := g
			if !face.Lo() {
				edgeI = nx - g - 1
			}
			for j := 0; j < ny; j++ {
				for k := 0; k < nz; k++ {
					edge := b.Index3D(edgeI, j, k)
					for gi := 0; gi < g; gi++ {
						ghostI := g - 1 - gi
						if !face.Lo() {
							ghostI = nx - g + gi
						}
						copyCell(b, b.Index3D(ghostI, j, k), edge)
					}
				}
			}
		case direction.Y:
			edgeJ := g
			if !face.Lo() {
				edgeJ = ny - g - 1
			}
			for i := 0; i < nx; i++ {
				for k := 0; k < nz; k++ {
					edge := b.Index3D(i, edgeJ, k)
					for gi := 0; gi < g; gi++ {
						ghostJ := g - 1 - gi
						if !face.Lo() {
							ghostJ = ny - g + gi
						}
						copyCell(b, b.Index3D(i, ghostJ, k), edge)
					}
				}
			}
		case direction.Z:
			edgeK := g
			if !face.Lo() {
				edgeK = nz - g - 1
			}
			for i := 0; i < nx; i++ {
				for j := 0; j < ny; j++ {
					edge := b.Index3D(i, j, edgeK)
					for gi := 0; gi < g; gi++ {
						ghostK := g - 1 - gi
						if !face.Lo() {
							ghostK = nz - g + gi
						}
						copyCell(b, b.Index3D(i, j, ghostK), edge)
					}
				}
			}
		}
	}
	return nil
}
