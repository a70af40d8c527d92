package boundary

import (
	"github.com/notargets/cholla/internal/direction"
	"github.com/notargets/cholla/internal/grid"
)

// Reflective fills ghost cells with the mirrored interior state: the
// face-normal velocity and normal magnetic-field component are negated, all
// other fields copied (spec.md §4.8: "reflected state: flip normal velocity
// and normal B").
type Reflective struct{}

func (Reflective) Name() string { return "reflective" }

func (Reflective) Fill(b *grid.Block) error {
	for _, face := range allFaces() {
		axis := face.Axis()
		forEachMirrorPair(b, face, func(ghostIdx, sourceIdx int) {
			copyCell(b, ghostIdx, sourceIdx)
			flipNormal(b, ghostIdx, axis)
		})
	}
	return nil
}

func flipNormal(b *grid.Block, idx int, axis direction.Axis) {
	switch axis {
	case direction.X:
		b.MomentumX[idx] = -b.MomentumX[idx]
		if b.Features.MHD {
			b.BFieldX[idx] = -b.BFieldX[idx]
		}
	case direction.Y:
		b.MomentumY[idx] = -b.MomentumY[idx]
		if b.Features.MHD {
			b.BFieldY[idx] = -b.BFieldY[idx]
		}
	case direction.Z:
		b.MomentumZ[idx] = -b.MomentumZ[idx]
		if b.Features.MHD {
			b.BFieldZ[idx] = -b.BFieldZ[idx]
		}
	}
}
