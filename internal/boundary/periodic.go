package boundary

import "github.com/notargets/cholla/internal/grid"

// Periodic fills ghost cells by wrapping to the opposite face's interior
// cells (spec.md §4.8).
type Periodic struct{}

func (Periodic) Name() string { return "periodic" }

func (Periodic) Fill(b *grid.Block) error {
	for _, face := range allFaces() {
		forEachPeriodicPair(b, face, func(ghostIdx, sourceIdx int) {
			copyCell(b, ghostIdx, sourceIdx)
		})
	}
	return nil
}
