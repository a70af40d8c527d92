package grid

// Index3D converts a (i, j, k) ghost-inclusive cell coordinate into a flat
// offset into a field array, with x varying fastest (matching the teacher's
// flat-matrix storage convention in utils.Matrix.RawMatrix().Data).
func (b *Block) Index3D(i, j, k int) int {
	return i + b.totalNx*(j+b.totalNy*k)
}

// Dims returns the ghost-inclusive extents of every field array.
func (b *Block) Dims() (nx, ny, nz int) {
	return b.totalNx, b.totalNy, b.totalNz
}

// InteriorBounds returns the half-open [lo, hi) index range of non-ghost cells
// along each of the three axes.
func (b *Block) InteriorBounds() (loI, hiI, loJ, hiJ, loK, hiK int) {
	g := b.Ghost
	return g, g + b.Nx, g, g + b.Ny, g, g + b.Nz
}

// Len returns the total number of cells (including ghosts) in every field array.
func (b *Block) Len() int {
	return b.totalNx * b.totalNy * b.totalNz
}
