package gravity

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/cholla/internal/grid"
	"github.com/notargets/cholla/internal/linalg"
)

// GravitationalConstant is Newton's G in CGS units (cm^3 g^-1 s^-2), the
// default SelfGravity.G when a caller leaves it zero.
const GravitationalConstant = 6.674e-8

// SelfGravity is a Solver that solves the Poisson equation nabla^2(phi) =
// 4*pi*G*rho for the potential sourcing Accelerate. The discrete Laplacian
// is assembled once per solve as a github.com/james-bowman/sparse.CSR
// matrix (the teacher's own sparse-matrix dependency, otherwise only used
// by the DG assembly code this core has no use for) and applied through
// internal/linalg.CG's matrix-free conjugate-gradient iteration.
//
// Ghost cells of phi are never iterated on directly: IsPeriodic selects
// between periodic wraparound (matching a periodic Filler) and a fixed
// phi=0 Dirichlet condition at the domain edge, a standard simplification
// for an "isolated" boundary that keeps the discrete operator strictly
// definite (a pure Neumann/zero-gradient condition would leave the constant
// mode unconstrained and the system singular).
type SelfGravity struct {
	G          float64
	Tolerance  float64
	MaxIter    int
	IsPeriodic bool
}

func (s SelfGravity) SolvePotential(b *grid.Block, phi []float64) error {
	loI, hiI, loJ, hiJ, loK, hiK := b.InteriorBounds()
	nx, ny, nz := hiI-loI, hiJ-loJ, hiK-loK
	n := nx * ny * nz

	dx2 := square(float64(b.Geometry.Dx))
	dy2 := dx2
	if ny > 1 {
		dy2 = square(float64(b.Geometry.Dy))
	}
	dz2 := dx2
	if nz > 1 {
		dz2 = square(float64(b.Geometry.Dz))
	}

	negLaplacian := s.negativeLaplacian(nx, ny, nz, dx2, dy2, dz2)

	g := s.G
	if g == 0 {
		g = GravitationalConstant
	}

	rhs := make([]float64, n)
	x := make([]float64, n)
	c := 0
	for k := loK; k < hiK; k++ {
		for j := loJ; j < hiJ; j++ {
			for i := loI; i < hiI; i++ {
				// -nabla^2(phi) = -4*pi*G*rho, so CG sees a positive-definite
				// operator rather than the Poisson equation's negative-definite one.
				rhs[c] = -4 * math.Pi * g * float64(b.Density[b.Index3D(i, j, k)])
				c++
			}
		}
	}

	tol := s.Tolerance
	if tol <= 0 {
		tol = 1e-8
	}
	maxIter := s.MaxIter
	if maxIter <= 0 {
		maxIter = 4 * n
	}

	if _, err := linalg.CG(negLaplacian, rhs, x, tol, maxIter); err != nil {
		return fmt.Errorf("gravity: self-gravity Poisson solve: %w", err)
	}

	c = 0
	for k := loK; k < hiK; k++ {
		for j := loJ; j < hiJ; j++ {
			for i := loI; i < hiI; i++ {
				phi[b.Index3D(i, j, k)] = x[c]
				c++
			}
		}
	}
	fillGhostPotential(b, phi)
	return nil
}

// negativeLaplacian assembles -nabla^2 over the local (0..nx, 0..ny, 0..nz)
// interior index space CG solves in as a sparse.DOK matrix (one Set per
// stencil entry), converts it to CSR for the repeated matrix-vector products
// CG performs, and resolves a neighbor one cell outside that space either by
// periodic wraparound or by treating it as a fixed phi=0 boundary value, per
// IsPeriodic.
func (s SelfGravity) negativeLaplacian(nx, ny, nz int, dx2, dy2, dz2 float64) linalg.Operator {
	n := nx * ny * nz
	dok := sparse.NewDOK(n, n)

	add := func(row, col int, v float64) {
		dok.Set(row, col, dok.At(row, col)+v)
	}
	neighbor := func(i, j, k int) (int, bool) {
		if s.IsPeriodic {
			i = ((i % nx) + nx) % nx
			j = ((j % ny) + ny) % ny
			k = ((k % nz) + nz) % nz
			return i + nx*(j+ny*k), true
		}
		if i < 0 || i >= nx || j < 0 || j >= ny || k < 0 || k >= nz {
			return 0, false
		}
		return i + nx*(j+ny*k), true
	}

	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				row := i + nx*(j+ny*k)
				diag := 2 / dx2
				if ny > 1 {
					diag += 2 / dy2
				}
				if nz > 1 {
					diag += 2 / dz2
				}
				add(row, row, diag)

				if c, ok := neighbor(i-1, j, k); ok {
					add(row, c, -1/dx2)
				}
				if c, ok := neighbor(i+1, j, k); ok {
					add(row, c, -1/dx2)
				}
				if ny > 1 {
					if c, ok := neighbor(i, j-1, k); ok {
						add(row, c, -1/dy2)
					}
					if c, ok := neighbor(i, j+1, k); ok {
						add(row, c, -1/dy2)
					}
				}
				if nz > 1 {
					if c, ok := neighbor(i, j, k-1); ok {
						add(row, c, -1/dz2)
					}
					if c, ok := neighbor(i, j, k+1); ok {
						add(row, c, -1/dz2)
					}
				}
			}
		}
	}

	csr := dok.ToCSR()
	return func(x, out []float64) {
		xv := mat.NewVecDense(n, x)
		var yv mat.VecDense
		yv.MulVec(csr, xv)
		copy(out, yv.RawVector().Data)
	}
}

// fillGhostPotential extends phi's interior solution into every ghost cell
// by nearest-interior-plane replication, so Accelerate's centered-difference
// stencil (gravity.go's gradient) has a value to read at every cell it
// touches; SolvePotential never writes phi's ghost region directly.
func fillGhostPotential(b *grid.Block, phi []float64) {
	nx, ny, nz := b.Dims()
	loI, hiI, loJ, hiJ, loK, hiK := b.InteriorBounds()
	clamp := func(v, lo, hi int) int {
		if v < lo {
			return lo
		}
		if v >= hi {
			return hi - 1
		}
		return v
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				if i >= loI && i < hiI && j >= loJ && j < hiJ && k >= loK && k < hiK {
					continue
				}
				si, sj, sk := clamp(i, loI, hiI), clamp(j, loJ, hiJ), clamp(k, loK, hiK)
				phi[b.Index3D(i, j, k)] = phi[b.Index3D(si, sj, sk)]
			}
		}
	}
}

func square(v float64) float64 { return v * v }
