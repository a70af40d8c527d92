// Package linalg supplies the matrix-free linear-algebra primitives the
// core's self-gravity solver needs. CG's inner products and vector updates
// go through gonum/blas/blas64's package-level Level-1 routines rather than
// hand-written loops, so that blas_accel.go's netlib backend swap (adapted
// from the teacher's build-tagged BLAS accelerator, utils/lapack_cgo.go)
// actually changes which code executes a CG iteration, not just which
// backend sits unused behind gonum/mat. The blas64.Vector struct-literal
// construction below is grounded directly on the teacher's own
// utils/vector_extended.go, which builds blas64.Vector{N, Data, Inc}
// literals the same way.
package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
)

// Operator applies a symmetric linear operator to x, writing the result
// into out. len(out) must equal len(x). Implementations must not retain x
// or out beyond the call.
type Operator func(x, out []float64)

func vec(s []float64) blas64.Vector {
	return blas64.Vector{N: len(s), Data: s, Inc: 1}
}

// CG solves Operator(x) = rhs for a symmetric positive-definite Operator via
// the method of conjugate gradients, starting from and overwriting x in
// place. It iterates until the residual's 2-norm relative to ||rhs|| drops
// below tol, or returns an error after maxIter iterations without
// converging. The returned int is the number of iterations performed.
func CG(op Operator, rhs, x []float64, tol float64, maxIter int) (int, error) {
	n := len(rhs)
	if len(x) != n {
		return 0, fmt.Errorf("linalg: rhs has length %d but x has length %d", n, len(x))
	}

	ax := make([]float64, n)
	r := make([]float64, n)
	p := make([]float64, n)
	ap := make([]float64, n)

	op(x, ax)
	copy(r, rhs)
	blas64.Axpy(-1, vec(ax), vec(r)) // r = rhs - A*x

	copy(p, r)

	rhsNorm := blas64.Nrm2(vec(rhs))
	if rhsNorm == 0 {
		rhsNorm = 1
	}
	rsOld := blas64.Dot(vec(r), vec(r))

	for k := 0; k < maxIter; k++ {
		if blas64.Nrm2(vec(r))/rhsNorm < tol {
			return k, nil
		}

		op(p, ap)
		denom := blas64.Dot(vec(p), vec(ap))
		if denom == 0 {
			return k, fmt.Errorf("linalg: conjugate gradient stalled (p.Ap == 0) at iteration %d", k)
		}
		alpha := rsOld / denom

		blas64.Axpy(alpha, vec(p), vec(x))    // x += alpha*p
		blas64.Axpy(-alpha, vec(ap), vec(r))  // r -= alpha*A*p

		rsNew := blas64.Dot(vec(r), vec(r))
		if rsNew == 0 {
			return k + 1, nil
		}
		beta := rsNew / rsOld
		blas64.Scal(beta, vec(p)) // p *= beta
		blas64.Axpy(1, vec(r), vec(p))  // p += r
		rsOld = rsNew
	}
	return maxIter, fmt.Errorf("linalg: conjugate gradient did not converge in %d iterations", maxIter)
}
