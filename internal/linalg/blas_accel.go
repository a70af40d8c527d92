//go:build cgo

package linalg

/*
#cgo CFLAGS: -march=native -mavx -mavx2
#cgo LDFLAGS: -lopenblas -llapacke -lgfortran -lm -lpthread
#include <cblas.h>
#include <lapacke.h>
*/
import "C"

import (
	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// init swaps gonum's pure-Go blas64 implementation for netlib's cgo-wrapped
// OpenBLAS/LAPACKE backend. blas64.Use is process-global, so installing it
// here changes the backend CG's Dot/Axpy/Nrm2/Scal calls (cg.go) dispatch
// through for the lifetime of the process, not just this package's own
// calls.
func init() {
	blas64.Use(netblas.Implementation{})
}
