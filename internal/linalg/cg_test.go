package linalg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// diagonalOperator builds a trivial SPD operator Ax = diag(d) * x, letting a
// test check CG's answer against a closed form (x_i = rhs_i / d_i).
func diagonalOperator(d []float64) Operator {
	return func(x, out []float64) {
		for i, v := range d {
			out[i] = v * x[i]
		}
	}
}

func TestCGSolvesDiagonalSystemExactly(t *testing.T) {
	d := []float64{2, 4, 8, 1}
	rhs := []float64{4, 8, 8, 3}
	x := make([]float64, len(rhs))

	iters, err := CG(diagonalOperator(d), rhs, x, 1e-10, 100)
	require.NoError(t, err)
	assert.LessOrEqual(t, iters, len(rhs))

	want := []float64{2, 2, 1, 3}
	for i := range want {
		assert.InDelta(t, want[i], x[i], 1e-8)
	}
}

func TestCGSolvesTridiagonalPoissonLikeSystem(t *testing.T) {
	const n = 20
	op := func(x, out []float64) {
		for i := 0; i < n; i++ {
			v := 2 * x[i]
			if i > 0 {
				v -= x[i-1]
			}
			if i < n-1 {
				v -= x[i+1]
			}
			out[i] = v
		}
	}
	rhs := make([]float64, n)
	for i := range rhs {
		rhs[i] = 1
	}
	x := make([]float64, n)

	_, err := CG(op, rhs, x, 1e-10, 500)
	require.NoError(t, err)

	ax := make([]float64, n)
	op(x, ax)
	for i := range rhs {
		assert.InDelta(t, rhs[i], ax[i], 1e-6)
	}
}

func TestCGReturnsErrorWhenItStalls(t *testing.T) {
	zero := Operator(func(x, out []float64) {
		for i := range out {
			out[i] = 0
		}
	})
	rhs := []float64{1, 1}
	x := make([]float64, 2)

	_, err := CG(zero, rhs, x, 1e-8, 10)
	assert.Error(t, err)
}

func TestCGRejectsMismatchedLengths(t *testing.T) {
	op := diagonalOperator([]float64{1, 1})
	_, err := CG(op, []float64{1, 2}, make([]float64, 3), 1e-8, 10)
	assert.Error(t, err)
}

func TestCGConvergesImmediatelyOnExactInitialGuess(t *testing.T) {
	d := []float64{3, 5}
	rhs := []float64{6, 10}
	x := []float64{2, 2}

	iters, err := CG(diagonalOperator(d), rhs, x, 1e-10, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, iters)
	assert.False(t, math.IsNaN(x[0]))
}
