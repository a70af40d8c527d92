package mpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/cholla/internal/grid"
)

func TestLocalExchangerInvokesFill(t *testing.T) {
	called := false
	b := grid.NewBlock(2, 1, 1, 1, grid.Geometry{Dx: 1}, grid.Features{})
	err := LocalExchanger{}.Exchange(b, func(*grid.Block) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestLocalReducerReturnsLocalValue(t *testing.T) {
	v, err := LocalReducer{}.ReduceMin(0.042)
	require.NoError(t, err)
	assert.Equal(t, 0.042, v)
}
