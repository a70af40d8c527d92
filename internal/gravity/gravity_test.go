package gravity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/cholla/internal/grid"
)

func TestZeroPotentialLeavesPhiZero(t *testing.T) {
	b := grid.NewBlock(4, 1, 1, 1, grid.Geometry{Dx: 1}, grid.Features{})
	phi := make([]float64, b.Len())
	for i := range phi {
		phi[i] = 5
	}
	require.NoError(t, ZeroPotential{}.SolvePotential(b, phi))
	for _, v := range phi {
		assert.Equal(t, 0.0, v)
	}
}

func TestAnalyticPotentialEvaluatesAtCellCenters(t *testing.T) {
	b := grid.NewBlock(4, 1, 1, 1, grid.Geometry{Dx: 1, XMin: 0}, grid.Features{})
	phi := make([]float64, b.Len())
	a := AnalyticPotential{At: func(x, y, z float64) float64 { return x }}
	require.NoError(t, a.SolvePotential(b, phi))
	loI, hiI, _, _, _, _ := b.InteriorBounds()
	assert.InDelta(t, 0.5, phi[b.Index3D(loI, 0, 0)], 1e-12)
	assert.InDelta(t, float64(hiI-loI)-0.5, phi[b.Index3D(hiI-1, 0, 0)], 1e-12)
}

func TestAccelerateAddsUniformGravityMomentum(t *testing.T) {
	b := grid.NewBlock(4, 1, 1, 1, grid.Geometry{Dx: 1}, grid.Features{})
	phi := make([]float64, b.Len())
	loI, hiI, loJ, hiJ, loK, hiK := b.InteriorBounds()
	for i := loI; i < hiI; i++ {
		for j := loJ; j < hiJ; j++ {
			for k := loK; k < hiK; k++ {
				idx := b.Index3D(i, j, k)
				b.Density[idx] = 1
				b.Energy[idx] = 1
				phi[idx] = -float64(i) // constant gradient -> uniform g
			}
		}
	}
	Accelerate(b, phi, 1.0, Config{Stencil: ThreePoint, Coupling: CoupleWork})
	idx := b.Index3D(loI+1, loJ, loK)
	assert.NotEqual(t, 0.0, b.MomentumX[idx])
}
