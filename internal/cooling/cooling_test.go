package cooling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/cholla/internal/eos"
	"github.com/notargets/cholla/internal/grid"
)

func TestNoCoolingIsZero(t *testing.T) {
	assert.Equal(t, 0.0, NoCooling{}.Lambda(1, 1e4))
}

func TestPowerLawTablePositiveAboveFloor(t *testing.T) {
	table := PowerLawTable{Coefficient: 1e-23, Exponent: -0.5, FloorTemp: 100}
	assert.Greater(t, table.Lambda(1, 1e4), 0.0)
	assert.Equal(t, 0.0, table.Lambda(1, 50))
}

func TestApplyReducesEnergyWhenCooling(t *testing.T) {
	b := grid.NewBlock(2, 1, 1, 1, grid.Geometry{Dx: 1}, grid.Features{DualEnergy: true})
	loI, hiI, loJ, hiJ, loK, hiK := b.InteriorBounds()
	for i := loI; i < hiI; i++ {
		for j := loJ; j < hiJ; j++ {
			for k := loK; k < hiK; k++ {
				idx := b.Index3D(i, j, k)
				b.Density[idx] = 1
				b.Energy[idx] = 100
				b.InternalEnergy[idx] = 80
			}
		}
	}
	before := b.Energy[b.Index3D(loI, loJ, loK)]
	table := PowerLawTable{Coefficient: 1e-2, Exponent: 0, FloorTemp: 0}
	cfg := Config{Gamma: 1.4, MeanMolecularWeight: 0.6}
	Apply(b, 1.0, table, cfg, eos.Config{Gamma: 1.4, DualEnergy: true})
	after := b.Energy[b.Index3D(loI, loJ, loK)]
	assert.Less(t, after, before)
}

func TestApplyNoopWithNoCooling(t *testing.T) {
	b := grid.NewBlock(2, 1, 1, 1, grid.Geometry{Dx: 1}, grid.Features{})
	loI, hiI, loJ, hiJ, loK, hiK := b.InteriorBounds()
	for i := loI; i < hiI; i++ {
		for j := loJ; j < hiJ; j++ {
			for k := loK; k < hiK; k++ {
				idx := b.Index3D(i, j, k)
				b.Density[idx] = 1
				b.Energy[idx] = 100
			}
		}
	}
	before := b.Energy[b.Index3D(loI, loJ, loK)]
	Apply(b, 1.0, NoCooling{}, Config{Gamma: 1.4, MeanMolecularWeight: 0.6}, eos.Config{Gamma: 1.4})
	after := b.Energy[b.Index3D(loI, loJ, loK)]
	assert.Equal(t, before, after)
}
