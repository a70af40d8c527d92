package integrator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/cholla/internal/boundary"
	"github.com/notargets/cholla/internal/eos"
	"github.com/notargets/cholla/internal/grid"
	"github.com/notargets/cholla/internal/reconstruct"
	"github.com/notargets/cholla/internal/riemann"
)

const gamma = 1.4

func fillPeriodic(b *grid.Block) error {
	return boundary.Periodic{}.Fill(b)
}

func sodBlock(nx, ghost int) *grid.Block {
	b := grid.NewBlock(nx, 1, 1, ghost, grid.Geometry{Dx: 1.0 / float64(nx)}, grid.Features{})
	cfg := eos.Config{Gamma: gamma}
	for i := 0; i < b.Nx; i++ {
		idx := b.Index3D(i+b.Ghost, b.Ghost, b.Ghost)
		var w eos.Primitive
		if i < b.Nx/2 {
			w = eos.Primitive{Density: 1.0, Pressure: 1.0}
		} else {
			w = eos.Primitive{Density: 0.125, Pressure: 0.1}
		}
		u := eos.ToConserved(w, cfg)
		b.Density[idx], b.MomentumX[idx], b.Energy[idx] = u.Density, u.MomentumX, u.Energy
	}
	_ = fillPeriodic(b)
	return b
}

func totals(b *grid.Block) (mass, momX, energy float64) {
	lo, hi, loJ, hiJ, loK, hiK := b.InteriorBounds()
	for k := loK; k < hiK; k++ {
		for j := loJ; j < hiJ; j++ {
			for i := lo; i < hi; i++ {
				idx := b.Index3D(i, j, k)
				mass += float64(b.Density[idx])
				momX += float64(b.MomentumX[idx])
				energy += float64(b.Energy[idx])
			}
		}
	}
	return
}

func TestNewKnownKinds(t *testing.T) {
	vl, err := New("van_leer")
	require.NoError(t, err)
	assert.Equal(t, "van_leer", vl.Name())

	s, err := New("simple")
	require.NoError(t, err)
	assert.Equal(t, "simple", s.Name())

	def, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "van_leer", def.Name())
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New("leapfrog")
	assert.Error(t, err)
}

func TestConservationWithPeriodicBoundariesNoSources(t *testing.T) {
	nx, ghost := 32, 2
	b := sodBlock(nx, ghost)
	cfg := eos.Config{Gamma: gamma}
	floors := eos.Floors{Density: 1e-8, Pressure: 1e-8}
	recon, err := reconstruct.New("plmc", gamma)
	require.NoError(t, err)
	solver, err := riemann.New("hllc")
	require.NoError(t, err)
	vanLeer := VanLeer{}

	m0, p0, e0 := totals(b)

	dt := 0.2 * b.Geometry.Dx
	for step := 0; step < 20; step++ {
		require.NoError(t, vanLeer.Advance(b, dt, cfg, floors, recon, solver, fillPeriodic))
	}

	m1, p1, e1 := totals(b)
	assert.InDelta(t, m0, m1, 1e-9, "total mass should be conserved under periodic boundaries")
	assert.InDelta(t, p0, p1, 1e-9, "total x-momentum should be conserved under periodic boundaries")
	assert.InDelta(t, e0, e1, 1e-9, "total energy should be conserved under periodic boundaries")
}

func TestAdvanceProducesFiniteStateForSodShockTube(t *testing.T) {
	b := sodBlock(64, 2)
	cfg := eos.Config{Gamma: gamma}
	floors := eos.Floors{Density: 1e-8, Pressure: 1e-8}
	recon, err := reconstruct.New("ppmc", gamma)
	require.NoError(t, err)
	solver, err := riemann.New("hllc")
	require.NoError(t, err)
	vanLeer := VanLeer{}

	dt := 0.1 * b.Geometry.Dx
	for step := 0; step < 50; step++ {
		require.NoError(t, vanLeer.Advance(b, dt, cfg, floors, recon, solver, fillPeriodic))
	}

	lo, hi, _, _, _, _ := b.InteriorBounds()
	for i := lo; i < hi; i++ {
		idx := b.Index3D(i, b.Ghost, b.Ghost)
		assert.False(t, math.IsNaN(float64(b.Density[idx])))
		assert.False(t, math.IsInf(float64(b.Density[idx]), 0))
		assert.Greater(t, float64(b.Density[idx]), 0.0)

		p := float64(eos.Pressure(eos.Conserved{
			Density: b.Density[idx], MomentumX: b.MomentumX[idx],
			MomentumY: b.MomentumY[idx], MomentumZ: b.MomentumZ[idx], Energy: b.Energy[idx],
		}, cfg))
		assert.Greater(t, p, 0.0)
	}
}

func TestAdvanceRescuesEinfeldtStrongRarefaction(t *testing.T) {
	// spec.md's Einfeldt strong rarefaction: two streams of equal density,
	// pressure, and transverse field moving apart at high speed
	// (vx = -2 / +2, By = 0.5, gamma = 5/3). The expansion fan's center
	// drops density toward ~0.035; HLLD must not let it go negative.
	const gammaER = 5.0 / 3.0
	nx, ghost := 64, 2
	b := grid.NewBlock(nx, 1, 1, ghost, grid.Geometry{Dx: 1.0 / float64(nx)}, grid.Features{MHD: true})
	cfg := eos.Config{Gamma: gammaER, MHD: true}
	for i := 0; i < b.Nx; i++ {
		idx := b.Index3D(i+b.Ghost, b.Ghost, b.Ghost)
		vx := -2.0
		if i >= b.Nx/2 {
			vx = 2.0
		}
		w := eos.Primitive{Density: 1.0, Vx: vx, Pressure: 0.45, By: 0.5}
		u := eos.ToConserved(w, cfg)
		b.Density[idx], b.MomentumX[idx], b.Energy[idx] = u.Density, u.MomentumX, u.Energy
		b.BFieldX[idx], b.BFieldY[idx], b.BFieldZ[idx] = u.Bx, u.By, u.Bz
	}
	require.NoError(t, fillPeriodic(b))

	floors := eos.Floors{Density: 1e-8, Pressure: 1e-8}
	recon, err := reconstruct.New("plmc", gammaER)
	require.NoError(t, err)
	solver, err := riemann.New("hlld")
	require.NoError(t, err)
	vanLeer := VanLeer{}

	dt := 0.05 * b.Geometry.Dx
	for step := 0; step < 50; step++ {
		require.NoError(t, vanLeer.Advance(b, dt, cfg, floors, recon, solver, fillPeriodic))
	}

	lo, hi, _, _, _, _ := b.InteriorBounds()
	for i := lo; i < hi; i++ {
		idx := b.Index3D(i, b.Ghost, b.Ghost)
		assert.False(t, math.IsNaN(float64(b.Density[idx])))
		assert.Greater(t, float64(b.Density[idx]), 0.0)

		p := float64(eos.Pressure(eos.Conserved{
			Density: b.Density[idx], MomentumX: b.MomentumX[idx],
			MomentumY: b.MomentumY[idx], MomentumZ: b.MomentumZ[idx], Energy: b.Energy[idx],
			Bx: b.BFieldX[idx], By: b.BFieldY[idx], Bz: b.BFieldZ[idx],
		}, cfg))
		assert.Greater(t, p, 0.0)
	}
}

func TestSimpleIntegratorAdvancesUniformStateUnchanged(t *testing.T) {
	b := grid.NewBlock(8, 1, 1, 1, grid.Geometry{Dx: 0.1}, grid.Features{})
	cfg := eos.Config{Gamma: gamma}
	w := eos.Primitive{Density: 1.0, Vx: 0.3, Pressure: 1.0}
	u := eos.ToConserved(w, cfg)
	for i := range b.Density {
		b.Density[i], b.MomentumX[i], b.Energy[i] = u.Density, u.MomentumX, u.Energy
	}
	require.NoError(t, fillPeriodic(b))

	recon, err := reconstruct.New("pcm", gamma)
	require.NoError(t, err)
	solver, err := riemann.New("hllc")
	require.NoError(t, err)
	simple := Simple{}

	require.NoError(t, simple.Advance(b, 0.01, cfg, eos.Floors{}, recon, solver, fillPeriodic))

	lo, hi, _, _, _, _ := b.InteriorBounds()
	for i := lo; i < hi; i++ {
		idx := b.Index3D(i, b.Ghost, b.Ghost)
		assert.InDelta(t, float64(u.Density), float64(b.Density[idx]), 1e-9)
		assert.InDelta(t, float64(u.MomentumX), float64(b.MomentumX[idx]), 1e-9)
		assert.InDelta(t, float64(u.Energy), float64(b.Energy[idx]), 1e-9)
	}
}

func TestFloorRescuesNegativePressureCell(t *testing.T) {
	b := grid.NewBlock(8, 1, 1, 2, grid.Geometry{Dx: 0.1}, grid.Features{})
	cfg := eos.Config{Gamma: gamma}
	w := eos.Primitive{Density: 1.0, Pressure: 1.0}
	u := eos.ToConserved(w, cfg)
	for i := range b.Density {
		b.Density[i], b.MomentumX[i], b.Energy[i] = u.Density, u.MomentumX, u.Energy
	}
	// Drive one interior cell's energy far below what kinetic+thermal needs,
	// forcing a negative pressure the floor must rescue.
	mid := b.Index3D(4+b.Ghost, b.Ghost, b.Ghost)
	b.Energy[mid] = -10.0
	require.NoError(t, fillPeriodic(b))

	floors := eos.Floors{Density: 1e-3, Pressure: 1e-3}
	recon, err := reconstruct.New("pcm", gamma)
	require.NoError(t, err)
	solver, err := riemann.New("hllc")
	require.NoError(t, err)
	simple := Simple{}

	require.NoError(t, simple.Advance(b, 1e-4, cfg, floors, recon, solver, fillPeriodic))

	p := float64(eos.Pressure(eos.Conserved{
		Density: b.Density[mid], MomentumX: b.MomentumX[mid],
		MomentumY: b.MomentumY[mid], MomentumZ: b.MomentumZ[mid], Energy: b.Energy[mid],
	}, cfg))
	assert.GreaterOrEqual(t, p, float64(floors.Pressure)-1e-12)
}
