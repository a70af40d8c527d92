package sim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/cholla/internal/boundary"
	"github.com/notargets/cholla/internal/eos"
	"github.com/notargets/cholla/internal/grid"
	"github.com/notargets/cholla/internal/output"
	"github.com/notargets/cholla/internal/param"
)

func sodConfig(nx int) Config {
	filler, _ := boundary.New("periodic")
	return Config{
		Nx: nx, Ny: 1, Nz: 1, Ghost: 2,
		Geometry: grid.Geometry{Dx: 1.0 / float64(nx)},
		EOS:      eos.Config{Gamma: 1.4},
		Floors:   eos.Floors{Density: 1e-8, Pressure: 1e-8},

		ReconstructionKind: "plmc",
		RiemannKind:        "hllc",
		IntegratorKind:     "van_leer",

		CFLNumber: 0.4,
		MaxSteps:  20,

		Boundary: filler,
		Writer:   &output.MemoryWriter{},
	}
}

func seedSod(b *grid.Block, cfg eos.Config) {
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
}

func TestNewRejectsGhostNarrowerThanStencil(t *testing.T) {
	cfg := sodConfig(32)
	cfg.ReconstructionKind = "ppmc" // half-width 2
	cfg.Ghost = 1
	_, err := New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestNewRejectsMissingBoundary(t *testing.T) {
	cfg := sodConfig(32)
	cfg.Boundary = nil
	_, err := New(cfg)
	require.Error(t, err)
}

func TestNewRejectsUnknownReconstruction(t *testing.T) {
	cfg := sodConfig(32)
	cfg.ReconstructionKind = "spline7"
	_, err := New(cfg)
	require.Error(t, err)
}

func TestRunAdvancesClockAndProducesFiniteState(t *testing.T) {
	cfg := sodConfig(64)
	s, err := New(cfg)
	require.NoError(t, err)

	seedSod(s.Block, cfg.EOS)

	require.NoError(t, s.Run())
	assert.Equal(t, 20, s.Clock.Step)
	assert.Greater(t, s.Clock.Time, 0.0)

	loI, hiI, _, _, _, _ := s.Block.InteriorBounds()
	for i := loI; i < hiI; i++ {
		idx := s.Block.Index3D(i, s.Block.Ghost, s.Block.Ghost)
		assert.Greater(t, float64(s.Block.Density[idx]), 0.0)
		p := eos.Pressure(eos.Conserved{
			Density: s.Block.Density[idx], MomentumX: s.Block.MomentumX[idx],
			MomentumY: s.Block.MomentumY[idx], MomentumZ: s.Block.MomentumZ[idx], Energy: s.Block.Energy[idx],
		}, cfg.EOS)
		assert.Greater(t, float64(p), 0.0)
	}
}

func TestRunStopsAtFinalTime(t *testing.T) {
	cfg := sodConfig(32)
	cfg.MaxSteps = 0
	cfg.FinalTime = 0.05
	s, err := New(cfg)
	require.NoError(t, err)
	seedSod(s.Block, cfg.EOS)

	require.NoError(t, s.Run())
	assert.LessOrEqual(t, s.Clock.Time, 0.05+1e-12)
	assert.Greater(t, s.Clock.Step, 0)
}

func TestRunWritesSnapshotsAtConfiguredCadence(t *testing.T) {
	cfg := sodConfig(32)
	cfg.MaxSteps = 10
	cfg.SnapshotEvery = 5
	writer := &output.MemoryWriter{}
	cfg.Writer = writer
	s, err := New(cfg)
	require.NoError(t, err)
	seedSod(s.Block, cfg.EOS)

	require.NoError(t, s.Run())
	require.NotNil(t, writer.Last)
	assert.Equal(t, 10, writer.Last.Step)
}

func TestRestoreReloadsClockAndState(t *testing.T) {
	cfg := sodConfig(32)
	cfg.MaxSteps = 6
	cfg.SnapshotEvery = 6
	writer := &output.MemoryWriter{}
	cfg.Writer = writer
	s, err := New(cfg)
	require.NoError(t, err)
	seedSod(s.Block, cfg.EOS)
	require.NoError(t, s.Run())

	s2, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, s2.Restore())
	assert.Equal(t, s.Clock, s2.Clock)
	assert.Equal(t, s.Block.Density, s2.Block.Density)
}

func TestConfigFromParamsAppliesDefaultsAndOverrides(t *testing.T) {
	text := `
nx = 50
gamma = 1.4
cfl_number = 0.3
reconstruction = ppmc
[gravity]
enabled = true
stencil = 5
`
	m, err := param.Parse(strings.NewReader(text), []string{"max_steps=100"})
	require.NoError(t, err)

	cfg, err := ConfigFromParams(m)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Nx)
	assert.Equal(t, 1, cfg.Ny)
	assert.InDelta(t, 1.4, float64(cfg.EOS.Gamma), 1e-12)
	assert.InDelta(t, 0.3, cfg.CFLNumber, 1e-12)
	assert.Equal(t, "ppmc", cfg.ReconstructionKind)
	assert.Equal(t, 100, cfg.MaxSteps)
	assert.NotNil(t, cfg.GravitySolver)
	assert.Equal(t, gravityStencilName(cfg), "5")
}

func gravityStencilName(cfg Config) string {
	if cfg.GravityConfig.Stencil == 5 {
		return "5"
	}
	return "3"
}

func TestConfigFromParamsRejectsBadType(t *testing.T) {
	text := "nx = not_a_number\n"
	m, err := param.Parse(strings.NewReader(text), nil)
	require.NoError(t, err)

	_, err = ConfigFromParams(m)
	require.Error(t, err)
}
