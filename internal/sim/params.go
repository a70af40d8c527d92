package sim

import (
	"fmt"

	"github.com/notargets/cholla/internal/boundary"
	"github.com/notargets/cholla/internal/cholla"
	"github.com/notargets/cholla/internal/cooling"
	"github.com/notargets/cholla/internal/eos"
	"github.com/notargets/cholla/internal/gravity"
	"github.com/notargets/cholla/internal/grid"
	"github.com/notargets/cholla/internal/param"
)

// ConfigFromParams builds a Config from a parsed parameter.Map (spec.md §6's
// "<parameter-file> [key=value]..." CLI contract), applying the same
// defaults a bare "cholla <file>" run with no overrides would rely on.
//
// param.Map's *Or accessors panic on a type mismatch, mirroring the
// CHOLLA_ERROR-on-bad-type behavior of the ParameterMap this was ported
// from; that panic is recovered here and turned into a *cholla.ConfigError
// so a malformed parameter file is a normal returned error at the CLI
// boundary, never a crash.
func ConfigFromParams(m *param.Map) (cfg Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			cfg = Config{}
			if perr, ok := r.(error); ok {
				err = &cholla.ConfigError{Param: "(see detail)", Reason: perr.Error()}
				return
			}
			err = &cholla.ConfigError{Param: "(see detail)", Reason: fmt.Sprint(r)}
		}
	}()

	cfg.Nx = m.IntOr("nx", 100)
	cfg.Ny = m.IntOr("ny", 1)
	cfg.Nz = m.IntOr("nz", 1)
	cfg.Ghost = m.IntOr("ghost", 2)

	xmin := m.Float64Or("domain.xmin", 0)
	xmax := m.Float64Or("domain.xmax", 1)
	ymin := m.Float64Or("domain.ymin", 0)
	ymax := m.Float64Or("domain.ymax", 1)
	zmin := m.Float64Or("domain.zmin", 0)
	zmax := m.Float64Or("domain.zmax", 1)
	cfg.Geometry = grid.Geometry{
		Dx:   grid.Real((xmax - xmin) / float64(cfg.Nx)),
		Dy:   grid.Real((ymax - ymin) / float64(cfg.Ny)),
		Dz:   grid.Real((zmax - zmin) / float64(cfg.Nz)),
		XMin: grid.Real(xmin), YMin: grid.Real(ymin), ZMin: grid.Real(zmin),
	}

	cfg.Features = grid.Features{
		MHD:        m.BoolOr("mhd", false),
		DualEnergy: m.BoolOr("dual_energy", false),
		NumScalars: m.IntOr("num_scalars", 0),
	}

	gamma := m.Float64Or("gamma", 1.4)
	cfg.EOS = eos.Config{
		Gamma:      eos.Real(gamma),
		MHD:        cfg.Features.MHD,
		DualEnergy: cfg.Features.DualEnergy,
	}
	cfg.Floors = eos.Floors{
		Density:             eos.Real(m.Float64Or("density_floor", 1e-10)),
		Pressure:            eos.Real(m.Float64Or("pressure_floor", 1e-10)),
		TemperatureFloor:    eos.Real(m.Float64Or("temperature_floor", 0)),
		MeanMolecularWeight: eos.Real(m.Float64Or("mean_molecular_weight", 0.6)),
	}

	cfg.ReconstructionKind = m.StringOr("reconstruction", "plmc")
	cfg.RiemannKind = m.StringOr("riemann_solver", "hllc")
	cfg.IntegratorKind = m.StringOr("integrator", "van_leer")

	cfg.CFLNumber = m.Float64Or("cfl_number", 0.4)
	cfg.DtMax = m.Float64Or("dt_max", 0)
	cfg.FinalTime = m.Float64Or("final_time", 0)
	cfg.MaxSteps = m.IntOr("max_steps", 0)

	boundaryKind := m.StringOr("boundary", "periodic")
	filler, berr := boundary.New(boundaryKind)
	if berr != nil {
		return cfg, &cholla.ConfigError{Param: "boundary", Reason: berr.Error()}
	}
	cfg.Boundary = filler

	if m.BoolOr("gravity.enabled", false) {
		stencil := gravity.ThreePoint
		if m.IntOr("gravity.stencil", 3) == 5 {
			stencil = gravity.FivePoint
		}
		coupling := gravity.CoupleWork
		if m.StringOr("gravity.coupling", "work") == "delta_ke" {
			coupling = gravity.CoupleDeltaKE
		}
		cfg.GravityConfig = gravity.Config{Stencil: stencil, Coupling: coupling}
		cfg.GravitySolver = gravity.SelfGravity{
			G:          m.Float64Or("gravity.g", gravity.GravitationalConstant),
			Tolerance:  m.Float64Or("gravity.tolerance", 1e-8),
			MaxIter:    m.IntOr("gravity.max_iter", 0),
			IsPeriodic: boundaryKind == "periodic",
		}
	}

	if m.BoolOr("cooling.enabled", false) {
		cfg.CoolingTable = cooling.PowerLawTable{
			Coefficient: m.Float64Or("cooling.coefficient", 1e-23),
			Exponent:    m.Float64Or("cooling.exponent", 0.5),
			FloorTemp:   m.Float64Or("cooling.floor_temp", 10),
		}
		cfg.CoolingConfig = cooling.Config{
			Gamma:               gamma,
			MeanMolecularWeight: float64(cfg.Floors.MeanMolecularWeight),
		}
	}

	cfg.SnapshotEvery = m.IntOr("output.every", 0)
	cfg.Rank = 0

	return cfg, nil
}

// ReservedKeys lists every key ConfigFromParams reads, for a caller that
// wants to call Map.WarnUnusedParameters with an accurate ignore set for
// keys handled elsewhere (e.g. a restart-file path parsed by cmd itself).
func ReservedKeys() map[string]bool {
	keys := []string{
		"nx", "ny", "nz", "ghost",
		"domain.xmin", "domain.xmax", "domain.ymin", "domain.ymax", "domain.zmin", "domain.zmax",
		"mhd", "dual_energy", "num_scalars",
		"gamma", "density_floor", "pressure_floor", "temperature_floor", "mean_molecular_weight",
		"reconstruction", "riemann_solver", "integrator",
		"cfl_number", "dt_max", "final_time", "max_steps",
		"boundary",
		"gravity.enabled", "gravity.stencil", "gravity.coupling",
		"gravity.g", "gravity.tolerance", "gravity.max_iter",
		"cooling.enabled", "cooling.coefficient", "cooling.exponent", "cooling.floor_temp",
		"output.every",
	}
	out := make(map[string]bool, len(keys))
	for _, k := range keys {
		out[k] = true
	}
	return out
}
