// Package sim wires the core pipeline of spec.md §2 into a runnable
// simulation: it owns the persistent grid.Block, drives the per-step
// sequence of ghost fill → gravity potential → timestep → integration →
// source terms → finite-state check → optional snapshot, and is the single
// writer of the step/time counters (spec.md §5's "single-writer region").
package sim

import (
	"fmt"
	"math"

	"github.com/notargets/cholla/internal/cholla"
	"github.com/notargets/cholla/internal/cooling"
	"github.com/notargets/cholla/internal/eos"
	"github.com/notargets/cholla/internal/gravity"
	"github.com/notargets/cholla/internal/grid"
	"github.com/notargets/cholla/internal/integrator"
	"github.com/notargets/cholla/internal/mpi"
	"github.com/notargets/cholla/internal/output"
	"github.com/notargets/cholla/internal/reconstruct"
	"github.com/notargets/cholla/internal/riemann"
	"github.com/notargets/cholla/internal/timestep"
)

// Clock is the process-wide mutable simulation time/step counter, updated
// only inside Sim.Run's single-writer loop (spec.md §5).
type Clock struct {
	Step int
	Time float64
}

// Sim is one rank's view of the simulation: a persistent Block plus the
// collaborators and solver family chosen at startup.
type Sim struct {
	Block *grid.Block
	Clock Clock

	cfg      Config
	recon    reconstruct.Reconstructor
	solver   riemann.Solver
	integr   integrator.Integrator
	stepper  timestep.Controller
	phi      []float64
}

// New validates cfg and allocates a Sim ready to Run. Errors returned here
// are always *cholla.ConfigError or *cholla.ResourceError (spec.md §7:
// "configuration and resource errors abort immediately before the main loop
// begins").
func New(cfg Config) (*Sim, error) {
	recon, err := reconstruct.New(cfg.ReconstructionKind, float64(cfg.EOS.Gamma))
	if err != nil {
		return nil, &cholla.ConfigError{Param: "reconstruction", Reason: err.Error()}
	}
	if cfg.Ghost < recon.StencilHalfWidth() {
		return nil, &cholla.ConfigError{
			Param:  "ghost",
			Reason: fmt.Sprintf("must be >= %d, the %s stencil half-width (spec.md §4.8)", recon.StencilHalfWidth(), recon.Name()),
		}
	}
	solver, err := riemann.New(cfg.RiemannKind)
	if err != nil {
		return nil, &cholla.ConfigError{Param: "riemann_solver", Reason: err.Error()}
	}
	integr, err := integrator.New(cfg.IntegratorKind)
	if err != nil {
		return nil, &cholla.ConfigError{Param: "integrator", Reason: err.Error()}
	}
	if cfg.Boundary == nil {
		return nil, &cholla.ConfigError{Param: "boundary", Reason: "no ghost-cell Filler configured"}
	}
	if cfg.Nx <= 0 || cfg.Ny <= 0 || cfg.Nz <= 0 {
		return nil, &cholla.ConfigError{Param: "nx/ny/nz", Reason: "every interior dimension must be positive"}
	}

	if cfg.Exchanger == nil {
		cfg.Exchanger = mpi.LocalExchanger{}
	}
	if cfg.Reducer == nil {
		cfg.Reducer = mpi.LocalReducer{}
	}
	if cfg.GravitySolver == nil {
		cfg.GravitySolver = gravity.ZeroPotential{}
	}
	if cfg.CoolingTable == nil {
		cfg.CoolingTable = cooling.NoCooling{}
	}
	if cfg.Writer == nil {
		cfg.Writer = &output.MemoryWriter{}
	}

	b := grid.NewBlock(cfg.Nx, cfg.Ny, cfg.Nz, cfg.Ghost, cfg.Geometry, cfg.Features)

	return &Sim{
		Block:   b,
		cfg:     cfg,
		recon:   recon,
		solver:  solver,
		integr:  integr,
		stepper: timestep.Controller{CFLNumber: cfg.CFLNumber, DtMax: cfg.DtMax, Floors: cfg.Floors},
		phi:     make([]float64, b.Len()),
	}, nil
}

// Restore reloads Block's conserved arrays and the Clock from the
// configured Writer's most recent snapshot, the restart half of spec.md
// §6's persistent state contract.
func (s *Sim) Restore() error {
	snap, err := s.cfg.Writer.ReadSnapshot()
	if err != nil {
		return &cholla.CollaboratorError{Component: "output", Err: err}
	}
	step, t, err := output.RestoreInto(snap, s.Block)
	if err != nil {
		return &cholla.CollaboratorError{Component: "output", Err: err}
	}
	s.Clock = Clock{Step: step, Time: t}
	return nil
}

func (s *Sim) fillGhosts(b *grid.Block) error {
	return s.cfg.Exchanger.Exchange(b, s.cfg.Boundary.Fill)
}

// Run advances Sim until FinalTime or MaxSteps is reached (whichever is
// configured and hit first; zero means "no limit" for that criterion).
// Per spec.md §5, there is no cancellation path: a run proceeds to
// completion or terminates fatally on a numerical error.
func (s *Sim) Run() error {
	if err := s.fillGhosts(s.Block); err != nil {
		return &cholla.CollaboratorError{Component: "boundary", Err: err}
	}

	for {
		if s.cfg.MaxSteps > 0 && s.Clock.Step >= s.cfg.MaxSteps {
			return nil
		}
		if s.cfg.FinalTime > 0 && s.Clock.Time >= s.cfg.FinalTime {
			return nil
		}

		if err := s.cfg.GravitySolver.SolvePotential(s.Block, s.phi); err != nil {
			return &cholla.CollaboratorError{Component: "gravity", Err: err}
		}

		localDt := s.stepper.Compute(s.Block, s.cfg.EOS)
		dt, err := s.cfg.Reducer.ReduceMin(localDt)
		if err != nil {
			return &cholla.CollaboratorError{Component: "timestep-reduce", Err: err}
		}
		if s.cfg.FinalTime > 0 && s.Clock.Time+dt > s.cfg.FinalTime {
			dt = s.cfg.FinalTime - s.Clock.Time
		}

		if err := s.integr.Advance(s.Block, dt, s.cfg.EOS, s.cfg.Floors, s.recon, s.solver, s.fillGhosts); err != nil {
			return &cholla.NumericalError{Rank: s.cfg.Rank, Step: s.Clock.Step, Detail: err.Error()}
		}

		gravity.Accelerate(s.Block, s.phi, dt, s.cfg.GravityConfig)
		cooling.Apply(s.Block, dt, s.cfg.CoolingTable, s.cfg.CoolingConfig, s.cfg.EOS)
		if err := s.fillGhosts(s.Block); err != nil {
			return &cholla.CollaboratorError{Component: "boundary", Err: err}
		}

		if err := s.checkFinite(); err != nil {
			return err
		}

		s.Clock.Step++
		s.Clock.Time += dt

		if s.cfg.SnapshotEvery > 0 && s.Clock.Step%s.cfg.SnapshotEvery == 0 {
			if err := s.cfg.Writer.WriteSnapshot(s.Clock.Step, s.Clock.Time, s.Block, s.phi); err != nil {
				return &cholla.CollaboratorError{Component: "output", Err: err}
			}
		}
	}
}

// checkFinite is the fatal-error detection spec.md §5 requires: "A numerical
// failure (non-finite result) is fatal; the process terminates after logging
// the offending cell indices." Floors and dual-energy fallback have already
// run inside the integrator by this point, so anything still non-finite here
// is unrecoverable.
func (s *Sim) checkFinite() error {
	loI, hiI, loJ, hiJ, loK, hiK := s.Block.InteriorBounds()
	for k := loK; k < hiK; k++ {
		for j := loJ; j < hiJ; j++ {
			for i := loI; i < hiI; i++ {
				idx := s.Block.Index3D(i, j, k)
				if nonFinite(s.Block.Density[idx]) || nonFinite(s.Block.Energy[idx]) {
					return &cholla.NumericalError{
						Rank:  s.cfg.Rank,
						Step:  s.Clock.Step,
						Cell:  [3]int{i - s.Block.Ghost, j - s.Block.Ghost, k - s.Block.Ghost},
						Field: "density/energy",
						Detail: fmt.Sprintf("density=%v energy=%v after recovery", s.Block.Density[idx], s.Block.Energy[idx]),
					}
				}
			}
		}
	}
	return nil
}

func nonFinite(v eos.Real) bool {
	f := float64(v)
	return math.IsNaN(f) || math.IsInf(f, 0)
}
