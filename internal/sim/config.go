package sim

import (
	"github.com/notargets/cholla/internal/boundary"
	"github.com/notargets/cholla/internal/cooling"
	"github.com/notargets/cholla/internal/eos"
	"github.com/notargets/cholla/internal/gravity"
	"github.com/notargets/cholla/internal/grid"
	"github.com/notargets/cholla/internal/mpi"
	"github.com/notargets/cholla/internal/output"
)

// Config is everything New needs to build a Sim. Any collaborator field left
// nil gets the inert default New installs (LocalExchanger, LocalReducer,
// ZeroPotential, NoCooling, MemoryWriter) so a single-rank run with no
// sources needs only the grid, EOS, and solver-family fields set.
type Config struct {
	Nx, Ny, Nz int
	Ghost      int
	Geometry   grid.Geometry
	Features   grid.Features

	EOS    eos.Config
	Floors eos.Floors

	ReconstructionKind string
	RiemannKind        string
	IntegratorKind     string

	CFLNumber float64
	DtMax     float64
	FinalTime float64
	MaxSteps  int

	// Boundary applies to every face of Block uniformly. spec.md's
	// per-problem setups never mix boundary kinds across faces of the same
	// block in the single-rank case; true per-face mixed conditions are
	// left to a Custom Filler (internal/boundary) a caller constructs
	// directly and assigns here.
	Boundary boundary.Filler

	GravitySolver gravity.Solver
	GravityConfig gravity.Config

	CoolingTable  cooling.Table
	CoolingConfig cooling.Config

	Exchanger mpi.Exchanger
	Reducer   mpi.Reducer

	Writer        output.Writer
	SnapshotEvery int

	Rank int
}
