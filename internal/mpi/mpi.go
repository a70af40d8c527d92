// Package mpi implements the distributed collaborator boundaries spec.md §5
// and §6 name but treat as opaque to the core: the halo exchange that fills
// ghost cells across sub-block boundaries, and the global Δt reduction. The
// core only ever sees the Exchanger/Reducer interfaces; a real multi-rank
// implementation would sit behind these using an MPI binding, but nothing in
// the pack carries one, so LocalExchanger/LocalReducer below are the
// single-rank stand-ins exercised by internal/sim in the common case where a
// run is not domain-decomposed.
package mpi

import "github.com/notargets/cholla/internal/grid"

// Exchanger posts the nonblocking halo exchange and blocks until every
// sub-block's ghost cells are valid (spec.md §5's "halo exchange barrier").
// In a domain-decomposed run, Exchange additionally applies the
// boundary.Filler at true domain edges; internal sub-block faces come from
// neighboring ranks instead.
type Exchanger interface {
	Exchange(b *grid.Block, fill func(*grid.Block) error) error
}

// LocalExchanger is the single-rank Exchanger: there are no neighboring
// ranks, so every face is a domain edge and the supplied fill function (a
// boundary.Filler's Fill method) is simply invoked directly.
type LocalExchanger struct{}

func (LocalExchanger) Exchange(b *grid.Block, fill func(*grid.Block) error) error {
	return fill(b)
}

// Reducer performs the global Δt reduction (spec.md §4.7) across
// cooperating ranks.
type Reducer interface {
	ReduceMin(local float64) (float64, error)
}

// LocalReducer is the single-rank Reducer: the global minimum is just the
// local value, since there is only one rank to combine.
type LocalReducer struct{}

func (LocalReducer) ReduceMin(local float64) (float64, error) {
	return local, nil
}
