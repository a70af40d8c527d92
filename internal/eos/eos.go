// Package eos implements the conserved/primitive state conversions and floor
// enforcement of spec.md §4.1: ToPrimitive, ToConserved, Pressure, and
// EnforceFloors, operating on one cell's (or one interface side's) state
// vector. Direction-dependent solvers permute components via
// internal/direction before calling into this package, so every function
// here treats "x" as whichever axis is currently active.
package eos

import "github.com/notargets/cholla/internal/mathx"

// Real is this core's shared scalar element type (spec.md §3).
type Real = mathx.Real

// Conserved is one cell's conserved state vector: density, momentum, total
// energy, plus the optional dual-energy and MHD fields.
type Conserved struct {
	Density   Real
	MomentumX Real
	MomentumY Real
	MomentumZ Real
	Energy    Real

	InternalEnergy Real // rho*e_int, valid iff DualEnergy is enabled
	Bx, By, Bz     Real // face-centered field components, valid iff MHD is enabled
	Scalars        []Real
}

// Primitive is one cell's (or interface side's) primitive state vector.
type Primitive struct {
	Density  Real
	Vx, Vy, Vz Real
	Pressure Real

	InternalEnergy Real // rho*e_int, valid iff DualEnergy is enabled
	Bx, By, Bz     Real
	Scalars        []Real
}

// Config carries the pieces of global configuration the conversions need:
// the adiabatic index and whether MHD/dual-energy fields are active.
type Config struct {
	Gamma      Real
	MHD        bool
	DualEnergy bool
}

func magneticEnergy(u Conserved) Real {
	return Real(0.5) * (u.Bx*u.Bx + u.By*u.By + u.Bz*u.Bz)
}

func kineticEnergy(density, vx, vy, vz Real) Real {
	return Real(0.5) * density * (vx*vx + vy*vy + vz*vz)
}

// Pressure computes p = (gamma-1)*(E - kinetic - magnetic) from a conserved
// state, per spec.md §4.1. It does not apply any floor.
func Pressure(u Conserved, cfg Config) Real {
	vx := u.MomentumX / u.Density
	vy := u.MomentumY / u.Density
	vz := u.MomentumZ / u.Density
	ke := kineticEnergy(u.Density, vx, vy, vz)
	var me Real
	if cfg.MHD {
		me = magneticEnergy(u)
	}
	return (cfg.Gamma - 1) * (u.Energy - ke - me)
}

// ToPrimitive converts a conserved state to primitive variables. It does not
// apply floors; callers needing floor-safe primitives should call
// EnforceFloors first (spec.md §4.1: "The floor policy must be applied
// BEFORE converting to primitives for reconstruction").
func ToPrimitive(u Conserved, cfg Config) Primitive {
	w := Primitive{
		Density: u.Density,
		Vx:      u.MomentumX / u.Density,
		Vy:      u.MomentumY / u.Density,
		Vz:      u.MomentumZ / u.Density,
	}
	w.Pressure = Pressure(u, cfg)
	if cfg.MHD {
		w.Bx, w.By, w.Bz = u.Bx, u.By, u.Bz
	}
	if cfg.DualEnergy {
		w.InternalEnergy = u.InternalEnergy
	}
	if len(u.Scalars) > 0 {
		w.Scalars = make([]Real, len(u.Scalars))
		for i, rs := range u.Scalars {
			w.Scalars[i] = rs / u.Density
		}
	}
	return w
}

// ToConserved is the inverse of ToPrimitive.
func ToConserved(w Primitive, cfg Config) Conserved {
	u := Conserved{
		Density:   w.Density,
		MomentumX: w.Density * w.Vx,
		MomentumY: w.Density * w.Vy,
		MomentumZ: w.Density * w.Vz,
	}
	ke := kineticEnergy(w.Density, w.Vx, w.Vy, w.Vz)
	var me Real
	if cfg.MHD {
		u.Bx, u.By, u.Bz = w.Bx, w.By, w.Bz
		me = Real(0.5) * (u.Bx*u.Bx + u.By*u.By + u.Bz*u.Bz)
	}
	u.Energy = w.Pressure/(cfg.Gamma-1) + ke + me
	if cfg.DualEnergy {
		u.InternalEnergy = w.InternalEnergy
	}
	if len(w.Scalars) > 0 {
		u.Scalars = make([]Real, len(w.Scalars))
		for i, s := range w.Scalars {
			u.Scalars[i] = s * w.Density
		}
	}
	return u
}
