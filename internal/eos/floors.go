package eos

// Physical constants (CGS), used to translate a configured temperature floor
// into an internal-energy floor per spec.md §4.6.
const (
	BoltzmannConstant Real = 1.380658e-16 // erg / K
	AtomicMassUnit    Real = 1.660539e-24 // g
)

// Floors bundles the density/pressure/temperature floor configuration read
// from internal/param at startup.
type Floors struct {
	Density           Real
	Pressure          Real
	TemperatureFloor  Real // K
	MeanMolecularWeight Real // mu, dimensionless
}

// InternalEnergyFloor returns e_floor = rho*kB*T_floor / (mu*m_u*(gamma-1)),
// the volumetric internal-energy floor corresponding to f.TemperatureFloor at
// the given density, per spec.md §4.6.
func (f Floors) InternalEnergyFloor(density Real, gamma Real) Real {
	if f.TemperatureFloor <= 0 {
		return 0
	}
	mu := f.MeanMolecularWeight
	if mu <= 0 {
		mu = 0.6 // fully ionized, solar-abundance default
	}
	return density * BoltzmannConstant * f.TemperatureFloor / (mu * AtomicMassUnit * (gamma - 1))
}

// EnforceFloors applies the density and pressure/dual-energy floor policy of
// spec.md §4.1 to a single conserved cell, in place. It must run before the
// cell is converted to primitives for reconstruction.
//
// Density floor: momenta are rescaled to preserve velocity before rho is
// clamped, and E is rebuilt from the preserved velocity and pressure.
//
// Pressure floor: without dual energy, p is clamped directly and E is
// back-computed to match. With dual energy, p is first recomputed from the
// advected internal-energy field; if that is also below its floor, both are
// clamped together and E is resynchronized.
func EnforceFloors(u *Conserved, cfg Config, floors Floors) {
	if u.Density < floors.Density {
		vx := u.MomentumX / u.Density
		vy := u.MomentumY / u.Density
		vz := u.MomentumZ / u.Density
		p := Pressure(*u, cfg)
		u.Density = floors.Density
		u.MomentumX = u.Density * vx
		u.MomentumY = u.Density * vy
		u.MomentumZ = u.Density * vz
		ke := kineticEnergy(u.Density, vx, vy, vz)
		var me Real
		if cfg.MHD {
			me = magneticEnergy(*u)
		}
		u.Energy = p/(cfg.Gamma-1) + ke + me
		if cfg.DualEnergy {
			u.InternalEnergy = p / (cfg.Gamma - 1)
		}
	}

	vx := u.MomentumX / u.Density
	vy := u.MomentumY / u.Density
	vz := u.MomentumZ / u.Density
	ke := kineticEnergy(u.Density, vx, vy, vz)
	var me Real
	if cfg.MHD {
		me = magneticEnergy(*u)
	}

	p := Pressure(*u, cfg)
	if p >= floors.Pressure {
		return
	}

	if !cfg.DualEnergy {
		u.Energy = floors.Pressure/(cfg.Gamma-1) + ke + me
		return
	}

	eFloor := floors.InternalEnergyFloor(u.Density, cfg.Gamma)
	if u.InternalEnergy < eFloor {
		u.InternalEnergy = eFloor
	}
	u.Energy = ke + me + u.InternalEnergy
}
