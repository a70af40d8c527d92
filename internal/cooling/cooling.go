// Package cooling implements optional radiative cooling as an operator-split
// source term (spec.md §4.6: "optional cooling Λ(ρ, T) reducing internal
// energy"). Cooling tables themselves are an external collaborator in the
// full system; Table is the interface the core calls into, with NoCooling
// and PowerLawTable as in-process implementations for runs that need a
// cooling curve without a full tabulated network.
package cooling

import (
	"math"

	"github.com/notargets/cholla/internal/eos"
	"github.com/notargets/cholla/internal/grid"
)

// Table returns the cooling rate Λ(ρ, T) in energy per volume per time.
type Table interface {
	Lambda(density, temperature float64) float64
}

// NoCooling always returns zero: the default when cooling is disabled.
type NoCooling struct{}

func (NoCooling) Lambda(density, temperature float64) float64 { return 0 }

// PowerLawTable implements a simple Λ = C·ρ²·T^alpha cooling curve, the
// density-squared (collisional) scaling standard to optically-thin cooling
// curves, clamped to zero below a floor temperature to avoid runaway cooling
// through absolute zero.
type PowerLawTable struct {
	Coefficient   float64
	Exponent      float64
	FloorTemp     float64
}

func (p PowerLawTable) Lambda(density, temperature float64) float64 {
	if temperature <= p.FloorTemp {
		return 0
	}
	return p.Coefficient * density * density * math.Pow(temperature, p.Exponent)
}

// Config carries the physical constants needed to convert between internal
// energy and temperature (shared with eos.Floors's conversion).
type Config struct {
	Gamma              float64
	MeanMolecularWeight float64
}

// Apply subtracts Λ(ρ,T)·dt/ρ from every interior cell's total energy and,
// when the dual-energy field is present, from that field too, clamping each
// at zero. It enforces no pressure floor itself; the next integrator
// update's EnforceFloors call restores the configured floor.
func Apply(b *grid.Block, dt float64, table Table, cfg Config, eosCfg eos.Config) {
	loI, hiI, loJ, hiJ, loK, hiK := b.InteriorBounds()
	for i := loI; i < hiI; i++ {
		for j := loJ; j < hiJ; j++ {
			for k := loK; k < hiK; k++ {
				idx := b.Index3D(i, j, k)
				u := eos.Conserved{
					Density:   b.Density[idx],
					MomentumX: b.MomentumX[idx],
					MomentumY: b.MomentumY[idx],
					MomentumZ: b.MomentumZ[idx],
					Energy:    b.Energy[idx],
				}
				if b.Features.MHD {
					u.Bx, u.By, u.Bz = b.BFieldX[idx], b.BFieldY[idx], b.BFieldZ[idx]
				}
				p := eos.Pressure(u, eosCfg)
				temperature := temperatureFromPressure(p, u.Density, cfg)
				lambda := table.Lambda(u.Density, temperature)
				if lambda == 0 {
					continue
				}
				deInternal := lambda * dt / u.Density
				if b.Features.DualEnergy {
					b.InternalEnergy[idx] = math.Max(0, b.InternalEnergy[idx]-deInternal)
				}
				b.Energy[idx] = math.Max(0, b.Energy[idx]-deInternal)
			}
		}
	}
}

func temperatureFromPressure(p, density float64, cfg Config) float64 {
	if density <= 0 {
		return 0
	}
	return p / density * cfg.MeanMolecularWeight * eos.AtomicMassUnit / eos.BoltzmannConstant
}
