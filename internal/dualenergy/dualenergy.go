// Package dualenergy implements the dual-energy pressure-selection rule and
// synchronization of spec.md §4.5: an advected internal-energy field lets the
// core recover a well-defined thermal pressure when total energy is
// dominated by kinetic or magnetic energy, the regime where subtracting K+M
// from E loses most of its significant digits.
package dualenergy

// Eta1 is the standard threshold spec.md §4.5 names for the
// "total-energy-dominated" trigger: E-K-M < Eta1*E.
const Eta1 = 1.0e-3

// SelectPressure applies the rule of spec.md §4.5: use the total-energy
// derived pressure unless it is ill-conditioned (E-K-M < eta1*E) or negative,
// in which case fall back to the internal-energy derived pressure.
func SelectPressure(totalEnergy, kinetic, magnetic, internalEnergy, gamma, eta1 float64) (pressure float64, useInternal bool) {
	diff := totalEnergy - kinetic - magnetic
	pTotal := (gamma - 1) * diff
	if diff < eta1*totalEnergy || pTotal < 0 {
		return (gamma - 1) * internalEnergy, true
	}
	return pTotal, false
}

// Synchronize keeps e_int and E consistent after a pressure selection: when
// the total-energy pressure was used, e_int is reset to E-K-M; when the
// internal-energy pressure was used, E is reset to K+M+e_int.
func Synchronize(totalEnergy, kinetic, magnetic, internalEnergy float64, useInternal bool) (newEnergy, newInternalEnergy float64) {
	if useInternal {
		return kinetic + magnetic + internalEnergy, internalEnergy
	}
	return totalEnergy, totalEnergy - kinetic - magnetic
}
