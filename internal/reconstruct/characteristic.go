package reconstruct

import "math"

// hydroPrimDelta holds the 5 core hydrodynamic primitive differences the
// characteristic decomposition operates on: (drho, dvx, dvy, dvz, dp).
type hydroPrimDelta [5]float64

// toCharacteristic projects a primitive-variable difference onto the
// hydrodynamic characteristic amplitudes at sound speed c and density rho.
// Per spec.md §9's resolution of the PPM/dual-energy Open Question, PLMC and
// PPMC always use this hydrodynamic (5-field) decomposition, never the full
// MHD one, even when paired with HLLD.
func toCharacteristic(d hydroPrimDelta, rho, c float64) [5]float64 {
	oo2c := 1 / (2 * c)
	oo2c2 := 1 / (2 * c * c)
	a1 := -rho*oo2c*d[1] + oo2c2*d[4]
	a2 := d[0] - d[4]/(c*c)
	a3 := d[2]
	a4 := d[3]
	a5 := rho*oo2c*d[1] + oo2c2*d[4]
	return [5]float64{a1, a2, a3, a4, a5}
}

// fromCharacteristic is the inverse of toCharacteristic.
func fromCharacteristic(a [5]float64, rho, c float64) hydroPrimDelta {
	drho := a[0] + a[1] + a[4]
	dvx := (c / rho) * (a[4] - a[0])
	dvy := a[2]
	dvz := a[3]
	dp := c * c * (a[0] + a[4])
	return hydroPrimDelta{drho, dvx, dvy, dvz, dp}
}

func soundSpeed(rho, p, gamma float64) float64 {
	return math.Sqrt(gamma * p / rho)
}
