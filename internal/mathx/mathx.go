// Package mathx supplies the scalar type and elementary functions used by
// every core package. Real is that shared element type (see real.go); the
// wrappers here let the rest of the core call Sqrt/Abs/Pow/Max/Min through
// one name regardless of which concrete type backs it. Grounded on the
// teacher's utils.POW integer-power fast path (utils/math.go).
package mathx

import "math"

// Sqrt returns the square root of x.
func Sqrt(x Real) Real {
	return Real(math.Sqrt(float64(x)))
}

// Abs returns the absolute value of x.
func Abs(x Real) Real {
	return Real(math.Abs(float64(x)))
}

// Max returns the larger of a and b.
func Max(a, b Real) Real {
	return Real(math.Max(float64(a), float64(b)))
}

// Min returns the smaller of a and b.
func Min(a, b Real) Real {
	return Real(math.Min(float64(a), float64(b)))
}

// Pow raises x to a general real power.
func Pow(x, p Real) Real {
	return Real(math.Pow(float64(x), float64(p)))
}

// PowInt raises x to an integer power, using direct multiplication and
// squaring for |p| <= 4 and math.Pow beyond that, matching the teacher's
// utils.POW fast path.
func PowInt(x Real, p int) Real {
	flipped := false
	n := p
	if n < 0 {
		n = -p
		flipped = true
	}
	var y Real
	switch n {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	default:
		y = Pow(x, Real(n))
		if flipped {
			return 1 / y
		}
		return y
	}
	if flipped {
		y = 1 / y
	}
	return y
}

// IsFinite reports whether x is neither NaN nor +/-Inf, the condition a core
// numerical error check (spec.md §7) tests for.
func IsFinite(x Real) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Signum returns -1, 0, or 1 according to the sign of x.
func Signum(x Real) Real {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
