package mathx

// Real is the core's scalar element type. It is a type alias (not a defined
// type) so that Real and float64 are the same type, letting core packages
// mix Real fields with ordinary float64 arithmetic and math library calls
// without conversions.
type Real = float64
