package eos

import "github.com/notargets/cholla/internal/direction"

// PermutePrimitive rotates a cell's velocity and magnetic-field components so
// that axis becomes the local "x" (normal) direction, letting reconstruction
// and Riemann solvers stay direction-agnostic (spec.md §9's "cyclic permute
// axis logic", expressed as a table lookup rather than value rotation).
func PermutePrimitive(axis direction.Axis, w Primitive) Primitive {
	out := w
	out.Vx, out.Vy, out.Vz = direction.PermuteVelocity(axis, w.Vx, w.Vy, w.Vz)
	out.Bx, out.By, out.Bz = direction.PermuteVelocity(axis, w.Bx, w.By, w.Bz)
	return out
}

// UnpermutePrimitive is the inverse of PermutePrimitive.
func UnpermutePrimitive(axis direction.Axis, w Primitive) Primitive {
	out := w
	out.Vx, out.Vy, out.Vz = direction.UnpermuteVelocity(axis, w.Vx, w.Vy, w.Vz)
	out.Bx, out.By, out.Bz = direction.UnpermuteVelocity(axis, w.Bx, w.By, w.Bz)
	return out
}

// PermuteConserved rotates a cell's momentum and magnetic-field components so
// that axis becomes the local "x" (normal) direction.
func PermuteConserved(axis direction.Axis, u Conserved) Conserved {
	out := u
	out.MomentumX, out.MomentumY, out.MomentumZ = direction.PermuteVelocity(axis, u.MomentumX, u.MomentumY, u.MomentumZ)
	out.Bx, out.By, out.Bz = direction.PermuteVelocity(axis, u.Bx, u.By, u.Bz)
	return out
}

// UnpermuteConserved is the inverse of PermuteConserved. It is applied to a
// flux record returned by a Riemann solver to scatter it back into lab-frame
// component order before accumulating the flux divergence.
func UnpermuteConserved(axis direction.Axis, u Conserved) Conserved {
	out := u
	out.MomentumX, out.MomentumY, out.MomentumZ = direction.UnpermuteVelocity(axis, u.MomentumX, u.MomentumY, u.MomentumZ)
	out.Bx, out.By, out.Bz = direction.UnpermuteVelocity(axis, u.Bx, u.By, u.Bz)
	return out
}
