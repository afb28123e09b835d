// Package sdf holds the signed distance functions for the 2D primitives.
// Every function is pure and continuous, and returns exactly zero on the
// shape boundary up to float32 rounding.
package sdf

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms2"
)

// Circle returns |p-center| - r
func Circle(p, center ms2.Vec, r float32) float32 {
	return ms2.Norm(ms2.Sub(p, center)) - r
}

// Plane returns the signed perpendicular distance from p to the line through
// point with the given normal. The normal is expected to be unit length.
func Plane(p, point, normal ms2.Vec) float32 {
	return ms2.Dot(ms2.Sub(p, point), normal)
}

// Segment returns the unsigned distance from p to the segment [a,b].
// A zero-length segment degenerates to the distance to a.
func Segment(p, a, b ms2.Vec) float32 {
	v := ms2.Sub(p, a)
	u := ms2.Sub(b, a)
	var t float32
	if uu := ms2.Dot(u, u); uu > 0 {
		t = ms1.Clamp(ms2.Dot(v, u)/uu, 0, 1)
	}
	return ms2.Norm(ms2.Sub(v, ms2.Scale(t, u)))
}

// Capsule returns the distance to the segment [a,b] inflated by r
func Capsule(p, a, b ms2.Vec, r float32) float32 {
	return Segment(p, a, b) - r
}

// Rectangle returns the signed distance to a rectangle centered at center,
// rotated by theta radians, with half-extents sx and sy.
func Rectangle(p, center ms2.Vec, theta, sx, sy float32) float32 {
	sin, cos := math32.Sincos(theta)
	d := ms2.Sub(p, center)
	// Per-axis excess in the rectangle's local frame
	e := ms2.Vec{
		X: math32.Abs(d.X*cos+d.Y*sin) - sx,
		Y: math32.Abs(d.Y*cos-d.X*sin) - sy,
	}
	inside := math32.Min(math32.Max(e.X, e.Y), 0)
	outside := ms2.Norm(ms2.MaxElem(e, ms2.Vec{}))
	return inside + outside
}

// Triangle returns the signed distance to the triangle abc. Either winding is
// accepted; p is inside only when it lies strictly on the same side of all
// three edges.
func Triangle(p, a, b, c ms2.Vec) float32 {
	d := math32.Min(Segment(p, a, b), math32.Min(Segment(p, b, c), Segment(p, c, a)))

	s0 := cross(ms2.Sub(b, a), ms2.Sub(p, a))
	s1 := cross(ms2.Sub(c, b), ms2.Sub(p, b))
	s2 := cross(ms2.Sub(a, c), ms2.Sub(p, c))
	if (s0 > 0 && s1 > 0 && s2 > 0) || (s0 < 0 && s1 < 0 && s2 < 0) {
		return -d
	}
	return d
}

// cross returns the z component of the 3D cross product of u and v
func cross(u, v ms2.Vec) float32 {
	return u.X*v.Y - u.Y*v.X
}
