package core

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
)

// MachineEpsilon is the float32 machine epsilon (2^-23)
const MachineEpsilon = float32(1.0 / (1 << 23))

// Vec2 is a point or direction in the normalized [0,1]x[0,1] image domain
type Vec2 = ms2.Vec

// NewVec2 creates a new Vec2
func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// DirectionFromAngle returns the unit direction at angle radians from the +X axis
func DirectionFromAngle(angle float32) Vec2 {
	s, c := math32.Sincos(angle)
	return Vec2{X: c, Y: s}
}

// IsZero reports whether both components of v are zero
func IsZero(v Vec2) bool {
	return v.X == 0 && v.Y == 0
}
