package geometry

import "github.com/df07/go-light2d/pkg/core"

// Rectangle represents a box centered at Center, rotated counter-clockwise by
// Theta radians, extending HalfX and HalfY from the center along its local axes
type Rectangle struct {
	Center       core.Vec2
	Theta        float32
	HalfX, HalfY float32
}

// NewRectangle creates a new rectangle
func NewRectangle(cx, cy, theta, sx, sy float32) Rectangle {
	return Rectangle{Center: core.NewVec2(cx, cy), Theta: theta, HalfX: sx, HalfY: sy}
}
