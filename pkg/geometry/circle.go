package geometry

import "github.com/df07/go-light2d/pkg/core"

// Circle represents a disc given by its center and radius
type Circle struct {
	Center core.Vec2
	Radius float32
}

// NewCircle creates a new circle
func NewCircle(cx, cy, r float32) Circle {
	return Circle{Center: core.NewVec2(cx, cy), Radius: r}
}
