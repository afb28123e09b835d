package geometry

import "github.com/df07/go-light2d/pkg/core"

// Triangle represents the triangle with vertices A, B and C in either winding
type Triangle struct {
	A, B, C core.Vec2
}

// NewTriangle creates a new triangle
func NewTriangle(ax, ay, bx, by, cx, cy float32) Triangle {
	return Triangle{A: core.NewVec2(ax, ay), B: core.NewVec2(bx, by), C: core.NewVec2(cx, cy)}
}
