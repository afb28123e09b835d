package geometry

import (
	"github.com/df07/go-light2d/pkg/core"
	"github.com/soypat/glgl/math/ms2"
)

// Plane represents an infinite half-plane bounded by the line through Point.
// Distances are negative on the side opposite Normal. Normal is used as given.
type Plane struct {
	Point  core.Vec2 // A point on the boundary line
	Normal core.Vec2 // Outward normal (should be normalized)
}

// NewPlane creates a new plane, normalizing the given normal
func NewPlane(px, py, nx, ny float32) Plane {
	normal := core.NewVec2(nx, ny)
	if length := ms2.Norm(normal); length > 0 {
		normal = ms2.Scale(1/length, normal)
	}
	return Plane{Point: core.NewVec2(px, py), Normal: normal}
}
