package geometry

import "github.com/df07/go-light2d/pkg/core"

// Segment represents the line segment between A and B. It has no interior,
// so its distance is never negative.
type Segment struct {
	A, B core.Vec2
}

// NewSegment creates a new segment
func NewSegment(ax, ay, bx, by float32) Segment {
	return Segment{A: core.NewVec2(ax, ay), B: core.NewVec2(bx, by)}
}

// Capsule represents a segment inflated by Radius
type Capsule struct {
	A, B   core.Vec2
	Radius float32
}

// NewCapsule creates a new capsule
func NewCapsule(ax, ay, bx, by, r float32) Capsule {
	return Capsule{A: core.NewVec2(ax, ay), B: core.NewVec2(bx, by), Radius: r}
}
