package geometry

import (
	"fmt"

	"github.com/df07/go-light2d/pkg/core"
	"github.com/df07/go-light2d/pkg/sdf"
)

// Shape is one of the primitive shapes: Circle, Plane, Segment, Capsule,
// Rectangle or Triangle. The set is closed; Distance switches over it.
type Shape interface {
	isShape()
}

func (Circle) isShape()    {}
func (Plane) isShape()     {}
func (Segment) isShape()   {}
func (Capsule) isShape()   {}
func (Rectangle) isShape() {}
func (Triangle) isShape()  {}

// Distance evaluates the signed distance from p to shape
func Distance(shape Shape, p core.Vec2) float32 {
	switch s := shape.(type) {
	case Circle:
		return sdf.Circle(p, s.Center, s.Radius)
	case Plane:
		return sdf.Plane(p, s.Point, s.Normal)
	case Segment:
		return sdf.Segment(p, s.A, s.B)
	case Capsule:
		return sdf.Capsule(p, s.A, s.B, s.Radius)
	case Rectangle:
		return sdf.Rectangle(p, s.Center, s.Theta, s.HalfX, s.HalfY)
	case Triangle:
		return sdf.Triangle(p, s.A, s.B, s.C)
	default:
		panic(fmt.Sprintf("geometry: unknown shape %T", shape))
	}
}

// Name returns the lower-case kind of shape
func Name(shape Shape) string {
	switch shape.(type) {
	case Circle:
		return "circle"
	case Plane:
		return "plane"
	case Segment:
		return "segment"
	case Capsule:
		return "capsule"
	case Rectangle:
		return "rectangle"
	case Triangle:
		return "triangle"
	default:
		return fmt.Sprintf("%T", shape)
	}
}

// IsClosed reports whether the shape has an interior (negative distances)
func IsClosed(shape Shape) bool {
	switch shape.(type) {
	case Circle, Capsule, Rectangle, Triangle:
		return true
	default:
		return false
	}
}
