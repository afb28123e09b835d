package scene

import (
	"math"

	"github.com/df07/go-light2d/pkg/core"
	"github.com/df07/go-light2d/pkg/csg"
	"github.com/df07/go-light2d/pkg/geometry"
)

var reflective = core.SamplingConfig{Transport: core.TransportReflective}

// NewBasicScene creates a single bright circle in the middle of the image
func NewBasicScene() *Scene {
	return mustNew(csg.NewLeaf(geometry.NewCircle(0.5, 0.5, 0.1), 2.0))
}

// NewCSGScene creates two overlapping circles of different brightness joined by a union
func NewCSGScene() *Scene {
	a := csg.NewLeaf(geometry.NewCircle(0.4, 0.5, 0.2), 1.0)
	b := csg.NewLeaf(geometry.NewCircle(0.6, 0.5, 0.2), 0.8)
	return mustNew(csg.NewUnion(a, b))
}

// NewShapesScene creates a circle cut in half by a plane
func NewShapesScene() *Scene {
	circle := csg.NewLeaf(geometry.NewCircle(0.5, 0.5, 0.2), 1.0)
	plane := csg.NewLeaf(geometry.NewPlane(0, 0.5, 0, 1), 0.8)
	return mustNew(csg.NewIntersect(circle, plane))
}

// NewReflectionScene creates a light next to two tilted mirror squares
func NewReflectionScene() *Scene {
	theta := float32(2 * math.Pi / 16)
	light := csg.NewLeaf(geometry.NewCircle(0.4, 0.2, 0.1), 2.0)
	b := csg.NewMirror(geometry.NewRectangle(0.5, 0.8, theta, 0.1, 0.1), 0, 0.9)
	c := csg.NewMirror(geometry.NewRectangle(0.8, 0.5, theta, 0.1, 0.1), 0, 0.9)
	return mustNew(csg.NewUnion(light, csg.NewUnion(b, c)), reflective)
}

// NewRingScene creates a center light surrounded by ten small lights of increasing brightness
func NewRingScene() *Scene {
	root := csg.Node(csg.NewLeaf(geometry.NewCircle(0.5, 0.5, 0.1), 1.0))
	for i := 0; i < 10; i++ {
		emissive := float32(i) / 10
		s, c := math.Sincos(2 * math.Pi * float64(emissive))
		small := csg.NewLeaf(geometry.NewCircle(0.5+float32(c)*0.4, 0.5+float32(s)*0.4, 0.05), emissive)
		root = csg.NewUnion(root, small)
	}

	s := mustNew(root)
	s.Width, s.Height = 2*DefaultWidth, 2*DefaultHeight
	return s
}

// NewMirrorsScene creates two facing mirror slabs with a light between them.
// Light bounces between the slabs until the reflection depth runs out.
func NewMirrorsScene() *Scene {
	light := csg.NewLeaf(geometry.NewCircle(0.5, 0.5, 0.06), 1.5)
	top := csg.NewMirror(geometry.NewRectangle(0.5, 0.15, 0, 0.35, 0.03), 0, 0.95)
	bottom := csg.NewMirror(geometry.NewRectangle(0.5, 0.85, 0, 0.35, 0.03), 0, 0.95)
	// A thin emissive strip so the slabs also show their own glow
	strip := csg.NewLeaf(geometry.NewCapsule(0.2, 0.5, 0.3, 0.5, 0.01), 0.6)
	return mustNew(csg.UnionAll(light, top, bottom, strip), reflective)
}

// NewGalleryScene lays out one of every primitive and CSG operator
func NewGalleryScene() *Scene {
	capsule := csg.NewLeaf(geometry.NewCapsule(0.15, 0.2, 0.35, 0.25, 0.04), 1.0)
	rectangle := csg.NewLeaf(geometry.NewRectangle(0.75, 0.2, float32(math.Pi/6), 0.1, 0.05), 0.9)
	triangle := csg.NewLeaf(geometry.NewTriangle(0.15, 0.75, 0.35, 0.75, 0.25, 0.55), 0.8)

	// A ring: disc minus a smaller disc
	ring := csg.NewSubtract(
		csg.NewLeaf(geometry.NewCircle(0.75, 0.7, 0.12), 1.2),
		csg.NewLeaf(geometry.NewCircle(0.75, 0.7, 0.07), 0),
	)

	// Thin segment inflated into a visible stroke
	stroke := csg.NewLeaf(geometry.NewCapsule(0.45, 0.45, 0.55, 0.55, 0.005), 2.0)

	// A circular cap: the part of the circle past y = 0.95 removed with a complemented half plane
	floor := csg.NewLeaf(geometry.NewPlane(0, 0.95, 0, -1), 0.3)
	bounded := csg.NewIntersect(csg.NewComplement(floor), csg.NewLeaf(geometry.NewCircle(0.5, 1.2, 0.3), 0.3))

	return mustNew(csg.UnionAll(capsule, rectangle, triangle, ring, stroke, bounded))
}
