package integrator

import (
	"github.com/df07/go-light2d/pkg/core"
	"github.com/soypat/glgl/math/ms2"
)

// ReflectiveIntegrator adds ideal specular reflection to emissive transport.
// Each hit contributes its emission plus its reflectivity times the light
// arriving along the mirrored direction, up to maxDepth reflections.
type ReflectiveIntegrator struct {
	marcher  Marcher
	epsilon  float32
	bias     float32
	maxDepth int
}

// NewReflectiveIntegrator creates a new reflective integrator
func NewReflectiveIntegrator(config core.SamplingConfig) *ReflectiveIntegrator {
	return &ReflectiveIntegrator{
		marcher:  NewMarcher(config),
		epsilon:  config.ReflectionEpsilon,
		bias:     config.Bias,
		maxDepth: config.MaxDepth,
	}
}

// Radiance implements Integrator
func (ri *ReflectiveIntegrator) Radiance(origin, dir core.Vec2, eval core.Evaluator) float32 {
	return ri.trace(origin, dir, eval, 0)
}

func (ri *ReflectiveIntegrator) trace(origin, dir core.Vec2, eval core.Evaluator, depth int) float32 {
	m := ri.marcher.March(origin, dir, eval, ri.epsilon)
	if !m.Hit {
		return 0
	}

	radiance := m.Result.Emissive
	if depth < ri.maxDepth && m.Result.Reflectivity > 0 {
		n := Gradient(eval, m.Point)
		// Offset along the normal so the reflected ray does not hit the same surface at t=0
		next := ms2.Add(m.Point, ms2.Scale(ri.bias, n))
		radiance += m.Result.Reflectivity * ri.trace(next, Reflect(dir, n), eval, depth+1)
	}
	return radiance
}
