package integrator

import (
	"github.com/df07/go-light2d/pkg/core"
)

// EmissiveIntegrator returns the emissive intensity of the first surface a ray hits
type EmissiveIntegrator struct {
	marcher Marcher
	epsilon float32
}

// NewEmissiveIntegrator creates a new emissive integrator
func NewEmissiveIntegrator(config core.SamplingConfig) *EmissiveIntegrator {
	return &EmissiveIntegrator{
		marcher: NewMarcher(config),
		epsilon: config.Epsilon,
	}
}

// Radiance implements Integrator
func (ei *EmissiveIntegrator) Radiance(origin, dir core.Vec2, eval core.Evaluator) float32 {
	m := ei.marcher.March(origin, dir, eval, ei.epsilon)
	if !m.Hit {
		return 0
	}
	return m.Result.Emissive
}
