// Package integrator traces rays through a signed distance field and
// computes the light arriving along them.
package integrator

import (
	"fmt"

	"github.com/df07/go-light2d/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Radiance returns the light arriving at origin from direction dir.
	// Rays that hit nothing return zero.
	Radiance(origin, dir core.Vec2, eval core.Evaluator) float32
}

// New creates the integrator selected by config.Transport
func New(config core.SamplingConfig) (Integrator, error) {
	switch config.Transport {
	case core.TransportEmissive:
		return NewEmissiveIntegrator(config), nil
	case core.TransportReflective:
		return NewReflectiveIntegrator(config), nil
	default:
		return nil, fmt.Errorf("unsupported transport mode %v", config.Transport)
	}
}
