package core

import (
	"fmt"
	"strings"
)

// Marching and sampling policy constants
const (
	DefaultDirections  = 64
	DefaultMaxSteps    = 100
	DefaultMaxDistance = float32(2.0)
	DefaultEpsilon     = float32(1e-6)
	DefaultBias        = float32(1e-4)
	DefaultMaxDepth    = 10
)

// TransportMode selects how light is gathered at a hit
type TransportMode int

const (
	// TransportEmissive returns the emissive intensity of the first surface hit
	TransportEmissive TransportMode = iota
	// TransportReflective adds bounded specular reflection on reflective surfaces
	TransportReflective
)

// String returns the name used in flags and requests
func (m TransportMode) String() string {
	switch m {
	case TransportEmissive:
		return "emissive"
	case TransportReflective:
		return "reflective"
	default:
		return fmt.Sprintf("TransportMode(%d)", int(m))
	}
}

// ParseTransportMode parses a transport mode name
func ParseTransportMode(name string) (TransportMode, error) {
	switch strings.ToLower(name) {
	case "emissive":
		return TransportEmissive, nil
	case "reflective":
		return TransportReflective, nil
	default:
		return 0, fmt.Errorf("unknown transport mode %q", name)
	}
}

// SamplingConfig contains the per-pixel sampling and ray marching policy
type SamplingConfig struct {
	Directions        int           // Stratified directions per pixel estimate
	MaxSteps          int           // Sphere tracing step budget per ray
	MaxDistance       float32       // Ray length cutoff in normalized units
	Epsilon           float32       // Hit threshold for emissive transport
	ReflectionEpsilon float32       // Hit threshold for reflective transport
	Bias              float32       // Offset of reflected ray origins along the normal
	MaxDepth          int           // Maximum reflection recursion depth
	Transport         TransportMode // Light transport used by this scene
}

// DefaultSamplingConfig returns the fixed marching policy
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Directions:        DefaultDirections,
		MaxSteps:          DefaultMaxSteps,
		MaxDistance:       DefaultMaxDistance,
		Epsilon:           DefaultEpsilon,
		ReflectionEpsilon: MachineEpsilon,
		Bias:              DefaultBias,
		MaxDepth:          DefaultMaxDepth,
		Transport:         TransportEmissive,
	}
}

// Merge returns c with every non-zero field of override applied. Zero values
// mean unset, so Merge cannot lower MaxDepth to 0 or switch back to
// TransportEmissive; set those fields on the merged config directly or build
// the scene with scene.NewWithConfig.
func (c SamplingConfig) Merge(override SamplingConfig) SamplingConfig {
	if override.Directions != 0 {
		c.Directions = override.Directions
	}
	if override.MaxSteps != 0 {
		c.MaxSteps = override.MaxSteps
	}
	if override.MaxDistance != 0 {
		c.MaxDistance = override.MaxDistance
	}
	if override.Epsilon != 0 {
		c.Epsilon = override.Epsilon
	}
	if override.ReflectionEpsilon != 0 {
		c.ReflectionEpsilon = override.ReflectionEpsilon
	}
	if override.Bias != 0 {
		c.Bias = override.Bias
	}
	if override.MaxDepth != 0 {
		c.MaxDepth = override.MaxDepth
	}
	if override.Transport != TransportEmissive {
		c.Transport = override.Transport
	}
	return c
}

// Validate checks that the policy can terminate and produce finite estimates
func (c SamplingConfig) Validate() error {
	switch {
	case c.Directions <= 0:
		return fmt.Errorf("directions must be positive, got %d", c.Directions)
	case c.MaxSteps <= 0:
		return fmt.Errorf("max steps must be positive, got %d", c.MaxSteps)
	case c.MaxDistance <= 0:
		return fmt.Errorf("max distance must be positive, got %g", c.MaxDistance)
	case c.Epsilon <= 0:
		return fmt.Errorf("epsilon must be positive, got %g", c.Epsilon)
	case c.ReflectionEpsilon <= 0:
		return fmt.Errorf("reflection epsilon must be positive, got %g", c.ReflectionEpsilon)
	case c.Bias <= 0:
		return fmt.Errorf("bias must be positive, got %g", c.Bias)
	case c.MaxDepth < 0:
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	case c.Transport != TransportEmissive && c.Transport != TransportReflective:
		return fmt.Errorf("invalid transport mode %v", c.Transport)
	}
	return nil
}
