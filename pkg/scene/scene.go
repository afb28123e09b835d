package scene

import (
	"fmt"

	"github.com/df07/go-light2d/pkg/core"
	"github.com/df07/go-light2d/pkg/csg"
)

// Default raster size for scenes that do not recommend one
const (
	DefaultWidth  = 512
	DefaultHeight = 512
)

// Scene contains everything needed to render an image: the CSG tree, the
// marching policy and a recommended raster size. It is read-only once built.
type Scene struct {
	Root           csg.Node
	SamplingConfig core.SamplingConfig
	Width          int // Recommended image width
	Height         int // Recommended image height
}

// New creates a scene over root with the default policy and any overrides merged in.
// The tree and the resulting policy are validated. Overrides follow
// core.SamplingConfig.Merge, where zero fields are ignored; use NewWithConfig
// for a policy with MaxDepth 0 or emissive transport over a reflective default.
func New(root csg.Node, overrides ...core.SamplingConfig) (*Scene, error) {
	config := core.DefaultSamplingConfig()
	for _, override := range overrides {
		config = config.Merge(override)
	}
	return NewWithConfig(root, config)
}

// NewWithConfig creates a scene over root using config as given, zero fields included.
func NewWithConfig(root csg.Node, config core.SamplingConfig) (*Scene, error) {
	if err := csg.Validate(root); err != nil {
		return nil, fmt.Errorf("invalid scene tree: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampling config: %w", err)
	}

	return &Scene{
		Root:           root,
		SamplingConfig: config,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
	}, nil
}

// mustNew is New for the built-in scenes, whose trees are fixed
func mustNew(root csg.Node, overrides ...core.SamplingConfig) *Scene {
	s, err := New(root, overrides...)
	if err != nil {
		panic(err)
	}
	return s
}

// Evaluate implements core.Evaluator
func (s *Scene) Evaluate(p core.Vec2) core.TraceResult {
	return csg.Evaluate(s.Root, p)
}

// GetSamplingConfig implements core.Scene
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.SamplingConfig
}

// GetPrimitiveCount returns the number of primitive shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return csg.Count(s.Root)
}
