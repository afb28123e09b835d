package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-light2d/pkg/core"
	"github.com/df07/go-light2d/pkg/csg"
	"github.com/df07/go-light2d/pkg/geometry"
	"github.com/df07/go-light2d/pkg/integrator"
)

// testScene pairs a CSG tree with a sampling policy
type testScene struct {
	csg.Tree
	config core.SamplingConfig
}

func (s *testScene) GetSamplingConfig() core.SamplingConfig { return s.config }

// newCircleScene creates a single emissive circle at (0.5, 0.5) with radius 0.1
func newCircleScene(emissive float32) *testScene {
	return &testScene{
		Tree:   csg.Tree{Root: csg.NewLeaf(geometry.NewCircle(0.5, 0.5, 0.1), emissive)},
		config: core.DefaultSamplingConfig(),
	}
}

// newCorridorScene creates two facing fully reflective emitters with a bounded reflection depth
func newCorridorScene(maxDepth int) *testScene {
	left := csg.NewMirror(geometry.Plane{Point: core.NewVec2(0.2, 0), Normal: core.NewVec2(1, 0)}, 1, 1)
	right := csg.NewMirror(geometry.Plane{Point: core.NewVec2(0.8, 0), Normal: core.NewVec2(-1, 0)}, 1, 1)
	config := core.DefaultSamplingConfig()
	config.Transport = core.TransportReflective
	config.MaxDepth = maxDepth
	return &testScene{Tree: csg.Tree{Root: csg.NewUnion(left, right)}, config: config}
}

func mustIntegrator(t *testing.T, scene core.Scene) integrator.Integrator {
	t.Helper()
	integ, err := integrator.New(scene.GetSamplingConfig())
	if err != nil {
		t.Fatalf("failed to create integrator: %v", err)
	}
	return integ
}

func TestRenderPixel_InsideLight(t *testing.T) {
	scene := newCircleScene(1)
	integ := mustIntegrator(t, scene)

	// Every direction starts inside the circle
	got := RenderPixel(scene, integ, 0.5, 0.5, core.NewSeededSampler(1))
	if got != 1 {
		t.Errorf("expected exactly 1 at the light's center, got %v", got)
	}
}

func TestRenderPixel_SolidAngleFraction(t *testing.T) {
	scene := newCircleScene(1)
	integ := mustIntegrator(t, scene)

	// From the corner the circle subtends 2*asin(r/d) of the full turn
	d := math.Hypot(0.5, 0.5)
	expected := 2 * math.Asin(0.1/d) / (2 * math.Pi)

	sampler := core.NewSeededSampler(7)
	for trial := 0; trial < 5; trial++ {
		got := float64(RenderPixel(scene, integ, 0, 0, sampler))
		// With 64 stratified bins at most the two partial bins can differ
		if math.Abs(got-expected) > 0.025 {
			t.Errorf("trial %d: expected about %.4f, got %.4f", trial, expected, got)
		}
	}
}

func TestRenderPixel_Miss(t *testing.T) {
	scene := &testScene{
		Tree:   csg.Tree{Root: csg.NewLeaf(geometry.NewCircle(5, 5, 0.1), 1)},
		config: core.DefaultSamplingConfig(),
	}
	integ := mustIntegrator(t, scene)

	// The light is beyond the maximum ray length
	if got := RenderPixel(scene, integ, 0.5, 0.5, core.NewSeededSampler(3)); got != 0 {
		t.Errorf("expected 0 for an out-of-range light, got %v", got)
	}
}

func TestRenderPixel_ZeroDirections(t *testing.T) {
	scene := newCircleScene(1)
	integ := mustIntegrator(t, scene)
	scene.config.Directions = 0

	if got := RenderPixel(scene, integ, 0.5, 0.5, core.NewSeededSampler(3)); got != 0 {
		t.Errorf("expected 0 with no directions, got %v", got)
	}
}

func TestRenderPixel_ReflectionBounded(t *testing.T) {
	const maxDepth = 3
	scene := newCorridorScene(maxDepth)
	integ := mustIntegrator(t, scene)

	got := RenderPixel(scene, integ, 0.5, 0.5, core.NewSeededSampler(11))
	if math.IsNaN(float64(got)) || math.IsInf(float64(got), 0) {
		t.Fatalf("expected a finite value, got %v", got)
	}
	// Each ray collects at most one unit per surface hit
	if got > maxDepth+1+1e-4 {
		t.Errorf("expected at most %d, got %v", maxDepth+1, got)
	}
	// Only near-vertical rays leave the corridor without reaching a wall
	if got < 1 {
		t.Errorf("expected most rays to reach a wall, got %v", got)
	}
}

func TestPixelPosition(t *testing.T) {
	tests := []struct {
		i, j, w, h int
		x, y       float32
	}{
		{0, 0, 512, 512, 0, 0},
		{256, 128, 512, 512, 0.5, 0.25},
		{511, 0, 512, 256, 511.0 / 512, 0},
	}

	for _, tt := range tests {
		x, y := PixelPosition(tt.i, tt.j, tt.w, tt.h)
		if x != tt.x || y != tt.y {
			t.Errorf("PixelPosition(%d, %d) = (%v, %v), want (%v, %v)", tt.i, tt.j, x, y, tt.x, tt.y)
		}
	}
}

func TestRadianceToGray(t *testing.T) {
	tests := []struct {
		v    float32
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 127},
		{1, 255},
		{2, 255},
		{float32(math.NaN()), 0},
	}

	for _, tt := range tests {
		if got := radianceToGray(tt.v); got != tt.want {
			t.Errorf("radianceToGray(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}
