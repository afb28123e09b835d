package renderer

import (
	"testing"

	"github.com/df07/go-light2d/pkg/core"
)

func TestRaytracer_RenderPass(t *testing.T) {
	scene := newCircleScene(2)
	rt, err := NewRaytracer(scene, 16, 16)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	img := rt.RenderPass()
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Fatalf("Expected 16x16 image, got %v", img.Bounds())
	}

	// Pixel (8, 8) samples (0.5, 0.5), the light's center
	if got := img.GrayAt(8, 8).Y; got != 255 {
		t.Errorf("Expected saturated center pixel, got %d", got)
	}
	// Corners see only a small fraction of the light
	if got := img.GrayAt(0, 0).Y; got == 0 || got > 40 {
		t.Errorf("Expected a dim corner pixel, got %d", got)
	}
}

func TestRaytracer_Deterministic(t *testing.T) {
	scene := newCircleScene(1)

	render := func() []uint8 {
		rt, err := NewRaytracer(scene, 8, 8)
		if err != nil {
			t.Fatalf("NewRaytracer failed: %v", err)
		}
		rt.SetSampler(core.NewSeededSampler(99))
		return rt.RenderPass().Pix
	}

	a, b := render(), render()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Renders with the same seed differ at byte %d", i)
		}
	}
}

func TestNewRaytracer_Errors(t *testing.T) {
	scene := newCircleScene(1)
	if _, err := NewRaytracer(scene, 0, 16); err == nil {
		t.Error("Expected an error for zero width")
	}

	scene.config.MaxSteps = 0
	if _, err := NewRaytracer(scene, 16, 16); err == nil {
		t.Error("Expected an error for an invalid sampling config")
	}
}
