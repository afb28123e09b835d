package renderer

import (
	"fmt"
	"image"

	"github.com/df07/go-light2d/pkg/core"
	"github.com/df07/go-light2d/pkg/integrator"
)

// Raytracer renders a scene one pixel at a time on the calling goroutine
type Raytracer struct {
	scene      core.Scene
	integrator integrator.Integrator
	width      int
	height     int
	sampler    core.Sampler
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene core.Scene, width, height int) (*Raytracer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	config := scene.GetSamplingConfig()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampling config: %w", err)
	}
	integ, err := integrator.New(config)
	if err != nil {
		return nil, err
	}

	return &Raytracer{
		scene:      scene,
		integrator: integ,
		width:      width,
		height:     height,
		sampler:    core.NewSeededSampler(42), // Deterministic for testing
	}, nil
}

// SetSampler replaces the random source used for direction jitter
func (rt *Raytracer) SetSampler(sampler core.Sampler) {
	rt.sampler = sampler
}

// RenderPass renders every pixel with a single estimate and returns the image
func (rt *Raytracer) RenderPass() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, rt.width, rt.height))

	for j := 0; j < rt.height; j++ {
		for i := 0; i < rt.width; i++ {
			x, y := PixelPosition(i, j, rt.width, rt.height)
			v := RenderPixel(rt.scene, rt.integrator, x, y, rt.sampler)
			img.Pix[j*img.Stride+i] = radianceToGray(v)
		}
	}

	return img
}
