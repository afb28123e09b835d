package renderer

import (
	"github.com/df07/go-light2d/pkg/core"
	"github.com/df07/go-light2d/pkg/integrator"
)

// RenderPixel estimates the light arriving at (x, y) from all directions.
// The full turn is split into the scene's N equal bins, one jittered ray is
// traced per bin and the mean radiance is returned.
func RenderPixel(scene core.Scene, integ integrator.Integrator, x, y float32, sampler core.Sampler) float32 {
	n := scene.GetSamplingConfig().Directions
	if n <= 0 {
		return 0
	}

	origin := core.NewVec2(x, y)
	var sum float32
	for i := 0; i < n; i++ {
		angle := core.StratifiedAngle(i, n, sampler.Get1D())
		sum += integ.Radiance(origin, core.DirectionFromAngle(angle), scene)
	}
	return sum / float32(n)
}

// PixelPosition maps pixel (i, j) of a width x height raster to the normalized domain
func PixelPosition(i, j, width, height int) (x, y float32) {
	return float32(i) / float32(width), float32(j) / float32(height)
}

// radianceToGray clamps radiance to [0, 1] and quantizes it to 8 bits
func radianceToGray(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(255 * v)
}
