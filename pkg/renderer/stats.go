package renderer

import "image"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of pixel estimates taken
	AverageSamples float64 // Average estimates per pixel
	MaxSamples     int     // Maximum estimates allowed per pixel
	MinSamples     int     // Minimum estimates taken by any pixel
	MaxSamplesUsed int     // Maximum estimates actually used by any pixel
}

// PixelStats tracks the running mean of a pixel's radiance estimates
type PixelStats struct {
	Accum       float64 // Sum of estimates
	SqAccum     float64 // Sum of squared estimates for variance
	SampleCount int     // Number of estimates taken
}

// AddSample adds a new radiance estimate to the pixel statistics
func (ps *PixelStats) AddSample(value float32) {
	v := float64(value)
	ps.Accum += v
	ps.SqAccum += v * v
	ps.SampleCount++
}

// GetValue returns the current mean radiance for this pixel
func (ps *PixelStats) GetValue() float32 {
	if ps.SampleCount == 0 {
		return 0
	}
	return float32(ps.Accum / float64(ps.SampleCount))
}

// Variance returns the population variance of the estimates so far
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount == 0 {
		return 0
	}
	mean := ps.Accum / float64(ps.SampleCount)
	meanSq := ps.SqAccum / float64(ps.SampleCount)
	return max(0, meanSq-mean*mean)
}

// CalculateAverageBrightness returns the mean gray level of img in [0, 1]
func CalculateAverageBrightness(img *image.Gray) float64 {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			total += float64(img.GrayAt(x, y).Y) / 255.0
		}
	}
	return total / float64(bounds.Dx()*bounds.Dy())
}
