package renderer

import (
	"image"
	"math"

	"github.com/df07/go-light2d/pkg/core"
	"github.com/df07/go-light2d/pkg/integrator"
)

// TileRenderer renders the pixels of individual tiles using an integrator
type TileRenderer struct {
	scene              core.Scene
	integrator         integrator.Integrator
	width, height      int
	adaptiveMinSamples float64
	adaptiveThreshold  float64
}

// NewTileRenderer creates a new tile renderer for a width x height raster
func NewTileRenderer(scene core.Scene, integ integrator.Integrator, width, height int, config ProgressiveConfig) *TileRenderer {
	return &TileRenderer{
		scene:              scene,
		integrator:         integ,
		width:              width,
		height:             height,
		adaptiveMinSamples: config.AdaptiveMinSamples,
		adaptiveThreshold:  config.AdaptiveThreshold,
	}
}

// RenderTileBounds adds estimates to every pixel within bounds until each
// pixel has targetSamples or has converged
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples int) RenderStats {
	stats := tr.initRenderStatsForBounds(bounds, targetSamples)

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			samplesUsed := tr.adaptiveSamplePixel(i, j, &pixelStats[j][i], sampler, targetSamples)
			tr.updateStats(&stats, samplesUsed)
		}
	}

	tr.finalizeStats(&stats)
	return stats
}

// adaptiveSamplePixel takes estimates for one pixel and returns how many it took
func (tr *TileRenderer) adaptiveSamplePixel(i, j int, ps *PixelStats, sampler core.Sampler, maxSamples int) int {
	initialSampleCount := ps.SampleCount
	x, y := PixelPosition(i, j, tr.width, tr.height)

	for ps.SampleCount < maxSamples && !tr.shouldStopSampling(ps, maxSamples) {
		ps.AddSample(RenderPixel(tr.scene, tr.integrator, x, y, sampler))
	}

	return ps.SampleCount - initialSampleCount
}

// shouldStopSampling determines if adaptive sampling should stop based on relative error
func (tr *TileRenderer) shouldStopSampling(ps *PixelStats, maxSamples int) bool {
	// Minimum samples as a fraction of the maximum. A single estimate has no
	// variance, so at least 2 are needed before the error means anything.
	minSamples := max(2, int(float64(maxSamples)*tr.adaptiveMinSamples))

	if ps.SampleCount < minSamples {
		return false
	}

	mean := ps.Accum / float64(ps.SampleCount)
	variance := ps.Variance()

	// Avoid division by zero for dark pixels
	if mean <= 1e-8 {
		return variance < 1e-6
	}

	relativeError := math.Sqrt(variance) / mean
	return relativeError < tr.adaptiveThreshold
}

func (tr *TileRenderer) initRenderStatsForBounds(bounds image.Rectangle, maxSamples int) RenderStats {
	return RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  maxSamples,
		MinSamples:  maxSamples, // Start with max, will be reduced
	}
}

func (tr *TileRenderer) updateStats(stats *RenderStats, samplesUsed int) {
	stats.TotalSamples += samplesUsed
	stats.MinSamples = min(stats.MinSamples, samplesUsed)
	stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samplesUsed)
}

func (tr *TileRenderer) finalizeStats(stats *RenderStats) {
	if stats.TotalPixels == 0 {
		return
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
}
