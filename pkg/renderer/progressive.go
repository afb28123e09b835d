package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"github.com/df07/go-light2d/pkg/core"
	"github.com/df07/go-light2d/pkg/integrator"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// NopLogger discards all output
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize           int     // Size of each tile (64x64 recommended)
	InitialSamples     int     // Pixel estimates in the first pass (1 recommended)
	MaxSamplesPerPixel int     // Maximum total pixel estimates
	MaxPasses          int     // Maximum number of passes
	NumWorkers         int     // Number of parallel workers (0 = use CPU count)
	Seed               int64   // Base seed for the per-tile random generators
	AdaptiveMinSamples float64 // Fraction of the pass target taken before adaptive stopping
	AdaptiveThreshold  float64 // Relative error below which a pixel stops sampling
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:           64,
		InitialSamples:     1,
		MaxSamplesPerPixel: 8, // Each estimate already traces N stratified directions
		MaxPasses:          4, // 1, 3, 5, then 8
		NumWorkers:         0, // Auto-detect CPU count
		Seed:               42,
		AdaptiveMinSamples: 0.25,
		AdaptiveThreshold:  0.01,
	}
}

// Validate checks that the configuration describes a finite render
func (c ProgressiveConfig) Validate() error {
	switch {
	case c.TileSize <= 0:
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	case c.InitialSamples <= 0:
		return fmt.Errorf("initial samples must be positive, got %d", c.InitialSamples)
	case c.MaxSamplesPerPixel < c.InitialSamples:
		return fmt.Errorf("max samples per pixel (%d) below initial samples (%d)", c.MaxSamplesPerPixel, c.InitialSamples)
	case c.MaxPasses <= 0:
		return fmt.Errorf("max passes must be positive, got %d", c.MaxPasses)
	case c.NumWorkers < 0:
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	case c.AdaptiveMinSamples < 0 || c.AdaptiveMinSamples > 1:
		return fmt.Errorf("adaptive min samples must be in [0,1], got %g", c.AdaptiveMinSamples)
	case c.AdaptiveThreshold < 0:
		return fmt.Errorf("adaptive threshold must not be negative, got %g", c.AdaptiveThreshold)
	}
	return nil
}

// ProgressiveRaytracer manages progressive rendering with multiple passes
type ProgressiveRaytracer struct {
	scene         core.Scene
	width, height int
	config        ProgressiveConfig
	tiles         []*Tile        // Tile management
	currentPass   int            // Progressive state
	pixelStats    [][]PixelStats // Shared pixel statistics array (global image coordinates)
	tileRenderer  *TileRenderer  // Shared by every worker pool
	workerPool    *WorkerPool    // Pool of the current render, nil between renders
	rendering     atomic.Bool    // Set while RenderProgressive is running
	logger        core.Logger    // Logger for rendering output
}

// ErrRenderInProgress is returned when RenderProgressive is called while
// another render on the same raytracer is still running
var ErrRenderInProgress = errors.New("progressive render already in progress")

// NewProgressiveRaytracer creates a new progressive raytracer
func NewProgressiveRaytracer(scene core.Scene, width, height int, config ProgressiveConfig, logger core.Logger) (*ProgressiveRaytracer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid progressive config: %w", err)
	}
	samplingConfig := scene.GetSamplingConfig()
	if err := samplingConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampling config: %w", err)
	}
	integ, err := integrator.New(samplingConfig)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NopLogger{}
	}

	tiles := NewTileGrid(width, height, config.TileSize, config.Seed)

	// Initialize shared pixel statistics array (global image coordinates)
	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	tileRenderer := NewTileRenderer(scene, integ, width, height, config)

	return &ProgressiveRaytracer{
		scene:        scene,
		width:        width,
		height:       height,
		config:       config,
		tiles:        tiles,
		currentPass:  0,
		pixelStats:   pixelStats,
		tileRenderer: tileRenderer,
		logger:       logger,
	}, nil
}

// getSamplesForPass calculates the target total estimates for a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	// Special case: if only 1 pass, use all samples
	if pr.config.MaxPasses == 1 {
		return pr.config.MaxSamplesPerPixel
	}

	// First pass is a quick preview
	if passNumber == 1 {
		return pr.config.InitialSamples
	}

	// Divide remaining samples evenly across remaining passes
	remainingSamples := pr.config.MaxSamplesPerPixel - pr.config.InitialSamples
	remainingPasses := pr.config.MaxPasses - 1
	samplesPerPass := remainingSamples / remainingPasses

	targetSamples := pr.config.InitialSamples + (passNumber-1)*samplesPerPass

	// The final pass takes all remaining samples
	if passNumber >= pr.config.MaxPasses {
		targetSamples = pr.config.MaxSamplesPerPixel
	}

	return targetSamples
}

// RenderPass renders a single progressive pass using parallel processing.
// Outside RenderProgressive the pool it starts stays up for later passes.
func (pr *ProgressiveRaytracer) RenderPass(passNumber int, tileCallback func(TileCompletionResult)) (*image.Gray, RenderStats, error) {
	pr.currentPass = passNumber

	targetSamples := pr.getSamplesForPass(passNumber)

	if pr.workerPool == nil {
		pr.workerPool = pr.newWorkerPool()
	}

	pr.logger.Printf("Pass %d: Target %d estimates per pixel (using %d workers)...\n",
		passNumber, targetSamples, pr.workerPool.GetNumWorkers())

	pr.workerPool.Start()

	for taskID, tile := range pr.tiles {
		pr.workerPool.SubmitTask(TileTask{
			Tile:          tile,
			PassNumber:    passNumber,
			TargetSamples: targetSamples,
			TaskID:        taskID,
			PixelStats:    pr.pixelStats,
		})
	}

	// Wait for all tiles and dispatch tile callbacks from this goroutine only
	for i := 0; i < len(pr.tiles); i++ {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, errors.New("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			return nil, RenderStats{}, result.Error
		}

		tile := pr.tiles[result.TaskID]
		tile.PassesCompleted++

		if tileCallback != nil {
			tileCallback(TileCompletionResult{
				TileX:      tile.Bounds.Min.X / pr.config.TileSize,
				TileY:      tile.Bounds.Min.Y / pr.config.TileSize,
				TileImage:  pr.extractTileImage(tile),
				PassNumber: passNumber,

				TileNumber:  i + 1,
				TotalTiles:  len(pr.tiles),
				TotalPasses: pr.config.MaxPasses,
			})
		}
	}

	img, stats := pr.assembleCurrentImage(targetSamples)
	return img, stats, nil
}

// newWorkerPool creates a pool sized for one pass over every tile
func (pr *ProgressiveRaytracer) newWorkerPool() *WorkerPool {
	return NewWorkerPool(pr.tileRenderer, len(pr.tiles), pr.config.NumWorkers)
}

// releaseWorkerPool stops the current pool; the next pass starts a new one
func (pr *ProgressiveRaytracer) releaseWorkerPool() {
	if pr.workerPool != nil {
		pr.workerPool.Stop()
		pr.workerPool = nil
	}
}

// extractTileImage extracts a tile image from the shared pixel stats array
func (pr *ProgressiveRaytracer) extractTileImage(tile *Tile) *image.Gray {
	bounds := tile.Bounds
	tileImage := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			stats := &pr.pixelStats[y][x]
			if stats.SampleCount > 0 {
				tileImage.Pix[(y-bounds.Min.Y)*tileImage.Stride+(x-bounds.Min.X)] = radianceToGray(stats.GetValue())
			}
		}
	}

	return tileImage
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *image.Gray
	Stats      RenderStats
	IsLast     bool
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX      int // Tile coordinates (not pixel coordinates)
	TileY      int
	TileImage  *image.Gray // Image data for just this tile
	PassNumber int         // Which pass this tile was rendered in

	// Progress information
	TileNumber  int // Current tile number in this pass (1-based)
	TotalTiles  int // Total number of tiles in the image
	TotalPasses int // Total number of passes planned
}

// RenderOptions configures progressive rendering behavior
type RenderOptions struct {
	TileUpdates bool // Whether to generate tile completion events
}

// RenderProgressive renders with channel-based communication.
// The caller should read from these channels in separate goroutines.
// If options.TileUpdates is false, the tile channel is closed immediately.
// Each call runs on a fresh worker pool and continues from the estimates
// already accumulated; a call made while another is running fails with
// ErrRenderInProgress.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context, options RenderOptions) (<-chan PassResult, <-chan TileCompletionResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	tileChan := make(chan TileCompletionResult, 100)
	errChan := make(chan error, 1)

	if !options.TileUpdates {
		close(tileChan)
	}

	if !pr.rendering.CompareAndSwap(false, true) {
		errChan <- ErrRenderInProgress
		close(errChan)
		close(passChan)
		if options.TileUpdates {
			close(tileChan)
		}
		return passChan, tileChan, errChan
	}

	go func() {
		defer close(passChan)
		if options.TileUpdates {
			defer close(tileChan)
		}
		defer close(errChan)
		defer pr.rendering.Store(false)
		defer pr.releaseWorkerPool()

		pr.workerPool = pr.newWorkerPool()

		pr.logger.Printf("Starting progressive rendering with %d passes...\n", pr.config.MaxPasses)

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()

			var tileCallback func(TileCompletionResult)
			if options.TileUpdates {
				tileCallback = func(result TileCompletionResult) {
					select {
					case tileChan <- result:
					case <-ctx.Done():
					default:
						// Channel full; the pass image still carries this tile
					}
				}
			}

			img, stats, err := pr.RenderPass(pass, tileCallback)
			if err != nil {
				errChan <- err
				return
			}

			actualSamples := int(stats.AverageSamples)
			pr.logger.Printf("Pass %d completed in %v (actual: %.2f estimates/pixel)\n",
				pass, time.Since(startTime), stats.AverageSamples)

			isLast := pass == pr.config.MaxPasses || actualSamples >= pr.config.MaxSamplesPerPixel
			select {
			case passChan <- PassResult{PassNumber: pass, Image: img, Stats: stats, IsLast: isLast}:
			case <-ctx.Done():
				return
			}

			if isLast {
				if actualSamples >= pr.config.MaxSamplesPerPixel {
					pr.logger.Printf("Reached maximum estimates per pixel (%d), stopping.\n", pr.config.MaxSamplesPerPixel)
				}
				return
			}
		}
	}()

	return passChan, tileChan, errChan
}

// Render runs every pass and returns the final one
func (pr *ProgressiveRaytracer) Render(ctx context.Context) (PassResult, error) {
	passChan, _, errChan := pr.RenderProgressive(ctx, RenderOptions{})

	var last PassResult
	for result := range passChan {
		last = result
	}
	if err := <-errChan; err != nil {
		return last, err
	}
	if last.Image == nil {
		// The context ended while the first pass was being delivered
		if err := ctx.Err(); err != nil {
			return last, err
		}
		return last, errors.New("render produced no passes")
	}
	return last, nil
}

// assembleCurrentImage creates an image from the shared pixel stats and
// calculates render statistics in the same sweep
func (pr *ProgressiveRaytracer) assembleCurrentImage(targetSamples int) (*image.Gray, RenderStats) {
	img := image.NewGray(image.Rect(0, 0, pr.width, pr.height))

	stats := RenderStats{
		TotalPixels: pr.width * pr.height,
		MaxSamples:  targetSamples,
		MinSamples:  pr.config.MaxSamplesPerPixel, // Start high, will be reduced
	}

	for y := 0; y < pr.height; y++ {
		for x := 0; x < pr.width; x++ {
			pixel := &pr.pixelStats[y][x]
			img.Pix[y*img.Stride+x] = radianceToGray(pixel.GetValue())

			stats.TotalSamples += pixel.SampleCount
			stats.MinSamples = min(stats.MinSamples, pixel.SampleCount)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, pixel.SampleCount)
		}
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return img, stats
}

// PixelValues returns a copy of the current per-pixel mean radiance, row major
func (pr *ProgressiveRaytracer) PixelValues() []float32 {
	values := make([]float32, 0, pr.width*pr.height)
	for y := 0; y < pr.height; y++ {
		for x := 0; x < pr.width; x++ {
			values = append(values, pr.pixelStats[y][x].GetValue())
		}
	}
	return values
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID              int                 // Unique tile identifier
	Bounds          image.Rectangle     // Pixel bounds (x0,y0,x1,y1)
	PassesCompleted int                 // Number of passes completed for this tile
	Sampler         *core.RandomSampler // Tile-specific random source for deterministic results
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewSeededSampler(seed + int64(id)),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}
