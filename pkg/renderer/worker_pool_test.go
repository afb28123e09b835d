package renderer

import (
	"strings"
	"testing"

	"github.com/df07/go-light2d/pkg/core"
)

func TestWorkerPool_RendersAllTasks(t *testing.T) {
	scene := newCircleScene(1)
	config := DefaultProgressiveConfig()
	tr := NewTileRenderer(scene, &constantIntegrator{value: 0.25}, 16, 16, config)

	tiles := NewTileGrid(16, 16, 4, 1)
	pixelStats := newPixelStatsGrid(16, 16)

	pool := NewWorkerPool(tr, len(tiles), 3)
	if pool.GetNumWorkers() != 3 {
		t.Errorf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}
	pool.Start()
	pool.Start() // second start is a no-op

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, PassNumber: 1, TargetSamples: 1, TaskID: i, PixelStats: pixelStats})
	}

	seen := make(map[int]bool)
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			t.Fatal("Result queue closed early")
		}
		if result.Error != nil {
			t.Errorf("Task %d failed: %v", result.TaskID, result.Error)
		}
		if result.Stats.TotalPixels != 16 {
			t.Errorf("Task %d: expected 16 pixels, got %d", result.TaskID, result.Stats.TotalPixels)
		}
		seen[result.TaskID] = true
	}
	pool.Stop()
	pool.Stop() // second stop is a no-op

	if len(seen) != len(tiles) {
		t.Errorf("Expected %d distinct results, got %d", len(tiles), len(seen))
	}
	for y := range pixelStats {
		for x := range pixelStats[y] {
			if pixelStats[y][x].SampleCount != 1 {
				t.Fatalf("Pixel (%d,%d) has %d estimates", x, y, pixelStats[y][x].SampleCount)
			}
		}
	}
}

func TestWorkerPool_DefaultWorkerCount(t *testing.T) {
	tr := NewTileRenderer(newCircleScene(1), &constantIntegrator{}, 1, 1, DefaultProgressiveConfig())
	pool := NewWorkerPool(tr, 1, 0)
	if pool.GetNumWorkers() < 1 {
		t.Errorf("Expected at least one worker, got %d", pool.GetNumWorkers())
	}
	pool.Stop()
	if _, ok := pool.GetResult(); ok {
		t.Error("Expected a closed result queue after stop")
	}
}

// panickingIntegrator fails for every ray
type panickingIntegrator struct{}

func (panickingIntegrator) Radiance(origin, dir core.Vec2, eval core.Evaluator) float32 {
	panic("integrator failure")
}

func TestWorkerPool_RecoversTilePanic(t *testing.T) {
	tr := NewTileRenderer(newCircleScene(1), panickingIntegrator{}, 8, 8, DefaultProgressiveConfig())
	tiles := NewTileGrid(8, 8, 4, 1)
	pixelStats := newPixelStatsGrid(8, 8)

	pool := NewWorkerPool(tr, len(tiles), 1)
	pool.Start()
	defer pool.Stop()

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, PassNumber: 3, TargetSamples: 1, TaskID: i, PixelStats: pixelStats})
	}

	// A single worker survives every panic and reports each tile
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			t.Fatal("Result queue closed early")
		}
		if result.Error == nil {
			t.Fatalf("Task %d: expected an error", result.TaskID)
		}
		if !strings.Contains(result.Error.Error(), "integrator failure") || !strings.Contains(result.Error.Error(), "pass 3") {
			t.Errorf("Task %d: unexpected error %v", result.TaskID, result.Error)
		}
	}
}
