package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestCalculateAverageBrightness(t *testing.T) {
	// 2x2 image: white, black, mid gray, black -> (1 + 0 + 0.5 + 0) / 4
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{Y: 255})
	img.SetGray(1, 0, color.Gray{Y: 0})
	img.SetGray(0, 1, color.Gray{Y: 255 / 2})
	img.SetGray(1, 1, color.Gray{Y: 0})

	avg := CalculateAverageBrightness(img)
	expected := (1.0 + 127.0/255.0) / 4
	if math.Abs(avg-expected) > 1e-4 {
		t.Errorf("Expected average brightness %f, got %f", expected, avg)
	}
}

func TestCalculateAverageBrightness_Empty(t *testing.T) {
	if avg := CalculateAverageBrightness(image.NewGray(image.Rect(0, 0, 0, 0))); avg != 0 {
		t.Errorf("Expected 0 for an empty image, got %f", avg)
	}
}

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if ps.GetValue() != 0 || ps.Variance() != 0 {
		t.Error("empty pixel stats should report zero")
	}

	for _, v := range []float32{1, 3, 1, 3} {
		ps.AddSample(v)
	}

	if ps.SampleCount != 4 {
		t.Errorf("Expected 4 samples, got %d", ps.SampleCount)
	}
	if ps.GetValue() != 2 {
		t.Errorf("Expected mean 2, got %v", ps.GetValue())
	}
	if math.Abs(ps.Variance()-1) > 1e-9 {
		t.Errorf("Expected variance 1, got %v", ps.Variance())
	}
}
