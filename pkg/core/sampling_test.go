package core

import (
	"math"
	"testing"
)

func TestStratifiedAngle_Bins(t *testing.T) {
	const n = 64
	binWidth := 2 * math.Pi / n

	for i := 0; i < n; i++ {
		for _, u := range []float32{0, 0.5, 0.999} {
			angle := float64(StratifiedAngle(i, n, u))
			lo := float64(i) * binWidth
			hi := float64(i+1) * binWidth
			if angle < lo-1e-5 || angle >= hi+1e-5 {
				t.Fatalf("bin %d with u=%v: angle %v outside [%v, %v)", i, u, angle, lo, hi)
			}
		}
	}

	if StratifiedAngle(0, n, 0) != 0 {
		t.Error("first bin with u=0 should start at angle 0")
	}
}

func TestRandomSampler_Range(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 10000; i++ {
		v := sampler.Get1D()
		if v < 0 || v >= 1 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
	}
}

func TestRandomSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(7)
	b := NewSeededSampler(7)
	for i := 0; i < 100; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatalf("samplers with the same seed diverged at sample %d", i)
		}
	}
}

func TestDirectionFromAngle(t *testing.T) {
	tests := []struct {
		angle float32
		want  Vec2
	}{
		{0, NewVec2(1, 0)},
		{math.Pi / 2, NewVec2(0, 1)},
		{math.Pi, NewVec2(-1, 0)},
	}

	for _, tt := range tests {
		d := DirectionFromAngle(tt.angle)
		if math.Abs(float64(d.X-tt.want.X)) > 1e-6 || math.Abs(float64(d.Y-tt.want.Y)) > 1e-6 {
			t.Errorf("DirectionFromAngle(%v) = %v, want %v", tt.angle, d, tt.want)
		}
	}

	if !IsZero(Vec2{}) || IsZero(NewVec2(0, 1e-9)) {
		t.Error("IsZero misreports")
	}
}
