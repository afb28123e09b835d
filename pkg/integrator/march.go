package integrator

import (
	"github.com/df07/go-light2d/pkg/core"
	"github.com/soypat/glgl/math/ms2"
)

// Marcher sphere-traces rays through a distance field
type Marcher struct {
	MaxSteps    int     // Step budget per ray
	MaxDistance float32 // Rays longer than this are misses
}

// NewMarcher creates a marcher with the step budget and length cutoff of config
func NewMarcher(config core.SamplingConfig) Marcher {
	return Marcher{MaxSteps: config.MaxSteps, MaxDistance: config.MaxDistance}
}

// MarchResult describes where a ray ended
type MarchResult struct {
	Result   core.TraceResult // Scene value at the hit point; zero on a miss
	Hit      bool
	Steps    int       // Number of scene evaluations performed
	Distance float32   // Distance travelled along the ray
	Point    core.Vec2 // Hit point; origin on a zero-length direction
}

// March steps from origin along dir by the scene distance until the distance
// drops below epsilon (a hit), the step budget runs out or the ray leaves
// MaxDistance (a miss). A zero direction is a miss after one step.
func (m Marcher) March(origin, dir core.Vec2, eval core.Evaluator, epsilon float32) MarchResult {
	if core.IsZero(dir) {
		return MarchResult{Steps: 1, Point: origin}
	}

	var t float32
	steps := 0
	for steps < m.MaxSteps && t < m.MaxDistance {
		p := ms2.Add(origin, ms2.Scale(t, dir))
		result := eval.Evaluate(p)
		steps++
		if result.SD < epsilon {
			return MarchResult{Result: result, Hit: true, Steps: steps, Distance: t, Point: p}
		}
		// A NaN distance makes t fail the loop test
		t += result.SD
	}
	return MarchResult{Steps: steps, Distance: t}
}
