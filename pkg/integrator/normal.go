package integrator

import (
	"github.com/df07/go-light2d/pkg/core"
	"github.com/soypat/glgl/math/ms2"
)

// Gradient estimates the gradient of the distance field at p with central
// differences one machine epsilon wide. The result is not normalized; for an
// exact distance field it has unit length away from medial axes.
func Gradient(eval core.Evaluator, p core.Vec2) core.Vec2 {
	h := core.MachineEpsilon
	dx := eval.Evaluate(core.Vec2{X: p.X + h, Y: p.Y}).SD - eval.Evaluate(core.Vec2{X: p.X - h, Y: p.Y}).SD
	dy := eval.Evaluate(core.Vec2{X: p.X, Y: p.Y + h}).SD - eval.Evaluate(core.Vec2{X: p.X, Y: p.Y - h}).SD
	return core.Vec2{X: dx / (2 * h), Y: dy / (2 * h)}
}

// Reflect mirrors the incident direction i about normal n: i - 2(i·n)n
func Reflect(i, n core.Vec2) core.Vec2 {
	return ms2.Sub(i, ms2.Scale(2*ms2.Dot(i, n), n))
}
