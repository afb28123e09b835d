package core

// Logger interface for renderer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Evaluator maps a point to the scene's distance and surface attributes there
type Evaluator interface {
	Evaluate(p Vec2) TraceResult
}

// EvaluatorFunc adapts an ordinary function to the Evaluator interface
type EvaluatorFunc func(p Vec2) TraceResult

// Evaluate calls f(p)
func (f EvaluatorFunc) Evaluate(p Vec2) TraceResult {
	return f(p)
}

// Scene is an evaluable distance field together with the marching policy used to render it
type Scene interface {
	Evaluator
	GetSamplingConfig() SamplingConfig
}
