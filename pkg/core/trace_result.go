package core

// TraceResult is the value produced by evaluating any node of a scene at a point.
// SD is in the same units as Vec2 coordinates; negative means inside a closed shape.
type TraceResult struct {
	SD           float32 // Signed distance to the nearest surface
	Emissive     float32 // Scalar light emitted by that surface
	Reflectivity float32 // Fraction of light reflected specularly, in [0,1)
}

// Union keeps whichever operand has the closer surface. Equal distances keep r.
func (r TraceResult) Union(other TraceResult) TraceResult {
	if r.SD <= other.SD {
		return r
	}
	return other
}

// Intersect takes the larger distance. Surface attributes come from other only
// when r.SD > other.SD, otherwise from r.
func (r TraceResult) Intersect(other TraceResult) TraceResult {
	if r.SD > other.SD {
		return TraceResult{SD: r.SD, Emissive: other.Emissive, Reflectivity: other.Reflectivity}
	}
	return TraceResult{SD: other.SD, Emissive: r.Emissive, Reflectivity: r.Reflectivity}
}

// Subtract carves other out of r. The remaining material is always r's.
func (r TraceResult) Subtract(other TraceResult) TraceResult {
	sd := r.SD
	if -other.SD > sd {
		sd = -other.SD
	}
	return TraceResult{SD: sd, Emissive: r.Emissive, Reflectivity: r.Reflectivity}
}

// Complement swaps inside and outside
func (r TraceResult) Complement() TraceResult {
	return TraceResult{SD: -r.SD, Emissive: r.Emissive, Reflectivity: r.Reflectivity}
}
