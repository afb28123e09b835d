package core

import "testing"

func TestTraceResult_Union(t *testing.T) {
	a := TraceResult{SD: 0.2, Emissive: 1.0, Reflectivity: 0.1}
	b := TraceResult{SD: -0.1, Emissive: 0.5, Reflectivity: 0.7}

	if got := a.Union(b); got != b {
		t.Errorf("expected closer operand %+v, got %+v", b, got)
	}
	if got := b.Union(a); got != b {
		t.Errorf("expected closer operand %+v, got %+v", b, got)
	}

	// Union distance is commutative even though ties pick a side
	tie := TraceResult{SD: 0.2, Emissive: 3.0}
	if a.Union(tie).SD != tie.Union(a).SD {
		t.Error("union distance should not depend on operand order")
	}
	if got := a.Union(tie); got != a {
		t.Errorf("tie should keep the left operand, got %+v", got)
	}
	if got := tie.Union(a); got != tie {
		t.Errorf("tie should keep the left operand, got %+v", got)
	}
}

func TestTraceResult_Intersect(t *testing.T) {
	tests := []struct {
		name string
		a, b TraceResult
		want TraceResult
	}{
		{
			name: "left further",
			a:    TraceResult{SD: 0.3, Emissive: 1.0, Reflectivity: 0.2},
			b:    TraceResult{SD: 0.1, Emissive: 0.5, Reflectivity: 0.4},
			want: TraceResult{SD: 0.3, Emissive: 0.5, Reflectivity: 0.4},
		},
		{
			name: "right further",
			a:    TraceResult{SD: -0.3, Emissive: 1.0, Reflectivity: 0.2},
			b:    TraceResult{SD: 0.1, Emissive: 0.5, Reflectivity: 0.4},
			want: TraceResult{SD: 0.1, Emissive: 1.0, Reflectivity: 0.2},
		},
		{
			name: "tie",
			a:    TraceResult{SD: 0.1, Emissive: 1.0, Reflectivity: 0.2},
			b:    TraceResult{SD: 0.1, Emissive: 0.5, Reflectivity: 0.4},
			want: TraceResult{SD: 0.1, Emissive: 1.0, Reflectivity: 0.2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Errorf("Intersect() = %+v, want %+v", got, tt.want)
			}
			// The distance is the maximum in either order
			if tt.a.Intersect(tt.b).SD != tt.b.Intersect(tt.a).SD {
				t.Error("intersect distance should not depend on operand order")
			}
		})
	}
}

func TestTraceResult_Subtract(t *testing.T) {
	a := TraceResult{SD: -0.3, Emissive: 0.6, Reflectivity: 0.2}

	tests := []struct {
		name   string
		b      TraceResult
		wantSD float32
	}{
		{"outside b", TraceResult{SD: 0.5, Emissive: 9}, -0.3},
		{"inside b", TraceResult{SD: -0.1, Emissive: 9}, 0.1},
		{"deep inside b", TraceResult{SD: -0.4, Emissive: 9, Reflectivity: 0.9}, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Subtract(tt.b)
			if got.SD != tt.wantSD {
				t.Errorf("expected sd %v, got %v", tt.wantSD, got.SD)
			}
			if got.Emissive != a.Emissive || got.Reflectivity != a.Reflectivity {
				t.Errorf("expected left attributes, got %+v", got)
			}
		})
	}
}

func TestTraceResult_Complement(t *testing.T) {
	a := TraceResult{SD: 0.25, Emissive: 0.6, Reflectivity: 0.2}

	c := a.Complement()
	if c.SD != -0.25 || c.Emissive != a.Emissive || c.Reflectivity != a.Reflectivity {
		t.Errorf("unexpected complement %+v", c)
	}
	if c.Complement() != a {
		t.Errorf("double complement should be the identity, got %+v", c.Complement())
	}
}
