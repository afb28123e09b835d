package csg

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-light2d/pkg/core"
	"github.com/df07/go-light2d/pkg/geometry"
)

func approx(a, b float32) bool { return math.Abs(float64(a-b)) <= 1e-6 }

func TestEvaluate_Leaf(t *testing.T) {
	leaf := NewMirror(geometry.NewCircle(0.5, 0.5, 0.2), 0.7, 0.3)
	result := Evaluate(leaf, core.NewVec2(0.5, 0.5))

	if !approx(result.SD, -0.2) {
		t.Errorf("expected sd -0.2 at the center, got %v", result.SD)
	}
	if result.Emissive != 0.7 || result.Reflectivity != 0.3 {
		t.Errorf("expected material (0.7, 0.3), got (%v, %v)", result.Emissive, result.Reflectivity)
	}
}

func TestEvaluate_TwoCircleUnion(t *testing.T) {
	a := NewLeaf(geometry.NewCircle(0.4, 0.5, 0.2), 1.0)
	b := NewLeaf(geometry.NewCircle(0.6, 0.5, 0.2), 0.8)
	tree := NewUnion(a, b)

	tests := []struct {
		name     string
		p        core.Vec2
		sd       float32
		emissive float32
	}{
		{"left of both", core.NewVec2(0.1, 0.5), 0.1, 1.0},
		{"right of both", core.NewVec2(0.9, 0.5), 0.1, 0.8},
		{"deep in a", core.NewVec2(0.3, 0.5), -0.1, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Evaluate(tree, tt.p)
			if !approx(r.SD, tt.sd) || r.Emissive != tt.emissive {
				t.Errorf("got (sd %v, emissive %v), want (%v, %v)", r.SD, r.Emissive, tt.sd, tt.emissive)
			}
		})
	}
}

func TestEvaluate_CircleIntersectPlane(t *testing.T) {
	circle := NewLeaf(geometry.NewCircle(0.5, 0.5, 0.2), 1.0)
	plane := NewLeaf(geometry.NewPlane(0, 0.5, 0, 1), 0.8)
	tree := NewIntersect(circle, plane)

	// Both distances are about -0.1 here; the attributes stay with the circle
	r := Evaluate(tree, core.NewVec2(0.5, 0.4))
	if !approx(r.SD, -0.1) {
		t.Errorf("expected sd -0.1, got %v", r.SD)
	}
	if r.Emissive != 1.0 {
		t.Errorf("expected circle emissive 1.0, got %v", r.Emissive)
	}

	// Above the plane: plane.sd (0.1) > circle.sd (-0.1)
	r = Evaluate(tree, core.NewVec2(0.5, 0.6))
	if !approx(r.SD, 0.1) || r.Emissive != 1.0 {
		t.Errorf("expected (0.1, 1.0), got (%v, %v)", r.SD, r.Emissive)
	}

	// Outside the circle, below the plane: circle.sd (0.2) > plane.sd (-0.4)
	r = Evaluate(tree, core.NewVec2(0.5, 0.1))
	if !approx(r.SD, 0.2) || r.Emissive != 0.8 {
		t.Errorf("expected (0.2, 0.8), got (%v, %v)", r.SD, r.Emissive)
	}
}

func TestEvaluate_SubtractKeepsLeftMaterial(t *testing.T) {
	big := NewMirror(geometry.NewCircle(0.5, 0.5, 0.3), 0.6, 0.2)
	hole := NewMirror(geometry.NewCircle(0.5, 0.5, 0.1), 5.0, 0.9)
	tree := NewSubtract(big, hole)

	for _, p := range []core.Vec2{core.NewVec2(0.5, 0.5), core.NewVec2(0.7, 0.5), core.NewVec2(0.95, 0.5)} {
		r := Evaluate(tree, p)
		if r.Emissive != 0.6 || r.Reflectivity != 0.2 {
			t.Errorf("at %v: expected left material, got (%v, %v)", p, r.Emissive, r.Reflectivity)
		}
	}

	// Inside the hole the distance is to the hole's boundary
	if r := Evaluate(tree, core.NewVec2(0.5, 0.5)); !approx(r.SD, 0.1) {
		t.Errorf("expected sd 0.1 inside the hole, got %v", r.SD)
	}
	// In the ring between the two boundaries
	if r := Evaluate(tree, core.NewVec2(0.7, 0.5)); !approx(r.SD, -0.1) {
		t.Errorf("expected sd -0.1 in the ring, got %v", r.SD)
	}
}

func TestEvaluate_DoubleComplement(t *testing.T) {
	leaf := NewLeaf(geometry.NewTriangle(0.2, 0.2, 0.8, 0.2, 0.5, 0.8), 1.0)
	tree := NewComplement(NewComplement(leaf))

	for _, p := range []core.Vec2{core.NewVec2(0.5, 0.4), core.NewVec2(0.1, 0.9), core.NewVec2(0.5, 0.2)} {
		if got, want := Evaluate(tree, p), Evaluate(leaf, p); got != want {
			t.Errorf("at %v: double complement %+v, original %+v", p, got, want)
		}
	}
}

func TestUnionAll(t *testing.T) {
	if UnionAll() != nil {
		t.Error("expected nil for no nodes")
	}

	single := NewLeaf(geometry.NewCircle(0.5, 0.5, 0.1), 1)
	if UnionAll(single) != Node(single) {
		t.Error("expected a single node to be returned as is")
	}

	var nodes []Node
	for i := 0; i < 5; i++ {
		nodes = append(nodes, NewLeaf(geometry.NewCircle(float32(i)*0.2, 0.5, 0.05), float32(i)))
	}
	tree := UnionAll(nodes...)
	if Count(tree) != 5 {
		t.Errorf("expected 5 leaves, got %d", Count(tree))
	}

	// Left fold: the outermost union's right child is the last node
	u, ok := tree.(*Union)
	if !ok || u.Right != nodes[4] {
		t.Errorf("expected left-folded union chain, got %T", tree)
	}

	leaves := Leaves(tree)
	for i, leaf := range leaves {
		if leaf.Material.Emissive != float32(i) {
			t.Errorf("leaf %d out of order: emissive %v", i, leaf.Material.Emissive)
		}
	}
}

func TestValidate(t *testing.T) {
	circle := geometry.NewCircle(0.5, 0.5, 0.1)

	tests := []struct {
		name    string
		node    Node
		wantErr bool
		wantNil bool
	}{
		{"valid tree", NewSubtract(NewLeaf(circle, 1), NewComplement(NewLeaf(circle, 0))), false, false},
		{"nil root", nil, true, true},
		{"nil child", NewUnion(NewLeaf(circle, 1), nil), true, true},
		{"typed nil leaf", NewIntersect(NewLeaf(circle, 1), (*Leaf)(nil)), true, true},
		{"nil shape", &Leaf{}, true, true},
		{"negative emissive", NewLeaf(circle, -1), true, false},
		{"full reflectivity", NewMirror(circle, 0, 1), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.node)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantNil && !errors.Is(err, ErrNilNode) {
				t.Errorf("expected ErrNilNode, got %v", err)
			}
		})
	}
}

func TestTree_ImplementsEvaluator(t *testing.T) {
	var eval core.Evaluator = Tree{Root: NewLeaf(geometry.NewCircle(0.5, 0.5, 0.2), 1)}
	if r := eval.Evaluate(core.NewVec2(0.5, 0.5)); !approx(r.SD, -0.2) {
		t.Errorf("expected sd -0.2, got %v", r.SD)
	}
}
