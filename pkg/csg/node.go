// Package csg builds scenes out of primitive shapes with union, intersection,
// subtraction and complement, and evaluates the resulting trees.
package csg

import (
	"errors"
	"fmt"

	"github.com/df07/go-light2d/pkg/core"
	"github.com/df07/go-light2d/pkg/geometry"
)

// Material holds the radiometric attributes attached to a leaf shape
type Material struct {
	Emissive     float32 // Scalar light output
	Reflectivity float32 // Specular reflection fraction in [0,1)
}

// Node is one of Leaf, Union, Intersect, Subtract or Complement.
// Trees own their children and are not modified after construction.
type Node interface {
	isNode()
}

// Leaf is a shape with its material
type Leaf struct {
	Shape    geometry.Shape
	Material Material
}

// Union keeps the closer of its two children
type Union struct {
	Left, Right Node
}

// Intersect keeps the region inside both children
type Intersect struct {
	Left, Right Node
}

// Subtract removes Right from Left
type Subtract struct {
	Left, Right Node
}

// Complement swaps the inside and outside of Node
type Complement struct {
	Node Node
}

func (*Leaf) isNode()       {}
func (*Union) isNode()      {}
func (*Intersect) isNode()  {}
func (*Subtract) isNode()   {}
func (*Complement) isNode() {}

// NewLeaf creates an emissive, non-reflective leaf
func NewLeaf(shape geometry.Shape, emissive float32) *Leaf {
	return &Leaf{Shape: shape, Material: Material{Emissive: emissive}}
}

// NewMirror creates a leaf that reflects part of the light arriving at it
func NewMirror(shape geometry.Shape, emissive, reflectivity float32) *Leaf {
	return &Leaf{Shape: shape, Material: Material{Emissive: emissive, Reflectivity: reflectivity}}
}

// NewUnion creates a union node
func NewUnion(left, right Node) *Union {
	return &Union{Left: left, Right: right}
}

// NewIntersect creates an intersection node
func NewIntersect(left, right Node) *Intersect {
	return &Intersect{Left: left, Right: right}
}

// NewSubtract creates a subtraction node
func NewSubtract(left, right Node) *Subtract {
	return &Subtract{Left: left, Right: right}
}

// NewComplement creates a complement node
func NewComplement(node Node) *Complement {
	return &Complement{Node: node}
}

// UnionAll folds nodes left to right into a chain of unions.
// A single node is returned as is; no nodes returns nil.
func UnionAll(nodes ...Node) Node {
	if len(nodes) == 0 {
		return nil
	}
	acc := nodes[0]
	for _, n := range nodes[1:] {
		acc = NewUnion(acc, n)
	}
	return acc
}

// Evaluate computes the trace result of the tree rooted at node at point p
func Evaluate(node Node, p core.Vec2) core.TraceResult {
	switch n := node.(type) {
	case *Leaf:
		return core.TraceResult{
			SD:           geometry.Distance(n.Shape, p),
			Emissive:     n.Material.Emissive,
			Reflectivity: n.Material.Reflectivity,
		}
	case *Union:
		return Evaluate(n.Left, p).Union(Evaluate(n.Right, p))
	case *Intersect:
		return Evaluate(n.Left, p).Intersect(Evaluate(n.Right, p))
	case *Subtract:
		return Evaluate(n.Left, p).Subtract(Evaluate(n.Right, p))
	case *Complement:
		return Evaluate(n.Node, p).Complement()
	default:
		panic(fmt.Sprintf("csg: unknown node %T", node))
	}
}

// Tree adapts a root node to core.Evaluator
type Tree struct {
	Root Node
}

// Evaluate implements core.Evaluator
func (t Tree) Evaluate(p core.Vec2) core.TraceResult {
	return Evaluate(t.Root, p)
}

// ErrNilNode is reported by Validate for a missing child
var ErrNilNode = errors.New("csg: nil node")

// Validate checks that every node in the tree is present and every material
// is physically meaningful. It does not detect shared subtrees.
func Validate(node Node) error {
	return walk(node, "root")
}

func walk(node Node, path string) error {
	switch n := node.(type) {
	case nil:
		return fmt.Errorf("%s: %w", path, ErrNilNode)
	case *Leaf:
		if n == nil || n.Shape == nil {
			return fmt.Errorf("%s: %w", path, ErrNilNode)
		}
		if n.Material.Emissive < 0 {
			return fmt.Errorf("%s: negative emissive %g", path, n.Material.Emissive)
		}
		if n.Material.Reflectivity < 0 || n.Material.Reflectivity >= 1 {
			return fmt.Errorf("%s: reflectivity %g outside [0,1)", path, n.Material.Reflectivity)
		}
		return nil
	case *Union:
		if n == nil {
			return fmt.Errorf("%s: %w", path, ErrNilNode)
		}
		return walkPair(n.Left, n.Right, path+".union")
	case *Intersect:
		if n == nil {
			return fmt.Errorf("%s: %w", path, ErrNilNode)
		}
		return walkPair(n.Left, n.Right, path+".intersect")
	case *Subtract:
		if n == nil {
			return fmt.Errorf("%s: %w", path, ErrNilNode)
		}
		return walkPair(n.Left, n.Right, path+".subtract")
	case *Complement:
		if n == nil {
			return fmt.Errorf("%s: %w", path, ErrNilNode)
		}
		return walk(n.Node, path+".complement")
	default:
		return fmt.Errorf("%s: unknown node %T", path, node)
	}
}

func walkPair(left, right Node, path string) error {
	if err := walk(left, path+".left"); err != nil {
		return err
	}
	return walk(right, path+".right")
}

// Count returns the number of leaves in the tree
func Count(node Node) int {
	switch n := node.(type) {
	case *Leaf:
		return 1
	case *Union:
		return Count(n.Left) + Count(n.Right)
	case *Intersect:
		return Count(n.Left) + Count(n.Right)
	case *Subtract:
		return Count(n.Left) + Count(n.Right)
	case *Complement:
		return Count(n.Node)
	default:
		return 0
	}
}

// Leaves returns the leaves of the tree in left-to-right order
func Leaves(node Node) []*Leaf {
	var leaves []*Leaf
	var collect func(Node)
	collect = func(node Node) {
		switch n := node.(type) {
		case *Leaf:
			leaves = append(leaves, n)
		case *Union:
			collect(n.Left)
			collect(n.Right)
		case *Intersect:
			collect(n.Left)
			collect(n.Right)
		case *Subtract:
			collect(n.Left)
			collect(n.Right)
		case *Complement:
			collect(n.Node)
		}
	}
	collect(node)
	return leaves
}
