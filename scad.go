// Package scad builds OpenSCAD scene trees and renders them to script text.
package scad

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Real is a scalar parameter that keeps its source kind. Integer scalars
// render bare (r = 70) and derived measures render with ten decimals
// (r = 2.9395458905), so the kind is fixed at construction.
type Real struct {
	v     float64
	exact bool
}

// Int returns the scalar for an integer-valued parameter.
func Int(v int) Real { return Real{v: float64(v), exact: true} }

// Float returns the scalar for a derived measure.
func Float(v float64) Real { return Real{v: v} }

// Value returns the numeric value of the scalar.
func (a Real) Value() float64 { return a.v }

// V3 is a three component vector parameter. Components keep their own
// scalar kinds.
type V3 struct {
	X, Y, Z Real
}

// V is shorthand for a V3 from three scalars.
func V(x, y, z Real) V3 { return V3{X: x, Y: y, Z: z} }

// RGB is a color parameter with unit components.
type RGB struct {
	R, G, B int
}

// Basic colors of the OpenSCAD palette.
var (
	Red     = RGB{R: 1, G: 0, B: 0}
	Green   = RGB{R: 0, G: 1, B: 0}
	Blue    = RGB{R: 0, G: 0, B: 1}
	Cyan    = RGB{R: 0, G: 1, B: 1}
	Magenta = RGB{R: 1, G: 0, B: 1}
	Yellow  = RGB{R: 1, G: 1, B: 0}
	Black   = RGB{R: 0, G: 0, B: 0}
	White   = RGB{R: 1, G: 1, B: 1}
)

// Node is one call in an OpenSCAD scene tree. Nodes are built by the
// constructors in this package and are immutable afterwards. Structural
// mistakes (too few children or points) are programmer errors and panic
// at construction, never at render time.
type Node struct {
	name     string
	params   []param
	children []Node
}

// param is a named argument of a node. Constructors append params in
// name order, which is the order they render in.
type param struct {
	key string
	val scadValue
}

// Name returns the OpenSCAD call the node renders to.
func (n Node) Name() string { return n.name }

// Children returns the node's children in declaration order.
func (n Node) Children() []Node { return n.children }

// Scalar returns the numeric value of a named scalar parameter.
func (n Node) Scalar(key string) (float64, bool) {
	for _, p := range n.params {
		if p.key == key {
			if v, ok := p.val.(Real); ok {
				return v.v, true
			}
		}
	}
	return 0, false
}

// Vec returns a named vector parameter.
func (n Node) Vec(key string) (r3.Vec, bool) {
	for _, p := range n.params {
		if p.key == key {
			if v, ok := p.val.(V3); ok {
				return r3.Vec{X: v.X.v, Y: v.Y.v, Z: v.Z.v}, true
			}
		}
	}
	return r3.Vec{}, false
}

// Flag reports whether a named boolean parameter is set true.
func (n Node) Flag(key string) bool {
	for _, p := range n.params {
		if p.key == key {
			if v, ok := p.val.(flag); ok {
				return bool(v)
			}
		}
	}
	return false
}

// Points returns a named point list parameter, or nil if absent.
func (n Node) Points(key string) []r2.Vec {
	for _, p := range n.params {
		if p.key == key {
			if v, ok := p.val.(pointList); ok {
				return v
			}
		}
	}
	return nil
}

// Union joins two or more solids.
func Union(solids ...Node) Node {
	if len(solids) < 2 {
		panic("union of fewer than two solids")
	}
	return Node{name: "union", children: solids}
}

// Difference removes from the first solid all following solids.
func Difference(solids ...Node) Node {
	if len(solids) < 2 {
		panic("difference of fewer than two solids")
	}
	return Node{name: "difference", children: solids}
}

// Intersection keeps the volume common to all solids.
func Intersection(solids ...Node) Node {
	if len(solids) < 2 {
		panic("intersection of fewer than two solids")
	}
	return Node{name: "intersection", children: solids}
}

// Translate moves a solid by v.
func Translate(v V3, solid Node) Node {
	return Node{
		name:     "translate",
		params:   []param{{key: "v", val: v}},
		children: []Node{solid},
	}
}

// Color paints a solid.
func Color(c RGB, solid Node) Node {
	return Node{
		name:     "color",
		params:   []param{{key: "c", val: c}},
		children: []Node{solid},
	}
}

// Cylinder is a z-aligned cylinder of height h and radius r with its base
// on the xy plane.
func Cylinder(h, r Real) Node {
	return Node{
		name:   "cylinder",
		params: []param{{key: "h", val: h}, {key: "r", val: r}},
	}
}

// CylinderD is a Cylinder specified by diameter.
func CylinderD(h, d Real) Node {
	return Node{
		name:   "cylinder",
		params: []param{{key: "d", val: d}, {key: "h", val: h}},
	}
}

// Bore is a cylinder of diameter d centered on the origin in all three
// axes, typically subtracted as a hole.
func Bore(h, d Real) Node {
	return Node{
		name: "cylinder",
		params: []param{
			{key: "center", val: flag(true)},
			{key: "d", val: d},
			{key: "h", val: h},
		},
	}
}

// Cube is a box with one corner on the origin extending into the positive
// octant.
func Cube(size V3) Node {
	return Node{
		name:   "cube",
		params: []param{{key: "size", val: size}},
	}
}

// Polygon is a planar polygon over the given boundary points.
func Polygon(points []r2.Vec) Node {
	if len(points) < 3 {
		panic("polygon of fewer than three points")
	}
	pts := make(pointList, len(points))
	copy(pts, points)
	return Node{
		name:   "polygon",
		params: []param{{key: "points", val: pts}},
	}
}

// LinearExtrude extrudes a planar solid along z by height, centered on the
// xy plane when center is set.
func LinearExtrude(height Real, center bool, solid Node) Node {
	return Node{
		name: "linear_extrude",
		params: []param{
			{key: "center", val: flag(center)},
			{key: "height", val: height},
		},
		children: []Node{solid},
	}
}
