package scad

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func panics(fn func()) (panicked bool) {
	defer func() { panicked = recover() != nil }()
	fn()
	return panicked
}

func TestConstructorArity(t *testing.T) {
	box := Cube(V(Int(1), Int(1), Int(1)))
	tri := []r2.Vec{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}
	for _, tc := range []struct {
		name      string
		fn        func()
		wantPanic bool
	}{
		{"union of one", func() { Union(box) }, true},
		{"difference of one", func() { Difference(box) }, true},
		{"intersection of one", func() { Intersection(box) }, true},
		{"polygon of two points", func() { Polygon(tri[:2]) }, true},
		{"union of two", func() { Union(box, box) }, false},
		{"difference of three", func() { Difference(box, box, box) }, false},
		{"polygon triangle", func() { Polygon(tri) }, false},
	} {
		if got := panics(tc.fn); got != tc.wantPanic {
			t.Errorf("%s: panicked=%v, want %v", tc.name, got, tc.wantPanic)
		}
	}
}

func TestNodeAccessors(t *testing.T) {
	n := Translate(V(Int(1), Int(2), Float(-0.05)), Cylinder(Int(1), Int(60)))
	if n.Name() != "translate" {
		t.Fatalf("name: got %q", n.Name())
	}
	v, ok := n.Vec("v")
	if !ok || v != (r3.Vec{X: 1, Y: 2, Z: -0.05}) {
		t.Errorf("vector v: got %v, ok=%v", v, ok)
	}
	kids := n.Children()
	if len(kids) != 1 || kids[0].Name() != "cylinder" {
		t.Fatalf("children: got %d nodes", len(kids))
	}
	if r, ok := kids[0].Scalar("r"); !ok || r != 60 {
		t.Errorf("scalar r: got %v, ok=%v", r, ok)
	}
	if _, ok := kids[0].Scalar("d"); ok {
		t.Error("cylinder reports a diameter parameter it does not have")
	}

	bore := Bore(Float(4.4), Float(6.35))
	if !bore.Flag("center") {
		t.Error("bore is not centered")
	}
	if bore.Flag("nope") {
		t.Error("missing flag reported set")
	}
	if d, ok := bore.Scalar("d"); !ok || d != 6.35 {
		t.Errorf("bore diameter: got %v, ok=%v", d, ok)
	}
}

func TestPolygonCopiesPoints(t *testing.T) {
	pts := []r2.Vec{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}
	poly := Polygon(pts)
	pts[0].X = 99
	got := poly.Points("points")
	if len(got) != 3 {
		t.Fatalf("points: got %d, want 3", len(got))
	}
	if got[0].X != 1 {
		t.Error("polygon shares caller point storage")
	}
	if Cube(V(Int(1), Int(1), Int(1))).Points("points") != nil {
		t.Error("cube reports polygon points")
	}
}
