package scad

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestScalarRendering(t *testing.T) {
	for _, tc := range []struct {
		v    Real
		want string
	}{
		{Int(0), "0"},
		{Int(220), "220"},
		{Int(-40), "-40"},
		{Float(1.1), "1.1000000000"},
		{Float(-0.05), "-0.0500000000"},
		{Float(6.35), "6.3500000000"},
		{Float(64 / math.Pi), "20.3718327158"},
	} {
		if got := tc.v.scadString(); got != tc.want {
			t.Errorf("scalar %v: got %q, want %q", tc.v.Value(), got, tc.want)
		}
	}
}

func TestScriptLiteral(t *testing.T) {
	scene := Union(
		Difference(
			Cube(V(Int(4), Int(4), Float(1.1))),
			Translate(V(Int(1), Int(1), Float(-0.05)), Bore(Float(1.2), Float(6.35))),
		),
		Color(Green, CylinderD(Float(1.0), Float(20.5))),
	)
	const want = `$fn = 90;

union() {
	difference() {
		cube(size = [4, 4, 1.1000000000]);
		translate(v = [1, 1, -0.0500000000]) {
			cylinder(center = true, d = 6.3500000000, h = 1.2000000000);
		}
	}
	color(c = [0, 1, 0]) {
		cylinder(d = 20.5000000000, h = 1.0000000000);
	}
}
`
	got := Script(scene, 90)
	if got != want {
		t.Errorf("script mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestScriptExtrudedPolygon(t *testing.T) {
	tooth := Difference(
		LinearExtrude(Int(4), true, Polygon([]r2.Vec{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}})),
		Bore(Float(4.4), Float(6.35)),
	)
	const want = `
difference() {
	linear_extrude(center = true, height = 4) {
		polygon(points = [[1.0000000000, 0.0000000000], [0.0000000000, 1.0000000000], [-1.0000000000, 0.0000000000]]);
	}
	cylinder(center = true, d = 6.3500000000, h = 4.4000000000);
}
`
	got := Script(tooth, 0)
	if got != want {
		t.Errorf("script mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestScriptResolutionHeader(t *testing.T) {
	box := Cube(V(Int(2), Int(2), Int(1)))
	with := Script(Union(box, box), 48)
	if want := "$fn = 48;\n\nunion() {"; len(with) < len(want) || with[:len(want)] != want {
		t.Errorf("header: got %q...", with[:len(want)])
	}
	without := Script(Union(box, box), 0)
	if without[0] != '\n' {
		t.Errorf("headerless script starts with %q, want newline", without[0])
	}
	if without[len(without)-1] != '\n' {
		t.Error("script does not end with a newline")
	}
}

func TestScriptDeterminism(t *testing.T) {
	build := func() Node {
		return Union(
			Intersection(
				Translate(V(Int(0), Int(-40), Int(0)), Cylinder(Int(1), Int(60))),
				Translate(V(Int(0), Int(100), Int(0)), Cylinder(Int(1), Int(110))),
			),
			Color(Red, Cylinder(Float(1.1), Float(11.7983638696))),
		)
	}
	a := Script(build(), 90)
	b := Script(build(), 90)
	if a != b {
		t.Error("identical trees rendered differently")
	}
	tree := build()
	if Script(tree, 90) != Script(tree, 90) {
		t.Error("re-rendering one tree differs")
	}
}
