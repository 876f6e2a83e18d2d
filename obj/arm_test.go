package obj_test

import (
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/soypat/scad"
	"github.com/soypat/scad/obj"
	"gonum.org/v1/gonum/spatial/r2"
)

// First recovered sample: thin upper circle.
const armScriptA = `$fn = 90;

union() {
	union() {
		difference() {
			difference() {
				intersection() {
					translate(v = [0, -40, 0]) {
						cylinder(h = 1, r = 60);
					}
					translate(v = [0, 100, 0]) {
						cylinder(h = 1, r = 110);
					}
				}
				translate(v = [-242.4028853967, -7.6945250507, -0.0500000000]) {
					cube(size = [220, 22.2858983472, 1.1000000000]);
				}
			}
			translate(v = [41.0982751437, -2.0339736569, -0.0500000000]) {
				cube(size = [220, 4.8230074239, 1.1000000000]);
			}
		}
		color(c = [0, 1, 0]) {
			translate(v = [40, 0.6926949609, -0.0500000000]) {
				cylinder(h = 1.1000000000, r = 2.9395458905);
			}
		}
	}
	color(c = [1, 0, 0]) {
		translate(v = [-20, 3.8565585249, -0.0500000000]) {
			cylinder(h = 1.1000000000, r = 11.7983638696);
		}
	}
}
`

// Second recovered sample: the program defaults.
const armScriptB = `$fn = 90;

union() {
	union() {
		difference() {
			difference() {
				intersection() {
					translate(v = [0, -40, 0]) {
						cylinder(h = 1, r = 70);
					}
					translate(v = [0, 100, 0]) {
						cylinder(h = 1, r = 110);
					}
				}
				translate(v = [-243.6445017525, -7.4287556331, -0.0500000000]) {
					cube(size = [220, 32.2625677500, 1.1000000000]);
				}
			}
			translate(v = [43.3498264779, -1.0979354109, -0.0500000000]) {
				cube(size = [220, 14.2688698742, 1.1000000000]);
			}
		}
		color(c = [0, 1, 0]) {
			translate(v = [40, 6.7143344046, -0.0500000000]) {
				cylinder(h = 1.1000000000, r = 8.5001704160);
			}
		}
	}
	color(c = [1, 0, 0]) {
		translate(v = [-20, 9.1300322100, -0.0500000000]) {
			cylinder(h = 1.1000000000, r = 16.9551127350);
		}
	}
}
`

func TestArmScenarioA(t *testing.T) {
	node, err := obj.Arm(obj.ArmParams{P: 40, Q: 10, S: -20, T: -100, U: 40, W: -20})
	if err != nil {
		t.Fatal(err)
	}
	got := scad.Script(node, 90)
	if got != armScriptA {
		t.Errorf("scenario A script mismatch (-want +got):\n%s", cmp.Diff(armScriptA, got))
	}
}

func TestArmScenarioB(t *testing.T) {
	node, err := obj.Arm(obj.ArmParams{P: 40, Q: 10, S: -30, T: -100, U: 40, W: -20})
	if err != nil {
		t.Fatal(err)
	}
	got := scad.Script(node, 90)
	if got != armScriptB {
		t.Errorf("scenario B script mismatch (-want +got):\n%s", cmp.Diff(armScriptB, got))
	}
}

func TestArmDeterminism(t *testing.T) {
	k := obj.ArmParams{P: 40, Q: 10, S: -30, T: -100, U: 40, W: -20}
	a, err := obj.Arm(k)
	if err != nil {
		t.Fatal(err)
	}
	b, err := obj.Arm(k)
	if err != nil {
		t.Fatal(err)
	}
	if scad.Script(a, 90) != scad.Script(b, 90) {
		t.Error("identical parameters produced different scripts")
	}
}

// Thickening the upper circle (more negative s) grows the lens: its top
// rises with r1 while its bottom stays pinned by the lower circle.
func TestArmLensGrowth(t *testing.T) {
	prev := math.Inf(-1)
	for s := -10; s >= -60; s -= 10 {
		lay, err := obj.SolveArm(obj.ArmParams{P: 40, Q: 10, S: s, T: -100, U: 40, W: -20})
		if err != nil {
			t.Fatalf("s=%d: %v", s, err)
		}
		top := minInt(lay.UpperY+lay.R1, lay.LowerY+lay.R2)
		bottom := maxInt(lay.UpperY-lay.R1, lay.LowerY-lay.R2)
		extent := float64(top - bottom)
		if extent <= prev {
			t.Errorf("s=%d: lens extent %v did not grow past %v", s, extent, prev)
		}
		prev = extent
	}
}

func TestArmTangencyGeometry(t *testing.T) {
	const tol = 1e-9
	for _, k := range []obj.ArmParams{
		{P: 40, Q: 10, S: -20, T: -100, U: 40, W: -20},
		{P: 40, Q: 10, S: -30, T: -100, U: 40, W: -20},
		{P: 100, Q: 20, S: -10, T: -50, U: 30, W: -5},
		{P: 50, Q: 50, S: -50, T: -50, U: 25, W: -25},
	} {
		lay, err := obj.SolveArm(k)
		if err != nil {
			t.Fatalf("%+v: %v", k, err)
		}
		upper := r2.Vec{X: 0, Y: float64(lay.UpperY)}
		lower := r2.Vec{X: 0, Y: float64(lay.LowerY)}
		for _, c := range []obj.TangentCircle{lay.Right, lay.Left} {
			center := r2.Vec{X: float64(c.X), Y: c.Y}
			checks := []struct {
				name string
				got  float64
				want float64
			}{
				{"upper tangency on upper circle", dist(c.OnUpper, upper), float64(lay.R1)},
				{"lower tangency on lower circle", dist(c.OnLower, lower), float64(lay.R2)},
				{"upper tangency on tangent circle", dist(c.OnUpper, center), c.R},
				{"lower tangency on tangent circle", dist(c.OnLower, center), c.R},
			}
			for _, ck := range checks {
				if math.Abs(ck.got-ck.want) > tol {
					t.Errorf("%+v x=%d: %s: got %v, want %v", k, c.X, ck.name, ck.got, ck.want)
				}
			}
		}
	}
}

func TestArmRejectsDegenerateOffsets(t *testing.T) {
	// Right offset beyond the upper circle radius 60.
	if _, err := obj.Arm(obj.ArmParams{P: 40, Q: 10, S: -20, T: -100, U: 70, W: -20}); err == nil {
		t.Error("right offset past the upper circle accepted")
	}
	// Left offset beyond the lower circle radius 110.
	if _, err := obj.Arm(obj.ArmParams{P: 40, Q: 10, S: -20, T: -100, U: 40, W: -120}); err == nil {
		t.Error("left offset past the lower circle accepted")
	}
}

func TestArmRejectsBadRadii(t *testing.T) {
	if _, err := obj.Arm(obj.ArmParams{P: 0, Q: 10, S: 0, T: -100, U: 0, W: 0}); err == nil {
		t.Error("zero upper radius accepted")
	}
	if _, err := obj.Arm(obj.ArmParams{P: 40, Q: 0, S: -20, T: 0, U: 0, W: 0}); err == nil {
		t.Error("zero lower radius accepted")
	}
}

const num = `-?\d+(\.\d{10})?`

var armLine = regexp.MustCompile(`^(\$fn = \d+;` +
	`|\t*(union|difference|intersection)\(\) \{` +
	`|\t*translate\(v = \[` + num + `, ` + num + `, ` + num + `\]\) \{` +
	`|\t*color\(c = \[\d, \d, \d\]\) \{` +
	`|\t*cylinder\(h = ` + num + `, r = ` + num + `\);` +
	`|\t*cube\(size = \[` + num + `, ` + num + `, ` + num + `\]\);` +
	`|\t*\})$`)

func TestArmGrammar(t *testing.T) {
	for _, k := range []obj.ArmParams{
		{P: 40, Q: 10, S: -20, T: -100, U: 40, W: -20},
		{P: 40, Q: 10, S: -30, T: -100, U: 40, W: -20},
		{P: 100, Q: 20, S: -10, T: -50, U: 30, W: -5},
		{P: 50, Q: 50, S: -50, T: -50, U: 25, W: -25},
	} {
		node, err := obj.Arm(k)
		if err != nil {
			t.Fatalf("%+v: %v", k, err)
		}
		for i, line := range strings.Split(scad.Script(node, 90), "\n") {
			if line == "" {
				continue
			}
			if !armLine.MatchString(line) {
				t.Errorf("%+v: line %d outside the scene grammar: %q", k, i+1, line)
			}
		}
	}
}

func dist(a, b r2.Vec) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
