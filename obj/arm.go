package obj

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/scad"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	slabH = 1     // source circle slab height
	trimH = 1.1   // trim solid height, clearing the slab on both faces
	trimZ = -0.05 // trim solid base z
)

// ArmParams are the six spinbox integers bounding an oblong arm. The
// construction works in a source frame whose y axis is negated on output,
// so a bigger p sits lower on screen. Sensible arms satisfy
// p > q > 0 > s > t and u > 0 > w.
type ArmParams struct {
	P int // upper circle center offset, 0..999 (bigger is lower)
	Q int // lower circle thickness below the origin, 0..999
	S int // upper circle thickness above the origin, -999..0
	T int // lower circle center offset, -999..0 (bigger negative is higher)
	U int // right end distance from the origin, 0..999
	W int // left end distance from the origin, -999..0
}

// TangentCircle is an end circle internally tangent to both source
// circles, in script coordinates.
type TangentCircle struct {
	X       int     // fixed center x offset
	Y       float64 // solved center y
	R       float64
	OnUpper r2.Vec // tangency point on the upper circle
	OnLower r2.Vec // tangency point on the lower circle
}

// TrimBox is a rectangle subtracted from the lens to square off one end,
// in script coordinates.
type TrimBox struct {
	X, Y float64 // corner nearest -x, -y
	H    float64 // extent along y
}

// ArmLayout is the solved construction of an oblong arm: the two source
// circles, the two tangent end circles and the boxes trimming the lens
// past the tangency points. All coordinates are in the script frame.
type ArmLayout struct {
	R1       int // upper circle radius p-s
	R2       int // lower circle radius q-t
	UpperY   int // upper circle center y
	LowerY   int // lower circle center y
	BoxWidth int // trim box width, twice the larger radius
	Right    TangentCircle
	Left     TangentCircle
	RightBox TrimBox
	LeftBox  TrimBox
}

// Arm builds the scene for an oblong arm bounded by four circular arcs:
// the lens of the two source circles squared off at the tangent circles.
func Arm(k ArmParams) (scad.Node, error) {
	lay, err := SolveArm(k)
	if err != nil {
		return scad.Node{}, err
	}
	return lay.Node(), nil
}

// SolveArm validates k and resolves the arm construction. It fails on
// non-positive source radii and when a tangent offset falls outside
// either source circle.
func SolveArm(k ArmParams) (ArmLayout, error) {
	ru, rl := k.P-k.S, k.Q-k.T
	if ru <= 0 {
		return ArmLayout{}, errors.New("upper circle radius p-s <= 0")
	}
	if rl <= 0 {
		return ArmLayout{}, errors.New("lower circle radius q-t <= 0")
	}
	right, err := solveTangency(k.P, k.Q, k.S, k.T, k.U)
	if err != nil {
		return ArmLayout{}, err
	}
	left, err := solveTangency(k.P, k.Q, k.S, k.T, k.W)
	if err != nil {
		return ArmLayout{}, err
	}
	domis := 2 * max(ru, rl)
	return ArmLayout{
		R1:       ru,
		R2:       rl,
		UpperY:   -k.P,
		LowerY:   -k.T,
		BoxWidth: domis,
		Right:    right.script(k.U),
		Left:     left.script(k.W),
		RightBox: TrimBox{
			X: math.Min(right.onUpper.X, right.onLower.X),
			Y: -right.onLower.Y,
			H: right.onLower.Y - right.onUpper.Y,
		},
		LeftBox: TrimBox{
			X: math.Max(left.onUpper.X, left.onLower.X) - float64(domis),
			Y: -left.onLower.Y,
			H: left.onLower.Y - left.onUpper.Y,
		},
	}, nil
}

// Node assembles the arm scene. The left box is cut before the right one
// and the right (green) circle joins before the left (red) one.
func (l ArmLayout) Node() scad.Node {
	upper := scad.Translate(scad.V(scad.Int(0), scad.Int(l.UpperY), scad.Int(0)),
		scad.Cylinder(scad.Int(slabH), scad.Int(l.R1)))
	lower := scad.Translate(scad.V(scad.Int(0), scad.Int(l.LowerY), scad.Int(0)),
		scad.Cylinder(scad.Int(slabH), scad.Int(l.R2)))
	body := scad.Difference(
		scad.Difference(
			scad.Intersection(upper, lower),
			l.LeftBox.node(l.BoxWidth),
		),
		l.RightBox.node(l.BoxWidth),
	)
	return scad.Union(
		scad.Union(body, l.Right.node(scad.Green)),
		l.Left.node(scad.Red),
	)
}

func (c TangentCircle) node(paint scad.RGB) scad.Node {
	return scad.Color(paint,
		scad.Translate(scad.V(scad.Int(c.X), scad.Float(c.Y), scad.Float(trimZ)),
			scad.Cylinder(scad.Float(trimH), scad.Float(c.R))))
}

func (b TrimBox) node(width int) scad.Node {
	return scad.Translate(scad.V(scad.Float(b.X), scad.Float(b.Y), scad.Float(trimZ)),
		scad.Cube(scad.V(scad.Int(width), scad.Float(b.H), scad.Float(trimH))))
}

// tangency is a solved tangent circle in the source frame.
type tangency struct {
	r, v    float64 // radius and center height
	onUpper r2.Vec  // tangency point on the upper circle
	onLower r2.Vec  // tangency point on the lower circle
}

// script flips the solution into the script frame.
func (tg tangency) script(x int) TangentCircle {
	return TangentCircle{
		X:       x,
		Y:       -tg.v,
		R:       tg.r,
		OnUpper: r2.Vec{X: tg.onUpper.X, Y: -tg.onUpper.Y},
		OnLower: r2.Vec{X: tg.onLower.X, Y: -tg.onLower.Y},
	}
}

// solveTangency finds the circle with center (x, v) internally tangent to
// the two source circles C(p-s, 0, p) and C(q-t, 0, t), both unknowns
// being its radius r and center height v. Radii from (0,p) and (0,t)
// through (x,v) leave gaps a = r1 - sqrt(x²+(p-v)²) and
// b = r2 - sqrt(x²+(t-v)²) past their crossing; v is iterated by Newton
// steps on a-b until the gaps agree, then the tangency points follow by
// similar triangles. Closed forms exist but are far messier; see
// https://math.stackexchange.com/q/3145832.
func solveTangency(p, q, s, t, x int) (tangency, error) {
	ru, rl := p-s, q-t
	xx := x * x
	if ru*ru < xx || rl*rl < xx {
		return tangency{}, fmt.Errorf("no circle tangent to both arcs at x = %d", x)
	}
	// Start halfway between the two arc heights above x.
	hi := float64(p) - math.Sqrt(float64(ru*ru-xx))
	lo := float64(t) + math.Sqrt(float64(rl*rl-xx))
	v := (hi + lo) / 2
	var a float64
	for i := 0; i < 9; i++ { // usually converges in about 3
		d1 := v - float64(p)
		l1 := math.Sqrt(float64(xx) + d1*d1)
		a = float64(ru) - l1
		ad := d1 / l1
		d2 := v - float64(t)
		l2 := math.Sqrt(float64(xx) + d2*d2)
		b := float64(rl) - l2
		bd := d2 / l2
		if math.Abs(ad-bd) < 1e-5 { // derivatives agree, step would divide by ~0
			break
		}
		v += (a - b) / (ad - bd)
		if math.Abs(a-b) < 1e-12 {
			break
		}
	}
	nu := float64(ru) / (float64(ru) - a)
	nl := float64(rl) / (float64(rl) - a)
	return tangency{
		r:       a,
		v:       v,
		onUpper: r2.Vec{X: float64(x) * nu, Y: float64(p) - (float64(p)-v)*nu},
		onLower: r2.Vec{X: float64(x) * nl, Y: float64(t) + (v-float64(t))*nl},
	}, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
