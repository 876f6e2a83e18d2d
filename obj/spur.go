package obj

import (
	"errors"
	"math"

	"github.com/soypat/scad"
	"gonum.org/v1/gonum/spatial/r2"
)

// SpurGearParams sizes an involute spur gear. A metric gear's module is
// its pitch diameter in millimeters divided by its tooth count; the
// pressure angle is the profile angle at the pitch circle. Teeth are not
// filleted at the root.
type SpurGearParams struct {
	Teeth         int     // tooth count, at least 4
	Module        float64 // millimeters of pitch diameter per tooth
	Bore          float64 // center hole diameter
	Thickness     int     // extrusion height
	PressureAngle float64 // degrees, within (0, 90)
}

// SpurGear builds a gear wheel: one tooth flank sampled along its
// involute, mirrored into a tooth outline, repeated around the pitch
// circle into a single polygon, extruded and bored through.
func SpurGear(k SpurGearParams) (scad.Node, error) {
	if k.Teeth < 4 {
		return scad.Node{}, errors.New("tooth count < 4")
	}
	if k.Module <= 0 {
		return scad.Node{}, errors.New("module <= 0")
	}
	if k.Bore <= 0 {
		return scad.Node{}, errors.New("bore diameter <= 0")
	}
	if k.Thickness < 1 {
		return scad.Node{}, errors.New("thickness < 1")
	}
	if k.PressureAngle <= 0 || k.PressureAngle >= 90 {
		return scad.Node{}, errors.New("pressure angle outside (0, 90)")
	}

	m, n := k.Module, float64(k.Teeth)
	pitch := m * n
	base := pitch * math.Cos(radians(k.PressureAngle))
	root := pitch - 2.5*m
	tip := pitch + 2*m
	rp, rb, rt := pitch/2, base/2, tip/2
	// The involute only exists outside the base circle; start the flank
	// at the root circle or the base circle, whichever is farther out.
	rm := math.Max(rb, root/2)

	// invo samples the involute of the base circle where it crosses
	// radius r.
	invo := func(r float64) r2.Vec {
		ia := math.Sqrt((r/rb)*(r/rb) - 1)
		return r2.Vec{
			X: rb * (math.Cos(ia) + ia*math.Sin(ia)),
			Y: -(rb * (math.Sin(ia) - ia*math.Cos(ia))),
		}
	}

	// Flank points from the start radius towards the tip, swung so the
	// tooth is symmetric about the +x axis with proper thickness at the
	// pitch circle.
	pc := invo(rp)
	alan := math.Atan2(-pc.Y, pc.X)
	tang := math.Pi / n // angle of one tooth or one gap
	htan := tang / 2
	pang := 2 * tang
	const nradii = 6
	rstep := (rt - rm) / nradii
	flank := make([]r2.Vec, nradii)
	for j := range flank {
		flank[j] = invo(rm + float64(j)*rstep)
	}
	flank = rotate(flank, alan+htan)

	// Mirrored flank out from the root, sampled flank back down.
	outline := make([]r2.Vec, 0, 2*len(flank))
	for _, p := range flank {
		outline = append(outline, r2.Vec{X: p.X, Y: -p.Y})
	}
	for j := len(flank) - 1; j >= 0; j-- {
		outline = append(outline, flank[j])
	}

	wheel := make([]r2.Vec, 0, k.Teeth*len(outline))
	for i := 0; i < k.Teeth; i++ {
		wheel = append(wheel, rotate(outline, float64(i)*pang)...)
	}
	return scad.Difference(
		scad.LinearExtrude(scad.Int(k.Thickness), true, scad.Polygon(wheel)),
		scad.Bore(scad.Float(float64(k.Thickness)*1.1), scad.Float(k.Bore)),
	), nil
}

// rotate returns pts swung by angle radians, requantized for script
// compactness.
func rotate(pts []r2.Vec, angle float64) []r2.Vec {
	s, c := math.Sin(angle), math.Cos(angle)
	out := make([]r2.Vec, len(pts))
	for i, p := range pts {
		out[i] = r2.Vec{X: round3(p.X*c - p.Y*s), Y: round3(p.X*s + p.Y*c)}
	}
	return out
}

// round3 quantizes a coordinate to thousandths.
func round3(v float64) float64 {
	return math.Trunc(1000*v+0.5) / 1000.0
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
