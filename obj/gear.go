package obj

import (
	"errors"
	"math"

	"github.com/soypat/scad"
)

// GearDiagramParams sizes a gear blank diagram. The three construction
// circles of a gear drawing stack as colored slabs: root black, pitch
// magenta, tip green. Meshing gears drawn this way show tangent pitch
// circles, root circles separated by 2.5 modules and tip circles
// overlapped by two modules.
type GearDiagramParams struct {
	Teeth  int // tooth count
	Module int // module, millimeters of pitch diameter per tooth
}

// GearDiagram builds the three stacked construction circles for k.
func GearDiagram(k GearDiagramParams) (scad.Node, error) {
	if k.Teeth < 1 {
		return scad.Node{}, errors.New("tooth count < 1")
	}
	if k.Module < 1 {
		return scad.Node{}, errors.New("module < 1")
	}
	pitch := float64(k.Teeth*k.Module) / math.Pi
	tip := pitch + float64(2*k.Module)
	root := pitch - 2.5*float64(k.Module)
	if root <= 0 {
		return scad.Node{}, errors.New("root diameter <= 0")
	}
	return scad.Union(
		scad.Union(
			scad.Color(scad.Black, scad.CylinderD(scad.Float(1.2), scad.Float(root))),
			scad.Color(scad.Magenta, scad.CylinderD(scad.Float(1.1), scad.Float(pitch))),
		),
		scad.Color(scad.Green, scad.CylinderD(scad.Float(1.0), scad.Float(tip))),
	), nil
}
