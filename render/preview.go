package render

import (
	"errors"
	"fmt"
	"os"

	sdfxrender "github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"github.com/soypat/scad"
)

// CreateSTL meshes a scene tree into a binary STL file with sdfx marching
// cubes. meshCells sets the sampling resolution along the longest axis of
// the scene bounding box.
func CreateSTL(path string, scene scad.Node, meshCells int) error {
	if meshCells < 2 {
		return errors.New("meshCells must be 2 or larger")
	}
	s, err := Solid(scene)
	if err != nil {
		return err
	}
	// sdfx reports progress and errors on stdout. Keep it quiet.
	stdout := os.Stdout
	defer func() {
		os.Stdout = stdout
	}()
	os.Stdout, _ = os.Open(os.DevNull)
	sdfxrender.ToSTL(s, meshCells, path, &sdfxrender.MarchingCubesOctree{})
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("mesh not written: %w", err)
	}
	if info.Size() <= sizeOfSTLHeader {
		return errors.New("mesh empty")
	}
	return nil
}

// Solid mirrors a scene tree into a signed distance solid built from sdfx
// primitives. OpenSCAD anchors cylinders, cubes and uncentered extrusions
// against a coordinate plane while sdfx centers everything on the origin,
// so anchored solids are raised by half their height. Color nodes have no
// geometry and pass through.
func Solid(scene scad.Node) (sdf.SDF3, error) {
	kids := scene.Children()
	switch scene.Name() {
	case "union", "difference", "intersection":
		parts := make([]sdf.SDF3, len(kids))
		for i := range kids {
			s, err := Solid(kids[i])
			if err != nil {
				return nil, err
			}
			parts[i] = s
		}
		switch scene.Name() {
		case "union":
			return sdf.Union3D(parts...), nil
		case "difference":
			s := parts[0]
			for _, cut := range parts[1:] {
				s = sdf.Difference3D(s, cut)
			}
			return s, nil
		}
		s := parts[0]
		for _, mask := range parts[1:] {
			s = sdf.Intersect3D(s, mask)
		}
		return s, nil

	case "translate":
		v, ok := scene.Vec("v")
		if !ok {
			return nil, errors.New("translate without offset")
		}
		s, err := Solid(kids[0])
		if err != nil {
			return nil, err
		}
		return sdf.Transform3D(s, sdf.Translate3d(sdf.V3{X: v.X, Y: v.Y, Z: v.Z})), nil

	case "color":
		return Solid(kids[0])

	case "cylinder":
		h, ok := scene.Scalar("h")
		if !ok {
			return nil, errors.New("cylinder without height")
		}
		r, ok := scene.Scalar("r")
		if !ok {
			d, ok := scene.Scalar("d")
			if !ok {
				return nil, errors.New("cylinder without radius or diameter")
			}
			r = d / 2
		}
		s, err := sdf.Cylinder3D(h, r, 0)
		if err != nil {
			return nil, err
		}
		if scene.Flag("center") {
			return s, nil
		}
		return raise(s, h), nil

	case "cube":
		size, ok := scene.Vec("size")
		if !ok {
			return nil, errors.New("cube without size")
		}
		s, err := sdf.Box3D(sdf.V3{X: size.X, Y: size.Y, Z: size.Z}, 0)
		if err != nil {
			return nil, err
		}
		half := sdf.V3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
		return sdf.Transform3D(s, sdf.Translate3d(half)), nil

	case "linear_extrude":
		if len(kids) != 1 || kids[0].Name() != "polygon" {
			return nil, errors.New("linear_extrude expects a polygon child")
		}
		pts := kids[0].Points("points")
		poly := make([]sdf.V2, len(pts))
		for i, pt := range pts {
			poly[i] = sdf.V2{X: pt.X, Y: pt.Y}
		}
		p2, err := sdf.Polygon2D(poly)
		if err != nil {
			return nil, err
		}
		h, ok := scene.Scalar("height")
		if !ok {
			return nil, errors.New("linear_extrude without height")
		}
		s := sdf.Extrude3D(p2, h)
		if scene.Flag("center") {
			return s, nil
		}
		return raise(s, h), nil
	}
	return nil, fmt.Errorf("cannot preview %q node", scene.Name())
}

// raise shifts a centered solid so its base sits on the xy plane.
func raise(s sdf.SDF3, height float64) sdf.SDF3 {
	return sdf.Transform3D(s, sdf.Translate3d(sdf.V3{Z: height / 2}))
}
