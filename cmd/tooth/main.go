// Command tooth generates OpenSCAD code for an involute spur gear: one
// tooth outline repeated around the pitch circle into a single polygon,
// extruded and bored through. Unlike legs and gear it takes its
// parameters on the command line and exits. Teeth are not filleted at
// the root.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/soypat/scad"
	"github.com/soypat/scad/internal/d3"
	"github.com/soypat/scad/internal/shell"
	"github.com/soypat/scad/obj"
	"github.com/soypat/scad/render"
)

type args struct {
	Teeth     int     `arg:"positional" default:"20" help:"tooth count"`
	Module    float64 `arg:"positional" default:"3.0" help:"millimeters of pitch diameter per tooth"`
	Bore      float64 `default:"6.35" help:"center hole diameter"`
	Thickness int     `default:"4" help:"extrusion height"`
	Angle     float64 `default:"28" help:"pressure angle in degrees"`
	Out       string  `arg:"-o,--out" default:"tooth.scad" help:"output script path"`
	STL       string  `help:"also mesh the gear to this binary STL file"`
	Cells     int     `default:"200" help:"mesh resolution along the longest axis"`
	PNG       string  `help:"also render the --stl mesh to this PNG file"`
}

func (args) Description() string {
	return ("Generates OpenSCAD code for an involute spur gear of the" +
		" given tooth count and module.")
}

func main() {
	var a args
	arg.MustParse(&a)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if a.PNG != "" && a.STL == "" {
		log.Fatal().Msg("--png renders the mesh written by --stl, pass both")
	}

	log.Info().Int("teeth", a.Teeth).Float64("module", a.Module).Msg("making spur gear")
	scene, err := obj.SpurGear(obj.SpurGearParams{
		Teeth:         a.Teeth,
		Module:        a.Module,
		Bore:          a.Bore,
		Thickness:     a.Thickness,
		PressureAngle: a.Angle,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("sizing gear")
	}
	// Gear scripts carry no resolution directive; the polygon outline
	// carries its own sampling.
	if err := shell.WriteScript(a.Out, scad.Script(scene, 0)); err != nil {
		log.Fatal().Err(err).Msg("writing script")
	}
	log.Info().Str("path", a.Out).Msg("wrote scad code")

	if a.STL != "" {
		if err := render.CreateSTL(a.STL, scene, a.Cells); err != nil {
			log.Fatal().Err(err).Msg("meshing gear")
		}
		describeMesh(a.STL)
		if a.PNG != "" {
			if err := render.STLToPNG(a.STL, a.PNG, render.DefaultView()); err != nil {
				log.Fatal().Err(err).Msg("rendering preview")
			}
			log.Info().Str("path", a.PNG).Msg("rendered preview")
		}
	}
}

// describeMesh reads the mesh back and logs its size. Marching cubes emits
// the occasional sliver whose stored normal disagrees with its winding, so
// normal mismatches are reported but not fatal.
func describeMesh(path string) {
	model, err := render.ReadSTL(path)
	if err != nil && !errors.Is(err, render.ErrNormalMismatch) {
		log.Fatal().Err(err).Msg("reading mesh back")
	}
	if err != nil {
		log.Warn().Err(err).Msg("mesh normals")
	}
	size := d3.Box(render.Bounds(model)).Size()
	log.Info().Str("path", path).Int("triangles", len(model)).
		Str("size", fmt.Sprintf("%.4g x %.4g x %.4g", size.X, size.Y, size.Z)).
		Msg("meshed part")
}
