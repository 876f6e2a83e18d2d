// Command gear generates OpenSCAD code for a gear blank diagram: the
// root, pitch and tip construction circles of one gear stacked as thin
// colored slabs. Meshing blanks drawn this way show tangent pitch circles.
// By default it runs an interactive parameter shell and rewrites the
// script on every change.
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

// $fn resolution of emitted scripts.
const segments = 90

type args struct {
	Out     string `arg:"-o,--out" default:"gear1.scad" help:"output script path"`
	Produce bool   `help:"produce once and exit instead of prompting"`
	Auto    bool   `default:"true" help:"produce after every parameter change"`
	Params  string `help:"JSON5 preset file applied before parameter flags"`
	STL     string `help:"also mesh the diagram to this binary STL file"`
	Cells   int    `default:"200" help:"mesh resolution along the longest axis"`
	PNG     string `help:"also render the --stl mesh to this PNG file"`

	P *int `arg:"-p" help:"pressure angle, degrees"`
	S *int `arg:"-s" help:"module"`
	T *int `arg:"-t" help:"thickness"`
	Q *int `arg:"-q" help:"center gear tooth count"`
	U *int `arg:"-u" help:"planet gear tooth count"`
	W *int `arg:"-w" help:"number of planets"`
}

func (args) Description() string {
	return ("Generates OpenSCAD code for a gear blank diagram, the stacked" +
		" construction circles of a planetary center gear. Runs an" +
		" interactive parameter shell unless given -produce or an artifact" +
		" flag; type help at the prompt.")
}

func main() {
	var a args
	arg.MustParse(&a)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if a.PNG != "" && a.STL == "" {
		log.Fatal().Msg("--png renders the mesh written by --stl, pass both")
	}

	h, err := shell.New(shell.Config{
		Params: spinset(),
		Build:  buildScript,
		Output: a.Out,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("assembling parameter shell")
	}
	// Auto-produce arms only after presets and flag overrides land.
	if a.Params != "" {
		if err := h.LoadPresets(a.Params); err != nil {
			log.Fatal().Err(err).Msg("loading presets")
		}
	}
	if err := override(h, a); err != nil {
		log.Fatal().Err(err).Msg("applying parameter flags")
	}
	h.SetAuto(a.Auto)

	if a.Produce || a.STL != "" {
		if err := produceOnce(h, a); err != nil {
			log.Fatal().Err(err).Msg("producing")
		}
		return
	}
	if err := h.Run(os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("reading commands")
	}
}

// spinset holds bounds, initial value and legend per parameter, in
// display order. Only the tooth count q and the module s reach the
// diagram; the other rows are reserved for the planetary layout.
func spinset() []shell.Param {
	return []shell.Param{
		{Name: "p", Min: 0, Max: 999, Value: 20, Legend: "Pressure angle, degrees"},
		{Name: "s", Min: 0, Max: 999, Value: 2, Legend: "Module"},
		{Name: "t", Min: 0, Max: 999, Value: 3, Legend: "Thickness"},
		{Name: "q", Min: 0, Max: 999, Value: 32, Legend: "Center gear tooth count"},
		{Name: "u", Min: 0, Max: 999, Value: 32, Legend: "Planet gear tooth count"},
		{Name: "w", Min: 0, Max: 999, Value: 1, Legend: "Number of planets"},
	}
}

func override(h *shell.Shell, a args) error {
	flags := []struct {
		name string
		v    *int
	}{{"p", a.P}, {"s", a.S}, {"t", a.T}, {"q", a.Q}, {"u", a.U}, {"w", a.W}}
	for _, f := range flags {
		if f.v == nil {
			continue
		}
		if _, err := h.Set(f.name, *f.v); err != nil {
			return err
		}
	}
	return nil
}

func buildScript(values map[string]int) (string, error) {
	scene, err := obj.GearDiagram(params(values))
	if err != nil {
		return "", err
	}
	return scad.Script(scene, segments), nil
}

func params(values map[string]int) obj.GearDiagramParams {
	return obj.GearDiagramParams{Teeth: values["q"], Module: values["s"]}
}

func produceOnce(h *shell.Shell, a args) error {
	if err := h.Produce(); err != nil {
		return err
	}
	log.Info().Str("path", h.Output()).Msg("wrote scad code")
	if a.STL == "" {
		return nil
	}
	scene, err := obj.GearDiagram(params(h.Values()))
	if err != nil {
		return err
	}
	if err := render.CreateSTL(a.STL, scene, a.Cells); err != nil {
		return err
	}
	if err := describeMesh(a.STL); err != nil {
		return err
	}
	if a.PNG != "" {
		if err := render.STLToPNG(a.STL, a.PNG, render.DefaultView()); err != nil {
			return err
		}
		log.Info().Str("path", a.PNG).Msg("rendered preview")
	}
	return nil
}

// describeMesh reads the mesh back and logs its size. Marching cubes emits
// the occasional sliver whose stored normal disagrees with its winding, so
// normal mismatches are reported but not fatal.
func describeMesh(path string) error {
	model, err := render.ReadSTL(path)
	if err != nil && !errors.Is(err, render.ErrNormalMismatch) {
		return err
	}
	if err != nil {
		log.Warn().Err(err).Msg("mesh normals")
	}
	size := d3.Box(render.Bounds(model)).Size()
	log.Info().Str("path", path).Int("triangles", len(model)).
		Str("size", fmt.Sprintf("%.4g x %.4g x %.4g", size.X, size.Y, size.Z)).
		Msg("meshed part")
	return nil
}
