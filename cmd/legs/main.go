// Command legs generates OpenSCAD code for a planar leg: the lens of two
// intersecting circles, squared off where two smaller circles sit tangent
// to both. By default it runs an interactive parameter shell and rewrites
// the script on every change.
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
	Out     string `arg:"-o,--out" default:"legs1.scad" help:"output script path"`
	Produce bool   `help:"produce once and exit instead of prompting"`
	Auto    bool   `default:"true" help:"produce after every parameter change"`
	Params  string `help:"JSON5 preset file applied before parameter flags"`
	STL     string `help:"also mesh the part to this binary STL file"`
	Cells   int    `default:"500" help:"mesh resolution along the longest axis"`
	PNG     string `help:"also render the --stl mesh to this PNG file"`
	Diagram string `help:"also plot the arc construction to this PNG or SVG file"`

	P *int `arg:"-p" help:"center 1 (bigger=lower)"`
	S *int `arg:"-s" help:"circle 1 neg. thickness above origin"`
	T *int `arg:"-t" help:"center 2 (bigger neg.=higher)"`
	Q *int `arg:"-q" help:"circle 2 thickness below origin"`
	U *int `arg:"-u" help:"right-end distance from origin"`
	W *int `arg:"-w" help:"left-end neg. distance from origin"`
}

func (args) Description() string {
	return ("Generates OpenSCAD code for a planar leg bounded by four" +
		" circular arcs. Runs an interactive parameter shell unless given" +
		" -produce or an artifact flag; type help at the prompt.")
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

	if a.Produce || a.STL != "" || a.Diagram != "" {
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
// display order.
func spinset() []shell.Param {
	return []shell.Param{
		{Name: "p", Min: 0, Max: 999, Value: 40, Legend: "Center 1 (bigger=lower)"},
		{Name: "s", Min: -999, Max: 0, Value: -30, Legend: "Circle 1 neg. thickness above origin"},
		{Name: "t", Min: -999, Max: 0, Value: -100, Legend: "Center 2 (bigger neg.=higher)"},
		{Name: "q", Min: 0, Max: 999, Value: 10, Legend: "Circle 2 thickness below origin"},
		{Name: "u", Min: 0, Max: 999, Value: 40, Legend: "Right-end distance from origin"},
		{Name: "w", Min: -999, Max: 0, Value: -20, Legend: "Left-end neg. distance from origin"},
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
	scene, err := obj.Arm(params(values))
	if err != nil {
		return "", err
	}
	return scad.Script(scene, segments), nil
}

func params(values map[string]int) obj.ArmParams {
	return obj.ArmParams{
		P: values["p"], Q: values["q"],
		S: values["s"], T: values["t"],
		U: values["u"], W: values["w"],
	}
}

func produceOnce(h *shell.Shell, a args) error {
	if err := h.Produce(); err != nil {
		return err
	}
	log.Info().Str("path", h.Output()).Msg("wrote scad code")
	k := params(h.Values())
	if a.STL != "" {
		scene, err := obj.Arm(k)
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
	}
	if a.Diagram != "" {
		lay, err := obj.SolveArm(k)
		if err != nil {
			return err
		}
		if err := render.Diagram(lay, a.Diagram); err != nil {
			return err
		}
		log.Info().Str("path", a.Diagram).Msg("plotted construction")
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
