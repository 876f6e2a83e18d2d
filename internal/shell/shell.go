// Package shell drives a generator's parameter set from a terminal:
// bounded integer parameters with spinbox style clamping, an optional
// auto-produce mode and atomic script file output.
package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/titanous/json5"
)

// Param is one spinbox style integer parameter: a name, an inclusive range
// and a one line legend for the user.
type Param struct {
	Name   string
	Legend string
	Min    int
	Max    int
	Value  int
}

// clamp pins v inside the param range, as a spinbox would.
func (p Param) clamp(v int) int {
	if v < p.Min {
		return p.Min
	}
	if v > p.Max {
		return p.Max
	}
	return v
}

// BuildFunc renders the script text for a set of parameter values keyed by
// parameter name.
type BuildFunc func(values map[string]int) (string, error)

// Config assembles a Shell.
type Config struct {
	// Params in display order. Names must be unique and ranges ordered.
	// Initial values are clamped.
	Params []Param
	// Build renders the script for the current values.
	Build BuildFunc
	// Output is the script file path written by Produce.
	Output string
	// AutoProduce makes every successful Set produce immediately.
	AutoProduce bool
}

// Shell owns a parameter set and produces script files from it. It is not
// safe for concurrent use; one caller drives it at a time.
type Shell struct {
	params []Param
	index  map[string]int
	build  BuildFunc
	output string
	auto   bool
}

// New validates cfg and returns the assembled shell. The build function
// does not run yet; nothing is produced until Produce or an auto-producing
// Set.
func New(cfg Config) (*Shell, error) {
	if cfg.Build == nil {
		return nil, errors.New("shell without build function")
	}
	if cfg.Output == "" {
		return nil, errors.New("shell without output path")
	}
	if len(cfg.Params) == 0 {
		return nil, errors.New("shell without parameters")
	}
	h := &Shell{
		params: make([]Param, len(cfg.Params)),
		index:  make(map[string]int, len(cfg.Params)),
		build:  cfg.Build,
		output: cfg.Output,
		auto:   cfg.AutoProduce,
	}
	for i, p := range cfg.Params {
		if p.Name == "" {
			return nil, errors.New("parameter without name")
		}
		if p.Min > p.Max {
			return nil, fmt.Errorf("parameter %q range inverted", p.Name)
		}
		if _, ok := h.index[p.Name]; ok {
			return nil, fmt.Errorf("duplicate parameter %q", p.Name)
		}
		p.Value = p.clamp(p.Value)
		h.params[i] = p
		h.index[p.Name] = i
	}
	return h, nil
}

// Output returns the script file path written by Produce.
func (h *Shell) Output() string { return h.output }

// Auto reports whether successful Sets produce immediately.
func (h *Shell) Auto() bool { return h.auto }

// SetAuto toggles produce-on-change.
func (h *Shell) SetAuto(on bool) { h.auto = on }

// Params returns the parameters with their current values in display order.
func (h *Shell) Params() []Param {
	out := make([]Param, len(h.params))
	copy(out, h.params)
	return out
}

// Values returns the current parameter values keyed by name.
func (h *Shell) Values() map[string]int {
	vals := make(map[string]int, len(h.params))
	for _, p := range h.params {
		vals[p.Name] = p.Value
	}
	return vals
}

// Set assigns a parameter, clamping to its range, and returns the stored
// value. With auto-produce on a successful assignment produces immediately;
// the value stays assigned even if that produce fails.
func (h *Shell) Set(name string, value int) (int, error) {
	i, ok := h.index[name]
	if !ok {
		return 0, fmt.Errorf("unknown parameter %q", name)
	}
	v := h.params[i].clamp(value)
	h.params[i].Value = v
	if h.auto {
		return v, h.Produce()
	}
	return v, nil
}

// Produce builds the part with the current values and writes the rendered
// script to the output file. Any builder failure aborts before the file is
// touched.
func (h *Shell) Produce() error {
	script, err := h.render()
	if err != nil {
		return err
	}
	return WriteScript(h.output, script)
}

// LoadPresets reads a JSON5 file assigning integer parameter values by
// name and applies it with clamping, without producing. Unknown names
// reject the whole file.
func (h *Shell) LoadPresets(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var preset map[string]int
	if err := json5.Unmarshal(b, &preset); err != nil {
		return fmt.Errorf("presets %s: %w", path, err)
	}
	for name := range preset {
		if _, ok := h.index[name]; !ok {
			return fmt.Errorf("presets %s: unknown parameter %q", path, name)
		}
	}
	for name, v := range preset {
		i := h.index[name]
		h.params[i].Value = h.params[i].clamp(v)
	}
	return nil
}

// buildErr carries a recovered builder panic.
type buildErr struct {
	panicObj interface{}
	stack    string
}

func (e *buildErr) Error() string {
	return fmt.Sprintf("%s", e.panicObj)
}

// render invokes the builder behind a recover boundary so builder contract
// panics surface as errors, never as half-written files.
func (h *Shell) render() (script string, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &buildErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return h.build(h.Values())
}

// WriteScript writes data to path through a temp file in the destination
// directory and a rename, so readers of the output never observe a partial
// script.
func WriteScript(path, data string) error {
	fp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(fp.Name())
	if _, err := fp.WriteString(data); err != nil {
		fp.Close()
		return err
	}
	if err := fp.Close(); err != nil {
		return err
	}
	return os.Rename(fp.Name(), path)
}
