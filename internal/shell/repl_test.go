package shell_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/soypat/scad/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScript(t *testing.T, cfg shell.Config, script string) (string, string) {
	t.Helper()
	h, output := newShell(t, cfg)
	var out bytes.Buffer
	require.NoError(t, h.Run(strings.NewReader(script), &out))
	return out.String(), output
}

func TestRunShowAndProduce(t *testing.T) {
	out, output := runScript(t, shell.Config{}, "set p 50\nproduce\nquit\n")
	assert.Contains(t, out, "p = 40", "the opening listing shows initial values")
	assert.Contains(t, out, "upper center offset")
	assert.Contains(t, out, "auto-produce off")
	assert.Contains(t, out, "Wrote scad code to "+output)
	b, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "p=50 s=-30\n", string(b))
}

func TestRunClampReply(t *testing.T) {
	out, _ := runScript(t, shell.Config{}, "set p 5000\nshow\nquit\n")
	assert.Contains(t, out, "p clamped to 999")
	assert.Contains(t, out, "p = 999")
}

func TestRunAutoProduceFlow(t *testing.T) {
	out, output := runScript(t, shell.Config{},
		"auto on\nset p 41\nauto off\nset p 42\nproduce\nquit\n")
	// auto on produces, the auto set produces, the manual produce does too.
	assert.Equal(t, 3, strings.Count(out, "Wrote scad code to"))
	b, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "p=42 s=-30\n", string(b))
}

func TestRunBadInput(t *testing.T) {
	out, _ := runScript(t, shell.Config{},
		"set p x\nset p\nauto maybe\nfrobnicate\nset zz 1\nquit\n")
	assert.Contains(t, out, `"x" is not an integer`)
	assert.Contains(t, out, "usage: set <name> <value>")
	assert.Contains(t, out, "usage: auto on|off")
	assert.Contains(t, out, `unknown command "frobnicate"`)
	assert.Contains(t, out, `unknown parameter "zz"`)
}

func TestRunReportsProduceFailure(t *testing.T) {
	cfg := shell.Config{
		Build: func(map[string]int) (string, error) { panic("p-s radius collapsed") },
	}
	out, output := runScript(t, cfg, "produce\nquit\n")
	assert.Contains(t, out, "produce failed: p-s radius collapsed")
	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestRunEndsAtEOF(t *testing.T) {
	h, _ := newShell(t, shell.Config{})
	var out bytes.Buffer
	assert.NoError(t, h.Run(strings.NewReader("show\n"), &out))
}

func TestRunHelp(t *testing.T) {
	out, _ := runScript(t, shell.Config{}, "help\nquit\n")
	assert.Contains(t, out, "set <name> <value>")
	assert.Contains(t, out, "auto on|off")
}
