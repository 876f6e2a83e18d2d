package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Run drives the shell as a line oriented prompt until quit or end of
// input. Commands come from in, prompts and replies go to out. Command
// failures are reported on out and the loop continues; only a read
// failure ends the run with an error.
func (h *Shell) Run(in io.Reader, out io.Writer) error {
	h.writeShow(out)
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		args := strings.Fields(sc.Text())
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "quit", "exit":
			return nil
		case "help":
			writeUsage(out)
		case "show":
			h.writeShow(out)
		case "produce":
			if err := h.Produce(); err != nil {
				fmt.Fprintf(out, "produce failed: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "Wrote scad code to %s\n", h.output)
		case "auto":
			if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
				fmt.Fprintln(out, "usage: auto on|off")
				continue
			}
			h.auto = args[1] == "on"
			// Switching auto-produce on produces right away.
			if h.auto {
				if err := h.Produce(); err != nil {
					fmt.Fprintf(out, "produce failed: %v\n", err)
					continue
				}
				fmt.Fprintf(out, "Wrote scad code to %s\n", h.output)
			}
		case "set":
			if len(args) != 3 {
				fmt.Fprintln(out, "usage: set <name> <value>")
				continue
			}
			v, err := strconv.Atoi(args[2])
			if err != nil {
				fmt.Fprintf(out, "set: %q is not an integer\n", args[2])
				continue
			}
			got, err := h.Set(args[1], v)
			if err != nil {
				fmt.Fprintf(out, "set failed: %v\n", err)
				continue
			}
			if got != v {
				fmt.Fprintf(out, "%s clamped to %d\n", args[1], got)
			}
			if h.auto {
				fmt.Fprintf(out, "Wrote scad code to %s\n", h.output)
			}
		default:
			fmt.Fprintf(out, "unknown command %q, try help\n", args[0])
		}
	}
}

func (h *Shell) writeShow(out io.Writer) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, p := range h.params {
		fmt.Fprintf(tw, "%s = %d\t[%d, %d]\t%s\n", p.Name, p.Value, p.Min, p.Max, p.Legend)
	}
	tw.Flush()
	fmt.Fprintf(out, "auto-produce %s, writing %s\n", onOff(h.auto), h.output)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func writeUsage(out io.Writer) {
	fmt.Fprint(out, `commands:
  set <name> <value>  assign a parameter, clamped to its range
  show                list parameters and their ranges
  produce             write the script now
  auto on|off         produce after every set
  quit                leave
`)
}
