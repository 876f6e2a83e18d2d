package scad

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// scadValue is a renderable parameter value.
type scadValue interface {
	scadString() string
}

func (a Real) scadString() string {
	if a.exact {
		return strconv.Itoa(int(a.v))
	}
	return strconv.FormatFloat(a.v, 'f', 10, 64)
}

func (v V3) scadString() string {
	return "[" + v.X.scadString() + ", " + v.Y.scadString() + ", " + v.Z.scadString() + "]"
}

func (c RGB) scadString() string {
	return "[" + strconv.Itoa(c.R) + ", " + strconv.Itoa(c.G) + ", " + strconv.Itoa(c.B) + "]"
}

type flag bool

func (f flag) scadString() string {
	if f {
		return "true"
	}
	return "false"
}

type pointList []r2.Vec

// pointList coordinates always render with ten decimals.
func (p pointList) scadString() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, pt := range p {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('[')
		b.WriteString(strconv.FormatFloat(pt.X, 'f', 10, 64))
		b.WriteString(", ")
		b.WriteString(strconv.FormatFloat(pt.Y, 'f', 10, 64))
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}

// Script renders the scene rooted at root to a complete OpenSCAD script.
// A positive segments emits a `$fn = N;` resolution directive followed by
// a blank line. Rendering is a pure function of the tree: children render
// depth first in declaration order, indented one tab per depth, parameters
// in name order. The script ends with a newline.
func Script(root Node, segments int) string {
	var b strings.Builder
	if segments > 0 {
		b.WriteString("$fn = ")
		b.WriteString(strconv.Itoa(segments))
		b.WriteString(";\n")
	}
	b.WriteString(render(root))
	b.WriteByte('\n')
	return b.String()
}

// render emits n starting on a fresh line with no indentation of its own.
// Child text is indented by replacing newlines, so nesting depth never
// needs threading through.
func render(n Node) string {
	var b strings.Builder
	b.WriteByte('\n')
	b.WriteString(n.name)
	b.WriteByte('(')
	for i, p := range n.params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.key)
		b.WriteString(" = ")
		b.WriteString(p.val.scadString())
	}
	b.WriteByte(')')
	if len(n.children) == 0 {
		b.WriteByte(';')
		return b.String()
	}
	b.WriteString(" {")
	for _, c := range n.children {
		b.WriteString(strings.ReplaceAll(render(c), "\n", "\n\t"))
	}
	b.WriteString("\n}")
	return b.String()
}
