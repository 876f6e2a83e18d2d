package render

import (
	"image/color"
	"math"

	"github.com/soypat/scad/internal/d2"
	"github.com/soypat/scad/obj"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Diagram plots the solved arm construction to an image file for a quick
// look without OpenSCAD: source circles in black, tangent end circles in
// their scene colors, trim boxes dashed and tangency points marked. The
// format follows the path extension (png, svg, pdf, ...).
func Diagram(lay obj.ArmLayout, path string) error {
	p := plot.New()
	p.Title.Text = "arm construction"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	var (
		black = color.RGBA{A: 255}
		green = color.RGBA{G: 160, A: 255}
		red   = color.RGBA{R: 200, A: 255}
		gray  = color.RGBA{R: 130, G: 130, B: 130, A: 255}
		blue  = color.RGBA{B: 255, A: 255}
	)
	circles := []struct {
		center r2.Vec
		radius float64
		color  color.RGBA
	}{
		{r2.Vec{Y: float64(lay.UpperY)}, float64(lay.R1), black},
		{r2.Vec{Y: float64(lay.LowerY)}, float64(lay.R2), black},
		{r2.Vec{X: float64(lay.Right.X), Y: lay.Right.Y}, lay.Right.R, green},
		{r2.Vec{X: float64(lay.Left.X), Y: lay.Left.Y}, lay.Left.R, red},
	}
	ext := make(d2.Set, 0, 2*len(circles)+4)
	for _, c := range circles {
		if err := addCircle(p, c.center, c.radius, c.color); err != nil {
			return err
		}
		ext = append(ext, r2.Sub(c.center, d2.Elem(c.radius)), r2.Add(c.center, d2.Elem(c.radius)))
	}
	boxWidth := float64(lay.BoxWidth)
	for _, b := range []obj.TrimBox{lay.RightBox, lay.LeftBox} {
		corner := r2.Vec{X: b.X, Y: b.Y}
		size := r2.Vec{X: boxWidth, Y: b.H}
		if err := addRect(p, corner, size, gray); err != nil {
			return err
		}
		ext = append(ext, corner, r2.Add(corner, size))
	}
	points := plotter.XYs{
		{X: lay.Right.OnUpper.X, Y: lay.Right.OnUpper.Y},
		{X: lay.Right.OnLower.X, Y: lay.Right.OnLower.Y},
		{X: lay.Left.OnUpper.X, Y: lay.Left.OnUpper.Y},
		{X: lay.Left.OnLower.X, Y: lay.Left.OnLower.Y},
	}
	marks, err := plotter.NewScatter(points)
	if err != nil {
		return err
	}
	marks.Color = blue
	marks.Radius = vg.Points(2)
	p.Add(marks)

	lo, hi := ext.Min(), ext.Max()
	pad := 0.05 * d2.Max(r2.Sub(hi, lo))
	p.X.Min, p.X.Max = lo.X-pad, hi.X+pad
	p.Y.Min, p.Y.Max = lo.Y-pad, hi.Y+pad

	// Size the canvas to the data aspect ratio so circles stay round.
	const height = 4 * vg.Inch
	width := height * vg.Length((hi.X-lo.X+2*pad)/(hi.Y-lo.Y+2*pad))
	return p.Save(width, height, path)
}

func addCircle(p *plot.Plot, center r2.Vec, radius float64, col color.RGBA) error {
	const segments = 128
	pts := make(plotter.XYs, segments+1)
	for i := range pts {
		v := r2.Add(center, d2.PolarToXY(radius, 2*math.Pi*float64(i)/segments))
		pts[i].X = v.X
		pts[i].Y = v.Y
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = col
	p.Add(line)
	return nil
}

func addRect(p *plot.Plot, corner, size r2.Vec, col color.RGBA) error {
	pts := plotter.XYs{
		{X: corner.X, Y: corner.Y},
		{X: corner.X + size.X, Y: corner.Y},
		{X: corner.X + size.X, Y: corner.Y + size.Y},
		{X: corner.X, Y: corner.Y + size.Y},
		{X: corner.X, Y: corner.Y},
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = col
	line.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
	p.Add(line)
	return nil
}
