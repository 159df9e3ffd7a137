// Package drawpdf implements a PDF painting backend for drawable
// shapes, by wrapping github.com/jung-kurt/gofpdf.
package drawpdf

import (
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/drawable"
)

var _ drawable.Filler = (*Renderer)(nil) // assert interface conformance

// Renderer writes shape outlines as PDF path operators. The document
// page setup (size, margins, current page) is left to the caller.
type Renderer struct {
	pdf *gofpdf.Fpdf

	useNonZeroWinding bool
}

// NewRenderer returns a renderer which will write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) *Renderer {
	return &Renderer{pdf: pdf, useNonZeroWinding: true}
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (r *Renderer) Clear() {}

func (r *Renderer) Start(a fixed.Point26_6) {
	r.pdf.MoveTo(fixedTof(a))
}

func (r *Renderer) Line(b fixed.Point26_6) {
	r.pdf.LineTo(fixedTof(b))
}

func (r *Renderer) QuadBezier(b, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	r.pdf.CurveTo(cx, cy, x, y)
}

func (r *Renderer) CubeBezier(b, c, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	r.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (r *Renderer) Stop(closeLoop bool) {
	if closeLoop {
		r.pdf.ClosePath()
	}
}

func (r *Renderer) SetWinding(useNonZeroWinding bool) {
	r.useNonZeroWinding = useNonZeroWinding
}

// TODO: support gradient
func (r *Renderer) SetColor(pattern drawable.Pattern, opacity float64) {
	switch pattern := pattern.(type) {
	case drawable.PlainColor:
		r.pdf.SetFillColor(int(pattern.R), int(pattern.G), int(pattern.B))
		opacity *= float64(pattern.A) / 255.
	case drawable.Gradient:
		// approximated by the first stop
		if len(pattern.Stops) != 0 {
			first := pattern.Stops[0]
			c := drawable.NewPlainColor(0, 0, 0, 0xff)
			if first.StopColor != nil {
				red, green, blue, _ := first.StopColor.RGBA()
				c = drawable.NewPlainColor(uint8(red>>8), uint8(green>>8), uint8(blue>>8), 0xff)
			}
			r.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
			opacity *= first.Opacity
		}
	}
	r.pdf.SetAlpha(opacity, "")
}

func (r *Renderer) Draw() {
	styleStr := "f*"
	if r.useNonZeroWinding {
		styleStr = "f"
	}
	r.pdf.DrawPath(styleStr)
}

// RenderShape paints the shape on the current page of `pdf`.
func RenderShape(pdf *gofpdf.Fpdf, shape *drawable.DrawablePath, transform drawable.Matrix2D) {
	shape.Render(drawable.RenderContext{
		Painter:   NewRenderer(pdf),
		Opacity:   1,
		Transform: transform,
	})
}
