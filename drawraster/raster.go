// Package drawraster implements a raster painting backend for drawable
// shapes, by wrapping rasterx.
package drawraster

import (
	"image"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/drawable"
)

var _ drawable.Filler = (*Renderer)(nil) // assert interface conformance

// Renderer paints shape outlines on a rasterx scanner.
type Renderer struct {
	filler  *rasterx.Filler
	scanner rasterx.Scanner
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines, it can also rasterize quadratic and
// cubic bezier curves sent by the shapes.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{filler: rasterx.NewFiller(width, height, scanner), scanner: scanner}
}

// RenderToImage rasterizes the shape into a fresh RGBA image of the
// given size, using a ScannerGV instance.
func RenderToImage(shape *drawable.DrawablePath, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	renderer := NewRenderer(width, height, scanner)
	shape.Render(drawable.RenderContext{
		Painter:   renderer,
		Opacity:   1,
		Transform: drawable.Identity,
	})
	return img
}

func (rd *Renderer) Clear() { rd.filler.Clear() }

func (rd *Renderer) Start(a fixed.Point26_6) { rd.filler.Start(a) }

func (rd *Renderer) Line(b fixed.Point26_6) { rd.filler.Line(b) }

func (rd *Renderer) QuadBezier(b, c fixed.Point26_6) { rd.filler.QuadBezier(b, c) }

func (rd *Renderer) CubeBezier(b, c, d fixed.Point26_6) { rd.filler.CubeBezier(b, c, d) }

func (rd *Renderer) Stop(closeLoop bool) { rd.filler.Stop(closeLoop) }

func (rd *Renderer) SetWinding(useNonZeroWinding bool) {
	rd.filler.SetWinding(useNonZeroWinding)
}

func (rd *Renderer) Draw() { rd.filler.Draw() }

func toRasterxGradient(grad drawable.Gradient) rasterx.Gradient {
	var (
		points   [5]float64
		isRadial bool
	)
	switch dir := grad.Direction.(type) {
	case drawable.Linear:
		points[0], points[1], points[2], points[3] = dir[0], dir[1], dir[2], dir[3]
		isRadial = false
	case drawable.Radial:
		points[0], points[1], points[2], points[3], points[4] = dir[0], dir[1], dir[2], dir[3], dir[4] // fr is ignored by rasterx
		isRadial = true
	}
	stops := make([]rasterx.GradStop, len(grad.Stops))
	for i := range grad.Stops {
		stops[i] = rasterx.GradStop(grad.Stops[i])
	}
	return rasterx.Gradient{
		Points:   points,
		Stops:    stops,
		Bounds:   struct{ X, Y, W, H float64 }{grad.Bounds.X, grad.Bounds.Y, grad.Bounds.W, grad.Bounds.H},
		Matrix:   rasterx.Matrix2D(grad.Matrix),
		Spread:   rasterx.SpreadMethod(grad.Spread),
		Units:    rasterx.GradientUnits(grad.Units),
		IsRadial: isRadial,
	}
}

// SetColor resolves the pattern to a rasterx color. A gradient in
// bounding-box units picks up the extent of the outline added so far.
func (rd *Renderer) SetColor(pattern drawable.Pattern, opacity float64) {
	switch fillerColor := pattern.(type) {
	case drawable.PlainColor:
		rd.scanner.SetColor(rasterx.ApplyOpacity(fillerColor, opacity))
	case drawable.Gradient:
		if fillerColor.Units == drawable.ObjectBoundingBox {
			fRect := rd.scanner.GetPathExtent()
			mnx, mny := float64(fRect.Min.X)/64, float64(fRect.Min.Y)/64
			mxx, mxy := float64(fRect.Max.X)/64, float64(fRect.Max.Y)/64
			fillerColor.Bounds.X, fillerColor.Bounds.Y = mnx, mny
			fillerColor.Bounds.W, fillerColor.Bounds.H = mxx-mnx, mxy-mny
		}
		rasterxGradient := toRasterxGradient(fillerColor)
		rd.scanner.SetColor(rasterxGradient.GetColorFunction(opacity))
	}
}
