package drawable

import "image/color"

// Pattern describes how a region is painted, either PlainColor or Gradient.
type Pattern interface {
	// IsInvisible reports whether painting with the pattern can have no
	// visible effect at all.
	IsInvisible() bool

	isPattern()
}

// PlainColor is a Pattern filling with a single color.
type PlainColor struct {
	color.NRGBA
}

// NewPlainColor returns a solid pattern with the given non-premultiplied
// components.
func NewPlainColor(r, g, b, a uint8) PlainColor {
	return PlainColor{color.NRGBA{R: r, G: g, B: b, A: a}}
}

func (PlainColor) isPattern() {}

func (c PlainColor) IsInvisible() bool { return c.A == 0 }

// GradientUnits is the coordinate space of the gradient geometry.
type GradientUnits byte

const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

// SpreadMethod says how a gradient extends past its stops.
type SpreadMethod byte

const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// GradStop is one color stop of a gradient.
type GradStop struct {
	StopColor color.Color
	Offset    float64
	Opacity   float64
}

// radial or linear
type gradientDirecter interface {
	isRadial() bool
}

// Linear is x1, y1, x2, y2.
type Linear [4]float64

func (Linear) isRadial() bool { return false }

// Radial is cx, cy, fx, fy, r, fr.
type Radial [6]float64

func (Radial) isRadial() bool { return true }

// Gradient is a Pattern shading between color stops, along a line or
// radially.
type Gradient struct {
	Direction gradientDirecter
	Stops     []GradStop
	Bounds    Bounds // object bounding box, set by the painting driver
	Matrix    Matrix2D
	Spread    SpreadMethod
	Units     GradientUnits
}

func (Gradient) isPattern() {}

func (g Gradient) IsInvisible() bool {
	for _, s := range g.Stops {
		if s.Opacity > 0 && nrgba(s.StopColor).A > 0 {
			return false
		}
	}
	return true
}

func nrgba(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func gradientsEqual(a, b Gradient) bool {
	if a.Direction != b.Direction || a.Matrix != b.Matrix ||
		a.Spread != b.Spread || a.Units != b.Units || len(a.Stops) != len(b.Stops) {
		return false
	}
	for i, s := range a.Stops {
		o := b.Stops[i]
		if s.Offset != o.Offset || s.Opacity != o.Opacity || nrgba(s.StopColor) != nrgba(o.StopColor) {
			return false
		}
	}
	return true
}

// patternsEqual is the structural equality used by the codec diff.
func patternsEqual(a, b Pattern) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch a := a.(type) {
	case PlainColor:
		o, ok := b.(PlainColor)
		return ok && a == o
	case Gradient:
		o, ok := b.(Gradient)
		return ok && gradientsEqual(a, o)
	}
	return false
}

func clonePattern(p Pattern) Pattern {
	if g, ok := p.(Gradient); ok {
		g.Stops = append([]GradStop(nil), g.Stops...)
		return g
	}
	return p
}
