package drawable

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/drawable/attrtree"
	"github.com/benoitkugler/drawable/relpath"
)

// FillCodec (de)serializes fill patterns to style nodes. The three
// optional gradient anchor points let editors override (on write) or
// observe (on read) the relative points placing the gradient; they may
// all be nil. The image provider is handed through for codecs supporting
// image-based patterns.
type FillCodec interface {
	ReadFill(state *attrtree.Node, gp1, gp2, gp3 *relpath.RelPoint,
		finder relpath.Finder, images ImageProvider) Pattern

	WriteFill(state *attrtree.Node, fill Pattern, gp1, gp2, gp3 *relpath.RelPoint,
		images ImageProvider, undo attrtree.UndoManager)
}

// Fill-style node schema, shared by both fill nodes.
const (
	colourProp         = "colour"
	coloursProp        = "colours" // flat offset,colour,opacity list
	radialProp         = "radial"
	gradientPoint1Prop = "gradientPoint1"
	gradientPoint2Prop = "gradientPoint2"
	gradientPoint3Prop = "gradientPoint3" // radial only: a point on the outer circle
	gradientMatrixProp = "gradientMatrix"
	spreadProp         = "spread"
	unitsProp          = "units"
)

// DefaultFillCodec persists PlainColor and Gradient patterns; it ignores
// the image provider.
type DefaultFillCodec struct{}

func formatColour(c color.Color) string {
	n := nrgba(c)
	return fmt.Sprintf("%02x%02x%02x%02x", n.A, n.R, n.G, n.B)
}

// parseColour decodes an AARRGGBB hex string, falling back to opaque
// black.
func parseColour(s string) color.NRGBA {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 8 {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBA{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func relPointOrLiteral(override *relpath.RelPoint, x, y float64) relpath.RelPoint {
	if override != nil {
		return *override
	}
	return relpath.Literal(x, y)
}

func (DefaultFillCodec) WriteFill(state *attrtree.Node, fill Pattern, gp1, gp2, gp3 *relpath.RelPoint,
	images ImageProvider, undo attrtree.UndoManager) {
	state.RemoveAllProperties(undo)
	switch fill := fill.(type) {
	case Gradient:
		chunks := make([]string, 0, 3*len(fill.Stops))
		for _, stop := range fill.Stops {
			chunks = append(chunks, formatFloat(stop.Offset), formatColour(stop.StopColor),
				formatFloat(stop.Opacity))
		}
		state.SetProperty(coloursProp, strings.Join(chunks, ","), undo)

		var p1, p2, p3 relpath.RelPoint
		switch dir := fill.Direction.(type) {
		case Radial:
			state.SetBool(radialProp, true, undo)
			p1 = relPointOrLiteral(gp1, dir[0], dir[1])
			p2 = relPointOrLiteral(gp2, dir[2], dir[3])
			p3 = relPointOrLiteral(gp3, dir[0]+dir[4], dir[1])
			state.SetProperty(gradientPoint3Prop, p3.String(), undo)
		case Linear:
			p1 = relPointOrLiteral(gp1, dir[0], dir[1])
			p2 = relPointOrLiteral(gp2, dir[2], dir[3])
		}
		state.SetProperty(gradientPoint1Prop, p1.String(), undo)
		state.SetProperty(gradientPoint2Prop, p2.String(), undo)

		m := fill.Matrix
		state.SetProperty(gradientMatrixProp, strings.Join([]string{
			formatFloat(m.A), formatFloat(m.B), formatFloat(m.C),
			formatFloat(m.D), formatFloat(m.E), formatFloat(m.F),
		}, " "), undo)
		switch fill.Spread {
		case ReflectSpread:
			state.SetProperty(spreadProp, "reflect", undo)
		case RepeatSpread:
			state.SetProperty(spreadProp, "repeat", undo)
		default:
			state.SetProperty(spreadProp, "pad", undo)
		}
		if fill.Units == UserSpaceOnUse {
			state.SetProperty(unitsProp, "userSpace", undo)
		} else {
			state.SetProperty(unitsProp, "boundingBox", undo)
		}
	case PlainColor:
		state.SetProperty(colourProp, formatColour(fill.NRGBA), undo)
	default:
		// nil or unknown pattern: persisted as opaque black
		state.SetProperty(colourProp, formatColour(color.NRGBA{A: 0xff}), undo)
	}
}

func (DefaultFillCodec) ReadFill(state *attrtree.Node, gp1, gp2, gp3 *relpath.RelPoint,
	finder relpath.Finder, images ImageProvider) Pattern {
	if _, isGradient := state.Property(coloursProp); !isGradient {
		return PlainColor{parseColour(state.Str(colourProp))}
	}

	var grad Gradient
	chunks := strings.Split(state.Str(coloursProp), ",")
	for i := 0; i+2 < len(chunks); i += 3 {
		offset, _ := strconv.ParseFloat(chunks[i], 64)
		opacity, _ := strconv.ParseFloat(chunks[i+2], 64)
		grad.Stops = append(grad.Stops, GradStop{
			StopColor: parseColour(chunks[i+1]),
			Offset:    offset,
			Opacity:   opacity,
		})
	}

	rp1 := parseRelPointProp(state, gradientPoint1Prop)
	rp2 := parseRelPointProp(state, gradientPoint2Prop)
	rp3 := parseRelPointProp(state, gradientPoint3Prop)
	if gp1 != nil {
		*gp1 = rp1
	}
	if gp2 != nil {
		*gp2 = rp2
	}
	if gp3 != nil {
		*gp3 = rp3
	}
	p1 := rp1.Resolve(finder)
	p2 := rp2.Resolve(finder)
	if state.Bool(radialProp) {
		p3 := rp3.Resolve(finder)
		grad.Direction = Radial{p1.X, p1.Y, p2.X, p2.Y, math.Hypot(p3.X-p1.X, p3.Y-p1.Y), 0}
	} else {
		grad.Direction = Linear{p1.X, p1.Y, p2.X, p2.Y}
	}

	grad.Matrix = Identity
	if fields := strings.Fields(state.Str(gradientMatrixProp)); len(fields) == 6 {
		coefs := [6]float64{}
		for i, f := range fields {
			coefs[i], _ = strconv.ParseFloat(f, 64)
		}
		grad.Matrix = Matrix2D{coefs[0], coefs[1], coefs[2], coefs[3], coefs[4], coefs[5]}
	}
	switch state.Str(spreadProp) {
	case "reflect":
		grad.Spread = ReflectSpread
	case "repeat":
		grad.Spread = RepeatSpread
	default:
		grad.Spread = PadSpread
	}
	if state.Str(unitsProp) == "userSpace" {
		grad.Units = UserSpaceOnUse
	} else {
		grad.Units = ObjectBoundingBox
	}
	return grad
}
