package drawable

import (
	"image"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// JointStyle says how stroke segments bridge the gap at a join.
type JointStyle uint8

const (
	MiterJoint JointStyle = iota // default
	CurvedJoint
	BevelJoint
)

func (j JointStyle) String() string {
	switch j {
	case CurvedJoint:
		return "curved"
	case BevelJoint:
		return "bevel"
	default:
		return "miter"
	}
}

// ParseJointStyle decodes a joint token, falling back to MiterJoint for
// unrecognized values.
func ParseJointStyle(s string) JointStyle {
	switch s {
	case "curved":
		return CurvedJoint
	case "bevel":
		return BevelJoint
	default:
		return MiterJoint
	}
}

// CapStyle says how to end the open extremities of a stroked path.
type CapStyle uint8

const (
	ButtCap CapStyle = iota // default
	SquareCap
	RoundCap
)

func (c CapStyle) String() string {
	switch c {
	case SquareCap:
		return "square"
	case RoundCap:
		return "round"
	default:
		return "butt"
	}
}

// ParseCapStyle decodes a cap token, falling back to ButtCap for
// unrecognized values.
func ParseCapStyle(s string) CapStyle {
	switch s {
	case "square":
		return SquareCap
	case "round":
		return RoundCap
	default:
		return ButtCap
	}
}

// StrokeType describes how a path centerline is thickened into a stroke
// outline.
type StrokeType struct {
	Width float64
	Joint JointStyle
	Cap   CapStyle
}

// StrokeGenerator produces the outline of a stroked path: the filled
// region obtained by thickening the centerline per the stroke parameters.
type StrokeGenerator interface {
	GenerateStroke(p Path, st StrokeType, m Matrix2D, miterLimit float64) Path
}

var (
	joinToRasterx = [...]rasterx.JoinMode{
		MiterJoint:  rasterx.Miter,
		CurvedJoint: rasterx.Round,
		BevelJoint:  rasterx.Bevel,
	}

	capToRasterx = [...]rasterx.CapFunc{
		ButtCap:   rasterx.ButtCap,
		SquareCap: rasterx.SquareCap,
		RoundCap:  rasterx.RoundCap,
	}
)

// nominal working surface handed to rasterx path walkers; the capture
// scanner never clips, so the actual value is irrelevant
const captureSize = 1 << 11

// RasterxStroker generates stroke outlines by running a rasterx dasher
// over a scanner which records the flattened outline instead of
// rasterizing it.
type RasterxStroker struct{}

func (RasterxStroker) GenerateStroke(p Path, st StrokeType, m Matrix2D, miterLimit float64) Path {
	if st.Width <= 0 || len(p) == 0 {
		return nil
	}
	capture := &capturePath{}
	dasher := rasterx.NewDasher(captureSize, captureSize, capture)
	gap := rasterx.FlatGap
	if st.Joint == CurvedJoint {
		gap = rasterx.RoundGap
	}
	dasher.SetStroke(fixed.Int26_6(st.Width*64), fixed.Int26_6(miterLimit*64),
		capToRasterx[st.Cap], capToRasterx[st.Cap], gap, joinToRasterx[st.Joint], nil, 0)
	p.AddToTransformed(dasher, m)
	dasher.Draw()
	return capture.path
}

// capturePath implements rasterx.Scanner, recording the flattened
// contours it is sent instead of rasterizing them.
type capturePath struct {
	path   Path
	extent fixed.Rectangle26_6
	any    bool
}

func (c *capturePath) Start(a fixed.Point26_6) {
	c.path.Start(a)
	c.grow(a)
}

func (c *capturePath) Line(b fixed.Point26_6) {
	c.path.Line(b)
	c.grow(b)
}

func (c *capturePath) grow(a fixed.Point26_6) {
	if !c.any {
		c.extent = fixed.Rectangle26_6{Min: a, Max: a}
		c.any = true
		return
	}
	if a.X < c.extent.Min.X {
		c.extent.Min.X = a.X
	}
	if a.Y < c.extent.Min.Y {
		c.extent.Min.Y = a.Y
	}
	if a.X > c.extent.Max.X {
		c.extent.Max.X = a.X
	}
	if a.Y > c.extent.Max.Y {
		c.extent.Max.Y = a.Y
	}
}

func (c *capturePath) Draw() {}

func (c *capturePath) GetPathExtent() fixed.Rectangle26_6 { return c.extent }

func (c *capturePath) SetBounds(w, h int) {}

func (c *capturePath) SetColor(clr interface{}) {}

func (c *capturePath) SetWinding(useNonZeroWinding bool) {}

func (c *capturePath) SetClip(rect image.Rectangle) {}

func (c *capturePath) Clear() {
	c.path = nil
	c.any = false
	c.extent = fixed.Rectangle26_6{}
}
