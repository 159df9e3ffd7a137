// Package drawable implements an editable, resizable vector shape: a path
// with independent fill and stroke styling, backed either by fixed
// geometry or by a descriptor expressed relative to named anchors (see
// the relpath package), with lazy derived-geometry caching and a tree
// codec for persistence.
package drawable

import (
	"fmt"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Operation groups the concrete path commands.
type Operation interface {
	// add itself on the adder `d`, after applying the transform `m`
	drawTo(d Adder, m Matrix2D)
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

// starts a new path at the given point.
func (op MoveTo) drawTo(d Adder, m Matrix2D) {
	d.Stop(false) // implicit close if currently in path.
	d.Start(m.TFixed(fixed.Point26_6(op)))
}

// draw a line
func (op LineTo) drawTo(d Adder, m Matrix2D) {
	d.Line(m.TFixed(fixed.Point26_6(op)))
}

// draw a quadratic bezier curve
func (op QuadTo) drawTo(d Adder, m Matrix2D) {
	d.QuadBezier(m.TFixed(op[0]), m.TFixed(op[1]))
}

// draw a cubic bezier curve
func (op CubicTo) drawTo(d Adder, m Matrix2D) {
	d.CubeBezier(m.TFixed(op[0]), m.TFixed(op[1]), m.TFixed(op[2]))
}

func (op Close) drawTo(d Adder, _ Matrix2D) {
	d.Stop(true)
}

// Adder accumulates path commands. It is satisfied by Path itself and by
// the rasterx fillers, strokers and dashers.
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)

	// Line adds a line from the current point to `b`
	Line(b fixed.Point26_6)

	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)
}

// Path is a concrete outline: a sequence of resolved path commands. It is
// always derived, either from a descriptor or set directly.
type Path []Operation

// AddTo replays the path commands on the adder.
func (p Path) AddTo(d Adder) { p.AddToTransformed(d, Identity) }

// AddToTransformed replays the path commands on the adder, transforming
// every point by m, and ends any open subpath.
func (p Path) AddToTransformed(d Adder, m Matrix2D) {
	for _, op := range p {
		op.drawTo(d, m)
	}
	d.Stop(false)
}

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", float32(op[0].X)/64, float32(op[0].Y)/64,
				float32(op[1].X)/64, float32(op[1].Y)/64)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", float32(op[0].X)/64, float32(op[0].Y)/64,
				float32(op[1].X)/64, float32(op[1].Y)/64, float32(op[2].X)/64, float32(op[2].Y)/64)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Equals reports whether both paths hold the same commands with the same
// coordinates.
func (p Path) Equals(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			if o, ok := other[i].(MoveTo); !ok || o != op {
				return false
			}
		case LineTo:
			if o, ok := other[i].(LineTo); !ok || o != op {
				return false
			}
		case QuadTo:
			if o, ok := other[i].(QuadTo); !ok || o != op {
				return false
			}
		case CubicTo:
			if o, ok := other[i].(CubicTo); !ok || o != op {
				return false
			}
		case Close:
			if _, ok := other[i].(Close); !ok {
				return false
			}
		}
	}
	return true
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return append(Path(nil), p...)
}

func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// AddRect adds a closed axis-aligned rectangle to the path.
func (p *Path) AddRect(minX, minY, maxX, maxY float64) {
	p.Start(toFixedP(minX, minY))
	p.Line(toFixedP(maxX, minY))
	p.Line(toFixedP(maxX, maxY))
	p.Line(toFixedP(minX, maxY))
	p.Stop(true)
}

// AddEllipse adds a closed ellipse, approximated by four cubic arcs.
func (p *Path) AddEllipse(cx, cy, rx, ry float64) {
	// tangent length for a quarter circle cubic approximation
	const k = 0.551915024494
	p.Start(toFixedP(cx+rx, cy))
	p.CubeBezier(toFixedP(cx+rx, cy+ry*k), toFixedP(cx+rx*k, cy+ry), toFixedP(cx, cy+ry))
	p.CubeBezier(toFixedP(cx-rx*k, cy+ry), toFixedP(cx-rx, cy+ry*k), toFixedP(cx-rx, cy))
	p.CubeBezier(toFixedP(cx-rx, cy-ry*k), toFixedP(cx-rx*k, cy-ry), toFixedP(cx, cy-ry))
	p.CubeBezier(toFixedP(cx+rx*k, cy-ry), toFixedP(cx+rx, cy-ry*k), toFixedP(cx+rx, cy))
	p.Stop(true)
}
