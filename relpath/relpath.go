// Package relpath implements path descriptors whose control points may be
// given relative to named anchors, and their resolution into concrete
// geometry. A descriptor with at least one named reference is dynamic: it
// reacts to layout changes reported by the anchor finder.
package relpath

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Point is a resolved position, in the same units as concrete geometry.
type Point struct {
	X, Y float64
}

// Fixed converts the point to the fixed-point representation used by
// concrete paths.
func (p Point) Fixed() fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}

// Finder maps an anchor name to its current position. Implementations may
// return different positions between calls when the layout changes.
type Finder interface {
	FindNamedPoint(name string) (Point, bool)
}

// RelPoint is one control point: a literal position when Anchor is empty,
// otherwise an offset from the named anchor.
type RelPoint struct {
	Anchor string
	X, Y   float64
}

// Literal returns a fixed control point.
func Literal(x, y float64) RelPoint { return RelPoint{X: x, Y: y} }

// Named returns a control point placed dx,dy away from the named anchor.
func Named(anchor string, dx, dy float64) RelPoint {
	return RelPoint{Anchor: anchor, X: dx, Y: dy}
}

// IsDynamic reports whether the point depends on a named anchor.
func (p RelPoint) IsDynamic() bool { return p.Anchor != "" }

// Resolve returns the concrete position of the point. An unresolved named
// reference counts as the origin, so a shape always yields renderable
// geometry even without a finder.
func (p RelPoint) Resolve(finder Finder) Point {
	if p.Anchor == "" {
		return Point{p.X, p.Y}
	}
	var base Point
	if finder != nil {
		if a, ok := finder.FindNamedPoint(p.Anchor); ok {
			base = a
		}
	}
	return Point{base.X + p.X, base.Y + p.Y}
}

func formatCoord(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// String encodes the point as "x,y", with "@anchor" appended for named
// references. ParseRelPoint is the inverse.
func (p RelPoint) String() string {
	s := formatCoord(p.X) + "," + formatCoord(p.Y)
	if p.Anchor != "" {
		s += "@" + p.Anchor
	}
	return s
}

// ParseRelPoint decodes the representation produced by String.
func ParseRelPoint(s string) (RelPoint, error) {
	var out RelPoint
	input := s
	if i := strings.IndexByte(s, '@'); i != -1 {
		out.Anchor = strings.TrimSpace(s[i+1:])
		s = s[:i]
		if out.Anchor == "" {
			return out, fmt.Errorf("relpath: empty anchor in %q", input)
		}
	}
	xs, ys, ok := cut(s, ",")
	if !ok {
		return out, fmt.Errorf("relpath: invalid point %q", input)
	}
	var err error
	if out.X, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return out, fmt.Errorf("relpath: invalid point %q", input)
	}
	if out.Y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return out, fmt.Errorf("relpath: invalid point %q", input)
	}
	return out, nil
}

func cut(s, sep string) (before, after string, found bool) {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}

// Adder accumulates concrete path commands; it matches the contract of
// rasterizer path sinks.
type Adder interface {
	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	QuadBezier(b, c fixed.Point26_6)
	CubeBezier(b, c, d fixed.Point26_6)
	Stop(closeLoop bool)
}

// Segment is one descriptor command over relative control points.
type Segment interface {
	// ControlPoints returns the segment control points, end point last.
	ControlPoints() []RelPoint
}

type MoveTo RelPoint

type LineTo RelPoint

type QuadTo [2]RelPoint

type CubicTo [3]RelPoint

type Close struct{}

func (s MoveTo) ControlPoints() []RelPoint { return []RelPoint{RelPoint(s)} }
func (s LineTo) ControlPoints() []RelPoint { return []RelPoint{RelPoint(s)} }
func (s QuadTo) ControlPoints() []RelPoint { return s[:] }
func (s CubicTo) ControlPoints() []RelPoint {
	return s[:]
}
func (Close) ControlPoints() []RelPoint { return nil }

// Path is an ordered sequence of segments, the editable descriptor from
// which concrete geometry is derived.
type Path []Segment

// CreatePath resolves the descriptor into concrete geometry, sending the
// commands to adder. MoveTo opens a new subpath (implicitly ending an open
// one) and Close connects back toward the subpath start. Every control
// point is resolved independently against finder, with no caching across
// segments.
func (p Path) CreatePath(adder Adder, finder Finder) {
	for _, seg := range p {
		switch seg := seg.(type) {
		case MoveTo:
			adder.Stop(false)
			adder.Start(RelPoint(seg).Resolve(finder).Fixed())
		case LineTo:
			adder.Line(RelPoint(seg).Resolve(finder).Fixed())
		case QuadTo:
			adder.QuadBezier(seg[0].Resolve(finder).Fixed(), seg[1].Resolve(finder).Fixed())
		case CubicTo:
			adder.CubeBezier(seg[0].Resolve(finder).Fixed(), seg[1].Resolve(finder).Fixed(),
				seg[2].Resolve(finder).Fixed())
		case Close:
			adder.Stop(true)
		}
	}
}

// ContainsAnyDynamicPoints reports whether any control point references a
// named anchor.
func (p Path) ContainsAnyDynamicPoints() bool {
	for _, seg := range p {
		for _, pt := range seg.ControlPoints() {
			if pt.IsDynamic() {
				return true
			}
		}
	}
	return false
}

// Clone returns an independent copy of the descriptor.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return append(Path(nil), p...)
}
