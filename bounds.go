package drawable

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Bounds is an axis-aligned rectangle, used both for path extents and for
// damage regions.
type Bounds struct {
	X, Y, W, H float64
}

// IsEmpty reports whether the rectangle covers no area.
func (b Bounds) IsEmpty() bool { return b.W <= 0 || b.H <= 0 }

// Union returns the smallest rectangle containing both b and o. An empty
// rectangle is the neutral element.
func (b Bounds) Union(o Bounds) Bounds {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	minX := math.Min(b.X, o.X)
	minY := math.Min(b.Y, o.Y)
	maxX := math.Max(b.X+b.W, o.X+o.W)
	maxY := math.Max(b.Y+b.H, o.Y+o.H)
	return Bounds{minX, minY, maxX - minX, maxY - minY}
}

// The extent of a path is computed from the critical points of its curve
// segments, without flattening.

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

type bezier interface {
	// compute the t zeroing the derivative
	criticalPoints() (tX, tY []float64)
	// compute the point at time t
	evaluateCurve(t float64) (x, y float64)
}

type segLine [2]fixed.Point26_6

func (l segLine) criticalPoints() (tX, tY []float64) { return nil, nil }

func (l segLine) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := fixedTof(l[0])
	p1x, p1y := fixedTof(l[1])
	return bezierLine(p0x, p1x, t), bezierLine(p0y, p1y, t)
}

func bezierLine(p0, p1, t float64) float64 {
	return (p1-p0)*t + p0
}

type quadBezier [3]fixed.Point26_6

// quadratic polynomial
// x = At^2 + Bt + C
// where
// A = p0 + p2 - 2p1
// B = 2(p1 - p0)
// C = p0
func bezierQuad(p0, p1, p2, t float64) float64 {
	return (p0+p2-2*p1)*t*t + 2*(p1-p0)*t + p0
}

// derivative as at + b where a,b :
func quadraticDerivative(p0, p1, p2 float64) (a, b float64) {
	return 2 * (p2 - p1 - (p1 - p0)), 2 * (p1 - p0)
}

// handle the case where a = 0
func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

func (cu quadBezier) criticalPoints() (tX, tY []float64) {
	p0x, p0y := fixedTof(cu[0])
	p1x, p1y := fixedTof(cu[1])
	p2x, p2y := fixedTof(cu[2])

	aX, bX := quadraticDerivative(p0x, p1x, p2x)
	aY, bY := quadraticDerivative(p0y, p1y, p2y)

	return linearRoots(aX, bX), linearRoots(aY, bY)
}

func (cu quadBezier) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := fixedTof(cu[0])
	p1x, p1y := fixedTof(cu[1])
	p2x, p2y := fixedTof(cu[2])
	return bezierQuad(p0x, p1x, p2x, t), bezierQuad(p0y, p1y, p2y, t)
}

type cubicBezier [4]fixed.Point26_6

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	p0x, p0y := fixedTof(cu[0])
	c1x, c1y := fixedTof(cu[1])
	c2x, c2y := fixedTof(cu[2])
	p1x, p1y := fixedTof(cu[3])

	aX, bX, cX := cubicDerivative(p0x, c1x, c2x, p1x)
	aY, bY, cY := cubicDerivative(p0y, c1y, c2y, p1y)

	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

func (cu cubicBezier) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := fixedTof(cu[0])
	p1x, p1y := fixedTof(cu[1])
	p2x, p2y := fixedTof(cu[2])
	p3x, p3y := fixedTof(cu[3])
	return bezierSpline(p0x, p1x, p2x, p3x, t), bezierSpline(p0y, p1y, p2y, p3y, t)
}

// cubic polynomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// the roots of the derivative, taken as at^2 + bt + c where a,b,c are:
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if a == 0 {
		// bt + c : a simple line
		return linearRoots(b, c)
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// extent accumulates min/max coordinates.
type extent struct {
	minX, minY, maxX, maxY float64
	any                    bool
}

func (e *extent) add(x, y float64) {
	if !e.any {
		e.minX, e.maxX, e.minY, e.maxY = x, x, y, y
		e.any = true
		return
	}
	e.minX = math.Min(e.minX, x)
	e.minY = math.Min(e.minY, y)
	e.maxX = math.Max(e.maxX, x)
	e.maxY = math.Max(e.maxY, y)
}

func (e *extent) addCurve(curve bezier) {
	resX, resY := curve.criticalPoints()
	for _, t := range append(append(resX, 0, 1), resY...) {
		if !(0 <= t && t <= 1) {
			continue
		}
		e.add(curve.evaluateCurve(t))
	}
}

func (e *extent) bounds() Bounds {
	if !e.any {
		return Bounds{}
	}
	return Bounds{e.minX, e.minY, e.maxX - e.minX, e.maxY - e.minY}
}

// Bounds returns the extent of the path, computed from the bezier control
// polygons' critical points.
func (p Path) Bounds() Bounds {
	var (
		ext        extent
		cur, first fixed.Point26_6
	)
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			cur = fixed.Point26_6(op)
			first = cur
			ext.add(fixedTof(cur))
		case LineTo:
			ext.addCurve(segLine{cur, fixed.Point26_6(op)})
			cur = fixed.Point26_6(op)
		case QuadTo:
			ext.addCurve(quadBezier{cur, op[0], op[1]})
			cur = op[1]
		case CubicTo:
			ext.addCurve(cubicBezier{cur, op[0], op[1], op[2]})
			cur = op[2]
		case Close:
			ext.addCurve(segLine{cur, first})
			cur = first
		}
	}
	return ext.bounds()
}
