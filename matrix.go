package drawable

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Matrix2D is an affine transform:
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a times b: the transform applying b first, then a.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate composes a translation after a.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale composes a scaling after a.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate composes a rotation of theta radians after a.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sin(theta), math.Cos(theta)
	return a.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// Transform applies the matrix to the point x, y.
func (a Matrix2D) Transform(x, y float64) (float64, float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}

// TFixed applies the matrix to a fixed point.
func (a Matrix2D) TFixed(p fixed.Point26_6) fixed.Point26_6 {
	x, y := a.Transform(float64(p.X)/64, float64(p.Y)/64)
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}
