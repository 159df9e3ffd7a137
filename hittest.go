package drawable

import (
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// flatten returns the path reduced to Move and Line commands, using the
// rasterx filler to subdivide curve segments.
func (p Path) flatten() Path {
	capture := &capturePath{}
	filler := rasterx.NewFiller(captureSize, captureSize, capture)
	p.AddTo(filler)
	return capture.path
}

// Contains reports whether the point x, y lies inside the filled path,
// under the non-zero winding or the even-odd rule.
func (p Path) Contains(x, y float64, useNonZeroWinding bool) bool {
	var (
		winding, crossings int
		cur, first         fixed.Point26_6
		open               bool
	)
	testEdge := func(a, b fixed.Point26_6) {
		x1, y1 := fixedTof(a)
		x2, y2 := fixedTof(b)
		if (y1 > y) == (y2 > y) {
			return
		}
		// intersection of the edge with the horizontal line through y
		xi := x1 + (y-y1)*(x2-x1)/(y2-y1)
		if xi <= x {
			return
		}
		crossings++
		if y2 > y1 {
			winding++
		} else {
			winding--
		}
	}
	closeContour := func() {
		if open && cur != first {
			testEdge(cur, first)
		}
		open = false
	}
	for _, op := range p.flatten() {
		switch op := op.(type) {
		case MoveTo:
			closeContour()
			cur = fixed.Point26_6(op)
			first = cur
			open = true
		case LineTo:
			testEdge(cur, fixed.Point26_6(op))
			cur = fixed.Point26_6(op)
		}
	}
	closeContour()
	if useNonZeroWinding {
		return winding != 0
	}
	return crossings%2 == 1
}
