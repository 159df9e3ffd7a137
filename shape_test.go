package drawable

import (
	"testing"

	"github.com/benoitkugler/drawable/relpath"
)

// countingFinder tracks how often anchors are resolved, to observe the
// laziness of the geometry cache.
type countingFinder struct {
	points map[string]relpath.Point
	calls  int
}

func (f *countingFinder) FindNamedPoint(name string) (relpath.Point, bool) {
	f.calls++
	pt, ok := f.points[name]
	return pt, ok
}

func anchoredSegment() relpath.Path {
	return relpath.Path{
		relpath.MoveTo(relpath.Named("A", 0, 0)),
		relpath.LineTo(relpath.Named("B", 0, 0)),
	}
}

func TestDynamicResolution(t *testing.T) {
	finder := &countingFinder{points: map[string]relpath.Point{
		"A": {X: 0, Y: 0}, "B": {X: 10, Y: 0},
	}}
	s := NewDrawablePath()
	s.SetNamedPointFinder(finder)
	s.SetRelativePath(anchoredSegment())

	if got := s.FillPath().Bounds(); got != (Bounds{0, 0, 10, 0}) {
		t.Fatalf("unexpected resolved bounds %v", got)
	}

	// moving an anchor has no effect until the shape is told about it
	finder.points["B"] = relpath.Point{X: 20, Y: 0}
	if got := s.FillPath().Bounds(); got.W != 10 {
		t.Fatalf("cached geometry should survive an unnoticed layout change, got %v", got)
	}

	s.InvalidatePoints()
	if got := s.FillPath().Bounds(); got.W != 20 {
		t.Fatalf("invalidated geometry should re-resolve, got %v", got)
	}
}

func TestLazyRecomputation(t *testing.T) {
	finder := &countingFinder{points: map[string]relpath.Point{
		"A": {X: 0, Y: 0}, "B": {X: 10, Y: 0},
	}}
	s := NewDrawablePath()
	s.SetNamedPointFinder(finder)
	s.SetRelativePath(anchoredSegment())

	s.FillPath()
	resolved := finder.calls
	if resolved == 0 {
		t.Fatal("first read should resolve the descriptor")
	}
	s.FillPath()
	s.Bounds()
	if finder.calls != resolved {
		t.Fatalf("repeated reads should not re-resolve (%d calls after %d)", finder.calls, resolved)
	}

	s.InvalidatePoints()
	s.FillPath()
	if finder.calls != 2*resolved {
		t.Fatalf("invalidation should trigger exactly one re-resolution, got %d calls", finder.calls)
	}
}

// counts outline generations, delegating to the default generator
type countingStroker struct {
	inner RasterxStroker
	calls int
}

func (c *countingStroker) GenerateStroke(p Path, st StrokeType, m Matrix2D, miterLimit float64) Path {
	c.calls++
	return c.inner.GenerateStroke(p, st, m, miterLimit)
}

func TestInvalidationScoping(t *testing.T) {
	finder := &countingFinder{points: map[string]relpath.Point{
		"A": {X: 0, Y: 0}, "B": {X: 10, Y: 0},
	}}
	stroker := new(countingStroker)
	s := NewDrawablePath()
	s.SetNamedPointFinder(finder)
	s.SetStrokeGenerator(stroker)
	s.SetRelativePath(anchoredSegment())
	s.SetStrokeType(StrokeType{Width: 2})

	s.StrokePath()
	resolved, stroked := finder.calls, stroker.calls

	// changing only stroke parameters must not re-resolve the fill geometry
	s.SetStrokeThickness(4)
	s.StrokePath()
	if finder.calls != resolved {
		t.Fatal("stroke change should not invalidate the fill geometry")
	}
	if stroker.calls != stroked+1 {
		t.Fatalf("stroke change should regenerate the outline once, got %d", stroker.calls-stroked)
	}

	// changing styles invalidates nothing
	s.SetFill(NewPlainColor(0xff, 0, 0, 0xff))
	s.SetStrokeFill(NewPlainColor(0, 0xff, 0, 0xff))
	s.StrokePath()
	s.FillPath()
	if finder.calls != resolved || stroker.calls != stroked+1 {
		t.Fatal("style change should not invalidate geometry")
	}

	// changing the geometry invalidates both outlines
	s.SetRelativePath(anchoredSegment())
	s.StrokePath()
	if finder.calls == resolved || stroker.calls != stroked+2 {
		t.Fatal("geometry change should invalidate both outlines")
	}
}

func TestStrokeVisibility(t *testing.T) {
	var square Path
	square.AddRect(0, 0, 10, 10)

	s := NewDrawablePath()
	s.SetPath(square)

	if s.IsStrokeVisible() {
		t.Fatal("zero width stroke should be invisible")
	}
	if got := s.Bounds(); got != (Bounds{0, 0, 10, 10}) {
		t.Fatalf("unexpected fill bounds %v", got)
	}

	s.SetStrokeThickness(2)
	if !s.IsStrokeVisible() {
		t.Fatal("thick stroke should be visible")
	}
	if got := s.Bounds(); !boundsNear(got, Bounds{-1, -1, 12, 12}, 0.1) {
		t.Fatalf("unexpected stroke bounds %v", got)
	}

	// a fully transparent stroke fill hides the stroke again
	s.SetStrokeFill(NewPlainColor(0, 0, 0, 0))
	if s.IsStrokeVisible() {
		t.Fatal("transparent stroke fill should be invisible")
	}
	s.SetStrokeFill(nil)
	if s.IsStrokeVisible() {
		t.Fatal("nil stroke fill should be invisible")
	}
}

func TestHitTest(t *testing.T) {
	var square Path
	square.AddRect(0, 0, 10, 10)

	s := NewDrawablePath()
	s.SetPath(square)

	if !s.HitTest(5, 5) {
		t.Fatal("inner point missed")
	}
	if s.HitTest(-1, 5) {
		t.Fatal("outer point hit with no stroke")
	}

	// a visible stroke extends the hit region past the fill outline
	s.SetStrokeThickness(4)
	if !s.HitTest(-1, 5) {
		t.Fatal("point on the stroke missed")
	}
	if s.HitTest(-4, 5) {
		t.Fatal("point beyond the stroke hit")
	}
}

func TestShapeClone(t *testing.T) {
	finder := &countingFinder{points: map[string]relpath.Point{
		"A": {X: 0, Y: 0}, "B": {X: 10, Y: 0},
	}}
	s := NewDrawablePath()
	s.SetName("edge")
	s.SetNamedPointFinder(finder)
	s.SetRelativePath(anchoredSegment())
	s.SetStrokeThickness(2)
	s.FillPath()

	c := s.Clone()
	if c.Name() != "edge" || c.StrokeType() != s.StrokeType() {
		t.Fatal("clone lost styling")
	}
	c.SetStrokeThickness(8)
	c.SetFill(NewPlainColor(0xff, 0, 0, 0xff))
	if s.StrokeType().Width != 2 {
		t.Fatal("mutating the clone changed the original stroke")
	}
	if !patternsEqual(s.MainFill(), NewPlainColor(0, 0, 0, 0xff)) {
		t.Fatal("mutating the clone changed the original fill")
	}
	if !c.FillPath().Equals(s.FillPath()) {
		t.Fatal("clone should resolve to the same geometry")
	}
}

func TestSetPathDropsDescriptor(t *testing.T) {
	finder := &countingFinder{points: map[string]relpath.Point{
		"A": {X: 0, Y: 0}, "B": {X: 10, Y: 0},
	}}
	s := NewDrawablePath()
	s.SetNamedPointFinder(finder)
	s.SetRelativePath(anchoredSegment())
	s.FillPath()

	var square Path
	square.AddRect(0, 0, 4, 4)
	s.SetPath(square)

	// the shape is static now: anchors are never consulted again
	resolved := finder.calls
	s.InvalidatePoints()
	if got := s.FillPath().Bounds(); got != (Bounds{0, 0, 4, 4}) {
		t.Fatalf("unexpected bounds after SetPath %v", got)
	}
	if finder.calls != resolved {
		t.Fatal("static shape should not resolve anchors")
	}
}
