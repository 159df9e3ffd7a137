package drawable

import (
	"testing"

	"golang.org/x/image/math/fixed"
)

// recordingFiller logs the painting calls it receives.
type recordingFiller struct {
	events    []string
	patterns  []Pattern
	opacities []float64
	windings  []bool
}

func (r *recordingFiller) Clear() { r.events = append(r.events, "clear") }

func (r *recordingFiller) Start(a fixed.Point26_6) {}

func (r *recordingFiller) Line(b fixed.Point26_6) {}

func (r *recordingFiller) QuadBezier(b, c fixed.Point26_6) {}

func (r *recordingFiller) CubeBezier(b, c, d fixed.Point26_6) {}

func (r *recordingFiller) Stop(closeLoop bool) {}

func (r *recordingFiller) Draw() { r.events = append(r.events, "draw") }

func (r *recordingFiller) SetWinding(useNonZeroWinding bool) {
	r.windings = append(r.windings, useNonZeroWinding)
}

func (r *recordingFiller) SetColor(pattern Pattern, opacity float64) {
	r.patterns = append(r.patterns, pattern)
	r.opacities = append(r.opacities, opacity)
}

func squareShape() *DrawablePath {
	var square Path
	square.AddRect(0, 0, 10, 10)
	s := NewDrawablePath()
	s.SetPath(square)
	return s
}

func TestRenderFillThenStroke(t *testing.T) {
	s := squareShape()
	s.SetFill(NewPlainColor(0xff, 0, 0, 0xff))
	s.SetStrokeFill(NewPlainColor(0, 0xff, 0, 0xff))
	s.SetStrokeThickness(2)
	s.SetUsesNonZeroWinding(false)

	rec := new(recordingFiller)
	s.Render(RenderContext{Painter: rec, Opacity: 0.5, Transform: Identity})

	if len(rec.events) != 4 || rec.events[1] != "draw" || rec.events[3] != "draw" {
		t.Fatalf("expected two clear/draw rounds, got %v", rec.events)
	}
	if !patternsEqual(rec.patterns[0], s.MainFill()) || !patternsEqual(rec.patterns[1], s.StrokeFill()) {
		t.Fatal("the fill outline must be painted before the stroke outline")
	}
	if rec.opacities[0] != 0.5 || rec.opacities[1] != 0.5 {
		t.Fatalf("the context opacity should reach the painter, got %v", rec.opacities)
	}
	// the shape winding only applies to the fill; strokes always use non zero
	if rec.windings[0] != false || rec.windings[1] != true {
		t.Fatalf("unexpected windings %v", rec.windings)
	}
}

func TestRenderSkipsInvisibleParts(t *testing.T) {
	s := squareShape()

	rec := new(recordingFiller)
	s.Render(RenderContext{Painter: rec, Opacity: 1, Transform: Identity})
	if len(rec.events) != 2 {
		t.Fatalf("a zero width stroke should not be painted, got %v", rec.events)
	}

	s.SetFill(nil)
	rec = new(recordingFiller)
	s.Render(RenderContext{Painter: rec, Opacity: 1, Transform: Identity})
	if len(rec.events) != 0 {
		t.Fatalf("a nil fill should not be painted, got %v", rec.events)
	}
}

func TestRenderComposesGradientTransform(t *testing.T) {
	s := squareShape()
	grad := sampleGradient()
	grad.Matrix = Identity.Scale(2, 2)
	s.SetFill(grad)

	rec := new(recordingFiller)
	transform := Identity.Translate(5, 0)
	s.Render(RenderContext{Painter: rec, Opacity: 1, Transform: transform})

	painted, ok := rec.patterns[0].(Gradient)
	if !ok {
		t.Fatalf("expected a gradient, got %v", rec.patterns[0])
	}
	if painted.Matrix != transform.Mult(grad.Matrix) {
		t.Fatalf("the context transform should compose before the gradient's, got %v", painted.Matrix)
	}
	// the shape's own pattern is left untouched
	if s.MainFill().(Gradient).Matrix != grad.Matrix {
		t.Fatal("rendering should not mutate the shape pattern")
	}
}
