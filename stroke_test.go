package drawable

import "testing"

func TestStrokeTokens(t *testing.T) {
	for _, joint := range [...]JointStyle{MiterJoint, CurvedJoint, BevelJoint} {
		if ParseJointStyle(joint.String()) != joint {
			t.Fatalf("joint token %q does not round trip", joint)
		}
	}
	for _, cap := range [...]CapStyle{ButtCap, SquareCap, RoundCap} {
		if ParseCapStyle(cap.String()) != cap {
			t.Fatalf("cap token %q does not round trip", cap)
		}
	}
	// unrecognized tokens fall back to the defaults
	if ParseJointStyle("zigzag") != MiterJoint || ParseJointStyle("") != MiterJoint {
		t.Fatal("unexpected joint fallback")
	}
	if ParseCapStyle("zigzag") != ButtCap || ParseCapStyle("") != ButtCap {
		t.Fatal("unexpected cap fallback")
	}
}

func TestGenerateStrokeDegenerate(t *testing.T) {
	var line Path
	line.Start(toFixedP(0, 0))
	line.Line(toFixedP(10, 0))

	stroker := RasterxStroker{}
	if out := stroker.GenerateStroke(line, StrokeType{Width: 0}, Identity, strokeMiterLimit); out != nil {
		t.Fatal("zero width should yield no outline")
	}
	if out := stroker.GenerateStroke(nil, StrokeType{Width: 2}, Identity, strokeMiterLimit); out != nil {
		t.Fatal("empty path should yield no outline")
	}
}

func TestGenerateStrokeLine(t *testing.T) {
	var line Path
	line.Start(toFixedP(10, 10))
	line.Line(toFixedP(30, 10))

	stroker := RasterxStroker{}
	outline := stroker.GenerateStroke(line, StrokeType{Width: 4, Cap: ButtCap}, Identity, strokeMiterLimit)
	if len(outline) == 0 {
		t.Fatal("expected a stroke outline")
	}
	// a butt capped horizontal segment thickens to a rectangle
	if got := outline.Bounds(); !boundsNear(got, Bounds{10, 8, 20, 4}, 0.1) {
		t.Fatalf("unexpected stroke bounds %v", got)
	}
	if !outline.Contains(20, 11, true) {
		t.Fatal("point on the thickened segment reported outside")
	}
	if outline.Contains(20, 14, true) {
		t.Fatal("point beyond the stroke width reported inside")
	}
}

func TestGenerateStrokeTransform(t *testing.T) {
	var line Path
	line.Start(toFixedP(0, 0))
	line.Line(toFixedP(10, 0))

	stroker := RasterxStroker{}
	outline := stroker.GenerateStroke(line, StrokeType{Width: 2}, Identity.Translate(5, 5), strokeMiterLimit)
	if got := outline.Bounds(); !boundsNear(got, Bounds{5, 4, 10, 2}, 0.1) {
		t.Fatalf("unexpected transformed stroke bounds %v", got)
	}
}
