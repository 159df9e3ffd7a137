package drawable

// Filler is the painting backend contract: it accumulates one outline,
// receives its pattern, and paints it on Draw. Implementations do the
// actual rasterization (see drawraster) or translation to another format
// (see drawpdf); they need no knowledge of shapes.
type Filler interface {
	Adder

	// Clear must reset the internal state (used before painting a new outline)
	Clear()

	// Decide to use or not the NonZeroWinding rule for the current outline
	SetWinding(useNonZeroWinding bool)

	// SetColor sets the pattern for the current outline; opacity is an
	// extra multiplier in [0, 1]
	SetColor(pattern Pattern, opacity float64)

	// Draw fills the accumulated outline using the current settings
	Draw()
}

// RenderContext carries the per-frame painting parameters.
type RenderContext struct {
	Painter   Filler
	Opacity   float64 // in [0, 1]
	Transform Matrix2D
}

// Render paints the shape on the context: the fill outline first, then,
// when the stroke is visible, the stroke outline. Gradient patterns get
// the context transform composed onto their own, and the context opacity
// multiplied through.
func (s *DrawablePath) Render(ctx RenderContext) {
	s.renderOutline(ctx, s.FillPath(), s.mainFill, s.useNonZeroWinding)
	if s.IsStrokeVisible() {
		s.renderOutline(ctx, s.StrokePath(), s.strokeFill, true)
	}
}

func (s *DrawablePath) renderOutline(ctx RenderContext, outline Path, fill Pattern, nonZero bool) {
	if fill == nil {
		return
	}
	ctx.Painter.Clear()
	ctx.Painter.SetWinding(nonZero)
	outline.AddToTransformed(ctx.Painter, ctx.Transform)
	ctx.Painter.SetColor(effectiveFill(fill, ctx.Transform), ctx.Opacity)
	ctx.Painter.Draw()
}

// effectiveFill composes the context transform before the pattern's own.
func effectiveFill(p Pattern, t Matrix2D) Pattern {
	if g, ok := p.(Gradient); ok {
		g.Matrix = t.Mult(g.Matrix)
		return g
	}
	return p
}
