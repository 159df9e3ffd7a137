package drawable

import "github.com/benoitkugler/drawable/relpath"

// miter cutoff used when generating stroke outlines
const strokeMiterLimit = 4.0

// DrawablePath is an editable shape: a path with independent fill and
// stroke styling. Its canonical geometry is either a retained relative
// descriptor (when it has dynamic points) or concrete geometry only.
//
// The fill and stroke outlines are cached and recomputed lazily on first
// read after an invalidation; the stroke outline is only ever generated
// from up-to-date fill geometry. DrawablePath is not safe for concurrent
// use.
type DrawablePath struct {
	name string

	mainFill          Pattern
	strokeFill        Pattern
	strokeType        StrokeType
	useNonZeroWinding bool

	relativePath relpath.Path // nil for fully static shapes
	path         Path         // resolved fill outline
	stroke       Path         // derived stroke outline

	pathNeedsUpdating   bool
	strokeNeedsUpdating bool

	// collaborators, borrowed from the owner
	finder    relpath.Finder
	stroker   StrokeGenerator
	fills     FillCodec
	errorMode ErrorMode
}

// NewDrawablePath returns an empty shape filled and stroked in black,
// with a zero-width (invisible) stroke.
func NewDrawablePath() *DrawablePath {
	return &DrawablePath{
		mainFill:            NewPlainColor(0, 0, 0, 0xff),
		strokeFill:          NewPlainColor(0, 0, 0, 0xff),
		useNonZeroWinding:   true,
		pathNeedsUpdating:   true,
		strokeNeedsUpdating: true,
		stroker:             RasterxStroker{},
		fills:               DefaultFillCodec{},
	}
}

func (s *DrawablePath) Name() string        { return s.name }
func (s *DrawablePath) SetName(name string) { s.name = name }

// SetNamedPointFinder sets the resolver used for dynamic control points.
// A nil finder makes named references resolve to the origin.
func (s *DrawablePath) SetNamedPointFinder(f relpath.Finder) { s.finder = f }

// SetStrokeGenerator replaces the stroke-outline generator; passing nil
// restores the default rasterx-backed one.
func (s *DrawablePath) SetStrokeGenerator(g StrokeGenerator) {
	if g == nil {
		g = RasterxStroker{}
	}
	s.stroker = g
	s.strokeNeedsUpdating = true
}

// SetFillCodec replaces the fill-style codec used by Encode and Refresh;
// passing nil restores the default.
func (s *DrawablePath) SetFillCodec(c FillCodec) {
	if c == nil {
		c = DefaultFillCodec{}
	}
	s.fills = c
}

// SetErrorMode says whether Refresh logs unrecognized path elements.
func (s *DrawablePath) SetErrorMode(mode ErrorMode) { s.errorMode = mode }

// SetPath replaces the geometry with a fixed outline, dropping any
// retained descriptor.
func (s *DrawablePath) SetPath(newPath Path) {
	s.path = newPath.Clone()
	s.relativePath = nil
	s.pathNeedsUpdating = true
	s.strokeNeedsUpdating = true
}

// SetRelativePath replaces the geometry with a descriptor, resolved
// lazily against the named-point finder.
func (s *DrawablePath) SetRelativePath(newPath relpath.Path) {
	s.relativePath = newPath.Clone()
	s.pathNeedsUpdating = true
	s.strokeNeedsUpdating = true
}

// SetFill sets the pattern painting the path interior.
func (s *DrawablePath) SetFill(fill Pattern) { s.mainFill = fill }

// SetStrokeFill sets the pattern painting the stroke outline.
func (s *DrawablePath) SetStrokeFill(fill Pattern) { s.strokeFill = fill }

func (s *DrawablePath) MainFill() Pattern      { return s.mainFill }
func (s *DrawablePath) StrokeFill() Pattern    { return s.strokeFill }
func (s *DrawablePath) StrokeType() StrokeType { return s.strokeType }

// SetStrokeType sets the stroke parameters, invalidating the stroke
// outline but not the fill geometry.
func (s *DrawablePath) SetStrokeType(st StrokeType) {
	s.strokeType = st
	s.strokeNeedsUpdating = true
}

// SetStrokeThickness changes the stroke width, keeping joint and cap.
func (s *DrawablePath) SetStrokeThickness(thickness float64) {
	st := s.strokeType
	st.Width = thickness
	s.SetStrokeType(st)
}

func (s *DrawablePath) UsesNonZeroWinding() bool { return s.useNonZeroWinding }

func (s *DrawablePath) SetUsesNonZeroWinding(b bool) { s.useNonZeroWinding = b }

// InvalidatePoints marks both cached outlines stale, typically after an
// anchor referenced by the descriptor has moved.
func (s *DrawablePath) InvalidatePoints() {
	s.pathNeedsUpdating = true
	s.strokeNeedsUpdating = true
}

func (s *DrawablePath) updatePath() {
	if !s.pathNeedsUpdating {
		return
	}
	s.pathNeedsUpdating = false
	if s.relativePath != nil {
		s.path.Clear()
		s.relativePath.CreatePath(&s.path, s.finder)
		s.strokeNeedsUpdating = true
	}
}

func (s *DrawablePath) updateStroke() {
	if !s.strokeNeedsUpdating {
		return
	}
	s.updatePath()
	s.strokeNeedsUpdating = false
	s.stroke = s.stroker.GenerateStroke(s.path, s.strokeType, Identity, strokeMiterLimit)
}

// FillPath returns the resolved fill outline, recomputing it from the
// descriptor when stale.
func (s *DrawablePath) FillPath() Path {
	s.updatePath()
	return s.path
}

// StrokePath returns the stroke outline, regenerating it when stale. The
// fill geometry is brought up to date first.
func (s *DrawablePath) StrokePath() Path {
	s.updateStroke()
	return s.stroke
}

// IsStrokeVisible reports whether the stroke takes part in rendering,
// bounds and hit-testing.
func (s *DrawablePath) IsStrokeVisible() bool {
	return s.strokeType.Width > 0 && s.strokeFill != nil && !s.strokeFill.IsInvisible()
}

// Bounds returns the extent of the shape: the stroke outline's when the
// stroke is visible (it encloses the fill outline for any positive
// thickness), the fill outline's otherwise.
func (s *DrawablePath) Bounds() Bounds {
	if s.IsStrokeVisible() {
		return s.StrokePath().Bounds()
	}
	return s.FillPath().Bounds()
}

// HitTest reports whether the point lies inside the fill outline, or
// inside the stroke outline when the stroke is visible.
func (s *DrawablePath) HitTest(x, y float64) bool {
	return s.FillPath().Contains(x, y, s.useNonZeroWinding) ||
		(s.IsStrokeVisible() && s.StrokePath().Contains(x, y, true))
}

// Clone returns an independent deep copy; its caches are forced to
// recompute on first read.
func (s *DrawablePath) Clone() *DrawablePath {
	c := *s
	c.mainFill = clonePattern(s.mainFill)
	c.strokeFill = clonePattern(s.strokeFill)
	c.relativePath = s.relativePath.Clone()
	c.path = s.path.Clone()
	c.stroke = nil
	c.pathNeedsUpdating = true
	c.strokeNeedsUpdating = true
	return &c
}
