package drawable

import (
	"image"
	"log"

	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/drawable/attrtree"
	"github.com/benoitkugler/drawable/relpath"
)

// ErrorMode determines if the codec ignores or logs a warning when it
// meets a tree node it does not handle. Decoding never aborts on such
// nodes: they simply contribute no geometry.
type ErrorMode uint8

const (
	IgnoreErrorMode ErrorMode = iota
	WarnErrorMode
)

// ImageProvider resolves persisted image identifiers, for fill codecs
// supporting image-based patterns.
type ImageProvider interface {
	Lookup(id string) image.Image
}

// Attribute-tree schema for shapes.
const (
	// PathTreeType is the node type of an encoded shape.
	PathTreeType = "Path"

	fillNode   = "Fill"
	strokeNode = "Stroke"
	pathNode   = "Path"

	idProp             = "id"
	strokeWidthProp    = "strokeWidth"
	jointStyleProp     = "jointStyle"
	capStyleProp       = "capStyle"
	nonZeroWindingProp = "nonZeroWinding"

	point1Prop = "p1"
	point2Prop = "p2"
	point3Prop = "p3"
	modeProp   = "mode"

	moveElement  = "Move"
	closeElement = "Close"
	lineElement  = "Line"
	quadElement  = "Quad"
	cubicElement = "Cubic"
)

// Wrapper gives typed access to the attribute-tree state of a shape.
type Wrapper struct {
	State *attrtree.Node
}

func (w Wrapper) ID() string { return w.State.Str(idProp) }

func (w Wrapper) SetID(id string, undo attrtree.UndoManager) {
	w.State.SetProperty(idProp, id, undo)
}

// PathState returns the child node holding the ordered segment elements,
// creating it when absent.
func (w Wrapper) PathState(undo attrtree.UndoManager) *attrtree.Node {
	return w.State.GetOrCreateChildOfType(pathNode, undo)
}

// MainFillState returns the fill-style node, creating it when absent.
func (w Wrapper) MainFillState(undo attrtree.UndoManager) *attrtree.Node {
	return w.State.GetOrCreateChildOfType(fillNode, undo)
}

// StrokeFillState returns the stroke-fill-style node, creating it when
// absent.
func (w Wrapper) StrokeFillState(undo attrtree.UndoManager) *attrtree.Node {
	return w.State.GetOrCreateChildOfType(strokeNode, undo)
}

// StrokeType decodes the scalar stroke properties, falling back to a
// miter joint and a butt cap for unrecognized tokens.
func (w Wrapper) StrokeType() StrokeType {
	return StrokeType{
		Width: w.State.Float(strokeWidthProp),
		Joint: ParseJointStyle(w.State.Str(jointStyleProp)),
		Cap:   ParseCapStyle(w.State.Str(capStyleProp)),
	}
}

func (w Wrapper) SetStrokeType(st StrokeType, undo attrtree.UndoManager) {
	w.State.SetFloat(strokeWidthProp, st.Width, undo)
	w.State.SetProperty(jointStyleProp, st.Joint.String(), undo)
	w.State.SetProperty(capStyleProp, st.Cap.String(), undo)
}

func (w Wrapper) UsesNonZeroWinding() bool { return w.State.Bool(nonZeroWindingProp) }

func (w Wrapper) SetUsesNonZeroWinding(b bool, undo attrtree.UndoManager) {
	w.State.SetBool(nonZeroWindingProp, b, undo)
}

// NumElements returns the number of segment elements of the path state.
func (w Wrapper) NumElements() int {
	return w.State.ChildOfType(pathNode).NumChildren()
}

// ElementAt wraps the i-th segment element; the index must be in range.
func (w Wrapper) ElementAt(i int) Element {
	return Element{State: w.State.ChildOfType(pathNode).Child(i)}
}

// Element wraps one segment node of a path state and implements the
// segment-level editing operations.
type Element struct {
	State *attrtree.Node
}

// NumControlPoints returns the segment arity: 1 for Move and Line, 2 for
// Quad, 3 for Cubic, 0 for Close or foreign nodes.
func (e Element) NumControlPoints() int {
	switch e.State.Type() {
	case moveElement, lineElement:
		return 1
	case quadElement:
		return 2
	case cubicElement:
		return 3
	}
	return 0
}

func controlPointProp(index int) string {
	switch index {
	case 0:
		return point1Prop
	case 1:
		return point2Prop
	default:
		return point3Prop
	}
}

func parseRelPointProp(state *attrtree.Node, prop string) relpath.RelPoint {
	// a corrupt point falls back to the origin instead of failing
	pt, _ := relpath.ParseRelPoint(state.Str(prop))
	return pt
}

// ControlPoint returns the index-th control point. An out-of-range index
// is a caller error and panics.
func (e Element) ControlPoint(index int) relpath.RelPoint {
	if index < 0 || index >= e.NumControlPoints() {
		panic("drawable: control point index out of range")
	}
	return parseRelPointProp(e.State, controlPointProp(index))
}

// SetControlPoint replaces the index-th control point. An out-of-range
// index is a caller error and panics.
func (e Element) SetControlPoint(index int, point relpath.RelPoint, undo attrtree.UndoManager) {
	if index < 0 || index >= e.NumControlPoints() {
		panic("drawable: control point index out of range")
	}
	e.State.SetProperty(controlPointProp(index), point.String(), undo)
}

// PreviousElement returns the segment before e, which may wrap a nil
// state for the first one.
func (e Element) PreviousElement() Element {
	return Element{State: e.State.Sibling(-1)}
}

// StartPoint returns where the segment starts: its own point for a Move,
// the end of the previous segment otherwise.
func (e Element) StartPoint() relpath.RelPoint {
	if e.State == nil {
		return relpath.RelPoint{}
	}
	if e.State.Type() == moveElement {
		return e.ControlPoint(0)
	}
	return e.PreviousElement().EndPoint()
}

// EndPoint returns where the segment ends. A Close yields the default
// point, not the subpath start (historical behavior, kept as is).
func (e Element) EndPoint() relpath.RelPoint {
	switch e.State.Type() {
	case moveElement, lineElement:
		return e.ControlPoint(0)
	case quadElement:
		return e.ControlPoint(1)
	case cubicElement:
		return e.ControlPoint(2)
	}
	return relpath.RelPoint{}
}

// ModeOfEndPoint returns the smoothing hint of a Cubic element ("" by
// default).
func (e Element) ModeOfEndPoint() string { return e.State.Str(modeProp) }

// SetModeOfEndPoint sets the smoothing hint; only Cubic elements carry
// one.
func (e Element) SetModeOfEndPoint(mode string, undo attrtree.UndoManager) {
	if e.State.Type() == cubicElement {
		e.State.SetProperty(modeProp, mode, undo)
	}
}

func (e *Element) replaceWith(state *attrtree.Node, undo attrtree.UndoManager) {
	if parent := e.State.Parent(); parent != nil {
		parent.ReplaceChild(e.State, state, undo)
	}
	e.State = state
}

// ConvertToLine replaces a Quad or Cubic segment with a Line ending at
// the same end point; other segments are left untouched.
func (e *Element) ConvertToLine(undo attrtree.UndoManager) {
	switch e.State.Type() {
	case quadElement, cubicElement:
		state := attrtree.NewNode(lineElement)
		state.SetProperty(point1Prop, e.EndPoint().String(), nil)
		e.replaceWith(state, undo)
	}
}

// ConvertToCubic replaces a Line or Quad segment with a Cubic whose
// intermediate control points sit at 30% and 70% of the chord from the
// resolved start to the resolved end; the end point itself is unchanged.
func (e *Element) ConvertToCubic(finder relpath.Finder, undo attrtree.UndoManager) {
	switch e.State.Type() {
	case lineElement, quadElement:
		end := e.EndPoint()
		sr := e.StartPoint().Resolve(finder)
		er := end.Resolve(finder)

		state := attrtree.NewNode(cubicElement)
		state.SetProperty(point1Prop,
			relpath.Literal(sr.X+(er.X-sr.X)*0.3, sr.Y+(er.Y-sr.Y)*0.3).String(), nil)
		state.SetProperty(point2Prop,
			relpath.Literal(sr.X+(er.X-sr.X)*0.7, sr.Y+(er.Y-sr.Y)*0.7).String(), nil)
		state.SetProperty(point3Prop, end.String(), nil)
		e.replaceWith(state, undo)
	}
}

// ConvertToPathBreak replaces any non-Move segment with a Move to its
// resolved end point, starting a new subpath.
func (e *Element) ConvertToPathBreak(undo attrtree.UndoManager) {
	if e.State.Type() != moveElement {
		state := attrtree.NewNode(moveElement)
		state.SetProperty(point1Prop, e.EndPoint().String(), nil)
		e.replaceWith(state, undo)
	}
}

// InsertPoint is deliberately not implemented; calling it is harmless.
func (e *Element) InsertPoint(position float64, finder relpath.Finder, undo attrtree.UndoManager) {
}

// RemovePoint deletes the segment from its backing store.
func (e *Element) RemovePoint(undo attrtree.UndoManager) {
	if parent := e.State.Parent(); parent != nil {
		parent.RemoveChild(e.State, undo)
	}
}

// readRelativePath decodes the segment elements of a path state. Unknown
// element types contribute no geometry and do not interrupt decoding.
func readRelativePath(pathState *attrtree.Node, mode ErrorMode) relpath.Path {
	var out relpath.Path
	for i := 0; i < pathState.NumChildren(); i++ {
		state := pathState.Child(i)
		switch state.Type() {
		case moveElement:
			out = append(out, relpath.MoveTo(parseRelPointProp(state, point1Prop)))
		case lineElement:
			out = append(out, relpath.LineTo(parseRelPointProp(state, point1Prop)))
		case quadElement:
			out = append(out, relpath.QuadTo{
				parseRelPointProp(state, point1Prop),
				parseRelPointProp(state, point2Prop),
			})
		case cubicElement:
			out = append(out, relpath.CubicTo{
				parseRelPointProp(state, point1Prop),
				parseRelPointProp(state, point2Prop),
				parseRelPointProp(state, point3Prop),
			})
		case closeElement:
			out = append(out, relpath.Close{})
		default:
			if mode == WarnErrorMode {
				log.Printf("drawable: ignoring unknown path element %q", state.Type())
			}
		}
	}
	return out
}

// writeRelativePath replaces the children of the path state with the
// descriptor's segments.
func writeRelativePath(p relpath.Path, pathState *attrtree.Node, undo attrtree.UndoManager) {
	pathState.RemoveAllChildren(undo)
	for _, seg := range p {
		var state *attrtree.Node
		switch seg := seg.(type) {
		case relpath.MoveTo:
			state = attrtree.NewNode(moveElement)
			state.SetProperty(point1Prop, relpath.RelPoint(seg).String(), nil)
		case relpath.LineTo:
			state = attrtree.NewNode(lineElement)
			state.SetProperty(point1Prop, relpath.RelPoint(seg).String(), nil)
		case relpath.QuadTo:
			state = attrtree.NewNode(quadElement)
			state.SetProperty(point1Prop, seg[0].String(), nil)
			state.SetProperty(point2Prop, seg[1].String(), nil)
		case relpath.CubicTo:
			state = attrtree.NewNode(cubicElement)
			state.SetProperty(point1Prop, seg[0].String(), nil)
			state.SetProperty(point2Prop, seg[1].String(), nil)
			state.SetProperty(point3Prop, seg[2].String(), nil)
			state.SetProperty(modeProp, "", nil)
		case relpath.Close:
			state = attrtree.NewNode(closeElement)
		default:
			continue
		}
		pathState.AppendChild(state, undo)
	}
}

// descriptorFromPath wraps concrete geometry as a descriptor of literal
// points, for encoding fully static shapes.
func descriptorFromPath(p Path) relpath.Path {
	toRel := func(pt fixed.Point26_6) relpath.RelPoint {
		return relpath.Literal(float64(pt.X)/64, float64(pt.Y)/64)
	}
	var out relpath.Path
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			out = append(out, relpath.MoveTo(toRel(fixed.Point26_6(op))))
		case LineTo:
			out = append(out, relpath.LineTo(toRel(fixed.Point26_6(op))))
		case QuadTo:
			out = append(out, relpath.QuadTo{toRel(op[0]), toRel(op[1])})
		case CubicTo:
			out = append(out, relpath.CubicTo{toRel(op[0]), toRel(op[1]), toRel(op[2])})
		case Close:
			out = append(out, relpath.Close{})
		}
	}
	return out
}

// Encode serializes the shape to a fresh attribute tree, writing the
// retained descriptor when the shape is dynamic, and the concrete
// geometry as literal segments otherwise.
func (s *DrawablePath) Encode(images ImageProvider) *attrtree.Node {
	tree := attrtree.NewNode(PathTreeType)
	w := Wrapper{State: tree}
	w.SetID(s.name, nil)
	s.fills.WriteFill(w.MainFillState(nil), s.mainFill, nil, nil, nil, images, nil)
	s.fills.WriteFill(w.StrokeFillState(nil), s.strokeFill, nil, nil, nil, images, nil)
	w.SetStrokeType(s.strokeType, nil)
	w.SetUsesNonZeroWinding(s.useNonZeroWinding, nil)

	rel := s.relativePath
	if rel == nil {
		rel = descriptorFromPath(s.path)
	}
	writeRelativePath(rel, w.PathState(nil), nil)
	return tree
}

// Refresh replaces the in-memory state with the decoded tree snapshot,
// diffing field by field against the previous state. It returns the
// damage rectangle: the union of the old bounds (when geometry or stroke
// parameters changed) and the new bounds (when anything at all changed),
// so an unchanged snapshot yields a zero rectangle. A decoded descriptor
// with no dynamic point is discarded after resolving: static shapes keep
// concrete geometry only.
func (s *DrawablePath) Refresh(tree *attrtree.Node, images ImageProvider) Bounds {
	var damage Bounds
	w := Wrapper{State: tree}
	s.name = w.ID()

	needsRedraw := false
	newFill := s.fills.ReadFill(tree.ChildOfType(fillNode), nil, nil, nil, s.finder, images)
	if !patternsEqual(s.mainFill, newFill) {
		needsRedraw = true
		s.mainFill = newFill
	}

	newStrokeFill := s.fills.ReadFill(tree.ChildOfType(strokeNode), nil, nil, nil, s.finder, images)
	if !patternsEqual(s.strokeFill, newStrokeFill) {
		needsRedraw = true
		s.strokeFill = newStrokeFill
	}

	if winding := w.UsesNonZeroWinding(); winding != s.useNonZeroWinding {
		needsRedraw = true
		s.useNonZeroWinding = winding
	}

	newRelativePath := readRelativePath(tree.ChildOfType(pathNode), s.errorMode)

	var newPath Path
	newRelativePath.CreatePath(&newPath, s.finder)

	if !newRelativePath.ContainsAnyDynamicPoints() {
		newRelativePath = nil
	}

	newStroke := w.StrokeType()
	if s.strokeType != newStroke || !s.path.Equals(newPath) {
		damage = s.Bounds()
		s.path = newPath
		s.strokeNeedsUpdating = true
		s.strokeType = newStroke
		needsRedraw = true
	}

	s.relativePath = newRelativePath
	s.pathNeedsUpdating = false

	if needsRedraw {
		damage = damage.Union(s.Bounds())
	}
	return damage
}
