// Package attrtree implements the hierarchical attribute representation
// used to persist drawable shapes: typed nodes with ordered children and
// scalar properties.
// Mutations may be routed through an optional UndoManager, so that an
// external undo system can record them; the tree itself keeps no history.
package attrtree

import "strconv"

// UndoManager wraps a single mutation of the tree so an external undo
// system can record it. A nil UndoManager means the mutation is untracked.
type UndoManager interface {
	Wrap(mutation func())
}

func perform(undo UndoManager, mutation func()) {
	if undo != nil {
		undo.Wrap(mutation)
	} else {
		mutation()
	}
}

type property struct {
	name, value string
}

// Node is one element of the attribute tree: a type tag, ordered scalar
// properties and ordered children.
type Node struct {
	typ      string
	props    []property
	parent   *Node
	children []*Node
}

// NewNode returns a detached node of the given type.
func NewNode(typ string) *Node { return &Node{typ: typ} }

// Type returns the node type tag, or "" for a nil node.
func (n *Node) Type() string {
	if n == nil {
		return ""
	}
	return n.typ
}

// Parent returns the node owning n, or nil for a root node.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

func (n *Node) NumChildren() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// Child returns the i-th child; the index must be in range.
func (n *Node) Child(i int) *Node { return n.children[i] }

// IndexOf returns the position of child under n, or -1.
func (n *Node) IndexOf(child *Node) int {
	if n == nil {
		return -1
	}
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Sibling returns the node delta positions after n among its parent's
// children, or nil when out of range or detached.
func (n *Node) Sibling(delta int) *Node {
	p := n.Parent()
	i := p.IndexOf(n)
	if i < 0 || i+delta < 0 || i+delta >= p.NumChildren() {
		return nil
	}
	return p.children[i+delta]
}

// ChildOfType returns the first child with the given type tag, or nil.
func (n *Node) ChildOfType(typ string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.children {
		if c.typ == typ {
			return c
		}
	}
	return nil
}

// GetOrCreateChildOfType returns the first child with the given type,
// appending a fresh one when absent.
func (n *Node) GetOrCreateChildOfType(typ string, undo UndoManager) *Node {
	if c := n.ChildOfType(typ); c != nil {
		return c
	}
	c := NewNode(typ)
	n.AppendChild(c, undo)
	return c
}

func (n *Node) AppendChild(child *Node, undo UndoManager) {
	n.InsertChild(len(n.children), child, undo)
}

// InsertChild places child at position i under n; the index must be in
// [0, NumChildren].
func (n *Node) InsertChild(i int, child *Node, undo UndoManager) {
	perform(undo, func() {
		child.parent = n
		n.children = append(n.children, nil)
		copy(n.children[i+1:], n.children[i:])
		n.children[i] = child
	})
}

// RemoveChild detaches child from n; unknown children are ignored.
func (n *Node) RemoveChild(child *Node, undo UndoManager) {
	i := n.IndexOf(child)
	if i < 0 {
		return
	}
	perform(undo, func() {
		child.parent = nil
		n.children = append(n.children[:i], n.children[i+1:]...)
	})
}

// ReplaceChild swaps old for new at the same position, reporting whether
// old was found.
func (n *Node) ReplaceChild(old, repl *Node, undo UndoManager) bool {
	i := n.IndexOf(old)
	if i < 0 {
		return false
	}
	perform(undo, func() {
		old.parent = nil
		repl.parent = n
		n.children[i] = repl
	})
	return true
}

func (n *Node) RemoveAllChildren(undo UndoManager) {
	perform(undo, func() {
		for _, c := range n.children {
			c.parent = nil
		}
		n.children = nil
	})
}

// SetProperty sets the named scalar property, keeping the insertion order
// of properties stable.
func (n *Node) SetProperty(name, value string, undo UndoManager) {
	perform(undo, func() {
		for i := range n.props {
			if n.props[i].name == name {
				n.props[i].value = value
				return
			}
		}
		n.props = append(n.props, property{name, value})
	})
}

func (n *Node) RemoveProperty(name string, undo UndoManager) {
	perform(undo, func() {
		for i := range n.props {
			if n.props[i].name == name {
				n.props = append(n.props[:i], n.props[i+1:]...)
				return
			}
		}
	})
}

func (n *Node) RemoveAllProperties(undo UndoManager) {
	perform(undo, func() { n.props = nil })
}

// Property returns the raw value of the named property and whether it is
// present.
func (n *Node) Property(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, p := range n.props {
		if p.name == name {
			return p.value, true
		}
	}
	return "", false
}

// Str returns the named property, or "" when absent.
func (n *Node) Str(name string) string {
	v, _ := n.Property(name)
	return v
}

func (n *Node) SetFloat(name string, v float64, undo UndoManager) {
	n.SetProperty(name, strconv.FormatFloat(v, 'g', -1, 64), undo)
}

// Float returns the named property parsed as a number, or 0.
func (n *Node) Float(name string) float64 {
	v, _ := strconv.ParseFloat(n.Str(name), 64)
	return v
}

func (n *Node) SetBool(name string, v bool, undo UndoManager) {
	n.SetProperty(name, strconv.FormatBool(v), undo)
}

// Bool returns the named property parsed as a boolean, or false.
func (n *Node) Bool(name string) bool {
	v, _ := strconv.ParseBool(n.Str(name))
	return v
}

// Clone returns a detached deep copy of the node.
func (n *Node) Clone() *Node {
	out := &Node{typ: n.typ, props: append([]property(nil), n.props...)}
	for _, c := range n.children {
		cc := c.Clone()
		cc.parent = out
		out.children = append(out.children, cc)
	}
	return out
}

// Equals reports whether two subtrees have the same types, properties and
// children, in the same order.
func (n *Node) Equals(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.typ != other.typ || len(n.props) != len(other.props) ||
		len(n.children) != len(other.children) {
		return false
	}
	for i, p := range n.props {
		if other.props[i] != p {
			return false
		}
	}
	for i, c := range n.children {
		if !c.Equals(other.children[i]) {
			return false
		}
	}
	return true
}
