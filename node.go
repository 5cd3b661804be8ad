package rowan

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// nodeIDCounter is a plain counter (no atomic — rowan is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is an instantiated renderable handle. Nodes are owned exclusively by
// the registry of their kind: the reconciler creates them through injected
// factories, recycles them while their identifier persists, and disposes
// them exactly once when it disappears. A single flat struct is used for
// all kinds to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID   uint32
	Name string // identifier at creation time, for debugging only
	Kind Kind

	// Hierarchy (render containment, flat under the stage root)
	Parent   *Node
	children []*Node

	// Resolved placement. X and Y are the center of the node; Bounds
	// derives the axis-aligned extent used for hit testing.
	X, Y          float64
	Width, Height float64
	Rotation      float64

	// Appearance
	Alpha   float64
	Color   Color
	Visible bool

	// Ordering within the flat container (explicit, not nesting-derived)
	ZIndex int

	// Renderable payload (nil for filter and transition handles).
	// The image is a shared reference; rowan never deallocates it.
	image *ebiten.Image

	// Transient per-reconciliation state, cleared unconditionally on every
	// pass whether the node is new or recycled.
	filters []Filter

	// Mask target, linked by the scene initializer before positioning.
	mask *Node

	// Compiled keyframe timeline (KindTransition only).
	timeline *Timeline

	// OnDispose, if set, is invoked exactly once when the node is disposed.
	// Factories use it to release renderer-side resources.
	OnDispose func()

	disposed bool
}

// NewNode creates a bare node of the given kind. This is the building block
// for custom factories; the default factories in stage.go use it too.
func NewNode(name string, kind Kind) *Node {
	n := &Node{
		Name:    name,
		Kind:    kind,
		Alpha:   1,
		Color:   ColorWhite,
		Visible: true,
	}
	n.ID = nextNodeID()
	return n
}

// SetImage sets the ebiten image this node renders. The image is shared:
// disposing the node does not deallocate it.
func (n *Node) SetImage(img *ebiten.Image) {
	n.image = img
}

// Image returns the node's image, or nil if it has none.
func (n *Node) Image() *ebiten.Image {
	return n.image
}

// Bounds returns the node's axis-aligned extent. X/Y are the center, so the
// rect spans half the size in each direction.
func (n *Node) Bounds() Rect {
	return Rect{
		X:      n.X - n.Width/2,
		Y:      n.Y - n.Height/2,
		Width:  n.Width,
		Height: n.Height,
	}
}

// Frame returns the node's resolved frame for positioning its children.
func (n *Node) Frame() Frame {
	return Frame{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// --- Filters ---

// AddFilter appends a filter to the node's applied list. The list is
// transient: the reconciler clears it at the start of every pass.
func (n *Node) AddFilter(f Filter) {
	n.filters = append(n.filters, f)
}

// Filters returns the applied filter list. MUST NOT be mutated by the caller.
func (n *Node) Filters() []Filter {
	return n.filters
}

// clearFilters resets the transient filter list, reusing the backing array.
func (n *Node) clearFilters() {
	n.filters = n.filters[:0]
}

// --- Masks ---

// SetMask sets a mask node for this node. The mask node is itself a
// registered object; it is linked here, not owned.
func (n *Node) SetMask(maskNode *Node) {
	n.mask = maskNode
}

// Mask returns the current mask node, or nil if no mask is set.
func (n *Node) Mask() *Node {
	return n.mask
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("rowan: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("rowan: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("rowan: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list in insertion order. The returned slice
// MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it disposed, and fires
// OnDispose. Safe to call more than once; only the first call has effect.
// The reconciler calls this exactly once per removed identifier.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
	}
	n.children = nil
	n.image = nil
	n.filters = nil
	n.mask = nil
	n.timeline = nil
	if n.OnDispose != nil {
		n.OnDispose()
		n.OnDispose = nil
	}
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
