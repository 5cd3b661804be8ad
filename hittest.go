package rowan

// Hit is the reply to a point query: the topmost object found, resolved
// through the registry's reverse views back to its identifier and config.
type Hit struct {
	Identifier string
	Kind       Kind
	Config     *Config
	Node       *Node
}

// HitTest answers a point query against the live container tree in render
// (z) order. The second result is false when nothing under the point was
// hit, a normal outcome rather than an error.
//
// Traversal: children are scanned in reverse insertion order (topmost
// rendered first); the first child at a level whose axis-aligned bounds
// contain the point becomes that level's candidate and ends the sibling
// scan, recursing into the candidate if it has descendants. A single best
// candidate is kept across levels, replaced only by a strictly higher
// ZIndex. Because sibling scanning stops at the first bounds hit, z-index
// only arbitrates across levels, not among overlapping siblings at the
// same level; see the accompanying tests for the observable consequence.
func (st *Stage) HitTest(x, y float64) (Hit, bool) {
	best := hitDescend(st.root, x, y, nil)
	if best == nil {
		return Hit{}, false
	}
	for _, k := range attachableKinds {
		reg := st.drivers[k].registry
		if id, ok := reg.IdentifierOf(best); ok {
			return Hit{
				Identifier: id,
				Kind:       k,
				Config:     reg.ConfigOf(best),
				Node:       best,
			}, true
		}
	}
	// Hit a node outside the registries (user-attached); report it without
	// an identifier rather than pretending it missed.
	return Hit{Kind: best.Kind, Node: best}, true
}

// hitDescend performs one level of the traversal described on HitTest.
// Bounds containment is inclusive on all edges. The tree is rooted by
// construction, so no cycle guard is needed.
func hitDescend(n *Node, x, y float64, best *Node) *Node {
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		if !c.Visible {
			continue
		}
		if c.Bounds().Contains(x, y) {
			if best == nil || c.ZIndex > best.ZIndex {
				best = c
			}
			if c.NumChildren() > 0 {
				best = hitDescend(c, x, y, best)
			}
			break
		}
	}
	return best
}
