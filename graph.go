package rowan

import "fmt"

// parentRef is one staged parent declaration: the identifier a config named
// as its parent, and the child object that declared it. Staged refs are a
// value threaded through a single Reconcile call, never package state, so
// nothing leaks between passes.
type parentRef struct {
	parentID string
	child    *Node
}

// Graph holds the one-level parent/child associations derived from a
// snapshot's parent declarations. It is a back-reference index keyed by
// object handle, not ownership: removing a parent does not remove its
// children, and the registry remains the sole owner of every node. The
// graph is cleared and rebuilt in full on every reconciliation.
type Graph struct {
	childrenByParent map[*Node][]*Node
	parentByChild    map[*Node]*Node
}

// NewGraph returns an empty relationship graph.
func NewGraph() Graph {
	return Graph{
		childrenByParent: make(map[*Node][]*Node),
		parentByChild:    make(map[*Node]*Node),
	}
}

// ParentOf returns the child's declared parent object, or nil.
func (g Graph) ParentOf(child *Node) *Node {
	return g.parentByChild[child]
}

// ChildrenOf returns the parent's children in staging order.
// The returned slice MUST NOT be mutated by the caller.
func (g Graph) ChildrenOf(parent *Node) []*Node {
	return g.childrenByParent[parent]
}

// HasParent reports whether the object declared a parent this pass.
func (g Graph) HasParent(child *Node) bool {
	_, ok := g.parentByChild[child]
	return ok
}

// buildGraph resolves staged parent references against the sprite registry
// (only sprites may parent) and populates both directions of the graph.
//
// Resolution tries the parent identifier directly first, then retries it
// through the alias table's asset-path indirection. When both a direct
// entry and an alias exist under the same key, the direct entry wins;
// that precedence is deliberate and load-bearing. A reference neither
// path can resolve aborts the reconciliation: proceeding with a
// partially linked graph would silently misplace every descendant.
func buildGraph(staged []parentRef, sprites *Registry, aliases map[string]Alias) (Graph, error) {
	g := NewGraph()
	for _, ref := range staged {
		parent := sprites.Lookup(ref.parentID)
		if parent == nil {
			if alias, ok := aliases[ref.parentID]; ok {
				parent = sprites.Lookup(alias.AssetPath)
			}
		}
		if parent == nil {
			return Graph{}, fmt.Errorf("rowan: parent %q of %q not found in sprite registry or alias table",
				ref.parentID, ref.child.Name)
		}
		g.childrenByParent[parent] = append(g.childrenByParent[parent], ref.child)
		g.parentByChild[ref.child] = parent
	}
	// A parent cycle leaves every member without a root ancestor, so no
	// setter would ever position any of them. Fatal for the same reason an
	// unresolvable parent is.
	for _, ref := range staged {
		steps := 0
		for p := g.parentByChild[ref.child]; p != nil; p = g.parentByChild[p] {
			steps++
			if p == ref.child || steps > len(g.parentByChild) {
				return Graph{}, fmt.Errorf("rowan: parent cycle through %q", ref.child.Name)
			}
		}
	}
	return g, nil
}
