package rowan

import (
	"context"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// AssetLoader is the injectable hook that loads whatever external assets a
// snapshot needs (textures, spritesheets). It is invoked and awaited before
// any registry or graph mutation: if it fails, the live scene is exactly as
// it was before the Reconcile call.
type AssetLoader func(ctx context.Context, snap *Snapshot) error

// Setter materializes a resolved placement onto the underlying renderable.
// Injected per kind. A setter for a parent-capable kind is responsible for
// recursing into that object's declared children, which see the parent's
// resolved frame instead of the root frame.
type Setter func(st *Stage, n *Node, cfg *Config)

// kindDriver bundles the per-kind capability set: identity index, object
// instantiation, and placement. The reconciler, initializer, and hit tester
// stay kind-generic by going through it.
type kindDriver struct {
	registry *Registry
	factory  Factory
	setter   Setter
}

// Stage owns the live scene: one registry per kind, the flat render
// container, the relationship graph of the latest pass, and the compiled
// transition timelines.
//
// Single-threaded by design: Reconcile, Advance, Draw, and HitTest must all
// run on the render-owning goroutine, and callers must not trigger a second
// Reconcile while one is in flight.
type Stage struct {
	root    *Node
	frame   Frame
	drivers [kindCount]*kindDriver
	graph   Graph
	aliases map[string]Alias
	loader  AssetLoader
	images  map[string]*ebiten.Image
}

// NewStage creates a stage for a canvas of the given pixel size, with the
// default factories and setters installed for every kind.
func NewStage(width, height float64) *Stage {
	st := &Stage{
		root:   NewNode("root", KindSprite),
		frame:  RootFrame(width, height),
		images: make(map[string]*ebiten.Image),
	}
	for k := Kind(0); k < kindCount; k++ {
		st.drivers[k] = &kindDriver{registry: NewRegistry(k)}
	}
	st.drivers[KindSprite].factory = st.spriteFactory
	st.drivers[KindSprite].setter = framedSetter
	st.drivers[KindShape].factory = shapeFactory
	st.drivers[KindShape].setter = shapeSetter
	st.drivers[KindFilter].factory = handleFactory
	st.drivers[KindTransition].factory = handleFactory
	return st
}

// Root returns the single shared render container. Objects of the
// position-bearing kinds are attached directly under it; z-order is
// controlled by the explicit z field on configs, not by nesting.
func (st *Stage) Root() *Node {
	return st.root
}

// Frame returns the root canvas frame positions resolve against.
func (st *Stage) Frame() Frame {
	return st.frame
}

// Registry returns the identity index for one kind.
func (st *Stage) Registry(k Kind) *Registry {
	return st.drivers[k].registry
}

// Graph returns the relationship graph derived by the latest reconciliation.
func (st *Stage) Graph() Graph {
	return st.graph
}

// SetFactory overrides the object factory for one kind.
func (st *Stage) SetFactory(k Kind, f Factory) {
	st.drivers[k].factory = f
}

// SetSetter overrides the placement setter for one kind.
func (st *Stage) SetSetter(k Kind, s Setter) {
	st.drivers[k].setter = s
}

// SetLoader installs the asset loading hook run at the start of Reconcile.
func (st *Stage) SetLoader(l AssetLoader) {
	st.loader = l
}

// RegisterImage makes an ebiten image available to the default sprite
// factory under an asset path. Typically called by the AssetLoader.
func (st *Stage) RegisterImage(path string, img *ebiten.Image) {
	st.images[path] = img
}

// --- Default factories ---

// spriteFactory resolves the config's asset path to a registered image,
// falling back to the alias table and finally to the shared white pixel.
func (st *Stage) spriteFactory(identifier string, cfg *Config) (*Node, error) {
	n := NewNode(identifier, KindSprite)
	img := st.images[cfg.Path]
	if img == nil {
		if alias, ok := st.aliases[identifier]; ok {
			img = st.images[alias.AssetPath]
		}
	}
	if img == nil {
		debugf("sprite %q: no image for path %q, using white pixel", identifier, cfg.Path)
		img = WhitePixel
	}
	n.SetImage(img)
	return n, nil
}

// shapeFactory creates a solid-color node backed by the shared white pixel,
// tinted at draw time.
func shapeFactory(identifier string, cfg *Config) (*Node, error) {
	n := NewNode(identifier, KindShape)
	n.SetImage(WhitePixel)
	return n, nil
}

// handleFactory creates a bare, never-attached handle. Filter and
// transition declarations need registry identity but no renderable.
// The registry stamps the node with its own kind on store.
func handleFactory(identifier string, cfg *Config) (*Node, error) {
	return NewNode(identifier, KindFilter), nil
}

// --- Default setters ---

// framedSetter places a node against its parent's resolved frame (the
// root canvas when the relationship graph holds no parent for it) and
// then recurses into its declared children, which is what makes one-level
// parenting work: children are positioned only after the parent's own
// frame is final.
func framedSetter(st *Stage, n *Node, cfg *Config) {
	frame := st.frame
	if p := st.graph.ParentOf(n); p != nil {
		frame = p.Frame()
	}
	n.Width = cfg.Width
	n.Height = cfg.Height
	n.X = ResolvePosition(cfg.X, AxisX, n.Width, frame)
	n.Y = ResolvePosition(cfg.Y, AxisY, n.Height, frame)
	n.Rotation = cfg.Rotation
	n.ZIndex = cfg.ZIndex
	if cfg.Color != (Color{}) {
		n.Color = cfg.Color
	}
	for _, child := range st.graph.ChildrenOf(n) {
		d := st.drivers[child.Kind]
		if d.setter != nil {
			d.setter(st, child, d.registry.ConfigOf(child))
		}
	}
}

// shapeSetter is framedSetter minus the recursion (shapes may not parent,
// since a freeform shape has no well-defined implicit frame) plus the
// radius shorthand for circular extents.
func shapeSetter(st *Stage, n *Node, cfg *Config) {
	frame := st.frame
	if p := st.graph.ParentOf(n); p != nil {
		frame = p.Frame()
	}
	w, h := cfg.Width, cfg.Height
	if cfg.Radius > 0 {
		w, h = cfg.Radius*2, cfg.Radius*2
	}
	n.Width = w
	n.Height = h
	n.X = ResolvePosition(cfg.X, AxisX, w, frame)
	n.Y = ResolvePosition(cfg.Y, AxisY, h, frame)
	n.Rotation = cfg.Rotation
	n.ZIndex = cfg.ZIndex
	if cfg.Color != (Color{}) {
		n.Color = cfg.Color
	}
}

// --- Scene initialization ---

// initialize attaches every position-bearing object flat under the root
// container, links masks, and applies setters to objects the graph holds
// no parent for. Parented objects are positioned by their parent's setter
// recursion. Runs after every reconciliation.
func (st *Stage) initialize() {
	for _, k := range attachableKinds {
		reg := st.drivers[k].registry
		for _, id := range sortedIdentifiers(reg) {
			n := reg.Lookup(id)
			if n.Parent == nil {
				st.root.AddChild(n)
			}
			cfg := reg.ConfigOf(n)
			// Mask linking precedes any position or size application.
			if cfg.Mask != "" {
				mask := st.lookupObject(cfg.Mask)
				if mask == nil {
					debugf("%s %q: mask %q not registered", kindNoun(k), id, cfg.Mask)
				}
				n.SetMask(mask)
			} else {
				n.SetMask(nil)
			}
			if !st.graph.HasParent(n) {
				if s := st.drivers[k].setter; s != nil {
					s(st, n, cfg)
				}
			}
		}
	}
	// The container is flat; the explicit z field alone controls render
	// order. Keeping children z-sorted makes insertion order and paint
	// order the same thing, which hit testing relies on. Equal z keeps
	// attachment order (sorted identifiers), which is stable but carries
	// no topmost guarantee for overlapping siblings.
	sort.SliceStable(st.root.children, func(i, j int) bool {
		return st.root.children[i].ZIndex < st.root.children[j].ZIndex
	})
}

// lookupObject resolves an identifier across the position-bearing kinds,
// shapes first (masks are usually shapes), then sprites.
func (st *Stage) lookupObject(identifier string) *Node {
	if n := st.drivers[KindShape].registry.Lookup(identifier); n != nil {
		return n
	}
	return st.drivers[KindSprite].registry.Lookup(identifier)
}

// selectTargets resolves a filter/transition target selector: a direct
// identifier match across the position-bearing kinds first, then the tag
// buckets of both kinds.
func (st *Stage) selectTargets(selector string) []*Node {
	for _, k := range attachableKinds {
		if n := st.drivers[k].registry.Lookup(selector); n != nil {
			return []*Node{n}
		}
	}
	var out []*Node
	for _, k := range attachableKinds {
		out = append(out, st.drivers[k].registry.ByTag(selector)...)
	}
	return out
}

// --- Per-frame tick ---

// Advance steps every compiled transition timeline by dt seconds. Drive it
// from the host loop's update; pause it while a Reconcile is in progress.
func (st *Stage) Advance(dt float64) {
	reg := st.drivers[KindTransition].registry
	for _, id := range sortedIdentifiers(reg) {
		if n := reg.Lookup(id); n.timeline != nil {
			n.timeline.Advance(dt)
		}
	}
}

// --- Drawing ---

// Draw renders the attached objects onto screen in paint order, the
// z-sorted child order initialize maintains. Intentionally minimal:
// images are scaled to the resolved extent, rotated about the center, and
// tinted; filter and mask rasterization is the renderer's concern, not
// this layer's.
func (st *Stage) Draw(screen *ebiten.Image) {
	for _, n := range st.root.Children() {
		drawNode(screen, n)
	}
}

func drawNode(screen *ebiten.Image, n *Node) {
	if !n.Visible || n.image == nil || n.Width <= 0 || n.Height <= 0 {
		return
	}
	iw := n.image.Bounds().Dx()
	ih := n.image.Bounds().Dy()
	if iw == 0 || ih == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(n.Width/float64(iw), n.Height/float64(ih))
	op.GeoM.Translate(-n.Width/2, -n.Height/2)
	op.GeoM.Rotate(n.Rotation)
	op.GeoM.Translate(n.X, n.Y)
	op.ColorScale.Scale(
		float32(n.Color.R), float32(n.Color.G), float32(n.Color.B),
		float32(n.Color.A*n.Alpha),
	)
	screen.DrawImage(n.image, op)
}

// sortedIdentifiers returns a registry's identifiers in lexical order, so
// that staging, attachment, and tick order are deterministic even though
// the views are maps.
func sortedIdentifiers(r *Registry) []string {
	ids := r.Identifiers()
	sort.Strings(ids)
	return ids
}
