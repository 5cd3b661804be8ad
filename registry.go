package rowan

// Factory instantiates the underlying renderable for one identifier.
// Injected per kind; it is the only point at which a new Node is created,
// and it is called at most once per identifier per reconciliation.
type Factory func(identifier string, cfg *Config) (*Node, error)

// Registry is the per-kind identity index: four consistent views over the
// same object set: identifier→object, tag→objects, object→config, and
// object→identifier. Every object present in one view is present in all
// four. The registry owns its objects but never disposes them; disposal is
// the reconciler's responsibility after removal.
type Registry struct {
	kind    Kind
	byID    map[string]*Node
	byTag   map[string][]*Node
	configs map[*Node]*Config
	ids     map[*Node]string
}

// NewRegistry creates an empty registry for one object kind.
func NewRegistry(kind Kind) *Registry {
	return &Registry{
		kind:    kind,
		byID:    make(map[string]*Node),
		byTag:   make(map[string][]*Node),
		configs: make(map[*Node]*Config),
		ids:     make(map[*Node]string),
	}
}

// Kind returns the object kind this registry indexes.
func (r *Registry) Kind() Kind {
	return r.kind
}

// GetOrCreate returns the existing object for identifier if present,
// refreshing its config view; otherwise it calls factory exactly once,
// stores the result under all four views, and returns it. A factory error
// propagates unchanged; a broken renderable must not be silently skipped.
func (r *Registry) GetOrCreate(identifier string, cfg *Config, factory Factory) (*Node, error) {
	if n, ok := r.byID[identifier]; ok {
		r.configs[n] = cfg
		return n, nil
	}
	n, err := factory(identifier, cfg)
	if err != nil {
		return nil, err
	}
	n.Kind = r.kind
	r.byID[identifier] = n
	r.configs[n] = cfg
	r.ids[n] = identifier
	return n, nil
}

// RegisterTag appends the object to the tag's bucket, creating the bucket
// if absent. Tags are many-to-many: one object may carry several tags and
// one tag may cover several objects.
func (r *Registry) RegisterTag(n *Node, tag string) {
	r.byTag[tag] = append(r.byTag[tag], n)
}

// Remove deletes the object registered under identifier from all four
// views and returns it for disposal by the caller. Returns nil if the
// identifier is not registered.
func (r *Registry) Remove(identifier string) *Node {
	n, ok := r.byID[identifier]
	if !ok {
		return nil
	}
	delete(r.byID, identifier)
	delete(r.configs, n)
	delete(r.ids, n)
	for tag, bucket := range r.byTag {
		for i, b := range bucket {
			if b == n {
				copy(bucket[i:], bucket[i+1:])
				bucket[len(bucket)-1] = nil
				r.byTag[tag] = bucket[:len(bucket)-1]
				break
			}
		}
	}
	return n
}

// Lookup returns the object registered under identifier, or nil.
func (r *Registry) Lookup(identifier string) *Node {
	return r.byID[identifier]
}

// ByTag returns the objects registered under tag, in registration order.
// The returned slice MUST NOT be mutated by the caller.
func (r *Registry) ByTag(tag string) []*Node {
	return r.byTag[tag]
}

// ConfigOf returns the config most recently associated with the object,
// or nil if the object is not registered.
func (r *Registry) ConfigOf(n *Node) *Config {
	return r.configs[n]
}

// IdentifierOf returns the identifier the object is registered under.
// The second result is false if the object is not registered.
func (r *Registry) IdentifierOf(n *Node) (string, bool) {
	id, ok := r.ids[n]
	return id, ok
}

// Len returns the number of registered objects.
func (r *Registry) Len() int {
	return len(r.byID)
}

// Identifiers returns the registered identifiers in unspecified order.
func (r *Registry) Identifiers() []string {
	out := make([]string, 0, len(r.byID))
	for id := range r.byID {
		out = append(out, id)
	}
	return out
}

// ResetTags clears the tag view. The reconciler calls this at the start of
// every pass and rebuilds the view from that pass's registrations alone,
// trading an O(n) rebuild for the impossibility of stale-tag entries.
func (r *Registry) ResetTags() {
	clear(r.byTag)
}
