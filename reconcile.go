package rowan

import (
	"context"
	"fmt"
	"sort"
)

// Reconcile brings the live object pool into agreement with snap.
//
// The pass runs in a fixed order: the asset loader is awaited first (a
// failure here leaves the live scene untouched), then each kind's registry
// is reconciled (create on first appearance, recycle while the identifier
// persists, dispose exactly once when it disappears), then the parent
// references staged during the pass are resolved into a fresh relationship
// graph, and finally objects are attached, masked, positioned, filtered,
// and transition timelines compiled.
//
// Reconcile is not reentrant and is not cancelled mid-pass: callers must
// serialize calls themselves and pause the per-frame tick for the
// duration. A factory or parent-resolution error aborts the pass; objects
// created and linked before the failure remain registered.
func (st *Stage) Reconcile(ctx context.Context, snap *Snapshot) error {
	// Snapshots built in code get the same checks LoadSnapshot applies to
	// parsed documents. Rejecting a malformed snapshot up front leaves the
	// live scene exactly as it was.
	if err := snap.validate(); err != nil {
		return fmt.Errorf("rowan: invalid snapshot: %w", err)
	}
	if st.loader != nil {
		if err := st.loader(ctx, snap); err != nil {
			return fmt.Errorf("rowan: load assets: %w", err)
		}
	}
	st.aliases = snap.Aliases

	var staged []parentRef
	for k := Kind(0); k < kindCount; k++ {
		if err := st.reconcileKind(k, snap.Configs(k), &staged); err != nil {
			return err
		}
	}

	graph, err := buildGraph(staged, st.drivers[KindSprite].registry, snap.Aliases)
	if err != nil {
		return err
	}
	st.graph = graph

	st.initialize()
	st.applyFilters()
	st.compileTransitions()
	return nil
}

// reconcileKind synchronizes one kind's registry with the snapshot's
// configs for that kind. Parent declarations are staged into the slice
// threaded through the call; nothing about parenting is global state.
func (st *Stage) reconcileKind(k Kind, cfgs map[string]*Config, staged *[]parentRef) error {
	d := st.drivers[k]

	// The tag view carries nothing across passes: it is rebuilt below from
	// this snapshot's declarations alone.
	d.registry.ResetTags()

	for _, id := range sortedKeys(cfgs) {
		cfg := cfgs[id]
		n, err := d.registry.GetOrCreate(id, cfg, d.factory)
		if err != nil {
			return fmt.Errorf("rowan: create %s %q: %w", kindNoun(k), id, err)
		}
		// Transient rendering state resets unconditionally, recycled or new.
		n.clearFilters()
		if cfg.Tag != "" {
			d.registry.RegisterTag(n, cfg.Tag)
		}
		if cfg.Parent != "" {
			*staged = append(*staged, parentRef{parentID: cfg.Parent, child: n})
		}
	}

	// Identifiers in the registry but not in the snapshot are destroyed:
	// removed from all four views, then disposed exactly once.
	for _, id := range d.registry.Identifiers() {
		if _, ok := cfgs[id]; !ok {
			if n := d.registry.Remove(id); n != nil {
				n.Dispose()
			}
		}
	}
	return nil
}

// applyFilters resolves each filter config's target selector and appends a
// filter to every matched object's applied list. The lists were cleared
// during reconcileKind, so nothing stale survives.
func (st *Stage) applyFilters() {
	reg := st.drivers[KindFilter].registry
	for _, id := range sortedIdentifiers(reg) {
		cfg := reg.ConfigOf(reg.Lookup(id))
		targets := st.selectTargets(cfg.Target)
		if len(targets) == 0 {
			debugf("filter %q: target %q matches nothing", id, cfg.Target)
			continue
		}
		f := &TintFilter{Color: cfg.Color, Amount: cfg.Amount}
		for _, t := range targets {
			t.AddFilter(f)
		}
	}
}

// compileTransitions builds a gween-backed timeline for every transition
// object, binding it to the objects its selector matches right now.
// Timelines are recompiled every pass so recycled transitions pick up new
// frames and retargeted selectors.
func (st *Stage) compileTransitions() {
	reg := st.drivers[KindTransition].registry
	for _, id := range sortedIdentifiers(reg) {
		n := reg.Lookup(id)
		cfg := reg.ConfigOf(n)
		targets := st.selectTargets(cfg.Target)
		if len(targets) == 0 {
			debugf("transition %q: target %q matches nothing", id, cfg.Target)
		}
		n.timeline = newTimeline(cfg, targets)
	}
}

// sortedKeys returns a config map's identifiers in lexical order so that
// factory calls and parent staging happen deterministically.
func sortedKeys(m map[string]*Config) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
