// Package rowan is a declarative scene-synchronization layer for [Ebitengine].
//
// Rowan keeps a persistent pool of renderable objects (sprites, vector
// shapes, filters, transitions) in agreement with a repeatedly supplied
// declarative snapshot. Callers never create or destroy objects directly:
// they describe the whole scene, and rowan reconciles the live pool against
// the description: creating objects on first appearance, recycling them
// while their identifier persists, and disposing them exactly once when it
// disappears.
//
// # Quick start
//
//	stage := rowan.NewStage(640, 480)
//	snap, err := rowan.LoadSnapshot(yamlData)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := stage.Reconcile(context.Background(), snap); err != nil {
//		log.Fatal(err)
//	}
//
// Reconcile again with a new snapshot at any time; object identity is
// preserved for identifiers that persist across snapshots.
//
// # Anchored positions
//
// Positions are declarative, never absolute pixels. A [Position] places an
// object relative to its parent frame (the canvas, or a parent sprite) as a
// fraction of the parent's size, with normalized anchor points on both the
// object and the parent:
//
//	x: {value: 0.25, anchors: {self: 0.5, parent: 0.5}}
//
// means "put my center a quarter of the parent's width to the right of the
// parent's center". The same numbers work at any canvas size.
//
// # Parenting
//
// A config may name a parent sprite; rowan derives a one-level parent/child
// graph each reconciliation and defers child layout to the parent's setter.
// Only sprites may parent; freeform shapes have no implicit frame.
//
// # Hit testing
//
// [Stage.HitTest] answers point queries against the live tree in render
// (z) order and reports the hit object's identifier and config, or an
// explicit miss.
//
// # Transitions
//
// Keyframe schedules declared in the snapshot are compiled into timelines
// (via [gween]) that animate object properties; drive them from the host
// loop with [Stage.Advance].
//
// Rowan is single-threaded by design: reconciliation, layout, transitions,
// and hit testing all run on the render-owning goroutine. Callers must
// serialize calls to [Stage.Reconcile] themselves.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package rowan
