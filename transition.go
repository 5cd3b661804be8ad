package rowan

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Timeline is a compiled keyframe schedule: one property, one or more
// target objects, and a gween sequence with one tween per keyframe
// segment. The reconciler compiles a Timeline for every transition config
// and recompiles on every pass, so recycled transitions pick up new frames
// and selectors.
//
// There is no global animation manager — the host loop calls
// [Stage.Advance], which steps every timeline.
type Timeline struct {
	seq      *gween.Sequence
	targets  []*Node
	property string
	current  int // index of the keyframe segment being played
	segments int
	total    float64
	repeat   bool
	Done     bool
}

// newTimeline compiles a validated transition config against the objects
// its selector matched at reconciliation time. Times are seconds; each
// consecutive keyframe pair becomes one linear tween.
func newTimeline(cfg *Config, targets []*Node) *Timeline {
	tweens := make([]*gween.Tween, 0, len(cfg.Frames)-1)
	for i := 0; i+1 < len(cfg.Frames); i++ {
		dur := float32(cfg.Times[i+1] - cfg.Times[i])
		tweens = append(tweens, gween.New(
			float32(cfg.Frames[i]), float32(cfg.Frames[i+1]), dur, ease.Linear,
		))
	}
	seq := gween.NewSequence(tweens...)
	if cfg.Repeat {
		seq.SetLoop(-1)
	}
	return &Timeline{
		seq:      seq,
		targets:  targets,
		property: cfg.Property,
		segments: len(tweens),
		total:    cfg.Times[len(cfg.Times)-1] - cfg.Times[0],
		repeat:   cfg.Repeat,
	}
}

// Advance steps the timeline by dt seconds and writes the interpolated
// value onto every live target. Disposed targets are skipped, not removed:
// target identity belongs to the registry, not to the timeline.
func (tl *Timeline) Advance(dt float64) {
	if tl.Done {
		return
	}
	value, segmentDone, seqDone := tl.seq.Update(float32(dt))
	for _, n := range tl.targets {
		if !n.IsDisposed() {
			applyProperty(n, tl.property, float64(value))
		}
	}
	if segmentDone {
		tl.current++
		if tl.repeat && tl.current >= tl.segments {
			tl.current = 0
		}
	}
	if seqDone && !tl.repeat {
		tl.Done = true
	}
}

// CurrentFrame returns the index of the keyframe segment currently playing.
func (tl *Timeline) CurrentFrame() int {
	return tl.current
}

// TotalDuration returns the schedule's span in seconds, one repeat cycle
// when looping.
func (tl *Timeline) TotalDuration() float64 {
	return tl.total
}

// applyProperty writes an interpolated value onto one animatable field.
// Unknown properties are reported under debug mode and otherwise ignored;
// a typo in a snapshot should not take the frame loop down.
func applyProperty(n *Node, property string, v float64) {
	switch property {
	case "x":
		n.X = v
	case "y":
		n.Y = v
	case "width":
		n.Width = v
	case "height":
		n.Height = v
	case "rotation":
		n.Rotation = v
	case "alpha":
		n.Alpha = v
	default:
		debugf("transition property %q not animatable", property)
	}
}
