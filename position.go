package rowan

// Anchors are normalized reference points in [0, 1] along one axis:
// 0 is the left/top edge, 0.5 the center, 1 the right/bottom edge.
// Self marks the point on the placed object, Parent the point on the
// frame it is placed against.
type Anchors struct {
	Self   float64 `yaml:"self"`
	Parent float64 `yaml:"parent"`
}

// Position is a one-dimensional declarative placement. Value is the offset
// from the parent anchor to the self anchor, expressed in parent-size units
// (0.25 means a quarter of the parent's width or height). Two Positions
// compose a 2D placement; no absolute pixel values appear anywhere.
type Position struct {
	Value   float64 `yaml:"value"`
	Anchors Anchors `yaml:"anchors"`
}

// Centered is the Position whose anchors align both centers with no offset.
var Centered = Position{Anchors: Anchors{Self: 0.5, Parent: 0.5}}

// Frame describes the center and extent of whatever a Position resolves
// against: the canvas (see RootFrame) or a parent object's resolved frame.
type Frame struct {
	X, Y, Width, Height float64
}

// RootFrame returns the centered frame for a canvas of the given size.
func RootFrame(width, height float64) Frame {
	return Frame{X: width / 2, Y: height / 2, Width: width, Height: height}
}

// ResolvePosition converts a declarative Position into an absolute center
// coordinate along one axis. selfSize is the placed object's own extent on
// that axis; parent is the frame the position is relative to.
//
// The result walks from the parent's center to its left/top edge, forward
// to the parent anchor, corrects for where the self anchor sits on the
// object, and finally applies the offset scaled by the parent's extent.
// Pure function; symmetric for both axes.
func ResolvePosition(p Position, axis Axis, selfSize float64, parent Frame) float64 {
	unit := parent.Width
	center := parent.X
	if axis == AxisY {
		unit = parent.Height
		center = parent.Y
	}
	return center -
		unit/2 +
		p.Anchors.Parent*unit +
		(0.5-p.Anchors.Self)*selfSize +
		unit*p.Value
}
