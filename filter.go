package rowan

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is the interface for visual effects applied to an object's
// rendered output. Applied filters live on the object's transient filter
// list, which the reconciler clears on every pass; filter configs in the
// snapshot re-append them each time. How (or whether) a renderer
// rasterizes the effect is outside this layer.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
	// Padding returns the extra pixels needed around the source to
	// accommodate the effect. Zero means no padding.
	Padding() int
}

// TintFilter blends an object's output toward a color. Amount 0 leaves the
// source untouched, 1 scales fully to Color.
type TintFilter struct {
	Color  Color
	Amount float64
}

// Apply draws src into dst with the tint's color scale.
func (f *TintFilter) Apply(src, dst *ebiten.Image) {
	a := clamp01(f.Amount)
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.Scale(
		float32(1-(1-f.Color.R)*a),
		float32(1-(1-f.Color.G)*a),
		float32(1-(1-f.Color.B)*a),
		1,
	)
	dst.DrawImage(src, op)
}

// Padding returns 0; tinting needs no extra pixels.
func (f *TintFilter) Padding() int {
	return 0
}
