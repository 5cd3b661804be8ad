package rowan

import "github.com/hajimehoshi/ebiten/v2"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// YAML maps decode by lowercased field name: {r: 1, g: 0.5, b: 0, a: 1}.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for points and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// WhitePixel is a 1x1 white image used for solid color sprites and shapes.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Kind is the object category a declared identifier belongs to. Each kind
// has its own registry, factory, and setter; identifiers are unique within
// one kind, not across kinds.
type Kind uint8

const (
	KindSprite     Kind = iota // texture-backed rectangle, the only kind that may parent
	KindShape                  // freeform vector shape (no implicit frame)
	KindFilter                 // visual effect applied to target objects
	KindTransition             // keyframe schedule animating a target property
)

// kindCount bounds arrays indexed by Kind.
const kindCount = 4

// attachableKinds are the position-bearing kinds that live in the render tree.
var attachableKinds = [...]Kind{KindSprite, KindShape}

// String returns the snapshot document key for the kind.
func (k Kind) String() string {
	switch k {
	case KindSprite:
		return "sprites"
	case KindShape:
		return "shapes"
	case KindFilter:
		return "filters"
	case KindTransition:
		return "transitions"
	default:
		return "unknown"
	}
}

// Axis selects the horizontal or vertical component of a 2D placement.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// toRGBA converts a rowan Color to a color.RGBA (premultiplied).
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
