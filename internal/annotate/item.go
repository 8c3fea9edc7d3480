// Package annotate models the annotation primitives drawn over a capture,
// their undo/redo history and the inline text editing session.
package annotate

import (
	"image"
	"image/color"

	"github.com/example/snapmark/internal/geometry"
)

// Kind tags the variant of an Item.
type Kind int

const (
	KindPen Kind = iota + 1
	KindRectangle
	KindCircle
	KindArrow
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindPen:
		return "pen"
	case KindRectangle:
		return "rectangle"
	case KindCircle:
		return "circle"
	case KindArrow:
		return "arrow"
	case KindText:
		return "text"
	}
	return "unknown"
}

// SizeMode selects how a text item's font size is resolved.
type SizeMode int

const (
	SizeAuto SizeMode = iota
	SizeCustom
)

// Arrow head geometry.
const (
	ArrowHeadLength = 15
	ArrowHeadAngle  = 30 // degrees either side of the shaft
)

// Item is one annotation. Points holds two corners for shapes and text
// boxes, and the recorded polyline for pen strokes.
type Item struct {
	Kind   Kind
	Color  color.RGBA
	Width  int
	Points []image.Point

	Text            string
	SizeMode        SizeMode
	CustomFontSize  int
	ManuallyResized bool
	InitialFontSize int
	// BaseHeight is the box height auto sizing derives the font from. It is
	// set when the box is drawn or resized by hand and is not changed by
	// automatic growth while typing.
	BaseHeight int
}

// NewItem returns an item of kind seeded with the press point p.
func NewItem(kind Kind, col color.RGBA, width int, p image.Point) *Item {
	it := &Item{Kind: kind, Color: col, Width: width, Points: []image.Point{p}}
	switch kind {
	case KindText:
		it.CustomFontSize = DefaultFontSize
		it.InitialFontSize = DefaultFontSize
	case KindRectangle, KindCircle, KindArrow:
		it.Points = append(it.Points, p)
	}
	return it
}

// NewTextItem returns a text item occupying box.
func NewTextItem(col color.RGBA, width int, box image.Rectangle) *Item {
	it := NewItem(KindText, col, width, box.Min)
	it.Points = append(it.Points, box.Max)
	it.BaseHeight = box.Dy()
	it.InitialFontSize = it.FontSize()
	return it
}

// DefaultTextBox is the box created by a plain click with the text tool.
func DefaultTextBox(p image.Point, width int) image.Rectangle {
	return geometry.RectAt(p, max(40, width*8), max(24, width*6))
}

// Extend records a new pointer position for an in-progress gesture. Pen
// strokes grow; every other kind moves its second corner.
func (it *Item) Extend(p image.Point) bool {
	n := len(it.Points)
	if it.Kind == KindPen {
		if n > 0 && it.Points[n-1] == p {
			return false
		}
		it.Points = append(it.Points, p)
		return true
	}
	if n < 2 {
		it.Points = append(it.Points, p)
		return true
	}
	if it.Points[n-1] == p {
		return false
	}
	it.Points[n-1] = p
	return true
}

// Start returns the first recorded point.
func (it *Item) Start() image.Point {
	if len(it.Points) == 0 {
		return image.Point{}
	}
	return it.Points[0]
}

// End returns the last recorded point.
func (it *Item) End() image.Point {
	if len(it.Points) == 0 {
		return image.Point{}
	}
	return it.Points[len(it.Points)-1]
}

// Box returns the normalized rectangle between the first and last point.
func (it *Item) Box() image.Rectangle {
	return geometry.FromPoints(it.Start(), it.End())
}

// SetBox replaces the corner points with r.
func (it *Item) SetBox(r image.Rectangle) {
	r = r.Canon()
	if len(it.Points) < 2 {
		it.Points = []image.Point{r.Min, r.Max}
		return
	}
	it.Points[0] = r.Min
	it.Points[len(it.Points)-1] = r.Max
}

// Degenerate reports whether the item has no visible extent, such as a
// shape released where it was pressed.
func (it *Item) Degenerate() bool {
	switch it.Kind {
	case KindPen:
		return len(it.Points) == 0
	case KindText:
		return false
	}
	return it.Start() == it.End()
}

// Bounds returns the screen area the item may paint, including stroke
// width and the arrow head.
func (it *Item) Bounds() image.Rectangle {
	var r image.Rectangle
	switch it.Kind {
	case KindText:
		r = it.Box()
	default:
		r = geometry.Bounds(it.Points)
	}
	pad := it.Width/2 + 2
	if it.Kind == KindArrow {
		pad += ArrowHeadLength
	}
	if it.Kind == KindText {
		pad = 8
	}
	return geometry.Inflate(r, pad)
}

// Clone returns a deep copy of it.
func (it *Item) Clone() *Item {
	cp := *it
	cp.Points = append([]image.Point(nil), it.Points...)
	return &cp
}

// TextColor returns the glyph colour for a text item: near-white becomes
// black and near-black becomes white so the text stays legible.
func (it *Item) TextColor() color.RGBA {
	l := lightness(it.Color)
	switch {
	case l > 240:
		return color.RGBA{0, 0, 0, 255}
	case l < 40:
		return color.RGBA{255, 255, 255, 255}
	}
	return it.Color
}

// lightness is the HSL lightness scaled to 0..255.
func lightness(c color.RGBA) int {
	hi := max(c.R, c.G, c.B)
	lo := min(c.R, c.G, c.B)
	return (int(hi) + int(lo)) / 2
}
