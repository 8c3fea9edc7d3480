package geometry

import "image"

// Handle identifies one of the eight resize grips around a rectangle.
type Handle int

const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

// DefaultHandleSize is the side length of a selection grip.
const DefaultHandleSize = 10

// SelectionHandles lists the grips drawn around a selection, in hit-test order.
var SelectionHandles = []Handle{
	HandleTopLeft, HandleTop, HandleTopRight, HandleRight,
	HandleBottomRight, HandleBottom, HandleBottomLeft, HandleLeft,
}

// CornerHandles lists the grips drawn around a text box.
var CornerHandles = []Handle{
	HandleTopLeft, HandleTopRight, HandleBottomRight, HandleBottomLeft,
}

var handleNames = map[Handle]string{
	HandleNone:        "none",
	HandleTopLeft:     "top_left",
	HandleTop:         "top",
	HandleTopRight:    "top_right",
	HandleRight:       "right",
	HandleBottomRight: "bottom_right",
	HandleBottom:      "bottom",
	HandleBottomLeft:  "bottom_left",
	HandleLeft:        "left",
}

func (h Handle) String() string {
	if n, ok := handleNames[h]; ok {
		return n
	}
	return "unknown"
}

// Anchor returns the point on r that h grabs.
func (h Handle) Anchor(r image.Rectangle) image.Point {
	cx := (r.Min.X + r.Max.X) / 2
	cy := (r.Min.Y + r.Max.Y) / 2
	switch h {
	case HandleTopLeft:
		return r.Min
	case HandleTop:
		return image.Pt(cx, r.Min.Y)
	case HandleTopRight:
		return image.Pt(r.Max.X, r.Min.Y)
	case HandleRight:
		return image.Pt(r.Max.X, cy)
	case HandleBottomRight:
		return r.Max
	case HandleBottom:
		return image.Pt(cx, r.Max.Y)
	case HandleBottomLeft:
		return image.Pt(r.Min.X, r.Max.Y)
	case HandleLeft:
		return image.Pt(r.Min.X, cy)
	}
	return image.Point{}
}

// HandleRect returns the square of side size centred on h's anchor.
func HandleRect(r image.Rectangle, h Handle, size int) image.Rectangle {
	a := h.Anchor(r)
	hs := size / 2
	return image.Rect(a.X-hs, a.Y-hs, a.X-hs+size, a.Y-hs+size)
}

// HitHandle returns the first handle in order whose grip, grown by margin,
// contains p.
func HitHandle(r image.Rectangle, p image.Point, order []Handle, size, margin int) Handle {
	if r.Empty() {
		return HandleNone
	}
	for _, h := range order {
		if p.In(Inflate(HandleRect(r, h, size), margin)) {
			return h
		}
	}
	return HandleNone
}

// Resize moves the edges grabbed by h to p while the opposite edges stay
// put. The result is normalized, so dragging past the opposite side flips
// the rectangle instead of producing a negative size.
func Resize(r image.Rectangle, h Handle, p image.Point) image.Rectangle {
	switch h {
	case HandleTopLeft:
		r.Min = p
	case HandleTop:
		r.Min.Y = p.Y
	case HandleTopRight:
		r.Min.Y, r.Max.X = p.Y, p.X
	case HandleRight:
		r.Max.X = p.X
	case HandleBottomRight:
		r.Max = p
	case HandleBottom:
		r.Max.Y = p.Y
	case HandleBottomLeft:
		r.Min.X, r.Max.Y = p.X, p.Y
	case HandleLeft:
		r.Min.X = p.X
	}
	return r.Canon()
}
