// Package geometry holds the rectangle and handle arithmetic shared by the
// overlay state machine and the renderer. All coordinates are screen pixels.
package geometry

import "image"

// DefaultMinSize is the smallest width or height a selection may have once it
// has been produced by a drag or a resize.
const DefaultMinSize = 20

// FromPoints returns the normalized rectangle spanned by two corner points.
func FromPoints(a, b image.Point) image.Rectangle {
	return image.Rectangle{Min: a, Max: b}.Canon()
}

// RectAt returns a rectangle with its top-left corner at p.
func RectAt(p image.Point, w, h int) image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+w, p.Y+h)
}

// Constrain keeps r inside screen and enforces minSize on both sides. The
// rectangle is moved rather than shrunk; only a rectangle larger than the
// screen loses size.
func Constrain(r, screen image.Rectangle, minSize int) image.Rectangle {
	r = r.Canon()
	w, h := r.Dx(), r.Dy()
	if w < minSize {
		w = minSize
	}
	if h < minSize {
		h = minSize
	}
	if w > screen.Dx() {
		w = screen.Dx()
	}
	if h > screen.Dy() {
		h = screen.Dy()
	}
	x, y := r.Min.X, r.Min.Y
	if x < screen.Min.X {
		x = screen.Min.X
	}
	if y < screen.Min.Y {
		y = screen.Min.Y
	}
	if x+w > screen.Max.X {
		x = screen.Max.X - w
	}
	if y+h > screen.Max.Y {
		y = screen.Max.Y - h
	}
	return image.Rect(x, y, x+w, y+h)
}

// Clip intersects r with screen without enforcing a minimum size. It is used
// while a selection is still being dragged out.
func Clip(r, screen image.Rectangle) image.Rectangle {
	return r.Canon().Intersect(screen)
}

// Area returns the pixel area of r, or zero for an empty rectangle.
func Area(r image.Rectangle) int {
	if r.Empty() {
		return 0
	}
	return r.Dx() * r.Dy()
}

// Manhattan returns |dx|+|dy| between two points.
func Manhattan(a, b image.Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Inflate grows r by n pixels on every side.
func Inflate(r image.Rectangle, n int) image.Rectangle {
	return image.Rect(r.Min.X-n, r.Min.Y-n, r.Max.X+n, r.Max.Y+n)
}

// Union returns the smallest rectangle covering both a and b, ignoring empty
// inputs.
func Union(a, b image.Rectangle) image.Rectangle {
	switch {
	case a.Empty():
		return b
	case b.Empty():
		return a
	}
	return a.Union(b)
}

// Bounds returns the rectangle covering all points, inclusive of the last
// pixel. It returns an empty rectangle for no points.
func Bounds(pts []image.Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: pts[0], Max: pts[0].Add(image.Pt(1, 1))}
	for _, p := range pts[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
