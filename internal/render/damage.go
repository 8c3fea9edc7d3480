package render

import (
	"image"

	"github.com/example/snapmark/internal/annotate"
	"github.com/example/snapmark/internal/geometry"
)

// DamageMargin pads every damage rectangle so anti-aliased edges are
// repainted.
const DamageMargin = 4

// Damage returns the union of rects, each padded by DamageMargin plus pad.
// Empty rectangles are ignored.
func Damage(pad int, rects ...image.Rectangle) image.Rectangle {
	var out image.Rectangle
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		out = geometry.Union(out, geometry.Inflate(r, DamageMargin+pad))
	}
	return out
}

// ItemDamage returns the area to repaint for an item, including its stroke.
func ItemDamage(it *annotate.Item) image.Rectangle {
	if it == nil {
		return image.Rectangle{}
	}
	return Damage(it.Width, it.Bounds())
}

// DamageTracker accumulates damage between paints.
type DamageTracker struct {
	r image.Rectangle
}

// Add unions rects into the pending damage.
func (d *DamageTracker) Add(rects ...image.Rectangle) {
	for _, r := range rects {
		d.r = geometry.Union(d.r, r)
	}
}

// Take returns and clears the pending damage, clipped to screen.
func (d *DamageTracker) Take(screen image.Rectangle) image.Rectangle {
	r := d.r.Intersect(screen)
	d.r = image.Rectangle{}
	return r
}

// Pending reports whether there is damage to paint.
func (d *DamageTracker) Pending() bool { return !d.r.Empty() }
