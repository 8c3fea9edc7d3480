package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/snapmark/internal/geometry"
)

const (
	// HandleDrawSize is the side of a selection grip at rest.
	HandleDrawSize = 8
	// HandleHoverSize is the side of the grip under the pointer.
	HandleHoverSize = 12
	// TextHandleSize is the diameter of a text box corner ring.
	TextHandleSize = 6
	// TextHandleHoverSize is the ring diameter under the pointer.
	TextHandleHoverSize = 10

	// BadgeMinSide is the smallest selection side that shows the size badge.
	BadgeMinSide = 10

	badgePadX = 6
	badgePadY = 3
	badgeGap  = 6
)

// dimOutside shades clip everywhere except sel.
func dimOutside(dst *image.RGBA, clip, sel image.Rectangle, c color.RGBA) {
	shade := image.NewUniform(c)
	if sel.Empty() {
		draw.Draw(dst, clip, shade, image.Point{}, draw.Over)
		return
	}
	full := dst.Bounds()
	bands := []image.Rectangle{
		image.Rect(full.Min.X, full.Min.Y, full.Max.X, sel.Min.Y),
		image.Rect(full.Min.X, sel.Max.Y, full.Max.X, full.Max.Y),
		image.Rect(full.Min.X, sel.Min.Y, sel.Min.X, sel.Max.Y),
		image.Rect(sel.Max.X, sel.Min.Y, full.Max.X, sel.Max.Y),
	}
	for _, b := range bands {
		if r := b.Intersect(clip); !r.Empty() {
			draw.Draw(dst, r, shade, image.Point{}, draw.Over)
		}
	}
}

// outline draws a one pixel border just inside r.
func outline(dst *image.RGBA, clip, r image.Rectangle, c color.RGBA) {
	if r.Empty() {
		return
	}
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(clip), src, image.Point{}, draw.Over)
	}
}

func fill(dst *image.RGBA, clip, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r.Intersect(clip), image.NewUniform(c), image.Point{}, draw.Over)
}

// selectionChrome draws the border and the eight grips of sel.
func (r *Renderer) selectionChrome(dst *image.RGBA, clip, sel image.Rectangle, hover geometry.Handle) {
	outline(dst, clip, sel, r.Theme.SelectionBorder)
	for _, h := range geometry.SelectionHandles {
		size := HandleDrawSize
		if h == hover {
			size = HandleHoverSize
		}
		g := geometry.HandleRect(sel, h, size)
		if !g.Overlaps(clip) {
			continue
		}
		fill(dst, clip, g, r.Theme.HandleFill)
		outline(dst, clip, g, r.Theme.HandleBorder)
	}
}

// BadgeText formats the selection size label.
func BadgeText(sel image.Rectangle) string {
	return fmt.Sprintf("%d × %d", sel.Dx(), sel.Dy())
}

// BadgeRect returns where the size badge for sel is drawn on screen, or an
// empty rectangle when the selection is too small to carry one. The badge
// sits above the selection when it fits and inside its top-left corner
// otherwise.
func BadgeRect(sel, screen image.Rectangle) image.Rectangle {
	if sel.Dx() < BadgeMinSide || sel.Dy() < BadgeMinSide {
		return image.Rectangle{}
	}
	face := UIFace()
	if face == nil {
		return image.Rectangle{}
	}
	w := font.MeasureString(face, BadgeText(sel)).Ceil() + 2*badgePadX
	h := face.Metrics().Height.Ceil() + 2*badgePadY
	b := image.Rect(sel.Min.X, sel.Min.Y-h-badgeGap, sel.Min.X+w, sel.Min.Y-badgeGap)
	if b.Min.Y < screen.Min.Y {
		b = b.Add(image.Pt(badgeGap, h+2*badgeGap))
	}
	if b.Max.X > screen.Max.X {
		b = b.Sub(image.Pt(b.Max.X-screen.Max.X, 0))
	}
	return b
}

func (r *Renderer) badge(dst *image.RGBA, clip, sel image.Rectangle) {
	b := BadgeRect(sel, dst.Bounds())
	if b.Empty() || !ShadowBounds(b, r.Shadow).Overlaps(clip) {
		return
	}
	DropShadow(dst, clip, b, r.Shadow)
	fill(dst, clip, b, r.Theme.BadgeBackground)
	face := UIFace()
	sub, ok := dst.SubImage(b.Intersect(clip)).(*image.RGBA)
	if !ok || sub.Bounds().Empty() {
		return
	}
	d := &font.Drawer{Dst: sub, Src: image.NewUniform(r.Theme.BadgeText), Face: face}
	d.Dot = fixed.P(b.Min.X+badgePadX, b.Min.Y+badgePadY+face.Metrics().Ascent.Ceil())
	d.DrawString(BadgeText(sel))
}

// ChromeBounds returns everything the selection decorations of sel may
// touch on screen with the panel shadow.
func ChromeBounds(sel, screen image.Rectangle) image.Rectangle {
	if sel.Empty() {
		return image.Rectangle{}
	}
	out := geometry.Inflate(sel, HandleHoverSize)
	return geometry.Union(out, ShadowBounds(BadgeRect(sel, screen), PanelShadow()))
}
