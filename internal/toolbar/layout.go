package toolbar

import (
	"image"

	"github.com/example/snapmark/internal/render"
)

// Metrics of the panel in pixels.
const (
	ButtonSize = 28
	Padding    = 4
	Spacing    = 2
	GroupGap   = 8
	// Gap separates the panel from the selection edge.
	Gap = 8

	entryPad   = 6
	entryWidth = 200
)

// Place positions a panel of size next to sel: below it when there is
// room, above it otherwise, and inside its bottom edge when neither fits.
// The result is kept on screen.
func Place(size image.Point, sel, screen image.Rectangle) image.Rectangle {
	x := sel.Max.X - size.X
	y := sel.Max.Y + Gap
	if y+size.Y > screen.Max.Y {
		y = sel.Min.Y - Gap - size.Y
		if y < screen.Min.Y {
			y = sel.Max.Y - Gap - size.Y
		}
	}
	x = max(screen.Min.X, min(x, screen.Max.X-size.X))
	y = max(screen.Min.Y, min(y, screen.Max.Y-size.Y))
	return image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x+size.X, y+size.Y)}
}

// Layout positions the toolbar and its buttons for m and returns the
// screen area that needs repainting.
func (t *Toolbar) Layout(m Model) image.Rectangle {
	before := t.Bounds()
	prevRect, prevModel := t.rect, t.model
	t.model = m
	if !m.Visible || m.Selection.Empty() {
		t.rect = image.Rectangle{}
		t.buttons = t.buttons[:0]
		t.entry = entryNone
		t.hover, t.pressed = -1, -1
		if prevRect.Empty() {
			return image.Rectangle{}
		}
		return before
	}

	rows := [][]Button{t.main}
	second := append([]Button(nil), t.swatches...)
	second = append(second, t.hexBtn)
	widths := t.strokes
	if m.textMode() {
		widths = t.sizes
	}
	second = append(second, widths...)
	second = append(second, t.sizeBtn)
	if t.entry == entryNone {
		rows = append(rows, second)
	}

	size := image.Pt(0, Padding)
	for _, row := range rows {
		size.X = max(size.X, rowWidth(row))
		size.Y += ButtonSize + Spacing
	}
	if t.entry != entryNone {
		size.X = max(size.X, entryWidth+2*Padding)
		size.Y += ButtonSize + Spacing
	}
	size.X += 2 * Padding
	size.Y += Padding - Spacing

	t.rect = Place(size, m.Selection, m.Screen)
	t.buttons = t.buttons[:0]
	y := t.rect.Min.Y + Padding
	for _, row := range rows {
		x := t.rect.Min.X + Padding
		for i, b := range row {
			if i > 0 && groupBreak(row[i-1], b) {
				x += GroupGap - Spacing
			}
			b.SetRect(image.Rect(x, y, x+ButtonSize, y+ButtonSize))
			t.buttons = append(t.buttons, b)
			x += ButtonSize + Spacing
		}
		y += ButtonSize + Spacing
	}
	t.entryRect = image.Rectangle{}
	if t.entry != entryNone {
		t.entryRect = image.Rect(t.rect.Min.X+Padding, y, t.rect.Max.X-Padding, y+ButtonSize)
	}
	if t.hover >= len(t.buttons) {
		t.hover = -1
	}
	if t.pressed >= len(t.buttons) {
		t.pressed = -1
	}

	if t.rect == prevRect && m == prevModel {
		return image.Rectangle{}
	}
	return render.Damage(0, before, t.Bounds())
}

func rowWidth(row []Button) int {
	w := 0
	for i, b := range row {
		if i > 0 {
			w += Spacing
			if groupBreak(row[i-1], b) {
				w += GroupGap - Spacing
			}
		}
		w += ButtonSize
	}
	return w
}

// groupBreak reports whether a gap separates a from b.
func groupBreak(a, b Button) bool {
	switch a.(type) {
	case *ToolButton:
		_, same := b.(*ToolButton)
		return !same
	case *EntryButton:
		return true
	}
	if ab, ok := a.(*ActionButton); ok {
		if bb, ok := b.(*ActionButton); ok {
			return ab.icon == "redo" && bb.icon == "copy"
		}
	}
	return false
}
