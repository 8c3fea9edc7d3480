package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"

	"github.com/example/snapmark/internal/annotate"
	"github.com/example/snapmark/internal/geometry"
	"github.com/example/snapmark/internal/theme"
)

// ErrEmptySelection is returned when exporting an empty region.
var ErrEmptySelection = errors.New("selection is empty")

// Renderer paints overlay frames.
type Renderer struct {
	Theme  *theme.Theme
	Shadow ShadowOptions

	reported bool // a rasterizer failure has been logged
}

// New returns a Renderer using th, or the default theme when th is nil.
func New(th *theme.Theme) *Renderer {
	if th == nil {
		th = theme.Default()
	}
	return &Renderer{Theme: th, Shadow: PanelShadow()}
}

// Frame is the overlay state needed to paint one frame. All coordinates are
// screen coordinates matching Background's bounds.
type Frame struct {
	Background *image.RGBA
	Selection  image.Rectangle
	// Items are the committed annotations in paint order.
	Items []*annotate.Item
	// Pending is drawn last: a shape being dragged out or a new text item
	// that has not been committed yet.
	Pending *annotate.Item
	// Edit is the active text session, if any. Its item is drawn with the
	// live buffer, caret and selection.
	Edit *annotate.Session

	HoverHandle     geometry.Handle
	HoverText       *annotate.Item
	HoverTextHandle geometry.Handle
	ShowBadge       bool
}

// Draw repaints clip of dst for f. dst must share Background's bounds.
func (r *Renderer) Draw(dst *image.RGBA, clip image.Rectangle, f Frame) {
	clip = clip.Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	if f.Background != nil {
		draw.Draw(dst, clip, f.Background, clip.Min, draw.Src)
	}
	dimOutside(dst, clip, f.Selection, r.Theme.Dim)

	items := f.Items
	if f.Pending != nil {
		items = append(items[:len(items):len(items)], f.Pending)
	}
	if err := r.paintItems(dst, clip, items, &f); err != nil && !r.reported {
		r.reported = true
		log.Printf("render: %v", err)
	}

	if f.Selection.Empty() {
		return
	}
	r.selectionChrome(dst, clip, f.Selection, f.HoverHandle)
	if f.ShowBadge {
		r.badge(dst, clip, f.Selection)
	}
}

// Export flattens items over the selected part of bg. The result has a zero
// origin. With no items the pixels are an exact copy of bg within sel.
func Export(bg *image.RGBA, sel image.Rectangle, items []*annotate.Item) (*image.RGBA, error) {
	if bg == nil {
		return nil, errors.New("no background image")
	}
	sel = sel.Canon().Intersect(bg.Bounds())
	if sel.Empty() {
		return nil, ErrEmptySelection
	}
	out := image.NewRGBA(sel)
	draw.Draw(out, sel, bg, sel.Min, draw.Src)
	if len(items) > 0 {
		if err := New(nil).paintItems(out, sel, items, nil); err != nil {
			return nil, fmt.Errorf("draw annotations: %w", err)
		}
	}
	out.Rect = out.Rect.Sub(sel.Min)
	return out, nil
}

// paintItems draws items in order. Shapes are batched on a gg layer that is
// flushed before each text item so paint order is preserved. A nil frame
// paints the flattened export without editing affordances.
func (r *Renderer) paintItems(dst *image.RGBA, clip image.Rectangle, items []*annotate.Item, f *Frame) error {
	l := newLayer(dst, clip)
	defer l.close()
	for _, it := range items {
		if it == nil || !it.Bounds().Overlaps(clip) {
			continue
		}
		if it.Kind != annotate.KindText {
			l.shape(it)
			continue
		}
		l.flush()
		var edit *annotate.Session
		if f != nil && f.Edit != nil && f.Edit.Item() == it {
			edit = f.Edit
		}
		r.text(dst, clip, it, edit)
		if f != nil {
			r.textAffordances(l, it, f)
		}
	}
	l.flush()
	return l.err
}

// text draws the glyphs of a text item inside its box, plus caret,
// selection highlight and composition underline when edit is set.
func (r *Renderer) text(dst *image.RGBA, clip image.Rectangle, it *annotate.Item, edit *annotate.Session) {
	content := it.Text
	var disp annotate.Display
	if edit != nil {
		disp = edit.Display()
		content = disp.Text
	}
	box := it.Box()
	area := box.Intersect(clip)
	if area.Empty() {
		return
	}
	sub, ok := dst.SubImage(area).(*image.RGBA)
	if !ok {
		return
	}
	layout, err := LayoutText(content, it.FontSize(), max(box.Dx()-2*TextInset, 1))
	if err != nil {
		return
	}
	origin := box.Min.Add(image.Pt(TextInset, TextInset))
	if edit != nil {
		for _, span := range layout.Spans(content, disp.SelStart, disp.SelEnd) {
			fill(sub, area, span.Add(origin), r.Theme.TextSelection)
		}
	}
	if content != "" {
		layout.Draw(sub, origin, it.TextColor())
	}
	if edit == nil {
		return
	}
	for _, span := range layout.Spans(content, disp.PreeditStart, disp.PreeditEnd) {
		span = span.Add(origin)
		fill(sub, area, image.Rect(span.Min.X, span.Max.Y-1, span.Max.X, span.Max.Y), it.TextColor())
	}
	caret := layout.Caret(content, disp.Caret).Add(origin)
	fill(sub, area, image.Rect(caret.X, caret.Y, caret.X+1, caret.Y+layout.LineHeight), r.Theme.Caret)
}

// textAffordances outlines a text box and rings its corners in the live
// view.
func (r *Renderer) textAffordances(l *layer, it *annotate.Item, f *Frame) {
	box := it.Box()
	l.dashedBox(box, it.Color)
	for _, h := range geometry.CornerHandles {
		size := TextHandleSize
		if f.HoverText == it && f.HoverTextHandle == h {
			size = TextHandleHoverSize
		}
		l.ring(h.Anchor(box), size, r.Theme.TextHandle)
	}
}
