package overlay

import (
	"image"

	"github.com/example/snapmark/internal/annotate"
	"github.com/example/snapmark/internal/geometry"
	"github.com/example/snapmark/internal/render"
)

type hitKind int

const (
	hitNone hitKind = iota
	hitTextHandle
	hitSelectionHandle
	hitTextBody
	hitSelectionBody
)

type hit struct {
	kind   hitKind
	handle geometry.Handle
	item   *annotate.Item
}

// hitTest resolves what is under p. Precedence: the active text item's
// handles, other text handles, selection handles, text bodies, then the
// selection body.
func (o *Overlay) hitTest(p image.Point) hit {
	texts := o.textItems()
	active := o.active
	if o.edit != nil {
		active = o.edit.Item()
	}
	if active != nil {
		if h := o.textHandleAt(active, p); h != geometry.HandleNone {
			return hit{kind: hitTextHandle, handle: h, item: active}
		}
	}
	for _, it := range texts {
		if it == active {
			continue
		}
		if h := o.textHandleAt(it, p); h != geometry.HandleNone {
			return hit{kind: hitTextHandle, handle: h, item: it}
		}
	}
	if h := geometry.HitHandle(o.sel, p, geometry.SelectionHandles, o.cfg.HandleSize, o.cfg.HandleMargin); h != geometry.HandleNone {
		return hit{kind: hitSelectionHandle, handle: h}
	}
	for _, it := range texts {
		if p.In(geometry.Inflate(it.Box(), o.cfg.TextBodyMargin)) {
			return hit{kind: hitTextBody, item: it}
		}
	}
	if p.In(o.sel) {
		return hit{kind: hitSelectionBody}
	}
	return hit{}
}

func (o *Overlay) textHandleAt(it *annotate.Item, p image.Point) geometry.Handle {
	return geometry.HitHandle(it.Box(), p, geometry.CornerHandles, 2*o.cfg.TextHandleRadius, 0)
}

// textAt returns the topmost text item with content whose box contains p.
func (o *Overlay) textAt(p image.Point) *annotate.Item {
	for _, it := range o.textItems() {
		if it.Text != "" && p.In(it.Box()) {
			return it
		}
	}
	return nil
}

// hover updates hover feedback for a pointer at p with no gesture active.
func (o *Overlay) hover(p image.Point) image.Rectangle {
	o.pointer = p
	h := o.hitTest(p)

	var damage []image.Rectangle
	selHandle := geometry.HandleNone
	if h.kind == hitSelectionHandle {
		selHandle = h.handle
	}
	if selHandle != o.hoverHandle {
		damage = append(damage, o.handleArea(o.hoverHandle), o.handleArea(selHandle))
		o.hoverHandle = selHandle
	}

	var textItem *annotate.Item
	textHandle := geometry.HandleNone
	if h.kind == hitTextHandle {
		textItem, textHandle = h.item, h.handle
	}
	if textItem != o.hoverText || textHandle != o.hoverTextHandle {
		damage = append(damage, render.ItemDamage(o.hoverText), render.ItemDamage(textItem))
		o.hoverText, o.hoverTextHandle = textItem, textHandle
	}

	o.setCursor(o.cursorFor(h, p))
	if len(damage) == 0 {
		return image.Rectangle{}
	}
	return o.touch(damage...)
}

// refreshHover recomputes hover state at the last known pointer position.
func (o *Overlay) refreshHover() image.Rectangle {
	if o.gesture != gestureNone {
		return image.Rectangle{}
	}
	return o.hover(o.pointer)
}

func (o *Overlay) handleArea(h geometry.Handle) image.Rectangle {
	if h == geometry.HandleNone || o.sel.Empty() {
		return image.Rectangle{}
	}
	return geometry.HandleRect(o.sel, h, render.HandleHoverSize)
}

func (o *Overlay) cursorFor(h hit, p image.Point) geometry.Cursor {
	switch h.kind {
	case hitTextHandle, hitSelectionHandle:
		return geometry.CursorFor(h.handle)
	case hitTextBody:
		if o.edit != nil && h.item == o.edit.Item() && p.In(h.item.Box()) {
			return geometry.CursorText
		}
		return geometry.CursorOpenHand
	case hitSelectionBody:
		if o.tool == annotate.ToolSelect {
			return geometry.CursorOpenHand
		}
	}
	return geometry.CursorCrosshair
}

// gestureCursor is the pointer shape held for the duration of a gesture.
func (o *Overlay) gestureCursor() geometry.Cursor {
	switch o.gesture {
	case gestureDragging, gestureTextMoving:
		return geometry.CursorClosedHand
	case gestureResizing, gestureTextResizing:
		return geometry.CursorFor(o.handle)
	}
	return geometry.CursorCrosshair
}
