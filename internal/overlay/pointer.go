package overlay

import (
	"image"
	"time"

	"github.com/example/snapmark/internal/annotate"
	"github.com/example/snapmark/internal/geometry"
	"github.com/example/snapmark/internal/render"
)

type clickInfo struct {
	at    time.Time
	p     image.Point
	valid bool
}

// PointerDown handles a primary button press at p.
func (o *Overlay) PointerDown(p image.Point, at time.Time) image.Rectangle {
	if o.Done() {
		return image.Rectangle{}
	}
	o.pointer = p
	var damage []image.Rectangle
	if o.gesture != gestureNone {
		damage = append(damage, o.abandonGesture())
	}

	if o.edit != nil {
		it := o.edit.Item()
		if h := o.textHandleAt(it, p); h != geometry.HandleNone {
			damage = append(damage, o.beginTextResize(it, h, p))
			return o.touch(damage...)
		}
		if p.In(it.Box()) {
			o.beginTextPress(it, p)
			return o.touch(damage...)
		}
		damage = append(damage, o.finishEdit())
	}

	if o.isDoubleClick(p, at) {
		o.lastClick = clickInfo{}
		if it := o.textAt(p); it != nil {
			damage = append(damage, o.startEdit(it, false))
			return o.touch(damage...)
		}
	}
	o.lastClick = clickInfo{at: at, p: p, valid: true}

	h := o.hitTest(p)
	switch h.kind {
	case hitTextHandle:
		damage = append(damage, o.beginTextResize(h.item, h.handle, p))
	case hitSelectionHandle:
		o.beginResize(h.handle, p)
	case hitTextBody:
		o.beginTextPress(h.item, p)
	case hitSelectionBody:
		switch {
		case o.tool.Draws():
			damage = append(damage, o.beginDrawing(p))
		case o.tool == annotate.ToolText:
			o.gesture = gestureTextPending
			o.anchor = p
			o.textDrag = false
		default:
			o.beginDrag(p)
		}
	default:
		damage = append(damage, o.beginSelecting(p))
	}
	return o.touch(damage...)
}

// PointerMove handles pointer motion with or without the button held.
func (o *Overlay) PointerMove(p image.Point) image.Rectangle {
	if o.Done() {
		return image.Rectangle{}
	}
	o.pointer = p
	switch o.gesture {
	case gestureNone:
		return o.hover(p)
	case gestureSelecting:
		return o.moveSelection(geometry.Clip(geometry.FromPoints(o.anchor, p), o.screen))
	case gestureResizing:
		return o.moveSelection(geometry.Constrain(geometry.Resize(o.origin, o.handle, p), o.screen, o.cfg.MinSelection))
	case gestureDragging:
		return o.moveSelection(geometry.Constrain(o.origin.Add(p.Sub(o.anchor)), o.screen, o.cfg.MinSelection))
	case gestureDrawing:
		return o.extendCurrent(p)
	case gestureTextPending:
		if !o.textDrag {
			if geometry.Manhattan(p, o.anchor) <= o.cfg.TextDragThreshold {
				return image.Rectangle{}
			}
			o.textDrag = true
			o.current = annotate.NewItem(annotate.KindText, o.color, o.width, o.anchor)
		}
		return o.extendCurrent(p)
	case gestureTextPress:
		if geometry.Manhattan(p, o.anchor) <= o.cfg.LongPressSlop {
			return image.Rectangle{}
		}
		o.stopLongPress()
		o.gesture = gestureTextMoving
		o.setCursor(geometry.CursorClosedHand)
		return o.moveText(p)
	case gestureTextMoving:
		return o.moveText(p)
	case gestureTextResizing:
		it := o.target
		before := render.ItemDamage(it)
		r := geometry.Constrain(geometry.Resize(o.origin, o.handle, p), o.screen, o.cfg.MinSelection)
		if r == it.Box() {
			return image.Rectangle{}
		}
		it.SetBox(r)
		it.BaseHeight = r.Dy()
		return o.touch(before, render.ItemDamage(it))
	}
	return image.Rectangle{}
}

// PointerUp ends the gesture in progress.
func (o *Overlay) PointerUp(p image.Point) image.Rectangle {
	if o.Done() {
		return image.Rectangle{}
	}
	o.pointer = p
	var damage []image.Rectangle
	switch o.gesture {
	case gestureNone:
		return image.Rectangle{}
	case gestureSelecting:
		old := o.sel
		r := geometry.Clip(geometry.FromPoints(o.anchor, p), o.screen)
		if r.Empty() {
			o.sel = image.Rectangle{}
		} else {
			o.sel = geometry.Constrain(r, o.screen, o.cfg.MinSelection)
			o.toolbarVisible = true
		}
		o.log.Printf("overlay: selected %v", o.sel)
		damage = append(damage, o.chrome(old), o.chrome(o.sel))
	case gestureResizing, gestureDragging:
		o.toolbarVisible = true
		o.log.Printf("overlay: %s to %v", o.gesture, o.sel)
	case gestureDrawing:
		it := o.current
		it.Extend(p)
		damage = append(damage, render.ItemDamage(it))
		if it.Degenerate() {
			o.log.Printf("overlay: dropped empty %s", it.Kind)
		} else {
			o.history.Commit(it)
			o.log.Printf("overlay: committed %s with %d points", it.Kind, len(it.Points))
		}
		o.toolbarVisible = true
	case gestureTextPending:
		var box image.Rectangle
		if o.textDrag {
			damage = append(damage, render.ItemDamage(o.current))
			box = geometry.FromPoints(o.anchor, p)
		} else {
			box = annotate.DefaultTextBox(o.anchor, o.width)
		}
		box = geometry.Constrain(box, o.screen, o.cfg.MinSelection)
		o.current = nil
		damage = append(damage, o.startEdit(annotate.NewTextItem(o.color, o.width, box), true))
	case gestureTextPress:
		o.active = o.target
	case gestureTextMoving, gestureTextResizing:
		o.log.Printf("overlay: %s to %v", o.gesture, o.target.Box())
	}
	o.endGesture()
	damage = append(damage, o.hover(p))
	return o.touch(damage...)
}

// FireLongPress turns a pending press on a text body into a move. Hosts
// normally reach it through the Scheduler rather than calling it directly.
func (o *Overlay) FireLongPress() image.Rectangle {
	if o.Done() || o.gesture != gestureTextPress {
		return image.Rectangle{}
	}
	o.timer = nil
	o.gesture = gestureTextMoving
	o.setCursor(geometry.CursorClosedHand)
	return image.Rectangle{}
}

func (o *Overlay) isDoubleClick(p image.Point, at time.Time) bool {
	if !o.lastClick.valid {
		return false
	}
	dt := at.Sub(o.lastClick.at)
	return dt >= 0 && dt < o.cfg.DoubleClick && geometry.Manhattan(p, o.lastClick.p) < o.cfg.DoubleClickSlop
}

func (o *Overlay) beginSelecting(p image.Point) image.Rectangle {
	old := o.sel
	o.sel = image.Rectangle{Min: p, Max: p}
	o.gesture = gestureSelecting
	o.anchor = p
	o.active = nil
	o.toolbarVisible = false
	o.hoverHandle = geometry.HandleNone
	o.setCursor(geometry.CursorCrosshair)
	return o.chrome(old)
}

func (o *Overlay) beginResize(h geometry.Handle, p image.Point) {
	o.gesture = gestureResizing
	o.handle = h
	o.anchor = p
	o.origin = o.sel
	o.toolbarVisible = false
	o.setCursor(o.gestureCursor())
}

func (o *Overlay) beginDrag(p image.Point) {
	o.gesture = gestureDragging
	o.anchor = p
	o.origin = o.sel
	o.toolbarVisible = false
	o.setCursor(o.gestureCursor())
}

func (o *Overlay) beginDrawing(p image.Point) image.Rectangle {
	o.gesture = gestureDrawing
	o.anchor = p
	o.current = annotate.NewItem(o.tool.Kind(), o.color, o.width, p)
	o.setCursor(geometry.CursorCrosshair)
	return render.ItemDamage(o.current)
}

func (o *Overlay) beginTextPress(it *annotate.Item, p image.Point) {
	o.gesture = gestureTextPress
	o.target = it
	o.anchor = p
	o.origin = it.Box()
	o.startLongPress()
}

func (o *Overlay) beginTextResize(it *annotate.Item, h geometry.Handle, p image.Point) image.Rectangle {
	o.gesture = gestureTextResizing
	o.target = it
	o.handle = h
	o.anchor = p
	o.origin = it.Box()
	o.active = it
	it.ManuallyResized = true
	o.toolbarVisible = false
	o.setCursor(o.gestureCursor())
	return render.ItemDamage(it)
}

// abandonGesture ends a gesture whose release was never delivered. Shapes
// being drawn are dropped and the selection keeps its current rectangle.
func (o *Overlay) abandonGesture() image.Rectangle {
	var d image.Rectangle
	if o.current != nil {
		d = render.ItemDamage(o.current)
	}
	if o.gesture == gestureSelecting {
		if o.sel.Empty() {
			o.sel = image.Rectangle{}
		} else {
			o.sel = geometry.Constrain(o.sel, o.screen, o.cfg.MinSelection)
		}
		d = geometry.Union(d, o.chrome(o.sel))
	}
	o.endGesture()
	return d
}

func (o *Overlay) moveSelection(r image.Rectangle) image.Rectangle {
	old := o.sel
	if r == old {
		return image.Rectangle{}
	}
	o.sel = r
	return o.touch(o.chrome(old), o.chrome(r), old, r)
}

func (o *Overlay) extendCurrent(p image.Point) image.Rectangle {
	it := o.current
	before := render.ItemDamage(it)
	if it.Kind == annotate.KindPen {
		n := len(it.Points)
		if !it.Extend(p) {
			return image.Rectangle{}
		}
		return o.touch(render.Damage(it.Width, geometry.Bounds(it.Points[max(n-1, 0):])))
	}
	if !it.Extend(p) {
		return image.Rectangle{}
	}
	return o.touch(before, render.ItemDamage(it))
}

func (o *Overlay) moveText(p image.Point) image.Rectangle {
	it := o.target
	before := render.ItemDamage(it)
	box := geometry.Constrain(o.origin.Add(p.Sub(o.anchor)), o.screen, o.cfg.MinSelection)
	if box == it.Box() {
		return image.Rectangle{}
	}
	it.SetBox(box)
	return o.touch(before, render.ItemDamage(it))
}
