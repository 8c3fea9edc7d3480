// Package overlay implements the region selection and annotation state
// machine. An Overlay is driven from a single goroutine: the host feeds it
// pointer, key and input method events and repaints the damage each call
// reports.
package overlay

import (
	"image"
	"image/color"
	"io"
	"log"

	"github.com/example/snapmark/internal/annotate"
	"github.com/example/snapmark/internal/geometry"
	"github.com/example/snapmark/internal/render"
	"github.com/example/snapmark/internal/toolbar"
)

type gesture int

const (
	gestureNone gesture = iota
	gestureSelecting
	gestureResizing
	gestureDragging
	gestureDrawing
	gestureTextPending
	gestureTextPress
	gestureTextMoving
	gestureTextResizing
)

var gestureNames = [...]string{
	gestureNone:         "none",
	gestureSelecting:    "selecting",
	gestureResizing:     "resizing",
	gestureDragging:     "dragging",
	gestureDrawing:      "drawing",
	gestureTextPending:  "text-pending",
	gestureTextPress:    "text-press",
	gestureTextMoving:   "text-moving",
	gestureTextResizing: "text-resizing",
}

func (g gesture) String() string { return gestureNames[g] }

var _ toolbar.Actions = (*Overlay)(nil)

// Overlay is the interaction state for one capture.
type Overlay struct {
	cfg     Settings
	log     *log.Logger
	sched   Scheduler
	clip    Clipboard
	cursor  CursorSetter
	measure Measurer

	background *image.RGBA
	screen     image.Rectangle

	sel     image.Rectangle
	tool    annotate.Tool
	color   color.RGBA
	width   int
	history annotate.History

	gesture   gesture
	handle    geometry.Handle
	anchor    image.Point
	last      image.Point
	origin    image.Rectangle // selection or text box when the gesture began
	current   *annotate.Item  // shape or text box being dragged out
	target    *annotate.Item  // text item under a press, move or resize
	active    *annotate.Item  // last clicked text item
	textDrag  bool
	timer     Timer
	pressGen  int
	lastClick clickInfo

	edit     *annotate.Session
	editOrig *annotate.Item
	pending  *annotate.Item // new text item awaiting its first commit

	hoverHandle     geometry.Handle
	hoverText       *annotate.Item
	hoverTextHandle geometry.Handle
	cursorShape     geometry.Cursor
	pointer         image.Point

	toolbarVisible bool
	damage         render.DamageTracker
	result         Result
}

// New returns an overlay over background. The screen is background's
// bounds.
func New(background *image.RGBA, opts ...Option) *Overlay {
	o := &Overlay{
		log:         log.New(io.Discard, "", 0),
		measure:     render.MeasureText,
		background:  background,
		cursorShape: geometry.CursorArrow,
	}
	if background != nil {
		o.screen = background.Bounds()
	}
	WithSettings(Settings{})(o)
	for _, opt := range opts {
		opt(o)
	}
	o.setCursor(geometry.CursorCrosshair)
	o.damage.Add(o.screen)
	return o
}

// Screen returns the screen bounds.
func (o *Overlay) Screen() image.Rectangle { return o.screen }

// Selection returns the current selection; it is empty when nothing is
// selected.
func (o *Overlay) Selection() image.Rectangle { return o.sel }

// Items returns the committed items in paint order.
func (o *Overlay) Items() []*annotate.Item { return o.history.Items() }

// History exposes the undo and redo stacks.
func (o *Overlay) History() *annotate.History { return &o.history }

// Tool returns the active tool.
func (o *Overlay) Tool() annotate.Tool { return o.tool }

// Editing returns the active text session, or nil.
func (o *Overlay) Editing() *annotate.Session { return o.edit }

// Cursor returns the pointer shape last requested.
func (o *Overlay) Cursor() geometry.Cursor { return o.cursorShape }

// ToolbarVisible reports whether the action toolbar should be shown.
func (o *Overlay) ToolbarVisible() bool { return o.toolbarVisible && !o.sel.Empty() && !o.Done() }

// Done reports whether the overlay reached a terminal state.
func (o *Overlay) Done() bool { return o.result.Status != StatusActive }

// Result returns the terminal outcome. Status is StatusActive until the
// overlay is committed or cancelled.
func (o *Overlay) Result() Result { return o.result }

// TakeDamage returns the screen area changed since the last call.
func (o *Overlay) TakeDamage() image.Rectangle { return o.damage.Take(o.screen) }

// Frame returns what the renderer needs to paint the live view.
func (o *Overlay) Frame() render.Frame {
	f := render.Frame{
		Background:      o.background,
		Selection:       o.sel,
		Items:           o.history.Items(),
		Edit:            o.edit,
		HoverHandle:     o.hoverHandle,
		HoverText:       o.hoverText,
		HoverTextHandle: o.hoverTextHandle,
		ShowBadge:       !o.sel.Empty(),
	}
	switch {
	case o.current != nil:
		f.Pending = o.current
	case o.pending != nil:
		f.Pending = o.pending
	}
	return f
}

// Model returns the toolbar's view of the overlay.
func (o *Overlay) Model() toolbar.Model {
	m := toolbar.Model{
		Visible:   o.ToolbarVisible(),
		Selection: o.sel,
		Screen:    o.screen,
		Tool:      o.tool,
		Color:     o.color,
		Width:     o.width,
		CanUndo:   o.history.CanUndo(),
		CanRedo:   o.history.CanRedo(),
	}
	if o.edit != nil {
		m.Editing = true
		m.FontSize = o.edit.Item().FontSize()
	}
	return m
}

// SetTool switches the active tool.
func (o *Overlay) SetTool(t annotate.Tool) image.Rectangle {
	if o.Done() || t == o.tool {
		return image.Rectangle{}
	}
	o.tool = t
	o.log.Printf("overlay: tool %s", t)
	return o.refreshHover()
}

// SetColor sets the colour for new items and recolours the edited text.
func (o *Overlay) SetColor(c color.RGBA) image.Rectangle {
	if o.Done() {
		return image.Rectangle{}
	}
	o.color = c
	if o.edit == nil {
		return image.Rectangle{}
	}
	it := o.edit.Item()
	it.Color = c
	return o.touch(render.ItemDamage(it))
}

// SetWidth picks a stroke width preset. While editing text the preset also
// applies to the edited item and may refit its box.
func (o *Overlay) SetWidth(w int) image.Rectangle {
	if o.Done() || w <= 0 {
		return image.Rectangle{}
	}
	o.width = w
	if o.edit == nil {
		return image.Rectangle{}
	}
	it := o.edit.Item()
	before := render.ItemDamage(it)
	text := o.edit.Display().Text
	if it.ApplyPreset(w, o.measure(text, min(max(w, annotate.MinFontSize), annotate.MaxFontSize), 0)) {
		it.SetBox(geometry.Constrain(it.Box(), o.screen, o.cfg.MinSelection))
	}
	return o.touch(before, render.ItemDamage(it))
}

// SetCustomFontSize pins the font size of the edited text. Outside editing
// it only changes the width used for new items.
func (o *Overlay) SetCustomFontSize(size int) image.Rectangle {
	if o.Done() || size <= 0 {
		return image.Rectangle{}
	}
	o.width = size
	if o.edit == nil {
		return image.Rectangle{}
	}
	it := o.edit.Item()
	before := render.ItemDamage(it)
	it.SetCustomFontSize(size)
	o.fitText()
	return o.touch(before, render.ItemDamage(it))
}

// Undo reverts the most recent commit.
func (o *Overlay) Undo() image.Rectangle {
	if o.Done() {
		return image.Rectangle{}
	}
	d := o.finishEdit()
	it := o.history.Undo()
	if it == nil {
		return d
	}
	o.log.Printf("overlay: undo %s", it.Kind)
	if o.active == it {
		o.active = nil
	}
	return o.touch(d, render.ItemDamage(it))
}

// Redo re-applies the most recently undone item.
func (o *Overlay) Redo() image.Rectangle {
	if o.Done() {
		return image.Rectangle{}
	}
	d := o.finishEdit()
	it := o.history.Redo()
	if it == nil {
		return d
	}
	o.log.Printf("overlay: redo %s", it.Kind)
	return o.touch(d, render.ItemDamage(it))
}

// Confirm commits the selection for copying.
func (o *Overlay) Confirm() { o.commit(ActionCopy) }

// Save commits the selection for saving to disk.
func (o *Overlay) Save() { o.commit(ActionSave) }

// Cancel ends the overlay without a result.
func (o *Overlay) Cancel() {
	if o.Done() {
		return
	}
	o.stopLongPress()
	o.log.Printf("overlay: cancelled")
	o.result = Result{Status: StatusCancelled}
}

func (o *Overlay) commit(action Action) {
	if o.Done() {
		return
	}
	o.finishEdit()
	o.endGesture()
	if o.sel.Empty() {
		o.log.Printf("overlay: nothing selected, cancelling")
		o.result = Result{Status: StatusCancelled}
		return
	}
	img, err := render.Export(o.background, o.sel, o.history.Items())
	if err != nil {
		o.log.Printf("overlay: export: %v", err)
		o.result = Result{Status: StatusCancelled}
		return
	}
	o.log.Printf("overlay: committed %v for %s with %d items", o.sel, action, o.history.Len())
	o.result = Result{Status: StatusCommitted, Rect: o.sel, Action: action, Image: img}
}

// endGesture abandons any pointer gesture in progress.
func (o *Overlay) endGesture() {
	o.stopLongPress()
	o.gesture = gestureNone
	o.handle = geometry.HandleNone
	o.current = nil
	o.target = nil
	o.textDrag = false
}

// touch records damage for the given areas and returns it.
func (o *Overlay) touch(rects ...image.Rectangle) image.Rectangle {
	d := render.Damage(0, rects...)
	o.damage.Add(d)
	return d
}

func (o *Overlay) chrome(sel image.Rectangle) image.Rectangle {
	return render.ChromeBounds(sel, o.screen)
}

func (o *Overlay) setCursor(c geometry.Cursor) {
	if c == o.cursorShape {
		return
	}
	o.cursorShape = c
	if o.cursor != nil {
		o.cursor.SetCursor(c)
	}
}

// textItems returns the text items that can be hit, topmost first.
func (o *Overlay) textItems() []*annotate.Item {
	var out []*annotate.Item
	if o.pending != nil {
		out = append(out, o.pending)
	}
	items := o.history.Items()
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Kind == annotate.KindText {
			out = append(out, items[i])
		}
	}
	return out
}
