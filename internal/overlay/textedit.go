package overlay

import (
	"image"

	"github.com/example/snapmark/internal/annotate"
	"github.com/example/snapmark/internal/geometry"
	"github.com/example/snapmark/internal/render"
)

// Room left around text when a box grows to fit it.
const textPadding = 20

// startEdit opens an inline editor on it, committing any other edit first.
func (o *Overlay) startEdit(it *annotate.Item, created bool) image.Rectangle {
	var d image.Rectangle
	if o.edit != nil {
		if o.edit.Item() == it {
			return image.Rectangle{}
		}
		d = o.finishEdit()
	}
	o.edit = annotate.NewSession(it, created)
	o.editOrig = it.Clone()
	if created {
		o.pending = it
	}
	o.active = it
	o.toolbarVisible = !o.sel.Empty()
	o.setCursor(geometry.CursorText)
	o.log.Printf("overlay: editing text at %v", it.Box())
	return geometry.Union(d, render.ItemDamage(it))
}

// finishEdit commits the edit in progress. Blank text is never kept: a new
// item is dropped and an existing one leaves the history without becoming
// redoable.
func (o *Overlay) finishEdit() image.Rectangle {
	if o.edit == nil {
		return image.Rectangle{}
	}
	s := o.edit
	it := s.Item()
	before := render.ItemDamage(it)
	s.ClearPreedit()
	o.edit, o.editOrig, o.pending = nil, nil, nil

	if s.Blank() {
		if o.active == it {
			o.active = nil
		}
		if !s.Created() {
			o.history.Discard(it)
		}
		o.log.Printf("overlay: dropped blank text")
	} else {
		it.Text = s.Text()
		if s.Created() {
			o.history.Commit(it)
		}
		o.log.Printf("overlay: committed text %q", it.Text)
	}
	o.toolbarVisible = !o.sel.Empty()
	d := geometry.Union(before, render.ItemDamage(it))
	return geometry.Union(d, o.refreshHover())
}

// discardEdit abandons the edit in progress. A new item disappears and an
// existing one returns to the state it had when editing began.
func (o *Overlay) discardEdit() image.Rectangle {
	if o.edit == nil {
		return image.Rectangle{}
	}
	s := o.edit
	it := s.Item()
	before := render.ItemDamage(it)
	if s.Created() {
		if o.active == it {
			o.active = nil
		}
	} else if o.editOrig != nil {
		*it = *o.editOrig
	}
	o.edit, o.editOrig, o.pending = nil, nil, nil
	o.toolbarVisible = !o.sel.Empty()
	o.log.Printf("overlay: text edit cancelled")
	d := geometry.Union(before, render.ItemDamage(it))
	return geometry.Union(d, o.refreshHover())
}

// editOp applies fn to the session and grows the box to fit the result.
func (o *Overlay) editOp(fn func(s *annotate.Session) bool) image.Rectangle {
	if o.edit == nil {
		return image.Rectangle{}
	}
	it := o.edit.Item()
	before := render.ItemDamage(it)
	if !fn(o.edit) {
		return image.Rectangle{}
	}
	o.fitText()
	return o.touch(before, render.ItemDamage(it))
}

// fitText grows the edited box so its text stays visible. The box never
// shrinks, and boxes sized by hand keep their size.
func (o *Overlay) fitText() {
	if o.edit == nil {
		return
	}
	it := o.edit.Item()
	text := o.edit.Display().Text
	if it.ManuallyResized || text == "" {
		return
	}
	size := it.FontSize()
	box := it.Box()

	w := max(box.Dx(), o.measure(text, size, 0).X+textPadding)
	w = max(box.Dx(), min(w, o.screen.Max.X-box.Min.X))
	wrapped := o.measure(text, size, w-2*render.TextInset)
	h := max(box.Dy(), wrapped.Y+textPadding)
	if w == box.Dx() && h == box.Dy() {
		return
	}
	it.SetBox(geometry.Constrain(geometry.RectAt(box.Min, w, h), o.screen, o.cfg.MinSelection))
}

func (o *Overlay) copySelection() bool {
	s := o.edit
	if o.clip == nil || !s.HasSelection() {
		return false
	}
	if err := o.clip.WriteText(s.SelectedText()); err != nil {
		o.log.Printf("overlay: clipboard write: %v", err)
		return false
	}
	return true
}

func (o *Overlay) paste() image.Rectangle {
	if o.clip == nil {
		return image.Rectangle{}
	}
	text, err := o.clip.ReadText()
	if err != nil {
		o.log.Printf("overlay: clipboard read: %v", err)
		return image.Rectangle{}
	}
	if text == "" {
		return image.Rectangle{}
	}
	return o.editOp(func(s *annotate.Session) bool { return s.Insert(text) })
}

// Compose updates the input method composition shown at the caret.
func (o *Overlay) Compose(preedit string, cursor int) image.Rectangle {
	if o.Done() || o.edit == nil {
		return image.Rectangle{}
	}
	return o.editOp(func(s *annotate.Session) bool {
		old, oldCursor := s.Preedit()
		s.SetPreedit(preedit, cursor)
		now, nowCursor := s.Preedit()
		return old != now || oldCursor != nowCursor
	})
}

// CommitText inserts text committed by the input method or typed directly.
func (o *Overlay) CommitText(text string) image.Rectangle {
	if o.Done() || o.edit == nil {
		return image.Rectangle{}
	}
	return o.editOp(func(s *annotate.Session) bool {
		pre, _ := s.Preedit()
		changed := s.CommitPreedit(text)
		return changed || pre != ""
	})
}
