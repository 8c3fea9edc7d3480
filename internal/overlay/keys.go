package overlay

import (
	"image"
	"unicode"

	"github.com/example/snapmark/internal/annotate"
)

// Key names the non-character keys the overlay reacts to.
type Key int

const (
	KeyNone Key = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyTab
)

// Modifiers is a set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModMeta
)

// KeyEvent is a key press. Rune carries the character for printable keys
// and for shortcuts such as Ctrl+Z.
type KeyEvent struct {
	Key  Key
	Rune rune
	Mods Modifiers
}

func (e KeyEvent) command() bool { return e.Mods&(ModControl|ModMeta) != 0 }

func (e KeyEvent) shift() bool { return e.Mods&ModShift != 0 }

func (e KeyEvent) shortcut(r rune) bool {
	return e.command() && e.Key == KeyNone && unicode.ToLower(e.Rune) == r
}

// KeyDown handles a key press.
func (o *Overlay) KeyDown(e KeyEvent) image.Rectangle {
	if o.Done() {
		return image.Rectangle{}
	}
	switch e.Key {
	case KeyEscape:
		if o.gesture != gestureNone {
			return o.touch(o.abandonGesture(), o.refreshHover())
		}
		if o.edit != nil {
			return o.touch(o.discardEdit())
		}
		o.Cancel()
		return image.Rectangle{}
	case KeyEnter:
		if o.edit != nil {
			if e.shift() {
				return o.editOp(func(s *annotate.Session) bool { return s.Insert("\n") })
			}
			return o.touch(o.finishEdit())
		}
		if !o.sel.Empty() {
			o.Confirm()
		}
		return image.Rectangle{}
	}
	if o.edit != nil {
		return o.editKey(e)
	}
	switch {
	case e.shortcut('z') && e.shift(), e.shortcut('y'):
		return o.Redo()
	case e.shortcut('z'):
		return o.Undo()
	case e.shortcut('s'):
		if !o.sel.Empty() {
			o.Save()
		}
	case e.shortcut('c'):
		if !o.sel.Empty() {
			o.Confirm()
		}
	}
	return image.Rectangle{}
}

func (o *Overlay) editKey(e KeyEvent) image.Rectangle {
	ext := e.shift()
	switch {
	case e.shortcut('a'):
		return o.editOp(func(s *annotate.Session) bool { s.SelectAll(); return true })
	case e.shortcut('c'):
		o.copySelection()
		return image.Rectangle{}
	case e.shortcut('x'):
		if !o.copySelection() {
			return image.Rectangle{}
		}
		return o.editOp(func(s *annotate.Session) bool { return s.Backspace() })
	case e.shortcut('v'):
		return o.paste()
	case e.shortcut('z'):
		return o.Undo()
	}

	switch e.Key {
	case KeyBackspace:
		return o.editOp(func(s *annotate.Session) bool { return s.Backspace() })
	case KeyDelete:
		return o.editOp(func(s *annotate.Session) bool { return s.Delete() })
	case KeyLeft:
		return o.editOp(func(s *annotate.Session) bool { return s.MoveLeft(ext) })
	case KeyRight:
		return o.editOp(func(s *annotate.Session) bool { return s.MoveRight(ext) })
	case KeyHome:
		return o.editOp(func(s *annotate.Session) bool { return s.Home(ext) })
	case KeyEnd:
		return o.editOp(func(s *annotate.Session) bool { return s.End(ext) })
	case KeyUp:
		return o.stepFont(1)
	case KeyDown:
		return o.stepFont(-1)
	case KeyTab:
		return o.editOp(func(s *annotate.Session) bool { return s.Insert("\t") })
	}

	if e.Rune != 0 && !e.command() && unicode.IsPrint(e.Rune) {
		r := string(e.Rune)
		return o.editOp(func(s *annotate.Session) bool { return s.Insert(r) })
	}
	return image.Rectangle{}
}

func (o *Overlay) stepFont(delta int) image.Rectangle {
	return o.editOp(func(s *annotate.Session) bool {
		it := s.Item()
		before := it.FontSize()
		return it.StepFontSize(delta) != before
	})
}
