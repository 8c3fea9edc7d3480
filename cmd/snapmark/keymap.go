package main

import (
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/snapmark/internal/overlay"
)

var keyCodes = map[key.Code]overlay.Key{
	key.CodeEscape:          overlay.KeyEscape,
	key.CodeReturnEnter:     overlay.KeyEnter,
	key.CodeKeypadEnter:     overlay.KeyEnter,
	key.CodeDeleteBackspace: overlay.KeyBackspace,
	key.CodeDeleteForward:   overlay.KeyDelete,
	key.CodeLeftArrow:       overlay.KeyLeft,
	key.CodeRightArrow:      overlay.KeyRight,
	key.CodeUpArrow:         overlay.KeyUp,
	key.CodeDownArrow:       overlay.KeyDown,
	key.CodeHome:            overlay.KeyHome,
	key.CodeEnd:             overlay.KeyEnd,
	key.CodeTab:             overlay.KeyTab,
}

// translateKey maps a shiny key event to the overlay's key model. Releases
// are dropped; auto-repeat arrives as DirNone and counts as a press.
func translateKey(e key.Event) (overlay.KeyEvent, bool) {
	if e.Direction == key.DirRelease {
		return overlay.KeyEvent{}, false
	}
	ke := overlay.KeyEvent{Mods: translateMods(e.Modifiers)}
	if k, ok := keyCodes[e.Code]; ok {
		ke.Key = k
		return ke, true
	}

	r := e.Rune
	// Drivers report control characters or -1 for Ctrl+letter, so the
	// letter is recovered from the key code.
	if e.Code >= key.CodeA && e.Code <= key.CodeZ && (r < 0 || unicode.IsControl(r) || ke.Mods&(overlay.ModControl|overlay.ModMeta) != 0) {
		r = 'a' + rune(e.Code-key.CodeA)
		if ke.Mods&overlay.ModShift != 0 {
			r = unicode.ToUpper(r)
		}
	}
	if r < 0 || unicode.IsControl(r) {
		return overlay.KeyEvent{}, false
	}
	ke.Rune = r
	return ke, true
}

func translateMods(m key.Modifiers) overlay.Modifiers {
	var out overlay.Modifiers
	if m&key.ModShift != 0 {
		out |= overlay.ModShift
	}
	if m&key.ModControl != 0 {
		out |= overlay.ModControl
	}
	if m&key.ModAlt != 0 {
		out |= overlay.ModAlt
	}
	if m&key.ModMeta != 0 {
		out |= overlay.ModMeta
	}
	return out
}

// printable reports whether e types a character rather than a shortcut.
func printable(e overlay.KeyEvent) bool {
	return e.Key == overlay.KeyNone && e.Rune != 0 && e.Mods&(overlay.ModControl|overlay.ModMeta|overlay.ModAlt) == 0
}
