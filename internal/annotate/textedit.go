package annotate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Session is an inline edit of one text item. Offsets are byte indexes
// into the buffer and always fall on grapheme cluster boundaries.
type Session struct {
	item    *Item
	created bool

	buf      string
	cursor   int
	selStart int
	selEnd   int

	preedit       string
	preeditCursor int // in runes
}

// NewSession starts editing it. created marks an item that has not been
// committed to history yet.
func NewSession(it *Item, created bool) *Session {
	s := &Session{item: it, created: created, buf: it.Text}
	s.cursor = len(s.buf)
	s.collapse()
	return s
}

// Item returns the edited item.
func (s *Session) Item() *Item { return s.item }

// Created reports whether the item was created for this session.
func (s *Session) Created() bool { return s.created }

// Text returns the committed buffer without pre-edit text.
func (s *Session) Text() string { return s.buf }

// Cursor returns the caret offset.
func (s *Session) Cursor() int { return s.cursor }

// Blank reports whether the buffer holds only whitespace.
func (s *Session) Blank() bool { return strings.TrimSpace(s.buf) == "" }

// Selection returns the ordered selected range.
func (s *Session) Selection() (start, end int) {
	if s.selStart <= s.selEnd {
		return s.selStart, s.selEnd
	}
	return s.selEnd, s.selStart
}

// HasSelection reports whether a non-empty range is selected.
func (s *Session) HasSelection() bool { return s.selStart != s.selEnd }

// SelectedText returns the selected part of the buffer.
func (s *Session) SelectedText() string {
	a, b := s.Selection()
	return s.buf[a:b]
}

// Insert types text at the caret, replacing any selection. Text is
// normalized to NFC and stripped of control characters other than newlines
// and format characters such as zero width joiners.
func (s *Session) Insert(text string) bool {
	text = sanitize(text)
	if text == "" {
		return false
	}
	a, b := s.cursor, s.cursor
	if s.HasSelection() {
		a, b = s.Selection()
	}
	s.buf = s.buf[:a] + text + s.buf[b:]
	s.cursor = a + len(text)
	s.collapse()
	return true
}

// Backspace removes the selection or the cluster before the caret.
func (s *Session) Backspace() bool {
	if s.deleteSelection() {
		return true
	}
	if s.cursor == 0 {
		return false
	}
	prev := prevBoundary(s.buf, s.cursor)
	s.buf = s.buf[:prev] + s.buf[s.cursor:]
	s.cursor = prev
	s.collapse()
	return true
}

// Delete removes the selection or the cluster after the caret.
func (s *Session) Delete() bool {
	if s.deleteSelection() {
		return true
	}
	if s.cursor >= len(s.buf) {
		return false
	}
	next := nextBoundary(s.buf, s.cursor)
	s.buf = s.buf[:s.cursor] + s.buf[next:]
	s.collapse()
	return true
}

// MoveLeft moves the caret one cluster left. With extend the selection
// follows the caret; without it an existing selection collapses to its
// start.
func (s *Session) MoveLeft(extend bool) bool {
	if extend {
		if s.cursor == 0 {
			return false
		}
		s.cursor = prevBoundary(s.buf, s.cursor)
		s.selEnd = s.cursor
		return true
	}
	switch {
	case s.HasSelection():
		s.cursor, _ = s.Selection()
	case s.cursor > 0:
		s.cursor = prevBoundary(s.buf, s.cursor)
	default:
		return false
	}
	s.collapse()
	return true
}

// MoveRight mirrors MoveLeft.
func (s *Session) MoveRight(extend bool) bool {
	if extend {
		if s.cursor >= len(s.buf) {
			return false
		}
		s.cursor = nextBoundary(s.buf, s.cursor)
		s.selEnd = s.cursor
		return true
	}
	switch {
	case s.HasSelection():
		_, s.cursor = s.Selection()
	case s.cursor < len(s.buf):
		s.cursor = nextBoundary(s.buf, s.cursor)
	default:
		return false
	}
	s.collapse()
	return true
}

// Home moves the caret to the start of the buffer.
func (s *Session) Home(extend bool) bool { return s.jump(0, extend) }

// End moves the caret to the end of the buffer.
func (s *Session) End(extend bool) bool { return s.jump(len(s.buf), extend) }

// SelectAll selects the whole buffer and parks the caret at its end.
func (s *Session) SelectAll() {
	s.selStart = 0
	s.selEnd = len(s.buf)
	s.cursor = s.selEnd
}

// SetPreedit replaces the input method composition. cursor counts runes
// within text; an out of range cursor is parked at the end and invalid text
// clears the composition.
func (s *Session) SetPreedit(text string, cursor int) {
	if !utf8.ValidString(text) {
		s.ClearPreedit()
		return
	}
	n := utf8.RuneCountInString(text)
	if cursor < 0 || cursor > n {
		cursor = n
	}
	s.preedit = text
	s.preeditCursor = cursor
}

// Preedit returns the current composition and its rune cursor.
func (s *Session) Preedit() (string, int) { return s.preedit, s.preeditCursor }

// ClearPreedit drops any composition.
func (s *Session) ClearPreedit() {
	s.preedit = ""
	s.preeditCursor = 0
}

// CommitPreedit inserts text committed by the input method at the caret,
// exactly like a paste, and clears the composition.
func (s *Session) CommitPreedit(text string) bool {
	s.ClearPreedit()
	return s.Insert(text)
}

// Display is the text shown while editing: the buffer with the composition
// spliced in at the caret.
type Display struct {
	Text string
	// Caret is the byte offset of the caret within Text.
	Caret int
	// PreeditStart and PreeditEnd delimit the composition within Text.
	PreeditStart, PreeditEnd int
	// SelStart and SelEnd delimit the highlighted selection within Text.
	SelStart, SelEnd int
}

// Display returns the text to render for the live buffer.
func (s *Session) Display() Display {
	d := Display{Caret: s.cursor, PreeditStart: s.cursor, PreeditEnd: s.cursor}
	d.SelStart, d.SelEnd = s.Selection()
	if s.preedit == "" {
		d.Text = s.buf
		return d
	}
	d.Text = s.buf[:s.cursor] + s.preedit + s.buf[s.cursor:]
	d.PreeditEnd = s.cursor + len(s.preedit)
	d.Caret = s.cursor + runeOffset(s.preedit, s.preeditCursor)
	shift := len(s.preedit)
	if d.SelStart >= s.cursor {
		d.SelStart += shift
	}
	if d.SelEnd > s.cursor {
		d.SelEnd += shift
	}
	return d
}

func (s *Session) jump(to int, extend bool) bool {
	if s.cursor == to && (extend || !s.HasSelection()) {
		return false
	}
	s.cursor = to
	if extend {
		s.selEnd = to
		return true
	}
	s.collapse()
	return true
}

func (s *Session) deleteSelection() bool {
	if !s.HasSelection() {
		return false
	}
	a, b := s.Selection()
	s.buf = s.buf[:a] + s.buf[b:]
	s.cursor = a
	s.collapse()
	return true
}

func (s *Session) collapse() {
	s.selStart = s.cursor
	s.selEnd = s.cursor
}

func sanitize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\t':
			return ' '
		case r == utf8.RuneError, !unicode.IsGraphic(r) && !unicode.Is(unicode.Cf, r):
			return -1
		}
		return r
	}, text)
	return norm.NFC.String(text)
}

// clusterBounds returns every grapheme cluster boundary in s, including 0
// and len(s).
func clusterBounds(s string) []int {
	bounds := []int{0}
	state := -1
	rest := s
	off := 0
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		off += len(cluster)
		bounds = append(bounds, off)
	}
	return bounds
}

func prevBoundary(s string, i int) int {
	prev := 0
	for _, b := range clusterBounds(s) {
		if b >= i {
			break
		}
		prev = b
	}
	return prev
}

func nextBoundary(s string, i int) int {
	for _, b := range clusterBounds(s) {
		if b > i {
			return b
		}
	}
	return len(s)
}

func runeOffset(s string, runes int) int {
	off := 0
	for i := 0; i < runes && off < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}
	return off
}
