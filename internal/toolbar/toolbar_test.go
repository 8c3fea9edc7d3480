package toolbar

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/snapmark/internal/annotate"
)

type fakeActions struct {
	tool     annotate.Tool
	color    color.RGBA
	width    int
	fontSize int
	undo     int
	redo     int
	confirm  int
	save     int
	cancel   int
}

func (f *fakeActions) SetTool(t annotate.Tool) image.Rectangle { f.tool = t; return image.Rectangle{} }
func (f *fakeActions) SetColor(c color.RGBA) image.Rectangle { f.color = c; return image.Rectangle{} }
func (f *fakeActions) SetWidth(w int) image.Rectangle { f.width = w; return image.Rectangle{} }
func (f *fakeActions) SetCustomFontSize(s int) image.Rectangle { f.fontSize = s; return image.Rectangle{} }
func (f *fakeActions) Undo() image.Rectangle { f.undo++; return image.Rectangle{} }
func (f *fakeActions) Redo() image.Rectangle { f.redo++; return image.Rectangle{} }
func (f *fakeActions) Confirm() { f.confirm++ }
func (f *fakeActions) Save() { f.save++ }
func (f *fakeActions) Cancel() { f.cancel++ }

var screen = image.Rect(0, 0, 1280, 800)

func visibleModel() Model {
	return Model{
		Visible:   true,
		Selection: image.Rect(400, 200, 900, 500),
		Screen:    screen,
		Color:     color.RGBA{255, 0, 0, 255},
		Width:     3,
	}
}

func click(t *testing.T, tb *Toolbar, b Button, a Actions) {
	t.Helper()
	p := b.Rect().Min.Add(image.Pt(ButtonSize/2, ButtonSize/2))
	ok, _ := tb.Press(p)
	if !ok {
		t.Fatalf("press at %v not taken by toolbar %v", p, tb.Rect())
	}
	tb.Release(p, a)
}

func findButton(t *testing.T, tb *Toolbar, match func(Button) bool) Button {
	t.Helper()
	for _, b := range tb.buttons {
		if match(b) {
			return b
		}
	}
	t.Fatalf("button not laid out")
	return nil
}

func TestPlace(t *testing.T) {
	size := image.Pt(300, 64)
	tests := []struct {
		name string
		sel  image.Rectangle
		want image.Rectangle
	}{
		{"below", image.Rect(400, 200, 900, 500), image.Rect(600, 508, 900, 572)},
		{"above", image.Rect(400, 200, 900, 780), image.Rect(600, 128, 900, 192)},
		{"inside", image.Rect(0, 0, 1280, 800), image.Rect(980, 728, 1280, 792)},
		{"clamped left", image.Rect(10, 100, 60, 150), image.Rect(0, 158, 300, 222)},
	}
	for _, tt := range tests {
		if got := Place(size, tt.sel, screen); got != tt.want {
			t.Errorf("%s: Place = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLayoutHiddenAndShown(t *testing.T) {
	tb := New(nil)
	if d := tb.Layout(Model{Screen: screen}); !d.Empty() || tb.Visible() {
		t.Fatalf("hidden model should lay out nothing, damage %v", d)
	}
	d := tb.Layout(visibleModel())
	if !tb.Visible() {
		t.Fatalf("toolbar should be visible")
	}
	if !tb.Rect().In(d) {
		t.Fatalf("damage %v should cover panel %v", d, tb.Rect())
	}
	if tb.Rect().Min.Y < 500 {
		t.Fatalf("toolbar should sit below the selection, got %v", tb.Rect())
	}
	if d := tb.Layout(visibleModel()); !d.Empty() {
		t.Fatalf("unchanged model should not damage, got %v", d)
	}
	d = tb.Layout(Model{Screen: screen})
	if tb.Visible() || d.Empty() {
		t.Fatalf("hiding should damage the old panel, got %v", d)
	}
}

func TestToolButtonSetsTool(t *testing.T) {
	tb := New(nil)
	tb.Layout(visibleModel())
	a := &fakeActions{}
	b := findButton(t, tb, func(b Button) bool {
		tool, ok := b.(*ToolButton)
		return ok && tool.tool == annotate.ToolArrow
	})
	click(t, tb, b, a)
	if a.tool != annotate.ToolArrow {
		t.Fatalf("tool = %v, want arrow", a.tool)
	}
}

func TestDisabledUndoIgnored(t *testing.T) {
	tb := New(nil)
	tb.Layout(visibleModel())
	a := &fakeActions{}
	undo := findButton(t, tb, func(b Button) bool {
		ab, ok := b.(*ActionButton)
		return ok && ab.icon == "undo"
	})
	click(t, tb, undo, a)
	if a.undo != 0 {
		t.Fatalf("undo should be disabled without history")
	}
	m := visibleModel()
	m.CanUndo = true
	tb.Layout(m)
	click(t, tb, undo, a)
	if a.undo != 1 {
		t.Fatalf("undo calls = %d, want 1", a.undo)
	}
}

func TestReleaseElsewhereCancelsClick(t *testing.T) {
	tb := New(nil)
	tb.Layout(visibleModel())
	a := &fakeActions{}
	save := findButton(t, tb, func(b Button) bool {
		ab, ok := b.(*ActionButton)
		return ok && ab.icon == "save"
	})
	tb.Press(save.Rect().Min.Add(image.Pt(2, 2)))
	tb.Release(image.Pt(0, 0), a)
	if a.save != 0 {
		t.Fatalf("release outside the button should not activate it")
	}
}

func TestSwatchAndWidth(t *testing.T) {
	tb := New(nil)
	tb.Layout(visibleModel())
	a := &fakeActions{}
	click(t, tb, findButton(t, tb, func(b Button) bool {
		s, ok := b.(*SwatchButton)
		return ok && s.color.Name == "Blue"
	}), a)
	if a.color != (color.RGBA{0, 0, 255, 255}) {
		t.Fatalf("color = %v", a.color)
	}
	click(t, tb, findButton(t, tb, func(b Button) bool {
		w, ok := b.(*WidthButton)
		return ok && w.width == 8
	}), a)
	if a.width != 8 {
		t.Fatalf("width = %d", a.width)
	}
}

func TestTextModeOffersFontSizes(t *testing.T) {
	tb := New(nil)
	m := visibleModel()
	m.Editing = true
	m.FontSize = 16
	tb.Layout(m)
	b := findButton(t, tb, func(b Button) bool {
		w, ok := b.(*WidthButton)
		return ok && w.width == 16
	})
	if b.Status(m) != StateActive {
		t.Fatalf("current font size should be active")
	}
}

func TestHexEntry(t *testing.T) {
	tb := New(nil)
	tb.Layout(visibleModel())
	a := &fakeActions{}
	click(t, tb, tb.hexBtn, a)
	if !tb.Entering() {
		t.Fatalf("hex button should open the entry field")
	}
	for _, r := range "12345g6" {
		tb.EntryRune(r)
	}
	if tb.entryText != "123456" {
		t.Fatalf("entry text = %q", tb.entryText)
	}
	tb.SubmitEntry(a)
	want := color.RGBA{0x12, 0x34, 0x56, 255}
	if a.color != want {
		t.Fatalf("color = %v, want %v", a.color, want)
	}
	if tb.Entering() {
		t.Fatalf("entry should close after a valid submit")
	}
	pal := tb.Palette()
	if pal[len(pal)-1].Color != want || pal[len(pal)-1].Name != "#123456" {
		t.Fatalf("entered colour should join the palette, got %+v", pal[len(pal)-1])
	}
}

func TestHexEntryRejectsShortValue(t *testing.T) {
	tb := New(nil)
	tb.Layout(visibleModel())
	a := &fakeActions{}
	tb.beginEntry(entryHex)
	tb.EntryRune('f')
	tb.SubmitEntry(a)
	if !tb.Entering() || !tb.entryBad {
		t.Fatalf("invalid colour should keep the entry open and flagged")
	}
	if a.color != (color.RGBA{}) {
		t.Fatalf("invalid colour should not be applied")
	}
	tb.EntryBackspace()
	if tb.entryText != "" || tb.entryBad {
		t.Fatalf("backspace should clear the flag, text %q", tb.entryText)
	}
}

func TestSizeEntry(t *testing.T) {
	tb := New(nil)
	tb.Layout(visibleModel())
	a := &fakeActions{}
	click(t, tb, tb.sizeBtn, a)
	for _, r := range "42" {
		tb.EntryRune(r)
	}
	tb.SubmitEntry(a)
	if a.fontSize != 42 {
		t.Fatalf("font size = %d, want 42", a.fontSize)
	}
}

func TestPressOutsideClosesEntry(t *testing.T) {
	tb := New(nil)
	tb.Layout(visibleModel())
	tb.beginEntry(entrySize)
	ok, d := tb.Press(image.Pt(5, 5))
	if ok || tb.Entering() || d.Empty() {
		t.Fatalf("outside press: taken=%v entering=%v damage=%v", ok, tb.Entering(), d)
	}
}

func TestCustomColoursBounded(t *testing.T) {
	tb := New(nil)
	base := len(DefaultPalette())
	for i := 0; i < maxCustomColors+3; i++ {
		tb.EnsurePaletteColor(color.RGBA{uint8(i + 1), 1, 1, 255}, "")
	}
	if got := len(tb.Palette()); got != base+maxCustomColors {
		t.Fatalf("palette size = %d, want %d", got, base+maxCustomColors)
	}
	tb.EnsurePaletteColor(color.RGBA{255, 0, 0, 255}, "")
	if got := len(tb.Palette()); got != base+maxCustomColors {
		t.Fatalf("existing colour should not be added again")
	}
}

func TestDrawStaysInBounds(t *testing.T) {
	tb := New(nil)
	tb.Layout(visibleModel())
	dst := image.NewRGBA(screen)
	tb.Draw(dst, screen)
	b := tb.Bounds()
	painted := false
	for y := screen.Min.Y; y < screen.Max.Y; y += 2 {
		for x := screen.Min.X; x < screen.Max.X; x += 2 {
			if dst.RGBAAt(x, y).A == 0 {
				continue
			}
			if !image.Pt(x, y).In(b) {
				t.Fatalf("pixel (%d,%d) painted outside %v", x, y, b)
			}
			painted = true
		}
	}
	if !painted {
		t.Fatalf("toolbar drew nothing")
	}
}
