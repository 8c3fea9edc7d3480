// Package toolbar draws the action bar shown next to the selection and
// turns clicks on it into overlay commands. It keeps no annotation state of
// its own: every frame it is laid out from a Model snapshot.
package toolbar

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/snapmark/internal/annotate"
	"github.com/example/snapmark/internal/render"
	"github.com/example/snapmark/internal/theme"
)

// Model is the overlay state the toolbar reflects.
type Model struct {
	Visible   bool
	Selection image.Rectangle
	Screen    image.Rectangle
	Tool      annotate.Tool
	Color     color.RGBA
	Width     int
	CanUndo   bool
	CanRedo   bool
	Editing   bool
	FontSize  int
}

func (m Model) textMode() bool { return m.Editing || m.Tool == annotate.ToolText }

// Actions are the commands toolbar buttons issue. Each returns the screen
// area it changed.
type Actions interface {
	SetTool(annotate.Tool) image.Rectangle
	SetColor(color.RGBA) image.Rectangle
	SetWidth(int) image.Rectangle
	SetCustomFontSize(int) image.Rectangle
	Undo() image.Rectangle
	Redo() image.Rectangle
	Confirm()
	Save()
	Cancel()
}

// PaletteColor is a named swatch.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

// DefaultPalette returns the stock swatches.
func DefaultPalette() []PaletteColor {
	return []PaletteColor{
		{"Red", color.RGBA{255, 0, 0, 255}},
		{"Yellow", color.RGBA{255, 255, 0, 255}},
		{"Lime", color.RGBA{0, 255, 0, 255}},
		{"Cyan", color.RGBA{0, 255, 255, 255}},
		{"Blue", color.RGBA{0, 0, 255, 255}},
		{"Magenta", color.RGBA{255, 0, 255, 255}},
		{"Black", color.RGBA{0, 0, 0, 255}},
		{"White", color.RGBA{255, 255, 255, 255}},
	}
}

var (
	strokeWidths = []int{2, 3, 5, 8, 12}
	textSizes    = []int{12, 16, 20, 24, 32}
)

// maxCustomColors bounds how many entered colours are kept as swatches.
const maxCustomColors = 4

type entryMode int

const (
	entryNone entryMode = iota
	entryHex
	entrySize
)

// Toolbar is the action bar. The zero value is not usable; call New.
type Toolbar struct {
	Theme  *theme.Theme
	Shadow render.ShadowOptions

	palette []PaletteColor
	custom  int

	main     []Button
	swatches []Button
	strokes  []Button
	sizes    []Button
	hexBtn   Button
	sizeBtn  Button

	buttons   []Button // laid out this frame
	rect      image.Rectangle
	entryRect image.Rectangle
	model     Model

	hover   int
	pressed int

	entry     entryMode
	entryText string
	entryBad  bool
}

// New returns a toolbar drawn with th, or the default theme when th is nil.
func New(th *theme.Theme) *Toolbar {
	if th == nil {
		th = theme.Default()
	}
	t := &Toolbar{
		Theme:   th,
		Shadow:  render.PanelShadow(),
		palette: DefaultPalette(),
		hover:   -1,
		pressed: -1,
	}
	for _, tool := range annotate.Tools {
		t.main = append(t.main, &ToolButton{tool: tool})
	}
	t.main = append(t.main,
		&ActionButton{icon: "undo", label: "Undo", do: Actions.Undo, enabled: func(m Model) bool { return m.CanUndo }},
		&ActionButton{icon: "redo", label: "Redo", do: Actions.Redo, enabled: func(m Model) bool { return m.CanRedo }},
		&ActionButton{icon: "copy", label: "Copy", do: func(a Actions) image.Rectangle { a.Confirm(); return image.Rectangle{} }},
		&ActionButton{icon: "save", label: "Save", do: func(a Actions) image.Rectangle { a.Save(); return image.Rectangle{} }},
		&ActionButton{icon: "cancel", label: "Esc", do: func(a Actions) image.Rectangle { a.Cancel(); return image.Rectangle{} }},
	)
	t.rebuildSwatches()
	for _, w := range strokeWidths {
		t.strokes = append(t.strokes, &WidthButton{width: w})
	}
	for _, s := range textSizes {
		t.sizes = append(t.sizes, &WidthButton{width: s})
	}
	t.hexBtn = &EntryButton{mode: entryHex, label: "#"}
	t.sizeBtn = &EntryButton{mode: entrySize, label: "Aa"}
	return t
}

// Palette returns the swatches offered, including entered colours.
func (t *Toolbar) Palette() []PaletteColor {
	out := make([]PaletteColor, len(t.palette))
	copy(out, t.palette)
	return out
}

// EnsurePaletteColor makes sure col is offered as a swatch. Entered
// colours beyond maxCustomColors replace the oldest entered one.
func (t *Toolbar) EnsurePaletteColor(col color.RGBA, name string) {
	for _, p := range t.palette {
		if p.Color == col {
			return
		}
	}
	if name == "" {
		name = fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B)
	}
	base := len(DefaultPalette())
	if t.custom >= maxCustomColors {
		t.palette = append(t.palette[:base], t.palette[base+1:]...)
		t.custom--
	}
	t.palette = append(t.palette, PaletteColor{Name: name, Color: col})
	t.custom++
	t.rebuildSwatches()
}

func (t *Toolbar) rebuildSwatches() {
	t.swatches = t.swatches[:0]
	for _, p := range t.palette {
		t.swatches = append(t.swatches, &SwatchButton{color: p})
	}
}

// Visible reports whether the toolbar was laid out on screen.
func (t *Toolbar) Visible() bool { return !t.rect.Empty() }

// Rect returns the panel rectangle.
func (t *Toolbar) Rect() image.Rectangle { return t.rect }

// Bounds returns everything the toolbar paints, shadow included.
func (t *Toolbar) Bounds() image.Rectangle { return render.ShadowBounds(t.rect, t.Shadow) }

// Contains reports whether p is over the panel.
func (t *Toolbar) Contains(p image.Point) bool { return p.In(t.rect) }

// Entering reports whether the custom value field has keyboard focus.
func (t *Toolbar) Entering() bool { return t.entry != entryNone && t.Visible() }

// Hover updates the highlighted button for a pointer at p.
func (t *Toolbar) Hover(p image.Point) image.Rectangle {
	i := t.buttonAt(p)
	if i == t.hover {
		return image.Rectangle{}
	}
	d := render.Damage(0, t.buttonRect(t.hover), t.buttonRect(i))
	t.hover = i
	return d
}

// Press starts a click at p. It reports whether the toolbar took the
// press; presses outside the panel also close the entry field.
func (t *Toolbar) Press(p image.Point) (bool, image.Rectangle) {
	if !t.Contains(p) {
		if t.entry != entryNone {
			return false, t.CancelEntry()
		}
		return false, image.Rectangle{}
	}
	i := t.buttonAt(p)
	if i >= 0 && t.buttons[i].Status(t.model) == StateDisabled {
		i = -1
	}
	t.pressed = i
	return true, t.buttonRect(i)
}

// Release completes a click and runs the button under p if it is the one
// pressed.
func (t *Toolbar) Release(p image.Point, a Actions) image.Rectangle {
	i := t.pressed
	t.pressed = -1
	if i < 0 {
		return image.Rectangle{}
	}
	d := t.buttonRect(i)
	if t.buttonAt(p) != i {
		return d
	}
	return render.Damage(0, d, t.buttons[i].Activate(t, a))
}

func (t *Toolbar) buttonAt(p image.Point) int {
	if !t.Contains(p) {
		return -1
	}
	for i, b := range t.buttons {
		if p.In(b.Rect()) {
			return i
		}
	}
	return -1
}

func (t *Toolbar) buttonRect(i int) image.Rectangle {
	if i < 0 || i >= len(t.buttons) {
		return image.Rectangle{}
	}
	return t.buttons[i].Rect()
}

func (t *Toolbar) beginEntry(mode entryMode) image.Rectangle {
	before := t.Bounds()
	t.entry = mode
	t.entryText = ""
	t.entryBad = false
	if mode == entrySize && t.model.FontSize > 0 {
		t.entryText = strconv.Itoa(t.model.FontSize)
	}
	t.hover = -1
	t.Layout(t.model)
	return render.Damage(0, before, t.Bounds())
}

// EntryRune appends r to the entry field when it is valid there.
func (t *Toolbar) EntryRune(r rune) image.Rectangle {
	if !t.Entering() {
		return image.Rectangle{}
	}
	switch t.entry {
	case entryHex:
		if r == '#' && t.entryText == "" {
			return image.Rectangle{}
		}
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) || len(t.entryText) >= 8 {
			return image.Rectangle{}
		}
	case entrySize:
		if !unicode.IsDigit(r) || len(t.entryText) >= 3 {
			return image.Rectangle{}
		}
	}
	t.entryText += string(unicode.ToUpper(r))
	t.entryBad = false
	return t.entryRect
}

// EntryBackspace removes the last character of the entry field.
func (t *Toolbar) EntryBackspace() image.Rectangle {
	if !t.Entering() || t.entryText == "" {
		return image.Rectangle{}
	}
	t.entryText = t.entryText[:len(t.entryText)-1]
	t.entryBad = false
	return t.entryRect
}

// SubmitEntry applies the entered value. Invalid input keeps the field
// open and marks it.
func (t *Toolbar) SubmitEntry(a Actions) image.Rectangle {
	if !t.Entering() {
		return image.Rectangle{}
	}
	switch t.entry {
	case entryHex:
		col, err := theme.ParseColor("#" + t.entryText)
		if err != nil {
			t.entryBad = true
			return t.entryRect
		}
		t.EnsurePaletteColor(col, "")
		d := t.CancelEntry()
		return render.Damage(0, d, a.SetColor(col))
	case entrySize:
		n, err := strconv.Atoi(t.entryText)
		if err != nil || n < annotate.MinFontSize || n > annotate.MaxFontSize {
			t.entryBad = true
			return t.entryRect
		}
		d := t.CancelEntry()
		return render.Damage(0, d, a.SetCustomFontSize(n))
	}
	return image.Rectangle{}
}

// CancelEntry closes the entry field.
func (t *Toolbar) CancelEntry() image.Rectangle {
	if t.entry == entryNone {
		return image.Rectangle{}
	}
	before := t.Bounds()
	t.entry = entryNone
	t.entryText = ""
	t.entryBad = false
	t.Layout(t.model)
	return render.Damage(0, before, t.Bounds())
}

// Draw paints the toolbar into dst, limited to clip.
func (t *Toolbar) Draw(dst *image.RGBA, clip image.Rectangle) {
	if !t.Visible() || !t.Bounds().Overlaps(clip) {
		return
	}
	th := t.Theme
	render.DropShadow(dst, clip, t.rect, t.Shadow)
	fillRect(dst, clip, t.rect, th.ToolbarBackground)
	drawRect(dst, clip, t.rect, th.ToolbarBorder)
	for i, b := range t.buttons {
		if !b.Rect().Overlaps(clip) {
			continue
		}
		b.Draw(dst, clip, th, t.model, t.stateOf(i))
	}
	if t.entry != entryNone {
		t.drawEntry(dst, clip)
	}
}

func (t *Toolbar) stateOf(i int) ButtonState {
	s := t.buttons[i].Status(t.model)
	switch {
	case s == StateDisabled:
		return s
	case i == t.pressed:
		return StatePressed
	case i == t.hover && s != StateActive:
		return StateHover
	}
	return s
}

func (t *Toolbar) drawEntry(dst *image.RGBA, clip image.Rectangle) {
	th := t.Theme
	r := t.entryRect
	fillRect(dst, clip, r, th.ButtonBackground)
	border := th.ButtonBorder
	if t.entryBad {
		border = color.RGBA{0xb3, 0x26, 0x1e, 255}
	}
	drawRect(dst, clip, r, border)

	face := render.UIFace()
	sub, ok := dst.SubImage(r.Intersect(clip)).(*image.RGBA)
	if face == nil || !ok || sub.Bounds().Empty() {
		return
	}
	prompt := "Size: "
	if t.entry == entryHex {
		prompt = "Colour: #"
	}
	m := face.Metrics()
	base := r.Min.Y + (r.Dy()+m.Ascent.Ceil()-m.Descent.Ceil())/2
	d := &font.Drawer{Dst: sub, Src: image.NewUniform(th.ButtonTextDisabled), Face: face}
	d.Dot = fixed.P(r.Min.X+entryPad, base)
	d.DrawString(prompt)
	d.Src = image.NewUniform(th.ButtonText)
	d.DrawString(t.entryText)
	x := d.Dot.X.Ceil() + 1
	fillRect(dst, clip, image.Rect(x, base-m.Ascent.Ceil(), x+1, base+m.Descent.Ceil()), th.Caret)
}
