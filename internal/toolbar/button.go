package toolbar

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/snapmark/assets"
	"github.com/example/snapmark/internal/annotate"
	"github.com/example/snapmark/internal/render"
	"github.com/example/snapmark/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
	StateActive
	StateDisabled
)

// Button represents an interactive toolbar element.
// Activate performs the button's action when clicked and returns the
// screen area the action changed.
type Button interface {
	Draw(dst *image.RGBA, clip image.Rectangle, th *theme.Theme, m Model, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	// Status reports the state the model puts the button in: StateActive,
	// StateDisabled or StateDefault.
	Status(m Model) ButtonState
	Activate(t *Toolbar, a Actions) image.Rectangle
}

// ToolButton selects a tool.
type ToolButton struct {
	tool annotate.Tool
	rect image.Rectangle
}

var _ Button = (*ToolButton)(nil)

func (b *ToolButton) Draw(dst *image.RGBA, clip image.Rectangle, th *theme.Theme, m Model, state ButtonState) {
	fg := drawFace(dst, clip, b.rect, th, state)
	drawIcon(dst, clip, b.rect, b.tool.String(), toolLabels[b.tool], fg)
}

func (b *ToolButton) Rect() image.Rectangle { return b.rect }

func (b *ToolButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *ToolButton) Status(m Model) ButtonState {
	if m.Tool == b.tool {
		return StateActive
	}
	return StateDefault
}

func (b *ToolButton) Activate(_ *Toolbar, a Actions) image.Rectangle { return a.SetTool(b.tool) }

var toolLabels = map[annotate.Tool]string{
	annotate.ToolSelect:    "Sel",
	annotate.ToolPen:       "Pen",
	annotate.ToolRectangle: "Rect",
	annotate.ToolCircle:    "Circ",
	annotate.ToolArrow:     "Arr",
	annotate.ToolText:      "T",
}

// ActionButton runs a one-shot command such as undo or save.
type ActionButton struct {
	icon    string
	label   string
	rect    image.Rectangle
	do      func(a Actions) image.Rectangle
	enabled func(m Model) bool
}

var _ Button = (*ActionButton)(nil)

func (b *ActionButton) Draw(dst *image.RGBA, clip image.Rectangle, th *theme.Theme, m Model, state ButtonState) {
	fg := drawFace(dst, clip, b.rect, th, state)
	drawIcon(dst, clip, b.rect, b.icon, b.label, fg)
}

func (b *ActionButton) Rect() image.Rectangle { return b.rect }

func (b *ActionButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *ActionButton) Status(m Model) ButtonState {
	if b.enabled != nil && !b.enabled(m) {
		return StateDisabled
	}
	return StateDefault
}

func (b *ActionButton) Activate(_ *Toolbar, a Actions) image.Rectangle {
	if b.do == nil {
		return image.Rectangle{}
	}
	return b.do(a)
}

// SwatchButton picks a palette colour.
type SwatchButton struct {
	color PaletteColor
	rect  image.Rectangle
}

var _ Button = (*SwatchButton)(nil)

func (b *SwatchButton) Draw(dst *image.RGBA, clip image.Rectangle, th *theme.Theme, m Model, state ButtonState) {
	drawFace(dst, clip, b.rect, th, state)
	inner := b.rect.Inset(5)
	fillRect(dst, clip, inner, b.color.Color)
	drawRect(dst, clip, inner, th.ButtonBorder)
}

func (b *SwatchButton) Rect() image.Rectangle { return b.rect }

func (b *SwatchButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *SwatchButton) Status(m Model) ButtonState {
	if m.Color == b.color.Color {
		return StateActive
	}
	return StateDefault
}

func (b *SwatchButton) Activate(_ *Toolbar, a Actions) image.Rectangle { return a.SetColor(b.color.Color) }

// WidthButton picks a stroke width preset. While text is edited the
// preset drives the font size instead.
type WidthButton struct {
	width int
	rect  image.Rectangle
}

var _ Button = (*WidthButton)(nil)

func (b *WidthButton) Draw(dst *image.RGBA, clip image.Rectangle, th *theme.Theme, m Model, state ButtonState) {
	fg := drawFace(dst, clip, b.rect, th, state)
	if m.Editing || m.Tool == annotate.ToolText {
		drawLabel(dst, clip, b.rect, fmt.Sprint(b.width), fg)
		return
	}
	thick := min(b.width, b.rect.Dy()-8)
	y := b.rect.Min.Y + (b.rect.Dy()-thick)/2
	fillRect(dst, clip, image.Rect(b.rect.Min.X+5, y, b.rect.Max.X-5, y+thick), m.Color)
}

func (b *WidthButton) Rect() image.Rectangle { return b.rect }

func (b *WidthButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *WidthButton) Status(m Model) ButtonState {
	if m.Editing {
		if m.FontSize == b.width {
			return StateActive
		}
		return StateDefault
	}
	if m.Width == b.width {
		return StateActive
	}
	return StateDefault
}

func (b *WidthButton) Activate(_ *Toolbar, a Actions) image.Rectangle { return a.SetWidth(b.width) }

// EntryButton opens the inline entry field for a custom value.
type EntryButton struct {
	mode  entryMode
	label string
	rect  image.Rectangle
}

var _ Button = (*EntryButton)(nil)

func (b *EntryButton) Draw(dst *image.RGBA, clip image.Rectangle, th *theme.Theme, m Model, state ButtonState) {
	fg := drawFace(dst, clip, b.rect, th, state)
	drawLabel(dst, clip, b.rect, b.label, fg)
}

func (b *EntryButton) Rect() image.Rectangle { return b.rect }

func (b *EntryButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *EntryButton) Status(Model) ButtonState { return StateDefault }

func (b *EntryButton) Activate(t *Toolbar, _ Actions) image.Rectangle { return t.beginEntry(b.mode) }

// drawFace paints the button background for state and returns the
// foreground colour to draw its content with.
func drawFace(dst *image.RGBA, clip, r image.Rectangle, th *theme.Theme, state ButtonState) color.RGBA {
	bg, fg := th.ButtonBackground, th.ButtonText
	switch state {
	case StateHover:
		bg, fg = th.ButtonBackgroundHover, th.ButtonTextHover
	case StatePressed:
		bg, fg = th.ButtonBackgroundPress, th.ButtonTextPress
	case StateActive:
		bg, fg = th.ButtonBackgroundActive, th.ButtonTextPress
	case StateDisabled:
		fg = th.ButtonTextDisabled
	}
	fillRect(dst, clip, r, bg)
	if state == StateActive || state == StatePressed {
		drawRect(dst, clip, r, th.ButtonBorder)
	}
	return fg
}

// drawIcon draws the named icon tinted with fg, or label when the icon is
// missing.
func drawIcon(dst *image.RGBA, clip, r image.Rectangle, name, label string, fg color.RGBA) {
	size := min(r.Dx(), r.Dy()) - 8
	icon, err := assets.IconAt(name, size)
	if err != nil {
		drawLabel(dst, clip, r, label, fg)
		return
	}
	at := image.Pt(r.Min.X+(r.Dx()-size)/2, r.Min.Y+(r.Dy()-size)/2)
	target := image.Rectangle{Min: at, Max: at.Add(image.Pt(size, size))}
	draw.DrawMask(dst, target.Intersect(clip), image.NewUniform(fg), image.Point{},
		icon, icon.Bounds().Min.Add(target.Intersect(clip).Min.Sub(at)), draw.Over)
}

func drawLabel(dst *image.RGBA, clip, r image.Rectangle, label string, fg color.RGBA) {
	face := render.UIFace()
	if face == nil || label == "" {
		return
	}
	sub, ok := dst.SubImage(r.Intersect(clip)).(*image.RGBA)
	if !ok || sub.Bounds().Empty() {
		return
	}
	w := font.MeasureString(face, label).Ceil()
	m := face.Metrics()
	d := &font.Drawer{Dst: sub, Src: image.NewUniform(fg), Face: face}
	d.Dot = fixed.P(r.Min.X+(r.Dx()-w)/2, r.Min.Y+(r.Dy()+m.Ascent.Ceil()-m.Descent.Ceil())/2)
	d.DrawString(label)
}

func fillRect(dst *image.RGBA, clip, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r.Intersect(clip), image.NewUniform(c), image.Point{}, draw.Over)
}

// drawRect draws a one pixel border just inside r.
func drawRect(dst *image.RGBA, clip, r image.Rectangle, c color.RGBA) {
	if r.Empty() {
		return
	}
	for _, e := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		fillRect(dst, clip, e, c)
	}
}
