package main

import (
	"image"
	"image/color"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/snapmark/internal/config"
	"github.com/example/snapmark/internal/geometry"
	"github.com/example/snapmark/internal/overlay"
)

func newTestSession(t *testing.T) *session {
	t.Helper()
	bg := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for i := range bg.Pix {
		bg.Pix[i] = 0xC0
	}
	frame := image.NewRGBA(bg.Bounds())
	s := newSession(bg, frame, windowOptions{}, nil)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		base = base.Add(time.Second)
		return base
	}
	return s
}

func (s *session) drag(from, to image.Point) {
	s.mouse(mouse.Event{X: float32(from.X), Y: float32(from.Y), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	s.mouse(mouse.Event{X: float32(to.X), Y: float32(to.Y), Direction: mouse.DirNone})
	s.mouse(mouse.Event{X: float32(to.X), Y: float32(to.Y), Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
}

func TestSessionSelectAndPaint(t *testing.T) {
	s := newTestSession(t)
	if d := s.paint(); d != s.frame.Bounds() {
		t.Fatalf("first paint = %v, want full frame", d)
	}
	s.drag(image.Pt(100, 100), image.Pt(300, 250))
	if got, want := s.ov.Selection(), image.Rect(100, 100, 300, 250); got != want {
		t.Fatalf("selection = %v, want %v", got, want)
	}
	if !s.tb.Visible() {
		t.Fatalf("toolbar should be laid out for the selection")
	}
	d := s.paint()
	if !image.Rect(100, 100, 300, 250).In(d) {
		t.Fatalf("paint damage %v does not cover the selection", d)
	}
	inside := s.frame.RGBAAt(200, 180)
	outside := s.frame.RGBAAt(10, 10)
	if inside != (color.RGBA{0xC0, 0xC0, 0xC0, 0xC0}) {
		t.Errorf("inside pixel = %v, want the background", inside)
	}
	if outside == inside {
		t.Errorf("outside pixel should be dimmed")
	}
	if d := s.paint(); !d.Empty() {
		t.Errorf("idle paint = %v, want nothing", d)
	}
}

func TestSessionToolbarPressDoesNotReachOverlay(t *testing.T) {
	s := newTestSession(t)
	s.drag(image.Pt(100, 100), image.Pt(300, 250))
	sel := s.ov.Selection()
	p := s.tb.Rect().Min.Add(image.Pt(1, 1))
	s.mouse(mouse.Event{X: float32(p.X), Y: float32(p.Y), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	if !s.onToolbar {
		t.Fatalf("press at %v should be taken by the toolbar %v", p, s.tb.Rect())
	}
	if s.cursor.Shape() != geometry.CursorArrow {
		t.Errorf("cursor over toolbar = %v, want arrow", s.cursor.Shape())
	}
	s.mouse(mouse.Event{X: float32(p.X), Y: float32(p.Y), Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
	if s.onToolbar {
		t.Errorf("release should end the toolbar press")
	}
	if got := s.ov.Selection(); got != sel {
		t.Errorf("selection = %v, want %v", got, sel)
	}
}

func TestSessionKeys(t *testing.T) {
	s := newTestSession(t)
	s.drag(image.Pt(50, 60), image.Pt(250, 200))
	s.key(key.Event{Code: key.CodeReturnEnter, Direction: key.DirPress})
	if !s.ov.Done() {
		t.Fatalf("enter should finish the overlay")
	}
	res := s.ov.Result()
	if res.Status != overlay.StatusCommitted || res.Action != overlay.ActionCopy {
		t.Fatalf("result = %v/%v, want committed copy", res.Status, res.Action)
	}
	if got := res.Image.Bounds().Size(); got != image.Pt(200, 140) {
		t.Errorf("image size = %v", got)
	}

	s = newTestSession(t)
	s.key(key.Event{Code: key.CodeEscape, Direction: key.DirPress})
	if s.ov.Result().Status != overlay.StatusCancelled {
		t.Fatalf("escape with nothing selected should cancel")
	}

	s = newTestSession(t)
	s.drag(image.Pt(50, 60), image.Pt(250, 200))
	s.key(key.Event{Rune: 0x13, Code: key.CodeS, Direction: key.DirPress, Modifiers: key.ModControl})
	if res := s.ov.Result(); res.Status != overlay.StatusCommitted || res.Action != overlay.ActionSave {
		t.Fatalf("ctrl+s result = %v/%v, want committed save", res.Status, res.Action)
	}
}

func TestSessionCursorFollowsOverlay(t *testing.T) {
	s := newTestSession(t)
	if s.cursor.Shape() != geometry.CursorCrosshair {
		t.Fatalf("initial cursor = %v, want crosshair", s.cursor.Shape())
	}
	s.drag(image.Pt(100, 100), image.Pt(300, 250))
	s.mouse(mouse.Event{X: 200, Y: 180, Direction: mouse.DirNone})
	if s.cursor.Shape() != geometry.CursorOpenHand {
		t.Errorf("cursor inside selection = %v, want open hand", s.cursor.Shape())
	}
}

func TestOverlaySettingsFromConfig(t *testing.T) {
	got := overlaySettings(config.Overlay{MinSelection: 20, LongPressMS: 250, DefaultWidth: 5})
	if got.MinSelection != 20 || got.LongPress != 250*time.Millisecond || got.DefaultWidth != 5 {
		t.Fatalf("settings = %+v", got)
	}
	if got.DoubleClick != 0 || got.HandleMargin >= 0 {
		t.Fatalf("unset values should defer to defaults: %+v", got)
	}
}

func TestZeroOrigin(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 30, 40))
	img.SetRGBA(10, 20, color.RGBA{1, 2, 3, 255})
	out := zeroOrigin(img)
	if out.Bounds() != image.Rect(0, 0, 20, 20) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if out.RGBAAt(0, 0) != (color.RGBA{1, 2, 3, 255}) {
		t.Fatalf("pixel not moved to origin")
	}
	same := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if zeroOrigin(same) != same {
		t.Fatalf("zero-origin image should be returned as is")
	}
}
