package main

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/snapmark/internal/clipboard"
	"github.com/example/snapmark/internal/config"
	"github.com/example/snapmark/internal/geometry"
	"github.com/example/snapmark/internal/logutil"
	"github.com/example/snapmark/internal/overlay"
	"github.com/example/snapmark/internal/platform"
	"github.com/example/snapmark/internal/render"
	"github.com/example/snapmark/internal/theme"
	"github.com/example/snapmark/internal/toolbar"
)

// windowOptions configures one overlay window.
type windowOptions struct {
	title    string
	theme    *theme.Theme
	settings overlay.Settings
	logger   *log.Logger
}

// overlaySettings maps the rc file's overlay section onto the interaction
// constants. Zero values keep the built-in defaults.
func overlaySettings(c config.Overlay) overlay.Settings {
	return overlay.Settings{
		MinSelection:      c.MinSelection,
		HandleSize:        c.HandleSize,
		HandleMargin:      -1,
		LongPress:         time.Duration(c.LongPressMS) * time.Millisecond,
		DoubleClick:       time.Duration(c.DoubleClickMS) * time.Millisecond,
		TextDragThreshold: c.TextDragThreshold,
		TextBodyMargin:    -1,
		DefaultColor:      c.DefaultColor,
		DefaultWidth:      c.DefaultWidth,
	}
}

// runEvent carries a callback onto the window's event goroutine.
type runEvent struct{ f func() }

// session routes window input to the toolbar and the overlay and paints
// their combined state into frame.
type session struct {
	ov     *overlay.Overlay
	tb     *toolbar.Toolbar
	r      *render.Renderer
	frame  *image.RGBA
	cursor platform.Cursor
	log    *log.Logger
	now    func() time.Time

	want      geometry.Cursor
	lastPoint image.Point
	onToolbar bool // the left button went down on the toolbar
	dirty     image.Rectangle
}

func newSession(bg *image.RGBA, frame *image.RGBA, opts windowOptions, post func(func())) *session {
	s := &session{
		tb:    toolbar.New(opts.theme),
		r:     render.New(opts.theme),
		frame: frame,
		log:   opts.logger,
		now:   time.Now,
		want:  geometry.CursorCrosshair,
	}
	if s.log == nil {
		s.log = logutil.Debug(false)
	}
	ovOpts := []overlay.Option{
		overlay.WithLogger(s.log),
		overlay.WithSettings(opts.settings),
		overlay.WithClipboard(clipboard.System{}),
		overlay.WithCursorSetter(overlay.CursorFunc(func(c geometry.Cursor) { s.want = c })),
		overlay.WithMeasurer(render.MeasureText),
	}
	if post != nil {
		ovOpts = append(ovOpts, overlay.WithScheduler(overlay.PostingScheduler(post)))
	}
	s.ov = overlay.New(bg, ovOpts...)
	if c := opts.settings.DefaultColor; c.A != 0 {
		s.tb.EnsurePaletteColor(c, "")
	}
	s.dirty = bg.Bounds()
	s.layout()
	s.applyCursor()
	return s
}

func (s *session) add(rects ...image.Rectangle) {
	for _, r := range rects {
		if !r.Empty() {
			s.dirty = s.dirty.Union(r)
		}
	}
}

func (s *session) layout() {
	s.add(s.tb.Layout(s.ov.Model()))
}

// applyCursor shows an arrow over the toolbar and the overlay's shape
// everywhere else.
func (s *session) applyCursor() {
	shape := s.want
	if s.tb.Contains(s.lastPoint) && !s.ov.Done() {
		shape = geometry.CursorArrow
	}
	if shape != s.cursor.Shape() {
		s.cursor.SetCursor(shape)
	} else {
		s.cursor.Refresh()
	}
}

func (s *session) mouse(e mouse.Event) {
	p := image.Pt(int(e.X), int(e.Y))
	s.lastPoint = p
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		taken, d := s.tb.Press(p)
		s.add(d)
		if taken {
			s.onToolbar = true
			break
		}
		s.add(s.ov.PointerDown(p, s.now()))
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		if s.onToolbar {
			s.onToolbar = false
			s.add(s.tb.Release(p, s.ov))
			break
		}
		s.add(s.ov.PointerUp(p))
	case e.Direction == mouse.DirNone:
		s.add(s.tb.Hover(p))
		if !s.onToolbar {
			s.add(s.ov.PointerMove(p))
		}
	}
	s.layout()
	s.applyCursor()
}

func (s *session) key(e key.Event) {
	ke, ok := translateKey(e)
	if !ok {
		return
	}
	s.log.Printf("key %+v", ke)
	if s.tb.Entering() {
		switch {
		case ke.Key == overlay.KeyEscape:
			s.add(s.tb.CancelEntry())
		case ke.Key == overlay.KeyEnter:
			s.add(s.tb.SubmitEntry(s.ov))
		case ke.Key == overlay.KeyBackspace:
			s.add(s.tb.EntryBackspace())
		case printable(ke):
			s.add(s.tb.EntryRune(ke.Rune))
		}
		s.layout()
		return
	}
	s.add(s.ov.KeyDown(ke))
	s.layout()
	s.applyCursor()
}

// paint redraws everything damaged since the last paint and returns the
// area that changed.
func (s *session) paint() image.Rectangle {
	s.add(s.ov.TakeDamage())
	d := s.dirty.Intersect(s.frame.Bounds())
	s.dirty = image.Rectangle{}
	if d.Empty() {
		return d
	}
	s.r.Draw(s.frame, d, s.ov.Frame())
	s.tb.Draw(s.frame, d)
	return d
}

// runOverlay shows bg in a window and blocks until the overlay commits or
// is cancelled, or the window is closed.
func runOverlay(bg *image.RGBA, opts windowOptions) (overlay.Result, error) {
	bg = zeroOrigin(bg)
	var (
		res    overlay.Result
		runErr error
	)
	driver.Main(func(scr screen.Screen) {
		res, runErr = runWindow(scr, bg, opts)
	})
	return res, runErr
}

func runWindow(scr screen.Screen, bg *image.RGBA, opts windowOptions) (overlay.Result, error) {
	dim := bg.Bounds().Size()
	w, err := scr.NewWindow(&screen.NewWindowOptions{Width: dim.X, Height: dim.Y, Title: opts.title})
	if err != nil {
		return overlay.Result{}, fmt.Errorf("open window: %w", err)
	}
	defer w.Release()
	buf, err := scr.NewBuffer(dim)
	if err != nil {
		return overlay.Result{}, fmt.Errorf("allocate frame buffer: %w", err)
	}
	defer buf.Release()

	s := newSession(bg, buf.RGBA(), opts, func(f func()) { w.Send(runEvent{f}) })
	w.Send(paint.Event{})

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				s.ov.Cancel()
				return s.ov.Result(), nil
			}
		case size.Event:
			s.add(bg.Bounds())
		case paint.Event:
			if d := s.paint(); !d.Empty() {
				w.Upload(d.Min, buf, d)
			}
			w.Publish()
			continue
		case mouse.Event:
			s.mouse(e)
		case key.Event:
			s.key(e)
		case runEvent:
			e.f()
			s.layout()
			s.applyCursor()
		case error:
			s.log.Printf("window: %v", e)
		}
		if s.ov.Done() {
			return s.ov.Result(), nil
		}
		w.Send(paint.Event{})
	}
}

func zeroOrigin(img *image.RGBA) *image.RGBA {
	if img.Bounds().Min == (image.Point{}) {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}
