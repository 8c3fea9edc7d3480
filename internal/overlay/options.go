package overlay

import (
	"image"
	"image/color"
	"log"
	"time"

	"github.com/example/snapmark/internal/geometry"
)

// Settings holds the tunable interaction constants.
type Settings struct {
	MinSelection int
	HandleSize   int
	HandleMargin int

	DoubleClick     time.Duration
	DoubleClickSlop int
	LongPress       time.Duration
	LongPressSlop   int

	TextDragThreshold int
	TextHandleRadius  int
	TextBodyMargin    int

	DefaultColor color.RGBA
	DefaultWidth int
}

// DefaultSettings returns the stock interaction constants.
func DefaultSettings() Settings {
	return Settings{
		MinSelection:      geometry.DefaultMinSize,
		HandleSize:        geometry.DefaultHandleSize,
		HandleMargin:      5,
		DoubleClick:       300 * time.Millisecond,
		DoubleClickSlop:   10,
		LongPress:         100 * time.Millisecond,
		LongPressSlop:     10,
		TextDragThreshold: 5,
		TextHandleRadius:  12,
		TextBodyMargin:    8,
		DefaultColor:      color.RGBA{255, 0, 0, 255},
		DefaultWidth:      3,
	}
}

// Clipboard is the text clipboard used by the inline editor.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(string) error
}

// CursorSetter receives pointer shape changes.
type CursorSetter interface {
	SetCursor(geometry.Cursor)
}

// CursorFunc adapts a function to CursorSetter.
type CursorFunc func(geometry.Cursor)

func (f CursorFunc) SetCursor(c geometry.Cursor) { f(c) }

// Measurer returns the extent of text at a font size. A width above zero
// wraps lines at that width.
type Measurer func(text string, size, width int) image.Point

// Option configures an Overlay.
type Option func(*Overlay)

// WithLogger routes gesture logging to l.
func WithLogger(l *log.Logger) Option {
	return func(o *Overlay) {
		if l != nil {
			o.log = l
		}
	}
}

// WithSettings replaces the interaction constants. Zero fields keep their
// defaults.
func WithSettings(s Settings) Option {
	return func(o *Overlay) {
		d := DefaultSettings()
		if s.MinSelection <= 0 {
			s.MinSelection = d.MinSelection
		}
		if s.HandleSize <= 0 {
			s.HandleSize = d.HandleSize
		}
		if s.HandleMargin < 0 {
			s.HandleMargin = d.HandleMargin
		}
		if s.DoubleClick <= 0 {
			s.DoubleClick = d.DoubleClick
		}
		if s.DoubleClickSlop <= 0 {
			s.DoubleClickSlop = d.DoubleClickSlop
		}
		if s.LongPress <= 0 {
			s.LongPress = d.LongPress
		}
		if s.LongPressSlop <= 0 {
			s.LongPressSlop = d.LongPressSlop
		}
		if s.TextDragThreshold <= 0 {
			s.TextDragThreshold = d.TextDragThreshold
		}
		if s.TextHandleRadius <= 0 {
			s.TextHandleRadius = d.TextHandleRadius
		}
		if s.TextBodyMargin < 0 {
			s.TextBodyMargin = d.TextBodyMargin
		}
		if s.DefaultColor.A == 0 {
			s.DefaultColor = d.DefaultColor
		}
		if s.DefaultWidth <= 0 {
			s.DefaultWidth = d.DefaultWidth
		}
		o.cfg = s
		o.color = s.DefaultColor
		o.width = s.DefaultWidth
	}
}

// WithScheduler sets the long press timer source.
func WithScheduler(s Scheduler) Option {
	return func(o *Overlay) { o.sched = s }
}

// WithClipboard sets the clipboard used for copy and paste while editing.
func WithClipboard(c Clipboard) Option {
	return func(o *Overlay) { o.clip = c }
}

// WithCursorSetter sets the receiver of pointer shape changes.
func WithCursorSetter(c CursorSetter) Option {
	return func(o *Overlay) { o.cursor = c }
}

// WithMeasurer replaces the text measurement used for box growth.
func WithMeasurer(m Measurer) Option {
	return func(o *Overlay) {
		if m != nil {
			o.measure = m
		}
	}
}
