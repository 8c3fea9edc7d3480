package geometry

// Cursor is the pointer shape requested by the overlay.
type Cursor int

const (
	CursorArrow Cursor = iota
	CursorCrosshair
	CursorOpenHand
	CursorClosedHand
	CursorResizeDiagonal     // top-left to bottom-right
	CursorResizeAntiDiagonal // top-right to bottom-left
	CursorResizeVertical
	CursorResizeHorizontal
	CursorText
)

var cursorNames = [...]string{
	CursorArrow:              "arrow",
	CursorCrosshair:          "crosshair",
	CursorOpenHand:           "open-hand",
	CursorClosedHand:         "closed-hand",
	CursorResizeDiagonal:     "resize-fdiag",
	CursorResizeAntiDiagonal: "resize-bdiag",
	CursorResizeVertical:     "resize-ver",
	CursorResizeHorizontal:   "resize-hor",
	CursorText:               "ibeam",
}

func (c Cursor) String() string {
	if c >= 0 && int(c) < len(cursorNames) {
		return cursorNames[c]
	}
	return "unknown"
}

// CursorFor returns the resize cursor matching a handle.
func CursorFor(h Handle) Cursor {
	switch h {
	case HandleTopLeft, HandleBottomRight:
		return CursorResizeDiagonal
	case HandleTopRight, HandleBottomLeft:
		return CursorResizeAntiDiagonal
	case HandleTop, HandleBottom:
		return CursorResizeVertical
	case HandleLeft, HandleRight:
		return CursorResizeHorizontal
	}
	return CursorCrosshair
}
