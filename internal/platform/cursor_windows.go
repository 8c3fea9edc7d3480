//go:build windows

package platform

import (
	"github.com/lxn/win"

	"github.com/example/snapmark/internal/geometry"
)

var cursorIDs = map[geometry.Cursor]uintptr{
	geometry.CursorArrow:              win.IDC_ARROW,
	geometry.CursorCrosshair:          win.IDC_CROSS,
	geometry.CursorOpenHand:           win.IDC_HAND,
	geometry.CursorClosedHand:         win.IDC_SIZEALL,
	geometry.CursorResizeDiagonal:     win.IDC_SIZENWSE,
	geometry.CursorResizeAntiDiagonal: win.IDC_SIZENESW,
	geometry.CursorResizeVertical:     win.IDC_SIZENS,
	geometry.CursorResizeHorizontal:   win.IDC_SIZEWE,
	geometry.CursorText:               win.IDC_IBEAM,
}

var cursorCache = map[geometry.Cursor]win.HCURSOR{}

func applyCursor(shape geometry.Cursor) bool {
	h, ok := cursorCache[shape]
	if !ok {
		id, known := cursorIDs[shape]
		if !known {
			id = win.IDC_ARROW
		}
		h = win.LoadCursor(0, win.MAKEINTRESOURCE(id))
		cursorCache[shape] = h
	}
	if h == 0 {
		return false
	}
	win.SetCursor(h)
	return true
}
