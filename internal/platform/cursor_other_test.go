//go:build !windows

package platform

import (
	"testing"

	"github.com/example/snapmark/internal/geometry"
)

func TestCursorRemembersShape(t *testing.T) {
	var c Cursor
	if c.Shape() != geometry.CursorArrow {
		t.Fatalf("zero cursor should be the arrow")
	}
	c.SetCursor(geometry.CursorText)
	c.Refresh()
	if c.Shape() != geometry.CursorText {
		t.Fatalf("shape = %v, want text", c.Shape())
	}
}
