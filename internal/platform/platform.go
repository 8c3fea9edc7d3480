// Package platform wraps the host desktop: notifications and pointer shapes.
package platform

import "github.com/example/snapmark/internal/geometry"

// AppName is reported to notification servers.
const AppName = "snapmark"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
}

// Cursor remembers the requested pointer shape and applies it to the
// window under the pointer where the platform allows it.
type Cursor struct {
	shape   geometry.Cursor
	applied bool
}

// SetCursor records c and applies it.
func (c *Cursor) SetCursor(shape geometry.Cursor) {
	c.shape = shape
	c.applied = applyCursor(shape)
}

// Shape returns the last requested shape.
func (c *Cursor) Shape() geometry.Cursor { return c.shape }

// Refresh reapplies the shape. Windows resets the pointer to the class
// cursor on every move, so callers refresh after pointer events.
func (c *Cursor) Refresh() {
	if c.applied {
		applyCursor(c.shape)
	}
}
