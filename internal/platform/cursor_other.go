//go:build !windows

package platform

import "github.com/example/snapmark/internal/geometry"

// shiny offers no pointer shape control outside Windows.
func applyCursor(geometry.Cursor) bool { return false }
