package capture

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/kbinani/screenshot"
)

// ErrNoMonitors is returned when no active display is found.
var ErrNoMonitors = errors.New("no monitors available")

// MonitorInfo describes an individual monitor in the display layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

var (
	displayCountFn  = screenshot.NumActiveDisplays
	displayBoundsFn = screenshot.GetDisplayBounds
	captureRectFn   = screenshot.CaptureRect
	monitorNamesFn  = randrMonitors
)

// ListMonitors lists the active displays. Names come from RandR where the
// X server offers it, otherwise monitors are called "display-N".
func ListMonitors() ([]MonitorInfo, error) {
	n := displayCountFn()
	if n <= 0 {
		if named, err := monitorNamesFn(); err == nil && len(named) > 0 {
			return named, nil
		}
		return nil, ErrNoMonitors
	}
	named, _ := monitorNamesFn()
	monitors := make([]MonitorInfo, 0, n)
	for i := 0; i < n; i++ {
		mon := MonitorInfo{
			Index:   i,
			Name:    fmt.Sprintf("display-%d", i),
			Rect:    displayBoundsFn(i),
			Primary: i == 0 && len(named) == 0,
		}
		for _, nm := range named {
			if nm.Rect == mon.Rect {
				mon.Name = nm.Name
				mon.Primary = nm.Primary
				break
			}
		}
		monitors = append(monitors, mon)
	}
	return monitors, nil
}

// VirtualBounds is the union of every monitor rectangle.
func VirtualBounds(monitors []MonitorInfo) image.Rectangle {
	var r image.Rectangle
	for _, mon := range monitors {
		r = r.Union(mon.Rect)
	}
	return r
}

// FindMonitor resolves a monitor selector against the provided list.
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, ErrNoMonitors
	}
	sel := strings.TrimSpace(selector)
	if sel == "" {
		return monitors[0], nil
	}
	lower := strings.ToLower(sel)
	if lower == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	lower = strings.TrimPrefix(lower, "#")
	if idx, err := strconv.Atoi(lower); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return MonitorInfo{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), lower) {
			return mon, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("monitor %q not found", selector)
}
