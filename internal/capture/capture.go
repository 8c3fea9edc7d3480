package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"
)

// Options controls a screen capture.
type Options struct {
	// Display selects a single monitor ("primary", "#1", a name fragment).
	// Empty captures the whole virtual screen.
	Display string
	// IncludeCursor asks the portal to embed the pointer.
	IncludeCursor bool
}

// Shot is a captured screen.
type Shot struct {
	// Image starts at the origin.
	Image *image.RGBA
	// Area is the captured region in global desktop coordinates.
	Area image.Rectangle
	// Source names the backend that produced the pixels.
	Source string
}

var (
	rootScreenshotFn   = rootScreenshot
	portalScreenshotFn = portalScreenshot
)

type source struct {
	name string
	grab func(area image.Rectangle, opts Options) (*image.RGBA, error)
}

// Screen captures the desktop, or the monitor named by opts.Display. The
// backends are tried in order and the first image wins.
func Screen(opts Options) (*Shot, error) {
	area, err := targetArea(opts.Display)
	if err != nil {
		return nil, fmt.Errorf("capture display %q: %w", opts.Display, err)
	}
	var errs []error
	for _, src := range sources() {
		img, err := src.grab(area, opts)
		if err != nil {
			log.Printf("capture: %s backend: %v", src.name, err)
			errs = append(errs, fmt.Errorf("%s: %w", src.name, err))
			continue
		}
		if area.Empty() {
			area = image.Rectangle{Max: img.Bounds().Size()}
		}
		return &Shot{Image: img, Area: area, Source: src.name}, nil
	}
	return nil, fmt.Errorf("capture screen: %w", errors.Join(errs...))
}

func sources() []source {
	direct := source{name: "screenshot", grab: func(area image.Rectangle, _ Options) (*image.RGBA, error) {
		if area.Empty() {
			return nil, ErrNoMonitors
		}
		img, err := captureRectFn(area)
		if err != nil {
			return nil, err
		}
		return rebase(img), nil
	}}
	root := source{name: "x11", grab: func(area image.Rectangle, _ Options) (*image.RGBA, error) {
		img, err := rootScreenshotFn()
		if err != nil {
			return nil, err
		}
		return cropToRect(img, area)
	}}
	portal := source{name: "portal", grab: func(area image.Rectangle, opts Options) (*image.RGBA, error) {
		img, err := portalScreenshotFn(opts)
		if err != nil {
			return nil, err
		}
		return cropToRect(img, area)
	}}
	if runningOnWayland() {
		return []source{portal, direct}
	}
	return []source{direct, root, portal}
}

// targetArea resolves the display selector to a desktop rectangle. An
// empty result means the size is not known until an image arrives.
func targetArea(display string) (image.Rectangle, error) {
	monitors, err := ListMonitors()
	if err != nil {
		if display != "" {
			return image.Rectangle{}, err
		}
		return image.Rectangle{}, nil
	}
	if display == "" {
		return VirtualBounds(monitors), nil
	}
	mon, err := FindMonitor(monitors, display)
	if err != nil {
		return image.Rectangle{}, err
	}
	return mon.Rect, nil
}

// cropToRect returns the part of src inside rect, moved to the origin.
// An empty rect keeps the whole image.
func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	if rect.Empty() {
		return rebase(src), nil
	}
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}

func rebase(src *image.RGBA) *image.RGBA {
	if src.Bounds().Min == (image.Point{}) {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}
