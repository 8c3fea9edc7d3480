//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"fmt"
	"image"
)

func runningOnWayland() bool { return false }

func rootScreenshot() (*image.RGBA, error) {
	return nil, fmt.Errorf("x11 capture is not supported on this platform")
}

func randrMonitors() ([]MonitorInfo, error) {
	return nil, fmt.Errorf("randr is not supported on this platform")
}

func portalScreenshot(Options) (*image.RGBA, error) {
	return nil, fmt.Errorf("portal screenshot is not supported on this platform")
}
