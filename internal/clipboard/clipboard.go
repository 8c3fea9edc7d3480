// Package clipboard publishes finished images and moves editor text to and
// from the desktop clipboard.
package clipboard

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/text/unicode/norm"
)

var (
	writeImageFn = writeImage
	writeTextFn  = writeText
	readTextFn   = readText
)

// System is the desktop clipboard. The zero value is ready to use.
type System struct{}

// ReadText returns the clipboard text in NFC form.
func (System) ReadText() (string, error) {
	text, err := readTextFn()
	if err != nil {
		return "", err
	}
	return norm.NFC.String(text), nil
}

// WriteText replaces the clipboard with text.
func (System) WriteText(text string) error {
	return writeTextFn(text)
}

// CopyImage publishes img as PNG. The returned channel is closed once
// another program takes the clipboard over. On X11 the data is served by
// this process, so callers that exit early lose it.
func CopyImage(img image.Image) (<-chan struct{}, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode clipboard image: %w", err)
	}
	lost, err := writeImageFn(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("copy image: %w", err)
	}
	return lost, nil
}
