package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func swapBackend(t *testing.T) {
	t.Helper()
	prevImage, prevWrite, prevRead := writeImageFn, writeTextFn, readTextFn
	t.Cleanup(func() {
		writeImageFn, writeTextFn, readTextFn = prevImage, prevWrite, prevRead
	})
}

func TestReadTextNormalizes(t *testing.T) {
	swapBackend(t)
	readTextFn = func() (string, error) { return "café", nil }
	got, err := System{}.ReadText()
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if got != "café" {
		t.Fatalf("ReadText = %q, want composed form", got)
	}
}

func TestReadTextError(t *testing.T) {
	swapBackend(t)
	want := errors.New("no owner")
	readTextFn = func() (string, error) { return "", want }
	if _, err := (System{}).ReadText(); !errors.Is(err, want) {
		t.Fatalf("ReadText error = %v, want %v", err, want)
	}
}

func TestWriteText(t *testing.T) {
	swapBackend(t)
	var got string
	writeTextFn = func(s string) error { got = s; return nil }
	if err := (System{}).WriteText("hello"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if got != "hello" {
		t.Fatalf("backend received %q", got)
	}
}

func TestCopyImageEncodesPNG(t *testing.T) {
	swapBackend(t)
	var data []byte
	lost := make(chan struct{})
	writeImageFn = func(b []byte) (<-chan struct{}, error) {
		data = b
		return lost, nil
	}
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 1, color.RGBA{10, 20, 30, 255})

	ch, err := CopyImage(img)
	if err != nil {
		t.Fatalf("CopyImage: %v", err)
	}
	if ch != (<-chan struct{})(lost) {
		t.Fatalf("CopyImage should hand back the ownership channel")
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("bounds = %v", decoded.Bounds())
	}
	r, g, b, _ := decoded.At(2, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Fatalf("pixel = %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestCopyImageWrapsError(t *testing.T) {
	swapBackend(t)
	want := errors.New("denied")
	writeImageFn = func([]byte) (<-chan struct{}, error) { return nil, want }
	_, err := CopyImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if !errors.Is(err, want) {
		t.Fatalf("error = %v", err)
	}
}
