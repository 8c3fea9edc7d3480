package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestDropShadowPaintsBelowPanel(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 60, 60))
	panel := image.Rect(20, 20, 40, 30)
	opts := ShadowOptions{Radius: 2, Offset: image.Pt(0, 6), Opacity: 1}
	DropShadow(dst, dst.Bounds(), panel, opts)

	if dst.RGBAAt(30, 34).A == 0 {
		t.Fatalf("expected shadow alpha under the panel")
	}
	if dst.RGBAAt(5, 5).A != 0 {
		t.Fatalf("shadow leaked far from the panel")
	}
	// Blur spreads past the offset panel edge.
	if dst.RGBAAt(30, 37).A == 0 {
		t.Fatalf("expected blurred alpha beyond the shadow edge")
	}
}

func TestDropShadowRespectsClip(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	clip := image.Rect(0, 0, 40, 20)
	DropShadow(dst, clip, image.Rect(10, 10, 30, 25), ShadowOptions{Radius: 3, Offset: image.Pt(0, 3), Opacity: 1})
	for y := 20; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if dst.RGBAAt(x, y).A != 0 {
				t.Fatalf("pixel (%d,%d) outside clip was written", x, y)
			}
		}
	}
}

func TestDropShadowNoOpWhenTransparent(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	DropShadow(dst, dst.Bounds(), image.Rect(2, 2, 6, 6), ShadowOptions{Radius: 12, Offset: image.Pt(1, 1), Opacity: 0})
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := dst.RGBAAt(x, y); got != fill {
				t.Fatalf("pixel mismatch at (%d,%d): got %+v want %+v", x, y, got, fill)
			}
		}
	}
}

func TestShadowBounds(t *testing.T) {
	panel := image.Rect(10, 10, 20, 20)
	got := ShadowBounds(panel, ShadowOptions{Radius: 2, Offset: image.Pt(0, 3), Opacity: 0.5})
	if want := image.Rect(8, 10, 22, 25); got != want {
		t.Fatalf("ShadowBounds = %v, want %v", got, want)
	}
	if got := ShadowBounds(panel, ShadowOptions{}); got != panel {
		t.Fatalf("no shadow should leave bounds unchanged, got %v", got)
	}
}
