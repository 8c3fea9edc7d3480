package render

import (
	"errors"
	"image"
	"testing"

	"github.com/example/snapmark/internal/annotate"
)

func TestLayerKeepsFirstError(t *testing.T) {
	l := newLayer(image.NewRGBA(image.Rect(0, 0, 10, 10)), image.Rect(0, 0, 10, 10))
	first := errors.New("first")
	l.check(nil)
	l.check(first)
	l.check(errors.New("second"))
	if l.err != first {
		t.Fatalf("err = %v, want %v", l.err, first)
	}
}

func TestPaintItemsPenDot(t *testing.T) {
	screen := image.Rect(0, 0, 40, 40)
	dst := image.NewRGBA(screen)
	dot := annotate.NewItem(annotate.KindPen, red, 6, image.Pt(20, 20))
	if err := New(nil).paintItems(dst, screen, []*annotate.Item{dot}, nil); err != nil {
		t.Fatalf("paintItems: %v", err)
	}
	if c := dst.RGBAAt(20, 20); c.R == 0 || c.A == 0 {
		t.Fatalf("pen dot centre = %v, want red ink", c)
	}
	if c := dst.RGBAAt(2, 2); c.A != 0 {
		t.Fatalf("pixel far from the dot was painted: %v", c)
	}
}
