package geometry

import (
	"image"
	"math/rand"
	"testing"
)

func TestConstrain(t *testing.T) {
	screen := image.Rect(0, 0, 800, 600)
	tests := []struct {
		name string
		in   image.Rectangle
		want image.Rectangle
	}{
		{"inside", image.Rect(10, 10, 110, 60), image.Rect(10, 10, 110, 60)},
		{"left overflow", image.Rect(-10, 50, 190, 250), image.Rect(0, 50, 200, 250)},
		{"bottom right overflow", image.Rect(700, 550, 900, 650), image.Rect(600, 500, 800, 600)},
		{"too small", image.Rect(100, 100, 105, 103), image.Rect(100, 100, 120, 120)},
		{"too small at edge", image.Rect(795, 595, 800, 600), image.Rect(780, 580, 800, 600)},
		{"bigger than screen", image.Rect(-50, -50, 900, 700), image.Rect(0, 0, 800, 600)},
		{"inverted", image.Rect(300, 250, 100, 100), image.Rect(100, 100, 300, 250)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Constrain(tt.in, screen, DefaultMinSize); got != tt.want {
				t.Fatalf("Constrain(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDragOffScreenClampsToEdge(t *testing.T) {
	screen := image.Rect(0, 0, 800, 600)
	got := Constrain(RectAt(image.Pt(-10, 50), 200, 200), screen, DefaultMinSize)
	want := image.Rect(0, 50, 200, 250)
	if got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestResizeFlipsPastOppositeCorner(t *testing.T) {
	r := image.Rect(100, 100, 200, 200)
	got := Resize(r, HandleTopLeft, image.Pt(250, 260))
	if want := image.Rect(200, 200, 250, 260); got != want {
		t.Fatalf("got %v want %v", got, want)
	}
	got = Resize(r, HandleRight, image.Pt(40, 999))
	if want := image.Rect(40, 100, 100, 200); got != want {
		t.Fatalf("right edge: got %v want %v", got, want)
	}
	got = Resize(r, HandleBottom, image.Pt(999, 150))
	if want := image.Rect(100, 100, 200, 150); got != want {
		t.Fatalf("bottom edge: got %v want %v", got, want)
	}
}

func TestResizeSequencesStayOnScreen(t *testing.T) {
	screen := image.Rect(0, 0, 800, 600)
	rng := rand.New(rand.NewSource(7))
	r := image.Rect(100, 100, 300, 250)
	for i := 0; i < 5000; i++ {
		h := SelectionHandles[rng.Intn(len(SelectionHandles))]
		p := image.Pt(rng.Intn(1200)-200, rng.Intn(1000)-200)
		r = Constrain(Resize(r, h, p), screen, DefaultMinSize)
		if r.Min.X < 0 || r.Min.Y < 0 || r.Max.X > 800 || r.Max.Y > 600 {
			t.Fatalf("step %d: %v escaped the screen", i, r)
		}
		if r.Dx() < DefaultMinSize || r.Dy() < DefaultMinSize {
			t.Fatalf("step %d: %v below minimum size", i, r)
		}
	}
}

func TestHitHandle(t *testing.T) {
	r := image.Rect(100, 100, 300, 200)
	tests := []struct {
		p    image.Point
		want Handle
	}{
		{image.Pt(100, 100), HandleTopLeft},
		{image.Pt(200, 98), HandleTop},
		{image.Pt(303, 97), HandleTopRight},
		{image.Pt(300, 150), HandleRight},
		{image.Pt(299, 201), HandleBottomRight},
		{image.Pt(200, 200), HandleBottom},
		{image.Pt(100, 200), HandleBottomLeft},
		{image.Pt(96, 150), HandleLeft},
		{image.Pt(200, 150), HandleNone},
		{image.Pt(50, 50), HandleNone},
	}
	for _, tt := range tests {
		if got := HitHandle(r, tt.p, SelectionHandles, DefaultHandleSize, 5); got != tt.want {
			t.Errorf("HitHandle(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if got := HitHandle(image.Rectangle{}, image.Pt(0, 0), SelectionHandles, DefaultHandleSize, 5); got != HandleNone {
		t.Errorf("empty rect hit %v", got)
	}
}

func TestCursorFor(t *testing.T) {
	tests := map[Handle]Cursor{
		HandleTopLeft:     CursorResizeDiagonal,
		HandleBottomRight: CursorResizeDiagonal,
		HandleTopRight:    CursorResizeAntiDiagonal,
		HandleBottomLeft:  CursorResizeAntiDiagonal,
		HandleTop:         CursorResizeVertical,
		HandleBottom:      CursorResizeVertical,
		HandleLeft:        CursorResizeHorizontal,
		HandleRight:       CursorResizeHorizontal,
		HandleNone:        CursorCrosshair,
	}
	for h, want := range tests {
		if got := CursorFor(h); got != want {
			t.Errorf("CursorFor(%v) = %v, want %v", h, got, want)
		}
	}
}

func TestBoundsAndUnion(t *testing.T) {
	pts := []image.Point{{5, 9}, {1, 3}, {7, 4}}
	if got, want := Bounds(pts), image.Rect(1, 3, 8, 10); got != want {
		t.Fatalf("Bounds = %v want %v", got, want)
	}
	if got := Union(image.Rectangle{}, image.Rect(1, 1, 2, 2)); got != image.Rect(1, 1, 2, 2) {
		t.Fatalf("Union with empty = %v", got)
	}
	if got := Manhattan(image.Pt(0, 0), image.Pt(-3, 4)); got != 7 {
		t.Fatalf("Manhattan = %d", got)
	}
}
