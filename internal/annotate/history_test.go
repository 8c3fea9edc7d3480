package annotate

import (
	"image"
	"image/color"
	"slices"
	"testing"
)

var red = color.RGBA{255, 0, 0, 255}

func snapshot(h *History) ([]*Item, int, int) {
	return slices.Clone(h.Items()), h.UndoDepth(), h.RedoDepth()
}

func TestUndoRedoRoundTrip(t *testing.T) {
	var h History
	first := NewItem(KindRectangle, red, 3, image.Pt(1, 1))
	h.Commit(first)

	beforeItems, beforeUndo, _ := snapshot(&h)
	it := NewItem(KindArrow, red, 3, image.Pt(5, 5))
	h.Commit(it)
	afterItems, afterUndo, _ := snapshot(&h)

	if got := h.Undo(); got != it {
		t.Fatalf("Undo returned %v, want the arrow", got)
	}
	items, undo, redo := snapshot(&h)
	if !slices.Equal(items, beforeItems) || undo != beforeUndo {
		t.Fatalf("undo did not restore pre-commit state: items=%d undo=%d", len(items), undo)
	}
	if redo != 1 {
		t.Fatalf("redo depth = %d, want 1", redo)
	}

	if got := h.Redo(); got != it {
		t.Fatalf("Redo returned %v, want the arrow", got)
	}
	items, undo, _ = snapshot(&h)
	if !slices.Equal(items, afterItems) || undo != afterUndo {
		t.Fatalf("redo did not restore post-commit state")
	}
}

func TestCommitClearsRedo(t *testing.T) {
	var h History
	for i := 0; i < 3; i++ {
		h.Commit(NewItem(KindPen, red, 3, image.Pt(i, i)))
	}
	h.Undo()
	h.Undo()
	if !h.CanRedo() {
		t.Fatalf("expected redo entries")
	}
	h.Commit(NewItem(KindCircle, red, 3, image.Pt(9, 9)))
	if h.CanRedo() {
		t.Fatalf("redo stack should be empty after a new commit")
	}
	if h.Redo() != nil {
		t.Fatalf("Redo should be a no-op")
	}
	if h.Len() != 2 {
		t.Fatalf("Len = %d, want 2", h.Len())
	}
}

func TestUndoRedoOnEmptyStacks(t *testing.T) {
	var h History
	if h.Undo() != nil || h.Redo() != nil {
		t.Fatalf("empty history should ignore undo and redo")
	}
}

func TestDiscardRemovesFromUndo(t *testing.T) {
	var h History
	keep := NewItem(KindPen, red, 3, image.Pt(0, 0))
	text := NewTextItem(red, 3, image.Rect(0, 0, 40, 24))
	h.Commit(keep)
	h.Commit(text)
	if !h.Discard(text) {
		t.Fatalf("Discard reported nothing removed")
	}
	if h.Contains(text) || h.UndoDepth() != 1 {
		t.Fatalf("discarded item still tracked: items=%d undo=%d", h.Len(), h.UndoDepth())
	}
	if got := h.Undo(); got != keep {
		t.Fatalf("Undo after discard = %v, want the pen stroke", got)
	}
	if h.Discard(text) {
		t.Fatalf("second Discard should report false")
	}
}

func TestItemsKeepCommitOrder(t *testing.T) {
	var h History
	var want []*Item
	for _, k := range []Kind{KindPen, KindText, KindRectangle, KindArrow, KindCircle} {
		it := NewItem(k, red, 2, image.Pt(1, 2))
		want = append(want, it)
		h.Commit(it)
	}
	h.Undo()
	h.Redo()
	if !slices.Equal(h.Items(), want) {
		t.Fatalf("items reordered")
	}
}
