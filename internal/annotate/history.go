package annotate

import "slices"

// History owns the committed items together with the undo and redo stacks.
// Items are drawn in the order they appear in Items.
type History struct {
	items []*Item
	undo  []*Item
	redo  []*Item
}

// Items returns the committed items in drawing order. The slice must not be
// modified.
func (h *History) Items() []*Item { return h.items }

// Len returns the number of committed items.
func (h *History) Len() int { return len(h.items) }

// CanUndo reports whether Undo has anything to do.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo has anything to do.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Contains reports whether it is currently committed.
func (h *History) Contains(it *Item) bool {
	return slices.Contains(h.items, it)
}

// Commit appends it to the committed list and the undo stack and drops any
// redo entries.
func (h *History) Commit(it *Item) {
	if it == nil {
		return
	}
	h.items = append(h.items, it)
	h.undo = append(h.undo, it)
	clear(h.redo)
	h.redo = h.redo[:0]
}

// Undo removes the most recent commit. It returns nil when there is nothing
// to undo.
func (h *History) Undo() *Item {
	if len(h.undo) == 0 {
		return nil
	}
	it := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.items = remove(h.items, it)
	h.redo = append(h.redo, it)
	return it
}

// Redo re-applies the most recently undone item.
func (h *History) Redo() *Item {
	if len(h.redo) == 0 {
		return nil
	}
	it := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.items = append(h.items, it)
	h.undo = append(h.undo, it)
	return it
}

// Discard removes it from the committed list and the undo stack without
// making it redoable.
func (h *History) Discard(it *Item) bool {
	if !h.Contains(it) && !slices.Contains(h.undo, it) {
		return false
	}
	h.items = remove(h.items, it)
	h.undo = remove(h.undo, it)
	return true
}

// UndoDepth and RedoDepth report the stack sizes.
func (h *History) UndoDepth() int { return len(h.undo) }

func (h *History) RedoDepth() int { return len(h.redo) }

func remove(list []*Item, it *Item) []*Item {
	if i := slices.Index(list, it); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}
