package overlay

import "image"

// Status is the overlay's terminal state.
type Status int

const (
	StatusActive Status = iota
	StatusCancelled
	StatusCommitted
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCancelled:
		return "cancelled"
	case StatusCommitted:
		return "committed"
	}
	return "unknown"
}

// Action tells the caller what to do with a committed image.
type Action int

const (
	ActionCopy Action = iota
	ActionSave
)

func (a Action) String() string {
	if a == ActionSave {
		return "save"
	}
	return "copy"
}

// Result is the outcome of an overlay session.
type Result struct {
	Status Status
	// Rect is the final selection in screen coordinates.
	Rect   image.Rectangle
	Action Action
	// Image is the flattened selection with every annotation.
	Image *image.RGBA
}
