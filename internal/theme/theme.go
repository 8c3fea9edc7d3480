package theme

import (
	"image/color"
)

// Theme defines the colors used by the selection overlay and its toolbar.
type Theme struct {
	Name string

	// Overlay
	Dim             color.RGBA // Shade drawn outside the selection
	SelectionBorder color.RGBA
	HandleFill      color.RGBA
	HandleBorder    color.RGBA
	TextHandle      color.RGBA // Corner dots on text boxes
	Caret           color.RGBA
	TextSelection   color.RGBA // Highlight behind selected text
	BadgeBackground color.RGBA
	BadgeText       color.RGBA

	// Toolbar
	ToolbarBackground color.RGBA
	ToolbarBorder     color.RGBA

	// Tool Buttons
	ButtonBackground       color.RGBA
	ButtonBackgroundHover  color.RGBA
	ButtonBackgroundPress  color.RGBA
	ButtonBackgroundActive color.RGBA // Selected tool, color or width
	ButtonText             color.RGBA
	ButtonTextHover        color.RGBA
	ButtonTextPress        color.RGBA
	ButtonTextDisabled     color.RGBA
	ButtonBorder           color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                   "Default",
		Dim:                    color.RGBA{0, 0, 0, 120},
		SelectionBorder:        color.RGBA{0x67, 0x50, 0xa4, 255},
		HandleFill:             color.RGBA{0xf8, 0xf9, 0xff, 255},
		HandleBorder:           color.RGBA{0x67, 0x50, 0xa4, 255},
		TextHandle:             color.RGBA{103, 80, 164, 255},
		Caret:                  color.RGBA{0x67, 0x50, 0xa4, 255},
		TextSelection:          color.RGBA{0x67, 0x50, 0xa4, 90},
		BadgeBackground:        color.RGBA{0x1d, 0x1b, 0x20, 220},
		BadgeText:              color.RGBA{255, 255, 255, 255},
		ToolbarBackground:      color.RGBA{0xf8, 0xf9, 0xff, 245},
		ToolbarBorder:          color.RGBA{0xca, 0xc4, 0xd0, 255},
		ButtonBackground:       color.RGBA{0xf8, 0xf9, 0xff, 255},
		ButtonBackgroundHover:  color.RGBA{0xe8, 0xde, 0xf8, 255},
		ButtonBackgroundPress:  color.RGBA{0xd0, 0xbc, 0xff, 255},
		ButtonBackgroundActive: color.RGBA{0xea, 0xdd, 0xff, 255},
		ButtonText:             color.RGBA{0x1d, 0x1b, 0x20, 255},
		ButtonTextHover:        color.RGBA{0x1d, 0x1b, 0x20, 255},
		ButtonTextPress:        color.RGBA{0x21, 0x00, 0x5d, 255},
		ButtonTextDisabled:     color.RGBA{0x9e, 0x9a, 0xa3, 255},
		ButtonBorder:           color.RGBA{0x79, 0x74, 0x7e, 255},
	}
}
