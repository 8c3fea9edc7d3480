package annotate

import "image"

// Font size limits in pixels.
const (
	DefaultFontSize = 14
	MinFontSize     = 8
	MaxFontSize     = 100
	FontSizeStep    = 2
)

// FontSize resolves the pixel size text is drawn at.
//
// Custom items use CustomFontSize. Boxes resized by hand follow their height
// at half scale. Other boxes scale with BaseHeight between 10 and 36px.
func (it *Item) FontSize() int {
	if it.SizeMode == SizeCustom {
		return clampFont(it.CustomFontSize)
	}
	h := it.BaseHeight
	if h <= 0 {
		h = it.Box().Dy()
	}
	if it.ManuallyResized {
		h = max(20, it.Box().Dy())
		return max(MinFontSize, h/2)
	}
	h = max(20, h)
	return min(36, max(10, h*2/5))
}

// StepFontSize moves the font size by delta steps and switches the item to
// Custom sizing. It returns the new size.
func (it *Item) StepFontSize(delta int) int {
	size := clampFont(it.FontSize() + delta*FontSizeStep)
	it.SizeMode = SizeCustom
	it.CustomFontSize = size
	return size
}

// SetCustomFontSize pins the font size explicitly.
func (it *Item) SetCustomFontSize(size int) {
	it.SizeMode = SizeCustom
	it.CustomFontSize = clampFont(size)
}

// ApplyPreset handles a toolbar size preset while the item is edited. Auto
// sized boxes that were never resized by hand are refitted so that the
// derived font matches the preset; required is the text extent measured at
// that size.
func (it *Item) ApplyPreset(size int, required image.Point) bool {
	it.Width = size
	if it.SizeMode == SizeCustom || it.ManuallyResized {
		return false
	}
	it.BaseHeight = (clampFont(size)*5 + 1) / 2
	box := it.Box()
	w := max(required.X+40, 20)
	h := max(required.Y+40, 20, it.BaseHeight)
	it.SetBox(image.Rect(box.Min.X, box.Min.Y, box.Min.X+w, box.Min.Y+h))
	return true
}

func clampFont(size int) int {
	return min(MaxFontSize, max(MinFontSize, size))
}
