package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow cast by floating panels such as
// the size badge and the toolbar.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// PanelShadow is the shadow used under overlay panels.
func PanelShadow() ShadowOptions {
	return ShadowOptions{Radius: 4, Offset: image.Pt(0, 2), Opacity: 0.35}
}

// ShadowBounds returns the area a shadow for panel touches, including the
// panel itself.
func ShadowBounds(panel image.Rectangle, opts ShadowOptions) image.Rectangle {
	if panel.Empty() || opts.Opacity <= 0 {
		return panel
	}
	return panel.Union(panel.Inset(-max(opts.Radius, 0)).Add(opts.Offset))
}

// DropShadow paints a blurred shadow of the rectangle panel into dst,
// restricted to clip. The panel itself is not drawn.
func DropShadow(dst *image.RGBA, clip, panel image.Rectangle, opts ShadowOptions) {
	if dst == nil || panel.Empty() || opts.Opacity <= 0 {
		return
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	padded := panel.Inset(-radius)
	target := padded.Add(opts.Offset).Intersect(clip).Intersect(dst.Bounds())
	if target.Empty() {
		return
	}

	mask := image.NewGray(padded.Sub(padded.Min))
	inner := panel.Sub(padded.Min)
	draw.Draw(mask, inner, image.NewUniform(color.Gray{Y: 255}), image.Point{}, draw.Src)
	blurred := blurGray(mask, radius)

	alpha := uint8(opacity*255 + 0.5)
	if alpha == 0 {
		return
	}
	maskOrigin := padded.Min.Add(opts.Offset)
	draw.DrawMask(dst, target, image.NewUniform(color.RGBA{A: alpha}), image.Point{}, blurred, target.Min.Sub(maskOrigin), draw.Over)
}

// blurGray applies a separable box blur of the given radius.
func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(row[x])
		}
		for x := 0; x < w; x++ {
			x0, x1 := max(x-radius, 0), min(x+radius, w-1)
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0, y1 := max(y-radius, 0), min(y+radius, h-1)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}
	return dst
}
