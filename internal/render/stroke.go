package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/gg"

	"github.com/example/snapmark/internal/annotate"
)

// layer rasterizes anti-aliased shapes for one clip rectangle. Shapes are
// drawn in dst coordinates; the layer is composited onto dst with Over when
// flushed. The gg context is only allocated once something is drawn.
type layer struct {
	dst   *image.RGBA
	clip  image.Rectangle
	ctx   *gg.Context
	dirty bool
	err   error // first rasterizer failure
}

func newLayer(dst *image.RGBA, clip image.Rectangle) *layer {
	return &layer{dst: dst, clip: clip}
}

func (l *layer) context() *gg.Context {
	if l.ctx == nil {
		l.ctx = gg.NewContext(l.clip.Dx(), l.clip.Dy())
		l.ctx.Translate(float64(-l.clip.Min.X), float64(-l.clip.Min.Y))
	}
	l.dirty = true
	return l.ctx
}

// flush composites pending shapes and clears the layer.
func (l *layer) flush() {
	if l.ctx == nil || !l.dirty {
		return
	}
	draw.Draw(l.dst, l.clip, l.ctx.Image(), image.Point{}, draw.Over)
	l.ctx.Clear()
	l.dirty = false
}

// check keeps the first error reported by the rasterizer.
func (l *layer) check(err error) {
	if err != nil && l.err == nil {
		l.err = err
	}
}

func (l *layer) close() {
	if l.ctx != nil {
		l.ctx.Close()
		l.ctx = nil
	}
}

// shape strokes a non-text item with round caps and joins.
func (l *layer) shape(it *annotate.Item) {
	if len(it.Points) == 0 {
		return
	}
	c := l.context()
	c.SetColor(it.Color)
	c.SetLineWidth(float64(max(it.Width, 1)))
	c.SetLineCap(gg.LineCapRound)
	c.SetLineJoin(gg.LineJoinRound)
	c.ClearDash()

	switch it.Kind {
	case annotate.KindPen:
		if len(it.Points) == 1 {
			p := it.Points[0]
			c.DrawCircle(fx(p.X), fx(p.Y), float64(max(it.Width, 1))/2)
			l.check(c.Fill())
			return
		}
		c.MoveTo(fx(it.Points[0].X), fx(it.Points[0].Y))
		for _, p := range it.Points[1:] {
			c.LineTo(fx(p.X), fx(p.Y))
		}
	case annotate.KindRectangle:
		r := it.Box()
		c.DrawRectangle(fx(r.Min.X), fx(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	case annotate.KindCircle:
		r := it.Box()
		c.DrawEllipse(fx(r.Min.X)+float64(r.Dx())/2, fx(r.Min.Y)+float64(r.Dy())/2, float64(r.Dx())/2, float64(r.Dy())/2)
	case annotate.KindArrow:
		s, e := it.Start(), it.End()
		c.MoveTo(fx(s.X), fx(s.Y))
		c.LineTo(fx(e.X), fx(e.Y))
		for _, wing := range arrowHead(s, e) {
			c.MoveTo(fx(e.X), fx(e.Y))
			c.LineTo(wing[0], wing[1])
		}
	default:
		return
	}
	l.check(c.Stroke())
}

// dashedBox outlines a text box with a one pixel dash in col.
func (l *layer) dashedBox(r image.Rectangle, col color.Color) {
	c := l.context()
	c.SetColor(col)
	c.SetLineWidth(1)
	c.SetLineCap(gg.LineCapButt)
	c.SetDash(4, 3)
	c.DrawRectangle(fx(r.Min.X)+0.5, fx(r.Min.Y)+0.5, float64(r.Dx()-1), float64(r.Dy()-1))
	l.check(c.Stroke())
	c.ClearDash()
}

// ring outlines a circle of diameter size centred on p.
func (l *layer) ring(p image.Point, size int, col color.Color) {
	c := l.context()
	c.SetColor(col)
	c.SetLineWidth(1)
	c.DrawEllipse(fx(p.X), fx(p.Y), float64(size)/2, float64(size)/2)
	l.check(c.Stroke())
}

// arrowHead returns the two wing tips of an arrow ending at e.
func arrowHead(s, e image.Point) [2][2]float64 {
	angle := math.Atan2(float64(e.Y-s.Y), float64(e.X-s.X))
	spread := float64(annotate.ArrowHeadAngle) * math.Pi / 180
	length := float64(annotate.ArrowHeadLength)
	var out [2][2]float64
	for i, a := range []float64{angle + math.Pi - spread, angle + math.Pi + spread} {
		out[i] = [2]float64{fx(e.X) + length*math.Cos(a), fx(e.Y) + length*math.Sin(a)}
	}
	return out
}

func fx(v int) float64 { return float64(v) }
