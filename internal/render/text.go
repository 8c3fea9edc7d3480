package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"

	"github.com/rivo/uniseg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextInset is the padding between a text box edge and its glyphs.
const TextInset = 6

// uiFontSize is the size of badge and toolbar labels.
const uiFontSize = 13

var (
	fontsOnce   sync.Once
	boldFont    *opentype.Font
	regularFont *opentype.Font
	fontsErr    error

	boldFaces sync.Map // map[int]font.Face
	uiFace    font.Face
)

func loadFonts() {
	fontsOnce.Do(func() {
		var err error
		boldFont, err = opentype.Parse(gobold.TTF)
		if err != nil {
			fontsErr = fmt.Errorf("parse bold font: %w", err)
			return
		}
		regularFont, err = opentype.Parse(goregular.TTF)
		if err != nil {
			fontsErr = fmt.Errorf("parse regular font: %w", err)
			return
		}
		uiFace, err = opentype.NewFace(regularFont, &opentype.FaceOptions{Size: uiFontSize, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			fontsErr = fmt.Errorf("ui font face: %w", err)
		}
	})
}

// FaceForSize returns the annotation face for a pixel size. Faces are
// cached per size.
func FaceForSize(size int) (font.Face, error) {
	loadFonts()
	if fontsErr != nil {
		return nil, fontsErr
	}
	if size <= 0 {
		size = 14
	}
	if face, ok := boldFaces.Load(size); ok {
		return face.(font.Face), nil
	}
	face, err := opentype.NewFace(boldFont, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	actual, _ := boldFaces.LoadOrStore(size, face)
	return actual.(font.Face), nil
}

// UIFace returns the face used for labels drawn by the overlay itself.
func UIFace() font.Face {
	loadFonts()
	if fontsErr != nil {
		log.Printf("ui font: %v", fontsErr)
		return nil
	}
	return uiFace
}

// Line is one wrapped line of a text layout. Start and End are byte offsets
// into the laid out string; Text excludes any trailing newline.
type Line struct {
	Start, End int
	Text       string
}

// Layout is wrapped text ready to draw.
type Layout struct {
	Face       font.Face
	Lines      []Line
	LineHeight int
	Ascent     int
	Size       image.Point
}

// LayoutText wraps text so no line is wider than width, breaking at line
// break opportunities and falling back to grapheme clusters for words that
// do not fit on their own.
func LayoutText(text string, size, width int) (*Layout, error) {
	face, err := FaceForSize(size)
	if err != nil {
		return nil, err
	}
	m := face.Metrics()
	l := &Layout{Face: face, Ascent: m.Ascent.Ceil(), LineHeight: m.Height.Ceil()}
	if l.LineHeight <= 0 {
		l.LineHeight = m.Ascent.Ceil() + m.Descent.Ceil()
	}
	l.Lines = wrap(face, text, width)
	for _, ln := range l.Lines {
		if w := font.MeasureString(face, ln.Text).Ceil(); w > l.Size.X {
			l.Size.X = w
		}
	}
	l.Size.Y = len(l.Lines) * l.LineHeight
	return l, nil
}

// MeasureText returns the wrapped extent of text at size.
func MeasureText(text string, size, width int) image.Point {
	l, err := LayoutText(text, size, width)
	if err != nil {
		return image.Point{}
	}
	return l.Size
}

// Caret returns the top of the caret for byte offset off relative to the
// layout origin.
func (l *Layout) Caret(text string, off int) image.Point {
	for i, ln := range l.Lines {
		last := i == len(l.Lines)-1
		if off < ln.Start {
			continue
		}
		if off <= ln.Start+len(ln.Text) || last {
			end := min(off, ln.Start+len(ln.Text))
			x := font.MeasureString(l.Face, text[ln.Start:end]).Ceil()
			return image.Pt(x, i*l.LineHeight)
		}
	}
	return image.Point{}
}

// Spans returns rectangles covering the byte range [a, b) relative to the
// layout origin, one per line touched.
func (l *Layout) Spans(text string, a, b int) []image.Rectangle {
	if a >= b {
		return nil
	}
	var out []image.Rectangle
	for i, ln := range l.Lines {
		lineEnd := ln.Start + len(ln.Text)
		s, e := max(a, ln.Start), min(b, lineEnd)
		if s >= e {
			continue
		}
		x0 := font.MeasureString(l.Face, text[ln.Start:s]).Ceil()
		x1 := font.MeasureString(l.Face, text[ln.Start:e]).Ceil()
		y := i * l.LineHeight
		out = append(out, image.Rect(x0, y, x1, y+l.LineHeight))
	}
	return out
}

// Draw paints the layout with its top-left corner at origin.
func (l *Layout) Draw(dst draw.Image, origin image.Point, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: l.Face}
	for i, ln := range l.Lines {
		d.Dot = fixed.P(origin.X, origin.Y+i*l.LineHeight+l.Ascent)
		d.DrawString(ln.Text)
	}
}

func wrap(face font.Face, text string, width int) []Line {
	var lines []Line
	lineStart, lineEnd := 0, 0
	off := 0
	state := -1
	rest := text
	flush := func(next int) {
		lines = append(lines, Line{Start: lineStart, End: next, Text: trimNewline(text[lineStart:lineEnd])})
		lineStart, lineEnd = next, next
	}
	for len(rest) > 0 {
		var seg string
		var mustBreak bool
		seg, rest, mustBreak, state = uniseg.FirstLineSegmentInString(rest, state)
		segStart := off
		off += len(seg)
		candidate := text[lineStart:off]
		if width > 0 && fits(face, trimSpace(candidate)) > width {
			if lineEnd > lineStart {
				flush(segStart)
			}
			// A single segment wider than the box is split by cluster.
			for fits(face, trimSpace(text[lineStart:off])) > width {
				cut := clusterCut(face, text[lineStart:off], width)
				if cut == 0 {
					break
				}
				lineEnd = lineStart + cut
				flush(lineStart + cut)
			}
		}
		lineEnd = off
		if mustBreak && len(rest) > 0 {
			flush(off)
		} else if mustBreak && endsWithNewline(seg) {
			flush(off)
			lines = append(lines, Line{Start: off, End: off})
			lineStart, lineEnd = off, off
		}
	}
	if lineEnd > lineStart || len(lines) == 0 {
		lines = append(lines, Line{Start: lineStart, End: lineEnd, Text: trimNewline(text[lineStart:lineEnd])})
	}
	return lines
}

func fits(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// clusterCut returns the largest grapheme prefix of s no wider than width,
// always keeping at least one cluster.
func clusterCut(face font.Face, s string, width int) int {
	cut := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		next := cut + len(cluster)
		if fits(face, s[:next]) > width && cut > 0 {
			break
		}
		cut = next
	}
	if cut == len(s) {
		return 0
	}
	return cut
}

func trimSpace(s string) string {
	for len(s) > 0 {
		switch s[len(s)-1] {
		case ' ', '\n', '\r', '\t':
			s = s[:len(s)-1]
			continue
		}
		break
	}
	return s
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

func endsWithNewline(s string) bool {
	return len(s) > 0 && s[len(s)-1] == '\n'
}
