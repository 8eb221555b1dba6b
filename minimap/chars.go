package minimap

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph    = 32 // ' '
	lastGlyph     = 126
	glyphCount    = 96 // printable ASCII plus one fallback glyph
	fallbackGlyph = glyphCount - 1
)

// CharRenderer draws tiny glyphs into minimap buffers. Glyph coverage is
// rasterized once from a bitmap font and downsampled to the target scale.
type CharRenderer struct {
	scale      int
	charWidth  int
	charHeight int
	normal     []byte // coverage per glyph, charWidth*charHeight each
	light      []byte // thinner coverage for light backgrounds
}

// NewCharRenderer builds the glyph atlas for a font scale.
func NewCharRenderer(scale int) *CharRenderer {
	scale = max(scale, 1)
	w, h := scale, baseCharHeight*scale
	data := rasterizeGlyphs(w, h)
	return &CharRenderer{
		scale:      scale,
		charWidth:  w,
		charHeight: h,
		normal:     soften(data, 12.0/15),
		light:      soften(data, 50.0/60),
	}
}

// Scale returns the font scale the atlas was built for.
func (r *CharRenderer) Scale() int { return r.scale }

func rasterizeGlyphs(w, h int) []byte {
	face := basicfont.Face7x13
	cell := image.NewAlpha(image.Rect(0, 0, face.Advance, face.Height))
	small := image.NewAlpha(image.Rect(0, 0, w, h))
	d := &font.Drawer{Dst: cell, Src: image.Opaque, Face: face}

	out := make([]byte, glyphCount*w*h)
	var peak byte
	for i := 0; i < glyphCount; i++ {
		clear(cell.Pix)
		if i == fallbackGlyph {
			for j := range cell.Pix {
				cell.Pix[j] = 0x80
			}
		} else {
			d.Dot = fixed.P(0, face.Ascent)
			d.DrawString(string(rune(firstGlyph + i)))
		}
		draw.BiLinear.Scale(small, small.Bounds(), cell, cell.Bounds(), draw.Src, nil)
		copy(out[i*w*h:], small.Pix)
		for _, v := range small.Pix {
			peak = max(peak, v)
		}
	}

	// Stretch so the densest glyph pixel is fully opaque.
	if peak > 0 && peak < 255 {
		for i, v := range out {
			out[i] = byte(int(v) * 255 / int(peak))
		}
	}
	return out
}

func soften(in []byte, ratio float64) []byte {
	out := make([]byte, len(in))
	for i, v := range in {
		out[i] = toUint8(float64(v) * ratio)
	}
	return out
}

func toUint8(v float64) byte {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return byte(v + 0.5)
}

func glyphIndex(ch rune) int {
	if ch < firstGlyph || ch > lastGlyph {
		return fallbackGlyph
	}
	return int(ch - firstGlyph)
}

// renderChar blends glyph ch in color over background at (dx, dy).
// Requests that do not fit the target are dropped.
func (r *CharRenderer) renderChar(dst *image.RGBA, dx, dy int, ch rune, fg RGBA8, fgAlpha uint8, bg RGBA8, bgAlpha uint8, lighter, force1px bool) {
	height := r.charHeight
	if force1px {
		height = 1
	}
	if dx+r.charWidth > dst.Rect.Dx() || dy+height > dst.Rect.Dy() {
		return
	}
	data := r.normal
	if lighter {
		data = r.light
	}
	src := glyphIndex(ch) * r.charWidth * r.charHeight
	destAlpha := max(fgAlpha, bgAlpha)
	alpha := float64(fgAlpha) / 255

	row := dy*dst.Stride + dx*4
	for y := 0; y < height; y++ {
		col := row
		for x := 0; x < r.charWidth; x++ {
			c := float64(data[src]) / 255 * alpha
			src++
			dst.Pix[col] = mix(bg.R, fg.R, c)
			dst.Pix[col+1] = mix(bg.G, fg.G, c)
			dst.Pix[col+2] = mix(bg.B, fg.B, c)
			dst.Pix[col+3] = destAlpha
			col += 4
		}
		row += dst.Stride
	}
}

// blockRenderChar fills the glyph cell with a half-strength solid color.
func (r *CharRenderer) blockRenderChar(dst *image.RGBA, dx, dy int, fg RGBA8, fgAlpha uint8, bg RGBA8, bgAlpha uint8, force1px bool) {
	height := r.charHeight
	if force1px {
		height = 1
	}
	if dx+r.charWidth > dst.Rect.Dx() || dy+height > dst.Rect.Dy() {
		return
	}
	c := 0.5 * float64(fgAlpha) / 255
	px := [4]byte{mix(bg.R, fg.R, c), mix(bg.G, fg.G, c), mix(bg.B, fg.B, c), max(fgAlpha, bgAlpha)}

	row := dy*dst.Stride + dx*4
	for y := 0; y < height; y++ {
		col := row
		for x := 0; x < r.charWidth; x++ {
			copy(dst.Pix[col:col+4], px[:])
			col += 4
		}
		row += dst.Stride
	}
}

func mix(bg, fg byte, c float64) byte {
	return toUint8(float64(bg) + (float64(fg)-float64(bg))*c)
}
