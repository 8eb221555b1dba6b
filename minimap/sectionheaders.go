package minimap

import (
	"image"
	"math"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const ellipsis = "…"

// labelFace is the bitmap face section header labels are drawn with.
var labelFace = basicfont.Face7x13

// labelWidth measures text as drawn by drawLabel.
func labelWidth(text string, letterSpacing float64) float64 {
	n := 0
	for range text {
		n++
	}
	return float64(n) * (float64(labelFace.Advance) + letterSpacing)
}

// FitSectionHeader shortens text to fit maxWidth by replacing its middle
// with an ellipsis. Text that already fits is returned unchanged.
func FitSectionHeader(measure func(string) float64, maxWidth float64, text string) string {
	if text == "" {
		return text
	}
	width := measure(text)
	ellipsisWidth := measure(ellipsis)
	if width <= maxWidth || width <= ellipsisWidth {
		return text
	}

	runes := []rune(text)
	n := len(runes)
	avg := width / float64(n)
	maxChars := int(math.Floor((maxWidth-ellipsisWidth)/avg)) - 1
	if maxChars < 1 {
		return ellipsis
	}
	half := (maxChars + 1) / 2
	for half > 0 && unicode.IsSpace(runes[half-1]) {
		half--
	}
	return string(runes[:half]) + ellipsis + string(runes[n-(maxChars-half):])
}

// sectionHeaders draws a label band for every section header decoration
// starting inside the layout.
func (p *decorationPainter) sectionHeaders(decorations []Decoration) {
	o := p.m.opts
	fontSize := o.SectionHeaderFontSize
	if fontSize <= 0 {
		return
	}
	mlh := o.MinimapLineHeight
	bandHeight := int(math.Ceil(fontSize * 1.5))
	background := o.BackgroundColor.WithAlpha(0.7)
	fitWidth := float64(o.CanvasInnerWidth - GutterWidth)
	measure := func(s string) float64 { return labelWidth(s, o.SectionHeaderLetterSpacing) }

	for _, d := range decorations {
		if d.SectionHeader == SectionHeaderNone {
			continue
		}
		if d.Label == "" && d.SectionHeader != SectionHeaderUnderlined {
			continue
		}
		line := d.Range.StartLine
		if line < p.layout.StartLine || line > p.layout.EndLine {
			continue
		}
		baseline := p.layout.YForLine(line, mlh) + int(fontSize)
		bandY := baseline - int(fontSize)

		p.fill(0, bandY, p.dst.Rect.Dx(), bandHeight, background)
		if d.SectionHeader == SectionHeaderUnderlined {
			p.fill(0, bandY+2, p.dst.Rect.Dx(), 1, o.SectionHeaderFontColor)
		}
		label := FitSectionHeader(measure, fitWidth, d.Label)
		p.drawLabel(label, GutterWidth, baseline, o.SectionHeaderFontColor, o.SectionHeaderLetterSpacing)
	}
}

// drawLabel draws text rune by rune so letter spacing can be applied. The
// face has no ellipsis glyph, so it is drawn as three dots.
func (p *decorationPainter) drawLabel(text string, x, baseline int, c RGBA8, letterSpacing float64) {
	src := image.NewUniform(c.NRGBA())
	d := &font.Drawer{Dst: p.dst, Src: src, Face: labelFace, Dot: fixed.P(x, baseline)}
	spacing := fixed.Int26_6(letterSpacing * 64)
	for _, r := range text {
		if r == '…' {
			dotX := d.Dot.X.Round()
			for i := 0; i < 3; i++ {
				p.fill(dotX+1+2*i, baseline-1, 1, 1, c)
			}
			d.Dot.X += fixed.I(labelFace.Advance)
		} else {
			d.DrawString(string(r))
		}
		d.Dot.X += spacing
	}
}
