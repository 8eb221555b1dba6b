package ui

import (
	"image"
	"image/color"
	"math/bits"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/cornish/textivus-minimap/minimap"
)

// Braille cells hold a 2x4 dot matrix.
const (
	brailleDotsX = 2
	brailleDotsY = 4
	brailleBase  = 0x2800
)

// brailleBits maps a dot at (x, y) to its bit in the braille pattern.
var brailleBits = [brailleDotsY][brailleDotsX]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// asciiRamp stands in for braille in ASCII mode, indexed by the number
// of lit dots.
const asciiRamp = " .:-=+*#%@"

// dotThreshold is the minimum RGB distance from the background for a
// sampled pixel to light its dot.
const dotThreshold = 0.12

// BrailleRenderer draws a minimap frame with braille characters for
// terminals without a graphics protocol. Every cell samples a 2x4 block
// of the frame scaled to the cell grid.
type BrailleRenderer struct {
	styles Styles
}

// NewBrailleRenderer creates a braille minimap renderer.
func NewBrailleRenderer(styles Styles) *BrailleRenderer {
	return &BrailleRenderer{styles: styles}
}

// SetStyles updates the styles for runtime theme changes.
func (r *BrailleRenderer) SetStyles(styles Styles) {
	r.styles = styles
}

// Render returns rows strings of cols cells. The slider, when not hidden,
// tints the background of the rows it covers.
func (r *BrailleRenderer) Render(f *minimap.Frame, cols, rows int, slider SliderState) []string {
	out := make([]string, rows)
	if f == nil || cols <= 0 || rows <= 0 {
		for i := range out {
			out[i] = strings.Repeat(" ", max(cols, 0))
		}
		return out
	}
	img := Compose(f, SliderHidden)
	bg := f.Options.BackgroundColor.Over(f.Options.DefaultBackgroundColor)

	dots := image.NewRGBA(image.Rect(0, 0, cols*brailleDotsX, rows*brailleDotsY))
	draw.ApproxBiLinear.Scale(dots, dots.Bounds(), img, img.Bounds(), draw.Src, nil)

	sliderTop, sliderBottom := -1, -1
	if sr, ok := SliderRect(f, img.Bounds()); ok && slider != SliderHidden {
		// Rows are scaled like the dots, so map pixel rows to cell rows.
		h := img.Bounds().Dy()
		sliderTop = sr.Min.Y * rows / h
		sliderBottom = (sr.Max.Y*rows + h - 1) / h
	}
	plainBg := rgbToANSI(48, int(bg.R), int(bg.G), int(bg.B))
	sliderBg := plainBg
	if slider != SliderHidden {
		c := f.Options.SliderColor
		if slider == SliderActive {
			c = f.Options.SliderActiveColor
		}
		t := c.Over(bg)
		sliderBg = rgbToANSI(48, int(t.R), int(t.G), int(t.B))
	}

	bgc := toColorful(color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 255})
	for row := range out {
		var sb strings.Builder
		if row >= sliderTop && row < sliderBottom {
			sb.WriteString(sliderBg)
		} else {
			sb.WriteString(plainBg)
		}
		lastFg := ""
		for col := 0; col < cols; col++ {
			pattern, fg := brailleCell(dots, col, row, bgc)
			if pattern == 0 {
				sb.WriteByte(' ')
				continue
			}
			if fg != lastFg {
				sb.WriteString(fg)
				lastFg = fg
			}
			if UseASCII {
				sb.WriteByte(asciiRamp[bits.OnesCount32(uint32(pattern))])
			} else {
				sb.WriteRune(brailleBase + pattern)
			}
		}
		sb.WriteString(resetCode)
		out[row] = sb.String()
	}
	return out
}

// brailleCell returns the dot pattern of one cell and the foreground
// sequence for the average color of its lit dots.
func brailleCell(dots *image.RGBA, col, row int, bg colorful.Color) (rune, string) {
	var pattern rune
	var sum colorful.Color
	lit := 0
	for dy := 0; dy < brailleDotsY; dy++ {
		for dx := 0; dx < brailleDotsX; dx++ {
			c := toColorful(dots.RGBAAt(col*brailleDotsX+dx, row*brailleDotsY+dy))
			if c.DistanceRgb(bg) < dotThreshold {
				continue
			}
			pattern |= brailleBits[dy][dx]
			sum.R += c.R
			sum.G += c.G
			sum.B += c.B
			lit++
		}
	}
	if lit == 0 {
		return 0, ""
	}
	avg := colorful.Color{R: sum.R / float64(lit), G: sum.G / float64(lit), B: sum.B / float64(lit)}
	r, g, b := avg.Clamped().RGB255()
	return pattern, rgbToANSI(38, int(r), int(g), int(b))
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
