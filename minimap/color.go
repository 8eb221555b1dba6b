package minimap

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/cornish/textivus-minimap/config"
	"github.com/cornish/textivus-minimap/syntax"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA8 is a resolved, non-premultiplied color.
type RGBA8 struct {
	R, G, B, A uint8
}

// Transparent reports whether the color has no visible contribution.
func (c RGBA8) Transparent() bool {
	return c.A == 0
}

// WithAlpha returns c with its alpha scaled by f.
func (c RGBA8) WithAlpha(f float64) RGBA8 {
	a := float64(c.A) * f
	if a > 255 {
		a = 255
	}
	c.A = uint8(a + 0.5)
	return c
}

// NRGBA converts to the image/color representation used for compositing.
func (c RGBA8) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// IsLight reports whether the color reads as a light background.
func (c RGBA8) IsLight() bool {
	l, _, _ := c.colorful().Lab()
	return l > 0.5
}

// Over returns c composited over an opaque base color.
func (c RGBA8) Over(base RGBA8) RGBA8 {
	if c.A == 255 {
		return c
	}
	blended := base.colorful().BlendRgb(c.colorful(), float64(c.A)/255)
	r, g, b := blended.Clamped().RGB255()
	return RGBA8{r, g, b, 255}
}

func (c RGBA8) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ParseColor parses a theme color: "0"-"255" for the xterm palette,
// "#RGB", "#RRGGBB" or "#RRGGBBAA".
func ParseColor(s string) (RGBA8, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGBA8{}, false
	}
	if strings.HasPrefix(s, "#") {
		alpha := uint8(255)
		if len(s) == 9 {
			a, err := strconv.ParseUint(s[7:], 16, 8)
			if err != nil {
				return RGBA8{}, false
			}
			alpha = uint8(a)
			s = s[:7]
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return RGBA8{}, false
		}
		r, g, b := c.RGB255()
		return RGBA8{r, g, b, alpha}, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return RGBA8{}, false
	}
	rgb := ansi256ToRGB(n)
	return RGBA8{rgb[0], rgb[1], rgb[2], 255}, true
}

// ParseColorOr parses s, returning def when s is empty or invalid.
func ParseColorOr(s string, def RGBA8) RGBA8 {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return def
}

// ansi256ToRGB converts a 256-color palette index to RGB.
func ansi256ToRGB(idx int) [3]byte {
	if idx < 16 {
		return ansiBasic[idx]
	}
	if idx < 232 {
		idx -= 16
		return [3]byte{cubeLevel(idx / 36), cubeLevel((idx / 6) % 6), cubeLevel(idx % 6)}
	}
	gray := byte((idx-232)*10 + 8)
	return [3]byte{gray, gray, gray}
}

func cubeLevel(v int) byte {
	if v == 0 {
		return 0
	}
	return byte(55 + v*40)
}

var ansiBasic = [16][3]byte{
	{0, 0, 0},       // Black
	{205, 49, 49},   // Red
	{13, 188, 121},  // Green
	{229, 229, 16},  // Yellow
	{36, 114, 200},  // Blue
	{188, 63, 188},  // Magenta
	{17, 168, 205},  // Cyan
	{229, 229, 229}, // White
	{102, 102, 102}, // Bright Black
	{241, 76, 76},   // Bright Red
	{35, 209, 139},  // Bright Green
	{245, 245, 67},  // Bright Yellow
	{59, 142, 234},  // Bright Blue
	{214, 112, 214}, // Bright Magenta
	{41, 184, 219},  // Bright Cyan
	{255, 255, 255}, // Bright White
}

// Palette maps token color ids to resolved colors.
type Palette [syntax.NumColors]RGBA8

// NewPalette resolves the theme's syntax colors. Unset entries fall back
// to the default foreground.
func NewPalette(colors config.SyntaxColors, fg RGBA8) Palette {
	var p Palette
	set := func(id syntax.ColorID, s string) {
		p[id] = ParseColorOr(s, fg)
	}
	p[syntax.ColorDefault] = fg
	set(syntax.ColorKeyword, colors.Keyword)
	set(syntax.ColorString, colors.String)
	set(syntax.ColorComment, colors.Comment)
	set(syntax.ColorNumber, colors.Number)
	set(syntax.ColorOperator, colors.Operator)
	set(syntax.ColorFunction, colors.Function)
	set(syntax.ColorType, colors.Type)
	set(syntax.ColorError, colors.Error)
	return p
}

// Color returns the color for id, or the default foreground when out of range.
func (p *Palette) Color(id syntax.ColorID) RGBA8 {
	if int(id) < 0 || int(id) >= len(p) {
		return p[syntax.ColorDefault]
	}
	return p[id]
}
