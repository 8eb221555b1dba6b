package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cornish/textivus-minimap/config"
	"github.com/cornish/textivus-minimap/syntax"
)

// UseTrueColor controls whether hex colors use true color (24-bit) or
// fall back to the nearest 256-color. Set to false for older terminals.
var UseTrueColor = true

// UseASCII replaces box drawing and braille characters with plain ASCII
// for terminals without UTF-8.
var UseASCII = false

const resetCode = "\033[0m"

// ColorToANSIFg converts a theme color string to an ANSI foreground escape sequence
// Supports: "0"-"255" for indexed colors, "#RGB", "#RRGGBB" or "#RRGGBBAA" for hex colors
// Hex colors use true color if UseTrueColor is true, otherwise nearest 256-color
func ColorToANSIFg(color string) string {
	if strings.HasPrefix(color, "#") {
		r, g, b := parseHexColor(color)
		return rgbToANSI(38, r, g, b)
	}
	n, err := strconv.Atoi(color)
	if err != nil {
		return "\033[37m" // Default to white on error
	}
	if n < 16 {
		// Standard colors: use traditional codes for better compatibility
		if n < 8 {
			return fmt.Sprintf("\033[%dm", 30+n)
		}
		return fmt.Sprintf("\033[%dm", 90+(n-8))
	}
	return fmt.Sprintf("\033[38;5;%dm", n)
}

// ColorToANSIBg converts a theme color string to an ANSI background escape sequence
func ColorToANSIBg(color string) string {
	if strings.HasPrefix(color, "#") {
		r, g, b := parseHexColor(color)
		return rgbToANSI(48, r, g, b)
	}
	n, err := strconv.Atoi(color)
	if err != nil {
		return "\033[40m" // Default to black on error
	}
	if n < 16 {
		if n < 8 {
			return fmt.Sprintf("\033[%dm", 40+n)
		}
		return fmt.Sprintf("\033[%dm", 100+(n-8))
	}
	return fmt.Sprintf("\033[48;5;%dm", n)
}

// rgbToANSI builds a foreground (38) or background (48) sequence for an
// RGB color, honoring UseTrueColor.
func rgbToANSI(layer, r, g, b int) string {
	if UseTrueColor {
		return fmt.Sprintf("\033[%d;2;%d;%d;%dm", layer, r, g, b)
	}
	return fmt.Sprintf("\033[%d;5;%dm", layer, rgbTo256Color(r, g, b))
}

// rgbTo256Color converts RGB values to the nearest 256-color palette index
func rgbTo256Color(r, g, b int) int {
	if isGrayscale(r, g, b) {
		return rgbToGrayscale(r, g, b)
	}
	// Convert to 6x6x6 color cube (colors 16-231)
	return 16 + 36*rgbTo6(r) + 6*rgbTo6(g) + rgbTo6(b)
}

// rgbTo6 converts an 8-bit color value to a 6-level value (0-5)
// The 6x6x6 cube uses values: 0, 95, 135, 175, 215, 255
func rgbTo6(v int) int {
	switch {
	case v < 48:
		return 0
	case v < 115:
		return 1
	case v < 155:
		return 2
	case v < 195:
		return 3
	case v < 235:
		return 4
	}
	return 5
}

// isGrayscale checks if RGB values are close enough to be grayscale
func isGrayscale(r, g, b int) bool {
	return max(r, g, b)-min(r, g, b) < 20
}

// rgbToGrayscale converts RGB to nearest grayscale in 232-255 range
func rgbToGrayscale(r, g, b int) int {
	gray := (r + g + b) / 3
	if gray < 4 {
		return 16 // Use black from color cube
	}
	if gray > 243 {
		return 231 // Use white from color cube
	}
	return 232 + (gray-8)/10
}

// parseHexColor parses #RGB, #RRGGBB or #RRGGBBAA to r, g, b values.
// Alpha is ignored: terminal cells are opaque.
func parseHexColor(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		// #RGB -> #RRGGBB
		r, _ := strconv.ParseInt(string(hex[0])+string(hex[0]), 16, 32)
		g, _ := strconv.ParseInt(string(hex[1])+string(hex[1]), 16, 32)
		b, _ := strconv.ParseInt(string(hex[2])+string(hex[2]), 16, 32)
		return int(r), int(g), int(b)
	}
	if len(hex) == 6 || len(hex) == 8 {
		r, _ := strconv.ParseInt(hex[0:2], 16, 32)
		g, _ := strconv.ParseInt(hex[2:4], 16, 32)
		b, _ := strconv.ParseInt(hex[4:6], 16, 32)
		return int(r), int(g), int(b)
	}
	return 255, 255, 255 // Default to white on error
}

// opaque drops the alpha digits of a #RRGGBBAA color so lipgloss can
// parse it.
func opaque(color string) string {
	if strings.HasPrefix(color, "#") && len(color) == 9 {
		return color[:7]
	}
	return color
}

// Styles contains all the styles used by the viewer
type Styles struct {
	// The theme these styles were generated from
	Theme config.Theme

	// Status bar styles
	StatusBar    lipgloss.Style
	StatusAccent lipgloss.Style
	StatusError  lipgloss.Style

	LineNumber  lipgloss.Style
	ScrollTrack lipgloss.Style
	ScrollThumb lipgloss.Style
	Subtle      lipgloss.Style

	// Raw sequences for the text view, which colors rune by rune.
	textFg  string
	textBg  string
	matchFg string
	matchBg string
	tokenFg [syntax.NumColors]string
}

// NewStyles creates a Styles configuration from a theme
func NewStyles(theme config.Theme) Styles {
	ui := theme.UI
	syn := theme.Syntax

	s := Styles{
		Theme: theme,

		StatusBar: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.StatusBg)).
			Foreground(lipgloss.Color(ui.StatusFg)),

		StatusAccent: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.StatusBg)).
			Foreground(lipgloss.Color(ui.StatusAccent)).
			Bold(true),

		StatusError: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.StatusBg)).
			Foreground(lipgloss.Color(ui.ErrorFg)).
			Bold(true),

		LineNumber: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.LineNumber)).
			Background(lipgloss.Color(ui.TextBg)),

		ScrollTrack: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.LineNumber)).
			Background(lipgloss.Color(ui.TextBg)),

		ScrollThumb: lipgloss.NewStyle().
			Foreground(lipgloss.Color(opaque(theme.Minimap.SliderActive))).
			Background(lipgloss.Color(ui.TextBg)),

		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.LineNumber)),

		textFg:  ColorToANSIFg(ui.TextFg),
		textBg:  ColorToANSIBg(ui.TextBg),
		matchFg: ColorToANSIFg(ui.SelectionFg),
		matchBg: ColorToANSIBg(ui.SelectionBg),
	}

	colors := [syntax.NumColors]string{
		syntax.ColorDefault:  ui.TextFg,
		syntax.ColorKeyword:  syn.Keyword,
		syntax.ColorString:   syn.String,
		syntax.ColorComment:  syn.Comment,
		syntax.ColorNumber:   syn.Number,
		syntax.ColorOperator: syn.Operator,
		syntax.ColorFunction: syn.Function,
		syntax.ColorType:     syn.Type,
		syntax.ColorError:    syn.Error,
	}
	for id, c := range colors {
		if c == "" {
			c = ui.TextFg
		}
		s.tokenFg[id] = ColorToANSIFg(c)
	}
	return s
}

// DefaultStyles returns the styles of the default theme
func DefaultStyles() Styles {
	return NewStyles(config.DefaultTheme())
}
