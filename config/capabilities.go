package config

import (
	"strings"
)

// Surface is how the minimap column is drawn.
type Surface int

const (
	SurfaceASCII   Surface = iota // Density ramp, for terminals without UTF-8
	SurfaceBraille                // 2x4 dots per cell
	SurfaceKitty                  // Real pixels through the kitty graphics protocol
)

func (s Surface) String() string {
	switch s {
	case SurfaceASCII:
		return "ascii"
	case SurfaceBraille:
		return "braille"
	case SurfaceKitty:
		return "kitty"
	}
	return "unknown"
}

// Terminal is what the environment says the terminal can show.
type Terminal struct {
	UTF8      bool
	TrueColor bool
	Graphics  bool // Speaks the kitty graphics protocol
}

// DetectTerminal reads the terminal's capabilities through getenv,
// normally os.Getenv.
func DetectTerminal(getenv func(string) string) Terminal {
	term := strings.ToLower(getenv("TERM"))
	return Terminal{
		UTF8:      localeIsUTF8(getenv),
		TrueColor: trueColorTerm(strings.ToLower(getenv("COLORTERM")), term),
		Graphics:  speaksKittyGraphics(getenv("KITTY_WINDOW_ID"), term, strings.ToLower(getenv("TERM_PROGRAM"))),
	}
}

// localeIsUTF8 takes the first locale variable that is set, the way libc
// resolves LC_CTYPE.
func localeIsUTF8(getenv func(string) string) bool {
	for _, name := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := strings.ToUpper(getenv(name)); v != "" {
			return strings.Contains(v, "UTF-8") || strings.Contains(v, "UTF8")
		}
	}
	return false
}

func trueColorTerm(colorterm, term string) bool {
	if colorterm == "truecolor" || colorterm == "24bit" {
		return true
	}
	for _, s := range []string{"truecolor", "24bit", "-direct", "iterm2", "vte", "kitty", "ghostty"} {
		if strings.Contains(term, s) {
			return true
		}
	}
	return false
}

func speaksKittyGraphics(windowID, term, program string) bool {
	if windowID != "" || strings.Contains(term, "kitty") || strings.Contains(term, "ghostty") {
		return true
	}
	return program == "ghostty" || program == "wezterm"
}

// Display is the output setup the viewer runs with.
type Display struct {
	Surface   Surface
	TrueColor bool
}

// Resolve settles the display for cfg on this terminal. Explicit settings
// win over detection; a terminal without UTF-8 always gets the ASCII
// minimap, since neither braille nor the status bar glyphs would show.
func (t Terminal) Resolve(cfg *Config) Display {
	d := Display{TrueColor: t.TrueColor}
	if cfg.Editor.TrueColor != nil {
		d.TrueColor = *cfg.Editor.TrueColor
	}

	ascii := !t.UTF8
	if cfg.Editor.AsciiMode != nil {
		ascii = *cfg.Editor.AsciiMode
	}
	switch {
	case ascii || cfg.Minimap.Graphics == "ascii":
		d.Surface = SurfaceASCII
	case cfg.Minimap.Graphics == "kitty":
		d.Surface = SurfaceKitty
	case cfg.Minimap.Graphics == "braille":
		d.Surface = SurfaceBraille
	case t.Graphics:
		d.Surface = SurfaceKitty
	default:
		d.Surface = SurfaceBraille
	}
	return d
}
