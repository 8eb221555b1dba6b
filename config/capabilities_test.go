package config

import (
	"testing"
)

func envOf(vars map[string]string) func(string) string {
	return func(name string) string { return vars[name] }
}

func TestDetectTerminal(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Terminal
	}{
		{"bare", map[string]string{}, Terminal{}},
		{"utf8 xterm", map[string]string{"LANG": "en_US.UTF-8", "TERM": "xterm-256color"}, Terminal{UTF8: true}},
		{"LC_ALL wins over LANG", map[string]string{"LC_ALL": "C", "LANG": "en_US.UTF-8"}, Terminal{}},
		{"colorterm", map[string]string{"LANG": "C.utf8", "COLORTERM": "truecolor"}, Terminal{UTF8: true, TrueColor: true}},
		{"kitty window", map[string]string{"KITTY_WINDOW_ID": "1", "TERM": "xterm-256color"}, Terminal{Graphics: true}},
		{"kitty terminfo", map[string]string{"TERM": "xterm-kitty"}, Terminal{TrueColor: true, Graphics: true}},
		{"wezterm", map[string]string{"TERM": "xterm-256color", "TERM_PROGRAM": "WezTerm", "COLORTERM": "24bit"}, Terminal{TrueColor: true, Graphics: true}},
		{"xterm-direct", map[string]string{"TERM": "xterm-direct"}, Terminal{TrueColor: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectTerminal(envOf(tt.env)); got != tt.want {
				t.Errorf("DetectTerminal() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveSurface(t *testing.T) {
	on, off := true, false
	kittyTerm := Terminal{UTF8: true, Graphics: true}
	plainTerm := Terminal{UTF8: true}

	tests := []struct {
		name     string
		term     Terminal
		graphics string
		ascii    *bool
		want     Surface
	}{
		{"auto on kitty", kittyTerm, "auto", nil, SurfaceKitty},
		{"auto elsewhere", plainTerm, "auto", nil, SurfaceBraille},
		{"empty setting", kittyTerm, "", nil, SurfaceKitty},
		{"forced kitty", plainTerm, "kitty", nil, SurfaceKitty},
		{"forced braille", kittyTerm, "braille", nil, SurfaceBraille},
		{"ascii setting", kittyTerm, "ascii", nil, SurfaceASCII},
		{"no utf8", Terminal{Graphics: true}, "auto", nil, SurfaceASCII},
		{"no utf8, ascii off", Terminal{}, "auto", &off, SurfaceBraille},
		{"ascii mode beats kitty", kittyTerm, "kitty", &on, SurfaceASCII},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Minimap.Graphics = tt.graphics
			cfg.Editor.AsciiMode = tt.ascii
			if got := tt.term.Resolve(cfg).Surface; got != tt.want {
				t.Errorf("Resolve().Surface = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveTrueColor(t *testing.T) {
	on, off := true, false
	tests := []struct {
		detected bool
		override *bool
		want     bool
	}{
		{true, nil, true},
		{false, nil, false},
		{false, &on, true},
		{true, &off, false},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Editor.TrueColor = tt.override
		term := Terminal{UTF8: true, TrueColor: tt.detected}
		if got := term.Resolve(cfg).TrueColor; got != tt.want {
			t.Errorf("Resolve().TrueColor with detected=%v = %v, want %v", tt.detected, got, tt.want)
		}
	}
}

func TestSurfaceString(t *testing.T) {
	for s, want := range map[Surface]string{
		SurfaceASCII:   "ascii",
		SurfaceBraille: "braille",
		SurfaceKitty:   "kitty",
		Surface(9):     "unknown",
	} {
		if got := s.String(); got != want {
			t.Errorf("Surface(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
