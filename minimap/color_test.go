package minimap

import (
	"testing"

	"github.com/cornish/textivus-minimap/config"
	"github.com/cornish/textivus-minimap/syntax"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in     string
		want   RGBA8
		wantOK bool
	}{
		{"#ffffff", RGBA8{255, 255, 255, 255}, true},
		{"#fff", RGBA8{255, 255, 255, 255}, true},
		{"#1e1e1e", RGBA8{30, 30, 30, 255}, true},
		{"#ff000080", RGBA8{255, 0, 0, 128}, true},
		{"196", RGBA8{255, 0, 0, 255}, true},
		{"1", RGBA8{205, 49, 49, 255}, true},
		{"244", RGBA8{128, 128, 128, 255}, true},
		{"", RGBA8{}, false},
		{"300", RGBA8{}, false},
		{"#zzzzzz", RGBA8{}, false},
		{"blue", RGBA8{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseColor(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestColorOver(t *testing.T) {
	base := RGBA8{0, 0, 255, 255}
	if got := (RGBA8{255, 0, 0, 255}).Over(base); got != (RGBA8{255, 0, 0, 255}) {
		t.Errorf("opaque Over() = %v, want the color itself", got)
	}
	if got, want := (RGBA8{255, 0, 0, 128}).Over(base), (RGBA8{128, 0, 127, 255}); got != want {
		t.Errorf("Over() = %v, want %v", got, want)
	}
	if got := (RGBA8{255, 0, 0, 0}).Over(base); got != base {
		t.Errorf("transparent Over() = %v, want %v", got, base)
	}
}

func TestIsLight(t *testing.T) {
	if !(RGBA8{255, 255, 255, 255}).IsLight() {
		t.Error("white should be light")
	}
	if (RGBA8{30, 30, 30, 255}).IsLight() {
		t.Error("#1e1e1e should not be light")
	}
}

func TestNewPalette(t *testing.T) {
	fg := RGBA8{204, 204, 204, 255}
	p := NewPalette(config.SyntaxColors{Keyword: "#ff0000", Comment: "bogus"}, fg)

	if got := p.Color(syntax.ColorKeyword); got != (RGBA8{255, 0, 0, 255}) {
		t.Errorf("Color(keyword) = %v, want red", got)
	}
	if got := p.Color(syntax.ColorComment); got != fg {
		t.Errorf("Color(comment) with an invalid entry = %v, want %v", got, fg)
	}
	if got := p.Color(syntax.ColorID(200)); got != fg {
		t.Errorf("Color(200) = %v, want %v", got, fg)
	}
}

func TestCharRenderer(t *testing.T) {
	r := NewCharRenderer(1)
	if r.charWidth != 1 || r.charHeight != 2 {
		t.Fatalf("glyph cell = %dx%d, want 1x2", r.charWidth, r.charHeight)
	}
	coverage := func(ch rune) int {
		i := glyphIndex(ch) * r.charWidth * r.charHeight
		sum := 0
		for _, v := range r.normal[i : i+r.charWidth*r.charHeight] {
			sum += int(v)
		}
		return sum
	}
	if c := coverage(' '); c != 0 {
		t.Errorf("coverage(' ') = %d, want 0", c)
	}
	if coverage('M') == 0 {
		t.Error("coverage('M') = 0, want ink")
	}
	if glyphIndex('é') != fallbackGlyph {
		t.Errorf("glyphIndex('é') = %d, want the fallback glyph", glyphIndex('é'))
	}
}
