package ui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/cornish/textivus-minimap/minimap"
)

var whitePx = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func TestBrailleRender(t *testing.T) {
	tests := []struct {
		name  string
		paint func(img *image.RGBA)
		want  []string
	}{
		{
			name:  "blank",
			paint: func(*image.RGBA) {},
			want:  []string{"  ", "  "},
		},
		{
			name: "one dot",
			paint: func(img *image.RGBA) {
				img.SetRGBA(0, 0, whitePx)
			},
			want: []string{"⠁ ", "  "},
		},
		{
			name: "right column of second cell",
			paint: func(img *image.RGBA) {
				for y := 4; y < 8; y++ {
					img.SetRGBA(3, y, whitePx)
				}
			},
			want: []string{"  ", " ⢸"},
		},
		{
			name: "full",
			paint: func(img *image.RGBA) {
				for y := 0; y < 8; y++ {
					for x := 0; x < 4; x++ {
						img.SetRGBA(x, y, whitePx)
					}
				}
			},
			want: []string{"⣿⣿", "⣿⣿"},
		},
	}
	r := NewBrailleRenderer(DefaultStyles())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testFrame(4, 8, black, 0, 0, 1)
			tt.paint(f.Image)
			rows := r.Render(f, 2, 2, SliderHidden)
			if len(rows) != len(tt.want) {
				t.Fatalf("Render() returned %d rows, want %d", len(rows), len(tt.want))
			}
			for i, row := range rows {
				if got := ansi.Strip(row); got != tt.want[i] {
					t.Errorf("row %d = %q, want %q", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestBrailleRenderASCII(t *testing.T) {
	UseASCII = true
	defer func() { UseASCII = false }()

	f := testFrame(4, 8, black, 0, 0, 1)
	for x := 0; x < 2; x++ {
		for y := 0; y < 4; y++ {
			f.Image.SetRGBA(x, y, whitePx)
		}
	}
	rows := NewBrailleRenderer(DefaultStyles()).Render(f, 2, 2, SliderHidden)
	if got := ansi.Strip(rows[0]); got != "% " {
		t.Errorf("row 0 = %q, want %q", got, "% ")
	}
}

func TestBrailleSliderTint(t *testing.T) {
	f := testFrame(4, 8, black, 0, 4, 1)
	r := NewBrailleRenderer(DefaultStyles())

	tint := f.Options.SliderColor.Over(black)
	tintBg := rgbToANSI(48, int(tint.R), int(tint.G), int(tint.B))
	plainBg := rgbToANSI(48, 0, 0, 0)

	rows := r.Render(f, 2, 2, SliderVisible)
	if !strings.HasPrefix(rows[0], tintBg) {
		t.Errorf("row under slider = %q, want tinted background", rows[0])
	}
	if !strings.HasPrefix(rows[1], plainBg) {
		t.Errorf("row below slider = %q, want plain background", rows[1])
	}

	rows = r.Render(f, 2, 2, SliderHidden)
	if !strings.HasPrefix(rows[0], plainBg) {
		t.Errorf("hidden slider row = %q, want plain background", rows[0])
	}
}

func TestBrailleRenderNilFrame(t *testing.T) {
	rows := NewBrailleRenderer(DefaultStyles()).Render(nil, 3, 2, SliderVisible)
	for i, row := range rows {
		if row != "   " {
			t.Errorf("row %d = %q, want blanks", i, row)
		}
	}
}

func TestMinimapViewBraille(t *testing.T) {
	v := NewMinimapView(DefaultStyles(), false)
	out := v.Render(testFrame(4, 8, black, 0, 0, 1), 10, 0, 2, 2, SliderHidden)
	if out.Graphics != "" {
		t.Errorf("braille view emitted graphics %q", out.Graphics)
	}
	if len(out.Rows) != 2 {
		t.Errorf("Rows = %d, want 2", len(out.Rows))
	}
	if v.Clear() != "" {
		t.Errorf("Clear() = %q, want empty", v.Clear())
	}
}

func TestMinimapViewKitty(t *testing.T) {
	v := NewMinimapView(DefaultStyles(), true)
	out := v.Render(testFrame(4, 8, black, 0, 0, 1), 10, 0, 2, 2, SliderVisible)
	if !strings.Contains(out.Graphics, "i=1001") {
		t.Errorf("Graphics = %q, want the minimap image id", out.Graphics)
	}
	for i, row := range out.Rows {
		if row != "  " {
			t.Errorf("row %d = %q, want blanks under the image", i, row)
		}
	}
	if got := v.Clear(); got != "\033_Ga=d,d=i,i=1001\033\\" {
		t.Errorf("Clear() = %q", got)
	}

	var nilFrame *minimap.Frame
	if out := v.Render(nilFrame, 10, 0, 2, 2, SliderVisible); out.Graphics != "" {
		t.Errorf("nil frame produced graphics %q", out.Graphics)
	}
}
