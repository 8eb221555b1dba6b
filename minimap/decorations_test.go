package minimap

import (
	"testing"
	"unicode/utf8"
)

func alphaAt(f *Frame, x, y int) uint8 {
	return f.Decorations.RGBAAt(x, y).A
}

func TestDecorationInline(t *testing.T) {
	model := newTestModel(20)
	model.decorations = []Decoration{{
		Range:    Range{StartLine: 3, StartColumn: 1, EndLine: 3, EndColumn: 5},
		Color:    RGBA8{255, 0, 0, 255},
		Position: PositionInline,
	}}
	m := New(model, newTestOptions(100, 200), DefaultSamplingParams(), nil)
	f := m.Render(fitContext(20))

	// row 3 starts at y = 4
	if a := alphaAt(f, GutterWidth+1, 4); a == 0 {
		t.Error("decorated span is transparent")
	}
	// the line highlight covers the whole row, the span only 4 columns
	if a := alphaAt(f, 60, 4); a == 0 {
		t.Error("line highlight is transparent")
	}
	if a := alphaAt(f, 0, 4); a != 0 {
		t.Errorf("gutter alpha = %d, want 0", a)
	}
	if a := alphaAt(f, GutterWidth+1, 2); a != 0 {
		t.Errorf("undecorated row alpha = %d, want 0", a)
	}
	if span, row := f.Decorations.RGBAAt(GutterWidth+1, 4), f.Decorations.RGBAAt(60, 4); span == row {
		t.Error("span and line highlight have the same color")
	}
}

func TestDecorationGutter(t *testing.T) {
	model := newTestModel(20)
	model.decorations = []Decoration{{
		Range:    LineRange(5, 6),
		Color:    RGBA8{0, 255, 0, 255},
		Position: PositionGutter,
	}}
	m := New(model, newTestOptions(100, 200), DefaultSamplingParams(), nil)
	f := m.Render(fitContext(20))

	for _, y := range []int{8, 9, 10, 11} {
		if a := alphaAt(f, gutterDecorationX, y); a != 255 {
			t.Errorf("gutter marker alpha at y=%d = %d, want 255", y, a)
		}
	}
	if a := alphaAt(f, gutterDecorationX+gutterDecorationWidth, 8); a != 0 {
		t.Errorf("alpha right of the marker = %d, want 0", a)
	}
	if a := alphaAt(f, GutterWidth+1, 8); a != 0 {
		t.Errorf("gutter decorations should not highlight the line, alpha = %d", a)
	}
}

func TestSelectionWinsLineHighlight(t *testing.T) {
	model := newTestModel(20)
	model.selections = []Range{{StartLine: 2, StartColumn: 1, EndLine: 2, EndColumn: 3}}
	model.decorations = []Decoration{{
		Range:    LineRange(2, 2),
		ZIndex:   5,
		Color:    RGBA8{255, 0, 0, 255},
		Position: PositionInline,
	}}
	o := newTestOptions(100, 200)
	m := New(model, o, DefaultSamplingParams(), nil)
	f := m.Render(fitContext(20))

	// past the end of the text only the line highlight is drawn
	got := f.Decorations.RGBAAt(90, 2)
	want := o.SelectionColor.WithAlpha(0.5)
	if got.A != want.A {
		t.Errorf("line highlight alpha = %d, want %d", got.A, want.A)
	}
	if got.R > got.B {
		t.Errorf("line highlight = %v, want the selection color", got)
	}
}

func TestLineRangeSpansWholeLine(t *testing.T) {
	model := newTestModel(20)
	model.decorations = []Decoration{{
		Range:    LineRange(3, 3),
		Color:    RGBA8{255, 0, 0, 255},
		Position: PositionInline,
	}}
	m := New(model, newTestOptions(100, 200), DefaultSamplingParams(), nil)
	f := m.Render(fitContext(20))

	// "line 3\tvalue := 21" ends at x = 8 + 21
	for _, x := range []int{GutterWidth, GutterWidth + 10, GutterWidth + 20} {
		if a := alphaAt(f, x, 4); a != 255 {
			t.Errorf("span alpha at x=%d = %d, want 255", x, a)
		}
	}
	if a := alphaAt(f, 90, 4); a == 0 || a == 255 {
		t.Errorf("alpha past the end of the line = %d, want the line highlight only", a)
	}
}

func TestOverlappingDecorationsHigherZIndexWins(t *testing.T) {
	red := RGBA8{255, 0, 0, 255}
	blue := RGBA8{0, 0, 255, 255}
	model := newTestModel(20)
	model.decorations = []Decoration{
		{Range: Range{StartLine: 3, StartColumn: 3, EndLine: 3, EndColumn: 7}, ZIndex: 10, Color: blue},
		{Range: Range{StartLine: 3, StartColumn: 1, EndLine: 3, EndColumn: 11}, ZIndex: 1, Color: red},
	}
	m := New(model, newTestOptions(100, 200), DefaultSamplingParams(), nil)
	f := m.Render(fitContext(20))

	tests := []struct {
		x    int
		want RGBA8
	}{
		{GutterWidth, red},      // column 1
		{GutterWidth + 3, blue}, // column 4, under both
		{GutterWidth + 5, blue}, // column 6
		{GutterWidth + 7, red},  // column 7, inside the tab
		{GutterWidth + 12, red}, // column 10
	}
	for _, tt := range tests {
		got := f.Decorations.RGBAAt(tt.x, 4)
		if got.R != tt.want.R || got.G != tt.want.G || got.B != tt.want.B || got.A != 255 {
			t.Errorf("pixel at x=%d = %v, want %v", tt.x, got, tt.want)
		}
	}

	// the row highlight belongs to the higher decoration too
	if got := f.Decorations.RGBAAt(90, 4); got.B <= got.R {
		t.Errorf("line highlight = %v, want the blue decoration", got)
	}
}

func TestDecorationsRepaintOnlyWhenDirty(t *testing.T) {
	model := newTestModel(20)
	m := New(model, newTestOptions(100, 200), DefaultSamplingParams(), nil)
	m.Render(fitContext(20))

	model.decorations = []Decoration{{Range: LineRange(1, 1), Color: RGBA8{255, 0, 0, 255}}}
	f := m.Render(fitContext(20))
	if a := alphaAt(f, 60, 0); a != 0 {
		t.Error("decoration layer repainted without a change notification")
	}

	m.OnDecorationsChanged()
	f = m.Render(fitContext(20))
	if a := alphaAt(f, 60, 0); a == 0 {
		t.Error("decoration layer not repainted after OnDecorationsChanged")
	}
}

func TestSectionHeaderBand(t *testing.T) {
	model := newTestModel(40)
	model.decorations = []Decoration{{
		Range:         LineRange(1, 1),
		SectionHeader: SectionHeaderUnderlined,
		Label:         "Section",
	}}
	o := newTestOptions(100, 200)
	m := New(model, o, DefaultSamplingParams(), nil)
	f := m.Render(fitContext(40))

	// band covers fontSize*1.5 rows from the top of line 1
	if a := alphaAt(f, 0, 0); a == 0 {
		t.Error("section header band is transparent")
	}
	if a := alphaAt(f, 0, 20); a != 0 {
		t.Errorf("alpha below the band = %d, want 0", a)
	}
	// separator
	if c := f.Decorations.RGBAAt(0, 2); c.A != 255 {
		t.Errorf("separator alpha = %d, want 255", c.A)
	}
}

func TestFitSectionHeader(t *testing.T) {
	measure := func(s string) float64 { return float64(utf8.RuneCountInString(s)) }
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     string
	}{
		{"fits", "Short", 10, "Short"},
		{"empty", "", 0, ""},
		{"middle", "Hello World Section", 10, "Hell…tion"},
		{"whitespace before midpoint", "ab cdefghijklmnop", 8, "ab…mnop"},
		{"no room", "Hello World", 1, "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitSectionHeader(measure, tt.maxWidth, tt.text); got != tt.want {
				t.Errorf("FitSectionHeader(%q, %v) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestLabelWidth(t *testing.T) {
	if got := labelWidth("abc", 1); got != 24 {
		t.Errorf("labelWidth(abc, 1) = %v, want 24", got)
	}
	if got := labelWidth(ellipsis, 0); got != 7 {
		t.Errorf("labelWidth(ellipsis, 0) = %v, want 7", got)
	}
}
