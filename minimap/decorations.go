package minimap

import (
	"image"
	"math"
	"slices"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/draw"
)

// lineMap is a fixed window of per-row values for rows [start, end].
type lineMap[T any] struct {
	start  int
	values []T
	set    []bool
}

func newLineMap[T any](start, end int) *lineMap[T] {
	n := max(0, end-start+1)
	return &lineMap[T]{start: start, values: make([]T, n), set: make([]bool, n)}
}

func (m *lineMap[T]) has(line int) bool {
	i := line - m.start
	return i >= 0 && i < len(m.set) && m.set[i]
}

func (m *lineMap[T]) get(line int) (T, bool) {
	var zero T
	if !m.has(line) {
		return zero, false
	}
	return m.values[line-m.start], true
}

func (m *lineMap[T]) put(line int, v T) {
	i := line - m.start
	if i < 0 || i >= len(m.set) {
		return
	}
	m.values[i] = v
	m.set[i] = true
}

// decorationPainter draws one frame of the decoration layer.
type decorationPainter struct {
	m       *Minimap
	dst     *image.RGBA
	layout  *Layout
	offsets *lineMap[[]float64]
}

// renderDecorations repaints the decoration layer when anything feeding it
// changed since the last frame.
func (m *Minimap) renderDecorations(layout *Layout) {
	if !m.decorationsDirty && m.decoLayer != nil {
		return
	}
	m.decorationsDirty = false

	o := m.opts
	if m.decoLayer == nil || m.decoLayer.Rect.Dx() != o.CanvasInnerWidth || m.decoLayer.Rect.Dy() != o.CanvasInnerHeight {
		m.decoLayer = image.NewRGBA(image.Rect(0, 0, max(0, o.CanvasInnerWidth), max(0, o.CanvasInnerHeight)))
	}
	clear(m.decoLayer.Pix)
	if layout.Empty() || m.decoLayer.Rect.Empty() {
		return
	}

	selections := m.minimapSelections()
	slices.SortFunc(selections, compareRangeStarts)
	decorations := m.minimapDecorations(layout.StartLine, layout.EndLine)
	slices.SortStableFunc(decorations, func(a, b Decoration) int { return a.ZIndex - b.ZIndex })

	p := &decorationPainter{
		m:       m,
		dst:     m.decoLayer,
		layout:  layout,
		offsets: newLineMap[[]float64](layout.StartLine, layout.EndLine),
	}

	// One highlight color per row: selections win, then the decoration
	// with the highest z-index.
	highlighted := newLineMap[bool](layout.StartLine, layout.EndLine)
	p.selectionLineHighlights(selections, highlighted)
	p.decorationLineHighlights(decorations, highlighted)

	p.selectionHighlights(selections)
	p.decorationHighlights(decorations)
	p.sectionHeaders(decorations)
}

func compareRangeStarts(a, b Range) int {
	if a.StartLine != b.StartLine {
		return a.StartLine - b.StartLine
	}
	return a.StartColumn - b.StartColumn
}

func (p *decorationPainter) fill(x, y, w, h int, c RGBA8) {
	r := image.Rect(x, y, x+w, y+h).Intersect(p.dst.Rect)
	if r.Empty() || c.Transparent() {
		return
	}
	draw.Draw(p.dst, r, image.NewUniform(c.NRGBA()), image.Point{}, draw.Over)
}

func (p *decorationPainter) selectionLineHighlights(selections []Range, highlighted *lineMap[bool]) {
	color := p.m.opts.SelectionColor
	if color.Transparent() {
		return
	}
	color = color.WithAlpha(0.5)
	mlh := p.m.opts.MinimapLineHeight
	width := p.dst.Rect.Dx()

	y1, y2 := 0, 0
	for _, sel := range selections {
		start, end, ok := p.layout.IntersectWithViewport(sel)
		if !ok {
			continue
		}
		for line := start; line <= end; line++ {
			highlighted.put(line, true)
		}
		yy1 := p.layout.YForLine(start, mlh)
		yy2 := p.layout.YForLine(end, mlh) + mlh
		if y2 >= yy1 {
			y2 = max(y2, yy2)
			continue
		}
		if y2 > y1 {
			p.fill(GutterWidth, y1, width, y2-y1, color)
		}
		y1, y2 = yy1, yy2
	}
	if y2 > y1 {
		p.fill(GutterWidth, y1, width, y2-y1, color)
	}
}

func (p *decorationPainter) decorationLineHighlights(decorations []Decoration, highlighted *lineMap[bool]) {
	mlh := p.m.opts.MinimapLineHeight
	width := p.dst.Rect.Dx()
	// Walk backwards so higher z-index decorations claim rows first.
	for i := len(decorations) - 1; i >= 0; i-- {
		d := decorations[i]
		if d.Position != PositionInline || d.SectionHeader != SectionHeaderNone || d.Color.Transparent() {
			continue
		}
		start, end, ok := p.layout.IntersectWithViewport(d.Range)
		if !ok {
			continue
		}
		color := d.Color.WithAlpha(0.5)
		for line := start; line <= end; line++ {
			if highlighted.has(line) {
				continue
			}
			highlighted.put(line, true)
			p.fill(GutterWidth, p.layout.YForLine(line, mlh), width, mlh, color)
		}
	}
}

func (p *decorationPainter) selectionHighlights(selections []Range) {
	color := p.m.opts.SelectionColor
	if color.Transparent() {
		return
	}
	for _, sel := range selections {
		start, end, ok := p.layout.IntersectWithViewport(sel)
		if !ok {
			continue
		}
		for line := start; line <= end; line++ {
			p.decorationOnLine(sel, color, line)
		}
	}
}

func (p *decorationPainter) decorationHighlights(decorations []Decoration) {
	mlh := p.m.opts.MinimapLineHeight
	// Forwards, so higher z-index paints last.
	for _, d := range decorations {
		if d.SectionHeader != SectionHeaderNone || d.Color.Transparent() {
			continue
		}
		start, end, ok := p.layout.IntersectWithViewport(d.Range)
		if !ok {
			continue
		}
		for line := start; line <= end; line++ {
			switch d.Position {
			case PositionInline:
				p.decorationOnLine(d.Range, d.Color, line)
			case PositionGutter:
				y := p.layout.YForLine(line, mlh)
				p.fill(gutterDecorationX, y, gutterDecorationWidth, mlh, d.Color)
			}
		}
	}
}

// decorationOnLine paints the part of r that lies on row line.
func (p *decorationPainter) decorationOnLine(r Range, color RGBA8, line int) {
	mlh := p.m.opts.MinimapLineHeight
	y := p.layout.YForLine(line, mlh)
	if y+mlh < 0 || y > p.m.opts.CanvasInnerHeight {
		return
	}
	startColumn := 1
	if r.StartLine == line {
		startColumn = r.StartColumn
	}
	maxColumn := p.m.lineMaxColumn(line)
	endColumn := maxColumn
	if r.EndLine == line {
		endColumn = min(r.EndColumn, maxColumn)
	}
	x1 := p.xForColumn(line, startColumn)
	x2 := p.xForColumn(line, endColumn)
	p.fill(int(x1), y, int(math.Ceil(x2-x1)), mlh, color)
}

// xForColumn converts a 1-based column to a canvas x, expanding tabs and
// full-width runes. Offsets are computed once per row and frame.
func (p *decorationPainter) xForColumn(line, column int) float64 {
	o := p.m.opts
	canvasWidth := float64(o.CanvasInnerWidth)
	charWidth := o.MinimapCharWidth
	if column <= 1 {
		return GutterWidth
	}
	if float64(column-1)*charWidth >= canvasWidth {
		return canvasWidth
	}

	offsets, ok := p.offsets.get(line)
	if !ok {
		content := []rune(p.m.lineContent(line))
		offsets = make([]float64, 1, len(content)+1)
		offsets[0] = GutterWidth
		x := float64(GutterWidth)
		for _, ch := range content {
			switch {
			case ch == '\t':
				x += float64(o.TabSize) * charWidth
			case runewidth.RuneWidth(ch) == 2:
				x += 2 * charWidth
			default:
				x += charWidth
			}
			if x >= canvasWidth {
				offsets = append(offsets, canvasWidth)
				break
			}
			offsets = append(offsets, x)
		}
		p.offsets.put(line, offsets)
	}
	if column-1 < len(offsets) {
		return offsets[column-1]
	}
	return canvasWidth
}
