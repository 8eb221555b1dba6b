// Package minimap renders a zoomed-out pixel preview of a text document
// next to its viewport.
//
// A Minimap owns everything it caches: the options snapshot, the line
// sampling table used when the document has more lines than the minimap
// has pixel rows, the previous frame, two alternating line buffers and the
// decoration layer. It is driven from a single goroutine: the host reports
// document changes through the On* methods and asks for a frame with
// PrepareRender and Render.
package minimap

import (
	"image"

	"go.uber.org/zap"
)

// Frame is the result of one Render call.
type Frame struct {
	Layout  *Layout
	Options *Options

	// Image is the committed line surface. It is owned by the Minimap and
	// only valid until the next Render.
	Image *image.RGBA
	// Decorations is drawn on top of Image, transparent where empty.
	Decorations *image.RGBA

	DirtyY1, DirtyY2 int
	Needed           int
	Reused           bool
}

// Minimap is the minimap engine for one editor view.
type Minimap struct {
	model  Model
	opts   *Options
	params SamplingParams
	log    *zap.Logger

	sampling            *SamplingState
	shouldCheckSampling bool

	buffers      *bufferPair
	charRenderer *CharRenderer
	lastRender   *renderCache
	surface      *image.RGBA

	decoLayer        *image.RGBA
	decorationsDirty bool

	lastLayout *Layout
}

// New creates a minimap for model. A nil logger disables logging.
func New(model Model, opts *Options, params SamplingParams, logger *zap.Logger) *Minimap {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Minimap{
		model:               model,
		opts:                opts,
		params:              params,
		log:                 logger.Named("minimap"),
		shouldCheckSampling: true,
		decorationsDirty:    true,
	}
}

// Options returns the current options snapshot.
func (m *Minimap) Options() *Options { return m.opts }

// Sampling returns the current sampling state, nil when rows are lines.
func (m *Minimap) Sampling() *SamplingState { return m.sampling }

// Layout returns the layout of the last rendered frame, or nil.
func (m *Minimap) Layout() *Layout { return m.lastLayout }

// SetOptions replaces the options snapshot. Nothing is rebuilt when the
// new snapshot equals the current one.
func (m *Minimap) SetOptions(opts *Options) bool {
	if m.opts.Equal(opts) {
		return false
	}
	wasSampling := m.opts != nil && m.opts.IsSampling
	m.opts = opts
	m.buffers = nil
	m.surface = nil
	m.decoLayer = nil
	m.lastRender = nil
	m.decorationsDirty = true
	m.shouldCheckSampling = true
	if wasSampling != opts.IsSampling {
		m.sampling = nil
	}
	return true
}

// OnFlushed drops everything derived from document content.
func (m *Minimap) OnFlushed() {
	m.lastRender = nil
	m.decorationsDirty = true
	m.shouldCheckSampling = true
	if m.sampling != nil {
		// the mapping no longer describes the document
		m.sampling = nil
	}
}

// OnLinesChanged invalidates count lines starting at from.
func (m *Minimap) OnLinesChanged(from, count int) bool {
	m.decorationsDirty = true
	if m.lastRender == nil || count <= 0 {
		return false
	}
	if m.sampling != nil {
		start, end, ok := m.sampling.ModelRangeToMinimapRange(from, from+count-1)
		if !ok {
			return false
		}
		return m.lastRender.onLinesChanged(start, end-start+1)
	}
	return m.lastRender.onLinesChanged(from, count)
}

// OnLinesDeleted handles removal of document lines [from, to].
func (m *Minimap) OnLinesDeleted(from, to int) {
	m.decorationsDirty = true
	m.shouldCheckSampling = true
	if m.sampling != nil {
		// rows keep their slots; the ones that pointed into the deleted block
		// now show another line
		start, end, ok := m.sampling.OnLinesDeleted(from, to)
		if ok && m.lastRender != nil {
			m.lastRender.onLinesChanged(start+1, end-start+1)
		}
		return
	}
	if m.lastRender != nil {
		m.lastRender.onLinesDeleted(from, to)
	}
}

// OnLinesInserted handles new document lines [from, to].
func (m *Minimap) OnLinesInserted(from, to int) {
	m.decorationsDirty = true
	m.shouldCheckSampling = true
	if m.sampling != nil {
		m.sampling.OnLinesInserted(from, to)
		return
	}
	if m.lastRender != nil {
		m.lastRender.onLinesInserted(from, to)
	}
}

// OnTokensChanged invalidates lines whose token colors changed.
func (m *Minimap) OnTokensChanged(ranges []TokenRange) bool {
	if m.lastRender == nil {
		return false
	}
	if m.sampling != nil {
		mapped := make([]TokenRange, 0, len(ranges))
		for _, r := range ranges {
			if from, to, ok := m.sampling.ModelRangeToMinimapRange(r.From, r.To); ok {
				mapped = append(mapped, TokenRange{From: from, To: to})
			}
		}
		ranges = mapped
	}
	return m.lastRender.onTokensChanged(ranges)
}

// OnTokenColorsChanged drops every cached pixel. The caller is expected to
// pass the new palette in through SetOptions.
func (m *Minimap) OnTokenColorsChanged() {
	m.lastRender = nil
	m.buffers = nil
	m.charRenderer = nil
	m.decorationsDirty = true
}

// OnThemeChanged behaves like OnTokenColorsChanged.
func (m *Minimap) OnThemeChanged() {
	m.OnTokenColorsChanged()
}

// OnZonesChanged drops the previous frame; view zones move every row.
func (m *Minimap) OnZonesChanged() {
	m.lastRender = nil
	m.decorationsDirty = true
}

// OnDecorationsChanged schedules a repaint of the decoration layer.
func (m *Minimap) OnDecorationsChanged() { m.decorationsDirty = true }

// OnSelectionsChanged schedules a repaint of the decoration layer.
func (m *Minimap) OnSelectionsChanged() { m.decorationsDirty = true }

// OnScrollChanged schedules a repaint of the decoration layer.
func (m *Minimap) OnScrollChanged() { m.decorationsDirty = true }

// PrepareRender applies pending re-sampling so the next Render reads a
// sampling table that matches the document.
func (m *Minimap) PrepareRender() {
	if !m.shouldCheckSampling {
		return
	}
	m.shouldCheckSampling = false

	prev := m.sampling
	state, events := ComputeSampling(m.opts, m.model.LineCount(), prev, m.params)
	m.sampling = state

	if (prev == nil) != (state == nil) {
		m.flush()
		m.log.Debug("sampling toggled", zap.Bool("sampling", state != nil))
		return
	}
	if state == nil || state == prev {
		return
	}

	m.decorationsDirty = true
	for _, e := range events {
		switch e := e.(type) {
		case SamplingDeleted:
			if m.lastRender != nil {
				m.lastRender.onLinesDeleted(e.From, e.To)
			}
		case SamplingInserted:
			if m.lastRender != nil {
				m.lastRender.onLinesInserted(e.From, e.To)
			}
		case SamplingFlush:
			m.flush()
		}
	}
	m.log.Debug("resampled",
		zap.Float64("ratio", state.Ratio()),
		zap.Int("rows", state.LineCount()),
		zap.Int("events", len(events)),
	)
}

func (m *Minimap) flush() {
	m.lastRender = nil
	m.decorationsDirty = true
}

// Render computes the layout for ctx and brings the line surface and the
// decoration layer up to date. It returns nil when the minimap is hidden
// or has no area.
func (m *Minimap) Render(ctx RenderingContext) *Frame {
	o := m.opts
	if o == nil || o.RenderMode == RenderNone || o.CanvasInnerWidth <= 0 || o.CanvasInnerHeight <= 0 {
		return nil
	}
	m.PrepareRender()

	lineCount := m.model.LineCount()
	rows := lineCount
	if m.sampling != nil {
		rows = m.sampling.LineCount()
	}
	layout := ComputeLayout(o, ctx, rows, lineCount, m.lastLayout)
	if prev := m.lastLayout; prev == nil || prev.StartLine != layout.StartLine ||
		prev.EndLine != layout.EndLine || prev.TopPaddingLineCount != layout.TopPaddingLineCount {
		m.decorationsDirty = true
	}
	m.lastLayout = layout

	m.renderDecorations(layout)
	lines := m.renderLines(layout)
	if lines == nil {
		return nil
	}
	return &Frame{
		Layout:      layout,
		Options:     o,
		Image:       m.surface,
		Decorations: m.decoLayer,
		DirtyY1:     lines.DirtyY1,
		DirtyY2:     lines.DirtyY2,
		Needed:      lines.Needed,
		Reused:      lines.Reused,
	}
}

// DesiredScrollTopFromSliderDelta converts a slider drag into a scroll
// position using the last rendered layout.
func (m *Minimap) DesiredScrollTopFromSliderDelta(delta float64) int {
	if m.lastLayout == nil {
		return 0
	}
	return m.lastLayout.DesiredScrollTopFromDelta(delta)
}

// DesiredScrollTopFromTouchY converts a pointer position on the minimap
// into the scroll position that centers the slider on it.
func (m *Minimap) DesiredScrollTopFromTouchY(y float64) int {
	if m.lastLayout == nil {
		return 0
	}
	return m.lastLayout.DesiredScrollTopFromTouchY(y)
}

// LineAtY returns the document line drawn at canvas row y of the last
// frame. ok is false above the first or below the last drawn row.
func (m *Minimap) LineAtY(y int) (line int, ok bool) {
	l := m.lastLayout
	if l == nil || l.Empty() || y < 0 {
		return 0, false
	}
	mlh := max(m.opts.MinimapLineHeight, 1)
	row := l.StartLine + y/mlh - l.TopPaddingLineCount
	if row < l.StartLine || row > l.EndLine {
		return 0, false
	}
	return m.sampling.ModelLine(row), true
}

// buffer returns the next line buffer, allocating the pair on first use.
func (m *Minimap) buffer() *image.RGBA {
	if m.buffers == nil {
		m.buffers = newBufferPair(m.opts.CanvasInnerWidth, m.opts.CanvasInnerHeight, m.opts.canvasBackground())
		if m.buffers == nil {
			return nil
		}
	}
	return m.buffers.next()
}

func (m *Minimap) chars() *CharRenderer {
	if m.charRenderer == nil || m.charRenderer.Scale() != m.opts.charWidth() {
		m.charRenderer = NewCharRenderer(m.opts.charWidth())
	}
	return m.charRenderer
}

// commit copies rows [y1, y2) of img to the visible surface.
func (m *Minimap) commit(img *image.RGBA, y1, y2 int) {
	if m.surface == nil || m.surface.Rect != img.Rect {
		m.surface = image.NewRGBA(img.Rect)
		y1, y2 = 0, img.Rect.Dy()
	}
	if y2 <= y1 {
		return
	}
	start, end := y1*img.Stride, y2*img.Stride
	copy(m.surface.Pix[start:end], img.Pix[start:end])
}

// linesRenderingData fetches data for rows [start, end], translating rows
// to document lines while sampling.
func (m *Minimap) linesRenderingData(start, end int, needed []bool) []*LineData {
	if m.sampling == nil {
		return m.model.LinesRenderingData(start, end, needed)
	}
	out := make([]*LineData, len(needed))
	for i, n := range needed {
		if !n {
			continue
		}
		line := m.sampling.ModelLine(start + i)
		out[i] = m.model.LinesRenderingData(line, line, []bool{true})[0]
	}
	return out
}

func (m *Minimap) lineContent(row int) string {
	return m.model.LineContent(m.sampling.ModelLine(row))
}

func (m *Minimap) lineMaxColumn(row int) int {
	return m.model.LineMaxColumn(m.sampling.ModelLine(row))
}

// minimapSelections returns the selections in row coordinates.
func (m *Minimap) minimapSelections() []Range {
	sels := m.model.Selections()
	out := make([]Range, 0, len(sels))
	for _, s := range sels {
		from, to := m.sampling.DecorationRangeToMinimapRange(s.StartLine, s.EndLine)
		out = append(out, Range{StartLine: from, StartColumn: s.StartColumn, EndLine: to, EndColumn: s.EndColumn})
	}
	return out
}

// minimapDecorations returns the decorations touching rows [start, end],
// in row coordinates.
func (m *Minimap) minimapDecorations(start, end int) []Decoration {
	if m.sampling == nil {
		r := Range{StartLine: start, StartColumn: 1, EndLine: end, EndColumn: m.model.LineMaxColumn(end)}
		return append([]Decoration(nil), m.model.DecorationsInRange(r)...)
	}
	first := m.sampling.ModelLine(start)
	last := m.sampling.ModelLine(end)
	r := Range{StartLine: first, StartColumn: 1, EndLine: last, EndColumn: m.model.LineMaxColumn(last)}
	decos := m.model.DecorationsInRange(r)
	out := make([]Decoration, len(decos))
	for i, d := range decos {
		d.Range.StartLine = m.sampling.ModelLineToMinimapLine(d.Range.StartLine)
		d.Range.EndLine = m.sampling.ModelLineToMinimapLine(d.Range.EndLine)
		out[i] = d
	}
	return out
}
