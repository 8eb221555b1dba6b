package minimap

import (
	"image"

	"github.com/cornish/textivus-minimap/syntax"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
)

// RenderResult describes one pass of the line renderer.
type RenderResult struct {
	Image   *image.RGBA
	DirtyY1 int // First canvas row that may differ from the previous frame
	DirtyY2 int // One past the last such row
	Needed  int // Rows rasterized from line data
	Copies  int // Merged copy operations performed
	Reused  bool
}

// untouched is the outcome of copying reusable rows from the last frame.
type untouched struct {
	dirtyY1 int // -1 when the top of the image may have changed
	dirtyY2 int // -1 when the bottom of the image may have changed
	needed  []bool
	copies  int
}

// renderUntouchedLines copies every row that is still valid in the last
// frame into target and flags the others as needed. Copies whose source
// and destination are both contiguous are merged.
func renderUntouchedLines(target *image.RGBA, topPadding, startLine, endLine, minimapLineHeight int, last *renderCache) untouched {
	count := max(0, endLine-startLine+1)
	res := untouched{dirtyY1: -1, dirtyY2: -1, needed: make([]bool, count)}
	if last == nil {
		for i := range res.needed {
			res.needed[i] = true
		}
		return res
	}

	src := last.image.Pix
	dst := target.Pix
	stride := target.Stride
	maxDestPixel := (topPadding + count) * minimapLineHeight * stride

	// pixel offsets up to / after which the image provably equals last frame
	dirtyPixel1, dirtyPixel2 := -1, -1
	copySrcStart, copySrcEnd := -1, -1
	copyDstStart, copyDstEnd := -1, -1

	flush := func() {
		copy(dst[copyDstStart:copyDstEnd], src[copySrcStart:copySrcEnd])
		res.copies++
		if dirtyPixel1 == -1 && copySrcStart == 0 && copySrcStart == copyDstStart {
			dirtyPixel1 = copySrcEnd
		}
		if dirtyPixel2 == -1 && copySrcEnd == maxDestPixel && copySrcStart == copyDstStart {
			dirtyPixel2 = copySrcStart
		}
	}

	destDY := topPadding * minimapLineHeight
	for line := startLine; line <= endLine; line++ {
		idx := line - startLine
		srcDY := last.dyFor(line)
		if srcDY == invalidDY || (srcDY+minimapLineHeight)*stride > len(src) {
			res.needed[idx] = true
			destDY += minimapLineHeight
			continue
		}

		srcStart := srcDY * stride
		srcEnd := (srcDY + minimapLineHeight) * stride
		dstStart := destDY * stride
		dstEnd := (destDY + minimapLineHeight) * stride
		if dstEnd > len(dst) {
			res.needed[idx] = true
			destDY += minimapLineHeight
			continue
		}

		if copySrcEnd == srcStart && copyDstEnd == dstStart {
			copySrcEnd = srcEnd
			copyDstEnd = dstEnd
		} else {
			if copySrcStart != -1 {
				flush()
			}
			copySrcStart, copySrcEnd = srcStart, srcEnd
			copyDstStart, copyDstEnd = dstStart, dstEnd
		}
		destDY += minimapLineHeight
	}
	if copySrcStart != -1 {
		flush()
	}

	if dirtyPixel1 != -1 {
		res.dirtyY1 = dirtyPixel1 / stride
	}
	if dirtyPixel2 != -1 {
		res.dirtyY2 = dirtyPixel2 / stride
	}
	return res
}

// lineStyle carries the per-frame values renderLine needs.
type lineStyle struct {
	mode              RenderMode
	background        RGBA8 // opaque: blended over the editor background
	backgroundAlpha   uint8
	foregroundAlpha   uint8
	lighter           bool
	charWidth         int
	tabSize           int
	minimapLineHeight int
	innerPadding      int
	palette           *Palette
	chars             *CharRenderer
}

func newLineStyle(o *Options, chars *CharRenderer) lineStyle {
	renderHeight := baseCharHeight * o.FontScale
	if o.RenderMode != RenderText {
		renderHeight = (baseCharHeight + 1) * o.FontScale
	}
	padding := 0
	if o.MinimapLineHeight > renderHeight {
		padding = (o.MinimapLineHeight - renderHeight) / 2
	}
	return lineStyle{
		mode:              o.RenderMode,
		background:        o.canvasBackground(),
		backgroundAlpha:   255,
		foregroundAlpha:   o.ForegroundAlpha,
		lighter:           o.BackgroundIsLight,
		charWidth:         chars.charWidth,
		tabSize:           max(o.TabSize, 1),
		minimapLineHeight: o.MinimapLineHeight,
		innerPadding:      padding,
		palette:           &o.Palette,
		chars:             chars,
	}
}

// renderLine draws one line's tokens starting at row dy. Whitespace only
// advances the pen; full-width runes take two cells.
func renderLine(target *image.RGBA, st lineStyle, dy int, data *LineData) {
	if data == nil {
		return
	}
	width := target.Rect.Dx()
	maxDX := width - st.charWidth
	force1px := st.minimapLineHeight == 1
	y := dy + st.innerPadding

	content := []rune(data.Content)
	tokens := data.Tokens
	if len(tokens) == 0 {
		tokens = []syntax.Token{{End: len(content), Color: syntax.ColorDefault}}
	}

	dx := GutterWidth
	charIndex := 0
	tabsCharDelta := 0
	for _, tok := range tokens {
		color := st.palette.Color(tok.Color)
		end := min(tok.End, len(content))
		for ; charIndex < end; charIndex++ {
			if dx > maxDX {
				return
			}
			ch := content[charIndex]
			switch ch {
			case '\t':
				spaces := st.tabSize - (charIndex+tabsCharDelta)%st.tabSize
				tabsCharDelta += spaces - 1
				dx += spaces * st.charWidth
			case ' ':
				dx += st.charWidth
			default:
				n := 1
				if runewidth.RuneWidth(ch) == 2 {
					n = 2
				}
				for i := 0; i < n; i++ {
					if st.mode == RenderBlocks {
						st.chars.blockRenderChar(target, dx, y, color, st.foregroundAlpha, st.background, st.backgroundAlpha, force1px)
					} else {
						st.chars.renderChar(target, dx, y, ch, color, st.foregroundAlpha, st.background, st.backgroundAlpha, st.lighter, force1px)
					}
					dx += st.charWidth
					if dx > maxDX {
						return
					}
				}
			}
		}
	}
}

// renderLines produces the line image for layout, reusing the last frame
// where it can. It returns nil for a zero-area canvas.
func (m *Minimap) renderLines(layout *Layout) *RenderResult {
	start, end := layout.StartLine, layout.EndLine
	mlh := m.opts.MinimapLineHeight

	if m.lastRender != nil && m.lastRender.linesEqual(layout) {
		return &RenderResult{Image: m.lastRender.image, Reused: true}
	}

	img := m.buffer()
	if img == nil {
		return nil
	}

	u := renderUntouchedLines(img, layout.TopPaddingLineCount, start, end, mlh, m.lastRender)
	data := m.linesRenderingData(start, end, u.needed)
	st := newLineStyle(m.opts, m.chars())

	needed := 0
	dys := make([]int, max(0, end-start+1))
	dy := layout.TopPaddingLineCount * mlh
	for i := range dys {
		if u.needed[i] {
			renderLine(img, st, dy, data[i])
			needed++
		}
		dys[i] = dy
		dy += mlh
	}

	height := img.Rect.Dy()
	dirtyY1, dirtyY2 := u.dirtyY1, u.dirtyY2
	if dirtyY1 == -1 {
		dirtyY1 = 0
	}
	if dirtyY2 == -1 {
		dirtyY2 = height
	}
	// The surface still shows whatever the last frame drew below our rows.
	if last := m.lastRender; last != nil && last.bottom > dy {
		dirtyY2 = min(max(dirtyY2, last.bottom), height)
	}
	if dirtyY2 < dirtyY1 {
		dirtyY2 = dirtyY1
	}

	m.commit(img, dirtyY1, dirtyY2)
	m.lastRender = newRenderCache(layout, img, dys, dy)

	if ce := m.log.Check(zap.DebugLevel, "minimap lines rendered"); ce != nil {
		ce.Write(
			zap.Int("start", start),
			zap.Int("end", end),
			zap.Int("needed", needed),
			zap.Int("copies", u.copies),
			zap.Int("dirtyY1", dirtyY1),
			zap.Int("dirtyY2", dirtyY2),
		)
	}
	return &RenderResult{
		Image:   img,
		DirtyY1: dirtyY1,
		DirtyY2: dirtyY2,
		Needed:  needed,
		Copies:  u.copies,
	}
}
