package minimap

import "math"

// RenderingContext is what the host knows about its viewport for a frame.
// Line numbers are 1-based document lines; offsets are in CSS pixels.
type RenderingContext struct {
	ViewportStartLine               int
	ViewportEndLine                 int
	ViewportStartLineVerticalOffset int // Top of ViewportStartLine in scroll coordinates
	ScrollTop                       int
	ScrollHeight                    int
	ViewportWidth                   int
	ViewportHeight                  int
	HasWhitespaceGaps               bool
}

// Layout is the slider geometry and visible row window for one frame.
// It is never modified after ComputeLayout returns it.
type Layout struct {
	ScrollTop    int
	ScrollHeight int

	SliderNeeded bool
	sliderRatio  float64
	SliderTop    float64
	SliderHeight int

	// TopPaddingLineCount rows are left empty above StartLine.
	TopPaddingLineCount int
	StartLine           int
	EndLine             int
}

// ComputeLayout places the slider and picks the rows to draw. lineCount is
// the number of minimap rows (sampled rows when down-sampling) and
// realLineCount the document line count. prev, when not nil, is the layout
// of the previous frame and keeps the row window steady across sub-line
// scroll changes.
func ComputeLayout(opts *Options, ctx RenderingContext, lineCount, realLineCount int, prev *Layout) *Layout {
	pixelRatio := opts.PixelRatio
	minimapLineHeight := max(opts.MinimapLineHeight, 1)
	linesFitting := opts.CanvasInnerHeight / minimapLineHeight
	lineHeight := opts.LineHeight
	viewportHeight := ctx.ViewportHeight

	if opts.MinimapHeightIsEditorHeight {
		logicalScrollHeight := realLineCount*lineHeight + opts.PaddingTop + opts.PaddingBottom
		if opts.ScrollBeyondLastLine {
			logicalScrollHeight += max(0, viewportHeight-lineHeight-opts.PaddingBottom)
		}
		sliderHeight := 1
		if logicalScrollHeight > 0 {
			sliderHeight = max(1, viewportHeight*viewportHeight/logicalScrollHeight)
		}
		maxSliderTop := max(0, opts.MinimapHeight-sliderHeight)
		ratio := sliderRatio(float64(maxSliderTop), ctx.ScrollHeight-viewportHeight)
		return &Layout{
			ScrollTop:           ctx.ScrollTop,
			ScrollHeight:        ctx.ScrollHeight,
			SliderNeeded:        maxSliderTop > 0,
			sliderRatio:         ratio,
			SliderTop:           clampTop(float64(ctx.ScrollTop) * ratio),
			SliderHeight:        sliderHeight,
			TopPaddingLineCount: opts.PaddingTop / lineHeight,
			StartLine:           1,
			EndLine:             min(lineCount, linesFitting),
		}
	}

	// The slider height follows the visible line count when whitespace gaps
	// make it vary, and the viewport height otherwise.
	expectedViewportLines := float64(viewportHeight) / float64(lineHeight)
	var sliderHeight int
	if ctx.HasWhitespaceGaps && ctx.ViewportEndLine != lineCount {
		viewportLines := ctx.ViewportEndLine - ctx.ViewportStartLine + 1
		sliderHeight = int(math.Floor(float64(viewportLines*minimapLineHeight) / pixelRatio))
	} else {
		sliderHeight = int(math.Floor(expectedViewportLines * float64(minimapLineHeight) / pixelRatio))
	}

	extraTop := opts.PaddingTop / lineHeight
	extraBottom := float64(opts.PaddingBottom / lineHeight)
	if opts.ScrollBeyondLastLine {
		extraBottom = math.Max(extraBottom, expectedViewportLines-1)
	}

	rowPixels := float64(minimapLineHeight) / pixelRatio
	var maxSliderTop float64
	if extraBottom > 0 {
		// Dragged all the way down, the slider still contains the last line.
		maxSliderTop = math.Min(
			float64(opts.MinimapHeight-sliderHeight),
			(float64(extraTop+lineCount)+extraBottom-expectedViewportLines-1)*rowPixels,
		)
	} else {
		maxSliderTop = math.Min(
			float64(opts.MinimapHeight-sliderHeight),
			float64(extraTop+lineCount)*rowPixels-float64(sliderHeight),
		)
	}
	maxSliderTop = math.Max(0, maxSliderTop)

	ratio := sliderRatio(maxSliderTop, ctx.ScrollHeight-viewportHeight)
	sliderTop := float64(ctx.ScrollTop) * ratio

	if float64(linesFitting) >= float64(extraTop+lineCount)+extraBottom {
		return &Layout{
			ScrollTop:           ctx.ScrollTop,
			ScrollHeight:        ctx.ScrollHeight,
			SliderNeeded:        maxSliderTop > 0,
			sliderRatio:         ratio,
			SliderTop:           sliderTop,
			SliderHeight:        sliderHeight,
			TopPaddingLineCount: extraTop,
			StartLine:           1,
			EndLine:             lineCount,
		}
	}

	var considering float64
	if ctx.ViewportStartLine > 1 {
		considering = float64(ctx.ViewportStartLine + extraTop)
	} else {
		considering = math.Max(1, float64(ctx.ScrollTop)/float64(lineHeight))
	}

	var topPadding int
	startLine := max(1, int(math.Floor(considering-sliderTop*pixelRatio/float64(minimapLineHeight))))
	if startLine < extraTop {
		topPadding = extraTop - startLine + 1
		startLine = 1
	} else {
		topPadding = 0
		startLine = max(1, startLine-extraTop)
	}

	// Stay consistent with the previous decision so a partially visible
	// first line does not make the rows jump back and forth.
	if prev != nil && prev.ScrollHeight == ctx.ScrollHeight {
		if prev.ScrollTop > ctx.ScrollTop {
			startLine = min(startLine, prev.StartLine)
			topPadding = max(topPadding, prev.TopPaddingLineCount)
		}
		if prev.ScrollTop < ctx.ScrollTop {
			startLine = max(startLine, prev.StartLine)
			topPadding = min(topPadding, prev.TopPaddingLineCount)
		}
	}

	endLine := min(lineCount, startLine-topPadding+linesFitting-1)
	partialLine := float64(ctx.ScrollTop-ctx.ViewportStartLineVerticalOffset) / float64(lineHeight)

	var alignedTop float64
	if ctx.ScrollTop >= opts.PaddingTop {
		alignedTop = (float64(ctx.ViewportStartLine-startLine+topPadding) + partialLine) * rowPixels
	} else {
		alignedTop = float64(ctx.ScrollTop) / float64(opts.PaddingTop) * (float64(topPadding) + partialLine) * rowPixels
	}

	return &Layout{
		ScrollTop:           ctx.ScrollTop,
		ScrollHeight:        ctx.ScrollHeight,
		SliderNeeded:        true,
		sliderRatio:         ratio,
		SliderTop:           clampTop(alignedTop),
		SliderHeight:        sliderHeight,
		TopPaddingLineCount: topPadding,
		StartLine:           startLine,
		EndLine:             endLine,
	}
}

// sliderRatio maps scrollTop in [0, scrollRange] onto slider tops in
// [0, maxSliderTop].
func sliderRatio(maxSliderTop float64, scrollRange int) float64 {
	if scrollRange <= 0 {
		return 0
	}
	return maxSliderTop / float64(scrollRange)
}

func clampTop(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

// SliderRatio returns slider pixels moved per scrolled pixel.
func (l *Layout) SliderRatio() float64 {
	return l.sliderRatio
}

// Empty reports whether the layout has no rows to draw.
func (l *Layout) Empty() bool {
	return l.EndLine < l.StartLine
}

// YForLine returns the canvas y of a minimap row.
func (l *Layout) YForLine(line, minimapLineHeight int) int {
	return (line - l.StartLine + l.TopPaddingLineCount) * minimapLineHeight
}

// IntersectWithViewport clamps a row range to the rows drawn by this
// layout. ok is false when they do not overlap.
func (l *Layout) IntersectWithViewport(r Range) (start, end int, ok bool) {
	start = max(l.StartLine, r.StartLine)
	end = min(l.EndLine, r.EndLine)
	if start > end {
		return 0, 0, false
	}
	return start, end, true
}

// DesiredScrollTopFromDelta converts a slider drag of delta pixels into a
// scroll position.
func (l *Layout) DesiredScrollTopFromDelta(delta float64) int {
	if l.sliderRatio == 0 {
		return l.ScrollTop
	}
	return int(math.Round(float64(l.ScrollTop) + delta/l.sliderRatio))
}

// DesiredScrollTopFromTouchY returns the scroll position that centers the
// slider on a pointer at y.
func (l *Layout) DesiredScrollTopFromTouchY(y float64) int {
	if l.sliderRatio == 0 {
		return l.ScrollTop
	}
	return int(math.Round((y - float64(l.SliderHeight)/2) / l.sliderRatio))
}
