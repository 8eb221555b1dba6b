package minimap

import "math"

// Base glyph cell height in pixels at scale 1, for text rendering. Block
// rendering uses one extra row.
const baseCharHeight = 2

// LayoutInput describes the editor surface the minimap is laid out against.
type LayoutInput struct {
	OuterWidth                int // Editor width in CSS pixels
	OuterHeight               int // Editor height in CSS pixels
	LineHeight                int
	TypicalHalfwidthCharWidth float64
	PixelRatio                float64
	LineCount                 int
	PaddingTop                int
	PaddingBottom             int
	ScrollBeyondLastLine      bool
	VerticalScrollbarWidth    int

	Enabled          bool
	RenderCharacters bool
	Size             SizeMode
	Side             Side
	Scale            int
	MaxColumn        int
}

// LayoutInfo is the computed placement and scale of the minimap canvas.
type LayoutInfo struct {
	RenderMode           RenderMode
	MinimapLeft          int
	MinimapWidth         int
	Height               int
	HeightIsEditorHeight bool
	IsSampling           bool
	Scale                int
	MinimapLineHeight    int
	MinimapCharWidth     float64
	PixelRatio           float64
	CanvasInnerWidth     int
	CanvasInnerHeight    int
	CanvasOuterWidth     int
	CanvasOuterHeight    int
}

// ContainedLines holds the line counts used to size a minimap that must
// fit entirely inside the editor height.
type ContainedLines struct {
	TypicalViewportLineCount float64
	ExtraLinesBeforeFirst    int
	ExtraLinesBeyondLast     int
	DesiredRatio             float64
	MinimapLineCount         int
}

// ContainedLineCount computes how many minimap rows are available when
// all lines, including padding and scroll-past-end slack, are squeezed
// into height*pixelRatio pixel rows.
func ContainedLineCount(height, lineHeight int, pixelRatio float64, lineCount, paddingTop, paddingBottom int, scrollBeyondLastLine bool) ContainedLines {
	typical := float64(height) / float64(lineHeight)
	before := paddingTop / lineHeight
	beyond := paddingBottom / lineHeight
	if scrollBeyondLastLine {
		beyond = max(beyond, int(typical)-1)
	}
	total := before + lineCount + beyond
	rows := pixelRatio * float64(height)
	res := ContainedLines{
		TypicalViewportLineCount: typical,
		ExtraLinesBeforeFirst:    before,
		ExtraLinesBeyondLast:     beyond,
		DesiredRatio:             float64(total) / rows,
	}
	if total > 0 {
		// lineCount / desiredRatio, arranged to stay exact for integer inputs
		res.MinimapLineCount = int(math.Floor(float64(lineCount) * rows / float64(total)))
	}
	return res
}

// ComputeLayoutInfo places the minimap inside the editor and decides its
// scale, line height and whether it needs to down-sample lines.
func ComputeLayoutInfo(in LayoutInput) LayoutInfo {
	pixelRatio := in.PixelRatio
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	info := LayoutInfo{
		PixelRatio:        pixelRatio,
		Height:            in.OuterHeight,
		CanvasInnerHeight: int(math.Floor(pixelRatio * float64(in.OuterHeight))),
		CanvasOuterHeight: in.OuterHeight,
	}
	if !in.Enabled || in.OuterWidth <= 0 || in.OuterHeight <= 0 || in.LineHeight <= 0 {
		info.RenderMode = RenderNone
		info.MinimapLeft = in.OuterWidth
		return info
	}

	scale := max(in.Scale, 1)
	if pixelRatio >= 2 {
		scale = int(math.Round(float64(scale) * 2))
	}
	charHeight := baseCharHeight
	if !in.RenderCharacters {
		charHeight++
	}
	lineHeight := charHeight * scale
	charWidth := float64(scale) / pixelRatio
	widthMultiplier := 1.0
	heightIsEditorHeight := false
	isSampling := false

	if in.Size == SizeFill || in.Size == SizeFit {
		c := ContainedLineCount(in.OuterHeight, in.LineHeight, pixelRatio, in.LineCount,
			in.PaddingTop, in.PaddingBottom, in.ScrollBeyondLastLine)
		ratio := math.Inf(1)
		if c.MinimapLineCount > 0 {
			ratio = float64(in.LineCount) / float64(c.MinimapLineCount)
		}
		if ratio > 1 {
			heightIsEditorHeight = true
			isSampling = true
			scale = 1
			lineHeight = 1
			charWidth = float64(scale) / pixelRatio
		} else {
			fitBecomesFill := false
			maxScale := scale + 1
			if in.Size == SizeFit {
				total := c.ExtraLinesBeforeFirst + in.LineCount + c.ExtraLinesBeyondLast
				effective := total * lineHeight
				fitBecomesFill = effective > info.CanvasInnerHeight
			}
			if in.Size == SizeFill || fitBecomesFill {
				heightIsEditorHeight = true
				configured := scale
				lineHeight = min(int(float64(in.LineHeight)*pixelRatio), max(1, int(math.Floor(1/c.DesiredRatio))))
				scale = min(maxScale, max(1, lineHeight/baseCharHeight))
				if scale > configured {
					widthMultiplier = math.Min(2, float64(scale)/float64(configured))
				}
				charWidth = float64(scale) / pixelRatio / widthMultiplier
			}
		}
	}

	remaining := float64(in.OuterWidth - in.VerticalScrollbarWidth - 2)
	maxWidth := int(math.Floor(float64(max(in.MaxColumn, 1)) * charWidth))
	fitting := int(math.Floor(remaining * charWidth / (in.TypicalHalfwidthCharWidth + charWidth)))
	width := min(maxWidth, max(0, fitting)+GutterWidth)

	innerWidth := int(math.Floor(pixelRatio * float64(width)))
	outerWidth := int(float64(innerWidth) / pixelRatio)
	innerWidth = int(math.Floor(float64(innerWidth) * widthMultiplier))

	info.RenderMode = RenderBlocks
	if in.RenderCharacters {
		info.RenderMode = RenderText
	}
	info.MinimapWidth = width
	info.MinimapLeft = in.OuterWidth - width - in.VerticalScrollbarWidth
	if in.Side == SideLeft {
		info.MinimapLeft = 0
	}
	info.HeightIsEditorHeight = heightIsEditorHeight
	info.IsSampling = isSampling
	info.Scale = scale
	info.MinimapLineHeight = lineHeight
	info.MinimapCharWidth = charWidth
	info.CanvasInnerWidth = innerWidth
	info.CanvasOuterWidth = outerWidth
	return info
}
