package ui

import (
	"github.com/cornish/textivus-minimap/minimap"
)

// Viewport handles the scrollable view of the text. It works in lines
// and cells and converts to the pixel space of the minimap, where a cell
// is cellWidth x lineHeight pixels.
type Viewport struct {
	width   int // Text column width in cells
	height  int // Visible rows
	top     int // First visible line, 1-based
	scrollX int // First visible column (for horizontal scrolling)

	cellWidth            int
	lineHeight           int
	paddingTop           int
	paddingBottom        int
	scrollBeyondLastLine bool
}

// NewViewport creates a new viewport
func NewViewport(cellWidth, lineHeight int) *Viewport {
	return &Viewport{
		width:      80,
		height:     24,
		top:        1,
		cellWidth:  max(cellWidth, 1),
		lineHeight: max(lineHeight, 1),
	}
}

// SetPadding sets the pixel padding above the first and below the last line.
func (v *Viewport) SetPadding(top, bottom int) {
	v.paddingTop, v.paddingBottom = max(top, 0), max(bottom, 0)
}

// SetScrollBeyondLastLine lets the last line scroll up to the top.
func (v *Viewport) SetScrollBeyondLastLine(on bool) {
	v.scrollBeyondLastLine = on
}

// SetSize sets the viewport dimensions
func (v *Viewport) SetSize(width, height int) {
	v.width = max(width, 0)
	v.height = max(height, 1)
}

// Width returns the viewport width
func (v *Viewport) Width() int { return v.width }

// Height returns the viewport height
func (v *Viewport) Height() int { return v.height }

// Top returns the first visible line
func (v *Viewport) Top() int { return v.top }

// ScrollX returns the current horizontal scroll position
func (v *Viewport) ScrollX() int { return v.scrollX }

// SetScrollX sets the horizontal scroll position
func (v *Viewport) SetScrollX(x int) { v.scrollX = max(x, 0) }

// maxTop is the largest first line for a document of totalLines lines.
func (v *Viewport) maxTop(totalLines int) int {
	if v.scrollBeyondLastLine {
		return max(totalLines, 1)
	}
	return max(totalLines-v.height+1, 1)
}

// SetTop scrolls so line is the first visible line, clamped to the
// document.
func (v *Viewport) SetTop(line, totalLines int) {
	v.top = min(max(line, 1), v.maxTop(totalLines))
}

// ScrollUp scrolls the viewport up by n lines
func (v *Viewport) ScrollUp(n, totalLines int) { v.SetTop(v.top-n, totalLines) }

// ScrollDown scrolls the viewport down by n lines
func (v *Viewport) ScrollDown(n, totalLines int) { v.SetTop(v.top+n, totalLines) }

// PageUp scrolls up by one page
func (v *Viewport) PageUp(totalLines int) { v.ScrollUp(v.height, totalLines) }

// PageDown scrolls down by one page
func (v *Viewport) PageDown(totalLines int) { v.ScrollDown(v.height, totalLines) }

// CenterOn scrolls so line sits in the middle of the viewport.
func (v *Viewport) CenterOn(line, totalLines int) {
	v.SetTop(line-v.height/2, totalLines)
}

// EnsureVisible scrolls the least amount needed to show line.
func (v *Viewport) EnsureVisible(line, totalLines int) {
	switch {
	case line < v.top:
		v.SetTop(line, totalLines)
	case line >= v.top+v.height:
		v.SetTop(line-v.height+1, totalLines)
	}
}

// lineOffset is the pixel top of line in scroll coordinates.
func (v *Viewport) lineOffset(line int) int {
	return v.paddingTop + (line-1)*v.lineHeight
}

// ScrollTop returns the scroll position in pixels. At the first line the
// top padding is visible.
func (v *Viewport) ScrollTop() int {
	if v.top == 1 {
		return 0
	}
	return v.lineOffset(v.top)
}

// SetScrollTop scrolls to a pixel position, snapping to whole lines.
func (v *Viewport) SetScrollTop(px, totalLines int) {
	v.SetTop(max(px-v.paddingTop, 0)/v.lineHeight+1, totalLines)
}

// ScrollHeight returns the scrollable height in pixels, never less than
// the viewport height.
func (v *Viewport) ScrollHeight(totalLines int) int {
	h := totalLines*v.lineHeight + v.paddingTop + v.paddingBottom
	if v.scrollBeyondLastLine {
		h += max(0, v.height*v.lineHeight-v.lineHeight-v.paddingBottom)
	}
	return max(h, v.height*v.lineHeight)
}

// LayoutInput returns the editor geometry the minimap is laid out
// against. The caller fills in the minimap settings.
func (v *Viewport) LayoutInput(outerCols, totalLines int) minimap.LayoutInput {
	return minimap.LayoutInput{
		OuterWidth:                outerCols * v.cellWidth,
		OuterHeight:               v.height * v.lineHeight,
		LineHeight:                v.lineHeight,
		TypicalHalfwidthCharWidth: float64(v.cellWidth),
		LineCount:                 totalLines,
		PaddingTop:                v.paddingTop,
		PaddingBottom:             v.paddingBottom,
		ScrollBeyondLastLine:      v.scrollBeyondLastLine,
	}
}

// RenderingContext describes the visible lines to the minimap.
func (v *Viewport) RenderingContext(totalLines int) minimap.RenderingContext {
	return minimap.RenderingContext{
		ViewportStartLine:               v.top,
		ViewportEndLine:                 max(v.top, min(totalLines, v.top+v.height-1)),
		ViewportStartLineVerticalOffset: v.lineOffset(v.top),
		ScrollTop:                       v.ScrollTop(),
		ScrollHeight:                    v.ScrollHeight(totalLines),
		ViewportWidth:                   v.width * v.cellWidth,
		ViewportHeight:                  v.height * v.lineHeight,
	}
}

// PixelsToCells converts a canvas width in CSS pixels to terminal cells,
// rounding up.
func (v *Viewport) PixelsToCells(px int) int {
	return (px + v.cellWidth - 1) / v.cellWidth
}

// LineFromClick converts a click on row y of the text column to a line.
func (v *Viewport) LineFromClick(y, totalLines int) int {
	return min(max(v.top+y, 1), max(totalLines, 1))
}
