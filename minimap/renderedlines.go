package minimap

import "image"

// invalidDY marks a cached row whose pixels no longer match its content.
const invalidDY = -1

// renderCache remembers where each row of the last frame sits in the
// buffer it was drawn into, so the next frame can copy instead of redraw.
// It is owned by a single Minimap and never shared.
type renderCache struct {
	layout    *Layout
	image     *image.RGBA
	startLine int   // row held by dys[0]; moves as lines are inserted or deleted
	dys       []int // y offset of each row in image, or invalidDY
	bottom    int   // one past the last pixel row the frame drew into
}

func newRenderCache(layout *Layout, img *image.RGBA, dys []int, bottom int) *renderCache {
	return &renderCache{layout: layout, image: img, startLine: layout.StartLine, dys: dys, bottom: bottom}
}

func (c *renderCache) endLine() int {
	return c.startLine + len(c.dys) - 1
}

// dyFor returns the cached offset for a row, or invalidDY.
func (c *renderCache) dyFor(line int) int {
	i := line - c.startLine
	if i < 0 || i >= len(c.dys) {
		return invalidDY
	}
	return c.dys[i]
}

// linesEqual reports whether the cached frame already shows exactly the
// rows of layout, all of them valid.
func (c *renderCache) linesEqual(l *Layout) bool {
	if c.layout.StartLine != l.StartLine || c.layout.EndLine != l.EndLine ||
		c.layout.TopPaddingLineCount != l.TopPaddingLineCount {
		return false
	}
	if c.startLine != l.StartLine || len(c.dys) != l.EndLine-l.StartLine+1 {
		return false
	}
	for _, dy := range c.dys {
		if dy == invalidDY {
			return false
		}
	}
	return true
}

// onLinesChanged invalidates rows [from, from+count-1].
func (c *renderCache) onLinesChanged(from, count int) bool {
	if len(c.dys) == 0 {
		return false
	}
	start, end := c.startLine, c.endLine()
	changed := false
	for line := max(from, start); line <= min(from+count-1, end); line++ {
		c.dys[line-c.startLine] = invalidDY
		changed = true
	}
	return changed
}

// onLinesDeleted drops the deleted rows from the cache. Rows below keep
// their pixels and will be copied to their new position.
func (c *renderCache) onLinesDeleted(from, to int) {
	if len(c.dys) == 0 {
		return
	}
	start, end := c.startLine, c.endLine()
	if to < start {
		c.startLine -= to - from + 1
		return
	}
	if from > end {
		return
	}
	delStart := max(from, start) - c.startLine
	delEnd := min(to, end) - c.startLine
	c.dys = append(c.dys[:delStart], c.dys[delEnd+1:]...)
	if from < start {
		c.startLine -= start - from
	}
}

// onLinesInserted makes room for inserted rows. Rows pushed past the end
// of the cached window are dropped.
func (c *renderCache) onLinesInserted(from, to int) {
	if len(c.dys) == 0 {
		return
	}
	count := to - from + 1
	start, end := c.startLine, c.endLine()
	if from <= start {
		c.startLine += count
		return
	}
	if from > end {
		return
	}
	at := from - c.startLine
	if from+count > end {
		c.dys = c.dys[:at]
		return
	}
	kept := len(c.dys) - count
	dys := make([]int, 0, len(c.dys))
	dys = append(dys, c.dys[:at]...)
	for i := 0; i < count; i++ {
		dys = append(dys, invalidDY)
	}
	dys = append(dys, c.dys[at:kept]...)
	c.dys = dys
}

// onTokensChanged invalidates every cached row touched by ranges.
func (c *renderCache) onTokensChanged(ranges []TokenRange) bool {
	if len(c.dys) == 0 {
		return false
	}
	start, end := c.startLine, c.endLine()
	changed := false
	for _, r := range ranges {
		if r.To < start || r.From > end {
			continue
		}
		for line := max(start, r.From); line <= min(end, r.To); line++ {
			c.dys[line-c.startLine] = invalidDY
			changed = true
		}
	}
	return changed
}
