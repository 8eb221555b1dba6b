package ui

// Scrollbar is the one-column scrollbar shown instead of the minimap
// when the minimap is hidden.
type Scrollbar struct {
	height int
	styles Styles
}

// NewScrollbar creates a new scrollbar instance
func NewScrollbar(styles Styles) *Scrollbar {
	return &Scrollbar{height: 24, styles: styles}
}

// SetHeight sets the scrollbar height
func (s *Scrollbar) SetHeight(height int) {
	if height > 0 {
		s.height = height
	}
}

// Height returns the scrollbar height
func (s *Scrollbar) Height() int {
	return s.height
}

// SetStyles updates the styles for runtime theme changes
func (s *Scrollbar) SetStyles(styles Styles) {
	s.styles = styles
}

// thumb returns the first row and size of the thumb. viewportStart is the
// 0-based first visible line.
func (s *Scrollbar) thumb(viewportStart, viewportHeight, totalLines int) (start, size int) {
	totalLines = max(totalLines, 1)
	viewportHeight = max(viewportHeight, 1)
	viewportStart = max(viewportStart, 0)

	if totalLines <= viewportHeight {
		return 0, s.height
	}
	// int64 to avoid overflow with large files
	size = int(int64(viewportHeight) * int64(s.height) / int64(totalLines))
	size = min(max(size, 1), s.height)

	maxScroll := totalLines - viewportHeight
	viewportStart = min(viewportStart, maxScroll)
	thumbRange := s.height - size
	if thumbRange <= 0 {
		return 0, size
	}
	start = int(int64(viewportStart) * int64(thumbRange) / int64(maxScroll))
	return min(max(start, 0), s.height-size), size
}

// Render renders the scrollbar as one string per row.
func (s *Scrollbar) Render(viewportStart, viewportHeight, totalLines int) []string {
	if s.height <= 0 {
		return nil
	}
	thumbChar, trackChar := "┃", "│"
	if UseASCII {
		thumbChar, trackChar = "#", "|"
	}
	start, size := s.thumb(viewportStart, viewportHeight, totalLines)
	result := make([]string, s.height)
	for row := range result {
		if row >= start && row < start+size {
			result[row] = s.styles.ScrollThumb.Render(thumbChar)
		} else {
			result[row] = s.styles.ScrollTrack.Render(trackChar)
		}
	}
	return result
}

// RowToLine converts a scrollbar row to the 0-based line that the
// viewport should center on. It inverts the thumb placement of Render.
func (s *Scrollbar) RowToLine(row int, totalLines, viewportHeight int) int {
	if totalLines <= 0 || s.height <= 0 {
		return 0
	}
	row = min(max(row, 0), s.height-1)
	if totalLines <= viewportHeight {
		return 0
	}
	_, size := s.thumb(0, viewportHeight, totalLines)
	thumbRange := s.height - size
	maxScroll := totalLines - viewportHeight
	if thumbRange <= 0 || maxScroll <= 0 {
		return 0
	}
	scrollPos := int(int64(row) * int64(maxScroll) / int64(thumbRange))
	line := scrollPos + viewportHeight/2
	return min(max(line, 0), totalLines-1)
}
