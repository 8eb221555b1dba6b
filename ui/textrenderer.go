package ui

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/cornish/textivus-minimap/syntax"
)

// TextModel is the document shown in the text column. Lines are 1-based.
type TextModel interface {
	LineCount() int
	LineContent(line int) string
	LineTokens(line int) []syntax.Token
	// LineMatches returns 1-based, end-exclusive search match columns.
	LineMatches(line int) [][2]int
}

// TextState is the part of the viewer state the text column needs.
type TextState struct {
	Top         int // First visible line, 1-based
	ScrollX     int // Visual columns scrolled off the left edge
	TabWidth    int
	LineNumbers bool
}

// TextRenderer renders the main text content column with syntax colors
// and search matches.
type TextRenderer struct {
	styles Styles
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(styles Styles) *TextRenderer {
	return &TextRenderer{styles: styles}
}

// SetStyles updates the styles for runtime theme changes.
func (r *TextRenderer) SetStyles(styles Styles) {
	r.styles = styles
}

// GutterWidth returns the width of the line number gutter for a document
// of lineCount lines, including one column of padding.
func GutterWidth(lineCount int, show bool) int {
	if !show {
		return 0
	}
	return len(strconv.Itoa(max(lineCount, 1))) + 1
}

// Render returns height rows, each exactly width cells wide.
func (r *TextRenderer) Render(m TextModel, width, height int, st TextState) []string {
	rows := make([]string, height)
	if width <= 0 {
		return rows
	}
	lineCount := m.LineCount()
	gutter := min(GutterWidth(lineCount, st.LineNumbers), width)
	textWidth := width - gutter

	for row := range rows {
		line := st.Top + row
		var sb strings.Builder
		if line > lineCount {
			sb.WriteString(r.renderEmptyLine(width))
			rows[row] = sb.String()
			continue
		}
		if gutter > 0 {
			num := strconv.Itoa(line)
			sb.WriteString(r.styles.LineNumber.Render(strings.Repeat(" ", gutter-1-len(num)) + num + " "))
		}
		sb.WriteString(r.renderLineContent(m, line, textWidth, st))
		rows[row] = sb.String()
	}
	return rows
}

// renderLineContent renders one line without wrapping, clipped to width
// cells after skipping st.ScrollX cells.
func (r *TextRenderer) renderLineContent(m TextModel, line, width int, st TextState) string {
	tabWidth := st.TabWidth
	if tabWidth <= 0 {
		tabWidth = 4
	}
	tokens := m.LineTokens(line)
	matches := m.LineMatches(line)

	var sb strings.Builder
	sb.WriteString(r.styles.textBg)
	pen := -1 // token color currently set, -1 for none
	inMatch := false

	visualCol := 0
	outputCol := 0
	mi := 0
	for runeIdx, ru := range []rune(m.LineContent(line)) {
		if outputCol >= width {
			break
		}
		rw := runewidth.RuneWidth(ru)
		char := string(ru)
		if ru == '\t' {
			rw = tabWidth - visualCol%tabWidth
			char = strings.Repeat(" ", rw)
		}
		start := visualCol
		visualCol += rw
		if visualCol <= st.ScrollX {
			continue
		}
		if start < st.ScrollX {
			// Partly scrolled off: show the visible cells as blanks.
			char = strings.Repeat(" ", visualCol-st.ScrollX)
			rw = visualCol - st.ScrollX
		}
		if outputCol+rw > width {
			break
		}

		col := runeIdx + 1
		for mi < len(matches) && matches[mi][1] <= col {
			mi++
		}
		match := mi < len(matches) && matches[mi][0] <= col
		switch {
		case match && !inMatch:
			sb.WriteString(r.styles.matchBg)
			sb.WriteString(r.styles.matchFg)
			inMatch, pen = true, -1
		case !match && inMatch:
			sb.WriteString(r.styles.textBg)
			inMatch = false
		}
		if !match {
			if c := int(syntax.ColorAt(tokens, runeIdx)); c != pen {
				sb.WriteString(r.styles.tokenFg[c])
				pen = c
			}
		}
		sb.WriteString(char)
		outputCol += rw
	}

	if inMatch {
		sb.WriteString(r.styles.textBg)
	}
	if outputCol < width {
		sb.WriteString(strings.Repeat(" ", width-outputCol))
	}
	sb.WriteString(resetCode)
	return sb.String()
}

// renderEmptyLine renders an empty line marker (~).
func (r *TextRenderer) renderEmptyLine(width int) string {
	var sb strings.Builder
	sb.WriteString(r.styles.textBg)
	sb.WriteString("\033[90m~")
	if width > 1 {
		sb.WriteString(strings.Repeat(" ", width-1))
	}
	sb.WriteString(resetCode)
	return sb.String()
}
