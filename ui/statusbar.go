package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// MessageType selects the color of a status message.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageError
)

// StatusBar represents the bottom status bar
type StatusBar struct {
	filename    string
	lexer       string
	encoding    string
	mode        string // Minimap render mode
	top         int
	totalLines  int
	query       string
	matches     int
	prompt      string // Shown instead of the file info while typing
	message     string // Temporary message to display
	messageType MessageType
	width       int
	styles      Styles
}

// NewStatusBar creates a new status bar
func NewStatusBar(styles Styles) *StatusBar {
	return &StatusBar{
		top:        1,
		totalLines: 1,
		encoding:   "UTF-8",
		styles:     styles,
	}
}

// SetFilename sets the current filename
func (s *StatusBar) SetFilename(filename string) { s.filename = filename }

// SetLexer sets the syntax highlighter name
func (s *StatusBar) SetLexer(lexer string) { s.lexer = lexer }

// SetEncoding sets the file encoding
func (s *StatusBar) SetEncoding(encoding string) { s.encoding = encoding }

// SetMode sets the minimap mode label
func (s *StatusBar) SetMode(mode string) { s.mode = mode }

// SetPosition sets the first visible line and the line count
func (s *StatusBar) SetPosition(top, total int) {
	s.top = top
	s.totalLines = total
}

// SetSearch sets the active query and its match count
func (s *StatusBar) SetSearch(query string, matches int) {
	s.query = query
	s.matches = matches
}

// SetPrompt shows an input prompt, or restores the file info when empty
func (s *StatusBar) SetPrompt(prompt string) { s.prompt = prompt }

// SetMessage sets a temporary message to display
func (s *StatusBar) SetMessage(message string, t MessageType) {
	s.message = message
	s.messageType = t
}

// ClearMessage clears the temporary message
func (s *StatusBar) ClearMessage() {
	s.message = ""
}

// SetWidth sets the width of the status bar
func (s *StatusBar) SetWidth(width int) { s.width = width }

// SetStyles updates the styles for runtime theme changes
func (s *StatusBar) SetStyles(styles Styles) { s.styles = styles }

// View renders the status bar
func (s *StatusBar) View() string {
	if s.prompt != "" {
		return s.pad(s.styles.StatusAccent.Render(s.prompt), "")
	}

	filename := s.filename
	if filename == "" {
		filename = "[Untitled]"
	}
	left := s.styles.StatusBar.Render(filename)
	if s.query != "" {
		left += s.styles.StatusAccent.Render(fmt.Sprintf(" /%s (%d)", s.query, s.matches))
	}
	if s.message != "" {
		style := s.styles.StatusBar
		if s.messageType == MessageError {
			style = s.styles.StatusError
		}
		left += style.Render("  " + s.message)
	}

	var parts []string
	if s.mode != "" {
		parts = append(parts, s.mode)
	}
	if s.lexer != "" {
		parts = append(parts, s.lexer)
	}
	parts = append(parts, fmt.Sprintf("Ln %d/%d", s.top, s.totalLines), s.encoding)
	return s.pad(left, s.styles.StatusBar.Render(strings.Join(parts, " | ")))
}

// pad joins left and right with filler so the bar spans the full width.
// When they do not fit, the left part is cut first.
func (s *StatusBar) pad(left, right string) string {
	tail := "…"
	if UseASCII {
		tail = "~"
	}
	rw := lipgloss.Width(right)
	if rw > s.width {
		right = ansi.Truncate(right, s.width, tail)
		rw = lipgloss.Width(right)
	}
	lw := lipgloss.Width(left)
	if lw+rw > s.width {
		left = ansi.Truncate(left, s.width-rw, tail)
		lw = lipgloss.Width(left)
	}
	fill := s.styles.StatusBar.Render(strings.Repeat(" ", max(0, s.width-lw-rw)))
	return left + fill + right
}
