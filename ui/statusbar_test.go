package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestStatusBarView(t *testing.T) {
	s := NewStatusBar(DefaultStyles())
	s.SetWidth(80)
	s.SetFilename("main.go")
	s.SetLexer("Go")
	s.SetMode("text proportional right")
	s.SetPosition(5, 100)
	s.SetSearch("needle", 3)

	view := ansi.Strip(s.View())
	for _, want := range []string{"main.go", " /needle (3)", "Go", "Ln 5/100", "UTF-8", "text proportional right"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() = %q, want it to contain %q", view, want)
		}
	}
	if w := lipgloss.Width(view); w != 80 {
		t.Errorf("View() width = %d, want 80", w)
	}
	if !strings.HasSuffix(view, "UTF-8") {
		t.Errorf("View() = %q, want the encoding at the right edge", view)
	}
}

func TestStatusBarUntitled(t *testing.T) {
	s := NewStatusBar(DefaultStyles())
	s.SetWidth(40)
	if view := ansi.Strip(s.View()); !strings.HasPrefix(view, "[Untitled]") {
		t.Errorf("View() = %q, want [Untitled] first", view)
	}
}

func TestStatusBarPromptAndMessage(t *testing.T) {
	s := NewStatusBar(DefaultStyles())
	s.SetWidth(60)
	s.SetFilename("notes.txt")

	s.SetMessage("Reloaded", MessageInfo)
	if view := ansi.Strip(s.View()); !strings.Contains(view, "notes.txt  Reloaded") {
		t.Errorf("View() = %q, want the message after the file name", view)
	}

	s.SetPrompt("Find: abc_")
	view := ansi.Strip(s.View())
	if !strings.HasPrefix(view, "Find: abc_") || strings.Contains(view, "notes.txt") {
		t.Errorf("View() with prompt = %q", view)
	}

	s.SetPrompt("")
	s.ClearMessage()
	if view := ansi.Strip(s.View()); strings.Contains(view, "Reloaded") {
		t.Errorf("View() after ClearMessage = %q", view)
	}
}

func TestStatusBarNarrow(t *testing.T) {
	s := NewStatusBar(DefaultStyles())
	s.SetWidth(30)
	s.SetFilename("a-very-long-file-name-that-will-not-fit.txt")
	s.SetPosition(1, 10)

	view := ansi.Strip(s.View())
	if w := lipgloss.Width(view); w != 30 {
		t.Errorf("View() width = %d, want 30", w)
	}
	if !strings.Contains(view, "Ln 1/10") {
		t.Errorf("View() = %q, want the position kept", view)
	}
	if !strings.HasPrefix(view, "a-very-long") || !strings.Contains(view, "…") {
		t.Errorf("View() = %q, want the file name cut with an ellipsis", view)
	}
}

func TestStatusBarTruncatesStyledRight(t *testing.T) {
	s := NewStatusBar(DefaultStyles())
	s.SetWidth(6)
	s.SetFilename("x.go")
	s.SetLexer("Go")
	s.SetPosition(120, 4000)

	view := s.View()
	if w := lipgloss.Width(view); w != 6 {
		t.Errorf("View() width = %d, want 6 (%q)", w, ansi.Strip(view))
	}
	if got := ansi.Strip(view); !strings.HasPrefix(got, "Go |") {
		t.Errorf("View() = %q, want the start of the right side", got)
	}
}
