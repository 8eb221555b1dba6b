package clipboard

import (
	"bytes"
	"testing"
)

func TestCopyOSC52(t *testing.T) {
	tests := []struct {
		name string
		tmux string
		term string
		want string
	}{
		{"plain", "", "xterm-256color", "\x1b]52;c;aGk=\x07"},
		{"tmux", "/tmp/tmux-1000/default,1,0", "tmux-256color", "\x1bPtmux;\x1b\x1b]52;c;aGk=\x07\x1b\\"},
		{"screen", "", "screen-256color", "\x1bP\x1b]52;c;aGk=\x07\x1b\\"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TMUX", tt.tmux)
			t.Setenv("TERM", tt.term)

			var buf bytes.Buffer
			c := NewOSC52(&buf)
			if err := c.Copy("hi"); err != nil {
				t.Fatalf("Copy() error: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Copy() wrote %q, want %q", got, tt.want)
			}
			if got := c.Last(); got != "hi" {
				t.Errorf("Last() = %q, want %q", got, "hi")
			}
		})
	}
}

func TestSSHSession(t *testing.T) {
	t.Setenv("SSH_TTY", "")
	t.Setenv("SSH_CLIENT", "")
	t.Setenv("SSH_CONNECTION", "")
	if isSSHSession() {
		t.Error("isSSHSession() = true without SSH variables")
	}
	t.Setenv("SSH_CONNECTION", "10.0.0.1 22 10.0.0.2 50000")
	if !isSSHSession() {
		t.Error("isSSHSession() = false with SSH_CONNECTION set")
	}
	if New(nil).useSystem {
		t.Error("New() uses the system clipboard over SSH")
	}
}
