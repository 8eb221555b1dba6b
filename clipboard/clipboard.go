// Package clipboard copies text out of the viewer, through the system
// clipboard when there is one and OSC52 otherwise.
package clipboard

import (
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard copies text to the clipboard of the terminal's host.
type Clipboard struct {
	// Output writer for OSC52 sequences (typically os.Stdout)
	output io.Writer
	// Whether to try the system clipboard before OSC52
	useSystem bool
	// Terminal multiplexer wrapping for OSC52
	mux string
	// Last copied text
	last string
}

// New creates a clipboard writing OSC52 sequences to output. The system
// clipboard is used when one is available and this is not an SSH session.
func New(output io.Writer) *Clipboard {
	c := NewOSC52(output)
	c.useSystem = !isSSHSession() && !clipboard.Unsupported
	return c
}

// NewOSC52 creates a clipboard that only uses OSC52.
func NewOSC52(output io.Writer) *Clipboard {
	if output == nil {
		output = os.Stdout
	}
	return &Clipboard{output: output, mux: detectMultiplexer()}
}

// isSSHSession detects if we're running in an SSH session.
func isSSHSession() bool {
	for _, v := range []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// detectMultiplexer returns "tmux", "screen" or "" for the terminal
// multiplexer OSC52 has to pass through.
func detectMultiplexer() string {
	if os.Getenv("TMUX") != "" {
		return "tmux"
	}
	if strings.HasPrefix(os.Getenv("TERM"), "screen") {
		return "screen"
	}
	return ""
}

// Copy copies text. On a local machine the system clipboard is tried
// first; OSC52 is the fallback and the only choice over SSH.
func (c *Clipboard) Copy(text string) error {
	c.last = text
	if c.useSystem {
		if err := clipboard.WriteAll(text); err == nil {
			return nil
		}
	}
	return c.copyOSC52(text)
}

// copyOSC52 copies text using OSC52 escape sequence.
func (c *Clipboard) copyOSC52(text string) error {
	seq := osc52.New(text)
	switch c.mux {
	case "tmux":
		seq = seq.Tmux()
	case "screen":
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(c.output)
	return err
}

// Last returns the most recently copied text.
func (c *Clipboard) Last() string {
	return c.last
}
