package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// KeyBinding represents a single action's key bindings
type KeyBinding struct {
	Primary   string `toml:"primary"`
	Alternate string `toml:"alternate,omitempty"`
}

// KeybindingsConfig holds all configurable keybindings
type KeybindingsConfig struct {
	Quit   KeyBinding `toml:"quit"`
	Reload KeyBinding `toml:"reload"`

	// Navigation
	ScrollUp   KeyBinding `toml:"scroll_up"`
	ScrollDown KeyBinding `toml:"scroll_down"`
	PageUp     KeyBinding `toml:"page_up"`
	PageDown   KeyBinding `toml:"page_down"`
	DocStart   KeyBinding `toml:"doc_start"`
	DocEnd     KeyBinding `toml:"doc_end"`

	// Search
	Find      KeyBinding `toml:"find"`
	FindNext  KeyBinding `toml:"find_next"`
	ClearFind KeyBinding `toml:"clear_find"`
	CopyLine  KeyBinding `toml:"copy_line"`

	// Minimap
	ToggleMinimap    KeyBinding `toml:"toggle_minimap"`
	ToggleRenderMode KeyBinding `toml:"toggle_render_mode"`
	CycleSize        KeyBinding `toml:"cycle_size"`
	ToggleSide       KeyBinding `toml:"toggle_side"`
}

// DefaultKeybindings returns the default keybinding configuration
func DefaultKeybindings() *KeybindingsConfig {
	return &KeybindingsConfig{
		Quit:   KeyBinding{Primary: "ctrl+q", Alternate: "q"},
		Reload: KeyBinding{Primary: "ctrl+r"},

		ScrollUp:   KeyBinding{Primary: "up", Alternate: "k"},
		ScrollDown: KeyBinding{Primary: "down", Alternate: "j"},
		PageUp:     KeyBinding{Primary: "pgup"},
		PageDown:   KeyBinding{Primary: "pgdown", Alternate: " "},
		DocStart:   KeyBinding{Primary: "ctrl+home", Alternate: "g"},
		DocEnd:     KeyBinding{Primary: "ctrl+end", Alternate: "G"},

		Find:      KeyBinding{Primary: "ctrl+f", Alternate: "/"},
		FindNext:  KeyBinding{Primary: "f3", Alternate: "n"},
		ClearFind: KeyBinding{Primary: "esc"},
		CopyLine:  KeyBinding{Primary: "ctrl+c", Alternate: "y"},

		ToggleMinimap:    KeyBinding{Primary: "ctrl+t", Alternate: "m"},
		ToggleRenderMode: KeyBinding{Primary: "ctrl+b", Alternate: "b"},
		CycleSize:        KeyBinding{Primary: "ctrl+s", Alternate: "s"},
		ToggleSide:       KeyBinding{Primary: "ctrl+l"},
	}
}

// ActionNames maps action names for display
var ActionNames = map[string]string{
	"quit":               "Quit",
	"reload":             "Reload File",
	"scroll_up":          "Scroll Up",
	"scroll_down":        "Scroll Down",
	"page_up":            "Page Up",
	"page_down":          "Page Down",
	"doc_start":          "Document Start",
	"doc_end":            "Document End",
	"find":               "Find",
	"find_next":          "Find Next",
	"clear_find":         "Clear Find",
	"copy_line":          "Copy Line",
	"toggle_minimap":     "Toggle Minimap",
	"toggle_render_mode": "Characters / Blocks",
	"cycle_size":         "Cycle Minimap Size",
	"toggle_side":        "Minimap Side",
}

// binding returns a pointer to the field holding action's binding, or nil
// for an unknown action.
func (kb *KeybindingsConfig) binding(action string) *KeyBinding {
	switch action {
	case "quit":
		return &kb.Quit
	case "reload":
		return &kb.Reload
	case "scroll_up":
		return &kb.ScrollUp
	case "scroll_down":
		return &kb.ScrollDown
	case "page_up":
		return &kb.PageUp
	case "page_down":
		return &kb.PageDown
	case "doc_start":
		return &kb.DocStart
	case "doc_end":
		return &kb.DocEnd
	case "find":
		return &kb.Find
	case "find_next":
		return &kb.FindNext
	case "clear_find":
		return &kb.ClearFind
	case "copy_line":
		return &kb.CopyLine
	case "toggle_minimap":
		return &kb.ToggleMinimap
	case "toggle_render_mode":
		return &kb.ToggleRenderMode
	case "cycle_size":
		return &kb.CycleSize
	case "toggle_side":
		return &kb.ToggleSide
	}
	return nil
}

// KeybindingsPath returns the path to the keybindings file
func KeybindingsPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "keybindings.toml"), nil
}

// LoadKeybindings loads keybindings from disk, returning defaults if not found
func LoadKeybindings() *KeybindingsConfig {
	path, err := KeybindingsPath()
	if err != nil {
		return DefaultKeybindings()
	}
	kb, err := LoadKeybindingsFile(path)
	if err != nil {
		return DefaultKeybindings()
	}
	return kb
}

// LoadKeybindingsFile loads keybindings from path on top of the defaults
func LoadKeybindingsFile(path string) (*KeybindingsConfig, error) {
	kb := DefaultKeybindings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return kb, nil
	}
	if _, err := toml.DecodeFile(path, kb); err != nil {
		return kb, &ConfigLoadError{FilePath: path, Err: err}
	}
	return kb, nil
}

// GetBinding returns the KeyBinding for a given action name
func (kb *KeybindingsConfig) GetBinding(action string) KeyBinding {
	if b := kb.binding(action); b != nil {
		return *b
	}
	return KeyBinding{}
}

// SetBinding sets the KeyBinding for a given action name
func (kb *KeybindingsConfig) SetBinding(action string, binding KeyBinding) {
	if b := kb.binding(action); b != nil {
		*b = binding
	}
}

// Action returns the action bound to key, or "" if none is.
func (kb *KeybindingsConfig) Action(key string) string {
	for _, action := range AllActions() {
		if kb.GetBinding(action).Matches(key) {
			return action
		}
	}
	return ""
}

// AllActions returns a list of all action names in display order
func AllActions() []string {
	return []string{
		"quit", "reload",
		"scroll_up", "scroll_down", "page_up", "page_down", "doc_start", "doc_end",
		"find", "find_next", "clear_find", "copy_line",
		"toggle_minimap", "toggle_render_mode", "cycle_size", "toggle_side",
	}
}

// Matches checks if a key string matches this binding (primary or alternate).
// Modifier names compare case-insensitively; a bare single-character key
// compares exactly so "g" and "G" stay distinct.
func (b KeyBinding) Matches(key string) bool {
	return keyEqual(b.Primary, key) || keyEqual(b.Alternate, key)
}

func keyEqual(bound, key string) bool {
	if bound == "" {
		return false
	}
	if len([]rune(bound)) == 1 {
		return bound == key
	}
	return strings.EqualFold(bound, key)
}

// DisplayString returns a human-readable string for the binding
func (b KeyBinding) DisplayString() string {
	if b.Primary == "" && b.Alternate == "" {
		return "(none)"
	}
	if b.Alternate == "" {
		return FormatKeyForDisplay(b.Primary)
	}
	return FormatKeyForDisplay(b.Primary) + " / " + FormatKeyForDisplay(b.Alternate)
}

var keyDisplayNames = strings.NewReplacer(
	"ctrl+", "Ctrl+",
	"alt+", "Alt+",
	"shift+", "Shift+",
	"home", "Home",
	"end", "End",
	"pgup", "PgUp",
	"pgdown", "PgDn",
	"up", "Up",
	"down", "Down",
	"esc", "Esc",
)

// FormatKeyForDisplay converts a key string to a more readable format
func FormatKeyForDisplay(key string) string {
	switch {
	case key == "":
		return ""
	case key == " ":
		return "Space"
	case len(key) >= 2 && key[0] == 'f' && key[1] >= '1' && key[1] <= '9':
		return "F" + key[1:]
	}
	return keyDisplayNames.Replace(key)
}

// FindConflicts checks for key conflicts and returns a map of conflicting actions
func (kb *KeybindingsConfig) FindConflicts() map[string][]string {
	keyToActions := make(map[string][]string)
	for _, action := range AllActions() {
		binding := kb.GetBinding(action)
		for _, key := range []string{binding.Primary, binding.Alternate} {
			if key == "" {
				continue
			}
			if len([]rune(key)) > 1 {
				key = strings.ToLower(key)
			}
			keyToActions[key] = append(keyToActions[key], action)
		}
	}

	conflicts := make(map[string][]string)
	for key, actions := range keyToActions {
		if len(actions) > 1 {
			conflicts[key] = actions
		}
	}
	return conflicts
}
