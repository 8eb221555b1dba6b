package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// configDirName is the directory under the user config dir holding every
// file this program reads.
const configDirName = "textivus-minimap"

// DefaultMarkSectionHeaderRegex matches "MARK: Title" comments. A dash
// before the title asks for a separator line.
const DefaultMarkSectionHeaderRegex = `\bMARK:\s*(?<separator>-?)\s*(?<label>.*)$`

// Config holds the viewer configuration
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	Minimap MinimapConfig `toml:"minimap"`
	Theme   ThemeConfig   `toml:"theme"`
	Log     LogConfig     `toml:"log"`
}

// EditorConfig describes the text view the minimap is attached to.
// Sizes are in pixels of a virtual canvas where one terminal cell is
// CellWidth x LineHeight.
type EditorConfig struct {
	SyntaxHighlight      bool    `toml:"syntax_highlight"`
	TrueColor            *bool   `toml:"true_color"` // nil = auto (true), false = force 256-color
	AsciiMode            *bool   `toml:"ascii_mode"` // nil = auto-detect, true/false = override
	TabWidth             int     `toml:"tab_width"`
	LineHeight           int     `toml:"line_height"`
	CellWidth            int     `toml:"cell_width"`
	PixelRatio           float64 `toml:"pixel_ratio"`
	ScrollBeyondLastLine bool    `toml:"scroll_beyond_last_line"`
	PaddingTop           int     `toml:"padding_top"`
	PaddingBottom        int     `toml:"padding_bottom"`
	WatchFile            bool    `toml:"watch_file"` // Reload when the file changes on disk
}

// MinimapConfig holds minimap settings
type MinimapConfig struct {
	Enabled                    bool    `toml:"enabled"`
	RenderCharacters           bool    `toml:"render_characters"` // false draws blocks
	Size                       string  `toml:"size"`              // "proportional", "fill" or "fit"
	Side                       string  `toml:"side"`              // "right" or "left"
	Scale                      int     `toml:"scale"`
	MaxColumn                  int     `toml:"max_column"`
	ShowSlider                 string  `toml:"show_slider"` // "always" or "mouseover"
	ForegroundOpacity          float64 `toml:"foreground_opacity"`
	SectionHeaderFontSize      float64 `toml:"section_header_font_size"`
	SectionHeaderLetterSpacing float64 `toml:"section_header_letter_spacing"`
	ShowMarkSectionHeaders     bool    `toml:"show_mark_section_headers"`
	ShowRegionSectionHeaders   bool    `toml:"show_region_section_headers"`
	MarkSectionHeaderRegex     string  `toml:"mark_section_header_regex"` // Groups "label" and "separator"
	MaxSamplingEvents          int     `toml:"max_sampling_events"`
	SamplingRatioTolerance     float64 `toml:"sampling_ratio_tolerance"`
	Graphics                   string  `toml:"graphics"` // "auto", "kitty", "braille" or "ascii"
}

// LogConfig controls the debug log
type LogConfig struct {
	File  string `toml:"file"` // Empty disables logging
	Debug bool   `toml:"debug"`
}

// ThemeConfig holds the theme reference in the main config
// Just references a theme by name - the actual colors come from theme files
type ThemeConfig struct {
	Name string `toml:"name"` // Theme name (built-in or from themes/ directory)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Editor: EditorConfig{
			SyntaxHighlight: true, // Enabled by default
			TabWidth:        4,
			LineHeight:      16,
			CellWidth:       8,
			PixelRatio:      1,
			WatchFile:       true,
		},
		Minimap: MinimapConfig{
			Enabled:                    true,
			RenderCharacters:           true,
			Size:                       "proportional",
			Side:                       "right",
			Scale:                      1,
			MaxColumn:                  120,
			ShowSlider:                 "always",
			ForegroundOpacity:          1,
			SectionHeaderFontSize:      9,
			SectionHeaderLetterSpacing: 1,
			ShowMarkSectionHeaders:     true,
			ShowRegionSectionHeaders:   true,
			MarkSectionHeaderRegex:     DefaultMarkSectionHeaderRegex,
			MaxSamplingEvents:          10,
			SamplingRatioTolerance:     0.01,
			Graphics:                   "auto",
		},
		Theme: ThemeConfig{
			Name: "default",
		},
	}
}

// configDir returns the per-user configuration directory
func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ThemesDir returns the path to the user themes directory
func ThemesDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "themes"), nil
}

// ConfigLoadError holds details about a config loading error
type ConfigLoadError struct {
	FilePath string
	Err      error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.FilePath, e.Err)
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

// Load reads the configuration from disk
// Returns default config if file doesn't exist
// Returns ConfigLoadError if file exists but has parse errors
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil // Return defaults on error
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from path, on top of the defaults
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // Return defaults if no config file
	}

	// Parse the config file
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return cfg, &ConfigLoadError{FilePath: path, Err: err}
	}
	cfg.normalize()
	return cfg, nil
}

// normalize replaces out of range values with defaults
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = def.Editor.TabWidth
	}
	if c.Editor.LineHeight <= 0 {
		c.Editor.LineHeight = def.Editor.LineHeight
	}
	if c.Editor.CellWidth <= 0 {
		c.Editor.CellWidth = def.Editor.CellWidth
	}
	if c.Editor.PixelRatio <= 0 {
		c.Editor.PixelRatio = def.Editor.PixelRatio
	}
	if c.Minimap.Scale < 1 {
		c.Minimap.Scale = 1
	}
	if c.Minimap.Scale > 3 {
		c.Minimap.Scale = 3
	}
	if c.Minimap.MaxColumn <= 0 {
		c.Minimap.MaxColumn = def.Minimap.MaxColumn
	}
	if c.Minimap.MaxSamplingEvents <= 0 {
		c.Minimap.MaxSamplingEvents = def.Minimap.MaxSamplingEvents
	}
	if c.Minimap.SamplingRatioTolerance < 0 {
		c.Minimap.SamplingRatioTolerance = def.Minimap.SamplingRatioTolerance
	}
}

// Save writes the configuration to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the configuration to path
func (c *Config) SaveFile(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	// Create/overwrite the file
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	// Write header comment
	f.WriteString("# textivus-minimap configuration\n\n")

	// Encode config as TOML
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// GetResolved loads and returns the complete theme
func (t *ThemeConfig) GetResolved() Theme {
	return LoadTheme(t.Name)
}
