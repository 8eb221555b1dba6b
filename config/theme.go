package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Theme holds complete color theme settings
// This is the format for theme TOML files in ~/.config/textivus-minimap/themes/
type Theme struct {
	// Metadata
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Author      string `toml:"author"`

	// UI Colors
	UI UIColors `toml:"ui"`

	// Syntax highlighting colors
	Syntax SyntaxColors `toml:"syntax"`

	// Minimap colors
	Minimap MinimapColors `toml:"minimap"`
}

// UIColors holds UI color settings
type UIColors struct {
	TextFg       string `toml:"text_fg"`
	TextBg       string `toml:"text_bg"`
	StatusBg     string `toml:"status_bg"`
	StatusFg     string `toml:"status_fg"`
	StatusAccent string `toml:"status_accent"`
	SelectionBg  string `toml:"selection_bg"`
	SelectionFg  string `toml:"selection_fg"`
	LineNumber   string `toml:"line_number"`
	ErrorFg      string `toml:"error_fg"`
}

// SyntaxColors holds syntax highlighting color settings
type SyntaxColors struct {
	Keyword  string `toml:"keyword"`
	String   string `toml:"string"`
	Comment  string `toml:"comment"`
	Number   string `toml:"number"`
	Operator string `toml:"operator"`
	Function string `toml:"function"`
	Type     string `toml:"type"`
	Error    string `toml:"error"`
}

// MinimapColors holds minimap color settings. Colors may carry an alpha
// channel as #RRGGBBAA.
type MinimapColors struct {
	EditorBackground   string `toml:"editor_background"`
	Background         string `toml:"background"`
	Foreground         string `toml:"foreground"`
	SectionHeader      string `toml:"section_header"`
	SelectionHighlight string `toml:"selection_highlight"`
	FindMatch          string `toml:"find_match"`
	GutterModified     string `toml:"gutter_modified"`
	GutterAdded        string `toml:"gutter_added"`
	Slider             string `toml:"slider"`
	SliderActive       string `toml:"slider_active"`
}

// Built-in themes
var builtinThemes = map[string]Theme{
	"default": {
		Name:        "default",
		Description: "Dark blue with cyan highlights",
		Author:      "Textivus",
		UI: UIColors{
			TextFg:       "#c0c0c0",
			TextBg:       "#000080",
			StatusBg:     "4",  // Dark blue
			StatusFg:     "15", // Bright white
			StatusAccent: "14", // Bright cyan
			SelectionBg:  "6",  // Cyan
			SelectionFg:  "0",  // Black
			LineNumber:   "8",  // Gray
			ErrorFg:      "9",  // Bright red
		},
		Syntax: SyntaxColors{
			Keyword:  "14", // Bright cyan
			String:   "10", // Bright green
			Comment:  "8",  // Gray
			Number:   "11", // Bright yellow
			Operator: "13", // Bright magenta
			Function: "12", // Bright blue
			Type:     "11", // Bright yellow
			Error:    "9",  // Bright red
		},
		Minimap: MinimapColors{
			EditorBackground:   "#000080",
			Foreground:         "#c0c0c0",
			SectionHeader:      "#ffffff",
			SelectionHighlight: "#00aaaa",
			FindMatch:          "#ffff55",
			GutterModified:     "#55ffff",
			GutterAdded:        "#55ff55",
			Slider:             "#ffffff33",
			SliderActive:       "#ffffff66",
		},
	},
	"dark": {
		Name:        "dark",
		Description: "Modern dark theme with muted colors",
		Author:      "Textivus",
		UI: UIColors{
			TextFg:       "#d4d4d4",
			TextBg:       "#1e1e1e",
			StatusBg:     "236", // Dark gray
			StatusFg:     "252", // Light gray
			StatusAccent: "43",  // Teal
			SelectionBg:  "24",  // Dark cyan
			SelectionFg:  "15",  // Bright white
			LineNumber:   "240", // Medium gray
			ErrorFg:      "203", // Soft red
		},
		Syntax: SyntaxColors{
			Keyword:  "176", // Purple
			String:   "114", // Green
			Comment:  "245", // Gray
			Number:   "215", // Orange
			Operator: "80",  // Cyan
			Function: "75",  // Light blue
			Type:     "222", // Yellow
			Error:    "203", // Soft red
		},
		Minimap: MinimapColors{
			EditorBackground:   "#1e1e1e",
			Foreground:         "#d4d4d4",
			SectionHeader:      "#d4d4d4",
			SelectionHighlight: "#264f78",
			FindMatch:          "#d18616",
			GutterModified:     "#1b81a8",
			GutterAdded:        "#487e02",
			Slider:             "#79797933",
			SliderActive:       "#bfbfbf66",
		},
	},
	"light": {
		Name:        "light",
		Description: "Light theme for bright environments",
		Author:      "Textivus",
		UI: UIColors{
			TextFg:       "#333333",
			TextBg:       "#ffffff",
			StatusBg:     "254", // Light gray
			StatusFg:     "235", // Dark gray
			StatusAccent: "26",  // Blue
			SelectionBg:  "153", // Light blue
			SelectionFg:  "0",   // Black
			LineNumber:   "249", // Medium gray
			ErrorFg:      "160", // Red
		},
		Syntax: SyntaxColors{
			Keyword:  "26",  // Blue
			String:   "28",  // Green
			Comment:  "245", // Gray
			Number:   "166", // Orange
			Operator: "90",  // Magenta
			Function: "26",  // Blue
			Type:     "30",  // Teal
			Error:    "160", // Red
		},
		Minimap: MinimapColors{
			EditorBackground:   "#ffffff",
			Foreground:         "#333333",
			SectionHeader:      "#333333",
			SelectionHighlight: "#add6ff",
			FindMatch:          "#d18616",
			GutterModified:     "#2090d3",
			GutterAdded:        "#48985d",
			Slider:             "#64646433",
			SliderActive:       "#00000066",
		},
	},
	"monokai": {
		Name:        "monokai",
		Description: "Monokai-inspired dark theme",
		Author:      "Textivus",
		UI: UIColors{
			TextFg:       "#f8f8f2",
			TextBg:       "#272822",
			StatusBg:     "235", // Dark background
			StatusFg:     "231", // White
			StatusAccent: "208", // Orange
			SelectionBg:  "59",  // Gray
			SelectionFg:  "231", // White
			LineNumber:   "59",  // Gray
			ErrorFg:      "197", // Pink-red
		},
		Syntax: SyntaxColors{
			Keyword:  "197", // Pink-red
			String:   "186", // Yellow
			Comment:  "59",  // Gray
			Number:   "141", // Purple
			Operator: "197", // Pink-red
			Function: "81",  // Light blue
			Type:     "81",  // Light blue
			Error:    "197", // Pink-red
		},
		Minimap: MinimapColors{
			EditorBackground:   "#272822",
			Foreground:         "#f8f8f2",
			SectionHeader:      "#fd971f",
			SelectionHighlight: "#878b9180",
			FindMatch:          "#ffe792",
			GutterModified:     "#66d9ef",
			GutterAdded:        "#a6e22e",
			Slider:             "#75715e33",
			SliderActive:       "#75715e80",
		},
	},
}

// DefaultTheme returns the default theme
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

// LoadTheme loads a theme by name
// Checks user themes directory first, then falls back to built-in themes
func LoadTheme(name string) Theme {
	if name == "" {
		return DefaultTheme()
	}

	// Try loading from user themes directory
	theme, err := loadUserTheme(name)
	if err == nil {
		return theme
	}

	// Fall back to built-in theme
	if builtin, ok := builtinThemes[name]; ok {
		return builtin
	}

	// Default if not found
	return DefaultTheme()
}

// loadUserTheme attempts to load a theme from the user's themes directory
func loadUserTheme(name string) (Theme, error) {
	themesDir, err := ThemesDir()
	if err != nil {
		return Theme{}, err
	}
	return LoadThemeFile(filepath.Join(themesDir, name+".toml"))
}

// LoadThemeFile reads a theme file and fills missing values from the
// default theme
func LoadThemeFile(path string) (Theme, error) {
	if _, err := os.Stat(path); err != nil {
		return Theme{}, err
	}

	var theme Theme
	if _, err := toml.DecodeFile(path, &theme); err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", path, err)
	}

	// Merge with default theme to fill in any missing values
	return mergeWithDefault(theme), nil
}

func fill(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

// mergeWithDefault fills in any missing theme values with defaults
func mergeWithDefault(theme Theme) Theme {
	def := DefaultTheme()

	fill(&theme.Name, def.Name)

	// UI colors
	fill(&theme.UI.TextFg, def.UI.TextFg)
	fill(&theme.UI.TextBg, def.UI.TextBg)
	fill(&theme.UI.StatusBg, def.UI.StatusBg)
	fill(&theme.UI.StatusFg, def.UI.StatusFg)
	fill(&theme.UI.StatusAccent, def.UI.StatusAccent)
	fill(&theme.UI.SelectionBg, def.UI.SelectionBg)
	fill(&theme.UI.SelectionFg, def.UI.SelectionFg)
	fill(&theme.UI.LineNumber, def.UI.LineNumber)
	fill(&theme.UI.ErrorFg, def.UI.ErrorFg)

	// Syntax colors
	fill(&theme.Syntax.Keyword, def.Syntax.Keyword)
	fill(&theme.Syntax.String, def.Syntax.String)
	fill(&theme.Syntax.Comment, def.Syntax.Comment)
	fill(&theme.Syntax.Number, def.Syntax.Number)
	fill(&theme.Syntax.Operator, def.Syntax.Operator)
	fill(&theme.Syntax.Function, def.Syntax.Function)
	fill(&theme.Syntax.Type, def.Syntax.Type)
	fill(&theme.Syntax.Error, def.Syntax.Error)

	// Minimap colors. An unset editor background follows the text view.
	fill(&theme.Minimap.EditorBackground, theme.UI.TextBg)
	fill(&theme.Minimap.Foreground, theme.UI.TextFg)
	fill(&theme.Minimap.SectionHeader, theme.Minimap.Foreground)
	fill(&theme.Minimap.SelectionHighlight, def.Minimap.SelectionHighlight)
	fill(&theme.Minimap.FindMatch, def.Minimap.FindMatch)
	fill(&theme.Minimap.GutterModified, def.Minimap.GutterModified)
	fill(&theme.Minimap.GutterAdded, def.Minimap.GutterAdded)
	fill(&theme.Minimap.Slider, def.Minimap.Slider)
	fill(&theme.Minimap.SliderActive, def.Minimap.SliderActive)

	return theme
}

// ThemeNames returns the list of built-in theme names
func ThemeNames() []string {
	return []string{"default", "dark", "light", "monokai"}
}

// ListUserThemes returns a list of user-defined theme names
func ListUserThemes() []string {
	themesDir, err := ThemesDir()
	if err != nil {
		return nil
	}

	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return nil
	}

	var themes []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) == ".toml" {
			themes = append(themes, name[:len(name)-5]) // Remove .toml extension
		}
	}
	return themes
}
