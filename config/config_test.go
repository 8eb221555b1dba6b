package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Editor.SyntaxHighlight != true {
		t.Error("DefaultConfig().Editor.SyntaxHighlight should be true")
	}
	if cfg.Editor.TabWidth != 4 {
		t.Errorf("DefaultConfig().Editor.TabWidth = %d, want 4", cfg.Editor.TabWidth)
	}
	if cfg.Editor.LineHeight != 16 || cfg.Editor.CellWidth != 8 {
		t.Errorf("DefaultConfig() cell = %dx%d, want 8x16", cfg.Editor.CellWidth, cfg.Editor.LineHeight)
	}
	if !cfg.Minimap.Enabled || !cfg.Minimap.RenderCharacters {
		t.Error("DefaultConfig().Minimap should be enabled and render characters")
	}
	if cfg.Minimap.Size != "proportional" {
		t.Errorf("DefaultConfig().Minimap.Size = %q, want proportional", cfg.Minimap.Size)
	}
	if cfg.Minimap.MaxSamplingEvents != 10 {
		t.Errorf("DefaultConfig().Minimap.MaxSamplingEvents = %d, want 10", cfg.Minimap.MaxSamplingEvents)
	}
	if cfg.Theme.Name != "default" {
		t.Errorf("DefaultConfig().Theme.Name = %q, want 'default'", cfg.Theme.Name)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("LoadFile() of a missing file mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "config.toml", `
[editor]
tab_width = 8
line_height = 0

[minimap]
size = "fit"
scale = 7
render_characters = false

[theme]
name = "monokai"
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Errorf("TabWidth = %d, want 8", cfg.Editor.TabWidth)
	}
	if cfg.Editor.LineHeight != 16 {
		t.Errorf("LineHeight = %d, want the default 16", cfg.Editor.LineHeight)
	}
	if cfg.Minimap.Size != "fit" {
		t.Errorf("Size = %q, want fit", cfg.Minimap.Size)
	}
	if cfg.Minimap.Scale != 3 {
		t.Errorf("Scale = %d, want clamped to 3", cfg.Minimap.Scale)
	}
	if cfg.Minimap.RenderCharacters {
		t.Error("RenderCharacters = true, want false")
	}
	if cfg.Minimap.MaxColumn != 120 {
		t.Errorf("MaxColumn = %d, want the untouched default 120", cfg.Minimap.MaxColumn)
	}
	if cfg.Theme.Name != "monokai" {
		t.Errorf("Theme.Name = %q, want monokai", cfg.Theme.Name)
	}
}

func TestLoadFileParseError(t *testing.T) {
	path := writeFile(t, "config.toml", "[editor\ntab_width = ")
	cfg, err := LoadFile(path)
	if cfg == nil {
		t.Fatal("LoadFile() returned a nil config on error")
	}
	var loadErr *ConfigLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("LoadFile() error = %v, want a *ConfigLoadError", err)
	}
	if loadErr.FilePath != path {
		t.Errorf("ConfigLoadError.FilePath = %q, want %q", loadErr.FilePath, path)
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := DefaultConfig()
	cfg.Minimap.Side = "left"
	cfg.Log.File = "/tmp/minimap.log"
	if err := cfg.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("config after save and load mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigLoadError(t *testing.T) {
	err := &ConfigLoadError{
		FilePath: "/path/to/config.toml",
		Err:      os.ErrNotExist,
	}

	want := "/path/to/config.toml: " + os.ErrNotExist.Error()
	if err.Error() != want {
		t.Errorf("ConfigLoadError.Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("ConfigLoadError should unwrap to its cause")
	}
}

func TestConfigPath(t *testing.T) {
	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath() error: %v", err)
	}

	if !filepath.IsAbs(path) {
		t.Errorf("ConfigPath() = %q, want absolute path", path)
	}

	if filepath.Base(path) != "config.toml" {
		t.Errorf("ConfigPath() base = %q, want 'config.toml'", filepath.Base(path))
	}

	if !strings.Contains(path, configDirName) {
		t.Errorf("ConfigPath() = %q, should contain %q", path, configDirName)
	}
}

func TestThemesDir(t *testing.T) {
	dir, err := ThemesDir()
	if err != nil {
		t.Fatalf("ThemesDir() error: %v", err)
	}

	if !filepath.IsAbs(dir) {
		t.Errorf("ThemesDir() = %q, want absolute path", dir)
	}

	if filepath.Base(dir) != "themes" {
		t.Errorf("ThemesDir() base = %q, want 'themes'", filepath.Base(dir))
	}
}

func TestBuiltinThemesComplete(t *testing.T) {
	for _, name := range ThemeNames() {
		theme, ok := builtinThemes[name]
		if !ok {
			t.Errorf("ThemeNames() lists %q but it is not built in", name)
			continue
		}
		if diff := cmp.Diff(theme, mergeWithDefault(theme)); diff != "" {
			t.Errorf("built-in theme %q has unset colors (-have +merged):\n%s", name, diff)
		}
	}
}

func TestLoadThemeFile(t *testing.T) {
	path := writeFile(t, "mine.toml", `
name = "mine"

[ui]
text_bg = "#101010"

[syntax]
keyword = "#ff0000"

[minimap]
slider = "#ffffff22"
`)
	theme, err := LoadThemeFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFile() error: %v", err)
	}
	def := DefaultTheme()

	if theme.Syntax.Keyword != "#ff0000" {
		t.Errorf("Syntax.Keyword = %q, want #ff0000", theme.Syntax.Keyword)
	}
	if theme.Syntax.String != def.Syntax.String {
		t.Errorf("Syntax.String = %q, want the default %q", theme.Syntax.String, def.Syntax.String)
	}
	if theme.Minimap.EditorBackground != "#101010" {
		t.Errorf("Minimap.EditorBackground = %q, want it to follow text_bg", theme.Minimap.EditorBackground)
	}
	if theme.Minimap.Slider != "#ffffff22" {
		t.Errorf("Minimap.Slider = %q, want #ffffff22", theme.Minimap.Slider)
	}
	if theme.Minimap.SliderActive != def.Minimap.SliderActive {
		t.Errorf("Minimap.SliderActive = %q, want the default", theme.Minimap.SliderActive)
	}

	if _, err := LoadThemeFile(writeFile(t, "bad.toml", "name = ")); err == nil {
		t.Error("LoadThemeFile() of a broken file should fail")
	}
}

func TestLoadThemeFallback(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	if got := LoadTheme("light"); got.Name != "light" {
		t.Errorf("LoadTheme(light).Name = %q, want light", got.Name)
	}
	if got := LoadTheme("no-such-theme"); got.Name != "default" {
		t.Errorf("LoadTheme(unknown).Name = %q, want default", got.Name)
	}
	if got := LoadTheme(""); got.Name != "default" {
		t.Errorf("LoadTheme(\"\").Name = %q, want default", got.Name)
	}
}
