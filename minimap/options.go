package minimap

import (
	"github.com/cornish/textivus-minimap/config"
)

// RenderMode selects how characters are drawn into the minimap
type RenderMode int

const (
	RenderNone   RenderMode = iota // Minimap hidden
	RenderBlocks                   // One solid block per character
	RenderText                     // Downsampled glyphs
)

// SizeMode controls how the minimap height relates to the document
type SizeMode int

const (
	SizeProportional SizeMode = iota // One minimap row per line, scrolls with the editor
	SizeFill                         // Stretch or shrink to fill the editor height
	SizeFit                          // Like proportional, but shrink when it would overflow
)

// Side is the edge of the editor the minimap is attached to
type Side int

const (
	SideRight Side = iota
	SideLeft
)

// ParseSizeMode converts a config string to a SizeMode
func ParseSizeMode(s string) SizeMode {
	switch s {
	case "fill":
		return SizeFill
	case "fit":
		return SizeFit
	default:
		return SizeProportional
	}
}

// ParseSide converts a config string to a Side
func ParseSide(s string) Side {
	if s == "left" {
		return SideLeft
	}
	return SideRight
}

// Gutter and decoration geometry, in canvas pixels.
const (
	GutterWidth           = 8
	gutterDecorationX     = 2
	gutterDecorationWidth = 2
)

// Options is an immutable snapshot of everything the minimap derives its
// geometry and colors from. A new snapshot is built whenever configuration,
// theme or token colors change. All fields are comparable so two snapshots
// can be tested for equality with Equal.
type Options struct {
	RenderMode                  RenderMode
	Size                        SizeMode
	MinimapHeightIsEditorHeight bool
	ScrollBeyondLastLine        bool
	PaddingTop                  int
	PaddingBottom               int
	AlwaysShowSlider            bool
	PixelRatio                  float64
	TypicalHalfwidthCharWidth   float64
	LineHeight                  int
	TabSize                     int

	MinimapLeft       int
	MinimapWidth      int
	MinimapHeight     int
	CanvasInnerWidth  int
	CanvasInnerHeight int
	CanvasOuterWidth  int
	CanvasOuterHeight int

	IsSampling        bool
	EditorHeight      int
	FontScale         int
	MinimapLineHeight int
	MinimapCharWidth  float64

	SectionHeaderFontSize      float64
	SectionHeaderLetterSpacing float64
	SectionHeaderFontColor     RGBA8

	DefaultBackgroundColor RGBA8
	BackgroundColor        RGBA8
	ForegroundAlpha        uint8
	BackgroundIsLight      bool
	SelectionColor         RGBA8
	SliderColor            RGBA8
	SliderActiveColor      RGBA8
	Palette                Palette
}

// NewOptions resolves configuration, theme colors and the computed layout
// into a snapshot. Colors are parsed once here and never looked up again
// while rendering.
func NewOptions(cfg *config.Config, theme config.Theme, info LayoutInfo) *Options {
	ed := cfg.Editor
	mm := cfg.Minimap

	defaultBg := ParseColorOr(theme.Minimap.EditorBackground, RGBA8{30, 30, 30, 255})
	bg := ParseColorOr(theme.Minimap.Background, defaultBg)
	fg := ParseColorOr(theme.Minimap.Foreground, RGBA8{204, 204, 204, 255})

	opacity := mm.ForegroundOpacity
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}

	o := &Options{
		RenderMode:                  info.RenderMode,
		Size:                        ParseSizeMode(mm.Size),
		MinimapHeightIsEditorHeight: info.HeightIsEditorHeight,
		ScrollBeyondLastLine:        ed.ScrollBeyondLastLine,
		PaddingTop:                  ed.PaddingTop,
		PaddingBottom:               ed.PaddingBottom,
		AlwaysShowSlider:            mm.ShowSlider == "always",
		PixelRatio:                  info.PixelRatio,
		TypicalHalfwidthCharWidth:   float64(ed.CellWidth),
		LineHeight:                  ed.LineHeight,
		TabSize:                     ed.TabWidth,
		MinimapLeft:                 info.MinimapLeft,
		MinimapWidth:                info.MinimapWidth,
		MinimapHeight:               info.Height,
		CanvasInnerWidth:            info.CanvasInnerWidth,
		CanvasInnerHeight:           info.CanvasInnerHeight,
		CanvasOuterWidth:            info.CanvasOuterWidth,
		CanvasOuterHeight:           info.CanvasOuterHeight,
		IsSampling:                  info.IsSampling,
		EditorHeight:                info.Height,
		FontScale:                   info.Scale,
		MinimapLineHeight:           info.MinimapLineHeight,
		MinimapCharWidth:            info.MinimapCharWidth,
		SectionHeaderFontSize:       mm.SectionHeaderFontSize,
		SectionHeaderLetterSpacing:  mm.SectionHeaderLetterSpacing,
		SectionHeaderFontColor:      ParseColorOr(theme.Minimap.SectionHeader, fg),
		DefaultBackgroundColor:      defaultBg,
		BackgroundColor:             bg,
		ForegroundAlpha:             uint8(opacity*255 + 0.5),
		BackgroundIsLight:           bg.IsLight(),
		SelectionColor:              ParseColorOr(theme.Minimap.SelectionHighlight, RGBA8{38, 79, 120, 255}),
		SliderColor:                 ParseColorOr(theme.Minimap.Slider, RGBA8{121, 121, 121, 51}),
		SliderActiveColor:           ParseColorOr(theme.Minimap.SliderActive, RGBA8{191, 191, 191, 102}),
		Palette:                     NewPalette(theme.Syntax, fg),
	}
	if o.TabSize <= 0 {
		o.TabSize = 4
	}
	if o.LineHeight <= 0 {
		o.LineHeight = 16
	}
	return o
}

// Equal reports whether two snapshots hold identical values.
func (o *Options) Equal(other *Options) bool {
	if o == nil || other == nil {
		return o == other
	}
	return *o == *other
}

// charWidth is the glyph cell width in canvas pixels.
func (o *Options) charWidth() int {
	if o.FontScale < 1 {
		return 1
	}
	return o.FontScale
}

// canvasBackground is the minimap background composited over the editor
// background. Every line buffer starts out filled with it.
func (o *Options) canvasBackground() RGBA8 {
	return o.BackgroundColor.Over(o.DefaultBackgroundColor)
}
