// Package viewer is the Bubbletea model of the minimap viewer: a read-only
// text view with the minimap (or a plain scrollbar) beside it.
package viewer

import (
	"bytes"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/cornish/textivus-minimap/clipboard"
	"github.com/cornish/textivus-minimap/config"
	"github.com/cornish/textivus-minimap/document"
	"github.com/cornish/textivus-minimap/minimap"
	"github.com/cornish/textivus-minimap/ui"
)

// Mode represents the viewer input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeFind
)

// wheelLines is how far one wheel step scrolls.
const wheelLines = 3

// sizeModes is the order the size setting cycles through.
var sizeModes = []string{"proportional", "fill", "fit"}

// Options carries the optional collaborators of a Viewer.
type Options struct {
	Theme     *config.Theme // nil resolves the configured theme
	Keys      *config.KeybindingsConfig
	Logger    *zap.Logger
	UseKitty  bool                 // Draw the minimap with Kitty graphics instead of braille
	Clipboard *clipboard.Clipboard // nil copies through the program output
}

// Viewer is the main Bubbletea model
type Viewer struct {
	// Core components
	doc       *document.Document
	mm        *minimap.Minimap
	params    minimap.SamplingParams
	clipboard *clipboard.Clipboard

	// UI components
	styles    ui.Styles
	text      *ui.TextRenderer
	viewport  *ui.Viewport
	mmView    *ui.MinimapView
	scrollbar *ui.Scrollbar
	statusbar *ui.StatusBar

	// State
	mode          Mode
	findInput     string
	width         int
	height        int
	textCols      int
	minimapCols   int
	minimapX      int
	graphicsShown bool         // A Kitty image is on screen
	escapes       bytes.Buffer // OSC52 output waiting for the next frame

	// Mouse state
	hover      bool
	dragging   bool
	dragStartY float64
	dragLayout *minimap.Layout

	watcher *document.Watcher

	// Configuration
	config config.Config
	theme  config.Theme
	keys   *config.KeybindingsConfig
	log    *zap.Logger
}

// New creates a viewer for doc. cfg is copied; runtime toggles do not
// change the caller's configuration.
func New(cfg *config.Config, doc *document.Document, opts Options) *Viewer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	var theme config.Theme
	if opts.Theme != nil {
		theme = *opts.Theme
	} else {
		theme = cfg.Theme.GetResolved()
	}
	keys := opts.Keys
	if keys == nil {
		keys = config.DefaultKeybindings()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	styles := ui.NewStyles(theme)
	v := &Viewer{
		doc: doc,
		params: minimap.SamplingParams{
			MaxEvents:      cfg.Minimap.MaxSamplingEvents,
			RatioTolerance: cfg.Minimap.SamplingRatioTolerance,
		},
		styles:    styles,
		text:      ui.NewTextRenderer(styles),
		viewport:  ui.NewViewport(cfg.Editor.CellWidth, cfg.Editor.LineHeight),
		mmView:    ui.NewMinimapView(styles, opts.UseKitty),
		scrollbar: ui.NewScrollbar(styles),
		statusbar: ui.NewStatusBar(styles),
		width:     80,
		height:    24,
		config:    *cfg,
		theme:     theme,
		keys:      keys,
		log:       logger.Named("viewer"),
	}
	v.clipboard = opts.Clipboard
	if v.clipboard == nil {
		v.clipboard = clipboard.New(&v.escapes)
	}
	v.viewport.SetPadding(cfg.Editor.PaddingTop, cfg.Editor.PaddingBottom)
	v.viewport.SetScrollBeyondLastLine(cfg.Editor.ScrollBeyondLastLine)
	doc.SetColors(document.ThemeColors(theme))
	v.relayout()
	return v
}

// WatchChanges reloads the document whenever w reports a change. Call it
// before the program starts.
func (v *Viewer) WatchChanges(w *document.Watcher) {
	v.watcher = w
}

// SetMessage shows a status message, for example a configuration error
// found before the viewer started.
func (v *Viewer) SetMessage(msg string, isError bool) {
	t := ui.MessageInfo
	if isError {
		t = ui.MessageError
	}
	v.statusbar.SetMessage(msg, t)
}

// Init implements tea.Model
func (v *Viewer) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen, tea.EnableMouseAllMotion}
	if v.watcher != nil {
		cmds = append(cmds, waitForChange(v.watcher))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.relayout()
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case tea.MouseMsg:
		return v.handleMouse(msg)

	case fileChangedMsg:
		v.reload()
		return v, waitForChange(v.watcher)

	case watchErrMsg:
		v.log.Warn("watch failed", zap.Error(msg.err))
		v.statusbar.SetMessage("Watch: "+msg.err.Error(), ui.MessageError)
		return v, waitForChange(v.watcher)

	case watchStoppedMsg:
		v.watcher = nil
		return v, nil
	}

	return v, nil
}

// relayout recomputes the placement of the text column and the minimap
// and hands the minimap a new options snapshot.
func (v *Viewer) relayout() {
	total := v.doc.LineCount()
	textRows := max(v.height-1, 1)
	v.viewport.SetSize(v.width, textRows)

	mc := v.config.Minimap
	in := v.viewport.LayoutInput(v.width, total)
	in.PixelRatio = v.config.Editor.PixelRatio
	in.Enabled = mc.Enabled
	in.RenderCharacters = mc.RenderCharacters
	in.Size = minimap.ParseSizeMode(mc.Size)
	in.Side = minimap.ParseSide(mc.Side)
	in.Scale = mc.Scale
	in.MaxColumn = mc.MaxColumn
	info := minimap.ComputeLayoutInfo(in)

	if info.RenderMode == minimap.RenderNone {
		v.minimapCols = min(1, v.width) // Scrollbar
	} else {
		v.minimapCols = min(v.viewport.PixelsToCells(info.MinimapWidth), max(v.width-1, 0))
	}
	v.textCols = max(v.width-v.minimapCols, 0)
	v.minimapX = v.textCols
	if in.Side == minimap.SideLeft {
		v.minimapX = 0
	}
	v.viewport.SetSize(v.textCols, textRows)
	v.viewport.SetTop(v.viewport.Top(), total)

	opts := minimap.NewOptions(&v.config, v.theme, info)
	if v.mm == nil {
		v.mm = minimap.New(v.doc, opts, v.params, v.log)
	} else if v.mm.SetOptions(opts) {
		v.log.Debug("minimap options changed",
			zap.Int("width", info.MinimapWidth),
			zap.Int("lineHeight", info.MinimapLineHeight),
			zap.Bool("sampling", info.IsSampling))
	}

	v.scrollbar.SetHeight(textRows)
	v.statusbar.SetWidth(v.width)
	v.statusbar.SetMode(v.modeLabel())
}

// modeLabel describes the minimap settings for the status bar.
func (v *Viewer) modeLabel() string {
	mc := v.config.Minimap
	if !mc.Enabled {
		return "no minimap"
	}
	render := "blocks"
	if mc.RenderCharacters {
		render = "text"
	}
	return fmt.Sprintf("%s %s %s", render, mc.Size, mc.Side)
}

// minimapVisible reports whether the minimap, not the scrollbar, is shown.
func (v *Viewer) minimapVisible() bool {
	return v.mm.Options().RenderMode != minimap.RenderNone
}

// scrolled tells the minimap the viewport moved.
func (v *Viewer) scrolled() {
	v.mm.OnScrollChanged()
}

// reload re-reads the document and replays the change into the minimap.
func (v *Viewer) reload() {
	change, err := v.doc.Reload()
	if err != nil {
		v.log.Warn("reload failed", zap.String("path", v.doc.Path()), zap.Error(err))
		v.statusbar.SetMessage("Reload: "+err.Error(), ui.MessageError)
		return
	}
	if change.Empty() {
		return
	}
	v.log.Info("reloaded",
		zap.String("path", v.doc.Path()),
		zap.Int("edits", len(change.Edits)),
		zap.Bool("flush", change.Flush),
		zap.Int("lines", v.doc.LineCount()))
	change.Apply(v.mm)
	v.relayout()
	v.statusbar.SetMessage("Reloaded", ui.MessageInfo)
}

// sliderState decides how the slider is drawn for the next frame.
func (v *Viewer) sliderState() ui.SliderState {
	l := v.mm.Layout()
	if l != nil && !l.SliderNeeded {
		return ui.SliderHidden
	}
	switch {
	case v.dragging || v.hover:
		return ui.SliderActive
	case v.mm.Options().AlwaysShowSlider:
		return ui.SliderVisible
	}
	return ui.SliderHidden
}

// View implements tea.Model
func (v *Viewer) View() string {
	if v.width <= 0 || v.height <= 0 {
		return ""
	}
	total := v.doc.LineCount()
	rows := v.viewport.Height()

	textLines := v.text.Render(v.doc, v.textCols, rows, ui.TextState{
		Top:         v.viewport.Top(),
		ScrollX:     v.viewport.ScrollX(),
		TabWidth:    v.config.Editor.TabWidth,
		LineNumbers: true,
	})

	var side []string
	graphics := ""
	if v.minimapVisible() {
		frame := v.mm.Render(v.viewport.RenderingContext(total))
		out := v.mmView.Render(frame, v.minimapX, 0, v.minimapCols, rows, v.sliderState())
		side = out.Rows
		graphics = out.Graphics
		v.graphicsShown = graphics != ""
	} else {
		side = v.scrollbar.Render(v.viewport.Top()-1, rows, total)
		if v.graphicsShown {
			graphics = v.mmView.Clear()
			v.graphicsShown = false
		}
	}

	var sb strings.Builder
	left := v.config.Minimap.Side == "left"
	for i := 0; i < rows; i++ {
		s := ""
		if i < len(side) {
			s = side[i]
		}
		t := ""
		if i < len(textLines) {
			t = textLines[i]
		}
		if left {
			sb.WriteString(s + t)
		} else {
			sb.WriteString(t + s)
		}
		sb.WriteString("\n")
	}

	v.statusbar.SetFilename(v.doc.Name())
	v.statusbar.SetLexer(v.doc.LexerName())
	v.statusbar.SetEncoding(v.doc.Encoding().Name)
	v.statusbar.SetPosition(v.viewport.Top(), total)
	v.statusbar.SetSearch(v.doc.Query(), v.doc.MatchCount())
	sb.WriteString(v.statusbar.View())

	// Graphics go last so the cell content is already in place.
	sb.WriteString(graphics)
	if v.escapes.Len() > 0 {
		sb.Write(v.escapes.Bytes())
		v.escapes.Reset()
	}
	return sb.String()
}
