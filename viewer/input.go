package viewer

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/cornish/textivus-minimap/document"
	"github.com/cornish/textivus-minimap/minimap"
	"github.com/cornish/textivus-minimap/ui"
)

// fileChangedMsg reports that the watched file was written.
type fileChangedMsg struct{}

// watchErrMsg carries an error from the file watcher.
type watchErrMsg struct{ err error }

// watchStoppedMsg reports that the watcher shut down.
type watchStoppedMsg struct{}

// waitForChange blocks until the watcher reports something.
func waitForChange(w *document.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case _, ok := <-w.Changes():
			if !ok {
				return watchStoppedMsg{}
			}
			return fileChangedMsg{}
		case err := <-w.Errors():
			return watchErrMsg{err: err}
		}
	}
}

// handleKey handles keyboard input
func (v *Viewer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.mode == ModeFind {
		return v.handleFindKey(msg)
	}
	v.statusbar.ClearMessage()
	total := v.doc.LineCount()

	switch v.keys.Action(msg.String()) {
	case "quit":
		return v, tea.Quit
	case "reload":
		v.reload()
	case "scroll_up":
		v.viewport.ScrollUp(1, total)
		v.scrolled()
	case "scroll_down":
		v.viewport.ScrollDown(1, total)
		v.scrolled()
	case "page_up":
		v.viewport.PageUp(total)
		v.scrolled()
	case "page_down":
		v.viewport.PageDown(total)
		v.scrolled()
	case "doc_start":
		v.viewport.SetTop(1, total)
		v.scrolled()
	case "doc_end":
		v.viewport.SetTop(total, total)
		v.scrolled()
	case "find":
		v.mode = ModeFind
		v.findInput = v.doc.Query()
		v.updatePrompt()
	case "find_next":
		v.findNext()
	case "clear_find":
		v.clearFind()
	case "copy_line":
		v.copyLine()
	case "toggle_minimap":
		v.config.Minimap.Enabled = !v.config.Minimap.Enabled
		v.relayout()
	case "toggle_render_mode":
		v.config.Minimap.RenderCharacters = !v.config.Minimap.RenderCharacters
		v.relayout()
	case "cycle_size":
		i := slices.Index(sizeModes, v.config.Minimap.Size)
		v.config.Minimap.Size = sizeModes[(i+1)%len(sizeModes)]
		v.relayout()
	case "toggle_side":
		if v.config.Minimap.Side == "left" {
			v.config.Minimap.Side = "right"
		} else {
			v.config.Minimap.Side = "left"
		}
		v.relayout()
	default:
		switch msg.Type {
		case tea.KeyLeft:
			v.viewport.SetScrollX(v.viewport.ScrollX() - 4)
		case tea.KeyRight:
			v.viewport.SetScrollX(v.viewport.ScrollX() + 4)
		case tea.KeyHome:
			v.viewport.SetScrollX(0)
		}
	}
	return v, nil
}

// handleFindKey handles keyboard input while typing a search
func (v *Viewer) handleFindKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.mode = ModeNormal
		v.statusbar.SetPrompt("")
		return v, nil

	case tea.KeyEnter:
		v.mode = ModeNormal
		v.statusbar.SetPrompt("")
		if v.doc.SetQuery(v.findInput) {
			v.mm.OnDecorationsChanged()
		}
		v.findNext()
		return v, nil

	case tea.KeyBackspace:
		if r := []rune(v.findInput); len(r) > 0 {
			v.findInput = string(r[:len(r)-1])
		}

	case tea.KeyRunes:
		v.findInput += string(msg.Runes)

	case tea.KeySpace:
		v.findInput += " "
	}
	v.updatePrompt()
	return v, nil
}

func (v *Viewer) updatePrompt() {
	v.statusbar.SetPrompt("Find: " + v.findInput + "_")
}

// findNext selects the next match after the current selection, or after
// the top of the viewport when nothing is selected.
func (v *Viewer) findNext() {
	if v.doc.Query() == "" {
		return
	}
	line, col := v.viewport.Top(), 0
	if sels := v.doc.Selections(); len(sels) > 0 {
		line, col = sels[0].StartLine, sels[0].StartColumn
	}
	r, ok := v.doc.FindNext(line, col)
	if !ok {
		v.statusbar.SetMessage("Not found: "+v.doc.Query(), ui.MessageError)
		return
	}
	v.mm.OnSelectionsChanged()
	total := v.doc.LineCount()
	if r.StartLine < v.viewport.Top() || r.StartLine >= v.viewport.Top()+v.viewport.Height() {
		v.viewport.CenterOn(r.StartLine, total)
		v.scrolled()
	}
}

func (v *Viewer) clearFind() {
	if v.doc.SetQuery("") {
		v.mm.OnDecorationsChanged()
	}
	if len(v.doc.Selections()) > 0 {
		v.doc.SetSelections(nil)
		v.mm.OnSelectionsChanged()
	}
}

// copyLine copies the line of the current match, or the first visible
// line when nothing is selected.
func (v *Viewer) copyLine() {
	line := v.viewport.Top()
	if sels := v.doc.Selections(); len(sels) > 0 {
		line = sels[0].StartLine
	}
	if line > v.doc.LineCount() {
		return
	}
	if err := v.clipboard.Copy(v.doc.LineContent(line)); err != nil {
		v.log.Warn("copy failed", zap.Error(err))
		v.statusbar.SetMessage("Copy: "+err.Error(), ui.MessageError)
		return
	}
	v.statusbar.SetMessage(fmt.Sprintf("Copied line %d", line), ui.MessageInfo)
}

// inMinimap reports whether the cell x, y is over the minimap column.
func (v *Viewer) inMinimap(x, y int) bool {
	return y >= 0 && y < v.viewport.Height() && x >= v.minimapX && x < v.minimapX+v.minimapCols
}

// minimapY converts a row to a y coordinate in CSS pixels, at the middle
// of the row.
func (v *Viewer) minimapY(row int) float64 {
	lh := v.config.Editor.LineHeight
	return float64(row*lh) + float64(lh)/2
}

// handleMouse handles mouse input
func (v *Viewer) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	total := v.doc.LineCount()
	over := v.inMinimap(msg.X, msg.Y)

	switch msg.Button {
	case tea.MouseButtonLeft:
		switch msg.Action {
		case tea.MouseActionPress:
			if over {
				v.pressMinimap(msg.Y)
			}
		case tea.MouseActionRelease:
			v.dragging = false
			v.dragLayout = nil
		case tea.MouseActionMotion:
			if v.dragging && v.dragLayout != nil {
				delta := v.minimapY(msg.Y) - v.dragStartY
				v.viewport.SetScrollTop(v.dragLayout.DesiredScrollTopFromDelta(delta), total)
				v.scrolled()
			}
		}

	case tea.MouseButtonWheelUp:
		v.viewport.ScrollUp(wheelLines, total)
		v.scrolled()

	case tea.MouseButtonWheelDown:
		v.viewport.ScrollDown(wheelLines, total)
		v.scrolled()

	case tea.MouseButtonNone:
		if msg.Action == tea.MouseActionRelease {
			v.dragging = false
			v.dragLayout = nil
		}
	}

	if v.minimapVisible() {
		v.hover = over
	} else {
		v.hover = false
	}
	return v, nil
}

// pressMinimap handles a left press on minimap row y. A press on the
// slider starts a drag; anywhere else jumps to the line under the pointer
// and then drags from there.
func (v *Viewer) pressMinimap(row int) {
	total := v.doc.LineCount()
	if !v.minimapVisible() {
		v.viewport.CenterOn(v.scrollbar.RowToLine(row, total, v.viewport.Height())+1, total)
		v.scrolled()
		return
	}
	l := v.mm.Layout()
	if l == nil {
		return
	}
	y := v.minimapY(row)
	onSlider := l.SliderNeeded && y >= l.SliderTop && y < l.SliderTop+float64(l.SliderHeight)
	if !onSlider {
		ratio := v.mm.Options().PixelRatio
		if line, ok := v.mm.LineAtY(int(y * ratio)); ok {
			v.viewport.CenterOn(line, total)
		} else {
			v.viewport.SetScrollTop(l.DesiredScrollTopFromTouchY(y), total)
		}
		v.scrolled()
		// The drag continues from the new position.
		l = v.refreshLayout()
	}
	v.dragging = true
	v.dragStartY = y
	v.dragLayout = l
	v.log.Debug("minimap press", zap.Int("row", row), zap.Bool("slider", onSlider), zap.Int("top", v.viewport.Top()))
}

// refreshLayout renders a frame for the current scroll position and
// returns its layout.
func (v *Viewer) refreshLayout() *minimap.Layout {
	v.mm.Render(v.viewport.RenderingContext(v.doc.LineCount()))
	return v.mm.Layout()
}
