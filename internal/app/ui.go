package app

import (
	"github.com/bethropolis/xsheet/internal/export"
	"github.com/bethropolis/xsheet/internal/logger"
	"github.com/bethropolis/xsheet/internal/tui"
)

// draw clears the screen and redraws all components.
func (a *App) draw() {
	a.updateStatusBarContent()

	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	statusBarHeight := a.config.UI.StatusBarHeight
	viewHeight := height - statusBarHeight
	a.modeHandler.SetPageSize(viewHeight)

	state := a.session.State()
	selected := a.modeHandler.Selected()

	a.mu.Lock()
	a.top = tui.ScrollTo(a.top, selected, viewHeight, len(state.Frames))
	top := a.top
	activeTheme := a.activeTheme
	a.mu.Unlock()

	logger.DebugTagf("draw", "draw: Screen Size (%d x %d), ViewHeight: %d, Top: %d", width, height, viewHeight, top)

	a.tuiManager.Clear()
	tui.DrawSheet(screen, tui.SheetView{
		Shots:       export.Plan(state),
		Top:         top,
		Selected:    selected,
		ColumnWidth: a.config.UI.FrameColumnWidth,
		LayerName:   a.document.Name,
	}, activeTheme, statusBarHeight)
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current sheet state to the status bar.
func (a *App) updateStatusBarContent() {
	a.statusBar.SetFileInfo(a.FilePath(), a.isModified())
	a.statusBar.SetSheetInfo(a.modeHandler.Selected(), a.session.Len(), a.session.FrameRate())
	a.statusBar.SetHistoryInfo(a.session.CanUndo(), a.session.CanRedo())
}
