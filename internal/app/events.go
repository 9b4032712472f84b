package app

import (
	"github.com/bethropolis/xsheet/internal/event"
	"github.com/bethropolis/xsheet/internal/logger"
)

func (a *App) subscribeEvents() {
	a.eventManager.Subscribe(event.TypeSheetChanged, a.handleSheetChanged)
	a.eventManager.Subscribe(event.TypeSheetLoaded, a.handleSheetLoaded)
	a.eventManager.Subscribe(event.TypeSheetSaved, a.handleSheetSaved)
	a.eventManager.Subscribe(event.TypeFrameSelected, a.handleFrameSelected)
}

// handleSheetChanged redraws after any edit, including plugin edits.
func (a *App) handleSheetChanged(e event.Event) bool {
	if data, ok := e.Data.(event.SheetChangedData); ok {
		logger.DebugTagf("app", "Sheet %s: %s, %d frames, version %d", data.Op, data.Command, data.Frames, data.Version)
	}
	a.requestRedraw()
	return false
}

func (a *App) handleSheetLoaded(e event.Event) bool {
	a.requestRedraw()
	return false
}

func (a *App) handleSheetSaved(e event.Event) bool {
	if data, ok := e.Data.(event.SheetSavedData); ok {
		logger.DebugTagf("app", "Sheet version %d saved to %s", data.Version, data.Target)
	}
	a.requestRedraw()
	return false
}

func (a *App) handleFrameSelected(e event.Event) bool {
	a.requestRedraw()
	return false
}
