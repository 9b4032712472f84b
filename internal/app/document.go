package app

import (
	"errors"
	"fmt"

	"github.com/bethropolis/xsheet/internal/event"
	"github.com/bethropolis/xsheet/internal/logger"
	"github.com/bethropolis/xsheet/internal/store"
	"github.com/bethropolis/xsheet/internal/types"
)

var errNoStore = errors.New("snapshot store is not available")

// FilePath returns the file the sheet saves to, or "" for a new sheet.
func (a *App) FilePath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filePath
}

func (a *App) isModified() bool {
	a.mu.Lock()
	saved, unsaved := a.savedVersion, a.unsaved
	a.mu.Unlock()
	return unsaved || a.session.Version() != saved
}

// openFile replaces the sheet with the one stored at path.
func (a *App) openFile(path string) error {
	state, err := store.ReadFile(path)
	if err != nil {
		return err
	}
	if err := a.loadState(state, path); err != nil {
		return err
	}
	a.mu.Lock()
	a.filePath = path
	a.mu.Unlock()
	return nil
}

// loadState installs state as the open sheet. Layers it binds that the
// document does not know yet are registered under their handle.
func (a *App) loadState(state types.SheetState, source string) error {
	for _, f := range state.Frames {
		if !f.HasCel || a.document.HasLayer(f.Layer) {
			continue
		}
		if err := a.document.AddLayer(f.Layer, string(f.Layer)); err != nil {
			return fmt.Errorf("register layer %s: %w", f.Layer, err)
		}
	}
	if err := a.session.Load(state); err != nil {
		return err
	}
	a.mu.Lock()
	a.savedVersion = a.session.Version()
	a.unsaved = false
	a.top = 0
	a.mu.Unlock()
	a.modeHandler.ClampSelection()
	logger.Infof("App: Loaded %d frames from %s", len(state.Frames), source)
	return nil
}

// save writes the sheet to path, or to the current file when path is empty.
func (a *App) save(path string) (string, error) {
	if path == "" {
		path = a.FilePath()
	}
	if path == "" {
		return "", errors.New("no file name, use :w PATH")
	}

	version := a.session.Version()
	if err := store.WriteFile(path, a.session.State()); err != nil {
		return "", err
	}
	a.mu.Lock()
	a.filePath = path
	a.savedVersion = version
	a.unsaved = false
	a.mu.Unlock()

	logger.Infof("App: Saved sheet to %s", path)
	a.eventManager.Dispatch(event.TypeSheetSaved, event.SheetSavedData{Target: path, Version: version})
	return path, nil
}

// saveSnapshot stores the sheet under name in the snapshot store. It does
// not change the file the sheet saves to.
func (a *App) saveSnapshot(name string) error {
	if a.snapshots == nil {
		return errNoStore
	}
	version := a.session.Version()
	if err := a.snapshots.Save(name, a.session.State()); err != nil {
		return err
	}
	a.eventManager.Dispatch(event.TypeSheetSaved, event.SheetSavedData{Target: "snapshot:" + name, Version: version})
	return nil
}

// restoreSnapshot replaces the sheet with a stored snapshot. The sheet
// counts as modified afterwards, since the file has not been written.
func (a *App) restoreSnapshot(name string) error {
	if a.snapshots == nil {
		return errNoStore
	}
	state, err := a.snapshots.Load(name)
	if err != nil {
		return err
	}
	if err := a.loadState(state, "snapshot "+name); err != nil {
		return err
	}
	a.mu.Lock()
	a.unsaved = true
	a.mu.Unlock()
	return nil
}
