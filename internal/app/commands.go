package app

import (
	"fmt"
	"strings"

	"github.com/bethropolis/xsheet/internal/export"
	"github.com/bethropolis/xsheet/internal/logger"
	"github.com/bethropolis/xsheet/internal/theme"
)

// ManifestFileName is written next to exported frames.
const ManifestFileName = "manifest.yaml"

// registerAppCommands registers commands that need more than the session:
// files, snapshots, export and themes.
func registerAppCommands(app *App) {
	api := app.sheetAPI

	commands := map[string]func(args []string) error{
		"e": func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: e PATH")
			}
			if app.isModified() {
				return fmt.Errorf("unsaved changes, save first")
			}
			if err := app.openFile(args[0]); err != nil {
				return err
			}
			api.SetStatusMessage("Opened %s", args[0])
			return nil
		},
		"snap": func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: snap NAME")
			}
			if err := app.saveSnapshot(args[0]); err != nil {
				return err
			}
			api.SetStatusMessage("Snapshot '%s' saved", args[0])
			return nil
		},
		"snaps": func(args []string) error {
			if app.snapshots == nil {
				return errNoStore
			}
			names := app.snapshots.Names(app.ctx)
			if len(names) == 0 {
				api.SetStatusMessage("No snapshots in %s", app.snapshots.Dir())
				return nil
			}
			api.SetStatusMessage("Snapshots: %s", strings.Join(names, ", "))
			return nil
		},
		"restore": func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: restore NAME")
			}
			if err := app.restoreSnapshot(args[0]); err != nil {
				return err
			}
			api.SetStatusMessage("Restored snapshot '%s'", args[0])
			return nil
		},
		"export": func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: export DIR")
			}
			app.startExport(args[0])
			return nil
		},
		"theme": func(args []string) error {
			if len(args) == 0 {
				api.SetStatusMessage("Current theme: %s", app.GetTheme().Name)
				return nil
			}
			t, err := theme.LoadThemeFromFile(strings.Join(args, " "))
			if err != nil {
				return err
			}
			app.setTheme(t)
			api.SetStatusMessage("Theme set to: %s", t.Name)
			return nil
		},
	}

	for name, fn := range commands {
		if err := api.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}
}

// startExport renders the current sheet in the background and reports the
// outcome on the status bar.
func (a *App) startExport(dir string) {
	state := a.session.State()
	exporter := &export.Exporter{
		Renderer: export.DescriptorRenderer{},
		Workers:  a.config.Export.Workers,
		Dir:      dir,
		Pattern:  a.config.Export.Pattern,
	}
	a.SetStatusMessage("Exporting %d frames to %s...", len(state.Frames), dir)

	go func() {
		if err := ExportSheet(a.ctx, exporter, state); err != nil {
			a.SetStatusMessage("Export FAILED: %v", err)
			return
		}
		a.SetStatusMessage("Exported %d frames to %s", len(state.Frames), dir)
	}()
}
