// internal/app/sheet_api.go
package app

import (
	"github.com/bethropolis/xsheet/internal/command"
	"github.com/bethropolis/xsheet/internal/event"
	"github.com/bethropolis/xsheet/internal/plugin"
	"github.com/bethropolis/xsheet/internal/types"
)

// Ensure appSheetAPI implements the plugin.SheetAPI interface.
var _ plugin.SheetAPI = (*appSheetAPI)(nil)

// appSheetAPI is the plugin-facing view of the App.
type appSheetAPI struct {
	app *App
}

func newSheetAPI(app *App) *appSheetAPI {
	return &appSheetAPI{app: app}
}

// --- Sheet Access ---

func (api *appSheetAPI) FrameCount() int {
	return api.app.session.Len()
}

func (api *appSheetAPI) GetFrame(i int) (types.Frame, error) {
	return api.app.session.Frame(i)
}

func (api *appSheetAPI) SheetState() types.SheetState {
	return api.app.session.State()
}

func (api *appSheetAPI) SheetVersion() uint64 {
	return api.app.session.Version()
}

func (api *appSheetAPI) FrameRate() float64 {
	return api.app.session.FrameRate()
}

// --- Sheet Modification ---

func (api *appSheetAPI) Execute(cmd *command.Command) error {
	// SheetChanged requests the redraw.
	return api.app.session.Execute(cmd)
}

// --- Persistence ---

func (api *appSheetAPI) SaveSnapshot(name string) error {
	return api.app.saveSnapshot(name)
}

// --- Event Bus Interaction ---

func (api *appSheetAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appSheetAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appSheetAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.modeHandler.RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appSheetAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.SetStatusMessage(format, args...)
}

// --- Configuration ---

func (api *appSheetAPI) GetPluginConfigValue(pluginName string, key string) (interface{}, bool) {
	return api.app.config.PluginValue(pluginName, key)
}
