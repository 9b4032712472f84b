// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/xsheet/internal/command"
	"github.com/bethropolis/xsheet/internal/event"
	"github.com/bethropolis/xsheet/internal/types"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes arguments (e.g., from user input) and returns an error.
type CommandFunc func(args []string) error

// SheetAPI defines the methods plugins can use to interact with the open sheet.
// It is safe to call from plugin goroutines.
type SheetAPI interface {
	// --- Sheet Access ---
	FrameCount() int
	GetFrame(i int) (types.Frame, error)
	SheetState() types.SheetState
	SheetVersion() uint64 // Changes whenever the sheet content changes
	FrameRate() float64

	// --- Sheet Modification ---
	// Goes through history, so plugin edits are undoable like any other.
	Execute(cmd *command.Command) error

	// --- Persistence ---
	SaveSnapshot(name string) error

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Configuration ---
	GetPluginConfigValue(pluginName string, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded.
	// Used for setup, subscribing to events, registering commands.
	Initialize(api SheetAPI) error

	// Shutdown is called once when the application is closing.
	Shutdown() error
}
