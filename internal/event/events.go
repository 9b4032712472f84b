// internal/event/events.go
package event

import (
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Sheet events
	TypeSheetChanged  // Fired after an execute, undo, redo or frame rate change
	TypeSheetLoaded   // Fired after a sheet replaced the open one
	TypeSheetSaved    // Fired after the sheet was written to a file or the store
	TypeFrameSelected // Fired when the selected frame changes

	// Input Events
	TypeKeyPressed

	// Application Lifecycle Events
	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeUnknown:       "Unknown",
	TypeSheetChanged:  "SheetChanged",
	TypeSheetLoaded:   "SheetLoaded",
	TypeSheetSaved:    "SheetSaved",
	TypeFrameSelected: "FrameSelected",
	TypeKeyPressed:    "KeyPressed",
	TypeAppReady:      "AppReady",
	TypeAppQuit:       "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// ChangeOp says what produced a SheetChanged event.
type ChangeOp int

const (
	ChangeExecute ChangeOp = iota
	ChangeUndo
	ChangeRedo
	ChangeFrameRate
)

func (op ChangeOp) String() string {
	switch op {
	case ChangeExecute:
		return "execute"
	case ChangeUndo:
		return "undo"
	case ChangeRedo:
		return "redo"
	case ChangeFrameRate:
		return "frame rate"
	}
	return "unknown"
}

// SheetChangedData describes the sheet right after a change.
type SheetChangedData struct {
	Op      ChangeOp
	Command string // Empty for frame rate changes
	Frame   int    // Frame index the command targeted
	Frames  int
	Version uint64
	CanUndo bool
	CanRedo bool
}

// SheetLoadedData contains info about the loaded sheet.
type SheetLoadedData struct {
	Frames int
	Source string // File path or store key, if known
}

// SheetSavedData contains info about a saved sheet.
type SheetSavedData struct {
	Target  string
	Version uint64
}

// FrameSelectedData contains the newly selected frame.
type FrameSelectedData struct {
	Frame int
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

type AppQuitData struct{}

type AppReadyData struct{}
