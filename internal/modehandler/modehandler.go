// internal/modehandler/modehandler.go
package modehandler

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/xsheet/internal/core/clipboard"
	"github.com/bethropolis/xsheet/internal/event"
	"github.com/bethropolis/xsheet/internal/input"
	"github.com/bethropolis/xsheet/internal/logger"
	"github.com/bethropolis/xsheet/internal/plugin"
	"github.com/bethropolis/xsheet/internal/session"
	"github.com/bethropolis/xsheet/internal/statusbar"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

func (m InputMode) String() string {
	if m == ModeCommand {
		return "COMMAND"
	}
	return "NORMAL"
}

// defaultPageSize is used until the app reports the visible row count.
const defaultPageSize = 10

// ModeHandler turns key presses into sheet edits, selection moves and
// command line input.
type ModeHandler struct {
	session        *session.Session
	clipboard      *clipboard.Manager
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}
	save           func(path string) (string, error)
	isModified     func() bool

	currentMode      InputMode
	cmdBuffer        []rune
	commands         map[string]plugin.CommandFunc
	selected         int
	pageSize         int
	forceQuitPending bool
	quitting         bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Session        *session.Session
	Clipboard      *clipboard.Manager
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{}
	Save           func(path string) (string, error) // Empty path keeps the current target
	IsModified     func() bool                       // Optional
}

// New creates a new ModeHandler with the built-in commands registered.
func New(cfg Config) *ModeHandler {
	if cfg.Session == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = clipboard.NewManager(false)
	}
	if cfg.IsModified == nil {
		cfg.IsModified = func() bool { return false }
	}
	mh := &ModeHandler{
		session:        cfg.Session,
		clipboard:      cfg.Clipboard,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		save:           cfg.Save,
		isModified:     cfg.IsModified,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
		pageSize:       defaultPageSize,
	}
	mh.registerBuiltins()
	return mh
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	switch mh.currentMode {
	case ModeNormal:
		return mh.executeAction(actionEvent)
	case ModeCommand:
		return mh.handleActionCommand(actionEvent)
	default:
		logger.Debugf("Warning: Unknown input mode: %v", mh.currentMode)
		return false
	}
}

func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the command line being typed.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return string(mh.cmdBuffer)
	}
	return ""
}

// Selected returns the selected frame index.
func (mh *ModeHandler) Selected() int {
	return mh.selected
}

// Select moves the selection to i, clamped to the sheet.
func (mh *ModeHandler) Select(i int) {
	n := mh.session.Len()
	switch {
	case n == 0:
		i = 0
	case i >= n:
		i = n - 1
	case i < 0:
		i = 0
	}
	if i == mh.selected {
		return
	}
	mh.selected = i
	mh.eventManager.Dispatch(event.TypeFrameSelected, event.FrameSelectedData{Frame: i})
}

// ClampSelection keeps the selection on the sheet after it shrinks.
func (mh *ModeHandler) ClampSelection() {
	mh.Select(mh.selected)
}

// SetPageSize sets how far page up and page down move.
func (mh *ModeHandler) SetPageSize(rows int) {
	if rows > 0 {
		mh.pageSize = rows
	}
}

func (mh *ModeHandler) quit() {
	if mh.quitting {
		return
	}
	mh.quitting = true
	close(mh.quitSignal)
}
