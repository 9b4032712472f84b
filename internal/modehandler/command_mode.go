package modehandler

import (
	"fmt"
	"strings"

	"github.com/bethropolis/xsheet/internal/input"
	"github.com/bethropolis/xsheet/internal/logger"
	"github.com/bethropolis/xsheet/internal/plugin"
)

// handleActionCommand handles actions when in ModeCommand.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	// Bound runes such as 'q' still type themselves here.
	if actionEvent.Rune != 0 {
		mh.cmdBuffer = append(mh.cmdBuffer, actionEvent.Rune)
		mh.statusBar.SetCommandLine(string(mh.cmdBuffer), true)
		return true
	}

	switch actionEvent.Action {
	case input.ActionDeleteCommandChar:
		if len(mh.cmdBuffer) == 0 {
			mh.leaveCommandMode()
			logger.Debugf("ModeHandler: Exiting Command Mode via Backspace")
			return true
		}
		mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-1]

	case input.ActionExecuteCommand:
		line := string(mh.cmdBuffer)
		mh.leaveCommandMode()
		mh.ExecuteCommandLine(line)
		mh.ClampSelection()
		return true

	case input.ActionCancelCommand, input.ActionQuit:
		mh.leaveCommandMode()
		logger.Debugf("ModeHandler: Canceled Command Mode")
		return true

	default:
		return false
	}

	mh.statusBar.SetCommandLine(string(mh.cmdBuffer), true)
	return true
}

func (mh *ModeHandler) leaveCommandMode() {
	mh.currentMode = ModeNormal
	mh.cmdBuffer = mh.cmdBuffer[:0]
	mh.statusBar.SetCommandLine("", false)
}

// ExecuteCommandLine parses and runs one command line, without the colon.
func (mh *ModeHandler) ExecuteCommandLine(line string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}
	cmdName, args := parts[0], parts[1:]

	cmdFunc, exists := mh.commands[cmdName]
	if !exists {
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", cmdName)
		return
	}
	logger.Debugf("ModeHandler: Executing command ':%s' with args %v", cmdName, args)
	if err := cmdFunc(args); err != nil {
		mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", cmdName, err)
	}
}

// RegisterCommand adds a command to the registry.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.Debugf("ModeHandler: Registered command ':%s'", name)
	return nil
}
