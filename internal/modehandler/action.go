package modehandler

import (
	"errors"

	"github.com/bethropolis/xsheet/internal/command"
	"github.com/bethropolis/xsheet/internal/core/clipboard"
	"github.com/bethropolis/xsheet/internal/core/history"
	"github.com/bethropolis/xsheet/internal/input"
	"github.com/bethropolis/xsheet/internal/logger"
)

// executeAction handles actions when in ModeNormal.
func (mh *ModeHandler) executeAction(actionEvent input.ActionEvent) bool {
	actionProcessed := true

	switch actionEvent.Action {
	case input.ActionEnterCommandMode:
		mh.currentMode = ModeCommand
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.statusBar.SetCommandLine("", true)
		logger.Debugf("ModeHandler: Entering Command Mode")

	// --- Quit/Save ---
	case input.ActionCancelCommand:
		mh.forceQuitPending = false
		mh.statusBar.ResetTemporaryMessage()
	case input.ActionQuit:
		if mh.isModified() && !mh.forceQuitPending {
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press q again or Ctrl+Q to force quit.")
			mh.forceQuitPending = true
			return true
		}
		mh.quit()
		actionProcessed = false
	case input.ActionForceQuit:
		mh.quit()
		actionProcessed = false
	case input.ActionSave:
		mh.saveSheet("")

	// --- Selection ---
	case input.ActionPrevFrame:
		mh.Select(mh.selected - 1)
	case input.ActionNextFrame:
		mh.Select(mh.selected + 1)
	case input.ActionPageUp:
		mh.Select(mh.selected - mh.pageSize)
	case input.ActionPageDown:
		mh.Select(mh.selected + mh.pageSize)
	case input.ActionFirstFrame:
		mh.Select(0)
	case input.ActionLastFrame:
		mh.Select(mh.session.Len() - 1)
	case input.ActionPrevCel:
		actionProcessed = mh.jump(mh.session.PrevWithCel, "No earlier cel")
	case input.ActionNextCel:
		actionProcessed = mh.jump(mh.session.NextWithCel, "No later cel")
	case input.ActionPrevKeyframe:
		actionProcessed = mh.jump(mh.session.PrevKeyframe, "No earlier keyframe")
	case input.ActionNextKeyframe:
		actionProcessed = mh.jump(mh.session.NextKeyframe, "No later keyframe")

	// --- Editing ---
	case input.ActionNewCel:
		mh.run(command.NewCreateCel(mh.selected, ""))
	case input.ActionRemoveCel:
		mh.run(command.NewRemoveCel(mh.selected))
	case input.ActionToggleKeyframe:
		mh.run(command.NewToggleKeyframe(mh.selected))
	case input.ActionInsertFrame:
		mh.run(command.NewInsertFrame(mh.selected))
	case input.ActionAppendFrame:
		at := mh.selected + 1
		if mh.session.Len() == 0 {
			at = 0
		}
		if mh.run(command.NewInsertFrame(at)) == nil {
			mh.Select(at)
		}
	case input.ActionDeleteFrame:
		mh.run(command.NewDeleteFrame(mh.selected))
	case input.ActionCopyFrame:
		actionProcessed = mh.copyFrame()
	case input.ActionCutFrame:
		actionProcessed = mh.cutFrame()
	case input.ActionPasteFrame:
		actionProcessed = mh.pasteFrame()
	case input.ActionUndo:
		actionProcessed = mh.undo()
	case input.ActionRedo:
		actionProcessed = mh.redo()

	default:
		actionProcessed = false
	}

	if actionProcessed {
		mh.ClampSelection()
	}
	if actionEvent.Action != input.ActionQuit && actionEvent.Action != input.ActionUnknown && actionProcessed {
		mh.forceQuitPending = false
	}
	return actionProcessed
}

// run executes cmd through the session and reports failures on the status bar.
func (mh *ModeHandler) run(cmd *command.Command) error {
	err := mh.session.Execute(cmd)
	if err != nil {
		mh.statusBar.SetTemporaryMessage("%s failed: %v", cmd.Kind, err)
		logger.Debugf("ModeHandler: %s rejected: %v", cmd, err)
	}
	return err
}

func (mh *ModeHandler) jump(find func(from int) (int, bool), notFound string) bool {
	i, ok := find(mh.selected)
	if !ok {
		mh.statusBar.SetTemporaryMessage(notFound)
		return true
	}
	mh.Select(i)
	return true
}

func (mh *ModeHandler) undo() bool {
	err := mh.session.Undo()
	switch {
	case errors.Is(err, history.ErrNothingToUndo):
		mh.statusBar.SetTemporaryMessage("Nothing to undo")
	case err != nil:
		mh.statusBar.SetTemporaryMessage("Undo failed: %v", err)
	}
	return true
}

func (mh *ModeHandler) redo() bool {
	err := mh.session.Redo()
	switch {
	case errors.Is(err, history.ErrNothingToRedo):
		mh.statusBar.SetTemporaryMessage("Nothing to redo")
	case err != nil:
		mh.statusBar.SetTemporaryMessage("Redo failed: %v", err)
	}
	return true
}

func (mh *ModeHandler) copyFrame() bool {
	f, err := mh.session.Frame(mh.selected)
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Copy failed: %v", err)
		return true
	}
	mh.clipboard.Copy(f)
	mh.session.Retain(f.Layer)
	mh.statusBar.SetTemporaryMessage("Frame %d copied", mh.selected+1)
	return true
}

// cutFrame deletes the selected frame and keeps it for pasting. Pasting it
// back rebinds the same layer.
func (mh *ModeHandler) cutFrame() bool {
	cmd := command.NewDeleteFrame(mh.selected)
	if err := mh.session.Execute(cmd); err != nil {
		mh.statusBar.SetTemporaryMessage("Cut failed: %v", err)
		return true
	}
	f := cmd.Prior()
	mh.clipboard.Copy(f)
	mh.session.Retain(f.Layer)
	mh.statusBar.SetTemporaryMessage("Frame %d cut", cmd.Frame+1)
	return true
}

func (mh *ModeHandler) pasteFrame() bool {
	f, err := mh.clipboard.Paste()
	if errors.Is(err, clipboard.ErrEmpty) {
		mh.statusBar.SetTemporaryMessage("Clipboard empty")
		return true
	}
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Paste failed: %v", err)
		return true
	}
	at := mh.selected
	if mh.session.Len() == 0 {
		at = 0
	}
	mh.run(command.NewPasteFrame(at, f))
	return true
}

func (mh *ModeHandler) saveSheet(path string) {
	if mh.save == nil {
		mh.statusBar.SetTemporaryMessage("Save is not available")
		return
	}
	target, err := mh.save(path)
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
		return
	}
	mh.statusBar.SetTemporaryMessage("Sheet saved to %s", target)
}
