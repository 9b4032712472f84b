package modehandler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/xsheet/internal/command"
	"github.com/bethropolis/xsheet/internal/logger"
	"github.com/bethropolis/xsheet/internal/plugin"
	"github.com/bethropolis/xsheet/internal/types"
)

// registerBuiltins installs the command line's sheet commands. Frame
// numbers typed by the user start at 1, like the sheet view.
func (mh *ModeHandler) registerBuiltins() {
	builtins := map[string]plugin.CommandFunc{
		"goto": mh.cmdGoto,
		"cel":  mh.cmdCel,
		"bind": mh.cmdBind,
		"unbind": func(args []string) error {
			return mh.execAt(args, command.NewRemoveCel)
		},
		"key": mh.cmdKey,
		"ins": mh.cmdInsert,
		"del": func(args []string) error {
			return mh.execAt(args, command.NewDeleteFrame)
		},
		"fps":  mh.cmdFrameRate,
		"undo": func([]string) error { mh.undo(); return nil },
		"redo": func([]string) error { mh.redo(); return nil },
		"w": func(args []string) error {
			mh.saveSheet(strings.Join(args, " "))
			return nil
		},
		"q": func([]string) error {
			if mh.isModified() {
				return fmt.Errorf("unsaved changes, use :q! to discard them")
			}
			mh.quit()
			return nil
		},
		"q!": func([]string) error { mh.quit(); return nil },
		"wq": func(args []string) error {
			if mh.save == nil {
				return fmt.Errorf("save is not available")
			}
			if _, err := mh.save(strings.Join(args, " ")); err != nil {
				return err
			}
			mh.quit()
			return nil
		},
	}
	for name, fn := range builtins {
		if err := mh.RegisterCommand(name, fn); err != nil {
			logger.Warnf("ModeHandler: Failed to register ':%s': %v", name, err)
		}
	}
}

// frameArg reads an optional 1-based frame number; no argument means the
// selected frame.
func (mh *ModeHandler) frameArg(args []string) (int, []string, error) {
	if len(args) == 0 {
		return mh.selected, nil, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return mh.selected, args, nil
	}
	if n < 1 {
		return 0, nil, fmt.Errorf("frame numbers start at 1, got %d", n)
	}
	return n - 1, args[1:], nil
}

func (mh *ModeHandler) execAt(args []string, build func(int) *command.Command) error {
	at, _, err := mh.frameArg(args)
	if err != nil {
		return err
	}
	return mh.session.Execute(build(at))
}

func (mh *ModeHandler) cmdGoto(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: goto FRAME")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("invalid frame '%s'", args[0])
	}
	at := n - 1
	if at >= mh.session.Len() {
		return fmt.Errorf("frame %d is past the end of the sheet (%d frames)", at+1, mh.session.Len())
	}
	mh.Select(at)
	return nil
}

// cmdCel creates a new layer on a frame: cel [FRAME] [NAME...]
func (mh *ModeHandler) cmdCel(args []string) error {
	at, rest, err := mh.frameArg(args)
	if err != nil {
		return err
	}
	cmd := command.NewCreateCel(at, strings.Join(rest, " "))
	if err := mh.session.Execute(cmd); err != nil {
		return err
	}
	mh.statusBar.SetTemporaryMessage("Frame %d exposes %s", at+1, cmd.Layer)
	return nil
}

// cmdBind exposes an existing layer: bind [FRAME] LAYER
func (mh *ModeHandler) cmdBind(args []string) error {
	at, rest, err := mh.frameArg(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("usage: bind [FRAME] LAYER")
	}
	return mh.session.Execute(command.NewAddCel(at, types.LayerID(rest[0])))
}

// cmdKey sets or toggles the keyframe mark: key [FRAME] [on|off]
func (mh *ModeHandler) cmdKey(args []string) error {
	at, rest, err := mh.frameArg(args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return mh.session.Execute(command.NewToggleKeyframe(at))
	}
	switch strings.ToLower(rest[0]) {
	case "on", "true", "1":
		return mh.session.Execute(command.NewSetKeyframe(at, true))
	case "off", "false", "0":
		return mh.session.Execute(command.NewSetKeyframe(at, false))
	default:
		return fmt.Errorf("usage: key [FRAME] [on|off]")
	}
}

// cmdInsert inserts empty frames before a frame: ins [FRAME] [COUNT]
func (mh *ModeHandler) cmdInsert(args []string) error {
	at, rest, err := mh.frameArg(args)
	if err != nil {
		return err
	}
	count := 1
	if len(rest) > 0 {
		if count, err = strconv.Atoi(rest[0]); err != nil || count < 1 {
			return fmt.Errorf("invalid frame count '%s'", rest[0])
		}
	}
	for i := 0; i < count; i++ {
		if err := mh.session.Execute(command.NewInsertFrame(at)); err != nil {
			return err
		}
	}
	return nil
}

func (mh *ModeHandler) cmdFrameRate(args []string) error {
	if len(args) == 0 {
		mh.statusBar.SetTemporaryMessage("%g fps", mh.session.FrameRate())
		return nil
	}
	rate, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid frame rate '%s'", args[0])
	}
	return mh.session.SetFrameRate(rate)
}
