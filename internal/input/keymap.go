// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

type Keymap map[tcell.Key]Action
type RuneKeymap map[rune]Action
type ModKeymap map[tcell.ModMask]Keymap

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionPrevFrame
	p.keymap[tcell.KeyDown] = ActionNextFrame
	p.keymap[tcell.KeyPgUp] = ActionPageUp
	p.keymap[tcell.KeyPgDn] = ActionPageDown
	p.keymap[tcell.KeyHome] = ActionFirstFrame
	p.keymap[tcell.KeyEnd] = ActionLastFrame
	p.keymap[tcell.KeyEnter] = ActionExecuteCommand
	p.keymap[tcell.KeyBackspace] = ActionDeleteCommandChar
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCommandChar
	p.keymap[tcell.KeyDelete] = ActionDeleteFrame
	p.keymap[tcell.KeyInsert] = ActionInsertFrame
	p.keymap[tcell.KeyEscape] = ActionCancelCommand
	p.keymap[tcell.KeyCtrlC] = ActionQuit

	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlS] = ActionSave
	ctrlMap[tcell.KeyCtrlQ] = ActionForceQuit
	ctrlMap[tcell.KeyCtrlZ] = ActionUndo
	ctrlMap[tcell.KeyCtrlY] = ActionRedo
	ctrlMap[tcell.KeyCtrlR] = ActionRedo
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	p.runeKeymap[':'] = ActionEnterCommandMode
	p.runeKeymap['q'] = ActionQuit
	p.runeKeymap['j'] = ActionNextFrame
	p.runeKeymap['k'] = ActionPrevFrame
	p.runeKeymap['g'] = ActionFirstFrame
	p.runeKeymap['G'] = ActionLastFrame
	p.runeKeymap[']'] = ActionNextCel
	p.runeKeymap['['] = ActionPrevCel
	p.runeKeymap['}'] = ActionNextKeyframe
	p.runeKeymap['{'] = ActionPrevKeyframe
	p.runeKeymap['c'] = ActionNewCel
	p.runeKeymap['x'] = ActionRemoveCel
	p.runeKeymap['K'] = ActionToggleKeyframe
	p.runeKeymap['O'] = ActionInsertFrame
	p.runeKeymap['o'] = ActionAppendFrame
	p.runeKeymap['D'] = ActionDeleteFrame
	p.runeKeymap['y'] = ActionCopyFrame
	p.runeKeymap['d'] = ActionCutFrame
	p.runeKeymap['p'] = ActionPasteFrame
	p.runeKeymap['u'] = ActionUndo
}

// ProcessEvent maps a key event to an action. The mode is the app's
// concern: in command mode it reads Rune instead of the rune binding.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	runeVal := ev.Rune()

	if modKeyMap, modOk := p.modKeymap[mod]; modOk {
		if action, keyOk := modKeyMap[key]; keyOk {
			return ActionEvent{Action: action}
		}
	}
	// tcell reports Ctrl+letter as its own key, with or without ModCtrl.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		if action, ok := p.modKeymap[tcell.ModCtrl][key]; ok {
			return ActionEvent{Action: action}
		}
		mod &^= tcell.ModCtrl
	}

	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		if action, ok := p.runeKeymap[runeVal]; ok {
			return ActionEvent{Action: action, Rune: runeVal}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: runeVal}
	}

	return ActionEvent{Action: ActionUnknown}
}

// Bind maps a rune to an action, replacing any earlier binding.
func (p *InputProcessor) Bind(r rune, action Action) {
	p.runeKeymap[r] = action
}
