// internal/input/action.go
package input

// Action represents an operation the sheet view performs.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit // Quit without saving
	ActionSave

	// --- Frame Selection ---
	ActionPrevFrame
	ActionNextFrame
	ActionPageUp
	ActionPageDown
	ActionFirstFrame
	ActionLastFrame
	ActionPrevCel
	ActionNextCel
	ActionPrevKeyframe
	ActionNextKeyframe

	// --- Sheet Editing ---
	ActionNewCel // Create a layer and bind it to the selected frame
	ActionRemoveCel
	ActionToggleKeyframe
	ActionInsertFrame // Before the selected frame
	ActionAppendFrame // After the selected frame
	ActionDeleteFrame
	ActionCopyFrame
	ActionCutFrame
	ActionPasteFrame // Before the selected frame
	ActionUndo
	ActionRedo

	// --- Command Line ---
	ActionEnterCommandMode
	ActionExecuteCommand
	ActionCancelCommand
	ActionInsertRune // Carries Rune
	ActionDeleteCommandChar
)

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action Action
	Rune   rune // Set for every plain rune key, mapped or not
}
