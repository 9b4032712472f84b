package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want ActionEvent
	}{
		{"arrow", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), ActionEvent{Action: ActionNextFrame}},
		{"ctrl z", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), ActionEvent{Action: ActionUndo}},
		{"ctrl s without mod", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModNone), ActionEvent{Action: ActionSave}},
		{"colon", tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone), ActionEvent{Action: ActionEnterCommandMode, Rune: ':'}},
		{"toggle key", tcell.NewEventKey(tcell.KeyRune, 'K', tcell.ModShift), ActionEvent{Action: ActionToggleKeyframe, Rune: 'K'}},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: 'z'}},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModAlt), ActionEvent{Action: ActionUnknown}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionEvent{Action: ActionExecuteCommand}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, p.ProcessEvent(tt.ev))
		})
	}
}

func TestBindOverridesDefault(t *testing.T) {
	p := NewInputProcessor()
	p.Bind('u', ActionRedo)
	got := p.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone))
	require.Equal(t, ActionRedo, got.Action)
}
