package command

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bethropolis/xsheet/internal/host"
	"github.com/bethropolis/xsheet/internal/sheet"
	"github.com/bethropolis/xsheet/internal/types"
)

func newEnv(frames int) *Env {
	return &Env{Sheet: sheet.New(frames)}
}

func TestApplyRevertEachKind(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *sheet.Sheet)
		cmd   *Command
	}{
		{"add cel", nil, NewAddCel(1, "a")},
		{"remove cel", func(s *sheet.Sheet) { _ = s.SetCel(1, "a") }, NewRemoveCel(1)},
		{"toggle key", nil, NewToggleKeyframe(2)},
		{"toggle key off", func(s *sheet.Sheet) { _ = s.SetKeyframe(2, true) }, NewToggleKeyframe(2)},
		{"set key", nil, NewSetKeyframe(0, true)},
		{"insert", func(s *sheet.Sheet) { _ = s.SetCel(1, "a") }, NewInsertFrame(1)},
		{"append", nil, NewAppendFrame()},
		{"delete", func(s *sheet.Sheet) {
			_ = s.SetCel(1, "a")
			_ = s.SetKeyframe(1, true)
		}, NewDeleteFrame(1)},
		{"paste", nil, NewPasteFrame(1, types.Frame{HasCel: true, Layer: "z", Keyframe: true})},
		{"paste key", nil, NewPasteFrame(3, types.Frame{Keyframe: true})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(3)
			if tt.setup != nil {
				tt.setup(env.Sheet)
			}
			before := env.Sheet.State()

			require.NoError(t, tt.cmd.Apply(env))
			after := env.Sheet.State()
			require.NotEqual(t, before, after)

			require.NoError(t, tt.cmd.Revert(env))
			require.Equal(t, before, env.Sheet.State())

			require.NoError(t, tt.cmd.Apply(env))
			require.Equal(t, after, env.Sheet.State())
		})
	}
}

func TestFailedApplyLeavesStateUnchanged(t *testing.T) {
	env := newEnv(2)
	require.NoError(t, NewAddCel(0, "x").Apply(env))
	before := env.Sheet.State()

	err := NewAddCel(0, "y").Apply(env)
	require.ErrorIs(t, err, ErrPreconditionFailed)
	require.ErrorIs(t, err, sheet.ErrAlreadyOccupied)
	require.Equal(t, before, env.Sheet.State())

	err = NewRemoveCel(1).Apply(env)
	require.ErrorIs(t, err, ErrPreconditionFailed)
	require.ErrorIs(t, err, ErrNothingToRemove)

	err = NewDeleteFrame(2).Apply(env)
	require.ErrorIs(t, err, sheet.ErrOutOfRange)

	err = NewInsertFrame(3).Apply(env)
	require.ErrorIs(t, err, sheet.ErrOutOfRange)
	require.Equal(t, before, env.Sheet.State())
}

func TestCutAndPasteMovesFrame(t *testing.T) {
	doc := host.NewMemory()
	id, _ := doc.CreateLayer("")
	env := &Env{Sheet: sheet.New(4), Host: doc}
	require.NoError(t, NewAddCel(1, id).Apply(env))

	cut := NewDeleteFrame(1)
	require.NoError(t, cut.Apply(env))
	paste := NewPasteFrame(3, cut.Prior())
	require.NoError(t, paste.Apply(env))
	at, ok := env.Sheet.FrameOf(id)
	require.True(t, ok)
	require.Equal(t, 3, at)

	err := NewPasteFrame(0, cut.Prior()).Apply(env)
	require.ErrorIs(t, err, sheet.ErrDuplicateLayer)
	require.Equal(t, 4, env.Sheet.Len())
	require.Equal(t, "PasteFrame(0)", NewPasteFrame(0, types.Frame{}).String())
}

func TestRevertRequiresApply(t *testing.T) {
	env := newEnv(1)
	require.ErrorIs(t, NewToggleKeyframe(0).Revert(env), ErrPreconditionFailed)
}

func TestKeyframeCommandsLeaveCelsAlone(t *testing.T) {
	env := newEnv(2)
	require.NoError(t, NewAddCel(0, "a").Apply(env))
	require.NoError(t, NewToggleKeyframe(0).Apply(env))
	f, _ := env.Sheet.Frame(0)
	require.Equal(t, types.Frame{HasCel: true, Layer: "a", Keyframe: true}, f)

	require.NoError(t, NewRemoveCel(0).Apply(env))
	f, _ = env.Sheet.Frame(0)
	require.Equal(t, types.Frame{Keyframe: true}, f)
}

func TestCreateCelUsesHost(t *testing.T) {
	doc := host.NewMemory()
	env := &Env{Sheet: sheet.New(2), Host: doc}

	cmd := NewCreateCel(1, "pose A")
	require.NoError(t, cmd.Apply(env))
	layer, ok := env.Sheet.LayerAt(1)
	require.True(t, ok)
	require.Equal(t, cmd.Layer, layer)
	require.True(t, doc.HasLayer(layer))
	require.Equal(t, "pose A", doc.Name(layer))

	require.NoError(t, cmd.Revert(env))
	require.True(t, doc.HasLayer(layer), "undo must not delete the layer")

	require.NoError(t, cmd.Apply(env))
	again, _ := env.Sheet.LayerAt(1)
	require.Equal(t, layer, again, "redo rebinds the same layer")
	require.Len(t, doc.Layers(), 1)
}

func TestCreateCelOnOccupiedFrameCreatesNothing(t *testing.T) {
	doc := host.NewMemory()
	id, _ := doc.CreateLayer("existing")
	env := &Env{Sheet: sheet.New(1), Host: doc}
	require.NoError(t, NewAddCel(0, id).Apply(env))

	err := NewCreateCel(0, "").Apply(env)
	require.ErrorIs(t, err, sheet.ErrAlreadyOccupied)
	require.Len(t, doc.Layers(), 1)
}

func TestMissingLayerBlocksUndo(t *testing.T) {
	doc := host.NewMemory()
	id, _ := doc.CreateLayer("")
	env := &Env{Sheet: sheet.New(3), Host: doc}
	require.NoError(t, NewAddCel(1, id).Apply(env))

	del := NewDeleteFrame(1)
	require.NoError(t, del.Apply(env))
	before := env.Sheet.State()

	require.NoError(t, doc.DeleteLayer(id))
	err := del.Revert(env)
	require.ErrorIs(t, err, ErrLayerMissing)
	require.Equal(t, before, env.Sheet.State())
}

func TestLayers(t *testing.T) {
	env := newEnv(2)
	require.NoError(t, NewAddCel(0, "a").Apply(env))
	rm := NewRemoveCel(0)
	require.Empty(t, rm.Layers())
	require.NoError(t, rm.Apply(env))
	require.Equal(t, []types.LayerID{"a"}, rm.Layers())
	require.Empty(t, NewToggleKeyframe(0).Layers())
}

func TestString(t *testing.T) {
	require.Equal(t, "AddCel(2, layerA)", NewAddCel(2, "layerA").String())
	require.Equal(t, "InsertFrame(end)", NewAppendFrame().String())
	require.Equal(t, "SetKeyframe(1, true)", NewSetKeyframe(1, true).String())
	require.Equal(t, "DeleteFrame(0)", NewDeleteFrame(0).String())
}
