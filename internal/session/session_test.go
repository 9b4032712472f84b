package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bethropolis/xsheet/internal/command"
	"github.com/bethropolis/xsheet/internal/core/history"
	"github.com/bethropolis/xsheet/internal/event"
	"github.com/bethropolis/xsheet/internal/host"
	"github.com/bethropolis/xsheet/internal/sheet"
	"github.com/bethropolis/xsheet/internal/types"
)

func newSession(t *testing.T, frames, maxHistory int) (*Session, *host.Memory) {
	t.Helper()
	doc := host.NewMemory()
	s, err := New(Options{Frames: frames, MaxHistory: maxHistory, Host: doc})
	require.NoError(t, err)
	return s, doc
}

func TestKeyframeAndNavigationScenario(t *testing.T) {
	s, doc := newSession(t, 5, 0)
	require.NoError(t, doc.AddLayer("layerA", "A"))

	require.NoError(t, s.Execute(command.NewAddCel(2, "layerA")))
	require.NoError(t, s.Execute(command.NewSetKeyframe(2, true)))

	f, err := s.Frame(2)
	require.NoError(t, err)
	require.Equal(t, types.Frame{HasCel: true, Layer: "layerA", Keyframe: true}, f)

	i, ok := s.NextWithCel(0)
	require.True(t, ok)
	require.Equal(t, 2, i)
	i, ok = s.PrevWithCel(4)
	require.True(t, ok)
	require.Equal(t, 2, i)
	i, ok = s.PrevKeyframe(4)
	require.True(t, ok)
	require.Equal(t, 2, i)
	_, ok = s.NextKeyframe(2)
	require.False(t, ok)
}

func TestUndoDeleteFrameKeepsLayer(t *testing.T) {
	s, doc := newSession(t, 5, 0)
	require.NoError(t, doc.AddLayer("layerA", "A"))
	require.NoError(t, s.Execute(command.NewAddCel(2, "layerA")))
	require.NoError(t, s.Execute(command.NewSetKeyframe(2, true)))

	require.NoError(t, s.Execute(command.NewDeleteFrame(2)))
	require.Equal(t, 4, s.Len())
	require.True(t, doc.HasLayer("layerA"), "deletion is deferred while undo can restore it")

	require.NoError(t, s.Undo())
	require.Equal(t, 5, s.Len())
	f, err := s.Frame(2)
	require.NoError(t, err)
	require.Equal(t, types.Frame{HasCel: true, Layer: "layerA", Keyframe: true}, f)
}

func TestOccupiedFrameScenario(t *testing.T) {
	s, doc := newSession(t, 1, 0)
	require.NoError(t, doc.AddLayer("x", "x"))
	require.NoError(t, doc.AddLayer("y", "y"))
	require.NoError(t, s.Execute(command.NewAddCel(0, "x")))
	before := s.State()

	err := s.Execute(command.NewAddCel(0, "y"))
	require.ErrorIs(t, err, sheet.ErrAlreadyOccupied)
	require.Equal(t, before, s.State())
	layer, _ := s.LayerAt(0)
	require.Equal(t, types.LayerID("x"), layer)
}

func TestUndoOnFreshSession(t *testing.T) {
	s, _ := newSession(t, 2, 0)
	before := s.State()
	require.ErrorIs(t, s.Undo(), history.ErrNothingToUndo)
	require.ErrorIs(t, s.Redo(), history.ErrNothingToRedo)
	require.Equal(t, before, s.State())
}

func TestEvictedRemovalReclaimsLayer(t *testing.T) {
	s, doc := newSession(t, 2, 1)

	create := command.NewCreateCel(0, "pose")
	require.NoError(t, s.Execute(create))
	layer := create.Layer
	require.True(t, doc.HasLayer(layer))

	// CreateCel is evicted, but RemoveCel still references the layer.
	require.NoError(t, s.Execute(command.NewRemoveCel(0)))
	require.True(t, doc.HasLayer(layer))

	require.NoError(t, s.Execute(command.NewToggleKeyframe(1)))
	require.False(t, doc.HasLayer(layer))
}

func TestDroppedRedoReclaimsCreatedLayer(t *testing.T) {
	s, doc := newSession(t, 2, 0)
	create := command.NewCreateCel(1, "")
	require.NoError(t, s.Execute(create))
	require.NoError(t, s.Undo())
	require.True(t, doc.HasLayer(create.Layer), "redo may still need it")

	require.NoError(t, s.Execute(command.NewToggleKeyframe(0)))
	require.False(t, doc.HasLayer(create.Layer))
	require.Empty(t, doc.Layers())
}

func TestCloseReclaimsOnlyUnboundLayers(t *testing.T) {
	s, doc := newSession(t, 3, 0)
	kept, _ := doc.CreateLayer("kept")
	gone, _ := doc.CreateLayer("gone")
	require.NoError(t, s.Execute(command.NewAddCel(0, kept)))
	require.NoError(t, s.Execute(command.NewAddCel(1, gone)))
	require.NoError(t, s.Execute(command.NewDeleteFrame(1)))

	require.NoError(t, s.Close())
	require.True(t, doc.HasLayer(kept))
	require.False(t, doc.HasLayer(gone))

	require.ErrorIs(t, s.Execute(command.NewToggleKeyframe(0)), ErrClosed)
	require.ErrorIs(t, s.Undo(), ErrClosed)
	require.NoError(t, s.Close())
}

func TestRetainedLayerSurvivesEviction(t *testing.T) {
	s, doc := newSession(t, 3, 2)
	require.NoError(t, s.Execute(command.NewCreateCel(0, "")))
	cut := command.NewDeleteFrame(0)
	require.NoError(t, s.Execute(cut))
	held := cut.Prior()
	s.Retain(held.Layer)

	// Both the CreateCel and the DeleteFrame fall out of history.
	require.NoError(t, s.Execute(command.NewToggleKeyframe(0)))
	require.NoError(t, s.Execute(command.NewToggleKeyframe(1)))
	require.True(t, doc.HasLayer(held.Layer))

	require.NoError(t, s.Execute(command.NewPasteFrame(0, held)))
	require.Equal(t, 0, mustFrameOf(t, s, held.Layer))

	// Bound again, so releasing it keeps it.
	s.Retain()
	require.True(t, doc.HasLayer(held.Layer))
}

func TestReleasedLayerIsReclaimed(t *testing.T) {
	s, doc := newSession(t, 2, 1)
	require.NoError(t, s.Execute(command.NewCreateCel(0, "")))
	cut := command.NewDeleteFrame(0)
	require.NoError(t, s.Execute(cut))
	layer := cut.Prior().Layer
	s.Retain(layer)

	require.NoError(t, s.Execute(command.NewToggleKeyframe(0)))
	require.True(t, doc.HasLayer(layer))

	other, _ := doc.CreateLayer("other")
	s.Retain(other)
	require.False(t, doc.HasLayer(layer))
	require.True(t, doc.HasLayer(other))
}

func TestClosedSessionRejectsFrameRate(t *testing.T) {
	bus := event.NewManager()
	s, err := New(Options{Frames: 1, FrameRate: 12, Events: bus})
	require.NoError(t, err)
	changed := 0
	bus.Subscribe(event.TypeSheetChanged, func(event.Event) bool { changed++; return false })

	require.NoError(t, s.Close())
	require.ErrorIs(t, s.SetFrameRate(24), ErrClosed)
	require.Equal(t, 12.0, s.FrameRate())
	require.Zero(t, changed)
}

func TestLoadKeepsLayersTheNewSheetBinds(t *testing.T) {
	s, doc := newSession(t, 2, 0)
	a, _ := doc.CreateLayer("a")
	require.NoError(t, s.Execute(command.NewAddCel(0, a)))
	require.NoError(t, s.Execute(command.NewRemoveCel(0)))
	orphan := command.NewCreateCel(1, "orphan")
	require.NoError(t, s.Execute(orphan))
	require.NoError(t, s.Undo())
	require.NoError(t, s.SetFrameRate(12))

	state := types.SheetState{
		Version: types.StateVersion,
		Frames: []types.FrameState{
			{},
			{HasCel: true, Layer: a, Keyframe: true},
		},
	}
	require.NoError(t, s.Load(state))

	require.True(t, doc.HasLayer(a))
	require.False(t, doc.HasLayer(orphan.Layer))
	require.False(t, s.CanUndo())
	require.False(t, s.CanRedo())
	require.Equal(t, 12.0, s.FrameRate(), "a state without a rate keeps the current one")
	require.Equal(t, 1, mustFrameOf(t, s, a))
}

func TestLoadRejectsInvalidState(t *testing.T) {
	s, _ := newSession(t, 1, 0)
	before := s.State()
	err := s.Load(types.SheetState{Frames: []types.FrameState{
		{HasCel: true, Layer: "dup"},
		{HasCel: true, Layer: "dup"},
	}})
	require.ErrorIs(t, err, sheet.ErrDuplicateLayer)
	require.Equal(t, before, s.State())
}

func TestLayerOrderFollowsFrames(t *testing.T) {
	s, doc := newSession(t, 4, 0)
	a, _ := doc.CreateLayer("a")
	b, _ := doc.CreateLayer("b")

	require.NoError(t, s.Execute(command.NewAddCel(3, a)))
	require.NoError(t, s.Execute(command.NewAddCel(0, b)))
	require.Equal(t, []types.LayerID{b, a}, layerIDs(doc))

	require.NoError(t, s.Undo())
	require.NoError(t, s.Execute(command.NewAddCel(1, b)))
	require.NoError(t, s.Execute(command.NewInsertFrame(0)))
	require.Equal(t, []types.LayerID{b, a}, layerIDs(doc))
}

func TestEventsDispatchAfterUnlock(t *testing.T) {
	bus := event.NewManager()
	s, err := New(Options{Frames: 2, Events: bus})
	require.NoError(t, err)

	var got []event.SheetChangedData
	bus.Subscribe(event.TypeSheetChanged, func(e event.Event) bool {
		data := e.Data.(event.SheetChangedData)
		// Reading back from a handler must not deadlock.
		require.Equal(t, data.Frames, s.Len())
		got = append(got, data)
		return false
	})
	loaded := 0
	bus.Subscribe(event.TypeSheetLoaded, func(event.Event) bool { loaded++; return false })

	require.NoError(t, s.Execute(command.NewAppendFrame()))
	require.NoError(t, s.Undo())
	require.NoError(t, s.Redo())
	require.Error(t, s.Execute(command.NewDeleteFrame(9)))
	require.NoError(t, s.SetFrameRate(30))
	require.NoError(t, s.Load(types.SheetState{}))

	require.Len(t, got, 4)
	require.Equal(t, event.ChangeExecute, got[0].Op)
	require.Equal(t, "InsertFrame(2)", got[0].Command)
	require.Equal(t, 3, got[0].Frames)
	require.True(t, got[0].CanUndo)
	require.Equal(t, event.ChangeUndo, got[1].Op)
	require.True(t, got[1].CanRedo)
	require.Equal(t, event.ChangeRedo, got[2].Op)
	require.Equal(t, event.ChangeFrameRate, got[3].Op)
	require.Equal(t, 1, loaded)
}

func TestFramesWindow(t *testing.T) {
	s, _ := newSession(t, 3, 0)
	require.NoError(t, s.Execute(command.NewToggleKeyframe(1)))
	require.Equal(t, []types.Frame{{}, {Keyframe: true}}, s.Frames(-2, 2))
	require.Len(t, s.Frames(1, 10), 2)
	require.Nil(t, s.Frames(3, 3))
}

func mustFrameOf(t *testing.T, s *Session, layer types.LayerID) int {
	t.Helper()
	for i := 0; i < s.Len(); i++ {
		if l, ok := s.LayerAt(i); ok && l == layer {
			return i
		}
	}
	t.Fatalf("layer %s is not bound", layer)
	return -1
}

func layerIDs(doc *host.Memory) []types.LayerID {
	var ids []types.LayerID
	for _, l := range doc.Layers() {
		ids = append(ids, l.ID)
	}
	return ids
}
