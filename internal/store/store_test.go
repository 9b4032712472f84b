package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bethropolis/xsheet/internal/sheet"
	"github.com/bethropolis/xsheet/internal/types"
)

func sampleState() types.SheetState {
	return types.SheetState{
		Version:   types.StateVersion,
		FrameRate: 12,
		Frames: []types.FrameState{
			{HasCel: true, Layer: "a", Keyframe: true},
			{},
			{Keyframe: true},
			{HasCel: true, Layer: "b"},
		},
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.xsheet.yaml")
	require.NoError(t, WriteFile(path, sampleState()))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, sampleState(), got)

	s, err := sheet.FromState(got)
	require.NoError(t, err)
	require.Equal(t, 12.0, s.FrameRate())
}

func TestDecodeDefaultsAndRejects(t *testing.T) {
	state, err := Decode([]byte("frames:\n  - cel: true\n    layer: x\n  - cel: false\n"))
	require.NoError(t, err)
	require.Equal(t, types.StateVersion, state.Version)
	require.Zero(t, state.FrameRate)
	require.Len(t, state.Frames, 2)

	_, err = Decode([]byte("version: 99\nframes: []\n"))
	require.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Decode([]byte("frames:\n  - cel: true\n"))
	require.ErrorIs(t, err, sheet.ErrInvalidLayer)

	_, err = Decode([]byte("frames:\n  - {cel: true, layer: x}\n  - {cel: true, layer: x}\n"))
	require.ErrorIs(t, err, sheet.ErrDuplicateLayer)

	_, err = Decode([]byte("frames: [\n"))
	require.Error(t, err)
}

func TestEncodeEmptySheet(t *testing.T) {
	data, err := Encode(types.SheetState{})
	require.NoError(t, err)
	require.Contains(t, string(data), "frames: []")

	state, err := Decode(data)
	require.NoError(t, err)
	require.Empty(t, state.Frames)
}

func TestStoreSaveLoadDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save("scene 1/take 2", sampleState()))
	require.NoError(t, s.Save("autosave", types.SheetState{}))
	require.True(t, s.Has("autosave"))

	got, err := s.Load("scene 1/take 2")
	require.NoError(t, err)
	require.Equal(t, sampleState(), got)

	require.Equal(t, []string{"autosave", "scene 1/take 2"}, s.Names(context.Background()))

	require.NoError(t, s.Delete("autosave"))
	require.False(t, s.Has("autosave"))
	require.ErrorIs(t, s.Delete("autosave"), ErrNotFound)
	_, err = s.Load("autosave")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save("one", sampleState()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))

	require.Equal(t, []string{"one"}, s.Names(context.Background()))
}

func TestStoreRejectsEmptyNames(t *testing.T) {
	_, err := Open(" ")
	require.Error(t, err)

	s, err := Open(t.TempDir())
	require.NoError(t, err)
	require.Error(t, s.Save("  ", sampleState()))
	require.False(t, s.Has(""))
}
