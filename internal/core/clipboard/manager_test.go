package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bethropolis/xsheet/internal/types"
)

type fakeSystem struct {
	text string
	err  error
}

func (f *fakeSystem) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func (f *fakeSystem) ReadAll() (string, error) {
	return f.text, f.err
}

func TestRegisterOnly(t *testing.T) {
	m := NewManagerWith(nil)
	_, err := m.Paste()
	require.ErrorIs(t, err, ErrEmpty)

	want := types.Frame{HasCel: true, Layer: "a", Keyframe: true}
	m.Copy(want)
	got, err := m.Paste()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestSystemClipboardMirror(t *testing.T) {
	sys := &fakeSystem{}
	m := NewManagerWith(sys)
	m.Copy(types.Frame{Keyframe: true})
	require.Contains(t, sys.text, header)

	// Another session reads what this one copied.
	other := NewManagerWith(sys)
	got, err := other.Paste()
	require.NoError(t, err)
	require.Equal(t, types.Frame{Keyframe: true}, got)
}

func TestForeignSystemTextFallsBackToRegister(t *testing.T) {
	sys := &fakeSystem{}
	m := NewManagerWith(sys)
	m.Copy(types.Frame{HasCel: true, Layer: "a"})
	sys.text = "hello"

	got, err := m.Paste()
	require.NoError(t, err)
	require.Equal(t, types.LayerID("a"), got.Layer)

	sys.text = header + "cel: true\n"
	got, err = m.Paste()
	require.NoError(t, err)
	require.Equal(t, types.LayerID("a"), got.Layer, "a cel without a layer is rejected")
}

func TestSystemErrorsAreNotFatal(t *testing.T) {
	sys := &fakeSystem{err: errors.New("no display")}
	m := NewManagerWith(sys)
	m.Copy(types.Frame{Keyframe: true})
	got, err := m.Paste()
	require.NoError(t, err)
	require.True(t, got.Keyframe)
}
