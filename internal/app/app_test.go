package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/xsheet/internal/command"
	"github.com/bethropolis/xsheet/internal/config"
	"github.com/bethropolis/xsheet/internal/export"
	"github.com/bethropolis/xsheet/internal/store"
	"github.com/bethropolis/xsheet/internal/types"
)

func newTestApp(t *testing.T, filePath string) (*App, tcell.SimulationScreen) {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Store.Dir = filepath.Join(t.TempDir(), "sheets")
	cfg.UI.SystemClipboard = false
	cfg.Sheet.InitialFrames = 6
	cfg.Export.Workers = 2

	screen := tcell.NewSimulationScreen("UTF-8")
	a, err := NewApp(Options{FilePath: filePath, Config: cfg, Screen: screen})
	require.NoError(t, err)
	t.Cleanup(a.Close)
	screen.SetSize(30, 10)
	return a, screen
}

func key(a *App, r rune) {
	a.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func runCommand(a *App, line string) {
	a.modeHandler.ExecuteCommandLine(line)
}

func TestNewSheetSaveAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk"+config.SheetFileExt)
	a, _ := newTestApp(t, path)
	require.Equal(t, path, a.FilePath())
	require.Equal(t, 6, a.session.Len())
	require.False(t, a.isModified())

	key(a, 'j')
	key(a, 'c')
	key(a, 'K')
	require.True(t, a.isModified())

	target, err := a.save("")
	require.NoError(t, err)
	require.Equal(t, path, target)
	require.False(t, a.isModified())

	reopened, _ := newTestApp(t, path)
	f, err := reopened.session.Frame(1)
	require.NoError(t, err)
	require.True(t, f.HasCel)
	require.True(t, f.Keyframe)
	require.True(t, reopened.document.HasLayer(f.Layer), "loaded layers are registered")
	require.False(t, reopened.isModified())

	// Undo history starts fresh, but the loaded binding can be edited.
	require.False(t, reopened.session.CanUndo())
	require.NoError(t, reopened.session.Execute(command.NewRemoveCel(1)))
	require.NoError(t, reopened.session.Undo())
}

func TestSaveWithoutPath(t *testing.T) {
	a, _ := newTestApp(t, "")
	_, err := a.save("")
	require.Error(t, err)
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad"+config.SheetFileExt)
	require.NoError(t, os.WriteFile(path, []byte("frames:\n  - cel: true\n"), 0644))

	cfg := config.NewDefaultConfig()
	cfg.Store.Dir = t.TempDir()
	cfg.UI.SystemClipboard = false
	_, err := NewApp(Options{FilePath: path, Config: cfg, Screen: tcell.NewSimulationScreen("UTF-8")})
	require.Error(t, err)
}

func TestSnapshotsRoundTrip(t *testing.T) {
	a, _ := newTestApp(t, "")
	require.NoError(t, a.session.Execute(command.NewCreateCel(0, "pose")))
	runCommand(a, "snap keep")
	require.True(t, a.snapshots.Has("keep"))

	require.NoError(t, a.session.Execute(command.NewDeleteFrame(0)))
	runCommand(a, "restore keep")
	f, err := a.session.Frame(0)
	require.NoError(t, err)
	require.True(t, f.HasCel)
	require.True(t, a.isModified(), "a restored snapshot is not on disk yet")

	runCommand(a, "snaps")
	text, _ := a.statusBar.Text()
	require.Equal(t, "Snapshots: keep", text)
}

func TestPluginsAreWired(t *testing.T) {
	a, _ := newTestApp(t, "")
	require.Equal(t, []string{"autosave", "stats"}, a.pluginManager.Names())

	runCommand(a, "stats")
	text, _ := a.statusBar.Text()
	require.Contains(t, text, "Frames: 6")

	runCommand(a, "autosave now")
	require.True(t, a.snapshots.Has("now"))
	state, err := a.snapshots.Load("now")
	require.NoError(t, err)
	require.Len(t, state.Frames, 6)
}

func TestExportSheet(t *testing.T) {
	dir := t.TempDir()
	state := types.SheetState{FrameRate: 12, Frames: []types.FrameState{
		{HasCel: true, Layer: "a"},
		{},
	}}
	exporter := &export.Exporter{Renderer: export.DescriptorRenderer{}, Workers: 2, Dir: dir}
	require.NoError(t, ExportSheet(context.Background(), exporter, state))

	m, err := export.ReadManifest(filepath.Join(dir, ManifestFileName))
	require.NoError(t, err)
	require.Equal(t, 12.0, m.FrameRate)
	require.Len(t, m.Files, 2)
	require.True(t, m.Shots[1].Held)
}

func TestDrawShowsSheetAndStatus(t *testing.T) {
	a, screen := newTestApp(t, "")
	require.NoError(t, a.session.Execute(command.NewCreateCel(0, "pose")))
	a.draw()

	cells, w, h := screen.GetContents()
	row := func(y int) string {
		out := make([]rune, 0, w)
		for x := 0; x < w; x++ {
			out = append(out, cells[y*w+x].Runes...)
		}
		return string(out)
	}
	require.Contains(t, row(0), "pose")
	require.Contains(t, row(1), "|")
	require.Contains(t, row(h-1), "Frame 1/6")
}

func TestRunQuitsOnKeys(t *testing.T) {
	a, screen := newTestApp(t, "")

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	screen.InjectKey(tcell.KeyRune, 'c', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	_, ok := a.session.LayerAt(0)
	require.True(t, ok)
}

func TestLoadStateKeepsStoreSnapshotsIndependent(t *testing.T) {
	dir := t.TempDir()
	s, err := store.Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save("a", types.SheetState{Frames: []types.FrameState{{}}}))

	a, _ := newTestApp(t, "")
	a.snapshots = s
	require.NoError(t, a.restoreSnapshot("a"))
	require.Equal(t, 1, a.session.Len())
	require.Error(t, a.restoreSnapshot("missing"))
}
