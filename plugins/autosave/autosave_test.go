package autosave

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bethropolis/xsheet/internal/command"
	"github.com/bethropolis/xsheet/internal/plugin/plugintest"
	"github.com/bethropolis/xsheet/internal/types"
)

func newAutoSave(t *testing.T, cfg map[string]interface{}) (*AutoSave, *plugintest.API) {
	t.Helper()
	api, err := plugintest.New(3)
	require.NoError(t, err)
	api.Config["autosave"] = cfg
	p := New().(*AutoSave)
	require.NoError(t, p.Initialize(api))
	t.Cleanup(func() { _ = p.Shutdown() })
	return p, api
}

func TestSavesOnlyAfterChanges(t *testing.T) {
	p, api := newAutoSave(t, map[string]interface{}{"enabled": true, "interval": "1h", "name": "shot"})

	require.False(t, p.saveIfChanged(), "a fresh sheet is not saved")
	require.NoError(t, api.Execute(command.NewToggleKeyframe(0)))
	require.True(t, p.saveIfChanged())
	require.False(t, p.saveIfChanged())

	snap, ok := api.Snapshot("shot")
	require.True(t, ok)
	require.True(t, snap.Frames[0].Keyframe)
	require.Equal(t, 1, api.Saves())
}

func TestLoadResetsBaseline(t *testing.T) {
	p, api := newAutoSave(t, map[string]interface{}{"enabled": true, "interval": "1h"})
	require.NoError(t, api.Execute(command.NewAppendFrame()))
	require.NoError(t, api.Execute(command.NewToggleKeyframe(0)))
	require.True(t, p.saveIfChanged())

	require.NoError(t, api.Session.Load(types.SheetState{Frames: make([]types.FrameState, 2)}))
	require.False(t, p.saveIfChanged())
}

func TestFailedSaveIsRetried(t *testing.T) {
	p, api := newAutoSave(t, map[string]interface{}{"enabled": true, "interval": "1h"})
	api.SaveErr = errors.New("disk full")
	require.NoError(t, api.Execute(command.NewToggleKeyframe(1)))
	require.False(t, p.saveIfChanged())

	api.SaveErr = nil
	require.True(t, p.saveIfChanged())
	_, ok := api.Snapshot(defaultName)
	require.True(t, ok)
}

func TestDisabledNeverSaves(t *testing.T) {
	p, api := newAutoSave(t, map[string]interface{}{"interval": "bogus", "enabled": "yes"})
	require.Equal(t, defaultInterval, p.interval)
	require.False(t, p.enabled)
	require.NoError(t, api.Execute(command.NewToggleKeyframe(1)))
	require.False(t, p.saveIfChanged())
	require.Nil(t, p.stopChan)
}

func TestSaverLoopTicks(t *testing.T) {
	_, api := newAutoSave(t, map[string]interface{}{"enabled": true, "interval": "5ms"})
	require.NoError(t, api.Execute(command.NewToggleKeyframe(2)))
	require.Eventually(t, func() bool { return api.Saves() >= 1 }, time.Second, 5*time.Millisecond)
}

func TestShutdownWritesPendingChanges(t *testing.T) {
	p, api := newAutoSave(t, map[string]interface{}{"enabled": true, "interval": "1h"})
	require.NoError(t, api.Execute(command.NewToggleKeyframe(0)))
	require.NoError(t, p.Shutdown())
	require.Equal(t, 1, api.Saves())
}

func TestSaveNowCommand(t *testing.T) {
	_, api := newAutoSave(t, nil)
	require.NoError(t, api.Run("autosave", "manual"))
	_, ok := api.Snapshot("manual")
	require.True(t, ok)
	require.Equal(t, "Saved snapshot 'manual'", api.LastStatus())
}

func TestIdleSaveAfterEditsPause(t *testing.T) {
	_, api := newAutoSave(t, map[string]interface{}{"enabled": true, "interval": "1h", "idle": "50ms"})
	require.NoError(t, api.Execute(command.NewToggleKeyframe(0)))
	require.NoError(t, api.Execute(command.NewToggleKeyframe(1)))
	require.Eventually(t, func() bool { return api.Saves() == 1 }, time.Second, 5*time.Millisecond)

	snap, ok := api.Snapshot(defaultName)
	require.True(t, ok)
	require.True(t, snap.Frames[1].Keyframe)
}

func TestInvalidIdleIsIgnored(t *testing.T) {
	p, _ := newAutoSave(t, map[string]interface{}{"enabled": true, "interval": "1h", "idle": 5})
	require.Zero(t, p.idle)
}
