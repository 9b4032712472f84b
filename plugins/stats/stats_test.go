package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bethropolis/xsheet/internal/command"
	"github.com/bethropolis/xsheet/internal/export"
	"github.com/bethropolis/xsheet/internal/plugin/plugintest"
)

func TestStatsCommand(t *testing.T) {
	api, err := plugintest.New(4)
	require.NoError(t, err)
	p := New()
	require.NoError(t, p.Initialize(api))

	require.NoError(t, api.Execute(command.NewAddCel(1, "a")))
	require.NoError(t, api.Execute(command.NewToggleKeyframe(1)))
	require.NoError(t, api.Run("stats"))
	require.Equal(t, "Frames: 4, Cels: 1, Holds: 2, Blank: 1, Keys: 1, 0.17s @ 24 fps", api.LastStatus())

	require.Error(t, p.Initialize(api), "command is already registered")
}

func TestReportWithoutRate(t *testing.T) {
	require.Equal(t, "Frames: 0, Cels: 0, Holds: 0, Blank: 0, Keys: 0", Report(0, export.Summary{}))
}
