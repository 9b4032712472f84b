package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[logger]
level = "debug"
enabled_tags = ["history"]

[sheet]
frame_rate = 12.0
max_history = 0

[ui]
frame_column_width = 8

[plugins.autosave]
enabled = true
interval = "30s"
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Logger.LogLevel)
	require.Equal(t, []string{"history"}, cfg.Logger.EnabledTags)
	require.Equal(t, 12.0, cfg.Sheet.FrameRate)
	require.Equal(t, DefaultInitialFrames, cfg.Sheet.InitialFrames)
	require.Equal(t, DefaultMaxHistory, cfg.Sheet.MaxHistory, "invalid values fall back to defaults")
	require.Equal(t, 8, cfg.UI.FrameColumnWidth)
	require.True(t, cfg.UI.SystemClipboard)

	v, ok := cfg.PluginValue("autosave", "interval")
	require.True(t, ok)
	require.Equal(t, "30s", v)
	v, ok = cfg.PluginValue("autosave", "enabled")
	require.True(t, ok)
	require.Equal(t, true, v)
	_, ok = cfg.PluginValue("stats", "x")
	require.False(t, ok)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"), nil)
	require.NoError(t, err)
	require.Equal(t, NewDefaultConfig().Sheet, cfg.Sheet)
	require.NotEmpty(t, cfg.Store.Dir)
}

func TestLoadReportsParseErrors(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[sheet\n"), nil)
	require.Error(t, err)
	require.NotNil(t, cfg)
}

func TestFlagsOverrideOnlyWhenSet(t *testing.T) {
	path := writeConfig(t, "[sheet]\nframe_rate = 12.0\ninitial_frames = 10\n[ui]\nsystem_clipboard = true\n")

	var flags Flags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.DefineFlags(fs)
	require.NoError(t, fs.Parse([]string{"--frames", "48", "--system-clipboard=false", "--log-tags", "history, session", "--store", "/tmp/sheets", "--theme", "paper.toml"}))

	cfg, err := Load(path, &flags)
	require.NoError(t, err)
	require.Equal(t, 48, cfg.Sheet.InitialFrames)
	require.Equal(t, 12.0, cfg.Sheet.FrameRate, "unset --fps keeps the file value")
	require.False(t, cfg.UI.SystemClipboard)
	require.Equal(t, []string{"history", "session"}, cfg.Logger.EnabledTags)
	require.Equal(t, "/tmp/sheets", cfg.Store.Dir)
	require.Equal(t, "paper.toml", cfg.UI.Theme)
}
