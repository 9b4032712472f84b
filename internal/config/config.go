// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/xsheet/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config                     `toml:"logger"`
	Sheet   SheetConfig                       `toml:"sheet"`
	UI      UIConfig                          `toml:"ui"`
	Store   StoreConfig                       `toml:"store"`
	Export  ExportConfig                      `toml:"export"`
	Plugins map[string]map[string]interface{} `toml:"plugins"` // [plugins.<name>] tables, free-form

	undecoded []string
}

// SheetConfig sets up new sheets and their history.
type SheetConfig struct {
	InitialFrames int     `toml:"initial_frames"`
	FrameRate     float64 `toml:"frame_rate"`
	MaxHistory    int     `toml:"max_history"`
}

type UIConfig struct {
	SystemClipboard  bool   `toml:"system_clipboard"`
	FrameColumnWidth int    `toml:"frame_column_width"`
	StatusBarHeight  int    `toml:"status_bar_height"`
	Theme            string `toml:"theme"` // Path to a TOML theme file; empty uses the built-in theme
}

// StoreConfig locates the snapshot store used by autosave and named saves.
type StoreConfig struct {
	Dir string `toml:"dir"`
}

type ExportConfig struct {
	Workers int    `toml:"workers"` // 0 means one per CPU
	Pattern string `toml:"pattern"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	logCfg := logger.NewConfig()
	logCfg.LogFilePath = defaultLogPath()
	return &Config{
		Logger: logCfg,
		Sheet: SheetConfig{
			InitialFrames: DefaultInitialFrames,
			FrameRate:     DefaultFrameRate,
			MaxHistory:    DefaultMaxHistory,
		},
		UI: UIConfig{
			SystemClipboard:  SystemClipboard,
			FrameColumnWidth: DefaultFrameColumnWidth,
			StatusBarHeight:  StatusBarHeight,
		},
		Store: StoreConfig{
			Dir: defaultStoreDir(),
		},
		Export: ExportConfig{
			Pattern: "frame_%04d.png",
		},
		Plugins: make(map[string]map[string]interface{}),
	}
}

func defaultLogPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, ConfigDirName, DefaultLogFileName)
	}
	return DefaultLogFileName
}

func defaultStoreDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, ConfigDirName, StoreDirName)
	}
	return filepath.Join("."+AppName, StoreDirName)
}

// DefaultConfigPath returns the config file location used when none is given.
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
}

// loadFromFile decodes a TOML file over cfg. A missing file is not an error.
func loadFromFile(cfg *Config, filePath string) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		// Logged later; the logger is not up while config loads.
		cfg.undecoded = append(cfg.undecoded, fmt.Sprint(undecoded))
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Sheet.InitialFrames < 0 {
		c.Sheet.InitialFrames = defaults.Sheet.InitialFrames
	}
	if c.Sheet.FrameRate <= 0 {
		c.Sheet.FrameRate = defaults.Sheet.FrameRate
	}
	if c.Sheet.MaxHistory <= 0 {
		c.Sheet.MaxHistory = defaults.Sheet.MaxHistory
	}
	if c.UI.FrameColumnWidth < MinFrameColumnWidth {
		c.UI.FrameColumnWidth = defaults.UI.FrameColumnWidth
	}
	if c.UI.StatusBarHeight <= 0 {
		c.UI.StatusBarHeight = defaults.UI.StatusBarHeight
	}
	if c.Store.Dir == "" {
		c.Store.Dir = defaults.Store.Dir
	}
	if c.Export.Workers < 0 {
		c.Export.Workers = 0
	}
	if c.Export.Pattern == "" {
		c.Export.Pattern = defaults.Export.Pattern
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Plugins == nil {
		c.Plugins = make(map[string]map[string]interface{})
	}
}

// Load builds a configuration from defaults, the TOML file at path (or the
// default location when path is empty), and flag overrides, in that order.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultConfigPath()
	}
	var err error
	if effectivePath != "" {
		err = loadFromFile(cfg, effectivePath)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// PluginValue looks up key in the [plugins.<name>] table.
func (c *Config) PluginValue(pluginName, key string) (interface{}, bool) {
	table, ok := c.Plugins[pluginName]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}

// LogUndecoded reports unknown config keys once the logger is running.
func (c *Config) LogUndecoded() {
	for _, keys := range c.undecoded {
		logger.Warnf("Config: Unrecognized keys: %s", keys)
	}
}
