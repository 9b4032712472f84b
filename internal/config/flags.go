// internal/config/flags.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flags holds values parsed from command-line flags. Only flags the user
// actually set override the config file.
type Flags struct {
	fs *pflag.FlagSet

	ConfigFilePath  string
	LogLevel        string
	LogFilePath     string
	EnableTags      string
	DisableTags     string
	EnablePkgs      string
	DisablePkgs     string
	EnableFiles     string
	DisableFiles    string
	Frames          int
	FrameRate       float64
	MaxHistory      int
	StoreDir        string
	Workers         int
	SystemClipboard bool
	Theme           string
}

// DefineFlags registers the flags on fs.
func (f *Flags) DefineFlags(fs *pflag.FlagSet) {
	f.fs = fs
	fs.StringVarP(&f.ConfigFilePath, "config", "c", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file (use '-' for stderr)")
	fs.StringVar(&f.EnableTags, "log-tags", "", "Comma-separated list of tags to enable")
	fs.StringVar(&f.DisableTags, "log-disable-tags", "", "Comma-separated list of tags to disable")
	fs.StringVar(&f.EnablePkgs, "log-packages", "", "Comma-separated list of packages to enable")
	fs.StringVar(&f.DisablePkgs, "log-disable-packages", "", "Comma-separated list of packages to disable")
	fs.StringVar(&f.EnableFiles, "log-files", "", "Comma-separated list of files to enable")
	fs.StringVar(&f.DisableFiles, "log-disable-files", "", "Comma-separated list of files to disable")
	fs.IntVarP(&f.Frames, "frames", "n", DefaultInitialFrames, "Number of empty frames in a new sheet")
	fs.Float64Var(&f.FrameRate, "fps", DefaultFrameRate, "Frame rate of a new sheet")
	fs.IntVar(&f.MaxHistory, "max-history", DefaultMaxHistory, "Undo steps to keep")
	fs.StringVar(&f.StoreDir, "store", "", "Directory for named snapshots")
	fs.IntVar(&f.Workers, "workers", 0, "Parallel renders during export (0 = one per CPU)")
	fs.BoolVar(&f.SystemClipboard, "system-clipboard", SystemClipboard, "Use the system clipboard for copied frames")
	fs.StringVar(&f.Theme, "theme", "", "Path to a TOML theme file")
}

func (f *Flags) changed(name string) bool {
	if f.fs == nil {
		return false
	}
	fl := f.fs.Lookup(name)
	return fl != nil && fl.Changed
}

// ApplyOverrides updates cfg with the flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.changed("loglevel") && f.LogLevel != "" {
		cfg.Logger.LogLevel = f.LogLevel
	}
	if f.changed("logfile") {
		cfg.Logger.LogFilePath = f.LogFilePath
	}
	if f.changed("log-tags") {
		cfg.Logger.EnabledTags = splitCommaList(f.EnableTags)
	}
	if f.changed("log-disable-tags") {
		cfg.Logger.DisabledTags = splitCommaList(f.DisableTags)
	}
	if f.changed("log-packages") {
		cfg.Logger.EnabledPackages = splitCommaList(f.EnablePkgs)
	}
	if f.changed("log-disable-packages") {
		cfg.Logger.DisabledPackages = splitCommaList(f.DisablePkgs)
	}
	if f.changed("log-files") {
		cfg.Logger.EnabledFiles = splitCommaList(f.EnableFiles)
	}
	if f.changed("log-disable-files") {
		cfg.Logger.DisabledFiles = splitCommaList(f.DisableFiles)
	}
	if f.changed("frames") && f.Frames >= 0 {
		cfg.Sheet.InitialFrames = f.Frames
	}
	if f.changed("fps") && f.FrameRate > 0 {
		cfg.Sheet.FrameRate = f.FrameRate
	}
	if f.changed("max-history") && f.MaxHistory > 0 {
		cfg.Sheet.MaxHistory = f.MaxHistory
	}
	if f.changed("store") && f.StoreDir != "" {
		cfg.Store.Dir = f.StoreDir
	}
	if f.changed("workers") && f.Workers >= 0 {
		cfg.Export.Workers = f.Workers
	}
	if f.changed("system-clipboard") {
		cfg.UI.SystemClipboard = f.SystemClipboard
	}
	if f.changed("theme") {
		cfg.UI.Theme = f.Theme
	}
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
