// Package logger wraps log/slog with printf helpers and source/tag filtering.
package logger

import (
	"log/slog"
	"strings"
)

// Config holds all settings for the logger.
type Config struct {
	// LogLevel is the minimum level to log: debug, info, warn or error.
	LogLevel string `toml:"level"`

	// LogFilePath is the output file. Empty discards output, "-" means stderr.
	LogFilePath string `toml:"file"`

	// Filters. A Disabled list always wins over its Enabled counterpart.
	// Packages are matched against the immediate directory of the caller,
	// files against the caller's base file name.
	EnabledTags      []string `toml:"enabled_tags"`
	DisabledTags     []string `toml:"disabled_tags"`
	EnabledPackages  []string `toml:"enabled_packages"`
	DisabledPackages []string `toml:"disabled_packages"`
	EnabledFiles     []string `toml:"enabled_files"`
	DisabledFiles    []string `toml:"disabled_files"`

	level    slog.Level
	tags     filterSet
	packages filterSet
	files    filterSet
}

// filterSet is a pair of allow/deny sets. A nil set means "no constraint".
type filterSet struct {
	allow map[string]struct{}
	deny  map[string]struct{}
}

// NewConfig creates a Config with default values.
func NewConfig() Config {
	return Config{LogLevel: "info"}
}

// ParseLevel maps a level name onto slog; unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// process turns the string lists into lookup sets.
func (c *Config) process() {
	c.level = ParseLevel(c.LogLevel)
	c.tags = filterSet{allow: sliceToSet(c.EnabledTags), deny: sliceToSet(c.DisabledTags)}
	c.packages = filterSet{allow: sliceToSet(c.EnabledPackages), deny: sliceToSet(c.DisabledPackages)}
	c.files = filterSet{allow: sliceToSet(c.EnabledFiles), deny: sliceToSet(c.DisabledFiles)}
}

// admits reports whether key passes the set. Empty keys only fail when an
// allow list exists.
func (f filterSet) admits(key string) bool {
	key = strings.ToLower(key)
	if key != "" && f.deny != nil {
		if _, found := f.deny[key]; found {
			return false
		}
	}
	if f.allow != nil {
		_, found := f.allow[key]
		return found
	}
	return true
}

func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
