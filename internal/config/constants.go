package config

import "time"

// Base application details
const AppName = "xsheet"
const ConfigDirName = "xsheet"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "xsheet.log"
const StoreDirName = "sheets"
const SheetFileExt = ".xsheet.yaml"

// UI Layout
const StatusBarHeight = 1
const DefaultFrameColumnWidth = 6
const MinFrameColumnWidth = 4

// Status Bar
const MessageTimeout = 4 * time.Second

// Sheet defaults
const DefaultInitialFrames = 24
const DefaultFrameRate = 24.0
const DefaultMaxHistory = 100

const SystemClipboard = true
