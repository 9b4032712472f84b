package autosave

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/xsheet/internal/event"
	"github.com/bethropolis/xsheet/internal/logger"
	"github.com/bethropolis/xsheet/internal/plugin"
	"github.com/bethropolis/xsheet/internal/utils"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
	defaultName     = "autosave"
)

// AutoSave periodically snapshots the sheet into the store when it changed.
type AutoSave struct {
	api plugin.SheetAPI

	mutex       sync.RWMutex // Protects the fields below
	enabled     bool
	interval    time.Duration
	idle        time.Duration // Save this long after the last edit; 0 disables
	name        string
	lastVersion uint64 // Sheet version at the last save or load

	stopChan  chan struct{}
	wg        sync.WaitGroup
	debouncer utils.Debouncer
}

// New creates a new instance of the AutoSave plugin.
func New() plugin.Plugin {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
		name:     defaultName,
	}
}

func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads configuration and starts the save loop if enabled.
func (p *AutoSave) Initialize(api plugin.SheetAPI) error {
	p.api = api
	pluginName := p.Name()

	p.mutex.Lock()
	if enabledVal, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	}

	if intervalVal, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		if strVal, isStr := intervalVal.(string); isStr {
			parsedInterval, err := time.ParseDuration(strVal)
			if err != nil {
				logger.Warnf("%s: Invalid format for 'interval' config ('%s'): %v. Using default (%v)", pluginName, strVal, err, p.interval)
			} else if parsedInterval <= 0 {
				logger.Warnf("%s: 'interval' config must be positive ('%s'). Using default (%v)", pluginName, strVal, p.interval)
			} else {
				p.interval = parsedInterval
			}
		} else {
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", pluginName, intervalVal, p.interval)
		}
	}

	if idleVal, ok := api.GetPluginConfigValue(pluginName, "idle"); ok {
		strVal, isStr := idleVal.(string)
		parsedIdle, err := time.ParseDuration(strVal)
		if !isStr || err != nil || parsedIdle < 0 {
			logger.Warnf("%s: Invalid 'idle' config (%v), idle saves stay off", pluginName, idleVal)
		} else {
			p.idle = parsedIdle
		}
	}

	if nameVal, ok := api.GetPluginConfigValue(pluginName, "name"); ok {
		if strVal, isStr := nameVal.(string); isStr && strVal != "" {
			p.name = strVal
		} else {
			logger.Warnf("%s: Invalid 'name' config (%v), using default (%q)", pluginName, nameVal, p.name)
		}
	}

	p.lastVersion = api.SheetVersion()
	isEnabled := p.enabled
	interval := p.interval
	idle := p.idle
	p.mutex.Unlock()

	api.SubscribeEvent(event.TypeSheetLoaded, p.handleLoaded)
	if isEnabled && idle > 0 {
		api.SubscribeEvent(event.TypeSheetChanged, p.handleChanged)
	}
	if err := api.RegisterCommand("autosave", p.executeSaveNow); err != nil {
		return fmt.Errorf("failed to register 'autosave' command: %w", err)
	}

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", pluginName, isEnabled, interval)

	if isEnabled {
		p.stopChan = make(chan struct{})
		p.wg.Add(1)
		go p.saverLoop(interval)
	}
	return nil
}

// Shutdown stops the save loop, writing one last snapshot if needed.
func (p *AutoSave) Shutdown() error {
	if p.stopChan == nil {
		return nil
	}
	p.debouncer.Stop()
	close(p.stopChan)
	p.wg.Wait()
	p.stopChan = nil
	p.saveIfChanged()
	return nil
}

func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.saveIfChanged()
		case <-p.stopChan:
			logger.Debugf("%s: Received stop signal, exiting saver loop.", p.Name())
			return
		}
	}
}

// saveIfChanged writes a snapshot when the sheet changed since the last
// save or load. It reports whether a snapshot was written.
func (p *AutoSave) saveIfChanged() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.enabled || p.api == nil {
		return false
	}
	version := p.api.SheetVersion()
	if version == p.lastVersion {
		logger.Debugf("%s: Sheet unchanged, skipping auto-save.", p.Name())
		return false
	}
	if err := p.api.SaveSnapshot(p.name); err != nil {
		logger.Errorf("%s: Auto-save to '%s' failed: %v", p.Name(), p.name, err)
		return false
	}
	p.lastVersion = version
	logger.Infof("%s: Auto-saved sheet as '%s'", p.Name(), p.name)
	return true
}

func (p *AutoSave) handleLoaded(e event.Event) bool {
	version := p.api.SheetVersion()
	p.mutex.Lock()
	p.lastVersion = version
	p.mutex.Unlock()
	return false
}

// handleChanged schedules a save once editing pauses for the idle delay.
func (p *AutoSave) handleChanged(e event.Event) bool {
	p.mutex.RLock()
	idle := p.idle
	p.mutex.RUnlock()
	p.debouncer.Debounce(idle, func() { p.saveIfChanged() })
	return false
}

// executeSaveNow backs the :autosave command, saving regardless of changes.
func (p *AutoSave) executeSaveNow(args []string) error {
	p.mutex.Lock()
	name := p.name
	p.mutex.Unlock()
	if len(args) > 0 {
		name = args[0]
	}
	if err := p.api.SaveSnapshot(name); err != nil {
		return err
	}
	p.api.SetStatusMessage("Saved snapshot '%s'", name)
	return nil
}
