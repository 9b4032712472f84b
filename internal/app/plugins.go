package app

import (
	"fmt"

	"github.com/bethropolis/xsheet/internal/logger"
	"github.com/bethropolis/xsheet/internal/plugin"

	"github.com/bethropolis/xsheet/plugins/autosave"
	"github.com/bethropolis/xsheet/plugins/stats"
)

// registerPlugins registers all built-in plugins with the manager.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	pluginConstructors := []func() plugin.Plugin{
		stats.New,
		autosave.New,
	}

	var finalErr error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		pluginName := p.Name()

		logger.Debugf("Registering plugin: %s", pluginName)
		if err := pm.Register(p); err != nil {
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", pluginName, err)
			logger.Errorf("%v", wrappedErr)
			if finalErr == nil {
				finalErr = wrappedErr
			}
		}
	}
	return finalErr
}
