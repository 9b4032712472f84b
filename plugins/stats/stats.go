// plugins/stats/stats.go
package stats

import (
	"fmt"

	"github.com/bethropolis/xsheet/internal/export"
	"github.com/bethropolis/xsheet/internal/plugin"
)

// Ensure Stats implements plugin.Plugin
var _ plugin.Plugin = (*Stats)(nil)

// Stats reports what the sheet exposes: frames, cels, holds and keyframes.
type Stats struct {
	api plugin.SheetAPI
}

func New() plugin.Plugin {
	return &Stats{}
}

func (p *Stats) Name() string {
	return "stats"
}

// Initialize registers the :stats command.
func (p *Stats) Initialize(api plugin.SheetAPI) error {
	p.api = api
	if err := api.RegisterCommand("stats", p.executeStats); err != nil {
		return fmt.Errorf("failed to register 'stats' command: %w", err)
	}
	return nil
}

func (p *Stats) Shutdown() error {
	return nil
}

func (p *Stats) executeStats(args []string) error {
	if p.api == nil {
		return fmt.Errorf("stats plugin not initialized with API")
	}
	state := p.api.SheetState()
	p.api.SetStatusMessage("%s", Report(state.FrameRate, export.Summarize(export.Plan(state))))
	return nil
}

// Report formats a summary for the status line.
func Report(frameRate float64, s export.Summary) string {
	msg := fmt.Sprintf("Frames: %d, Cels: %d, Holds: %d, Blank: %d, Keys: %d", s.Frames, s.Cels, s.Holds, s.Blanks, s.Keyframes)
	if frameRate > 0 {
		msg += fmt.Sprintf(", %.2fs @ %g fps", float64(s.Frames)/frameRate, frameRate)
	}
	return msg
}
