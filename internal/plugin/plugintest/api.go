// Package plugintest provides a SheetAPI backed by a real session for
// plugin tests.
package plugintest

import (
	"fmt"
	"sync"

	"github.com/bethropolis/xsheet/internal/command"
	"github.com/bethropolis/xsheet/internal/event"
	"github.com/bethropolis/xsheet/internal/plugin"
	"github.com/bethropolis/xsheet/internal/session"
	"github.com/bethropolis/xsheet/internal/types"
)

// API implements plugin.SheetAPI over a session.
type API struct {
	Session *session.Session
	Events  *event.Manager
	Config  map[string]map[string]interface{}

	mu        sync.Mutex
	commands  map[string]plugin.CommandFunc
	status    []string
	snapshots map[string]types.SheetState
	saves     int
	SaveErr   error // Returned by SaveSnapshot when set
}

var _ plugin.SheetAPI = (*API)(nil)

// New creates an API over a fresh session with frames empty frames.
func New(frames int) (*API, error) {
	events := event.NewManager()
	s, err := session.New(session.Options{Frames: frames, Events: events})
	if err != nil {
		return nil, err
	}
	return &API{
		Session:   s,
		Events:    events,
		Config:    make(map[string]map[string]interface{}),
		commands:  make(map[string]plugin.CommandFunc),
		snapshots: make(map[string]types.SheetState),
	}, nil
}

func (a *API) FrameCount() int                           { return a.Session.Len() }
func (a *API) GetFrame(i int) (types.Frame, error)       { return a.Session.Frame(i) }
func (a *API) SheetState() types.SheetState              { return a.Session.State() }
func (a *API) SheetVersion() uint64                      { return a.Session.Version() }
func (a *API) FrameRate() float64                        { return a.Session.FrameRate() }
func (a *API) Execute(cmd *command.Command) error        { return a.Session.Execute(cmd) }
func (a *API) DispatchEvent(t event.Type, d interface{}) { a.Events.Dispatch(t, d) }

func (a *API) SubscribeEvent(t event.Type, h event.Handler) {
	a.Events.Subscribe(t, h)
}

func (a *API) SaveSnapshot(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.SaveErr != nil {
		return a.SaveErr
	}
	a.snapshots[name] = a.Session.State()
	a.saves++
	return nil
}

func (a *API) RegisterCommand(name string, fn plugin.CommandFunc) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	a.commands[name] = fn
	return nil
}

func (a *API) SetStatusMessage(format string, args ...interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = append(a.status, fmt.Sprintf(format, args...))
}

func (a *API) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	v, ok := a.Config[pluginName][key]
	return v, ok
}

// Run invokes a registered command.
func (a *API) Run(name string, args ...string) error {
	a.mu.Lock()
	fn, ok := a.commands[name]
	a.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown command '%s'", name)
	}
	return fn(args)
}

// LastStatus returns the most recent status message.
func (a *API) LastStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.status) == 0 {
		return ""
	}
	return a.status[len(a.status)-1]
}

// Snapshot returns what SaveSnapshot stored under name.
func (a *API) Snapshot(name string) (types.SheetState, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.snapshots[name]
	return s, ok
}

// Saves counts successful SaveSnapshot calls.
func (a *API) Saves() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saves
}
