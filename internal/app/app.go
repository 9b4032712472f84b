// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/xsheet/internal/config"
	"github.com/bethropolis/xsheet/internal/core/clipboard"
	"github.com/bethropolis/xsheet/internal/event"
	"github.com/bethropolis/xsheet/internal/host"
	"github.com/bethropolis/xsheet/internal/input"
	"github.com/bethropolis/xsheet/internal/logger"
	"github.com/bethropolis/xsheet/internal/modehandler"
	"github.com/bethropolis/xsheet/internal/plugin"
	"github.com/bethropolis/xsheet/internal/session"
	"github.com/bethropolis/xsheet/internal/statusbar"
	"github.com/bethropolis/xsheet/internal/store"
	"github.com/bethropolis/xsheet/internal/theme"
	"github.com/bethropolis/xsheet/internal/tui"
)

// Options configure a new App.
type Options struct {
	FilePath string
	Config   *config.Config
	Screen   tcell.Screen // Optional; defaults to the terminal
}

// App encapsulates the core components and main loop of the sheet editor.
type App struct {
	tuiManager    *tui.TUI
	session       *session.Session
	document      *host.Memory
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	sheetAPI      plugin.SheetAPI
	snapshots     *store.Store // Nil when the store directory is unusable
	config        *config.Config

	mu           sync.Mutex
	filePath     string
	savedVersion uint64
	unsaved      bool // Set when the sheet came from somewhere other than filePath
	activeTheme  *theme.Theme
	top          int // First frame row on screen

	ctx           context.Context
	cancel        context.CancelFunc
	closeOnce     sync.Once
	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp creates and initializes a new application instance.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	var tuiManager *tui.TUI
	var err error
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen)
	} else {
		tuiManager, err = tui.New()
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	document := host.NewMemory()
	sess, err := session.New(session.Options{
		Frames:     cfg.Sheet.InitialFrames,
		FrameRate:  cfg.Sheet.FrameRate,
		MaxHistory: cfg.Sheet.MaxHistory,
		Host:       document,
		Events:     eventManager,
	})
	if err != nil {
		tuiManager.Close()
		return nil, fmt.Errorf("session initialization failed: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	quitChan := make(chan struct{})
	a := &App{
		tuiManager:    tuiManager,
		session:       sess,
		document:      document,
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		config:        cfg,
		ctx:           ctx,
		cancel:        cancel,
		quit:          quitChan,
		redrawRequest: make(chan struct{}, 1),
	}

	a.setTheme(loadTheme(cfg.UI.Theme))
	a.statusBar = statusbar.New(statusBarConfig(a.activeTheme))

	if a.snapshots, err = store.Open(cfg.Store.Dir); err != nil {
		logger.Warnf("App: Snapshot store unavailable: %v", err)
	}

	a.modeHandler = modehandler.New(modehandler.Config{
		Session:        sess,
		Clipboard:      clipboard.NewManager(cfg.UI.SystemClipboard),
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      a.statusBar,
		QuitSignal:     quitChan,
		Save:           a.save,
		IsModified:     a.isModified,
	})

	a.sheetAPI = newSheetAPI(a)

	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	registerAppCommands(a)
	a.subscribeEvents()

	if opts.FilePath != "" {
		if err := a.openFile(opts.FilePath); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				a.Close()
				return nil, err
			}
			logger.Infof("App: '%s' does not exist yet, starting a new sheet", opts.FilePath)
			a.filePath = opts.FilePath
		}
	}

	a.pluginManager.InitializePlugins(a.sheetAPI)
	return a, nil
}

// Run starts the application's main event and drawing loops. It returns
// once the user quits; the App is closed afterwards.
func (a *App) Run() error {
	defer a.Close()

	events := make(chan tcell.Event, 16)
	go a.pollEvents(events)

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("xsheet - : for commands | Ctrl+S Save | q Quit")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.isModified() {
				logger.Warnf("App: Exited with unsaved changes.")
			}
			logger.Infof("Exiting application.")
			return nil
		case ev := <-events:
			if a.handleEvent(ev) {
				a.requestRedraw()
			}
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// pollEvents feeds terminal events to the main loop until the screen closes.
func (a *App) pollEvents(out chan<- tcell.Event) {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-a.ctx.Done():
			return
		}
	}
}

// handleEvent reports whether the screen needs a redraw.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		return true
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(ev)
	}
	return false
}

// Close shuts plugins down, reclaims unreferenced layers and releases the
// terminal. It is safe to call more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.cancel()
		a.pluginManager.ShutdownPlugins()
		if err := a.session.Close(); err != nil {
			logger.Warnf("App: Closing session: %v", err)
		}
		a.tuiManager.Close()
	})
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

// SetStatusMessage shows a temporary status bar message.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
	a.requestRedraw()
}

func (a *App) GetTheme() *theme.Theme {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.activeTheme
}

func (a *App) setTheme(t *theme.Theme) {
	a.mu.Lock()
	a.activeTheme = t
	a.mu.Unlock()
	a.tuiManager.SetStyle(t.GetStyle(theme.StyleDefault))
	if a.statusBar != nil {
		a.statusBar.SetConfig(statusBarConfig(t))
	}
	a.requestRedraw()
}

// loadTheme reads the configured theme file, falling back to the built-in theme.
func loadTheme(path string) *theme.Theme {
	if path == "" {
		return &theme.SheetDark
	}
	t, err := theme.LoadThemeFromFile(path)
	if err != nil {
		logger.Warnf("App: Using built-in theme: %v", err)
		return &theme.SheetDark
	}
	return t
}

func statusBarConfig(t *theme.Theme) statusbar.Config {
	return statusbar.Config{
		StyleDefault:   t.GetStyle(theme.StyleStatusBar),
		StyleMessage:   t.GetStyle(theme.StyleStatusMessage),
		StyleCommand:   t.GetStyle(theme.StyleCommandLine),
		MessageTimeout: config.MessageTimeout,
	}
}
