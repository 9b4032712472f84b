// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleMessage   tcell.Style // Temporary messages
	StyleCommand   tcell.Style // Command line input
	MessageTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StyleCommand:   tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar is the bottom line of the sheet view.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	filePath   string
	isModified bool
	frame      int
	frames     int
	frameRate  float64
	canUndo    bool
	canRedo    bool
	command    string // Non-empty while the command line is open
	commandOn  bool

	tempMessage     string
	tempMessageTime time.Time
	now             func() time.Time
}

func New(config Config) *StatusBar {
	return &StatusBar{
		config: config,
		now:    time.Now,
	}
}

// SetConfig swaps styles, as when the theme changes.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetFileInfo updates the file path and modified flag.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetSheetInfo updates the selected frame and sheet totals.
func (sb *StatusBar) SetSheetInfo(frame, frames int, frameRate float64) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.frame = frame
	sb.frames = frames
	sb.frameRate = frameRate
}

func (sb *StatusBar) SetHistoryInfo(canUndo, canRedo bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.canUndo = canUndo
	sb.canRedo = canRedo
}

// SetCommandLine shows the command being typed; open=false hides it.
func (sb *StatusBar) SetCommandLine(text string, open bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.command = text
	sb.commandOn = open
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Text returns what the bar shows right now and the style to show it in.
func (sb *StatusBar) Text() (string, tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.commandOn {
		return ":" + sb.command, sb.config.StyleCommand
	}
	active := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if active {
		return sb.tempMessage, sb.config.StyleMessage
	}
	if !sb.tempMessageTime.IsZero() {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	return sb.defaultTextLocked(), sb.config.StyleDefault
}

func (sb *StatusBar) defaultTextLocked() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	modifiedIndicator := ""
	if sb.isModified {
		modifiedIndicator = " [Modified]"
	}
	history := ""
	if sb.canUndo {
		history += " u"
	}
	if sb.canRedo {
		history += " r"
	}
	frame := "-"
	if sb.frames > 0 {
		frame = fmt.Sprintf("%d", sb.frame+1)
	}
	return fmt.Sprintf("%s%s -- Frame %s/%d @ %g fps%s", fPath, modifiedIndicator, frame, sb.frames, sb.frameRate, history)
}

// Draw renders the status bar on the last screen line.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1
	text, style := sb.Text()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}
