package clipboard

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	sysclip "github.com/atotto/clipboard"
	"gopkg.in/yaml.v3"

	"github.com/bethropolis/xsheet/internal/logger"
	"github.com/bethropolis/xsheet/internal/types"
)

// header marks clipboard text written by this package.
const header = "# xsheet frame\n"

var ErrEmpty = errors.New("clipboard is empty")

// System is the subset of the OS clipboard the manager uses.
type System interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

type osClipboard struct{}

func (osClipboard) WriteAll(text string) error { return sysclip.WriteAll(text) }
func (osClipboard) ReadAll() (string, error)   { return sysclip.ReadAll() }

// Manager holds the last copied frame. With a system clipboard it also
// mirrors the frame there as YAML, so it survives between sessions.
type Manager struct {
	mu       sync.Mutex
	register *types.FrameState
	system   System
}

// NewManager creates a clipboard manager. useSystem is ignored where the
// platform has no clipboard.
func NewManager(useSystem bool) *Manager {
	m := &Manager{}
	if useSystem && !sysclip.Unsupported {
		m.system = osClipboard{}
	}
	return m
}

// NewManagerWith uses sys as the system clipboard.
func NewManagerWith(sys System) *Manager {
	return &Manager{system: sys}
}

// Copy stores f. A failing system clipboard only costs the mirror copy.
func (m *Manager) Copy(f types.Frame) {
	fs := types.FrameStateOf(f)
	m.mu.Lock()
	m.register = &fs
	sys := m.system
	m.mu.Unlock()

	if sys == nil {
		return
	}
	data, err := yaml.Marshal(fs)
	if err != nil {
		logger.Warnf("ClipboardManager: Cannot encode frame: %v", err)
		return
	}
	if err := sys.WriteAll(header + string(data)); err != nil {
		logger.Warnf("ClipboardManager: System clipboard write failed: %v", err)
		return
	}
	logger.DebugTagf("clipboard", "Copied frame to system clipboard")
}

// Paste returns the copied frame. The system clipboard wins when it holds
// a frame written by Copy; anything else there is ignored.
func (m *Manager) Paste() (types.Frame, error) {
	m.mu.Lock()
	sys := m.system
	register := m.register
	m.mu.Unlock()

	if sys != nil {
		f, err := readSystem(sys)
		if err == nil {
			return f, nil
		}
		logger.DebugTagf("clipboard", "System clipboard unusable: %v", err)
	}
	if register == nil {
		return types.Frame{}, ErrEmpty
	}
	return register.Frame(), nil
}

func readSystem(sys System) (types.Frame, error) {
	text, err := sys.ReadAll()
	if err != nil {
		return types.Frame{}, err
	}
	if !strings.HasPrefix(text, header) {
		return types.Frame{}, errors.New("no frame on system clipboard")
	}
	var fs types.FrameState
	if err := yaml.Unmarshal([]byte(strings.TrimPrefix(text, header)), &fs); err != nil {
		return types.Frame{}, fmt.Errorf("decode frame: %w", err)
	}
	if fs.HasCel != (fs.Layer != types.NoLayer) {
		return types.Frame{}, errors.New("inconsistent frame on system clipboard")
	}
	return fs.Frame(), nil
}
