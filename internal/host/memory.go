// internal/host/memory.go
package host

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/bethropolis/xsheet/internal/logger"
	"github.com/bethropolis/xsheet/internal/types"
)

// Layer is one entry of the in-memory document's layer stack.
type Layer struct {
	ID   types.LayerID
	Name string
}

// Memory is a LayerHost keeping an ordered layer stack in memory.
// Index 0 is the bottom of the stack.
type Memory struct {
	mu     sync.RWMutex
	layers []Layer
}

// NewMemory creates an empty in-memory document.
func NewMemory() *Memory {
	return &Memory{}
}

var _ LayerHost = (*Memory)(nil)

// CreateLayer appends a new empty layer on top of the stack.
func (m *Memory) CreateLayer(name string) (types.LayerID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := types.LayerID(uuid.NewString())
	if name == "" {
		name = fmt.Sprintf("cel %d", len(m.layers)+1)
	}
	m.layers = append(m.layers, Layer{ID: id, Name: name})
	logger.DebugTagf("host", "Created layer %s (%q)", id, name)
	return id, nil
}

// AddLayer registers an existing handle, as when loading a document.
func (m *Memory) AddLayer(id types.LayerID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexLocked(id) >= 0 {
		return fmt.Errorf("layer %q already present", id)
	}
	m.layers = append(m.layers, Layer{ID: id, Name: name})
	return nil
}

func (m *Memory) DeleteLayer(id types.LayerID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("delete %q: %w", id, ErrUnknownLayer)
	}
	m.layers = append(m.layers[:i], m.layers[i+1:]...)
	logger.DebugTagf("host", "Deleted layer %s", id)
	return nil
}

func (m *Memory) HasLayer(id types.LayerID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.indexLocked(id) >= 0
}

func (m *Memory) LayerIndex(id types.LayerID) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.indexLocked(id)
	return i, i >= 0
}

// MoveLayer moves a layer to index, clamped to the stack bounds.
func (m *Memory) MoveLayer(id types.LayerID, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	from := m.indexLocked(id)
	if from < 0 {
		return fmt.Errorf("move %q: %w", id, ErrUnknownLayer)
	}
	if index < 0 {
		index = 0
	}
	if index >= len(m.layers) {
		index = len(m.layers) - 1
	}
	if from == index {
		return nil
	}
	l := m.layers[from]
	m.layers = append(m.layers[:from], m.layers[from+1:]...)
	m.layers = append(m.layers, Layer{})
	copy(m.layers[index+1:], m.layers[index:])
	m.layers[index] = l
	return nil
}

// Layers returns a copy of the stack, bottom first.
func (m *Memory) Layers() []Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Layer, len(m.layers))
	copy(out, m.layers)
	return out
}

// Name returns a layer's display name.
func (m *Memory) Name(id types.LayerID) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexLocked(id); i >= 0 {
		return m.layers[i].Name
	}
	return ""
}

func (m *Memory) indexLocked(id types.LayerID) int {
	for i, l := range m.layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}
