// internal/sheet/binding.go
package sheet

import (
	"fmt"

	"github.com/bethropolis/xsheet/internal/types"
)

// Binding tracks which frame each bound layer belongs to.
// It is injective and holds an entry only for frames that have a cel.
type Binding struct {
	frames map[types.LayerID]int
}

func newBinding() *Binding {
	return &Binding{frames: make(map[types.LayerID]int)}
}

// FrameOf returns the frame a layer is bound to.
func (b *Binding) FrameOf(layer types.LayerID) (int, bool) {
	i, ok := b.frames[layer]
	return i, ok
}

// Len returns the number of bound layers.
func (b *Binding) Len() int {
	return len(b.frames)
}

// check validates a bind without applying it.
func (b *Binding) check(frame int, layer types.LayerID) error {
	if layer == types.NoLayer {
		return ErrInvalidLayer
	}
	if at, ok := b.frames[layer]; ok && at != frame {
		return fmt.Errorf("layer %q bound at frame %d: %w", layer, at, ErrDuplicateLayer)
	}
	return nil
}

func (b *Binding) bind(frame int, layer types.LayerID) error {
	if err := b.check(frame, layer); err != nil {
		return err
	}
	b.frames[layer] = frame
	return nil
}

func (b *Binding) unbind(layer types.LayerID) {
	delete(b.frames, layer)
}

// shift moves every binding at index >= from by delta.
func (b *Binding) shift(from, delta int) {
	for layer, i := range b.frames {
		if i >= from {
			b.frames[layer] = i + delta
		}
	}
}
