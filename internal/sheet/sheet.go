// internal/sheet/sheet.go
package sheet

import (
	"fmt"

	"github.com/bethropolis/xsheet/internal/types"
)

// DefaultFrameRate is used when no rate was configured or persisted.
const DefaultFrameRate = 24.0

// Sheet is the exposure sheet: a dense, zero-based sequence of frames.
// It is not safe for concurrent use; the session serializes access.
type Sheet struct {
	frames    []types.Frame
	binding   *Binding
	frameRate float64
	version   uint64 // Bumped on every effective mutation
}

// New creates a sheet with n empty frames.
func New(n int) *Sheet {
	if n < 0 {
		n = 0
	}
	return &Sheet{
		frames:    make([]types.Frame, n),
		binding:   newBinding(),
		frameRate: DefaultFrameRate,
	}
}

// FromState rebuilds a sheet from its persisted form.
// The state must satisfy the same invariants the mutators enforce.
func FromState(state types.SheetState) (*Sheet, error) {
	s := New(len(state.Frames))
	if state.FrameRate > 0 {
		s.frameRate = state.FrameRate
	}
	for i, fs := range state.Frames {
		if fs.HasCel != (fs.Layer != types.NoLayer) {
			return nil, fmt.Errorf("frame %d: cel flag disagrees with layer %q: %w", i, fs.Layer, ErrInvalidLayer)
		}
		if fs.HasCel {
			if err := s.binding.bind(i, fs.Layer); err != nil {
				return nil, fmt.Errorf("frame %d: %w", i, err)
			}
		}
		s.frames[i] = fs.Frame()
	}
	return s, nil
}

// Len returns the number of frames.
func (s *Sheet) Len() int {
	return len(s.frames)
}

// Version changes whenever the sheet content changes.
func (s *Sheet) Version() uint64 {
	return s.version
}

func (s *Sheet) FrameRate() float64 {
	return s.frameRate
}

// SetFrameRate updates the advisory playback rate.
func (s *Sheet) SetFrameRate(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("frame rate %v: %w", rate, ErrInvalidRate)
	}
	if rate != s.frameRate {
		s.frameRate = rate
		s.version++
	}
	return nil
}

func (s *Sheet) checkIndex(i int) error {
	if i < 0 || i >= len(s.frames) {
		return fmt.Errorf("frame %d not in [0,%d): %w", i, len(s.frames), ErrOutOfRange)
	}
	return nil
}

// Frame returns a snapshot of frame i.
func (s *Sheet) Frame(i int) (types.Frame, error) {
	if err := s.checkIndex(i); err != nil {
		return types.Frame{}, err
	}
	return s.frames[i], nil
}

// LayerAt returns the layer bound to frame i, if any.
func (s *Sheet) LayerAt(i int) (types.LayerID, bool) {
	if i < 0 || i >= len(s.frames) || !s.frames[i].HasCel {
		return types.NoLayer, false
	}
	return s.frames[i].Layer, true
}

// FrameOf returns the frame a layer is bound to.
func (s *Sheet) FrameOf(layer types.LayerID) (int, bool) {
	return s.binding.FrameOf(layer)
}

// Layers returns the bound layers in frame order.
func (s *Sheet) Layers() []types.LayerID {
	layers := make([]types.LayerID, 0, s.binding.Len())
	for _, f := range s.frames {
		if f.HasCel {
			layers = append(layers, f.Layer)
		}
	}
	return layers
}

// SetCel binds layer to frame i.
func (s *Sheet) SetCel(i int, layer types.LayerID) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if s.frames[i].HasCel {
		return fmt.Errorf("frame %d holds %q: %w", i, s.frames[i].Layer, ErrAlreadyOccupied)
	}
	if err := s.binding.bind(i, layer); err != nil {
		return err
	}
	s.frames[i].HasCel = true
	s.frames[i].Layer = layer
	s.version++
	return nil
}

// ClearCel removes the cel from frame i. Clearing an empty frame is a no-op;
// the returned bool tells whether a layer was actually unbound.
func (s *Sheet) ClearCel(i int) (types.LayerID, bool, error) {
	if err := s.checkIndex(i); err != nil {
		return types.NoLayer, false, err
	}
	f := s.frames[i]
	if !f.HasCel {
		return types.NoLayer, false, nil
	}
	s.binding.unbind(f.Layer)
	s.frames[i].HasCel = false
	s.frames[i].Layer = types.NoLayer
	s.version++
	return f.Layer, true, nil
}

// SetKeyframe sets or unsets the keyframe mark on frame i.
func (s *Sheet) SetKeyframe(i int, value bool) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if s.frames[i].Keyframe != value {
		s.frames[i].Keyframe = value
		s.version++
	}
	return nil
}

// InsertFrame inserts an empty frame at position at, 0 <= at <= Len.
// Frames at or after at move up by one.
func (s *Sheet) InsertFrame(at int) error {
	return s.RestoreFrame(at, types.Frame{})
}

// RestoreFrame inserts a frame carrying the given cel and keyframe state.
// The layer is validated before anything moves.
func (s *Sheet) RestoreFrame(at int, f types.Frame) error {
	if at < 0 || at > len(s.frames) {
		return fmt.Errorf("insert position %d not in [0,%d]: %w", at, len(s.frames), ErrOutOfRange)
	}
	if f.HasCel != (f.Layer != types.NoLayer) {
		return fmt.Errorf("cel flag disagrees with layer %q: %w", f.Layer, ErrInvalidLayer)
	}
	if f.HasCel {
		// -1 never matches a bound index, so any existing binding conflicts.
		if err := s.binding.check(-1, f.Layer); err != nil {
			return err
		}
	}

	s.binding.shift(at, 1)
	s.frames = append(s.frames, types.Frame{})
	copy(s.frames[at+1:], s.frames[at:])
	s.frames[at] = f
	if f.HasCel {
		// Checked above; cannot fail.
		_ = s.binding.bind(at, f.Layer)
	}
	s.version++
	return nil
}

// DeleteFrame removes frame at and returns its prior state.
// Frames after at move down by one.
func (s *Sheet) DeleteFrame(at int) (types.Frame, error) {
	if err := s.checkIndex(at); err != nil {
		return types.Frame{}, err
	}
	removed := s.frames[at]
	if removed.HasCel {
		s.binding.unbind(removed.Layer)
	}
	s.frames = append(s.frames[:at], s.frames[at+1:]...)
	s.binding.shift(at+1, -1)
	s.version++
	return removed, nil
}

// State exports the sheet as its persisted tuple list.
func (s *Sheet) State() types.SheetState {
	state := types.SheetState{
		Version:   types.StateVersion,
		FrameRate: s.frameRate,
		Frames:    make([]types.FrameState, len(s.frames)),
	}
	for i, f := range s.frames {
		state.Frames[i] = types.FrameStateOf(f)
	}
	return state
}
