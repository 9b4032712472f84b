package session

import "github.com/bethropolis/xsheet/internal/types"

// Len returns the number of frames.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sheet.Len()
}

// Frame returns a snapshot of frame i.
func (s *Session) Frame(i int) (types.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sheet.Frame(i)
}

// LayerAt returns the layer bound to frame i; exporters use it to find
// what to render for each frame.
func (s *Session) LayerAt(i int) (types.LayerID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sheet.LayerAt(i)
}

func (s *Session) NextWithCel(from int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.NextWithCel(from)
}

func (s *Session) PrevWithCel(from int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.PrevWithCel(from)
}

func (s *Session) NextKeyframe(from int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.NextKeyframe(from)
}

func (s *Session) PrevKeyframe(from int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.PrevKeyframe(from)
}

// State exports the full sheet for persistence.
func (s *Session) State() types.SheetState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sheet.State()
}

// Version changes whenever the sheet content changes. It restarts when a
// new sheet is loaded.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sheet.Version()
}

func (s *Session) FrameRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sheet.FrameRate()
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// Frames returns snapshots of frames [from, to), clamped to the sheet.
func (s *Session) Frames(from, to int) []types.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if from < 0 {
		from = 0
	}
	if to > s.sheet.Len() {
		to = s.sheet.Len()
	}
	if from >= to {
		return nil
	}
	out := make([]types.Frame, 0, to-from)
	for i := from; i < to; i++ {
		f, _ := s.sheet.Frame(i)
		out = append(out, f)
	}
	return out
}
