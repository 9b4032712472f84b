// Package session owns one open exposure sheet together with its history
// and serializes every read and mutation behind a single lock.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bethropolis/xsheet/internal/command"
	"github.com/bethropolis/xsheet/internal/core/history"
	"github.com/bethropolis/xsheet/internal/event"
	"github.com/bethropolis/xsheet/internal/host"
	"github.com/bethropolis/xsheet/internal/logger"
	"github.com/bethropolis/xsheet/internal/sheet"
	"github.com/bethropolis/xsheet/internal/types"
)

var ErrClosed = errors.New("session is closed")

// Options configure a new Session.
type Options struct {
	Frames     int
	FrameRate  float64
	MaxHistory int
	Host       host.LayerHost // Optional
	Events     *event.Manager // Optional
}

// Session binds a sheet, its navigator and its history into one unit.
type Session struct {
	mu         sync.Mutex
	sheet      *sheet.Sheet
	nav        *sheet.Navigator
	env        *command.Env
	history    *history.Manager
	host       host.LayerHost
	events     *event.Manager
	maxHistory int
	retained   map[types.LayerID]struct{}
	closed     bool
}

// New creates a session with opts.Frames empty frames.
func New(opts Options) (*Session, error) {
	s := sheet.New(opts.Frames)
	if opts.FrameRate > 0 {
		if err := s.SetFrameRate(opts.FrameRate); err != nil {
			return nil, err
		}
	}
	sess := &Session{
		host:       opts.Host,
		events:     opts.Events,
		maxHistory: opts.MaxHistory,
	}
	sess.install(s)
	return sess, nil
}

// install replaces the sheet and starts a fresh history. Caller holds mu
// or has exclusive access.
func (s *Session) install(sh *sheet.Sheet) {
	s.sheet = sh
	s.nav = sheet.NewNavigator(sh)
	s.env = &command.Env{Sheet: sh, Host: s.host}
	s.history = history.NewManager(s.env, s.maxHistory)
	s.history.OnDiscard(s.reclaim)
}

// Execute runs cmd and records it for undo.
func (s *Session) Execute(cmd *command.Command) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	err := s.history.Execute(cmd)
	if err == nil {
		s.syncLayerOrder()
	}
	change := s.changeLocked(cmd, event.ChangeExecute)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.dispatch(event.TypeSheetChanged, change)
	return nil
}

// Undo reverts the last executed command.
func (s *Session) Undo() error {
	return s.step(event.ChangeUndo, (*history.Manager).Undo)
}

// Redo reapplies the last undone command.
func (s *Session) Redo() error {
	return s.step(event.ChangeRedo, (*history.Manager).Redo)
}

func (s *Session) step(op event.ChangeOp, fn func(*history.Manager) (*command.Command, error)) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	cmd, err := fn(s.history)
	if err == nil {
		s.syncLayerOrder()
	}
	change := s.changeLocked(cmd, op)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.dispatch(event.TypeSheetChanged, change)
	return nil
}

// SetFrameRate changes the advisory playback rate. It is not an undoable edit.
func (s *Session) SetFrameRate(rate float64) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	err := s.sheet.SetFrameRate(rate)
	change := s.changeLocked(nil, event.ChangeFrameRate)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.dispatch(event.TypeSheetChanged, change)
	return nil
}

// Load replaces the sheet with state and drops all history.
func (s *Session) Load(state types.SheetState) error {
	sh, err := sheet.FromState(state)
	if err != nil {
		return fmt.Errorf("load sheet: %w", err)
	}
	if state.FrameRate <= 0 {
		_ = sh.SetFrameRate(s.FrameRate())
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	old := s.history
	s.install(sh)
	// reclaim reads s.sheet and s.history, so layers the new sheet binds survive.
	old.Clear()
	s.syncLayerOrder()
	frames := sh.Len()
	s.mu.Unlock()

	logger.InfoTagf("session", "Loaded sheet with %d frames", frames)
	s.dispatch(event.TypeSheetLoaded, event.SheetLoadedData{Frames: frames})
	return nil
}

// Close discards history and reclaims layers nothing can restore anymore.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.retained = nil
	s.history.Clear()
	s.closed = true
	return nil
}

// Retain keeps layers alive while something outside the history, such as the
// cut buffer, can still rebind them. It replaces the previous retained set.
// Layers that drop out of it are reclaimed if nothing else refers to them.
func (s *Session) Retain(layers ...types.LayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	released := s.retained
	s.retained = make(map[types.LayerID]struct{}, len(layers))
	for _, l := range layers {
		if l != "" {
			s.retained[l] = struct{}{}
		}
	}
	var gone []types.LayerID
	for l := range released {
		if _, ok := s.retained[l]; !ok {
			gone = append(gone, l)
		}
	}
	s.reclaimLayers(gone, "release")
}

// reclaim deletes document layers referenced by discarded commands once
// neither the sheet, a retained reference nor any remaining history entry
// refers to them. Called by the history manager under s.mu.
func (s *Session) reclaim(dropped []*command.Command) {
	for _, cmd := range dropped {
		s.reclaimLayers(cmd.Layers(), cmd.String())
	}
}

// reclaimLayers deletes the unreferenced layers among candidates. Caller holds mu.
func (s *Session) reclaimLayers(candidates []types.LayerID, reason string) {
	if s.host == nil || len(candidates) == 0 {
		return
	}
	live := s.history.Layers()
	for _, l := range s.sheet.Layers() {
		live[l] = struct{}{}
	}
	for l := range s.retained {
		live[l] = struct{}{}
	}
	for _, l := range candidates {
		if _, ok := live[l]; ok {
			continue
		}
		if !s.host.HasLayer(l) {
			continue
		}
		if err := s.host.DeleteLayer(l); err != nil {
			logger.Warnf("Session: Failed to reclaim layer %s: %v", l, err)
			continue
		}
		live[l] = struct{}{} // Do not try twice.
		logger.DebugTagf("session", "Reclaimed layer %s after %s", l, reason)
	}
}

// syncLayerOrder stacks bound layers in frame order, bottom first.
func (s *Session) syncLayerOrder() {
	if s.host == nil {
		return
	}
	for i, l := range s.sheet.Layers() {
		if at, ok := s.host.LayerIndex(l); ok && at == i {
			continue
		}
		if err := s.host.MoveLayer(l, i); err != nil {
			logger.Warnf("Session: Failed to move layer %s to %d: %v", l, i, err)
		}
	}
}

func (s *Session) changeLocked(cmd *command.Command, op event.ChangeOp) event.SheetChangedData {
	data := event.SheetChangedData{
		Op:      op,
		Frames:  s.sheet.Len(),
		Version: s.sheet.Version(),
		CanUndo: s.history.CanUndo(),
		CanRedo: s.history.CanRedo(),
	}
	if cmd != nil {
		data.Command = cmd.String()
		data.Frame = cmd.Frame
	}
	return data
}

func (s *Session) dispatch(t event.Type, data interface{}) {
	if s.events != nil {
		s.events.Dispatch(t, data)
	}
}
