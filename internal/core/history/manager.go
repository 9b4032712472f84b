// Package history provides undo/redo of sheet commands.
package history

import (
	"errors"
	"fmt"

	"github.com/bethropolis/xsheet/internal/command"
	"github.com/bethropolis/xsheet/internal/logger"
	"github.com/bethropolis/xsheet/internal/types"
)

const DefaultMaxHistory = 100

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DiscardFunc receives commands that left both stacks for good: evicted
// from the bottom of the undo stack, dropped from the redo stack by a new
// execution, or cleared.
type DiscardFunc func(dropped []*command.Command)

// Manager sequences executed commands for undo and redo.
// It is not safe for concurrent use; callers hold the session lock.
type Manager struct {
	env        *command.Env
	undo       []*command.Command
	redo       []*command.Command
	maxHistory int
	onDiscard  DiscardFunc
}

// NewManager creates a history manager running commands against env.
func NewManager(env *command.Env, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		env:        env,
		undo:       make([]*command.Command, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// OnDiscard installs the hook called for commands leaving history.
func (m *Manager) OnDiscard(fn DiscardFunc) {
	m.onDiscard = fn
}

// Execute applies cmd and records it. A failed command is not recorded and
// both stacks stay as they were.
func (m *Manager) Execute(cmd *command.Command) error {
	if cmd == nil {
		return fmt.Errorf("%w: nil command", command.ErrPreconditionFailed)
	}
	if cmd.Applied() {
		return fmt.Errorf("%w: %s was already executed", command.ErrPreconditionFailed, cmd)
	}
	if err := cmd.Apply(m.env); err != nil {
		logger.DebugTagf("history", "Rejected %s: %v", cmd, err)
		return err
	}

	dropped := m.redo
	m.redo = nil
	m.undo = append(m.undo, cmd)

	if over := len(m.undo) - m.maxHistory; over > 0 {
		evicted := make([]*command.Command, over)
		copy(evicted, m.undo[:over])
		m.undo = append(m.undo[:0], m.undo[over:]...)
		dropped = append(dropped, evicted...)
	}

	logger.DebugTagf("history", "Recorded %s. Undo: %d, Redo: %d", cmd, len(m.undo), len(m.redo))
	m.discard(dropped)
	return nil
}

// Undo reverts the most recent command and moves it to the redo stack.
func (m *Manager) Undo() (*command.Command, error) {
	if len(m.undo) == 0 {
		logger.DebugTagf("history", "Nothing to undo.")
		return nil, ErrNothingToUndo
	}

	cmd := m.undo[len(m.undo)-1]
	if err := cmd.Revert(m.env); err != nil {
		logger.Errorf("History: Error undoing %s: %v", cmd, err)
		return nil, fmt.Errorf("undo failed: %w", err)
	}
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, cmd)

	logger.DebugTagf("history", "Undid %s. Undo: %d, Redo: %d", cmd, len(m.undo), len(m.redo))
	return cmd, nil
}

// Redo reapplies the most recently undone command.
func (m *Manager) Redo() (*command.Command, error) {
	if len(m.redo) == 0 {
		logger.DebugTagf("history", "Nothing to redo.")
		return nil, ErrNothingToRedo
	}

	cmd := m.redo[len(m.redo)-1]
	if err := cmd.Apply(m.env); err != nil {
		logger.Errorf("History: Error redoing %s: %v", cmd, err)
		return nil, fmt.Errorf("redo failed: %w", err)
	}
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, cmd)

	logger.DebugTagf("history", "Redid %s. Undo: %d, Redo: %d", cmd, len(m.undo), len(m.redo))
	return cmd, nil
}

// Clear drops both stacks. Call this when the sheet is replaced or closed.
func (m *Manager) Clear() {
	dropped := make([]*command.Command, 0, len(m.undo)+len(m.redo))
	dropped = append(dropped, m.undo...)
	dropped = append(dropped, m.redo...)
	m.undo = m.undo[:0]
	m.redo = nil
	logger.DebugTagf("history", "Cleared %d commands.", len(dropped))
	m.discard(dropped)
}

func (m *Manager) discard(dropped []*command.Command) {
	if len(dropped) == 0 || m.onDiscard == nil {
		return
	}
	m.onDiscard(dropped)
}

func (m *Manager) CanUndo() bool {
	return len(m.undo) > 0
}

func (m *Manager) CanRedo() bool {
	return len(m.redo) > 0
}

func (m *Manager) UndoDepth() int {
	return len(m.undo)
}

func (m *Manager) RedoDepth() int {
	return len(m.redo)
}

// Applied returns the undo stack, oldest first.
func (m *Manager) Applied() []*command.Command {
	out := make([]*command.Command, len(m.undo))
	copy(out, m.undo)
	return out
}

// Layers returns every layer referenced by a command still in history.
func (m *Manager) Layers() map[types.LayerID]struct{} {
	refs := make(map[types.LayerID]struct{})
	for _, stack := range [][]*command.Command{m.undo, m.redo} {
		for _, cmd := range stack {
			for _, l := range cmd.Layers() {
				refs[l] = struct{}{}
			}
		}
	}
	return refs
}
