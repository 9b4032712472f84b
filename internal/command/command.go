// Package command defines reversible structural mutations of an exposure sheet.
package command

import (
	"errors"
	"fmt"

	"github.com/bethropolis/xsheet/internal/host"
	"github.com/bethropolis/xsheet/internal/sheet"
	"github.com/bethropolis/xsheet/internal/types"
)

var (
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrNothingToRemove    = errors.New("frame has no cel to remove")
	ErrLayerMissing       = errors.New("layer no longer exists in the document")
)

// Kind identifies the mutation a Command performs.
type Kind int

const (
	AddCel Kind = iota
	CreateCel
	RemoveCel
	ToggleKeyframe
	SetKeyframe
	InsertFrame
	DeleteFrame
	PasteFrame
)

var kindNames = [...]string{
	AddCel:         "AddCel",
	CreateCel:      "CreateCel",
	RemoveCel:      "RemoveCel",
	ToggleKeyframe: "ToggleKeyframe",
	SetKeyframe:    "SetKeyframe",
	InsertFrame:    "InsertFrame",
	DeleteFrame:    "DeleteFrame",
	PasteFrame:     "PasteFrame",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Env is what a Command runs against. Host may be nil, in which case no
// layer is created and layer existence is not checked.
type Env struct {
	Sheet *sheet.Sheet
	Host  host.LayerHost
}

// Command is one reversible mutation. Fields captured on the first Apply
// (the prior frame, the resolved append position, a created layer) are
// reused verbatim by every later Revert and re-Apply.
type Command struct {
	Kind  Kind
	Frame int
	Layer types.LayerID
	Value bool   // SetKeyframe target value
	Name  string // CreateCel layer name

	appendFrame bool
	applied     bool
	prior       types.Frame
}

// Apply runs the forward effect. On failure nothing has changed and the
// error matches ErrPreconditionFailed as well as the underlying cause.
func (c *Command) Apply(env *Env) error {
	if err := c.forward(env); err != nil {
		return fmt.Errorf("%s: %w: %w", c, ErrPreconditionFailed, err)
	}
	c.applied = true
	return nil
}

// Revert runs the reverse effect of a previously applied command.
func (c *Command) Revert(env *Env) error {
	if !c.applied {
		return fmt.Errorf("%s: %w: command was never applied", c, ErrPreconditionFailed)
	}
	if err := c.reverse(env); err != nil {
		return fmt.Errorf("undo %s: %w: %w", c, ErrPreconditionFailed, err)
	}
	return nil
}

func (c *Command) forward(env *Env) error {
	s := env.Sheet
	switch c.Kind {
	case AddCel:
		if err := requireLayer(env, c.Layer); err != nil {
			return err
		}
		return s.SetCel(c.Frame, c.Layer)

	case CreateCel:
		if c.Layer != types.NoLayer {
			// Redo: the layer created the first time is still held.
			if err := requireLayer(env, c.Layer); err != nil {
				return err
			}
			return s.SetCel(c.Frame, c.Layer)
		}
		f, err := s.Frame(c.Frame)
		if err != nil {
			return err
		}
		if f.HasCel {
			return fmt.Errorf("frame %d holds %q: %w", c.Frame, f.Layer, sheet.ErrAlreadyOccupied)
		}
		if env.Host == nil {
			return fmt.Errorf("no document to create a layer in: %w", ErrLayerMissing)
		}
		id, err := env.Host.CreateLayer(c.Name)
		if err != nil {
			return fmt.Errorf("create layer: %w", err)
		}
		if err := s.SetCel(c.Frame, id); err != nil {
			// Never bound, nothing else references it.
			_ = env.Host.DeleteLayer(id)
			return err
		}
		c.Layer = id
		return nil

	case RemoveCel:
		f, err := s.Frame(c.Frame)
		if err != nil {
			return err
		}
		if !f.HasCel {
			return fmt.Errorf("frame %d: %w", c.Frame, ErrNothingToRemove)
		}
		if c.applied && f.Layer != c.prior.Layer {
			return fmt.Errorf("frame %d holds %q, expected %q: %w", c.Frame, f.Layer, c.prior.Layer, sheet.ErrAlreadyOccupied)
		}
		c.prior = f
		_, _, err = s.ClearCel(c.Frame)
		return err

	case ToggleKeyframe:
		f, err := s.Frame(c.Frame)
		if err != nil {
			return err
		}
		c.prior = f
		return s.SetKeyframe(c.Frame, !f.Keyframe)

	case SetKeyframe:
		f, err := s.Frame(c.Frame)
		if err != nil {
			return err
		}
		c.prior = f
		return s.SetKeyframe(c.Frame, c.Value)

	case InsertFrame:
		if c.appendFrame && !c.applied {
			c.Frame = s.Len()
		}
		return s.InsertFrame(c.Frame)

	case DeleteFrame:
		f, err := s.DeleteFrame(c.Frame)
		if err != nil {
			return err
		}
		c.prior = f
		return nil

	case PasteFrame:
		if c.prior.HasCel {
			if err := requireLayer(env, c.prior.Layer); err != nil {
				return err
			}
		}
		return s.RestoreFrame(c.Frame, c.prior)
	}
	return fmt.Errorf("unknown command kind %d", int(c.Kind))
}

func (c *Command) reverse(env *Env) error {
	s := env.Sheet
	switch c.Kind {
	case AddCel, CreateCel:
		layer, ok := s.LayerAt(c.Frame)
		if !ok || layer != c.Layer {
			return fmt.Errorf("frame %d no longer holds %q: %w", c.Frame, c.Layer, ErrNothingToRemove)
		}
		_, _, err := s.ClearCel(c.Frame)
		return err

	case RemoveCel:
		if err := requireLayer(env, c.prior.Layer); err != nil {
			return err
		}
		return s.SetCel(c.Frame, c.prior.Layer)

	case ToggleKeyframe, SetKeyframe:
		return s.SetKeyframe(c.Frame, c.prior.Keyframe)

	case InsertFrame, PasteFrame:
		f, err := s.Frame(c.Frame)
		if err != nil {
			return err
		}
		if f != c.inserted() {
			return fmt.Errorf("inserted frame %d has changed since", c.Frame)
		}
		_, err = s.DeleteFrame(c.Frame)
		return err

	case DeleteFrame:
		if c.prior.HasCel {
			if err := requireLayer(env, c.prior.Layer); err != nil {
				return err
			}
		}
		return s.RestoreFrame(c.Frame, c.prior)
	}
	return fmt.Errorf("unknown command kind %d", int(c.Kind))
}

func requireLayer(env *Env, layer types.LayerID) error {
	if layer == types.NoLayer {
		return sheet.ErrInvalidLayer
	}
	if env.Host != nil && !env.Host.HasLayer(layer) {
		return fmt.Errorf("layer %q: %w", layer, ErrLayerMissing)
	}
	return nil
}

// Layers lists the layer handles this command binds or unbinds.
func (c *Command) Layers() []types.LayerID {
	switch c.Kind {
	case AddCel, CreateCel:
		if c.Layer != types.NoLayer {
			return []types.LayerID{c.Layer}
		}
	case RemoveCel, DeleteFrame, PasteFrame:
		if c.prior.HasCel {
			return []types.LayerID{c.prior.Layer}
		}
	}
	return nil
}

// inserted is the frame an InsertFrame or PasteFrame puts in place.
func (c *Command) inserted() types.Frame {
	if c.Kind == PasteFrame {
		return c.prior
	}
	return types.Frame{}
}

// Applied reports whether the forward effect has run at least once.
func (c *Command) Applied() bool {
	return c.applied
}

// Prior returns the frame state captured by the first forward effect.
func (c *Command) Prior() types.Frame {
	return c.prior
}

func (c *Command) String() string {
	switch c.Kind {
	case AddCel, CreateCel:
		if c.Layer != types.NoLayer {
			return fmt.Sprintf("%s(%d, %s)", c.Kind, c.Frame, c.Layer)
		}
	case SetKeyframe:
		return fmt.Sprintf("%s(%d, %v)", c.Kind, c.Frame, c.Value)
	case InsertFrame:
		if c.appendFrame && !c.applied {
			return fmt.Sprintf("%s(end)", c.Kind)
		}
	}
	return fmt.Sprintf("%s(%d)", c.Kind, c.Frame)
}
