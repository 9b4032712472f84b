// Package export turns a sheet into a per-frame render plan and drives an
// external renderer over it.
package export

import (
	"github.com/bethropolis/xsheet/internal/types"
)

// Shot is what one output image shows.
type Shot struct {
	Frame    int           `yaml:"frame"`
	Layer    types.LayerID `yaml:"layer,omitempty"`
	Source   int           `yaml:"source"`          // Frame the layer is bound to, -1 when blank
	Held     bool          `yaml:"held,omitempty"`  // Repeats an earlier cel
	Blank    bool          `yaml:"blank,omitempty"` // Nothing exposed yet
	Keyframe bool          `yaml:"key,omitempty"`
}

// Plan resolves every frame of state to the layer it exposes. An empty
// frame holds the most recent cel; empty frames before the first cel are
// blank.
func Plan(state types.SheetState) []Shot {
	shots := make([]Shot, len(state.Frames))
	var current types.LayerID
	source := -1
	for i, f := range state.Frames {
		shot := Shot{Frame: i, Keyframe: f.Keyframe}
		switch {
		case f.HasCel:
			current, source = f.Layer, i
			shot.Layer, shot.Source = f.Layer, i
		case source >= 0:
			shot.Layer, shot.Source, shot.Held = current, source, true
		default:
			shot.Source, shot.Blank = -1, true
		}
		shots[i] = shot
	}
	return shots
}

// Summary counts what a plan exposes.
type Summary struct {
	Frames    int
	Cels      int
	Holds     int
	Blanks    int
	Keyframes int
}

func Summarize(shots []Shot) Summary {
	s := Summary{Frames: len(shots)}
	for _, shot := range shots {
		switch {
		case shot.Blank:
			s.Blanks++
		case shot.Held:
			s.Holds++
		default:
			s.Cels++
		}
		if shot.Keyframe {
			s.Keyframes++
		}
	}
	return s
}
