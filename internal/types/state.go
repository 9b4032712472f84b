// internal/types/state.go
package types

// StateVersion is the current persisted sheet schema version.
const StateVersion = 1

// FrameState is the persisted form of a frame: (hasCel, layerId-or-none, isKeyframe).
type FrameState struct {
	HasCel   bool    `yaml:"cel"`
	Layer    LayerID `yaml:"layer,omitempty"`
	Keyframe bool    `yaml:"key,omitempty"`
}

// SheetState is everything needed to rebuild a sheet.
type SheetState struct {
	Version   int          `yaml:"version"`
	FrameRate float64      `yaml:"frame_rate,omitempty"`
	Frames    []FrameState `yaml:"frames"`
}

// FrameStateOf converts a frame snapshot into its persisted form.
func FrameStateOf(f Frame) FrameState {
	return FrameState{HasCel: f.HasCel, Layer: f.Layer, Keyframe: f.Keyframe}
}

// Frame converts the persisted form back into a frame snapshot.
func (s FrameState) Frame() Frame {
	return Frame{HasCel: s.HasCel, Layer: s.Layer, Keyframe: s.Keyframe}
}
