// internal/types/frame.go
package types

// LayerID is the host document's handle for a drawable layer.
// The empty LayerID means "no layer".
type LayerID string

// NoLayer is the zero LayerID.
const NoLayer LayerID = ""

// Frame is a snapshot of one exposure sheet slot.
// HasCel is always equivalent to Layer != NoLayer.
type Frame struct {
	HasCel   bool
	Keyframe bool
	Layer    LayerID
}

// Empty reports whether the frame carries neither a cel nor a keyframe mark.
func (f Frame) Empty() bool {
	return !f.HasCel && !f.Keyframe
}
