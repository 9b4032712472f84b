package command

import "github.com/bethropolis/xsheet/internal/types"

// NewAddCel binds an existing document layer to frame i.
func NewAddCel(i int, layer types.LayerID) *Command {
	return &Command{Kind: AddCel, Frame: i, Layer: layer}
}

// NewCreateCel asks the document for a new empty layer and binds it to frame i.
func NewCreateCel(i int, name string) *Command {
	return &Command{Kind: CreateCel, Frame: i, Name: name}
}

// NewRemoveCel unbinds the cel on frame i. The layer itself stays in the
// document until no history entry can bring it back.
func NewRemoveCel(i int) *Command {
	return &Command{Kind: RemoveCel, Frame: i}
}

func NewToggleKeyframe(i int) *Command {
	return &Command{Kind: ToggleKeyframe, Frame: i}
}

func NewSetKeyframe(i int, value bool) *Command {
	return &Command{Kind: SetKeyframe, Frame: i, Value: value}
}

// NewInsertFrame inserts an empty frame at position at.
func NewInsertFrame(at int) *Command {
	return &Command{Kind: InsertFrame, Frame: at}
}

// NewAppendFrame inserts an empty frame after the current last frame.
// The position is fixed when the command first runs.
func NewAppendFrame() *Command {
	return &Command{Kind: InsertFrame, appendFrame: true}
}

func NewDeleteFrame(at int) *Command {
	return &Command{Kind: DeleteFrame, Frame: at}
}

// NewPasteFrame inserts a frame holding f at position at. A cel in f must
// name a layer no other frame is bound to, as after cutting the frame.
func NewPasteFrame(at int, f types.Frame) *Command {
	return &Command{Kind: PasteFrame, Frame: at, prior: f}
}
