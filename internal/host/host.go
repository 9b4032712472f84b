// Package host describes the layer capabilities the sheet needs from the
// painting document that owns the real drawable layers.
package host

import (
	"errors"

	"github.com/bethropolis/xsheet/internal/types"
)

// ErrUnknownLayer is returned for handles the document does not hold.
var ErrUnknownLayer = errors.New("unknown layer")

// LayerHost is implemented by the host document.
// The sheet never inspects layer content; it only creates, deletes,
// locates and reorders layers by handle.
type LayerHost interface {
	CreateLayer(name string) (types.LayerID, error)
	DeleteLayer(id types.LayerID) error
	HasLayer(id types.LayerID) bool
	LayerIndex(id types.LayerID) (int, bool)
	MoveLayer(id types.LayerID, index int) error
}
