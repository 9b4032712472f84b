// internal/sheet/navigator.go
package sheet

import "sort"

// Navigator answers nearest-cel and nearest-keyframe queries.
// It caches sorted index lists and rebuilds them when the sheet version moves.
type Navigator struct {
	sheet     *Sheet
	built     bool
	version   uint64
	cels      []int
	keyframes []int
}

// NewNavigator creates a navigator over s.
func NewNavigator(s *Sheet) *Navigator {
	return &Navigator{sheet: s}
}

func (n *Navigator) refresh() {
	if n.built && n.version == n.sheet.version {
		return
	}
	n.cels = n.cels[:0]
	n.keyframes = n.keyframes[:0]
	for i, f := range n.sheet.frames {
		if f.HasCel {
			n.cels = append(n.cels, i)
		}
		if f.Keyframe {
			n.keyframes = append(n.keyframes, i)
		}
	}
	n.version = n.sheet.version
	n.built = true
}

// NextWithCel returns the nearest frame after from that has a cel.
func (n *Navigator) NextWithCel(from int) (int, bool) {
	n.refresh()
	return next(n.cels, from)
}

// PrevWithCel returns the nearest frame before from that has a cel.
func (n *Navigator) PrevWithCel(from int) (int, bool) {
	n.refresh()
	return prev(n.cels, from)
}

// NextKeyframe returns the nearest keyframe after from.
func (n *Navigator) NextKeyframe(from int) (int, bool) {
	n.refresh()
	return next(n.keyframes, from)
}

// PrevKeyframe returns the nearest keyframe before from.
func (n *Navigator) PrevKeyframe(from int) (int, bool) {
	n.refresh()
	return prev(n.keyframes, from)
}

func next(sorted []int, from int) (int, bool) {
	if len(sorted) == 0 || from >= sorted[len(sorted)-1] {
		return -1, false
	}
	i := sort.SearchInts(sorted, from+1)
	if i < len(sorted) {
		return sorted[i], true
	}
	return -1, false
}

func prev(sorted []int, from int) (int, bool) {
	i := sort.SearchInts(sorted, from) // first index with value >= from
	if i > 0 {
		return sorted[i-1], true
	}
	return -1, false
}
