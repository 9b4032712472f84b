// internal/tui/drawing.go
package tui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/xsheet/internal/export"
	"github.com/bethropolis/xsheet/internal/theme"
	"github.com/bethropolis/xsheet/internal/types"
)

// holdMark fills the cel column of a frame that repeats an earlier cel.
const holdMark = "|"

// SheetView is what DrawSheet needs to render one screen of the sheet.
type SheetView struct {
	Shots       []export.Shot
	Top         int // First frame shown
	Selected    int
	ColumnWidth int
	LayerName   func(types.LayerID) string // Optional
}

// DrawSheet draws frames top to bottom, one row each, leaving the last
// statusHeight lines alone.
func DrawSheet(screen tcell.Screen, view SheetView, activeTheme *theme.Theme, statusHeight int) {
	if activeTheme == nil {
		activeTheme = &theme.SheetDark
	}
	width, height := screen.Size()
	viewHeight := height - statusHeight
	if viewHeight <= 0 || width <= 0 {
		return
	}

	defaultStyle := activeTheme.GetStyle(theme.StyleDefault)
	gutterWidth := len(strconv.Itoa(len(view.Shots))) + 2 // Number, key mark, space
	columnWidth := view.ColumnWidth
	if columnWidth <= 0 || gutterWidth+columnWidth > width {
		columnWidth = width - gutterWidth
	}

	for row := 0; row < viewHeight; row++ {
		for x := 0; x < width; x++ {
			screen.SetContent(x, row, ' ', nil, defaultStyle)
		}
		i := view.Top + row
		if i < 0 || i >= len(view.Shots) {
			continue
		}
		shot := view.Shots[i]

		numberStyle := activeTheme.GetStyle(theme.StyleFrameNumber)
		mark := " "
		if shot.Keyframe {
			numberStyle = activeTheme.GetStyle(theme.StyleKeyframe)
			mark = "*"
		}
		number := fmt.Sprintf("%*d%s ", gutterWidth-2, shot.Frame+1, mark)
		drawString(screen, 0, row, gutterWidth, number, numberStyle)

		if columnWidth <= 0 {
			continue
		}
		text, style := cellText(shot, view.LayerName, activeTheme)
		if i == view.Selected {
			style = activeTheme.GetStyle(theme.StyleSelection)
		}
		for x := gutterWidth; x < gutterWidth+columnWidth; x++ {
			screen.SetContent(x, row, ' ', nil, style)
		}
		drawString(screen, gutterWidth, row, columnWidth, text, style)
	}
}

func cellText(shot export.Shot, name func(types.LayerID) string, t *theme.Theme) (string, tcell.Style) {
	switch {
	case shot.Blank:
		return "", t.GetStyle(theme.StyleBlank)
	case shot.Held:
		return holdMark, t.GetStyle(theme.StyleHold)
	}
	label := string(shot.Layer)
	if name != nil {
		if n := name(shot.Layer); n != "" {
			label = n
		}
	}
	return label, t.GetStyle(theme.StyleCel)
}

// drawString writes s from x, clipped to maxWidth screen cells.
func drawString(screen tcell.Screen, x, y, maxWidth int, s string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(s)
	used := 0
	for gr.Next() {
		w := gr.Width()
		if used+w > maxWidth {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x+used, y, runes[0], runes[1:], style)
		}
		used += w
	}
	return used
}

// ScrollTo returns the top frame that keeps selected inside a window of
// height rows, moving as little as possible from top.
func ScrollTo(top, selected, height, frames int) int {
	if height <= 0 || frames <= 0 {
		return 0
	}
	if selected < top {
		top = selected
	}
	if selected >= top+height {
		top = selected - height + 1
	}
	if maxTop := frames - height; top > maxTop {
		top = maxTop
	}
	if top < 0 {
		top = 0
	}
	return top
}
