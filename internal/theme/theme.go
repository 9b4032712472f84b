// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/xsheet/internal/logger"
)

// Style names the sheet view and status bar look up.
const (
	StyleDefault       = "Default"
	StyleFrameNumber   = "FrameNumber"
	StyleKeyframe      = "FrameNumber.Key"
	StyleCel           = "Cel"
	StyleHold          = "Hold"
	StyleBlank         = "Blank"
	StyleSelection     = "Selection"
	StyleStatusBar     = "StatusBar"
	StyleStatusMessage = "StatusBar.Message"
	StyleCommandLine   = "StatusBar.Command"
)

type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the named style, falling back to the part before the
// first dot and then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// SheetDark is the built-in theme.
var SheetDark Theme

func init() {
	background := tcell.NewHexColor(0x2a2f38)
	foreground := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	blue := tcell.NewHexColor(0x61afef)

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)

	SheetDark = Theme{
		Name:   "Sheet Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:       baseStyle,
			StyleFrameNumber:   baseStyle.Foreground(muted),
			StyleKeyframe:      baseStyle.Foreground(orange).Bold(true),
			StyleCel:           baseStyle.Foreground(green),
			StyleHold:          baseStyle.Foreground(muted),
			StyleBlank:         baseStyle.Foreground(muted).Dim(true),
			StyleSelection:     baseStyle.Reverse(true),
			StyleStatusBar:     tcell.StyleDefault.Background(background).Foreground(foreground),
			StyleStatusMessage: tcell.StyleDefault.Background(background).Foreground(yellow).Bold(true),
			StyleCommandLine:   tcell.StyleDefault.Background(background).Foreground(blue).Bold(true),
		},
	}
}
