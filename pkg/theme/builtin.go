package theme

import (
	"github.com/yaklabco/pyhl/pkg/highlight"
	"github.com/yaklabco/pyhl/pkg/syntax"
)

// DefaultName is the theme used when none is configured.
const DefaultName = "light"

// tokenPalette is shared by the built-in themes; they differ in surface colors only.
func tokenPalette() highlight.Palette {
	return highlight.Palette{
		syntax.KindKeyword:    {Foreground: "#FF00FF"},
		syntax.KindString:     {Foreground: "#FFD700"},
		syntax.KindNumber:     {Foreground: "#7B68EE"},
		syntax.KindBoolean:    {Foreground: "#00FF00"},
		syntax.KindCollection: {Foreground: "#FFA500"},
		syntax.KindBracket:    {Foreground: "#FFA500"},
		syntax.KindComment:    {Foreground: "#888888", Italic: true},
		syntax.KindBuiltin:    {Foreground: "#0000FF"},
		syntax.KindOperator:   {Foreground: "#FF69B4"},
	}
}

// Builtins returns fresh copies of the built-in themes in menu order.
func Builtins() []*Theme {
	surfaces := []struct {
		name, bg, fg, gutterBG, gutterFG string
	}{
		{"Light", "#FFFFFF", "#000000", "#D3D3D3", "#000000"},
		{"Dark", "#1E1E1E", "#D4D4D4", "#2D2D2D", "#D4D4D4"},
		{"Monokai", "#272822", "#F8F8F2", "#3E3D32", "#F8F8F2"},
		{"Solarized Light", "#FDF6E3", "#657B83", "#EEE8D5", "#657B83"},
		{"Solarized Dark", "#002B36", "#839496", "#073642", "#839496"},
		{"Dracula", "#282A36", "#F8F8F2", "#44475A", "#F8F8F2"},
		{"Nord", "#2E3440", "#D8DEE9", "#3B4252", "#D8DEE9"},
	}

	out := make([]*Theme, len(surfaces))
	for i, s := range surfaces {
		out[i] = &Theme{
			Name:             s.name,
			Background:       s.bg,
			Foreground:       s.fg,
			GutterBackground: s.gutterBG,
			GutterForeground: s.gutterFG,
			Tokens:           tokenPalette(),
		}
	}
	return out
}
