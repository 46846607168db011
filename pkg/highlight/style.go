package highlight

import "github.com/yaklabco/pyhl/pkg/syntax"

// Style is a presentation attribute set for a token kind.
// Colors are free-form strings (hex "#rrggbb", ANSI numbers or names) interpreted by the renderer.
type Style struct {
	Foreground string `json:"fg,omitempty" yaml:"fg,omitempty"`
	Background string `json:"bg,omitempty" yaml:"bg,omitempty"`
	Bold       bool   `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic     bool   `json:"italic,omitempty" yaml:"italic,omitempty"`
	Underline  bool   `json:"underline,omitempty" yaml:"underline,omitempty"`
}

// IsZero reports whether the style carries no attributes.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Theme maps token kinds to styles.
type Theme interface {
	StyleFor(kind syntax.Kind) Style
}

// Palette is a Theme backed by a map. Missing kinds get the zero Style.
type Palette map[syntax.Kind]Style

// StyleFor implements Theme.
func (p Palette) StyleFor(kind syntax.Kind) Style {
	return p[kind]
}

// ThemeFunc adapts a function to the Theme interface.
type ThemeFunc func(kind syntax.Kind) Style

// StyleFor implements Theme.
func (f ThemeFunc) StyleFor(kind syntax.Kind) Style {
	return f(kind)
}

// StyleInstruction tags a byte range of a line with a style.
type StyleInstruction struct {
	Start int         `json:"start"`
	End   int         `json:"end"`
	Kind  syntax.Kind `json:"kind"`
	Style Style       `json:"style"`
}

// Instructions converts tokens into style instructions.
// Tokens whose kind maps to the zero Style are omitted.
func Instructions(tokens []syntax.Token, theme Theme) []StyleInstruction {
	if theme == nil {
		return nil
	}

	out := make([]StyleInstruction, 0, len(tokens))
	for _, tok := range tokens {
		style := theme.StyleFor(tok.Kind)
		if style.IsZero() {
			continue
		}
		out = append(out, StyleInstruction{Start: tok.Start, End: tok.End, Kind: tok.Kind, Style: style})
	}
	return out
}
