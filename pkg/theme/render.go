package theme

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/yaklabco/pyhl/pkg/highlight"
	"github.com/yaklabco/pyhl/pkg/syntax"
)

// RenderOptions controls terminal rendering.
type RenderOptions struct {
	// Color enables ANSI styling. Callers decide this with pretty.IsColorEnabled.
	Color bool

	// LineNumbers prefixes each line with a gutter.
	LineNumbers bool

	// Background paints the theme's surface colors behind the text.
	Background bool
}

// Renderer turns style instructions into styled terminal text.
type Renderer struct {
	theme *Theme
	opts  RenderOptions

	base   lipgloss.Style
	gutter lipgloss.Style
	kinds  map[syntax.Kind]lipgloss.Style
}

// NewRenderer creates a renderer for w. The color profile is forced from opts.Color
// rather than detected, so output is the same whether or not w is a terminal.
func NewRenderer(w io.Writer, t *Theme, opts RenderOptions) *Renderer {
	lr := lipgloss.NewRenderer(w)
	if opts.Color {
		lr.SetColorProfile(termenv.TrueColor)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}

	r := &Renderer{
		theme:  t,
		opts:   opts,
		base:   lr.NewStyle(),
		gutter: lr.NewStyle().Foreground(lipgloss.Color(t.GutterForeground)),
		kinds:  make(map[syntax.Kind]lipgloss.Style, len(t.Tokens)),
	}
	if opts.Background {
		r.base = r.base.Background(lipgloss.Color(t.Background)).Foreground(lipgloss.Color(t.Foreground))
		r.gutter = r.gutter.Background(lipgloss.Color(t.GutterBackground))
	}

	for kind, style := range t.Tokens {
		r.kinds[kind] = r.lipglossStyle(style)
	}
	return r
}

// lipglossStyle layers a token style over the base style.
func (r *Renderer) lipglossStyle(s highlight.Style) lipgloss.Style {
	ls := r.base
	if s.Foreground != "" {
		ls = ls.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background != "" {
		ls = ls.Background(lipgloss.Color(s.Background))
	}
	return ls.Bold(s.Bold).Italic(s.Italic).Underline(s.Underline)
}

// Theme returns the theme being rendered.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// RenderLine styles the byte ranges of line named by instructions.
// Bytes outside every instruction use the base style.
func (r *Renderer) RenderLine(line string, instructions []highlight.StyleInstruction) string {
	if !r.opts.Color {
		return line
	}

	var sb strings.Builder
	pos := 0
	for _, in := range instructions {
		if in.Start < pos || in.End > len(line) || in.Start >= in.End {
			continue
		}
		if in.Start > pos {
			sb.WriteString(r.plain(line[pos:in.Start]))
		}
		style, ok := r.kinds[in.Kind]
		if !ok {
			style = r.lipglossStyle(in.Style)
		}
		sb.WriteString(style.Render(line[in.Start:in.End]))
		pos = in.End
	}
	if pos < len(line) {
		sb.WriteString(r.plain(line[pos:]))
	}
	return sb.String()
}

func (r *Renderer) plain(s string) string {
	if !r.opts.Background {
		return s
	}
	return r.base.Render(s)
}

// GutterWidth returns the width of line numbers for a document of n lines.
func GutterWidth(n int) int {
	return len(fmt.Sprint(max(n, 1)))
}

// Render writes every line, one per row. styles[i] belongs to lines[i].
func (r *Renderer) Render(w io.Writer, lines []string, styles [][]highlight.StyleInstruction) error {
	width := GutterWidth(len(lines))
	for i, line := range lines {
		var instr []highlight.StyleInstruction
		if i < len(styles) {
			instr = styles[i]
		}
		if _, err := io.WriteString(w, r.Row(i, width, line, instr)+"\n"); err != nil {
			return fmt.Errorf("render line %d: %w", i+1, err)
		}
	}
	return nil
}

// Row renders line i with its gutter when line numbers are enabled.
func (r *Renderer) Row(i, width int, line string, instructions []highlight.StyleInstruction) string {
	text := r.RenderLine(line, instructions)
	if !r.opts.LineNumbers {
		return text
	}
	num := fmt.Sprintf("%*d ", width, i+1)
	if r.opts.Color {
		num = r.gutter.Render(num)
	}
	return num + " " + text
}

// previewSource exercises every styled kind.
const previewSource = `def greet(name, times=2):  # say hello
    for _ in range(times):
        print(f"hi {name}", [], None, True, 3.5j)`

// Preview renders a short sample in the theme.
func (r *Renderer) Preview() string {
	lines := highlight.SplitLines(previewSource)
	tokens, _ := syntax.NewTokenizer(nil).TokenizeLines(lines)

	var sb strings.Builder
	width := GutterWidth(len(lines))
	for i, line := range lines {
		sb.WriteString(r.Row(i, width, line, highlight.Instructions(tokens[i], r.theme)))
		sb.WriteByte('\n')
	}
	return sb.String()
}
