package theme

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pyhl/pkg/highlight"
	"github.com/yaklabco/pyhl/pkg/syntax"
)

func TestBuiltins(t *testing.T) {
	t.Parallel()

	themes := Builtins()
	names := make([]string, len(themes))
	for i, th := range themes {
		names[i] = th.Name
		assert.Equal(t, highlight.Style{Foreground: "#FF00FF"}, th.StyleFor(syntax.KindKeyword), th.Name)
		assert.True(t, th.StyleFor(syntax.KindIdentifier).IsZero(), th.Name)
	}
	assert.Equal(t, []string{"Light", "Dark", "Monokai", "Solarized Light", "Solarized Dark", "Dracula", "Nord"}, names)

	themes[0].Tokens[syntax.KindKeyword] = highlight.Style{Foreground: "#000000"}
	assert.Equal(t, "#FF00FF", Builtins()[0].StyleFor(syntax.KindKeyword).Foreground, "builtins are fresh copies")
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	assert.Equal(t, []string{"light", "dark", "monokai", "solarized-light", "solarized-dark", "dracula", "nord"}, r.Names())

	for _, name := range []string{"Solarized Dark", "solarized-dark", " SOLARIZED DARK "} {
		th, err := r.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, "#002B36", th.Background)
	}

	_, err := r.Get("vibrant")
	require.ErrorIs(t, err, ErrUnknownTheme)

	custom, err := Custom("Mine", Builtins()[1], map[string]highlight.Style{
		"keyword": {Foreground: "#123456", Bold: true},
		"Comment": {Foreground: "244"},
	})
	require.NoError(t, err)
	require.NoError(t, r.Register(custom))
	assert.Len(t, r.Themes(), 8)

	got, err := r.Get("mine")
	require.NoError(t, err)
	assert.Equal(t, highlight.Style{Foreground: "#123456", Bold: true}, got.StyleFor(syntax.KindKeyword))
	assert.Equal(t, highlight.Style{Foreground: "244"}, got.StyleFor(syntax.KindComment))
	assert.Equal(t, "#FFD700", got.StyleFor(syntax.KindString).Foreground)
	assert.Equal(t, "#1E1E1E", got.Background)

	dark, err := r.Get("dark")
	require.NoError(t, err)
	assert.Equal(t, "#FF00FF", dark.StyleFor(syntax.KindKeyword).Foreground, "base is not modified")

	require.NoError(t, r.Register(custom.Clone("Dark")))
	assert.Len(t, r.Names(), 8, "re-registering replaces")

	require.Error(t, r.Register(&Theme{}))
	require.ErrorIs(t, r.Register(&Theme{Name: "x", Background: "blue"}), ErrInvalidColor)
}

func TestCustom_Errors(t *testing.T) {
	t.Parallel()

	_, err := Custom("bad", Builtins()[0], map[string]highlight.Style{
		"keywords": {Foreground: "#fff"},
		"string":   {Foreground: "gold"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown token kind "keywords"`)
	require.ErrorIs(t, err, ErrInvalidColor)

	_, err = Custom(" ", Builtins()[0], nil)
	require.Error(t, err)
}

func TestValidateColor(t *testing.T) {
	t.Parallel()

	for _, c := range []string{"", "#abc", "#A0B1C2", "0", "255"} {
		assert.NoError(t, ValidateColor(c), c)
	}
	for _, c := range []string{"red", "#abcd", "256", "-1", "#GGGGGG"} {
		assert.ErrorIs(t, ValidateColor(c), ErrInvalidColor, c)
	}
}

func TestRenderer_Plain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewRenderer(&buf, Builtins()[0], RenderOptions{LineNumbers: true})

	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "x = 1"
	}
	lines[9] = "def f(): pass"

	require.NoError(t, r.Render(&buf, lines, nil))
	out := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, out, 10)
	assert.Equal(t, " 1  x = 1", out[0])
	assert.Equal(t, "10  def f(): pass", out[9])
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestRenderer_Color(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	th := Builtins()[1]
	r := NewRenderer(&buf, th, RenderOptions{Color: true})

	line := "if x: # done"
	tokens, _ := syntax.NewTokenizer(nil).TokenizeLine(line, syntax.StateNormal)
	out := r.RenderLine(line, highlight.Instructions(tokens, th))

	assert.Contains(t, out, "38;2;255;0;255", "keyword foreground")
	assert.Contains(t, out, "38;2;136;136;136", "comment foreground")
	assert.Contains(t, out, "if")
	assert.Contains(t, out, "# done")
	assert.Equal(t, "plain", r.RenderLine("plain", nil))
}

func TestRenderer_Preview(t *testing.T) {
	t.Parallel()

	r := NewRenderer(&bytes.Buffer{}, Builtins()[2], RenderOptions{LineNumbers: true})
	preview := r.Preview()
	assert.Equal(t, 3, strings.Count(preview, "\n"))
	assert.True(t, strings.HasPrefix(preview, "1  def greet"))
	assert.Equal(t, "Monokai", r.Theme().Name)
}

func TestGutterWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, GutterWidth(0))
	assert.Equal(t, 1, GutterWidth(9))
	assert.Equal(t, 2, GutterWidth(10))
	assert.Equal(t, 3, GutterWidth(100))
}
