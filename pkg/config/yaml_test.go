package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pyhl/pkg/config"
	"github.com/yaklabco/pyhl/pkg/highlight"
)

const sampleYAML = `
theme: monokai
themes:
  mine:
    base: dark
    background: "#101010"
    tokens:
      keyword:
        fg: "#FF0000"
        bold: true
vocabulary:
  extra_builtins: [reveal_type]
completion:
  min_prefix: 2
  max_results: 10
auto_close: false
markdown:
  detect_unlabeled: true
ignore:
  - "venv/**"
`

func TestFromYAML(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "monokai", cfg.Theme)
	require.Contains(t, cfg.Themes, "mine")
	assert.Equal(t, "dark", cfg.Themes["mine"].Base)
	assert.Equal(t, highlight.Style{Foreground: "#FF0000", Bold: true}, cfg.Themes["mine"].Tokens["keyword"])
	assert.Equal(t, []string{"reveal_type"}, cfg.Vocabulary.ExtraBuiltins)
	assert.Equal(t, config.CompletionConfig{MinPrefix: 2, MaxResults: 10}, cfg.Completion)
	assert.False(t, cfg.AutoCloseEnabled())
	assert.True(t, cfg.MarkdownEnabled())
	assert.True(t, cfg.Markdown.DetectUnlabeled)
	assert.Equal(t, []string{"venv/**"}, cfg.Ignore)
}

func TestFromYAML_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("them: dark\n"))
	require.Error(t, err, "unknown keys are rejected")

	_, err = config.FromYAML([]byte("theme: [a\n"))
	require.Error(t, err)

	cfg, err := config.FromYAML([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, &config.Config{}, cfg)
}

func TestToYAML_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte(sampleYAML))
	require.NoError(t, err)
	cfg.Jobs = 4

	out, err := cfg.ToYAMLWithHeader("# pyhl")
	require.NoError(t, err)
	assert.Contains(t, string(out), "# pyhl\n\ntheme: monokai\n")
	assert.NotContains(t, string(out), "jobs", "CLI-only fields are not persisted")

	back, err := config.FromYAML(out)
	require.NoError(t, err)
	cfg.Jobs = 0
	assert.Equal(t, cfg, back)

	var nilCfg *config.Config
	out, err = nilCfg.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestClone(t *testing.T) {
	t.Parallel()

	original, err := config.FromYAML([]byte(sampleYAML))
	require.NoError(t, err)
	original.Format = config.FormatJSON

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Ignore[0] = "changed"
	clone.Vocabulary.ExtraBuiltins[0] = "changed"
	*clone.AutoClose = true
	clone.Themes["mine"].Tokens["keyword"] = highlight.Style{}

	assert.Equal(t, "venv/**", original.Ignore[0])
	assert.Equal(t, "reveal_type", original.Vocabulary.ExtraBuiltins[0])
	assert.False(t, *original.AutoClose)
	assert.Equal(t, "#FF0000", original.Themes["mine"].Tokens["keyword"].Foreground)

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.ColorAuto, cfg.Color)
	assert.True(t, cfg.AutoCloseEnabled())
	assert.True(t, cfg.MarkdownEnabled())
	assert.True(t, cfg.Vocabulary.IsZero())
}
