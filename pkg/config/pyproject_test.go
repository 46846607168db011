package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pyhl/pkg/config"
)

func TestFromPyproject(t *testing.T) {
	t.Parallel()

	data := []byte(`
[project]
name = "demo"

[tool.black]
line-length = 100

[tool.pyhl]
theme = "nord"
ignore = ["build/**"]

[tool.pyhl.completion]
min_prefix = 2

[tool.pyhl.themes.mine]
base = "dark"
tokens.keyword = { fg = "#FF0000", bold = true }
`)

	cfg, err := config.FromPyproject(data)
	require.NoError(t, err)
	assert.Equal(t, "nord", cfg.Theme)
	assert.Equal(t, []string{"build/**"}, cfg.Ignore)
	assert.Equal(t, 2, cfg.Completion.MinPrefix)
	require.Contains(t, cfg.Themes, "mine")
	assert.Equal(t, "dark", cfg.Themes["mine"].Base)
	assert.Equal(t, "#FF0000", cfg.Themes["mine"].Tokens["keyword"].Foreground)
	assert.True(t, cfg.Themes["mine"].Tokens["keyword"].Bold)
}

func TestFromPyproject_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.FromPyproject([]byte("[project]\nname = \"demo\"\n"))
	require.ErrorIs(t, err, config.ErrNoToolTable)

	_, err = config.FromPyproject([]byte("[tool.pyhl]\ncolour = \"red\"\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrNoToolTable)

	_, err = config.FromPyproject([]byte("[tool.pyhl\n"))
	require.Error(t, err)
}
