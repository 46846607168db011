package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pyhl/pkg/config"
)

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    config.OutputFormat
		wantErr bool
	}{
		{"text", config.FormatText, false},
		{"json", config.FormatJSON, false},
		{"github", config.FormatGitHub, false},
		{"", config.FormatText, false},
		{"sarif", "", true},
		{"JSON", "", true},
	}

	for _, tt := range tests {
		got, err := config.ParseOutputFormat(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseColorMode(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"auto", "always", "never"} {
		got, err := config.ParseColorMode(s)
		require.NoError(t, err)
		assert.Equal(t, config.ColorMode(s), got)
	}

	got, err := config.ParseColorMode("")
	require.NoError(t, err)
	assert.Equal(t, config.ColorAuto, got)

	_, err = config.ParseColorMode("sometimes")
	require.Error(t, err)
}
