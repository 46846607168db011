package reporter

import (
	"github.com/yaklabco/pyhl/pkg/config"
)

// Format names a reporter output format.
type Format string

// Output formats.
const (
	FormatText   = Format(config.FormatText)
	FormatJSON   = Format(config.FormatJSON)
	FormatGitHub = Format(config.FormatGitHub)
)

// ParseFormat parses a format name. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	f, err := config.ParseOutputFormat(s)
	if err != nil {
		return "", err
	}
	return Format(f), nil
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f names a supported format.
func (f Format) IsValid() bool {
	_, err := config.ParseOutputFormat(string(f))
	return err == nil && f != ""
}
