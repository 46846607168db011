// Package theme provides named highlight themes and renders highlighted lines with lipgloss.
package theme

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/pyhl/pkg/highlight"
	"github.com/yaklabco/pyhl/pkg/syntax"
)

// ErrUnknownTheme is returned when a theme name is not registered.
var ErrUnknownTheme = errors.New("unknown theme")

// ErrInvalidColor is returned for colors that are neither hex nor ANSI numbers.
var ErrInvalidColor = errors.New("invalid color")

// Theme is a named token palette plus the editor surface colors.
// A *Theme implements highlight.Theme.
type Theme struct {
	Name string

	// Editor surface.
	Background       string
	Foreground       string
	GutterBackground string
	GutterForeground string

	Tokens highlight.Palette
}

// StyleFor implements highlight.Theme.
func (t *Theme) StyleFor(kind syntax.Kind) highlight.Style {
	return t.Tokens[kind]
}

// Clone returns a deep copy named name.
func (t *Theme) Clone(name string) *Theme {
	c := *t
	c.Name = name
	c.Tokens = maps.Clone(t.Tokens)
	if c.Tokens == nil {
		c.Tokens = highlight.Palette{}
	}
	return &c
}

// Key normalizes a theme name for lookup: "Solarized Dark" and "solarized-dark" are equal.
func Key(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// Custom builds a theme from base with per-kind overrides. Keys of styles are kind names
// as accepted by syntax.ParseKind. An override replaces the base style of its kind.
func Custom(name string, base *Theme, styles map[string]highlight.Style) (*Theme, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("theme name must not be empty")
	}

	t := base.Clone(name)
	var errs []error
	for kindName, style := range styles {
		kind, err := syntax.ParseKind(kindName)
		if err != nil {
			errs = append(errs, fmt.Errorf("theme %s: %w", name, err))
			continue
		}
		if err := ValidateStyle(style); err != nil {
			errs = append(errs, fmt.Errorf("theme %s, %s: %w", name, kindName, err))
			continue
		}
		t.Tokens[kind] = style
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return t, nil
}

//nolint:gochecknoglobals // Compiled once, read-only.
var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{6}|#[0-9a-fA-F]{3}|[0-9]{1,3})$`)

// ValidateColor accepts "", "#rgb", "#rrggbb" and ANSI color numbers 0-255.
func ValidateColor(c string) error {
	if c == "" {
		return nil
	}
	if !colorPattern.MatchString(c) {
		return fmt.Errorf("%q: %w", c, ErrInvalidColor)
	}
	if c[0] != '#' {
		if n, err := strconv.Atoi(c); err != nil || n > 255 {
			return fmt.Errorf("%q: %w", c, ErrInvalidColor)
		}
	}
	return nil
}

// ValidateStyle checks both colors of a style.
func ValidateStyle(s highlight.Style) error {
	return errors.Join(ValidateColor(s.Foreground), ValidateColor(s.Background))
}
