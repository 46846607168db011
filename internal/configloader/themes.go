package configloader

import (
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/pyhl/pkg/config"
	"github.com/yaklabco/pyhl/pkg/theme"
	"github.com/yaklabco/pyhl/pkg/vocab"
)

// ThemeRegistry returns the builtin themes plus the custom themes defined in cfg.
// A custom theme may inherit from a builtin or from another custom theme.
func ThemeRegistry(cfg *config.Config) (*theme.Registry, error) {
	reg := theme.NewRegistry()
	if cfg == nil || len(cfg.Themes) == 0 {
		return reg, nil
	}

	b := &themeBuilder{
		reg:     reg,
		defs:    cfg.Themes,
		visited: make(map[string]bool, len(cfg.Themes)),
	}

	names := make([]string, 0, len(cfg.Themes))
	for name := range cfg.Themes {
		names = append(names, name)
	}
	slices.Sort(names)

	var errs []error
	for _, name := range names {
		if _, err := b.build(name, nil); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return reg, nil
}

type themeBuilder struct {
	reg     *theme.Registry
	defs    map[string]config.ThemeConfig
	visited map[string]bool
}

func (b *themeBuilder) build(name string, chain []string) (*theme.Theme, error) {
	if b.visited[name] {
		return b.reg.Get(name)
	}
	if slices.Contains(chain, name) {
		return nil, fmt.Errorf("theme %s: inheritance cycle through %v", name, chain)
	}

	def := b.defs[name]
	baseName := def.Base
	if baseName == "" {
		baseName = theme.DefaultName
	}

	var (
		base *theme.Theme
		err  error
	)
	if _, custom := b.defs[baseName]; custom && baseName != name {
		base, err = b.build(baseName, append(chain, name))
	} else {
		base, err = b.reg.Get(baseName)
	}
	if err != nil {
		return nil, fmt.Errorf("theme %s: base: %w", name, err)
	}

	t, err := theme.Custom(name, base, def.Tokens)
	if err != nil {
		return nil, err
	}
	overrideSurface(&t.Background, def.Background)
	overrideSurface(&t.Foreground, def.Foreground)
	overrideSurface(&t.GutterBackground, def.GutterBackground)
	overrideSurface(&t.GutterForeground, def.GutterForeground)

	if err := b.reg.Register(t); err != nil {
		return nil, err
	}
	b.visited[name] = true
	return t, nil
}

func overrideSurface(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Vocabulary returns the effective keyword and builtin sets for cfg.
func Vocabulary(cfg *config.Config) *vocab.Vocabulary {
	base := vocab.Python()
	if cfg == nil || cfg.Vocabulary.IsZero() {
		return base
	}

	v := cfg.Vocabulary
	keywords, builtins := base.Keywords(), base.Builtins()
	if len(v.Keywords) > 0 {
		keywords = v.Keywords
	}
	if len(v.Builtins) > 0 {
		builtins = v.Builtins
	}
	return vocab.New(keywords, builtins).Extend(v.ExtraKeywords, v.ExtraBuiltins)
}
