package configloader

import (
	"maps"

	"github.com/yaklabco/pyhl/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if override is non-nil
//   - Slices: override replaces base entirely if override is non-nil
//   - Themes: merged per name, an override theme replaces the base theme of that name
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Theme != "" {
		result.Theme = override.Theme
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// false is the zero value, so a lower layer can never be switched off here.
	if override.Strict {
		result.Strict = true
	}

	if override.AutoClose != nil {
		result.AutoClose = config.Bool(*override.AutoClose)
	}

	if override.Completion.MinPrefix != 0 {
		result.Completion.MinPrefix = override.Completion.MinPrefix
	}
	if override.Completion.MaxResults != 0 {
		result.Completion.MaxResults = override.Completion.MaxResults
	}

	if override.Markdown.Enabled != nil {
		result.Markdown.Enabled = config.Bool(*override.Markdown.Enabled)
	}
	if override.Markdown.DetectUnlabeled {
		result.Markdown.DetectUnlabeled = true
	}

	result.Vocabulary = mergeVocabulary(base.Vocabulary, override.Vocabulary)
	result.Themes = mergeThemes(base.Themes, override.Themes)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

func mergeVocabulary(base, override config.VocabularyConfig) config.VocabularyConfig {
	result := base
	if override.Keywords != nil {
		result.Keywords = override.Keywords
	}
	if override.Builtins != nil {
		result.Builtins = override.Builtins
	}
	if override.ExtraKeywords != nil {
		result.ExtraKeywords = override.ExtraKeywords
	}
	if override.ExtraBuiltins != nil {
		result.ExtraBuiltins = override.ExtraBuiltins
	}
	return result
}

func mergeThemes(base, override map[string]config.ThemeConfig) map[string]config.ThemeConfig {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	result := make(map[string]config.ThemeConfig, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}
