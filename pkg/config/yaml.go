package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// YAMLIndent is the indentation used when writing configuration files.
const YAMLIndent = 2

// ToYAML serializes the persisted fields of the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration below a comment header.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil {
		return nil, err
	}
	if header == "" {
		return body, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes(), nil
}

// FromYAML parses a configuration. Unknown keys are rejected so typos surface early.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Ignore = slices.Clone(c.Ignore)
	clone.Vocabulary = VocabularyConfig{
		Keywords:      slices.Clone(c.Vocabulary.Keywords),
		Builtins:      slices.Clone(c.Vocabulary.Builtins),
		ExtraKeywords: slices.Clone(c.Vocabulary.ExtraKeywords),
		ExtraBuiltins: slices.Clone(c.Vocabulary.ExtraBuiltins),
	}
	if c.AutoClose != nil {
		clone.AutoClose = Bool(*c.AutoClose)
	}
	if c.Markdown.Enabled != nil {
		clone.Markdown.Enabled = Bool(*c.Markdown.Enabled)
	}
	if c.Themes != nil {
		clone.Themes = make(map[string]ThemeConfig, len(c.Themes))
		for name, t := range c.Themes {
			t.Tokens = maps.Clone(t.Tokens)
			clone.Themes[name] = t
		}
	}
	return &clone
}
