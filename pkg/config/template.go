package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yaklabco/pyhl/pkg/syntax"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value instead of commented examples.
	Full bool

	// Themes lists the available theme names for the theme comment.
	Themes []string
}

// DefaultTemplateHeader returns the header for generated configs.
func DefaultTemplateHeader() string {
	return `# pyhl configuration
# See: https://github.com/yaklabco/pyhl`
}

// GenerateTemplate creates a starter .pyhl.yml.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	themes := "light, dark"
	if len(opts.Themes) > 0 {
		themes = strings.Join(opts.Themes, ", ")
	}
	fmt.Fprintf(&buf, "# %s\ntheme: light\n\n", wrapComment("Highlight theme: "+themes+", or one defined under themes.", commentWrapWidth))

	if !opts.Full {
		buf.WriteString(`# Insert the closing bracket when an opening bracket is typed.
# auto_close: true

# completion:
#   min_prefix: 1
#   max_results: 0

# vocabulary:
#   extra_builtins: [reveal_type]

# File patterns to ignore (glob patterns)
# ignore:
#   - "venv/**"
#   - ".tox/**"
`)
		return buf.Bytes()
	}

	buf.WriteString(`# Insert the closing bracket when an opening bracket is typed.
auto_close: true

# Autocomplete tuning. max_results: 0 means unlimited.
completion:
  min_prefix: 1
  max_results: 0

# Keyword and builtin sets. keywords/builtins replace the Python defaults,
# extra_keywords/extra_builtins extend them.
vocabulary:
  extra_keywords: []
  extra_builtins: []

# Python code blocks inside Markdown files.
markdown:
  enabled: true
  detect_unlabeled: false

# File patterns to ignore (glob patterns)
ignore:
  - "venv/**"
  - ".venv/**"
  - ".tox/**"

# Custom themes. Colors are "#rrggbb" or ANSI numbers 0-255.
themes:
  custom:
    base: dark
    tokens:
`)
	for _, kind := range syntax.Kinds() {
		if kind == syntax.KindUnknown || kind == syntax.KindWhitespace {
			continue
		}
		fmt.Fprintf(&buf, "      %s: {}\n", kind)
	}
	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= maxWidth:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return strings.Join(lines, "\n# ")
}
