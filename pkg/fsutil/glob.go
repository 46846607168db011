package fsutil

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Pattern is a compiled path glob. "*" stays within one path segment and "**"
// crosses segments. A pattern without "/" is matched against base names, so
// "*.pyi" and "venv" apply at any depth.
type Pattern struct {
	raw  string
	g    glob.Glob
	base bool
}

// CompilePattern compiles a glob written with forward slashes.
func CompilePattern(pattern string) (Pattern, error) {
	p := strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	// "**/x" also matches a top-level x.
	if rest, ok := strings.CutPrefix(p, "**/"); ok && !strings.Contains(rest, "**") {
		p = "{" + rest + "," + p + "}"
	}

	g, err := glob.Compile(p, '/')
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid glob %q: %w", pattern, err)
	}
	return Pattern{raw: pattern, g: g, base: !strings.Contains(pattern, "/")}, nil
}

// String returns the pattern as written.
func (p Pattern) String() string {
	return p.raw
}

func (p Pattern) matchOne(rel string) bool {
	if p.base {
		return p.g.Match(path.Base(rel))
	}
	return p.g.Match(rel) || p.g.Match(rel+"/")
}

// PatternSet matches a path against any of several patterns.
type PatternSet []Pattern

// CompilePatterns compiles every pattern, failing on the first malformed one.
func CompilePatterns(patterns []string) (PatternSet, error) {
	set := make(PatternSet, 0, len(patterns))
	for _, raw := range patterns {
		p, err := CompilePattern(raw)
		if err != nil {
			return nil, err
		}
		set = append(set, p)
	}
	return set, nil
}

// Match reports whether rel, a slash or OS separated relative path, or any of its
// parent directories matches a pattern in the set.
func (s PatternSet) Match(rel string) bool {
	if len(s) == 0 {
		return false
	}
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "./")
	for dir := rel; dir != "." && dir != "/" && dir != ""; dir = path.Dir(dir) {
		for _, p := range s {
			if p.matchOne(dir) {
				return true
			}
		}
	}
	return false
}
