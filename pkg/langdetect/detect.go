// Package langdetect decides whether files and code snippets are Python.
// It uses go-enry for extension, filename, shebang and classifier based detection,
// with a few strong Python patterns checked before the classifier.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Python is the go-enry name of the Python language.
const Python = "Python"

// Method records which strategy produced a detection.
type Method string

// Detection methods, in the order DetectFile tries them.
const (
	MethodExtension  Method = "extension"
	MethodFilename   Method = "filename"
	MethodShebang    Method = "shebang"
	MethodPattern    Method = "pattern"
	MethodClassifier Method = "classifier"
	MethodNone       Method = "none"
)

// Result is a detected language.
type Result struct {
	// Language is the go-enry language name, empty when unknown.
	Language string
	Method   Method
}

// IsPython reports whether the result names Python.
func (r Result) IsPython() bool {
	return r.Language == Python
}

// classifierCandidates limits the classifier to languages commonly confused with Python.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Python", "Shell", "Ruby", "Perl", "JavaScript", "Go", "YAML", "Makefile",
}

// DetectFile detects the language of a file from its path first and its content second.
func DetectFile(path string, content []byte) Result {
	base := filepath.Base(path)

	if filepath.Ext(base) != "" {
		if lang, safe := enry.GetLanguageByExtension(base); safe {
			return Result{Language: lang, Method: MethodExtension}
		}
	}
	if lang, safe := enry.GetLanguageByFilename(base); safe {
		return Result{Language: lang, Method: MethodFilename}
	}
	return DetectSnippet(content)
}

// DetectSnippet detects the language of content alone.
func DetectSnippet(content []byte) Result {
	if len(strings.TrimSpace(string(content))) == 0 {
		return Result{Method: MethodNone}
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return Result{Language: lang, Method: MethodShebang}
	}

	if looksLikePython(string(content)) {
		return Result{Language: Python, Method: MethodPattern}
	}

	// The classifier is only trusted when it is unambiguous.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return Result{Language: lang, Method: MethodClassifier}
	}

	return Result{Method: MethodNone}
}

// IsPythonFile reports whether path with content should be treated as Python source.
func IsPythonFile(path string, content []byte) bool {
	return DetectFile(path, content).IsPython()
}

// IsPythonFence reports whether a Markdown fence info string names Python.
// Only the first word of the info string is considered.
func IsPythonFence(info string) bool {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToLower(strings.Trim(fields[0], "{}.")) {
	case "python", "python3", "py", "py3", "pyi", "pycon", "ipython":
		return true
	default:
		return false
	}
}

// looksLikePython checks for constructs that rarely occur outside Python.
func looksLikePython(src string) bool {
	if strings.Contains(src, "__name__") || strings.Contains(src, "__init__") {
		return true
	}

	for line := range strings.SplitSeq(src, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "def ") && strings.HasSuffix(trimmed, ":"):
			return true
		case strings.HasPrefix(trimmed, "class ") && strings.HasSuffix(trimmed, ":"):
			return true
		case strings.HasPrefix(trimmed, "from ") && strings.Contains(trimmed, " import "):
			return true
		case strings.HasPrefix(trimmed, "elif ") && strings.HasSuffix(trimmed, ":"):
			return true
		}
	}
	return false
}
