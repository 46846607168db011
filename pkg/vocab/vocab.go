// Package vocab holds the keyword and builtin-function vocabulary recognized by
// the tokenizer and the autocomplete engine.
//
// A Vocabulary is immutable once constructed and may be shared freely between
// documents and goroutines.
package vocab

import (
	"slices"
	"strings"
)

// Vocabulary is an immutable pair of keyword and builtin-name sets.
type Vocabulary struct {
	keywords map[string]struct{}
	builtins map[string]struct{}

	// Sorted copies, computed once for ordered iteration.
	sortedKeywords []string
	sortedBuiltins []string

	maxLen int
}

// New creates a Vocabulary from keyword and builtin lists.
// Empty strings and duplicates are dropped. A word that appears in both lists
// is kept as a keyword only.
func New(keywords, builtins []string) *Vocabulary {
	v := &Vocabulary{
		keywords: make(map[string]struct{}, len(keywords)),
		builtins: make(map[string]struct{}, len(builtins)),
	}

	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		v.keywords[kw] = struct{}{}
	}
	for _, b := range builtins {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		if _, isKeyword := v.keywords[b]; isKeyword {
			continue
		}
		v.builtins[b] = struct{}{}
	}

	v.sortedKeywords = sortedKeys(v.keywords)
	v.sortedBuiltins = sortedKeys(v.builtins)

	for _, w := range v.sortedKeywords {
		v.maxLen = max(v.maxLen, len(w))
	}
	for _, w := range v.sortedBuiltins {
		v.maxLen = max(v.maxLen, len(w))
	}

	return v
}

// IsKeyword reports whether word is a keyword.
func (v *Vocabulary) IsKeyword(word string) bool {
	if v == nil {
		return false
	}
	_, ok := v.keywords[word]
	return ok
}

// IsBuiltin reports whether word is a builtin name.
func (v *Vocabulary) IsBuiltin(word string) bool {
	if v == nil {
		return false
	}
	_, ok := v.builtins[word]
	return ok
}

// Keywords returns the keywords in ascending order.
// The returned slice is a copy.
func (v *Vocabulary) Keywords() []string {
	if v == nil {
		return nil
	}
	return slices.Clone(v.sortedKeywords)
}

// Builtins returns the builtin names in ascending order.
// The returned slice is a copy.
func (v *Vocabulary) Builtins() []string {
	if v == nil {
		return nil
	}
	return slices.Clone(v.sortedBuiltins)
}

// KeywordsWithPrefix returns keywords starting with prefix, in ascending order.
func (v *Vocabulary) KeywordsWithPrefix(prefix string) []string {
	if v == nil {
		return nil
	}
	return withPrefix(v.sortedKeywords, prefix)
}

// BuiltinsWithPrefix returns builtin names starting with prefix, in ascending order.
func (v *Vocabulary) BuiltinsWithPrefix(prefix string) []string {
	if v == nil {
		return nil
	}
	return withPrefix(v.sortedBuiltins, prefix)
}

// MaxWordLen returns the length in bytes of the longest word.
func (v *Vocabulary) MaxWordLen() int {
	if v == nil {
		return 0
	}
	return v.maxLen
}

// Len returns the total number of words.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.keywords) + len(v.builtins)
}

// Extend returns a new Vocabulary with extra keywords and builtins added.
// The receiver is left untouched.
func (v *Vocabulary) Extend(keywords, builtins []string) *Vocabulary {
	return New(
		append(v.Keywords(), keywords...),
		append(v.Builtins(), builtins...),
	)
}

// withPrefix returns the contiguous run of sorted words starting with prefix.
func withPrefix(sorted []string, prefix string) []string {
	start, _ := slices.BinarySearch(sorted, prefix)

	var out []string
	for i := start; i < len(sorted) && strings.HasPrefix(sorted[i], prefix); i++ {
		out = append(out, sorted[i])
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
