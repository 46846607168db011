package document

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/yaklabco/pyhl/pkg/highlight"
)

// ErrUnknownDocument is returned for handles that are not open.
var ErrUnknownDocument = errors.New("unknown document")

// Workspace holds the open documents. It is safe for concurrent use.
type Workspace struct {
	opts Options

	mu   sync.RWMutex
	docs map[Handle]*Document
}

// NewWorkspace creates an empty workspace whose documents share opts.
func NewWorkspace(opts Options) *Workspace {
	return &Workspace{
		opts: opts.withDefaults(),
		docs: make(map[Handle]*Document),
	}
}

// Open creates a document named name, loads src into it and registers it.
func (w *Workspace) Open(name string, src highlight.LineSource) (*Document, Result) {
	doc := newDocument(NewHandle(), name, w.opts)
	res := doc.Load(src)

	w.mu.Lock()
	w.docs[doc.handle] = doc
	w.mu.Unlock()

	return doc, res
}

// Get returns the document for h.
func (w *Workspace) Get(h Handle) (*Document, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	doc, ok := w.docs[h]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", h, ErrUnknownDocument)
	}
	return doc, nil
}

// Lookup returns the first open document with the given name.
func (w *Workspace) Lookup(name string) (*Document, bool) {
	for _, doc := range w.Documents() {
		if doc.name == name {
			return doc, true
		}
	}
	return nil, false
}

// Close forgets the document for h.
func (w *Workspace) Close(h Handle) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.docs[h]; !ok {
		return fmt.Errorf("document %s: %w", h, ErrUnknownDocument)
	}
	delete(w.docs, h)
	return nil
}

// Len returns the number of open documents.
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.docs)
}

// Documents returns the open documents ordered by name, then handle.
func (w *Workspace) Documents() []*Document {
	w.mu.RLock()
	out := make([]*Document, 0, len(w.docs))
	for _, doc := range w.docs {
		out = append(out, doc)
	}
	w.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Document) int {
		return cmp.Or(cmp.Compare(a.name, b.name), cmp.Compare(a.handle.String(), b.handle.String()))
	})
	return out
}
