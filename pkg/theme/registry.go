package theme

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Registry is a set of themes addressable by normalized name.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	themes map[string]*Theme
	order  []string
}

// NewRegistry returns a registry holding the built-in themes.
func NewRegistry() *Registry {
	r := &Registry{themes: make(map[string]*Theme)}
	for _, t := range Builtins() {
		_ = r.Register(t)
	}
	return r
}

// Register adds t, replacing any theme with the same normalized name.
func (r *Registry) Register(t *Theme) error {
	if t == nil || Key(t.Name) == "" {
		return errors.New("theme must have a name")
	}
	if err := errors.Join(
		ValidateColor(t.Background), ValidateColor(t.Foreground),
		ValidateColor(t.GutterBackground), ValidateColor(t.GutterForeground),
	); err != nil {
		return fmt.Errorf("theme %s: %w", t.Name, err)
	}

	key := Key(t.Name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.themes[key]; !ok {
		r.order = append(r.order, key)
	}
	r.themes[key] = t
	return nil
}

// Get returns the theme registered under name.
func (r *Registry) Get(name string) (*Theme, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.themes[Key(name)]
	if !ok {
		return nil, fmt.Errorf("%q (available: %v): %w", name, r.order, ErrUnknownTheme)
	}
	return t, nil
}

// Names returns the normalized names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Themes returns the themes in registration order.
func (r *Registry) Themes() []*Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Theme, len(r.order))
	for i, key := range r.order {
		out[i] = r.themes[key]
	}
	return out
}
