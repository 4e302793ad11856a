// Package theme holds the named seed pairs snippets are styled with and
// the caller-side plumbing around the colour engine: seed normalisation,
// theme files and palette memoisation.
package theme

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Theme is a named pair of seed colours.
type Theme struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Seeds       [2]string `json:"seeds"`
}

// Builtin returns the themes shipped with swatch.
func Builtin() []Theme {
	return []Theme{
		{Name: "sky", Description: "Cool cyan into blue", Seeds: [2]string{"#38bdf8", "#3b82f6"}},
		{Name: "rose", Description: "Rose into orange", Seeds: [2]string{"#f43f5e", "#fb923c"}},
		{Name: "meadow", Description: "Lime into green", Seeds: [2]string{"#a3e635", "#22c55e"}},
		{Name: "violet", Description: "Lavender into indigo", Seeds: [2]string{"#a78bfa", "#6366f1"}},
		{Name: "amber", Description: "Amber into orange", Seeds: [2]string{"#fbbf24", "#f97316"}},
		{Name: "mono", Description: "Neutral greys", Seeds: [2]string{"#e5e7eb", "#9ca3af"}},
	}
}

// DefaultName is the theme used when none is requested.
const DefaultName = "sky"

// Registry holds themes by lower-cased name.
type Registry struct {
	mu     sync.RWMutex
	themes map[string]Theme
}

// NewRegistry creates a registry preloaded with the built-in themes.
func NewRegistry() *Registry {
	r := &Registry{themes: make(map[string]Theme)}
	for _, t := range Builtin() {
		r.themes[t.Name] = t
	}
	return r
}

// Register adds or replaces a theme. Seeds are normalised to "#rrggbb".
func (r *Registry) Register(t Theme) error {
	name := strings.ToLower(strings.TrimSpace(t.Name))
	if name == "" {
		return fmt.Errorf("theme name cannot be empty")
	}

	seeds, err := NormaliseSeeds(t.Seeds[:])
	if err != nil {
		return fmt.Errorf("theme %q: %w", name, err)
	}

	t.Name = name
	t.Seeds = seeds

	r.mu.Lock()
	defer r.mu.Unlock()
	r.themes[name] = t
	return nil
}

// Get looks a theme up by case-insensitive name.
func (r *Registry) Get(name string) (Theme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.themes[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Lookup is Get with an error listing the available names.
func (r *Registry) Lookup(name string) (Theme, error) {
	t, ok := r.Get(name)
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme: %s (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return t, nil
}

// Names returns all theme names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.themes))
}

// All returns every theme sorted by name.
func (r *Registry) All() []Theme {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Theme, 0, len(names))
	for _, n := range names {
		out = append(out, r.themes[n])
	}
	return out
}
