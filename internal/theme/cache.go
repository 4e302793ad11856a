package theme

import (
	"sync"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Cache memoises derived palettes by seed pair. The engine recomputes on
// every call, so interactive callers that re-render with unchanged seeds
// go through a Cache instead.
//
// Returned palettes are shared between callers and must not be modified.
type Cache struct {
	cfg colour.Config

	mu      sync.RWMutex
	entries map[[2]string]*colour.Palette
}

// NewCache creates a cache deriving palettes with cfg.
func NewCache(cfg colour.Config) *Cache {
	return &Cache{
		cfg:     cfg,
		entries: make(map[[2]string]*colour.Palette),
	}
}

// Palette returns the palette for two seeds, deriving it on first use.
// Seeds are keyed by their decoded hex so "#FFF" and "ffffff" share an entry.
func (c *Cache) Palette(seed1, seed2 string) (*colour.Palette, error) {
	key := [2]string{colour.HexToRGB(seed1).Hex(), colour.HexToRGB(seed2).Hex()}

	c.mu.RLock()
	p, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return p, nil
	}

	p, err := c.cfg.Derive(key[0], key[1])
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing, nil
	}
	c.entries[key] = p
	return p, nil
}

// Len returns the number of cached palettes.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
