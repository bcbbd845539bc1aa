package tileassist

import (
	"sort"
	"sync"

	"github.com/bodgit/tileassist/tile"
)

// Progress counts the pixels of a single color
type Progress struct {
	Painted int
	Total   int
}

// ColorProgress is the progress of a named color
type ColorProgress struct {
	Name string
	Progress
}

// Entry is a composited tile
type Entry struct {
	Key      tile.Key
	Hash     [32]byte
	Blob     []byte
	Progress map[string]Progress
}

// TileCache holds composited tiles keyed by tile coordinate and aggregates
// their progress
type TileCache struct {
	mu       sync.RWMutex
	entries  map[tile.Key]*Entry
	gen      uint64
	progress []ColorProgress
	stale    bool
}

// NewTileCache returns an empty cache
func NewTileCache() *TileCache {
	return &TileCache{
		entries: make(map[tile.Key]*Entry),
		stale:   true,
	}
}

// Get returns the entry for key only if it was composited from a tile with
// the same hash
func (c *TileCache) Get(key tile.Key, hash [32]byte) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || e.Hash != hash {
		return nil, false
	}
	return e, true
}

// Generation returns the current generation, which changes every time the
// cache is invalidated
func (c *TileCache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.gen
}

// Put stores e if the cache hasn't been invalidated since gen was read,
// otherwise e was composited from stale state and is dropped
func (c *TileCache) Put(gen uint64, e *Entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return false
	}
	c.entries[e.Key] = e
	return true
}

// Len returns the number of cached tiles
func (c *TileCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// InvalidateAll drops every entry and marks the progress as stale until it
// is next recomputed
func (c *TileCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[tile.Key]*Entry)
	c.gen++
	c.progress = nil
	c.stale = true
}

// Recompute sums the progress of every cached tile
func (c *TileCache) Recompute() {
	c.mu.Lock()
	defer c.mu.Unlock()

	totals := make(map[string]Progress)
	for _, e := range c.entries {
		for name, p := range e.Progress {
			t := totals[name]
			t.Painted += p.Painted
			t.Total += p.Total
			totals[name] = t
		}
	}

	progress := make([]ColorProgress, 0, len(totals))
	for name, p := range totals {
		progress = append(progress, ColorProgress{name, p})
	}
	sort.Slice(progress, func(i, j int) bool {
		if progress[i].Total != progress[j].Total {
			return progress[i].Total > progress[j].Total
		}
		return progress[i].Name < progress[j].Name
	})

	c.progress = progress
	c.stale = false
}

// Progress returns a copy of the aggregated progress and whether it is stale
func (c *TileCache) Progress() ([]ColorProgress, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]ColorProgress(nil), c.progress...), c.stale
}
