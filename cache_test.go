package tileassist

import (
	"testing"

	"github.com/bodgit/tileassist/tile"
	"github.com/stretchr/testify/assert"
)

func TestTileCacheGet(t *testing.T) {
	c := NewTileCache()
	key := tile.Key{X: 1, Y: 2}

	_, ok := c.Get(key, [32]byte{1})
	assert.False(t, ok)

	assert.True(t, c.Put(c.Generation(), &Entry{Key: key, Hash: [32]byte{1}}))
	e, ok := c.Get(key, [32]byte{1})
	assert.True(t, ok)
	assert.Equal(t, key, e.Key)

	// Same tile, different contents
	_, ok = c.Get(key, [32]byte{2})
	assert.False(t, ok)
}

func TestTileCacheRecompute(t *testing.T) {
	c := NewTileCache()

	progress, stale := c.Progress()
	assert.Empty(t, progress)
	assert.True(t, stale)

	gen := c.Generation()
	c.Put(gen, &Entry{Key: tile.Key{X: 0, Y: 0}, Progress: map[string]Progress{
		"Red":   {Painted: 3, Total: 5},
		"Black": {Painted: 0, Total: 2},
	}})
	c.Put(gen, &Entry{Key: tile.Key{X: 1, Y: 0}, Progress: map[string]Progress{
		"Black": {Painted: 1, Total: 3},
		"Blue":  {Painted: 5, Total: 5},
	}})
	c.Recompute()

	progress, stale = c.Progress()
	assert.False(t, stale)
	assert.Equal(t, []ColorProgress{
		{"Black", Progress{Painted: 1, Total: 5}},
		{"Blue", Progress{Painted: 5, Total: 5}},
		{"Red", Progress{Painted: 3, Total: 5}},
	}, progress)

	for _, p := range progress {
		assert.LessOrEqual(t, p.Painted, p.Total)
	}

	// Replacing a tile replaces its contribution
	c.Put(gen, &Entry{Key: tile.Key{X: 1, Y: 0}, Progress: map[string]Progress{
		"Blue": {Painted: 0, Total: 1},
	}})
	c.Recompute()
	progress, _ = c.Progress()
	assert.Equal(t, []ColorProgress{
		{"Red", Progress{Painted: 3, Total: 5}},
		{"Black", Progress{Painted: 0, Total: 2}},
		{"Blue", Progress{Painted: 0, Total: 1}},
	}, progress)
}

func TestTileCacheInvalidateAll(t *testing.T) {
	c := NewTileCache()
	gen := c.Generation()
	c.Put(gen, &Entry{Key: tile.Key{}, Progress: map[string]Progress{"Red": {Total: 1}}})
	c.Recompute()

	c.InvalidateAll()
	assert.Equal(t, 0, c.Len())
	assert.NotEqual(t, gen, c.Generation())

	progress, stale := c.Progress()
	assert.Empty(t, progress)
	assert.True(t, stale)

	// Anything composited before the invalidation is dropped
	assert.False(t, c.Put(gen, &Entry{Key: tile.Key{}}))
	assert.Equal(t, 0, c.Len())
}
