package tileassist

import (
	"image"

	"github.com/bodgit/tileassist/palette"
	"github.com/bodgit/tileassist/tile"
)

// CorrectPlacement replaces the palette index of each pixel being placed on
// tile (tileX, tileY) with the index the reduced image has at that position,
// or 0 where the image is transparent. coords are offsets within the tile and
// colors holds the requested index of each. Positions outside of the image
// keep their requested color. colors is modified in place and returned.
func (a *Assist) CorrectPlacement(tileX, tileY int, coords []image.Point, colors []uint8) []uint8 {
	a.mu.RLock()
	placement, show := a.placement, a.settings.Show
	a.mu.RUnlock()

	raster := a.source.Raster()
	if !show || placement == nil || raster == nil {
		return colors
	}

	key := tile.Key{X: tileX, Y: tileY}
	size := raster.Rect.Size()
	if !placement.Covers(key, size) {
		return colors
	}

	for i, local := range coords {
		if i >= len(colors) {
			break
		}
		pt, ok := placement.Locate(key, local, size)
		if !ok {
			continue
		}
		c := raster.NRGBAAt(pt.X, pt.Y)
		if c.A == 0 {
			colors[i] = 0
			continue
		}
		if e, ok := a.palette.Lookup(palette.Hash(c)); ok {
			colors[i] = e.Index
		}
	}

	return colors
}
