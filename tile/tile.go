/*
Package tile implements the geometry of the canvas tile grid.

The canvas is split into square tiles of 1000 by 1000 pixels addressed by an
integer (x, y) pair. An image is anchored onto the grid by a Placement which
names the tile holding its top-left pixel and the offset within that tile.
*/
package tile

import (
	"fmt"
	"image"
)

// Size is the width and height of a tile in pixels
const Size = 1000

// Key identifies a tile
type Key struct {
	X, Y int
}

func (k Key) String() string {
	return fmt.Sprintf("%d-%d", k.X, k.Y)
}

// Bounds returns the area covered by the tile in absolute canvas pixels
func (k Key) Bounds() image.Rectangle {
	return image.Rect(k.X*Size, k.Y*Size, (k.X+1)*Size, (k.Y+1)*Size)
}

// Placement anchors the top-left corner of an image within the tile grid
type Placement struct {
	TileX, TileY   int
	LocalX, LocalY int
}

// Origin returns the absolute canvas position of the anchor
func (p Placement) Origin() image.Point {
	return image.Pt(p.TileX*Size+p.LocalX, p.TileY*Size+p.LocalY)
}

// Bounds returns the area covered by an image of the given size in absolute
// canvas pixels
func (p Placement) Bounds(size image.Point) image.Rectangle {
	return image.Rectangle{Max: size}.Add(p.Origin())
}

// Span returns the half-open range of tiles touched by an image of the given
// size
func (p Placement) Span(size image.Point) (min, max Key) {
	b := p.Bounds(size)
	min = Key{floorDiv(b.Min.X, Size), floorDiv(b.Min.Y, Size)}
	max = Key{floorDiv(b.Max.X-1, Size) + 1, floorDiv(b.Max.Y-1, Size) + 1}
	return
}

// Covers reports whether an image of the given size overlaps tile k
func (p Placement) Covers(k Key, size image.Point) bool {
	return p.Bounds(size).Overlaps(k.Bounds())
}

// Overlap returns the intersection of tile k with an image of the given size,
// once relative to the tile and once relative to the image. ok is false if
// they don't intersect.
func (p Placement) Overlap(k Key, size image.Point) (inTile, inImage image.Rectangle, ok bool) {
	b := p.Bounds(size)
	t := k.Bounds()
	r := b.Intersect(t)
	if r.Empty() {
		return image.Rectangle{}, image.Rectangle{}, false
	}
	return r.Sub(t.Min), r.Sub(b.Min), true
}

// Locate converts a pixel offset within tile k to a position within an image
// placed at p. ok is false if the position falls outside of an image of the
// given size.
func (p Placement) Locate(k Key, local image.Point, size image.Point) (image.Point, bool) {
	pt := k.Bounds().Min.Add(local).Sub(p.Origin())
	return pt, pt.In(image.Rectangle{Max: size})
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
