package tileassist

import (
	"crypto/sha256"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/bodgit/tileassist/codec"
	"github.com/bodgit/tileassist/palette"
	"github.com/bodgit/tileassist/tile"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// Colors used in progress mode
var (
	colorUnpainted = color.NRGBA{128, 128, 128, 255}
	colorPainted   = color.NRGBA{0, 255, 0, 255}
	colorWrong     = color.NRGBA{255, 0, 0, 255}
	colorNone      = color.NRGBA{}
)

func alpha(opacity float64) uint8 {
	return uint8(math.Round(opacity * 0xff))
}

// RenderTile draws the overlay onto the tile image raw and returns the
// result encoded in the same format. The input is returned unmodified if
// there is nothing to draw or anything fails.
func (a *Assist) RenderTile(tileX, tileY int, raw []byte) []byte {
	key := tile.Key{X: tileX, Y: tileY}
	hash := sha256.Sum256(raw)

	// Read before anything else so a result computed from state that is
	// invalidated meanwhile is never stored
	gen := a.cache.Generation()

	if e, ok := a.cache.Get(key, hash); ok {
		return e.Blob
	}

	a.mu.RLock()
	placement, settings := a.placement, a.settings
	a.mu.RUnlock()

	raster := a.source.Raster()
	if placement == nil || raster == nil || !settings.Show {
		return raw
	}

	inTile, inImage, ok := placement.Overlap(key, raster.Rect.Size())
	if !ok {
		return raw
	}

	c := compositor{
		palette:  a.palette,
		settings: settings,
		raster:   raster,
		inTile:   inTile,
		inImage:  inImage,
	}

	blob, progress, err := c.composite(raw)
	if err != nil {
		a.logger.Warn("unable to composite tile", zap.Stringer("tile", key), zap.Error(err))
		return raw
	}

	if a.cache.Put(gen, &Entry{Key: key, Hash: hash, Blob: blob, Progress: progress}) {
		a.cache.Recompute()
	}

	return blob
}

type compositor struct {
	palette  *palette.Palette
	settings Settings
	raster   *image.NRGBA
	inTile   image.Rectangle
	inImage  image.Rectangle
}

func (c *compositor) enabled() map[uint32]struct{} {
	enabled := make(map[uint32]struct{}, len(c.settings.Colors))
	for _, name := range c.settings.Colors {
		if e, ok := c.palette.Entry(name); ok {
			enabled[palette.Hash(e.RGBA)] = struct{}{}
		}
	}
	return enabled
}

// classify returns the overlay color for a single pixel. want is the reduced
// image pixel and got is the tile pixel at the same position.
func classify(mode Mode, enabled map[uint32]struct{}, want, got color.NRGBA) color.NRGBA {
	if _, ok := enabled[palette.Hash(want)]; !ok {
		return colorNone
	}
	if mode == ModeImage {
		return want
	}
	switch {
	case want.A != 0 && got.A == 0:
		return colorUnpainted
	case matches(want, got):
		return colorPainted
	default:
		return colorWrong
	}
}

// matches reports whether got is painted with want. Every fully transparent
// pixel is the same color whatever its RGB channels hold.
func matches(want, got color.NRGBA) bool {
	return got == want || (got.A == 0 && want.A == 0)
}

func decodeTile(raw []byte) (*image.NRGBA, codec.Format, error) {
	m, f, err := codec.Decode(raw)
	if err != nil {
		return nil, f, err
	}
	if m.Rect.Dx() == tile.Size && m.Rect.Dy() == tile.Size {
		return m, f, nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, tile.Size, tile.Size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), m, m.Bounds(), draw.Src, nil)
	return dst, f, nil
}

// overlay classifies every pixel of the overlapping area and counts the
// progress of each color in the same pass
func (c *compositor) overlay(base *image.NRGBA) (*image.NRGBA, map[uint32]*Progress) {
	enabled := c.enabled()
	counts := make(map[uint32]*Progress)

	w, h := c.inTile.Dx(), c.inTile.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := c.raster.NRGBAAt(c.inImage.Min.X+x, c.inImage.Min.Y+y)
			got := base.NRGBAAt(c.inTile.Min.X+x, c.inTile.Min.Y+y)

			hash := palette.Hash(want)
			p, ok := counts[hash]
			if !ok {
				p = new(Progress)
				counts[hash] = p
			}
			p.Total++
			if matches(want, got) {
				p.Painted++
			}

			out.SetNRGBA(x, y, classify(c.settings.Mode, enabled, want, got))
		}
	}

	return out, counts
}

func (c *compositor) progress(counts map[uint32]*Progress) map[string]Progress {
	progress := make(map[string]Progress, len(counts))
	for hash, p := range counts {
		name := fmt.Sprintf("#%08x", hash)
		if e, ok := c.palette.Lookup(hash); ok {
			name = e.Name
		}
		t := progress[name]
		t.Painted += p.Painted
		t.Total += p.Total
		progress[name] = t
	}
	return progress
}

func (c *compositor) background() (color.NRGBA, bool) {
	a := alpha(c.settings.BackgroundOpacity)
	switch c.settings.Background {
	case BackgroundBlack:
		return color.NRGBA{0, 0, 0, a}, true
	case BackgroundWhite:
		return color.NRGBA{255, 255, 255, a}, true
	default:
		return color.NRGBA{}, false
	}
}

func (c *compositor) composite(raw []byte) ([]byte, map[string]Progress, error) {
	base, format, err := decodeTile(raw)
	if err != nil {
		return nil, nil, err
	}

	overlay, counts := c.overlay(base)

	out := image.NewRGBA(image.Rect(0, 0, tile.Size, tile.Size))
	if bg, ok := c.background(); ok {
		draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	draw.Draw(out, out.Bounds(), base, image.Point{}, draw.Over)
	draw.DrawMask(out, c.inTile, overlay, image.Point{}, image.NewUniform(color.Alpha{alpha(c.settings.Opacity)}), image.Point{}, draw.Over)

	blob, err := codec.Encode(out, format)
	if err != nil {
		return nil, nil, err
	}

	return blob, c.progress(counts), nil
}
