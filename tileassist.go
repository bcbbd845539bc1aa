/*
Package tileassist overlays a palette reduced image onto the tiles of a
shared pixel canvas.

An Assist ties together the palette, the uploaded source image and a cache of
composited tiles. Intercepted tile images are passed to RenderTile which
returns them with the overlay drawn on top and records how many pixels of
each color are already painted correctly. Pixel placements are passed to
CorrectPlacement which replaces each color with the one the image wants at
that position.
*/
package tileassist

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/bodgit/tileassist/codec"
	"github.com/bodgit/tileassist/palette"
	"github.com/bodgit/tileassist/reduce"
	"github.com/bodgit/tileassist/state"
	"github.com/bodgit/tileassist/tile"
	"go.uber.org/zap"
)

var (
	// ErrUnsupportedFormat is returned for an image that isn't PNG, JPEG
	// or WebP
	ErrUnsupportedFormat = codec.ErrUnsupportedFormat
	// ErrDecodeFailure is returned for a corrupt image
	ErrDecodeFailure = codec.ErrDecodeFailure
	// ErrEncodeFailure is logged when a composited tile can't be written
	ErrEncodeFailure = codec.ErrEncodeFailure
	// ErrSizeLimitExceeded is returned for an image that is too big
	ErrSizeLimitExceeded = errors.New("tileassist: size limit exceeded")
	// ErrNoSource is returned when an operation needs an image but none is
	// loaded
	ErrNoSource = errors.New("tileassist: no source image")
)

// Assist holds the state shared between the tile and placement hooks
type Assist struct {
	palette *palette.Palette
	source  *Source
	cache   *TileCache
	logger  *zap.Logger

	mu              sync.RWMutex
	placement       *tile.Placement
	settings        Settings
	lockAspectRatio bool
}

// New returns an Assist using palette p with default settings
func New(p *palette.Palette, logger *zap.Logger) *Assist {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Assist{
		palette:  p,
		source:   NewSource(p, logger.Named("source")),
		cache:    NewTileCache(),
		logger:   logger,
		settings: DefaultSettings(p),
	}
	a.source.Subscribe(func(Event) {
		a.cache.InvalidateAll()
	})
	return a
}

// Palette returns the palette
func (a *Assist) Palette() *palette.Palette {
	return a.palette
}

// Source returns the source image manager
func (a *Assist) Source() *Source {
	return a.source
}

// Cache returns the tile cache
func (a *Assist) Cache() *TileCache {
	return a.cache
}

// SetImage loads a new image, see Source.Set
func (a *Assist) SetImage(ctx context.Context, data []byte, size image.Point, cfg reduce.Config) error {
	return a.source.Set(ctx, data, size, cfg)
}

// Configure reduces the current image again with a new size or configuration
func (a *Assist) Configure(ctx context.Context, size image.Point, cfg reduce.Config) error {
	return a.source.Reconfigure(ctx, size, cfg)
}

// ClearImage removes the image and its placement
func (a *Assist) ClearImage() {
	a.mu.Lock()
	a.placement = nil
	a.mu.Unlock()

	a.source.Clear()
}

// SetPlacement anchors the image on the canvas, or unplaces it if p is nil
func (a *Assist) SetPlacement(p *tile.Placement) {
	a.mu.Lock()
	if p != nil {
		dup := *p
		p = &dup
	}
	a.placement = p
	a.mu.Unlock()

	a.cache.InvalidateAll()
}

// Placement returns the current placement or nil
func (a *Assist) Placement() *tile.Placement {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.placement == nil {
		return nil
	}
	dup := *a.placement
	return &dup
}

// SetSettings changes how the overlay is displayed
func (a *Assist) SetSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.Colors = append([]string(nil), s.Colors...)

	a.mu.Lock()
	a.settings = s
	a.mu.Unlock()

	a.cache.InvalidateAll()
	return nil
}

// Settings returns the current display settings
func (a *Assist) Settings() Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := a.settings
	s.Colors = append([]string(nil), s.Colors...)
	return s
}

// SetLockAspectRatio records whether the image size should keep its aspect
// ratio when resized
func (a *Assist) SetLockAspectRatio(lock bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.lockAspectRatio = lock
}

// Progress returns the per-color progress over every composited tile and
// whether it is stale
func (a *Assist) Progress() ([]ColorProgress, bool) {
	return a.cache.Progress()
}

// Snapshot returns the persistable state of the loaded image. It returns
// ErrNoSource if no image is loaded.
func (a *Assist) Snapshot() (*state.Snapshot, error) {
	if a.source.State() != StateReady {
		return nil, ErrNoSource
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	raster := a.source.Raster()
	cfg := a.source.Config()
	s := &state.Snapshot{
		Raster:          a.source.Data(),
		Placement:       a.placement,
		Width:           raster.Rect.Dx(),
		Height:          raster.Rect.Dy(),
		LockAspectRatio: a.lockAspectRatio,
		Colors:          append([]string(nil), cfg.Colors...),
		Dithering:       cfg.Dithering,
	}
	if s.Placement != nil {
		dup := *s.Placement
		s.Placement = &dup
	}
	return s, nil
}

// Restore loads the image and placement from a snapshot
func (a *Assist) Restore(ctx context.Context, s *state.Snapshot) error {
	size := image.Pt(s.Width, s.Height)
	if err := a.source.Set(ctx, s.Raster, size, reduce.Config{Colors: s.Colors, Dithering: s.Dithering}); err != nil {
		return err
	}

	a.SetLockAspectRatio(s.LockAspectRatio)
	a.SetPlacement(s.Placement)

	return nil
}
