package tileassist

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"image"
	"slices"
	"sync"

	"github.com/bodgit/tileassist/codec"
	"github.com/bodgit/tileassist/palette"
	"github.com/bodgit/tileassist/reduce"
	"go.uber.org/zap"
)

const (
	// MaxSourceBytes is the largest image upload accepted
	MaxSourceBytes = 1 << (10 * 2)
	// MaxPixels is the largest image accepted after resizing
	MaxPixels = 1000 * 1000
)

// SourceState is the state of a Source
type SourceState int

// Source states
const (
	StateEmpty SourceState = iota
	StateLoading
	StateReady
)

var stateNames = []string{"empty", "loading", "ready"}

func (s SourceState) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("SourceState(%d)", int(s))
}

// Event is passed to Source listeners
type Event int

// Source events
const (
	// EventReady is sent after a reduced image has been committed
	EventReady Event = iota
	// EventCleared is sent after the image has been removed
	EventCleared
)

// Source owns the uploaded image and its palette reduced raster. The raster
// is only replaced wholesale so a pointer returned by Raster can be read
// without locking.
type Source struct {
	palette *palette.Palette
	worker  *reduce.Worker
	logger  *zap.Logger

	mu        sync.RWMutex
	seq       uint64
	state     SourceState
	data      []byte
	identity  [sha256.Size]byte
	decoded   *image.NRGBA
	format    codec.Format
	size      image.Point
	config    reduce.Config
	result    *reduce.Result
	listeners []func(Event)
}

// NewSource returns an empty Source reducing images onto p
func NewSource(p *palette.Palette, logger *zap.Logger) *Source {
	return &Source{
		palette: p,
		worker:  reduce.NewWorker(p),
		logger:  logger,
	}
}

// Subscribe registers fn to be called after every committed change
func (s *Source) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, fn)
}

func (s *Source) notify(e Event) {
	s.mu.RLock()
	listeners := slices.Clone(s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(e)
	}
}

// Set loads data, resizes it to size and reduces it according to cfg. A zero
// size keeps the native dimensions. If data is the same image as is already
// loaded then decoding is skipped. On any error the previously loaded image
// is left in place.
func (s *Source) Set(ctx context.Context, data []byte, size image.Point, cfg reduce.Config) error {
	if len(data) > MaxSourceBytes {
		return fmt.Errorf("%w: image is %d bytes, limit is %d", ErrSizeLimitExceeded, len(data), MaxSourceBytes)
	}
	if _, err := s.palette.Colors(cfg.Colors); err != nil {
		return err
	}

	identity := sha256.Sum256(data)

	s.mu.Lock()
	if s.state == StateReady && identity == s.identity && size == s.size && cfg.Equal(s.config) {
		s.mu.Unlock()
		return nil
	}
	var decoded *image.NRGBA
	format := s.format
	if s.decoded != nil && identity == s.identity {
		decoded = s.decoded
	}
	s.mu.Unlock()

	if decoded == nil {
		var err error
		if decoded, format, err = codec.Decode(data); err != nil {
			return err
		}
		s.logger.Debug("decoded source", zap.Stringer("format", format), zap.Int("width", decoded.Rect.Dx()), zap.Int("height", decoded.Rect.Dy()))
	}

	raster := codec.Resize(decoded, size)
	if n := raster.Rect.Dx() * raster.Rect.Dy(); n > MaxPixels {
		return fmt.Errorf("%w: image is %d pixels, limit is %d", ErrSizeLimitExceeded, n, MaxPixels)
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.state = StateLoading
	s.mu.Unlock()

	result, err := s.worker.Do(ctx, reduce.Request{Image: raster, Config: cfg})

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return reduce.ErrSuperseded
	}
	if err != nil {
		// Another load may have been in flight, fall back to whatever was
		// last committed
		s.state = StateEmpty
		if s.result != nil {
			s.state = StateReady
		}
		s.mu.Unlock()
		return err
	}
	s.state = StateReady
	s.data = bytes.Clone(data)
	s.identity = identity
	s.decoded = decoded
	s.format = format
	s.size = size
	s.config = reduce.Config{Colors: append([]string(nil), cfg.Colors...), Dithering: cfg.Dithering}
	s.result = result
	s.mu.Unlock()

	s.logger.Info("source ready", zap.Int("width", result.Image.Rect.Dx()), zap.Int("height", result.Image.Rect.Dy()), zap.Int("colors", len(result.Histogram)), zap.Bool("dithering", cfg.Dithering))
	s.notify(EventReady)

	return nil
}

// Reconfigure reduces the currently loaded image again with a new size or
// configuration
func (s *Source) Reconfigure(ctx context.Context, size image.Point, cfg reduce.Config) error {
	s.mu.RLock()
	data := s.data
	s.mu.RUnlock()

	if data == nil {
		return ErrNoSource
	}
	return s.Set(ctx, data, size, cfg)
}

// Clear discards the image and cancels any reduction in flight
func (s *Source) Clear() {
	s.mu.Lock()
	s.seq++
	s.worker.Cancel()
	s.state = StateEmpty
	s.data = nil
	s.identity = [sha256.Size]byte{}
	s.decoded = nil
	s.format = codec.Unknown
	s.size = image.Point{}
	s.config = reduce.Config{}
	s.result = nil
	s.mu.Unlock()

	s.notify(EventCleared)
}

// State returns the current state
func (s *Source) State() SourceState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Raster returns the palette reduced image, or nil if there isn't one. The
// image must not be modified.
func (s *Source) Raster() *image.NRGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.result == nil {
		return nil
	}
	return s.result.Image
}

// Histogram returns the color usage of the reduced image
func (s *Source) Histogram() reduce.Histogram {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.result == nil {
		return nil
	}
	return append(reduce.Histogram(nil), s.result.Histogram...)
}

// Data returns the bytes of the loaded image
func (s *Source) Data() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data
}

// Identity returns the SHA-256 of the loaded image
func (s *Source) Identity() [sha256.Size]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.identity
}

// Config returns the configuration the current raster was reduced with
func (s *Source) Config() reduce.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config
}

// Size returns the requested size of the current raster
func (s *Source) Size() image.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.size
}

// FitSize returns the size to reduce an image with native dimensions to
// when asked for width x height. A zero dimension is derived from the other
// one keeping the aspect ratio, as is the height whenever lock is set.
func FitSize(native image.Point, width, height int, lock bool) image.Point {
	if native.X <= 0 || native.Y <= 0 || (width <= 0 && height <= 0) {
		return image.Point{}
	}
	switch {
	case width <= 0:
		width = max(1, (height*native.X+native.Y/2)/native.Y)
	case height <= 0, lock:
		height = max(1, (width*native.Y+native.X/2)/native.X)
	}
	return image.Pt(width, height)
}
