package tileassist

import (
	"fmt"
	"strings"

	"github.com/bodgit/tileassist/palette"
)

// Mode selects how the overlay is drawn
type Mode int

// Overlay modes
const (
	// ModeImage draws the reduced image itself
	ModeImage Mode = iota
	// ModeProgress draws each pixel as painted, unpainted or wrong
	ModeProgress
)

var modeNames = []string{"image", "progress"}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the mode with the given name
func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(s, n) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("tileassist: unknown overlay mode %q", s)
}

// Background selects the solid color drawn beneath each tile
type Background int

// Backgrounds
const (
	// BackgroundMap draws nothing so the map shows through
	BackgroundMap Background = iota
	BackgroundBlack
	BackgroundWhite
)

var backgroundNames = []string{"map", "black", "white"}

func (b Background) String() string {
	if b >= 0 && int(b) < len(backgroundNames) {
		return backgroundNames[b]
	}
	return fmt.Sprintf("Background(%d)", int(b))
}

// ParseBackground returns the background with the given name
func ParseBackground(s string) (Background, error) {
	for i, n := range backgroundNames {
		if strings.EqualFold(s, n) {
			return Background(i), nil
		}
	}
	return 0, fmt.Errorf("tileassist: unknown background %q", s)
}

// Settings controls how the overlay is displayed. Changing any of them
// invalidates every composited tile.
type Settings struct {
	Show              bool
	Colors            []string
	Mode              Mode
	Opacity           float64
	Background        Background
	BackgroundOpacity float64
}

// DefaultSettings shows every color of p in image mode at half opacity over
// the map
func DefaultSettings(p *palette.Palette) Settings {
	return Settings{
		Show:              true,
		Colors:            p.Names(),
		Mode:              ModeImage,
		Opacity:           0.5,
		Background:        BackgroundMap,
		BackgroundOpacity: 1,
	}
}

// Validate checks the settings are within range
func (s Settings) Validate() error {
	if s.Mode != ModeImage && s.Mode != ModeProgress {
		return fmt.Errorf("tileassist: invalid overlay mode %d", s.Mode)
	}
	if s.Background < BackgroundMap || s.Background > BackgroundWhite {
		return fmt.Errorf("tileassist: invalid background %d", s.Background)
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("tileassist: overlay opacity %v out of range", s.Opacity)
	}
	if s.BackgroundOpacity < 0 || s.BackgroundOpacity > 1 {
		return fmt.Errorf("tileassist: background opacity %v out of range", s.BackgroundOpacity)
	}
	return nil
}
