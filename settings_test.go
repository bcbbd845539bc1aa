package tileassist

import (
	"testing"

	"github.com/bodgit/tileassist/palette"
	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	tables := []struct {
		name string
		mode Mode
		err  bool
	}{
		{"image", ModeImage, false},
		{"Progress", ModeProgress, false},
		{"sepia", 0, true},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			mode, err := ParseMode(table.name)
			if table.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, table.mode, mode)
		})
	}

	assert.Equal(t, "progress", ModeProgress.String())
	assert.Equal(t, "Mode(5)", Mode(5).String())
}

func TestParseBackground(t *testing.T) {
	tables := []struct {
		name       string
		background Background
		err        bool
	}{
		{"map", BackgroundMap, false},
		{"BLACK", BackgroundBlack, false},
		{"white", BackgroundWhite, false},
		{"plaid", 0, true},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			background, err := ParseBackground(table.name)
			if table.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, table.background, background)
		})
	}

	assert.Equal(t, "white", BackgroundWhite.String())
	assert.Equal(t, "Background(-1)", Background(-1).String())
}

func TestSettingsValidate(t *testing.T) {
	p := palette.Default()

	tables := []struct {
		name   string
		change func(*Settings)
		err    bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"opaque", func(s *Settings) { s.Opacity, s.BackgroundOpacity = 1, 0 }, false},
		{"mode", func(s *Settings) { s.Mode = 2 }, true},
		{"background", func(s *Settings) { s.Background = 3 }, true},
		{"opacity", func(s *Settings) { s.Opacity = -0.1 }, true},
		{"background opacity", func(s *Settings) { s.BackgroundOpacity = 1.5 }, true},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			s := DefaultSettings(p)
			table.change(&s)
			if table.err {
				assert.Error(t, s.Validate())
			} else {
				assert.NoError(t, s.Validate())
			}
		})
	}
}
