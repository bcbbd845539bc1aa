package tileassist

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/bodgit/tileassist/palette"
	"github.com/bodgit/tileassist/reduce"
	"github.com/bodgit/tileassist/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var (
	red   = color.NRGBA{237, 28, 36, 255}
	white = color.NRGBA{255, 255, 255, 255}
	none  = color.NRGBA{}
)

func encodePNG(t *testing.T, m image.Image) []byte {
	t.Helper()
	b := new(bytes.Buffer)
	require.NoError(t, png.Encode(b, m))
	return b.Bytes()
}

func decodePNG(t *testing.T, b []byte) image.Image {
	t.Helper()
	m, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	return m
}

func nrgbaAt(m image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
}

// sourceImage is 2x2: red, white on the first row, red and transparent on
// the second
func sourceImage(t *testing.T) []byte {
	m := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	m.SetNRGBA(0, 0, color.NRGBA{250, 20, 30, 255})
	m.SetNRGBA(1, 0, color.NRGBA{250, 250, 250, 255})
	m.SetNRGBA(0, 1, color.NRGBA{240, 30, 40, 255})
	m.SetNRGBA(1, 1, color.NRGBA{9, 9, 9, 0})
	return encodePNG(t, m)
}

var sourceConfig = reduce.Config{Colors: []string{"Red", "White"}}

func newAssist(t *testing.T) *Assist {
	t.Helper()
	a := New(palette.Default(), zaptest.NewLogger(t))
	require.NoError(t, a.SetImage(context.Background(), sourceImage(t), image.Point{}, sourceConfig))
	return a
}

func TestAssistPlacement(t *testing.T) {
	a := New(palette.Default(), nil)
	assert.Nil(t, a.Placement())

	p := &tile.Placement{TileX: 1, TileY: 2, LocalX: 3, LocalY: 4}
	a.SetPlacement(p)
	p.TileX = 9
	assert.Equal(t, &tile.Placement{TileX: 1, TileY: 2, LocalX: 3, LocalY: 4}, a.Placement())

	a.SetPlacement(nil)
	assert.Nil(t, a.Placement())
}

func TestAssistSettings(t *testing.T) {
	a := New(palette.Default(), nil)
	assert.Equal(t, DefaultSettings(a.Palette()), a.Settings())

	s := a.Settings()
	s.Opacity = 2
	assert.Error(t, a.SetSettings(s))

	s.Opacity = 1
	s.Mode = ModeProgress
	require.NoError(t, a.SetSettings(s))
	assert.Equal(t, ModeProgress, a.Settings().Mode)
}

func TestAssistSnapshot(t *testing.T) {
	a := New(palette.Default(), nil)
	_, err := a.Snapshot()
	assert.ErrorIs(t, err, ErrNoSource)

	a = newAssist(t)
	a.SetPlacement(&tile.Placement{TileX: 5, TileY: 6, LocalX: 7, LocalY: 8})
	a.SetLockAspectRatio(true)

	s, err := a.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, sourceImage(t), s.Raster)
	assert.Equal(t, 2, s.Width)
	assert.Equal(t, 2, s.Height)
	assert.True(t, s.LockAspectRatio)
	assert.Equal(t, sourceConfig.Colors, s.Colors)
	assert.False(t, s.Dithering)

	b := New(palette.Default(), nil)
	require.NoError(t, b.Restore(context.Background(), s))
	assert.Equal(t, a.Placement(), b.Placement())
	assert.Equal(t, a.Source().Raster().Pix, b.Source().Raster().Pix)
	assert.Equal(t, StateReady, b.Source().State())

	s2, err := b.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, s, s2)
}

func TestAssistClearImage(t *testing.T) {
	a := newAssist(t)
	a.SetPlacement(&tile.Placement{})

	a.ClearImage()
	assert.Nil(t, a.Placement())
	assert.Nil(t, a.Source().Raster())
	assert.Equal(t, StateEmpty, a.Source().State())
}

func TestAssistConfigure(t *testing.T) {
	a := New(palette.Default(), nil)
	assert.ErrorIs(t, a.Configure(context.Background(), image.Point{}, sourceConfig), ErrNoSource)

	a = newAssist(t)
	require.NoError(t, a.Configure(context.Background(), image.Pt(4, 4), reduce.Config{Colors: []string{"White"}}))
	assert.Equal(t, image.Rect(0, 0, 4, 4), a.Source().Raster().Rect)
	assert.Equal(t, reduce.Histogram{{Name: "White", Count: 12}, {Name: palette.Transparent, Count: 4}}, a.Source().Histogram())
}
