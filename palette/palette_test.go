package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{237, 28, 36, 255}
	white = color.NRGBA{255, 255, 255, 255}
	none  = color.NRGBA{0, 0, 0, 0}
)

func TestHash(t *testing.T) {
	assert.Equal(t, uint32(0xed1cff24), Hash(red))
	assert.Equal(t, uint32(0x00000000), Hash(none))
	// Alpha sits between green and blue
	assert.Equal(t, uint32(0x01020403), Hash(color.NRGBA{1, 2, 3, 4}))
}

func TestDefault(t *testing.T) {
	p := Default()

	assert.Len(t, p.Names(), 64)

	e, ok := p.Entry("Red")
	require.True(t, ok)
	assert.Equal(t, uint8(7), e.Index)
	assert.Equal(t, red, e.RGBA)
	assert.False(t, e.Paid)

	e, ok = p.Lookup(Hash(red))
	require.True(t, ok)
	assert.Equal(t, "Red", e.Name)

	e, ok = p.Lookup(0)
	require.True(t, ok)
	assert.Equal(t, Transparent, e.Name)
	assert.Equal(t, uint8(0), e.Index)

	_, ok = p.Lookup(Hash(color.NRGBA{1, 2, 3, 255}))
	assert.False(t, ok)

	// Every entry's hash resolves to an entry with the same color
	for _, e := range p.Entries() {
		got, ok := p.Lookup(Hash(e.RGBA))
		require.True(t, ok, e.Name)
		assert.Equal(t, e.RGBA, got.RGBA)
	}

	assert.Len(t, append(p.Free(), p.Paid()...), 64)
}

func TestNew(t *testing.T) {
	_, err := New([]Entry{{Name: "A"}, {Name: "A"}})
	assert.Error(t, err)

	p, err := New([]Entry{
		{Name: "First", Index: 1, RGBA: red},
		{Name: "Second", Index: 2, RGBA: red},
	})
	require.NoError(t, err)
	e, ok := p.Lookup(Hash(red))
	require.True(t, ok)
	assert.Equal(t, "First", e.Name)
}

func TestColors(t *testing.T) {
	p := Default()

	c, err := p.Colors([]string{"White", "Red"})
	require.NoError(t, err)
	assert.Equal(t, []color.NRGBA{white, red}, c)

	_, err = p.Colors([]string{"Red", "Ultraviolet"})
	assert.ErrorIs(t, err, ErrUnknownColor)
}

func TestContains(t *testing.T) {
	p := Default()

	tables := []struct {
		names []string
		free  bool
		paid  bool
	}{
		{nil, false, false},
		{[]string{"Red"}, true, false},
		{[]string{"Dark Red"}, false, true},
		{[]string{"Red", "Dark Red"}, true, true},
		{[]string{"Nope"}, false, false},
	}

	for _, table := range tables {
		assert.Equal(t, table.free, p.ContainsFree(table.names), table.names)
		assert.Equal(t, table.paid, p.ContainsPaid(table.names), table.names)
	}
}

func TestNearest(t *testing.T) {
	// Black against red and white, worked through the redmean formula:
	//   red:   (512+118.5)*237²/256 + 4*28² + (767-118.5)*36²/256 ≈ 144757
	//   white: (512+127.5)*255²/256 + 4*255² + (767-127.5)*255²/256 ≈ 584971
	black := color.NRGBA{0, 0, 0, 255}
	dr := distance(0, 0, 0, red)
	dw := distance(0, 0, 0, white)
	assert.InDelta(t, 144757.2, dr, 0.1)
	assert.InDelta(t, 584971.0, dw, 0.1)
	assert.Equal(t, red, Nearest(black, []color.NRGBA{red, white}))
	assert.Equal(t, red, Nearest(black, []color.NRGBA{white, red}))

	assert.Equal(t, red, Nearest(color.NRGBA{255, 0, 0, 255}, []color.NRGBA{red, white}))

	// Ties go to the first candidate
	assert.Equal(t, red, Nearest(red, []color.NRGBA{red, red, white}))

	// Transparent only matches transparent
	assert.Equal(t, none, Nearest(color.NRGBA{10, 10, 10, 0}, []color.NRGBA{red, none}))
	assert.Equal(t, red, Nearest(color.NRGBA{0, 0, 0, 255}, []color.NRGBA{none, red}))

	// Degenerate candidate lists
	assert.Equal(t, black, Nearest(red, nil))
	assert.Equal(t, black, Nearest(red, []color.NRGBA{none}))
}

func TestDistance(t *testing.T) {
	assert.Zero(t, Distance(red, red))
	assert.InDelta(t, 380.47, Distance(color.NRGBA{0, 0, 0, 255}, red), 0.01)
}
