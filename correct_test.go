package tileassist

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrectPlacement(t *testing.T) {
	coords := []image.Point{{10, 20}, {11, 20}, {10, 21}, {11, 21}, {12, 20}, {0, 0}}

	tables := []struct {
		name   string
		assist func(*testing.T) *Assist
		tileX  int
		out    []uint8
	}{
		{
			"corrected",
			func(t *testing.T) *Assist {
				a := newAssist(t)
				a.SetPlacement(&origin)
				return a
			},
			0,
			[]uint8{7, 5, 7, 0, 9, 9},
		},
		{
			"other tile",
			func(t *testing.T) *Assist {
				a := newAssist(t)
				a.SetPlacement(&origin)
				return a
			},
			1,
			[]uint8{9, 9, 9, 9, 9, 9},
		},
		{
			"hidden",
			func(t *testing.T) *Assist {
				a := newAssist(t)
				a.SetPlacement(&origin)
				s := a.Settings()
				s.Show = false
				require.NoError(t, a.SetSettings(s))
				return a
			},
			0,
			[]uint8{9, 9, 9, 9, 9, 9},
		},
		{
			"no placement",
			newAssist,
			0,
			[]uint8{9, 9, 9, 9, 9, 9},
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			a := table.assist(t)
			colors := []uint8{9, 9, 9, 9, 9, 9}
			assert.Equal(t, table.out, a.CorrectPlacement(table.tileX, 0, coords, colors))
		})
	}
}

func TestCorrectPlacementShortColors(t *testing.T) {
	a := newAssist(t)
	a.SetPlacement(&origin)

	coords := []image.Point{{10, 20}, {11, 20}}
	assert.Equal(t, []uint8{7}, a.CorrectPlacement(0, 0, coords, []uint8{1}))
}
