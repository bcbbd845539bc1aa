package state

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/bodgit/tileassist/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	tables := []struct {
		name string
		s    Snapshot
	}{
		{
			"full",
			Snapshot{
				Raster:          bytes.Repeat([]byte{0x89, 'P', 'N', 'G'}, 1000),
				Placement:       &tile.Placement{TileX: 1023, TileY: -4, LocalX: 999, LocalY: 0},
				Width:           640,
				Height:          480,
				LockAspectRatio: true,
				Colors:          []string{"Black", "Light Slate Blue", "Transparent"},
				Dithering:       true,
			},
		},
		{
			"unplaced",
			Snapshot{
				Raster: []byte{1, 2, 3},
				Width:  1,
				Height: 1,
				Colors: []string{},
			},
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			b, err := table.s.MarshalBinary()
			require.NoError(t, err)
			assert.LessOrEqual(t, len(b), MaxSize)

			var s Snapshot
			require.NoError(t, s.UnmarshalBinary(b))
			assert.Equal(t, table.s, s)
		})
	}
}

func TestSnapshotEmptyRaster(t *testing.T) {
	b, err := (&Snapshot{}).MarshalBinary()
	require.NoError(t, err)

	var s Snapshot
	require.NoError(t, s.UnmarshalBinary(b))
	assert.Empty(t, s.Raster)
	assert.Nil(t, s.Placement)
}

func TestSnapshotErrors(t *testing.T) {
	var s Snapshot

	assert.ErrorIs(t, s.UnmarshalBinary(make([]byte, MaxSize+1)), ErrSizeLimitExceeded)
	assert.ErrorIs(t, s.UnmarshalBinary(nil), ErrInvalidSnapshot)
	assert.ErrorIs(t, s.UnmarshalBinary([]byte("TAS2xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx")), ErrInvalidSnapshot)

	good, err := (&Snapshot{Raster: []byte("raster"), Colors: []string{"Red"}}).MarshalBinary()
	require.NoError(t, err)
	assert.ErrorIs(t, s.UnmarshalBinary(good[:len(good)-1]), ErrInvalidSnapshot)

	// Random data doesn't compress so this can't fit
	r := rand.New(rand.NewSource(1))
	raster := make([]byte, MaxSize)
	r.Read(raster)
	_, err = (&Snapshot{Raster: raster}).MarshalBinary()
	assert.ErrorIs(t, err, ErrSizeLimitExceeded)

	// A failed load leaves the snapshot untouched
	s = Snapshot{Width: 7}
	assert.Error(t, s.UnmarshalBinary(good[:10]))
	assert.Equal(t, 7, s.Width)
}
