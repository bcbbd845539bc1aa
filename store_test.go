package tileassist

import (
	"path/filepath"
	"testing"

	"github.com/bodgit/tileassist/palette"
	"github.com/bodgit/tileassist/state"
	"github.com/bodgit/tileassist/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "tileassist.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})
	return s
}

func TestStoreSnapshot(t *testing.T) {
	s := newStore(t)

	snapshot, err := s.LoadSnapshot()
	require.NoError(t, err)
	assert.Nil(t, snapshot)

	want := &state.Snapshot{
		Raster:          sourceImage(t),
		Placement:       &tile.Placement{TileX: 1, TileY: -2, LocalX: 3, LocalY: 4},
		Width:           10,
		Height:          20,
		LockAspectRatio: true,
		Colors:          []string{"Red", "White"},
		Dithering:       true,
	}
	require.NoError(t, s.SaveSnapshot(want))

	snapshot, err = s.LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, want, snapshot)

	// Saving again replaces it
	want.Placement = nil
	require.NoError(t, s.SaveSnapshot(want))
	snapshot, err = s.LoadSnapshot()
	require.NoError(t, err)
	assert.Nil(t, snapshot.Placement)

	require.NoError(t, s.ClearSnapshot())
	snapshot, err = s.LoadSnapshot()
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestStoreSnapshotChecksum(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SaveSnapshot(&state.Snapshot{Raster: sourceImage(t)}))

	_, err := s.db.Exec("UPDATE snapshot SET sha256 = 'bogus'")
	require.NoError(t, err)

	_, err = s.LoadSnapshot()
	assert.ErrorIs(t, err, state.ErrInvalidSnapshot)
}

func TestStoreSettings(t *testing.T) {
	p := palette.Default()
	s := newStore(t)

	settings, err := s.LoadSettings(p)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(p), settings)

	want := Settings{
		Show:              false,
		Colors:            []string{"Black", "Red"},
		Mode:              ModeProgress,
		Opacity:           0.25,
		Background:        BackgroundWhite,
		BackgroundOpacity: 0.75,
	}
	require.NoError(t, s.SaveSettings(want))

	settings, err = s.LoadSettings(p)
	require.NoError(t, err)
	assert.Equal(t, want, settings)

	// No colors survives the round trip
	want.Colors = []string{}
	require.NoError(t, s.SaveSettings(want))
	settings, err = s.LoadSettings(p)
	require.NoError(t, err)
	assert.Equal(t, []string{}, settings.Colors)

	want.Opacity = 3
	assert.Error(t, s.SaveSettings(want))
}
