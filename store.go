package tileassist

import (
	"crypto/sha256"
	"database/sql"
	"fmt"
	"strings"

	"github.com/bodgit/tileassist/palette"
	"github.com/bodgit/tileassist/state"
	_ "github.com/mattn/go-sqlite3"
)

// Store persists the image snapshot and display settings in SQLite
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the database in file
func NewStore(file string) (*Store, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS snapshot (id INTEGER PRIMARY KEY NOT NULL CHECK (id = 1), sha256 TEXT NOT NULL, blob BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS settings (id INTEGER PRIMARY KEY NOT NULL CHECK (id = 1), show INTEGER NOT NULL, colors TEXT NOT NULL, mode INTEGER NOT NULL, opacity REAL NOT NULL, background INTEGER NOT NULL, background_opacity REAL NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db: db,
	}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot replaces the stored snapshot
func (s *Store) SaveSnapshot(snapshot *state.Snapshot) error {
	b, err := snapshot.MarshalBinary()
	if err != nil {
		return err
	}
	sha := fmt.Sprintf("%X", sha256.Sum256(b))

	if _, err := s.db.Exec("INSERT OR REPLACE INTO snapshot (id, sha256, blob) VALUES (1, ?, ?)", sha, b); err != nil {
		return err
	}
	return nil
}

// LoadSnapshot returns the stored snapshot, or nil if there isn't one
func (s *Store) LoadSnapshot() (*state.Snapshot, error) {
	var sha string
	var b []byte
	switch err := s.db.QueryRow("SELECT sha256, blob FROM snapshot WHERE id = 1").Scan(&sha, &b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		if fmt.Sprintf("%X", sha256.Sum256(b)) != sha {
			return nil, fmt.Errorf("%w: checksum mismatch", state.ErrInvalidSnapshot)
		}
		snapshot := new(state.Snapshot)
		if err := snapshot.UnmarshalBinary(b); err != nil {
			return nil, err
		}
		return snapshot, nil
	default:
		return nil, err
	}
}

// ClearSnapshot removes the stored snapshot
func (s *Store) ClearSnapshot() error {
	if _, err := s.db.Exec("DELETE FROM snapshot"); err != nil {
		return err
	}
	return nil
}

// SaveSettings replaces the stored settings
func (s *Store) SaveSettings(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if _, err := s.db.Exec("INSERT OR REPLACE INTO settings (id, show, colors, mode, opacity, background, background_opacity) VALUES (1, ?, ?, ?, ?, ?, ?)",
		settings.Show, strings.Join(settings.Colors, "\n"), int(settings.Mode), settings.Opacity, int(settings.Background), settings.BackgroundOpacity); err != nil {
		return err
	}
	return nil
}

// LoadSettings returns the stored settings, or the defaults for p if none
// have been saved
func (s *Store) LoadSettings(p *palette.Palette) (Settings, error) {
	var settings Settings
	var colors string
	switch err := s.db.QueryRow("SELECT show, colors, mode, opacity, background, background_opacity FROM settings WHERE id = 1").Scan(&settings.Show, &colors, &settings.Mode, &settings.Opacity, &settings.Background, &settings.BackgroundOpacity); err {
	case sql.ErrNoRows:
		return DefaultSettings(p), nil
	case nil:
		settings.Colors = []string{}
		if colors != "" {
			settings.Colors = strings.Split(colors, "\n")
		}
		return settings, settings.Validate()
	default:
		return Settings{}, err
	}
}
