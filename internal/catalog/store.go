package catalog

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	dbutil "github.com/llehouerou/songsearch/internal/db"
)

const (
	appName    = "songsearch"
	dbFileName = "songs.db"
)

// Store persists scanned songs in a SQLite database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the database location under the XDG data directory,
// creating parent directories as needed.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Open opens (or creates) the store at path. An empty path selects
// DefaultPath.
func Open(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		path = p
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s, err := NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an open database, creating the schema if needed.
func NewStore(db *sql.DB) (*Store, error) {
	if err := initSchema(db); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS songs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			mtime INTEGER NOT NULL,
			name TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT,
			genre TEXT,
			year TEXT,
			charter TEXT,
			playlist TEXT,
			source TEXT,
			instruments TEXT,
			added_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_songs_artist ON songs(artist);
	`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database, shared with the session state.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Songs loads every stored song.
func (s *Store) Songs() ([]*Song, error) {
	rows, err := s.db.Query(`
		SELECT id, path, mtime, name, artist, album, genre, year, charter, playlist, source, instruments
		FROM songs
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []*Song
	for rows.Next() {
		var (
			id                                    int64
			info                                  SongInfo
			album, genre, year, charter, playlist sql.NullString
			source, instruments                   sql.NullString
		)
		if err := rows.Scan(&id, &info.Path, &info.Mtime, &info.Name, &info.Artist,
			&album, &genre, &year, &charter, &playlist, &source, &instruments); err != nil {
			return nil, err
		}
		info.Album = dbutil.NullStringValue(album)
		info.Genre = dbutil.NullStringValue(genre)
		info.Year = dbutil.NullStringValue(year)
		info.Charter = dbutil.NullStringValue(charter)
		info.Playlist = dbutil.NullStringValue(playlist)
		info.Source = dbutil.NullStringValue(source)
		info.Instruments = decodeInstruments(dbutil.NullStringValue(instruments))

		song := NewSong(info)
		song.ID = id
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

// Mtimes returns the stored modification time of every song, keyed by path.
func (s *Store) Mtimes() (map[string]int64, error) {
	rows, err := s.db.Query(`SELECT path, mtime FROM songs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var path string
		var mtime int64
		if err := rows.Scan(&path, &mtime); err != nil {
			return nil, err
		}
		out[path] = mtime
	}
	return out, rows.Err()
}

// Upsert inserts or updates songs keyed by path in a single transaction.
func (s *Store) Upsert(infos []SongInfo) error {
	if len(infos) == 0 {
		return nil
	}
	now := time.Now().Unix()
	return dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO songs (path, mtime, name, artist, album, genre, year, charter, playlist, source, instruments, added_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET
				mtime = excluded.mtime,
				name = excluded.name,
				artist = excluded.artist,
				album = excluded.album,
				genre = excluded.genre,
				year = excluded.year,
				charter = excluded.charter,
				playlist = excluded.playlist,
				source = excluded.source,
				instruments = excluded.instruments,
				updated_at = excluded.updated_at
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, info := range infos {
			if _, err := stmt.Exec(info.Path, info.Mtime, info.Name, info.Artist,
				dbutil.StringToNull(info.Album), dbutil.StringToNull(info.Genre),
				dbutil.StringToNull(info.Year), dbutil.StringToNull(info.Charter),
				dbutil.StringToNull(info.Playlist), dbutil.StringToNull(info.Source),
				encodeInstruments(info.Instruments), now, now); err != nil {
				return fmt.Errorf("upsert %s: %w", info.Path, err)
			}
		}
		return nil
	})
}

// Delete removes the songs stored under the given paths.
func (s *Store) Delete(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	return dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		for _, p := range paths {
			if _, err := tx.Exec(`DELETE FROM songs WHERE path = ?`, p); err != nil {
				return err
			}
		}
		return nil
	})
}

// Count returns the number of stored songs.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM songs`).Scan(&count)
	return count, err
}

func encodeInstruments(list []Part) string {
	names := make([]string, 0, len(list))
	for _, i := range list {
		if n := i.String(); n != "" {
			names = append(names, n)
		}
	}
	return strings.Join(names, ",")
}

func decodeInstruments(s string) []Part {
	if s == "" {
		return nil
	}
	var out []Part
	for name := range strings.SplitSeq(s, ",") {
		if i, ok := ParseInstrument(name); ok {
			out = append(out, i)
		}
	}
	return out
}
