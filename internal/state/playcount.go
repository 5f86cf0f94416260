package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/jockey/internal/db"
	"github.com/llehouerou/jockey/internal/song"
)

// PlayCount holds the listening statistics of one song.
type PlayCount struct {
	SongID      int64
	Path        string
	Title       string
	Artist      string
	Plays       int
	Skips       int
	LastPlayed  time.Time
	LastSkipped time.Time
}

// IncrementPlayCount counts a play of s at the given time.
func (m *Manager) IncrementPlayCount(s song.Song, at time.Time) error {
	_, err := m.db.Exec(`
		INSERT INTO play_counts (song_id, path, title, artist, play_count, last_played_at)
		VALUES (?, ?, ?, ?, 1, ?)
		ON CONFLICT(song_id) DO UPDATE SET
			path = excluded.path,
			title = excluded.title,
			artist = excluded.artist,
			play_count = play_count + 1,
			last_played_at = excluded.last_played_at
	`, s.ID, s.Path, s.Title, s.Artist, at.Unix())
	return err
}

// IncrementSkipCount counts a skip of s at the given time.
func (m *Manager) IncrementSkipCount(s song.Song, at time.Time) error {
	_, err := m.db.Exec(`
		INSERT INTO play_counts (song_id, path, title, artist, skip_count, last_skipped_at)
		VALUES (?, ?, ?, ?, 1, ?)
		ON CONFLICT(song_id) DO UPDATE SET
			path = excluded.path,
			title = excluded.title,
			artist = excluded.artist,
			skip_count = skip_count + 1,
			last_skipped_at = excluded.last_skipped_at
	`, s.ID, s.Path, s.Title, s.Artist, at.Unix())
	return err
}

// GetPlayCount returns the statistics of a song, or nil if it was never
// played or skipped.
func (m *Manager) GetPlayCount(songID int64) (*PlayCount, error) {
	row := m.db.QueryRow(`
		SELECT song_id, path, title, artist, play_count, skip_count, last_played_at, last_skipped_at
		FROM play_counts WHERE song_id = ?
	`, songID)
	pc, err := scanPlayCount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // unknown song has no statistics
	}
	if err != nil {
		return nil, err
	}
	return &pc, nil
}

// TopPlayCounts returns up to limit songs, most played first.
func (m *Manager) TopPlayCounts(limit int) ([]PlayCount, error) {
	rows, err := m.db.Query(`
		SELECT song_id, path, title, artist, play_count, skip_count, last_played_at, last_skipped_at
		FROM play_counts
		WHERE play_count > 0
		ORDER BY play_count DESC, last_played_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []PlayCount
	for rows.Next() {
		pc, err := scanPlayCount(rows)
		if err != nil {
			return nil, err
		}
		counts = append(counts, pc)
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayCount(r scanner) (PlayCount, error) {
	var pc PlayCount
	var artist sql.NullString
	var lastPlayed, lastSkipped sql.NullInt64

	err := r.Scan(&pc.SongID, &pc.Path, &pc.Title, &artist, &pc.Plays, &pc.Skips, &lastPlayed, &lastSkipped)
	if err != nil {
		return PlayCount{}, err
	}
	pc.Artist = dbutil.NullStringValue(artist)
	pc.LastPlayed = dbutil.NullUnixTime(lastPlayed)
	pc.LastSkipped = dbutil.NullUnixTime(lastSkipped)
	return pc, nil
}
