package state

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/jockey/internal/db"
	"github.com/llehouerou/jockey/internal/song"
)

// QueueState represents the saved queue state.
type QueueState struct {
	Songs        []song.Song // original order
	Order        []int       // shuffle permutation, nil when not shuffled
	CurrentIndex int         // play position, -1 when none
	RepeatMode   int
	Position     time.Duration
}

type positionState struct {
	Index    int
	Position time.Duration
}

// GetQueue returns the saved queue, or nil if none was saved.
func (m *Manager) GetQueue() (*QueueState, error) {
	return getQueue(m.db)
}

// SaveQueue replaces the saved queue. A pending position write is dropped
// since st carries the position.
func (m *Manager) SaveQueue(st QueueState) error {
	m.dropPendingPosition()
	return saveQueue(context.Background(), m.db, st)
}

func getQueue(db *sql.DB) (*QueueState, error) {
	var st QueueState
	var positionMS int64
	row := db.QueryRow(`SELECT current_index, repeat_mode, position_ms FROM queue_state WHERE id = 1`)
	err := row.Scan(&st.CurrentIndex, &st.RepeatMode, &positionMS)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved queue is valid on first run
	}
	if err != nil {
		return nil, err
	}
	st.Position = time.Duration(positionMS) * time.Millisecond

	rows, err := db.Query(`
		SELECT song_id, path, title, artist, album_artist, album, genre, year,
		       track_number, duration_ms, shuffle_rank
		FROM queue_songs
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranks []sql.NullInt64
	for rows.Next() {
		var s song.Song
		var artist, albumArtist, album, genre sql.NullString
		var year, trackNumber, durationMS, rank sql.NullInt64

		err := rows.Scan(&s.ID, &s.Path, &s.Title, &artist, &albumArtist, &album, &genre,
			&year, &trackNumber, &durationMS, &rank)
		if err != nil {
			return nil, err
		}

		s.Artist = dbutil.NullStringValue(artist)
		s.AlbumArtist = dbutil.NullStringValue(albumArtist)
		s.Album = dbutil.NullStringValue(album)
		s.Genre = dbutil.NullStringValue(genre)
		s.Year = int(dbutil.NullInt64Value(year))
		s.TrackNumber = int(dbutil.NullInt64Value(trackNumber))
		s.Duration = time.Duration(dbutil.NullInt64Value(durationMS)) * time.Millisecond
		st.Songs = append(st.Songs, s)
		ranks = append(ranks, rank)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	st.Order = orderFromRanks(ranks)
	return &st, nil
}

// orderFromRanks rebuilds the shuffle permutation; rank r of song i means
// order[r] = i. Any missing or out-of-range rank means no shuffle.
func orderFromRanks(ranks []sql.NullInt64) []int {
	if len(ranks) == 0 {
		return nil
	}
	order := make([]int, len(ranks))
	for i := range order {
		order[i] = -1
	}
	for i, r := range ranks {
		if !r.Valid || r.Int64 < 0 || int(r.Int64) >= len(ranks) || order[r.Int64] != -1 {
			return nil
		}
		order[r.Int64] = i
	}
	return order
}

func saveQueue(ctx context.Context, sqlDB *sql.DB, st QueueState) error {
	ranks := make([]any, len(st.Songs))
	if len(st.Order) == len(st.Songs) {
		for r, i := range st.Order {
			if i >= 0 && i < len(ranks) {
				ranks[i] = r
			}
		}
	}

	return dbutil.WithTx(ctx, sqlDB, func(tx *sql.Tx) error {
		// Clear existing queue
		_, err := tx.Exec(`DELETE FROM queue_songs`)
		if err != nil {
			return err
		}

		// Save queue state
		_, err = tx.Exec(`
			INSERT INTO queue_state (id, current_index, repeat_mode, shuffle, position_ms)
			VALUES (1, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_index = excluded.current_index,
				repeat_mode = excluded.repeat_mode,
				shuffle = excluded.shuffle,
				position_ms = excluded.position_ms
		`, st.CurrentIndex, st.RepeatMode, st.Order != nil, st.Position.Milliseconds())
		if err != nil {
			return err
		}

		// Insert songs
		stmt, err := tx.Prepare(`
			INSERT INTO queue_songs (position, song_id, path, title, artist, album_artist, album,
			                         genre, year, track_number, duration_ms, shuffle_rank)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, s := range st.Songs {
			_, err = stmt.Exec(i, s.ID, s.Path, s.Title, s.Artist, s.AlbumArtist, s.Album,
				s.Genre, s.Year, s.TrackNumber, s.Duration.Milliseconds(), ranks[i])
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func savePosition(db *sql.DB, p positionState) error {
	_, err := db.Exec(`
		UPDATE queue_state SET current_index = ?, position_ms = ? WHERE id = 1
	`, p.Index, p.Position.Milliseconds())
	return err
}
