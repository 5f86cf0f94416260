// internal/state/interface.go
package state

import (
	"database/sql"
	"time"

	"github.com/llehouerou/jockey/internal/song"
)

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	DB() *sql.DB

	SaveQueue(st QueueState) error
	GetQueue() (*QueueState, error)
	SavePosition(index int, pos time.Duration)
	GetVolume() (float64, error)
	SaveVolume(volume float64) error

	IncrementPlayCount(s song.Song, at time.Time) error
	IncrementSkipCount(s song.Song, at time.Time) error
	GetPlayCount(songID int64) (*PlayCount, error)
	TopPlayCounts(limit int) ([]PlayCount, error)

	GetLastfmSession() (*LastfmSession, error)
	SaveLastfmSession(username, sessionKey string) error
	DeleteLastfmSession() error
	AddPendingScrobble(s PendingScrobble) error
	GetPendingScrobbles() ([]PendingScrobble, error)
	DeletePendingScrobble(id int64) error
	UpdatePendingScrobbleAttempt(id int64, errMsg string) error
	DeleteOldPendingScrobbles(maxAge time.Duration) error

	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
