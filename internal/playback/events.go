package playback

import (
	"time"

	"github.com/llehouerou/jockey/internal/song"
)

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// SongChange is emitted when playback starts on a song, including when the
// same song is replayed by a repeat mode.
type SongChange struct {
	Previous *song.Song
	Current  *song.Song
	Index    int
}

// QueueChange is emitted when the queue contents or position change.
type QueueChange struct {
	Songs []song.Song // play order
	Index int
}

// ModeChange is emitted when repeat, shuffle or multi-repeat changes.
type ModeChange struct {
	RepeatMode  RepeatMode
	Shuffle     bool
	MultiRepeat int
}

// PositionChange is emitted when a seek occurs.
type PositionChange struct {
	Position time.Duration
}

// SleepTimerChange is emitted when the sleep timer is set, cancelled or fires.
// End is zero when no timer is running.
type SleepTimerChange struct {
	End time.Time
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation string // e.g., "play", "seek"
	Path      string // song path if applicable
	Err       error
}
