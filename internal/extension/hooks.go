package extension

import (
	"time"

	"github.com/llehouerou/jockey/internal/playlist"
	"github.com/llehouerou/jockey/internal/song"
)

// Named is implemented by extensions that want a readable name in logs.
type Named interface {
	Name() string
}

// Player is the read-only view of the engine handed to Attacher.
// Its methods are safe to call from within any hook.
type Player interface {
	CurrentSong() *song.Song
	Position() time.Duration
	Duration() time.Duration
	QueueIndex() int
	Snapshot() Snapshot
}

// Attacher receives the engine view once, when the extension is registered.
type Attacher interface {
	Attach(p Player)
}

// Snapshot is a copy of the queue state.
type Snapshot struct {
	Songs    []song.Song // original (unshuffled) order
	Order    []int       // play position -> Songs index; nil when not shuffled
	Index    int         // current play position, -1 when none
	Position time.Duration
	Repeat   playlist.RepeatMode
}

// Shuffle reports whether the snapshot carries a shuffle order.
func (s Snapshot) Shuffle() bool {
	return s.Order != nil
}

// Current returns the song at Index, or nil.
func (s Snapshot) Current() *song.Song {
	if s.Index < 0 || s.Index >= len(s.Songs) {
		return nil
	}
	i := s.Index
	if s.Order != nil {
		if s.Index >= len(s.Order) {
			return nil
		}
		i = s.Order[s.Index]
	}
	if i < 0 || i >= len(s.Songs) {
		return nil
	}
	c := s.Songs[i]
	return &c
}

// Clone returns a copy that shares no slices with s.
func (s Snapshot) Clone() Snapshot {
	c := s
	if s.Songs != nil {
		c.Songs = append([]song.Song(nil), s.Songs...)
	}
	if s.Order != nil {
		c.Order = append([]int(nil), s.Order...)
	}
	return c
}

// Restorer supplies a queue to resume from when the engine starts.
// A nil snapshot with a nil error means there is nothing to restore.
type Restorer interface {
	Restore() (*Snapshot, error)
}

// SkipInfo describes how a song was left before its natural end.
type SkipInfo struct {
	ByUser   bool // false when the skip followed a playback error
	Position time.Duration
	Duration time.Duration
}

// Skipper is notified when the current song is skipped.
type Skipper interface {
	OnSongSkipped(s song.Song, info SkipInfo)
}

// Seeker is notified after a seek within the current song.
type Seeker interface {
	OnSeeked(s song.Song, position time.Duration)
}

// QueueWatcher is notified when queue contents, position or modes change.
type QueueWatcher interface {
	OnQueueChanged(snap Snapshot)
}

// OptionsWatcher receives extension options at registration and whenever
// they are updated.
type OptionsWatcher interface {
	OnOptionsChanged(opts Options)
}
