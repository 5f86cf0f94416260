package playback

import (
	"time"

	"github.com/llehouerou/jockey/internal/extension"
	"github.com/llehouerou/jockey/internal/song"
)

// Service defines the playback service contract.
//
// Extensions registered with the service observe every transition through
// the hooks of package extension. Hooks run after the service lock is
// released, one at a time and in transition order; a hook may read from the
// service and may call back into it.
type Service interface {
	extension.Player

	// Playback control
	Play() error
	Pause() error
	Stop() error
	Toggle() error
	Next() error
	Previous() error
	Seek(delta time.Duration) error
	SeekTo(position time.Duration) error

	// Queue navigation (always starts playback)
	JumpTo(index int) error

	// Queue manipulation
	AddSongs(songs ...song.Song)
	InsertNext(songs ...song.Song)
	ReplaceQueue(songs []song.Song, start int) error
	RemoveAt(index int) error
	Move(from, to int) error
	ClearQueue()

	// Queue history
	Undo() bool
	Redo() bool

	// State queries
	State() State
	IsPlaying() bool
	Queue() []song.Song
	QueueLen() int

	// Mode control
	RepeatMode() RepeatMode
	SetRepeatMode(mode RepeatMode)
	CycleRepeatMode() RepeatMode
	Shuffle() bool
	SetShuffle(enabled bool)
	ToggleShuffle() bool
	MultiRepeat() int
	SetMultiRepeat(n int)

	// Output
	Volume() float64
	SetVolume(level float64)

	// Sleep timer
	StartSleepTimer(d time.Duration)
	CancelSleepTimer()
	SleepTimerEnd() (time.Time, bool)

	// Extensions
	UpdateExtensionOptions(opts extension.Options)

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
