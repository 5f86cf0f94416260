// internal/player/interface.go
package player

import "time"

// Interface defines the audio output contract used by the playback service.
type Interface interface {
	Play(path string) error
	Stop()
	Pause()
	Resume()
	State() State
	Position() time.Duration
	Duration() time.Duration
	Seek(delta time.Duration)
	SeekTo(position time.Duration)
	SetVolume(level float64)
	Volume() float64
	// Generation identifies the most recent Play call.
	Generation() uint64
	// FinishedChan receives the generation of each song that reaches its
	// natural end. A signal may arrive after a newer Play call.
	FinishedChan() <-chan uint64
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
