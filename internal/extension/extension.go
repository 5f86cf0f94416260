// Package extension defines the hooks through which code outside the
// playback engine observes song playback transitions.
//
// An extension implements the four transitions of Extension. Implementations
// that only care about some of them embed Base, or use Funcs, and the rest
// stay no-ops. Further behaviour is opted into by implementing one of the
// optional interfaces in hooks.go; the engine detects them by type assertion.
package extension

import "github.com/llehouerou/jockey/internal/song"

// Extension is notified of playback transitions for each song.
//
// For a given song the engine calls OnSongStarted first, then any number of
// OnSongPaused/OnSongResumed pairs, then at most one OnSongCompleted.
// Songs are passed by value; an extension cannot change what the engine plays.
type Extension interface {
	// OnSongStarted is called once when playback of s begins.
	OnSongStarted(s song.Song)
	// OnSongCompleted is called once when s plays to its natural end.
	// It is not called when the user skips or stops.
	OnSongCompleted(s song.Song)
	// OnSongPaused is called when playback of s is suspended.
	OnSongPaused(s song.Song)
	// OnSongResumed is called when a paused s continues playing.
	OnSongResumed(s song.Song)
}

// Base implements every Extension method as a no-op.
// Embed it and override only the transitions of interest.
type Base struct{}

var _ Extension = Base{}

func (Base) OnSongStarted(song.Song)   {}
func (Base) OnSongCompleted(song.Song) {}
func (Base) OnSongPaused(song.Song)    {}
func (Base) OnSongResumed(song.Song)   {}

// Funcs adapts plain functions to Extension. Nil fields are no-ops.
type Funcs struct {
	ExtName   string
	Started   func(song.Song)
	Completed func(song.Song)
	Paused    func(song.Song)
	Resumed   func(song.Song)
}

var (
	_ Extension = Funcs{}
	_ Named     = Funcs{}
)

// Name returns ExtName, or "funcs" when unset.
func (f Funcs) Name() string {
	if f.ExtName == "" {
		return "funcs"
	}
	return f.ExtName
}

func (f Funcs) OnSongStarted(s song.Song) {
	if f.Started != nil {
		f.Started(s)
	}
}

func (f Funcs) OnSongCompleted(s song.Song) {
	if f.Completed != nil {
		f.Completed(s)
	}
}

func (f Funcs) OnSongPaused(s song.Song) {
	if f.Paused != nil {
		f.Paused(s)
	}
}

func (f Funcs) OnSongResumed(s song.Song) {
	if f.Resumed != nil {
		f.Resumed(s)
	}
}
