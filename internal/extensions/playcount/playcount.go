// Package playcount counts plays and skips of every song the player leaves.
package playcount

import (
	"time"

	"github.com/llehouerou/jockey/internal/extension"
	"github.com/llehouerou/jockey/internal/logger"
	"github.com/llehouerou/jockey/internal/song"
)

const (
	// PlayThreshold is how far into a song a skip still counts as a play.
	PlayThreshold = 24 * time.Second
	// SkipThreshold is how far into a song a skip counts as a skip.
	SkipThreshold = 20 * time.Second
)

// Store persists play statistics; *state.Manager implements it.
type Store interface {
	IncrementPlayCount(s song.Song, at time.Time) error
	IncrementSkipCount(s song.Song, at time.Time) error
}

// Extension logs a play when a song completes and classifies user skips
// as plays, skips or neither depending on how far the song got.
type Extension struct {
	extension.Base
	store Store
}

// New creates a play count extension writing to store.
func New(store Store) *Extension {
	return &Extension{store: store}
}

func (e *Extension) Name() string { return "playcount" }

func (e *Extension) OnSongCompleted(s song.Song) {
	e.logPlay(s)
}

// OnSongSkipped ignores skips caused by playback errors.
func (e *Extension) OnSongSkipped(s song.Song, info extension.SkipInfo) {
	if !info.ByUser {
		return
	}
	switch Classify(info.Position, info.Duration) {
	case Played:
		e.logPlay(s)
	case Skipped:
		e.logSkip(s)
	case Ignored:
		logger.Debugf("[playcount] %s left at %s: neither played nor skipped", s, info.Position)
	}
}

func (e *Extension) logPlay(s song.Song) {
	if err := e.store.IncrementPlayCount(s, time.Now()); err != nil {
		logger.Warnf("[playcount] play of %s: %v", s.Path, err)
	}
}

func (e *Extension) logSkip(s song.Song) {
	if err := e.store.IncrementSkipCount(s, time.Now()); err != nil {
		logger.Warnf("[playcount] skip of %s: %v", s.Path, err)
	}
}

// Outcome is the classification of a song left before its end.
type Outcome int

const (
	Ignored Outcome = iota
	Played
	Skipped
)

// Classify decides how a song left at position counts. Passing the play
// threshold or half the duration is a play; leaving before the skip
// threshold is a skip.
func Classify(position, duration time.Duration) Outcome {
	switch {
	case position > PlayThreshold || position > duration/2:
		return Played
	case position < SkipThreshold:
		return Skipped
	default:
		return Ignored
	}
}
