// Package persistence saves the queue and playback position so the player
// resumes where it left off.
package persistence

import (
	"time"

	"github.com/llehouerou/jockey/internal/extension"
	"github.com/llehouerou/jockey/internal/logger"
	"github.com/llehouerou/jockey/internal/playlist"
	"github.com/llehouerou/jockey/internal/song"
	"github.com/llehouerou/jockey/internal/state"
)

// Store holds the saved queue; *state.Manager implements it.
type Store interface {
	GetQueue() (*state.QueueState, error)
	SaveQueue(st state.QueueState) error
	SavePosition(index int, pos time.Duration)
}

// Extension mirrors queue changes and position updates into a Store.
type Extension struct {
	extension.Base
	store  Store
	resume bool
	view   extension.Player
}

// New creates a persistence extension. When resume is false the saved queue
// is still kept up to date but never restored.
func New(store Store, resume bool) *Extension {
	return &Extension{store: store, resume: resume}
}

func (e *Extension) Name() string { return "persistence" }

func (e *Extension) Attach(p extension.Player) { e.view = p }

// Restore returns the saved queue, or nil when there is none.
func (e *Extension) Restore() (*extension.Snapshot, error) {
	if !e.resume {
		return nil, nil //nolint:nilnil // nothing to restore
	}
	st, err := e.store.GetQueue()
	if err != nil || st == nil || len(st.Songs) == 0 {
		return nil, err
	}
	logger.Infof("[persistence] restoring %d songs at index %d", len(st.Songs), st.CurrentIndex)
	return &extension.Snapshot{
		Songs:    st.Songs,
		Order:    st.Order,
		Index:    st.CurrentIndex,
		Position: st.Position,
		Repeat:   playlist.RepeatMode(st.RepeatMode),
	}, nil
}

func (e *Extension) OnQueueChanged(snap extension.Snapshot) {
	err := e.store.SaveQueue(state.QueueState{
		Songs:        snap.Songs,
		Order:        snap.Order,
		CurrentIndex: snap.Index,
		RepeatMode:   int(snap.Repeat),
		Position:     snap.Position,
	})
	if err != nil {
		logger.Warnf("[persistence] save queue: %v", err)
	}
}

func (e *Extension) OnSongStarted(song.Song) { e.savePosition() }

func (e *Extension) OnSongPaused(song.Song) { e.savePosition() }

func (e *Extension) OnSeeked(_ song.Song, position time.Duration) {
	if e.view == nil {
		return
	}
	e.store.SavePosition(e.view.QueueIndex(), position)
}

func (e *Extension) savePosition() {
	if e.view == nil {
		return
	}
	e.store.SavePosition(e.view.QueueIndex(), e.view.Position())
}
