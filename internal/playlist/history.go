package playlist

import "github.com/llehouerou/jockey/internal/song"

// QueueHistory maintains a history of song list states for undo/redo.
type QueueHistory struct {
	states  [][]song.Song
	current int // index of current state (-1 = before any state)
	maxSize int
}

// NewQueueHistory creates a new history with the given maximum size.
func NewQueueHistory(maxSize int) *QueueHistory {
	if maxSize < 1 {
		maxSize = 1
	}
	return &QueueHistory{
		states:  make([][]song.Song, 0, maxSize),
		current: -1,
		maxSize: maxSize,
	}
}

// Push saves a snapshot of the song list.
// Clears any redo states and trims if over limit.
func (h *QueueHistory) Push(songs []song.Song) {
	snapshot := make([]song.Song, len(songs))
	copy(snapshot, songs)

	if h.current < len(h.states)-1 {
		h.states = h.states[:h.current+1]
	}

	h.states = append(h.states, snapshot)
	h.current = len(h.states) - 1

	if len(h.states) > h.maxSize {
		excess := len(h.states) - h.maxSize
		h.states = h.states[excess:]
		h.current -= excess
	}
}

// Undo returns the previous song list state.
// Returns nil and false if nothing to undo.
func (h *QueueHistory) Undo() ([]song.Song, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.current--
	return h.snapshot(), true
}

// Redo returns the next song list state.
// Returns nil and false if nothing to redo.
func (h *QueueHistory) Redo() ([]song.Song, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.current++
	return h.snapshot(), true
}

func (h *QueueHistory) snapshot() []song.Song {
	snapshot := make([]song.Song, len(h.states[h.current]))
	copy(snapshot, h.states[h.current])
	return snapshot
}

// CanUndo returns true if there is a previous state to undo to.
func (h *QueueHistory) CanUndo() bool {
	return h.current > 0
}

// CanRedo returns true if there is a next state to redo to.
func (h *QueueHistory) CanRedo() bool {
	return h.current < len(h.states)-1
}
