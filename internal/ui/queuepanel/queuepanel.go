// Package queuepanel renders the play queue with a movable cursor.
package queuepanel

import (
	"github.com/llehouerou/jockey/internal/song"
	"github.com/llehouerou/jockey/internal/ui"
)

// Model holds the queue panel state. Keys are resolved by the caller,
// which drives the cursor through the exported methods.
type Model struct {
	ui.Sized
	songs   []song.Song
	playing int
	cursor  cursor
}

// New creates an empty queue panel.
func New() Model {
	return Model{playing: -1, cursor: cursor{margin: ui.ScrollMargin}}
}

// SetQueue replaces the displayed songs. playing is the index of the
// current song, or -1.
func (m *Model) SetQueue(songs []song.Song, playing int) {
	m.songs = songs
	m.playing = playing
	m.cursor.jump(m.cursor.pos, len(m.songs), m.listHeight())
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.Sized.SetSize(width, height)
	m.cursor.ensureVisible(len(m.songs), m.listHeight())
}

// Cursor returns the selected row, or -1 when the queue is empty.
func (m Model) Cursor() int {
	if len(m.songs) == 0 {
		return -1
	}
	return m.cursor.pos
}

// Playing returns the index of the current song, or -1.
func (m Model) Playing() int {
	return m.playing
}

// Len returns the number of displayed songs.
func (m Model) Len() int {
	return len(m.songs)
}

// MoveCursor moves the selection by delta rows.
func (m *Model) MoveCursor(delta int) {
	m.cursor.move(delta, len(m.songs), m.listHeight())
}

// SetCursor selects row i, clamped to the queue.
func (m *Model) SetCursor(i int) {
	m.cursor.jump(i, len(m.songs), m.listHeight())
}

// CursorTop selects the first row.
func (m *Model) CursorTop() {
	m.SetCursor(0)
}

// CursorBottom selects the last row.
func (m *Model) CursorBottom() {
	m.SetCursor(len(m.songs) - 1)
}

// FollowPlaying moves the cursor to the current song.
func (m *Model) FollowPlaying() {
	if m.playing >= 0 {
		m.SetCursor(m.playing)
	}
}

func (m Model) listHeight() int {
	return m.Height() - ui.PanelOverhead
}
