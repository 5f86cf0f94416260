package playlist

import (
	"math/rand/v2"
	"time"

	"github.com/llehouerou/jockey/internal/song"
)

// PlayingQueue wraps a Playlist with playback position, repeat and shuffle.
//
// Positions exposed by the queue are in play order: when shuffle is enabled
// they index the shuffled order, otherwise the playlist order.
type PlayingQueue struct {
	playlist     *Playlist
	order        []int // play order -> playlist index; nil when not shuffled
	currentIndex int   // -1 if nothing current
	repeat       RepeatMode
	rng          *rand.Rand
}

// NewQueue creates a new empty playing queue.
func NewQueue() *PlayingQueue {
	return NewQueueWithSeed(uint64(time.Now().UnixNano())) //nolint:gosec // shuffle seed
}

// NewQueueWithSeed creates a queue whose shuffles are deterministic for seed.
func NewQueueWithSeed(seed uint64) *PlayingQueue {
	return &PlayingQueue{
		playlist:     NewPlaylist(),
		currentIndex: -1,
		rng:          rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint:gosec // not security sensitive
	}
}

// songAt returns the song at play position pos.
func (q *PlayingQueue) songAt(pos int) *song.Song {
	if pos < 0 || pos >= q.playlist.Len() {
		return nil
	}
	if q.order != nil {
		return q.playlist.Song(q.order[pos])
	}
	return q.playlist.Song(pos)
}

// Current returns the current song, or nil if none.
func (q *PlayingQueue) Current() *song.Song {
	return q.songAt(q.currentIndex)
}

// CurrentIndex returns the play position of the current song (-1 if none).
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// HasNext returns true if Next would return a song.
func (q *PlayingQueue) HasNext() bool {
	if q.playlist.Len() == 0 {
		return false
	}
	return q.currentIndex < q.playlist.Len()-1 || q.repeat == RepeatAll
}

// HasPrevious returns true if Previous would return a song.
func (q *PlayingQueue) HasPrevious() bool {
	if q.playlist.Len() == 0 {
		return false
	}
	return q.currentIndex > 0 || q.repeat == RepeatAll
}

// Next advances to the next song and returns it.
// With RepeatAll the queue wraps to the start. Returns nil at the end.
func (q *PlayingQueue) Next() *song.Song {
	if !q.HasNext() {
		return nil
	}
	if q.currentIndex >= q.playlist.Len()-1 {
		q.currentIndex = 0
	} else {
		q.currentIndex++
	}
	return q.Current()
}

// Previous moves to the previous song and returns it.
// With RepeatAll the queue wraps to the end. Returns nil at the start.
func (q *PlayingQueue) Previous() *song.Song {
	if !q.HasPrevious() {
		return nil
	}
	if q.currentIndex <= 0 {
		q.currentIndex = q.playlist.Len() - 1
	} else {
		q.currentIndex--
	}
	return q.Current()
}

// JumpTo sets the current play position.
// Returns the song at that position, or nil if invalid.
func (q *PlayingQueue) JumpTo(index int) *song.Song {
	if index < 0 || index >= q.playlist.Len() {
		return nil
	}
	q.currentIndex = index
	return q.Current()
}

// Add appends songs to the queue without changing the current song.
func (q *PlayingQueue) Add(songs ...song.Song) {
	start := q.playlist.Len()
	q.playlist.Add(songs...)
	if q.order != nil {
		for i := range songs {
			q.order = append(q.order, start+i)
		}
	}
}

// AddAndPlay appends songs and makes the first added song current.
// Returns the song to play.
func (q *PlayingQueue) AddAndPlay(songs ...song.Song) *song.Song {
	if len(songs) == 0 {
		return nil
	}
	insertPos := q.playlist.Len()
	q.Add(songs...)
	q.currentIndex = insertPos
	return q.Current()
}

// InsertNext inserts songs right after the current song in play order.
func (q *PlayingQueue) InsertNext(songs ...song.Song) {
	if len(songs) == 0 {
		return
	}
	pos := q.currentIndex + 1
	if q.order == nil {
		q.playlist.Insert(pos, songs...)
		return
	}

	start := q.playlist.Len()
	q.playlist.Add(songs...)
	added := make([]int, len(songs))
	for i := range songs {
		added[i] = start + i
	}
	tail := append([]int{}, q.order[pos:]...)
	q.order = append(append(q.order[:pos], added...), tail...)
}

// Replace clears the queue, adds songs, and makes start current.
// When shuffle is on, the start song stays first and the rest is shuffled.
// Returns the song to play, or nil for an empty list.
func (q *PlayingQueue) Replace(songs []song.Song, start int) *song.Song {
	shuffled := q.order != nil
	q.playlist.Clear()
	q.order = nil
	q.currentIndex = -1
	if len(songs) == 0 {
		return nil
	}
	if start < 0 || start >= len(songs) {
		start = 0
	}
	q.playlist.Add(songs...)
	q.currentIndex = start
	if shuffled {
		q.shuffle()
	}
	return q.Current()
}

// RemoveAt removes the song at the given play position.
// Adjusts the current position if necessary.
func (q *PlayingQueue) RemoveAt(index int) bool {
	if index < 0 || index >= q.playlist.Len() {
		return false
	}

	if q.order != nil {
		removed := q.order[index]
		q.playlist.Remove(removed)
		q.order = append(q.order[:index], q.order[index+1:]...)
		for i, v := range q.order {
			if v > removed {
				q.order[i] = v - 1
			}
		}
	} else {
		q.playlist.Remove(index)
	}

	if q.currentIndex > index {
		q.currentIndex--
	} else if q.currentIndex == index && q.currentIndex >= q.playlist.Len() {
		// Removed the last, current song: clamp
		q.currentIndex = q.playlist.Len() - 1
	}
	return true
}

// Move moves a song between play positions, keeping the current song current.
func (q *PlayingQueue) Move(from, to int) bool {
	n := q.playlist.Len()
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if q.order != nil {
		v := q.order[from]
		q.order = append(q.order[:from], q.order[from+1:]...)
		q.order = append(q.order[:to], append([]int{v}, q.order[to:]...)...)
	} else {
		q.playlist.Move(from, to)
	}

	switch {
	case q.currentIndex == from:
		q.currentIndex = to
	case from < q.currentIndex && to >= q.currentIndex:
		q.currentIndex--
	case from > q.currentIndex && to <= q.currentIndex:
		q.currentIndex++
	}
	return true
}

// Clear removes all songs and resets the current position.
func (q *PlayingQueue) Clear() {
	q.playlist.Clear()
	if q.order != nil {
		q.order = q.order[:0]
	}
	q.currentIndex = -1
}

// Songs returns all songs in play order.
func (q *PlayingQueue) Songs() []song.Song {
	if q.order == nil {
		return q.playlist.Songs()
	}
	result := make([]song.Song, len(q.order))
	for i, idx := range q.order {
		result[i] = *q.playlist.Song(idx)
	}
	return result
}

// OriginalSongs returns all songs in their unshuffled order.
func (q *PlayingQueue) OriginalSongs() []song.Song {
	return q.playlist.Songs()
}

// Order returns a copy of the shuffle order, or nil when not shuffled.
func (q *PlayingQueue) Order() []int {
	if q.order == nil {
		return nil
	}
	return append([]int{}, q.order...)
}

// Len returns the number of songs in the queue.
func (q *PlayingQueue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no songs.
func (q *PlayingQueue) IsEmpty() bool {
	return q.playlist.Len() == 0
}

// RepeatMode returns the current repeat mode.
func (q *PlayingQueue) RepeatMode() RepeatMode {
	return q.repeat
}

// SetRepeatMode sets the repeat mode.
func (q *PlayingQueue) SetRepeatMode(mode RepeatMode) {
	q.repeat = mode
}

// CycleRepeatMode advances the repeat mode and returns the new one.
func (q *PlayingQueue) CycleRepeatMode() RepeatMode {
	q.repeat = q.repeat.Next()
	return q.repeat
}

// Shuffle returns whether shuffle is enabled.
func (q *PlayingQueue) Shuffle() bool {
	return q.order != nil
}

// SetShuffle enables or disables shuffle.
// Enabling keeps the current song current and moves it first in play order;
// disabling restores the original order around the current song.
func (q *PlayingQueue) SetShuffle(enabled bool) {
	if enabled == q.Shuffle() {
		return
	}
	if !enabled {
		if q.currentIndex >= 0 && q.currentIndex < len(q.order) {
			q.currentIndex = q.order[q.currentIndex]
		}
		q.order = nil
		return
	}
	q.shuffle()
}

// shuffle builds a new order from playlist order. currentIndex must be a
// playlist index (or -1) on entry; it is 0 on exit when a song was current.
func (q *PlayingQueue) shuffle() {
	n := q.playlist.Len()
	order := make([]int, 0, n)
	rest := make([]int, 0, n)
	for i := range n {
		if i == q.currentIndex {
			continue
		}
		rest = append(rest, i)
	}
	q.rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })

	if q.currentIndex >= 0 && q.currentIndex < n {
		order = append(order, q.currentIndex)
		q.currentIndex = 0
	}
	q.order = append(order, rest...)
}

// Restore replaces the queue with persisted state. An order that is not a
// permutation of the songs is ignored and shuffle is disabled.
func (q *PlayingQueue) Restore(songs []song.Song, order []int, index int, repeat RepeatMode) {
	q.playlist.Clear()
	q.playlist.Add(songs...)
	q.order = nil
	if order != nil && isPermutation(order, len(songs)) {
		q.order = append([]int{}, order...)
	}
	q.repeat = repeat
	q.currentIndex = -1
	if index >= 0 && index < len(songs) {
		q.currentIndex = index
	}
}

func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, v := range order {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
