// internal/playback/service_impl.go
package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/llehouerou/jockey/internal/extension"
	"github.com/llehouerou/jockey/internal/logger"
	"github.com/llehouerou/jockey/internal/player"
	"github.com/llehouerou/jockey/internal/playlist"
	"github.com/llehouerou/jockey/internal/song"
)

const (
	defaultHistorySize = 50
	// Previous restarts the current song instead of going back once
	// playback is past this point.
	previousRestartThreshold = 5 * time.Second
)

// Config holds the optional collaborators of a Service.
type Config struct {
	Extensions  *extension.Set
	Options     extension.Options // initial extension options
	HistorySize int               // undo depth, default 50
}

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

// parked remembers where a song was left while nothing is loaded.
type parked struct {
	index  int
	pos    time.Duration
	resume bool // seek to pos when index is next started
}

type serviceImpl struct {
	mu sync.RWMutex

	player  player.Interface
	queue   *playlist.PlayingQueue
	history *playlist.QueueHistory
	exts    *extension.Set

	// active is the song whose start was announced and whose end was not.
	active *song.Song
	// playGen is the player generation of active; end signals carrying
	// another generation belong to a song already left.
	playGen       uint64
	lastStarted   *song.Song
	queueComplete bool
	multiRepeat   int
	parked        parked

	sleepTimer *time.Timer
	sleepEnd   time.Time
	sleepGen   int

	pendingMu sync.Mutex
	pending   []func(*extension.Set)
	flushing  bool

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// New creates a new playback service.
//
// Extensions are attached, receive cfg.Options, and when q is empty are
// asked to restore a saved queue, in that order, before New returns.
func New(p player.Interface, q *playlist.PlayingQueue, cfg Config) Service {
	if q == nil {
		q = playlist.NewQueue()
	}
	size := cfg.HistorySize
	if size <= 0 {
		size = defaultHistorySize
	}

	s := &serviceImpl{
		player:  p,
		queue:   q,
		history: playlist.NewQueueHistory(size),
		exts:    cfg.Extensions,
		parked:  parked{index: -1},
		done:    make(chan struct{}),
	}

	s.exts.Attach(s)
	s.exts.OptionsChanged(cfg.Options)
	if q.IsEmpty() {
		if snap := s.exts.Restore(); snap != nil {
			s.restoreSnapshot(*snap)
		}
	}
	s.history.Push(q.Songs())

	s.wg.Add(1)
	go s.watch()
	return s
}

func (s *serviceImpl) restoreSnapshot(snap extension.Snapshot) {
	s.queue.Restore(snap.Songs, snap.Order, snap.Index, snap.Repeat)
	s.parked = parked{index: s.queue.CurrentIndex(), pos: snap.Position, resume: snap.Position > 0}
	logger.Infof("[playback] restored %d songs at index %d (%s)",
		len(snap.Songs), s.queue.CurrentIndex(), snap.Position)
}

// watch turns natural song ends into queue advances.
func (s *serviceImpl) watch() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case gen := <-s.player.FinishedChan():
			s.handleFinished(gen)
		}
	}
}

// --- hook dispatch ---

// enqueue schedules a hook call. Must be called with s.mu held so hooks are
// queued in transition order.
func (s *serviceImpl) enqueue(fn func(*extension.Set)) {
	if s.exts.Len() == 0 {
		return
	}
	s.pendingMu.Lock()
	s.pending = append(s.pending, fn)
	s.pendingMu.Unlock()
}

func (s *serviceImpl) enqueueSong(sg *song.Song, hook func(*extension.Set, song.Song)) {
	if sg == nil {
		return
	}
	v := *sg
	s.enqueue(func(x *extension.Set) { hook(x, v) })
}

// flush runs queued hooks. Must be called without s.mu held. Only one
// goroutine runs hooks at a time; a caller that finds another one flushing
// leaves its hooks to it.
func (s *serviceImpl) flush() {
	for {
		s.pendingMu.Lock()
		if s.flushing || len(s.pending) == 0 {
			s.pendingMu.Unlock()
			return
		}
		s.flushing = true
		batch := s.pending
		s.pending = nil
		s.pendingMu.Unlock()

		s.runHooks(batch)
	}
}

func (s *serviceImpl) runHooks(batch []func(*extension.Set)) {
	defer func() {
		s.pendingMu.Lock()
		s.flushing = false
		s.pendingMu.Unlock()
	}()
	for _, fn := range batch {
		fn(s.exts)
	}
}

// --- queries ---

// State returns the current playback state.
func (s *serviceImpl) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *serviceImpl) stateLocked() State {
	return s.playerStateToState(s.player.State())
}

func (s *serviceImpl) playerStateToState(ps player.State) State {
	switch ps {
	case player.Playing:
		return StatePlaying
	case player.Paused:
		return StatePaused
	case player.Stopped:
		return StateStopped
	default:
		return StateStopped
	}
}

// IsPlaying returns true while audio is playing.
func (s *serviceImpl) IsPlaying() bool {
	return s.State() == StatePlaying
}

// Position returns the position within the current song. While stopped it
// is where the song was left, when known.
func (s *serviceImpl) Position() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.positionLocked()
}

func (s *serviceImpl) positionLocked() time.Duration {
	if s.active != nil {
		return s.player.Position()
	}
	if s.parked.index >= 0 && s.parked.index == s.queue.CurrentIndex() {
		return s.parked.pos
	}
	return 0
}

// Duration returns the current song duration.
func (s *serviceImpl) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active != nil && s.active.Duration > 0 {
		return s.active.Duration
	}
	return s.player.Duration()
}

// CurrentSong returns a copy of the current song, or nil if none.
func (s *serviceImpl) CurrentSong() *song.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active != nil {
		c := *s.active
		return &c
	}
	cur := s.queue.Current()
	if cur == nil {
		return nil
	}
	c := *cur
	return &c
}

// Queue returns a copy of all songs in play order.
func (s *serviceImpl) Queue() []song.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Songs()
}

// QueueIndex returns the current queue index (-1 if none).
func (s *serviceImpl) QueueIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.CurrentIndex()
}

// QueueLen returns the number of queued songs.
func (s *serviceImpl) QueueLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Len()
}

// Snapshot returns a copy of the queue state.
func (s *serviceImpl) Snapshot() extension.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *serviceImpl) snapshotLocked() extension.Snapshot {
	return extension.Snapshot{
		Songs:    s.queue.OriginalSongs(),
		Order:    s.queue.Order(),
		Index:    s.queue.CurrentIndex(),
		Position: s.positionLocked(),
		Repeat:   s.queue.RepeatMode(),
	}
}

// RepeatMode returns the current repeat mode.
func (s *serviceImpl) RepeatMode() RepeatMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.RepeatMode()
}

// Shuffle returns whether shuffle is enabled.
func (s *serviceImpl) Shuffle() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Shuffle()
}

// MultiRepeat returns how many more times the current song will play,
// counting the current play; 0 when disabled.
func (s *serviceImpl) MultiRepeat() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.multiRepeat
}

// Volume returns the output volume (0.0 to 1.0).
func (s *serviceImpl) Volume() float64 {
	return s.player.Volume()
}

// SetVolume sets the output volume (0.0 to 1.0).
func (s *serviceImpl) SetVolume(level float64) {
	s.player.SetVolume(level)
}

// --- transport ---

// Play starts or resumes playback. When stopped it plays the current song,
// or the first one when nothing is current or the queue was played through.
func (s *serviceImpl) Play() error {
	s.mu.Lock()
	err := s.playLocked()
	s.mu.Unlock()
	s.flush()
	return err
}

func (s *serviceImpl) playLocked() error {
	if s.closed {
		return ErrClosed
	}
	if s.queue.IsEmpty() {
		return ErrEmptyQueue
	}

	prev := s.stateLocked()
	switch prev {
	case StatePlaying:
		return nil
	case StatePaused:
		s.player.Resume()
		s.enqueueSong(s.active, (*extension.Set).SongResumed)
		s.emitStateLocked(prev)
		return nil
	case StateStopped:
	}

	if s.queueComplete || s.queue.Current() == nil {
		s.queue.JumpTo(0)
	}
	return s.startLocked(prev)
}

// startLocked plays the current queue song. Songs that fail to play are
// reported and skipped until one plays or the queue runs out.
func (s *serviceImpl) startLocked(prev State) error {
	lastErr := ErrEmptyQueue
	for range s.queue.Len() {
		cur := s.queue.Current()
		if cur == nil {
			break
		}
		sg := *cur
		if err := s.player.Play(sg.Path); err != nil {
			lastErr = fmt.Errorf("play %s: %w", sg.Path, err)
			s.reportErrorLocked("play", sg.Path, err)
			if s.queue.Next() == nil {
				break
			}
			continue
		}

		s.playGen = s.player.Generation()
		idx := s.queue.CurrentIndex()
		if s.parked.resume && s.parked.index == idx {
			s.player.SeekTo(s.parked.pos)
		}
		s.parked = parked{index: -1}
		if sg.Duration == 0 {
			sg.Duration = s.player.Duration()
		}

		s.queueComplete = false
		s.active = &sg
		s.enqueueSong(&sg, (*extension.Set).SongStarted)
		s.emitSongLocked(SongChange{Previous: s.lastStarted, Current: &sg, Index: idx})
		s.lastStarted = &sg
		s.emitStateLocked(prev)
		return nil
	}

	s.player.Stop()
	s.active = nil
	s.emitStateLocked(prev)
	return lastErr
}

// Pause pauses playback. It is a no-op unless playing.
func (s *serviceImpl) Pause() error {
	s.mu.Lock()
	err := s.pauseLocked()
	s.mu.Unlock()
	s.flush()
	return err
}

func (s *serviceImpl) pauseLocked() error {
	if s.closed {
		return ErrClosed
	}
	prev := s.stateLocked()
	if prev != StatePlaying {
		return nil
	}
	s.player.Pause()
	s.enqueueSong(s.active, (*extension.Set).SongPaused)
	s.emitStateLocked(prev)
	return nil
}

// Toggle pauses when playing and plays otherwise.
func (s *serviceImpl) Toggle() error {
	s.mu.Lock()
	var err error
	if s.stateLocked() == StatePlaying {
		err = s.pauseLocked()
	} else {
		err = s.playLocked()
	}
	s.mu.Unlock()
	s.flush()
	return err
}

// Stop pauses then stops playback; the queue position is kept.
func (s *serviceImpl) Stop() error {
	s.mu.Lock()
	err := s.stopLocked()
	s.mu.Unlock()
	s.flush()
	return err
}

func (s *serviceImpl) stopLocked() error {
	if s.closed {
		return ErrClosed
	}
	prev := s.stateLocked()
	if prev == StatePlaying {
		s.player.Pause()
		s.enqueueSong(s.active, (*extension.Set).SongPaused)
	}
	if s.active != nil {
		s.parked = parked{index: s.queue.CurrentIndex(), pos: s.player.Position()}
	}
	s.player.Stop()
	s.active = nil
	s.emitStateLocked(prev)
	return nil
}

// skipActiveLocked ends the active song before its natural end.
func (s *serviceImpl) skipActiveLocked(byUser bool) {
	if s.active == nil {
		return
	}
	sg := *s.active
	info := extension.SkipInfo{
		ByUser:   byUser,
		Position: s.player.Position(),
		Duration: sg.Duration,
	}
	s.enqueue(func(x *extension.Set) { x.SongSkipped(sg, info) })
	s.active = nil
}

func (s *serviceImpl) resetMultiRepeatLocked() {
	if s.multiRepeat != 0 {
		s.multiRepeat = 0
		s.emitModeLocked()
	}
}

// Next skips to the next song. Past the end of the queue it moves back to
// the first song and stops. Playback continues only if it was active.
func (s *serviceImpl) Next() error {
	s.mu.Lock()
	err := s.nextLocked()
	s.mu.Unlock()
	s.flush()
	return err
}

func (s *serviceImpl) nextLocked() error {
	if s.closed {
		return ErrClosed
	}
	if s.queue.IsEmpty() {
		return ErrEmptyQueue
	}

	prev := s.stateLocked()
	s.skipActiveLocked(true)
	s.resetMultiRepeatLocked()

	if s.queue.Next() == nil {
		s.queue.JumpTo(0)
		s.player.Stop()
		s.queueComplete = false
		s.emitStateLocked(prev)
		s.queueChangedLocked()
		return nil
	}
	if !prev.IsActive() {
		s.queueChangedLocked()
		return nil
	}
	return s.startLocked(prev)
}

// Previous restarts the current song when it has played for a while, or
// when there is nothing before it; otherwise it goes to the previous song.
func (s *serviceImpl) Previous() error {
	s.mu.Lock()
	err := s.previousLocked()
	s.mu.Unlock()
	s.flush()
	return err
}

func (s *serviceImpl) previousLocked() error {
	if s.closed {
		return ErrClosed
	}
	if s.queue.IsEmpty() {
		return ErrEmptyQueue
	}

	prev := s.stateLocked()
	pos := s.positionLocked()
	dur := s.player.Duration()
	atStart := s.queue.CurrentIndex() <= 0 && s.queue.RepeatMode() != RepeatAll
	if atStart || pos > previousRestartThreshold || (dur > 0 && pos > dur/2) {
		if s.active == nil {
			s.parked = parked{index: -1}
			return nil
		}
		s.player.SeekTo(0)
		sg := *s.active
		s.enqueue(func(x *extension.Set) { x.Seeked(sg, 0) })
		s.emitPositionLocked(0)
		return nil
	}

	s.skipActiveLocked(true)
	s.resetMultiRepeatLocked()
	s.queue.Previous()
	if !prev.IsActive() {
		s.queueChangedLocked()
		return nil
	}
	return s.startLocked(prev)
}

// JumpTo plays the song at a queue position.
func (s *serviceImpl) JumpTo(index int) error {
	s.mu.Lock()
	err := s.jumpToLocked(index)
	s.mu.Unlock()
	s.flush()
	return err
}

func (s *serviceImpl) jumpToLocked(index int) error {
	if s.closed {
		return ErrClosed
	}
	if index < 0 || index >= s.queue.Len() {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	prev := s.stateLocked()
	s.skipActiveLocked(true)
	s.resetMultiRepeatLocked()
	s.queue.JumpTo(index)
	return s.startLocked(prev)
}

// Seek moves the position within the current song by delta.
func (s *serviceImpl) Seek(delta time.Duration) error {
	return s.seek(func() { s.player.Seek(delta) })
}

// SeekTo moves to an absolute position within the current song.
func (s *serviceImpl) SeekTo(position time.Duration) error {
	return s.seek(func() { s.player.SeekTo(position) })
}

func (s *serviceImpl) seek(do func()) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.active == nil {
		s.mu.Unlock()
		return nil
	}
	do()
	pos := s.player.Position()
	sg := *s.active
	s.enqueue(func(x *extension.Set) { x.Seeked(sg, pos) })
	s.emitPositionLocked(pos)
	s.mu.Unlock()
	s.flush()
	return nil
}

// handleFinished completes the active song and moves on: multi-repeat
// first, then repeat-one, then the next song in the queue.
func (s *serviceImpl) handleFinished(gen uint64) {
	s.mu.Lock()
	s.finishLocked(gen)
	s.mu.Unlock()
	s.flush()
}

func (s *serviceImpl) finishLocked(gen uint64) {
	if s.closed || s.active == nil {
		return
	}
	if gen != s.playGen {
		logger.Debugf("[playback] ignoring end of generation %d, playing %d", gen, s.playGen)
		return
	}
	prev := s.stateLocked()
	s.enqueueSong(s.active, (*extension.Set).SongCompleted)
	s.active = nil

	if s.multiRepeat > 1 {
		s.multiRepeat--
		s.emitModeLocked()
		_ = s.startLocked(prev)
		return
	}
	s.resetMultiRepeatLocked()

	if s.queue.RepeatMode() == RepeatOne {
		_ = s.startLocked(prev)
		return
	}
	if s.queue.Next() == nil {
		s.player.Stop()
		s.queueComplete = true
		s.emitStateLocked(prev)
		return
	}
	_ = s.startLocked(prev)
}

// --- queue ---

// AddSongs appends songs to the queue.
func (s *serviceImpl) AddSongs(songs ...song.Song) {
	s.editQueue(func() bool {
		if len(songs) == 0 {
			return false
		}
		s.queue.Add(songs...)
		return true
	})
}

// InsertNext queues songs to play right after the current one.
func (s *serviceImpl) InsertNext(songs ...song.Song) {
	s.editQueue(func() bool {
		if len(songs) == 0 {
			return false
		}
		s.queue.InsertNext(songs...)
		return true
	})
}

// editQueue applies an edit that does not affect playback and records it.
func (s *serviceImpl) editQueue(edit func() bool) {
	s.mu.Lock()
	if s.closed || !edit() {
		s.mu.Unlock()
		return
	}
	s.history.Push(s.queue.Songs())
	s.queueChangedLocked()
	s.mu.Unlock()
	s.flush()
}

// ReplaceQueue replaces the queue and plays songs[start]. An empty list
// clears the queue.
func (s *serviceImpl) ReplaceQueue(songs []song.Song, start int) error {
	s.mu.Lock()
	err := s.replaceLocked(songs, start)
	s.mu.Unlock()
	s.flush()
	return err
}

func (s *serviceImpl) replaceLocked(songs []song.Song, start int) error {
	if s.closed {
		return ErrClosed
	}
	prev := s.stateLocked()
	s.skipActiveLocked(false)
	s.resetMultiRepeatLocked()
	s.queueComplete = false
	s.parked = parked{index: -1}

	if len(songs) == 0 {
		s.player.Stop()
		s.queue.Clear()
		s.history.Push(nil)
		s.queueChangedLocked()
		s.emitStateLocked(prev)
		return nil
	}

	s.queue.Replace(songs, start)
	s.history.Push(s.queue.Songs())
	s.queueChangedLocked()
	return s.startLocked(prev)
}

// RemoveAt removes a queued song. Removing the playing song moves playback
// to the song that takes its place, or stops at the end of the queue.
func (s *serviceImpl) RemoveAt(index int) error {
	s.mu.Lock()
	err := s.removeLocked(index)
	s.mu.Unlock()
	s.flush()
	return err
}

func (s *serviceImpl) removeLocked(index int) error {
	if s.closed {
		return ErrClosed
	}
	if index < 0 || index >= s.queue.Len() {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	prev := s.stateLocked()
	playing := index == s.queue.CurrentIndex() && s.active != nil
	if playing {
		s.skipActiveLocked(false)
		s.resetMultiRepeatLocked()
		s.player.Stop()
	}

	s.queue.RemoveAt(index)
	s.history.Push(s.queue.Songs())
	s.queueChangedLocked()

	if !playing {
		return nil
	}
	if index < s.queue.Len() && prev.IsActive() {
		return s.startLocked(prev)
	}
	s.emitStateLocked(prev)
	return nil
}

// Move moves a queued song; the current song stays current.
func (s *serviceImpl) Move(from, to int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if !s.queue.Move(from, to) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d -> %d", ErrIndexOutOfRange, from, to)
	}
	s.history.Push(s.queue.Songs())
	s.queueChangedLocked()
	s.mu.Unlock()
	s.flush()
	return nil
}

// ClearQueue stops playback and empties the queue.
func (s *serviceImpl) ClearQueue() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	prev := s.stateLocked()
	s.skipActiveLocked(false)
	s.resetMultiRepeatLocked()
	s.player.Stop()
	s.queue.Clear()
	s.queueComplete = false
	s.parked = parked{index: -1}
	s.history.Push(nil)
	s.queueChangedLocked()
	s.emitStateLocked(prev)
	s.mu.Unlock()
	s.flush()
}

// Undo restores the previous queue contents. The current song stays current
// when it is still queued; playback is not interrupted.
func (s *serviceImpl) Undo() bool {
	return s.restoreHistory(s.history.Undo)
}

// Redo reapplies an undone queue change.
func (s *serviceImpl) Redo() bool {
	return s.restoreHistory(s.history.Redo)
}

func (s *serviceImpl) restoreHistory(step func() ([]song.Song, bool)) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	songs, ok := step()
	if !ok {
		s.mu.Unlock()
		return false
	}

	idx := -1
	if cur := s.queue.Current(); cur != nil {
		for i := range songs {
			if songs[i].Path == cur.Path {
				idx = i
				break
			}
		}
	}
	// History holds play order; keep shuffle on with that order as-is.
	var order []int
	if s.queue.Shuffle() {
		order = make([]int, len(songs))
		for i := range order {
			order[i] = i
		}
	}
	s.queue.Restore(songs, order, idx, s.queue.RepeatMode())
	s.queueChangedLocked()
	s.mu.Unlock()
	s.flush()
	return true
}

// --- modes ---

// SetRepeatMode sets the repeat mode.
func (s *serviceImpl) SetRepeatMode(mode RepeatMode) {
	s.setMode(func() { s.queue.SetRepeatMode(mode) })
}

// CycleRepeatMode advances Off → All → One → Off and returns the new mode.
func (s *serviceImpl) CycleRepeatMode() RepeatMode {
	var mode RepeatMode
	s.setMode(func() { mode = s.queue.CycleRepeatMode() })
	return mode
}

// SetShuffle enables or disables shuffle.
func (s *serviceImpl) SetShuffle(enabled bool) {
	s.setMode(func() { s.queue.SetShuffle(enabled) })
}

// ToggleShuffle flips shuffle and returns the new setting.
func (s *serviceImpl) ToggleShuffle() bool {
	var enabled bool
	s.setMode(func() {
		enabled = !s.queue.Shuffle()
		s.queue.SetShuffle(enabled)
	})
	return enabled
}

func (s *serviceImpl) setMode(change func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	change()
	s.emitModeLocked()
	s.queueChangedLocked()
	s.mu.Unlock()
	s.flush()
}

// SetMultiRepeat plays the current song n times in total before the queue
// advances. Values below 2 disable it. Any skip resets it.
func (s *serviceImpl) SetMultiRepeat(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if n < 2 {
		n = 0
	}
	s.multiRepeat = n
	s.emitModeLocked()
}

// UpdateExtensionOptions delivers new options to every extension.
func (s *serviceImpl) UpdateExtensionOptions(opts extension.Options) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	o := opts.Clone()
	s.enqueue(func(x *extension.Set) { x.OptionsChanged(o) })
	s.mu.Unlock()
	s.flush()
}

// --- events ---

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

func (s *serviceImpl) broadcast(send func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		send(sub)
	}
}

func (s *serviceImpl) emitStateLocked(prev State) {
	cur := s.stateLocked()
	if cur == prev {
		return
	}
	s.broadcast(func(sub *Subscription) { sub.sendState(StateChange{Previous: prev, Current: cur}) })
}

func (s *serviceImpl) emitSongLocked(e SongChange) {
	s.broadcast(func(sub *Subscription) { sub.sendSong(e) })
}

func (s *serviceImpl) emitPositionLocked(pos time.Duration) {
	s.broadcast(func(sub *Subscription) { sub.sendPosition(pos) })
}

func (s *serviceImpl) emitModeLocked() {
	e := ModeChange{
		RepeatMode:  s.queue.RepeatMode(),
		Shuffle:     s.queue.Shuffle(),
		MultiRepeat: s.multiRepeat,
	}
	s.broadcast(func(sub *Subscription) { sub.sendMode(e) })
}

// queueChangedLocked notifies subscribers and extensions of the new queue.
func (s *serviceImpl) queueChangedLocked() {
	e := QueueChange{Songs: s.queue.Songs(), Index: s.queue.CurrentIndex()}
	s.broadcast(func(sub *Subscription) { sub.sendQueue(e) })

	snap := s.snapshotLocked()
	s.enqueue(func(x *extension.Set) { x.QueueChanged(snap) })
}

func (s *serviceImpl) reportErrorLocked(op, path string, err error) {
	logger.Warnf("[playback] %s %s: %v", op, path, err)
	e := ErrorEvent{Operation: op, Path: path, Err: err}
	s.broadcast(func(sub *Subscription) { sub.sendError(e) })
}

// --- lifecycle ---

// Close pauses the current song so extensions see where it was left, stops
// output and shuts the service down.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	if s.stateLocked() == StatePlaying {
		s.player.Pause()
		s.enqueueSong(s.active, (*extension.Set).SongPaused)
	}
	if s.active != nil {
		s.parked = parked{index: s.queue.CurrentIndex(), pos: s.player.Position()}
	}
	s.player.Stop()
	s.active = nil
	s.stopSleepLocked()
	s.closed = true
	close(s.done)
	s.mu.Unlock()

	s.flush()
	s.wg.Wait()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}
