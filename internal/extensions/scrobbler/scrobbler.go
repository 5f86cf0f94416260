// Package scrobbler reports listening activity to Last.fm.
//
// Now-playing updates are sent when a song starts or resumes. When a song
// ends, it is scrobbled if it is longer than MinDuration and was heard
// (pauses excluded) for half its length or MaxThreshold, whichever is
// smaller. Submissions run on a background worker so hooks never wait on
// the network; scrobbles that fail are kept in the pending store and
// resubmitted by RetryPending.
package scrobbler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/llehouerou/jockey/internal/extension"
	"github.com/llehouerou/jockey/internal/lastfm"
	"github.com/llehouerou/jockey/internal/logger"
	"github.com/llehouerou/jockey/internal/song"
)

// OptionEnabled is the extension option that turns scrobbling on.
const OptionEnabled = "scrobbler.enabled"

const (
	// MinDuration is the length a song must exceed to be scrobbled.
	MinDuration = 30 * time.Second
	// MaxThreshold caps the listening time required for long songs.
	MaxThreshold = 4 * time.Minute

	queueSize = 32
)

var errQueueFull = errors.New("submission queue full")

// Client submits to Last.fm; *lastfm.Client implements it.
type Client interface {
	IsAuthenticated() bool
	UpdateNowPlaying(track lastfm.ScrobbleTrack) error
	Scrobble(track lastfm.ScrobbleTrack) error
}

// listen tracks the song currently heard.
type listen struct {
	song         song.Song
	duration     time.Duration
	startedAt    time.Time
	playingSince time.Time // zero while paused
	heard        time.Duration
}

func (l *listen) pause(now time.Time) {
	if !l.playingSince.IsZero() {
		l.heard += now.Sub(l.playingSince)
		l.playingSince = time.Time{}
	}
}

// Extension is the Last.fm scrobbler.
type Extension struct {
	extension.Base
	client Client
	store  lastfm.PendingStore

	mu      sync.Mutex
	view    extension.Player
	enabled bool
	cur     *listen
	closed  bool

	jobs chan func()
	wg   sync.WaitGroup
}

// New creates a scrobbler and starts its submission worker. It stays
// disabled until OptionEnabled is set.
func New(client Client, store lastfm.PendingStore) *Extension {
	e := &Extension{
		client: client,
		store:  store,
		jobs:   make(chan func(), queueSize),
	}
	e.wg.Add(1)
	go e.work()
	return e
}

func (e *Extension) work() {
	defer e.wg.Done()
	for job := range e.jobs {
		job()
	}
}

// Close submits what is queued and stops the worker.
func (e *Extension) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.jobs)
	e.mu.Unlock()
	e.wg.Wait()
}

func (e *Extension) Name() string { return "scrobbler" }

func (e *Extension) Attach(p extension.Player) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view = p
}

func (e *Extension) OnOptionsChanged(opts extension.Options) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = opts.Bool(OptionEnabled, false)
}

// Enabled reports whether scrobbling is on.
func (e *Extension) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

func (e *Extension) OnSongStarted(s song.Song) {
	now := time.Now()
	e.mu.Lock()
	defer e.mu.Unlock()

	dur := s.Duration
	if dur <= 0 && e.view != nil {
		if cur := e.view.CurrentSong(); cur != nil && cur.Path == s.Path {
			dur = e.view.Duration()
		}
	}
	e.cur = &listen{song: s, duration: dur, startedAt: now, playingSince: now}
	e.nowPlayingLocked(lastfm.TrackFromSong(s, now))
}

func (e *Extension) OnSongPaused(s song.Song) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cur != nil && e.cur.song.Path == s.Path {
		e.cur.pause(time.Now())
	}
}

func (e *Extension) OnSongResumed(s song.Song) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cur == nil || e.cur.song.Path != s.Path {
		return
	}
	if e.cur.playingSince.IsZero() {
		e.cur.playingSince = time.Now()
	}
	e.nowPlayingLocked(lastfm.TrackFromSong(s, e.cur.startedAt))
}

func (e *Extension) OnSongCompleted(s song.Song) {
	e.finish(s)
}

func (e *Extension) OnSongSkipped(s song.Song, _ extension.SkipInfo) {
	e.finish(s)
}

func (e *Extension) finish(s song.Song) {
	e.mu.Lock()
	defer e.mu.Unlock()
	l := e.cur
	if l == nil || l.song.Path != s.Path {
		return
	}
	e.cur = nil
	l.pause(time.Now())

	if !ShouldScrobble(l.duration, l.heard) {
		logger.Debugf("[scrobbler] %s heard %s of %s: not scrobbled", s, l.heard.Round(time.Second), l.duration)
		return
	}
	track := lastfm.TrackFromSong(s, l.startedAt)
	track.Duration = l.duration
	if !e.usableLocked(track) {
		return
	}
	if !e.submitLocked(func() { e.scrobble(track) }) {
		e.queuePending(track, errQueueFull)
	}
}

// ShouldScrobble applies the Last.fm rule: the song must be longer than
// MinDuration and heard for min(duration/2, MaxThreshold).
func ShouldScrobble(duration, heard time.Duration) bool {
	if duration <= MinDuration {
		return false
	}
	return heard >= min(duration/2, MaxThreshold)
}

func (e *Extension) usableLocked(track lastfm.ScrobbleTrack) bool {
	return e.enabled && !e.closed && track.Valid() && e.client.IsAuthenticated()
}

func (e *Extension) nowPlayingLocked(track lastfm.ScrobbleTrack) {
	if !e.usableLocked(track) {
		return
	}
	e.submitLocked(func() {
		if err := e.client.UpdateNowPlaying(track); err != nil {
			logger.Debugf("[scrobbler] now playing %s - %s: %v", track.Artist, track.Track, err)
		}
	})
}

func (e *Extension) submitLocked(job func()) bool {
	select {
	case e.jobs <- job:
		return true
	default:
		logger.Warnf("[scrobbler] %v", errQueueFull)
		return false
	}
}

func (e *Extension) scrobble(track lastfm.ScrobbleTrack) {
	err := e.client.Scrobble(track)
	if err == nil {
		logger.Debugf("[scrobbler] scrobbled %s - %s", track.Artist, track.Track)
		return
	}
	logger.Warnf("[scrobbler] scrobble %s - %s: %v", track.Artist, track.Track, err)
	e.queuePending(track, err)
}

func (e *Extension) queuePending(track lastfm.ScrobbleTrack, cause error) {
	if err := e.store.AddPendingScrobble(lastfm.ToPending(track, cause)); err != nil {
		logger.Errorf("[scrobbler] keep pending scrobble: %v", err)
	}
}

// RetryPending resubmits scrobbles that previously failed. It does nothing
// while scrobbling is disabled or the client has no session.
func (e *Extension) RetryPending(ctx context.Context) (lastfm.RetryResult, error) {
	if !e.Enabled() || !e.client.IsAuthenticated() {
		return lastfm.RetryResult{}, nil
	}
	return lastfm.RetryPending(ctx, e.client, e.store)
}
