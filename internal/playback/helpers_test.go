package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/llehouerou/jockey/internal/extension"
	"github.com/llehouerou/jockey/internal/player"
	"github.com/llehouerou/jockey/internal/playlist"
	"github.com/llehouerou/jockey/internal/song"
)

// recorder is an extension implementing every hook.
type recorder struct {
	mu      sync.Mutex
	events  []string
	skips   []extension.SkipInfo
	queues  []extension.Snapshot
	options []extension.Options
	view    extension.Player
	restore *extension.Snapshot
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) OnSongStarted(s song.Song)   { r.add("started:%s", s.Path) }
func (r *recorder) OnSongCompleted(s song.Song) { r.add("completed:%s", s.Path) }
func (r *recorder) OnSongPaused(s song.Song)    { r.add("paused:%s", s.Path) }
func (r *recorder) OnSongResumed(s song.Song)   { r.add("resumed:%s", s.Path) }

func (r *recorder) OnSongSkipped(s song.Song, info extension.SkipInfo) {
	r.add("skipped:%s", s.Path)
	r.mu.Lock()
	r.skips = append(r.skips, info)
	r.mu.Unlock()
}

func (r *recorder) OnSeeked(s song.Song, pos time.Duration) {
	r.add("seeked:%s@%s", s.Path, pos)
}

func (r *recorder) OnQueueChanged(snap extension.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queues = append(r.queues, snap)
}

func (r *recorder) OnOptionsChanged(o extension.Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.options = append(r.options, o)
}

func (r *recorder) Attach(p extension.Player) { r.view = p }

func (r *recorder) Restore() (*extension.Snapshot, error) { return r.restore, nil }

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.skips = nil
	r.queues = nil
}

func (r *recorder) Skips() []extension.SkipInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]extension.SkipInfo(nil), r.skips...)
}

func (r *recorder) Queues() []extension.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]extension.Snapshot(nil), r.queues...)
}

func testSongs(paths ...string) []song.Song {
	out := make([]song.Song, len(paths))
	for i, p := range paths {
		out[i] = song.Song{ID: int64(i + 1), Path: p, Title: p}
	}
	return out
}

// newTestService builds a service over a mock player with the given songs
// queued and nothing current. Callers must Close it.
func newTestService(paths ...string) (Service, *player.Mock, *recorder) {
	p := player.NewMock()
	q := playlist.NewQueue()
	q.Add(testSongs(paths...)...)
	rec := &recorder{}
	svc := New(p, q, Config{Extensions: extension.NewSet(extension.PanicRecover, rec)})
	return svc, p, rec
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
