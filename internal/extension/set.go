package extension

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/jockey/internal/logger"
	"github.com/llehouerou/jockey/internal/song"
)

// PanicPolicy decides what Set does when an extension panics.
type PanicPolicy int

const (
	// PanicRecover logs the panic and continues with the next extension.
	PanicRecover PanicPolicy = iota
	// PanicPropagate re-panics after logging.
	PanicPropagate
)

// Set dispatches hooks to an ordered list of extensions.
// It is built once and never modified; the zero value dispatches to nothing.
type Set struct {
	exts   []Extension
	names  []string
	policy PanicPolicy
}

// NewSet returns a Set calling exts in the given order. Nil entries are dropped.
func NewSet(policy PanicPolicy, exts ...Extension) *Set {
	s := &Set{policy: policy}
	for _, e := range exts {
		if e == nil {
			continue
		}
		s.exts = append(s.exts, e)
		s.names = append(s.names, nameOf(e, len(s.names)))
	}
	return s
}

func nameOf(e Extension, i int) string {
	if n, ok := e.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return fmt.Sprintf("extension#%d(%T)", i, e)
}

// Len returns the number of extensions.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.exts)
}

// Names returns the extension names in dispatch order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.names...)
}

// each calls fn for every extension, isolating panics per extension.
func (s *Set) each(hook string, fn func(Extension)) {
	if s == nil {
		return
	}
	for i, e := range s.exts {
		s.call(s.names[i], hook, e, fn)
	}
}

func (s *Set) call(name, hook string, e Extension, fn func(Extension)) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		logger.Z.Error("[extension] hook panicked",
			zap.String("extension", name),
			zap.String("hook", hook),
			zap.Any("panic", r),
			zap.StackSkip("stack", 2),
		)
		if s.policy == PanicPropagate {
			panic(r)
		}
	}()
	fn(e)
}

func (s *Set) SongStarted(sg song.Song) {
	s.each("started", func(e Extension) { e.OnSongStarted(sg) })
}

func (s *Set) SongCompleted(sg song.Song) {
	s.each("completed", func(e Extension) { e.OnSongCompleted(sg) })
}

func (s *Set) SongPaused(sg song.Song) {
	s.each("paused", func(e Extension) { e.OnSongPaused(sg) })
}

func (s *Set) SongResumed(sg song.Song) {
	s.each("resumed", func(e Extension) { e.OnSongResumed(sg) })
}

// SongSkipped notifies extensions implementing Skipper.
func (s *Set) SongSkipped(sg song.Song, info SkipInfo) {
	s.each("skipped", func(e Extension) {
		if k, ok := e.(Skipper); ok {
			k.OnSongSkipped(sg, info)
		}
	})
}

// Seeked notifies extensions implementing Seeker.
func (s *Set) Seeked(sg song.Song, position time.Duration) {
	s.each("seeked", func(e Extension) {
		if k, ok := e.(Seeker); ok {
			k.OnSeeked(sg, position)
		}
	})
}

// QueueChanged hands each QueueWatcher its own copy of snap.
func (s *Set) QueueChanged(snap Snapshot) {
	s.each("queue", func(e Extension) {
		if w, ok := e.(QueueWatcher); ok {
			w.OnQueueChanged(snap.Clone())
		}
	})
}

// OptionsChanged hands each OptionsWatcher its own copy of opts.
func (s *Set) OptionsChanged(opts Options) {
	s.each("options", func(e Extension) {
		if w, ok := e.(OptionsWatcher); ok {
			w.OnOptionsChanged(opts.Clone())
		}
	})
}

// Attach hands p to every Attacher.
func (s *Set) Attach(p Player) {
	s.each("attach", func(e Extension) {
		if a, ok := e.(Attacher); ok {
			a.Attach(p)
		}
	})
}

// Restore asks each Restorer in order for a snapshot and returns the first
// non-nil one. Errors are logged and the next Restorer is tried.
func (s *Set) Restore() *Snapshot {
	var snap *Snapshot
	s.each("restore", func(e Extension) {
		if snap != nil {
			return
		}
		r, ok := e.(Restorer)
		if !ok {
			return
		}
		got, err := r.Restore()
		if err != nil {
			logger.Warnf("[extension] restore failed: %v", err)
			return
		}
		snap = got
	})
	return snap
}
