// Package nowplaying shows a desktop notification when a song starts.
package nowplaying

import (
	"sync"

	"github.com/llehouerou/jockey/internal/extension"
	"github.com/llehouerou/jockey/internal/logger"
	"github.com/llehouerou/jockey/internal/notify"
	"github.com/llehouerou/jockey/internal/song"
)

// OptionEnabled toggles notifications at runtime.
const OptionEnabled = "notifications.enabled"

// Extension keeps a single notification on screen, replacing it for each
// new song.
type Extension struct {
	extension.Base
	notifier notify.Notifier
	timeout  int32

	mu      sync.Mutex
	enabled bool
	lastID  uint32
}

// New creates the extension. timeoutMS is passed to the notification
// server; -1 uses its default.
func New(n notify.Notifier, timeoutMS int32) *Extension {
	return &Extension{notifier: n, timeout: timeoutMS, enabled: true}
}

func (e *Extension) Name() string { return "nowplaying" }

func (e *Extension) OnOptionsChanged(opts extension.Options) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = opts.Bool(OptionEnabled, true)
}

func (e *Extension) OnSongStarted(s song.Song) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled {
		return
	}

	n := notify.ForSong(s, e.timeout)
	n.ReplacesID = e.lastID
	id, err := e.notifier.Notify(n)
	if err != nil {
		logger.Debugf("[nowplaying] notify: %v", err)
		return
	}
	e.lastID = id
}

// Dismiss closes the last notification.
func (e *Extension) Dismiss() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastID == 0 {
		return
	}
	if err := e.notifier.Close(e.lastID); err != nil {
		logger.Debugf("[nowplaying] close notification: %v", err)
	}
	e.lastID = 0
}
