package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/llehouerou/jockey/internal/config"
	"github.com/llehouerou/jockey/internal/errmsg"
	"github.com/llehouerou/jockey/internal/extension"
	"github.com/llehouerou/jockey/internal/extensions/nowplaying"
	"github.com/llehouerou/jockey/internal/extensions/persistence"
	"github.com/llehouerou/jockey/internal/extensions/playcount"
	"github.com/llehouerou/jockey/internal/extensions/scrobbler"
	"github.com/llehouerou/jockey/internal/lastfm"
	"github.com/llehouerou/jockey/internal/logger"
	"github.com/llehouerou/jockey/internal/mpris"
	"github.com/llehouerou/jockey/internal/notify"
	"github.com/llehouerou/jockey/internal/playback"
	"github.com/llehouerou/jockey/internal/player"
	"github.com/llehouerou/jockey/internal/playlist"
	"github.com/llehouerou/jockey/internal/song"
	"github.com/llehouerou/jockey/internal/state"
)

// Deps holds the long-lived collaborators of a session. Optional ones are
// nil when disabled by configuration.
type Deps struct {
	Config  *config.Config
	State   state.Interface
	Service playback.Service

	Scrobbler  *scrobbler.Extension
	NowPlaying *nowplaying.Extension

	// Stderr delivers output captured from native libraries, if any.
	Stderr <-chan string

	mpris *mpris.Adapter
}

// New opens the state database and audio output and builds the session
// from cfg, including the desktop integrations.
func New(cfg *config.Config) (*Deps, error) {
	st, err := state.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errmsg.OpStoreOpen, err)
	}

	var n notify.Notifier
	if cfg.NotificationsEnabled() {
		n, err = notify.New(notify.Options{
			AppName: cfg.Notifications.AppName,
			Icon:    cfg.Notifications.Icon,
		})
		if err != nil {
			logger.Warnf("[notify] %s", errmsg.Format(errmsg.OpNotify, err))
			n = nil
		}
	}

	d := Build(cfg, st, player.New(), n)

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(d.Service)
		if err != nil {
			logger.Warnf("[mpris] %s", errmsg.Format(errmsg.OpMPRIS, err))
		} else {
			d.mpris = adapter
		}
	}
	return d, nil
}

// Build wires the playback service and its extensions over the given
// store and output. n may be nil to disable notifications.
func Build(cfg *config.Config, st state.Interface, p player.Interface, n notify.Notifier) *Deps {
	d := &Deps{Config: cfg, State: st}
	playerCfg := cfg.GetPlayerConfig()

	volume := 1.0
	if playerCfg.Volume != nil {
		volume = *playerCfg.Volume
	} else if v, err := st.GetVolume(); err == nil {
		volume = v
	} else {
		logger.Warnf("[app] read volume: %v", err)
	}
	p.SetVolume(volume)

	exts := []extension.Extension{persistence.New(st, *playerCfg.ResumeOnStart)}
	if cfg.PlayCountEnabled() {
		exts = append(exts, playcount.New(st))
	}
	if cfg.HasLastfmConfig() {
		client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
		if sess, err := st.GetLastfmSession(); err != nil {
			logger.Warnf("[scrobbler] read session: %v", err)
		} else if sess != nil {
			client.SetSessionKey(sess.SessionKey)
		}
		d.Scrobbler = scrobbler.New(client, st)
		exts = append(exts, d.Scrobbler)
	}
	if n != nil {
		d.NowPlaying = nowplaying.New(n, cfg.NotificationTimeout())
		exts = append(exts, d.NowPlaying)
	}

	d.Service = playback.New(p, playlist.NewQueue(), playback.Config{
		Extensions: extension.NewSet(extension.PanicRecover, exts...),
		Options: extension.Options{
			scrobbler.OptionEnabled:  cfg.ScrobblingEnabled(),
			nowplaying.OptionEnabled: cfg.NotificationsEnabled(),
		},
		HistorySize: playerCfg.HistorySize,
	})

	// Modes from the config apply to fresh sessions only; a restored
	// queue keeps its own.
	if d.Service.QueueLen() == 0 {
		d.Service.SetRepeatMode(playlist.ParseRepeatMode(playerCfg.Repeat))
		d.Service.SetShuffle(playerCfg.Shuffle)
	}
	return d
}

// Enqueue replaces the queue with the songs found under paths and starts
// playing the first one. Paths without any music leave the queue untouched.
func (d *Deps) Enqueue(paths ...string) error {
	songs, err := song.Collect(paths...)
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpFileScan, err)
	}
	if len(songs) == 0 {
		return nil
	}
	if err := d.Service.ReplaceQueue(songs, 0); err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpQueueAdd, err)
	}
	return nil
}

// SetVolume applies and stores the output volume.
func (d *Deps) SetVolume(level float64) error {
	level = min(max(level, 0), 1)
	d.Service.SetVolume(level)
	if err := d.State.SaveVolume(level); err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpVolumeSave, err)
	}
	return nil
}

// RetryScrobbles drops expired pending scrobbles and resubmits the rest.
func (d *Deps) RetryScrobbles(ctx context.Context) (lastfm.RetryResult, error) {
	if d.Scrobbler == nil {
		return lastfm.RetryResult{}, nil
	}
	maxAge := d.Config.GetScrobblerConfig().PendingMaxAge
	if err := d.State.DeleteOldPendingScrobbles(maxAge); err != nil {
		logger.Warnf("[scrobbler] expire pending: %v", err)
	}
	res, err := d.Scrobbler.RetryPending(ctx)
	if err != nil {
		return res, fmt.Errorf("%s: %w", errmsg.OpLastfmRetry, err)
	}
	return res, nil
}

// Close stops playback and releases every collaborator. The service goes
// first so extensions observe the final pause before their sinks close.
func (d *Deps) Close() error {
	var errs []error
	if err := d.Service.Close(); err != nil {
		errs = append(errs, err)
	}
	if d.Scrobbler != nil {
		d.Scrobbler.Close()
	}
	if d.NowPlaying != nil {
		d.NowPlaying.Dismiss()
	}
	if d.mpris != nil {
		if err := d.mpris.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := d.State.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
