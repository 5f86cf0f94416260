// Package app wires the playback service to its extensions and runs the
// terminal interface.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/jockey/internal/lastfm"
	"github.com/llehouerou/jockey/internal/playback"
)

// PlaybackMessage is implemented by messages from the playback service.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// TickMsg is sent periodically to refresh the progress bar.
type TickMsg time.Time

func (TickMsg) playbackMessage() {}

// ServiceStateChangedMsg reports a playback state transition.
type ServiceStateChangedMsg playback.StateChange

func (ServiceStateChangedMsg) playbackMessage() {}

// ServiceSongChangedMsg reports that a song started.
type ServiceSongChangedMsg playback.SongChange

func (ServiceSongChangedMsg) playbackMessage() {}

// ServiceQueueChangedMsg reports a queue edit or move.
type ServiceQueueChangedMsg playback.QueueChange

func (ServiceQueueChangedMsg) playbackMessage() {}

// ServiceModeChangedMsg reports a repeat, shuffle or multi-repeat change.
type ServiceModeChangedMsg playback.ModeChange

func (ServiceModeChangedMsg) playbackMessage() {}

// ServicePositionChangedMsg reports a seek.
type ServicePositionChangedMsg playback.PositionChange

func (ServicePositionChangedMsg) playbackMessage() {}

// ServiceSleepChangedMsg reports a sleep timer change.
type ServiceSleepChangedMsg playback.SleepTimerChange

func (ServiceSleepChangedMsg) playbackMessage() {}

// ServiceErrorMsg reports a playback error.
type ServiceErrorMsg playback.ErrorEvent

func (ServiceErrorMsg) playbackMessage() {}

// ServiceClosedMsg is sent once the service has shut down.
type ServiceClosedMsg struct{}

func (ServiceClosedMsg) playbackMessage() {}

// StderrMsg carries a line a native library printed to stderr.
type StderrMsg string

// RetryTickMsg triggers a pending scrobble retry.
type RetryTickMsg time.Time

// RetryDoneMsg carries the outcome of a pending scrobble retry.
type RetryDoneMsg struct {
	Result lastfm.RetryResult
	Err    error
}

// ClearErrorMsg hides the status line error if it is still the one shown.
type ClearErrorMsg struct {
	Version int
}
