package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/jockey/internal/playback"
)

const (
	tickInterval      = time.Second
	errorDisplayDelay = 5 * time.Second
	retryTimeout      = 30 * time.Second
)

// TickCmd returns a command that sends TickMsg after one second.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// RetryTickCmd returns a command that sends RetryTickMsg after d.
func RetryTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return RetryTickMsg(t)
	})
}

// ClearErrorCmd hides error version v after a delay.
func ClearErrorCmd(v int) tea.Cmd {
	return tea.Tick(errorDisplayDelay, func(time.Time) tea.Msg {
		return ClearErrorMsg{Version: v}
	})
}

// WatchServiceEvents returns a command that waits for the next event on
// sub and converts it to a tea.Msg. Handlers re-issue it after each event.
func WatchServiceEvents(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return ServiceStateChangedMsg(e)
		case e := <-sub.SongChanged:
			return ServiceSongChangedMsg(e)
		case e := <-sub.QueueChanged:
			return ServiceQueueChangedMsg(e)
		case e := <-sub.ModeChanged:
			return ServiceModeChangedMsg(e)
		case e := <-sub.PositionChanged:
			return ServicePositionChangedMsg(e)
		case e := <-sub.SleepChanged:
			return ServiceSleepChangedMsg(e)
		case e := <-sub.Error:
			return ServiceErrorMsg(e)
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// WatchStderr waits for the next captured stderr line. It returns nil
// once lines is closed.
func WatchStderr(lines <-chan string) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-lines
		if !ok {
			return nil
		}
		return StderrMsg(line)
	}
}

// RetryScrobblesCmd resubmits pending scrobbles in the background.
func RetryScrobblesCmd(d *Deps) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), retryTimeout)
		defer cancel()
		res, err := d.RetryScrobbles(ctx)
		return RetryDoneMsg{Result: res, Err: err}
	}
}
