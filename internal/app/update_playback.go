package app

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/jockey/internal/errmsg"
)

// handlePlaybackMsg routes playback service messages. Every service event
// re-arms the watcher.
func (m Model) handlePlaybackMsg(msg PlaybackMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if m.svc.IsPlaying() {
			return m, TickCmd()
		}
		m.ticking = false
		return m, nil

	case ServiceStateChangedMsg:
		m.resize()
		cmds := []tea.Cmd{WatchServiceEvents(m.sub)}
		if m.svc.IsPlaying() && !m.ticking {
			m.ticking = true
			cmds = append(cmds, TickCmd())
		}
		return m, tea.Batch(cmds...)

	case ServiceSongChangedMsg:
		followed := m.queue.Cursor() == m.queue.Playing()
		m.syncQueue()
		if followed {
			m.queue.FollowPlaying()
		}
		m.resize()
		return m, WatchServiceEvents(m.sub)

	case ServiceQueueChangedMsg:
		m.queue.SetQueue(msg.Songs, msg.Index)
		return m, WatchServiceEvents(m.sub)

	case ServiceErrorMsg:
		text := errmsg.FormatWith(errmsg.OpPlaybackStart, filepath.Base(msg.Path), msg.Err)
		return m, tea.Batch(m.showError(text), WatchServiceEvents(m.sub))

	case ServiceClosedMsg:
		return m, nil

	case ServiceModeChangedMsg, ServicePositionChangedMsg, ServiceSleepChangedMsg:
		// Rendered from the service on the next View.
		return m, WatchServiceEvents(m.sub)
	}
	return m, nil
}

func (m *Model) syncQueue() {
	m.queue.SetQueue(m.svc.Queue(), m.svc.QueueIndex())
}
