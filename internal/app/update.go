package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/jockey/internal/logger"
	"github.com/llehouerou/jockey/internal/ui/popup"
	"github.com/llehouerou/jockey/internal/ui/prompt"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.popup != nil {
			var cmd tea.Cmd
			m.popup, cmd = m.popup.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)

	case popup.CloseMsg:
		m.closePopup()
		return m, nil

	case prompt.Result:
		m.closePopup()
		if msg.Duration <= 0 {
			m.svc.CancelSleepTimer()
			return m, nil
		}
		m.sleepMinutes = int(msg.Duration.Minutes())
		m.svc.StartSleepTimer(msg.Duration)
		return m, nil

	case PlaybackMessage:
		return m.handlePlaybackMsg(msg)

	case StderrMsg:
		logger.Warnf("[stderr] %s", string(msg))
		cmd := m.showError(string(msg))
		return m, tea.Batch(cmd, WatchStderr(m.deps.Stderr))

	case RetryTickMsg:
		interval := m.deps.Config.GetScrobblerConfig().RetryInterval
		return m, tea.Batch(RetryScrobblesCmd(m.deps), RetryTickCmd(interval))

	case RetryDoneMsg:
		if msg.Err != nil {
			logger.Warnf("[scrobbler] %v", msg.Err)
		} else if msg.Result.Succeeded+msg.Result.Failed > 0 {
			logger.Infof("[scrobbler] retried pending scrobbles: %d sent, %d failed",
				msg.Result.Succeeded, msg.Result.Failed)
		}
		return m, nil

	case ClearErrorMsg:
		if msg.Version == m.errVersion {
			m.errMsg = ""
			m.resize()
		}
		return m, nil
	}

	// Forward everything else (cursor blink) to the popup.
	if m.popup != nil {
		var cmd tea.Cmd
		m.popup, cmd = m.popup.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) openPopup(p popup.Popup, title, footer string) tea.Cmd {
	m.popup = p
	m.popupTitle = title
	m.popupFooter = footer
	p.SetSize(m.width, m.height)
	return p.Init()
}

func (m *Model) closePopup() {
	m.popup = nil
	m.popupTitle = ""
	m.popupFooter = ""
}

// showError displays msg on the status line until a newer error replaces
// it or the display delay expires.
func (m *Model) showError(msg string) tea.Cmd {
	m.errMsg = msg
	m.errVersion++
	m.resize()
	return ClearErrorCmd(m.errVersion)
}
