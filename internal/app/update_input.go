package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/jockey/internal/errmsg"
	"github.com/llehouerou/jockey/internal/keymap"
	"github.com/llehouerou/jockey/internal/playback"
	"github.com/llehouerou/jockey/internal/ui/help"
	"github.com/llehouerou/jockey/internal/ui/playerbar"
	"github.com/llehouerou/jockey/internal/ui/prompt"
)

// handleKey runs the action bound to the key, if any.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Resolve(msg.String())
	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		h := help.New(m.keys)
		h.SetSize(m.width, m.height)
		cmd := m.openPopup(h, "Help", h.Footer())
		return m, cmd
	case keymap.ActionToggleDisplay:
		if m.barMode == playerbar.ModeExpanded {
			m.barMode = playerbar.ModeCompact
		} else {
			m.barMode = playerbar.ModeExpanded
		}
		m.resize()
		return m, nil
	case keymap.ActionSleepTimer:
		cmd := m.openPopup(prompt.New(m.sleepMinutes), "Sleep timer", "enter: set  esc: cancel")
		return m, cmd
	}

	if handled, cmd := m.handlePlaybackAction(action); handled {
		return m, cmd
	}
	_, cmd := m.handleQueueAction(action)
	return m, cmd
}

func (m *Model) handlePlaybackAction(action keymap.Action) (bool, tea.Cmd) {
	var err error
	op := errmsg.OpPlaybackStart

	switch action {
	case keymap.ActionPlayPause:
		err = m.svc.Toggle()
	case keymap.ActionStop:
		err = m.svc.Stop()
	case keymap.ActionNext:
		op = errmsg.OpPlaybackSkip
		err = m.svc.Next()
	case keymap.ActionPrev:
		op = errmsg.OpPlaybackSkip
		err = m.svc.Previous()
	case keymap.ActionSeekBack:
		op = errmsg.OpPlaybackSeek
		err = m.svc.Seek(-seekStep)
	case keymap.ActionSeekForward:
		op = errmsg.OpPlaybackSeek
		err = m.svc.Seek(seekStep)
	case keymap.ActionVolumeUp:
		op = errmsg.OpVolumeSave
		err = m.deps.SetVolume(m.svc.Volume() + volumeStep)
	case keymap.ActionVolumeDown:
		op = errmsg.OpVolumeSave
		err = m.deps.SetVolume(m.svc.Volume() - volumeStep)
	case keymap.ActionCycleRepeat:
		m.svc.CycleRepeatMode()
	case keymap.ActionToggleShuffle:
		m.svc.ToggleShuffle()
	case keymap.ActionMultiRepeat:
		m.svc.SetMultiRepeat(nextMultiRepeat(m.svc.MultiRepeat()))
	default:
		return false, nil
	}
	return true, m.reportActionError(op, err)
}

// handleQueueAction acts on the song under the queue cursor.
func (m *Model) handleQueueAction(action keymap.Action) (bool, tea.Cmd) {
	var err error
	op := errmsg.OpQueueMove
	cursor := m.queue.Cursor()

	switch action {
	case keymap.ActionCursorUp:
		m.queue.MoveCursor(-1)
	case keymap.ActionCursorDown:
		m.queue.MoveCursor(1)
	case keymap.ActionCursorTop:
		m.queue.CursorTop()
	case keymap.ActionCursorBottom:
		m.queue.CursorBottom()
	case keymap.ActionPlaySelected:
		if cursor >= 0 {
			op = errmsg.OpPlaybackStart
			err = m.svc.JumpTo(cursor)
		}
	case keymap.ActionPlayNext:
		if to, ok := playNextTarget(cursor, m.svc.QueueIndex()); ok {
			err = m.moveSelected(cursor, to)
		}
	case keymap.ActionRemove:
		if cursor >= 0 {
			op = errmsg.OpQueueRemove
			err = m.svc.RemoveAt(cursor)
		}
	case keymap.ActionMoveUp:
		if cursor > 0 {
			err = m.moveSelected(cursor, cursor-1)
		}
	case keymap.ActionMoveDown:
		if cursor >= 0 && cursor < m.queue.Len()-1 {
			err = m.moveSelected(cursor, cursor+1)
		}
	case keymap.ActionClearQueue:
		m.svc.ClearQueue()
	case keymap.ActionUndo:
		m.svc.Undo()
	case keymap.ActionRedo:
		m.svc.Redo()
	default:
		return false, nil
	}
	return true, m.reportActionError(op, err)
}

// moveSelected moves a song and keeps the cursor on it.
func (m *Model) moveSelected(from, to int) error {
	if err := m.svc.Move(from, to); err != nil {
		return err
	}
	m.syncQueue()
	m.queue.SetCursor(to)
	return nil
}

func (m *Model) reportActionError(op errmsg.Op, err error) tea.Cmd {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, playback.ErrEmptyQueue):
		return m.showError("Queue is empty")
	default:
		return m.showError(errmsg.Format(op, err))
	}
}

// playNextTarget returns where the song at cursor goes to play right after
// the current one.
func playNextTarget(cursor, playing int) (int, bool) {
	switch {
	case cursor < 0 || cursor == playing:
		return 0, false
	case playing < 0:
		return 0, cursor != 0
	case cursor > playing:
		return playing + 1, cursor != playing+1
	default:
		return playing, true
	}
}

// nextMultiRepeat cycles off, 2, 3 ... maxMultiRepeat, off.
func nextMultiRepeat(n int) int {
	if n < 2 {
		return 2
	}
	if n >= maxMultiRepeat {
		return 0
	}
	return n + 1
}
