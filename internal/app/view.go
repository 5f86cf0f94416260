package app

import (
	"fmt"
	"strings"

	"github.com/llehouerou/jockey/internal/ui/overlay"
	"github.com/llehouerou/jockey/internal/ui/playerbar"
	"github.com/llehouerou/jockey/internal/ui/popup"
	"github.com/llehouerou/jockey/internal/ui/render"
	"github.com/llehouerou/jockey/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	parts := []string{m.renderHeader(), m.queue.View()}
	if bar := playerbar.Render(m.playerState(), m.width); bar != "" {
		parts = append(parts, bar)
	}
	if m.errMsg != "" {
		msg := render.Truncate(m.errMsg, m.width)
		parts = append(parts, styles.T().S().Error.Render(msg))
	}
	view := strings.Join(parts, "\n")

	if m.popup != nil {
		box := popup.Dialog{
			Title:   m.popupTitle,
			Content: m.popup.View(),
			Footer:  m.popupFooter,
		}.Render(m.width - 4)
		view = overlay.Center(view, box, m.width, m.height)
	}
	return view
}

func (m Model) renderHeader() string {
	s := styles.T().S()
	title := styles.T().Title("jockey")

	status := m.svc.State().String()
	if n := m.svc.QueueLen(); n > 0 {
		status = fmt.Sprintf("%s · %d songs", status, n)
	}
	return render.Row(title, s.Muted.Render(status)+" ", m.width)
}

func (m Model) playerState() playerbar.State {
	return playerbar.NewState(m.svc, m.barMode, m.now())
}

// resize distributes the height between the header, queue panel, player
// bar and status line.
func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	used := headerHeight
	if m.svc.CurrentSong() != nil {
		used += playerbar.Height(m.barMode)
	}
	if m.errMsg != "" {
		used += statusLineHeight
	}
	m.queue.SetSize(max(m.width, minQueuePanelWidth), max(m.height-used, 0))
	if m.popup != nil {
		m.popup.SetSize(m.width, m.height)
	}
}
