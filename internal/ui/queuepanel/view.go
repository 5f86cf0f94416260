package queuepanel

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/jockey/internal/song"
	"github.com/llehouerou/jockey/internal/ui"
	"github.com/llehouerou/jockey/internal/ui/render"
)

// View renders the queue panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.Width() - ui.BorderWidth
	listHeight := max(m.listHeight(), 0)

	content := m.renderHeader(innerWidth) + "\n" +
		render.Separator(innerWidth) + "\n" +
		m.renderSongList(innerWidth, listHeight)

	return panelStyle().Width(innerWidth).Render(content)
}

// renderHeader renders "Queue (current/total)" with the total length on
// the right.
func (m Model) renderHeader(innerWidth int) string {
	left := fmt.Sprintf("Queue (%d/%d)", m.playing+1, len(m.songs))
	right := render.Duration(m.totalDuration())
	if len(m.songs) == 0 {
		right = ""
	}
	left = render.Truncate(left, max(innerWidth-lipgloss.Width(right)-1, 1))
	return headerStyle().Render(render.Row(left, right, innerWidth))
}

func (m Model) totalDuration() (d time.Duration) {
	for _, s := range m.songs {
		d += s.Duration
	}
	return d
}

func (m Model) renderSongList(innerWidth, listHeight int) string {
	if len(m.songs) == 0 {
		lines := make([]string, listHeight)
		if listHeight > 0 {
			lines[0] = emptyStyle().Render(render.Fit("Queue is empty", innerWidth))
		}
		return strings.Join(lines, "\n")
	}

	start := m.cursor.offset
	lines := make([]string, 0, listHeight)
	for i := range listHeight {
		idx := start + i
		if idx >= len(m.songs) {
			lines = append(lines, strings.Repeat(" ", innerWidth))
			continue
		}
		lines = append(lines, m.renderSongLine(m.songs[idx], idx, innerWidth))
	}
	return strings.Join(lines, "\n")
}

// renderSongLine lays out: marker  title  artist  duration
func (m Model) renderSongLine(s song.Song, idx, width int) string {
	prefix := "  "
	if idx == m.playing {
		prefix = playingSymbol + " "
	}

	dur := ""
	if s.Duration > 0 {
		dur = " " + render.Duration(s.Duration)
	}
	durWidth := lipgloss.Width(dur)

	contentWidth := max(width-2-durWidth, 0)
	titleWidth := contentWidth / 2
	artistWidth := contentWidth - titleWidth

	line := prefix +
		render.Fit(s.Title, titleWidth) +
		render.Fit(s.Artist, artistWidth) +
		dur

	return m.lineStyle(idx).Render(line)
}

func (m Model) lineStyle(idx int) lipgloss.Style {
	isCursor := idx == m.cursor.pos
	isPlaying := idx == m.playing
	isPlayed := m.playing >= 0 && idx < m.playing

	switch {
	case isCursor && isPlaying:
		return cursorStyle().Inherit(playingStyle())
	case isCursor && isPlayed:
		return cursorStyle().Inherit(playedStyle())
	case isCursor:
		return cursorStyle()
	case isPlaying:
		return playingStyle()
	case isPlayed:
		return playedStyle()
	default:
		return songStyle()
	}
}
