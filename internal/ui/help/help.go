// Package help provides a scrollable popup listing the key bindings.
package help

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/jockey/internal/keymap"
	"github.com/llehouerou/jockey/internal/ui"
	"github.com/llehouerou/jockey/internal/ui/popup"
	"github.com/llehouerou/jockey/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// Model holds the state for the help popup.
type Model struct {
	ui.Sized
	lines        []string
	scrollOffset int
}

// New builds the help content from the resolver's bindings.
func New(r *keymap.Resolver) *Model {
	entries := r.Help()
	keyWidth := 0
	for _, e := range entries {
		keyWidth = max(keyWidth, lipgloss.Width(e.Keys))
	}

	s := styles.T().S()
	lines := make([]string, len(entries))
	for i, e := range entries {
		pad := strings.Repeat(" ", keyWidth-lipgloss.Width(e.Keys))
		lines[i] = s.Mode.Render(e.Keys) + pad + "  " + s.Base.Render(e.Description)
	}
	return &Model{lines: lines}
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "?", "esc", "q":
		return m, popup.Close
	case "j", "down":
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
	case "k", "up":
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	}
	return m, nil
}

// View implements popup.Popup.
func (m *Model) View() string {
	visible := m.visibleHeight()
	start := min(m.scrollOffset, len(m.lines))
	end := min(start+visible, len(m.lines))
	return strings.Join(m.lines[start:end], "\n")
}

// Footer describes the popup keys and scroll position.
func (m *Model) Footer() string {
	if m.maxScroll() == 0 {
		return "esc: close"
	}
	return "j/k: scroll  esc: close"
}

// visibleHeight is the number of binding rows that fit, leaving room for
// the dialog title, footer and frame.
func (m *Model) visibleHeight() int {
	const chrome = 8
	if m.Height() == 0 {
		return len(m.lines)
	}
	return max(m.Height()-chrome, 1)
}

func (m *Model) maxScroll() int {
	return max(len(m.lines)-m.visibleHeight(), 0)
}
