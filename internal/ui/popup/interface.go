package popup

import tea "github.com/charmbracelet/bubbletea"

// Popup defines the contract for modal popup components.
type Popup interface {
	Init() tea.Cmd

	// Update handles messages and returns the updated popup.
	Update(msg tea.Msg) (Popup, tea.Cmd)

	// View renders the popup content without its frame.
	View() string

	SetSize(width, height int)
}

// CloseMsg asks the owner to dismiss the active popup.
type CloseMsg struct{}

// Close is a tea.Cmd that emits CloseMsg.
func Close() tea.Msg { return CloseMsg{} }
