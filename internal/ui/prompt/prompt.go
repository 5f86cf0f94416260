// Package prompt asks for a number of minutes, used by the sleep timer.
package prompt

import (
	"cmp"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/jockey/internal/ui"
	"github.com/llehouerou/jockey/internal/ui/popup"
)

var _ popup.Popup = (*Model)(nil)

// MaxMinutes bounds the accepted value.
const MaxMinutes = 24 * 60

var errNotMinutes = errors.New("enter a number of minutes")

// Result is emitted when the prompt is confirmed. A zero Duration means
// the user asked to cancel the running timer.
type Result struct {
	Duration time.Duration
}

// Model is a minutes prompt backed by a bubbles text input.
type Model struct {
	ui.Sized
	input textinput.Model
	err   error
}

// New creates a prompt pre-filled with initial minutes. Zero leaves the
// field empty.
func New(initial int) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "minutes, 0 to cancel"
	ti.CharLimit = 4
	ti.Width = 24
	ti.Validate = func(s string) error {
		for _, r := range s {
			if r < '0' || r > '9' {
				return errNotMinutes
			}
		}
		return nil
	}
	if initial > 0 {
		ti.SetValue(strconv.Itoa(initial))
	}
	ti.Focus()
	return &Model{input: ti}
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, popup.Close
		case "enter":
			d, err := Parse(m.input.Value())
			if err != nil {
				m.err = err
				return m, nil
			}
			return m, func() tea.Msg { return Result{Duration: d} }
		}
		m.err = nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements popup.Popup.
func (m *Model) View() string {
	view := m.input.View()
	if err := cmp.Or(m.err, m.input.Err); err != nil {
		view += "\n" + err.Error()
	}
	return view
}

// Parse converts a minutes string into a duration.
func Parse(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errNotMinutes
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > MaxMinutes {
		return 0, errNotMinutes
	}
	return time.Duration(n) * time.Minute, nil
}
