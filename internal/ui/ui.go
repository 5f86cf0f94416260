// Package ui provides shared layout constants and the embedded size state
// of the player's display components.
package ui

// Layout constants for consistent sizing across components.
const (
	// BorderHeight is the vertical space consumed by a rounded panel border.
	BorderHeight = 2
	// BorderWidth is the horizontal space consumed by a rounded panel border.
	BorderWidth = 2
	// HeaderHeight is the space for header + separator in panels.
	HeaderHeight = 2
	// PanelOverhead is the vertical overhead of a panel around its list.
	PanelOverhead = BorderHeight + HeaderHeight
	// ScrollMargin is the number of rows kept visible around the cursor.
	ScrollMargin = 2
	// MinProgressBarWidth is the minimum width for a usable progress bar.
	MinProgressBarWidth = 5
)

// Sized stores component dimensions. Embed it in component models.
type Sized struct {
	width, height int
}

// SetSize sets the component dimensions.
func (s *Sized) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Width returns the component width.
func (s Sized) Width() int { return s.width }

// Height returns the component height.
func (s Sized) Height() int { return s.height }
