// Package popup frames modal content. Placement on screen is left to
// the overlay package.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/jockey/internal/ui/render"
	"github.com/llehouerou/jockey/internal/ui/styles"
)

// Dialog is a bordered box with a title, content and footer.
type Dialog struct {
	Title   string
	Content string
	Footer  string
}

// Render returns the framed dialog, no wider than maxWidth columns.
func (d Dialog) Render(maxWidth int) string {
	s := styles.T().S()
	frame := s.Popup
	inner := max(maxWidth-frame.GetHorizontalFrameSize(), 1)

	width := min(max(
		maxLineWidth(d.Content),
		lipgloss.Width(d.Title),
		lipgloss.Width(d.Footer),
	), inner)

	var lines []string
	if d.Title != "" {
		lines = append(lines, center(s.Title.Render(render.Truncate(d.Title, width)), width), "")
	}
	for line := range strings.SplitSeq(d.Content, "\n") {
		if lipgloss.Width(line) > width {
			line = ansi.Truncate(line, width, "…")
		}
		lines = append(lines, line)
	}
	if d.Footer != "" {
		lines = append(lines, "", center(s.Subtle.Render(render.Truncate(d.Footer, width)), width))
	}

	return frame.Width(width + frame.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}

func maxLineWidth(s string) int {
	maxW := 0
	for line := range strings.SplitSeq(s, "\n") {
		maxW = max(maxW, lipgloss.Width(line))
	}
	return maxW
}

func center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	pad := (width - w) / 2
	return strings.Repeat(" ", pad) + s
}
