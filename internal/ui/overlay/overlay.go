// Package overlay draws popups on top of an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Center draws box in the middle of base. The base is padded or cut to
// width x height first so the result always has that shape.
func Center(base, box string, width, height int) string {
	x := max((width-lipgloss.Width(box))/2, 0)
	y := max((height-lipgloss.Height(box))/2, 0)
	return Place(base, box, x, y, width, height)
}

// Place draws box with its top-left corner at column x, row y of base.
// Box cells past the base edges are dropped. Styling on both sides of the
// box is preserved.
func Place(base, box string, x, y, width, height int) string {
	lines := normalize(base, width, height)

	for i, boxLine := range strings.Split(box, "\n") {
		row := y + i
		if row < 0 || row >= len(lines) {
			continue
		}
		boxWidth := ansi.StringWidth(boxLine)
		if boxWidth == 0 || x >= width {
			continue
		}
		end := min(x+boxWidth, width)
		if end < x+boxWidth {
			boxLine = ansi.Truncate(boxLine, end-x, "")
		}
		line := lines[row]
		lines[row] = ansi.Cut(line, 0, x) + boxLine + ansi.Cut(line, end, width)
	}

	return strings.Join(lines, "\n")
}

func normalize(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		w := ansi.StringWidth(line)
		switch {
		case w > width:
			lines[i] = ansi.Truncate(line, width, "")
		case w < width:
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}
