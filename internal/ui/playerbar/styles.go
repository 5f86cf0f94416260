package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/jockey/internal/ui/styles"
)

func barStyle() lipgloss.Style          { return styles.T().S().Panel }
func titleStyle() lipgloss.Style        { return styles.T().S().Title }
func artistStyle() lipgloss.Style       { return styles.T().S().Muted }
func metaStyle() lipgloss.Style         { return styles.T().S().Subtle }
func modeStyle() lipgloss.Style         { return styles.T().S().Mode }
func progressTimeStyle() lipgloss.Style { return styles.T().S().Muted }

func progressBarFilled() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary)
}

func progressBarEmpty() lipgloss.Style {
	return styles.T().S().Subtle
}
