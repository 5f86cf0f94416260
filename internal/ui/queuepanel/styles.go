package queuepanel

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/jockey/internal/ui/styles"
)

const playingSymbol = "▶"

func panelStyle() lipgloss.Style   { return styles.T().S().Panel }
func headerStyle() lipgloss.Style  { return styles.T().S().Title }
func songStyle() lipgloss.Style    { return styles.T().S().Base }
func playingStyle() lipgloss.Style { return styles.T().S().Playing }
func playedStyle() lipgloss.Style  { return styles.T().S().Played }
func cursorStyle() lipgloss.Style  { return styles.T().S().Cursor }
func emptyStyle() lipgloss.Style   { return styles.T().S().Muted }
