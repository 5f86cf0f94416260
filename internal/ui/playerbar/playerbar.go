package playerbar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/jockey/internal/icons"
	"github.com/llehouerou/jockey/internal/playback"
	"github.com/llehouerou/jockey/internal/song"
	"github.com/llehouerou/jockey/internal/ui"
	"github.com/llehouerou/jockey/internal/ui/render"
)

// DisplayMode controls the player bar appearance.
type DisplayMode int

const (
	ModeCompact  DisplayMode = iota // Single-line view
	ModeExpanded                    // Adds a metadata row and block progress bar
)

// State holds everything needed to render the player bar.
type State struct {
	Status      playback.State
	Song        song.Song
	Index       int
	QueueLen    int
	Position    time.Duration
	Duration    time.Duration
	Repeat      playback.RepeatMode
	Shuffle     bool
	MultiRepeat int
	Volume      float64
	SleepLeft   time.Duration // zero when no timer is running
	DisplayMode DisplayMode
}

// Height returns the total height of the player bar for the given mode.
func Height(mode DisplayMode) int {
	if mode == ModeExpanded {
		return 2 + ui.BorderHeight
	}
	return 1 + ui.BorderHeight
}

// NewState reads the service into a State. now is used for the sleep
// timer countdown.
func NewState(svc playback.Service, mode DisplayMode, now time.Time) State {
	s := State{
		Status:      svc.State(),
		Index:       svc.QueueIndex(),
		QueueLen:    svc.QueueLen(),
		Position:    svc.Position(),
		Duration:    svc.Duration(),
		Repeat:      svc.RepeatMode(),
		Shuffle:     svc.Shuffle(),
		MultiRepeat: svc.MultiRepeat(),
		Volume:      svc.Volume(),
		DisplayMode: mode,
	}
	if cur := svc.CurrentSong(); cur != nil {
		s.Song = *cur
		if s.Duration == 0 {
			s.Duration = cur.Duration
		}
	}
	if end, ok := svc.SleepTimerEnd(); ok {
		s.SleepLeft = max(end.Sub(now), 0)
	}
	return s
}

// Render returns the player bar string for the given width.
// Returns empty string when there is no current song.
func Render(s State, width int) string {
	if s.Song.IsZero() {
		return ""
	}

	innerWidth := max(width-ui.BorderWidth-4, 0)
	lines := []string{compactLine(s, innerWidth)}
	if s.DisplayMode == ModeExpanded {
		lines = append(lines, detailLine(s, innerWidth))
	}
	return barStyle().Padding(0, 2).Width(width - ui.BorderWidth).Render(strings.Join(lines, "\n"))
}

// compactLine lays out: status  Title   Artist · Album · Year   ━━━───   1:23 / 3:58   modes   volume
func compactLine(s State, width int) string {
	const separator = "   "
	sepWidth := lipgloss.Width(separator)

	status := statusIcon(s.Status)
	timeStr := render.Duration(s.Position) + " / " + render.Duration(s.Duration)
	modes := Modes(s)
	volume := RenderVolumeCompact(s.Volume)

	fixed := lipgloss.Width(status) + 1 + sepWidth + lipgloss.Width(timeStr) + sepWidth + lipgloss.Width(volume)
	if modes != "" {
		fixed += sepWidth + lipgloss.Width(modes)
	}

	title := render.Sanitize(s.Song.Title)
	if title == "" {
		title = "Unknown Track"
	}
	info := render.Sanitize(infoString(s.Song))

	const minBarWidth = 10
	available := width - fixed - sepWidth - minBarWidth

	titleWidth := lipgloss.Width(title)
	infoWidth := lipgloss.Width(info)

	var styledTitle, styledInfo string
	var used int
	switch {
	case info != "" && titleWidth+sepWidth+infoWidth <= available:
		styledTitle = titleStyle().Render(title)
		styledInfo = artistStyle().Render(info)
		used = titleWidth + sepWidth + infoWidth
	case info != "" && titleWidth+sepWidth+1 < available:
		maxInfo := available - titleWidth - sepWidth
		styledTitle = titleStyle().Render(title)
		styledInfo = artistStyle().Render(render.Truncate(info, maxInfo))
		used = titleWidth + sepWidth + maxInfo
	default:
		maxTitle := max(available, 10)
		styledTitle = titleStyle().Render(render.Truncate(title, maxTitle))
		used = min(titleWidth, maxTitle)
	}

	barWidth := max(width-fixed-sepWidth-used, ui.MinProgressBarWidth)

	var b strings.Builder
	b.WriteString(status)
	b.WriteString(" ")
	b.WriteString(styledTitle)
	if styledInfo != "" {
		b.WriteString(separator)
		b.WriteString(styledInfo)
	}
	b.WriteString(separator)
	b.WriteString(renderLineBar(s.Position, s.Duration, barWidth))
	b.WriteString(separator)
	b.WriteString(progressTimeStyle().Render(timeStr))
	if modes != "" {
		b.WriteString(separator)
		b.WriteString(modeStyle().Render(modes))
	}
	b.WriteString(separator)
	b.WriteString(volume)
	return b.String()
}

// detailLine shows queue position, track number, genre and the block bar.
func detailLine(s State, width int) string {
	var parts []string
	if s.QueueLen > 0 && s.Index >= 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", s.Index+1, s.QueueLen))
	}
	if s.Song.TrackNumber > 0 {
		parts = append(parts, "Track "+strconv.Itoa(s.Song.TrackNumber))
	}
	if s.Song.AlbumArtist != "" && s.Song.AlbumArtist != s.Song.Artist {
		parts = append(parts, render.Sanitize(s.Song.AlbumArtist))
	}
	if s.Song.Genre != "" {
		parts = append(parts, render.Sanitize(s.Song.Genre))
	}
	meta := render.Truncate(strings.Join(parts, " · "), width/2)

	barWidth := max(width-lipgloss.Width(meta)-3, 0)
	bar := RenderProgressBar(s.Position, s.Duration, barWidth, s.Status == playback.StatePlaying)
	return render.Row(metaStyle().Render(meta), bar, width)
}

func infoString(s song.Song) string {
	var parts []string
	if s.Artist != "" {
		parts = append(parts, s.Artist)
	}
	if s.Album != "" {
		parts = append(parts, s.Album)
	}
	if s.Year > 0 {
		parts = append(parts, strconv.Itoa(s.Year))
	}
	return strings.Join(parts, " · ")
}

func statusIcon(st playback.State) string {
	switch st {
	case playback.StatePlaying:
		return icons.Play()
	case playback.StatePaused:
		return icons.Pause()
	default:
		return icons.Stop()
	}
}

// Modes renders the active mode indicators: repeat, shuffle, multi-repeat
// count and sleep countdown. Inactive modes are omitted.
func Modes(s State) string {
	var parts []string
	switch s.Repeat {
	case playback.RepeatAll:
		parts = append(parts, icons.RepeatAll())
	case playback.RepeatOne:
		parts = append(parts, icons.RepeatOne())
	}
	if s.Shuffle {
		parts = append(parts, icons.Shuffle())
	}
	if s.MultiRepeat > 1 {
		parts = append(parts, "×"+strconv.Itoa(s.MultiRepeat))
	}
	if s.SleepLeft > 0 {
		parts = append(parts, strings.TrimSpace(icons.Sleep()+" "+render.Duration(s.SleepLeft.Round(time.Second))))
	}
	return strings.Join(parts, " ")
}
