// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"strings"

	"github.com/llehouerou/jockey/internal/song"
)

// Options identify the player to the notification server.
type Options struct {
	AppName      string // default "Jockey"
	DesktopEntry string // .desktop file name without suffix, default "jockey"
	Icon         string // used for notifications without one, default "audio-x-generic"
}

func (o Options) withDefaults() Options {
	if o.AppName == "" {
		o.AppName = "Jockey"
	}
	if o.DesktopEntry == "" {
		o.DesktopEntry = "jockey"
	}
	if o.Icon == "" {
		o.Icon = "audio-x-generic"
	}
	return o
}

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// ForSong builds the "now playing" notification of a song: title as
// summary, artist and album on separate body lines, cover art as icon.
// Without a cover the icon is left to the notifier.
func ForSong(s song.Song, timeoutMS int32) Notification {
	title := s.Title
	if title == "" {
		title = "Unknown title"
	}

	var body []string
	if s.Artist != "" {
		body = append(body, escapeMarkup(s.Artist))
	}
	if s.Album != "" {
		body = append(body, "<i>"+escapeMarkup(s.Album)+"</i>")
	}

	return Notification{
		Title:   title,
		Body:    strings.Join(body, "\n"),
		Icon:    song.FindCover(s.Path),
		Timeout: timeoutMS,
		Urgency: UrgencyLow,
	}
}

var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeMarkup(s string) string {
	return markupEscaper.Replace(s)
}
