package notify

import (
	"testing"

	"github.com/llehouerou/jockey/internal/song"
)

func TestUrgencyValues(t *testing.T) {
	// Verify urgency constants match D-Bus spec
	if UrgencyLow != 0 {
		t.Errorf("UrgencyLow = %d, want 0", UrgencyLow)
	}
	if UrgencyNormal != 1 {
		t.Errorf("UrgencyNormal = %d, want 1", UrgencyNormal)
	}
	if UrgencyCritical != 2 {
		t.Errorf("UrgencyCritical = %d, want 2", UrgencyCritical)
	}
}

func TestNotificationZeroValue(t *testing.T) {
	var n Notification
	if n.Urgency != UrgencyLow {
		t.Errorf("zero value Urgency = %d, want UrgencyLow (0)", n.Urgency)
	}
	if n.Timeout != 0 {
		t.Error("zero value Timeout should be 0 (never expire)")
	}
	if n.ReplacesID != 0 {
		t.Error("zero value ReplacesID should be 0 (new notification)")
	}
}

func TestForSong(t *testing.T) {
	n := ForSong(song.Song{
		Path:   "/nonexistent/dir/a.mp3",
		Title:  "Blue in Green",
		Artist: "Miles Davis",
		Album:  "Kind of Blue",
	}, 4000)

	if n.Title != "Blue in Green" {
		t.Errorf("Title = %q", n.Title)
	}
	if n.Body != "Miles Davis\n<i>Kind of Blue</i>" {
		t.Errorf("Body = %q", n.Body)
	}
	if n.Icon != "" {
		t.Errorf("Icon = %q, want empty without a cover", n.Icon)
	}
	if n.Timeout != 4000 {
		t.Errorf("Timeout = %d, want 4000", n.Timeout)
	}
}

func TestForSong_EscapesMarkupAndDefaultsTitle(t *testing.T) {
	n := ForSong(song.Song{Artist: "Simon & Garfunkel"}, -1)

	if n.Title != "Unknown title" {
		t.Errorf("Title = %q, want Unknown title", n.Title)
	}
	if n.Body != "Simon &amp; Garfunkel" {
		t.Errorf("Body = %q", n.Body)
	}
}

func TestMock_ReplacesID(t *testing.T) {
	m := NewMock()

	id, _ := m.Notify(Notification{Title: "a"})
	again, _ := m.Notify(Notification{Title: "b", ReplacesID: id})

	if again != id {
		t.Errorf("replacing notification id = %d, want %d", again, id)
	}
	if len(m.Sent()) != 2 {
		t.Errorf("len(Sent()) = %d, want 2", len(m.Sent()))
	}
}
