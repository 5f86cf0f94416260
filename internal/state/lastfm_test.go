package state

import (
	"testing"
	"time"
)

func TestGetLastfmSession_Empty(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	session, err := m.GetLastfmSession()
	if err != nil {
		t.Fatalf("GetLastfmSession failed: %v", err)
	}
	if session != nil {
		t.Errorf("expected nil session on empty db, got %+v", session)
	}
}

func TestSaveAndGetLastfmSession(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	if err := m.SaveLastfmSession("testuser", "abc123sessionkey"); err != nil {
		t.Fatalf("SaveLastfmSession failed: %v", err)
	}

	session, err := m.GetLastfmSession()
	if err != nil {
		t.Fatalf("GetLastfmSession failed: %v", err)
	}
	if session == nil {
		t.Fatal("expected non-nil session")
	}
	if session.Username != "testuser" {
		t.Errorf("Username = %q, want %q", session.Username, "testuser")
	}
	if session.SessionKey != "abc123sessionkey" {
		t.Errorf("SessionKey = %q, want %q", session.SessionKey, "abc123sessionkey")
	}
	if session.LinkedAt.IsZero() {
		t.Error("LinkedAt should not be zero")
	}
}

func TestSaveLastfmSession_Update(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	_ = m.SaveLastfmSession("user1", "key1")
	_ = m.SaveLastfmSession("user2", "key2")

	session, _ := m.GetLastfmSession()
	if session.Username != "user2" || session.SessionKey != "key2" {
		t.Errorf("session = %+v, want user2/key2", session)
	}
}

func TestDeleteLastfmSession(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	_ = m.SaveLastfmSession("testuser", "testkey")

	if err := m.DeleteLastfmSession(); err != nil {
		t.Fatalf("DeleteLastfmSession failed: %v", err)
	}
	if session, _ := m.GetLastfmSession(); session != nil {
		t.Errorf("expected nil session after delete, got %+v", session)
	}
	if err := m.DeleteLastfmSession(); err != nil {
		t.Errorf("DeleteLastfmSession on empty should not error: %v", err)
	}
}

func TestAddAndGetPendingScrobbles(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	scrobbles, err := m.GetPendingScrobbles()
	if err != nil {
		t.Fatalf("GetPendingScrobbles failed: %v", err)
	}
	if len(scrobbles) != 0 {
		t.Errorf("expected 0 scrobbles, got %d", len(scrobbles))
	}

	ts := time.Unix(1700000000, 0)
	s1 := PendingScrobble{
		Artist:      "Artist 1",
		Track:       "Track 1",
		Album:       "Album 1",
		AlbumArtist: "Various",
		Duration:    180 * time.Second,
		Timestamp:   ts,
	}
	s2 := PendingScrobble{
		Artist:    "Artist 2",
		Track:     "Track 2",
		Duration:  240 * time.Second,
		Timestamp: ts.Add(time.Minute),
	}

	if err := m.AddPendingScrobble(s1); err != nil {
		t.Fatalf("AddPendingScrobble failed: %v", err)
	}
	if err := m.AddPendingScrobble(s2); err != nil {
		t.Fatalf("AddPendingScrobble failed: %v", err)
	}

	scrobbles, err = m.GetPendingScrobbles()
	if err != nil {
		t.Fatalf("GetPendingScrobbles failed: %v", err)
	}
	if len(scrobbles) != 2 {
		t.Fatalf("expected 2 scrobbles, got %d", len(scrobbles))
	}

	got := scrobbles[0]
	if got.Artist != "Artist 1" || got.Album != "Album 1" || got.AlbumArtist != "Various" {
		t.Errorf("scrobble[0] = %+v", got)
	}
	if got.Duration != 180*time.Second {
		t.Errorf("scrobble[0].Duration = %v, want 3m", got.Duration)
	}
	if !got.Timestamp.Equal(ts) {
		t.Errorf("scrobble[0].Timestamp = %v, want %v", got.Timestamp, ts)
	}
	if scrobbles[1].Album != "" {
		t.Errorf("scrobble[1].Album should be empty, got %q", scrobbles[1].Album)
	}
}

func TestDeletePendingScrobble(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	_ = m.AddPendingScrobble(PendingScrobble{Artist: "Artist", Track: "Track", Timestamp: time.Now()})
	scrobbles, _ := m.GetPendingScrobbles()

	if err := m.DeletePendingScrobble(scrobbles[0].ID); err != nil {
		t.Fatalf("DeletePendingScrobble failed: %v", err)
	}

	scrobbles, _ = m.GetPendingScrobbles()
	if len(scrobbles) != 0 {
		t.Errorf("expected 0 scrobbles after delete, got %d", len(scrobbles))
	}
}

func TestUpdatePendingScrobbleAttempt(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	_ = m.AddPendingScrobble(PendingScrobble{Artist: "Artist", Track: "Track", Timestamp: time.Now()})
	scrobbles, _ := m.GetPendingScrobbles()
	id := scrobbles[0].ID

	if scrobbles[0].Attempts != 0 {
		t.Errorf("expected 0 attempts initially, got %d", scrobbles[0].Attempts)
	}

	if err := m.UpdatePendingScrobbleAttempt(id, "connection error"); err != nil {
		t.Fatalf("UpdatePendingScrobbleAttempt failed: %v", err)
	}
	_ = m.UpdatePendingScrobbleAttempt(id, "timeout")

	scrobbles, _ = m.GetPendingScrobbles()
	if scrobbles[0].Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", scrobbles[0].Attempts)
	}
	if scrobbles[0].LastError != "timeout" {
		t.Errorf("LastError = %q, want %q", scrobbles[0].LastError, "timeout")
	}
}

func TestDeleteOldPendingScrobbles(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	_ = m.AddPendingScrobble(PendingScrobble{Artist: "Artist", Track: "Track", Timestamp: time.Now()})

	if err := m.DeleteOldPendingScrobbles(time.Hour); err != nil {
		t.Fatalf("DeleteOldPendingScrobbles failed: %v", err)
	}
	if scrobbles, _ := m.GetPendingScrobbles(); len(scrobbles) != 1 {
		t.Errorf("expected scrobble to be kept (recent), got %d", len(scrobbles))
	}

	_, _ = m.DB().Exec(`UPDATE lastfm_pending_scrobbles SET created_at = ?`, time.Now().Add(-2*time.Hour).Unix())

	if err := m.DeleteOldPendingScrobbles(time.Hour); err != nil {
		t.Fatalf("DeleteOldPendingScrobbles failed: %v", err)
	}
	if scrobbles, _ := m.GetPendingScrobbles(); len(scrobbles) != 0 {
		t.Errorf("expected scrobble to be deleted (old), got %d", len(scrobbles))
	}
}
