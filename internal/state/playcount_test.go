package state

import (
	"testing"
	"time"

	"github.com/llehouerou/jockey/internal/song"
)

func TestGetPlayCount_Unknown(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	pc, err := m.GetPlayCount(42)
	if err != nil {
		t.Fatalf("GetPlayCount failed: %v", err)
	}
	if pc != nil {
		t.Errorf("expected nil for unknown song, got %+v", pc)
	}
}

func TestIncrementPlayAndSkipCount(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	s := song.Song{ID: 7, Path: "/music/x.mp3", Title: "X", Artist: "Y"}
	played := time.Unix(1700000000, 0)
	skipped := played.Add(time.Hour)

	_ = m.IncrementPlayCount(s, played)
	_ = m.IncrementPlayCount(s, played)
	if err := m.IncrementSkipCount(s, skipped); err != nil {
		t.Fatalf("IncrementSkipCount failed: %v", err)
	}

	pc, err := m.GetPlayCount(7)
	if err != nil || pc == nil {
		t.Fatalf("GetPlayCount = %v, %v", pc, err)
	}
	if pc.Plays != 2 || pc.Skips != 1 {
		t.Errorf("plays=%d skips=%d, want 2 and 1", pc.Plays, pc.Skips)
	}
	if !pc.LastPlayed.Equal(played) {
		t.Errorf("LastPlayed = %v, want %v", pc.LastPlayed, played)
	}
	if !pc.LastSkipped.Equal(skipped) {
		t.Errorf("LastSkipped = %v, want %v", pc.LastSkipped, skipped)
	}
	if pc.Artist != "Y" {
		t.Errorf("Artist = %q, want Y", pc.Artist)
	}
}

func TestSkipOnly_HasNoLastPlayed(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	_ = m.IncrementSkipCount(song.Song{ID: 1, Path: "/a.mp3", Title: "A"}, time.Now())

	pc, _ := m.GetPlayCount(1)
	if pc.Plays != 0 || !pc.LastPlayed.IsZero() {
		t.Errorf("plays=%d lastPlayed=%v, want 0 and zero", pc.Plays, pc.LastPlayed)
	}
}

func TestTopPlayCounts(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	base := time.Unix(1700000000, 0)
	songs := testSongs(4)
	plays := []int{1, 3, 0, 3}
	for i, n := range plays {
		for j := range n {
			_ = m.IncrementPlayCount(songs[i], base.Add(time.Duration(i*10+j)*time.Minute))
		}
	}
	_ = m.IncrementSkipCount(songs[2], base)

	top, err := m.TopPlayCounts(10)
	if err != nil {
		t.Fatalf("TopPlayCounts failed: %v", err)
	}
	var ids []int64
	for _, pc := range top {
		ids = append(ids, pc.SongID)
	}
	want := []int64{4, 2, 1}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids = %v, want %v", ids, want)
			break
		}
	}

	top, _ = m.TopPlayCounts(1)
	if len(top) != 1 {
		t.Errorf("len(TopPlayCounts(1)) = %d, want 1", len(top))
	}
}
