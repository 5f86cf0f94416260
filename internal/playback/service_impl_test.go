// internal/playback/service_impl_test.go
package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/llehouerou/jockey/internal/player"
	"github.com/llehouerou/jockey/internal/playlist"
	"github.com/llehouerou/jockey/internal/song"
)

func TestNew_ReturnsService(t *testing.T) {
	svc := New(player.NewMock(), playlist.NewQueue(), Config{})
	defer svc.Close()

	if svc == nil {
		t.Fatal("New() returned nil")
	}
}

func TestNew_NilQueue(t *testing.T) {
	svc := New(player.NewMock(), nil, Config{})
	defer svc.Close()

	if svc.QueueLen() != 0 {
		t.Errorf("QueueLen() = %d, want 0", svc.QueueLen())
	}
}

func TestService_State_ReflectsPlayer(t *testing.T) {
	p := player.NewMock()
	svc := New(p, playlist.NewQueue(), Config{})
	defer svc.Close()

	if svc.State() != StateStopped {
		t.Errorf("State() = %v, want Stopped", svc.State())
	}

	p.SetState(player.Playing)
	if svc.State() != StatePlaying {
		t.Errorf("State() = %v, want Playing", svc.State())
	}

	p.SetState(player.Paused)
	if svc.State() != StatePaused {
		t.Errorf("State() = %v, want Paused", svc.State())
	}
}

func TestService_Position_ReflectsPlayerWhilePlaying(t *testing.T) {
	svc, p, _ := newTestService(testPathA)
	defer svc.Close()

	p.SetPosition(30 * time.Second)
	if svc.Position() != 0 {
		t.Errorf("Position() before play = %v, want 0", svc.Position())
	}

	_ = svc.Play()
	p.SetPosition(30 * time.Second)
	if svc.Position() != 30*time.Second {
		t.Errorf("Position() = %v, want 30s", svc.Position())
	}
}

func TestService_Duration_FilledFromPlayer(t *testing.T) {
	svc, p, _ := newTestService(testPathA)
	defer svc.Close()
	p.SetDuration(3 * time.Minute)

	_ = svc.Play()

	if svc.Duration() != 3*time.Minute {
		t.Errorf("Duration() = %v, want 3m", svc.Duration())
	}
	if cur := svc.CurrentSong(); cur == nil || cur.Duration != 3*time.Minute {
		t.Errorf("CurrentSong().Duration = %v, want 3m", cur)
	}
}

func TestService_CurrentSong_NilWhenEmpty(t *testing.T) {
	svc := New(player.NewMock(), playlist.NewQueue(), Config{})
	defer svc.Close()

	if svc.CurrentSong() != nil {
		t.Error("CurrentSong() should be nil for empty queue")
	}
}

func TestService_CurrentSong_ReturnsCopy(t *testing.T) {
	q := playlist.NewQueue()
	q.Add(song.Song{ID: 1, Path: "/music/song.mp3", Title: "Test Song"})
	q.JumpTo(0)
	svc := New(player.NewMock(), q, Config{})
	defer svc.Close()

	s := svc.CurrentSong()
	if s == nil {
		t.Fatal("CurrentSong() returned nil")
	}
	s.Title = "changed"

	if svc.CurrentSong().Title != "Test Song" {
		t.Errorf("Title = %q, want Test Song", svc.CurrentSong().Title)
	}
}

func TestService_Queue_ReturnsCopy(t *testing.T) {
	svc, _, _ := newTestService(testPathA, testPathB)
	defer svc.Close()

	songs := svc.Queue()
	if len(songs) != 2 {
		t.Fatalf("len(Queue()) = %d, want 2", len(songs))
	}
	songs[0].Path = "/modified.mp3"

	if svc.Queue()[0].Path != testPathA {
		t.Errorf("Queue()[0].Path = %q, want %s", svc.Queue()[0].Path, testPathA)
	}
}

func TestService_Subscribe_ReturnsSubscription(t *testing.T) {
	svc := New(player.NewMock(), playlist.NewQueue(), Config{})
	defer svc.Close()

	sub := svc.Subscribe()

	if sub == nil {
		t.Fatal("Subscribe() returned nil")
	}
	if sub.StateChanged == nil {
		t.Error("StateChanged channel is nil")
	}
}

func TestService_Close_SignalsSubscribers(t *testing.T) {
	svc := New(player.NewMock(), playlist.NewQueue(), Config{})
	sub := svc.Subscribe()

	if err := svc.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	select {
	case <-sub.Done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for Done")
	}
}

func TestService_Close_Idempotent(t *testing.T) {
	svc := New(player.NewMock(), playlist.NewQueue(), Config{})

	_ = svc.Close()
	if err := svc.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestService_Close_PausesPlayingSong(t *testing.T) {
	svc, p, rec := newTestService(testPathA)
	_ = svc.Play()
	p.SetPosition(42 * time.Second)

	_ = svc.Close()

	want := []string{"started:/a.mp3", "paused:/a.mp3"}
	if got := rec.Events(); !equalStrings(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	if p.State() != player.Stopped {
		t.Errorf("player State() = %v, want Stopped", p.State())
	}
	if svc.Position() != 42*time.Second {
		t.Errorf("Position() after Close = %v, want 42s", svc.Position())
	}
}

func TestService_AfterClose_ReturnsErrClosed(t *testing.T) {
	svc, _, _ := newTestService(testPathA)
	_ = svc.Close()

	ops := map[string]func() error{
		"Play":     svc.Play,
		"Pause":    svc.Pause,
		"Stop":     svc.Stop,
		"Toggle":   svc.Toggle,
		"Next":     svc.Next,
		"Previous": svc.Previous,
		"JumpTo":   func() error { return svc.JumpTo(0) },
		"Seek":     func() error { return svc.Seek(time.Second) },
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, ErrClosed) {
			t.Errorf("%s() error = %v, want ErrClosed", name, err)
		}
	}
}

func TestService_Play_StartsPlayback(t *testing.T) {
	svc, p, _ := newTestService("/music/song.mp3")
	defer svc.Close()
	sub := svc.Subscribe()

	if err := svc.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if svc.State() != StatePlaying {
		t.Errorf("State() = %v, want Playing", svc.State())
	}
	if calls := p.PlayCalls(); len(calls) != 1 || calls[0] != "/music/song.mp3" {
		t.Errorf("PlayCalls() = %v, want [/music/song.mp3]", calls)
	}
	if svc.QueueIndex() != 0 {
		t.Errorf("QueueIndex() = %d, want 0", svc.QueueIndex())
	}

	select {
	case e := <-sub.StateChanged:
		if e.Previous != StateStopped || e.Current != StatePlaying {
			t.Errorf("StateChanged = %+v, want Stopped -> Playing", e)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for StateChanged event")
	}

	select {
	case e := <-sub.SongChanged:
		if e.Current == nil || e.Current.Path != "/music/song.mp3" || e.Previous != nil {
			t.Errorf("SongChanged = %+v", e)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for SongChanged event")
	}
}

func TestService_Play_EmptyQueue_ReturnsError(t *testing.T) {
	svc := New(player.NewMock(), playlist.NewQueue(), Config{})
	defer svc.Close()

	if err := svc.Play(); !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("Play() error = %v, want ErrEmptyQueue", err)
	}
}

func TestService_Play_WhilePlaying_NoOp(t *testing.T) {
	svc, p, rec := newTestService(testPathA)
	defer svc.Close()

	_ = svc.Play()
	_ = svc.Play()

	if len(p.PlayCalls()) != 1 {
		t.Errorf("PlayCalls() = %v, want one call", p.PlayCalls())
	}
	if got := rec.Events(); len(got) != 1 {
		t.Errorf("events = %v, want only started", got)
	}
}

func TestService_PauseResume_FiresHooks(t *testing.T) {
	svc, _, rec := newTestService(testPathA)
	defer svc.Close()

	_ = svc.Play()
	_ = svc.Pause()
	if svc.State() != StatePaused {
		t.Errorf("State() = %v, want Paused", svc.State())
	}
	_ = svc.Play()
	if svc.State() != StatePlaying {
		t.Errorf("State() = %v, want Playing", svc.State())
	}

	want := []string{"started:/a.mp3", "paused:/a.mp3", "resumed:/a.mp3"}
	if got := rec.Events(); !equalStrings(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestService_Pause_WhenStopped_NoOp(t *testing.T) {
	svc, _, rec := newTestService(testPathA)
	defer svc.Close()
	sub := svc.Subscribe()

	if err := svc.Pause(); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	if svc.State() != StateStopped {
		t.Errorf("State() = %v, want Stopped", svc.State())
	}
	if len(rec.Events()) != 0 {
		t.Errorf("events = %v, want none", rec.Events())
	}

	select {
	case e := <-sub.StateChanged:
		t.Errorf("unexpected StateChanged event: %+v", e)
	default:
	}
}

func TestService_Toggle(t *testing.T) {
	svc, _, rec := newTestService(testPathA)
	defer svc.Close()

	_ = svc.Toggle()
	if svc.State() != StatePlaying {
		t.Errorf("after first Toggle State() = %v, want Playing", svc.State())
	}
	_ = svc.Toggle()
	if svc.State() != StatePaused {
		t.Errorf("after second Toggle State() = %v, want Paused", svc.State())
	}
	_ = svc.Toggle()
	if svc.State() != StatePlaying {
		t.Errorf("after third Toggle State() = %v, want Playing", svc.State())
	}

	want := []string{"started:/a.mp3", "paused:/a.mp3", "resumed:/a.mp3"}
	if got := rec.Events(); !equalStrings(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestService_Stop_PausesFirst(t *testing.T) {
	svc, p, rec := newTestService(testPathA, testPathB)
	defer svc.Close()
	sub := svc.Subscribe()

	_ = svc.Play()
	<-sub.StateChanged
	p.SetPosition(20 * time.Second)

	if err := svc.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if svc.State() != StateStopped {
		t.Errorf("State() = %v, want Stopped", svc.State())
	}
	want := []string{"started:/a.mp3", "paused:/a.mp3"}
	if got := rec.Events(); !equalStrings(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	if svc.Position() != 20*time.Second {
		t.Errorf("Position() after Stop = %v, want 20s", svc.Position())
	}

	select {
	case e := <-sub.StateChanged:
		if e.Previous != StatePlaying || e.Current != StateStopped {
			t.Errorf("StateChanged = %+v, want Playing -> Stopped", e)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for StateChanged event")
	}
}

func TestService_Stop_ThenPlay_RestartsSong(t *testing.T) {
	svc, p, rec := newTestService(testPathA, testPathB)
	defer svc.Close()

	_ = svc.JumpTo(1)
	_ = svc.Stop()
	rec.Reset()
	_ = svc.Play()

	calls := p.PlayCalls()
	if calls[len(calls)-1] != testPathB {
		t.Errorf("last PlayCalls() = %q, want %s", calls[len(calls)-1], testPathB)
	}
	if len(p.SeekCalls()) != 0 {
		t.Errorf("SeekCalls() = %v, want none", p.SeekCalls())
	}
	want := []string{"started:/b.mp3"}
	if got := rec.Events(); !equalStrings(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestService_Next_SkipsToNextSong(t *testing.T) {
	svc, p, rec := newTestService(testPathA, testPathB, testPathC)
	defer svc.Close()

	_ = svc.Play()
	p.SetPosition(12 * time.Second)
	if err := svc.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if svc.QueueIndex() != 1 {
		t.Errorf("QueueIndex() = %d, want 1", svc.QueueIndex())
	}
	want := []string{"started:/a.mp3", "skipped:/a.mp3", "started:/b.mp3"}
	if got := rec.Events(); !equalStrings(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	skips := rec.Skips()
	if len(skips) != 1 || !skips[0].ByUser || skips[0].Position != 12*time.Second {
		t.Errorf("skips = %+v, want one user skip at 12s", skips)
	}
}

func TestService_Next_AtEnd_StopsAtFirstSong(t *testing.T) {
	svc, _, rec := newTestService(testPathA, testPathB)
	defer svc.Close()

	_ = svc.JumpTo(1)
	rec.Reset()
	_ = svc.Next()

	if svc.State() != StateStopped {
		t.Errorf("State() = %v, want Stopped", svc.State())
	}
	if svc.QueueIndex() != 0 {
		t.Errorf("QueueIndex() = %d, want 0", svc.QueueIndex())
	}
	want := []string{"skipped:/b.mp3"}
	if got := rec.Events(); !equalStrings(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestService_Next_RepeatAll_Wraps(t *testing.T) {
	svc, _, _ := newTestService(testPathA, testPathB)
	defer svc.Close()
	svc.SetRepeatMode(RepeatAll)

	_ = svc.JumpTo(1)
	_ = svc.Next()

	if svc.State() != StatePlaying {
		t.Errorf("State() = %v, want Playing", svc.State())
	}
	if svc.QueueIndex() != 0 {
		t.Errorf("QueueIndex() = %d, want 0", svc.QueueIndex())
	}
}

func TestService_Next_WhenStopped_MovesWithoutPlaying(t *testing.T) {
	svc, p, rec := newTestService(testPathA, testPathB)
	defer svc.Close()

	_ = svc.Next()

	if svc.QueueIndex() != 0 {
		t.Errorf("QueueIndex() = %d, want 0", svc.QueueIndex())
	}
	if len(p.PlayCalls()) != 0 {
		t.Errorf("PlayCalls() = %v, want none", p.PlayCalls())
	}
	if len(rec.Events()) != 0 {
		t.Errorf("events = %v, want none", rec.Events())
	}
}

func TestService_Next_EmptyQueue(t *testing.T) {
	svc := New(player.NewMock(), playlist.NewQueue(), Config{})
	defer svc.Close()

	if err := svc.Next(); !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("Next() error = %v, want ErrEmptyQueue", err)
	}
	if err := svc.Previous(); !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("Previous() error = %v, want ErrEmptyQueue", err)
	}
}

func TestService_Previous(t *testing.T) {
	tests := []struct {
		name        string
		start       int
		repeat      RepeatMode
		position    time.Duration
		duration    time.Duration
		wantIndex   int
		wantRestart bool
	}{
		{"early in song goes back", 1, RepeatOff, 2 * time.Second, 3 * time.Minute, 0, false},
		{"past 5s restarts", 1, RepeatOff, 6 * time.Second, 3 * time.Minute, 1, true},
		{"past half of short song restarts", 1, RepeatOff, 4500 * time.Millisecond, 8 * time.Second, 1, true},
		{"first song restarts", 0, RepeatOff, time.Second, 3 * time.Minute, 0, true},
		{"first song with repeat all wraps", 0, RepeatAll, time.Second, 3 * time.Minute, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, p, rec := newTestService(testPathA, testPathB, testPathC)
			defer svc.Close()
			svc.SetRepeatMode(tt.repeat)
			p.SetDuration(tt.duration)
			_ = svc.JumpTo(tt.start)
			p.SetPosition(tt.position)
			rec.Reset()

			if err := svc.Previous(); err != nil {
				t.Fatalf("Previous() error = %v", err)
			}

			if svc.QueueIndex() != tt.wantIndex {
				t.Errorf("QueueIndex() = %d, want %d", svc.QueueIndex(), tt.wantIndex)
			}
			events := rec.Events()
			if tt.wantRestart {
				if len(events) != 1 || events[0][:7] != "seeked:" {
					t.Errorf("events = %v, want a single seek", events)
				}
				if p.Position() != 0 {
					t.Errorf("player Position() = %v, want 0", p.Position())
				}
			} else if len(events) != 2 || events[0][:8] != "skipped:" || events[1][:8] != "started:" {
				t.Errorf("events = %v, want skipped then started", events)
			}
		})
	}
}

func TestService_JumpTo(t *testing.T) {
	svc, p, rec := newTestService(testPathA, testPathB, testPathC)
	defer svc.Close()

	if err := svc.JumpTo(2); err != nil {
		t.Fatalf("JumpTo() error = %v", err)
	}
	if svc.QueueIndex() != 2 {
		t.Errorf("QueueIndex() = %d, want 2", svc.QueueIndex())
	}
	if calls := p.PlayCalls(); len(calls) != 1 || calls[0] != testPathC {
		t.Errorf("PlayCalls() = %v, want [%s]", calls, testPathC)
	}

	if err := svc.JumpTo(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("JumpTo(5) error = %v, want ErrIndexOutOfRange", err)
	}
	want := []string{"started:/c.mp3"}
	if got := rec.Events(); !equalStrings(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestService_Seek_FiresSeeked(t *testing.T) {
	svc, p, rec := newTestService(testPathA)
	defer svc.Close()
	sub := svc.Subscribe()

	if err := svc.Seek(10 * time.Second); err != nil {
		t.Fatalf("Seek() when stopped error = %v", err)
	}
	if len(p.SeekCalls()) != 0 {
		t.Error("Seek when stopped should not reach the player")
	}

	_ = svc.Play()
	_ = svc.Seek(10 * time.Second)
	_ = svc.SeekTo(90 * time.Second)

	want := []string{"started:/a.mp3", "seeked:/a.mp3@10s", "seeked:/a.mp3@1m30s"}
	if got := rec.Events(); !equalStrings(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}

	select {
	case e := <-sub.PositionChanged:
		if e.Position != 10*time.Second {
			t.Errorf("PositionChanged = %v, want 10s", e.Position)
		}
	default:
		t.Fatal("expected a PositionChanged event")
	}
}

func TestService_PlayError_SkipsToNextSong(t *testing.T) {
	svc, p, rec := newTestService(testPathA, testPathB)
	defer svc.Close()
	sub := svc.Subscribe()
	p.SetPlayErrorFor(testPathA, errors.New("corrupt"))

	if err := svc.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if svc.QueueIndex() != 1 {
		t.Errorf("QueueIndex() = %d, want 1", svc.QueueIndex())
	}
	want := []string{"started:/b.mp3"}
	if got := rec.Events(); !equalStrings(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}

	select {
	case e := <-sub.Error:
		if e.Operation != "play" || e.Path != testPathA {
			t.Errorf("Error event = %+v", e)
		}
	default:
		t.Fatal("expected an Error event")
	}
}

func TestService_PlayError_AllFail(t *testing.T) {
	svc, p, rec := newTestService(testPathA, testPathB)
	defer svc.Close()
	p.SetPlayError(errors.New("no audio device"))

	err := svc.Play()

	if err == nil {
		t.Fatal("Play() should fail when no song can play")
	}
	if svc.State() != StateStopped {
		t.Errorf("State() = %v, want Stopped", svc.State())
	}
	if len(rec.Events()) != 0 {
		t.Errorf("events = %v, want none", rec.Events())
	}
}

func TestService_Modes(t *testing.T) {
	svc, _, rec := newTestService(testPathA, testPathB, testPathC)
	defer svc.Close()
	sub := svc.Subscribe()

	if got := svc.CycleRepeatMode(); got != RepeatAll {
		t.Errorf("CycleRepeatMode() = %v, want All", got)
	}
	if !svc.ToggleShuffle() {
		t.Error("ToggleShuffle() = false, want true")
	}
	if !svc.Shuffle() {
		t.Error("Shuffle() = false, want true")
	}

	var last ModeChange
	for range 2 {
		select {
		case last = <-sub.ModeChanged:
		default:
			t.Fatal("expected ModeChanged events")
		}
	}
	if last.RepeatMode != RepeatAll || !last.Shuffle {
		t.Errorf("last ModeChange = %+v", last)
	}

	queues := rec.Queues()
	if len(queues) != 2 {
		t.Fatalf("queue notifications = %d, want 2", len(queues))
	}
	if queues[1].Repeat != RepeatAll || !queues[1].Shuffle() {
		t.Errorf("snapshot = %+v, want repeat all and shuffled", queues[1])
	}
}

func TestService_SetMultiRepeat_BelowTwoDisables(t *testing.T) {
	svc, _, _ := newTestService(testPathA)
	defer svc.Close()

	svc.SetMultiRepeat(1)
	if svc.MultiRepeat() != 0 {
		t.Errorf("MultiRepeat() = %d, want 0", svc.MultiRepeat())
	}
	svc.SetMultiRepeat(3)
	if svc.MultiRepeat() != 3 {
		t.Errorf("MultiRepeat() = %d, want 3", svc.MultiRepeat())
	}
	_ = svc.Play()
	_ = svc.Next()
	if svc.MultiRepeat() != 0 {
		t.Errorf("MultiRepeat() after skip = %d, want 0", svc.MultiRepeat())
	}
}

func TestService_Volume(t *testing.T) {
	svc, p, _ := newTestService()
	defer svc.Close()

	svc.SetVolume(0.4)

	if p.Volume() != 0.4 || svc.Volume() != 0.4 {
		t.Errorf("Volume() = %v, want 0.4", svc.Volume())
	}
}
