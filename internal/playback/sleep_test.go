package playback

import (
	"testing"
	"testing/synctest"
	"time"
)

func TestSleepTimer_PausesOnExpiry(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		svc, _, rec := newTestService(testPathA)
		defer svc.Close()
		sub := svc.Subscribe()

		_ = svc.Play()
		svc.StartSleepTimer(10 * time.Minute)

		end, ok := svc.SleepTimerEnd()
		if !ok || !end.Equal(time.Now().Add(10*time.Minute)) {
			t.Errorf("SleepTimerEnd() = %v, %v", end, ok)
		}

		time.Sleep(10 * time.Minute)
		synctest.Wait()

		if svc.State() != StatePaused {
			t.Errorf("State() = %v, want Paused", svc.State())
		}
		if _, ok := svc.SleepTimerEnd(); ok {
			t.Error("SleepTimerEnd() still running after expiry")
		}
		want := []string{"started:/a.mp3", "paused:/a.mp3"}
		if got := rec.Events(); !equalStrings(got, want) {
			t.Errorf("events = %v, want %v", got, want)
		}

		var last SleepTimerChange
		for range 2 {
			last = <-sub.SleepChanged
		}
		if !last.End.IsZero() {
			t.Errorf("last SleepTimerChange.End = %v, want zero", last.End)
		}
	})
}

func TestSleepTimer_Cancel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		svc, _, _ := newTestService(testPathA)
		defer svc.Close()

		_ = svc.Play()
		svc.StartSleepTimer(time.Minute)
		svc.CancelSleepTimer()

		time.Sleep(2 * time.Minute)
		synctest.Wait()

		if svc.State() != StatePlaying {
			t.Errorf("State() = %v, want Playing", svc.State())
		}
		if _, ok := svc.SleepTimerEnd(); ok {
			t.Error("SleepTimerEnd() reports a running timer after cancel")
		}
	})
}

func TestSleepTimer_RestartReplacesTimer(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		svc, _, _ := newTestService(testPathA)
		defer svc.Close()

		_ = svc.Play()
		svc.StartSleepTimer(time.Minute)
		svc.StartSleepTimer(5 * time.Minute)

		time.Sleep(2 * time.Minute)
		synctest.Wait()
		if svc.State() != StatePlaying {
			t.Errorf("State() after 2m = %v, want Playing", svc.State())
		}

		time.Sleep(3 * time.Minute)
		synctest.Wait()
		if svc.State() != StatePaused {
			t.Errorf("State() after 5m = %v, want Paused", svc.State())
		}
	})
}

func TestSleepTimer_NonPositiveCancels(t *testing.T) {
	svc, _, _ := newTestService(testPathA)
	defer svc.Close()

	svc.StartSleepTimer(time.Hour)
	svc.StartSleepTimer(0)

	if _, ok := svc.SleepTimerEnd(); ok {
		t.Error("StartSleepTimer(0) should cancel the timer")
	}
}
