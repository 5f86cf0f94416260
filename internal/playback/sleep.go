package playback

import "time"

// StartSleepTimer pauses playback after d, replacing any running timer.
// A non-positive d cancels the timer.
func (s *serviceImpl) StartSleepTimer(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.stopSleepLocked()
	if d > 0 {
		gen := s.sleepGen
		s.sleepEnd = time.Now().Add(d)
		s.sleepTimer = time.AfterFunc(d, func() { s.sleepExpired(gen) })
	}
	s.emitSleepLocked()
}

// CancelSleepTimer stops a running sleep timer.
func (s *serviceImpl) CancelSleepTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sleepTimer == nil {
		return
	}
	s.stopSleepLocked()
	s.emitSleepLocked()
}

// SleepTimerEnd returns when the sleep timer fires, if one is running.
func (s *serviceImpl) SleepTimerEnd() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sleepEnd, s.sleepTimer != nil
}

func (s *serviceImpl) stopSleepLocked() {
	if s.sleepTimer != nil {
		s.sleepTimer.Stop()
		s.sleepTimer = nil
	}
	s.sleepEnd = time.Time{}
	s.sleepGen++
}

func (s *serviceImpl) sleepExpired(gen int) {
	s.mu.Lock()
	if s.closed || gen != s.sleepGen {
		s.mu.Unlock()
		return
	}
	s.sleepTimer = nil
	s.sleepEnd = time.Time{}
	s.sleepGen++
	s.emitSleepLocked()
	_ = s.pauseLocked()
	s.mu.Unlock()
	s.flush()
}

func (s *serviceImpl) emitSleepLocked() {
	e := SleepTimerChange{End: s.sleepEnd}
	s.broadcast(func(sub *Subscription) { sub.sendSleep(e) })
}
