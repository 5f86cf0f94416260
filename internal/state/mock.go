// internal/state/mock.go
package state

import (
	"cmp"
	"database/sql"
	"slices"
	"sync"
	"time"

	"github.com/llehouerou/jockey/internal/song"
)

// Mock is an in-memory test double for Manager. Position saves are applied
// immediately. It is safe for concurrent use.
type Mock struct {
	mu         sync.Mutex
	queueState *QueueState
	volume     float64
	counts     map[int64]*PlayCount
	session    *LastfmSession
	pending    []PendingScrobble
	nextID     int64
	queueSaves int
	closed     bool
	err        error
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{volume: 1, counts: make(map[int64]*PlayCount)}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) SaveQueue(st QueueState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	st.Songs = slices.Clone(st.Songs)
	st.Order = slices.Clone(st.Order)
	m.queueState = &st
	m.queueSaves++
	return nil
}

func (m *Mock) GetQueue() (*QueueState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queueState == nil {
		return nil, m.err
	}
	st := *m.queueState
	st.Songs = slices.Clone(st.Songs)
	st.Order = slices.Clone(st.Order)
	return &st, m.err
}

func (m *Mock) SavePosition(index int, pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queueState == nil {
		return
	}
	m.queueState.CurrentIndex = index
	m.queueState.Position = pos
}

func (m *Mock) GetVolume() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume, nil
}

func (m *Mock) SaveVolume(volume float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = volume
	return nil
}

func (m *Mock) IncrementPlayCount(s song.Song, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	pc := m.countLocked(s)
	pc.Plays++
	pc.LastPlayed = at
	return nil
}

func (m *Mock) IncrementSkipCount(s song.Song, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	pc := m.countLocked(s)
	pc.Skips++
	pc.LastSkipped = at
	return nil
}

func (m *Mock) countLocked(s song.Song) *PlayCount {
	pc, ok := m.counts[s.ID]
	if !ok {
		pc = &PlayCount{SongID: s.ID}
		m.counts[s.ID] = pc
	}
	pc.Path, pc.Title, pc.Artist = s.Path, s.Title, s.Artist
	return pc
}

func (m *Mock) GetPlayCount(songID int64) (*PlayCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pc, ok := m.counts[songID]
	if !ok {
		return nil, nil //nolint:nilnil // unknown song has no statistics
	}
	c := *pc
	return &c, nil
}

func (m *Mock) TopPlayCounts(limit int) ([]PlayCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []PlayCount
	for _, pc := range m.counts {
		if pc.Plays > 0 {
			out = append(out, *pc)
		}
	}
	slices.SortFunc(out, func(a, b PlayCount) int {
		if c := cmp.Compare(b.Plays, a.Plays); c != 0 {
			return c
		}
		return b.LastPlayed.Compare(a.LastPlayed)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Mock) GetLastfmSession() (*LastfmSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *Mock) SaveLastfmSession(username, sessionKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &LastfmSession{Username: username, SessionKey: sessionKey, LinkedAt: time.Now()}
	return nil
}

func (m *Mock) DeleteLastfmSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func (m *Mock) AddPendingScrobble(s PendingScrobble) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	s.ID = m.nextID
	s.CreatedAt = time.Now()
	m.pending = append(m.pending, s)
	return nil
}

func (m *Mock) GetPendingScrobbles() ([]PendingScrobble, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.pending), nil
}

func (m *Mock) DeletePendingScrobble(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = slices.DeleteFunc(m.pending, func(s PendingScrobble) bool { return s.ID == id })
	return nil
}

func (m *Mock) UpdatePendingScrobbleAttempt(id int64, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.pending {
		if m.pending[i].ID == id {
			m.pending[i].Attempts++
			m.pending[i].LastError = errMsg
		}
	}
	return nil
}

func (m *Mock) DeleteOldPendingScrobbles(maxAge time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-maxAge)
	m.pending = slices.DeleteFunc(m.pending, func(s PendingScrobble) bool { return s.CreatedAt.Before(cutoff) })
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetQueue(st *QueueState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queueState = st
}

// SetError makes writes and GetQueue fail with err.
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Mock) QueueSaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queueSaves
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
