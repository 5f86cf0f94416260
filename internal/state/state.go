// Package state persists player state in SQLite: the saved queue, play
// counts and the Last.fm session with its pending scrobbles.
package state

import (
	"database/sql"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"

	dbutil "github.com/llehouerou/jockey/internal/db"
	"github.com/llehouerou/jockey/internal/logger"
)

const (
	appName      = "jockey"
	dbFileName   = "jockey.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *positionState
	closed    bool
	// inflight counts debounced writes that left the timer; Close waits
	// for them before closing the database.
	inflight sync.WaitGroup

	beforeFlush func() // test hook, runs inside a debounced write
}

// Open opens the state database in the XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the state database at path; dbutil.MemoryPath gives a
// throwaway in-memory store.
func OpenPath(path string) (*Manager, error) {
	db, err := dbutil.Open(path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

// DefaultPath returns $XDG_DATA_HOME/jockey/jockey.db.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	m.closed = true
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	m.inflight.Wait()

	// Flush pending state
	if pending != nil {
		if err := savePosition(m.db, *pending); err != nil {
			logger.Warnf("[state] flush position: %v", err)
		}
	}

	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// SavePosition records the playing queue index and position. Writes are
// debounced; the last value wins and is flushed on Close.
func (m *Manager) SavePosition(index int, pos time.Duration) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()
	if m.closed {
		return
	}

	m.pending = &positionState{Index: index, Position: pos}

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		if m.closed {
			m.saveMu.Unlock()
			return
		}
		pending := m.pending
		m.pending = nil
		m.inflight.Add(1)
		m.saveMu.Unlock()
		defer m.inflight.Done()

		if m.beforeFlush != nil {
			m.beforeFlush()
		}
		if pending != nil {
			if err := savePosition(m.db, *pending); err != nil {
				logger.Warnf("[state] save position: %v", err)
			}
		}
	})
}

// dropPendingPosition discards a debounced position write superseded by a
// full queue save.
func (m *Manager) dropPendingPosition() {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}
	m.pending = nil
}
