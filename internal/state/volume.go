package state

import (
	"database/sql"
	"errors"
)

// GetVolume returns the saved output volume, 1.0 when none was saved.
func (m *Manager) GetVolume() (float64, error) {
	var volume float64

	row := m.db.QueryRow(`SELECT volume FROM queue_state WHERE id = 1`)
	err := row.Scan(&volume)
	if errors.Is(err, sql.ErrNoRows) {
		return 1.0, nil
	}
	if err != nil {
		return 0, err
	}
	return volume, nil
}

// SaveVolume persists the volume level to the database.
func (m *Manager) SaveVolume(volume float64) error {
	_, err := m.db.Exec(`
		INSERT INTO queue_state (id, current_index, repeat_mode, shuffle, volume)
		VALUES (1, -1, 0, 0, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume
	`, volume)
	return err
}
