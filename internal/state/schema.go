package state

import (
	"database/sql"
)

const currentSchemaVersion = 3

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS queue_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			current_index INTEGER NOT NULL DEFAULT -1,
			repeat_mode INTEGER NOT NULL DEFAULT 0,
			shuffle INTEGER NOT NULL DEFAULT 0,
			position_ms INTEGER NOT NULL DEFAULT 0,
			volume REAL NOT NULL DEFAULT 1.0
		);

		CREATE TABLE IF NOT EXISTS queue_songs (
			position INTEGER PRIMARY KEY,
			song_id INTEGER NOT NULL,
			path TEXT NOT NULL,
			title TEXT NOT NULL,
			artist TEXT,
			album_artist TEXT,
			album TEXT,
			genre TEXT,
			year INTEGER,
			track_number INTEGER,
			duration_ms INTEGER,
			shuffle_rank INTEGER
		);

		CREATE TABLE IF NOT EXISTS play_counts (
			song_id INTEGER PRIMARY KEY,
			path TEXT NOT NULL,
			title TEXT NOT NULL,
			artist TEXT,
			play_count INTEGER NOT NULL DEFAULT 0,
			skip_count INTEGER NOT NULL DEFAULT 0,
			last_played_at INTEGER,
			last_skipped_at INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_play_counts_plays ON play_counts(play_count DESC);

		CREATE TABLE IF NOT EXISTS lastfm_session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			username TEXT NOT NULL,
			session_key TEXT NOT NULL,
			linked_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS lastfm_pending_scrobbles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			artist TEXT NOT NULL,
			track TEXT NOT NULL,
			album TEXT,
			album_artist TEXT,
			duration_seconds INTEGER,
			timestamp INTEGER NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			last_error TEXT,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_pending_scrobbles_created ON lastfm_pending_scrobbles(created_at);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	if err != nil {
		return err
	}

	// Migration: columns added after version 1
	_, _ = db.Exec(`ALTER TABLE queue_state ADD COLUMN position_ms INTEGER NOT NULL DEFAULT 0`)
	_, _ = db.Exec(`ALTER TABLE queue_songs ADD COLUMN shuffle_rank INTEGER`)
	_, _ = db.Exec(`ALTER TABLE lastfm_pending_scrobbles ADD COLUMN album_artist TEXT`)

	return nil
}
