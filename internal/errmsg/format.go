// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Queue operations
	OpQueueLoad    Op = "load queue"
	OpQueueSave    Op = "save queue"
	OpQueueAdd     Op = "add to queue"
	OpQueueRemove  Op = "remove from queue"
	OpQueueMove    Op = "move queue item"
	OpQueueRestore Op = "restore queue"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackPause Op = "pause playback"
	OpPlaybackSkip  Op = "skip track"
	OpPlaybackSeek  Op = "seek"
	OpVolumeSave    Op = "save volume"

	// File operations
	OpFileLoad Op = "load file"
	OpFileScan Op = "scan folder"

	// Extensions
	OpExtension Op = "run player extension"

	// State store
	OpStoreOpen  Op = "open state database"
	OpStoreStats Op = "read play statistics"

	// Last.fm
	OpLastfmAuth       Op = "link Last.fm account"
	OpLastfmScrobble   Op = "scrobble to Last.fm"
	OpLastfmNowPlaying Op = "update Last.fm now playing"
	OpLastfmRetry      Op = "resubmit pending scrobbles"

	// Desktop integration
	OpNotify Op = "show notification"
	OpMPRIS  Op = "start media controls"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
