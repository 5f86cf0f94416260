// Package keymap defines key bindings and action dispatch for the player.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit          Action = "quit"
	ActionHelp          Action = "help"
	ActionToggleDisplay Action = "toggle_display"

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionStop        Action = "stop"
	ActionNext        Action = "next"
	ActionPrev        Action = "prev"
	ActionSeekBack    Action = "seek_back"
	ActionSeekForward Action = "seek_forward"
	ActionVolumeUp    Action = "volume_up"
	ActionVolumeDown  Action = "volume_down"

	// Modes
	ActionCycleRepeat   Action = "cycle_repeat"
	ActionToggleShuffle Action = "toggle_shuffle"
	ActionMultiRepeat   Action = "multi_repeat"
	ActionSleepTimer    Action = "sleep_timer"

	// Queue actions
	ActionCursorUp     Action = "cursor_up"
	ActionCursorDown   Action = "cursor_down"
	ActionCursorTop    Action = "cursor_top"
	ActionCursorBottom Action = "cursor_bottom"
	ActionPlaySelected Action = "play_selected"
	ActionPlayNext     Action = "play_next"
	ActionRemove       Action = "remove"
	ActionMoveUp       Action = "move_up"
	ActionMoveDown     Action = "move_down"
	ActionClearQueue   Action = "clear_queue"
	ActionUndo         Action = "undo"
	ActionRedo         Action = "redo"
)
