package keymap

// Binding maps keys to an action, with a description for the help view.
type Binding struct {
	Keys        []string
	Action      Action
	Description string
}

// Default contains the built-in key bindings, in help order.
var Default = []Binding{
	{[]string{"q", "ctrl+c"}, ActionQuit, "Quit"},
	{[]string{"?"}, ActionHelp, "Toggle help"},
	{[]string{"v"}, ActionToggleDisplay, "Toggle expanded player bar"},

	{[]string{" ", "space"}, ActionPlayPause, "Play/pause"},
	{[]string{"s"}, ActionStop, "Stop"},
	{[]string{"n", "pgdown"}, ActionNext, "Next song"},
	{[]string{"p", "pgup"}, ActionPrev, "Previous song"},
	{[]string{"left", "h"}, ActionSeekBack, "Seek -5s"},
	{[]string{"right", "l"}, ActionSeekForward, "Seek +5s"},
	{[]string{"+", "="}, ActionVolumeUp, "Volume up"},
	{[]string{"-"}, ActionVolumeDown, "Volume down"},

	{[]string{"R"}, ActionCycleRepeat, "Cycle repeat mode"},
	{[]string{"S"}, ActionToggleShuffle, "Toggle shuffle"},
	{[]string{"M"}, ActionMultiRepeat, "Cycle multi-repeat"},
	{[]string{"Z"}, ActionSleepTimer, "Set sleep timer"},

	{[]string{"k", "up"}, ActionCursorUp, "Move up"},
	{[]string{"j", "down"}, ActionCursorDown, "Move down"},
	{[]string{"g", "home"}, ActionCursorTop, "First song"},
	{[]string{"G", "end"}, ActionCursorBottom, "Last song"},
	{[]string{"enter"}, ActionPlaySelected, "Play selected"},
	{[]string{"a"}, ActionPlayNext, "Play selected next"},
	{[]string{"d", "delete"}, ActionRemove, "Remove selected"},
	{[]string{"K", "shift+up"}, ActionMoveUp, "Move selected up"},
	{[]string{"J", "shift+down"}, ActionMoveDown, "Move selected down"},
	{[]string{"C"}, ActionClearQueue, "Clear queue"},
	{[]string{"u", "ctrl+z"}, ActionUndo, "Undo queue change"},
	{[]string{"ctrl+r", "ctrl+y"}, ActionRedo, "Redo queue change"},
}
