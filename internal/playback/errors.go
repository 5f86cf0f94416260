package playback

import "errors"

var (
	// ErrEmptyQueue is returned by operations that need a song to play.
	ErrEmptyQueue = errors.New("queue is empty")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("playback service closed")
	// ErrIndexOutOfRange is returned for a queue position that does not exist.
	ErrIndexOutOfRange = errors.New("queue index out of range")
)
