//go:build windows

package stderr

import (
	"os"
	"sync"
)

// Capture is inert on Windows, where audio output does not print to fd 2.
type Capture struct {
	lines chan string
	once  sync.Once
}

// Start returns a capture whose Lines channel never delivers.
func Start() (*Capture, error) {
	return &Capture{lines: make(chan string)}, nil
}

// Lines returns a channel that stays empty until Stop.
func (c *Capture) Lines() <-chan string { return c.lines }

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop closes Lines.
func (c *Capture) Stop() {
	c.once.Do(func() { close(c.lines) })
}
