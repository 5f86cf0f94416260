//go:build !windows

// Package stderr redirects file descriptor 2 into a pipe so that native
// audio libraries (ALSA) cannot scribble over the terminal UI.
package stderr

import (
	"os"
	"sync"
	"syscall"
)

// Capture owns a redirected stderr. Lines written to fd 2 while it is
// active are delivered on Lines.
type Capture struct {
	lines chan string
	orig  int
	r, w  *os.File
	once  sync.Once
}

// Start redirects fd 2. The program keeps working if it fails; output then
// goes to the terminal as usual.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{lines: make(chan string, bufferSize), orig: orig, r: r, w: w}
	go forward(r, c.lines)
	return c, nil
}

// Lines returns the captured lines. The channel closes after Stop.
func (c *Capture) Lines() <-chan string { return c.lines }

// WriteOriginal writes to the terminal's stderr, bypassing the capture.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = syscall.Write(c.orig, []byte(msg))
}

// Stop restores fd 2. Safe to call more than once.
func (c *Capture) Stop() {
	c.once.Do(func() {
		_ = dup2(c.orig, int(os.Stderr.Fd()))
		_ = syscall.Close(c.orig)
		c.w.Close()
		c.r.Close()
	})
}
