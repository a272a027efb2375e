// Package ui provides the CLI's stderr progress output. Browser scrapes
// run for minutes with nothing on stdout, so the spinner doubles as a
// liveness signal while also relaying collection progress messages.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var frames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Spinner displays an animated progress indicator. Update is safe to
// call from the scrape goroutine while the animation runs.
type Spinner struct {
	w    io.Writer
	mu   sync.Mutex
	msg  string
	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a spinner writing to stderr, not yet running.
func NewSpinner() *Spinner {
	return &Spinner{w: os.Stderr}
}

// Start begins the animation with the given message. A second Start
// without an intervening Stop is a no-op.
func (s *Spinner) Start(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		s.msg = msg
		return
	}
	s.msg = msg
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(s.stop, s.done)
}

// Update changes the message shown next to the spinner. Used as the
// progress callback carried in the scrape context.
func (s *Spinner) Update(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
}

// Stop halts the animation, waits for the render goroutine to exit and
// clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
	fmt.Fprint(s.w, "\r\033[K")
}

func (s *Spinner) run(stop, done chan struct{}) {
	defer close(done)

	tick := time.NewTicker(80 * time.Millisecond)
	defer tick.Stop()

	i := 0
	for {
		select {
		case <-stop:
			return
		case <-tick.C:
			s.mu.Lock()
			msg := s.msg
			s.mu.Unlock()
			fmt.Fprintf(s.w, "\r\033[K%c %s", frames[i%len(frames)], msg)
			i++
		}
	}
}
