package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// Spinner displays an animated spinner with a message while a network call
// is in flight. Outside a TTY it degrades to a single printed line.
type Spinner struct {
	message string
	frames  []string
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	current int
}

var defaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a new spinner with the given message.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		frames:  defaultFrames,
		done:    make(chan struct{}),
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Printf("%s...\n", s.message)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				fmt.Print("\r\033[K")
				return
			case <-ticker.C:
				s.mu.Lock()
				frame := s.frames[s.current%len(s.frames)]
				s.current++
				s.mu.Unlock()
				fmt.Printf("\r%s %s", Bold.Render(frame), s.message)
			}
		}
	}()
}

// Stop stops the spinner and clears its line.
func (s *Spinner) Stop() {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return
	}
	close(s.done)
	s.wg.Wait()
}

// StopWithMessage stops the spinner and prints a final message.
func (s *Spinner) StopWithMessage(message string) {
	s.Stop()
	fmt.Println(message)
}
