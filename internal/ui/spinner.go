package ui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// spinnerFrames defines the animation frames for the spinner
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner displays an animated spinner with elapsed time during long operations.
// On a non-TTY writer it prints the message once without animation.
type Spinner struct {
	mu        sync.Mutex
	out       io.Writer
	message   string
	startTime time.Time
	active    bool
	done      chan struct{}
	stopped   chan struct{}
	frameIdx  int
	isTTY     bool
}

// NewSpinner creates a spinner writing to out.
func NewSpinner(out io.Writer, isTTY bool) *Spinner {
	return &Spinner{out: out, isTTY: isTTY}
}

// Start begins the spinner animation with the given message.
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return
	}

	s.message = message
	s.startTime = time.Now()
	s.active = true
	s.frameIdx = 0

	if !s.isTTY {
		fmt.Fprintf(s.out, "%s\n", message)
		return
	}

	s.done = make(chan struct{})
	s.stopped = make(chan struct{})
	s.render()
	go s.animate(s.done, s.stopped)
}

// Stop stops the spinner, clears its line, and returns the elapsed duration.
func (s *Spinner) Stop() time.Duration {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return 0
	}
	elapsed := time.Since(s.startTime)
	s.active = false
	done, stopped := s.done, s.stopped
	s.mu.Unlock()

	if done != nil {
		close(done)
		<-stopped
		fmt.Fprint(s.out, "\r\033[K")
	}
	return elapsed
}

// Println writes a full line above the spinner without corrupting it.
func (s *Spinner) Println(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active && s.isTTY {
		fmt.Fprintf(s.out, "\r\033[K%s\n", line)
		s.render()
		return
	}
	fmt.Fprintln(s.out, line)
}

func (s *Spinner) animate(done <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.active {
				s.frameIdx = (s.frameIdx + 1) % len(spinnerFrames)
				s.render()
			}
			s.mu.Unlock()
		}
	}
}

// render draws the current spinner state (must be called with mu held)
func (s *Spinner) render() {
	frame := spinnerFrames[s.frameIdx]
	if !ColorEnabled() {
		frame = "..."
	}
	fmt.Fprintf(s.out, "\r\033[K%s %s %s",
		Muted.Render(frame),
		s.message,
		Muted.Render("("+formatElapsed(time.Since(s.startTime))+")"))
}

// formatElapsed formats a duration for display (e.g., "12s", "1m 23s")
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	if seconds == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
