package operations

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker tracks progress through the files of a batch
type ProgressTracker struct {
	Step      string
	Total     int
	Current   int
	StartTime time.Time
	Message   string
	mu        sync.Mutex
}

// NewProgressTracker creates a new progress tracker
func NewProgressTracker(step string, total int) *ProgressTracker {
	return &ProgressTracker{
		Step:      step,
		Total:     total,
		StartTime: time.Now(),
	}
}

// Increment increments the current progress by 1
func (p *ProgressTracker) Increment(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Current++
	p.Message = message
}

// GetProgress returns the current progress state
func (p *ProgressTracker) GetProgress() (current, total int, percentage float64, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Total > 0 {
		percentage = float64(p.Current) / float64(p.Total) * 100
	}

	return p.Current, p.Total, percentage, p.Message
}

// GetElapsedTime returns the elapsed time since start
func (p *ProgressTracker) GetElapsedTime() time.Duration {
	return time.Since(p.StartTime)
}

// ConsoleReporter prints operator progress, separate from the structured log
type ConsoleReporter struct {
	out io.Writer
	mu  sync.Mutex
}

// NewConsoleReporter creates a reporter writing to out; nil discards
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	if out == nil {
		out = io.Discard
	}
	return &ConsoleReporter{out: out}
}

// FileStarted prints the name of the file about to be analysed
func (c *ConsoleReporter) FileStarted(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, name)
}

// Finished prints the total run time
func (c *ConsoleReporter) Finished(elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "Run time: %s\n", elapsed)
}
