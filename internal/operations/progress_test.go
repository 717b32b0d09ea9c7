package operations

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker(t *testing.T) {
	p := NewProgressTracker("analyze", 4)

	p.Increment("a.CSV")
	p.Increment("b.CSV")

	current, total, percentage, message := p.GetProgress()
	assert.Equal(t, 2, current)
	assert.Equal(t, 4, total)
	assert.Equal(t, 50.0, percentage)
	assert.Equal(t, "b.CSV", message)

	p.Increment("c.CSV")
	p.Increment("d.CSV")
	current, _, percentage, _ = p.GetProgress()
	assert.Equal(t, 4, current)
	assert.Equal(t, 100.0, percentage)
	assert.GreaterOrEqual(t, p.GetElapsedTime(), time.Duration(0))
}

func TestProgressTrackerEmpty(t *testing.T) {
	p := NewProgressTracker("analyze", 0)
	_, _, percentage, _ := p.GetProgress()
	assert.Equal(t, 0.0, percentage)
}

func TestConsoleReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(&buf)

	r.FileStarted("sample01.CSV")
	r.Finished(1500 * time.Millisecond)

	assert.Equal(t, "sample01.CSV\nRun time: 1.5s\n", buf.String())

	assert.NotPanics(t, func() { NewConsoleReporter(nil).FileStarted("x") })
}
