package domain

import (
	"fmt"
	"math"
)

// Trace is the time/signal sample sequence read from one chromatogram export.
// Time is strictly increasing once loaded and Signal is aligned with it.
type Trace struct {
	Source string    `json:"source"`
	Time   []float64 `json:"time"`
	Signal []float64 `json:"signal"`
}

// NewTrace builds a trace from aligned sequences and validates it.
func NewTrace(source string, time, signal []float64) (*Trace, error) {
	t := &Trace{Source: source, Time: time, Signal: signal}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Len returns the number of samples.
func (t *Trace) Len() int {
	return len(t.Time)
}

// Span returns the first and last time value. It panics on an empty trace.
func (t *Trace) Span() (first, last float64) {
	return t.Time[0], t.Time[len(t.Time)-1]
}

// Validate checks the loaded-trace invariants.
func (t *Trace) Validate() error {
	if len(t.Time) != len(t.Signal) {
		return fmt.Errorf("%w: %d time values, %d signal values", ErrLengthMismatch, len(t.Time), len(t.Signal))
	}
	if len(t.Time) == 0 {
		return ErrEmptyTrace
	}
	for i, v := range t.Time {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: sample %d has non-finite time %g", ErrNonMonotonicTrace, i, v)
		}
	}
	for i := 1; i < len(t.Time); i++ {
		if t.Time[i] <= t.Time[i-1] {
			return fmt.Errorf("%w: sample %d (t=%g) follows t=%g", ErrNonMonotonicTrace, i, t.Time[i], t.Time[i-1])
		}
	}
	return nil
}
