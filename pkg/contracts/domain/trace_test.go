package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceValidate(t *testing.T) {
	tests := []struct {
		name    string
		time    []float64
		signal  []float64
		wantErr error
	}{
		{name: "valid", time: []float64{0, 1, 2}, signal: []float64{5, 6, 7}},
		{name: "single sample", time: []float64{3}, signal: []float64{1}},
		{name: "empty", time: nil, signal: nil, wantErr: ErrEmptyTrace},
		{name: "length mismatch", time: []float64{0, 1}, signal: []float64{1}, wantErr: ErrLengthMismatch},
		{name: "repeated time", time: []float64{0, 1, 1}, signal: []float64{1, 2, 3}, wantErr: ErrNonMonotonicTrace},
		{name: "decreasing time", time: []float64{0, 2, 1}, signal: []float64{1, 2, 3}, wantErr: ErrNonMonotonicTrace},
		{name: "NaN time", time: []float64{0, math.NaN(), 1, math.NaN(), 2}, signal: []float64{0, 5, 0, 7, 0}, wantErr: ErrNonMonotonicTrace},
		{name: "infinite time", time: []float64{0, 1, math.Inf(1)}, signal: []float64{0, 0, 0}, wantErr: ErrNonMonotonicTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewTrace("test.CSV", tt.time, tt.signal)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, tr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.time), tr.Len())
		})
	}
}

func TestTraceSpan(t *testing.T) {
	tr, err := NewTrace("x", []float64{1.5, 2, 9.25}, []float64{0, 0, 0})
	require.NoError(t, err)

	first, last := tr.Span()
	assert.Equal(t, 1.5, first)
	assert.Equal(t, 9.25, last)
}

func TestPeakWindowValidate(t *testing.T) {
	assert.NoError(t, PeakWindow{Name: "Peak1", Start: 2.4, End: 2.8}.Validate())

	err := PeakWindow{Name: "flat", Start: 3, End: 3}.Validate()
	assert.ErrorIs(t, err, ErrZeroWidthWindow)

	err = PeakWindow{Name: "inverted", Start: 4, End: 3}.Validate()
	assert.ErrorIs(t, err, ErrZeroWidthWindow)
	assert.Contains(t, err.Error(), "inverted")
}

func TestPeakWindowWidth(t *testing.T) {
	w := PeakWindow{Name: "p", Start: 3.9, End: 4.1}
	assert.InDelta(t, 0.2, w.Width(), 1e-12)
	assert.Equal(t, "p[3.9, 4.1]", w.String())
}

func TestBatchResultHeaderAndTime(t *testing.T) {
	b := &BatchResult{
		PeakNames: []string{"Peak3", "Peak1", "Peak2"},
		Interval:  0.5,
	}

	assert.Equal(t, []string{"Time", "Peak3", "Peak1", "Peak2"}, b.Header())
	assert.Equal(t, 0.0, b.TimeValue(0))
	assert.Equal(t, 1.5, b.TimeValue(3))

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	b.StartedAt = start
	b.FinishedAt = start.Add(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, b.Duration())
}

func TestPeakResultCollapsed(t *testing.T) {
	assert.True(t, PeakResult{StartIndex: 4, FinishIndex: 4}.Collapsed())
	assert.False(t, PeakResult{StartIndex: 4, FinishIndex: 5}.Collapsed())
}
