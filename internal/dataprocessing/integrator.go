package dataprocessing

import (
	"fmt"
	"math"

	apperrors "gcpeaks/internal/errors"
	"gcpeaks/pkg/contracts/domain"
)

// ResolveIndex returns the index of the sample nearest to t, the first one on
// ties. A t beyond either end of the trace by more than half the sample
// spacing at that end has no nearest sample.
func ResolveIndex(trace *domain.Trace, t float64) (int, error) {
	n := trace.Len()
	if n == 0 {
		return 0, domain.ErrEmptyTrace
	}

	first, last := trace.Span()
	if n > 1 {
		lowSlack := (trace.Time[1] - trace.Time[0]) / 2
		highSlack := (trace.Time[n-1] - trace.Time[n-2]) / 2
		if t < first-lowSlack || t > last+highSlack {
			return 0, fmt.Errorf("%w: t=%g outside [%g, %g]", domain.ErrEndpointNotFound, t, first, last)
		}
	} else if t != first {
		return 0, fmt.Errorf("%w: t=%g, single sample at %g", domain.ErrEndpointNotFound, t, first)
	}

	best := 0
	bestDist := math.Abs(trace.Time[0] - t)
	for i := 1; i < n; i++ {
		d := math.Abs(trace.Time[i] - t)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, nil
}

// ResolveWindow resolves both endpoints of w
func ResolveWindow(trace *domain.Trace, w domain.PeakWindow) (start, finish int, err error) {
	if err := w.Validate(); err != nil {
		return 0, 0, err
	}
	if start, err = ResolveIndex(trace, w.Start); err != nil {
		return 0, 0, fmt.Errorf("start of %s: %w", w, err)
	}
	if finish, err = ResolveIndex(trace, w.End); err != nil {
		return 0, 0, fmt.Errorf("end of %s: %w", w, err)
	}
	return start, finish, nil
}

// Integrate computes the area between the trace and the straight line through
// the samples nearest to the window endpoints.
func Integrate(trace *domain.Trace, w domain.PeakWindow) (domain.PeakResult, error) {
	start, finish, err := ResolveWindow(trace, w)
	if err != nil {
		return domain.PeakResult{}, apperrors.NewAnalysisError("failed to integrate peak", err).
			WithContext("peak", w.Name).
			WithContext("file", trace.Source)
	}

	// Endpoints on the same sample: flat baseline, zero area
	var slope float64
	if finish != start {
		slope = (trace.Signal[finish] - trace.Signal[start]) / (trace.Time[finish] - trace.Time[start])
	}
	intercept := trace.Signal[start] - trace.Time[start]*slope

	baseline := make([]float64, trace.Len())
	corrected := make([]float64, trace.Len())
	for i, t := range trace.Time {
		baseline[i] = t*slope + intercept
		corrected[i] = trace.Signal[i] - baseline[i]
	}

	// Inclusive of finish: over [(1,0),(2,10),(3,0)] this gives 10, where a
	// half-open start..finish-1 range would stop at 5.
	var area float64
	if finish > start {
		area = Trapezoid(corrected[start:finish+1], trace.Time[start:finish+1])
	}

	return domain.PeakResult{
		Window:      w,
		StartIndex:  start,
		FinishIndex: finish,
		Slope:       slope,
		Intercept:   intercept,
		Baseline:    baseline,
		Area:        area,
	}, nil
}

// Trapezoid integrates y over x with the trapezoidal rule. Fewer than two
// points integrate to 0.
func Trapezoid(y, x []float64) float64 {
	n := min(len(x), len(y))
	var sum float64
	for i := 1; i < n; i++ {
		sum += (x[i] - x[i-1]) * (y[i] + y[i-1]) / 2
	}
	return sum
}
