package domain

import "fmt"

// PeakWindow is a named retention-time interval over which a
// baseline-corrected area is computed. It is not checked against the
// actual time range of any trace.
type PeakWindow struct {
	Name  string  `json:"name" yaml:"name" validate:"required"`
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end" validate:"gtfield=Start"`
}

// Width returns End - Start.
func (w PeakWindow) Width() float64 {
	return w.End - w.Start
}

// Validate enforces Start < End.
func (w PeakWindow) Validate() error {
	if !(w.Start < w.End) {
		return fmt.Errorf("%w: %q [%g, %g]", ErrZeroWidthWindow, w.Name, w.Start, w.End)
	}
	return nil
}

func (w PeakWindow) String() string {
	return fmt.Sprintf("%s[%g, %g]", w.Name, w.Start, w.End)
}

// PeakResult is the outcome of integrating one window over one trace.
// StartIndex and FinishIndex are the resolved sample indices; Baseline has
// one value per trace sample.
type PeakResult struct {
	Window      PeakWindow `json:"window"`
	StartIndex  int        `json:"start_index"`
	FinishIndex int        `json:"finish_index"`
	Slope       float64    `json:"slope"`
	Intercept   float64    `json:"intercept"`
	Baseline    []float64  `json:"-"`
	Area        float64    `json:"area"`
}

// Collapsed reports whether both endpoints resolved to the same sample.
func (r PeakResult) Collapsed() bool {
	return r.StartIndex == r.FinishIndex
}
