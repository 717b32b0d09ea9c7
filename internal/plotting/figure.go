package plotting

import (
	"bytes"
	"fmt"
	"io"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"gcpeaks/internal/config"
	apperrors "gcpeaks/internal/errors"
	"gcpeaks/pkg/contracts/domain"
)

// traceStrokeWidth is a 0.3pt line at 100 dpi
const traceStrokeWidth = 0.3 * 100 / 72

// Options controls the figure size and the displayed axis ranges. Nil
// ranges fit the data.
type Options struct {
	Width  int
	Height int
	XRange *config.AxisRange
	YRange *config.AxisRange
}

// Figure is one trace plot with its shaded peaks
type Figure struct {
	trace *domain.Trace
	opts  Options
	bands []band
}

// NewFigure creates an empty figure for trace
func NewFigure(trace *domain.Trace, opts Options) *Figure {
	if opts.Width <= 0 {
		opts.Width = config.PlotWidth
	}
	if opts.Height <= 0 {
		opts.Height = config.PlotHeight
	}
	return &Figure{trace: trace, opts: opts}
}

// ShadePeak adds the region between the trace and the result's baseline,
// covering samples with time[StartIndex] < t <= time[FinishIndex]. The
// result must come from integrating this figure's trace.
func (f *Figure) ShadePeak(result domain.PeakResult) error {
	b := band{
		name:     result.Window.Name,
		time:     f.trace.Time,
		signal:   f.trace.Signal,
		baseline: result.Baseline,
		from:     result.StartIndex,
		to:       result.FinishIndex,
		color:    chart.GetDefaultColor(len(f.bands)),
	}
	if err := b.Validate(); err != nil {
		return apperrors.NewRenderError("failed to shade peak", err).WithContext("peak", result.Window.Name)
	}

	f.bands = append(f.bands, b)
	return nil
}

// Bands returns the number of shaded peaks
func (f *Figure) Bands() int {
	return len(f.bands)
}

// Render writes the figure as PNG to w
func (f *Figure) Render(w io.Writer) error {
	series := make([]chart.Series, 0, len(f.bands)+1)
	for _, b := range f.bands {
		series = append(series, b)
	}
	series = append(series, chart.ContinuousSeries{
		Name:    f.trace.Source,
		XValues: f.trace.Time,
		YValues: f.trace.Signal,
		Style: chart.Style{
			StrokeColor: drawing.ColorBlack,
			StrokeWidth: traceStrokeWidth,
		},
	})

	ch := chart.Chart{
		Width:      f.opts.Width,
		Height:     f.opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      chart.XAxis{Range: axisRange(f.opts.XRange)},
		YAxis:      chart.YAxis{Range: axisRange(f.opts.YRange)},
		Series:     series,
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		return apperrors.NewRenderError("failed to render plot", err).WithContext("file", f.trace.Source)
	}
	return nil
}

// Save renders the figure to a PNG file at path
func (f *Figure) Save(path string) error {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write plot %s", path), err).WithContext("path", path)
	}
	return nil
}

func axisRange(r *config.AxisRange) chart.Range {
	if r == nil {
		return nil
	}
	return &chart.ContinuousRange{Min: r.Min, Max: r.Max}
}
