package operations

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"gcpeaks/internal/config"
	"gcpeaks/internal/dataprocessing"
	apperrors "gcpeaks/internal/errors"
	"gcpeaks/internal/infrastructure"
	"gcpeaks/internal/plotting"
	"gcpeaks/pkg/contracts/domain"
)

// Analyzer processes one raw export: integrate every window, plot, save
type Analyzer struct {
	extension string
	plot      plotting.Options
	tracer    *BatchTracer
	logger    *slog.Logger
}

// NewAnalyzer creates an analyzer for exports with the configured extension
// and plot ranges
func NewAnalyzer(cfg config.AnalysisConfig, tracer *BatchTracer, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer, _ = NewBatchTracer(nil)
	}
	return &Analyzer{
		extension: cfg.Extension,
		plot: plotting.Options{
			Width:  config.PlotWidth,
			Height: config.PlotHeight,
			XRange: cfg.XAxis,
			YRange: cfg.YAxis,
		},
		tracer: tracer,
		logger: logger,
	}
}

// PlotName returns the PNG name for a raw export
func (a *Analyzer) PlotName(filename string) string {
	return config.PlotFileName(filename, a.extension)
}

// Analyze integrates peaks over folder/filename and writes the annotated
// plot into resultsFolder. Areas follow the order of peaks.
func (a *Analyzer) Analyze(ctx context.Context, folder, resultsFolder, filename string, peaks []domain.PeakWindow) (domain.FileResult, error) {
	return a.analyze(ctx, folder, resultsFolder, filename, peaks, 0)
}

func (a *Analyzer) analyze(ctx context.Context, folder, resultsFolder, filename string, peaks []domain.PeakWindow, sequence int) (result domain.FileResult, err error) {
	started := time.Now()
	ctx, span := a.tracer.TraceFile(ctx, filename, sequence)
	defer func() {
		a.tracer.RecordFileCompletion(ctx, span, result, time.Since(started), err)
		span.End()
	}()

	result = domain.FileResult{
		Name:     filename,
		Path:     filepath.Join(folder, filename),
		PlotPath: filepath.Join(resultsFolder, a.PlotName(filename)),
		Sequence: sequence,
	}

	trace, err := dataprocessing.ParseFile(result.Path)
	if err != nil {
		return result, wrapFileError(err, filename)
	}
	result.Samples = trace.Len()
	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"file.samples": result.Samples,
		"file.path":    result.Path,
	})

	fig := plotting.NewFigure(trace, a.plot)
	result.Areas = make([]float64, 0, len(peaks))
	result.Peaks = make([]domain.PeakResult, 0, len(peaks))

	for _, w := range peaks {
		peak, err := dataprocessing.Integrate(trace, w)
		if err != nil {
			return result, wrapFileError(err, filename)
		}
		if err := fig.ShadePeak(peak); err != nil {
			return result, wrapFileError(err, filename)
		}

		a.tracer.RecordPeak(ctx, peak)
		a.logger.DebugContext(ctx, "Peak integrated",
			slog.String("file", filename),
			slog.String("peak", w.Name),
			slog.Int("start_index", peak.StartIndex),
			slog.Int("finish_index", peak.FinishIndex),
			slog.Float64("area", peak.Area))

		result.Areas = append(result.Areas, peak.Area)
		result.Peaks = append(result.Peaks, peak)
	}

	if err := fig.Save(result.PlotPath); err != nil {
		return result, wrapFileError(err, filename)
	}

	a.logger.DebugContext(ctx, "File analysed",
		slog.String("file", filename),
		slog.Int("samples", result.Samples),
		slog.Int("peaks", len(result.Areas)),
		slog.String("plot", result.PlotPath),
		slog.Duration("duration", time.Since(started)))

	return result, nil
}

// wrapFileError attaches the file name, keeping the error type of AppErrors
func wrapFileError(err error, filename string) error {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.WithContext("file", filename)
	}
	return apperrors.NewAnalysisError("failed to analyse "+filename, err).WithContext("file", filename)
}
