package operations

import (
	"context"
	"errors"
	"log/slog"

	apperrors "gcpeaks/internal/errors"
	"gcpeaks/internal/infrastructure"
	"gcpeaks/pkg/contracts/domain"
)

// logBatchStart logs the start of a batch run
func (b *Batch) logBatchStart(ctx context.Context) {
	b.logger.InfoContext(ctx, "batch_start",
		slog.String("data_dir", b.paths.DataDir),
		slog.String("results_dir", b.paths.ResultsDir),
		slog.String("extension", b.analysis.Extension),
		slog.Any("peaks", b.analysis.Peaks.Names()),
		slog.Float64("interval", b.analysis.Interval))
}

// logFileComplete logs one analysed file with the batch progress
func (b *Batch) logFileComplete(ctx context.Context, progress *ProgressTracker, row domain.FileResult) {
	current, total, percentage, _ := progress.GetProgress()
	attrs := []any{
		slog.String("file", row.Name),
		slog.Int("samples", row.Samples),
		slog.Any("areas", row.Areas),
		slog.Int("current", current),
		slog.Int("total", total),
		slog.Float64("percentage", percentage),
	}
	b.logger.InfoContext(ctx, "file_complete", append(attrs, traceAttrs(ctx)...)...)
}

// logFileError logs the file that aborted the batch
func (b *Batch) logFileError(ctx context.Context, filename string, err error) {
	attrs := []any{slog.String("file", filename)}
	attrs = append(attrs, errorAttrs(err)...)
	attrs = append(attrs, traceAttrs(ctx)...)
	b.logger.ErrorContext(ctx, "file_error", attrs...)
}

// logBatchError logs a failure outside any single file
func (b *Batch) logBatchError(ctx context.Context, err error) {
	b.logger.ErrorContext(ctx, "batch_error", errorAttrs(err)...)
}

// logBatchComplete logs the run summary. analysis_time covers the file loop
// only; duration includes validation and summary output.
func (b *Batch) logBatchComplete(ctx context.Context, progress *ProgressTracker, result *domain.BatchResult) {
	b.logger.InfoContext(ctx, "batch_complete",
		slog.Int("files", len(result.Rows)),
		slog.String("summary", b.paths.SummaryCSV),
		slog.Bool("workbook", b.output.Workbook),
		slog.Duration("analysis_time", progress.GetElapsedTime()),
		slog.Duration("duration", result.Duration()))
}

// traceAttrs correlates a record with the batch trace when tracing is on
func traceAttrs(ctx context.Context) []any {
	if traceID := infrastructure.TraceIDFromContext(ctx); traceID != "" {
		return []any{slog.String("trace_id", traceID)}
	}
	return nil
}

func errorAttrs(err error) []any {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.LogAttrs()
	}
	return []any{slog.String("error", err.Error())}
}
