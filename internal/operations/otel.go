package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"gcpeaks/internal/infrastructure"
	"gcpeaks/pkg/contracts/domain"
)

const (
	BatchSpanName = "gcpeaks.batch"
	FileSpanName  = "gcpeaks.analyze_file"
	PeakEventName = "peak.integrated"
)

// BatchTracer provides OpenTelemetry instrumentation for batch runs
type BatchTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.BatchMetrics
}

// NewBatchTracer creates a tracer from the configured providers. Nil
// providers give a tracer that records nothing.
func NewBatchTracer(providers *infrastructure.TelemetryProviders) (*BatchTracer, error) {
	if providers == nil {
		return &BatchTracer{tracer: tracenoop.NewTracerProvider().Tracer(infrastructure.InstrumentationName)}, nil
	}

	metrics, err := infrastructure.CreateBatchMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create batch metrics: %w", err)
	}

	return &BatchTracer{
		tracer:  providers.Tracer,
		metrics: metrics,
	}, nil
}

// TraceBatch creates the span covering a whole folder run
func (bt *BatchTracer) TraceBatch(ctx context.Context, folder string, peaks int) (context.Context, trace.Span) {
	return bt.tracer.Start(ctx, BatchSpanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("batch.folder", folder),
			attribute.Int("batch.peaks", peaks),
			attribute.String("batch.run_id", infrastructure.GetRunID(ctx)),
		),
	)
}

// TraceFile creates the span for one analysed export
func (bt *BatchTracer) TraceFile(ctx context.Context, filename string, sequence int) (context.Context, trace.Span) {
	return bt.tracer.Start(ctx, FileSpanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("file.name", filename),
			attribute.Int("file.sequence", sequence),
		),
	)
}

// RecordPeak adds a span event for one integrated window
func (bt *BatchTracer) RecordPeak(ctx context.Context, result domain.PeakResult) {
	infrastructure.AddSpanEvent(ctx, PeakEventName, map[string]interface{}{
		"peak.name":         result.Window.Name,
		"peak.start":        result.Window.Start,
		"peak.end":          result.Window.End,
		"peak.start_index":  result.StartIndex,
		"peak.finish_index": result.FinishIndex,
		"peak.area":         result.Area,
		"peak.collapsed":    result.Collapsed(),
	})
}

// RecordFileCompletion closes out a file span and records the file metrics
func (bt *BatchTracer) RecordFileCompletion(ctx context.Context, span trace.Span, result domain.FileResult, duration time.Duration, err error) {
	span.SetAttributes(
		attribute.Int("file.peaks", len(result.Areas)),
		attribute.Float64("file.duration_seconds", duration.Seconds()),
	)

	bt.metrics.RecordFile(ctx, len(result.Areas), duration, err)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		return
	}
	span.SetStatus(codes.Ok, "file analysed")
}

// RecordBatchCompletion closes out the batch span
func (bt *BatchTracer) RecordBatchCompletion(ctx context.Context, span trace.Span, files int, duration time.Duration, err error) {
	span.SetAttributes(
		attribute.Int("batch.files", files),
		attribute.Float64("batch.duration_seconds", duration.Seconds()),
	)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		return
	}

	infrastructure.AddSpanEvent(ctx, "batch.completed", map[string]interface{}{
		"files":    files,
		"duration": duration.Seconds(),
	})
	span.SetStatus(codes.Ok, "batch completed")
}
