package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"gcpeaks/internal/config"
)

// InstrumentationName names the tracer and meter of the analysis pipeline
const InstrumentationName = "gcpeaks"

// TelemetryProviders holds the tracer and meter used by a batch run.
// Both are noop implementations when the matching sink is not configured.
type TelemetryProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Logger         *slog.Logger

	registry    *prometheus.Registry
	traceFile   *os.File
	metricsFile string
}

// BatchMetrics are the instruments recorded while analysing a folder
type BatchMetrics struct {
	FilesProcessed  metric.Int64Counter
	PeaksIntegrated metric.Int64Counter
	Failures        metric.Int64Counter
	FileDuration    metric.Float64Histogram
}

// InitializeTelemetry sets up span export to cfg.TraceFile and a Prometheus
// registry written to cfg.MetricsFile on Shutdown
func InitializeTelemetry(cfg config.TelemetryConfig, logger *slog.Logger) (*TelemetryProviders, error) {
	if logger == nil {
		logger = GetLogger()
	}
	ctx := context.Background()

	providers := &TelemetryProviders{
		Tracer:      tracenoop.NewTracerProvider().Tracer(InstrumentationName),
		Meter:       metricnoop.NewMeterProvider().Meter(InstrumentationName),
		Logger:      logger,
		metricsFile: cfg.MetricsFile,
	}

	res := createResource(cfg)

	if cfg.TraceFile != "" {
		if err := providers.initializeTracing(cfg, res); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if cfg.MetricsFile != "" {
		if err := providers.initializeMetrics(res); err != nil {
			providers.Shutdown(ctx)
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	logger.DebugContext(ctx, "Telemetry initialized",
		slog.String("service", cfg.ServiceName),
		slog.Bool("tracing_enabled", providers.TracerProvider != nil),
		slog.Bool("metrics_enabled", providers.MeterProvider != nil))

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg config.TelemetryConfig) *resource.Resource {
	name := cfg.ServiceName
	if name == "" {
		name = config.AppName
	}
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(name),
		semconv.ServiceVersion(config.AppVersion),
	)
}

func (p *TelemetryProviders) initializeTracing(cfg config.TelemetryConfig, res *resource.Resource) error {
	if err := os.MkdirAll(filepath.Dir(cfg.TraceFile), 0755); err != nil {
		return fmt.Errorf("failed to create trace directory: %w", err)
	}
	file, err := os.Create(cfg.TraceFile)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(file))
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	p.traceFile = file
	p.TracerProvider = tp
	p.Tracer = tp.Tracer(InstrumentationName, trace.WithInstrumentationVersion(config.AppVersion))
	return nil
}

func (p *TelemetryProviders) initializeMetrics(res *resource.Resource) error {
	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	p.registry = registry
	p.MeterProvider = mp
	p.Meter = mp.Meter(InstrumentationName, metric.WithInstrumentationVersion(config.AppVersion))
	return nil
}

// CreateBatchMetrics creates the batch instruments on meter
func CreateBatchMetrics(meter metric.Meter) (*BatchMetrics, error) {
	filesProcessed, err := meter.Int64Counter(
		"gcpeaks_files_processed_total",
		metric.WithDescription("Number of trace files analysed"),
	)
	if err != nil {
		return nil, err
	}

	peaksIntegrated, err := meter.Int64Counter(
		"gcpeaks_peaks_integrated_total",
		metric.WithDescription("Number of peak windows integrated"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter(
		"gcpeaks_failures_total",
		metric.WithDescription("Number of files that failed analysis"),
	)
	if err != nil {
		return nil, err
	}

	fileDuration, err := meter.Float64Histogram(
		"gcpeaks_file_duration_seconds",
		metric.WithDescription("Time spent analysing one trace file"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &BatchMetrics{
		FilesProcessed:  filesProcessed,
		PeaksIntegrated: peaksIntegrated,
		Failures:        failures,
		FileDuration:    fileDuration,
	}, nil
}

// RecordFile records one analysed file
func (m *BatchMetrics) RecordFile(ctx context.Context, peaks int, duration time.Duration, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.Failures.Add(ctx, 1)
		return
	}
	m.FilesProcessed.Add(ctx, 1)
	m.PeaksIntegrated.Add(ctx, int64(peaks))
	m.FileDuration.Record(ctx, duration.Seconds())
}

// Shutdown writes the metrics textfile and flushes the span exporter
func (p *TelemetryProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.registry != nil && p.metricsFile != "" {
		if err := os.MkdirAll(filepath.Dir(p.metricsFile), 0755); err != nil {
			errs = append(errs, fmt.Errorf("metrics directory: %w", err))
		} else if err := prometheus.WriteToTextfile(p.metricsFile, p.registry); err != nil {
			errs = append(errs, fmt.Errorf("metrics textfile: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.traceFile != nil {
		if err := p.traceFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("trace file close: %w", err))
		}
		p.traceFile = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("telemetry shutdown errors: %w", errors.Join(errs...))
	}
	return nil
}

// TraceIDFromContext extracts trace ID from context for logging correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// AddSpanEvent adds an event to the current span with structured attributes
func AddSpanEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(toAttributes(attributes)...))
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() || err == nil {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanAttributes sets attributes on the current span
func SetSpanAttributes(ctx context.Context, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(toAttributes(attributes)...)
}

func toAttributes(attributes map[string]interface{}) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, val))
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case int64:
			attrs = append(attrs, attribute.Int64(k, val))
		case float64:
			attrs = append(attrs, attribute.Float64(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}
	return attrs
}
